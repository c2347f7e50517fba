// Package openrouter provides the LLM client adapter used for prompt
// generation. It talks to OpenRouter's chat-completion API through the
// go-openai client, adding OpenRouter's attribution headers and mapping
// failures onto the generation error taxonomy. It never retries.
package openrouter
