// Package generation holds the provider-independent half of AI prompt
// generation: the Provider contract an LLM adapter satisfies, the system
// instructions sent to it, the lenient parser that turns the provider's text
// reply into exactly four GeneratedPrompt values, and the error taxonomy
// (ConfigurationError, ProviderError, ParseError, GenerationError) shared by
// the adapter and the orchestrating service.
package generation
