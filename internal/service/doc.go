// Package service contains the application use cases of the prompt library:
// generating prompts through an LLM provider, recording generation history,
// and serving the curated catalog with its analytics counters.
//
// Services receive their dependencies through constructor injection and
// depend on the repository interfaces from internal/store, never on a
// specific database implementation.
//
// Error handling principles:
//  1. Expected conditions are returned as sentinel errors (ErrPromptNotFound)
//  2. Domain validation errors are returned unchanged
//  3. Generation failures are returned as *generation.GenerationError
//  4. Other failures are wrapped in a service error type carrying the operation
//
// The API layer maps these to HTTP status codes.
package service
