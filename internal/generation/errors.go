package generation

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is.
var (
	// ErrMissingCredential is wrapped by ConfigurationError when no provider API key is configured.
	ErrMissingCredential = errors.New("OpenRouter API key not configured")

	// ErrUnparseableOutput is wrapped by ParseError when no JSON could be recovered from the reply.
	ErrUnparseableOutput = errors.New("could not parse provider output")

	// ErrWrongItemCount is wrapped by ParseError when the reply is not an array of exactly four items.
	ErrWrongItemCount = errors.New("wrong item count")

	// ErrUnexpectedShape is wrapped by ParseError when a single-prompt reply is not a JSON object.
	ErrUnexpectedShape = errors.New("unexpected provider output shape")

	// ErrEmptyReply is wrapped by ProviderError when the reply envelope has no message content.
	ErrEmptyReply = errors.New("no content received from provider")
)

// ConfigurationError reports a provider that cannot be used as configured.
// Its message never includes credential values.
type ConfigurationError struct {
	Err error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Err.Error()
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ProviderError reports a failed exchange with the LLM provider: the provider
// was unreachable, answered with a non-success status, or sent an envelope
// without message content.
type ProviderError struct {
	// StatusCode is the HTTP status of the provider reply, or 0 if none was received.
	StatusCode int
	// Body is the provider's error text for non-success replies.
	Body string
	// Err is the underlying transport or client error.
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider error: status %d - %s", e.StatusCode, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("provider error: %v", e.Err)
	}
	return "provider error"
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ParseError reports provider content that does not meet the prompt contract.
type ParseError struct {
	// Err is one of ErrUnparseableOutput, ErrWrongItemCount or ErrUnexpectedShape.
	Err error
	// Detail adds context such as the received item count.
	Detail string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Detail)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// GenerationErrorMessage is the caller-facing summary of every failed generation.
const GenerationErrorMessage = "failed to generate prompts"

// GenerationError is the single outward-facing failure of a generation. It
// deliberately does not distinguish provider and parse failures; the cause
// stays reachable through errors.As for logging and diagnostics.
type GenerationError struct {
	Err error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", GenerationErrorMessage, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying error text attached to the failure.
func (e *GenerationError) Cause() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
