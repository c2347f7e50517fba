package service

import (
	"errors"
	"fmt"

	"github.com/promptnest/promptnest-api/internal/store"
)

// Common service errors. Callers check them with errors.Is.
var (
	// ErrPromptNotFound indicates that the catalog prompt does not exist or is inactive.
	// API layer should map this to HTTP 404 Not Found.
	ErrPromptNotFound = errors.New("prompt not found")
)

// CatalogServiceError wraps errors from the catalog service with context.
type CatalogServiceError struct {
	// Operation is the operation that failed (e.g., "list_prompts", "record_action")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for CatalogServiceError.
func (e *CatalogServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("catalog service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CatalogServiceError) Unwrap() error {
	return e.Err
}

// NewCatalogServiceError creates a new CatalogServiceError.
// Missing prompts are returned as ErrPromptNotFound without wrapping.
func NewCatalogServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrPromptNotFound) || errors.Is(err, store.ErrPromptNotFound) {
		return ErrPromptNotFound
	}

	return &CatalogServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
