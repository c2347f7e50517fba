package api

import (
	"errors"
	"net/http"

	"github.com/promptnest/promptnest-api/internal/api/shared"
	"github.com/promptnest/promptnest-api/internal/domain"
	"github.com/promptnest/promptnest-api/internal/generation"
	"github.com/promptnest/promptnest-api/internal/service"
	"github.com/promptnest/promptnest-api/internal/store"
)

// Client-facing error texts.
const (
	msgInvalidInput       = "Invalid input"
	msgInvalidRequest     = "Invalid request format"
	msgPromptNotFound     = "Prompt not found"
	msgGenerationFailed   = "Failed to generate prompts"
	msgGenerationDisabled = "Prompt generation is not configured"
	msgUnexpected         = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError
	var configErr *generation.ConfigurationError

	switch {
	case errors.As(err, &configErr):
		return http.StatusServiceUnavailable

	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidAction),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrPromptNotFound),
		errors.Is(err, store.ErrPromptNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var genErr *generation.GenerationError
	switch MapErrorToStatusCode(err) {
	case http.StatusServiceUnavailable:
		return msgGenerationDisabled
	case http.StatusBadRequest:
		return msgInvalidInput
	case http.StatusNotFound:
		return msgPromptNotFound
	}
	if errors.As(err, &genErr) {
		return msgGenerationFailed
	}
	return msgUnexpected
}

// HandleAPIError writes the error response for err. Server-side failures use
// fallback as the error text when it is set. Validation failures carry
// per-field details; generation failures carry the redacted cause.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption

	var validationErr *domain.ValidationError
	var configErr *generation.ConfigurationError
	var genErr *generation.GenerationError
	switch {
	case errors.As(err, &validationErr):
		opts = append(opts, shared.WithDetails([]shared.FieldError{{
			Field:   validationErr.Field,
			Message: validationErr.Message,
		}}))
	case errors.As(err, &configErr):
		opts = append(opts, shared.WithMessage(configErr.Err.Error()))
	case errors.As(err, &genErr):
		opts = append(opts, shared.WithMessage(genErr.Cause()))
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// respondInvalidRequest writes a 400 for a body that failed decoding or validation.
func respondInvalidRequest(w http.ResponseWriter, r *http.Request, err error, decoded bool) {
	if !decoded {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidInput, err,
		shared.WithDetails(shared.ValidationDetails(err)))
}
