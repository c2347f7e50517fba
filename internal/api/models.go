package api

import (
	"time"

	"github.com/promptnest/promptnest-api/internal/domain"
)

// GenerateRequest defines the payload for the prompt generation endpoint.
type GenerateRequest struct {
	Prompt    string `json:"prompt"    validate:"required,min=1,max=500"`
	SessionID string `json:"sessionId" validate:"omitempty"`
}

// GenerateSingleRequest defines the payload for single-platform generation.
type GenerateSingleRequest struct {
	Prompt   string `json:"prompt"   validate:"required,min=1,max=500"`
	Platform string `json:"platform" validate:"required,max=64"`
}

// GenerateSingleResponse is the successful response of single-platform generation.
type GenerateSingleResponse struct {
	Success bool                    `json:"success"`
	Prompt  *domain.GeneratedPrompt `json:"prompt"`
}

// AnalyticsRequest defines the payload for recording a prompt action.
type AnalyticsRequest struct {
	PromptID  string `json:"promptId"  validate:"required,uuid"`
	Action    string `json:"action"    validate:"required,oneof=view copy rate"`
	UserAgent string `json:"userAgent" validate:"omitempty,max=512"`
}

// SuccessResponse acknowledges a request without further data.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
