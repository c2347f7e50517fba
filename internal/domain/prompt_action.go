package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActionType is something a visitor did with a catalog prompt.
type ActionType string

// Possible prompt actions
const (
	ActionView ActionType = "view"
	ActionCopy ActionType = "copy"
	ActionRate ActionType = "rate"
)

// PromptAction is one analytics event recorded against a catalog prompt.
type PromptAction struct {
	ID        uuid.UUID  `json:"id"`
	PromptID  uuid.UUID  `json:"promptId"`
	Action    ActionType `json:"action"`
	UserAgent string     `json:"userAgent,omitempty"`
	IPAddress string     `json:"ipAddress,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NewPromptAction creates a PromptAction for the given prompt.
// Returns an error if validation fails.
func NewPromptAction(promptID uuid.UUID, action ActionType, userAgent, ipAddress string) (*PromptAction, error) {
	a := &PromptAction{
		ID:        uuid.New(),
		PromptID:  promptID,
		Action:    action,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: time.Now().UTC(),
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate checks if the PromptAction has valid data.
func (a *PromptAction) Validate() error {
	if a.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if a.PromptID == uuid.Nil {
		return NewValidationError("promptId", "cannot be empty", ErrInvalidID)
	}
	if !IsValidAction(a.Action) {
		return ErrInvalidAction
	}
	return nil
}

// IsValidAction reports whether action is a known ActionType.
func IsValidAction(action ActionType) bool {
	switch action {
	case ActionView, ActionCopy, ActionRate:
		return true
	default:
		return false
	}
}
