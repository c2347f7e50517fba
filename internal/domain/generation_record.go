package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Validation errors for GenerationRecord
var (
	ErrEmptyGenerationID      = errors.New("generation ID cannot be empty")
	ErrEmptyGenerationSession = errors.New("generation session ID cannot be empty")
	ErrInvalidGeneratedCount  = errors.New("generation must contain exactly 4 prompts")
)

// GenerationRecord is the persisted history entry of one successful generation.
// GeneratedContent is a snapshot: later changes to platform defaults never
// affect a stored record, and records are never updated after insert.
type GenerationRecord struct {
	ID               uuid.UUID         `json:"id"`
	UserInput        string            `json:"userInput"`
	GeneratedContent []GeneratedPrompt `json:"generatedContent"`
	SessionID        string            `json:"sessionId"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// NewGenerationRecord creates a GenerationRecord for the given input, prompts
// and session. The prompts are copied so the caller's slice can be reused.
// Returns an error if validation fails.
func NewGenerationRecord(userInput string, prompts []GeneratedPrompt, sessionID string) (*GenerationRecord, error) {
	snapshot := make([]GeneratedPrompt, len(prompts))
	copy(snapshot, prompts)

	record := &GenerationRecord{
		ID:               uuid.New(),
		UserInput:        userInput,
		GeneratedContent: snapshot,
		SessionID:        sessionID,
		CreatedAt:        time.Now().UTC(),
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the GenerationRecord has valid data.
func (r *GenerationRecord) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyGenerationID
	}

	if r.UserInput == "" {
		return ErrEmptyUserInput
	}

	if len(r.GeneratedContent) != GeneratedPromptCount {
		return ErrInvalidGeneratedCount
	}

	if r.SessionID == "" {
		return ErrEmptyGenerationSession
	}

	return nil
}
