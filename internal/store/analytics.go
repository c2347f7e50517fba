package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/promptnest/promptnest-api/internal/domain"
)

// AnalyticsStore records what visitors do with catalog prompts.
type AnalyticsStore interface {
	// RecordAction inserts an analytics event.
	// Returns ErrPromptNotFound if the prompt does not exist.
	RecordAction(ctx context.Context, action *domain.PromptAction) error

	// IncrementPromptStats adds views and copies to the prompt's counters
	// and bumps its updated_at.
	// Returns ErrPromptNotFound if the prompt does not exist.
	IncrementPromptStats(ctx context.Context, promptID uuid.UUID, views, copies int) error

	// WithTx returns an AnalyticsStore that runs its statements in tx.
	WithTx(tx *sql.Tx) AnalyticsStore
}
