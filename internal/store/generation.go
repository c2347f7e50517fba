package store

import (
	"context"

	"github.com/promptnest/promptnest-api/internal/domain"
)

// DefaultRecentGenerationsLimit is used when a non-positive limit is requested.
const DefaultRecentGenerationsLimit = 10

// GenerationStore persists generation history. Records are append-only.
type GenerationStore interface {
	// Create inserts a new generation record.
	// Returns validation errors from the domain record if data is invalid.
	Create(ctx context.Context, record *domain.GenerationRecord) error

	// ListRecent returns up to limit records, newest first.
	// Returns an empty slice if there are none.
	ListRecent(ctx context.Context, limit int) ([]*domain.GenerationRecord, error)
}
