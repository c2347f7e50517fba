package mocks

import (
	"context"
	"sync"

	"github.com/promptnest/promptnest-api/internal/domain"
)

// MockGenerationStore implements store.GenerationStore for testing.
// Created records are kept in Records unless CreateFn is set.
type MockGenerationStore struct {
	CreateFn     func(ctx context.Context, record *domain.GenerationRecord) error
	ListRecentFn func(ctx context.Context, limit int) ([]*domain.GenerationRecord, error)

	mu      sync.Mutex
	Records []*domain.GenerationRecord
	Limits  []int
}

// Create implements the store.GenerationStore interface
func (m *MockGenerationStore) Create(ctx context.Context, record *domain.GenerationRecord) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, record)
	return nil
}

// ListRecent implements the store.GenerationStore interface
func (m *MockGenerationStore) ListRecent(ctx context.Context, limit int) ([]*domain.GenerationRecord, error) {
	m.mu.Lock()
	m.Limits = append(m.Limits, limit)
	m.mu.Unlock()

	if m.ListRecentFn != nil {
		return m.ListRecentFn(ctx, limit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.GenerationRecord, 0, len(m.Records))
	for i := len(m.Records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.Records[i])
	}
	return out, nil
}

// Saved returns a copy of the records created so far
func (m *MockGenerationStore) Saved() []*domain.GenerationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.GenerationRecord(nil), m.Records...)
}
