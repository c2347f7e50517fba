package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/promptnest/promptnest-api/internal/domain"
	"github.com/promptnest/promptnest-api/internal/store"
)

// StatsIncrement records one IncrementPromptStats call
type StatsIncrement struct {
	PromptID uuid.UUID
	Views    int
	Copies   int
}

// MockAnalyticsStore implements store.AnalyticsStore for testing
type MockAnalyticsStore struct {
	RecordActionFn         func(ctx context.Context, action *domain.PromptAction) error
	IncrementPromptStatsFn func(ctx context.Context, promptID uuid.UUID, views, copies int) error

	mu         sync.Mutex
	Actions    []*domain.PromptAction
	Increments []StatsIncrement
	TxCount    int
}

var _ store.AnalyticsStore = (*MockAnalyticsStore)(nil)

// RecordAction implements the store.AnalyticsStore interface
func (m *MockAnalyticsStore) RecordAction(ctx context.Context, action *domain.PromptAction) error {
	if m.RecordActionFn != nil {
		if err := m.RecordActionFn(ctx, action); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Actions = append(m.Actions, action)
	return nil
}

// IncrementPromptStats implements the store.AnalyticsStore interface
func (m *MockAnalyticsStore) IncrementPromptStats(ctx context.Context, promptID uuid.UUID, views, copies int) error {
	if m.IncrementPromptStatsFn != nil {
		if err := m.IncrementPromptStatsFn(ctx, promptID, views, copies); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Increments = append(m.Increments, StatsIncrement{PromptID: promptID, Views: views, Copies: copies})
	return nil
}

// WithTx counts the call and returns the mock itself
func (m *MockAnalyticsStore) WithTx(tx *sql.Tx) store.AnalyticsStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TxCount++
	return m
}
