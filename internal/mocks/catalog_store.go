package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/promptnest/promptnest-api/internal/domain"
	"github.com/promptnest/promptnest-api/internal/store"
)

// MockCatalogStore implements store.CatalogStore for testing
type MockCatalogStore struct {
	ListCategoriesFn    func(ctx context.Context) ([]*domain.Category, error)
	GetCategoryByNameFn func(ctx context.Context, name string) (*domain.Category, error)
	CreateCategoryFn    func(ctx context.Context, category *domain.Category) error
	ListPlatformsFn     func(ctx context.Context) ([]*domain.Platform, error)
	GetPlatformByNameFn func(ctx context.Context, name string) (*domain.Platform, error)
	CreatePlatformFn    func(ctx context.Context, platform *domain.Platform) error
	ListPromptsFn       func(ctx context.Context, filter store.PromptFilter) ([]*domain.Prompt, error)
	GetPromptByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Prompt, error)

	mu      sync.Mutex
	Filters []store.PromptFilter
}

var _ store.CatalogStore = (*MockCatalogStore)(nil)

// ListCategories implements the store.CatalogStore interface
func (m *MockCatalogStore) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if m.ListCategoriesFn != nil {
		return m.ListCategoriesFn(ctx)
	}
	return []*domain.Category{}, nil
}

// GetCategoryByName implements the store.CatalogStore interface
func (m *MockCatalogStore) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.GetCategoryByNameFn != nil {
		return m.GetCategoryByNameFn(ctx, name)
	}
	return nil, store.ErrCategoryNotFound
}

// CreateCategory implements the store.CatalogStore interface
func (m *MockCatalogStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	if m.CreateCategoryFn != nil {
		return m.CreateCategoryFn(ctx, category)
	}
	return nil
}

// ListPlatforms implements the store.CatalogStore interface
func (m *MockCatalogStore) ListPlatforms(ctx context.Context) ([]*domain.Platform, error) {
	if m.ListPlatformsFn != nil {
		return m.ListPlatformsFn(ctx)
	}
	return []*domain.Platform{}, nil
}

// GetPlatformByName implements the store.CatalogStore interface
func (m *MockCatalogStore) GetPlatformByName(ctx context.Context, name string) (*domain.Platform, error) {
	if m.GetPlatformByNameFn != nil {
		return m.GetPlatformByNameFn(ctx, name)
	}
	return nil, store.ErrPlatformNotFound
}

// CreatePlatform implements the store.CatalogStore interface
func (m *MockCatalogStore) CreatePlatform(ctx context.Context, platform *domain.Platform) error {
	if m.CreatePlatformFn != nil {
		return m.CreatePlatformFn(ctx, platform)
	}
	return nil
}

// ListPrompts implements the store.CatalogStore interface.
// Every filter it receives is recorded in Filters.
func (m *MockCatalogStore) ListPrompts(ctx context.Context, filter store.PromptFilter) ([]*domain.Prompt, error) {
	m.mu.Lock()
	m.Filters = append(m.Filters, filter)
	m.mu.Unlock()

	if m.ListPromptsFn != nil {
		return m.ListPromptsFn(ctx, filter)
	}
	return []*domain.Prompt{}, nil
}

// GetPromptByID implements the store.CatalogStore interface
func (m *MockCatalogStore) GetPromptByID(ctx context.Context, id uuid.UUID) (*domain.Prompt, error) {
	if m.GetPromptByIDFn != nil {
		return m.GetPromptByIDFn(ctx, id)
	}
	return nil, store.ErrPromptNotFound
}

// WithTx returns the mock itself; the transaction is ignored.
func (m *MockCatalogStore) WithTx(tx *sql.Tx) store.CatalogStore {
	return m
}

// LastFilter returns the most recent filter passed to ListPrompts
func (m *MockCatalogStore) LastFilter() store.PromptFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Filters) == 0 {
		return store.PromptFilter{}
	}
	return m.Filters[len(m.Filters)-1]
}
