package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/promptnest/promptnest-api/internal/domain"
)

// PromptOrder selects the sort order of a prompt listing.
type PromptOrder int

// Supported prompt orderings.
const (
	// OrderNewest sorts by creation time, newest first.
	OrderNewest PromptOrder = iota
	// OrderTopRated sorts by rating, then views.
	OrderTopRated
	// OrderPopular sorts by views, then copies.
	OrderPopular
)

// PromptFilter narrows a prompt listing. Only active prompts are ever listed.
// Zero-valued fields do not filter.
type PromptFilter struct {
	PlatformID   *uuid.UUID
	CategoryID   *uuid.UUID
	FeaturedOnly bool
	TrendingOnly bool
	// Search matches case-insensitively against title, content and preview.
	Search string
	Order  PromptOrder
	Limit  int
	Offset int
}

// CatalogStore reads the curated prompt catalog and maintains its platform
// and category reference data.
type CatalogStore interface {
	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]*domain.Category, error)

	// GetCategoryByName returns the category with the given name.
	// Returns ErrCategoryNotFound if there is none.
	GetCategoryByName(ctx context.Context, name string) (*domain.Category, error)

	// CreateCategory inserts a category.
	// Returns ErrNameExists if the name is taken.
	CreateCategory(ctx context.Context, category *domain.Category) error

	// ListPlatforms returns all platforms ordered by name.
	ListPlatforms(ctx context.Context) ([]*domain.Platform, error)

	// GetPlatformByName returns the platform with the given name.
	// Returns ErrPlatformNotFound if there is none.
	GetPlatformByName(ctx context.Context, name string) (*domain.Platform, error)

	// CreatePlatform inserts a platform.
	// Returns ErrNameExists if the name is taken.
	CreatePlatform(ctx context.Context, platform *domain.Platform) error

	// ListPrompts returns active prompts matching filter, with their platform
	// and category attached. Returns an empty slice if none match.
	ListPrompts(ctx context.Context, filter PromptFilter) ([]*domain.Prompt, error)

	// GetPromptByID returns a prompt with its platform and category attached.
	// Returns ErrPromptNotFound if it does not exist.
	GetPromptByID(ctx context.Context, id uuid.UUID) (*domain.Prompt, error)

	// WithTx returns a CatalogStore that runs its statements in tx.
	WithTx(tx *sql.Tx) CatalogStore
}
