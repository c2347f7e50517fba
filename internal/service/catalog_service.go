package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/promptnest/promptnest-api/internal/domain"
	"github.com/promptnest/promptnest-api/internal/platform/logger"
	"github.com/promptnest/promptnest-api/internal/redact"
	"github.com/promptnest/promptnest-api/internal/store"
)

// Default page sizes of the catalog listings.
const (
	DefaultPromptsLimit  = 20
	DefaultTrendingLimit = 10
	DefaultFeaturedLimit = 10
	DefaultStatsFeatured = 5
	MaxPromptsLimit      = 100
)

// Visitor identifies who performed a catalog action.
type Visitor struct {
	UserAgent string
	IPAddress string
}

// CatalogStats summarises the catalog.
type CatalogStats struct {
	TotalPrompts    int                `json:"totalPrompts"`
	TotalCategories int                `json:"totalCategories"`
	TotalPlatforms  int                `json:"totalPlatforms"`
	Categories      []*domain.Category `json:"categories"`
	Platforms       []*domain.Platform `json:"platforms"`
	FeaturedPrompts []*domain.Prompt   `json:"featuredPrompts"`
}

// CatalogService serves the curated prompt catalog.
// Non-positive limits fall back to the listing's default; limits above
// MaxPromptsLimit are capped.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListPlatforms(ctx context.Context) ([]*domain.Platform, error)

	// ListPrompts returns active prompts, newest first.
	ListPrompts(ctx context.Context, limit, offset int) ([]*domain.Prompt, error)
	// TrendingPrompts returns trending prompts, most viewed first.
	TrendingPrompts(ctx context.Context, limit int) ([]*domain.Prompt, error)
	// FeaturedPrompts returns featured prompts, best rated first.
	FeaturedPrompts(ctx context.Context, limit int) ([]*domain.Prompt, error)
	PromptsByPlatform(ctx context.Context, platformID uuid.UUID, limit int) ([]*domain.Prompt, error)
	PromptsByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]*domain.Prompt, error)
	// SearchPrompts matches query against title, content and preview.
	SearchPrompts(ctx context.Context, query string, limit int) ([]*domain.Prompt, error)

	// GetPrompt returns a prompt and records a view of it.
	// Returns ErrPromptNotFound if it does not exist.
	GetPrompt(ctx context.Context, id uuid.UUID, visitor Visitor) (*domain.Prompt, error)
	// RecordAction records an analytics event. A copy also increments the
	// prompt's copy counter. Returns ErrPromptNotFound if it does not exist.
	RecordAction(ctx context.Context, promptID uuid.UUID, action domain.ActionType, visitor Visitor) error

	Stats(ctx context.Context) (*CatalogStats, error)

	// SeedDefaults inserts the default platforms and categories into empty
	// tables. Tables that already hold rows are left alone.
	SeedDefaults(ctx context.Context) error
}

type catalogServiceImpl struct {
	db        *sql.DB
	catalog   store.CatalogStore
	analytics store.AnalyticsStore
	logger    *slog.Logger
}

// NewCatalogService creates a new CatalogService.
// It returns an error if any of the required dependencies are nil.
func NewCatalogService(
	db *sql.DB,
	catalog store.CatalogStore,
	analytics store.AnalyticsStore,
	logger *slog.Logger,
) (CatalogService, error) {
	if db == nil {
		return nil, &CatalogServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if catalog == nil {
		return nil, &CatalogServiceError{Operation: "create_service", Message: "catalog store cannot be nil"}
	}
	if analytics == nil {
		return nil, &CatalogServiceError{Operation: "create_service", Message: "analytics store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &catalogServiceImpl{
		db:        db,
		catalog:   catalog,
		analytics: analytics,
		logger:    logger.With("component", "catalog_service"),
	}, nil
}

// ListCategories implements CatalogService.
func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list_categories", "failed to list categories", err)
	}
	return categories, nil
}

// ListPlatforms implements CatalogService.
func (s *catalogServiceImpl) ListPlatforms(ctx context.Context) ([]*domain.Platform, error) {
	platforms, err := s.catalog.ListPlatforms(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list_platforms", "failed to list platforms", err)
	}
	return platforms, nil
}

// ListPrompts implements CatalogService.
func (s *catalogServiceImpl) ListPrompts(ctx context.Context, limit, offset int) ([]*domain.Prompt, error) {
	if offset < 0 {
		offset = 0
	}
	return s.listPrompts(ctx, "list_prompts", store.PromptFilter{
		Order:  store.OrderNewest,
		Limit:  clampLimit(limit, DefaultPromptsLimit),
		Offset: offset,
	})
}

// TrendingPrompts implements CatalogService.
func (s *catalogServiceImpl) TrendingPrompts(ctx context.Context, limit int) ([]*domain.Prompt, error) {
	return s.listPrompts(ctx, "trending_prompts", store.PromptFilter{
		TrendingOnly: true,
		Order:        store.OrderPopular,
		Limit:        clampLimit(limit, DefaultTrendingLimit),
	})
}

// FeaturedPrompts implements CatalogService.
func (s *catalogServiceImpl) FeaturedPrompts(ctx context.Context, limit int) ([]*domain.Prompt, error) {
	return s.listPrompts(ctx, "featured_prompts", store.PromptFilter{
		FeaturedOnly: true,
		Order:        store.OrderTopRated,
		Limit:        clampLimit(limit, DefaultFeaturedLimit),
	})
}

// PromptsByPlatform implements CatalogService.
func (s *catalogServiceImpl) PromptsByPlatform(
	ctx context.Context,
	platformID uuid.UUID,
	limit int,
) ([]*domain.Prompt, error) {
	return s.listPrompts(ctx, "prompts_by_platform", store.PromptFilter{
		PlatformID: &platformID,
		Order:      store.OrderTopRated,
		Limit:      clampLimit(limit, DefaultPromptsLimit),
	})
}

// PromptsByCategory implements CatalogService.
func (s *catalogServiceImpl) PromptsByCategory(
	ctx context.Context,
	categoryID uuid.UUID,
	limit int,
) ([]*domain.Prompt, error) {
	return s.listPrompts(ctx, "prompts_by_category", store.PromptFilter{
		CategoryID: &categoryID,
		Order:      store.OrderTopRated,
		Limit:      clampLimit(limit, DefaultPromptsLimit),
	})
}

// SearchPrompts implements CatalogService. An empty query returns no prompts.
func (s *catalogServiceImpl) SearchPrompts(ctx context.Context, query string, limit int) ([]*domain.Prompt, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Prompt{}, nil
	}
	return s.listPrompts(ctx, "search_prompts", store.PromptFilter{
		Search: query,
		Order:  store.OrderTopRated,
		Limit:  clampLimit(limit, DefaultPromptsLimit),
	})
}

// GetPrompt implements CatalogService.
func (s *catalogServiceImpl) GetPrompt(ctx context.Context, id uuid.UUID, visitor Visitor) (*domain.Prompt, error) {
	prompt, err := s.catalog.GetPromptByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get_prompt", "failed to retrieve prompt", err)
	}

	if err := s.track(ctx, id, domain.ActionView, visitor); err != nil {
		return nil, s.fail(ctx, "get_prompt", "failed to record view", err)
	}
	return prompt, nil
}

// RecordAction implements CatalogService.
func (s *catalogServiceImpl) RecordAction(
	ctx context.Context,
	promptID uuid.UUID,
	action domain.ActionType,
	visitor Visitor,
) error {
	if !domain.IsValidAction(action) {
		return domain.NewValidationError("action", "must be one of view, copy, rate", domain.ErrInvalidAction)
	}
	if err := s.track(ctx, promptID, action, visitor); err != nil {
		return s.fail(ctx, "record_action", "failed to record action", err)
	}
	return nil
}

// track records action and updates the prompt counters in one transaction.
func (s *catalogServiceImpl) track(
	ctx context.Context,
	promptID uuid.UUID,
	action domain.ActionType,
	visitor Visitor,
) error {
	event, err := domain.NewPromptAction(promptID, action, visitor.UserAgent, visitor.IPAddress)
	if err != nil {
		return err
	}

	var views, copies int
	switch action {
	case domain.ActionView:
		views = 1
	case domain.ActionCopy:
		copies = 1
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txAnalytics := s.analytics.WithTx(tx)
		if err := txAnalytics.RecordAction(ctx, event); err != nil {
			return err
		}
		if views == 0 && copies == 0 {
			return nil
		}
		return txAnalytics.IncrementPromptStats(ctx, promptID, views, copies)
	})
}

// Stats implements CatalogService. TotalPrompts is the sum of the category
// prompt counts, so prompts without a category are not counted.
func (s *catalogServiceImpl) Stats(ctx context.Context) (*CatalogStats, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	platforms, err := s.ListPlatforms(ctx)
	if err != nil {
		return nil, err
	}
	featured, err := s.FeaturedPrompts(ctx, DefaultStatsFeatured)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range categories {
		total += c.PromptCount
	}

	return &CatalogStats{
		TotalPrompts:    total,
		TotalCategories: len(categories),
		TotalPlatforms:  len(platforms),
		Categories:      categories,
		Platforms:       platforms,
		FeaturedPrompts: featured,
	}, nil
}

// SeedDefaults implements CatalogService. Every row is attempted; the
// failures are logged and returned joined.
func (s *catalogServiceImpl) SeedDefaults(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	var errs []error

	platforms, err := s.catalog.ListPlatforms(ctx)
	switch {
	case err != nil:
		errs = append(errs, err)
	case len(platforms) == 0:
		for _, d := range domain.DefaultPlatforms {
			p, err := domain.NewPlatform(d.Name, d.Description, d.Icon, d.Color)
			if err == nil {
				err = s.catalog.CreatePlatform(ctx, p)
			}
			if err != nil {
				log.Warn("failed to seed platform",
					slog.String("name", d.Name),
					slog.String("error", redact.Error(err)))
				errs = append(errs, err)
			}
		}
		log.Info("seeded default platforms", slog.Int("count", len(domain.DefaultPlatforms)))
	}

	categories, err := s.catalog.ListCategories(ctx)
	switch {
	case err != nil:
		errs = append(errs, err)
	case len(categories) == 0:
		for _, d := range domain.DefaultCategories {
			c, err := domain.NewCategory(d.Name, d.Description, d.Icon, d.Color)
			if err == nil {
				err = s.catalog.CreateCategory(ctx, c)
			}
			if err != nil {
				log.Warn("failed to seed category",
					slog.String("name", d.Name),
					slog.String("error", redact.Error(err)))
				errs = append(errs, err)
			}
		}
		log.Info("seeded default categories", slog.Int("count", len(domain.DefaultCategories)))
	}

	return errors.Join(errs...)
}

func (s *catalogServiceImpl) listPrompts(
	ctx context.Context,
	operation string,
	filter store.PromptFilter,
) ([]*domain.Prompt, error) {
	prompts, err := s.catalog.ListPrompts(ctx, filter)
	if err != nil {
		return nil, s.fail(ctx, operation, "failed to list prompts", err)
	}
	return prompts, nil
}

// fail logs err unless it is an expected not-found and converts it to a service error.
func (s *catalogServiceImpl) fail(ctx context.Context, operation, message string, err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return err
	}

	mapped := NewCatalogServiceError(operation, message, err)
	if !errors.Is(mapped, ErrPromptNotFound) {
		logger.FromContextOrDefault(ctx, s.logger).Error(message,
			slog.String("operation", operation),
			slog.String("error", redact.Error(err)))
	}
	return mapped
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > MaxPromptsLimit {
		return MaxPromptsLimit
	}
	return limit
}
