package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/promptnest/promptnest-api/internal/domain"
	"github.com/promptnest/promptnest-api/internal/platform/logger"
	"github.com/promptnest/promptnest-api/internal/store"
)

// DefaultPromptListLimit is used when a prompt listing asks for no limit.
const DefaultPromptListLimit = 20

const promptSelect = `
	SELECT p.id, p.title, p.content, p.preview, p.platform_id, p.category_id, p.type, p.tags,
	       p.views, p.copies, p.rating, p.rating_count, p.is_featured, p.is_trending, p.is_active,
	       p.created_at, p.updated_at,
	       pl.id, pl.name, pl.description, pl.icon, pl.color, pl.prompt_count, pl.created_at,
	       c.id, c.name, c.description, c.icon, c.color, c.prompt_count, c.created_at
	FROM prompts p
	LEFT JOIN platforms pl ON pl.id = p.platform_id
	LEFT JOIN categories c ON c.id = p.category_id
`

var promptOrderClauses = map[store.PromptOrder]string{
	store.OrderNewest:   "p.created_at DESC",
	store.OrderTopRated: "p.rating DESC, p.views DESC",
	store.OrderPopular:  "p.views DESC, p.copies DESC",
}

// PostgresCatalogStore implements store.CatalogStore on the prompts,
// platforms and categories tables.
type PostgresCatalogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.CatalogStore = (*PostgresCatalogStore)(nil)

// NewPostgresCatalogStore creates a PostgresCatalogStore on db.
// If logger is nil, a default logger will be used.
func NewPostgresCatalogStore(db store.DBTX, logger *slog.Logger) *PostgresCatalogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCatalogStore{
		db:     db,
		logger: logger.With(slog.String("component", "catalog_store")),
	}
}

// WithTx implements store.CatalogStore.WithTx.
func (s *PostgresCatalogStore) WithTx(tx *sql.Tx) store.CatalogStore {
	return &PostgresCatalogStore{db: tx, logger: s.logger}
}

// ListCategories implements store.CatalogStore.ListCategories.
func (s *PostgresCatalogStore) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, name, description, icon, color, prompt_count, created_at
		FROM categories
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, s.queryError(ctx, "category", "list", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []*domain.Category{}
	for rows.Next() {
		var c domain.Category
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &description, &c.Icon, &c.Color, &c.PromptCount, &c.CreatedAt); err != nil {
			return nil, store.NewStoreError("category", "list", "scan failed", err)
		}
		c.Description = description.String
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("category", "list", "row iteration failed", err)
	}
	return categories, nil
}

// GetCategoryByName implements store.CatalogStore.GetCategoryByName.
func (s *PostgresCatalogStore) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `
		SELECT id, name, description, icon, color, prompt_count, created_at
		FROM categories
		WHERE name = $1
	`
	var c domain.Category
	var description sql.NullString
	err := s.db.QueryRowContext(ctx, query, name).
		Scan(&c.ID, &c.Name, &description, &c.Icon, &c.Color, &c.PromptCount, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCategoryNotFound
	}
	if err != nil {
		return nil, s.queryError(ctx, "category", "get", err)
	}
	c.Description = description.String
	return &c, nil
}

// CreateCategory implements store.CatalogStore.CreateCategory.
func (s *PostgresCatalogStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO categories (id, name, description, icon, color, prompt_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		category.ID, category.Name, nullString(category.Description),
		category.Icon, category.Color, category.PromptCount, category.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("category name already exists", slog.String("name", category.Name))
			return fmt.Errorf("%w: category %q", store.ErrNameExists, category.Name)
		}
		return s.queryError(ctx, "category", "create", err)
	}

	log.Info("category created",
		slog.String("category_id", category.ID.String()),
		slog.String("name", category.Name))
	return nil
}

// ListPlatforms implements store.CatalogStore.ListPlatforms.
func (s *PostgresCatalogStore) ListPlatforms(ctx context.Context) ([]*domain.Platform, error) {
	query := `
		SELECT id, name, description, icon, color, prompt_count, created_at
		FROM platforms
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, s.queryError(ctx, "platform", "list", err)
	}
	defer func() { _ = rows.Close() }()

	platforms := []*domain.Platform{}
	for rows.Next() {
		var p domain.Platform
		var description sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &description, &p.Icon, &p.Color, &p.PromptCount, &p.CreatedAt); err != nil {
			return nil, store.NewStoreError("platform", "list", "scan failed", err)
		}
		p.Description = description.String
		platforms = append(platforms, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("platform", "list", "row iteration failed", err)
	}
	return platforms, nil
}

// GetPlatformByName implements store.CatalogStore.GetPlatformByName.
func (s *PostgresCatalogStore) GetPlatformByName(ctx context.Context, name string) (*domain.Platform, error) {
	query := `
		SELECT id, name, description, icon, color, prompt_count, created_at
		FROM platforms
		WHERE name = $1
	`
	var p domain.Platform
	var description sql.NullString
	err := s.db.QueryRowContext(ctx, query, name).
		Scan(&p.ID, &p.Name, &description, &p.Icon, &p.Color, &p.PromptCount, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrPlatformNotFound
	}
	if err != nil {
		return nil, s.queryError(ctx, "platform", "get", err)
	}
	p.Description = description.String
	return &p, nil
}

// CreatePlatform implements store.CatalogStore.CreatePlatform.
func (s *PostgresCatalogStore) CreatePlatform(ctx context.Context, platform *domain.Platform) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO platforms (id, name, description, icon, color, prompt_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		platform.ID, platform.Name, nullString(platform.Description),
		platform.Icon, platform.Color, platform.PromptCount, platform.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("platform name already exists", slog.String("name", platform.Name))
			return fmt.Errorf("%w: platform %q", store.ErrNameExists, platform.Name)
		}
		return s.queryError(ctx, "platform", "create", err)
	}

	log.Info("platform created",
		slog.String("platform_id", platform.ID.String()),
		slog.String("name", platform.Name))
	return nil
}

// ListPrompts implements store.CatalogStore.ListPrompts.
func (s *PostgresCatalogStore) ListPrompts(ctx context.Context, filter store.PromptFilter) ([]*domain.Prompt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildPromptQuery(filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.queryError(ctx, "prompt", "list", err)
	}
	defer func() { _ = rows.Close() }()

	prompts := []*domain.Prompt{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, store.NewStoreError("prompt", "list", "scan failed", err)
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("prompt", "list", "row iteration failed", err)
	}

	log.Debug("listed prompts", slog.Int("count", len(prompts)))
	return prompts, nil
}

// GetPromptByID implements store.CatalogStore.GetPromptByID.
func (s *PostgresCatalogStore) GetPromptByID(ctx context.Context, id uuid.UUID) (*domain.Prompt, error) {
	row := s.db.QueryRowContext(ctx, promptSelect+" WHERE p.id = $1", id)
	p, err := scanPrompt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrPromptNotFound
	}
	if err != nil {
		return nil, s.queryError(ctx, "prompt", "get", err)
	}
	return p, nil
}

func (s *PostgresCatalogStore) queryError(ctx context.Context, entity, operation string, err error) error {
	logger.FromContextOrDefault(ctx, s.logger).Error("catalog query failed",
		slog.String("entity", entity),
		slog.String("operation", operation),
		slog.String("error", err.Error()))
	return store.NewStoreError(entity, operation, "query failed", MapError(err))
}

// buildPromptQuery renders the listing query and its positional arguments.
func buildPromptQuery(filter store.PromptFilter) (string, []any) {
	conditions := []string{"p.is_active = TRUE"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.PlatformID != nil {
		conditions = append(conditions, "p.platform_id = "+arg(*filter.PlatformID))
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "p.category_id = "+arg(*filter.CategoryID))
	}
	if filter.FeaturedOnly {
		conditions = append(conditions, "p.is_featured = TRUE")
	}
	if filter.TrendingOnly {
		conditions = append(conditions, "p.is_trending = TRUE")
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		placeholder := arg("%" + escapeLike(term) + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(p.title ILIKE %[1]s OR p.content ILIKE %[1]s OR p.preview ILIKE %[1]s)", placeholder))
	}

	order, ok := promptOrderClauses[filter.Order]
	if !ok {
		order = promptOrderClauses[store.OrderNewest]
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultPromptListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var b strings.Builder
	b.WriteString(promptSelect)
	b.WriteString(" WHERE ")
	b.WriteString(strings.Join(conditions, " AND "))
	b.WriteString(" ORDER BY ")
	b.WriteString(order)
	b.WriteString(" LIMIT " + arg(limit))
	b.WriteString(" OFFSET " + arg(offset))
	return b.String(), args
}

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrompt(row rowScanner) (*domain.Prompt, error) {
	var (
		p                      domain.Prompt
		platformID, categoryID uuid.NullUUID
		tags                   []byte

		plID, cID                       uuid.NullUUID
		plName, plDesc, plIcon, plColor sql.NullString
		cName, cDesc, cIcon, cColor     sql.NullString
		plCount, cCount                 sql.NullInt64
		plCreated, cCreated             sql.NullTime
	)

	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.Preview, &platformID, &categoryID, &p.Type, &tags,
		&p.Views, &p.Copies, &p.Rating, &p.RatingCount, &p.IsFeatured, &p.IsTrending, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
		&plID, &plName, &plDesc, &plIcon, &plColor, &plCount, &plCreated,
		&cID, &cName, &cDesc, &cIcon, &cColor, &cCount, &cCreated,
	)
	if err != nil {
		return nil, err
	}

	p.Tags = []string{}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return nil, fmt.Errorf("decode tags of prompt %s: %w", p.ID, err)
		}
	}

	if platformID.Valid {
		id := platformID.UUID
		p.PlatformID = &id
	}
	if categoryID.Valid {
		id := categoryID.UUID
		p.CategoryID = &id
	}
	if plID.Valid {
		p.Platform = &domain.Platform{
			ID:          plID.UUID,
			Name:        plName.String,
			Description: plDesc.String,
			Icon:        plIcon.String,
			Color:       plColor.String,
			PromptCount: int(plCount.Int64),
			CreatedAt:   plCreated.Time,
		}
	}
	if cID.Valid {
		p.Category = &domain.Category{
			ID:          cID.UUID,
			Name:        cName.String,
			Description: cDesc.String,
			Icon:        cIcon.String,
			Color:       cColor.String,
			PromptCount: int(cCount.Int64),
			CreatedAt:   cCreated.Time,
		}
	}
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
