package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/promptnest/promptnest-api/internal/domain"
	"github.com/promptnest/promptnest-api/internal/platform/logger"
	"github.com/promptnest/promptnest-api/internal/store"
)

// PostgresAnalyticsStore implements store.AnalyticsStore on the
// prompt_analytics table and the prompt counters.
type PostgresAnalyticsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.AnalyticsStore = (*PostgresAnalyticsStore)(nil)

// NewPostgresAnalyticsStore creates a PostgresAnalyticsStore on db.
// If logger is nil, a default logger will be used.
func NewPostgresAnalyticsStore(db store.DBTX, logger *slog.Logger) *PostgresAnalyticsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAnalyticsStore{
		db:     db,
		logger: logger.With(slog.String("component", "analytics_store")),
	}
}

// WithTx implements store.AnalyticsStore.WithTx.
func (s *PostgresAnalyticsStore) WithTx(tx *sql.Tx) store.AnalyticsStore {
	return &PostgresAnalyticsStore{db: tx, logger: s.logger}
}

// RecordAction implements store.AnalyticsStore.RecordAction.
func (s *PostgresAnalyticsStore) RecordAction(ctx context.Context, action *domain.PromptAction) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := action.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO prompt_analytics (id, prompt_id, action, user_agent, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		action.ID,
		action.PromptID,
		string(action.Action),
		nullString(action.UserAgent),
		nullString(action.IPAddress),
		action.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("analytics action for unknown prompt",
				slog.String("prompt_id", action.PromptID.String()))
			return store.ErrPromptNotFound
		}
		log.Error("failed to record prompt action",
			slog.String("error", err.Error()),
			slog.String("prompt_id", action.PromptID.String()))
		return store.NewStoreError("prompt_action", "create", "insert failed", MapError(err))
	}

	log.Debug("prompt action recorded",
		slog.String("prompt_id", action.PromptID.String()),
		slog.String("action", string(action.Action)))
	return nil
}

// IncrementPromptStats implements store.AnalyticsStore.IncrementPromptStats.
func (s *PostgresAnalyticsStore) IncrementPromptStats(ctx context.Context, promptID uuid.UUID, views, copies int) error {
	query := `
		UPDATE prompts
		SET views = views + $2, copies = copies + $3, updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, promptID, views, copies)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update prompt stats",
			slog.String("error", err.Error()),
			slog.String("prompt_id", promptID.String()))
		return store.NewStoreError("prompt", "update", "stats update failed", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrPromptNotFound)
}
