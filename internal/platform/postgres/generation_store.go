package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/promptnest/promptnest-api/internal/domain"
	"github.com/promptnest/promptnest-api/internal/platform/logger"
	"github.com/promptnest/promptnest-api/internal/store"
)

// PostgresGenerationStore implements store.GenerationStore on the
// generated_prompts table. Generated content is stored as a JSONB snapshot.
type PostgresGenerationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.GenerationStore = (*PostgresGenerationStore)(nil)

// NewPostgresGenerationStore creates a PostgresGenerationStore on db.
// If logger is nil, a default logger will be used.
func NewPostgresGenerationStore(db store.DBTX, logger *slog.Logger) *PostgresGenerationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresGenerationStore{
		db:     db,
		logger: logger.With(slog.String("component", "generation_store")),
	}
}

// Create implements store.GenerationStore.Create.
func (s *PostgresGenerationStore) Create(ctx context.Context, record *domain.GenerationRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("generation record validation failed during create",
			slog.String("error", err.Error()),
			slog.String("generation_id", record.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	content, err := json.Marshal(record.GeneratedContent)
	if err != nil {
		return store.NewStoreError("generation", "create", "failed to encode generated content", err)
	}

	query := `
		INSERT INTO generated_prompts (id, user_input, generated_content, session_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(ctx, query,
		record.ID,
		record.UserInput,
		string(content),
		record.SessionID,
		record.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create generation record",
			slog.String("error", err.Error()),
			slog.String("generation_id", record.ID.String()))
		return store.NewStoreError("generation", "create", "insert failed", MapError(err))
	}

	log.Info("generation record created",
		slog.String("generation_id", record.ID.String()),
		slog.String("session_id", record.SessionID),
		slog.Int("prompt_count", len(record.GeneratedContent)))
	return nil
}

// ListRecent implements store.GenerationStore.ListRecent.
func (s *PostgresGenerationStore) ListRecent(ctx context.Context, limit int) ([]*domain.GenerationRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = store.DefaultRecentGenerationsLimit
	}

	query := `
		SELECT id, user_input, generated_content, session_id, created_at
		FROM generated_prompts
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		log.Error("failed to query recent generations", slog.String("error", err.Error()))
		return nil, store.NewStoreError("generation", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	records := []*domain.GenerationRecord{}
	for rows.Next() {
		var (
			record  domain.GenerationRecord
			content []byte
		)
		if err := rows.Scan(&record.ID, &record.UserInput, &content, &record.SessionID, &record.CreatedAt); err != nil {
			return nil, store.NewStoreError("generation", "list", "scan failed", err)
		}
		if err := json.Unmarshal(content, &record.GeneratedContent); err != nil {
			log.Error("stored generated content is not valid JSON",
				slog.String("generation_id", record.ID.String()),
				slog.String("error", err.Error()))
			return nil, store.NewStoreError("generation", "list", "failed to decode generated content", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("generation", "list", "row iteration failed", err)
	}

	log.Debug("listed recent generations", slog.Int("count", len(records)), slog.Int("limit", limit))
	return records, nil
}
