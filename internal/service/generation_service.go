package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/promptnest/promptnest-api/internal/domain"
	"github.com/promptnest/promptnest-api/internal/generation"
	"github.com/promptnest/promptnest-api/internal/platform/logger"
	"github.com/promptnest/promptnest-api/internal/redact"
	"github.com/promptnest/promptnest-api/internal/store"
)

// MaxRecentGenerations caps the limit accepted by RecentGenerations.
const MaxRecentGenerations = 100

// GenerationResult is the outcome of a successful generation.
type GenerationResult struct {
	Success bool                     `json:"success"`
	Prompts []domain.GeneratedPrompt `json:"prompts"`
	Input   string                   `json:"input"`
}

// GenerationService turns user input into platform-tailored prompts.
type GenerationService interface {
	// Generate asks the provider for one prompt per generated platform,
	// persists the result as a generation record and returns it.
	// An empty sessionID is replaced by a server-generated session token.
	// Any provider, parse or persistence failure is returned as a
	// *generation.GenerationError and nothing is persisted.
	Generate(ctx context.Context, userInput, sessionID string) (*GenerationResult, error)

	// GenerateSingle asks the provider for one prompt for platform.
	// Generated platform names are matched case-insensitively; other names are
	// passed through and get the ChatGPT display style. The result is not persisted.
	GenerateSingle(ctx context.Context, userInput, platform string) (*domain.GeneratedPrompt, error)

	// RecentGenerations returns up to limit generation records, newest first.
	RecentGenerations(ctx context.Context, limit int) ([]*domain.GenerationRecord, error)
}

// GenerationOption configures a GenerationService.
type GenerationOption func(*generationServiceImpl)

// WithClock sets the time source used for session tokens.
func WithClock(now func() time.Time) GenerationOption {
	return func(s *generationServiceImpl) {
		s.now = now
	}
}

type generationServiceImpl struct {
	provider generation.Provider
	records  store.GenerationStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewGenerationService creates a new GenerationService.
// It returns an error if provider or records is nil.
func NewGenerationService(
	provider generation.Provider,
	records store.GenerationStore,
	logger *slog.Logger,
	opts ...GenerationOption,
) (GenerationService, error) {
	if provider == nil {
		return nil, errors.New("provider cannot be nil")
	}
	if records == nil {
		return nil, errors.New("generation store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &generationServiceImpl{
		provider: provider,
		records:  records,
		logger:   logger.With("component", "generation_service"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate implements GenerationService.
func (s *generationServiceImpl) Generate(
	ctx context.Context,
	userInput, sessionID string,
) (*GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	input, err := validateUserInput(userInput)
	if err != nil {
		return nil, err
	}

	if sessionID == "" {
		sessionID = fmt.Sprintf("session_%d", s.now().UnixMilli())
	}

	raw, err := s.provider.Send(ctx, input)
	if err != nil {
		return nil, s.fail(log, "provider request failed", sessionID, err)
	}

	prompts, err := generation.Parse(raw)
	if err != nil {
		return nil, s.fail(log, "provider output rejected", sessionID, err)
	}
	prompts = generation.AssignPlatforms(prompts)

	record, err := domain.NewGenerationRecord(input, prompts, sessionID)
	if err != nil {
		return nil, s.fail(log, "failed to build generation record", sessionID, err)
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, s.fail(log, "failed to save generation record", sessionID, err)
	}

	log.Info("generated prompts",
		slog.String("generation_id", record.ID.String()),
		slog.String("session_id", sessionID),
		slog.Int("input_length", utf8.RuneCountInString(input)))

	return &GenerationResult{
		Success: true,
		Prompts: record.GeneratedContent,
		Input:   input,
	}, nil
}

// GenerateSingle implements GenerationService.
func (s *generationServiceImpl) GenerateSingle(
	ctx context.Context,
	userInput, platform string,
) (*domain.GeneratedPrompt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	input, err := validateUserInput(userInput)
	if err != nil {
		return nil, err
	}

	canonical, ok := domain.CanonicalPlatform(platform)
	if !ok {
		canonical = strings.TrimSpace(platform)
	}
	if canonical == "" {
		return nil, domain.NewValidationError("platform", "cannot be empty", nil)
	}

	raw, err := s.provider.SendSingle(ctx, input, canonical)
	if err != nil {
		return nil, s.fail(log, "provider request failed", "", err)
	}

	prompt, err := generation.ParseSingle(raw, canonical)
	if err != nil {
		return nil, s.fail(log, "provider output rejected", "", err)
	}

	log.Info("generated single prompt", slog.String("platform", canonical))
	return prompt, nil
}

// RecentGenerations implements GenerationService.
func (s *generationServiceImpl) RecentGenerations(
	ctx context.Context,
	limit int,
) ([]*domain.GenerationRecord, error) {
	if limit <= 0 {
		limit = store.DefaultRecentGenerationsLimit
	}
	if limit > MaxRecentGenerations {
		limit = MaxRecentGenerations
	}

	records, err := s.records.ListRecent(ctx, limit)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list recent generations",
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to list recent generations: %w", err)
	}
	return records, nil
}

// fail logs err with its redacted cause and wraps it as a GenerationError.
func (s *generationServiceImpl) fail(log *slog.Logger, msg, sessionID string, err error) error {
	attrs := []any{slog.String("error", redact.Error(err))}
	if sessionID != "" {
		attrs = append(attrs, slog.String("session_id", sessionID))
	}

	var providerErr *generation.ProviderError
	if errors.As(err, &providerErr) && providerErr.StatusCode != 0 {
		attrs = append(attrs, slog.Int("provider_status", providerErr.StatusCode))
	}

	log.Error(msg, attrs...)
	return &generation.GenerationError{Err: err}
}

// validateUserInput trims userInput and checks it is non-empty and no longer
// than domain.MaxUserInputLength characters.
func validateUserInput(userInput string) (string, error) {
	input := strings.TrimSpace(userInput)
	if input == "" {
		return "", domain.NewValidationError("prompt", "cannot be empty", domain.ErrEmptyUserInput)
	}
	if utf8.RuneCountInString(input) > domain.MaxUserInputLength {
		return "", domain.NewValidationError(
			"prompt",
			fmt.Sprintf("must be at most %d characters", domain.MaxUserInputLength),
			domain.ErrUserInputTooLong,
		)
	}
	return input, nil
}
