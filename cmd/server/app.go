package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/promptnest/promptnest-api/internal/config"
	"github.com/promptnest/promptnest-api/internal/generation"
	"github.com/promptnest/promptnest-api/internal/platform/openrouter"
	"github.com/promptnest/promptnest-api/internal/platform/postgres"
	"github.com/promptnest/promptnest-api/internal/service"
	"github.com/promptnest/promptnest-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	generationStore store.GenerationStore
	catalogStore    store.CatalogStore
	analyticsStore  store.AnalyticsStore

	provider          generation.Provider
	generationService service.GenerationService
	catalogService    service.CatalogService
}

// newApplication wires stores, the generation provider and the services.
// A provider that cannot be configured does not stop the application; the
// generation endpoints report it instead.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.generationStore = postgres.NewPostgresGenerationStore(db, logger)
	app.catalogStore = postgres.NewPostgresCatalogStore(db, logger)
	app.analyticsStore = postgres.NewPostgresAnalyticsStore(db, logger)

	client, err := openrouter.NewClient(cfg.LLM, logger)
	var configErr *generation.ConfigurationError
	switch {
	case errors.As(err, &configErr):
		logger.Warn("prompt generation disabled", slog.String("reason", configErr.Error()))
		app.provider = generation.NewUnavailableProvider(configErr)
	case err != nil:
		return nil, fmt.Errorf("failed to initialize OpenRouter client: %w", err)
	default:
		app.provider = client
		logger.Info("OpenRouter client initialized", slog.String("model", cfg.LLM.ModelName))
	}

	app.generationService, err = service.NewGenerationService(app.provider, app.generationStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	app.catalogService, err = service.NewCatalogService(db, app.catalogStore, app.analyticsStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run seeds the catalog defaults and serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.catalogService.SeedDefaults(ctx); err != nil {
		app.logger.Warn("catalog seeding incomplete", slog.String("error", err.Error()))
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
