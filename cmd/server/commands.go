package main

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/promptnest/promptnest-api/internal/config"
	"github.com/promptnest/promptnest-api/internal/platform/logger"
	"github.com/promptnest/promptnest-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "promptnest-api",
		Short: "PromptNest prompt library and AI prompt generation API",
		Long: `PromptNest serves a curated library of AI prompts and generates
prompts tailored to ChatGPT, Midjourney, Claude and Gemini through OpenRouter.

Configuration is read from ./config.yaml and PROMPTNEST_* environment
variables. PORT, DATABASE_URL and OPENROUTER_API_KEY are honoured as well.

Running without a subcommand starts the server.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

The server shuts down gracefully on SIGINT or SIGTERM. When no OpenRouter
API key is configured the catalog is still served and the generation
endpoints answer 503.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, log, err := loadConfigAndLogger()
			if err != nil {
				return err
			}

			db, err := openDatabase(ctx, cfg.Database, log)
			if err != nil {
				return err
			}

			if migrate {
				if err := postgres.Migrate(ctx, db, "up", log); err != nil {
					_ = db.Close()
					return err
				}
			}

			app, err := newApplication(cfg, log, db)
			if err != nil {
				_ = db.Close()
				return err
			}
			return app.Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending database migrations before serving")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <" + strings.Join(postgres.MigrationCommands, "|") + "> [args...]",
		Short: "Manage the database schema",
		Long: `Run a migration command against the configured database using the
migrations embedded in the binary.

Examples:
  promptnest-api migrate up
  promptnest-api migrate status
  promptnest-api migrate down`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := args[0]
			if !slices.Contains(postgres.MigrationCommands, command) {
				return fmt.Errorf("unknown migration command %q, expected one of %v", command, postgres.MigrationCommands)
			}

			ctx := cmd.Context()
			cfg, log, err := loadConfigAndLogger()
			if err != nil {
				return err
			}

			db, err := openDatabase(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Error("failed to close database", slog.String("error", err.Error()))
				}
			}()

			return postgres.Migrate(ctx, db, command, log, args[1:]...)
		},
	}
}

// loadConfigAndLogger loads the configuration and installs the application logger.
func loadConfigAndLogger() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("model", cfg.LLM.ModelName),
		slog.Bool("openrouter_key_present", strings.TrimSpace(cfg.LLM.OpenRouterAPIKey) != ""))
	return cfg, log, nil
}
