package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/kailas-cloud/moviesearch/internal/config"
	"github.com/kailas-cloud/moviesearch/internal/db/sqlite"
	logpkg "github.com/kailas-cloud/moviesearch/internal/logger"
)

// runInitDB creates the catalog tables and exits.
func runInitDB(ctx context.Context, out io.Writer) error {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	_, _ = fmt.Fprintln(out, "Initializing database...")

	store, err := sqlite.Open(ctx, cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.InitSchema(ctx); err != nil {
		return err //nolint:wrapcheck // already carries context
	}

	logger.Info("Schema ready", zap.String("path", cfg.Database.Path))
	_, _ = fmt.Fprintln(out, "Database initialized.")
	return nil
}
