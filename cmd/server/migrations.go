package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mintyhq/minty-api/internal/config"
	"github.com/mintyhq/minty-api/internal/platform/postgres"
)

// handleMigrations executes a goose migration command against the configured
// database. It's called from run() when the -migrate flag is set.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	_, sqlDB, err := postgres.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
		}
	}()

	logger.Info("Executing migrations", "command", command)
	if err := postgres.Migrate(ctx, sqlDB, command, logger); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}
