package main

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/mintyhq/minty-api/internal/config"
	"github.com/mintyhq/minty-api/internal/platform/postgres"
)

// setupAppDatabase establishes a connection to the database and configures connection pools.
// When database.migrate_on_start is set, pending migrations are applied first.
// Returns the database handle if successful, or an error if the connection fails.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, sqlDB, err := postgres.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, sqlDB, "up", logger); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	return db, nil
}
