package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mintyhq/minty-api/internal/config"
	"github.com/mintyhq/minty-api/internal/platform/logger"
)

// Open establishes the pgx connection pool and wraps it in a gorm handle.
// The *sql.DB is returned as well because migrations run on it directly.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, *sql.DB, error) {
	sqlDB, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), GormConfig(log, cfg.SlowQueryThreshold))
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	log.Info("database connection established",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns))
	return db, sqlDB, nil
}

// GormConfig is the gorm configuration shared by production and tests:
// driver errors are translated into gorm's portable errors, timestamps are
// UTC, and statements are traced through slog.
func GormConfig(log *slog.Logger, slowThreshold time.Duration) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.NewGorm(log, slowThreshold),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}
