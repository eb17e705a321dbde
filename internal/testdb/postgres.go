//go:build integration

package testdb

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mintyhq/minty-api/internal/config"
	"github.com/mintyhq/minty-api/internal/platform/postgres"
)

// TestTimeout bounds connection and migration setup.
const TestTimeout = 30 * time.Second

// DatabaseURL returns the integration database URL, preferring
// MINTY_TEST_DB_URL over DATABASE_URL.
func DatabaseURL() string {
	if url := os.Getenv("MINTY_TEST_DB_URL"); url != "" {
		return url
	}
	return os.Getenv("DATABASE_URL")
}

// OpenPostgres connects to the integration database and applies every
// pending migration. The test is skipped when no database is configured.
func OpenPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		t.Skip("MINTY_TEST_DB_URL or DATABASE_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	cfg := config.DatabaseConfig{
		URL:                url,
		MaxOpenConns:       10,
		MaxIdleConns:       5,
		ConnMaxLifetime:    5 * time.Minute,
		SlowQueryThreshold: time.Second,
	}
	db, sqlDB, err := postgres.Open(ctx, cfg, slog.Default())
	require.NoError(t, err, "connect to integration database")
	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Logf("close database: %v", err)
		}
	})

	require.NoError(t, postgres.Migrate(ctx, sqlDB, "up", slog.Default()), "apply migrations")
	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// sharing the integration database do not see each other's rows.
func WithTx(t *testing.T, db *gorm.DB, fn func(t *testing.T, tx *gorm.DB)) {
	t.Helper()

	tx := db.Begin()
	require.NoError(t, tx.Error, "begin transaction")
	defer func() {
		if err := tx.Rollback().Error; err != nil {
			t.Logf("rollback: %v", err)
		}
	}()

	fn(t, tx)
}
