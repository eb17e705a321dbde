package testdb

import (
	"fmt"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/platform/postgres"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// NewSQLite opens a private in-memory database for t and migrates every
// domain model into it. Foreign keys are enforced so cascade and set-null
// policies behave as they do in PostgreSQL.
//
// The pool holds a single connection, so the database lives exactly as long
// as the test and concurrent transactions are serialized.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on",
		unsafeName.ReplaceAllString(t.Name(), "_"))

	db, err := gorm.Open(sqlite.Open(dsn), postgres.GormConfig(slog.Default(), time.Second))
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Logf("close sqlite: %v", err)
		}
	})

	require.NoError(t, db.AutoMigrate(domain.Models()...), "migrate sqlite")
	require.NoError(t, db.AutoMigrate(domain.HistoryModels()...), "migrate sqlite history")
	return db
}
