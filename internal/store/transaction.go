package store

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/mintyhq/minty-api/internal/platform/logger"
	"github.com/mintyhq/minty-api/internal/redact"
)

// TxFn is a function that executes within a database transaction.
// It receives the context and a transaction-bound handle, and returns an error if the operation fails.
// The transaction is committed if the function returns nil, or rolled back if it returns an error.
type TxFn func(ctx context.Context, tx *gorm.DB) error

// RunInTransaction executes the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// Otherwise, the transaction is committed.
// The function handles rollbacks in case of panic and logs appropriate information.
func RunInTransaction(ctx context.Context, db *gorm.DB, fn TxFn) error {
	log := logger.FromContext(ctx)

	if _, nested := db.Statement.ConnPool.(gorm.TxCommitter); nested {
		// already inside a transaction; gorm nests through a savepoint
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(ctx, tx)
		})
	}

	tx := db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		log.Error("failed to begin transaction",
			redact.ErrorAttr(err))
		return fmt.Errorf("%w: begin: %w", ErrTransactionFailed, err)
	}

	defer func() {
		if p := recover(); p != nil {
			if txErr := tx.Rollback().Error; txErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.String("error", txErr.Error()),
					slog.Any("panic", p))
			} else {
				log.Error("rolled back transaction after panic",
					slog.Any("panic", p))
			}
			// ALLOW-PANIC: Propagating caught panic from transaction
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rollbackErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf(
				"error rolling back transaction: %v (original error: %w)",
				rollbackErr,
				err,
			)
		}
		log.Debug("rolled back transaction due to error",
			redact.ErrorAttr(err))
		return err
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("failed to commit transaction",
			redact.ErrorAttr(err))
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}

	log.Debug("transaction committed successfully")
	return nil
}
