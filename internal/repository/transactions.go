package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	storeerrors "focal/internal/infrastructure/errors"
	"focal/internal/infrastructure/logging"
)

// WithTransaction executes a function within a database transaction with retry logic
func (r *SQLiteRepository) WithTransaction(ctx context.Context, fn func(repo UsageRepository) error) error {
	// Nested calls join the enclosing transaction
	if r.inTx {
		return fn(r)
	}

	start := time.Now()

	err := storeerrors.WithRetry(ctx, r.retryConfig, func() error {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			storeErr := storeerrors.NewStoreError("WithTransaction.Begin", err, r.classifyError(err))
			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error beginning transaction", "error", err)
			} else {
				logging.LogError(r.logger, storeErr, "WithTransaction.Begin", nil)
			}
			return storeErr
		}

		var originalErr error
		var committed bool
		defer func() {
			if !committed && tx != nil {
				if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
					r.logger.Debug("Failed to rollback transaction",
						"rollback_error", rollbackErr,
						"original_error", originalErr)
				}
			}
		}()

		// Repository instance bound to the transaction
		txRepo := &SQLiteRepository{
			db:          r.db,
			queries:     r.queries.WithTx(tx),
			dbService:   r.dbService,
			retryConfig: r.retryConfig,
			logger:      r.logger,
			inTx:        true,
		}

		if err := fn(txRepo); err != nil {
			// The function should return proper store errors, don't wrap it
			originalErr = err
			r.logger.Debug("Transaction function failed", "error", err)
			return err
		}

		if err := tx.Commit(); err != nil {
			originalErr = err
			storeErr := storeerrors.NewStoreError("WithTransaction.Commit", err, r.classifyError(err))
			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error committing transaction", "error", err)
			} else {
				logging.LogError(r.logger, storeErr, "WithTransaction.Commit", nil)
			}
			return storeErr
		}
		committed = true

		return nil
	})

	if err == nil {
		logging.LogOperation(r.logger, "WithTransaction", time.Since(start), nil)
	}

	return err
}
