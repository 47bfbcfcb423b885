package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gracepath/gracepath-api/internal/domain"
	"github.com/gracepath/gracepath-api/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// classifyError maps low-level postgres errors onto the domain error taxonomy
// so callers can branch on sentinel errors instead of SQLSTATEs.
func classifyError(err error, msg string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeSerializationFailure, PgErrorCodeDeadlockDetected:
			return fmt.Errorf("%s: %w: %s", msg, domain.ErrPersistenceConflict, pgErr.Message)
		case PgErrorCodeUniqueViolation:
			return fmt.Errorf("%s: %w: %s", msg, domain.ErrPersistenceConflict, pgErr.Message)
		}
		return fmt.Errorf("%s: %w", msg, err)
	}

	// Connection-level failures surface as non-PgError errors.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w: %v", msg, domain.ErrStoreUnavailable, err)
	}

	return fmt.Errorf("%s: %w", msg, err)
}
