package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/money_transfer_engine/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories react to.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
)

// classifyError maps driver errors onto the apperrors sentinels so that
// storage details never travel past the repository layer unwrapped.
func classifyError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %s: %w", apperrors.ErrTransient, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable:
			return fmt.Errorf("%w: %s", apperrors.ErrLockTimeout, op)
		case pgSerializationFailure, pgDeadlockDetected, pgQueryCanceled:
			return fmt.Errorf("%w: %s: %s", apperrors.ErrTransient, op, pgErr.Code)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s violates %s", apperrors.ErrDuplicate, op, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s references a missing account", apperrors.ErrAccountNotFound, op)
		case pgCheckViolation:
			return apperrors.NewAppError(500, fmt.Sprintf("failed to %s: check %s violated", op, pgErr.ConstraintName), err)
		}
	}
	return apperrors.NewAppError(500, "failed to "+op, err)
}
