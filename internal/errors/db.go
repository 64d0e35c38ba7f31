package errors

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps database errors to AppError instances:
//   - pgx.ErrNoRows → NotFound
//   - unique constraint violations → Conflict
//   - connection-level failures → Unavailable
//   - context timeouts/cancellations → Timeout/Canceled
//
// Unrecognized errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Code: ErrCodeTimeout, Message: "store request timed out", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{Code: ErrCodeCanceled, Message: "store request was canceled", Cause: err}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{Code: ErrCodeNotFound, Message: "item not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return &AppError{Code: ErrCodeUnavailable, Message: "store unreachable", Cause: err}
	}

	return err
}

// mapPgError maps PostgreSQL-specific errors to AppError instances.
func mapPgError(pgErr *pgconn.PgError) error {
	switch {
	case pgErr.Code == pgerrcode.UniqueViolation:
		return &AppError{Code: ErrCodeConflict, Message: "item already exists", Cause: pgErr}
	case pgerrcode.IsConnectionException(pgErr.Code):
		return &AppError{Code: ErrCodeUnavailable, Message: "store connection failed", Cause: pgErr}
	case pgerrcode.IsInsufficientResources(pgErr.Code):
		return &AppError{Code: ErrCodeUnavailable, Message: "store out of resources", Cause: pgErr}
	default:
		return &AppError{Code: ErrCodeInternal, Message: "store operation failed", Cause: pgErr}
	}
}
