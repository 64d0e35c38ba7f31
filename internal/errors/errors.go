package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a lookup by primary key or unique index
	// query yielded zero results.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeMultiplicity indicates an index query expected to be unique
	// returned more than one item. Treated like NotFound at the API
	// boundary, but logged distinctly: it is a data-integrity anomaly and
	// must never be resolved by silently picking one result.
	ErrCodeMultiplicity ErrorCode = "multiplicity_violation"
	// ErrCodeUnauthorized indicates an inactive user, a code mismatch, or a
	// session/user resolution failure. Surfaced to the caller as a rejected
	// request, never as an internal fault.
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeUnavailable indicates a transient failure of the backing store.
	ErrCodeUnavailable ErrorCode = "store_unavailable"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeConflict indicates a conflict with existing data.
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches AppErrors by code so sentinel comparisons like
// errors.Is(err, errors.NotFound("")) work across wrapped chains.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if !errors.As(target, &appErr) {
		return false
	}
	return e.Code == appErr.Code
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Multiplicity creates a new MultiplicityViolation error.
func Multiplicity(message string) *AppError {
	return &AppError{Code: ErrCodeMultiplicity, Message: message}
}

// Multiplicityf creates a new MultiplicityViolation error with formatted message.
func Multiplicityf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeMultiplicity, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized creates a new Unauthorized error.
func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message}
}

// Unauthorizedf creates a new Unauthorized error with formatted message.
func Unauthorizedf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Unavailable creates a new StoreUnavailable error.
func Unavailable(message string) *AppError {
	return &AppError{Code: ErrCodeUnavailable, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// CodeOf returns the ErrorCode of err if it is (or wraps) an AppError,
// and ErrCodeInternal otherwise.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsNotFound reports whether err is (or wraps) a NotFound AppError.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// IsUnauthorized reports whether err is (or wraps) an Unauthorized AppError.
func IsUnauthorized(err error) bool {
	return CodeOf(err) == ErrCodeUnauthorized
}

// IsMultiplicity reports whether err is (or wraps) a MultiplicityViolation AppError.
func IsMultiplicity(err error) bool {
	return CodeOf(err) == ErrCodeMultiplicity
}
