package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(cause, ErrCodeUnavailable, "store put failed")

	assert.Equal(t, "store put failed: boom", err.Error())
	assert.Equal(t, cause, stderrors.Unwrap(err))

	bare := NotFound("user not found")
	assert.Equal(t, "user not found", bare.Error())
	assert.Nil(t, stderrors.Unwrap(bare))
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Unauthorized("user is not active"))

	assert.True(t, IsUnauthorized(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.True(t, stderrors.Is(wrapped, Unauthorized("")))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeMultiplicity, CodeOf(Multiplicityf("%d user records for email", 2)))
	assert.Equal(t, ErrCodeInternal, CodeOf(stderrors.New("plain")))
}

func TestMapDBError(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		require.NoError(t, MapDBError(nil))
	})

	t.Run("no rows becomes not found", func(t *testing.T) {
		err := MapDBError(fmt.Errorf("query: %w", pgx.ErrNoRows))
		assert.Equal(t, ErrCodeNotFound, CodeOf(err))
	})

	t.Run("unique violation becomes conflict", func(t *testing.T) {
		err := MapDBError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
		assert.Equal(t, ErrCodeConflict, CodeOf(err))
	})

	t.Run("connection failure becomes unavailable", func(t *testing.T) {
		err := MapDBError(&pgconn.PgError{Code: pgerrcode.ConnectionFailure})
		assert.Equal(t, ErrCodeUnavailable, CodeOf(err))
	})

	t.Run("context errors classified", func(t *testing.T) {
		assert.Equal(t, ErrCodeTimeout, CodeOf(MapDBError(context.DeadlineExceeded)))
		assert.Equal(t, ErrCodeCanceled, CodeOf(MapDBError(context.Canceled)))
	})

	t.Run("unknown errors returned unchanged", func(t *testing.T) {
		plain := stderrors.New("something else")
		assert.Equal(t, plain, MapDBError(plain))
	})
}
