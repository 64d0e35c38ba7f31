package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
	"github.com/datalabs-io/platform-api/internal/store"
)

func TestUserRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo(store.NewMemory())

	user := domainauth.User{
		ID:     "u1",
		Email:  "a@x.com",
		Role:   domainauth.RoleAdmin,
		Status: domainauth.StatusActive,
	}
	require.NoError(t, repo.Put(ctx, user))

	got, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	got, err = repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo(store.NewMemory())

	_, err := repo.FindByEmail(ctx, "nobody@x.com")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = repo.FindByID(ctx, "nobody")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserRepo_MultiplicityViolation(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	repo := NewUserRepo(mem)

	// Two distinct users sharing an email is a data-integrity anomaly the
	// repo must surface, never resolve by picking one.
	require.NoError(t, repo.Put(ctx, domainauth.User{ID: "u1", Email: "dup@x.com", Role: domainauth.RoleUser, Status: domainauth.StatusActive}))
	require.NoError(t, repo.Put(ctx, domainauth.User{ID: "u2", Email: "dup@x.com", Role: domainauth.RoleUser, Status: domainauth.StatusActive}))

	_, err := repo.FindByEmail(ctx, "dup@x.com")
	assert.True(t, apperrors.IsMultiplicity(err))
}
