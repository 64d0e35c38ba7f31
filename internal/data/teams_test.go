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

func TestTeamRepo_Teams(t *testing.T) {
	ctx := context.Background()
	repo := NewTeamRepo(store.NewMemory())

	_, err := repo.FindTeam(ctx, "core")
	assert.True(t, apperrors.IsNotFound(err))

	require.NoError(t, repo.PutTeam(ctx, domainauth.Team{Name: "core"}))

	team, err := repo.FindTeam(ctx, "core")
	require.NoError(t, err)
	assert.Equal(t, "core", team.Name)
}

func TestTeamRepo_Memberships(t *testing.T) {
	ctx := context.Background()
	repo := NewTeamRepo(store.NewMemory())

	require.NoError(t, repo.PutMember(ctx, domainauth.TeamMember{TeamName: "core", UserID: "u1", Type: domainauth.MemberTypeAdmin}))
	require.NoError(t, repo.PutMember(ctx, domainauth.TeamMember{TeamName: "data", UserID: "u1", Type: domainauth.MemberTypeUser}))
	require.NoError(t, repo.PutMember(ctx, domainauth.TeamMember{TeamName: "core", UserID: "u2", Type: domainauth.MemberTypeUser}))

	members, err := repo.TeamsForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "core", members[0].TeamName)
	assert.Equal(t, domainauth.MemberTypeAdmin, members[0].Type)
	assert.Equal(t, "data", members[1].TeamName)

	require.NoError(t, repo.DeleteMember(ctx, "core", "u1"))
	members, err = repo.TeamsForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "data", members[0].TeamName)
}
