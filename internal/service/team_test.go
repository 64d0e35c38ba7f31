package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalabs-io/platform-api/internal/data"
	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
	"github.com/datalabs-io/platform-api/internal/store"
)

func superAdmin() domainauth.Context {
	return domainauth.Context{UserID: "admin", Email: "admin@x.com", Role: domainauth.RoleSuperAdmin}
}

func plainUser() domainauth.Context {
	return domainauth.Context{UserID: "u1", Email: "a@x.com", Role: domainauth.RoleUser}
}

func newTeamFixture(t *testing.T) (*TeamService, *data.UserRepo) {
	t.Helper()
	mem := store.NewMemory()
	users := data.NewUserRepo(mem)
	svc, err := NewTeamService(TeamServiceOptions{
		Teams: data.NewTeamRepo(mem),
		Users: users,
	})
	require.NoError(t, err)
	return svc, users
}

func TestTeamService_CreateTeam(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTeamFixture(t)

	team, err := svc.CreateTeam(ctx, superAdmin(), "core")
	require.NoError(t, err)
	assert.Equal(t, "core", team.Name)

	_, err = svc.CreateTeam(ctx, plainUser(), "rogue")
	assert.True(t, apperrors.IsUnauthorized(err))

	_, err = svc.CreateTeam(ctx, superAdmin(), "   ")
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}

func TestTeamService_AddMember(t *testing.T) {
	ctx := context.Background()
	svc, users := newTeamFixture(t)

	require.NoError(t, users.Put(ctx, domainauth.User{ID: "u1", Email: "a@x.com", Role: domainauth.RoleUser, Status: domainauth.StatusActive}))
	_, err := svc.CreateTeam(ctx, superAdmin(), "core")
	require.NoError(t, err)

	member, err := svc.AddMember(ctx, superAdmin(), "core", "a@x.com", domainauth.MemberTypeMaintain)
	require.NoError(t, err)
	assert.Equal(t, domainauth.TeamMember{TeamName: "core", UserID: "u1", Type: domainauth.MemberTypeMaintain}, member)

	memberships, err := svc.MembershipsFor(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, "core", memberships[0].TeamName)
}

func TestTeamService_AddMemberRefusals(t *testing.T) {
	ctx := context.Background()

	t.Run("requires SuperAdmin", func(t *testing.T) {
		svc, _ := newTeamFixture(t)
		_, err := svc.AddMember(ctx, plainUser(), "core", "a@x.com", domainauth.MemberTypeUser)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("invalid member type", func(t *testing.T) {
		svc, _ := newTeamFixture(t)
		_, err := svc.AddMember(ctx, superAdmin(), "core", "a@x.com", domainauth.MemberType("Owner"))
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
	})

	t.Run("unknown team", func(t *testing.T) {
		svc, users := newTeamFixture(t)
		require.NoError(t, users.Put(ctx, domainauth.User{ID: "u1", Email: "a@x.com", Status: domainauth.StatusActive}))
		_, err := svc.AddMember(ctx, superAdmin(), "ghost", "a@x.com", domainauth.MemberTypeUser)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("unknown member email", func(t *testing.T) {
		svc, _ := newTeamFixture(t)
		_, err := svc.CreateTeam(ctx, superAdmin(), "core")
		require.NoError(t, err)
		_, err = svc.AddMember(ctx, superAdmin(), "core", "ghost@x.com", domainauth.MemberTypeUser)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
