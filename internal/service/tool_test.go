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

func newToolFixture(t *testing.T) (*ToolService, *data.ToolRepo) {
	t.Helper()
	mem := store.NewMemory()
	repo := data.NewToolRepo(mem)
	svc, err := NewToolService(ToolServiceOptions{Tools: repo})
	require.NoError(t, err)
	return svc, repo
}

func TestToolService_CreateTool(t *testing.T) {
	ctx := context.Background()
	svc, repo := newToolFixture(t)

	tool, err := svc.CreateTool(ctx, plainUser(), CreateToolInput{
		Type:    domainauth.ToolTypeJupyter,
		Version: "1.2.3",
		CPU:     "2",
		Memory:  "4Gi",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9A-Z]{8}$`, tool.ID)
	assert.Equal(t, "u1", tool.UserID)
	assert.Equal(t, ToolStatusCreating, tool.Status)

	stored, err := repo.FindTool(ctx, "u1", tool.ID)
	require.NoError(t, err)
	assert.Equal(t, tool, stored)

	byType, err := repo.ToolsByType(ctx, domainauth.ToolTypeJupyter)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, tool.ID, byType[0].ID)
}

func TestToolService_CreateToolValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newToolFixture(t)

	_, err := svc.CreateTool(ctx, plainUser(), CreateToolInput{Type: "Emacs", Version: "1"})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	_, err = svc.CreateTool(ctx, plainUser(), CreateToolInput{Type: domainauth.ToolTypeVSCode, Version: " "})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}

func TestToolService_Get(t *testing.T) {
	ctx := context.Background()
	svc, _ := newToolFixture(t)

	tool, err := svc.CreateTool(ctx, plainUser(), CreateToolInput{Type: domainauth.ToolTypeRStudio, Version: "4.4.0"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, plainUser(), tool.ID)
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	// Tools are scoped to their owner.
	other := domainauth.Context{UserID: "u2", Role: domainauth.RoleUser}
	_, err = svc.Get(ctx, other, tool.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
