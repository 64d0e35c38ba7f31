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

func TestToolRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewToolRepo(store.NewMemory())

	tool := domainauth.Tool{
		ID:      "AB12CD34",
		UserID:  "u1",
		Type:    domainauth.ToolTypeJupyter,
		Version: "1.2.3",
		CPU:     "2",
		Memory:  "4Gi",
		Status:  "creating",
	}
	require.NoError(t, repo.PutTool(ctx, tool))

	got, err := repo.FindTool(ctx, "u1", "AB12CD34")
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	_, err = repo.FindTool(ctx, "u1", "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestToolRepo_ToolsByType(t *testing.T) {
	ctx := context.Background()
	repo := NewToolRepo(store.NewMemory())

	put := func(id, userID string, tt domainauth.ToolType, version string) {
		t.Helper()
		require.NoError(t, repo.PutTool(ctx, domainauth.Tool{
			ID: id, UserID: userID, Type: tt, Version: version, Status: "creating",
		}))
	}
	put("T1AAAAAA", "u1", domainauth.ToolTypeJupyter, "2.0.0")
	put("T2BBBBBB", "u2", domainauth.ToolTypeJupyter, "1.0.0")
	put("T3CCCCCC", "u1", domainauth.ToolTypeRStudio, "4.4.0")

	tools, err := repo.ToolsByType(ctx, domainauth.ToolTypeJupyter)
	require.NoError(t, err)
	require.Len(t, tools, 2)
	// Ordered by version sort value.
	assert.Equal(t, "1.0.0", tools[0].Version)
	assert.Equal(t, "2.0.0", tools[1].Version)

	tools, err = repo.ToolsByType(ctx, domainauth.ToolTypeVSCode)
	require.NoError(t, err)
	assert.Empty(t, tools)
}
