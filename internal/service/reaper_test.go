package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/datalabs-io/platform-api/config"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
	"github.com/datalabs-io/platform-api/internal/mocks"
)

func testReaperConfig() config.ReaperConfig {
	return config.ReaperConfig{Interval: time.Minute, BatchSize: 100}
}

func TestReaperService_SweepDrainsBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reaper := mocks.NewMockExpiryReaper(ctrl)
	// A full batch means more work may remain; a short batch ends the sweep.
	gomock.InOrder(
		reaper.EXPECT().ReapExpired(gomock.Any(), 100).Return(int64(100), nil),
		reaper.EXPECT().ReapExpired(gomock.Any(), 100).Return(int64(37), nil),
	)

	svc, err := NewReaperService(ReaperServiceOptions{Reaper: reaper, Config: testReaperConfig()})
	require.NoError(t, err)

	require.NoError(t, svc.sweep(context.Background()))
}

func TestReaperService_SweepPropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reaper := mocks.NewMockExpiryReaper(ctrl)
	reaper.EXPECT().
		ReapExpired(gomock.Any(), 100).
		Return(int64(0), apperrors.Unavailable("store down"))

	svc, err := NewReaperService(ReaperServiceOptions{Reaper: reaper, Config: testReaperConfig()})
	require.NoError(t, err)

	err = svc.sweep(context.Background())
	assert.Error(t, err)
}

func TestReaperService_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reaper := mocks.NewMockExpiryReaper(ctrl)
	reaper.EXPECT().ReapExpired(gomock.Any(), 100).Return(int64(0), nil).AnyTimes()

	svc, err := NewReaperService(ReaperServiceOptions{Reaper: reaper, Config: testReaperConfig()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	cancel()
	select {
	case runErr := <-done:
		assert.NoError(t, runErr)
	case <-time.After(2 * time.Second):
		t.Fatal("reaper did not stop after cancel")
	}
}

func TestReaperService_RequiresReaper(t *testing.T) {
	_, err := NewReaperService(ReaperServiceOptions{Config: testReaperConfig()})
	assert.Error(t, err)
}
