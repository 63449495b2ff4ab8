package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hitpulse/internal/adapter/memory"
	"hitpulse/internal/core/domain"
	"hitpulse/internal/core/port/mocks"
)

func seedOrphans(t *testing.T, repo *memory.CampaignRepository) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	longAgo := now.Add(-2 * time.Hour)
	recent := now.Add(-time.Minute)

	for _, c := range []domain.Campaign{
		// window closed an hour ago
		{ID: "expired", TargetHits: 100, Duration: 1, StartTime: &longAgo},
		// already delivered everything
		{ID: "done", TargetHits: 5, CurrentHits: 5, Duration: 1, StartTime: &recent},
		// 59 minutes of window left
		{ID: "live", TargetHits: 100000, Duration: 1, StartTime: &recent},
		// active without a start time: restarted from now
		{ID: "unstamped", TargetHits: 100000, Duration: 1},
		// not orphaned at all
		{ID: "idle", TargetHits: 10, Duration: 1},
	} {
		c.Website = "example.com"
		c.HitType = domain.HitTypePageView
		c.IsActive = c.ID != "idle"
		c.CreatedAt = now
		require.NoError(t, repo.CreateCampaign(ctx, &c))
	}
}

func TestParseReconcileMode(t *testing.T) {
	for in, want := range map[string]ReconcileMode{"resume": ReconcileResume, " STOP ": ReconcileStop, "off": ReconcileOff} {
		got, err := ParseReconcileMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseReconcileMode("restart")
	assert.Error(t, err)
}

func TestReconcileResume(t *testing.T) {
	repo := memory.NewCampaignRepository()
	seedOrphans(t, repo)
	s := newScheduler(t, repo, &countingExecutor{})

	report, err := s.Reconcile(context.Background(), ReconcileResume, 2)
	require.NoError(t, err)
	assert.Equal(t, ReconcileReport{Resumed: 2, Deactivated: 2}, report)

	assert.False(t, load(t, repo, "expired").IsActive)
	assert.False(t, load(t, repo, "done").IsActive)
	assert.True(t, s.Running("live"))
	assert.True(t, s.Running("unstamped"))
	assert.False(t, s.Running("idle"))
	assert.NotNil(t, load(t, repo, "unstamped").StartTime)

	// A second pass finds nothing new to do.
	report, err = s.Reconcile(context.Background(), ReconcileResume, 2)
	require.NoError(t, err)
	assert.Equal(t, ReconcileReport{}, report)
	assert.Equal(t, 2, s.Len())
}

func TestReconcileStop(t *testing.T) {
	repo := memory.NewCampaignRepository()
	seedOrphans(t, repo)
	s := newScheduler(t, repo, &countingExecutor{})

	report, err := s.Reconcile(context.Background(), ReconcileStop, 4)
	require.NoError(t, err)
	assert.Equal(t, ReconcileReport{Deactivated: 4}, report)
	assert.Zero(t, s.Len())

	active, err := repo.ListActiveCampaigns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestReconcileOffTouchesNothing(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	s := newScheduler(t, repo, &countingExecutor{})

	report, err := s.Reconcile(context.Background(), ReconcileOff, 1)
	require.NoError(t, err)
	assert.Equal(t, ReconcileReport{}, report)
}

func TestReconcilePropagatesListError(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().ListActiveCampaigns(mock.Anything).Return(nil, errors.New("db down"))
	s := newScheduler(t, repo, &countingExecutor{})

	_, err := s.Reconcile(context.Background(), ReconcileResume, 1)
	assert.Error(t, err)
}
