package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hitpulse/internal/core/domain"
)

func TestCampaignRepositoryMergeUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewCampaignRepository()

	require.NoError(t, repo.CreateCampaign(ctx, &domain.Campaign{
		ID: "c1", UserID: "u1", Website: "example.com", TargetHits: 10,
		Duration: 1, HitType: domain.HitTypeClick, CreatedAt: time.Now(),
	}))

	now := time.Now()
	updated, err := repo.UpdateCampaign(ctx, "c1", domain.CampaignPatch{
		IsActive:  domain.Ptr(true),
		StartTime: &now,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.IsActive)
	assert.Equal(t, "example.com", updated.Website)
	assert.Equal(t, 10, updated.TargetHits)

	updated, err = repo.UpdateCampaign(ctx, "c1", domain.CampaignPatch{CurrentHits: domain.Ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.CurrentHits)
	assert.True(t, updated.IsActive, "unset fields must be preserved")

	updated, err = repo.UpdateCampaign(ctx, "c1", domain.CampaignPatch{CurrentHits: domain.Ptr(50)})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.CurrentHits, "hits are clamped to the target")

	missing, err := repo.UpdateCampaign(ctx, "nope", domain.CampaignPatch{IsActive: domain.Ptr(true)})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCampaignRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewCampaignRepository()
	start := time.Now()
	require.NoError(t, repo.CreateCampaign(ctx, &domain.Campaign{ID: "c1", StartTime: &start}))

	got, err := repo.GetCampaign(ctx, "c1")
	require.NoError(t, err)
	got.CurrentHits = 99
	*got.StartTime = time.Time{}

	again, err := repo.GetCampaign(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.CurrentHits)
	assert.True(t, again.StartTime.Equal(start))
}

func TestCampaignRepositoryQueries(t *testing.T) {
	ctx := context.Background()
	repo := NewCampaignRepository()
	base := time.Now()
	for i, c := range []domain.Campaign{
		{ID: "a", UserID: "u1", IsActive: true},
		{ID: "b", UserID: "u1"},
		{ID: "c", UserID: "u2", IsActive: true},
	} {
		c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.CreateCampaign(ctx, &c))
	}

	mine, err := repo.ListCampaignsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "b", mine[0].ID, "newest first")

	active, err := repo.ListActiveCampaigns(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, []string{active[0].ID, active[1].ID})

	ok, err := repo.DeleteCampaign(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.DeleteCampaign(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	gone, err := repo.GetCampaign(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
