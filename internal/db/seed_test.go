package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hitpulse/internal/adapter/memory"
	"hitpulse/internal/core/domain"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCampaignRepository()

	n, err := Seed(ctx, repo, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = Seed(ctx, repo, 6)
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := repo.ListCampaignsByUser(ctx, DemoUserID)
	require.NoError(t, err)
	require.Len(t, list, 6)
	for _, c := range list {
		assert.False(t, c.IsActive)
		assert.Zero(t, c.CurrentHits)
		assert.NoError(t, domain.CampaignInput{
			Website: c.Website, TargetHits: c.TargetHits, Duration: c.Duration, HitType: c.HitType,
		}.Validate())
	}
}
