package db

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"hitpulse/internal/core/domain"
	"hitpulse/internal/core/port"
)

// DemoUserID owns the campaigns created by Seed.
const DemoUserID = "demo-user"

var seedNamespace = uuid.MustParse("6f1d3c2e-8a4b-4f0e-9b7a-2c5d1e0f3a9b")

var demoSites = []string{
	"example.com",
	"example.org",
	"https://example.net/landing",
	"httpbin.org/get",
}

// Seed inserts n inactive demo campaigns for DemoUserID. Ids are derived
// from the index so running it twice does not duplicate rows. It returns
// the number of campaigns actually created.
func Seed(ctx context.Context, repo port.CampaignRepository, n int) (int, error) {
	types := []domain.HitType{domain.HitTypePageView, domain.HitTypeUniqueVisitor, domain.HitTypeClick}
	created := 0
	for i := range n {
		id := uuid.NewSHA1(seedNamespace, fmt.Appendf(nil, "demo-%d", i)).String()
		existing, err := repo.GetCampaign(ctx, id)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		c := &domain.Campaign{
			ID:         id,
			UserID:     DemoUserID,
			Website:    demoSites[i%len(demoSites)],
			TargetHits: 50 + rand.IntN(450),
			Duration:   float64(1 + rand.IntN(24)),
			HitType:    types[i%len(types)],
			CreatedAt:  time.Now().UTC(),
		}
		if err = repo.CreateCampaign(ctx, c); err != nil {
			return created, fmt.Errorf("seed campaign %d: %w", i, err)
		}
		created++
	}
	return created, nil
}
