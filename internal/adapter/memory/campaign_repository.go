package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"hitpulse/internal/core/domain"
)

// CampaignRepository implements port.CampaignRepository in process memory.
// It is the default store for local runs and the store used by scheduler
// tests. Records are copied in and out so callers never share state.
type CampaignRepository struct {
	mu        sync.RWMutex
	campaigns map[string]domain.Campaign
}

// NewCampaignRepository returns an empty repository.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{campaigns: make(map[string]domain.Campaign)}
}

// GetCampaign returns a campaign by id.
func (r *CampaignRepository) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, nil
	}
	return clone(c), nil
}

// ListCampaignsByUser returns the campaigns of userID, newest first.
func (r *CampaignRepository) ListCampaignsByUser(_ context.Context, userID string) ([]domain.Campaign, error) {
	return r.filter(func(c domain.Campaign) bool { return c.UserID == userID }), nil
}

// ListActiveCampaigns returns every active campaign.
func (r *CampaignRepository) ListActiveCampaigns(_ context.Context) ([]domain.Campaign, error) {
	return r.filter(func(c domain.Campaign) bool { return c.IsActive }), nil
}

// CreateCampaign stores c, replacing any campaign with the same id.
func (r *CampaignRepository) CreateCampaign(_ context.Context, c *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaigns[c.ID] = *clone(*c)
	return nil
}

// UpdateCampaign merges patch into the stored campaign. currentHits never
// exceeds targetHits after the merge.
func (r *CampaignRepository) UpdateCampaign(_ context.Context, id string, patch domain.CampaignPatch) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&c)
	c.CurrentHits = min(c.CurrentHits, c.TargetHits)
	r.campaigns[id] = c
	return clone(c), nil
}

// DeleteCampaign removes a campaign.
func (r *CampaignRepository) DeleteCampaign(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.campaigns[id]
	delete(r.campaigns, id)
	return ok, nil
}

func (r *CampaignRepository) filter(keep func(domain.Campaign) bool) []domain.Campaign {
	r.mu.RLock()
	out := make([]domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		if keep(c) {
			out = append(out, *clone(c))
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.Campaign) int {
		if n := b.CreatedAt.Compare(a.CreatedAt); n != 0 {
			return n
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// clone copies c including the StartTime pointer target.
func clone(c domain.Campaign) *domain.Campaign {
	if c.StartTime != nil {
		t := *c.StartTime
		c.StartTime = &t
	}
	return &c
}
