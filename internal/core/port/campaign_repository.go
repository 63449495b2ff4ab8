package port

import (
	"context"

	"hitpulse/internal/core/domain"
)

// CampaignRepository defines the persistence layer for campaigns. It is an
// outbound port in hexagonal architecture. Implementations must be
// concurrency-safe and apply each UpdateCampaign call atomically. The
// scheduler never caches what it reads, so every call must hit the store.
type CampaignRepository interface {
	// GetCampaign returns a campaign by id, or nil when it does not exist.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// ListCampaignsByUser returns all campaigns owned by userID, newest first.
	ListCampaignsByUser(ctx context.Context, userID string) ([]domain.Campaign, error)
	// ListActiveCampaigns returns every campaign flagged active.
	ListActiveCampaigns(ctx context.Context) ([]domain.Campaign, error)
	// CreateCampaign stores a new campaign.
	CreateCampaign(ctx context.Context, c *domain.Campaign) error
	// UpdateCampaign merges the non-nil fields of patch into the stored
	// campaign and returns the result, or nil when it does not exist.
	UpdateCampaign(ctx context.Context, id string, patch domain.CampaignPatch) (*domain.Campaign, error)
	// DeleteCampaign removes a campaign and reports whether it existed.
	DeleteCampaign(ctx context.Context, id string) (bool, error)
}
