package port

import (
	"context"

	"hitpulse/internal/core/domain"
)

// CampaignUseCase defines the campaign operations exposed to the HTTP
// layer. Every call is scoped to a user; campaigns owned by someone else
// behave as if they did not exist.
type CampaignUseCase interface {
	// CreateCampaign validates input and stores a new inactive campaign.
	CreateCampaign(ctx context.Context, userID string, in domain.CampaignInput) (*domain.Campaign, error)
	// GetCampaign returns one campaign of the user.
	GetCampaign(ctx context.Context, userID, id string) (*domain.Campaign, error)
	// ListCampaigns returns every campaign of the user.
	ListCampaigns(ctx context.Context, userID string) ([]domain.Campaign, error)
	// StartCampaign activates the campaign and hands it to the scheduler.
	// Starting an active campaign is a no-op.
	StartCampaign(ctx context.Context, userID, id string) (*domain.Campaign, error)
	// StopCampaign cancels scheduling and marks the campaign inactive.
	StopCampaign(ctx context.Context, userID, id string) (*domain.Campaign, error)
	// DeleteCampaign stops the campaign and removes it.
	DeleteCampaign(ctx context.Context, userID, id string) error
}
