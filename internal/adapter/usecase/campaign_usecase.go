package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hitpulse/internal/core/domain"
	"hitpulse/internal/core/port"
)

// CampaignUseCase provides the campaign lifecycle behind the HTTP API. It
// owns the activation flag on start and delegates pacing to the scheduler.
type CampaignUseCase struct {
	repo      port.CampaignRepository
	scheduler port.Scheduler

	now   func() time.Time
	newID func() string
}

var _ port.CampaignUseCase = (*CampaignUseCase)(nil)

// NewCampaignUseCase creates a new usecase with the provided repository
// and scheduler.
func NewCampaignUseCase(repo port.CampaignRepository, scheduler port.Scheduler) *CampaignUseCase {
	return &CampaignUseCase{
		repo:      repo,
		scheduler: scheduler,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// CreateCampaign validates the input and stores an inactive campaign with
// no hits.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, userID string, in domain.CampaignInput) (*domain.Campaign, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c := &domain.Campaign{
		ID:         u.newID(),
		UserID:     userID,
		Website:    strings.TrimSpace(in.Website),
		TargetHits: in.TargetHits,
		Duration:   in.Duration,
		HitType:    in.HitType,
		CreatedAt:  u.now(),
	}
	if err := u.repo.CreateCampaign(ctx, c); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return c, nil
}

// GetCampaign returns a campaign owned by userID.
func (u *CampaignUseCase) GetCampaign(ctx context.Context, userID, id string) (*domain.Campaign, error) {
	return u.owned(ctx, userID, id)
}

// ListCampaigns returns the campaigns of userID.
func (u *CampaignUseCase) ListCampaigns(ctx context.Context, userID string) ([]domain.Campaign, error) {
	return u.repo.ListCampaignsByUser(ctx, userID)
}

// StartCampaign marks the campaign active, stamps the start time and hands
// it to the scheduler. If scheduling fails the activation is rolled back.
func (u *CampaignUseCase) StartCampaign(ctx context.Context, userID, id string) (*domain.Campaign, error) {
	c, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if c.IsActive && u.scheduler.Running(id) {
		return c, nil
	}
	if c.Completed() {
		return nil, domain.ErrCampaignCompleted
	}

	now := u.now()
	c, err = u.repo.UpdateCampaign(ctx, id, domain.CampaignPatch{IsActive: domain.Ptr(true), StartTime: &now})
	if err != nil {
		return nil, fmt.Errorf("activate campaign: %w", err)
	}
	if c == nil {
		return nil, domain.ErrCampaignNotFound
	}
	if err = u.scheduler.StartCampaign(ctx, id); err != nil {
		if _, rbErr := u.repo.UpdateCampaign(ctx, id, domain.CampaignPatch{IsActive: domain.Ptr(false)}); rbErr != nil {
			return nil, fmt.Errorf("start campaign: %w (rollback: %v)", err, rbErr)
		}
		return nil, fmt.Errorf("start campaign: %w", err)
	}
	return c, nil
}

// StopCampaign cancels scheduling and marks the campaign inactive even
// when no task was running, which clears flags orphaned by a restart.
func (u *CampaignUseCase) StopCampaign(ctx context.Context, userID, id string) (*domain.Campaign, error) {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := u.scheduler.StopCampaign(ctx, id); err != nil {
		return nil, err
	}
	c, err := u.repo.UpdateCampaign(ctx, id, domain.CampaignPatch{IsActive: domain.Ptr(false)})
	if err != nil {
		return nil, fmt.Errorf("deactivate campaign: %w", err)
	}
	if c == nil {
		return nil, domain.ErrCampaignNotFound
	}
	return c, nil
}

// DeleteCampaign stops the campaign before removing it.
func (u *CampaignUseCase) DeleteCampaign(ctx context.Context, userID, id string) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := u.scheduler.StopCampaign(ctx, id); err != nil {
		return err
	}
	ok, err := u.repo.DeleteCampaign(ctx, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	if !ok {
		return domain.ErrCampaignNotFound
	}
	return nil
}

// owned loads a campaign and hides it from anyone but its owner.
func (u *CampaignUseCase) owned(ctx context.Context, userID, id string) (*domain.Campaign, error) {
	c, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load campaign: %w", err)
	}
	if c == nil || c.UserID != userID {
		return nil, domain.ErrCampaignNotFound
	}
	return c, nil
}
