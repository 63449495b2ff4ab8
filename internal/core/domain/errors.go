package domain

import "errors"

var (
	// ErrCampaignNotFound is returned when a campaign does not exist or is
	// owned by another user.
	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrInvalidCampaign wraps validation failures of campaign input.
	ErrInvalidCampaign = errors.New("invalid campaign")
	// ErrCampaignCompleted is returned when starting a campaign that has
	// already delivered its target hits.
	ErrCampaignCompleted = errors.New("campaign already reached its target")
)
