package port

import "context"

// Scheduler paces hit generation for active campaigns. Callers flip the
// campaign record to active before StartCampaign; the scheduler only begins
// pacing records that are already active.
type Scheduler interface {
	StartCampaign(ctx context.Context, id string) error
	StopCampaign(ctx context.Context, id string) error
	Running(id string) bool
}
