package port

import (
	"context"
	"time"

	"hitpulse/internal/core/domain"
)

// HitExecutor performs a single simulated visit against a website. A nil
// error means the hit counts toward the campaign target.
type HitExecutor interface {
	Hit(ctx context.Context, website string, hitType domain.HitType) (*HitResult, error)
}

// HitResult describes a completed visit.
type HitResult struct {
	URL        string
	StatusCode int
	Latency    time.Duration
	Dwell      time.Duration
}
