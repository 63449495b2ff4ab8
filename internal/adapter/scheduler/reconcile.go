package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"hitpulse/internal/core/domain"
)

// ReconcileMode decides what happens to campaigns left active in storage
// without a running task, typically after a restart.
type ReconcileMode string

const (
	// ReconcileResume restarts orphans for the rest of their window and
	// deactivates those that are expired or complete.
	ReconcileResume ReconcileMode = "resume"
	// ReconcileStop deactivates every orphan.
	ReconcileStop ReconcileMode = "stop"
	// ReconcileOff leaves storage untouched.
	ReconcileOff ReconcileMode = "off"
)

// ParseReconcileMode validates a textual mode.
func ParseReconcileMode(s string) (ReconcileMode, error) {
	switch m := ReconcileMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ReconcileResume, ReconcileStop, ReconcileOff:
		return m, nil
	}
	return "", fmt.Errorf("unknown reconcile mode %q", s)
}

// ReconcileReport counts what Reconcile did.
type ReconcileReport struct {
	Resumed     int
	Deactivated int
}

// Reconcile brings orphaned active campaigns back in line with the task
// table. Campaigns already running in this scheduler are skipped. At most
// workers campaigns are processed concurrently.
func (s *Scheduler) Reconcile(ctx context.Context, mode ReconcileMode, workers int) (ReconcileReport, error) {
	if mode == ReconcileOff {
		return ReconcileReport{}, nil
	}
	active, err := s.repo.ListActiveCampaigns(ctx)
	if err != nil {
		return ReconcileReport{}, fmt.Errorf("list active campaigns: %w", err)
	}

	var resumed, deactivated atomic.Int64
	now := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for _, c := range active {
		if s.Running(c.ID) {
			continue
		}
		g.Go(func() error {
			log := s.logger.With(slog.String("campaign_id", c.ID))

			deadline := now.Add(c.Window())
			if c.StartTime != nil {
				deadline = c.StartTime.Add(c.Window())
			}

			if mode == ReconcileStop || c.Completed() || !deadline.After(now) {
				if _, err := s.repo.UpdateCampaign(gctx, c.ID, domain.CampaignPatch{IsActive: domain.Ptr(false)}); err != nil {
					return fmt.Errorf("deactivate orphaned campaign %s: %w", c.ID, err)
				}
				deactivated.Add(1)
				log.Info("deactivated orphaned campaign")
				return nil
			}

			if c.StartTime == nil {
				if _, err := s.repo.UpdateCampaign(gctx, c.ID, domain.CampaignPatch{StartTime: &now}); err != nil {
					return fmt.Errorf("stamp orphaned campaign %s: %w", c.ID, err)
				}
			}
			if err := s.launch(&c, now, deadline); err != nil {
				return err
			}
			resumed.Add(1)
			log.Info("resumed orphaned campaign", slog.Duration("remaining", deadline.Sub(now)))
			return nil
		})
	}
	err = g.Wait()
	return ReconcileReport{Resumed: int(resumed.Load()), Deactivated: int(deactivated.Load())}, err
}
