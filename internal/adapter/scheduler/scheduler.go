// Package scheduler paces hit generation for active campaigns. Each running
// campaign owns one goroutine; the task table maps campaign ids to the
// handle that cancels it. Progress lives only in the repository and is
// re-read on every tick.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hitpulse/internal/core/domain"
	"hitpulse/internal/core/port"
)

// DefaultMinInterval is the fastest a single campaign may be paced.
const DefaultMinInterval = 2 * time.Second

const defaultWriteTimeout = 5 * time.Second

// Reasons reported to the Recorder when a campaign stops.
const (
	ReasonStopped     = "stopped"
	ReasonTarget      = "target"
	ReasonExpired     = "expired"
	ReasonVanished    = "vanished"
	ReasonDeactivated = "deactivated"
	ReasonShutdown    = "shutdown"
)

// ErrClosed is returned by StartCampaign after Shutdown.
var ErrClosed = errors.New("scheduler is shut down")

// Recorder receives scheduler events. The metrics adapter implements it.
type Recorder interface {
	HitSucceeded()
	HitFailed()
	CampaignStopped(reason string)
	RunningCampaigns(n int)
}

type nopRecorder struct{}

func (nopRecorder) HitSucceeded()          {}
func (nopRecorder) HitFailed()             {}
func (nopRecorder) CampaignStopped(string) {}
func (nopRecorder) RunningCampaigns(int)   {}

// task is the cancelable handle of one running campaign.
type task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Scheduler implements port.Scheduler.
type Scheduler struct {
	repo         port.CampaignRepository
	executor     port.HitExecutor
	logger       *slog.Logger
	recorder     Recorder
	minInterval  time.Duration
	writeTimeout time.Duration

	mu     sync.Mutex
	tasks  map[string]*task
	closed bool
	wg     sync.WaitGroup
}

var _ port.Scheduler = (*Scheduler)(nil)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithMinInterval overrides DefaultMinInterval.
func WithMinInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.minInterval = d
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Scheduler) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithWriteTimeout bounds the repository writes issued from ticks and
// automatic stops, which run detached from any caller context.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// New creates a Scheduler with an empty task table.
func New(repo port.CampaignRepository, executor port.HitExecutor, logger *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		repo:         repo,
		executor:     executor,
		logger:       logger,
		recorder:     nopRecorder{},
		minInterval:  DefaultMinInterval,
		writeTimeout: defaultWriteTimeout,
		tasks:        make(map[string]*task),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HitInterval spreads targetHits evenly over durationHours but never paces
// faster than floor. With a tight window the floor wins and the campaign
// will expire short of its target.
func HitInterval(targetHits int, durationHours float64, floor time.Duration) time.Duration {
	if targetHits <= 0 {
		return floor
	}
	return max(domain.HoursToDuration(durationHours/float64(targetHits)), floor)
}

// StartCampaign begins pacing a campaign the caller has already marked
// active. Missing or inactive campaigns are ignored, as is a campaign that
// is already running. Only repository failures are returned.
func (s *Scheduler) StartCampaign(ctx context.Context, id string) error {
	c, err := s.repo.GetCampaign(ctx, id)
	if err != nil {
		return fmt.Errorf("load campaign %s: %w", id, err)
	}
	if c == nil || !c.IsActive {
		s.logger.Debug("campaign not found or not active", slog.String("campaign_id", id))
		return nil
	}
	now := time.Now()
	return s.launch(c, now, now.Add(c.Window()))
}

// StopCampaign cancels the campaign's task and marks it inactive. It waits
// for the task goroutine to exit, bounded by ctx, so no tick starts after
// it returns. Stopping an unknown or idle campaign is a no-op.
func (s *Scheduler) StopCampaign(ctx context.Context, id string) error {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if ok {
		delete(s.tasks, id)
	}
	n := len(s.tasks)
	s.mu.Unlock()
	if !ok {
		return nil
	}

	t.cancel()
	s.recorder.RunningCampaigns(n)
	s.recorder.CampaignStopped(ReasonStopped)
	s.logger.Info("stopped traffic generation", slog.String("campaign_id", id))

	select {
	case <-t.done:
	case <-ctx.Done():
	}

	// The flag must be cleared even when the caller gave up waiting.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.writeTimeout)
	defer cancel()
	if _, err := s.repo.UpdateCampaign(wctx, id, domain.CampaignPatch{IsActive: domain.Ptr(false)}); err != nil {
		return fmt.Errorf("deactivate campaign %s: %w", id, err)
	}
	return nil
}

// Running reports whether a task is registered for id.
func (s *Scheduler) Running(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[id]
	return ok
}

// Len returns the number of running campaigns.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Shutdown cancels every task without touching the repository, so the
// campaigns stay active in storage and Reconcile can pick them up on the
// next boot. It waits for the goroutines to exit until ctx is done.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	tasks := s.tasks
	s.tasks = make(map[string]*task)
	s.mu.Unlock()

	s.logger.Info("shutting down traffic generator", slog.Int("running", len(tasks)))
	for id, t := range tasks {
		t.cancel()
		s.recorder.CampaignStopped(ReasonShutdown)
		s.logger.Debug("stopped campaign", slog.String("campaign_id", id))
	}
	s.recorder.RunningCampaigns(0)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// launch registers a task for c unless one already exists. Ticks are
// scheduled at start+k*interval; deadline is the hard expiry.
func (s *Scheduler) launch(c *domain.Campaign, start, deadline time.Time) error {
	interval := HitInterval(c.TargetHits, c.Duration, s.minInterval)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if _, ok := s.tasks[c.ID]; ok {
		s.mu.Unlock()
		s.logger.Debug("campaign already running", slog.String("campaign_id", c.ID))
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	t := &task{cancel: cancel, done: make(chan struct{})}
	s.tasks[c.ID] = t
	n := len(s.tasks)
	s.wg.Add(1)
	s.mu.Unlock()

	s.recorder.RunningCampaigns(n)
	s.logger.Info("starting traffic generation",
		slog.String("campaign_id", c.ID),
		slog.String("website", c.Website),
		slog.Duration("interval", interval),
		slog.Time("deadline", deadline),
	)

	go s.run(ctx, c.ID, t, interval, start, deadline)
	return nil
}

func (s *Scheduler) run(ctx context.Context, id string, t *task, interval time.Duration, start, deadline time.Time) {
	defer s.wg.Done()
	defer close(t.done)

	k := 1
	next := start.Add(interval)
	tick := time.NewTimer(time.Until(next))
	defer tick.Stop()
	expiry := time.NewTimer(time.Until(deadline))
	defer expiry.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if !s.tick(ctx, id, t) {
				return
			}
			// Slots missed by a slow tick are dropped, not replayed.
			for now := time.Now(); !next.After(now); {
				k++
				next = start.Add(time.Duration(k) * interval)
			}
			tick.Reset(time.Until(next))
		case <-expiry.C:
			// A slot scheduled at the deadline itself is still delivered.
			if !next.After(deadline) && !s.tick(ctx, id, t) {
				return
			}
			s.logger.Info("campaign duration elapsed", slog.String("campaign_id", id))
			s.finish(id, t, ReasonExpired)
			return
		}
	}
}

// tick runs one hit attempt and reports whether the task should keep going.
func (s *Scheduler) tick(ctx context.Context, id string, t *task) bool {
	if ctx.Err() != nil {
		return false
	}
	log := s.logger.With(slog.String("campaign_id", id))

	c, err := s.repo.GetCampaign(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		log.Warn("load campaign failed, skipping tick", slog.Any("error", err))
		return true
	}
	switch {
	case c == nil:
		s.finish(id, t, ReasonVanished)
		return false
	case !c.IsActive:
		s.finish(id, t, ReasonDeactivated)
		return false
	case c.Completed():
		log.Info("campaign reached target hits")
		s.finish(id, t, ReasonTarget)
		return false
	}

	res, err := s.executor.Hit(ctx, c.Website, c.HitType)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		s.recorder.HitFailed()
		log.Warn("failed to generate hit", slog.String("website", c.Website), slog.Any("error", err))
		return true
	}

	hits := c.CurrentHits + 1
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.writeTimeout)
	updated, err := s.repo.UpdateCampaign(wctx, id, domain.CampaignPatch{CurrentHits: &hits})
	cancel()
	if err != nil {
		log.Error("persist hit failed", slog.Any("error", err))
		return true
	}
	s.recorder.HitSucceeded()
	log.Debug("generated hit",
		slog.Int("current", hits),
		slog.Int("target", c.TargetHits),
		slog.String("website", c.Website),
		slog.Int("status", res.StatusCode),
	)

	switch {
	case updated == nil:
		s.finish(id, t, ReasonVanished)
		return false
	case updated.Completed():
		log.Info("campaign reached target hits")
		s.finish(id, t, ReasonTarget)
		return false
	}
	return true
}

// finish is the automatic stop path. It only acts when t is still the
// registered task for id, so a stale goroutine cannot stop a newer run.
func (s *Scheduler) finish(id string, t *task, reason string) {
	s.mu.Lock()
	cur, ok := s.tasks[id]
	if !ok || cur != t {
		s.mu.Unlock()
		return
	}
	delete(s.tasks, id)
	n := len(s.tasks)
	s.mu.Unlock()

	t.cancel()
	s.recorder.RunningCampaigns(n)
	s.recorder.CampaignStopped(reason)

	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()
	if _, err := s.repo.UpdateCampaign(ctx, id, domain.CampaignPatch{IsActive: domain.Ptr(false)}); err != nil {
		s.logger.Error("deactivate campaign failed", slog.String("campaign_id", id), slog.Any("error", err))
		return
	}
	s.logger.Info("stopped traffic generation", slog.String("campaign_id", id), slog.String("reason", reason))
}
