package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"hitpulse/internal/adapter/http"
	"hitpulse/internal/adapter/metrics"
	"hitpulse/internal/adapter/scheduler"
	"hitpulse/internal/adapter/usecase"
	"hitpulse/internal/adapter/visitor"
	"hitpulse/internal/config"
	"hitpulse/internal/db"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the campaign API and the traffic scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// serve wires storage, scheduler and HTTP server, then blocks until
// SIGINT or SIGTERM. On shutdown the server drains first, then the
// scheduler cancels its tasks without touching storage.
func (a *app) serve(parent context.Context) error {
	cfg, logger := a.cfg, a.logger

	// Optionally run migrations if configured. We use the Psql sub-config.
	if cfg.Storage == config.StoragePostgres && cfg.Psql.RunMigrations {
		if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := a.openRepository(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.NewRecorder(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	exec := visitor.NewExecutor(logger,
		visitor.WithTimeout(cfg.Traffic.RequestTimeout),
		visitor.WithRequire2xx(cfg.Traffic.Require2xx),
	)
	sched := scheduler.New(repo, exec, logger,
		scheduler.WithMinInterval(cfg.Traffic.MinInterval),
		scheduler.WithRecorder(recorder),
	)

	mode, err := scheduler.ParseReconcileMode(cfg.Traffic.Reconcile)
	if err != nil {
		return err
	}
	report, err := sched.Reconcile(ctx, mode, cfg.Traffic.ReconcileWorkers)
	if err != nil {
		logger.Error("reconcile active campaigns failed", slog.Any("error", err))
	} else {
		logger.Info("reconciled active campaigns",
			slog.String("mode", string(mode)),
			slog.Int("resumed", report.Resumed),
			slog.Int("deactivated", report.Deactivated),
		)
	}

	svc := usecase.NewCampaignUseCase(repo, sched)
	handler := httpadapter.NewHandler(svc, logger, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-serveErr:
		logger.Error("server error", slog.Any("error", runErr))
	}

	httpCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(httpCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}

	schedCtx, cancelSched := context.WithTimeout(context.WithoutCancel(ctx), cfg.Traffic.ShutdownTimeout)
	defer cancelSched()
	if err := sched.Shutdown(schedCtx); err != nil {
		logger.Error("scheduler shutdown error", slog.Any("error", err))
	}
	return runErr
}
