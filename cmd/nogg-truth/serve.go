package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/nogg-truth/internal/api"
	"github.com/yourusername/nogg-truth/internal/health"
	"github.com/yourusername/nogg-truth/internal/metrics"
	"github.com/yourusername/nogg-truth/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"backend":     cfg.Store.Backend,
		"version":     Version,
	}).Info("NoGG Truth starting")

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	eng, history, closeFn, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	var healthServer *health.Server
	if cfg.Health.Enabled {
		healthServer = health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Commit:      GitCommit,
			Port:        cfg.Health.Port,
			Logger:      appLog,
			Patterns:    history,
		})
		if err := healthServer.Start(ctx); err != nil {
			return err
		}
	}

	sched := scheduler.NewScheduler(history, appLog)
	if cfg.Scheduler.StatsRefresh != "" {
		if err := sched.ScheduleStatsRefresh(cfg.Scheduler.StatsRefresh); err != nil {
			return err
		}
		if err := sched.RefreshStats(ctx); err != nil {
			appLog.WithError(err).Warn("Initial pattern stats refresh failed")
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
		appLog.WithField("next_run", sched.GetNextRun().Format(time.RFC3339)).Info("Pattern stats refresh scheduled")
	}

	server := api.NewServer(eng, cfg.API, cfg.Metrics, appLog)
	if err := server.Start(ctx); err != nil {
		return err
	}

	if healthServer != nil {
		healthServer.SetReady(true)
	}

	<-ctx.Done()
	appLog.Info("Shutdown signal received")

	if healthServer != nil {
		healthServer.SetReady(false)
	}
	return server.Shutdown()
}
