// Package scheduler runs periodic maintenance jobs for the pattern store.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/nogg-truth/internal/metrics"
	"github.com/yourusername/nogg-truth/internal/models"
)

// StatsSource provides pattern store statistics
type StatsSource interface {
	Stats(ctx context.Context) (models.PatternStats, error)
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	cron       *cron.Cron
	source     StatsSource
	logger     *logrus.Entry
	mu         sync.RWMutex
	isRunning  bool
	jobIDs     []cron.EntryID
	jobTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(source StatsSource, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		source:     source,
		logger:     logger.WithField("component", "scheduler"),
		jobIDs:     make([]cron.EntryID, 0),
		jobTimeout: 10 * time.Second,
	}
}

// ScheduleStatsRefresh schedules refreshing the pattern store gauges
func (s *Scheduler) ScheduleStatsRefresh(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		if err := s.RefreshStats(ctx); err != nil {
			s.logger.WithError(err).Warn("Pattern stats refresh failed")
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("schedule", cronExpression).Info("Scheduled pattern stats refresh")

	return nil
}

// RefreshStats reads the store statistics once and publishes them as gauges
func (s *Scheduler) RefreshStats(ctx context.Context) error {
	stats, err := s.source.Stats(ctx)
	if err != nil {
		metrics.RecordStoreError("stats")
		return err
	}

	winRate := 0.0
	if stats.RecordedOutcomes > 0 {
		winRate = float64(stats.Wins) / float64(stats.RecordedOutcomes)
	}
	metrics.UpdatePatternStats(stats.Patterns, stats.ConfirmedPatterns, winRate)

	s.logger.WithFields(logrus.Fields{
		"patterns":  stats.Patterns,
		"confirmed": stats.ConfirmedPatterns,
		"win_rate":  winRate,
	}).Debug("Pattern stats refreshed")
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

// GetNextRun returns the time of the next scheduled job run, or the zero time
// when the scheduler is stopped.
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	now := time.Now().In(time.UTC)
	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if !entry.Valid() {
			continue
		}
		next := entry.Schedule.Next(now)
		if nextRun.IsZero() || next.Before(nextRun) {
			nextRun = next
		}
	}

	return nextRun
}
