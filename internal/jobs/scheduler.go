package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finderid-api/internal/domain"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = 2 * time.Minute

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron   *cron.Cron
	sweep  *ExpirySweep
	config domain.Config
	logger domain.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(sweep *ExpirySweep, config domain.Config, logger domain.Logger) *Scheduler {
	cronLogger := cronLogger{logger: logger}
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))

	return &Scheduler{
		cron:   c,
		sweep:  sweep,
		config: config,
		logger: logger,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() error {
	if !s.config.IsExpirySweepEnabled() {
		s.logger.Info("Expiry sweep disabled")
		return nil
	}

	schedule := s.config.GetExpirySweepSchedule()
	if _, err := s.cron.AddFunc(schedule, s.runSweep); err != nil {
		return fmt.Errorf("failed to schedule expiry sweep %q: %w", schedule, err)
	}
	s.logger.Info("Scheduled expiry sweep", "schedule", schedule)

	s.cron.Start()
	return nil
}

// Stop gracefully stops the cron scheduler. The returned context is done
// once running jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.sweep.Run(ctx); err != nil {
		if errors.Is(err, ErrSweepInProgress) {
			s.logger.Debug("Skipping expiry sweep, previous run still active")
			return
		}
		s.logger.Error("Scheduled expiry sweep failed", err)
	}
}

// cronLogger adapts domain.Logger to cron.Logger.
type cronLogger struct {
	logger domain.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, err, keysAndValues...)
}
