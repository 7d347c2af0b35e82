package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs sweeps on a cron schedule. It drives the auditor at
// scheduled intervals (e.g. hourly) using standard cron syntax.
type Scheduler struct {
	auditor  *Auditor
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewScheduler creates a sweep scheduler. The schedule is a standard
// five-field cron expression or a descriptor like "@hourly".
func NewScheduler(auditor *Auditor, schedule string) *Scheduler {
	return &Scheduler{
		auditor:  auditor,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "watch.scheduler"),
	}
}

// Start begins scheduled sweeps.
//
// Common expressions:
//   - "@hourly"      - Every hour on the hour
//   - "0 3 * * *"    - Daily at 3 AM
//   - "*/15 * * * *" - Every 15 minutes
//
// If the schedule is empty, the scheduler does nothing. The scheduler
// stops itself when the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping scheduler")
		return nil
	}

	// Validate cron expression
	_, err := cron.ParseStandard(s.schedule)
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err = s.cron.AddFunc(s.schedule, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sweeps: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("sweep scheduler started",
		"schedule", s.schedule,
		"rules", s.auditor.config.Rules,
	)

	// Wait for context cancellation in background
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runSweep executes one scheduled sweep.
func (s *Scheduler) runSweep(ctx context.Context) {
	report, err := s.auditor.Run(ctx, "schedule")
	if err != nil {
		s.logger.Error("scheduled sweep failed",
			"error", err,
		)
		return
	}

	if len(report.Rejected) > 0 {
		s.logger.Info("scheduled sweep found expired items",
			"run_id", report.RunID,
			"rejected_count", len(report.Rejected),
		)
	} else {
		s.logger.Debug("scheduled sweep found nothing to discard",
			"run_id", report.RunID,
		)
	}
}

// Stop stops the scheduler and waits for any running sweep to
// complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running sweeps to finish
		s.running = false
		s.logger.Info("sweep scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled sweep time, or nil if no sweep
// is scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	// Right after Start the cron loop may not have computed the
	// first run time yet.
	next := entries[0].Next
	if next.IsZero() {
		return nil
	}
	return &next
}
