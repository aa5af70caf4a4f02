package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rentdesk/internal/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

// BillingScheduler triggers a full-fleet generation run once per calendar
// month. The check is level-triggered: every tick compares the current month
// against the last month handled, so a process that was down when the month
// rolled over self-corrects on its next tick. The generation engine's
// idempotency makes the re-trigger after a restart harmless.
type BillingScheduler struct {
	generation GenerationService
	clock      port.Clock
	cfg        config.BillingConfig

	mu        sync.Mutex
	lastMonth domain.Month
	lastRun   *time.Time
}

// NewBillingScheduler creates a new BillingScheduler.
func NewBillingScheduler(generation GenerationService, clock port.Clock, cfg config.BillingConfig) *BillingScheduler {
	return &BillingScheduler{
		generation: generation,
		clock:      clock,
		cfg:        cfg,
	}
}

// Start runs the polling loop until ctx is canceled. An immediate check runs
// on activation so a restart mid-month does not wait a full tick interval.
func (s *BillingScheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	logrus.WithFields(logrus.Fields{
		"tick_interval": s.cfg.TickInterval.String(),
		"run_hour_utc":  s.cfg.RunHourUTC,
	}).Info("billingScheduler: started")

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			logrus.Info("billingScheduler: shutting down")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick fires a full-fleet run if the current month has not been handled yet
// and the configured run hour on the 1st has passed.
func (s *BillingScheduler) tick(ctx context.Context) {
	now := s.clock.Now()
	month := domain.MonthOf(now)

	s.mu.Lock()
	handled := s.lastMonth == month
	s.mu.Unlock()
	if handled || now.Before(s.runAt(month)) {
		return
	}

	logrus.WithField("month", month.String()).Info("billingScheduler: monthly generation due")
	report, err := s.generation.Generate(ctx, month, nil)
	if err != nil {
		if errors.Is(err, domain.ErrGenerationInProgress) {
			// A manual run is in flight; the next tick re-checks.
			logrus.Info("billingScheduler: run already in progress, skipping tick")
			return
		}
		logrus.Errorf("billingScheduler: generation failed: %v", err)
		return
	}

	ranAt := now
	s.mu.Lock()
	s.lastMonth = month
	s.lastRun = &ranAt
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"month":     month.String(),
		"generated": report.BillsGenerated,
		"skipped":   report.BillsSkipped,
		"errors":    report.Errors,
	}).Info("billingScheduler: monthly generation complete")
}

// runAt returns the instant generation becomes due for a month: the
// configured hour on its 1st day.
func (s *BillingScheduler) runAt(month domain.Month) time.Time {
	return month.FirstDay().Add(time.Duration(s.cfg.RunHourUTC) * time.Hour)
}

// Status reports the coordinator state plus the scheduler's computed timings.
// NextRun is always the run instant of the next calendar month; LastRun is
// in-memory only and resets with the process (bill existence is the durable
// record of what has been generated).
func (s *BillingScheduler) Status() domain.SchedulerStatus {
	s.mu.Lock()
	lastRun := s.lastRun
	s.mu.Unlock()

	return domain.SchedulerStatus{
		RunStatus: s.generation.Status(),
		NextRun:   s.runAt(domain.MonthOf(s.clock.Now()).Next()),
		LastRun:   lastRun,
	}
}
