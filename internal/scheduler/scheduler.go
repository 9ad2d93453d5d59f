// Package scheduler runs the periodic market data refresh.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"github.com/ndewijer/InvestPro-Backend/internal/apperrors"
	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// refreshTimeout bounds a single scheduled refresh.
const refreshTimeout = 5 * time.Minute

// Refresher is the operation run on every tick.
type Refresher interface {
	Refresh(ctx context.Context) (model.RefreshResponse, error)
}

// Scheduler triggers market refreshes on a standard five-field cron schedule.
type Scheduler struct {
	refresher Refresher
	cron      *cron.Cron
}

// NewScheduler creates a new refresh scheduler.
func NewScheduler(refresher Refresher) *Scheduler {
	return &Scheduler{
		refresher: refresher,
		cron:      cron.New(),
	}
}

// ValidateSchedule reports whether schedule is a valid five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return nil
}

// Start registers the refresh job and starts the scheduler.
// An empty schedule leaves the scheduler idle.
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		log.Info().Msg("Market refresh schedule disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(schedule, s.RunOnce); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	log.Info().Str("schedule", schedule).Msg("Market refresh scheduler started")

	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Market refresh scheduler stopped")
}

// RunNow triggers an immediate refresh in the background.
func (s *Scheduler) RunNow() {
	go s.RunOnce()
}

// RunOnce performs a single refresh. A refresh already in progress is skipped.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	result, err := s.refresher.Refresh(ctx)
	if errors.Is(err, apperrors.ErrRefreshInProgress) {
		log.Debug().Msg("Scheduled refresh skipped, another refresh is running")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Scheduled market refresh failed")
		return
	}

	log.Debug().
		Int("quotes", result.Quotes).
		Int("projections", result.Projections).
		Msg("Scheduled market refresh completed")
}
