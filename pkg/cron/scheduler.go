// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/FACorreiaa/quote-desk/internal/domain/geo"
)

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron      *cron.Cron
	refresher *geo.Refresher
	logger    *slog.Logger
}

// NewScheduler creates a new job scheduler.
func NewScheduler(refresher *geo.Refresher, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:      c,
		refresher: refresher,
		logger:    logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	// Customer distance refresh: runs daily at 3:00 AM, after the
	// day's imports have landed.
	_, err := s.cron.AddFunc("0 3 * * *", s.refreshCustomerDistances)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the distance refresh (for admin use).
func (s *Scheduler) RunNow() {
	go s.refreshCustomerDistances()
}

func (s *Scheduler) refreshCustomerDistances() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	s.logger.Info("starting nightly customer distance refresh")

	updated, err := s.refresher.RefreshMissing(ctx)
	if err != nil {
		s.logger.Error("customer distance refresh failed", slog.Any("error", err))
		return
	}

	s.logger.Info("nightly customer distance refresh completed",
		slog.Int("customers_updated", updated),
	)
}
