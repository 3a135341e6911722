package scheduler

import (
	"context"
	"log/slog"
	"time"

	"CartStoreAPI/internal/services"
)

// Scheduler fires the abandonment sweeper on a fixed cadence. The sweeper
// itself takes now as a parameter, so tests call it directly and this loop
// stays a thin trigger.
type Scheduler struct {
	Sweeper  *services.SweeperService
	Interval time.Duration
	Log      *slog.Logger
}

func New(sw *services.SweeperService, interval time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{Sweeper: sw, Interval: interval, Log: log}
}

// Start launches the sweep loop. It returns immediately; the loop stops
// when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.runLoop(ctx)
}

func (s *Scheduler) runLoop(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Log.Info("cart sweep scheduler started", "interval", s.Interval.String())

	for {
		select {
		case <-ctx.Done():
			s.Log.Info("cart sweep scheduler stopped")
			return
		case <-ticker.C:
			report := s.Sweeper.Run(ctx, time.Now())
			s.Log.Info("cart sweep finished", "marked", report.Marked, "purged", report.Purged)
		}
	}
}
