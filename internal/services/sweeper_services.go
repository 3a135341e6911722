package services

import (
	"context"
	"log/slog"
	"time"

	"CartStoreAPI/internal/model"
)

// SweeperService enforces the cart lifecycle: active carts idle past
// IdleAfter become abandoned, carts abandoned past PurgeAfter are deleted
// for good. It is best-effort background work: phase failures are logged
// and never surfaced to the trigger.
type SweeperService struct {
	Carts      CartStore
	Log        *slog.Logger
	IdleAfter  time.Duration
	PurgeAfter time.Duration
}

func NewSweeperService(cs CartStore, log *slog.Logger, idleAfter, purgeAfter time.Duration) *SweeperService {
	return &SweeperService{
		Carts:      cs,
		Log:        log,
		IdleAfter:  idleAfter,
		PurgeAfter: purgeAfter,
	}
}

// Run executes one sweep as a pure function of now: mark phase first, purge
// phase second, each against a fresh predicate query. A cart marked in this
// run carries abandoned_at = now and therefore never qualifies for the purge
// cutoff of the same run. One phase failing does not block the other.
func (s *SweeperService) Run(ctx context.Context, now time.Time) model.SweepReport {
	var report model.SweepReport

	marked, err := s.Carts.MarkAbandonedBefore(ctx, now.Add(-s.IdleAfter), now)
	if err != nil {
		s.Log.Error("sweep: mark phase failed", "error", err)
	} else {
		report.Marked = marked
		s.Log.Info("sweep: marked carts as abandoned", "count", marked)
	}

	purged, err := s.Carts.PurgeAbandonedBefore(ctx, now.Add(-s.PurgeAfter))
	if err != nil {
		s.Log.Error("sweep: purge phase failed", "error", err)
	} else {
		report.Purged = purged
		s.Log.Info("sweep: removed old abandoned carts", "count", purged)
	}

	return report
}
