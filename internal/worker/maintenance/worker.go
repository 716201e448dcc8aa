package maintenance

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/safebite/safebite/internal/database/service"
	"github.com/safebite/safebite/internal/setup"
	"go.uber.org/zap"
)

// Worker runs the scheduled background passes: the nightly catalog sweep
// that re-applies time decay to every item, and the weekly challenge
// rotation. Both passes are idempotent, so a missed or doubled run only
// costs work, never correctness.
type Worker struct {
	aggregation *service.AggregationService
	challenges  *service.ChallengeService
	clock       clockwork.Clock
	logger      *zap.Logger
}

// New creates a maintenance worker from the app.
func New(app *setup.App, logger *zap.Logger) *Worker {
	return &Worker{
		aggregation: app.AggregationService,
		challenges:  app.ChallengeService,
		clock:       app.Clock,
		logger:      logger.Named("maintenance"),
	}
}

// Start runs the maintenance schedule until the context is canceled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Maintenance worker started")

	for {
		now := w.clock.Now()
		wakeAt, sweepDue, resetDue := nextWake(now)

		select {
		case <-ctx.Done():
			w.logger.Info("Maintenance worker stopped")
			return
		case <-w.clock.After(wakeAt.Sub(now)):
		}

		if sweepDue {
			w.runCatalogSweep(ctx)
		}
		if resetDue {
			w.runChallengeReset(ctx)
		}
	}
}

// nextWake returns the next scheduled wake time and which of the two jobs
// fall due at it. Only a job whose own deadline equals the wake time runs;
// waking for the weekly reset must not drag the nightly sweep along, and
// vice versa.
func nextWake(now time.Time) (at time.Time, sweepDue, resetDue bool) {
	sweepAt := nextDailySweep(now)
	resetAt := nextWeeklyReset(now)

	at = sweepAt
	if resetAt.Before(at) {
		at = resetAt
	}

	return at, at.Equal(sweepAt), at.Equal(resetAt)
}

// runCatalogSweep rebuilds every item's aggregate with decay applied.
func (w *Worker) runCatalogSweep(ctx context.Context) {
	w.logger.Info("Starting catalog sweep")

	start := w.clock.Now()
	if err := w.aggregation.RecomputeCatalog(ctx); err != nil {
		w.logger.Error("Catalog sweep failed", zap.Error(err))
		return
	}

	w.logger.Info("Catalog sweep finished",
		zap.Duration("elapsed", w.clock.Now().Sub(start)))
}

// runChallengeReset rotates the weekly template challenges.
func (w *Worker) runChallengeReset(ctx context.Context) {
	if err := w.challenges.ResetWeekly(ctx); err != nil {
		w.logger.Error("Weekly challenge reset failed", zap.Error(err))
	}
}

// nextDailySweep returns the next 03:00 UTC after now, when vote traffic
// is lowest.
func nextDailySweep(now time.Time) time.Time {
	now = now.UTC()

	next := time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

// nextWeeklyReset returns the next Monday 00:00 UTC after now.
func nextWeeklyReset(now time.Time) time.Time {
	now = now.UTC()

	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for next.Weekday() != time.Monday || !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}
