package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/safebite/safebite/internal/database/models"
	"github.com/safebite/safebite/internal/database/types"
	"github.com/safebite/safebite/internal/setup/config"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RecomputeOptions controls one item recompute.
type RecomputeOptions struct {
	// ApplyDecay weights votes down by age. Only the nightly catalog
	// sweep turns this on; the incremental path after each cast does not.
	ApplyDecay bool
}

// AggregationService rebuilds item aggregates from raw vote sets. The
// aggregate columns are a materialized view: every path goes through the
// same full rebuild, so incremental and batch recomputes can never drift.
type AggregationService struct {
	items   *models.ItemModel
	votes   *models.VoteModel
	voteCfg *config.Vote
	worker  *config.Worker
	clock   clockwork.Clock
	logger  *zap.Logger
}

// NewAggregation creates a new aggregation service.
func NewAggregation(
	items *models.ItemModel, votes *models.VoteModel, cfg *config.Config,
	clock clockwork.Clock, logger *zap.Logger,
) *AggregationService {
	return &AggregationService{
		items:   items,
		votes:   votes,
		voteCfg: &cfg.Vote,
		worker:  &cfg.Worker,
		clock:   clock,
		logger:  logger.Named("aggregation_service"),
	}
}

// RecomputeItem rebuilds one item's aggregate from its current vote set
// and writes it back. Safe to run redundantly and concurrently with new
// votes: a stale recompute is superseded by the next one.
func (s *AggregationService) RecomputeItem(
	ctx context.Context, itemID uint64, opts RecomputeOptions,
) (*types.AggregateResult, error) {
	votes, err := s.votes.GetVotesByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	weights := VoteWeights{
		Registered: s.voteCfg.RegisteredWeight,
		Anonymous:  s.voteCfg.AnonymousWeight,
	}

	var decay *DecayOptions
	if opts.ApplyDecay && s.voteCfg.TimeDecayEnabled && s.voteCfg.DecayRate > 0 {
		decay = &DecayOptions{Rate: s.voteCfg.DecayRate, Now: s.clock.Now()}
	}

	result := ComputeAggregate(itemID, votes, weights, decay)

	if err := s.items.UpdateAggregates(ctx, result, s.clock.Now()); err != nil {
		return nil, fmt.Errorf("failed to store aggregates: %w", err)
	}

	s.logger.Debug("Recomputed item aggregate",
		zap.Uint64("itemID", itemID),
		zap.Float64("avgSafety", result.AvgSafety),
		zap.Float64("avgTaste", result.AvgTaste),
		zap.Int("voteCount", result.VoteCount),
		zap.Bool("decayed", decay != nil))

	return result, nil
}

// RecomputeCatalog sweeps every item in fixed-size batches with decay
// weighting enabled. Batches after the first wait on a pacing limiter so
// the sweep never spikes load on the store. Items that fail are logged and
// skipped; the next sweep picks them up again.
func (s *AggregationService) RecomputeCatalog(ctx context.Context) error {
	batchDelay := time.Duration(s.worker.RecomputeBatchDelayMS) * time.Millisecond
	pacer := rate.NewLimiter(rate.Every(batchDelay), 1)

	var (
		afterID uint64
		total   int
		failed  int
	)

	for {
		if err := pacer.Wait(ctx); err != nil {
			return fmt.Errorf("catalog sweep interrupted: %w", err)
		}

		ids, err := s.items.GetItemIDs(ctx, afterID, s.worker.RecomputeBatchSize)
		if err != nil {
			return fmt.Errorf("failed to page item IDs: %w", err)
		}

		if len(ids) == 0 {
			break
		}

		for _, id := range ids {
			if _, err := s.RecomputeItem(ctx, id, RecomputeOptions{ApplyDecay: true}); err != nil {
				failed++
				s.logger.Error("Failed to recompute item during sweep",
					zap.Uint64("itemID", id),
					zap.Error(err))
				continue
			}
			total++
		}

		afterID = ids[len(ids)-1]
	}

	s.logger.Info("Catalog sweep finished",
		zap.Int("recomputed", total),
		zap.Int("failed", failed))

	return nil
}
