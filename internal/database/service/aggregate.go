package service

import (
	"math"
	"time"

	"github.com/safebite/safebite/internal/database/types"
	"github.com/safebite/safebite/internal/database/types/enum"
)

// VoteWeights holds the base weight per voter kind. Identified voters count
// double by default because their votes are accountable.
type VoteWeights struct {
	Registered float64
	Anonymous  float64
}

// DecayOptions enables exponential time decay of vote weights. Rate is the
// per-day multiplier, a value just under 1.
type DecayOptions struct {
	Rate float64
	Now  time.Time
}

// ComputeAggregate derives an item's aggregate from its full vote set. The
// result depends only on the votes and options, never on previous
// aggregates, so recomputing is idempotent and order independent. An empty
// vote set yields the neutral defaults.
func ComputeAggregate(
	itemID uint64, votes []*types.Vote, weights VoteWeights, decay *DecayOptions,
) *types.AggregateResult {
	result := &types.AggregateResult{
		ItemID:    itemID,
		AvgSafety: types.NeutralSafety,
		AvgTaste:  types.NeutralTaste,
	}

	if len(votes) == 0 {
		return result
	}

	var (
		safetySum, tasteSum, weightSum float64
		priceSum, priceWeightSum       float64
	)

	for _, vote := range votes {
		weight := weights.Anonymous
		if vote.Kind == enum.VoterKindRegistered {
			weight = weights.Registered
			result.RegisteredVoteCount++
		} else {
			result.AnonymousVoteCount++
		}

		if decay != nil {
			weight *= decayMultiplier(decay.Rate, vote.CreatedAt, decay.Now)
		}

		safetySum += float64(vote.Safety) * weight
		tasteSum += float64(vote.Taste) * weight
		weightSum += weight

		// Votes without a price keep their own denominator honest.
		if vote.Price != nil {
			priceSum += float64(*vote.Price) * weight
			priceWeightSum += weight
		}
	}

	result.VoteCount = len(votes)

	if weightSum > 0 {
		result.AvgSafety = safetySum / weightSum
		result.AvgTaste = tasteSum / weightSum
	}

	if priceWeightSum > 0 {
		avgPrice := priceSum / priceWeightSum
		result.AvgPrice = &avgPrice
	}

	return result
}

// decayMultiplier returns rate^ageInDays for a vote cast at createdAt. Age
// is measured in whole days so votes cast the same day keep full weight.
func decayMultiplier(rate float64, createdAt, now time.Time) float64 {
	if rate <= 0 || rate >= 1 {
		return 1
	}

	ageDays := math.Floor(now.Sub(createdAt).Hours() / 24)
	if ageDays <= 0 {
		return 1
	}

	return math.Pow(rate, ageDays)
}
