package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/safebite/safebite/internal/database/service"
	"github.com/safebite/safebite/internal/database/types"
	"github.com/safebite/safebite/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWeights = service.VoteWeights{Registered: 2, Anonymous: 1}

func registeredVote(safety, taste int) *types.Vote {
	return &types.Vote{Kind: enum.VoterKindRegistered, Safety: safety, Taste: taste}
}

func anonymousVote(safety, taste int) *types.Vote {
	return &types.Vote{Kind: enum.VoterKindAnonymous, Safety: safety, Taste: taste}
}

func TestComputeAggregate_EmptyVoteSet(t *testing.T) {
	t.Parallel()

	result := service.ComputeAggregate(42, nil, testWeights, nil)

	assert.Equal(t, uint64(42), result.ItemID)
	assert.InDelta(t, types.NeutralSafety, result.AvgSafety, 1e-9)
	assert.InDelta(t, types.NeutralTaste, result.AvgTaste, 1e-9)
	assert.Nil(t, result.AvgPrice)
	assert.Equal(t, 0, result.VoteCount)
}

func TestComputeAggregate_WeightedMean(t *testing.T) {
	t.Parallel()

	votes := []*types.Vote{
		registeredVote(80, 60),
		anonymousVote(40, 30),
	}

	result := service.ComputeAggregate(1, votes, testWeights, nil)

	// (80*2 + 40*1) / 3 and (60*2 + 30*1) / 3
	assert.InDelta(t, 200.0/3, result.AvgSafety, 1e-9)
	assert.InDelta(t, 50.0, result.AvgTaste, 1e-9)
	assert.Equal(t, 2, result.VoteCount)
	assert.Equal(t, 1, result.RegisteredVoteCount)
	assert.Equal(t, 1, result.AnonymousVoteCount)
}

func TestComputeAggregate_PriceDenominatorExcludesPricelessVotes(t *testing.T) {
	t.Parallel()

	priced := registeredVote(50, 50)
	price := 80
	priced.Price = &price

	votes := []*types.Vote{
		priced,
		anonymousVote(50, 50), // no price
	}

	result := service.ComputeAggregate(1, votes, testWeights, nil)

	require.NotNil(t, result.AvgPrice)
	assert.InDelta(t, 80.0, *result.AvgPrice, 1e-9)
}

func TestComputeAggregate_Idempotent(t *testing.T) {
	t.Parallel()

	votes := []*types.Vote{
		registeredVote(90, 10),
		anonymousVote(10, 90),
		registeredVote(55, 45),
	}

	first := service.ComputeAggregate(7, votes, testWeights, nil)
	second := service.ComputeAggregate(7, votes, testWeights, nil)

	assert.Equal(t, first, second)
}

func TestComputeAggregate_OrderIndependent(t *testing.T) {
	t.Parallel()

	a := registeredVote(90, 10)
	b := anonymousVote(10, 90)
	c := registeredVote(55, 45)

	forward := service.ComputeAggregate(7, []*types.Vote{a, b, c}, testWeights, nil)
	reversed := service.ComputeAggregate(7, []*types.Vote{c, b, a}, testWeights, nil)

	assert.InDelta(t, forward.AvgSafety, reversed.AvgSafety, 1e-9)
	assert.InDelta(t, forward.AvgTaste, reversed.AvgTaste, 1e-9)
}

func TestComputeAggregate_EditedVoteKeepsCount(t *testing.T) {
	t.Parallel()

	edited := registeredVote(20, 20)
	votes := []*types.Vote{
		edited,
		anonymousVote(60, 60),
		registeredVote(80, 80),
	}

	before := service.ComputeAggregate(9, votes, testWeights, nil)

	// An edit replaces the voter's scores in place rather than adding a
	// second vote, so the counts stay fixed while the averages move.
	edited.Safety = 100
	edited.Taste = 100
	after := service.ComputeAggregate(9, votes, testWeights, nil)

	assert.Equal(t, before.VoteCount, after.VoteCount)
	assert.Equal(t, before.RegisteredVoteCount, after.RegisteredVoteCount)
	assert.Equal(t, before.AnonymousVoteCount, after.AnonymousVoteCount)
	assert.Greater(t, after.AvgSafety, before.AvgSafety)
	assert.Greater(t, after.AvgTaste, before.AvgTaste)
}

func TestComputeAggregate_DecayFavorsRecentVotes(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	old := anonymousVote(0, 0)
	old.CreatedAt = now.AddDate(0, 0, -100)
	fresh := anonymousVote(100, 100)
	fresh.CreatedAt = now

	votes := []*types.Vote{old, fresh}
	decay := &service.DecayOptions{Rate: 0.95, Now: now}

	plain := service.ComputeAggregate(1, votes, testWeights, nil)
	decayed := service.ComputeAggregate(1, votes, testWeights, decay)

	// With equal weights the mean sits at 50; decay pulls it toward the
	// fresh vote.
	assert.InDelta(t, 50.0, plain.AvgSafety, 1e-9)
	assert.Greater(t, decayed.AvgSafety, plain.AvgSafety)

	oldWeight := math.Pow(0.95, 100)
	expected := (0*oldWeight + 100) / (oldWeight + 1)
	assert.InDelta(t, expected, decayed.AvgSafety, 1e-9)
}

func TestComputeAggregate_SameDayVotesKeepFullWeight(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)

	vote := anonymousVote(80, 80)
	vote.CreatedAt = now.Add(-6 * time.Hour)

	decay := &service.DecayOptions{Rate: 0.5, Now: now}
	result := service.ComputeAggregate(1, []*types.Vote{vote}, testWeights, decay)

	assert.InDelta(t, 80.0, result.AvgSafety, 1e-9)
}
