package config_test

import (
	"testing"

	"github.com/safebite/safebite/internal/setup/config"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	assert.Equal(t, config.CurrentVersion, cfg.Version)

	// Registered votes outweigh anonymous ones.
	assert.Greater(t, cfg.Vote.RegisteredWeight, cfg.Vote.AnonymousWeight)

	// Decay defaults to off so a missing config never changes aggregates.
	assert.False(t, cfg.Vote.TimeDecayEnabled)
	assert.Zero(t, cfg.Vote.DecayRate)

	for name, bucket := range map[string]config.Bucket{
		"vote_cast":     cfg.RateLimit.VoteCast,
		"item_mutation": cfg.RateLimit.ItemMutation,
	} {
		assert.Positive(t, bucket.Capacity, name)
		assert.Positive(t, bucket.RefillTokens, name)
		assert.Positive(t, bucket.RefillPeriodMS, name)
	}

	assert.Positive(t, cfg.Worker.RecomputeBatchSize)
	assert.Positive(t, cfg.Worker.DispatchBatchSize)
}
