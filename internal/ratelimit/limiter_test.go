package ratelimit_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonboulle/clockwork"
	"github.com/redis/rueidis"
	"github.com/safebite/safebite/internal/database/types/enum"
	"github.com/safebite/safebite/internal/ratelimit"
	"github.com/safebite/safebite/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTest(t *testing.T, cfg *config.RateLimit) (*ratelimit.Limiter, *clockwork.FakeClock, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	limiter := ratelimit.NewLimiter(client, clock, cfg, logger)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return limiter, clock, cleanup
}

func testConfig() *config.RateLimit {
	return &config.RateLimit{
		// 10 tokens per minute, so one token every 6 seconds.
		VoteCast:     config.Bucket{Capacity: 15, RefillTokens: 10, RefillPeriodMS: 60000},
		ItemMutation: config.Bucket{Capacity: 2, RefillTokens: 1, RefillPeriodMS: 60000},
	}
}

func TestAdmit_AllowsUpToCapacity(t *testing.T) {
	t.Parallel()
	limiter, _, cleanup := setupTest(t, testConfig())
	defer cleanup()

	ctx := t.Context()

	for i := range 15 {
		decision, err := limiter.Admit(ctx, "u:1", enum.ActionTypeVoteCast)
		require.NoError(t, err)
		assert.True(t, decision.OK, "cast %d should be admitted", i+1)
	}

	decision, err := limiter.Admit(ctx, "u:1", enum.ActionTypeVoteCast)
	require.NoError(t, err)
	assert.False(t, decision.OK)
	assert.Positive(t, decision.RetryAfter)
}

func TestAdmit_RefillsOverTime(t *testing.T) {
	t.Parallel()
	limiter, clock, cleanup := setupTest(t, testConfig())
	defer cleanup()

	ctx := t.Context()

	for range 15 {
		decision, err := limiter.Admit(ctx, "u:1", enum.ActionTypeVoteCast)
		require.NoError(t, err)
		require.True(t, decision.OK)
	}

	denied, err := limiter.Admit(ctx, "u:1", enum.ActionTypeVoteCast)
	require.NoError(t, err)
	require.False(t, denied.OK)

	// One token refills every 6 seconds.
	clock.Advance(6 * time.Second)

	decision, err := limiter.Admit(ctx, "u:1", enum.ActionTypeVoteCast)
	require.NoError(t, err)
	assert.True(t, decision.OK)
}

func TestAdmit_RetryAfterMatchesRefillSchedule(t *testing.T) {
	t.Parallel()
	limiter, _, cleanup := setupTest(t, testConfig())
	defer cleanup()

	ctx := t.Context()

	for range 15 {
		_, err := limiter.Admit(ctx, "u:1", enum.ActionTypeVoteCast)
		require.NoError(t, err)
	}

	decision, err := limiter.Admit(ctx, "u:1", enum.ActionTypeVoteCast)
	require.NoError(t, err)
	require.False(t, decision.OK)
	assert.Equal(t, 6*time.Second, decision.RetryAfter)
}

func TestAdmit_VotersHaveIndependentBuckets(t *testing.T) {
	t.Parallel()
	limiter, _, cleanup := setupTest(t, testConfig())
	defer cleanup()

	ctx := t.Context()

	for range 15 {
		decision, err := limiter.Admit(ctx, "u:1", enum.ActionTypeVoteCast)
		require.NoError(t, err)
		require.True(t, decision.OK)
	}

	decision, err := limiter.Admit(ctx, "a:anon-1", enum.ActionTypeVoteCast)
	require.NoError(t, err)
	assert.True(t, decision.OK)
}

func TestAdmit_ActionsHaveIndependentBuckets(t *testing.T) {
	t.Parallel()
	limiter, _, cleanup := setupTest(t, testConfig())
	defer cleanup()

	ctx := t.Context()

	for range 2 {
		decision, err := limiter.Admit(ctx, "u:1", enum.ActionTypeItemMutation)
		require.NoError(t, err)
		require.True(t, decision.OK)
	}

	denied, err := limiter.Admit(ctx, "u:1", enum.ActionTypeItemMutation)
	require.NoError(t, err)
	assert.False(t, denied.OK)

	// The vote bucket is untouched by mutation traffic.
	decision, err := limiter.Admit(ctx, "u:1", enum.ActionTypeVoteCast)
	require.NoError(t, err)
	assert.True(t, decision.OK)
}
