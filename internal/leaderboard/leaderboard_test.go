package leaderboard_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"github.com/safebite/safebite/internal/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTest(t *testing.T) (*leaderboard.Index, func()) {
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

	index := leaderboard.NewIndex(client, logger)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return index, cleanup
}

func TestRank_OrdersByPointsDescending(t *testing.T) {
	t.Parallel()
	index, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	require.NoError(t, index.Set(ctx, 1, 100))
	require.NoError(t, index.Set(ctx, 2, 300))
	require.NoError(t, index.Set(ctx, 3, 200))

	rank, err := index.Rank(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	rank, err = index.Rank(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	rank, err = index.Rank(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, rank)
}

func TestRank_UnknownVoterIsZero(t *testing.T) {
	t.Parallel()
	index, cleanup := setupTest(t)
	defer cleanup()

	rank, err := index.Rank(t.Context(), 99)
	require.NoError(t, err)
	assert.Equal(t, 0, rank)
}

func TestSet_UpdatesExistingEntry(t *testing.T) {
	t.Parallel()
	index, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	require.NoError(t, index.Set(ctx, 1, 100))
	require.NoError(t, index.Set(ctx, 2, 200))
	require.NoError(t, index.Set(ctx, 1, 300))

	rank, err := index.Rank(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	count, err := index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRemove_AbsentEntry(t *testing.T) {
	t.Parallel()
	index, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	require.NoError(t, index.Set(ctx, 1, 100))
	require.NoError(t, index.Remove(ctx, 1))

	err := index.Remove(ctx, 1)
	require.ErrorIs(t, err, leaderboard.ErrEntryAbsent)
}

func TestTop_ReturnsBestFirst(t *testing.T) {
	t.Parallel()
	index, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	require.NoError(t, index.Set(ctx, 1, 100))
	require.NoError(t, index.Set(ctx, 2, 300))
	require.NoError(t, index.Set(ctx, 3, 200))

	top, err := index.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, leaderboard.Entry{UserID: 2, Points: 300}, top[0])
	assert.Equal(t, leaderboard.Entry{UserID: 3, Points: 200}, top[1])
}

func TestCountAtLeast(t *testing.T) {
	t.Parallel()
	index, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	require.NoError(t, index.Set(ctx, 1, 100))
	require.NoError(t, index.Set(ctx, 2, 300))
	require.NoError(t, index.Set(ctx, 3, 200))

	count, err := index.CountAtLeast(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
