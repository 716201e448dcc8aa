package outbox_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bytedance/sonic"
	"github.com/redis/rueidis"
	"github.com/safebite/safebite/internal/database/types/enum"
	"github.com/safebite/safebite/internal/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTest(t *testing.T) (*outbox.Queue, func()) {
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

	queue := outbox.NewQueue(client, logger)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return queue, cleanup
}

func TestEnqueueAndClaim(t *testing.T) {
	t.Parallel()
	queue, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	job, err := outbox.NewJob(enum.JobTypeRecomputeItem, outbox.RecomputeItemPayload{ItemID: 7})
	require.NoError(t, err)
	require.NoError(t, queue.Enqueue(ctx, job))

	size, err := queue.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)

	claimed, err := queue.Claim(ctx, 10, time.Now())
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, job.ID, claimed[0].ID)
	assert.Equal(t, enum.JobTypeRecomputeItem, claimed[0].Type)

	var payload outbox.RecomputeItemPayload
	require.NoError(t, sonic.Unmarshal(claimed[0].Payload, &payload))
	assert.Equal(t, uint64(7), payload.ItemID)
}

func TestClaim_RemovesClaimedJobs(t *testing.T) {
	t.Parallel()
	queue, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	job, err := outbox.NewJob(enum.JobTypeRecomputeItem, outbox.RecomputeItemPayload{ItemID: 1})
	require.NoError(t, err)
	require.NoError(t, queue.Enqueue(ctx, job))

	first, err := queue.Claim(ctx, 10, time.Now())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := queue.Claim(ctx, 10, time.Now())
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestClaim_RespectsRunAt(t *testing.T) {
	t.Parallel()
	queue, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()
	now := time.Now()

	deferred, err := outbox.NewJob(enum.JobTypeReputationUpdate, outbox.ReputationUpdatePayload{UserID: 5})
	require.NoError(t, err)
	require.NoError(t, queue.EnqueueAt(ctx, deferred, now.Add(time.Minute)))

	claimed, err := queue.Claim(ctx, 10, now)
	require.NoError(t, err)
	assert.Empty(t, claimed)

	claimed, err = queue.Claim(ctx, 10, now.Add(2*time.Minute))
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, deferred.ID, claimed[0].ID)
}

func TestClaim_OrdersByRunAt(t *testing.T) {
	t.Parallel()
	queue, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()
	now := time.Now()

	late, err := outbox.NewJob(enum.JobTypeRecomputeItem, outbox.RecomputeItemPayload{ItemID: 2})
	require.NoError(t, err)
	require.NoError(t, queue.EnqueueAt(ctx, late, now.Add(time.Second)))

	early, err := outbox.NewJob(enum.JobTypeRecomputeItem, outbox.RecomputeItemPayload{ItemID: 1})
	require.NoError(t, err)
	require.NoError(t, queue.EnqueueAt(ctx, early, now))

	claimed, err := queue.Claim(ctx, 10, now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, claimed, 2)
	assert.Equal(t, early.ID, claimed[0].ID)
	assert.Equal(t, late.ID, claimed[1].ID)
}

func TestClaim_HonorsLimit(t *testing.T) {
	t.Parallel()
	queue, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	for i := range 5 {
		job, err := outbox.NewJob(enum.JobTypeRecomputeItem, outbox.RecomputeItemPayload{ItemID: uint64(i)})
		require.NoError(t, err)
		require.NoError(t, queue.Enqueue(ctx, job))
	}

	claimed, err := queue.Claim(ctx, 3, time.Now())
	require.NoError(t, err)
	assert.Len(t, claimed, 3)

	size, err := queue.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)
}
