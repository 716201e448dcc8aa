package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"github.com/safebite/safebite/internal/database/types"
	"github.com/safebite/safebite/internal/database/types/enum"
	"go.uber.org/zap"
)

const queueKey = "outbox:jobs"

// Job is one unit of asynchronous work chained after a committed write.
// Jobs are idempotent; re-running a claimed job after a crash is safe.
type Job struct {
	ID         string          `json:"id"`
	Type       enum.JobType    `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Attempts   int             `json:"attempts"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}

// RecomputeItemPayload asks for one item's aggregate to be rebuilt.
type RecomputeItemPayload struct {
	ItemID uint64 `json:"itemId"`
}

// ReputationUpdatePayload asks for one voter's gamification state to be
// advanced for a committed vote.
type ReputationUpdatePayload struct {
	UserID uint64          `json:"userId"`
	Event  types.VoteEvent `json:"event"`
}

// NotifyNearbyPayload carries the hand-off for the external nearby-user
// notifier.
type NotifyNearbyPayload = types.NearbyNotification

// claimScript pops up to ARGV[2] jobs whose run-at score is due at ARGV[1],
// atomically, so concurrent dispatch loops never claim the same job.
var claimScript = rueidis.NewLuaScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, tonumber(ARGV[2]))
if #due > 0 then
	redis.call('ZREM', KEYS[1], unpack(due))
end
return due
`)

// Queue is the Redis-backed job queue the write path enqueues into and the
// dispatch worker consumes from. Jobs are a sorted set scored by the time
// they become runnable, which doubles as the deferral mechanism for
// staggered batches and retry backoff.
type Queue struct {
	client rueidis.Client
	logger *zap.Logger
}

// NewQueue creates a queue on the given Redis client.
func NewQueue(client rueidis.Client, logger *zap.Logger) *Queue {
	return &Queue{
		client: client,
		logger: logger.Named("outbox"),
	}
}

// NewJob builds a job with a fresh ID and a sonic-encoded payload.
func NewJob(jobType enum.JobType, payload any) (*Job, error) {
	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job payload: %w", err)
	}

	return &Job{
		ID:         uuid.New().String(),
		Type:       jobType,
		Payload:    encoded,
		EnqueuedAt: time.Now(),
	}, nil
}

// Enqueue schedules a job to run as soon as a worker picks it up.
func (q *Queue) Enqueue(ctx context.Context, job *Job) error {
	return q.EnqueueAt(ctx, job, time.Now())
}

// EnqueueAt schedules a job to become runnable at the given time.
func (q *Queue) EnqueueAt(ctx context.Context, job *Job, runAt time.Time) error {
	encoded, err := sonic.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	err = q.client.Do(ctx,
		q.client.B().Zadd().Key(queueKey).ScoreMember().
			ScoreMember(float64(runAt.UnixMilli()), string(encoded)).Build(),
	).Error()
	if err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}

	q.logger.Debug("Enqueued job",
		zap.String("jobID", job.ID),
		zap.String("type", job.Type.String()),
		zap.Time("runAt", runAt))

	return nil
}

// Claim removes and returns up to limit jobs that are due at the given
// time. Claimed jobs are gone from the queue; a failed job must be
// re-enqueued by the worker.
func (q *Queue) Claim(ctx context.Context, limit int, now time.Time) ([]*Job, error) {
	members, err := claimScript.Exec(ctx, q.client,
		[]string{queueKey},
		[]string{
			fmt.Sprintf("%d", now.UnixMilli()),
			fmt.Sprintf("%d", limit),
		},
	).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to claim jobs: %w", err)
	}

	jobs := make([]*Job, 0, len(members))
	for _, member := range members {
		var job Job
		if err := sonic.Unmarshal([]byte(member), &job); err != nil {
			q.logger.Error("Dropping undecodable job", zap.Error(err))
			continue
		}
		jobs = append(jobs, &job)
	}

	return jobs, nil
}

// Size returns the number of pending jobs, due or deferred.
func (q *Queue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.Do(ctx,
		q.client.B().Zcard().Key(queueKey).Build(),
	).AsInt64()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue size: %w", err)
	}
	return size, nil
}
