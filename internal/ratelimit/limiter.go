package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/rueidis"
	"github.com/safebite/safebite/internal/database/types/enum"
	"github.com/safebite/safebite/internal/setup/config"
	"go.uber.org/zap"
)

// tokenBucketScript atomically refills a bucket based on elapsed time,
// consumes one token when available, and reports how long a denied caller
// has to wait for the next token. State is a Redis hash of the fractional
// token count and the last refill timestamp in milliseconds.
// ARGV: [1]=now_ms, [2]=capacity, [3]=refill_tokens, [4]=refill_period_ms
// Returns {allowed, retry_after_ms}.
var tokenBucketScript = rueidis.NewLuaScript(`
local tokens = tonumber(redis.call('HGET', KEYS[1], 'tokens'))
local ts = tonumber(redis.call('HGET', KEYS[1], 'ts'))
local now = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local refill_period = tonumber(ARGV[4])
if tokens == nil or ts == nil then
	tokens = capacity
	ts = now
end
local refilled = tokens + (now - ts) * refill_tokens / refill_period
if refilled > capacity then
	refilled = capacity
end
local ttl = math.ceil(capacity * refill_period / refill_tokens) + refill_period
if refilled >= 1 then
	redis.call('HSET', KEYS[1], 'tokens', tostring(refilled - 1), 'ts', tostring(now))
	redis.call('PEXPIRE', KEYS[1], ttl)
	return {1, 0}
end
redis.call('HSET', KEYS[1], 'tokens', tostring(refilled), 'ts', tostring(now))
redis.call('PEXPIRE', KEYS[1], ttl)
return {0, math.ceil((1 - refilled) * refill_period / refill_tokens)}
`)

// Decision is the outcome of an admission check. RetryAfter is only set
// when the action was denied.
type Decision struct {
	OK         bool
	RetryAfter time.Duration
}

// Limiter performs token bucket admission control per voter per action
// type. Buckets live in Redis so every instance sees the same state.
type Limiter struct {
	client  rueidis.Client
	clock   clockwork.Clock
	buckets map[enum.ActionType]config.Bucket
	logger  *zap.Logger
}

// NewLimiter creates a limiter with per-action bucket settings.
func NewLimiter(
	client rueidis.Client, clock clockwork.Clock, cfg *config.RateLimit, logger *zap.Logger,
) *Limiter {
	return &Limiter{
		client: client,
		clock:  clock,
		buckets: map[enum.ActionType]config.Bucket{
			enum.ActionTypeVoteCast:     cfg.VoteCast,
			enum.ActionTypeItemMutation: cfg.ItemMutation,
		},
		logger: logger.Named("ratelimit"),
	}
}

// Admit consumes one token from the voter's bucket for the given action.
// Distinct action types have independent buckets. A denied decision always
// carries a positive RetryAfter.
func (l *Limiter) Admit(ctx context.Context, voterKey string, action enum.ActionType) (*Decision, error) {
	bucket, ok := l.buckets[action]
	if !ok {
		return nil, fmt.Errorf("no bucket configured for action %s", action)
	}

	key := fmt.Sprintf("bucket:%s:%s", action, voterKey)
	now := l.clock.Now().UnixMilli()

	result, err := tokenBucketScript.Exec(ctx, l.client,
		[]string{key},
		[]string{
			fmt.Sprintf("%d", now),
			fmt.Sprintf("%d", bucket.Capacity),
			fmt.Sprintf("%d", bucket.RefillTokens),
			fmt.Sprintf("%d", bucket.RefillPeriodMS),
		},
	).AsIntSlice()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected rate limit script result length %d", len(result))
	}

	if result[0] == 1 {
		return &Decision{OK: true}, nil
	}

	retryAfter := time.Duration(result[1]) * time.Millisecond

	l.logger.Debug("Admission denied",
		zap.String("voterKey", voterKey),
		zap.String("action", action.String()),
		zap.Duration("retryAfter", retryAfter))

	return &Decision{OK: false, RetryAfter: retryAfter}, nil
}

// RateLimitedError is returned by callers that convert a denied decision
// into an error carrying the retry hint.
type RateLimitedError struct {
	Action     enum.ActionType
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited for %s, retry after %s", e.Action, e.RetryAfter)
}
