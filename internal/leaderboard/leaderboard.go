package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// ErrEntryAbsent reports a removal that targeted a voter who has no entry
// in the points index. Derived state tolerates this: callers log it as a
// consistency warning and continue, they never fail the primary operation.
var ErrEntryAbsent = errors.New("leaderboard entry absent")

const pointsKey = "reputation:points"

// Index is the order-statistics view over voter points, kept in a Redis
// sorted set so rank and count queries run in logarithmic time. It is
// written in the same flow as the profile points it summarizes and can be
// rebuilt from the profiles at any time.
type Index struct {
	client rueidis.Client
	logger *zap.Logger
}

// NewIndex creates a points index on the given Redis client.
func NewIndex(client rueidis.Client, logger *zap.Logger) *Index {
	return &Index{
		client: client,
		logger: logger.Named("leaderboard"),
	}
}

// Entry is one leaderboard row.
type Entry struct {
	UserID uint64
	Points int64
}

// Set writes a voter's current points. Upserting the same value is a no-op
// on ordering, so redundant writes after recompute are safe.
func (i *Index) Set(ctx context.Context, userID uint64, points int64) error {
	member := strconv.FormatUint(userID, 10)
	err := i.client.Do(ctx,
		i.client.B().Zadd().Key(pointsKey).ScoreMember().
			ScoreMember(float64(points), member).Build(),
	).Error()
	if err != nil {
		return fmt.Errorf("failed to set leaderboard entry: %w", err)
	}
	return nil
}

// Remove deletes a voter's entry. Removing an absent entry returns
// ErrEntryAbsent so the caller can log and continue.
func (i *Index) Remove(ctx context.Context, userID uint64) error {
	member := strconv.FormatUint(userID, 10)
	removed, err := i.client.Do(ctx,
		i.client.B().Zrem().Key(pointsKey).Member(member).Build(),
	).AsInt64()
	if err != nil {
		return fmt.Errorf("failed to remove leaderboard entry: %w", err)
	}

	if removed == 0 {
		return fmt.Errorf("%w: user %d", ErrEntryAbsent, userID)
	}

	return nil
}

// Rank returns a voter's 1-based position ordered by points descending, or
// 0 if the voter has no entry.
func (i *Index) Rank(ctx context.Context, userID uint64) (int, error) {
	member := strconv.FormatUint(userID, 10)
	rank, err := i.client.Do(ctx,
		i.client.B().Zrevrank().Key(pointsKey).Member(member).Build(),
	).AsInt64()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get leaderboard rank: %w", err)
	}

	return int(rank) + 1, nil
}

// Count returns the number of voters in the index.
func (i *Index) Count(ctx context.Context) (int64, error) {
	count, err := i.client.Do(ctx,
		i.client.B().Zcard().Key(pointsKey).Build(),
	).AsInt64()
	if err != nil {
		return 0, fmt.Errorf("failed to count leaderboard entries: %w", err)
	}
	return count, nil
}

// CountAtLeast returns how many voters hold at least the given points.
func (i *Index) CountAtLeast(ctx context.Context, points int64) (int64, error) {
	count, err := i.client.Do(ctx,
		i.client.B().Zcount().Key(pointsKey).
			Min(strconv.FormatInt(points, 10)).Max("+inf").Build(),
	).AsInt64()
	if err != nil {
		return 0, fmt.Errorf("failed to count leaderboard range: %w", err)
	}
	return count, nil
}

// Top returns the highest-scoring voters, best first.
func (i *Index) Top(ctx context.Context, limit int) ([]Entry, error) {
	scores, err := i.client.Do(ctx,
		i.client.B().Zrange().Key(pointsKey).
			Min("0").Max(strconv.Itoa(limit-1)).Rev().Withscores().Build(),
	).AsZScores()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard top: %w", err)
	}

	entries := make([]Entry, 0, len(scores))
	for _, score := range scores {
		userID, err := strconv.ParseUint(score.Member, 10, 64)
		if err != nil {
			i.logger.Warn("Skipping malformed leaderboard member",
				zap.String("member", score.Member))
			continue
		}

		entries = append(entries, Entry{UserID: userID, Points: int64(score.Score)})
	}

	return entries, nil
}
