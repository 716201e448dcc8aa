package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/safebite/safebite/internal/database/models"
	"github.com/safebite/safebite/internal/database/types"
	"github.com/safebite/safebite/internal/database/types/enum"
	"go.uber.org/zap"
)

// weeklyTemplates is the set of auto-generated challenges the weekly reset
// seeds for the next period.
var weeklyTemplates = []struct {
	challengeType enum.ChallengeType
	title         string
	target        int
	reward        int
}{
	{enum.ChallengeTypeVoteCount, "Rate 10 items this week", 10, 50},
	{enum.ChallengeTypeGPSVotes, "Tag 5 ratings with a location", 5, 40},
	{enum.ChallengeTypeNewItems, "Discover 3 new items", 3, 60},
	{enum.ChallengeTypeStoreVariety, "Rate items from 3 different stores", 3, 30},
}

// ChallengeService maintains progress against time-boxed goals and grants
// their rewards through the reputation service.
type ChallengeService struct {
	challenges *models.ChallengeModel
	reputation *ReputationService
	clock      clockwork.Clock
	logger     *zap.Logger
}

// NewChallenge creates a new challenge service.
func NewChallenge(
	challenges *models.ChallengeModel,
	reputation *ReputationService,
	clock clockwork.Clock,
	logger *zap.Logger,
) *ChallengeService {
	return &ChallengeService{
		challenges: challenges,
		reputation: reputation,
		clock:      clock,
		logger:     logger.Named("challenge_service"),
	}
}

// Advance adds incrementBy to the voter's progress on every currently
// active challenge of the given type. Crossing a challenge's target
// completes it and grants its reward exactly once; later calls find the
// progress frozen and do nothing.
func (s *ChallengeService) Advance(
	ctx context.Context, userID uint64, challengeType enum.ChallengeType, incrementBy int,
) error {
	if incrementBy <= 0 {
		return nil
	}

	now := s.clock.Now()

	active, err := s.challenges.GetActiveChallenges(ctx, challengeType, now)
	if err != nil {
		return fmt.Errorf("failed to load active challenges: %w", err)
	}

	for _, challenge := range active {
		_, justCompleted, err := s.challenges.AdvanceProgress(ctx, challenge, userID, incrementBy)
		if err != nil {
			return err
		}

		if !justCompleted {
			continue
		}

		s.logger.Info("Challenge completed",
			zap.Uint64("userID", userID),
			zap.Uint64("challengeID", challenge.ID),
			zap.String("type", challenge.Type.String()))

		if err := s.grantReward(ctx, challenge, userID); err != nil {
			// Completion already committed; leave the reward for the
			// manual claim path rather than failing the advance.
			s.logger.Error("Failed to auto-grant challenge reward",
				zap.Uint64("userID", userID),
				zap.Uint64("challengeID", challenge.ID),
				zap.Error(err))
		}
	}

	return nil
}

// ClaimReward is the manual fallback for rewards that were not
// auto-granted on completion. Idempotent: a second claim finds
// rewardClaimed set and returns without granting.
func (s *ChallengeService) ClaimReward(ctx context.Context, userID uint64, challengeID uint64) error {
	challenge, err := s.challenges.GetChallenge(ctx, challengeID)
	if err != nil {
		return err
	}

	claimed, err := s.challenges.ClaimReward(ctx, challengeID, userID)
	if err != nil {
		return err
	}

	if !claimed {
		return nil
	}

	if _, err := s.reputation.AddPoints(ctx, userID, challenge.RewardPoints); err != nil {
		return fmt.Errorf("failed to grant claimed reward: %w", err)
	}

	s.logger.Info("Challenge reward claimed",
		zap.Uint64("userID", userID),
		zap.Uint64("challengeID", challengeID),
		zap.Int("rewardPoints", challenge.RewardPoints))

	return nil
}

// ResetWeekly retires the current template challenges and seeds a fresh
// set covering the next seven days. Admin-authored challenges are not
// touched. Safe to re-run: it only ever deactivates active templates and
// the new set is keyed to the week being seeded.
func (s *ChallengeService) ResetWeekly(ctx context.Context) error {
	deactivated, err := s.challenges.DeactivateTemplates(ctx)
	if err != nil {
		return err
	}

	startAt := startOfWeek(s.clock.Now())
	endAt := startAt.AddDate(0, 0, 7)

	next := make([]*types.Challenge, 0, len(weeklyTemplates))
	for _, tmpl := range weeklyTemplates {
		next = append(next, &types.Challenge{
			Type:         tmpl.challengeType,
			Origin:       enum.ChallengeOriginTemplate,
			Title:        tmpl.title,
			TargetValue:  tmpl.target,
			RewardPoints: tmpl.reward,
			StartAt:      startAt,
			EndAt:        endAt,
			Active:       true,
		})
	}

	if err := s.challenges.InsertChallenges(ctx, next); err != nil {
		return err
	}

	s.logger.Info("Weekly challenge reset finished",
		zap.Int64("deactivated", deactivated),
		zap.Int("seeded", len(next)),
		zap.Time("startAt", startAt))

	return nil
}

// grantReward pays out a completed challenge and marks the reward claimed
// so the manual path cannot pay it again.
func (s *ChallengeService) grantReward(ctx context.Context, challenge *types.Challenge, userID uint64) error {
	if _, err := s.reputation.AddPoints(ctx, userID, challenge.RewardPoints); err != nil {
		return err
	}

	return s.challenges.MarkRewardClaimed(ctx, challenge.ID, userID)
}

// startOfWeek returns midnight UTC of the Monday of now's week.
func startOfWeek(now time.Time) time.Time {
	now = now.UTC()
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started last Monday
	}

	monday := now.AddDate(0, 0, -(weekday - 1))

	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}
