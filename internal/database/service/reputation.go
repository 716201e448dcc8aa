package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/safebite/safebite/internal/database/models"
	"github.com/safebite/safebite/internal/database/types"
	"github.com/safebite/safebite/internal/database/types/enum"
	"github.com/safebite/safebite/internal/leaderboard"
	"github.com/safebite/safebite/internal/setup/config"
	"go.uber.org/zap"
)

// ReputationService maintains per-voter gamification state: points,
// day-streaks, and the earned badge set.
type ReputationService struct {
	profiles *models.ReputationModel
	votes    *models.VoteModel
	items    *models.ItemModel
	board    *leaderboard.Index
	cfg      *config.Reputation
	catalog  []types.BadgeDefinition
	clock    clockwork.Clock
	logger   *zap.Logger
}

// NewReputation creates a new reputation service using the default badge
// catalog.
func NewReputation(
	profiles *models.ReputationModel,
	votes *models.VoteModel,
	items *models.ItemModel,
	board *leaderboard.Index,
	cfg *config.Reputation,
	clock clockwork.Clock,
	logger *zap.Logger,
) *ReputationService {
	return &ReputationService{
		profiles: profiles,
		votes:    votes,
		items:    items,
		board:    board,
		cfg:      cfg,
		catalog:  DefaultBadgeCatalog,
		clock:    clock,
		logger:   logger.Named("reputation_service"),
	}
}

// ApplyVoteEvent advances a voter's streak, counters, and points for one
// committed vote and returns the points earned. Edits refresh the streak
// but award nothing. The profile write is a single atomic read-compute-
// write cycle, so a failed run leaves no partial state and can be retried.
func (s *ReputationService) ApplyVoteEvent(
	ctx context.Context, userID uint64, event types.VoteEvent,
) (int, error) {
	var earned int

	profile, err := s.profiles.UpdateProfile(ctx, userID, func(p *types.ReputationProfile) {
		now := s.clock.Now()

		// Streak is updated before scoring so the streak bonus sees the
		// post-update value.
		p.StreakDays = NextStreak(p.StreakDays, p.LastVoteDate, now)
		p.LastVoteDate = now

		if event.IsEdit {
			return
		}

		p.TotalVotes++
		if event.HasGPS {
			p.GPSVotes++
		}
		if event.IsNewItem {
			p.NewProductVotes++
		}

		earned = s.pointsFor(event, p.StreakDays)
		p.Points += int64(earned)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to apply vote event: %w", err)
	}

	s.syncLeaderboard(ctx, userID, profile.Points)

	if err := s.EvaluateBadges(ctx, userID); err != nil {
		// Badge grants are monotonic and re-evaluated on every vote, so a
		// miss here heals on the voter's next event.
		s.logger.Warn("Badge evaluation failed",
			zap.Uint64("userID", userID),
			zap.Error(err))
	}

	return earned, nil
}

// RemoveProfile deletes a voter's gamification state and their entry in
// the points index. A voter who never made the index only produces a
// consistency warning, not a failure.
func (s *ReputationService) RemoveProfile(ctx context.Context, userID uint64) error {
	if err := s.profiles.DeleteProfile(ctx, userID); err != nil {
		return err
	}

	if err := s.board.Remove(ctx, userID); err != nil {
		if !errors.Is(err, leaderboard.ErrEntryAbsent) {
			return fmt.Errorf("failed to remove leaderboard entry: %w", err)
		}
		s.logger.Warn("Leaderboard entry already absent",
			zap.Uint64("userID", userID))
	}

	s.logger.Info("Removed reputation profile", zap.Uint64("userID", userID))

	return nil
}

// AddPoints grants a flat point amount outside the vote flow, e.g. a
// challenge reward. Returns the voter's new total.
func (s *ReputationService) AddPoints(ctx context.Context, userID uint64, points int) (int64, error) {
	profile, err := s.profiles.UpdateProfile(ctx, userID, func(p *types.ReputationProfile) {
		p.Points += int64(points)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add points: %w", err)
	}

	s.syncLeaderboard(ctx, userID, profile.Points)

	return profile.Points, nil
}

// GetProfile returns a voter's current reputation state.
func (s *ReputationService) GetProfile(ctx context.Context, userID uint64) (*types.ReputationProfile, error) {
	return s.profiles.GetProfile(ctx, userID)
}

// pointsFor sums the base award and the independent bonuses. There are no
// multiplicative interactions between bonuses.
func (s *ReputationService) pointsFor(event types.VoteEvent, streakDays int) int {
	points := s.cfg.BasePoints

	if event.HasPrice {
		points += s.cfg.PriceBonus
	}
	if event.HasStore {
		points += s.cfg.StoreBonus
	}
	if event.HasGPS {
		points += s.cfg.GPSBonus
	}
	if event.IsNewItem {
		points += s.cfg.NewItemBonus
	}
	if streakDays >= s.cfg.StreakBonusMin {
		points += s.cfg.StreakBonus
	}

	return points
}

// EvaluateBadges grants every badge whose threshold the voter now meets
// and does not already hold. The earned set only grows, so running this
// after every vote is safe.
func (s *ReputationService) EvaluateBadges(ctx context.Context, userID uint64) error {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	held, err := s.profiles.GetBadgeIDs(ctx, userID)
	if err != nil {
		return err
	}

	stats := badgeStats{
		totalVotes: profile.TotalVotes,
		gpsVotes:   profile.GPSVotes,
		streakDays: int64(profile.StreakDays),
	}

	// Store variety and product discovery need their own queries; only pay
	// for them when an unheld badge of that type exists.
	if s.needsStat(held, enum.BadgeTypeStores) {
		stats.distinctStores, err = s.votes.DistinctStoreCount(ctx, userID)
		if err != nil {
			return err
		}
	}

	if s.needsStat(held, enum.BadgeTypeProducts) {
		stats.createdItems, err = s.items.CreatedItemCount(ctx, userID)
		if err != nil {
			return err
		}
	}

	earned := newlyEarned(s.catalog, held, stats)
	if len(earned) == 0 {
		return nil
	}

	now := s.clock.Now()

	granted := make([]types.EarnedBadge, 0, len(earned))
	for _, def := range earned {
		granted = append(granted, types.EarnedBadge{
			UserID:   userID,
			BadgeID:  def.ID,
			EarnedAt: now,
		})
	}

	if err := s.profiles.GrantBadges(ctx, granted); err != nil {
		return err
	}

	for _, badge := range granted {
		s.logger.Info("Granted badge",
			zap.Uint64("userID", userID),
			zap.String("badgeID", badge.BadgeID))
	}

	return nil
}

// needsStat reports whether the catalog still has an unheld badge keyed on
// the given type.
func (s *ReputationService) needsStat(held map[string]struct{}, badgeType enum.BadgeType) bool {
	for _, def := range s.catalog {
		if def.Type != badgeType {
			continue
		}
		if _, ok := held[def.ID]; !ok {
			return true
		}
	}
	return false
}

// syncLeaderboard mirrors the voter's points into the derived index. The
// index is rebuildable, so a failed write is only logged; an absent-entry
// removal elsewhere surfaces the same way.
func (s *ReputationService) syncLeaderboard(ctx context.Context, userID uint64, points int64) {
	if err := s.board.Set(ctx, userID, points); err != nil {
		if errors.Is(err, leaderboard.ErrEntryAbsent) {
			s.logger.Warn("Leaderboard entry absent",
				zap.Uint64("userID", userID),
				zap.Error(err))
			return
		}
		s.logger.Error("Failed to sync leaderboard",
			zap.Uint64("userID", userID),
			zap.Error(err))
	}
}
