package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/safebite/safebite/internal/database/dbretry"
	"github.com/safebite/safebite/internal/database/types"
	"github.com/safebite/safebite/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ChallengeModel handles database operations for challenges and per-voter
// progress records.
type ChallengeModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewChallenge creates a new ChallengeModel instance.
func NewChallenge(db *bun.DB, logger *zap.Logger) *ChallengeModel {
	return &ChallengeModel{
		db:     db,
		logger: logger,
	}
}

// GetChallenge retrieves a challenge by ID.
func (m *ChallengeModel) GetChallenge(ctx context.Context, challengeID uint64) (*types.Challenge, error) {
	var challenge types.Challenge
	err := m.db.NewSelect().
		Model(&challenge).
		Where("id = ?", challengeID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", types.ErrChallengeNotFound, challengeID)
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	return &challenge, nil
}

// GetActiveChallenges returns the challenges of a type whose window covers
// the given time.
func (m *ChallengeModel) GetActiveChallenges(
	ctx context.Context, challengeType enum.ChallengeType, now time.Time,
) ([]*types.Challenge, error) {
	var challenges []*types.Challenge
	err := m.db.NewSelect().
		Model(&challenges).
		Where("type = ?", challengeType).
		Where("active = true").
		Where("start_at <= ?", now).
		Where("end_at >= ?", now).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active challenges: %w", err)
	}
	return challenges, nil
}

// InsertChallenges stores a batch of new challenge definitions.
func (m *ChallengeModel) InsertChallenges(ctx context.Context, challenges []*types.Challenge) error {
	if len(challenges) == 0 {
		return nil
	}

	_, err := m.db.NewInsert().
		Model(&challenges).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert challenges: %w", err)
	}

	return nil
}

// DeactivateTemplates marks all currently active template challenges
// inactive. Admin-authored challenges are not touched.
// Returns how many were deactivated.
func (m *ChallengeModel) DeactivateTemplates(ctx context.Context) (int64, error) {
	res, err := m.db.NewUpdate().
		Model((*types.Challenge)(nil)).
		Set("active = false").
		Where("origin = ?", enum.ChallengeOriginTemplate).
		Where("active = true").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate template challenges: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		rows = 0
	}

	return rows, nil
}

// AdvanceProgress adds incrementBy to one voter's progress on one challenge
// inside a transaction with the row locked, creating the record if absent.
// Completed progress is frozen. Returns the updated record and whether this
// call crossed the completion boundary.
func (m *ChallengeModel) AdvanceProgress(
	ctx context.Context, challenge *types.Challenge, userID uint64, incrementBy int,
) (*types.ChallengeProgress, bool, error) {
	var (
		progress     types.ChallengeProgress
		justComplete bool
	)

	err := dbretry.Transaction(ctx, m.db, func(ctx context.Context, tx bun.Tx) error {
		// Rebuilt from scratch on every attempt.
		progress = types.ChallengeProgress{}
		justComplete = false

		err := tx.NewSelect().
			Model(&progress).
			Where("challenge_id = ?", challenge.ID).
			Where("user_id = ?", userID).
			For("UPDATE").
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to get challenge progress: %w", err)
		}

		if progress.Completed {
			return nil
		}

		progress.ChallengeID = challenge.ID
		progress.UserID = userID
		justComplete = progress.Apply(challenge.TargetValue, incrementBy)
		progress.UpdatedAt = time.Now()

		_, err = tx.NewInsert().
			Model(&progress).
			On("CONFLICT (challenge_id, user_id) DO UPDATE").
			Set("progress = EXCLUDED.progress").
			Set("completed = EXCLUDED.completed").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update challenge progress: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to advance challenge %d: %w", challenge.ID, err)
	}

	return &progress, justComplete, nil
}

// ClaimReward marks a completed progress record's reward as claimed.
// Returns true if this call performed the claim, false if it was already
// claimed. Incomplete progress is rejected.
func (m *ChallengeModel) ClaimReward(ctx context.Context, challengeID uint64, userID uint64) (bool, error) {
	var claimed bool

	err := dbretry.Transaction(ctx, m.db, func(ctx context.Context, tx bun.Tx) error {
		claimed = false

		var progress types.ChallengeProgress
		err := tx.NewSelect().
			Model(&progress).
			Where("challenge_id = ?", challengeID).
			Where("user_id = ?", userID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: no progress for challenge %d", types.ErrRewardNotClaimable, challengeID)
			}
			return fmt.Errorf("failed to get challenge progress: %w", err)
		}

		if !progress.Completed {
			return fmt.Errorf("%w: challenge %d not completed", types.ErrRewardNotClaimable, challengeID)
		}

		if progress.RewardClaimed {
			return nil
		}

		_, err = tx.NewUpdate().
			Model((*types.ChallengeProgress)(nil)).
			Set("reward_claimed = true").
			Set("updated_at = ?", time.Now()).
			Where("challenge_id = ?", challengeID).
			Where("user_id = ?", userID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to claim reward: %w", err)
		}

		claimed = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return claimed, nil
}

// MarkRewardClaimed records that a reward was auto-granted on completion so
// the manual claim path cannot grant it again.
func (m *ChallengeModel) MarkRewardClaimed(ctx context.Context, challengeID uint64, userID uint64) error {
	_, err := m.db.NewUpdate().
		Model((*types.ChallengeProgress)(nil)).
		Set("reward_claimed = true").
		Set("updated_at = ?", time.Now()).
		Where("challenge_id = ?", challengeID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark reward claimed: %w", err)
	}
	return nil
}
