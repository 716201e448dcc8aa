package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/safebite/safebite/internal/database/dbretry"
	"github.com/safebite/safebite/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ReputationModel handles database operations for reputation profiles and
// earned badges.
type ReputationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewReputation creates a new ReputationModel instance.
func NewReputation(db *bun.DB, logger *zap.Logger) *ReputationModel {
	return &ReputationModel{
		db:     db,
		logger: logger,
	}
}

// GetProfile retrieves a voter's reputation profile. A voter without one
// gets a zero-valued profile back, matching lazy creation on first vote.
func (r *ReputationModel) GetProfile(ctx context.Context, userID uint64) (*types.ReputationProfile, error) {
	var profile types.ReputationProfile
	err := r.db.NewSelect().
		Model(&profile).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &types.ReputationProfile{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to get reputation profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile runs a read-compute-write cycle on one profile inside a
// transaction with the row locked, creating the profile if absent. The
// updated profile is returned.
func (r *ReputationModel) UpdateProfile(
	ctx context.Context, userID uint64, update func(*types.ReputationProfile),
) (*types.ReputationProfile, error) {
	var profile types.ReputationProfile

	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		// Rebuilt from scratch on every attempt.
		profile = types.ReputationProfile{}

		err := tx.NewSelect().
			Model(&profile).
			Where("user_id = ?", userID).
			For("UPDATE").
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to get reputation profile: %w", err)
		}

		profile.UserID = userID
		update(&profile)
		profile.UpdatedAt = time.Now()

		_, err = tx.NewInsert().
			Model(&profile).
			On("CONFLICT (user_id) DO UPDATE").
			Set("points = EXCLUDED.points").
			Set("streak_days = EXCLUDED.streak_days").
			Set("last_vote_date = EXCLUDED.last_vote_date").
			Set("total_votes = EXCLUDED.total_votes").
			Set("gps_votes = EXCLUDED.gps_votes").
			Set("new_product_votes = EXCLUDED.new_product_votes").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update reputation profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update profile for user %d: %w", userID, err)
	}

	return &profile, nil
}

// DeleteProfile removes a voter's profile and earned badges, e.g. on
// account deletion. Deleting an absent profile is a no-op.
func (r *ReputationModel) DeleteProfile(ctx context.Context, userID uint64) error {
	return dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*types.EarnedBadge)(nil)).
			Where("user_id = ?", userID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete earned badges: %w", err)
		}

		if _, err := tx.NewDelete().
			Model((*types.ReputationProfile)(nil)).
			Where("user_id = ?", userID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete reputation profile: %w", err)
		}

		return nil
	})
}

// GetBadgeIDs returns the set of badges a voter holds.
func (r *ReputationModel) GetBadgeIDs(ctx context.Context, userID uint64) (map[string]struct{}, error) {
	var ids []string
	err := r.db.NewSelect().
		Model((*types.EarnedBadge)(nil)).
		Column("badge_id").
		Where("user_id = ?", userID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get earned badges: %w", err)
	}

	held := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		held[id] = struct{}{}
	}

	return held, nil
}

// GrantBadges inserts newly earned badges. Already-held badges are left
// untouched, so redundant evaluation runs are safe.
func (r *ReputationModel) GrantBadges(ctx context.Context, badges []types.EarnedBadge) error {
	if len(badges) == 0 {
		return nil
	}

	_, err := r.db.NewInsert().
		Model(&badges).
		On("CONFLICT (user_id, badge_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to grant badges: %w", err)
	}

	return nil
}
