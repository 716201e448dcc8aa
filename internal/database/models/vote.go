package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safebite/safebite/internal/database/dbretry"
	"github.com/safebite/safebite/internal/database/types"
	"github.com/safebite/safebite/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// VoteModel handles database operations for vote records.
type VoteModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewVote creates a new VoteModel instance.
func NewVote(db *bun.DB, logger *zap.Logger) *VoteModel {
	return &VoteModel{
		db:     db,
		logger: logger,
	}
}

// UpsertVote stores a vote, overwriting the numeric fields and metadata of
// an existing (item, voter) row while preserving its ID and creation time.
// Returns the stored vote ID and whether the cast edited an existing row.
func (m *VoteModel) UpsertVote(ctx context.Context, vote *types.Vote) (uuid.UUID, bool, error) {
	var (
		voteID   uuid.UUID
		inserted bool
	)

	err := m.db.NewInsert().
		Model(vote).
		On("CONFLICT (item_id, voter_key) DO UPDATE").
		Set("safety = EXCLUDED.safety").
		Set("taste = EXCLUDED.taste").
		Set("price = EXCLUDED.price").
		Set("store_tag = EXCLUDED.store_tag").
		Set("latitude = EXCLUDED.latitude").
		Set("longitude = EXCLUDED.longitude").
		Set("updated_at = EXCLUDED.updated_at").
		// xmax is zero only for rows this statement freshly inserted
		Returning("id, (xmax = 0)").
		Scan(ctx, &voteID, &inserted)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to upsert vote: %w", err)
	}

	return voteID, !inserted, nil
}

// GetVote retrieves a vote by ID.
func (m *VoteModel) GetVote(ctx context.Context, voteID uuid.UUID) (*types.Vote, error) {
	var vote types.Vote
	err := m.db.NewSelect().
		Model(&vote).
		Where("id = ?", voteID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", types.ErrVoteNotFound, voteID)
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &vote, nil
}

// GetVotesByItem retrieves every vote currently held against an item.
func (m *VoteModel) GetVotesByItem(ctx context.Context, itemID uint64) ([]*types.Vote, error) {
	var votes []*types.Vote
	err := m.db.NewSelect().
		Model(&votes).
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes for item: %w", err)
	}
	return votes, nil
}

// HasVotes reports whether an item has at least one vote. Used to detect
// first-vote discovery without trusting the cached aggregate counts.
func (m *VoteModel) HasVotes(ctx context.Context, itemID uint64) (bool, error) {
	exists, err := m.db.NewSelect().
		Model((*types.Vote)(nil)).
		Where("item_id = ?", itemID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check item votes: %w", err)
	}
	return exists, nil
}

// DeleteVote removes a vote row.
func (m *VoteModel) DeleteVote(ctx context.Context, voteID uuid.UUID) error {
	res, err := m.db.NewDelete().
		Model((*types.Vote)(nil)).
		Where("id = ?", voteID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}

	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("%w: %s", types.ErrVoteNotFound, voteID)
	}

	return nil
}

// MigrateAnonymousVotes re-owns an anonymous voter's votes to a newly
// authenticated user. Votes on items the user already voted on are
// discarded; the rest change owner in place. Running it again is a no-op
// because no vote matches the anonymous key afterwards.
// Returns how many votes were re-owned.
func (m *VoteModel) MigrateAnonymousVotes(ctx context.Context, anonymousID string, userID uint64) (int64, error) {
	userKey := fmt.Sprintf("u:%d", userID)
	anonKey := "a:" + anonymousID

	var migrated int64

	err := dbretry.Transaction(ctx, m.db, func(ctx context.Context, tx bun.Tx) error {
		// Drop anonymous votes that would collide with an existing
		// identified vote on the same item.
		_, err := tx.NewDelete().
			Model((*types.Vote)(nil)).
			Where("voter_key = ?", anonKey).
			Where("item_id IN (SELECT item_id FROM votes WHERE voter_key = ?)", userKey).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop duplicate anonymous votes: %w", err)
		}

		res, err := tx.NewUpdate().
			Model((*types.Vote)(nil)).
			Set("voter_key = ?", userKey).
			Set("user_id = ?", userID).
			Set("anonymous_id = NULL").
			Set("kind = ?", enum.VoterKindRegistered).
			Set("updated_at = ?", time.Now()).
			Where("voter_key = ?", anonKey).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to re-own anonymous votes: %w", err)
		}

		migrated, err = res.RowsAffected()
		if err != nil {
			migrated = 0
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to migrate anonymous votes: %w", err)
	}

	return migrated, nil
}

// ItemIDsByVoterKey returns the IDs of every item the voter currently has a
// vote on. Used to target recomputes after a bulk ownership change.
func (m *VoteModel) ItemIDsByVoterKey(ctx context.Context, voterKey string) ([]uint64, error) {
	var ids []uint64
	err := m.db.NewSelect().
		Model((*types.Vote)(nil)).
		Column("item_id").
		Where("voter_key = ?", voterKey).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get voter item IDs: %w", err)
	}
	return ids, nil
}

// DistinctStoreCount returns how many distinct store tags a user has voted
// with, used for store variety badge thresholds.
func (m *VoteModel) DistinctStoreCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := m.db.NewSelect().
		Model((*types.Vote)(nil)).
		ColumnExpr("COUNT(DISTINCT store_tag)").
		Where("user_id = ?", userID).
		Where("store_tag IS NOT NULL").
		Scan(ctx, &count)
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct stores: %w", err)
	}
	return count, nil
}
