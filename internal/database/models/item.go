package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/safebite/safebite/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ItemModel handles database operations for catalog items.
type ItemModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewItem creates a new ItemModel instance.
func NewItem(db *bun.DB, logger *zap.Logger) *ItemModel {
	return &ItemModel{
		db:     db,
		logger: logger,
	}
}

// GetItem retrieves an item by ID.
func (m *ItemModel) GetItem(ctx context.Context, itemID uint64) (*types.Item, error) {
	var item types.Item
	err := m.db.NewSelect().
		Model(&item).
		Where("id = ?", itemID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", types.ErrItemNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

// CreateItem inserts a new catalog item and returns it with its assigned ID.
func (m *ItemModel) CreateItem(ctx context.Context, item *types.Item) error {
	_, err := m.db.NewInsert().
		Model(item).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// GetItemIDs returns a page of item IDs ordered by ID, for batched catalog
// sweeps. Pass the last seen ID as afterID (0 for the first page).
func (m *ItemModel) GetItemIDs(ctx context.Context, afterID uint64, limit int) ([]uint64, error) {
	var ids []uint64
	err := m.db.NewSelect().
		Model((*types.Item)(nil)).
		Column("id").
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get item IDs: %w", err)
	}
	return ids, nil
}

// UpdateAggregates writes a recompute result back to the item row. This is
// the only write path for the aggregate columns.
func (m *ItemModel) UpdateAggregates(
	ctx context.Context, result *types.AggregateResult, recomputedAt time.Time,
) error {
	res, err := m.db.NewUpdate().
		Model((*types.Item)(nil)).
		Set("avg_safety = ?", result.AvgSafety).
		Set("avg_taste = ?", result.AvgTaste).
		Set("avg_price = ?", result.AvgPrice).
		Set("vote_count = ?", result.VoteCount).
		Set("registered_vote_count = ?", result.RegisteredVoteCount).
		Set("anonymous_vote_count = ?", result.AnonymousVoteCount).
		Set("last_recomputed_at = ?", recomputedAt).
		Where("id = ?", result.ItemID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update item aggregates: %w", err)
	}

	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("%w: %d", types.ErrItemNotFound, result.ItemID)
	}

	return nil
}

// CreatedItemCount returns how many items a user has registered, used for
// product discovery badge thresholds.
func (m *ItemModel) CreatedItemCount(ctx context.Context, userID uint64) (int64, error) {
	count, err := m.db.NewSelect().
		Model((*types.Item)(nil)).
		Where("creator_id = ?", userID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count created items: %w", err)
	}
	return int64(count), nil
}
