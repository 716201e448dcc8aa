package models

import (
	"context"
	"fmt"

	"github.com/safebite/safebite/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// SnapshotModel handles database operations for price snapshots.
type SnapshotModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewSnapshot creates a new SnapshotModel instance.
func NewSnapshot(db *bun.DB, logger *zap.Logger) *SnapshotModel {
	return &SnapshotModel{
		db:     db,
		logger: logger,
	}
}

// InsertSnapshot appends one observed price to an item's history.
func (m *SnapshotModel) InsertSnapshot(ctx context.Context, snapshot *types.PriceSnapshot) error {
	_, err := m.db.NewInsert().
		Model(snapshot).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert price snapshot: %w", err)
	}
	return nil
}

// GetItemHistory returns an item's most recent price observations, newest
// first.
func (m *SnapshotModel) GetItemHistory(ctx context.Context, itemID uint64, limit int) ([]*types.PriceSnapshot, error) {
	var snapshots []*types.PriceSnapshot
	err := m.db.NewSelect().
		Model(&snapshots).
		Where("item_id = ?", itemID).
		Order("observed_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get price history: %w", err)
	}
	return snapshots, nil
}
