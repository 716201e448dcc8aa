package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			-- One live vote per (item, voter); upserts key on this
			CREATE UNIQUE INDEX IF NOT EXISTS idx_votes_item_voter
			ON votes (item_id, voter_key);

			CREATE INDEX IF NOT EXISTS idx_votes_item
			ON votes (item_id);

			CREATE INDEX IF NOT EXISTS idx_votes_user
			ON votes (user_id)
			WHERE user_id > 0;

			CREATE INDEX IF NOT EXISTS idx_votes_anonymous
			ON votes (anonymous_id)
			WHERE anonymous_id IS NOT NULL;

			-- Challenge lookups by window and type
			CREATE INDEX IF NOT EXISTS idx_challenges_active_window
			ON challenges (type, start_at, end_at)
			WHERE active = true;

			CREATE INDEX IF NOT EXISTS idx_challenge_progresses_user
			ON challenge_progresses (user_id);

			-- Price history reads per item
			CREATE INDEX IF NOT EXISTS idx_price_snapshots_item_time
			ON price_snapshots (item_id, observed_at DESC);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP INDEX IF EXISTS idx_votes_item_voter;
			DROP INDEX IF EXISTS idx_votes_item;
			DROP INDEX IF EXISTS idx_votes_user;
			DROP INDEX IF EXISTS idx_votes_anonymous;
			DROP INDEX IF EXISTS idx_challenges_active_window;
			DROP INDEX IF EXISTS idx_challenge_progresses_user;
			DROP INDEX IF EXISTS idx_price_snapshots_item_time;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop indexes: %w", err)
		}

		return nil
	})
}
