package migrations

import (
	"context"
	"fmt"

	"github.com/safebite/safebite/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.Item)(nil),
			(*types.Vote)(nil),
			(*types.ReputationProfile)(nil),
			(*types.EarnedBadge)(nil),
			(*types.Challenge)(nil),
			(*types.ChallengeProgress)(nil),
			(*types.PriceSnapshot)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table %T: %w", model, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.PriceSnapshot)(nil),
			(*types.ChallengeProgress)(nil),
			(*types.Challenge)(nil),
			(*types.EarnedBadge)(nil),
			(*types.ReputationProfile)(nil),
			(*types.Vote)(nil),
			(*types.Item)(nil),
		}

		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table %T: %w", model, err)
			}
		}

		return nil
	})
}
