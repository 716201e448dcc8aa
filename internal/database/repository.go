package database

import (
	"github.com/safebite/safebite/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	item       *models.ItemModel
	vote       *models.VoteModel
	reputation *models.ReputationModel
	challenge  *models.ChallengeModel
	snapshot   *models.SnapshotModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		item:       models.NewItem(db, logger),
		vote:       models.NewVote(db, logger),
		reputation: models.NewReputation(db, logger),
		challenge:  models.NewChallenge(db, logger),
		snapshot:   models.NewSnapshot(db, logger),
	}
}

// Item returns the item model repository.
func (r *Repository) Item() *models.ItemModel {
	return r.item
}

// Vote returns the vote model repository.
func (r *Repository) Vote() *models.VoteModel {
	return r.vote
}

// Reputation returns the reputation model repository.
func (r *Repository) Reputation() *models.ReputationModel {
	return r.reputation
}

// Challenge returns the challenge model repository.
func (r *Repository) Challenge() *models.ChallengeModel {
	return r.challenge
}

// Snapshot returns the price snapshot model repository.
func (r *Repository) Snapshot() *models.SnapshotModel {
	return r.snapshot
}
