package types

import (
	"errors"
	"time"

	"github.com/safebite/safebite/internal/database/types/enum"
)

// Common errors for challenge operations.
var (
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrRewardNotClaimable = errors.New("challenge reward is not claimable")
)

// Challenge is a time-boxed goal definition. Template challenges are
// replaced by the weekly reset; admin challenges survive it.
type Challenge struct {
	ID           uint64               `bun:",pk,autoincrement" json:"id"`
	Type         enum.ChallengeType   `bun:",notnull"          json:"type"`
	Origin       enum.ChallengeOrigin `bun:",notnull"          json:"origin"`
	Title        string               `bun:",notnull"          json:"title"`
	TargetValue  int                  `bun:",notnull"          json:"targetValue"`
	RewardPoints int                  `bun:",notnull"          json:"rewardPoints"`
	StartAt      time.Time            `bun:",notnull"          json:"startAt"`
	EndAt        time.Time            `bun:",notnull"          json:"endAt"`
	Active       bool                 `bun:",notnull"          json:"active"`
}

// ActiveAt reports whether the challenge window covers the given time.
func (c *Challenge) ActiveAt(now time.Time) bool {
	return c.Active && !now.Before(c.StartAt) && !now.After(c.EndAt)
}

// ChallengeProgress is one voter's counter against one challenge.
// Invariants: Completed implies Progress >= TargetValue, and RewardClaimed
// implies Completed. Completed progress is frozen.
type ChallengeProgress struct {
	ChallengeID   uint64    `bun:",pk"      json:"challengeId"`
	UserID        uint64    `bun:",pk"      json:"userId"`
	Progress      int       `bun:",notnull" json:"progress"`
	Completed     bool      `bun:",notnull" json:"completed"`
	RewardClaimed bool      `bun:",notnull" json:"rewardClaimed"`
	UpdatedAt     time.Time `bun:",notnull" json:"updatedAt"`
}

// Apply adds incrementBy to the progress against a target. Completed
// progress is frozen and takes no further increments. Reports whether this
// call crossed the completion boundary, which can happen at most once over
// a record's lifetime.
func (p *ChallengeProgress) Apply(target, incrementBy int) bool {
	if p.Completed {
		return false
	}

	p.Progress += incrementBy

	if p.Progress >= target {
		p.Completed = true
		return true
	}

	return false
}
