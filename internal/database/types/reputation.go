package types

import (
	"time"

	"github.com/safebite/safebite/internal/database/types/enum"
)

// ReputationProfile tracks one voter's gamification state. Created lazily on
// first vote; the badge set only grows and points never go negative.
type ReputationProfile struct {
	UserID       uint64    `bun:",pk"       json:"userId"`
	Points       int64     `bun:",notnull"  json:"points"`
	StreakDays   int       `bun:",notnull"  json:"streakDays"`
	LastVoteDate time.Time `bun:",nullzero" json:"lastVoteDate"`

	TotalVotes      int64 `bun:",notnull" json:"totalVotes"`
	GPSVotes        int64 `bun:",notnull" json:"gpsVotes"`
	NewProductVotes int64 `bun:",notnull" json:"newProductVotes"`

	UpdatedAt time.Time `bun:",notnull" json:"updatedAt"`
}

// EarnedBadge records one granted badge. Grants are append-only; badges are
// never revoked or re-granted.
type EarnedBadge struct {
	UserID   uint64    `bun:",pk"      json:"userId"`
	BadgeID  string    `bun:",pk"      json:"badgeId"`
	EarnedAt time.Time `bun:",notnull" json:"earnedAt"`
}

// BadgeDefinition is a static catalog entry. The catalog ships with the
// binary; changing it is a deploy, not a runtime operation.
type BadgeDefinition struct {
	ID        string         `json:"id"`
	Type      enum.BadgeType `json:"type"`
	Threshold int64          `json:"threshold"`
}

// VoteEvent describes the properties of a committed vote that reputation
// scoring cares about.
type VoteEvent struct {
	HasPrice  bool `json:"hasPrice"`
	HasStore  bool `json:"hasStore"`
	HasGPS    bool `json:"hasGPS"`
	IsNewItem bool `json:"isNewItem"`
	IsEdit    bool `json:"isEdit"`
}
