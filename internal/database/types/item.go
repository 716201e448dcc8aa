package types

import (
	"errors"
	"time"
)

// Common errors for item operations.
var (
	ErrItemNotFound  = errors.New("item not found")
	ErrInvalidItemID = errors.New("invalid item ID")
)

// Neutral aggregate values an item resets to when it has no votes.
const (
	NeutralSafety = 50.0
	NeutralTaste  = 50.0
)

// Item is a rated catalog entry. The aggregate columns are a materialized
// view over the item's vote set: they are only ever written by recompute and
// can always be rebuilt from scratch from the raw votes.
type Item struct {
	ID        uint64    `bun:",pk,autoincrement" json:"id"`
	Name      string    `bun:",notnull"          json:"name"`
	CreatorID uint64    `bun:",nullzero"         json:"creatorId"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`

	// Optional location of the item itself, used for nearby notifications.
	Latitude  *float64 `bun:",nullzero" json:"latitude,omitempty"`
	Longitude *float64 `bun:",nullzero" json:"longitude,omitempty"`

	// Aggregate columns, maintained by recompute only.
	AvgSafety           float64   `bun:",notnull" json:"avgSafety"`
	AvgTaste            float64   `bun:",notnull" json:"avgTaste"`
	AvgPrice            *float64  `bun:",nullzero" json:"avgPrice,omitempty"`
	VoteCount           int       `bun:",notnull" json:"voteCount"`
	RegisteredVoteCount int       `bun:",notnull" json:"registeredVoteCount"`
	AnonymousVoteCount  int       `bun:",notnull" json:"anonymousVoteCount"`
	LastRecomputedAt    time.Time `bun:",nullzero" json:"lastRecomputedAt"`
}

// AggregateResult is the outcome of recomputing one item.
type AggregateResult struct {
	ItemID              uint64   `json:"itemId"`
	AvgSafety           float64  `json:"avgSafety"`
	AvgTaste            float64  `json:"avgTaste"`
	AvgPrice            *float64 `json:"avgPrice,omitempty"`
	VoteCount           int      `json:"voteCount"`
	RegisteredVoteCount int      `json:"registeredVoteCount"`
	AnonymousVoteCount  int      `json:"anonymousVoteCount"`
}
