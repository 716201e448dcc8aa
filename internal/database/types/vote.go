package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safebite/safebite/internal/database/types/enum"
)

// Common errors for vote operations.
var (
	ErrVoteNotFound    = errors.New("vote not found")
	ErrVoteNotOwner    = errors.New("vote does not belong to requester")
	ErrNoVoterIdentity = errors.New("no voter identity provided")
	ErrValidation      = errors.New("invalid vote input")
)

// Price tiers are 1-5 star ratings scaled by 20.
var validPriceTiers = [...]int{20, 40, 60, 80, 100}

// IsValidPriceTier reports whether p maps to one of the five price tiers.
func IsValidPriceTier(p int) bool {
	for _, tier := range validPriceTiers {
		if p == tier {
			return true
		}
	}
	return false
}

// VoterIdentity resolves to a stable voter key. An authenticated user ID
// takes precedence over a client-supplied anonymous ID.
type VoterIdentity struct {
	UserID      uint64 `json:"userId"`
	AnonymousID string `json:"anonymousId"`
}

// Key returns the stable key used for per-voter uniqueness and rate
// limiting, or an error if neither identity is present.
func (v VoterIdentity) Key() (string, error) {
	if v.UserID != 0 {
		return fmt.Sprintf("u:%d", v.UserID), nil
	}
	if v.AnonymousID != "" {
		return "a:" + v.AnonymousID, nil
	}
	return "", ErrNoVoterIdentity
}

// Kind returns the voter kind backing this identity.
func (v VoterIdentity) Kind() enum.VoterKind {
	if v.UserID != 0 {
		return enum.VoterKindRegistered
	}
	return enum.VoterKindAnonymous
}

// Vote is one voter's current rating of one item. There is at most one row
// per (item, voter key); re-votes overwrite the numeric fields in place and
// keep the original creation time.
type Vote struct {
	ID          uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	ItemID      uint64         `bun:",notnull"      json:"itemId"`
	VoterKey    string         `bun:",notnull"      json:"voterKey"`
	UserID      uint64         `bun:",nullzero"     json:"userId,omitempty"`
	AnonymousID string         `bun:",nullzero"     json:"anonymousId,omitempty"`
	Kind        enum.VoterKind `bun:",notnull"      json:"kind"`

	Safety    int      `bun:",notnull"  json:"safety"`
	Taste     int      `bun:",notnull"  json:"taste"`
	Price     *int     `bun:",nullzero" json:"price,omitempty"`
	StoreTag  string   `bun:",nullzero" json:"storeTag,omitempty"`
	Latitude  *float64 `bun:",nullzero" json:"latitude,omitempty"`
	Longitude *float64 `bun:",nullzero" json:"longitude,omitempty"`

	CreatedAt time.Time `bun:",notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:",notnull" json:"updatedAt"`
}

// CastVoteRequest carries the validated input of a vote cast.
type CastVoteRequest struct {
	ItemID   uint64        `validate:"required"`
	Voter    VoterIdentity `validate:"-"`
	Safety   int           `validate:"min=0,max=100"`
	Taste    int           `validate:"min=0,max=100"`
	Price    *int          `validate:"omitempty,oneof=20 40 60 80 100"`
	StoreTag string        `validate:"omitempty,max=128"`
	Latitude  *float64     `validate:"omitempty,min=-90,max=90"`
	Longitude *float64     `validate:"omitempty,min=-180,max=180"`
}

// CastVoteResult reports the stored vote and whether the cast edited an
// existing row. Edits must not re-award creation rewards downstream.
type CastVoteResult struct {
	VoteID uuid.UUID `json:"voteId"`
	IsEdit bool      `json:"isEdit"`
}
