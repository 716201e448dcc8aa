package enum

// VoterKind distinguishes identified voters from anonymous ones.
//
//go:generate go tool enumer -type=VoterKind -trimprefix=VoterKind
type VoterKind int

const (
	VoterKindRegistered VoterKind = iota
	VoterKindAnonymous
)

// ActionType represents a rate-limited action category.
//
//go:generate go tool enumer -type=ActionType -trimprefix=ActionType
type ActionType int

const (
	ActionTypeVoteCast ActionType = iota
	ActionTypeItemMutation
)
