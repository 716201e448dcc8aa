package enum

// ChallengeType represents the kind of activity a challenge counts.
//
//go:generate go tool enumer -type=ChallengeType -trimprefix=ChallengeType
type ChallengeType int

const (
	ChallengeTypeVoteCount ChallengeType = iota
	ChallengeTypeGPSVotes
	ChallengeTypeNewItems
	ChallengeTypeStoreVariety
)

// ChallengeOrigin distinguishes auto-generated template challenges, which
// the weekly reset replaces, from admin-authored ones, which it leaves alone.
//
//go:generate go tool enumer -type=ChallengeOrigin -trimprefix=ChallengeOrigin
type ChallengeOrigin int

const (
	ChallengeOriginTemplate ChallengeOrigin = iota
	ChallengeOriginAdmin
)
