package enum

// BadgeType represents the cumulative statistic a badge threshold is
// evaluated against.
//
//go:generate go tool enumer -type=BadgeType -trimprefix=BadgeType
type BadgeType int

const (
	BadgeTypeVotes BadgeType = iota
	BadgeTypeGPS
	BadgeTypeStores
	BadgeTypeStreak
	BadgeTypeProducts
)
