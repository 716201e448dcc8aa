package service

import (
	"github.com/safebite/safebite/internal/database/types"
	"github.com/safebite/safebite/internal/database/types/enum"
)

// DefaultBadgeCatalog is the shipped badge catalog, ordered by ascending
// difficulty within each type. Changing it is a deploy-time operation.
var DefaultBadgeCatalog = []types.BadgeDefinition{
	{ID: "first_bite", Type: enum.BadgeTypeVotes, Threshold: 1},
	{ID: "taster", Type: enum.BadgeTypeVotes, Threshold: 10},
	{ID: "critic", Type: enum.BadgeTypeVotes, Threshold: 50},
	{ID: "connoisseur", Type: enum.BadgeTypeVotes, Threshold: 100},
	{ID: "field_reporter", Type: enum.BadgeTypeGPS, Threshold: 10},
	{ID: "cartographer", Type: enum.BadgeTypeGPS, Threshold: 50},
	{ID: "store_hopper", Type: enum.BadgeTypeStores, Threshold: 5},
	{ID: "market_crawler", Type: enum.BadgeTypeStores, Threshold: 20},
	{ID: "week_streak", Type: enum.BadgeTypeStreak, Threshold: 7},
	{ID: "month_streak", Type: enum.BadgeTypeStreak, Threshold: 30},
	{ID: "scout", Type: enum.BadgeTypeProducts, Threshold: 1},
	{ID: "trailblazer", Type: enum.BadgeTypeProducts, Threshold: 10},
}

// badgeStats holds the cumulative statistics badge thresholds are checked
// against.
type badgeStats struct {
	totalVotes     int64
	gpsVotes       int64
	distinctStores int64
	streakDays     int64
	createdItems   int64
}

// newlyEarned returns the catalog badges whose threshold the stats now
// meet and that are not already held. It never returns a held badge, so
// applying its result can only grow the earned set.
func newlyEarned(
	catalog []types.BadgeDefinition, held map[string]struct{}, stats badgeStats,
) []types.BadgeDefinition {
	var earned []types.BadgeDefinition

	for _, def := range catalog {
		if _, ok := held[def.ID]; ok {
			continue
		}

		if stats.statFor(def.Type) >= def.Threshold {
			earned = append(earned, def)
		}
	}

	return earned
}

// statFor selects the statistic a badge type thresholds on. The enum is
// closed; a new badge type has to be added here before it can ship in the
// catalog.
func (s badgeStats) statFor(badgeType enum.BadgeType) int64 {
	switch badgeType {
	case enum.BadgeTypeVotes:
		return s.totalVotes
	case enum.BadgeTypeGPS:
		return s.gpsVotes
	case enum.BadgeTypeStores:
		return s.distinctStores
	case enum.BadgeTypeStreak:
		return s.streakDays
	case enum.BadgeTypeProducts:
		return s.createdItems
	default:
		return 0
	}
}
