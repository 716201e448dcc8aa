package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewlyEarned_GrantsMetThresholds(t *testing.T) {
	t.Parallel()

	stats := badgeStats{totalVotes: 10, gpsVotes: 3}

	earned := newlyEarned(DefaultBadgeCatalog, nil, stats)

	ids := make([]string, 0, len(earned))
	for _, def := range earned {
		ids = append(ids, def.ID)
	}

	assert.ElementsMatch(t, []string{"first_bite", "taster"}, ids)
}

func TestNewlyEarned_NeverReturnsHeldBadges(t *testing.T) {
	t.Parallel()

	stats := badgeStats{totalVotes: 10}

	first := newlyEarned(DefaultBadgeCatalog, nil, stats)
	require.NotEmpty(t, first)

	held := make(map[string]struct{}, len(first))
	for _, def := range first {
		held[def.ID] = struct{}{}
	}

	// Re-evaluating with the same stats grants nothing new.
	assert.Empty(t, newlyEarned(DefaultBadgeCatalog, held, stats))
}

func TestNewlyEarned_HeldBadgesSurviveStatDrops(t *testing.T) {
	t.Parallel()

	held := map[string]struct{}{"week_streak": {}}

	// The streak that earned the badge has since reset. Evaluation only
	// ever adds; the held badge is not re-granted and never revoked.
	earned := newlyEarned(DefaultBadgeCatalog, held, badgeStats{streakDays: 1})
	for _, def := range earned {
		assert.NotEqual(t, "week_streak", def.ID)
	}
	assert.Empty(t, earned)
}
