package service_test

import (
	"testing"

	"github.com/safebite/safebite/internal/database/service"
	"github.com/safebite/safebite/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
)

func TestDefaultBadgeCatalog_UniqueIDs(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, len(service.DefaultBadgeCatalog))
	for _, def := range service.DefaultBadgeCatalog {
		_, dup := seen[def.ID]
		assert.False(t, dup, "duplicate badge ID %q", def.ID)
		seen[def.ID] = struct{}{}
	}
}

func TestDefaultBadgeCatalog_PositiveThresholds(t *testing.T) {
	t.Parallel()

	for _, def := range service.DefaultBadgeCatalog {
		assert.Positive(t, def.Threshold, "badge %q", def.ID)
		assert.True(t, def.Type.IsABadgeType(), "badge %q", def.ID)
	}
}

func TestDefaultBadgeCatalog_AscendingWithinType(t *testing.T) {
	t.Parallel()

	last := make(map[enum.BadgeType]int64)
	for _, def := range service.DefaultBadgeCatalog {
		assert.Greater(t, def.Threshold, last[def.Type], "badge %q", def.ID)
		last[def.Type] = def.Threshold
	}
}
