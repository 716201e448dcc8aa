package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfWeek(t *testing.T) {
	t.Parallel()

	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
	}{
		{"monday morning", time.Date(2025, 6, 9, 8, 30, 0, 0, time.UTC)},
		{"midweek", time.Date(2025, 6, 11, 23, 59, 0, 0, time.UTC)},
		{"sunday", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, monday, startOfWeek(tt.now))
		})
	}
}

func TestWeeklyTemplates_Sane(t *testing.T) {
	t.Parallel()

	for _, tmpl := range weeklyTemplates {
		assert.Positive(t, tmpl.target, tmpl.title)
		assert.Positive(t, tmpl.reward, tmpl.title)
	}
}
