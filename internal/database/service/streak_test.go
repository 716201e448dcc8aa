package service_test

import (
	"testing"
	"time"

	"github.com/safebite/safebite/internal/database/service"
	"github.com/stretchr/testify/assert"
)

func TestNextStreak(t *testing.T) {
	t.Parallel()

	day := func(d int, hour int) time.Time {
		return time.Date(2025, 6, d, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		current  int
		lastVote time.Time
		now      time.Time
		want     int
	}{
		{
			name: "first vote ever starts a streak",
			now:  day(10, 12),
			want: 1,
		},
		{
			name:     "same day keeps the streak",
			current:  4,
			lastVote: day(10, 9),
			now:      day(10, 21),
			want:     4,
		},
		{
			name:     "next day extends the streak",
			current:  4,
			lastVote: day(10, 9),
			now:      day(11, 9),
			want:     5,
		},
		{
			name:     "midnight boundary counts as consecutive days",
			current:  2,
			lastVote: day(10, 23),
			now:      day(11, 0),
			want:     3,
		},
		{
			name:     "two day gap resets to one",
			current:  9,
			lastVote: day(10, 12),
			now:      day(12, 12),
			want:     1,
		},
		{
			name:     "zero streak with a same day vote becomes one",
			current:  0,
			lastVote: day(10, 9),
			now:      day(10, 10),
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, service.NextStreak(tt.current, tt.lastVote, tt.now))
		})
	}
}
