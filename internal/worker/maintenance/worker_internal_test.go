package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextDailySweep(t *testing.T) {
	t.Parallel()

	before := time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC), nextDailySweep(before))

	after := time.Date(2025, 6, 10, 4, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 11, 3, 0, 0, 0, time.UTC), nextDailySweep(after))

	exact := time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 11, 3, 0, 0, 0, time.UTC), nextDailySweep(exact))
}

func TestNextWake_ResetWakeDoesNotRunSweep(t *testing.T) {
	t.Parallel()

	// Sunday 23:00: the weekly reset (Monday 00:00) comes before the
	// nightly sweep (Monday 03:00). Only the reset is due at that wake.
	now := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)

	at, sweepDue, resetDue := nextWake(now)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), at)
	assert.False(t, sweepDue)
	assert.True(t, resetDue)
}

func TestNextWake_SweepWakeDoesNotRunReset(t *testing.T) {
	t.Parallel()

	// Tuesday 01:00: the sweep at 03:00 is days ahead of the next Monday.
	now := time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC)

	at, sweepDue, resetDue := nextWake(now)
	assert.Equal(t, time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC), at)
	assert.True(t, sweepDue)
	assert.False(t, resetDue)
}

func TestNextWake_MondayMorningRunsSweepOnly(t *testing.T) {
	t.Parallel()

	// Just after a reset fired: the following wake is the 03:00 sweep of
	// the same Monday, and the reset (next Monday) must not re-run.
	now := time.Date(2025, 6, 16, 0, 0, 1, 0, time.UTC)

	at, sweepDue, resetDue := nextWake(now)
	assert.Equal(t, time.Date(2025, 6, 16, 3, 0, 0, 0, time.UTC), at)
	assert.True(t, sweepDue)
	assert.False(t, resetDue)
}

func TestNextWeeklyReset(t *testing.T) {
	t.Parallel()

	midweek := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), nextWeeklyReset(midweek))

	// A run exactly at the boundary schedules the following week.
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC), nextWeeklyReset(monday))
}
