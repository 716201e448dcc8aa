package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryDelay_GrowsWithAttempts(t *testing.T) {
	t.Parallel()

	first := retryDelay(1)
	third := retryDelay(3)

	assert.Positive(t, first)
	assert.Greater(t, third, first)
}

func TestRetryDelay_Capped(t *testing.T) {
	t.Parallel()

	// With randomization the cap can be overshot by at most 20 percent.
	limit := time.Duration(float64(2*time.Minute) * 1.2)
	assert.LessOrEqual(t, retryDelay(20), limit)
}
