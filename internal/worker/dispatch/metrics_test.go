package dispatch_test

import (
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/safebite/safebite/internal/setup"
	"github.com/safebite/safebite/internal/setup/config"
	"github.com/safebite/safebite/internal/worker/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewMetrics_RegistersOncePerRegistry(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	dispatch.NewMetrics(registry)

	// A registry accepts each collector exactly once; a second set of the
	// same collectors must be rejected.
	assert.Panics(t, func() {
		dispatch.NewMetrics(registry)
	})
}

func TestNew_LoopsShareOneMetricsSet(t *testing.T) {
	t.Parallel()

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	app := &setup.App{
		Config: config.DefaultConfig(),
		Logger: logger,
		Clock:  clockwork.NewRealClock(),
	}

	metrics := dispatch.NewMetrics(prometheus.NewRegistry())

	// Multi-loop dispatch constructs one worker per loop against the same
	// process-wide collectors.
	assert.NotPanics(t, func() {
		for range 3 {
			dispatch.New(app, nil, metrics, logger)
		}
	})
}
