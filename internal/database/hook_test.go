package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/safebite/safebite/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupHook(t *testing.T) (*database.Hook, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	return database.NewHook(zap.New(core)), logs
}

func TestHook_AfterQuery_FastQueryLogsDebug(t *testing.T) {
	t.Parallel()

	hook, logs := setupHook(t)
	hook.AfterQuery(t.Context(), &bun.QueryEvent{
		Query:     "SELECT 1",
		StartTime: time.Now(),
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "db", entries[0].LoggerName)
}

func TestHook_AfterQuery_SlowQueryLogsWarn(t *testing.T) {
	t.Parallel()

	hook, logs := setupHook(t)
	hook.AfterQuery(t.Context(), &bun.QueryEvent{
		Query:     "SELECT pg_sleep(1)",
		StartTime: time.Now().Add(-time.Second),
	})

	entries := logs.FilterMessage("Slow query").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestHook_AfterQuery_FailedQueryLogsError(t *testing.T) {
	t.Parallel()

	hook, logs := setupHook(t)
	hook.AfterQuery(t.Context(), &bun.QueryEvent{
		Query:     "SELECT nope",
		StartTime: time.Now(),
		Err:       errors.New("relation does not exist"),
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}
