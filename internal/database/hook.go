package database

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// slowQueryThreshold is the duration past which a successful query is
// logged at warn level instead of debug.
const slowQueryThreshold = 250 * time.Millisecond

// Hook implements bun.QueryHook and routes query timings through zap.
type Hook struct {
	logger *zap.Logger
}

// NewHook creates a query hook logging under the "db" component name.
func NewHook(logger *zap.Logger) *Hook {
	return &Hook{logger: logger.Named("db")}
}

// BeforeQuery implements bun.QueryHook.
func (h *Hook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery logs the query outcome and its execution time. Failed queries
// log at error, slow ones at warn, the rest at debug.
func (h *Hook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	elapsed := time.Since(event.StartTime)

	switch {
	case event.Err != nil:
		h.logger.Error("Query failed",
			zap.String("query", event.Query),
			zap.Duration("duration", elapsed),
			zap.Error(event.Err))
	case elapsed >= slowQueryThreshold:
		h.logger.Warn("Slow query",
			zap.String("query", event.Query),
			zap.Duration("duration", elapsed))
	default:
		h.logger.Debug("Query executed",
			zap.String("query", event.Query),
			zap.Duration("duration", elapsed))
	}
}
