package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts dispatched jobs and their handling latency.
type Metrics struct {
	jobsTotal   *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
	queueDepth  prometheus.Gauge
}

// NewMetrics registers the dispatch metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		jobsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safebite",
			Subsystem: "dispatch",
			Name:      "jobs_total",
			Help:      "Outbox jobs handled, by job type and outcome.",
		}, []string{"type", "status"}),
		jobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "safebite",
			Subsystem: "dispatch",
			Name:      "job_duration_seconds",
			Help:      "Time spent handling one outbox job.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "safebite",
			Subsystem: "dispatch",
			Name:      "queue_depth",
			Help:      "Pending outbox jobs, due or deferred.",
		}),
	}
}
