package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SweepMetrics tracks metrics related to retention sweep execution.
//
// Metrics:
//   - mercator_saturn_sweeps_total: Total sweep count by trigger and status
//   - mercator_saturn_sweep_duration_seconds: Sweep duration histogram
//   - mercator_saturn_sweep_items: Items examined per sweep
//   - mercator_saturn_last_sweep_timestamp_seconds: When the last sweep finished
type SweepMetrics struct {
	// Total sweep count
	sweepsTotal *prometheus.CounterVec

	// Sweep duration histogram
	sweepDuration *prometheus.HistogramVec

	// Items examined per sweep
	sweepItems prometheus.Histogram

	// Completion time of the most recent sweep
	lastSweepTimestamp prometheus.Gauge
}

// NewSweepMetrics creates and registers sweep metrics with the provided registry.
func NewSweepMetrics(cfg *Config, registry *prometheus.Registry) *SweepMetrics {
	sm := &SweepMetrics{
		sweepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "sweeps_total",
				Help:      "Total number of retention sweeps executed",
			},
			[]string{"trigger", "status"},
		),

		sweepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "sweep_duration_seconds",
				Help:      "Duration of retention sweeps in seconds",
				Buckets:   cfg.SweepDurationBuckets,
			},
			[]string{"trigger"},
		),

		sweepItems: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "sweep_items",
				Help:      "Number of items examined per sweep",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~262K items
			},
		),

		lastSweepTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_sweep_timestamp_seconds",
				Help:      "Unix timestamp of the most recent completed sweep",
			},
		),
	}

	// Register all metrics
	registry.MustRegister(
		sm.sweepsTotal,
		sm.sweepDuration,
		sm.sweepItems,
		sm.lastSweepTimestamp,
	)

	return sm
}

// RecordSweep records metrics for a completed sweep.
//
// Parameters:
//   - trigger: what started the sweep ("manual", "schedule", "fsevent")
//   - status: sweep outcome ("success", "error")
//   - duration: total sweep duration
//   - examined: number of items examined
func (sm *SweepMetrics) RecordSweep(trigger, status string, duration time.Duration, examined int) {
	sm.sweepsTotal.WithLabelValues(trigger, status).Inc()
	sm.sweepDuration.WithLabelValues(trigger).Observe(duration.Seconds())

	if examined > 0 {
		sm.sweepItems.Observe(float64(examined))
	}

	sm.lastSweepTimestamp.SetToCurrentTime()
}
