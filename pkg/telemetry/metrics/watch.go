package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WatchMetrics tracks metrics related to watch mode.
//
// Metrics:
//   - mercator_saturn_watch_events_total: Filesystem events by operation
//   - mercator_saturn_watch_rescans_total: Sweeps triggered by filesystem activity
//   - mercator_saturn_watched_paths: Directories currently being watched
type WatchMetrics struct {
	// Filesystem events by operation
	eventsTotal *prometheus.CounterVec

	// Sweeps triggered by filesystem activity
	rescansTotal prometheus.Counter

	// Directories currently being watched
	watchedPaths prometheus.Gauge
}

// NewWatchMetrics creates and registers watch metrics with the provided registry.
func NewWatchMetrics(cfg *Config, registry *prometheus.Registry) *WatchMetrics {
	wm := &WatchMetrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_events_total",
				Help:      "Total number of filesystem events observed",
			},
			[]string{"op"},
		),

		rescansTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_rescans_total",
				Help:      "Total number of sweeps triggered by filesystem activity",
			},
		),

		watchedPaths: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watched_paths",
				Help:      "Number of directories currently being watched",
			},
		),
	}

	// Register all metrics
	registry.MustRegister(
		wm.eventsTotal,
		wm.rescansTotal,
		wm.watchedPaths,
	)

	return wm
}

// RecordEvent records a filesystem event.
//
// Parameters:
//   - op: event operation ("create", "write", "remove", "rename", "chmod")
func (wm *WatchMetrics) RecordEvent(op string) {
	wm.eventsTotal.WithLabelValues(op).Inc()
}

// RecordRescan records a sweep triggered by debounced filesystem activity.
func (wm *WatchMetrics) RecordRescan() {
	wm.rescansTotal.Inc()
}

// SetWatchedPaths updates the number of watched directories.
func (wm *WatchMetrics) SetWatchedPaths(n int) {
	wm.watchedPaths.Set(float64(n))
}
