package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config contains configuration for the metrics Collector.
type Config struct {
	// Enabled turns metric recording on. When false every Record method
	// is a no-op.
	Enabled bool

	// Namespace is the Prometheus metric namespace. Default: "mercator".
	Namespace string

	// Subsystem is the Prometheus metric subsystem. Default: "saturn".
	Subsystem string

	// SweepDurationBuckets are histogram buckets for sweep durations in
	// seconds. The defaults cover sub-millisecond in-memory sweeps up to
	// minute-long stats over large trees.
	SweepDurationBuckets []float64
}

// Collector is the orchestrator for all Prometheus metrics in saturn.
// It manages metric registration and provides a unified interface for
// recording metrics across the sweep, decision, and watch components.
type Collector struct {
	config   *Config
	registry *prometheus.Registry

	// Sweep metrics
	sweepMetrics *SweepMetrics

	// Decision metrics
	decisionMetrics *DecisionMetrics

	// Watch metrics
	watchMetrics *WatchMetrics
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
//
// Example:
//
//	cfg := &metrics.Config{Enabled: true}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = "mercator"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "saturn"
	}
	if len(cfg.SweepDurationBuckets) == 0 {
		cfg.SweepDurationBuckets = []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1.0, 5.0, 15.0, 60.0}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	// Initialize metric subsystems
	c.sweepMetrics = NewSweepMetrics(cfg, registry)
	c.decisionMetrics = NewDecisionMetrics(cfg, registry)
	c.watchMetrics = NewWatchMetrics(cfg, registry)

	return c
}

// RecordSweep records metrics for a completed retention sweep.
//
// Parameters:
//   - trigger: what started the sweep ("startup", "manual", "schedule",
//     "fsevent")
//   - status: sweep outcome ("success", "error")
//   - duration: total sweep duration
//   - examined: number of items the sweep examined
//
// Example:
//
//	collector.RecordSweep("schedule", "success", 230*time.Millisecond, 148)
func (c *Collector) RecordSweep(trigger, status string, duration time.Duration, examined int) {
	if !c.config.Enabled {
		return
	}

	c.sweepMetrics.RecordSweep(trigger, status, duration, examined)
}

// RecordDecisions records a batch of retention decisions with the same verdict.
//
// Parameters:
//   - verdict: "accepted" or "rejected"
//   - count: number of items that received the verdict
func (c *Collector) RecordDecisions(verdict string, count int) {
	if !c.config.Enabled {
		return
	}

	c.decisionMetrics.RecordDecisions(verdict, count)
}

// RecordAccepts records accepted items claimed by a rule category.
//
// Parameters:
//   - category: rule category name ("recent", "hours", "days", "weeks",
//     "months", "years")
//   - count: number of accepted items the category claimed
func (c *Collector) RecordAccepts(category string, count int) {
	if !c.config.Enabled {
		return
	}

	c.decisionMetrics.RecordAccepts(category, count)
}

// RecordWatchEvent records a filesystem event observed in watch mode.
//
// Parameters:
//   - op: event operation ("create", "write", "remove", "rename", "chmod")
func (c *Collector) RecordWatchEvent(op string) {
	if !c.config.Enabled {
		return
	}

	c.watchMetrics.RecordEvent(op)
}

// RecordRescan records a sweep triggered by filesystem activity.
func (c *Collector) RecordRescan() {
	if !c.config.Enabled {
		return
	}

	c.watchMetrics.RecordRescan()
}

// SetWatchedPaths updates the number of directories currently watched.
func (c *Collector) SetWatchedPaths(n int) {
	if !c.config.Enabled {
		return
	}

	c.watchMetrics.SetWatchedPaths(n)
}

// Registry returns the Prometheus registry used by this collector.
// This can be used to create an HTTP handler for the metrics endpoint:
//
//	http.Handle("/metrics", promhttp.HandlerFor(
//		collector.Registry(),
//		promhttp.HandlerOpts{},
//	))
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
