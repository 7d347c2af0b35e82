// Package metrics provides Prometheus metrics collection for saturn.
//
// # Overview
//
// The metrics package implements Prometheus metrics for monitoring
// retention sweeps, per-item decisions, and watch mode activity. Metrics
// are recorded by the watch auditor and exposed over HTTP for scraping.
//
// # Metrics Categories
//
//   - Sweep Metrics: Sweep count, duration, items examined, last completion
//   - Decision Metrics: Decisions by verdict, accepts by claiming category
//   - Watch Metrics: Filesystem events, triggered rescans, watched paths
//
// # Usage
//
//	// Create collector
//	collector := metrics.NewCollector(&metrics.Config{Enabled: true}, nil)
//
//	// Record a completed sweep
//	collector.RecordSweep(
//		"schedule",             // trigger
//		"success",              // status
//		230*time.Millisecond,   // duration
//		148,                    // items examined
//	)
//
//	// Record the decision counts of a sweep
//	collector.RecordDecisions("accepted", 12)
//	collector.RecordDecisions("rejected", 136)
//	collector.RecordAccepts("days", 7)
//
//	// Record watch activity
//	collector.RecordWatchEvent("create")
//	collector.RecordRescan()
//
// # Prometheus Endpoint
//
// All metrics are exposed on the configured path in standard Prometheus
// format:
//
//	# HELP mercator_saturn_sweeps_total Total number of retention sweeps executed
//	# TYPE mercator_saturn_sweeps_total counter
//	mercator_saturn_sweeps_total{trigger="schedule",status="success"} 42
//
// # Cardinality
//
// Every label value comes from a closed set: triggers, verdicts, rule
// category names, and fsnotify operations. Total series count stays in
// the low dozens regardless of how many items a deployment manages.
package metrics
