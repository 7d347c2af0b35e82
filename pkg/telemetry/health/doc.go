// Package health provides health check endpoints for saturn's watch mode.
//
// The Checker aggregates per-component checks and exposes liveness and
// readiness probes over HTTP. Watch mode registers a check for each
// long-lived component it runs:
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("catalog", func(ctx context.Context) error {
//		_, err := cat.Count(ctx)
//		return err
//	})
//	checker.RegisterCheck("watcher", watcher.Healthy)
//
//	mux := http.NewServeMux()
//	health.RegisterEndpoints(mux, checker, version, commit, buildTime)
//
// Liveness (/healthz) answers as long as the process is up. Readiness
// (/readyz) runs every registered check concurrently with a per-check
// timeout and reports 503 when any component is unhealthy, which makes
// it suitable for alerting on a stuck watcher or an unreachable catalog.
package health
