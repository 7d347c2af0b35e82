// Package telemetry provides observability for saturn.
//
// # Overview
//
// The telemetry package implements structured logging, Prometheus
// metrics, and health check endpoints. One-shot filter runs only use the
// logging component; watch mode additionally serves metrics and health
// probes over HTTP.
//
// # Components
//
//   - logging: Structured logging over log/slog
//   - metrics: Prometheus metrics collection
//   - health: Health check endpoints for watch mode
//
// # Usage
//
//	// Configure logging from the loaded configuration
//	logger, err := logging.New(logging.Config{
//		Level:  cfg.Telemetry.Logging.Level,
//		Format: cfg.Telemetry.Logging.Format,
//	})
//	if err != nil {
//		return err
//	}
//	logger.SetAsDefault()
//
//	// In watch mode, expose metrics and health endpoints
//	collector := metrics.NewCollector(&metrics.Config{Enabled: true}, nil)
//	checker := health.New(5 * time.Second)
//	srv := telemetry.NewServer(&telemetry.ServerConfig{
//		ListenAddress: cfg.Telemetry.Metrics.ListenAddress,
//		MetricsPath:   cfg.Telemetry.Metrics.Path,
//	}, collector, checker)
//	go srv.Start(ctx)
//
// The server shuts down when the context ends, so watch mode ties its
// lifetime to the signal-aware context from pkg/cli.
package telemetry
