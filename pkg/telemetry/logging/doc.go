// Package logging provides structured logging for saturn.
//
// The Logger wraps log/slog and is configured from the telemetry section
// of the configuration file:
//
//	logger, err := logging.New(logging.Config{
//		Level:  cfg.Telemetry.Logging.Level,
//		Format: cfg.Telemetry.Logging.Format,
//	})
//	if err != nil {
//		return err
//	}
//	logger.SetAsDefault()
//
// Log output goes to stderr by default. The filter command writes its
// accepted-item list to stdout, so the two streams stay separable even
// when both are piped.
//
// # Context Fields
//
// Sweep-scoped fields travel via context.Context. A sweep stores its run
// identifier and trigger once, and every *Context log call picks them up:
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithTrigger(ctx, "schedule")
//	logger.InfoContext(ctx, "sweep complete", "accepted", n)
//
// This produces log lines that can be correlated across a whole sweep
// without threading the identifiers through every call site.
package logging
