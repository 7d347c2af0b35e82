package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with sensible defaults for testing.
// The resulting configuration is valid and can be used immediately.
func NewTestConfig() *ConfigBuilder {
	cfg := Config{}
	ApplyDefaults(&cfg)

	// A rules string most tests can live with
	cfg.Filter.Rules = "recent3,days7"

	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithRules sets the default rules string.
func (b *ConfigBuilder) WithRules(rules string) *ConfigBuilder {
	b.cfg.Filter.Rules = rules
	return b
}

// WithTimeFromName sets the basename timestamp layout.
func (b *ConfigBuilder) WithTimeFromName(layout string) *ConfigBuilder {
	b.cfg.Filter.TimeFromName = layout
	return b
}

// WithWatchPaths sets the watched directories.
func (b *ConfigBuilder) WithWatchPaths(paths ...string) *ConfigBuilder {
	b.cfg.Watch.Paths = paths
	return b
}

// WithSchedule sets the watch cron schedule.
func (b *ConfigBuilder) WithSchedule(schedule string) *ConfigBuilder {
	b.cfg.Watch.Schedule = schedule
	return b
}

// WithDebounce sets the watch debounce interval.
func (b *ConfigBuilder) WithDebounce(d time.Duration) *ConfigBuilder {
	b.cfg.Watch.Debounce = d
	return b
}

// WithCatalogDSN sets the catalog database path.
func (b *ConfigBuilder) WithCatalogDSN(dsn string) *ConfigBuilder {
	b.cfg.Catalog.DSN = dsn
	return b
}

// WithCatalogTable sets the catalog table name.
func (b *ConfigBuilder) WithCatalogTable(table string) *ConfigBuilder {
	b.cfg.Catalog.Table = table
	return b
}

// WithLoggingLevel sets the logging level.
func (b *ConfigBuilder) WithLoggingLevel(level string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	return b
}

// WithLoggingFormat sets the logging format.
func (b *ConfigBuilder) WithLoggingFormat(format string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Format = format
	return b
}

// WithMetricsEnabled sets whether metrics are enabled.
func (b *ConfigBuilder) WithMetricsEnabled(enabled bool) *ConfigBuilder {
	b.cfg.Telemetry.Metrics.Enabled = enabled
	return b
}

// MinimalConfig returns a minimal valid configuration for testing.
// This is useful for tests that don't care about most configuration values.
func MinimalConfig() *Config {
	return NewTestConfig().Build()
}
