package config

import "time"

// Default values for configuration fields.
const (
	// Watch defaults
	DefaultWatchSchedule = "@hourly"
	DefaultWatchDebounce = 2 * time.Second

	// Catalog defaults
	DefaultCatalogTable      = "items"
	DefaultCatalogIDColumn   = "id"
	DefaultCatalogTimeColumn = "created_at"

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "json"
	DefaultMetricsEnabled       = true
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultMetricsPath          = "/metrics"
	DefaultMetricsNamespace     = "mercator"
)

// ApplyDefaults fills in default values for unset configuration
// fields. Filter defaults are all zero values: no rules, stat
// timestamps, unfollowed symlinks. RescanOnChange is opt-in.
func ApplyDefaults(cfg *Config) {
	// Watch defaults
	if cfg.Watch.Schedule == "" {
		cfg.Watch.Schedule = DefaultWatchSchedule
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// Catalog defaults
	if cfg.Catalog.Table == "" {
		cfg.Catalog.Table = DefaultCatalogTable
	}
	if cfg.Catalog.IDColumn == "" {
		cfg.Catalog.IDColumn = DefaultCatalogIDColumn
	}
	if cfg.Catalog.TimeColumn == "" {
		cfg.Catalog.TimeColumn = DefaultCatalogTimeColumn
	}

	applyMetricsDefaults(cfg)

	// Logging defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
}

// applyMetricsDefaults applies default values to metrics configuration.
func applyMetricsDefaults(cfg *Config) {
	metrics := &cfg.Telemetry.Metrics

	// Set enabled default (true)
	if !metrics.Enabled {
		// Check if any metrics fields are set - if so, the user wrote
		// the section and enabled: false stands. Otherwise, use default
		hasAnyConfig := metrics.ListenAddress != "" || metrics.Path != "" || metrics.Namespace != ""

		if !hasAnyConfig {
			metrics.Enabled = DefaultMetricsEnabled
		}
	}

	if metrics.ListenAddress == "" {
		metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if metrics.Path == "" {
		metrics.Path = DefaultMetricsPath
	}
	if metrics.Namespace == "" {
		metrics.Namespace = DefaultMetricsNamespace
	}
}
