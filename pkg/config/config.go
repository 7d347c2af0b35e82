package config

import "time"

// Config is the root configuration structure for Saturn.
// It contains all configuration sections for filtering, watch mode,
// the item catalog, and telemetry.
type Config struct {
	// Filter contains defaults for retention filtering: the rules
	// string and how item timestamps are resolved.
	Filter FilterConfig `yaml:"filter"`

	// Watch contains configuration for the long-running audit mode
	// including watched paths, schedule, and change debouncing.
	Watch WatchConfig `yaml:"watch"`

	// Catalog contains configuration for the SQLite item catalog
	// used instead of filesystem scanning.
	Catalog CatalogConfig `yaml:"catalog"`

	// Telemetry contains configuration for observability including
	// logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// FilterConfig contains retention filtering defaults.
type FilterConfig struct {
	// Rules is the retention rules string applied when a run does not
	// name its own, e.g. "recent5,days14,weeks8,months12,years4".
	// Watch mode requires it.
	Rules string `yaml:"rules"`

	// TimeFromName, when non-empty, derives item timestamps from
	// basenames using this reference layout instead of file mtimes.
	// Example: "backup-20060102-150405.tar.gz"
	TimeFromName string `yaml:"time_from_name"`

	// FollowSymlinks makes symlink timestamps come from the link
	// target instead of the link itself.
	// Default: false
	FollowSymlinks bool `yaml:"follow_symlinks"`
}

// WatchConfig contains configuration for the long-running audit mode.
type WatchConfig struct {
	// Paths are the directories whose direct children are treated as
	// retention items on every sweep.
	Paths []string `yaml:"paths"`

	// Schedule is a cron expression for periodic sweeps. The
	// descriptors "@hourly", "@daily" and friends are accepted.
	// Default: "@hourly"
	Schedule string `yaml:"schedule"`

	// Debounce is how long to wait after the last filesystem change
	// before a change-triggered sweep runs.
	// Default: 2s
	Debounce time.Duration `yaml:"debounce"`

	// RescanOnChange triggers a sweep when a watched directory
	// changes, in addition to the schedule.
	// Default: false
	RescanOnChange bool `yaml:"rescan_on_change"`
}

// CatalogConfig contains configuration for the SQLite item catalog.
type CatalogConfig struct {
	// DSN is the SQLite database path. When set, items come from the
	// catalog instead of the filesystem.
	DSN string `yaml:"dsn"`

	// Table is the table holding one row per item.
	// Default: "items"
	Table string `yaml:"table"`

	// IDColumn is the column naming each item.
	// Default: "id"
	IDColumn string `yaml:"id_column"`

	// TimeColumn is the column holding each item timestamp.
	// Default: "created_at"
	TimeColumn string `yaml:"time_column"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether watch mode serves metrics.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address for the metrics HTTP server.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path metrics are served on.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the Prometheus metric namespace.
	// Default: "mercator"
	Namespace string `yaml:"namespace"`
}
