// Package config provides configuration management for Saturn.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with comprehensive validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SATURN_SECTION_FIELD.
// For example:
//
//   - SATURN_FILTER_RULES overrides filter.rules
//   - SATURN_WATCH_SCHEDULE overrides watch.schedule
//   - SATURN_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// For process-wide configuration access, use the singleton pattern:
//
//	// At startup
//	if err := config.Initialize("config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Anywhere in the process
//	cfg := config.GetConfig()
//	fmt.Println(cfg.Watch.Schedule)
//
// For testing, prefer dependency injection with explicit Config instances
// rather than the global singleton.
//
// # Validation
//
// All configuration is validated automatically during loading. Validation includes:
//
//   - Rules strings parsed with the real rules parser
//   - Cron schedules parsed with the scheduler's own parser
//   - Format validation (time layouts, listen addresses, log levels)
//   - Catalog table and column names checked against identifier syntax
//
// Validation errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - watch.schedule: invalid cron schedule "every hour": ...
//	  - telemetry.logging.level: invalid logging level "verbose": ...
//
// # Example Configuration
//
// Here is a typical configuration file:
//
//	filter:
//	  rules: "recent5,days14,weeks8,months12,years4"
//	  time_from_name: "backup-20060102-150405.tar.gz"
//
//	watch:
//	  paths:
//	    - /srv/backups/db
//	  schedule: "@hourly"
//	  debounce: 2s
//	  rescan_on_change: true
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//
// # Thread Safety
//
// All configuration access is thread-safe. The singleton pattern uses read-write
// locks to allow concurrent reads while protecting against concurrent writes during
// reload operations.
package config
