package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"mercator-hq/saturn/pkg/retention/rules"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "watch.schedule").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// identPattern matches plain identifiers: catalog table and column
// names, and the metric namespace.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateFilter(&cfg.Filter)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateCatalog(&cfg.Catalog)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateFilter validates filtering defaults.
func validateFilter(cfg *FilterConfig) []FieldError {
	var errs []FieldError

	// An empty rules string is allowed here; commands that need rules
	// require them at run time.
	if cfg.Rules != "" {
		if _, err := rules.Parse(cfg.Rules); err != nil {
			errs = append(errs, FieldError{
				Field:   "filter.rules",
				Message: err.Error(),
			})
		}
	}

	if cfg.TimeFromName != "" {
		errs = append(errs, validateTimeLayout(cfg.TimeFromName)...)
	}

	return errs
}

// validateTimeLayout checks that a basename layout carries at least a
// year and survives a format/parse round trip.
func validateTimeLayout(layout string) []FieldError {
	var errs []FieldError

	if !strings.Contains(layout, "2006") {
		errs = append(errs, FieldError{
			Field:   "filter.time_from_name",
			Message: "layout must contain a year reference (2006)",
		})
		return errs
	}

	ref := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)
	if _, err := time.Parse(layout, ref.Format(layout)); err != nil {
		errs = append(errs, FieldError{
			Field:   "filter.time_from_name",
			Message: fmt.Sprintf("not a valid time layout: %v", err),
		})
	}

	return errs
}

// validateWatch validates watch mode configuration.
func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	// Validate schedule with the same parser the scheduler uses
	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "watch.schedule",
				Message: fmt.Sprintf("invalid cron schedule %q: %v", cfg.Schedule, err),
			})
		}
	}

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "debounce must not be negative",
		})
	}

	for i, path := range cfg.Paths {
		if strings.TrimSpace(path) == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("watch.paths[%d]", i),
				Message: "path must not be empty",
			})
		}
	}

	return errs
}

// validateCatalog validates item catalog configuration.
func validateCatalog(cfg *CatalogConfig) []FieldError {
	var errs []FieldError

	// The DSN itself is any path; only identifiers are constrained
	for _, field := range []struct {
		name  string
		value string
	}{
		{"catalog.table", cfg.Table},
		{"catalog.id_column", cfg.IDColumn},
		{"catalog.time_column", cfg.TimeColumn},
	} {
		if field.value != "" && !identPattern.MatchString(field.value) {
			errs = append(errs, FieldError{
				Field:   field.name,
				Message: fmt.Sprintf("%q is not a plain SQL identifier", field.value),
			})
		}
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	// Validate logging level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	// Validate logging format
	validFormats := map[string]bool{"json": true, "text": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Logging.Format),
		})
	}

	// Validate metrics listen address and path
	if cfg.Metrics.Enabled {
		if cfg.Metrics.ListenAddress == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: "listen address is required when metrics are enabled",
			})
		} else if _, _, err := net.SplitHostPort(cfg.Metrics.ListenAddress); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: fmt.Sprintf("invalid listen address %q: %v", cfg.Metrics.ListenAddress, err),
			})
		}

		if cfg.Metrics.Path == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path is required when metrics are enabled",
			})
		} else if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must start with '/'",
			})
		}

		if cfg.Metrics.Namespace != "" && !identPattern.MatchString(cfg.Metrics.Namespace) {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.namespace",
				Message: fmt.Sprintf("invalid metrics namespace %q: must match [A-Za-z_][A-Za-z0-9_]*", cfg.Metrics.Namespace),
			})
		}
	}

	return errs
}
