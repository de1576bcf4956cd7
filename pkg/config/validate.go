package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "compile.indent").
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

var (
	validLogLevels      = []string{"debug", "info", "warn", "error"}
	validLogFormats     = []string{"console", "text", "json"}
	validHistoryDrivers = []string{"sqlite", "sqlite3"}
	validSamplers       = []string{"always", "never", "ratio"}

	// metricNamespace matches a valid Prometheus metric name prefix.
	metricNamespace = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateCompile(&cfg.Compile)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateMetrics(&cfg.Metrics)...)
	errs = append(errs, validateHistory(&cfg.History)...)
	errs = append(errs, validateHealth(&cfg.Health, &cfg.Metrics)...)
	errs = append(errs, validateTracing(&cfg.Tracing)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateCompile validates compile configuration.
func validateCompile(cfg *CompileConfig) []FieldError {
	var errs []FieldError

	// The YAML emitter only honours indents from 2 to 9
	if cfg.Indent < 2 || cfg.Indent > 9 {
		errs = append(errs, FieldError{
			Field:   "compile.indent",
			Message: fmt.Sprintf("indent must be between 2 and 9, got %d", cfg.Indent),
		})
	}
	if cfg.MaxDepth < 0 {
		errs = append(errs, FieldError{
			Field:   "compile.max_depth",
			Message: "max depth must be non-negative",
		})
	}

	return errs
}

// validateLogging validates logging configuration.
func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	if !contains(validLogLevels, strings.ToLower(cfg.Level)) {
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid log level %q (must be one of: %s)", cfg.Level, strings.Join(validLogLevels, ", ")),
		})
	}
	if !contains(validLogFormats, strings.ToLower(cfg.Format)) {
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid log format %q (must be one of: %s)", cfg.Format, strings.Join(validLogFormats, ", ")),
		})
	}

	return errs
}

// validateWatch validates watch configuration.
func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce <= 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "debounce must be positive",
		})
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("watch.extensions[%d]", i),
				Message: fmt.Sprintf("extension %q must start with a dot", ext),
			})
		}
	}
	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "watch.schedule",
				Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule, err),
			})
		}
	}
	if len(cfg.Exec) > 0 && strings.TrimSpace(cfg.Exec[0]) == "" {
		errs = append(errs, FieldError{
			Field:   "watch.exec",
			Message: "command name is required",
		})
	}

	return errs
}

// validateMetrics validates metrics configuration.
func validateMetrics(cfg *MetricsConfig) []FieldError {
	var errs []FieldError

	if _, _, err := net.SplitHostPort(cfg.Address); err != nil {
		errs = append(errs, FieldError{
			Field:   "metrics.address",
			Message: fmt.Sprintf("invalid listen address %q: %v", cfg.Address, err),
		})
	}
	if !strings.HasPrefix(cfg.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "metrics.path",
			Message: "path must start with /",
		})
	}
	if !metricNamespace.MatchString(cfg.Namespace) {
		errs = append(errs, FieldError{
			Field:   "metrics.namespace",
			Message: fmt.Sprintf("invalid metric namespace %q", cfg.Namespace),
		})
	}

	return errs
}

// validateHistory validates history configuration.
func validateHistory(cfg *HistoryConfig) []FieldError {
	var errs []FieldError

	if !contains(validHistoryDrivers, cfg.Driver) {
		errs = append(errs, FieldError{
			Field:   "history.driver",
			Message: fmt.Sprintf("invalid driver %q (must be one of: %s)", cfg.Driver, strings.Join(validHistoryDrivers, ", ")),
		})
	}
	if cfg.Enabled && cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "history.path",
			Message: "path is required when history is enabled",
		})
	}
	if cfg.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "history.busy_timeout",
			Message: "busy timeout must be non-negative",
		})
	}
	if cfg.Retention < 0 {
		errs = append(errs, FieldError{
			Field:   "history.retention",
			Message: "retention must be non-negative",
		})
	}

	return errs
}

// validateHealth validates health configuration. The probe paths share the
// metrics server, so they must not collide with the metrics path.
func validateHealth(cfg *HealthConfig, metrics *MetricsConfig) []FieldError {
	var errs []FieldError

	paths := []struct {
		field string
		value string
	}{
		{"health.liveness_path", cfg.LivenessPath},
		{"health.readiness_path", cfg.ReadinessPath},
	}
	for _, p := range paths {
		switch {
		case !strings.HasPrefix(p.value, "/"):
			errs = append(errs, FieldError{Field: p.field, Message: "path must start with /"})
		case p.value == metrics.Path:
			errs = append(errs, FieldError{Field: p.field, Message: fmt.Sprintf("path %q is already used by metrics", p.value)})
		}
	}
	if cfg.LivenessPath == cfg.ReadinessPath && strings.HasPrefix(cfg.ReadinessPath, "/") {
		errs = append(errs, FieldError{
			Field:   "health.readiness_path",
			Message: "readiness path must differ from liveness path",
		})
	}
	if cfg.CheckTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "health.check_timeout",
			Message: "check timeout must be non-negative",
		})
	}

	return errs
}

// validateTracing validates tracing configuration.
func validateTracing(cfg *TracingConfig) []FieldError {
	var errs []FieldError

	if !contains(validSamplers, cfg.Sampler) {
		errs = append(errs, FieldError{
			Field:   "tracing.sampler",
			Message: fmt.Sprintf("invalid sampler %q (must be one of: %s)", cfg.Sampler, strings.Join(validSamplers, ", ")),
		})
	}
	if cfg.SampleRatio < 0 || cfg.SampleRatio > 1.0 {
		errs = append(errs, FieldError{
			Field:   "tracing.sample_ratio",
			Message: "sample ratio must be between 0.0 and 1.0",
		})
	}
	if cfg.Enabled && cfg.Endpoint == "" {
		errs = append(errs, FieldError{
			Field:   "tracing.endpoint",
			Message: "tracing endpoint is required when tracing is enabled",
		})
	}
	if cfg.OTLP.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "tracing.otlp.timeout",
			Message: "timeout must be non-negative",
		})
	}

	return errs
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
