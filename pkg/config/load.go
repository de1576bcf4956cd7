package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention YAMLINC_SECTION_FIELD (e.g., YAMLINC_COMPILE_MAX_DEPTH).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// Load resolves the configuration used by the CLI. An explicit path must
// exist. With no path, DefaultConfigFile is used when present and the
// built-in defaults otherwise. Environment overrides apply in every case.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadConfigWithEnvOverrides(path)
	}

	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return LoadConfigWithEnvOverrides(DefaultConfigFile)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat configuration file %q: %w", DefaultConfigFile, err)
	}

	cfg := Default()
	applyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format YAMLINC_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Compile overrides
	if val := os.Getenv("YAMLINC_COMPILE_OUTPUT"); val != "" {
		cfg.Compile.Output = val
	}
	if val := os.Getenv("YAMLINC_COMPILE_QUIET"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Compile.Quiet = b
		}
	}
	if val := os.Getenv("YAMLINC_COMPILE_INDENT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Compile.Indent = i
		}
	}
	if val := os.Getenv("YAMLINC_COMPILE_MAX_DEPTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Compile.MaxDepth = i
		}
	}

	// Logging overrides
	if val := os.Getenv("YAMLINC_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("YAMLINC_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
	if val := os.Getenv("YAMLINC_LOGGING_NO_COLOR"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Logging.NoColor = b
		}
	}

	// Watch overrides
	if val := os.Getenv("YAMLINC_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}
	if val := os.Getenv("YAMLINC_WATCH_EXTENSIONS"); val != "" {
		cfg.Watch.Extensions = splitList(val, ",")
	}
	if val := os.Getenv("YAMLINC_WATCH_SCHEDULE"); val != "" {
		cfg.Watch.Schedule = val
	}
	if val := os.Getenv("YAMLINC_WATCH_EXEC"); val != "" {
		cfg.Watch.Exec = strings.Fields(val)
	}

	// Metrics overrides
	if val := os.Getenv("YAMLINC_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("YAMLINC_METRICS_ADDRESS"); val != "" {
		cfg.Metrics.Address = val
	}
	if val := os.Getenv("YAMLINC_METRICS_PATH"); val != "" {
		cfg.Metrics.Path = val
	}
	if val := os.Getenv("YAMLINC_METRICS_NAMESPACE"); val != "" {
		cfg.Metrics.Namespace = val
	}

	// History overrides
	if val := os.Getenv("YAMLINC_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("YAMLINC_HISTORY_DRIVER"); val != "" {
		cfg.History.Driver = val
	}
	if val := os.Getenv("YAMLINC_HISTORY_PATH"); val != "" {
		cfg.History.Path = val
	}
	if val := os.Getenv("YAMLINC_HISTORY_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.History.BusyTimeout = d
		}
	}
	if val := os.Getenv("YAMLINC_HISTORY_RETENTION"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.History.Retention = d
		}
	}

	// Health overrides
	if val := os.Getenv("YAMLINC_HEALTH_LIVENESS_PATH"); val != "" {
		cfg.Health.LivenessPath = val
	}
	if val := os.Getenv("YAMLINC_HEALTH_READINESS_PATH"); val != "" {
		cfg.Health.ReadinessPath = val
	}

	// Tracing overrides
	if val := os.Getenv("YAMLINC_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("YAMLINC_TRACING_SAMPLER"); val != "" {
		cfg.Tracing.Sampler = val
	}
	if val := os.Getenv("YAMLINC_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Tracing.SampleRatio = f
		}
	}
	if val := os.Getenv("YAMLINC_TRACING_ENDPOINT"); val != "" {
		cfg.Tracing.Endpoint = val
	}
	if val := os.Getenv("YAMLINC_TRACING_SERVICE_NAME"); val != "" {
		cfg.Tracing.ServiceName = val
	}
	if val := os.Getenv("YAMLINC_TRACING_OTLP_INSECURE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Tracing.OTLP.Insecure = b
		}
	}
}

// splitList splits a separated list, trimming blanks and dropping empties.
func splitList(val, sep string) []string {
	var out []string
	for _, part := range strings.Split(val, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
