package config

import "time"

// Config is the root configuration structure for yamlinc.
// Each section configures one concern and is validated independently.
type Config struct {
	// Compile contains settings applied to every compile: output target,
	// indentation and the include nesting limit.
	Compile CompileConfig `yaml:"compile"`

	// Logging contains diagnostic output settings.
	Logging LoggingConfig `yaml:"logging"`

	// Watch contains settings for `yamlinc watch`.
	Watch WatchConfig `yaml:"watch"`

	// Metrics contains the Prometheus endpoint settings.
	Metrics MetricsConfig `yaml:"metrics"`

	// History contains settings for the compile history store.
	History HistoryConfig `yaml:"history"`

	// Health contains the probe endpoints served next to metrics.
	Health HealthConfig `yaml:"health"`

	// Tracing contains OpenTelemetry trace export settings.
	Tracing TracingConfig `yaml:"tracing"`
}

// CompileConfig contains settings for the include compiler.
type CompileConfig struct {
	// Output is the file compiled YAML is written to. Empty writes to stdout.
	Output string `yaml:"output"`

	// Quiet suppresses all diagnostic output.
	// Default: false
	Quiet bool `yaml:"quiet"`

	// Indent is the indentation width of the compiled YAML.
	// Default: 2
	Indent int `yaml:"indent"`

	// MaxDepth limits how deeply includes may nest. Zero means unlimited;
	// circular includes are rejected either way.
	// Default: 0
	MaxDepth int `yaml:"max_depth"`
}

// LoggingConfig contains diagnostic output configuration.
type LoggingConfig struct {
	// Level is the minimum level logged: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "console", "text" or "json".
	// Default: "console"
	Format string `yaml:"format"`

	// NoColor disables colours in console output.
	NoColor bool `yaml:"no_color"`
}

// WatchConfig contains configuration for watch mode.
type WatchConfig struct {
	// Debounce is how long to wait after the last file event before
	// recompiling. Bursts of events within this window cause one compile.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions lists the file extensions whose changes trigger a recompile.
	// Default: [".yml", ".yaml"]
	Extensions []string `yaml:"extensions"`

	// Schedule is a standard 5-field cron expression for periodic recompiles.
	// Empty disables scheduled recompiles.
	Schedule string `yaml:"schedule"`

	// Exec is a command (program followed by arguments) run after every
	// successful compile. It is executed directly, not through a shell.
	Exec []string `yaml:"exec"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled serves metrics while watching.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Address is the host:port the metrics endpoint listens on.
	// Default: "127.0.0.1:9464"
	Address string `yaml:"address"`

	// Path is the HTTP path metrics are served on.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes every metric name.
	// Default: "yamlinc"
	Namespace string `yaml:"namespace"`
}

// HistoryConfig contains compile history storage configuration.
type HistoryConfig struct {
	// Enabled records every compile in the history store.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Driver selects the SQLite driver: "sqlite" (pure Go) or "sqlite3" (cgo).
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file location.
	// Default: ".yamlinc/history.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long a write waits for a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// Retention is how long records are kept. Older records are pruned after
	// each new record. Zero keeps records forever.
	// Default: 0
	Retention time.Duration `yaml:"retention"`
}

// HealthConfig contains health check endpoint configuration. The probes are
// served by the metrics server, so they are only reachable while watching
// with metrics enabled.
type HealthConfig struct {
	// LivenessPath answers 200 while the watcher process is running.
	// Default: "/healthz"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath answers 200 when the last compile succeeded and 503
	// otherwise.
	// Default: "/readyz"
	ReadinessPath string `yaml:"readiness_path"`

	// CheckTimeout bounds each readiness check.
	// Default: 2s
	CheckTimeout time.Duration `yaml:"check_timeout"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled exports a span for every compile and every included file.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of compiles traced (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "yamlinc"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for the collector connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for each export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
