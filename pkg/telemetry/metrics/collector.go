package metrics

import (
	"time"

	"mercator-hq/yamlinc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the main orchestrator for all Prometheus metrics in yamlinc.
// It manages metric registration and implements include.Recorder, so a
// Collector can be handed straight to the compiler.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Compile metrics
	compileMetrics *CompileMetrics

	// Include metrics
	includeMetrics *IncludeMetrics

	// Watch mode metrics
	watchMetrics *WatchMetrics

	// Extra handlers served next to metrics, such as health probes
	routes []route
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is used.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "yamlinc",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		config:         cfg,
		registry:       registry,
		compileMetrics: NewCompileMetrics(cfg, registry),
		includeMetrics: NewIncludeMetrics(cfg, registry),
		watchMetrics:   NewWatchMetrics(cfg, registry),
	}
}

// RecordCompile records metrics for a finished compile.
//
// Parameters:
//   - status: Compile status ("ok", "empty", "missing")
//   - duration: Compile wall time
//   - depth: Deepest include nesting reached
func (c *Collector) RecordCompile(status string, duration time.Duration, depth int) {
	if !c.config.Enabled {
		return
	}

	c.compileMetrics.RecordCompile(status, duration, depth)
}

// RecordInclude records the outcome of one include target.
//
// Parameters:
//   - status: Include status ("resolved", "missing", "failed", "cycle")
func (c *Collector) RecordInclude(status string) {
	if !c.config.Enabled {
		return
	}

	c.includeMetrics.RecordInclude(status)
}

// RecordRecompile records a watch mode recompile.
//
// Parameters:
//   - trigger: What caused the recompile ("change", "schedule")
func (c *Collector) RecordRecompile(trigger string) {
	if !c.config.Enabled {
		return
	}

	c.watchMetrics.RecordRecompile(trigger, time.Now())
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
