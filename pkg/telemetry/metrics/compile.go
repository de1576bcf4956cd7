package metrics

import (
	"time"

	"mercator-hq/yamlinc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CompileMetrics tracks metrics related to top-level compiles.
//
// Metrics:
//   - yamlinc_compiles_total: Total compiles by status (ok, empty, missing)
//   - yamlinc_compile_duration_seconds: Compile wall time
//   - yamlinc_include_depth: Deepest include nesting reached per compile
type CompileMetrics struct {
	// Total compiles
	compilesTotal *prometheus.CounterVec

	// Compile duration histogram
	compileDuration prometheus.Histogram

	// Include nesting depth histogram
	includeDepth prometheus.Histogram
}

// NewCompileMetrics creates and registers compile metrics with the provided registry.
func NewCompileMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CompileMetrics {
	cm := &CompileMetrics{
		compilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "compiles_total",
				Help:      "Total number of compiles",
			},
			[]string{"status"},
		),

		compileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "compile_duration_seconds",
				Help:      "Duration of a compile in seconds",
				// Compiles read a handful of small files
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 9), // 100µs to 6.5s
			},
		),

		includeDepth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "include_depth",
				Help:      "Deepest include nesting reached by a compile",
				Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
			},
		),
	}

	registry.MustRegister(
		cm.compilesTotal,
		cm.compileDuration,
		cm.includeDepth,
	)

	return cm
}

// RecordCompile records a finished compile.
//
// Example:
//
//	cm.RecordCompile("ok", 3*time.Millisecond, 2)
func (cm *CompileMetrics) RecordCompile(status string, duration time.Duration, depth int) {
	cm.compilesTotal.WithLabelValues(status).Inc()
	cm.compileDuration.Observe(duration.Seconds())
	cm.includeDepth.Observe(float64(depth))
}

// IncludeMetrics tracks the outcome of individual include directives.
//
// Metrics:
//   - yamlinc_includes_total: Total includes by status (resolved, missing, failed, cycle)
type IncludeMetrics struct {
	includesTotal *prometheus.CounterVec
}

// NewIncludeMetrics creates and registers include metrics with the provided registry.
func NewIncludeMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *IncludeMetrics {
	im := &IncludeMetrics{
		includesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "includes_total",
				Help:      "Total number of include directives processed",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(im.includesTotal)

	return im
}

// RecordInclude records one processed include target.
func (im *IncludeMetrics) RecordInclude(status string) {
	im.includesTotal.WithLabelValues(status).Inc()
}

// WatchMetrics tracks recompiles triggered in watch mode.
//
// Metrics:
//   - yamlinc_recompiles_total: Recompiles by trigger (change, schedule)
//   - yamlinc_last_compile_timestamp_seconds: Unix time of the last compile
type WatchMetrics struct {
	recompilesTotal *prometheus.CounterVec
	lastCompile     prometheus.Gauge
}

// NewWatchMetrics creates and registers watch metrics with the provided registry.
func NewWatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *WatchMetrics {
	wm := &WatchMetrics{
		recompilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "recompiles_total",
				Help:      "Total number of watch mode recompiles",
			},
			[]string{"trigger"},
		),

		lastCompile: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "last_compile_timestamp_seconds",
				Help:      "Unix time of the last watch mode compile",
			},
		),
	}

	registry.MustRegister(wm.recompilesTotal, wm.lastCompile)

	return wm
}

// RecordRecompile records a recompile and its trigger.
func (wm *WatchMetrics) RecordRecompile(trigger string, at time.Time) {
	wm.recompilesTotal.WithLabelValues(trigger).Inc()
	wm.lastCompile.Set(float64(at.Unix()))
}
