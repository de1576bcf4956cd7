// Package metrics provides Prometheus metrics collection for yamlinc.
//
// # Metrics
//
//   - yamlinc_compiles_total{status}: compiles by status (ok, empty, missing)
//   - yamlinc_compile_duration_seconds: compile wall time
//   - yamlinc_include_depth: deepest include nesting per compile
//   - yamlinc_includes_total{status}: include targets by status
//     (resolved, missing, failed, cycle)
//   - yamlinc_recompiles_total{trigger}: watch mode recompiles (change, schedule)
//   - yamlinc_last_compile_timestamp_seconds: time of the last watch compile
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//	compiler := include.New(include.Options{Recorder: collector})
//
//	go collector.Serve(ctx) // serves cfg.Metrics.Path on cfg.Metrics.Address
//
// Recording is a no-op unless the configuration enables metrics.
package metrics
