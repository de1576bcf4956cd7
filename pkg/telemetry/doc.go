// Package telemetry groups yamlinc's observability packages.
//
// # Components
//
//   - logging: slog-based diagnostics with a human console format
//   - metrics: Prometheus metrics for compiles, includes and recompiles
//   - health: liveness and readiness probes served next to metrics
//   - tracing: OpenTelemetry spans for compiles and included files
//
// Each is configured from its section of the configuration and passed
// explicitly to the components that use it.
package telemetry
