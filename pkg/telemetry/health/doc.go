// Package health serves liveness and readiness probes for `yamlinc watch`.
//
// The probes share the metrics server, so a watcher run under an
// orchestrator can be restarted when it dies and taken out of rotation
// while its output is stale:
//
//   - liveness (/healthz): 200 while the watcher is running
//   - readiness (/readyz): 200 when the last compile succeeded, 503 before
//     the first compile finishes and after any compile that was not ok
//
// # Usage
//
//	state := &health.CompileState{}
//	checker := health.New(cfg.Health.CheckTimeout)
//	checker.RegisterCheck("compile", state.Check)
//
//	collector.Handle(cfg.Health.LivenessPath, checker.LivenessHandler())
//	collector.Handle(cfg.Health.ReadinessPath, checker.ReadinessHandler())
//
//	// after each compile
//	state.Observe(res)
package health
