// Package tracing exports OpenTelemetry spans for compiles.
//
// Every compile produces a yamlinc.compile span, and every file read while
// resolving it a nested yamlinc.resolve span, so a slow or failing include
// chain can be inspected in any OTLP-compatible backend:
//
//	yamlinc.recompile          (watch mode only)
//	└── yamlinc.compile        main.yml
//	    ├── yamlinc.resolve    main.yml
//	    │   └── yamlinc.resolve conf/base.yml
//	    │       └── yamlinc.resolve conf/db.yml
//
// Spans are exported over OTLP gRPC. When tracing is disabled a noop tracer
// is returned and spans cost almost nothing.
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	compiler := include.New(include.Options{Tracer: tracer.Tracer()})
//
// # Sampling
//
// Three sampling strategies are supported:
//   - always: trace every compile
//   - never: trace nothing
//   - ratio: trace a fraction of compiles, decided by trace ID
//
// # Configuration
//
//	tracing:
//	  enabled: true
//	  sampler: ratio
//	  sample_ratio: 0.25
//	  endpoint: localhost:4317
//	  otlp:
//	    insecure: true
//	    timeout: 10s
package tracing
