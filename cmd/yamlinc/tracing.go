package main

import (
	"context"
	"time"

	"mercator-hq/yamlinc/pkg/cli"
	"mercator-hq/yamlinc/pkg/config"
	"mercator-hq/yamlinc/pkg/telemetry/logging"
	"mercator-hq/yamlinc/pkg/telemetry/tracing"
)

// tracingShutdownTimeout bounds the final span flush on exit.
const tracingShutdownTimeout = 5 * time.Second

// startTracing creates the tracer for compile spans and returns a function
// that flushes it. Disabled tracing yields a noop tracer.
func startTracing(ctx context.Context, cfg *config.TracingConfig, logger *logging.Logger) (*tracing.Tracer, func(), error) {
	tracer, err := tracing.New(cfg)
	if err != nil {
		return nil, nil, cli.NewConfigError("tracing", err.Error())
	}

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tracingShutdownTimeout)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.WarnContext(ctx, "failed to flush traces", "error", err)
		}
	}
	return tracer, stop, nil
}
