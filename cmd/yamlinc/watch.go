package main

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"mercator-hq/yamlinc/pkg/cli"
	"mercator-hq/yamlinc/pkg/include"
	"mercator-hq/yamlinc/pkg/telemetry/health"
	"mercator-hq/yamlinc/pkg/telemetry/metrics"
	"mercator-hq/yamlinc/pkg/telemetry/tracing"
	"mercator-hq/yamlinc/pkg/watch"
)

var watchFlags struct {
	output   string
	exec     string
	schedule string
	metrics  bool
}

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Recompile whenever a source file changes",
	Long: `Compile FILE, then recompile it whenever it or any file it includes
changes. The directory of every file read by the last compile is watched,
so newly added includes are picked up automatically.

After each successful compile the --exec command, if any, is run directly
(not through a shell). A cron --schedule forces periodic recompiles. With
metrics enabled, Prometheus metrics are served while watching, together
with /healthz and /readyz probes; readiness fails while the last compile
was not ok.

Watching stops on SIGINT or SIGTERM.

Examples:
  # Keep compiled.yml up to date
  yamlinc watch main.yml --output compiled.yml

  # Redeploy after every change
  yamlinc watch main.yml --output compiled.yml --exec "kubectl apply -f compiled.yml"

  # Also recompile every hour and serve metrics
  yamlinc watch main.yml --schedule "0 * * * *" --metrics`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.output, "output", "o", "", "write compiled YAML to this file instead of stdout")
	watchCmd.Flags().StringVar(&watchFlags.exec, "exec", "", "command to run after each successful compile")
	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "", "cron expression for periodic recompiles")
	watchCmd.Flags().BoolVar(&watchFlags.metrics, "metrics", false, "serve Prometheus metrics while watching")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchFlags.output != "" {
		cfg.Compile.Output = watchFlags.output
	}
	if watchFlags.exec != "" {
		cfg.Watch.Exec = strings.Fields(watchFlags.exec)
	}
	if watchFlags.schedule != "" {
		cfg.Watch.Schedule = watchFlags.schedule
	}
	if watchFlags.metrics {
		cfg.Metrics.Enabled = true
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	recorder, closeHistory, err := openHistory(&cfg.History, logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer closeHistory()

	tracer, stopTracing, err := startTracing(ctx, &cfg.Tracing, logger)
	if err != nil {
		return err
	}
	defer stopTracing()

	state := &health.CompileState{}
	checker := health.New(cfg.Health.CheckTimeout)
	checker.RegisterCheck("compile", state.Check)

	collector := metrics.NewCollector(&cfg.Metrics, prometheus.NewRegistry())
	collector.Handle(cfg.Health.LivenessPath, checker.LivenessHandler())
	collector.Handle(cfg.Health.ReadinessPath, checker.ReadinessHandler())
	if cfg.Metrics.Enabled {
		go func() {
			if err := collector.Serve(ctx); err != nil {
				logger.ErrorContext(ctx, "metrics server failed", "address", cfg.Metrics.Address, "error", err)
			}
		}()
	}

	compiler := include.New(include.Options{
		Logger:   logger,
		Recorder: collector,
		Tracer:   tracer.Tracer(),
		Indent:   cfg.Compile.Indent,
		MaxDepth: cfg.Compile.MaxDepth,
	})

	compile := func(ctx context.Context, trigger string) ([]string, bool) {
		ctx, span := tracer.Start(ctx, tracing.SpanRecompile, tracing.RecompileStart(trigger))
		defer span.End()

		res := compiler.CompileResult(ctx, file)
		collector.RecordRecompile(trigger)
		state.Observe(res)

		if recorder != nil {
			if err := recorder.Record(ctx, res); err != nil {
				logger.WarnContext(ctx, "failed to record compile", "source", file, "error", err)
			}
		}

		files := append([]string{file}, res.Includes...)
		if res.Status == include.StatusMissing {
			return files, false
		}
		if err := writeOutput(cmd, cfg.Compile.Output, res.Output); err != nil {
			logger.ErrorContext(ctx, "failed to write output", "error", err)
			return files, false
		}
		return files, res.Status == include.StatusOK
	}

	session, err := watch.NewSession(watch.Options{
		Watcher: &watch.Config{
			Debounce:   cfg.Watch.Debounce,
			Extensions: cfg.Watch.Extensions,
			SkipHidden: true,
			Ignore:     ignoreOutput(cfg.Compile.Output),
		},
		Schedule: cfg.Watch.Schedule,
		Hook: &watch.Hook{
			Command: cfg.Watch.Exec,
			Stdout:  cmd.ErrOrStderr(),
			Stderr:  cmd.ErrOrStderr(),
		},
		Logger: logger.Slog(),
	}, compile)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	if err := session.Run(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// ignoreOutput keeps writes to the output file from triggering recompiles.
func ignoreOutput(path string) []string {
	if path == "" {
		return nil
	}
	return []string{path}
}
