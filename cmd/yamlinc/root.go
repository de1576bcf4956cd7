package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/yamlinc/pkg/cli"
	"mercator-hq/yamlinc/pkg/config"
	"mercator-hq/yamlinc/pkg/telemetry/logging"
)

var rootFlags struct {
	config    string
	quiet     bool
	logLevel  string
	logFormat string
	noColor   bool
}

var rootCmd = &cobra.Command{
	Use:   "yamlinc",
	Short: "Yamlinc - compile YAML files with $include directives",
	Long: `Yamlinc resolves $include directives in YAML documents.

A mapping key "$include" names one file, or a list of files, whose contents
are merged into the mapping that holds the key. Included files may include
others. Keys written by the including document win over included ones,
lists are concatenated and mappings are merged recursively.

Configuration is read from --config, or from .yamlinc.yaml in the current
directory when present. YAMLINC_SECTION_FIELD environment variables
override file values and command-line flags override both.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := cli.SetupSignalHandler(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlags.config, "config", "c", "", "config file path (default .yamlinc.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.quiet, "quiet", "q", false, "suppress diagnostic output")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logFormat, "log-format", "", "log format: console, text, json")
	rootCmd.PersistentFlags().BoolVar(&rootFlags.noColor, "no-color", false, "disable colored diagnostics")
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootFlags.config)
	if err != nil {
		return nil, cli.NewConfigError("config", err.Error())
	}

	if rootFlags.quiet {
		cfg.Compile.Quiet = true
	}
	if rootFlags.logLevel != "" {
		cfg.Logging.Level = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		cfg.Logging.Format = rootFlags.logFormat
	}
	if rootFlags.noColor {
		cfg.Logging.NoColor = true
	}

	if err := config.Validate(cfg); err != nil {
		return nil, cli.NewConfigError("flags", err.Error())
	}

	return cfg, nil
}

// newLogger builds the diagnostic logger writing to w.
func newLogger(cfg *config.Config, w io.Writer) (*logging.Logger, error) {
	logger, err := logging.New(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Quiet:   cfg.Compile.Quiet,
		NoColor: cfg.Logging.NoColor,
		Writer:  w,
	})
	if err != nil {
		return nil, cli.NewConfigError("logging", err.Error())
	}
	return logger, nil
}

// commandContext returns the command's context, or a background context
// when the command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
