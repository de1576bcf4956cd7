package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/yamlinc/pkg/cli"
	"mercator-hq/yamlinc/pkg/include"
)

var compileFlags struct {
	output   string
	indent   int
	maxDepth int
}

var compileCmd = &cobra.Command{
	Use:   "compile FILE...",
	Short: "Resolve $include directives and print the result",
	Long: `Compile one or more YAML files, resolving every $include directive.

Each compiled document starts with a "## Source: FILE" comment. Several
inputs are written as one YAML stream separated by "---". A document that
cannot be resolved compiles to "empty: true". Missing input files are
reported and make the command fail once every input has been processed.

Examples:
  # Compile to stdout
  yamlinc compile main.yml

  # Compile several files into one stream
  yamlinc compile api.yml worker.yml --output compiled.yml

  # Reject include chains deeper than 5 files
  yamlinc compile main.yml --max-depth 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileFlags.output, "output", "o", "", "write compiled YAML to this file instead of stdout")
	compileCmd.Flags().IntVar(&compileFlags.indent, "indent", 0, "indentation of the compiled YAML (2-9)")
	compileCmd.Flags().IntVar(&compileFlags.maxDepth, "max-depth", -1, "maximum include nesting, 0 for unlimited")
}

func runCompile(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if compileFlags.output != "" {
		cfg.Compile.Output = compileFlags.output
	}
	if compileFlags.indent != 0 {
		if compileFlags.indent < 2 || compileFlags.indent > 9 {
			return cli.NewConfigError("indent", fmt.Sprintf("must be between 2 and 9, got %d", compileFlags.indent))
		}
		cfg.Compile.Indent = compileFlags.indent
	}
	if compileFlags.maxDepth >= 0 {
		cfg.Compile.MaxDepth = compileFlags.maxDepth
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	recorder, closeHistory, err := openHistory(&cfg.History, logger)
	if err != nil {
		return cli.NewCommandError("compile", err)
	}
	defer closeHistory()

	tracer, stopTracing, err := startTracing(ctx, &cfg.Tracing, logger)
	if err != nil {
		return err
	}
	defer stopTracing()

	compiler := include.New(include.Options{
		Logger:   logger,
		Tracer:   tracer.Tracer(),
		Indent:   cfg.Compile.Indent,
		MaxDepth: cfg.Compile.MaxDepth,
	})

	results := make([]include.Result, 0, len(args))
	missing := 0
	for _, file := range args {
		res := compiler.CompileResult(ctx, file)
		if res.Status == include.StatusMissing {
			missing++
		}
		if recorder != nil {
			if err := recorder.Record(ctx, res); err != nil {
				logger.WarnContext(ctx, "failed to record compile", "source", file, "error", err)
			}
		}
		results = append(results, res)
	}

	if err := writeOutput(cmd, cfg.Compile.Output, joinDocuments(results)); err != nil {
		return cli.NewCommandError("compile", err)
	}

	if missing > 0 {
		return cli.NewCommandError("compile", fmt.Errorf("%d of %d input files not found", missing, len(args)))
	}
	return nil
}
