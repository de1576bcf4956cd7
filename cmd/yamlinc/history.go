package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/yamlinc/pkg/cli"
	"mercator-hq/yamlinc/pkg/history"
)

var historyFlags struct {
	limit  int
	source string
	status string
	since  time.Duration
	format string
	prune  time.Duration
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded compiles",
	Long: `List compiles recorded in the history store, newest first.

History is recorded when history.enabled is set in the configuration. Each
record holds the source file, status, include and error counts, duration
and a SHA-256 hash of the compiled output, so unchanged builds are easy to
spot.

Examples:
  # Last 20 compiles
  yamlinc history --limit 20

  # Failed compiles of one file in the last day, as JSON
  yamlinc history --source main.yml --status empty --since 24h --format json

  # Delete records older than 30 days
  yamlinc history --prune 720h`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum number of records, 0 for all")
	historyCmd.Flags().StringVar(&historyFlags.source, "source", "", "only compiles of this source file")
	historyCmd.Flags().StringVar(&historyFlags.status, "status", "", "only compiles with this status: ok, empty, missing")
	historyCmd.Flags().DurationVar(&historyFlags.since, "since", 0, "only compiles within this duration (e.g. 24h)")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, yaml, csv")
	historyCmd.Flags().DurationVar(&historyFlags.prune, "prune", 0, "delete records older than this duration instead of listing")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	format, err := cli.ParseFormat(historyFlags.format)
	if err != nil {
		return err
	}
	if historyFlags.limit < 0 {
		return cli.NewConfigError("limit", "must be non-negative")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return cli.NewConfigError("history.enabled", "compile history is disabled")
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	store, err := history.OpenSQLite(history.ConfigFromHistory(&cfg.History, logger.Slog()))
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	if historyFlags.prune > 0 {
		deleted, err := store.Prune(ctx, time.Now().Add(-historyFlags.prune))
		if err != nil {
			return cli.NewCommandError("history", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d records\n", deleted)
		return nil
	}

	query := &history.Query{
		Source: historyFlags.source,
		Status: historyFlags.status,
		Limit:  historyFlags.limit,
	}
	if historyFlags.since > 0 {
		query.Since = time.Now().Add(-historyFlags.since)
	}

	records, err := store.List(ctx, query)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	var data interface{} = recordTable(records)
	if format == cli.FormatJSON || format == cli.FormatYAML {
		data = records
		if records == nil {
			data = []*history.Record{}
		}
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), data)
}

// recordTable renders history records as rows.
type recordTable []*history.Record

func (recordTable) Headers() []string {
	return []string{"COMPILED", "SOURCE", "STATUS", "INCLUDES", "ERRORS", "DURATION", "OUTPUT"}
}

func (t recordTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		rows = append(rows, []string{
			r.CompiledAt.Local().Format(time.DateTime),
			r.Source,
			r.Status,
			strconv.Itoa(r.Includes),
			strconv.Itoa(r.Errors),
			r.Duration.Round(time.Microsecond).String(),
			shortHash(r.OutputHash),
		})
	}
	return rows
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
