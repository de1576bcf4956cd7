package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/yamlinc/pkg/config"
	"mercator-hq/yamlinc/pkg/history"
	"mercator-hq/yamlinc/pkg/include"
	"mercator-hq/yamlinc/pkg/telemetry/logging"
)

// documentSeparator joins compiled documents written to one output.
const documentSeparator = "---\n"

// joinDocuments concatenates compiled outputs as a YAML stream. Empty
// outputs (missing roots) are skipped.
func joinDocuments(results []include.Result) string {
	var docs []string
	for _, res := range results {
		if res.Output != "" {
			docs = append(docs, res.Output)
		}
	}
	return strings.Join(docs, documentSeparator)
}

// writeOutput writes text to path, or to the command's stdout when path is
// empty. Parent directories of path are created.
func writeOutput(cmd *cobra.Command, path, text string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// openHistory opens the configured history store. It returns a nil
// recorder and a no-op close when history is disabled.
func openHistory(cfg *config.HistoryConfig, logger *logging.Logger) (*history.Recorder, func() error, error) {
	if !cfg.Enabled {
		return nil, func() error { return nil }, nil
	}

	store, err := history.OpenSQLite(history.ConfigFromHistory(cfg, logger.Slog()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history: %w", err)
	}
	return history.NewRecorder(store, cfg.Retention, logger.Slog()), store.Close, nil
}
