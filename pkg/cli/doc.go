/*
Package cli provides helpers shared by the yamlinc commands.

Output Formatting:

Command results can be written as text, JSON, YAML or CSV. Results that
implement Tabular are aligned in columns for text and written row by row
for CSV:

	format, err := cli.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, records); err != nil {
		return err
	}

Errors:

ConfigError marks bad flags or configuration and CommandError wraps a
failed command. ExitCode maps either to a process exit status.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
