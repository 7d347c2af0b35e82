/*
Package cli provides command-line interface utilities for Saturn.

The cli package includes output formatters, exit-code mapping, and
common CLI helpers used by the saturn command.

Output Formatting:

The cli package supports text and JSON output for displaying command
results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	data := MyCommandResult{...}
	if err := formatter.FormatTo(os.Stdout, data); err != nil {
		return err
	}

Exit Codes:

Commands return errors; main maps them to the process exit code:

	os.Exit(cli.ExitCode(err))

A nil error exits 0, a UsageError exits 2, and everything else exits 1.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
