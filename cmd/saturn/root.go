package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/saturn/pkg/cli"
	"mercator-hq/saturn/pkg/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "saturn",
	Short: "Saturn - retention filtering for aged items",
	Long: `Saturn decides which aged items to keep and which have aged out,
given retention rules like "keep the 5 most recent, 14 dailies, 8 weeklies".

It partitions timestamped items (backup files, snapshots, log archives) into
accepted and rejected sets:
  - One-shot filtering over paths, stdin lists, or a SQLite item catalog
  - Rule inspection and validation
  - Continuous audit mode with scheduled and change-triggered sweeps
  - Prometheus metrics and health endpoints in audit mode

Saturn only decides; deleting, moving, or archiving items is left to the
caller. For more information, visit: https://github.com/mercator-hq/saturn`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits the process with the
// matching code: 0 on success, 1 on runtime or validation failure,
// 2 when the command line could not be understood.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Flag parse failures are usage errors, not runtime failures
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.NewUsageError(err.Error())
	})

	// Disable default completion command (we'll add our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig initializes the global configuration. A missing file is
// only an error when --config points somewhere explicitly; otherwise
// the defaults apply, so one-shot commands work without a config.yaml
// in the working directory.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); err != nil {
		if os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			config.SetConfig(cfg)
			return cfg, nil
		}
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to read config %q: %v", cfgFile, err))
	}

	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	return config.GetConfig(), nil
}
