package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/saturn/pkg/cli"
	"mercator-hq/saturn/pkg/config"
	"mercator-hq/saturn/pkg/telemetry"
	"mercator-hq/saturn/pkg/telemetry/health"
	"mercator-hq/saturn/pkg/telemetry/logging"
	"mercator-hq/saturn/pkg/telemetry/metrics"
	"mercator-hq/saturn/pkg/watch"
)

var watchFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously audit directories against retention rules",
	Long: `Run retention sweeps over the configured directories until stopped.

Watch mode re-evaluates the retention rules on a cron schedule and,
when rescan_on_change is enabled, after debounced filesystem changes.
Every sweep logs which items the rules would keep and which have aged
out; nothing is ever deleted. Prometheus metrics and health endpoints
are served on the configured listen address.

Watch mode is configured through the config file:

  filter:
    rules: "recent5,days14,weeks8"
  watch:
    paths: ["/var/backups/db"]
    schedule: "@hourly"
    rescan_on_change: true

Examples:
  # Audit with the default config file
  saturn watch

  # Audit with an explicit config
  saturn watch --config /etc/saturn/config.yaml

  # Validate the watch configuration without starting
  saturn watch --dry-run

  # Serve metrics somewhere else for this run
  saturn watch --listen 0.0.0.0:9464`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.listenAddress, "listen", "l", "", "override the metrics listen address")
	watchCmd.Flags().StringVar(&watchFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	watchCmd.Flags().BoolVar(&watchFlags.dryRun, "dry-run", false, "validate config without starting watch mode")
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply flag overrides
	if watchFlags.listenAddress != "" {
		cfg.Telemetry.Metrics.ListenAddress = watchFlags.listenAddress
	}
	if watchFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = watchFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	logger.SetAsDefault()

	if err := validateWatchConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("Saturn v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	if watchFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	// The context ends on SIGINT or SIGTERM
	ctx := cli.SetupSignalHandler()

	collector := metrics.NewCollector(&metrics.Config{
		Enabled:   cfg.Telemetry.Metrics.Enabled,
		Namespace: cfg.Telemetry.Metrics.Namespace,
	}, nil)

	auditor, err := watch.NewAuditor(&watch.AuditorConfig{
		Paths:          cfg.Watch.Paths,
		Rules:          cfg.Filter.Rules,
		TimeLayout:     cfg.Filter.TimeFromName,
		FollowSymlinks: cfg.Filter.FollowSymlinks,
	}, collector, logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	checker := health.New(0)
	errChan := make(chan error, 2)

	scheduler := watch.NewScheduler(auditor, cfg.Watch.Schedule)
	if cfg.Watch.Schedule != "" {
		checker.RegisterCheck("scheduler", func(ctx context.Context) error {
			if !scheduler.IsRunning() {
				return errors.New("sweep scheduler is not running")
			}
			return nil
		})
	}

	var watcher *watch.Watcher
	if cfg.Watch.RescanOnChange {
		watcher, err = watch.NewWatcher(&watch.WatcherConfig{
			Paths:    cfg.Watch.Paths,
			Debounce: cfg.Watch.Debounce,
		}, collector)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		checker.RegisterCheck("watcher", watcher.Healthy)
	}

	// Telemetry server
	var srv *telemetry.Server
	if cfg.Telemetry.Metrics.Enabled {
		srv = telemetry.NewServer(&telemetry.ServerConfig{
			ListenAddress: cfg.Telemetry.Metrics.ListenAddress,
			MetricsPath:   cfg.Telemetry.Metrics.Path,
			Version:       Version,
			Commit:        GitCommit,
			BuildTime:     BuildDate,
		}, collector, checker)
		go func() {
			if err := srv.Start(ctx); err != nil {
				errChan <- fmt.Errorf("telemetry server error: %w", err)
			}
		}()
	}

	// Initial sweep. A failure here means the configuration points at
	// something unusable, so fail fast instead of daemonizing.
	report, err := auditor.Run(ctx, "startup")
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	fmt.Printf("✓ Initial sweep: %d examined, %d kept, %d aged out\n",
		report.Examined, len(report.Accepted), len(report.Rejected))

	if err := scheduler.Start(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer scheduler.Stop()
	if next := scheduler.NextRun(); next != nil {
		slog.Debug("next scheduled sweep", "at", next)
	}

	if watcher != nil {
		go func() {
			err := watcher.Watch(ctx, func() {
				if _, err := auditor.Run(ctx, "fsevent"); err != nil {
					slog.Error("change-triggered sweep failed", "error", err)
				}
			})
			if err != nil {
				errChan <- fmt.Errorf("watcher error: %w", err)
			}
		}()
		defer watcher.Stop()
	}

	fmt.Println()
	fmt.Printf("✓ Watching %d directories (schedule: %s)\n", len(cfg.Watch.Paths), cfg.Watch.Schedule)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n",
			cfg.Telemetry.Metrics.ListenAddress, cfg.Telemetry.Metrics.Path)
		fmt.Printf("✓ Health endpoints: http://%s/healthz /readyz\n",
			cfg.Telemetry.Metrics.ListenAddress)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	select {
	case err := <-errChan:
		return cli.NewCommandError("watch", err)
	case <-ctx.Done():
		fmt.Println("\nShutting down gracefully...")

		if srv != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("telemetry server shutdown failed", "error", err)
			}
		}

		fmt.Println("✓ Watch stopped")
		return nil
	}
}

// validateWatchConfig checks the fields watch mode cannot run
// without. Paths and rules are optional for one-shot commands, so
// the config loader does not enforce them.
func validateWatchConfig(cfg *config.Config) error {
	if len(cfg.Watch.Paths) == 0 {
		return cli.NewConfigError("watch.paths", "watch mode needs at least one directory to watch")
	}
	if cfg.Filter.Rules == "" {
		return cli.NewConfigError("filter.rules", "watch mode needs retention rules")
	}

	for _, path := range cfg.Watch.Paths {
		if _, err := os.Stat(path); err != nil {
			return cli.NewConfigError("watch.paths", fmt.Sprintf("cannot watch %q: %v", path, err))
		}
	}
	return nil
}
