package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/saturn/pkg/catalog"
	"mercator-hq/saturn/pkg/cli"
	"mercator-hq/saturn/pkg/config"
	"mercator-hq/saturn/pkg/retention"
	"mercator-hq/saturn/pkg/retention/rules"
	"mercator-hq/saturn/pkg/scan"
	"mercator-hq/saturn/pkg/telemetry/logging"
)

var filterFlags struct {
	stdin         bool
	stdin0        bool
	catalogDSN    string
	accepted      bool
	null          bool
	format        string
	output        string
	referenceTime string
	timeFromName  string
}

var filterCmd = &cobra.Command{
	Use:   "filter RULES [ITEM...]",
	Short: "Partition items into kept and aged-out",
	Long: `Partition timestamped items against a retention rules string.

Rules are comma-separated <category><count> tokens over the categories
years, months, weeks, days, hours, and recent. Each category keeps the
newest item per age bucket; recent keeps the N newest items less than an
hour old. Items come from path arguments, stdin, or a SQLite catalog,
and their timestamps from file modification times unless --time-from-name
derives them from basenames.

By default the aged-out items print one per line, ready to feed a cleanup
pipeline. Saturn itself never deletes anything.

Examples:
  # Print the backups that have aged out
  saturn filter days14,months6 /var/backups/db/*.tar.gz

  # Print the survivors instead
  saturn filter days14,months6 --accepted /var/backups/db/*.tar.gz

  # Null-separated paths in and out, for xargs -0
  find /var/backups -print0 | saturn filter days14 --stdin0 --null | xargs -0r rm

  # Timestamps from basenames instead of modification times
  saturn filter weeks8 --time-from-name 'db-20060102-150405.tar.gz' /var/backups/db/*

  # Decide against a fixed point in time
  saturn filter days14 --reference-time 2021-06-01T12:00:00Z /var/backups/db/*

  # Items from a snapshot catalog, full report as JSON
  saturn filter days30 --catalog /var/lib/snapd/catalog.db --format json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return cli.NewUsageError("requires a retention rules string, e.g. \"recent5,days14\"")
		}
		return nil
	},
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().BoolVar(&filterFlags.stdin, "stdin", false, "read item paths from stdin, one per line")
	filterCmd.Flags().BoolVar(&filterFlags.stdin0, "stdin0", false, "read item paths from stdin, null separated")
	filterCmd.Flags().StringVar(&filterFlags.catalogDSN, "catalog", "", "read items from a SQLite catalog at this path")
	filterCmd.Flags().BoolVar(&filterFlags.accepted, "accepted", false, "print the items to keep instead of the aged-out ones")
	filterCmd.Flags().BoolVar(&filterFlags.null, "null", false, "separate output items with NUL instead of newline")
	filterCmd.Flags().StringVar(&filterFlags.format, "format", "text", "output format: text, json")
	filterCmd.Flags().StringVarP(&filterFlags.output, "output", "o", "", "write output to this file instead of stdout")
	filterCmd.Flags().StringVar(&filterFlags.referenceTime, "reference-time", "", "evaluate ages against this time instead of now (RFC3339 or 20060102-150405)")
	filterCmd.Flags().StringVar(&filterFlags.timeFromName, "time-from-name", "", "derive item timestamps from basenames using this layout")
}

// filterReport is the JSON form of one filtering run.
type filterReport struct {
	Rules      string         `json:"rules"`
	Reference  time.Time      `json:"reference_time"`
	Examined   int            `json:"examined"`
	Accepted   []string       `json:"accepted"`
	Rejected   []string       `json:"rejected"`
	ByCategory map[string]int `json:"by_category"`
}

func runFilter(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	in := io.Reader(os.Stdin)
	if cmd != nil {
		if cmdCtx := cmd.Context(); cmdCtx != nil {
			ctx = cmdCtx
		}
		in = cmd.InOrStdin()
	}

	rulesArg := args[0]
	itemArgs := args[1:]

	if err := validateItemSource(itemArgs); err != nil {
		return err
	}

	format, err := cli.ParseFormat(filterFlags.format)
	if err != nil {
		return cli.NewUsageError(err.Error())
	}

	reference, err := parseReferenceTime(filterFlags.referenceTime)
	if err != nil {
		return cli.NewUsageError(err.Error())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	policy, err := rules.Parse(rulesArg)
	if err != nil {
		return err
	}

	filter, err := retention.NewFilter(policy, reference)
	if err != nil {
		return err
	}

	items, err := collectItems(ctx, cfg, in, itemArgs)
	if err != nil {
		return err
	}

	part, err := filter.Partition(items)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if filterFlags.output != "" {
		f, err := os.Create(filterFlags.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if format == cli.FormatJSON {
		return writeReport(out, policy, part)
	}

	chosen := part.Rejected
	if filterFlags.accepted {
		chosen = part.Accepted
	}
	return writeItems(out, chosen)
}

// validateItemSource enforces exactly one item source per run.
func validateItemSource(itemArgs []string) error {
	sources := 0
	if len(itemArgs) > 0 {
		sources++
	}
	if filterFlags.stdin {
		sources++
	}
	if filterFlags.stdin0 {
		sources++
	}
	if filterFlags.catalogDSN != "" {
		sources++
	}

	switch {
	case sources == 0:
		return cli.NewUsageError("no items to filter: pass item paths, --stdin, --stdin0, or --catalog")
	case sources > 1:
		return cli.NewUsageError("choose one item source: item paths, --stdin, --stdin0, or --catalog")
	}
	return nil
}

// parseReferenceTime parses the --reference-time flag. The empty
// string means now. The compact layout is read in local time, like
// the timestamps ls prints.
func parseReferenceTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("20060102-150405", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid reference time %q (expected RFC3339 like 2021-06-01T12:00:00Z or 20060102-150405)", s)
}

// setupLogging installs the default logger per configuration. Logs go
// to stderr: stdout belongs to the item list.
func setupLogging(cfg *config.Config) error {
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:  level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	logger.SetAsDefault()
	return nil
}

// collectItems resolves the selected item source into filter input.
func collectItems(ctx context.Context, cfg *config.Config, in io.Reader, itemArgs []string) ([]retention.Item, error) {
	if filterFlags.catalogDSN != "" {
		return collectCatalogItems(ctx, cfg)
	}

	timeLayout := filterFlags.timeFromName
	if timeLayout == "" {
		timeLayout = cfg.Filter.TimeFromName
	}
	scanner := scan.NewScanner(&scan.Config{
		FollowSymlinks: cfg.Filter.FollowSymlinks,
		TimeLayout:     timeLayout,
	})

	var entries []*scan.Entry
	var err error
	if filterFlags.stdin || filterFlags.stdin0 {
		entries, err = scanner.Read(ctx, in, filterFlags.stdin0)
	} else {
		entries, err = scanner.Paths(ctx, itemArgs)
	}
	if err != nil {
		return nil, err
	}

	items := make([]retention.Item, len(entries))
	for i, entry := range entries {
		items[i] = entry
	}
	return items, nil
}

// collectCatalogItems reads filter input from the SQLite catalog.
func collectCatalogItems(ctx context.Context, cfg *config.Config) ([]retention.Item, error) {
	cat, err := catalog.Open(&catalog.Config{
		DSN:        filterFlags.catalogDSN,
		Table:      cfg.Catalog.Table,
		IDColumn:   cfg.Catalog.IDColumn,
		TimeColumn: cfg.Catalog.TimeColumn,
	})
	if err != nil {
		return nil, err
	}
	defer cat.Close()

	entries, err := cat.Items(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]retention.Item, len(entries))
	for i, entry := range entries {
		items[i] = entry
	}
	return items, nil
}

// writeItems prints one item per line, or NUL separated with --null.
func writeItems(w io.Writer, items []retention.Item) error {
	separator := "\n"
	if filterFlags.null {
		separator = "\x00"
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "%v%s", item, separator); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// writeReport prints the full partition as an indented JSON report.
func writeReport(w io.Writer, policy *retention.Policy, part *retention.Partition) error {
	report := filterReport{
		Rules:      rules.Format(policy),
		Reference:  part.Reference,
		Examined:   len(part.Accepted) + len(part.Rejected),
		Accepted:   itemStrings(part.Accepted),
		Rejected:   itemStrings(part.Rejected),
		ByCategory: make(map[string]int, len(part.CategoryCounts)),
	}
	for category, n := range part.CategoryCounts {
		report.ByCategory[category.String()] = n
	}

	formatter := cli.NewFormatter(cli.FormatJSON)
	return formatter.FormatTo(w, report)
}

func itemStrings(items []retention.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = fmt.Sprint(item)
	}
	return out
}
