package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mercator-hq/saturn/pkg/retention"
	"mercator-hq/saturn/pkg/retention/rules"
	"mercator-hq/saturn/pkg/scan"
	"mercator-hq/saturn/pkg/telemetry/logging"
	"mercator-hq/saturn/pkg/telemetry/metrics"
)

// AuditorConfig contains configuration for an Auditor.
type AuditorConfig struct {
	// Paths are the directories whose entries are evaluated on each
	// sweep. A path that is a plain file is evaluated as-is.
	Paths []string

	// Rules is the retention rule string, e.g. "recent5,days10".
	Rules string

	// TimeLayout, when non-empty, derives item timestamps from file
	// basenames instead of modification times.
	TimeLayout string

	// FollowSymlinks makes symlink timestamps come from the link
	// target instead of the link itself.
	FollowSymlinks bool
}

// Report summarizes a single sweep.
type Report struct {
	// RunID uniquely identifies the sweep in log output.
	RunID string

	// Trigger names what started the sweep: "startup", "manual",
	// "schedule" or "fsevent".
	Trigger string

	// StartedAt is when the sweep began. The filter evaluates item
	// ages against this point in time.
	StartedAt time.Time

	// Duration is how long the sweep took.
	Duration time.Duration

	// Examined is the number of items evaluated.
	Examined int

	// Accepted are the paths the rules keep, oldest first.
	Accepted []string

	// Rejected are the paths the rules discard, in scan order.
	Rejected []string

	// ByCategory counts accepted items per rule category name.
	ByCategory map[string]int
}

// Auditor runs retention sweeps over a set of watched directories.
// Each sweep lists the directory entries, evaluates them against the
// configured rules and reports what would be kept and what would be
// discarded. The auditor never deletes anything.
type Auditor struct {
	config    *AuditorConfig
	policy    *retention.Policy
	filter    *retention.Filter
	scanner   *scan.Scanner
	collector *metrics.Collector
	logger    *logging.Logger
}

// NewAuditor creates an auditor for the given configuration. The rule
// string is parsed once here; each sweep evaluates against its own
// start time. A nil collector disables metrics, a nil logger falls
// back to the default logger.
func NewAuditor(config *AuditorConfig, collector *metrics.Collector, logger *logging.Logger) (*Auditor, error) {
	if config == nil || len(config.Paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}

	policy, err := rules.Parse(config.Rules)
	if err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	// A zero reference makes the filter evaluate against the wall
	// clock at partition time, so one filter serves every sweep.
	filter, err := retention.NewFilter(policy, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	if collector == nil {
		collector = metrics.NewCollector(&metrics.Config{}, nil)
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Auditor{
		config: config,
		policy: policy,
		filter: filter,
		scanner: scan.NewScanner(&scan.Config{
			FollowSymlinks: config.FollowSymlinks,
			TimeLayout:     config.TimeLayout,
		}),
		collector: collector,
		logger:    logger,
	}, nil
}

// Policy returns the parsed retention policy the auditor applies.
func (a *Auditor) Policy() *retention.Policy {
	return a.policy
}

// Run executes one sweep and returns its report. The trigger names
// what started the sweep and is carried through log output and
// metrics.
func (a *Auditor) Run(ctx context.Context, trigger string) (*Report, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	ctx = logging.WithTrigger(ctx, trigger)

	start := time.Now()
	a.logger.InfoContext(ctx, "sweep started",
		"paths", len(a.config.Paths),
		"rules", rules.Format(a.policy),
	)

	paths, err := a.listItems()
	if err != nil {
		return nil, a.fail(ctx, trigger, start, err)
	}

	entries, err := a.scanner.Paths(ctx, paths)
	if err != nil {
		return nil, a.fail(ctx, trigger, start, err)
	}

	items := make([]retention.Item, len(entries))
	for i, entry := range entries {
		items[i] = entry
	}

	part, err := a.filter.Partition(items)
	if err != nil {
		return nil, a.fail(ctx, trigger, start, err)
	}

	report := &Report{
		RunID:      runID,
		Trigger:    trigger,
		StartedAt:  start,
		Duration:   time.Since(start),
		Examined:   len(items),
		Accepted:   itemPaths(part.Accepted),
		Rejected:   itemPaths(part.Rejected),
		ByCategory: make(map[string]int, len(part.CategoryCounts)),
	}
	for category, n := range part.CategoryCounts {
		report.ByCategory[category.String()] = n
	}

	a.collector.RecordSweep(trigger, "success", report.Duration, report.Examined)
	a.collector.RecordDecisions("accepted", len(report.Accepted))
	a.collector.RecordDecisions("rejected", len(report.Rejected))
	for category, n := range report.ByCategory {
		a.collector.RecordAccepts(category, n)
	}

	for _, path := range report.Rejected {
		a.logger.DebugContext(ctx, "item expired", "path", path)
	}
	a.logger.InfoContext(ctx, "sweep complete",
		"examined", report.Examined,
		"accepted", len(report.Accepted),
		"rejected", len(report.Rejected),
		"duration_ms", report.Duration.Milliseconds(),
	)

	return report, nil
}

// fail records a failed sweep and returns the error that caused it.
func (a *Auditor) fail(ctx context.Context, trigger string, start time.Time, err error) error {
	a.collector.RecordSweep(trigger, "error", time.Since(start), 0)
	a.logger.ErrorContext(ctx, "sweep failed", "error", err)
	return err
}

// listItems expands the configured paths into the item paths of one
// sweep. Directories contribute their immediate entries; dot-prefixed
// names are skipped. Listing is not recursive: a snapshot directory
// counts as one item, not as its contents.
func (a *Auditor) listItems() ([]string, error) {
	var paths []string
	for _, root := range a.config.Paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read watch path: %w", err)
		}

		if !info.IsDir() {
			paths = append(paths, root)
			continue
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read watch path: %w", err)
		}
		for _, entry := range entries {
			if strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			paths = append(paths, filepath.Join(root, entry.Name()))
		}
	}
	return paths, nil
}

func itemPaths(items []retention.Item) []string {
	paths := make([]string, len(items))
	for i, item := range items {
		paths[i] = fmt.Sprint(item)
	}
	return paths
}
