package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/saturn/pkg/cli"
)

// resetFilterFlags restores the filter flag defaults between tests,
// since the flag struct is package state.
func resetFilterFlags() {
	filterFlags.stdin = false
	filterFlags.stdin0 = false
	filterFlags.catalogDSN = ""
	filterFlags.accepted = false
	filterFlags.null = false
	filterFlags.format = "text"
	filterFlags.output = ""
	filterFlags.referenceTime = ""
	filterFlags.timeFromName = ""
}

// writeItemFile creates a file whose modification time lies age in
// the past.
func writeItemFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("item"), 0644); err != nil {
		t.Fatalf("WriteFile(%q) failed: %v", name, err)
	}
	mtime := time.Now().Add(-age)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("Chtimes(%q) failed: %v", name, err)
	}
	return path
}

// filterFixture writes three aged items and returns their paths. With
// rules "days2" the 26h item shares a day bucket with the newer 25h
// item and ages out; the other two survive.
func filterFixture(t *testing.T) (day1New, day1Old, day2 string) {
	t.Helper()

	dir := t.TempDir()
	day1New = writeItemFile(t, dir, "backup-day1-new.tar", 25*time.Hour)
	day1Old = writeItemFile(t, dir, "backup-day1-old.tar", 26*time.Hour)
	day2 = writeItemFile(t, dir, "backup-day2.tar", 49*time.Hour)
	return day1New, day1Old, day2
}

// captureOutput points --output at a temp file and returns a reader
// for what the command wrote there.
func captureOutput(t *testing.T) (path string, read func() string) {
	t.Helper()

	path = filepath.Join(t.TempDir(), "out.txt")
	return path, func() string {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%q) failed: %v", path, err)
		}
		return string(data)
	}
}

func TestRunFilterRejected(t *testing.T) {
	day1New, day1Old, day2 := filterFixture(t)

	// Set flags
	resetFilterFlags()
	outPath, readOutput := captureOutput(t)
	filterFlags.output = outPath

	// Run filter command
	err := runFilter(nil, []string{"days2", day1New, day1Old, day2})
	if err != nil {
		t.Fatalf("runFilter() returned error: %v", err)
	}

	want := day1Old + "\n"
	if got := readOutput(); got != want {
		t.Errorf("runFilter() output = %q, want %q", got, want)
	}
}

func TestRunFilterAccepted(t *testing.T) {
	day1New, day1Old, day2 := filterFixture(t)

	// Set flags
	resetFilterFlags()
	outPath, readOutput := captureOutput(t)
	filterFlags.output = outPath
	filterFlags.accepted = true

	// Run filter command
	err := runFilter(nil, []string{"days2", day1New, day1Old, day2})
	if err != nil {
		t.Fatalf("runFilter() returned error: %v", err)
	}

	// Survivors print oldest first
	want := day2 + "\n" + day1New + "\n"
	if got := readOutput(); got != want {
		t.Errorf("runFilter() output = %q, want %q", got, want)
	}
}

func TestRunFilterJSONReport(t *testing.T) {
	day1New, day1Old, day2 := filterFixture(t)

	// Set flags
	resetFilterFlags()
	outPath, readOutput := captureOutput(t)
	filterFlags.output = outPath
	filterFlags.format = "json"

	// Run filter command
	err := runFilter(nil, []string{"days2", day1New, day1Old, day2})
	if err != nil {
		t.Fatalf("runFilter() returned error: %v", err)
	}

	var report filterReport
	if err := json.Unmarshal([]byte(readOutput()), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if report.Rules != "days2" {
		t.Errorf("report.Rules = %q, want %q", report.Rules, "days2")
	}
	if report.Examined != 3 {
		t.Errorf("report.Examined = %d, want 3", report.Examined)
	}
	if report.Reference.IsZero() {
		t.Error("report.Reference should not be zero")
	}
	wantAccepted := []string{day2, day1New}
	if len(report.Accepted) != len(wantAccepted) {
		t.Fatalf("report.Accepted = %v, want %v", report.Accepted, wantAccepted)
	}
	for i, want := range wantAccepted {
		if report.Accepted[i] != want {
			t.Errorf("report.Accepted[%d] = %q, want %q", i, report.Accepted[i], want)
		}
	}
	if len(report.Rejected) != 1 || report.Rejected[0] != day1Old {
		t.Errorf("report.Rejected = %v, want [%s]", report.Rejected, day1Old)
	}
	if report.ByCategory["days"] != 2 {
		t.Errorf("report.ByCategory[days] = %d, want 2", report.ByCategory["days"])
	}
}

func TestRunFilterStdin(t *testing.T) {
	day1New, day1Old, day2 := filterFixture(t)

	// Set flags
	resetFilterFlags()
	outPath, readOutput := captureOutput(t)
	filterFlags.output = outPath
	filterFlags.stdin = true

	// Feed paths through the command's stdin
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(day1New + "\n" + day1Old + "\n" + day2 + "\n"))

	err := runFilter(cmd, []string{"days2"})
	if err != nil {
		t.Fatalf("runFilter() returned error: %v", err)
	}

	want := day1Old + "\n"
	if got := readOutput(); got != want {
		t.Errorf("runFilter() output = %q, want %q", got, want)
	}
}

func TestRunFilterStdin0Null(t *testing.T) {
	day1New, day1Old, day2 := filterFixture(t)

	// Set flags
	resetFilterFlags()
	outPath, readOutput := captureOutput(t)
	filterFlags.output = outPath
	filterFlags.stdin0 = true
	filterFlags.null = true

	// Null-separated paths in, null-separated paths out
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(day1New + "\x00" + day1Old + "\x00" + day2 + "\x00"))

	err := runFilter(cmd, []string{"days2"})
	if err != nil {
		t.Fatalf("runFilter() returned error: %v", err)
	}

	want := day1Old + "\x00"
	if got := readOutput(); got != want {
		t.Errorf("runFilter() output = %q, want %q", got, want)
	}
}

func TestRunFilterReferenceTime(t *testing.T) {
	dir := t.TempDir()
	reference := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	makeItem := func(name string, age time.Duration) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("item"), 0644); err != nil {
			t.Fatalf("WriteFile(%q) failed: %v", name, err)
		}
		mtime := reference.Add(-age)
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("Chtimes(%q) failed: %v", name, err)
		}
		return path
	}

	old1d := makeItem("old1d.tar", 25*time.Hour)
	old2d := makeItem("old2d.tar", 49*time.Hour)
	old3d := makeItem("old3d.tar", 73*time.Hour)

	// Set flags
	resetFilterFlags()
	outPath, readOutput := captureOutput(t)
	filterFlags.output = outPath
	filterFlags.referenceTime = "2021-06-01T12:00:00Z"

	// Run filter command. Ages are measured against the fixed
	// reference, not the wall clock, so the decision is stable.
	err := runFilter(nil, []string{"days2", old1d, old2d, old3d})
	if err != nil {
		t.Fatalf("runFilter() returned error: %v", err)
	}

	want := old3d + "\n"
	if got := readOutput(); got != want {
		t.Errorf("runFilter() output = %q, want %q", got, want)
	}
}

func TestRunFilterTimeFromName(t *testing.T) {
	dir := t.TempDir()

	// Both files have fresh modification times; the names disagree.
	fresh := "db-" + time.Now().UTC().Add(-10*time.Minute).Format("20060102-150405") + ".tar"
	freshPath := writeItemFile(t, dir, fresh, 0)
	stalePath := writeItemFile(t, dir, "db-20190101-000000.tar", 0)

	// Set flags
	resetFilterFlags()
	outPath, readOutput := captureOutput(t)
	filterFlags.output = outPath
	filterFlags.timeFromName = "db-20060102-150405.tar"

	// Run filter command
	err := runFilter(nil, []string{"recent1,days1", freshPath, stalePath})
	if err != nil {
		t.Fatalf("runFilter() returned error: %v", err)
	}

	want := stalePath + "\n"
	if got := readOutput(); got != want {
		t.Errorf("runFilter() output = %q, want %q", got, want)
	}
}

func TestRunFilterNoSource(t *testing.T) {
	// Set flags - no paths, no stdin, no catalog
	resetFilterFlags()

	// Run filter command - should return usage error
	err := runFilter(nil, []string{"days2"})
	if err == nil {
		t.Fatal("runFilter() without an item source should return error")
	}
	if cli.ExitCode(err) != 2 {
		t.Errorf("ExitCode() = %d, want 2", cli.ExitCode(err))
	}
}

func TestRunFilterConflictingSources(t *testing.T) {
	dir := t.TempDir()
	item := writeItemFile(t, dir, "backup.tar", time.Hour)

	// Set flags - both path arguments and stdin
	resetFilterFlags()
	filterFlags.stdin = true

	// Run filter command - should return usage error
	err := runFilter(nil, []string{"days2", item})
	if err == nil {
		t.Fatal("runFilter() with two item sources should return error")
	}
	if cli.ExitCode(err) != 2 {
		t.Errorf("ExitCode() = %d, want 2", cli.ExitCode(err))
	}
}

func TestRunFilterInvalidRules(t *testing.T) {
	dir := t.TempDir()
	item := writeItemFile(t, dir, "backup.tar", time.Hour)

	// Set flags
	resetFilterFlags()

	// Run filter command - should return error for the rules string
	err := runFilter(nil, []string{"bogus", item})
	if err == nil {
		t.Fatal("runFilter() with invalid rules should return error")
	}
	if cli.ExitCode(err) != 1 {
		t.Errorf("ExitCode() = %d, want 1", cli.ExitCode(err))
	}
}

func TestRunFilterInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	item := writeItemFile(t, dir, "backup.tar", time.Hour)

	// Set flags
	resetFilterFlags()
	filterFlags.format = "xml"

	// Run filter command - should return usage error
	err := runFilter(nil, []string{"days2", item})
	if err == nil {
		t.Fatal("runFilter() with unknown format should return error")
	}
	if cli.ExitCode(err) != 2 {
		t.Errorf("ExitCode() = %d, want 2", cli.ExitCode(err))
	}
}

func TestParseReferenceTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "empty means now",
			input: "",
			want:  time.Time{},
		},
		{
			name:  "RFC3339",
			input: "2021-06-01T12:00:00Z",
			want:  time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "compact layout",
			input: "20210601-120000",
			want:  time.Date(2021, 6, 1, 12, 0, 0, 0, time.Local),
		},
		{
			name:    "garbage",
			input:   "yesterday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseReferenceTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseReferenceTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && !got.Equal(tt.want) {
				t.Errorf("parseReferenceTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
