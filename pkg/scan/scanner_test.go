package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"mercator-hq/saturn/pkg/retention"
)

// Entries feed the retention filter directly.
var _ retention.Item = (*Entry)(nil)

// TestScanner_Paths tests resolution of explicit paths in order.
func TestScanner_Paths(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.tar")
	second := filepath.Join(dir, "second.tar")
	writeFileWithTime(t, first, time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC))
	writeFileWithTime(t, second, time.Date(2021, 6, 2, 12, 0, 0, 0, time.UTC))

	scanner := NewScanner(nil)
	entries, err := scanner.Paths(context.Background(), []string{first, second})
	if err != nil {
		t.Fatalf("Paths() failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Path() != first || entries[1].Path() != second {
		t.Errorf("Expected input order preserved, got %v then %v",
			entries[0].Path(), entries[1].Path())
	}
	if !entries[1].ModTime().After(entries[0].ModTime()) {
		t.Errorf("Expected second entry to be newer, got %v and %v",
			entries[0].ModTime(), entries[1].ModTime())
	}
}

// TestScanner_PathsFirstErrorAborts tests that one bad path fails the
// whole call without partial results.
func TestScanner_PathsFirstErrorAborts(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.tar")
	writeFileWithTime(t, good, time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC))

	scanner := NewScanner(nil)
	entries, err := scanner.Paths(context.Background(), []string{good, filepath.Join(dir, "missing.tar")})
	if err == nil {
		t.Fatal("Expected error for missing path, got nil")
	}
	if entries != nil {
		t.Errorf("Expected no partial entries, got %d", len(entries))
	}

	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("Expected *ScanError, got %T", err)
	}
}

// TestScanner_PathsCancelled tests context cancellation.
func TestScanner_PathsCancelled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "item.tar")
	writeFileWithTime(t, path, time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := NewScanner(nil)
	_, err := scanner.Paths(ctx, []string{path})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

// TestScanner_ReadLines tests newline separated path lists, including
// blank lines and CRLF endings.
func TestScanner_ReadLines(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.tar")
	second := filepath.Join(dir, "second.tar")
	writeFileWithTime(t, first, time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC))
	writeFileWithTime(t, second, time.Date(2021, 6, 2, 12, 0, 0, 0, time.UTC))

	input := first + "\n\n" + second + "\r\n"

	scanner := NewScanner(nil)
	entries, err := scanner.Read(context.Background(), strings.NewReader(input), false)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Path() != first || entries[1].Path() != second {
		t.Errorf("Expected %v and %v, got %v and %v",
			first, second, entries[0].Path(), entries[1].Path())
	}
}

// TestScanner_ReadNullSeparated tests NUL separated path lists, which
// carry paths with embedded newlines.
func TestScanner_ReadNullSeparated(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.tar")
	awkward := filepath.Join(dir, "with\nnewline.tar")
	writeFileWithTime(t, plain, time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC))
	writeFileWithTime(t, awkward, time.Date(2021, 6, 2, 12, 0, 0, 0, time.UTC))

	input := plain + "\x00\x00" + awkward + "\x00"

	scanner := NewScanner(nil)
	entries, err := scanner.Read(context.Background(), strings.NewReader(input), true)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Path() != awkward {
		t.Errorf("Expected path with embedded newline %q, got %q", awkward, entries[1].Path())
	}
}

// TestScanner_ReadBadPathAborts tests that resolution failures from a
// reader list abort without partial results.
func TestScanner_ReadBadPathAborts(t *testing.T) {
	input := filepath.Join(t.TempDir(), "missing.tar") + "\n"

	scanner := NewScanner(nil)
	entries, err := scanner.Read(context.Background(), strings.NewReader(input), false)
	if err == nil {
		t.Fatal("Expected error for missing path, got nil")
	}
	if entries != nil {
		t.Errorf("Expected no partial entries, got %d", len(entries))
	}
}

// TestScanner_TimeLayoutOverride tests that a configured layout
// replaces stat timestamps with basename timestamps.
func TestScanner_TimeLayoutOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db-20240115-030000.tar.gz")
	writeFileWithTime(t, path, time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC))

	scanner := NewScanner(&Config{TimeLayout: "db-20060102-150405.tar.gz"})
	entries, err := scanner.Paths(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("Paths() failed: %v", err)
	}

	want := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)
	if !entries[0].ModTime().Equal(want) {
		t.Errorf("Expected basename time %v, got %v", want, entries[0].ModTime())
	}
}

// TestScanner_TimeLayoutMismatch tests that a basename not matching
// the configured layout fails resolution.
func TestScanner_TimeLayoutMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	writeFileWithTime(t, path, time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC))

	scanner := NewScanner(&Config{TimeLayout: "db-20060102-150405.tar.gz"})
	_, err := scanner.Paths(context.Background(), []string{path})
	if err == nil {
		t.Fatal("Expected error for unparseable basename, got nil")
	}

	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("Expected *ScanError, got %T", err)
	}
	if scanErr.Operation != "time-from-name" {
		t.Errorf("Expected operation 'time-from-name', got %q", scanErr.Operation)
	}
}

// TestScanner_FollowSymlinks tests that the follow setting switches
// timestamps to the link target.
func TestScanner_FollowSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	dir := t.TempDir()
	mod := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	target := filepath.Join(dir, "target")
	writeFileWithTime(t, target, mod)

	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Symlink() failed: %v", err)
	}

	scanner := NewScanner(&Config{FollowSymlinks: true})
	entries, err := scanner.Paths(context.Background(), []string{link})
	if err != nil {
		t.Fatalf("Paths() failed: %v", err)
	}
	if !entries[0].ModTime().Equal(mod) {
		t.Errorf("Expected target mod time %v, got %v", mod, entries[0].ModTime())
	}
}

// TestScanner_EmptyInput tests that empty path lists are fine.
func TestScanner_EmptyInput(t *testing.T) {
	scanner := NewScanner(nil)

	entries, err := scanner.Paths(context.Background(), nil)
	if err != nil {
		t.Fatalf("Paths() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}

	entries, err = scanner.Read(context.Background(), strings.NewReader(""), false)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}
