package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Kind classifies what a path points at.
type Kind string

// The entry kinds.
const (
	KindFile    Kind = "file"
	KindDir     Kind = "dir"
	KindSymlink Kind = "symlink"
	KindOther   Kind = "other"
)

// Entry is one filesystem item. It satisfies retention.Item through
// ModTime and prints as its path.
type Entry struct {
	path    string
	kind    Kind
	modTime time.Time
}

// Path returns the path the entry was built from.
func (e *Entry) Path() string {
	return e.path
}

// Kind returns what the path points at. Symlinks report KindSymlink
// even when the scanner follows them for timestamps.
func (e *Entry) Kind() Kind {
	return e.kind
}

// ModTime returns the timestamp retention decisions are based on.
func (e *Entry) ModTime() time.Time {
	return e.modTime
}

// String implements fmt.Stringer.
func (e *Entry) String() string {
	return e.path
}

// Stat builds an Entry for path. The path itself is inspected with
// lstat, so a symlink reports its own modification time; with follow
// enabled the timestamp comes from the link target instead.
// An inaccessible path is a *ScanError.
func Stat(path string, follow bool) (*Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, NewScanError(path, "stat", err)
	}

	kind := kindOf(info)
	if kind == KindSymlink && follow {
		target, err := os.Stat(path)
		if err != nil {
			return nil, NewScanError(path, "stat", fmt.Errorf("following symlink: %w", err))
		}
		info = target
	}

	return &Entry{
		path:    path,
		kind:    kind,
		modTime: info.ModTime(),
	}, nil
}

// TimeFromName derives a timestamp from the basename of path using a
// Go reference layout. The layout describes the whole basename, with
// the usual reference time digits marking the timestamp part:
//
//	TimeFromName("backups/db-20240115-030000.tar.gz", "db-20060102-150405.tar.gz")
//
// A basename that does not match the layout is a *ScanError, never a
// silent fallback to the stat timestamp.
func TimeFromName(path, layout string) (time.Time, error) {
	base := filepath.Base(path)
	t, err := time.Parse(layout, base)
	if err != nil {
		return time.Time{}, NewScanError(path, "time-from-name", err)
	}
	return t, nil
}

// kindOf maps a file mode to an entry kind.
func kindOf(info os.FileInfo) Kind {
	mode := info.Mode()
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}
