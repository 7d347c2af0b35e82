// Package scan turns filesystem paths into retention items.
//
// An Entry wraps one path with its kind and the timestamp retention
// decisions are based on. Timestamps come from lstat by default: a
// symlink counts as its own age unless following is enabled. When
// artifacts encode their creation time in the filename (a common
// backup convention), a Go reference layout over the basename
// replaces the stat time:
//
//	scanner := scan.NewScanner(&scan.Config{
//	    TimeLayout: "db-20060102-150405.tar.gz",
//	})
//	entries, err := scanner.Paths(ctx, paths)
//
// A Scanner resolves explicit path lists or newline/NUL separated
// lists from a reader (the stdin mode of the CLI). Resolution is
// strict: the first inaccessible path or unparseable basename aborts
// with a *ScanError rather than filtering a partial item set.
package scan
