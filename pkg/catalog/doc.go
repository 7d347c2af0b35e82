// Package catalog reads retention items from a SQLite database
// instead of the filesystem.
//
// Backup and snapshot tooling commonly maintains a catalog of the
// artifacts it has produced. When mtimes on disk are unreliable, or
// the artifacts live somewhere a stat cannot reach, the catalog rows
// are the authoritative item list. This package exposes such rows as
// retention items:
//
//	cat, err := catalog.Open(&catalog.Config{
//		DSN:        "backups/catalog.db",
//		Table:      "snapshots",
//		TimeColumn: "taken_at",
//	})
//	if err != nil {
//		return err
//	}
//	defer cat.Close()
//
//	entries, err := cat.Items(ctx)
//
// The table and column names come from configuration; anything that
// does not look like a plain SQL identifier is rejected at Open.
// Timestamps may be stored as unix seconds or as datetime strings.
//
// The catalog is strictly read-only.
package catalog
