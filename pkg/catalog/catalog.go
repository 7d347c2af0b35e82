package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Config contains configuration for a catalog.
type Config struct {
	// DSN is the SQLite database path, or ":memory:".
	DSN string

	// Table is the table holding one row per item.
	// Default: "items"
	Table string

	// IDColumn is the column naming each item.
	// Default: "id"
	IDColumn string

	// TimeColumn is the column holding each item timestamp, as unix
	// seconds or a datetime string.
	// Default: "created_at"
	TimeColumn string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// identPattern matches the table and column names that may appear in
// query text. Anything else is rejected before it reaches SQL.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Entry is one catalog row. Entries carry everything the retention
// filter needs, so catalog-backed runs never touch the filesystem.
type Entry struct {
	id      string
	modTime time.Time
}

// ID returns the item identifier.
func (e *Entry) ID() string {
	return e.id
}

// ModTime returns the item timestamp.
func (e *Entry) ModTime() time.Time {
	return e.modTime
}

// String returns the item identifier.
func (e *Entry) String() string {
	return e.id
}

// Catalog reads items from a SQLite database maintained by backup or
// snapshot tooling. It never writes.
type Catalog struct {
	db        *sql.DB
	config    *Config
	itemsStmt *sql.Stmt
	countStmt *sql.Stmt
	logger    *slog.Logger
	closeOnce sync.Once
}

// Open opens a catalog database and verifies the configured table
// exists. The caller owns the returned catalog and must Close it.
func Open(config *Config) (*Catalog, error) {
	if config == nil || config.DSN == "" {
		return nil, NewCatalogError("open", errors.New("dsn must not be empty"))
	}
	cfg := *config
	if cfg.Table == "" {
		cfg.Table = "items"
	}
	if cfg.IDColumn == "" {
		cfg.IDColumn = "id"
	}
	if cfg.TimeColumn == "" {
		cfg.TimeColumn = "created_at"
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	for _, ident := range []string{cfg.Table, cfg.IDColumn, cfg.TimeColumn} {
		if !identPattern.MatchString(ident) {
			return nil, NewCatalogError("open",
				fmt.Errorf("invalid table or column name %q", ident))
		}
	}

	logger := slog.Default().With("component", "catalog")

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, NewCatalogError("open", err)
	}

	// SQLite only supports a single writer, and with ":memory:" every
	// connection is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	c := &Catalog{
		db:     db,
		config: &cfg,
		logger: logger,
	}

	if err := c.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("item catalog opened",
		"dsn", cfg.DSN,
		"table", cfg.Table,
	)

	return c, nil
}

// initialize verifies the table and prepares the row queries.
func (c *Catalog) initialize() error {
	busyTimeoutMs := c.config.BusyTimeout.Milliseconds()
	_, err := c.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs))
	if err != nil {
		return NewCatalogError("set_busy_timeout", err)
	}

	var count int
	err = c.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
		c.config.Table,
	).Scan(&count)
	if err != nil {
		return NewCatalogError("verify", err)
	}
	if count == 0 {
		return NewCatalogError("verify",
			fmt.Errorf("table %q does not exist", c.config.Table))
	}

	c.itemsStmt, err = c.db.Prepare(fmt.Sprintf(
		"SELECT %s, %s FROM %s ORDER BY %s, %s",
		c.config.IDColumn, c.config.TimeColumn, c.config.Table,
		c.config.TimeColumn, c.config.IDColumn,
	))
	if err != nil {
		return NewCatalogError("prepare", err)
	}

	c.countStmt, err = c.db.Prepare(fmt.Sprintf(
		"SELECT COUNT(*) FROM %s", c.config.Table,
	))
	if err != nil {
		return NewCatalogError("prepare", err)
	}

	return nil
}

// Items returns every catalog row as an entry, oldest first.
func (c *Catalog) Items(ctx context.Context) ([]*Entry, error) {
	rows, err := c.itemsStmt.QueryContext(ctx)
	if err != nil {
		return nil, NewCatalogError("query", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var id string
		var raw any
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, NewCatalogError("scan", err)
		}
		t, err := coerceTime(raw)
		if err != nil {
			return nil, NewCatalogError("scan",
				fmt.Errorf("item %q: %w", id, err))
		}
		entries = append(entries, &Entry{id: id, modTime: t})
	}
	if err := rows.Err(); err != nil {
		return nil, NewCatalogError("query", err)
	}

	c.logger.Debug("catalog items loaded", "item_count", len(entries))
	return entries, nil
}

// Count returns the number of catalog rows.
func (c *Catalog) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := c.countStmt.QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, NewCatalogError("count", err)
	}
	return count, nil
}

// Close releases the database connection.
func (c *Catalog) Close() error {
	var closeErr error
	c.closeOnce.Do(func() {
		if c.itemsStmt != nil {
			c.itemsStmt.Close()
		}
		if c.countStmt != nil {
			c.countStmt.Close()
		}
		if err := c.db.Close(); err != nil {
			closeErr = NewCatalogError("close", err)
			return
		}
		c.logger.Info("item catalog closed")
	})
	return closeErr
}

// timeFormats are the datetime string forms catalogs are seen to use,
// tried in order.
var timeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// coerceTime converts a scanned timestamp column value to a time.
// Integer and float values are unix seconds; strings may use RFC 3339
// or the SQLite datetime() form.
func coerceTime(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case int64:
		return time.Unix(val, 0).UTC(), nil
	case float64:
		secs := int64(val)
		nsecs := int64((val - float64(secs)) * float64(time.Second))
		return time.Unix(secs, nsecs).UTC(), nil
	case string:
		return parseTimeString(val)
	case []byte:
		return parseTimeString(string(val))
	case nil:
		return time.Time{}, errors.New("time value is NULL")
	default:
		return time.Time{}, fmt.Errorf("unsupported time value of type %T", v)
	}
}

func parseTimeString(s string) (time.Time, error) {
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time value %q", s)
}
