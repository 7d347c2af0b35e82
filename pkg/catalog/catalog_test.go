package catalog

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"mercator-hq/saturn/pkg/retention"
)

// Catalog entries feed the retention filter directly.
var _ retention.Item = (*Entry)(nil)

// seedDB creates a catalog database file with the given schema and
// rows, and returns its path.
func seedDB(t *testing.T, schema string, inserts ...string) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open seed database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	for _, stmt := range inserts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to seed row: %v", err)
		}
	}

	return dbPath
}

// TestOpen_MissingDSN tests that an empty DSN is rejected.
func TestOpen_MissingDSN(t *testing.T) {
	_, err := Open(nil)
	if err == nil {
		t.Fatal("Expected error for nil config, got nil")
	}

	var catErr *CatalogError
	if !errors.As(err, &catErr) {
		t.Fatalf("Expected *CatalogError, got %T", err)
	}
	if catErr.Operation != "open" {
		t.Errorf("Expected operation 'open', got %q", catErr.Operation)
	}
}

// TestOpen_MissingTable tests that a database without the configured
// table fails at open, not at first query.
func TestOpen_MissingTable(t *testing.T) {
	dbPath := seedDB(t, "CREATE TABLE other (id TEXT)")

	_, err := Open(&Config{DSN: dbPath, Table: "snapshots"})
	if err == nil {
		t.Fatal("Expected error for missing table, got nil")
	}

	var catErr *CatalogError
	if !errors.As(err, &catErr) {
		t.Fatalf("Expected *CatalogError, got %T", err)
	}
	if catErr.Operation != "verify" {
		t.Errorf("Expected operation 'verify', got %q", catErr.Operation)
	}
}

// TestOpen_BadIdentifier tests that table and column names must look
// like plain SQL identifiers.
func TestOpen_BadIdentifier(t *testing.T) {
	dbPath := seedDB(t, "CREATE TABLE items (id TEXT, created_at INTEGER)")

	tests := []struct {
		name   string
		config *Config
	}{
		{"table", &Config{DSN: dbPath, Table: "items; DROP TABLE items"}},
		{"id column", &Config{DSN: dbPath, IDColumn: "id--"}},
		{"time column", &Config{DSN: dbPath, TimeColumn: "created at"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.config)
			if err == nil {
				t.Fatal("Expected error for bad identifier, got nil")
			}
			var catErr *CatalogError
			if !errors.As(err, &catErr) {
				t.Fatalf("Expected *CatalogError, got %T", err)
			}
		})
	}
}

// TestCatalog_ItemsUnixSeconds tests reading rows whose timestamps are
// unix seconds.
func TestCatalog_ItemsUnixSeconds(t *testing.T) {
	dbPath := seedDB(t,
		"CREATE TABLE items (id TEXT PRIMARY KEY, created_at INTEGER NOT NULL)",
		"INSERT INTO items VALUES ('db-02.tar', 1622635200)",
		"INSERT INTO items VALUES ('db-01.tar', 1622548800)",
	)

	cat, err := Open(&Config{DSN: dbPath})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer cat.Close()

	entries, err := cat.Items(context.Background())
	if err != nil {
		t.Fatalf("Items() failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	// Rows come back oldest first regardless of insert order.
	if entries[0].ID() != "db-01.tar" || entries[1].ID() != "db-02.tar" {
		t.Errorf("Expected oldest-first order, got %v then %v",
			entries[0].ID(), entries[1].ID())
	}

	want := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	if !entries[0].ModTime().Equal(want) {
		t.Errorf("Expected %v, got %v", want, entries[0].ModTime())
	}
}

// TestCatalog_ItemsDatetimeStrings tests reading rows whose timestamps
// are datetime strings.
func TestCatalog_ItemsDatetimeStrings(t *testing.T) {
	dbPath := seedDB(t,
		"CREATE TABLE snapshots (name TEXT PRIMARY KEY, taken_at TEXT NOT NULL)",
		"INSERT INTO snapshots VALUES ('vm-a', '2021-06-01 12:00:00')",
		"INSERT INTO snapshots VALUES ('vm-b', '2021-06-02T12:00:00Z')",
	)

	cat, err := Open(&Config{
		DSN:        dbPath,
		Table:      "snapshots",
		IDColumn:   "name",
		TimeColumn: "taken_at",
	})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer cat.Close()

	entries, err := cat.Items(context.Background())
	if err != nil {
		t.Fatalf("Items() failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	want := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	if !entries[0].ModTime().Equal(want) {
		t.Errorf("Expected %v, got %v", want, entries[0].ModTime())
	}
}

// TestCatalog_ItemsBadTimestamp tests that an unparseable timestamp
// fails the whole read.
func TestCatalog_ItemsBadTimestamp(t *testing.T) {
	dbPath := seedDB(t,
		"CREATE TABLE items (id TEXT PRIMARY KEY, created_at TEXT NOT NULL)",
		"INSERT INTO items VALUES ('broken', 'not a time')",
	)

	cat, err := Open(&Config{DSN: dbPath})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer cat.Close()

	_, err = cat.Items(context.Background())
	if err == nil {
		t.Fatal("Expected error for unparseable timestamp, got nil")
	}

	var catErr *CatalogError
	if !errors.As(err, &catErr) {
		t.Fatalf("Expected *CatalogError, got %T", err)
	}
	if catErr.Operation != "scan" {
		t.Errorf("Expected operation 'scan', got %q", catErr.Operation)
	}
}

// TestCatalog_Count tests row counting.
func TestCatalog_Count(t *testing.T) {
	dbPath := seedDB(t,
		"CREATE TABLE items (id TEXT PRIMARY KEY, created_at INTEGER NOT NULL)",
		"INSERT INTO items VALUES ('a', 1622548800)",
		"INSERT INTO items VALUES ('b', 1622635200)",
		"INSERT INTO items VALUES ('c', 1622721600)",
	)

	cat, err := Open(&Config{DSN: dbPath})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer cat.Close()

	count, err := cat.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected count 3, got %d", count)
	}
}

// TestCatalog_EmptyTable tests that an empty catalog is fine.
func TestCatalog_EmptyTable(t *testing.T) {
	dbPath := seedDB(t, "CREATE TABLE items (id TEXT PRIMARY KEY, created_at INTEGER NOT NULL)")

	cat, err := Open(&Config{DSN: dbPath})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer cat.Close()

	entries, err := cat.Items(context.Background())
	if err != nil {
		t.Fatalf("Items() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

// TestCatalog_CloseTwice tests that double close is safe.
func TestCatalog_CloseTwice(t *testing.T) {
	dbPath := seedDB(t, "CREATE TABLE items (id TEXT PRIMARY KEY, created_at INTEGER NOT NULL)")

	cat, err := Open(&Config{DSN: dbPath})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := cat.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := cat.Close(); err != nil {
		t.Errorf("Second Close() failed: %v", err)
	}
}

// TestCoerceTime tests timestamp coercion across storage forms.
func TestCoerceTime(t *testing.T) {
	want := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   any
		want    time.Time
		wantErr bool
	}{
		{"unix seconds", int64(1622548800), want, false},
		{"unix float", float64(1622548800), want, false},
		{"rfc3339", "2021-06-01T12:00:00Z", want, false},
		{"sqlite datetime", "2021-06-01 12:00:00", want, false},
		{"date only", "2021-06-01", time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"time value", want, want, false},
		{"null", nil, time.Time{}, true},
		{"garbage", "yesterday", time.Time{}, true},
		{"bool", true, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceTime(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("coerceTime() failed: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
