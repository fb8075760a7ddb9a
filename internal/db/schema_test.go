package db

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// legacySchema is the menu_items layout from before args/base_path existed.
const legacySchema = `CREATE TABLE menu_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	option_number INTEGER,
	label TEXT,
	command TEXT,
	type TEXT,
	working_dir TEXT,
	program_path TEXT
)`

func openMemory(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTriggerRejectsEmptyLabelAndKey(t *testing.T) {
	db := openMemory(t, "test_triggers")
	if err := ApplySchema(db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	if _, err := db.Exec("INSERT INTO menu_items (option_number, label) VALUES (?, ?)", "1", "   "); err == nil {
		t.Fatalf("expected insert with blank label to be rejected by trigger")
	}
	if _, err := db.Exec("INSERT INTO menu_items (option_number, label) VALUES (?, ?)", " ", "x"); err == nil {
		t.Fatalf("expected insert with blank key to be rejected by trigger")
	}
	if _, err := db.Exec("INSERT INTO menu_items (option_number, label) VALUES (?, ?)", "1", "valid"); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
}

func TestEnsureOptionalColumnsUpgradesLegacyTable(t *testing.T) {
	db := openMemory(t, "test_legacy_upgrade")
	if _, err := db.Exec(legacySchema); err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO menu_items (option_number, label, command, type, working_dir, program_path) VALUES (1, 'old', 'a.py', 'python', '', '')"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	added, err := EnsureOptionalColumns(db)
	if err != nil {
		t.Fatalf("EnsureOptionalColumns: %v", err)
	}
	if len(added) != len(OptionalColumns) {
		t.Fatalf("expected %d added columns, got %v", len(OptionalColumns), added)
	}

	var args, base string
	if err := db.QueryRow("SELECT args, base_path FROM menu_items").Scan(&args, &base); err != nil {
		t.Fatalf("select new columns: %v", err)
	}
	if args != "" || base != "" {
		t.Fatalf("expected empty defaults, got %q %q", args, base)
	}

	// second run is a no-op
	added, err = EnsureOptionalColumns(db)
	if err != nil {
		t.Fatalf("second EnsureOptionalColumns: %v", err)
	}
	if len(added) != 0 {
		t.Fatalf("expected nothing added, got %v", added)
	}
}

func TestEnsureOptionalColumnsWithoutTable(t *testing.T) {
	db := openMemory(t, "test_no_table")
	if _, err := EnsureOptionalColumns(db); err != ErrNoTable {
		t.Fatalf("expected ErrNoTable, got %v", err)
	}
}
