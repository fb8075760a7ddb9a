package db

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// RequiredColumns are present in every menu_items generation.
var RequiredColumns = []string{"id", "option_number", "label", "command", "type", "working_dir", "program_path"}

// OptionalColumns were added over time; older databases may lack any of them.
var OptionalColumns = []string{"args", "base_path", "description", "keep_open"}

// ApplySchema applies the embedded schema SQL. It is idempotent and never
// alters an existing menu_items table.
func ApplySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// EnsureOptionalColumns adds any missing optional column to an existing
// menu_items table and returns the names it added.
func EnsureOptionalColumns(db *sql.DB) ([]string, error) {
	cols, err := Columns(db, Table)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, ErrNoTable
	}
	var added []string
	for _, c := range OptionalColumns {
		if cols[c] {
			continue
		}
		if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT NOT NULL DEFAULT ''", Table, c)); err != nil {
			return added, fmt.Errorf("add column %s: %w", c, err)
		}
		added = append(added, c)
	}
	return added, nil
}
