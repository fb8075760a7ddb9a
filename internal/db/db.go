// Package db opens and bootstraps the SQLite file behind the script menu.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Table is the name of the table holding menu entries.
const Table = "menu_items"

// ErrNoTable is returned by Open when the file exists but has no menu table.
var ErrNoTable = errors.New("database has no " + Table + " table")

// Create ensures the parent directory exists, opens (or creates) the SQLite
// file at path and applies the full schema. The handle is closed before
// returning.
func Create(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return ApplySchema(db)
}

// Open opens an existing database file. Unlike sql.Open it never creates the
// file: a missing path is reported as an error wrapping fs.ErrNotExist.
func Open(path string) (*sql.DB, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("open database %s: is a directory", path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return db, nil
}

// Columns returns the set of column names of table, read through
// PRAGMA table_info. An absent table yields an empty set.
func Columns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dflt interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// IsMissing reports whether err came from Open on a path that does not exist.
func IsMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
