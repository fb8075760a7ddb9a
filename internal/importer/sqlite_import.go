// Package importer loads menu records into the database from a JSON export
// or restores a whole database file from a backup.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/VoxDroid/smenu/internal/registry"
)

// ImportDatabase replaces the database at dstPath with a copy of srcPath. The
// source must be a readable menu database. If overwrite is false and the
// destination exists, an error is returned.
func ImportDatabase(srcPath, dstPath string, overwrite bool) error {
	if _, err := registry.Open(srcPath); err != nil {
		return fmt.Errorf("import source: %w", err)
	}
	if _, err := os.Stat(dstPath); err == nil && !overwrite {
		return errors.New("destination database exists; use --overwrite to replace")
	}
	in, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("create dst dir: %w", err)
	}
	if err := atomic.WriteFile(dstPath, in); err != nil {
		return fmt.Errorf("copy db: %w", err)
	}
	return nil
}
