// Package exporter writes the menu records out of the database, either as a
// portable JSON document or as a byte copy of the SQLite file.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
)

// ExportDatabase copies the database at srcPath to dstPath. The destination
// is replaced atomically so a failed copy never leaves a half-written backup.
func ExportDatabase(srcPath, dstPath string) error {
	if same(srcPath, dstPath) {
		return fmt.Errorf("export: destination is the active database")
	}
	in, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source db: %w", err)
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

// BackupPath returns a dated, unused file name in dir such as
// script_menu-2025-09-20.db, adding a -N suffix when needed.
func BackupPath(dir string, now time.Time) string {
	date := now.UTC().Format("2006-01-02")
	dst := filepath.Join(dir, fmt.Sprintf("script_menu-%s.db", date))
	for si := 1; ; si++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			return dst
		}
		dst = filepath.Join(dir, fmt.Sprintf("script_menu-%s-%d.db", date, si))
	}
}

func same(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}
