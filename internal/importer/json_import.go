package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/VoxDroid/smenu/internal/exporter"
	"github.com/VoxDroid/smenu/internal/nameutil"
	"github.com/VoxDroid/smenu/internal/registry"
)

// Inserter is the store side of an import.
type Inserter interface {
	Insert(ctx context.Context, rec registry.Record) (int64, error)
}

// Options control ImportFile.
type Options struct {
	// SkipExisting skips entries whose option number is already in use
	// instead of stopping at the first one.
	SkipExisting bool
}

// Report counts what ImportFile did.
type Report struct {
	Imported int
	Skipped  []string
	// Cleaned lists the option numbers whose labels had junk characters
	// removed.
	Cleaned []string
}

// ParseEntries decodes a JSON array of entries. Comments and trailing commas
// are accepted.
func ParseEntries(data []byte) ([]exporter.Entry, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}
	var entries []exporter.Entry
	if err := json.Unmarshal(standardized, &entries); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return entries, nil
}

// ImportFile inserts every entry of the JSON(C) file at path, in file order.
// Entries are not rolled back when a later one fails.
func ImportFile(ctx context.Context, store Inserter, path string, opts Options) (Report, error) {
	var rep Report
	data, err := os.ReadFile(path)
	if err != nil {
		return rep, fmt.Errorf("read import: %w", err)
	}
	entries, err := ParseEntries(data)
	if err != nil {
		return rep, fmt.Errorf("%s: %w", path, err)
	}
	for i, e := range entries {
		if label, changed := nameutil.SanitizeLabel(e.Label); changed {
			e.Label = label
			rep.Cleaned = append(rep.Cleaned, e.Key)
		}
		if _, err := store.Insert(ctx, e.Record()); err != nil {
			if opts.SkipExisting && errors.Is(err, registry.ErrDuplicateKey) {
				rep.Skipped = append(rep.Skipped, e.Key)
				continue
			}
			return rep, fmt.Errorf("entry %d (option %q): %w", i+1, e.Key, err)
		}
		rep.Imported++
	}
	return rep, nil
}
