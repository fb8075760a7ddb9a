package exporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/natefinch/atomic"

	"github.com/VoxDroid/smenu/internal/registry"
)

// Entry is the portable form of one record. The database id is not
// exported; importing assigns new ids.
type Entry struct {
	Key         string `json:"option_number"`
	Label       string `json:"label"`
	Command     string `json:"command,omitempty"`
	Kind        string `json:"type"`
	WorkingDir  string `json:"working_dir,omitempty"`
	BasePath    string `json:"base_path,omitempty"`
	ProgramPath string `json:"program_path,omitempty"`
	Args        string `json:"args,omitempty"`
	Description string `json:"description,omitempty"`
	KeepOpen    string `json:"keep_open,omitempty"`
}

// FromRecord converts a stored record.
func FromRecord(r registry.Record) Entry {
	return Entry{
		Key:         r.Key,
		Label:       r.Label,
		Command:     r.Command,
		Kind:        r.Kind,
		WorkingDir:  r.WorkingDir,
		BasePath:    r.BasePath,
		ProgramPath: r.ProgramPath,
		Args:        r.Args,
		Description: r.Description,
		KeepOpen:    r.KeepOpen,
	}
}

// Record converts e back for insertion.
func (e Entry) Record() registry.Record {
	return registry.Record{
		Key:         e.Key,
		Label:       e.Label,
		Command:     e.Command,
		Kind:        e.Kind,
		WorkingDir:  e.WorkingDir,
		BasePath:    e.BasePath,
		ProgramPath: e.ProgramPath,
		Args:        e.Args,
		Description: e.Description,
		KeepOpen:    e.KeepOpen,
	}
}

// Lister is the store side of an export.
type Lister interface {
	ListCommands(ctx context.Context) ([]registry.Record, error)
}

// ExportJSON writes every record, in menu order, to dstPath as an indented
// JSON array and returns how many were written.
func ExportJSON(ctx context.Context, store Lister, dstPath string) (int, error) {
	recs, err := store.ListCommands(ctx)
	if err != nil {
		return 0, err
	}
	entries := make([]Entry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, FromRecord(r))
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode export: %w", err)
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(dstPath, bytes.NewReader(data)); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}
	return len(entries), nil
}
