// Package model provides a framework-agnostic UI model over the item store,
// the resolver and the launcher so the TUI code can remain
// presentation-focused.
package model

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VoxDroid/smenu/internal/executor"
	"github.com/VoxDroid/smenu/internal/registry"
	"github.com/VoxDroid/smenu/internal/resolver"
	"github.com/VoxDroid/smenu/internal/statuslog"
)

// ErrNotFound is returned when a key is not in the cached list.
var ErrNotFound = errors.New("not found")

// Store is the part of the item store the UI reads.
type Store interface {
	ListCommands(ctx context.Context) ([]registry.Record, error)
}

// Resolver turns a record into an invocation.
type Resolver interface {
	Resolve(rec registry.Record) (resolver.Invocation, error)
}

// Preparer builds an unstarted command; *executor.Executor implements it.
type Preparer interface {
	Command(ctx context.Context, inv resolver.Invocation, stdio executor.Stdio) (*exec.Cmd, error)
}

// UIModel caches the records and prepares launches.
type UIModel struct {
	store    Store
	resolver Resolver
	prep     Preparer
	status   *statuslog.Log

	cache []registry.Record
}

// New constructs a UIModel. status may be nil.
func New(store Store, res Resolver, prep Preparer, status *statuslog.Log) *UIModel {
	if status == nil {
		status = statuslog.Nop()
	}
	return &UIModel{store: store, resolver: res, prep: prep, status: status}
}

// RefreshList reloads the records in menu order and caches them.
func (m *UIModel) RefreshList(ctx context.Context) error {
	recs, err := m.store.ListCommands(ctx)
	if err != nil {
		return err
	}
	m.cache = recs
	return nil
}

// ListCached returns the cached records.
func (m *UIModel) ListCached() []registry.Record { return m.cache }

// FindByKey searches the cache for a record by key.
func (m *UIModel) FindByKey(key string) (registry.Record, error) {
	for _, r := range m.cache {
		if r.Key == key {
			return r, nil
		}
	}
	return registry.Record{}, ErrNotFound
}

// Describe renders every field of rec followed by its resolved command line
// or the reason it cannot be resolved.
func (m *UIModel) Describe(rec registry.Record) string {
	var b strings.Builder
	field := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			return
		}
		fmt.Fprintf(&b, "%-13s %s\n", name+":", v)
	}
	field("option", rec.Key)
	field("label", rec.Label)
	field("type", rec.Kind)
	field("command", rec.Command)
	field("program_path", rec.ProgramPath)
	field("working_dir", rec.WorkingDir)
	field("base_path", rec.BasePath)
	field("args", rec.Args)
	field("description", rec.Description)
	field("keep_open", rec.KeepOpen)
	b.WriteString("\n")
	inv, err := m.resolver.Resolve(rec)
	if err != nil {
		fmt.Fprintf(&b, "cannot run: %v\n", err)
		return b.String()
	}
	fmt.Fprintf(&b, "runs: %s\nin:   %s\n", inv, inv.Dir)
	return b.String()
}

// Run is one prepared launch.
type Run struct {
	ID      string
	Record  registry.Record
	Cmd     *exec.Cmd
	started time.Time
}

// Title is "<key>. <label>".
func (r *Run) Title() string { return fmt.Sprintf("%s. %s", r.Record.Key, r.Record.Label) }

// Prepare resolves rec and returns the command to hand to the terminal.
// Failures are recorded in the status log.
func (m *UIModel) Prepare(ctx context.Context, rec registry.Record, stdio executor.Stdio) (*Run, error) {
	run := &Run{ID: uuid.NewString(), Record: rec}
	inv, err := m.resolver.Resolve(rec)
	if err != nil {
		m.status.Event("resolve failed: "+run.Title(), zap.Error(err))
		return nil, err
	}
	cmd, err := m.prep.Command(ctx, inv, stdio)
	if err != nil {
		m.status.Event("failed "+run.Title(), zap.String("run_id", run.ID), zap.Error(err))
		return nil, err
	}
	run.Cmd = cmd
	run.started = time.Now()
	m.status.Event("started "+run.Title(), zap.String("run_id", run.ID), zap.String("cmd", inv.String()))
	return run, nil
}

// Finish records the outcome of run and returns the child's exit code. A
// non-zero exit is not an error; err is non-nil only when the child could not
// be started or waited for.
func (m *UIModel) Finish(run *Run, runErr error) (int, error) {
	code := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			err := &executor.LaunchError{Argv: run.Cmd.Args, Err: runErr}
			m.status.Event("failed "+run.Title(), zap.String("run_id", run.ID), zap.Error(err))
			return -1, err
		}
		code = exitErr.ExitCode()
	}
	m.status.Event("finished "+run.Title(),
		zap.String("run_id", run.ID),
		zap.Int("exit_code", code),
		zap.Duration("elapsed", time.Since(run.started).Round(time.Millisecond)))
	return code, nil
}
