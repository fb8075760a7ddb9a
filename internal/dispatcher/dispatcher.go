// Package dispatcher runs the interactive menu: list the records, launch the
// selected one and wait for it, or copy a record or edit its arguments.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/VoxDroid/smenu/internal/executor"
	"github.com/VoxDroid/smenu/internal/registry"
	"github.com/VoxDroid/smenu/internal/resolver"
	"github.com/VoxDroid/smenu/internal/statuslog"
	"github.com/VoxDroid/smenu/internal/utils"
)

// State is the dispatcher's position in its loop.
type State int

// Dispatcher states.
const (
	Listing State = iota
	Running
	Exited
)

func (s State) String() string {
	switch s {
	case Listing:
		return "listing"
	case Running:
		return "running"
	case Exited:
		return "exited"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Store is the subset of the item store the dispatcher uses.
type Store interface {
	ListCommands(ctx context.Context) ([]registry.Record, error)
	FindByKey(ctx context.Context, key string) (registry.Record, error)
	InsertDerived(ctx context.Context, src registry.Record, o registry.Overrides) (int64, error)
	UpdateArguments(ctx context.Context, id int64, args string) error
	NextFreeKey(ctx context.Context) (string, error)
}

// Resolver turns a record into an invocation.
type Resolver interface {
	Resolve(rec registry.Record) (resolver.Invocation, error)
}

// DefaultTitle heads the menu when Config.Title is empty.
const DefaultTitle = "Script Menu"

const argsPreviewWidth = 60

// Config wires a Dispatcher. Store, Resolver, Launcher and Input are
// required.
type Config struct {
	Store    Store
	Resolver Resolver
	Launcher executor.Launcher
	Input    utils.LineReader
	// Out receives the menu and messages.
	Out io.Writer
	// Child holds the streams handed to launched programs.
	Child  executor.Stdio
	Status *statuslog.Log
	Logger *zap.Logger
	Title  string
}

// Dispatcher is the menu loop. It is not safe for concurrent use.
type Dispatcher struct {
	cfg   Config
	state State
}

// New returns a Dispatcher in the Listing state.
func New(cfg Config) *Dispatcher {
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Status == nil {
		cfg.Status = statuslog.Nop()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	return &Dispatcher{cfg: cfg, state: Listing}
}

// State reports the current state.
func (d *Dispatcher) State() State { return d.state }

// Run loops until the operator exits or input ends. Only store failures while
// listing are returned; everything else is reported and the menu is shown
// again.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.state = Listing
	for d.state != Exited {
		recs, err := d.cfg.Store.ListCommands(ctx)
		if err != nil {
			d.state = Exited
			return err
		}
		d.render(recs)

		line, err := d.cfg.Input.ReadLine("\nSelect an option number (or C/E/0): ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, utils.ErrAborted) {
				d.println()
				d.exit()
				return nil
			}
			d.state = Exited
			return err
		}

		choice := strings.TrimSpace(line)
		switch {
		case choice == "":
		case choice == "0":
			d.exit()
		case strings.EqualFold(choice, "c"):
			d.copyRecord(ctx)
		case strings.EqualFold(choice, "e"):
			d.editArgs(ctx)
		default:
			rec, ok := pick(recs, choice)
			if !ok {
				d.println("Invalid choice. Please try again.")
				continue
			}
			d.run(ctx, rec)
		}
	}
	return nil
}

func (d *Dispatcher) exit() {
	d.println("Goodbye!")
	d.state = Exited
}

// pick finds a listed record by key, ignoring case.
func pick(recs []registry.Record, choice string) (registry.Record, bool) {
	for _, r := range recs {
		if strings.TrimSpace(r.Key) == choice {
			return r, true
		}
	}
	for _, r := range recs {
		if strings.EqualFold(strings.TrimSpace(r.Key), choice) {
			return r, true
		}
	}
	return registry.Record{}, false
}

func (d *Dispatcher) render(recs []registry.Record) {
	d.printf("\n=== %s ===\n", d.cfg.Title)
	entries := make([]string, len(recs))
	width := 0
	for i, r := range recs {
		entries[i] = r.Label
		if t := target(r); t != "" {
			entries[i] += " (" + t + ")"
		}
		width = max(width, runewidth.StringWidth(entries[i]))
	}
	for i, r := range recs {
		d.printf("%s. %s", r.Key, entries[i])
		if args := previewArgs(r.Args); args != "" {
			d.printf("%s  [args: %s]", strings.Repeat(" ", width-runewidth.StringWidth(entries[i])), args)
		}
		d.println()
	}
	d.println("C. Copy an option")
	d.println("E. Edit args for an option")
	d.println("0. Exit")
}

// target names what a record runs: its legacy command text, or else the
// base name of its program.
func target(r registry.Record) string {
	if c := strings.TrimSpace(r.Command); c != "" {
		return c
	}
	if p := strings.TrimSpace(r.ProgramPath); p != "" {
		return filepath.Base(p)
	}
	return ""
}

// previewArgs collapses args to one line and truncates it for the menu.
func previewArgs(args string) string {
	s := strings.Join(strings.Fields(args), " ")
	return runewidth.Truncate(s, argsPreviewWidth, "...")
}

func (d *Dispatcher) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(d.cfg.Out, format, a...)
}

func (d *Dispatcher) println(a ...any) {
	_, _ = fmt.Fprintln(d.cfg.Out, a...)
}
