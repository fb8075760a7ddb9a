package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/VoxDroid/smenu/internal/executor"
	"github.com/VoxDroid/smenu/internal/registry"
	"github.com/VoxDroid/smenu/internal/utils"
)

// ClearArgs entered at the edit prompt empties the args.
const ClearArgs = "-"

// ask reads one trimmed answer. ok is false when input ended or was aborted,
// which cancels the current action.
func (d *Dispatcher) ask(prompt string) (string, bool) {
	answer, err := utils.Prompt(d.cfg.Input, prompt)
	if err != nil {
		d.println("\nCancelled.")
		return "", false
	}
	return answer, true
}

// lookup asks for a key or id and loads the record.
func (d *Dispatcher) lookup(ctx context.Context, prompt string) (registry.Record, bool) {
	key, ok := d.ask(prompt)
	if !ok || key == "" {
		return registry.Record{}, false
	}
	rec, err := d.cfg.Store.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			d.println("No such item.")
		} else {
			d.printf("Lookup failed: %v\n", err)
		}
		return registry.Record{}, false
	}
	return rec, true
}

// copyRecord duplicates a record under a new key, optionally with a new
// label and args.
func (d *Dispatcher) copyRecord(ctx context.Context) {
	src, ok := d.lookup(ctx, "Enter the ID or option number of the item to copy")
	if !ok {
		return
	}
	next, err := d.cfg.Store.NextFreeKey(ctx)
	if err != nil {
		d.printf("Copy failed: %v\n", err)
		return
	}

	key, ok := d.ask(fmt.Sprintf("New option number (blank for %s)", next))
	if !ok {
		return
	}
	if key == "" {
		key = next
	}
	label, ok := d.ask(fmt.Sprintf("New label (was %s)", src.Label))
	if !ok {
		return
	}
	args, ok := d.ask(fmt.Sprintf("New args (was %s)", previewArgs(src.Args)))
	if !ok {
		return
	}

	o := registry.Overrides{Key: &key}
	if label != "" {
		o.Label = &label
	}
	if args != "" {
		clean := executor.Sanitize(args)
		o.Args = &clean
	}
	id, err := d.cfg.Store.InsertDerived(ctx, src, o)
	if err != nil {
		d.printf("Copy failed: %v\n", err)
		return
	}
	d.printf("Option %s copied to %s (id %d).\n", src.Key, key, id)
	d.cfg.Status.Event(fmt.Sprintf("copied %s to %s", src.Key, key), zap.Int64("id", id))
}

// editArgs replaces the args text of a record. A blank answer keeps the
// current text and ClearArgs empties it.
func (d *Dispatcher) editArgs(ctx context.Context) {
	rec, ok := d.lookup(ctx, "Enter the ID or option number to edit args")
	if !ok {
		return
	}
	current := rec.Args
	if strings.TrimSpace(current) == "" {
		current = "(none)"
	}
	d.printf("Current args: %s\n", current)

	answer, ok := d.ask(fmt.Sprintf("New args (blank keeps current, %s clears)", ClearArgs))
	if !ok {
		return
	}
	var args string
	switch answer {
	case "":
		d.println("Args unchanged.")
		return
	case ClearArgs:
		args = ""
	default:
		args = executor.Sanitize(answer)
	}
	if err := d.cfg.Store.UpdateArguments(ctx, rec.ID, args); err != nil {
		d.printf("Edit failed: %v\n", err)
		return
	}
	d.println("Args updated.")
	d.cfg.Status.Event(fmt.Sprintf("edited args for %s. %s", rec.Key, rec.Label), zap.String("args", args))
}
