package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VoxDroid/smenu/internal/registry"
)

// run resolves and launches rec, blocking until the child exits.
func (d *Dispatcher) run(ctx context.Context, rec registry.Record) {
	d.state = Running
	defer func() { d.state = Listing }()

	title := fmt.Sprintf("%s. %s", rec.Key, rec.Label)
	inv, err := d.cfg.Resolver.Resolve(rec)
	if err != nil {
		d.printf("Could not build command for %s: %v\n", title, err)
		d.cfg.Status.Event("resolve failed: "+title, zap.Error(err))
		return
	}

	runID := uuid.NewString()
	d.printf("\nRunning: %s (%s)\n\n", rec.Label, inv.Kind)
	d.cfg.Logger.Debug("launch", zap.String("run_id", runID), zap.Strings("argv", inv.Argv()), zap.String("dir", inv.Dir))
	d.cfg.Status.Event("started "+title, zap.String("run_id", runID), zap.String("cmd", inv.String()))

	start := time.Now()
	res, err := d.cfg.Launcher.Launch(ctx, inv, d.cfg.Child)
	if err != nil {
		d.printf("Failed to run %s: %v\n", title, err)
		d.cfg.Status.Event("failed "+title, zap.String("run_id", runID), zap.Error(err))
		d.maybePause(rec, true)
		return
	}
	d.printf("\n%s exited with status %d\n", title, res.ExitCode)
	d.cfg.Status.Event("finished "+title,
		zap.String("run_id", runID),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
	d.maybePause(rec, res.ExitCode != 0)
}

// PausePrompt is shown when a record's keep_open setting holds the output on
// screen after its run.
const PausePrompt = "Press ENTER to return to the menu..."

// maybePause waits for a line when rec asks for it: *Yes always, *Auto only
// after a failure. *No and blank never pause.
func (d *Dispatcher) maybePause(rec registry.Record, failed bool) {
	k, _ := registry.NormalizeKeepOpen(rec.KeepOpen)
	if k == registry.KeepOpenYes || (k == registry.KeepOpenAuto && failed) {
		_, _ = d.cfg.Input.ReadLine(PausePrompt)
	}
}
