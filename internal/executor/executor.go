// Package executor provides command execution functionality.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/VoxDroid/smenu/internal/resolver"
)

// Stdio carries the streams a child process inherits.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Result describes a finished child process.
type Result struct {
	ExitCode int
}

// Launcher starts a resolved invocation and waits for it. It allows tests to
// inject fake implementations without running real programs.
type Launcher interface {
	Launch(ctx context.Context, inv resolver.Invocation, stdio Stdio) (Result, error)
}

// Executor runs resolved invocations as child processes.
type Executor struct {
	DryRun  bool
	Verbose bool
}

// New returns a Launcher backed by the real Executor implementation.
func New(dry, verbose bool) Launcher {
	return &Executor{DryRun: dry, Verbose: verbose}
}

// Launch runs inv synchronously with the given streams. A non-zero exit status
// is reported in Result.ExitCode; only failures to start the child are errors.
func (e *Executor) Launch(ctx context.Context, inv resolver.Invocation, stdio Stdio) (Result, error) {
	if e.handleDryRunIfNeeded(inv, stdio.Out) {
		return Result{}, nil
	}
	cmd, err := e.Command(ctx, inv, stdio)
	if err != nil {
		return Result{ExitCode: -1}, err
	}
	if e.Verbose && stdio.Err != nil {
		_, _ = fmt.Fprintf(stdio.Err, "exec: %s (dir=%s)\n", inv, cmd.Dir)
	}
	if err := cmd.Start(); err != nil {
		return Result{ExitCode: -1}, &LaunchError{Argv: inv.Argv(), Err: err}
	}
	return waitResult(cmd.Wait(), inv)
}

// Command validates inv and returns the prepared, unstarted command. The TUI
// hands it to the terminal program so the child owns the screen while it runs.
func (e *Executor) Command(ctx context.Context, inv resolver.Invocation, stdio Stdio) (*exec.Cmd, error) {
	if err := validateArgv(inv.Argv()); err != nil {
		return nil, &LaunchError{Argv: inv.Argv(), Err: err}
	}
	exe, err := exec.LookPath(inv.Executable)
	if err != nil {
		return nil, &NotFoundError{Path: inv.Executable, Hint: "interpreter not on PATH; set python/shell in the config file"}
	}
	if inv.Dir != "" {
		if fi, err := os.Stat(inv.Dir); err != nil || !fi.IsDir() {
			return nil, &NotFoundError{Path: inv.Dir, Hint: "check working_dir / base_path"}
		}
	}
	if fi, err := os.Stat(inv.Script); err != nil || fi.IsDir() {
		return nil, &NotFoundError{Path: inv.Script, Hint: "check program_path and base_path / working_dir"}
	}

	args := append([]string{inv.Script}, inv.Args...)
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Dir = inv.Dir
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err
	return cmd, nil
}

func waitResult(err error, inv resolver.Invocation) (Result, error) {
	if err == nil {
		return Result{}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode()}, nil
	}
	return Result{ExitCode: -1}, &LaunchError{Argv: inv.Argv(), Err: err}
}

func (e *Executor) handleDryRunIfNeeded(inv resolver.Invocation, stdout io.Writer) bool {
	if !e.DryRun {
		return false
	}
	if stdout != nil {
		_, _ = fmt.Fprintf(stdout, "dry-run: %s\n", inv)
		if e.Verbose {
			_, _ = fmt.Fprintf(stdout, "dry-run: dir=%s\n", inv.Dir)
		}
	}
	return true
}

func isControl(r rune) bool {
	return r == 0 || (r < 32 && r != '\t') || r == 0x7f
}

// validateArgv rejects arguments the OS cannot pass through intact.
func validateArgv(argv []string) error {
	for i, a := range argv {
		if strings.IndexFunc(a, isControl) != -1 {
			return fmt.Errorf("invalid arg[%d]: contains control characters", i)
		}
	}
	return nil
}

// sanitizeArgs normalizes common unicode characters that often get
// inserted by editors (e.g., smart quotes, NBSP, zero-width spaces) and
// converts them to their ASCII equivalents where sensible.
func sanitizeArgs(s string) string {
	r := strings.NewReplacer(
		"\u2018", "'", // left single quote
		"\u2019", "'", // right single quote
		"\u201C", "\"", // left double quote
		"\u201D", "\"", // right double quote
		"\u00A0", " ", // NO-BREAK SPACE
		"\u200B", "", // zero width space
		"\u200E", "", // left-to-right mark
		"\u200F", "", // right-to-left mark
		"\r\n", "\n",
	)
	rp := r.Replace(s)
	// Newlines separate words in args text; drop every other control rune.
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if isControl(r) {
			return -1
		}
		return r
	}, rp)
}

// Sanitize normalizes argument text typed or pasted by the operator before
// it is stored. Exported for the dispatcher and the edit-args command.
func Sanitize(s string) string {
	return sanitizeArgs(s)
}
