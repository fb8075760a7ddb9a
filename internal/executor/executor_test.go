package executor

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/VoxDroid/smenu/internal/resolver"
)

// shellScript writes body to a script in a fresh directory and returns an
// invocation running it with sh.
func shellScript(t *testing.T, body string, args ...string) resolver.Invocation {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("sh scripts are not available on windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping test")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "job.sh")
	if err := os.WriteFile(script, []byte(body+"\n"), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return resolver.Invocation{Executable: "sh", Script: script, Args: args, Dir: dir}
}

func TestLaunchEcho(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	inv := shellScript(t, `echo hello "$1"`, "John Q")
	var out, errb bytes.Buffer
	res, err := (&Executor{}).Launch(ctx, inv, Stdio{Out: &out, Err: &errb})
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d", res.ExitCode)
	}
	if !strings.Contains(out.String(), "hello John Q") {
		t.Fatalf("expected 'hello John Q' in stdout, got: %q", out.String())
	}
}

func TestLaunchRunsInDir(t *testing.T) {
	inv := shellScript(t, "pwd")
	var out bytes.Buffer
	if _, err := (&Executor{}).Launch(context.Background(), inv, Stdio{Out: &out}); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	want, _ := filepath.EvalSymlinks(inv.Dir)
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(out.String()))
	if got != want {
		t.Fatalf("expected child to run in %s, got %s", want, got)
	}
}

func TestLaunchNonZeroExitIsNotAnError(t *testing.T) {
	inv := shellScript(t, "echo bye; exit 3")
	var out bytes.Buffer
	res, err := (&Executor{}).Launch(context.Background(), inv, Stdio{Out: &out})
	if err != nil {
		t.Fatalf("expected nil error for non-zero exit, got: %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("expected exit 3, got %d", res.ExitCode)
	}
}

func TestLaunchWithStdin(t *testing.T) {
	inv := shellScript(t, "read -r line; echo got:$line")
	var out, errb bytes.Buffer
	stdin := bytes.NewBufferString("s3cret\n")
	if _, err := (&Executor{}).Launch(context.Background(), inv, Stdio{In: stdin, Out: &out, Err: &errb}); err != nil {
		t.Fatalf("Launch with stdin failed: %v stderr=%q", err, errb.String())
	}
	if !strings.Contains(out.String(), "got:s3cret") {
		t.Fatalf("expected got:s3cret in stdout, got: %q", out.String())
	}
}

func TestDryRun(t *testing.T) {
	var out bytes.Buffer
	e := &Executor{DryRun: true}
	inv := resolver.Invocation{Executable: "python3", Script: "/nowhere/x.py", Args: []string{"a b"}}
	if _, err := e.Launch(context.Background(), inv, Stdio{Out: &out}); err != nil {
		t.Fatalf("dry-run should not error: %v", err)
	}
	if got := out.String(); got != "dry-run: python3 /nowhere/x.py 'a b'\n" {
		t.Fatalf("unexpected dry-run output: %q", got)
	}
}
