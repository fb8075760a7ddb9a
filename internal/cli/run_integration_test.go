package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/VoxDroid/smenu/internal/db"
	"github.com/VoxDroid/smenu/internal/executor"
	"github.com/VoxDroid/smenu/internal/registry"
	"github.com/VoxDroid/smenu/internal/resolver"
)

// TestRunIntegrationDryRun drives store, resolver and launcher together the
// way the run command does.
func TestRunIntegrationDryRun(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "script_menu.db")
	if err := db.Create(path); err != nil {
		t.Fatalf("Create: %v", err)
	}
	r, err := registry.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.Insert(ctx, registry.Record{Key: "1", Label: "One", Kind: "shell", ProgramPath: "one.sh", Args: "--n 1"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := r.Insert(ctx, registry.Record{Key: "2", Label: "Two", Kind: "python", Command: "two.py --n 2", WorkingDir: "/srv"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	recs, err := r.ListCommands(ctx)
	if err != nil {
		t.Fatalf("ListCommands: %v", err)
	}
	res := resolver.New(resolver.Options{DefaultRoot: tmp})
	e := executor.New(true, true)

	var out bytes.Buffer
	var errb bytes.Buffer
	for _, rec := range recs {
		inv, err := res.Resolve(rec)
		if err != nil {
			t.Fatalf("Resolve %s: %v", rec.Key, err)
		}
		if _, err := e.Launch(ctx, inv, executor.Stdio{Out: &out, Err: &errb}); err != nil {
			t.Fatalf("Launch: %v", err)
		}
	}

	want := []string{
		"dry-run: bash " + filepath.Join(tmp, "one.sh") + " --n 1",
		"dry-run: dir=" + tmp,
		"dry-run: python3 " + filepath.Join("/srv", "two.py") + " --n 2",
		"dry-run: dir=/srv",
	}
	if got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n"); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected dry-run output:\n%s", out.String())
	}
	if errb.Len() != 0 {
		t.Fatalf("expected no stderr for dry-run, got: %q", errb.String())
	}
}
