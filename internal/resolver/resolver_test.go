package resolver

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/VoxDroid/smenu/internal/registry"
)

var root = filepath.FromSlash("/srv/mixed_nuts")

func newResolver() *Resolver {
	return New(Options{DefaultRoot: root, Python: "/usr/bin/python3", Shell: "/bin/bash"})
}

func TestResolve_ProgramPathWinsOverCommand(t *testing.T) {
	r := newResolver()
	commands := []string{"", "other.py", "other.py --x 1", `"quoted name.py" a`}
	for _, c := range commands {
		inv, err := r.Resolve(registry.Record{Kind: "python", ProgramPath: "tools/run.py", Command: c})
		if err != nil {
			t.Fatalf("Resolve(command=%q): %v", c, err)
		}
		if want := filepath.Join(root, "tools/run.py"); inv.Script != want {
			t.Fatalf("command=%q: expected script %s, got %s", c, want, inv.Script)
		}
	}
}

func TestResolve_CommandFirstWordIsProgram(t *testing.T) {
	inv, err := newResolver().Resolve(registry.Record{Kind: "python", Command: "foo.py --x 1"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if filepath.Base(inv.Script) != "foo.py" || inv.Script != filepath.Join(root, "foo.py") {
		t.Fatalf("unexpected script %s", inv.Script)
	}
	if diff := cmp.Diff([]string{"--x", "1"}, inv.Args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_ArgsTextBeforeCommandRemainder(t *testing.T) {
	inv, err := newResolver().Resolve(registry.Record{Kind: "python", Args: "--a 1", Command: "foo.py --b 2"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if diff := cmp.Diff([]string{"--a", "1", "--b", "2"}, inv.Args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_QuotedMultiLineArgs(t *testing.T) {
	inv, err := newResolver().Resolve(registry.Record{
		Kind:        "shell",
		ProgramPath: "/opt/backup.sh",
		Args:        "--name \"John Q\"\n--verbose",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{"/bin/bash", "/opt/backup.sh", "--name", "John Q", "--verbose"}
	if diff := cmp.Diff(want, inv.Argv()); diff != "" {
		t.Fatalf("argv mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_WorkingDirectoryPrecedence(t *testing.T) {
	r := newResolver()
	cases := []struct {
		name string
		rec  registry.Record
		dir  string
	}{
		{"working dir wins", registry.Record{WorkingDir: "/wd", BasePath: "/bp"}, "/wd"},
		{"base path next", registry.Record{BasePath: "/bp"}, "/bp"},
		{"default root last", registry.Record{}, root},
		{"blank values ignored", registry.Record{WorkingDir: "  ", BasePath: " "}, root},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := c.rec
			rec.Kind = "python"
			rec.ProgramPath = "x.py"
			inv, err := r.Resolve(rec)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if inv.Dir != c.dir {
				t.Fatalf("expected dir %s, got %s", c.dir, inv.Dir)
			}
			if inv.Script != filepath.Join(c.dir, "x.py") {
				t.Fatalf("expected script under %s, got %s", c.dir, inv.Script)
			}
		})
	}
}

func TestResolve_AbsoluteProgramKept(t *testing.T) {
	abs := filepath.FromSlash("/abs/tool.py")
	inv, err := newResolver().Resolve(registry.Record{Kind: "python", WorkingDir: "/wd", ProgramPath: abs})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if inv.Script != abs {
		t.Fatalf("expected %s, got %s", abs, inv.Script)
	}
}

func TestResolve_KindSelectsInterpreter(t *testing.T) {
	r := newResolver()
	for kind, exe := range map[string]string{"python": "/usr/bin/python3", "shell": "/bin/bash", "BASH": "/bin/bash"} {
		inv, err := r.Resolve(registry.Record{Kind: kind, ProgramPath: "x"})
		if err != nil {
			t.Fatalf("Resolve(kind=%q): %v", kind, err)
		}
		if inv.Executable != exe {
			t.Fatalf("kind %q: expected %s, got %s", kind, exe, inv.Executable)
		}
	}
}

func TestResolve_DefaultsInterpreters(t *testing.T) {
	inv, err := New(Options{}).Resolve(registry.Record{Kind: "python", ProgramPath: "/x.py"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if inv.Executable != "python3" {
		t.Fatalf("expected python3, got %s", inv.Executable)
	}
}

func TestResolve_UnsupportedKind(t *testing.T) {
	_, err := newResolver().Resolve(registry.Record{Kind: "perl", ProgramPath: "x.pl"})
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Code != UnsupportedKind {
		t.Fatalf("expected UnsupportedKind, got %v", err)
	}
	if !errors.Is(err, &Error{Code: UnsupportedKind}) {
		t.Fatalf("errors.Is should match on code")
	}
	msg := err.Error()
	for _, want := range []string{"perl", "python", "shell"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q should mention %q", msg, want)
		}
	}
}

func TestResolve_NoProgram(t *testing.T) {
	_, err := newResolver().Resolve(registry.Record{Kind: "python", Command: "   ", Args: "--a"})
	if !errors.Is(err, &Error{Code: NoProgramSpecified}) {
		t.Fatalf("expected NoProgramSpecified, got %v", err)
	}
}

func TestResolve_MalformedArgs(t *testing.T) {
	_, err := newResolver().Resolve(registry.Record{Kind: "python", ProgramPath: "x.py", Args: `--name "John`})
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Code != MalformedArguments || rerr.Field != "args" {
		t.Fatalf("expected MalformedArguments on args, got %v", err)
	}
}

func TestInvocationString(t *testing.T) {
	inv := Invocation{Executable: "python3", Script: "/srv/my script.py", Args: []string{"--name", "John Q"}}
	if got, want := inv.String(), `python3 '/srv/my script.py' --name 'John Q'`; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
