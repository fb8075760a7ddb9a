// Package resolver turns a stored menu record into a concrete process
// invocation. It only reads record fields; nothing touches the filesystem.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/VoxDroid/smenu/internal/registry"
	"github.com/VoxDroid/smenu/internal/shellwords"
)

// Options configure the interpreters and the fallback directory.
type Options struct {
	// DefaultRoot is the working directory used when a record names neither
	// working_dir nor base_path.
	DefaultRoot string
	// Python is the interpreter for KindPython records (default "python3").
	Python string
	// Shell is the interpreter for KindShell records (default "bash").
	Shell string
}

// Invocation is a fully resolved child process.
type Invocation struct {
	Kind       registry.Kind
	Executable string
	Script     string
	Args       []string
	Dir        string
}

// Argv returns the executable, the script and the arguments in order.
func (inv Invocation) Argv() []string {
	argv := make([]string, 0, len(inv.Args)+2)
	argv = append(argv, inv.Executable, inv.Script)
	return append(argv, inv.Args...)
}

// String renders the invocation as a copy-pasteable command line.
func (inv Invocation) String() string {
	return shellwords.Join(inv.Argv()...)
}

// Resolver applies Options to records.
type Resolver struct {
	opts Options
}

// New returns a Resolver, filling empty interpreter names with defaults.
func New(opts Options) *Resolver {
	if opts.Python == "" {
		opts.Python = "python3"
	}
	if opts.Shell == "" {
		opts.Shell = "bash"
	}
	return &Resolver{opts: opts}
}

// Resolve builds the invocation for rec.
//
// The working directory is working_dir, else base_path, else DefaultRoot.
// The program is program_path when set, else the first word of command;
// relative programs are joined onto the working directory. Arguments are the
// words of args followed by the words of command after its first.
func (r *Resolver) Resolve(rec registry.Record) (Invocation, error) {
	kind, ok := registry.NormalizeKind(rec.Kind)
	if !ok {
		return Invocation{}, &Error{Code: UnsupportedKind, Field: "type", Value: strings.TrimSpace(rec.Kind)}
	}

	dir := r.baseDir(rec)

	cmdWords, err := splitField("command", rec.Command)
	if err != nil {
		return Invocation{}, err
	}
	argWords, err := splitField("args", rec.Args)
	if err != nil {
		return Invocation{}, err
	}

	program := strings.TrimSpace(rec.ProgramPath)
	if program == "" && len(cmdWords) > 0 {
		program = cmdWords[0]
	}
	if program == "" {
		return Invocation{}, &Error{Code: NoProgramSpecified, Field: "program_path"}
	}
	if !filepath.IsAbs(program) {
		program = filepath.Join(dir, program)
	}

	args := make([]string, 0, len(argWords)+len(cmdWords))
	args = append(args, argWords...)
	if len(cmdWords) > 1 {
		args = append(args, cmdWords[1:]...)
	}

	exe := r.opts.Python
	if kind == registry.KindShell {
		exe = r.opts.Shell
	}
	return Invocation{Kind: kind, Executable: exe, Script: program, Args: args, Dir: dir}, nil
}

func (r *Resolver) baseDir(rec registry.Record) string {
	if wd := strings.TrimSpace(rec.WorkingDir); wd != "" {
		return wd
	}
	if bp := strings.TrimSpace(rec.BasePath); bp != "" {
		return bp
	}
	return r.opts.DefaultRoot
}

func splitField(field, text string) ([]string, error) {
	words, err := shellwords.Split(strings.TrimSpace(text))
	if err != nil {
		return nil, &Error{Code: MalformedArguments, Field: field, Value: text, Err: err}
	}
	return words, nil
}
