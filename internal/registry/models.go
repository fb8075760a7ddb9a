// Package registry is the item store: durable storage and retrieval of menu
// records kept in the menu_items table.
package registry

import "strings"

// Kind says how a record is turned into a process invocation.
type Kind string

// Supported kinds.
const (
	KindPython Kind = "python"
	KindShell  Kind = "shell"
)

// SupportedKinds lists every kind the resolver accepts, in display order.
var SupportedKinds = []Kind{KindPython, KindShell}

// NormalizeKind trims and lower-cases s and maps the legacy "bash" and "sh"
// spellings to KindShell. ok is false for anything unsupported.
func NormalizeKind(s string) (k Kind, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "python":
		return KindPython, true
	case "shell", "bash", "sh":
		return KindShell, true
	}
	return "", false
}

// KeepOpen says whether the menu pauses after a child exits.
type KeepOpen string

// keep_open values.
const (
	// KeepOpenAuto pauses only when the child failed.
	KeepOpenAuto KeepOpen = "*Auto"
	KeepOpenYes  KeepOpen = "*Yes"
	KeepOpenNo   KeepOpen = "*No"
)

// NormalizeKeepOpen accepts auto, yes or no with or without the leading
// '*', in any case. Blank input yields "" and ok.
func NormalizeKeepOpen(s string) (k KeepOpen, ok bool) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "*")) {
	case "":
		return "", true
	case "auto":
		return KeepOpenAuto, true
	case "yes":
		return KeepOpenYes, true
	case "no":
		return KeepOpenNo, true
	}
	return "", false
}

// Record is one launchable menu entry. Every text field is "" when the
// column is NULL or absent from the schema.
type Record struct {
	ID int64
	// Key is the operator-facing selection and ordering token (option_number).
	Key   string
	Label string
	// Command is the legacy combined "program + arguments" text.
	Command     string
	Kind        string
	WorkingDir  string
	BasePath    string
	ProgramPath string
	// Args is free-form argument text, tokenized with shell quoting rules.
	Args        string
	Description string
	KeepOpen    string
	// Extra holds columns of the table this package does not model, keyed by
	// column name. Nil when the table has none.
	Extra map[string]any
}

// Overrides are the fields InsertDerived may replace. Nil means "copy from
// the source record".
type Overrides struct {
	Key   *string
	Label *string
	Args  *string
}

// Capabilities reports which optional columns the opened table has.
type Capabilities struct {
	Args        bool
	BasePath    bool
	Description bool
	KeepOpen    bool
}
