package resolver

import (
	"fmt"
	"strings"

	"github.com/VoxDroid/smenu/internal/registry"
)

// Code classifies why a record could not be resolved.
type Code int

// Resolution failure codes.
const (
	UnsupportedKind Code = iota + 1
	NoProgramSpecified
	MalformedArguments
)

func (c Code) String() string {
	switch c {
	case UnsupportedKind:
		return "unsupported kind"
	case NoProgramSpecified:
		return "no program specified"
	case MalformedArguments:
		return "malformed arguments"
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error is a resolution failure naming the offending field.
type Error struct {
	Code  Code
	Field string
	Value string
	Err   error
}

func (e *Error) Error() string {
	switch e.Code {
	case UnsupportedKind:
		return fmt.Sprintf("unsupported type %q (supported: %s)", e.Value, supportedList())
	case NoProgramSpecified:
		return "no program_path or command specified"
	case MalformedArguments:
		return fmt.Sprintf("malformed %s %q: %v", e.Field, e.Value, e.Err)
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on the code alone, e.g. errors.Is(err, &Error{Code: UnsupportedKind}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func supportedList() string {
	names := make([]string, len(registry.SupportedKinds))
	for i, k := range registry.SupportedKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
