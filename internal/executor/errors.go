package executor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExecutableNotFound is matched by *NotFoundError.
	ErrExecutableNotFound = errors.New("executable not found")
	// ErrLaunchFailed is matched by *LaunchError.
	ErrLaunchFailed = errors.New("launch failed")
)

// NotFoundError names the path that could not be found and a hint about the
// record fields that produced it.
type NotFoundError struct {
	Path string
	Hint string
}

func (e *NotFoundError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%v: %s", ErrExecutableNotFound, e.Path)
	}
	return fmt.Sprintf("%v: %s (%s)", ErrExecutableNotFound, e.Path, e.Hint)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrExecutableNotFound }

// LaunchError wraps an OS failure to start or wait for a child.
type LaunchError struct {
	Argv []string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrLaunchFailed, strings.Join(e.Argv, " "), e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

func (e *LaunchError) Is(target error) bool { return target == ErrLaunchFailed }
