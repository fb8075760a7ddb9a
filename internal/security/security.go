// Package security provides a conservative guard against launching menu
// entries that look destructive.
package security

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/VoxDroid/smenu/internal/registry"
	"github.com/VoxDroid/smenu/internal/resolver"
)

// ErrBlocked is returned for invocations that match a destructive pattern.
var ErrBlocked = errors.New("command appears destructive or unsafe")

var dangerousPatterns = []*regexp.Regexp{
	// Destructive filesystem ops
	regexp.MustCompile(`(?i)\brm\s+-rf\s+/?$`),
	regexp.MustCompile(`(?i)\brm\s+-rf\s+/`),
	regexp.MustCompile(`(?i)\bmkfs\b`),
	regexp.MustCompile(`(?i)\bdd\s+if=`),
	// fork bombs (e.g. :(){ :|:& };:)
	regexp.MustCompile(`:\(\)\s*\{`),
	// package managers removing all packages
	regexp.MustCompile(`(?i)\bapt\-get\s+remove\s+`),
	regexp.MustCompile(`(?i)\byum\s+remove\s+`),
	// wipe disk
	regexp.MustCompile(`(?i)\bwipefs\b`),
}

// maxScriptScan bounds how much of a shell script is inspected.
const maxScriptScan = 1 << 20

// CheckAllowed returns nil if the command line is allowed to run, or an error
// describing why it's blocked. Checking is conservative and not exhaustive.
func CheckAllowed(command string) error {
	cmd := strings.TrimSpace(command)
	if cmd == "" {
		return errors.New("empty command")
	}
	for _, re := range dangerousPatterns {
		if re.MatchString(cmd) {
			return ErrBlocked
		}
	}
	return nil
}

// CheckInvocation applies CheckAllowed to the rendered command line and, for
// shell entries, to each non-comment line of the script. Unreadable scripts
// are left for the launcher to report.
func CheckInvocation(inv resolver.Invocation) error {
	if err := CheckAllowed(strings.Join(inv.Argv(), " ")); err != nil {
		return err
	}
	if inv.Kind != registry.KindShell {
		return nil
	}
	f, err := os.Open(inv.Script)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	s := bufio.NewScanner(io.LimitReader(f, maxScriptScan))
	s.Buffer(make([]byte, 64*1024), maxScriptScan)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := CheckAllowed(line); err != nil {
			return fmt.Errorf("%w: %s line %d", err, inv.Script, n)
		}
	}
	return nil
}
