// Package recorder captures argument text typed or piped on stdin.
package recorder

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// eofMarkers end input early, as typed on consoles without a working EOF key.
var eofMarkers = []string{"\x1a", "^Z"}

// ReadArgs reads lines from r until EOF or an end-of-input marker and
// returns them joined with newlines. Blank lines and lines starting with '#'
// are skipped; each kept line is trimmed.
func ReadArgs(r io.Reader) (string, error) {
	s := bufio.NewScanner(r)
	var out []string
	for s.Scan() {
		line, stop := cutMarker(s.Text())
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			out = append(out, line)
		}
		if stop {
			break
		}
	}
	if err := s.Err(); err != nil {
		return "", fmt.Errorf("read args: %w", err)
	}
	return strings.Join(out, "\n"), nil
}

// cutMarker returns the part of line before the first end-of-input marker.
func cutMarker(line string) (string, bool) {
	cut, found := len(line), false
	for _, m := range eofMarkers {
		if i := strings.Index(line, m); i >= 0 && i < cut {
			cut, found = i, true
		}
	}
	return line[:cut], found
}
