// Package sanitize cleans text before it is drawn inside the TUI. Status
// lines and record fields may carry pasted escape sequences; color (SGR)
// codes are kept, everything that can move the cursor or change terminal
// state is removed.
package sanitize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	oscRe = regexp.MustCompile(`\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)
	csiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
)

// Line returns s as a single displayable line: CR and LF become spaces, tabs
// expand to four spaces, OSC and non-SGR CSI sequences are removed, cursor
// forward (CUF) becomes spaces, and remaining control runes are dropped.
func Line(s string) string {
	out := strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", "\t", "    ").Replace(s)
	out = oscRe.ReplaceAllString(out, "")
	out = csiRe.ReplaceAllStringFunc(out, replaceCsi)
	return strings.Map(func(r rune) rune {
		if r == '\x1b' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, stripStrayEscapes(out))
}

// stripStrayEscapes removes ESC bytes that do not start a kept SGR sequence.
func stripStrayEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' && !(i+1 < len(s) && s[i+1] == '[') {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func replaceCsi(s string) string {
	switch s[len(s)-1] {
	case 'm':
		return s
	case 'C':
		return strings.Repeat(" ", csiParam(s, 1))
	default:
		return ""
	}
}

// csiParam extracts the first numeric parameter from a CSI sequence like
// \x1b[<n><letter>. Returns def if the parameter is absent or invalid.
func csiParam(s string, def int) int {
	body := strings.TrimLeft(s[2:len(s)-1], "?")
	if idx := strings.IndexByte(body, ';'); idx >= 0 {
		body = body[:idx]
	}
	if n, err := strconv.Atoi(body); err == nil && n > 0 {
		return n
	}
	return def
}
