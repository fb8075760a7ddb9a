// Package shellwords splits stored argument text into words the way a POSIX
// shell would, without performing any expansion.
//
// Grammar:
//
//   - Words are separated by runs of space, tab or newline.
//   - '...' groups its contents literally; there are no escapes inside.
//   - "..." groups its contents; a backslash escapes only $, `, ", \ and
//     newline, and is kept literally before any other character.
//   - Outside quotes a backslash escapes the next character, and a
//     backslash-newline pair is removed (line continuation).
//   - Adjacent quoted and unquoted segments join into a single word, so
//     --name="John Q" is the one word --name=John Q.
//
// Variables, globs, redirections and command substitution are not
// interpreted: $HOME stays the literal text $HOME.
package shellwords

import (
	"errors"
	"fmt"

	"github.com/kballard/go-shellquote"
)

var (
	// ErrUnterminatedQuote is returned when a single or double quote is not closed.
	ErrUnterminatedQuote = errors.New("unterminated quote")
	// ErrTrailingEscape is returned when the text ends with a lone backslash.
	ErrTrailingEscape = errors.New("trailing backslash")
)

// Split tokenizes s into words. Empty or all-whitespace input yields an
// empty, non-nil slice.
func Split(s string) ([]string, error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return nil, fmt.Errorf("split %q: %w", s, classify(err))
	}
	if words == nil {
		words = []string{}
	}
	return words, nil
}

// Join quotes each word as needed and joins them with single spaces, so
// that Split(Join(words...)) returns words.
func Join(words ...string) string {
	return shellquote.Join(words...)
}

func classify(err error) error {
	switch err {
	case shellquote.UnterminatedSingleQuoteError, shellquote.UnterminatedDoubleQuoteError:
		return ErrUnterminatedQuote
	case shellquote.UnterminatedEscapeError:
		return ErrTrailingEscape
	default:
		return err
	}
}
