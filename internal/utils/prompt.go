package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrAborted is returned by ReadLine when the operator presses Ctrl-C.
var ErrAborted = errors.New("input aborted")

// LineReader reads one line of operator input after showing a prompt.
// ReadLine returns io.EOF at end of input and ErrAborted on Ctrl-C.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewLineReader returns a readline-style reader with history when in is a
// terminal and a plain buffered reader otherwise. historyPath may be empty.
func NewLineReader(in *os.File, out io.Writer, historyPath string) LineReader {
	if isTerminal(in) {
		return newLinerReader(historyPath)
	}
	return NewPlainReader(in, out)
}

var isTerminal = func(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

type linerReader struct {
	state   *liner.State
	history string
}

func newLinerReader(historyPath string) *linerReader {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = st.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &linerReader{state: st, history: historyPath}
}

func (l *linerReader) ReadLine(prompt string) (string, error) {
	line, err := l.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrAborted
		}
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal and saves the history file.
func (l *linerReader) Close() error {
	if l.history != "" {
		if f, err := os.Create(l.history); err == nil {
			_, _ = l.state.WriteHistory(f)
			_ = f.Close()
		}
	}
	return l.state.Close()
}

// PlainReader reads lines from any io.Reader, echoing prompts to a writer.
// It is used for pipes and tests.
type PlainReader struct {
	br  *bufio.Reader
	out io.Writer
}

// NewPlainReader returns a PlainReader over r. Prompts go to w when non-nil.
func NewPlainReader(r io.Reader, w io.Writer) *PlainReader {
	return &PlainReader{br: bufio.NewReader(r), out: w}
}

func (p *PlainReader) ReadLine(prompt string) (string, error) {
	if p.out != nil {
		_, _ = fmt.Fprint(p.out, prompt)
	}
	line, err := p.br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *PlainReader) Close() error { return nil }

// Prompt prompts the operator and reads a single trimmed line from r.
func Prompt(lr LineReader, msg string) (string, error) {
	line, err := lr.ReadLine(msg + ": ")
	return strings.TrimSpace(line), err
}
