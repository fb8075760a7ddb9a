package utils

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func TestPlainReader_ReadsLinesAndPrompts(t *testing.T) {
	var out bytes.Buffer
	r := NewPlainReader(strings.NewReader("2\r\nc\nlast"), &out)

	for _, want := range []string{"2", "c", "last"} {
		got, err := r.ReadLine("> ")
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
	if _, err := r.ReadLine("> "); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF after input, got %v", err)
	}
	if out.String() != "> > > > " {
		t.Fatalf("unexpected prompts: %q", out.String())
	}
}

func TestPrompt_Trims(t *testing.T) {
	var out bytes.Buffer
	got, err := Prompt(NewPlainReader(strings.NewReader("  hello  \n"), &out), "Label")
	if err != nil || got != "hello" {
		t.Fatalf("expected hello, got %q (%v)", got, err)
	}
	if out.String() != "Label: " {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestNewLineReader_NonTerminalIsPlain(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "in")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	if _, ok := NewLineReader(f, io.Discard, "").(*PlainReader); !ok {
		t.Fatalf("expected a PlainReader for a regular file")
	}
}

func TestConfirmReader(t *testing.T) {
	cases := map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "": false, "maybe\n": false}
	for in, want := range cases {
		if got := ConfirmReader("Delete?", strings.NewReader(in), io.Discard); got != want {
			t.Fatalf("input %q: expected %v, got %v", in, want, got)
		}
	}
}
