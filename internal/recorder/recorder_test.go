package recorder

import (
	"strings"
	"testing"
)

func TestReadArgs_IgnoresBlankAndComments(t *testing.T) {
	input := "# comment line\n--name \"John Q\"\n\n# another comment\n  --verbose  \n"
	got, err := ReadArgs(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadArgs: %v", err)
	}
	if want := "--name \"John Q\"\n--verbose"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestReadArgs_Empty(t *testing.T) {
	got, err := ReadArgs(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadArgs: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty args, got %q", got)
	}
}

func TestReadArgs_StopsOnCtrlZ(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"alone", "\x1A", ""},
		{"mid input", "--before\x1A--after\n", "--before"},
		{"caret alone", "^Z\n--after\n", ""},
		{"caret mid input", "--a 1\n--b 2^Z --c 3\n--d 4\n", "--a 1\n--b 2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ReadArgs(strings.NewReader(c.input))
			if err != nil {
				t.Fatalf("ReadArgs: %v", err)
			}
			if got != c.want {
				t.Fatalf("expected %q, got %q", c.want, got)
			}
		})
	}
}
