package shellwords

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank", " \t\n ", []string{}},
		{"plain", "a b  c", []string{"a", "b", "c"}},
		{"double quoted group", `--name "John Q" --verbose`, []string{"--name", "John Q", "--verbose"}},
		{"single quoted literal", `'a "b" \n'`, []string{`a "b" \n`}},
		{"adjacent segments join", `--name="John Q"x`, []string{"--name=John Qx"}},
		{"escaped space", `foo\ bar baz`, []string{"foo bar", "baz"}},
		{"escape inside double quotes", `"say \"hi\" \d"`, []string{`say "hi" \d`}},
		{"newlines separate words", "--a 1\n--b 2", []string{"--a", "1", "--b", "2"}},
		{"line continuation", "--a \\\n1", []string{"--a", "1"}},
		{"empty quoted word", `a '' b`, []string{"a", "", "b"}},
		{"no expansion", `$HOME *.py`, []string{"$HOME", "*.py"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.in)
			if err != nil {
				t.Fatalf("Split(%q): %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Split(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{`"open`, ErrUnterminatedQuote},
		{`'open`, ErrUnterminatedQuote},
		{`trailing\`, ErrTrailingEscape},
	}
	for _, tt := range tests {
		_, err := Split(tt.in)
		if !errors.Is(err, tt.want) {
			t.Fatalf("Split(%q): expected %v, got %v", tt.in, tt.want, err)
		}
	}
}

func TestJoinSplitRoundTrip(t *testing.T) {
	cases := [][]string{
		{"python3", "/opt/scripts/run me.py", "--name", "John Q"},
		{"it's", `"quoted"`, "$HOME", ""},
		{"tab\there", "back\\slash"},
	}
	for _, words := range cases {
		joined := Join(words...)
		got, err := Split(joined)
		if err != nil {
			t.Fatalf("Split(Join(%q)) = %q: %v", words, joined, err)
		}
		if diff := cmp.Diff(words, got); diff != "" {
			t.Fatalf("round trip mismatch for %q (-want +got):\n%s", joined, diff)
		}
	}
}
