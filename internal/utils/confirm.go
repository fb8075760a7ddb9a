// Package utils provides utility functions.
package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConfirmReader prompts with msg on out and reads a y/n answer from in.
// Anything other than y or yes, including end of input, is a no.
func ConfirmReader(msg string, in io.Reader, out io.Writer) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", msg)
	r := bufio.NewReader(in)
	line, _ := r.ReadString('\n')
	resp := strings.TrimSpace(strings.ToLower(line))
	return resp == "y" || resp == "yes"
}
