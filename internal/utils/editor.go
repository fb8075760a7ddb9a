package utils

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// OpenEditor opens the given file in the user's preferred editor.
// It respects the $EDITOR environment variable. On Windows if $EDITOR is not set,
// it falls back to notepad; on Unix it falls back to vi.
func OpenEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		if runtime.GOOS == "windows" {
			editor = "notepad"
		} else {
			editor = "vi"
		}
	}
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open editor: %w", err)
	}
	return nil
}

// EditText writes initial to a temporary file, opens it in the editor and
// returns the saved contents with trailing newlines removed. Lines starting
// with '#' are dropped.
func EditText(initial, header string) (string, error) {
	tmpf, err := os.CreateTemp("", "smenu-args-*.txt")
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(tmpf.Name()) }()

	var b strings.Builder
	for _, l := range strings.Split(strings.TrimRight(header, "\n"), "\n") {
		if l != "" {
			b.WriteString("# " + l + "\n")
		}
	}
	b.WriteString(initial)
	if initial != "" && !strings.HasSuffix(initial, "\n") {
		b.WriteString("\n")
	}
	if _, err := tmpf.WriteString(b.String()); err != nil {
		_ = tmpf.Close()
		return "", err
	}
	if err := tmpf.Close(); err != nil {
		return "", err
	}

	if err := OpenEditor(tmpf.Name()); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpf.Name())
	if err != nil {
		return "", err
	}
	var kept []string
	for _, l := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		if strings.HasPrefix(strings.TrimSpace(l), "#") {
			continue
		}
		kept = append(kept, l)
	}
	return strings.TrimRight(strings.Join(kept, "\n"), "\n"), nil
}
