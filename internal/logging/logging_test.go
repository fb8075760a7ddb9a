package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_LevelFollowsVerbose(t *testing.T) {
	var quiet, loud bytes.Buffer

	q := New(false, &quiet)
	q.Debug("probe", zap.String("path", "/tmp/x.db"))
	q.Warn("column missing", zap.String("column", "args"))
	_ = q.Sync()

	l := New(true, &loud)
	l.Debug("probe", zap.String("path", "/tmp/x.db"))
	_ = l.Sync()

	if strings.Contains(quiet.String(), "probe") {
		t.Fatalf("debug output without verbose: %q", quiet.String())
	}
	if !strings.Contains(quiet.String(), "column missing") || !strings.Contains(quiet.String(), "warn") {
		t.Fatalf("expected warning line, got %q", quiet.String())
	}
	if !strings.Contains(loud.String(), `"path": "/tmp/x.db"`) {
		t.Fatalf("expected debug fields with verbose, got %q", loud.String())
	}
}
