package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/VoxDroid/smenu/internal/executor"
	"github.com/VoxDroid/smenu/internal/registry"
	"github.com/VoxDroid/smenu/internal/resolver"
	modelpkg "github.com/VoxDroid/smenu/internal/tui/model"
)

type fakeStore struct{ recs []registry.Record }

func (f *fakeStore) ListCommands(context.Context) ([]registry.Record, error) { return f.recs, nil }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// newLoaded returns a sized model whose list has been populated.
func newLoaded(t *testing.T, recs ...registry.Record) (*TuiModel, *modelpkg.UIModel) {
	t.Helper()
	res := resolver.New(resolver.Options{DefaultRoot: t.TempDir(), Shell: "sh"})
	uiModel := modelpkg.New(&fakeStore{recs: recs}, res, &executor.Executor{}, nil)
	m := NewModel(uiModel)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	cmd := m.Init()
	require.NotNil(t, cmd)
	m.Update(cmd())
	return m, uiModel
}

func TestInitLoadsRecordsInOrder(t *testing.T) {
	m, _ := newLoaded(t,
		registry.Record{ID: 1, Key: "1", Label: "Backup", Kind: "shell", ProgramPath: "/x.sh"},
		registry.Record{ID: 2, Key: "2", Label: "Report", Kind: "python", ProgramPath: "/r.py"},
	)
	items := m.list.Items()
	require.Len(t, items, 2)
	require.Equal(t, "1. Backup", items[0].(recordItem).Title())
	require.Contains(t, m.View(), "Report")
}

func TestQuitKeys(t *testing.T) {
	m, _ := newLoaded(t)
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		require.True(t, ok, "%s should quit", k)
	}
}

func TestDetailToggleShowsInvocation(t *testing.T) {
	m, _ := newLoaded(t, registry.Record{ID: 1, Key: "1", Label: "Backup", Kind: "shell", ProgramPath: "/opt/backup.sh", Args: "--full"})
	m.Update(runes("d"))
	require.True(t, m.showDetail)
	view := m.View()
	require.Contains(t, view, "details")
	require.Contains(t, view, "/opt/backup.sh --full")

	m.Update(runes("d"))
	require.False(t, m.showDetail)
	require.Contains(t, m.View(), "status log")
}

func TestStatusLinesAreSanitized(t *testing.T) {
	m, _ := newLoaded(t)
	m.Update(StatusLine("\x1b]0;title\x07started\t1. Backup"))
	require.Equal(t, []string{"started    1. Backup"}, m.logs)

	for i := 0; i < maxLogLines+5; i++ {
		m.Update(StatusLine("line"))
	}
	require.Len(t, m.logs, maxLogLines)
}

func TestEnterOnUnresolvableRecordReportsError(t *testing.T) {
	m, _ := newLoaded(t, registry.Record{ID: 1, Key: "1", Label: "Odd", Kind: "perl", ProgramPath: "x.pl"})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.False(t, m.running)
	require.Contains(t, m.message, "perl")
}

func TestEnterLaunchesAndRunDoneReports(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "ok.sh")
	require.NoError(t, os.WriteFile(script, []byte("exit 0\n"), 0o644))
	rec := registry.Record{ID: 1, Key: "1", Label: "Ok", Kind: "shell", ProgramPath: script, WorkingDir: dir}
	m, uiModel := newLoaded(t, rec)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, m.running)

	// A second enter while running is ignored.
	_, again := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, again)

	run, err := uiModel.Prepare(context.Background(), rec, executor.Stdio{})
	require.NoError(t, err)
	_, cmd = m.Update(runDoneMsg{run: run})
	require.False(t, m.running)
	require.Equal(t, "1. Ok exited with status 0", m.message)
	require.NotNil(t, cmd, "a finished run reloads the list")
}

func TestWrapText(t *testing.T) {
	require.Equal(t, []string{"alpha beta", "gamma"}, wrapText("alpha beta gamma", 10))
	require.Equal(t, []string{"supercalifragilistic"}, wrapText("supercalifragilistic", 5))
	require.Equal(t, "a b\nc", wrapBlock("a b c\n", 3))
	require.True(t, strings.HasPrefix(wrapBlock("x", 0), "x"))
}
