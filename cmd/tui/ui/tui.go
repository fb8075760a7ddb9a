// Package ui is the Bubble Tea front end: a filterable list of menu records,
// a pane showing the live status log or the selected record's details, and
// launches that hand the terminal to the child until it exits.
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/VoxDroid/smenu/internal/executor"
	modelpkg "github.com/VoxDroid/smenu/internal/tui/model"
	"github.com/VoxDroid/smenu/internal/tui/sanitize"
)

// maxLogLines bounds the status pane's scrollback.
const maxLogLines = 500

// TuiModel is the Bubble Tea model used by `smenu tui`.
type TuiModel struct {
	uiModel *modelpkg.UIModel
	list    list.Model
	vp      viewport.Model

	width  int
	height int

	showDetail bool
	running    bool
	logs       []string
	// message is the one-line footer status (last error or run result).
	message string
}

// Messages
type statusLineMsg string
type refreshedMsg struct{ err error }
type runDoneMsg struct {
	run *modelpkg.Run
	err error
}

// NewModel builds the TUI model over ui. Call Init (or let the program do
// it) to load the records.
func NewModel(ui *modelpkg.UIModel) *TuiModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "smenu"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &TuiModel{uiModel: ui, list: l, vp: viewport.New(0, 0)}
}

// NewProgram constructs the tea.Program for the TUI.
func NewProgram(ui *modelpkg.UIModel) *tea.Program {
	return tea.NewProgram(NewModel(ui), tea.WithAltScreen())
}

// StatusLine returns the message that appends line to the status pane. Send
// it through tea.Program.Send.
func StatusLine(line string) tea.Msg { return statusLineMsg(line) }

func (m *TuiModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *TuiModel) refresh() tea.Cmd {
	ui := m.uiModel
	return func() tea.Msg {
		return refreshedMsg{err: ui.RefreshList(context.Background())}
	}
}

func (m *TuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case refreshedMsg:
		if msg.err != nil {
			m.message = "reload failed: " + msg.err.Error()
			return m, nil
		}
		m.setItems()
		m.syncPane()
		return m, nil

	case statusLineMsg:
		m.appendLog(string(msg))
		return m, nil

	case runDoneMsg:
		m.running = false
		code, err := m.uiModel.Finish(msg.run, msg.err)
		if err != nil {
			m.message = err.Error()
		} else {
			m.message = fmt.Sprintf("%s exited with status %d", msg.run.Title(), code)
		}
		return m, m.refresh()

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			return m, m.launchSelected()
		case "r":
			return m, m.refresh()
		case "d":
			m.showDetail = !m.showDetail
			m.syncPane()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.syncPane()
	return m, cmd
}

// launchSelected prepares the selected record and suspends the UI while the
// child runs. Only one child runs at a time.
func (m *TuiModel) launchSelected() tea.Cmd {
	if m.running {
		return nil
	}
	it, ok := m.list.SelectedItem().(recordItem)
	if !ok {
		return nil
	}
	run, err := m.uiModel.Prepare(context.Background(), it.rec, executor.Stdio{})
	if err != nil {
		m.message = err.Error()
		return nil
	}
	m.running = true
	m.message = "running " + run.Title()
	return tea.ExecProcess(run.Cmd, func(err error) tea.Msg {
		return runDoneMsg{run: run, err: err}
	})
}

func (m *TuiModel) setItems() {
	recs := m.uiModel.ListCached()
	items := make([]list.Item, 0, len(recs))
	for _, r := range recs {
		items = append(items, recordItem{rec: r})
	}
	m.list.SetItems(items)
}

func (m *TuiModel) appendLog(line string) {
	m.logs = append(m.logs, sanitize.Line(line))
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
	if !m.showDetail {
		m.syncPane()
		m.vp.GotoBottom()
	}
}

// syncPane fills the right pane with the status log or the selected
// record's details.
func (m *TuiModel) syncPane() {
	if m.showDetail {
		if it, ok := m.list.SelectedItem().(recordItem); ok {
			m.vp.SetContent(wrapBlock(m.uiModel.Describe(it.rec), m.vp.Width))
			return
		}
		m.vp.SetContent("no record selected")
		return
	}
	m.vp.SetContent(joinLines(m.logs))
}

func (m *TuiModel) resize(w, h int) {
	m.width, m.height = w, h
	left := w / 2
	m.list.SetSize(left, max(h-2, 1))
	m.vp.Width = max(w-left-4, 1)
	m.vp.Height = max(h-4, 1)
	m.syncPane()
}

// Run starts the program and feeds it lines from lines until the program
// exits or lines is closed. Cancelling ctx quits the program.
func Run(ctx context.Context, p *tea.Program, lines <-chan string) error {
	go func() {
		for {
			select {
			case <-ctx.Done():
				p.Quit()
				return
			case line, ok := <-lines:
				if !ok {
					return
				}
				p.Send(StatusLine(line))
			}
		}
	}()
	_, err := p.Run()
	return err
}
