package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#5A56E0")).Padding(0, 1)
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5A56E0")).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

const helpText = "enter run • / filter • d details • r reload • pgup/pgdn scroll • q quit"

func (m *TuiModel) View() string {
	header := "status log"
	if m.showDetail {
		header = "details"
	}
	right := paneStyle.Render(headerStyle.Render(header) + "\n" + m.vp.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), right)

	footer := helpText
	if m.message != "" {
		footer = m.message + "  |  " + helpText
	}
	if m.width > 0 {
		footer = runewidth.Truncate(footer, m.width, "…")
	}
	return body + "\n" + footerStyle.Render(footer)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// wrapBlock wraps each line of s to width display cells.
func wrapBlock(s string, width int) string {
	out := []string{}
	for _, para := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		out = append(out, wrapText(para, width)...)
	}
	return strings.Join(out, "\n")
}

// wrapText greedily wraps one paragraph at spaces. Words wider than width
// are kept whole.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var out []string
	cur := words[0]
	for _, w := range words[1:] {
		if runewidth.StringWidth(cur)+1+runewidth.StringWidth(w) > width {
			out = append(out, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	return append(out, cur)
}
