package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Geun-Oh/logview/internal/sink"
)

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(1).
			PaddingRight(1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#353533"))

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			PaddingRight(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600")).
			PaddingRight(1)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// View renders the browser.
func (m Model) View() string {
	var sb strings.Builder

	// Title bar.
	title := titleStyle.Render(fmt.Sprintf(" logview — %s ", m.source))
	info := statusBarStyle.Render(fmt.Sprintf(" page %d/%d  %d entries ", m.page.CurrentPage, m.page.LastPage(), m.page.Total))
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(info), 0)
	sb.WriteString(title + statusBarStyle.Render(strings.Repeat(" ", gap)) + info)
	sb.WriteString("\n")

	// Level tabs.
	for i, node := range m.tree {
		label := fmt.Sprintf("%s(%d)", node.Name, node.Count)
		if i == m.levelIdx {
			sb.WriteString(activeTabStyle.Render("[" + label + "]"))
		} else {
			sb.WriteString(tabStyle.Render(" " + label + " "))
		}
	}
	sb.WriteString("\n")

	if m.mode == ModeSearch {
		sb.WriteString(" / " + m.search.View())
		sb.WriteString("\n")
	}

	// Entries.
	if len(m.page.Items) == 0 {
		sb.WriteString(dimStyle.Render("  no entries"))
		sb.WriteString("\n")
	}
	for i, e := range m.page.Items {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("› ")
		}
		badge := sink.LevelStyle(e.Level()).Render(fmt.Sprintf("%-9s", strings.ToUpper(e.Level().String())))
		sb.WriteString(marker + badge + " " + truncate(e.Header(), m.width-13))
		if e.HasStack() && !m.expanded[m.page.From()+i] {
			sb.WriteString(dimStyle.Render(" +"))
		}
		sb.WriteString("\n")

		if e.HasStack() && m.expanded[m.page.From()+i] {
			for _, line := range strings.Split(e.Stack(), "\n") {
				sb.WriteString(dimStyle.Render("    " + truncate(line, m.width-4)))
				sb.WriteString("\n")
			}
		}
	}

	// Status bar.
	statusLine := fmt.Sprintf(" %d-%d of %d", m.page.From(), m.page.To(), m.page.Total)
	if m.query != "" {
		statusLine += fmt.Sprintf(" │ search: %q", m.query)
	}
	if m.status != "" {
		statusLine += " │ " + m.status
	}
	sb.WriteString(statusBarStyle.Render(padRight(statusLine, m.width)))
	sb.WriteString("\n")

	sb.WriteString(helpStyle.Render(" [tab]Level  [n/p]Page  [↑↓]Move  [enter]Stack  [/]Search  [esc]Clear  [q]Quit"))
	return sb.String()
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
