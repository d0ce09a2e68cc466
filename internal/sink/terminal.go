package sink

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Geun-Oh/logview/internal/entry"
)

var (
	stackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	levelStyles = map[entry.Level]lipgloss.Style{
		entry.LevelEmergency: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
		entry.LevelAlert:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("199")),
		entry.LevelCritical:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		entry.LevelError:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
		entry.LevelWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		entry.LevelNotice:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		entry.LevelInfo:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		entry.LevelDebug:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

// LevelStyle returns the lipgloss style used for a level's badge.
func LevelStyle(l entry.Level) lipgloss.Style {
	if s, ok := levelStyles[l]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// TerminalSink writes log entries to a terminal with optional color.
type TerminalSink struct {
	w          io.Writer
	color      bool
	hideStacks bool
}

// NewTerminalSink creates a sink that writes to the given writer.
// If color is true, level badges and stacks are styled with lipgloss.
func NewTerminalSink(w io.Writer, color bool) *TerminalSink {
	if w == nil {
		w = os.Stdout
	}
	return &TerminalSink{w: w, color: color}
}

// HideStacks limits output to entry headers.
func (s *TerminalSink) HideStacks(hide bool) *TerminalSink {
	s.hideStacks = hide
	return s
}

// Write outputs a formatted log entry. Without color the output is the
// entry's original text.
func (s *TerminalSink) Write(e *entry.LogEntry) error {
	var sb strings.Builder

	if s.color {
		badge := fmt.Sprintf("%-9s", strings.ToUpper(e.Level().String()))
		sb.WriteString(LevelStyle(e.Level()).Render(badge))
		sb.WriteByte(' ')
	}
	sb.WriteString(e.Header())
	sb.WriteByte('\n')

	if e.HasStack() && !s.hideStacks {
		stack := e.Stack()
		if s.color {
			stack = stackStyle.Render(stack)
		}
		sb.WriteString(stack)
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(s.w, sb.String())
	return err
}

// Flush is a no-op for terminal output.
func (s *TerminalSink) Flush() error { return nil }

// Close is a no-op for terminal output.
func (s *TerminalSink) Close() error { return nil }

// Name returns the sink identifier.
func (s *TerminalSink) Name() string { return "terminal" }
