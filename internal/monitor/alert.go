package monitor

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/Geun-Oh/logview/internal/entry"
)

// AlertRule counts entries whose header matches Pattern. When Level is
// known, only entries of that level are considered.
type AlertRule struct {
	Name    string
	Level   entry.Level
	Pattern *regexp.Regexp
	Count   int
}

// AlertEngine evaluates log entries against a set of alert rules.
type AlertEngine struct {
	mu    sync.Mutex
	rules []*AlertRule
}

// NewAlertEngine compiles rule specs of the form "pattern" or
// "level:pattern", e.g. "error:SQLSTATE\[\w+\]".
func NewAlertEngine(specs []string) (*AlertEngine, error) {
	engine := &AlertEngine{}
	for _, spec := range specs {
		rule, err := parseRule(spec)
		if err != nil {
			return nil, err
		}
		engine.rules = append(engine.rules, rule)
	}
	return engine, nil
}

func parseRule(spec string) (*AlertRule, error) {
	level := entry.LevelUnknown
	pattern := spec
	if prefix, rest, ok := strings.Cut(spec, ":"); ok {
		if l := entry.ParseLevel(prefix); l.Known() && strings.EqualFold(prefix, l.String()) {
			level = l
			pattern = rest
		}
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid alert pattern %q: %w", spec, err)
	}
	return &AlertRule{Name: spec, Level: level, Pattern: re}, nil
}

// Check evaluates an entry against all rules. Returns matched rule names.
func (e *AlertEngine) Check(le *entry.LogEntry) []string {
	if e == nil || len(e.rules) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var triggered []string
	for _, r := range e.rules {
		if r.Level.Known() && r.Level != le.Level() {
			continue
		}
		if r.Pattern.MatchString(le.Header()) {
			r.Count++
			triggered = append(triggered, r.Name)
		}
	}
	return triggered
}

// Summary returns a formatted summary of alert counts.
func (e *AlertEngine) Summary() string {
	if e == nil {
		return ""
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.rules) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("── Alerts ──\n")
	for _, r := range e.rules {
		sb.WriteString(fmt.Sprintf("  %-30s %d hits\n", r.Name, r.Count))
	}
	sb.WriteString("────────────")
	return sb.String()
}

// TotalAlerts returns the total number of alerts triggered.
func (e *AlertEngine) TotalAlerts() int {
	if e == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0
	for _, r := range e.rules {
		total += r.Count
	}
	return total
}
