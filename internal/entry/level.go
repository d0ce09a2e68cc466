package entry

import (
	"fmt"
	"slices"
	"strings"
)

// Level represents log severity levels, ordered from most to least severe.
// The zero value is LevelUnknown.
type Level int

const (
	LevelUnknown Level = iota
	LevelEmergency
	LevelAlert
	LevelCritical
	LevelError
	LevelWarning
	LevelNotice
	LevelInfo
	LevelDebug
)

// levelCount is the size of a counter array indexed by Level.
const levelCount = int(LevelDebug) + 1

// Keys used by stats and tree output that are not levels themselves.
const (
	KeyAll     = "all"
	KeyUnknown = "unknown"
)

var levelNames = [levelCount]string{
	LevelUnknown:   KeyUnknown,
	LevelEmergency: "emergency",
	LevelAlert:     "alert",
	LevelCritical:  "critical",
	LevelError:     "error",
	LevelWarning:   "warning",
	LevelNotice:    "notice",
	LevelInfo:      "info",
	LevelDebug:     "debug",
}

// String returns the lower-cased canonical level name.
func (l Level) String() string {
	if l < 0 || int(l) >= levelCount {
		return KeyUnknown
	}
	return levelNames[l]
}

// Known reports whether l is one of the eight severities.
func (l Level) Known() bool {
	return l > LevelUnknown && int(l) < levelCount
}

// MoreSevereThan reports whether l ranks above other. Unknown ranks below
// every known level.
func (l Level) MoreSevereThan(other Level) bool {
	if !l.Known() {
		return false
	}
	if !other.Known() {
		return true
	}
	return l < other
}

// AllLevels returns the eight known levels, most severe first.
func AllLevels() []Level {
	return []Level{
		LevelEmergency, LevelAlert, LevelCritical, LevelError,
		LevelWarning, LevelNotice, LevelInfo, LevelDebug,
	}
}

// ParseLevel converts a severity token to a Level. Case-insensitive and
// tolerant of surrounding punctuation, e.g. "[ERROR]" or "error:".
func ParseLevel(s string) Level {
	token := strings.ToLower(strings.Trim(s, " \t[](){}<>:;.,|\"'"))
	switch token {
	case "emergency", "emerg":
		return LevelEmergency
	case "alert":
		return LevelAlert
	case "critical", "crit":
		return LevelCritical
	case "error", "err":
		return LevelError
	case "warning", "warn":
		return LevelWarning
	case "notice":
		return LevelNotice
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelUnknown
	}
}

// Levels is the configured set of recognized levels plus their display
// labels. A known level missing from the set classifies as LevelUnknown.
type Levels struct {
	order  []Level
	labels map[string]string
}

// DefaultLevels recognizes all eight levels with no display labels.
func DefaultLevels() Levels {
	return Levels{order: AllLevels()}
}

// NewLevels builds a level set from level keys and an optional table of
// display labels keyed by level key, "all" or "unknown". The resulting order
// is always the canonical severity order, regardless of input order.
func NewLevels(keys []string, labels map[string]string) (Levels, error) {
	var order []Level
	for _, k := range keys {
		l := ParseLevel(k)
		if !l.Known() {
			return Levels{}, fmt.Errorf("unknown level %q", k)
		}
		if !slices.Contains(order, l) {
			order = append(order, l)
		}
	}
	if len(order) == 0 {
		order = AllLevels()
	}
	slices.Sort(order)

	var copied map[string]string
	if len(labels) > 0 {
		copied = make(map[string]string, len(labels))
		for k, v := range labels {
			copied[strings.ToLower(k)] = v
		}
	}
	return Levels{order: order, labels: copied}, nil
}

// IsZero reports whether ls is the zero value.
func (ls Levels) IsZero() bool {
	return len(ls.order) == 0
}

// List returns the recognized levels, most severe first.
func (ls Levels) List() []Level {
	if ls.IsZero() {
		return AllLevels()
	}
	return slices.Clone(ls.order)
}

// Contains reports whether l is recognized by this set.
func (ls Levels) Contains(l Level) bool {
	if ls.IsZero() {
		return l.Known()
	}
	return slices.Contains(ls.order, l)
}

// Classify maps a severity token to a level of this set.
func (ls Levels) Classify(token string) Level {
	l := ParseLevel(token)
	if !ls.Contains(l) {
		return LevelUnknown
	}
	return l
}

// Label returns the display label for a key ("all", "unknown" or a level
// name), or the key itself when no label is configured.
func (ls Levels) Label(key string) string {
	if v, ok := ls.labels[key]; ok && v != "" {
		return v
	}
	return key
}
