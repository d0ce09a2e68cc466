package parser

import (
	"regexp"

	"github.com/Geun-Oh/logview/internal/entry"
)

// levelWord finds a severity word anywhere in a header. Used when the header
// grammar has no "level" capture.
var levelWord = regexp.MustCompile(`(?i)\b(EMERGENCY|EMERG|ALERT|CRITICAL|CRIT|ERROR|ERR|WARNING|WARN|NOTICE|INFO|DEBUG)\b`)

// Classifier maps header severity tokens to levels of a configured set.
// Unrecognized tokens map to entry.LevelUnknown.
type Classifier struct {
	levels entry.Levels
}

// NewClassifier creates a classifier for the given level set.
func NewClassifier(levels entry.Levels) Classifier {
	return Classifier{levels: levels}
}

// Classify maps a severity token, e.g. "ERROR" or "[warning]".
func (c Classifier) Classify(token string) entry.Level {
	return c.levels.Classify(token)
}

// Detect extracts the first severity word from a header line.
func (c Classifier) Detect(header string) entry.Level {
	match := levelWord.FindString(header)
	if match == "" {
		return entry.LevelUnknown
	}
	return c.Classify(match)
}
