// Package parser splits raw log text into typed log entries.
package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// builtinPatterns provides commonly used Grok-style named patterns.
var builtinPatterns = map[string]string{
	"WORD":       `\w+`,
	"INT":        `[+-]?\d+`,
	"NOTSPACE":   `\S+`,
	"DATA":       `.*?`,
	"GREEDYDATA": `.*`,
	"DATE":       `\d{4}-\d{2}-\d{2}`,
	"TIMESTAMP":  `\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:?\d{2})?`,
	"CHANNEL":    `[\w-]+(?:\.[\w-]+)*?`,
	"LEVELTOKEN": `[A-Za-z]+`,
	"LOGLEVEL":   `(?i:EMERGENCY|EMERG|ALERT|CRITICAL|CRIT|ERROR|ERR|WARNING|WARN|NOTICE|INFO|DEBUG)`,
	"UUID":       `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
}

// DefaultPattern recognizes headers such as
// "[2024-01-01 00:00:00] production.ERROR: message".
const DefaultPattern = `^\[%{TIMESTAMP:datetime}\] %{CHANNEL:channel}\.%{LEVELTOKEN:level}:`

// levelField is the capture name holding the severity token.
const levelField = "level"

var grokToken = regexp.MustCompile(`%\{(\w+)(?::(\w+))?\}`)

// Grammar is a compiled entry-header pattern.
// Pattern format: regular expression text mixed with %{PATTERN_NAME:capture_name}.
// Example: `^\[%{TIMESTAMP:datetime}\] %{CHANNEL:channel}\.%{LEVELTOKEN:level}:`
type Grammar struct {
	pattern    string
	regex      *regexp.Regexp
	levelIndex int
}

// CompileGrammar compiles a Grok pattern string into a header grammar.
func CompileGrammar(pattern string) (*Grammar, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("header pattern is empty")
	}

	regexStr, err := compileGrokPattern(pattern)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(regexStr)
	if err != nil {
		return nil, fmt.Errorf("compiled grok regex invalid: %w (regex: %s)", err, regexStr)
	}

	return &Grammar{
		pattern:    pattern,
		regex:      re,
		levelIndex: re.SubexpIndex(levelField),
	}, nil
}

// Match reports whether line is an entry header. The returned token is the
// text captured as "level", or "" when the grammar has no such capture.
func (g *Grammar) Match(line string) (token string, ok bool) {
	if g.levelIndex < 0 {
		return "", g.regex.MatchString(line)
	}
	m := g.regex.FindStringSubmatchIndex(line)
	if m == nil {
		return "", false
	}
	if start, end := m[2*g.levelIndex], m[2*g.levelIndex+1]; start >= 0 {
		token = line[start:end]
	}
	return token, true
}

// HasLevelField reports whether the grammar captures the severity token.
func (g *Grammar) HasLevelField() bool {
	return g.levelIndex >= 0
}

// Pattern returns the original Grok pattern string.
func (g *Grammar) Pattern() string {
	return g.pattern
}

// compileGrokPattern converts a Grok pattern to a Go regex with named groups.
// %{PATTERN_NAME:field_name} → (?P<field_name>regex_for_PATTERN_NAME)
// %{PATTERN_NAME} → (?:regex_for_PATTERN_NAME)
func compileGrokPattern(pattern string) (string, error) {
	var unknown string
	result := grokToken.ReplaceAllStringFunc(pattern, func(tok string) string {
		m := grokToken.FindStringSubmatch(tok)
		builtinRegex, ok := builtinPatterns[m[1]]
		if !ok {
			if unknown == "" {
				unknown = m[1]
			}
			return tok
		}
		if m[2] != "" {
			return fmt.Sprintf("(?P<%s>%s)", m[2], builtinRegex)
		}
		return fmt.Sprintf("(?:%s)", builtinRegex)
	})
	if unknown != "" {
		return "", fmt.Errorf("unknown grok pattern: %s", unknown)
	}
	return result, nil
}
