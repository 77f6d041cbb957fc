// Package matcher compiles glob and regex patterns used to admit reference
// categories. Glob patterns are translated to anchored regular expressions so
// that `*` also spans characters such as `/` that appear in specialty names
// ("Obstetrics/Gynecology").
package matcher

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
)

// RegexPrefix marks a pattern string as a regular expression in Parse.
const RegexPrefix = "re:"

// Matcher is the main interface for pattern matching operations.
type Matcher interface {
	// Match checks if the input matches the pattern
	Match(input string) bool
	// Pattern returns the original pattern string.
	Pattern() string
	// Type returns the pattern type being used.
	Type() PatternType
}

// matcher is the concrete implementation of the Matcher interface.
type matcher struct {
	pattern     string
	patternType PatternType
	compiled    *regexp.Regexp
}

// Options configures the matcher behavior.
type Options struct {
	// CaseInsensitive makes matching case-insensitive
	CaseInsensitive bool
}

// New creates a new Matcher with the specified pattern and type.
func New(patternType PatternType, pattern string, opts ...*Options) (Matcher, error) {
	options := &Options{}
	if len(opts) > 0 && opts[0] != nil {
		options = opts[0]
	}

	var expr string
	switch patternType {
	case Glob:
		expr = GlobToRegex(pattern)
	case Regex:
		expr = pattern
	default:
		return nil, fmt.Errorf("unsupported pattern type: %v", patternType)
	}
	if options.CaseInsensitive && !strings.HasPrefix(expr, "(?i)") {
		expr = "(?i)" + expr
	}

	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
	}

	return &matcher{
		pattern:     pattern,
		patternType: patternType,
		compiled:    compiled,
	}, nil
}

// Parse creates a Matcher from a configuration string. Strings starting with
// RegexPrefix are regular expressions, everything else is a glob.
func Parse(pattern string, opts ...*Options) (Matcher, error) {
	if expr, ok := strings.CutPrefix(pattern, RegexPrefix); ok {
		return New(Regex, expr, opts...)
	}
	return New(Glob, pattern, opts...)
}

// MustNew creates a new Matcher and panics if there's an error.
func MustNew(patternType PatternType, pattern string, opts ...*Options) Matcher {
	m, err := New(patternType, pattern, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Match checks if the input matches the pattern.
func (m *matcher) Match(input string) bool {
	return m.compiled.MatchString(input)
}

// Pattern returns the original pattern string.
func (m *matcher) Pattern() string {
	return m.pattern
}

// Type returns the pattern type being used.
func (m *matcher) Type() PatternType {
	return m.patternType
}

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	default:
		return "unknown"
	}
}

// MultiMatcher matches when any of its patterns matches.
type MultiMatcher struct {
	matchers []Matcher
}

// NewMultiMatcher parses every pattern with Parse.
func NewMultiMatcher(patterns []string, opts ...*Options) (*MultiMatcher, error) {
	mm := &MultiMatcher{
		matchers: make([]Matcher, 0, len(patterns)),
	}

	for _, pattern := range patterns {
		m, err := Parse(pattern, opts...)
		if err != nil {
			return nil, err
		}
		mm.matchers = append(mm.matchers, m)
	}

	return mm, nil
}

// Match returns true if any pattern matches.
func (mm *MultiMatcher) Match(input string) bool {
	for _, m := range mm.matchers {
		if m.Match(input) {
			return true
		}
	}
	return false
}

// Patterns returns the original pattern strings in order.
func (mm *MultiMatcher) Patterns() []string {
	out := make([]string, len(mm.matchers))
	for i, m := range mm.matchers {
		out[i] = m.Pattern()
	}
	return out
}

// Len returns the number of patterns.
func (mm *MultiMatcher) Len() int {
	return len(mm.matchers)
}

// IsGlobPattern checks if a string contains glob metacharacters.
func IsGlobPattern(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[]")
}

// GlobToRegex converts a glob pattern to an anchored regex pattern.
func GlobToRegex(glob string) string {
	var regex strings.Builder
	regex.WriteString("^")

	runes := []rune(glob)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '*':
			regex.WriteString(".*")
		case '?':
			regex.WriteString(".")
		case '[':
			j := i + 1
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				// unterminated class is a literal bracket
				regex.WriteString(regexp.QuoteMeta("["))
				continue
			}
			class := string(runes[i+1 : j])
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			regex.WriteString("[" + class + "]")
			i = j
		case '\\':
			if i+1 < len(runes) {
				i++
				regex.WriteString(regexp.QuoteMeta(string(runes[i])))
			}
		default:
			regex.WriteString(regexp.QuoteMeta(string(runes[i])))
		}
	}

	regex.WriteString("$")
	return regex.String()
}
