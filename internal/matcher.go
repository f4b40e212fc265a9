package internal

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchMode selects how pattern strings are interpreted. One mode applies
// uniformly to all four pattern slots.
type MatchMode string

const (
	MatchExact     MatchMode = "exact"
	MatchSubstring MatchMode = "substring"
	MatchRegex     MatchMode = "regex"
)

func (m MatchMode) Valid() bool {
	switch m {
	case MatchExact, MatchSubstring, MatchRegex:
		return true
	}
	return false
}

// Matcher - fast interface for one compiled pattern.
type Matcher interface {
	Match(string) bool
	Desc() string // for logs
}

// ExactMatcher matches on full string equality, case-sensitive.
type ExactMatcher struct{ s string }

func (m *ExactMatcher) Match(s string) bool { return s == m.s }
func (m *ExactMatcher) Desc() string        { return "exact:" + m.s }

// SubstringMatcher matches case-insensitively; the pattern is lowercased
// once at construction.
type SubstringMatcher struct{ s string }

func (m *SubstringMatcher) Match(s string) bool {
	return strings.Contains(strings.ToLower(s), m.s)
}
func (m *SubstringMatcher) Desc() string { return "substring:" + m.s }

// RegexMatcher searches unanchored.
type RegexMatcher struct{ re *regexp.Regexp }

func (m *RegexMatcher) Match(s string) bool { return m.re.MatchString(s) }
func (m *RegexMatcher) Desc() string        { return "re:" + m.re.String() }

// NewMatcher compiles one pattern slot. An empty pattern means "no filter"
// and yields nil. An invalid regex is a configuration error.
func NewMatcher(mode MatchMode, pattern string) (Matcher, error) {
	if pattern == "" {
		return nil, nil
	}
	switch mode {
	case MatchExact:
		return &ExactMatcher{s: pattern}, nil
	case MatchSubstring:
		return &SubstringMatcher{s: strings.ToLower(pattern)}, nil
	case MatchRegex:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
		}
		return &RegexMatcher{re: re}, nil
	}
	return nil, fmt.Errorf("unknown match mode %q", mode)
}

func desc(m Matcher) string {
	if m == nil {
		return "<none>"
	}
	return m.Desc()
}

// PathFilter applies the include/exclude algebra to relative paths:
// pass = (no include OR include matches) AND NOT (exclude matches).
type PathFilter struct {
	mode    MatchMode
	include Matcher
	exclude Matcher
}

func NewPathFilter(mode MatchMode, includePat, excludePat string) (*PathFilter, error) {
	inc, err := NewMatcher(mode, includePat)
	if err != nil {
		return nil, err
	}
	exc, err := NewMatcher(mode, excludePat)
	if err != nil {
		return nil, err
	}
	return &PathFilter{mode: mode, include: inc, exclude: exc}, nil
}

// matches runs one matcher against a candidate. Exact mode accepts either
// the bare file name or the full relative path; substring and regex test
// the relative path alone.
func (f *PathFilter) matches(m Matcher, rel, name string) bool {
	if f.mode == MatchExact {
		return m.Match(rel) || m.Match(name)
	}
	return m.Match(rel)
}

// Allow reports whether a candidate passes the path stage.
func (f *PathFilter) Allow(rel, name string) bool {
	if f.include != nil && !f.matches(f.include, rel, name) {
		return false
	}
	if f.exclude != nil && f.matches(f.exclude, rel, name) {
		return false
	}
	return true
}
