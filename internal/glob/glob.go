// Package glob implements shell-style pattern matching: translating a
// glob pattern (`*`, `?`, literal characters) into a case-insensitive
// matcher over entry names, and projecting matches into a virtual
// directory of results. Built directly on regexp; see DESIGN.md for
// the rationale.
package glob

import (
	"regexp"
	"strings"

	"github.com/jvanrhyn/diskwalk/internal/tree"
)

// Matcher tests entry names against a compiled glob pattern.
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// Compile translates pattern into a Matcher. `*` matches any run of
// characters, `?` matches exactly one, everything else is matched
// literally (including characters regexp would otherwise treat as
// metacharacters).
func Compile(pattern string) (*Matcher, error) {
	re, err := regexp.Compile("(?i)^" + translate(pattern) + "$")
	if err != nil {
		return nil, err
	}
	return &Matcher{pattern: pattern, re: re}, nil
}

func translate(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}

// Pattern returns the original, uncompiled pattern string.
func (m *Matcher) Pattern() string { return m.pattern }

// Match reports whether name satisfies the pattern.
func (m *Matcher) Match(name string) bool {
	return m.re.MatchString(name)
}

// FindAll walks the subtree rooted at root and returns every entry
// whose Name matches the pattern, depth-first pre-order. This backs
// the virtual directory of matches synthesized on a glob commit.
func (m *Matcher) FindAll(root *tree.Entry) []*tree.Entry {
	var out []*tree.Entry
	tree.Walk(root, func(e *tree.Entry) bool {
		if m.Match(e.Name) {
			out = append(out, e)
		}
		return true
	})
	return out
}
