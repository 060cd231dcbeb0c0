package patterns

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher holds compiled ignore patterns for the watch tree
type Matcher struct {
	ignorePatterns []glob.Glob
}

// NewMatcher compiles the given glob patterns. Blank entries and entries
// starting with '#' are skipped. A nil or empty pattern list ignores
// nothing.
func NewMatcher(ignore []string) (*Matcher, error) {
	m := &Matcher{
		ignorePatterns: make([]glob.Glob, 0, len(ignore)),
	}

	for _, pattern := range ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" || strings.HasPrefix(pattern, "#") {
			continue
		}

		// Normalize pattern: use forward slashes
		pattern = filepath.ToSlash(pattern)

		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		m.ignorePatterns = append(m.ignorePatterns, g)
	}

	return m, nil
}

// IsIgnored checks if a path matches any ignore pattern. Patterns are
// matched against the slash-normalized path and against the bare filename.
func (m *Matcher) IsIgnored(path string) bool {
	if m == nil {
		return false
	}

	normalizedPath := filepath.ToSlash(path)

	for _, pattern := range m.ignorePatterns {
		if pattern.Match(normalizedPath) {
			return true
		}
		if pattern.Match(filepath.Base(normalizedPath)) {
			return true
		}
	}

	return false
}
