package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherIsIgnored(t *testing.T) {
	m, err := NewMatcher([]string{"*.log", "node_modules", ".git"})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"/tmp/x/debug.log", true},
		{"/tmp/x/nested/deep/trace.log", true},
		{"/tmp/x/node_modules", true},
		{"/tmp/x/.git", true},
		{"/tmp/x/app.css", false},
		{"/tmp/x/logbook.txt", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, m.IsIgnored(tt.path), tt.path)
	}
}

func TestMatcherSkipsBlankAndCommentEntries(t *testing.T) {
	m, err := NewMatcher([]string{"", "  ", "# a comment", "*.tmp"})
	require.NoError(t, err)

	assert.True(t, m.IsIgnored("/tmp/x/scratch.tmp"))
	assert.False(t, m.IsIgnored("/tmp/x/# a comment"))
}

func TestMatcherRejectsInvalidPattern(t *testing.T) {
	_, err := NewMatcher([]string{"[unterminated"})
	assert.Error(t, err)
}

func TestMatcherEmptyIgnoresNothing(t *testing.T) {
	m, err := NewMatcher(nil)
	require.NoError(t, err)
	assert.False(t, m.IsIgnored("/tmp/x/anything.at.all"))
}

func TestNilMatcherIgnoresNothing(t *testing.T) {
	var m *Matcher
	assert.False(t, m.IsIgnored("/tmp/x/app.css"))
}
