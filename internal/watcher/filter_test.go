package watcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name       string
		paths      []string
		extensions []string
		want       bool
	}{
		{"no allow-list accepts everything", []string{"/tmp/x/app.js"}, nil, true},
		{"empty allow-list accepts everything", []string{"/tmp/x/app.js"}, []string{}, true},
		{"matching extension", []string{"/tmp/x/app.css"}, []string{"css"}, true},
		{"non-matching extension", []string{"/tmp/x/app.js"}, []string{"css"}, false},
		{"second list member matches", []string{"/tmp/x/app.js"}, []string{"css", "js"}, true},
		{"any path may match", []string{"/tmp/x/app.js", "/tmp/x/app.css"}, []string{"css"}, true},
		{"no path matches", []string{"/tmp/x/a.js", "/tmp/x/b.html"}, []string{"css"}, false},
		{"case-sensitive", []string{"/tmp/x/app.CSS"}, []string{"css"}, false},
		{"no extension never matches", []string{"/tmp/x/Makefile"}, []string{"css"}, false},
		{"extension is substring after final dot", []string{"/tmp/x/app.min.css"}, []string{"css"}, true},
		{"dot in directory name is not an extension", []string{"/tmp/x.css/app"}, []string{"css"}, false},
		{"no paths", nil, []string{"css"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Relevant(tt.paths, tt.extensions))
		})
	}
}

func TestRelevantIsPure(t *testing.T) {
	paths := []string{"/tmp/x/app.css", "/tmp/x/app.js"}
	exts := []string{"css"}

	first := Relevant(paths, exts)
	second := Relevant(paths, exts)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"/tmp/x/app.css", "/tmp/x/app.js"}, paths)
	assert.Equal(t, []string{"css"}, exts)
}
