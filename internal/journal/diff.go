package journal

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Generator produces textual diffs between content snapshots
type Generator struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewGenerator creates a diff generator
func NewGenerator() *Generator {
	return &Generator{
		dmp: diffmatchpatch.New(),
	}
}

// Unified generates a patch-format diff between old and new content along
// with the net line counts added and removed
func (g *Generator) Unified(oldContent, newContent string) (string, int, int) {
	diffs := g.dmp.DiffMain(oldContent, newContent, false)

	patches := g.dmp.PatchMake(oldContent, diffs)
	diffText := g.dmp.PatchToText(patches)

	linesAdded := 0
	linesRemoved := 0

	oldLines := strings.Count(oldContent, "\n")
	newLines := strings.Count(newContent, "\n")

	if newLines > oldLines {
		linesAdded = newLines - oldLines
	} else {
		linesRemoved = oldLines - newLines
	}

	return diffText, linesAdded, linesRemoved
}
