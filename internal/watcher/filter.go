package watcher

import (
	"path/filepath"
	"strings"
)

// Relevant reports whether an event touching the given paths passes the
// extension allow-list. An empty list accepts everything; otherwise the
// event passes if any path's extension is an exact member of the list.
// Extensions are bare (no leading dot) and matched case-sensitively.
func Relevant(paths []string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}

	for _, path := range paths {
		ext := filepath.Ext(filepath.Base(path))
		if ext == "" {
			continue
		}
		ext = strings.TrimPrefix(ext, ".")

		for _, allowed := range extensions {
			if ext == allowed {
				return true
			}
		}
	}

	return false
}
