package watcher

import (
	"errors"

	"github.com/fsnotify/fsnotify"
)

// ErrNoPath is returned when a raw event carries no paths
var ErrNoPath = errors.New("event carries no paths")

// Classify maps a raw notification to a classified event.
// The event's path is the first path of the raw event.
func Classify(raw *RawEvent) (Event, error) {
	if len(raw.Paths) == 0 {
		return Event{}, ErrNoPath
	}

	return Event{
		Kind: classifyOp(raw.Op),
		Path: raw.Paths[0],
	}, nil
}

// classifyOp maps an fsnotify operation to an event kind
func classifyOp(op fsnotify.Op) Kind {
	if op&fsnotify.Create == fsnotify.Create {
		return KindCreate
	}

	if op&fsnotify.Write == fsnotify.Write {
		return KindModify
	}

	if op&fsnotify.Remove == fsnotify.Remove {
		return KindRemove
	}

	if op&fsnotify.Chmod == fsnotify.Chmod {
		return KindAccess
	}

	if op&fsnotify.Rename == fsnotify.Rename {
		return KindOther
	}

	return KindUnknown
}
