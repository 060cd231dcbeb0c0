package watcher

import (
	"github.com/fsnotify/fsnotify"
)

// Kind classifies a filesystem change event
type Kind string

// Kind constants
const (
	KindAccess  Kind = "Access"
	KindCreate  Kind = "Create"
	KindModify  Kind = "Modify"
	KindRemove  Kind = "Remove"
	KindOther   Kind = "Other"
	KindUnknown Kind = "Unknown"
)

// RawEvent is a change notification as delivered by the event source.
// Paths is ordered; the first entry is the path reported downstream.
type RawEvent struct {
	Op    fsnotify.Op
	Paths []string
}

// Event is a classified filesystem change
type Event struct {
	Kind Kind
	Path string
}

// Notification carries either a raw event or a source-side error
type Notification struct {
	Event *RawEvent
	Err   error
}

// Source supplies a blocking stream of change notifications.
// The stream ends when the channel is closed.
type Source interface {
	Notifications() <-chan Notification
	Close() error
}
