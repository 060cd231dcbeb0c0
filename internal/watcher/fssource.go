package watcher

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"watchdo/internal/patterns"
)

// FSSource adapts fsnotify into a Source. It registers the watch path and
// all subdirectories recursively and keeps registering directories created
// while watching.
type FSSource struct {
	watcher       *fsnotify.Watcher
	matcher       *patterns.Matcher
	notifications chan Notification
	watching      map[string]bool
	done          chan struct{}
}

// NewFSSource creates a source watching path recursively. Directories
// matching the matcher's ignore patterns are skipped. Returns an error if
// the path cannot be watched.
func NewFSSource(path string, matcher *patterns.Matcher) (*FSSource, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	s := &FSSource{
		watcher:       w,
		matcher:       matcher,
		notifications: make(chan Notification, 64),
		watching:      make(map[string]bool),
		done:          make(chan struct{}),
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}

	if err := s.addPath(absPath); err != nil {
		w.Close()
		return nil, err
	}

	go s.forward()

	return s, nil
}

// Notifications returns the notification stream. The channel closes after
// Close is called and the underlying watcher has drained.
func (s *FSSource) Notifications() <-chan Notification {
	return s.notifications
}

// Close stops the source and closes the notification channel
func (s *FSSource) Close() error {
	close(s.done)
	return s.watcher.Close()
}

// addPath registers a path and, if it is a directory, all subdirectories
func (s *FSSource) addPath(path string) error {
	if s.watching[path] {
		return nil
	}

	if err := s.watcher.Add(path); err != nil {
		return err
	}
	s.watching[path] = true

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return s.addDirectoryRecursive(path)
	}

	return nil
}

// addDirectoryRecursive adds a directory and all subdirectories
func (s *FSSource) addDirectoryRecursive(dirPath string) error {
	return filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}

		if !info.IsDir() {
			return nil
		}

		if s.matcher != nil && s.matcher.IsIgnored(path) {
			return filepath.SkipDir
		}

		if !s.watching[path] {
			if err := s.watcher.Add(path); err != nil {
				return nil // Continue on error
			}
			s.watching[path] = true
		}

		return nil
	})
}

// forward translates fsnotify channels into the notification stream
func (s *FSSource) forward() {
	defer close(s.notifications)

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if s.matcher != nil && s.matcher.IsIgnored(event.Name) {
				continue
			}
			s.trackNewDirectory(event)
			s.deliver(Notification{Event: &RawEvent{
				Op:    event.Op,
				Paths: []string{event.Name},
			}})

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.deliver(Notification{Err: err})

		case <-s.done:
			return
		}
	}
}

// trackNewDirectory registers directories created under the watch tree
func (s *FSSource) trackNewDirectory(event fsnotify.Event) {
	if event.Op&fsnotify.Create != fsnotify.Create {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return
	}
	s.addPath(event.Name)
}

// deliver sends a notification, dropping it if the buffer is full
func (s *FSSource) deliver(n Notification) {
	select {
	case s.notifications <- n:
	case <-s.done:
	default:
	}
}
