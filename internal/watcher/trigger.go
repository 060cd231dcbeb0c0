package watcher

import (
	"time"
)

// DefaultWindow is the minimum interval between two action firings
const DefaultWindow = time.Second

// Trigger throttles downstream actions: it latches the first relevant
// change of a burst and allows one firing per debounce window.
type Trigger struct {
	window   time.Duration
	pending  bool
	lastFire time.Time
}

// NewTrigger creates a trigger. lastFire is backdated by one window so the
// first qualifying change fires immediately.
func NewTrigger(window time.Duration, now time.Time) *Trigger {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Trigger{
		window:   window,
		lastFire: now.Add(-window),
	}
}

// Window returns the debounce window
func (t *Trigger) Window() time.Duration {
	return t.window
}

// Observe records an incoming event. It reports true when a relevant event
// sets the pending latch, i.e. on the first change of a burst. The latch
// stays set until the next successful Fire.
func (t *Trigger) Observe(relevant bool) bool {
	if !relevant || t.pending {
		return false
	}
	t.pending = true
	return true
}

// Fire reports whether a pending change is due. When the debounce window
// has elapsed since the last firing it advances the fire timestamp, clears
// the pending latch and returns true. With no change pending it always
// returns false.
func (t *Trigger) Fire(now time.Time) bool {
	if !t.pending {
		return false
	}
	if now.Sub(t.lastFire) < t.window {
		return false
	}
	t.lastFire = now
	t.pending = false
	return true
}
