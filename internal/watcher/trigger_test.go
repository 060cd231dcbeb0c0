package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTriggerFiresImmediatelyOnFirstChange(t *testing.T) {
	t0 := time.Now()
	tr := NewTrigger(time.Second, t0)

	assert.True(t, tr.Observe(true))
	assert.True(t, tr.Fire(t0))
}

func TestTriggerSuppressesWithinWindow(t *testing.T) {
	t0 := time.Now()
	tr := NewTrigger(time.Second, t0)

	// Burst at t0, t0+300ms, t0+1.2s: fires at t0 and t0+1.2s only
	tr.Observe(true)
	assert.True(t, tr.Fire(t0))

	tr.Observe(true)
	assert.False(t, tr.Fire(t0.Add(300*time.Millisecond)))

	tr.Observe(true)
	assert.True(t, tr.Fire(t0.Add(1200*time.Millisecond)))
}

func TestTriggerDoesNotFireWithoutPendingChange(t *testing.T) {
	t0 := time.Now()
	tr := NewTrigger(time.Second, t0)

	assert.False(t, tr.Fire(t0))
	assert.False(t, tr.Fire(t0.Add(time.Hour)))
}

func TestTriggerLatchClearsAfterFire(t *testing.T) {
	t0 := time.Now()
	tr := NewTrigger(time.Second, t0)

	tr.Observe(true)
	assert.True(t, tr.Fire(t0))

	// Latch cleared: elapsed time alone must not fire again
	assert.False(t, tr.Fire(t0.Add(5*time.Second)))

	// A fresh burst qualifies independently
	assert.True(t, tr.Observe(true))
	assert.True(t, tr.Fire(t0.Add(6*time.Second)))
}

func TestTriggerObserve(t *testing.T) {
	t0 := time.Now()
	tr := NewTrigger(time.Second, t0)

	assert.False(t, tr.Observe(false), "irrelevant events never latch")
	assert.True(t, tr.Observe(true), "first relevant event of a burst")
	assert.False(t, tr.Observe(true), "later events of the same burst")
}

func TestTriggerFireExactlyAtWindow(t *testing.T) {
	t0 := time.Now()
	tr := NewTrigger(time.Second, t0)

	tr.Observe(true)
	tr.Fire(t0)

	tr.Observe(true)
	assert.True(t, tr.Fire(t0.Add(time.Second)), "window boundary is inclusive")
}

func TestTriggerDefaultWindow(t *testing.T) {
	tr := NewTrigger(0, time.Now())
	assert.Equal(t, DefaultWindow, tr.Window())
}
