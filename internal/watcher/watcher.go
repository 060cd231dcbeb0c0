// Package watcher implements the debounced change-detection loop: it
// consumes raw notifications from a Source, classifies and filters them,
// and rate-limits invocations of a configured command.
package watcher

import (
	"log"
	"os"
	"time"
)

// Sink receives every classified event delivered by the watch loop
type Sink interface {
	HandleEvent(ev Event)
}

// CommandRunner spawns a command line as a detached process
type CommandRunner interface {
	Run(command string) error
}

// Options configures a Watcher
type Options struct {
	// Extensions is the allow-list for the extension filter; empty
	// accepts every event
	Extensions []string

	// Command is the action to spawn on a due change; empty disables
	// firing
	Command string

	// Window is the debounce window; zero selects DefaultWindow
	Window time.Duration

	// Runner spawns the command; required when Command is set
	Runner CommandRunner

	// Sinks receive every delivered event
	Sinks []Sink

	// Logger receives informational output; defaults to stdout
	Logger *log.Logger

	// Now is the clock; defaults to time.Now
	Now func() time.Time
}

// Watcher owns the blocking consume loop
type Watcher struct {
	source     Source
	extensions []string
	command    string
	runner     CommandRunner
	trigger    *Trigger
	sinks      []Sink
	logger     *log.Logger
	now        func() time.Time
}

// New creates a watcher consuming from source
func New(source Source, opts Options) *Watcher {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Watcher{
		source:     source,
		extensions: opts.Extensions,
		command:    opts.Command,
		runner:     opts.Runner,
		trigger:    NewTrigger(opts.Window, now()),
		sinks:      opts.Sinks,
		logger:     logger,
		now:        now,
	}
}

// Run consumes notifications until the source stream ends. Source errors
// and malformed events are reported and skipped; neither stops the loop.
func (w *Watcher) Run() {
	for n := range w.source.Notifications() {
		w.handle(n)
	}
}

// handle processes a single notification
func (w *Watcher) handle(n Notification) {
	if n.Err != nil {
		w.logger.Printf("Watch error: %v", n.Err)
		return
	}

	// Filter on the raw path set before touching debounce state
	if !Relevant(n.Event.Paths, w.extensions) {
		return
	}

	ev, err := Classify(n.Event)
	if err != nil {
		w.logger.Printf("Skipping event: %v", err)
		return
	}

	if w.trigger.Observe(true) {
		w.logger.Printf("Change detected: %s %s", ev.Kind, ev.Path)
	}

	for _, sink := range w.sinks {
		sink.HandleEvent(ev)
	}

	if w.command == "" || w.runner == nil {
		return
	}

	if w.trigger.Fire(w.now()) {
		w.logger.Printf("Running command: %s", w.command)
		if err := w.runner.Run(w.command); err != nil {
			w.logger.Printf("Command failed to start: %v", err)
		}
	}
}
