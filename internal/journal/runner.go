package journal

import (
	"context"

	"watchdo/internal/watcher"
)

// RecordingRunner journals every command invocation before delegating to
// the wrapped runner
type RecordingRunner struct {
	journal *Journal
	runner  watcher.CommandRunner
}

// WrapRunner returns a runner that records invocations in the journal
func (j *Journal) WrapRunner(r watcher.CommandRunner) *RecordingRunner {
	return &RecordingRunner{journal: j, runner: r}
}

// Run implements watcher.CommandRunner
func (rr *RecordingRunner) Run(command string) error {
	err := rr.runner.Run(command)
	if err != nil {
		return err
	}

	if recErr := rr.journal.RecordAction(context.Background(), command); recErr != nil {
		rr.journal.logf("journal: recording action: %v", recErr)
	}

	return nil
}
