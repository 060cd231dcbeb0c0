// Package runner spawns configured shell commands as detached processes.
package runner

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// ErrEmptyCommand is returned when the command line contains no tokens
var ErrEmptyCommand = errors.New("empty command")

// Runner spawns external commands without waiting for them
type Runner struct{}

// New creates a runner
func New() *Runner {
	return &Runner{}
}

// Run splits the command line on whitespace and spawns it as a detached
// process inheriting stdout and stderr. There is no quoting support:
// arguments containing spaces cannot be expressed. The spawned process is
// not waited on beyond reaping; overlapping invocations are possible.
func (r *Runner) Run(command string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ErrEmptyCommand
	}

	cmd := exec.Command(fields[0], fields[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return err
	}

	// Reap the child so finished processes do not linger as zombies
	go cmd.Wait()

	return nil
}
