package executor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"
)

// Runner starts one external process and waits for it
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// processWaitDelay bounds how long a cancelled child may take to exit
// after the interrupt before it is killed.
const processWaitDelay = 30 * time.Second

// ExecRunner runs commands with os/exec, passing their output through
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner attached to the process's stdout and stderr
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run implements Runner. Cancelling ctx interrupts the child so rsync can
// stop cleanly.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = processWaitDelay
	return cmd.Run()
}
