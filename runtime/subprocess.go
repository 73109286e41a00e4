// Package runtime executes stage commands as child processes.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/initializ/preflight/pipeline"
)

// SubprocessExecutor runs each stage command as a child process, blocking
// until it exits. The child's stdout and stderr are connected directly to
// Stdout and Stderr — no buffering, capturing, or rewriting — so the
// underlying tool's diagnostics reach the caller byte for byte.
type SubprocessExecutor struct {
	Dir    string // working directory for stage commands; empty = inherit
	Stdout io.Writer
	Stderr io.Writer
}

// NewSubprocessExecutor creates an executor wired to the process's own
// standard streams.
func NewSubprocessExecutor() *SubprocessExecutor {
	return &SubprocessExecutor{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run invokes the stage command and waits for it to terminate. A command
// that cannot be started at all (e.g. the tool binary is missing from PATH)
// is reported as status 127, the shell convention, so it halts the pipeline
// exactly like a failing stage.
func (e *SubprocessExecutor) Run(ctx context.Context, stage pipeline.Stage) (int, error) {
	if len(stage.Command) == 0 {
		return 127, fmt.Errorf("stage %s: empty command", stage.Name)
	}

	cmd := exec.CommandContext(ctx, stage.Command[0], stage.Command[1:]...)
	cmd.Dir = e.Dir
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitStatus(exitErr.ProcessState), err
	}
	return 127, fmt.Errorf("starting %s: %w", stage.Command[0], err)
}

// exitStatus derives a shell-convention status from a terminated child:
// a clean non-zero exit propagates its code verbatim, termination by signal
// maps to 128+signal.
func exitStatus(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	code := state.ExitCode()
	if code < 0 {
		code = 1
	}
	return code
}
