// Package pipeline provides the sequential verification pipeline: an ordered
// list of stages executed fail-fast, with the first failure's exit status
// propagated to the caller.
package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// Stage is one verification step: a name and the fully assembled argv of the
// external command to invoke. Stages are plain data; the order of the slice
// handed to Run is the contract (format before lint before test), and the
// Runner never reorders it.
type Stage struct {
	Name    string
	Command []string
}

// Outcome describes one full pipeline run. It is created once per run and
// never mutated afterwards.
type Outcome struct {
	Failed      bool
	FailedStage string
	FailedIndex int
	ExitCode    int
}

// ErrNoStages is returned when Run is given an empty stage list. An empty
// pipeline is a configuration error, never a silent pass.
var ErrNoStages = errors.New("pipeline: no stages configured")

// StageError reports the first failing stage. ExitCode is the status to
// surface as the process exit status: the child's own exit code, 128+signal
// for a signaled child, or 127 when the command could not be started.
type StageError struct {
	Stage    string
	Index    int
	ExitCode int
	Err      error
}

func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stage %s failed (exit %d): %v", e.Stage, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("stage %s failed (exit %d)", e.Stage, e.ExitCode)
}

func (e *StageError) Unwrap() error { return e.Err }

// Executor runs a single stage's command to completion and returns the exit
// status to surface for it. Implementations must block until the command
// terminates and must return a non-zero status whenever err is non-nil.
type Executor interface {
	Run(ctx context.Context, stage Stage) (int, error)
}

// Runner executes stages in order, stopping at the first failure.
type Runner struct {
	exec Executor

	// Announce, when set, is called immediately before each stage starts.
	// It is the only output the Runner itself produces; everything else on
	// the standard streams comes from the stage commands, unmodified.
	Announce func(index, total int, stage Stage)
}

// NewRunner creates a Runner that invokes stages through exec.
func NewRunner(exec Executor) *Runner {
	return &Runner{exec: exec}
}

// Run executes each stage sequentially and stops on the first failure; later
// stages are not invoked even though they might also have failed. When a
// stage fails the returned error is a *StageError and the Outcome names the
// stage and its derived exit status.
func (r *Runner) Run(ctx context.Context, stages []Stage) (Outcome, error) {
	if len(stages) == 0 {
		return Outcome{}, ErrNoStages
	}

	for i, s := range stages {
		if err := ctx.Err(); err != nil {
			return Outcome{Failed: true, FailedStage: s.Name, FailedIndex: i, ExitCode: 1},
				fmt.Errorf("pipeline cancelled before stage %s: %w", s.Name, err)
		}

		if r.Announce != nil {
			r.Announce(i, len(stages), s)
		}

		code, err := r.exec.Run(ctx, s)
		if err != nil || code != 0 {
			if code == 0 {
				code = 1
			}
			out := Outcome{Failed: true, FailedStage: s.Name, FailedIndex: i, ExitCode: code}
			return out, &StageError{Stage: s.Name, Index: i, ExitCode: code, Err: err}
		}
	}

	return Outcome{}, nil
}
