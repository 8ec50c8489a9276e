package action

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
)

// UnknownErrorMessage is reported for failures that carry no usable message,
// including panics raised by a task.
const UnknownErrorMessage = "an unknown error occurred"

// Action is a support structure that runs the steps of a pipeline action.
// Steps run sequentially and the first failing step ends the run.
type Action struct {
	PreExecHook Task
}

// New constructs an action.
func New(opts ...Option) *Action {
	a := Action{
		PreExecHook: func(_ context.Context) error { return nil },
	}

	for _, opt := range opts {
		opt(&a)
	}

	return &a
}

// Execute runs a list of tasks in order, stopping at the first failure.
// Every outcome, including a panicking task, is reported through the returned [Result].
func (a *Action) Execute(ctx context.Context, tasks ...Task) (res Result) {
	start := time.Now()

	defer func() {
		if recovered := recover(); recovered != nil {
			res = Result{Err: ErrUnknown}
		}

		elapsed := time.Since(start).Round(time.Millisecond)
		color.New(color.FgHiBlack).Printf("------------------------\n\n")

		if res.Failed() {
			color.Red(" ✘ failed after %s", elapsed)
			color.Red("   • %s\n\n", res.Message())
			return
		}

		color.Green(" ✔ all good after %s\n\n", elapsed)
	}()

	fmt.Printf("\n")

	if err := a.PreExecHook(ctx); err != nil {
		return Result{Err: fmt.Errorf("failed to initialize action: %w", err)}
	}

	for _, task := range tasks {
		if err := task(ctx); err != nil {
			return Result{Err: err}
		}
	}

	return Result{}
}

// ErrUnknown stands in for failures that aren't regular errors.
var ErrUnknown = errors.New(UnknownErrorMessage)

// Result is the outcome of an [Action.Execute] run: either success or a
// failure carrying the error that stopped it.
type Result struct {
	Err error
}

// Failed reports whether the run stopped on an error.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Message returns the human readable failure reason, or an empty string on success.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}

	if msg := r.Err.Error(); msg != "" {
		return msg
	}

	return UnknownErrorMessage
}

// Task defines the basic function that the action executes.
// Additional configuration can be done by using closures which return Tasks.
type Task func(ctx context.Context) error

type Option func(a *Action)

// WithPreExecFunc allows specifying a task that will be run every execution, before the
// specific execution tasks are run.
func WithPreExecFunc(hook Task) Option {
	return func(a *Action) {
		a.PreExecHook = hook
	}
}
