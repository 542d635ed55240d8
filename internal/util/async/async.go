// Package async provides a bounded executor for independent per-machine tasks.
//
// Tasks are plain tagged values rather than closures so a queue can be
// logged and inspected before it runs. The caller supplies a Runner that
// knows how to execute a task of each kind.
package async

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"
)

// Task is one unit of work addressed at a single machine.
type Task struct {
	// Machine is the name of the machine the task runs against.
	Machine string
	// Role is the role argument handed to the remote command, if any.
	Role string
	// Kind selects what the Runner does.
	Kind string
}

// String implements fmt.Stringer.
func (t Task) String() string {
	if t.Role == "" {
		return fmt.Sprintf("%s %s", t.Kind, t.Machine)
	}
	return fmt.Sprintf("%s %s (%s)", t.Kind, t.Machine, t.Role)
}

// Runner executes a single task.
type Runner func(ctx context.Context, task Task) error

// Failure is a failed task and its error.
type Failure struct {
	Task Task
	Err  error
}

// Error implements the error interface.
func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Task, f.Err)
}

// Unwrap returns the task error.
func (f Failure) Unwrap() error {
	return f.Err
}

// RunResult aggregates the outcome of every task of one Run.
type RunResult struct {
	Dispatched int
	Succeeded  int
	// Failures are listed in queue order.
	Failures []Failure
}

// OK reports whether no task failed.
func (r *RunResult) OK() bool {
	return len(r.Failures) == 0
}

// Err returns a *PhaseError for phase if any task failed, nil otherwise.
func (r *RunResult) Err(phase string) error {
	if r.OK() {
		return nil
	}
	return &PhaseError{Phase: phase, Result: r}
}

// PhaseError reports every failed task of a phase.
type PhaseError struct {
	Phase  string
	Result *RunResult
}

// Error implements the error interface.
func (e *PhaseError) Error() string {
	lines := make([]string, len(e.Result.Failures))
	for i, f := range e.Result.Failures {
		lines[i] = f.Error()
	}
	return fmt.Sprintf("%s phase: %d of %d tasks failed:\n  %s",
		e.Phase, len(e.Result.Failures), e.Result.Dispatched, strings.Join(lines, "\n  "))
}

// Unwrap exposes each failure to errors.Is and errors.As.
func (e *PhaseError) Unwrap() []error {
	errs := make([]error, len(e.Result.Failures))
	for i, f := range e.Result.Failures {
		errs[i] = f
	}
	return errs
}

// Workers returns the effective concurrency for n tasks: maxWorkers capped
// at n, never below 1.
func Workers(maxWorkers, n int) int {
	w := maxWorkers
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Run executes every task with at most Workers(maxWorkers, len(tasks)) in
// flight and returns once all have finished. A failing or panicking task
// does not stop the others.
//
// Example:
//
//	res := async.Run(ctx, tasks, cfg.MaxInstallThreads, o.runTask)
//	if err := res.Err("masters"); err != nil {
//	    return err
//	}
func Run(ctx context.Context, tasks []Task, maxWorkers int, run Runner) *RunResult {
	res := &RunResult{Dispatched: len(tasks)}
	if len(tasks) == 0 {
		return res
	}

	errs := make([]error, len(tasks))
	p := pool.New().WithMaxGoroutines(Workers(maxWorkers, len(tasks)))
	for i, task := range tasks {
		p.Go(func() {
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("task panicked: %v", r)
				}
			}()
			errs[i] = run(ctx, task)
		})
	}
	p.Wait()

	for i, err := range errs {
		if err != nil {
			res.Failures = append(res.Failures, Failure{Task: tasks[i], Err: err})
			continue
		}
		res.Succeeded++
	}
	return res
}
