package scheduler

import (
	"context"
	"runtime/debug"

	rferrors "github.com/vnykmshr/roundflow/pkg/common/errors"
)

// Body is the work a task performs on each of its turns.
type Body interface {
	// Execute runs one turn. It should respect ctx cancellation and return
	// any error encountered; errors are logged, never propagated.
	Execute(ctx context.Context) error
}

// BodyFunc is a function type that implements the Body interface.
type BodyFunc func(ctx context.Context) error

// Execute implements the Body interface for BodyFunc.
func (f BodyFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Task is a body registered with a RoundRobin. The registry owns its place
// in the rotation; the task only keeps a reference back so it can remove
// itself.
type Task struct {
	id    string
	body  Body
	owner *RoundRobin
}

// ID returns the task identifier.
func (t *Task) ID() string {
	return t.id
}

// Owner returns the registry that created the task. Removal does not clear it.
func (t *Task) Owner() *RoundRobin {
	return t.owner
}

// Remove removes the first task with this task's id from its owner.
func (t *Task) Remove() bool {
	return t.owner.Remove(t.id)
}

type taskKey struct{}

// TaskFromContext returns the task whose body is running under ctx.
func TaskFromContext(ctx context.Context) (*Task, bool) {
	t, ok := ctx.Value(taskKey{}).(*Task)
	return t, ok
}

// run executes the body, converting a panic into a *errors.PanicError.
func (t *Task) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = rferrors.NewPanicError(r, debug.Stack())
		}
	}()
	return t.body.Execute(context.WithValue(ctx, taskKey{}, t))
}
