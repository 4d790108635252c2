package scheduler

import (
	"context"
	"errors"
)

var (
	// ErrAlreadyRunning is returned by Start when the scheduler loop is active.
	ErrAlreadyRunning = errors.New("scheduler already running, cancel it first")

	// ErrNoTasksLeft is the cancel reason used when the last task is removed
	// from a scheduler configured to stop when it has no tasks.
	ErrNoTasksLeft = errors.New("no tasks left")
)

// Scheduler is the lifecycle every scheduler variant exposes.
//
// A scheduler is either Idle or Running. Start moves it to Running and fails
// with ErrAlreadyRunning if it already is; Cancel and CancelAndJoin move it
// back to Idle.
type Scheduler interface {
	// IsRunning reports whether the loop job is currently active.
	IsRunning() bool

	// Start begins executing the loop as a new job.
	Start() error

	// Cancel requests cancellation of the active job without waiting for it.
	// A nil reason means plain cancellation. No-op when not running.
	Cancel(reason error)

	// CancelAndJoin cancels the active job and waits until it has returned
	// or ctx is done.
	CancelAndJoin(ctx context.Context) error
}

// ErrorSink receives task body failures. It never affects control flow.
type ErrorSink interface {
	LogError(msg string, err error)
}

// ErrorSinkFunc adapts a function to ErrorSink.
type ErrorSinkFunc func(msg string, err error)

// LogError implements ErrorSink.
func (f ErrorSinkFunc) LogError(msg string, err error) {
	f(msg, err)
}
