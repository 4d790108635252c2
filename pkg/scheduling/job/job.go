package job

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	rferrors "github.com/vnykmshr/roundflow/pkg/common/errors"
)

// Body is the unit of work a Job runs. It must return once ctx is done;
// cancellation is only observed at its suspension points.
type Body func(ctx context.Context)

// Job is a cancellable unit of concurrent execution running on its own
// goroutine.
type Job struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// Spawn starts body on a new goroutine under a child context of parent.
// A nil parent means context.Background().
func Spawn(parent context.Context, body Body) *Job {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancelCause(parent)

	j := &Job{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go j.run(body)
	return j
}

func (j *Job) run(body Body) {
	defer close(j.done)
	defer j.cancel(nil)
	defer func() {
		if r := recover(); r != nil {
			j.mu.Lock()
			j.err = rferrors.NewPanicError(r, debug.Stack())
			j.mu.Unlock()
		}
	}()

	body(j.ctx)
}

// Cancel requests cancellation with the given reason. A nil reason cancels
// with context.Canceled. Cancel does not wait for the body to return.
func (j *Job) Cancel(reason error) {
	j.cancel(reason)
}

// Join blocks until the body has returned or ctx is done.
func (j *Job) Join(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return rferrors.NewOperationError("job", "Join", ctx.Err()).
			WithContext("job still running")
	}
}

// CancelAndJoin cancels the job with a nil reason and waits for it to finish.
func (j *Job) CancelAndJoin(ctx context.Context) error {
	j.cancel(nil)
	return j.Join(ctx)
}

// IsActive reports whether the job is neither canceled nor finished.
func (j *Job) IsActive() bool {
	select {
	case <-j.done:
		return false
	default:
	}
	return j.ctx.Err() == nil
}

// Done is closed once the body has returned.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Cause returns the reason the job was canceled, or nil while it is active.
func (j *Job) Cause() error {
	return context.Cause(j.ctx)
}

// Err returns the panic that escaped the body, if any.
func (j *Job) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Sleep suspends the caller for d. It returns early with the context's cancel
// cause if ctx is done first. A non-positive d still observes cancellation.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}
