package scheduler

import (
	"context"
	"sync"

	"github.com/vnykmshr/roundflow/pkg/scheduling/job"
)

// LoopFunc is the body a Base runs inside its job. It must return once ctx
// is done.
type LoopFunc func(ctx context.Context)

// Base holds the start/cancel bookkeeping shared by scheduler variants: one
// job handle and the no-double-start rule. It knows nothing about tasks.
type Base struct {
	parent context.Context
	loop   LoopFunc

	mu   sync.Mutex
	job  *job.Job
	last *job.Job
}

var _ Scheduler = (*Base)(nil)

// NewBase creates a Base that runs loop under parent each time it is started.
// A nil parent means context.Background().
func NewBase(parent context.Context, loop LoopFunc) *Base {
	if parent == nil {
		parent = context.Background()
	}
	return &Base{parent: parent, loop: loop}
}

// IsRunning reports whether a job is currently active.
func (b *Base) IsRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.job != nil && b.job.IsActive()
}

// Start spawns the loop as a new job. It returns ErrAlreadyRunning and leaves
// the existing job untouched if one is active.
func (b *Base) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.job != nil && b.job.IsActive() {
		return ErrAlreadyRunning
	}

	b.job = job.Spawn(b.parent, job.Body(b.loop))
	b.last = b.job
	return nil
}

// Cancel requests cancellation of the active job and clears the handle. It
// does not wait, so it is safe to call from inside the loop itself.
func (b *Base) Cancel(reason error) {
	if j := b.takeJob(); j != nil {
		j.Cancel(reason)
	}
}

// CancelAndJoin cancels the active job, clears the handle and waits for the
// job to return. Calling it from inside the loop deadlocks until ctx is done.
func (b *Base) CancelAndJoin(ctx context.Context) error {
	j := b.takeJob()
	if j == nil {
		return nil
	}
	return j.CancelAndJoin(ctx)
}

// Wait blocks until the most recently started job has returned, including a
// job that was already canceled. It returns immediately if none was started.
func (b *Base) Wait(ctx context.Context) error {
	b.mu.Lock()
	j := b.last
	b.mu.Unlock()

	if j == nil {
		return nil
	}
	return j.Join(ctx)
}

func (b *Base) takeJob() *job.Job {
	b.mu.Lock()
	defer b.mu.Unlock()
	j := b.job
	b.job = nil
	return j
}
