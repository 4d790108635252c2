package scheduler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	ctxutil "github.com/vnykmshr/roundflow/pkg/common/context"
	rferrors "github.com/vnykmshr/roundflow/pkg/common/errors"
	"github.com/vnykmshr/roundflow/pkg/common/validation"
	"github.com/vnykmshr/roundflow/pkg/logx"
	"github.com/vnykmshr/roundflow/pkg/metrics"
	"github.com/vnykmshr/roundflow/pkg/scheduling/job"
)

const module = "scheduler"

// RoundRobin runs at most one registered task per tick, rotating through the
// tasks in insertion order, and pauses Delay after every tick.
//
// Methods without the Unsafe suffix take the registry lock. The Unsafe
// variants skip it and are only correct while nothing else touches the
// registry, typically during setup before Start.
type RoundRobin struct {
	life *Base
	name string
	sink ErrorSink
	log  logx.Logger
	reg  *metrics.Registry

	delay          atomic.Int64
	delayBefore    atomic.Bool
	stopWhenNoTask atomic.Bool

	// mu guards tasks and cursor together.
	mu     sync.Mutex
	tasks  []*Task
	cursor int

	stats stats
}

var _ Scheduler = (*RoundRobin)(nil)

// Stats is a snapshot of loop counters.
type Stats struct {
	Ticks      int64
	IdleTicks  int64
	Dispatched int64
	Failed     int64
	Panicked   int64
}

type stats struct {
	ticks      atomic.Int64
	idleTicks  atomic.Int64
	dispatched atomic.Int64
	failed     atomic.Int64
	panicked   atomic.Int64
}

// New creates a round robin scheduler with default configuration.
func New() *RoundRobin {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a round robin scheduler with custom configuration.
func NewWithConfig(cfg Config) *RoundRobin {
	cfg = cfg.withDefaults()

	r := &RoundRobin{
		name: cfg.Name,
		sink: cfg.ErrorSink,
		log:  cfg.Logger.With(logx.String("scheduler", cfg.Name)),
	}
	if cfg.Metrics.Enabled {
		r.reg = metrics.New(cfg.Metrics)
	}
	r.delay.Store(int64(cfg.Delay))
	r.delayBefore.Store(cfg.DelayBefore)
	r.stopWhenNoTask.Store(cfg.StopWhenNoTask)
	r.life = NewBase(cfg.Context, r.run)

	return r
}

// Name returns the scheduler name used in logs and metrics.
func (r *RoundRobin) Name() string {
	return r.name
}

// ---- lifecycle ----

// IsRunning reports whether the loop job is active.
func (r *RoundRobin) IsRunning() bool {
	return r.life.IsRunning()
}

// Start begins the dispatch loop. It returns ErrAlreadyRunning if the loop is
// already active.
func (r *RoundRobin) Start() error {
	if err := r.life.Start(); err != nil {
		return err
	}
	r.log.Info("scheduler started", logx.Duration("delay", r.Delay()), logx.Int("tasks", r.Len()))
	return nil
}

// Cancel stops the loop at its next suspension point without waiting.
func (r *RoundRobin) Cancel(reason error) {
	r.life.Cancel(reason)
}

// CancelAndJoin stops the loop and waits until it has returned or ctx is done.
func (r *RoundRobin) CancelAndJoin(ctx context.Context) error {
	return r.life.CancelAndJoin(ctx)
}

// Wait blocks until the most recently started loop has returned.
func (r *RoundRobin) Wait(ctx context.Context) error {
	return r.life.Wait(ctx)
}

// ---- settings ----

// Delay returns the pause between ticks.
func (r *RoundRobin) Delay() time.Duration {
	return time.Duration(r.delay.Load())
}

// SetDelay changes the pause between ticks; the loop picks it up on its next
// sleep.
func (r *RoundRobin) SetDelay(d time.Duration) error {
	if err := validation.ValidatePositiveDuration(module, "delay", d); err != nil {
		return err
	}
	r.delay.Store(int64(d))
	return nil
}

// DelayBefore reports whether the loop waits once before its first tick.
func (r *RoundRobin) DelayBefore() bool {
	return r.delayBefore.Load()
}

// SetDelayBefore takes effect on the next Start.
func (r *RoundRobin) SetDelayBefore(v bool) {
	r.delayBefore.Store(v)
}

// StopWhenNoTask reports whether emptying the registry cancels the loop.
func (r *RoundRobin) StopWhenNoTask() bool {
	return r.stopWhenNoTask.Load()
}

// SetStopWhenNoTask changes the empty-registry policy for later removals.
func (r *RoundRobin) SetStopWhenNoTask(v bool) {
	r.stopWhenNoTask.Store(v)
}

// ApplySettings updates every runtime knob at once. Nothing changes if the
// delay is invalid.
func (r *RoundRobin) ApplySettings(s Settings) error {
	if err := r.SetDelay(s.Delay); err != nil {
		return err
	}
	r.SetDelayBefore(s.DelayBefore)
	r.SetStopWhenNoTask(s.StopWhenNoTask)
	r.log.Debug("settings applied",
		logx.Duration("delay", s.Delay),
		logx.Bool("delay_before", s.DelayBefore),
		logx.Bool("stop_when_no_task", s.StopWhenNoTask))
	return nil
}

// Settings returns the current runtime knobs.
func (r *RoundRobin) Settings() Settings {
	return Settings{
		Delay:          r.Delay(),
		DelayBefore:    r.DelayBefore(),
		StopWhenNoTask: r.StopWhenNoTask(),
	}
}

// ---- registry ----

// Add appends a task. An empty id is replaced by a random UUID.
func (r *RoundRobin) Add(id string, body Body) *Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertUnsafe(len(r.tasks), id, body)
}

// AddUnsafe is Add without locking.
func (r *RoundRobin) AddUnsafe(id string, body Body) *Task {
	return r.insertUnsafe(len(r.tasks), id, body)
}

// AddFunc appends a function as a task.
func (r *RoundRobin) AddFunc(id string, fn func(ctx context.Context) error) *Task {
	return r.Add(id, BodyFunc(fn))
}

// AddAt inserts a task at index, 0 <= index <= Len(). The cursor is not
// adjusted, so an insertion before it is first reached on the next lap.
func (r *RoundRobin) AddAt(index int, id string, body Body) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addAtUnsafe(index, id, body)
}

// AddAtUnsafe is AddAt without locking.
func (r *RoundRobin) AddAtUnsafe(index int, id string, body Body) (*Task, error) {
	return r.addAtUnsafe(index, id, body)
}

func (r *RoundRobin) addAtUnsafe(index int, id string, body Body) (*Task, error) {
	if err := validation.ValidateInsertIndex(module, "AddAt", index, len(r.tasks)); err != nil {
		return nil, err
	}
	return r.insertUnsafe(index, id, body), nil
}

func (r *RoundRobin) insertUnsafe(index int, id string, body Body) *Task {
	if body == nil {
		panic("scheduler: nil task body")
	}
	if id == "" {
		id = uuid.NewString()
	}

	t := &Task{id: id, body: body, owner: r}
	r.tasks = slices.Insert(r.tasks, index, t)
	r.observeLen(len(r.tasks))
	return t
}

// Remove removes the first task with the given id and reports whether one
// was found.
func (r *RoundRobin) Remove(id string) bool {
	r.mu.Lock()
	removed, emptied := r.removeIDUnsafe(id)
	r.mu.Unlock()

	if emptied {
		r.onEmpty()
	}
	return removed
}

// RemoveUnsafe is Remove without locking.
func (r *RoundRobin) RemoveUnsafe(id string) bool {
	removed, emptied := r.removeIDUnsafe(id)
	if emptied {
		r.onEmpty()
	}
	return removed
}

// RemoveAt removes the task at index, 0 <= index < Len().
func (r *RoundRobin) RemoveAt(index int) error {
	r.mu.Lock()
	emptied, err := r.removeAtChecked(index)
	r.mu.Unlock()

	if emptied {
		r.onEmpty()
	}
	return err
}

// RemoveAtUnsafe is RemoveAt without locking.
func (r *RoundRobin) RemoveAtUnsafe(index int) error {
	emptied, err := r.removeAtChecked(index)
	if emptied {
		r.onEmpty()
	}
	return err
}

// Clear removes every task. Clearing a non-empty registry applies the same
// empty-registry policy as removing its last task.
func (r *RoundRobin) Clear() {
	r.mu.Lock()
	emptied := len(r.tasks) > 0
	r.tasks = nil
	r.cursor = 0
	r.mu.Unlock()

	r.observeLen(0)
	if emptied {
		r.onEmpty()
	}
}

func (r *RoundRobin) removeIDUnsafe(id string) (removed, emptied bool) {
	i := slices.IndexFunc(r.tasks, func(t *Task) bool { return t.id == id })
	if i < 0 {
		return false, false
	}
	return true, r.removeAtUnsafe(i)
}

func (r *RoundRobin) removeAtChecked(index int) (bool, error) {
	if err := validation.ValidateElementIndex(module, "RemoveAt", index, len(r.tasks)); err != nil {
		return false, err
	}
	return r.removeAtUnsafe(index), nil
}

// removeAtUnsafe deletes tasks[i] and keeps the cursor on the same upcoming
// task. It reports whether the registry became empty.
func (r *RoundRobin) removeAtUnsafe(i int) bool {
	r.tasks = slices.Delete(r.tasks, i, i+1)
	r.observeLen(len(r.tasks))

	switch {
	case len(r.tasks) == 0:
		r.cursor = 0
		return true
	case i < r.cursor:
		r.cursor--
	}
	return false
}

func (r *RoundRobin) onEmpty() {
	if !r.stopWhenNoTask.Load() || !r.life.IsRunning() {
		return
	}
	r.log.Info("no tasks left, stopping scheduler")
	r.life.Cancel(ErrNoTasksLeft)
}

// Len returns the number of registered tasks.
func (r *RoundRobin) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// IDs returns the task ids in rotation order.
func (r *RoundRobin) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, len(r.tasks))
	for i, t := range r.tasks {
		ids[i] = t.id
	}
	return ids
}

// Get returns the first task with the given id.
func (r *RoundRobin) Get(id string) (*Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.tasks, func(t *Task) bool { return t.id == id })
	if i < 0 {
		return nil, false
	}
	return r.tasks[i], true
}

// Cursor returns the index of the task due on the next tick. A value outside
// [0, Len()) means the next tick wraps to the first task.
func (r *RoundRobin) Cursor() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor
}

// Stats returns a snapshot of the loop counters.
func (r *RoundRobin) Stats() Stats {
	return Stats{
		Ticks:      r.stats.ticks.Load(),
		IdleTicks:  r.stats.idleTicks.Load(),
		Dispatched: r.stats.dispatched.Load(),
		Failed:     r.stats.failed.Load(),
		Panicked:   r.stats.panicked.Load(),
	}
}

// ---- dispatch ----

// next selects the task due on this tick and advances the cursor. When the
// cursor is out of range the rotation restarts at index 0 and the cursor
// moves to 1, even if the registry is empty.
func (r *RoundRobin) next() *Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cursor >= 0 && r.cursor < len(r.tasks) {
		t := r.tasks[r.cursor]
		r.cursor++
		return t
	}

	r.cursor = 1
	if len(r.tasks) == 0 {
		return nil
	}
	return r.tasks[0]
}

// Tick runs one dispatch step on the caller's goroutine: select the next task
// and run it with failure isolation. It reports whether a task ran. The loop
// calls Tick once per Delay; calling it while the loop runs breaks the
// one-body-at-a-time guarantee.
func (r *RoundRobin) Tick(ctx context.Context) bool {
	r.stats.ticks.Add(1)
	if r.reg != nil {
		r.reg.SchedulerTicks.WithLabelValues(r.name).Inc()
	}

	t := r.next()
	if t == nil {
		r.stats.idleTicks.Add(1)
		if r.reg != nil {
			r.reg.SchedulerIdleTicks.WithLabelValues(r.name).Inc()
		}
		return false
	}

	r.dispatch(ctx, t)
	return true
}

func (r *RoundRobin) dispatch(ctx context.Context, t *Task) {
	start := time.Now()
	err := t.run(ctx)
	elapsed := time.Since(start)

	r.stats.dispatched.Add(1)
	if r.reg != nil {
		r.reg.TasksDispatched.WithLabelValues(r.name).Inc()
		r.reg.TaskExecutionDuration.WithLabelValues(r.name).Observe(elapsed.Seconds())
	}

	if err == nil || ctxutil.CanceledBy(ctx, err) {
		return
	}

	r.stats.failed.Add(1)
	var perr *rferrors.PanicError
	panicked := errors.As(err, &perr)
	if panicked {
		r.stats.panicked.Add(1)
	}
	if r.reg != nil {
		r.reg.TasksFailed.WithLabelValues(r.name).Inc()
		if panicked {
			r.reg.TaskPanics.WithLabelValues(r.name).Inc()
		}
	}

	r.sink.LogError(fmt.Sprintf("%s: task %s failed", r.name, t.id), err)
}

// run is the loop body: optional initial delay, then tick and sleep until
// the job is canceled.
func (r *RoundRobin) run(ctx context.Context) {
	if r.reg != nil {
		r.reg.SchedulerRunning.WithLabelValues(r.name).Inc()
		defer r.reg.SchedulerRunning.WithLabelValues(r.name).Dec()
	}
	defer func() {
		r.log.Info("scheduler stopped", logx.Err(context.Cause(ctx)))
	}()

	if r.delayBefore.Load() {
		if err := job.Sleep(ctx, r.Delay()); err != nil {
			return
		}
	}

	for !ctxutil.IsCanceled(ctx) {
		r.Tick(ctx)
		if err := job.Sleep(ctx, r.Delay()); err != nil {
			return
		}
	}
}

func (r *RoundRobin) observeLen(n int) {
	if r.reg != nil {
		r.reg.RegisteredTasks.WithLabelValues(r.name).Set(float64(n))
	}
}
