package guard

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	rferrors "github.com/vnykmshr/roundflow/pkg/common/errors"
	"github.com/vnykmshr/roundflow/pkg/scheduling/scheduler"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseCron parses a five or six field cron expression or a descriptor such
// as "@hourly" or "@every 5m".
func ParseCron(expr string) (cron.Schedule, error) {
	if expr == "" {
		return nil, rferrors.NewValidationError(module, "cron", expr, "cannot be empty")
	}
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return nil, rferrors.NewValidationError(module, "cron", expr, err.Error()).
			WithHint(`use "sec min hour dom month dow", "min hour dom month dow" or a descriptor like "@every 1m"`)
	}
	return sched, nil
}

// CronGated lets body run on a turn only when the schedule has an activation
// due since the previous run (or since the guard was created). Missed
// activations collapse into one run. Turns in between return nil.
func CronGated(expr string, body scheduler.Body, opts ...Option) (scheduler.Body, error) {
	sched, err := ParseCron(expr)
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)

	g := &cronGate{
		sched: sched,
		body:  body,
		opts:  o,
	}
	g.next = sched.Next(g.now())
	return g, nil
}

type cronGate struct {
	sched cron.Schedule
	body  scheduler.Body
	opts  options

	mu   sync.Mutex
	next time.Time
}

func (g *cronGate) now() time.Time {
	return g.opts.now().In(g.opts.location)
}

func (g *cronGate) Execute(ctx context.Context) error {
	now := g.now()

	g.mu.Lock()
	due := !g.next.IsZero() && !now.Before(g.next)
	if due {
		g.next = g.sched.Next(now)
	}
	g.mu.Unlock()

	if !due {
		g.opts.record("cron", outcomeSkipped)
		return nil
	}
	g.opts.record("cron", outcomeAllowed)
	return g.body.Execute(ctx)
}
