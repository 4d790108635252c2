package guard

import (
	"time"

	"github.com/vnykmshr/roundflow/pkg/metrics"
)

const module = "guard"

// Decision outcomes reported to metrics.
const (
	outcomeAllowed   = "allowed"
	outcomeSkipped   = "skipped"
	outcomeRetried   = "retried"
	outcomeExhausted = "exhausted"
	outcomeExpired   = "expired"
)

// Option configures a guard.
type Option func(*options)

type options struct {
	registry *metrics.Registry
	name     string
	location *time.Location
	now      func() time.Time
}

func newOptions(opts []Option) options {
	o := options{
		location: time.Local,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMetrics reports guard decisions to reg, labelled with name.
func WithMetrics(reg *metrics.Registry, name string) Option {
	return func(o *options) {
		o.registry = reg
		o.name = name
	}
}

// WithLocation sets the time zone cron expressions are evaluated in
// (default: time.Local).
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithClock replaces time.Now. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func (o options) record(guard, outcome string) {
	if o.registry == nil {
		return
	}
	o.registry.GuardDecisions.WithLabelValues(guard, o.name, outcome).Inc()
}
