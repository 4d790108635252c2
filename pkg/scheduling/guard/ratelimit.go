package guard

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/vnykmshr/roundflow/pkg/scheduling/scheduler"
)

// Allower decides whether one invocation may proceed now.
type Allower interface {
	Allow(ctx context.Context) bool
}

// AllowerFunc adapts a function to Allower.
type AllowerFunc func(ctx context.Context) bool

// Allow implements Allower.
func (f AllowerFunc) Allow(ctx context.Context) bool {
	return f(ctx)
}

// Local adapts a process-local token bucket to Allower.
func Local(l *rate.Limiter) Allower {
	return AllowerFunc(func(context.Context) bool {
		return l.Allow()
	})
}

// RateLimited skips the turn, returning nil, whenever limiter denies it.
// The task keeps its place in the rotation either way.
func RateLimited(body scheduler.Body, limiter Allower, opts ...Option) scheduler.Body {
	o := newOptions(opts)

	return scheduler.BodyFunc(func(ctx context.Context) error {
		if !limiter.Allow(ctx) {
			o.record("rate_limit", outcomeSkipped)
			return nil
		}
		o.record("rate_limit", outcomeAllowed)
		return body.Execute(ctx)
	})
}
