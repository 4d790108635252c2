/*
Package roundflow provides a cooperative round robin task scheduler for Go
applications.

Scheduling (pkg/scheduling):
  - job: Cancellable goroutine substrate with cancel reasons
  - scheduler: Round robin task registry and dispatch loop
  - guard: Retry, timeout, rate limit, cron and run-once decorators for task bodies

Rate Limiting (pkg/ratelimit):
  - distributed: Redis fixed window limiter shared across processes

Support:
  - logx: Structured logging on zerolog
  - metrics: Prometheus instrumentation

Example usage:

	import (
		"github.com/vnykmshr/roundflow/pkg/scheduling/guard"
		"github.com/vnykmshr/roundflow/pkg/scheduling/scheduler"
	)

	s := scheduler.NewWithConfig(scheduler.Config{Delay: 100 * time.Millisecond})
	s.AddFunc("poll", poll)
	s.Add("report", guard.RateLimited(report, guard.Local(rate.NewLimiter(1, 1))))

	if err := s.Start(); err != nil {
		return err
	}
	defer s.CancelAndJoin(context.Background())
*/
package roundflow
