/*
Package guard provides decorators for scheduler task bodies.

Each guard wraps a scheduler.Body and returns another one, so they compose:

	body := guard.Timeout(
		guard.Retry(fetch, guard.RetryPolicy{MaxRetries: 3, InitialDelay: 100 * time.Millisecond}),
		2*time.Second,
	)
	s.Add("fetch", guard.RateLimited(body, guard.Local(rate.NewLimiter(1, 1))))

A skipped turn (rate limited, cron not yet due) returns nil, so the
scheduler moves on to the next task without logging anything.
*/
package guard
