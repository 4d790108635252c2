package guard

import (
	"context"
	"time"

	ctxutil "github.com/vnykmshr/roundflow/pkg/common/context"
	"github.com/vnykmshr/roundflow/pkg/scheduling/job"
	"github.com/vnykmshr/roundflow/pkg/scheduling/scheduler"
)

// RetryPolicy configures exponential backoff.
type RetryPolicy struct {
	// MaxRetries is the number of extra attempts after the first failure.
	MaxRetries int

	// InitialDelay is the wait before the first retry; it doubles after
	// every failed retry.
	InitialDelay time.Duration

	// MaxDelay caps the wait between retries. Zero means no cap.
	MaxDelay time.Duration
}

// Retry runs body up to MaxRetries+1 times within a single turn, waiting
// between attempts with exponential backoff. The waits are cancellation
// points, so a canceled scheduler does not sit out the backoff.
func Retry(body scheduler.Body, policy RetryPolicy, opts ...Option) scheduler.Body {
	o := newOptions(opts)
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}

	return scheduler.BodyFunc(func(ctx context.Context) error {
		var lastErr error
		delay := policy.InitialDelay

		for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
			if attempt > 0 {
				o.record("retry", outcomeRetried)
				if err := job.Sleep(ctx, delay); err != nil {
					return err
				}

				delay *= 2
				if policy.MaxDelay > 0 && delay > policy.MaxDelay {
					delay = policy.MaxDelay
				}
			}

			lastErr = body.Execute(ctx)
			if lastErr == nil || ctxutil.CanceledBy(ctx, lastErr) {
				return lastErr
			}
		}

		o.record("retry", outcomeExhausted)
		return lastErr
	})
}
