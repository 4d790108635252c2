package guard

import (
	"context"
	"errors"
	"time"

	rferrors "github.com/vnykmshr/roundflow/pkg/common/errors"
	"github.com/vnykmshr/roundflow/pkg/scheduling/scheduler"
)

// Timeout bounds every invocation of body to d. A body that overruns is
// reported as an error wrapping errors.ErrTimeout; it must still observe ctx
// to actually return early. A non-positive d disables the bound.
func Timeout(body scheduler.Body, d time.Duration, opts ...Option) scheduler.Body {
	if d <= 0 {
		return body
	}
	o := newOptions(opts)

	return scheduler.BodyFunc(func(ctx context.Context) error {
		tctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		err := body.Execute(tctx)
		if ctx.Err() == nil && errors.Is(tctx.Err(), context.DeadlineExceeded) {
			o.record("timeout", outcomeExpired)
			cause := rferrors.ErrTimeout
			if err != nil && !errors.Is(err, context.DeadlineExceeded) {
				cause = errors.Join(rferrors.ErrTimeout, err)
			}
			return rferrors.NewOperationError(module, "Timeout", cause).WithContext("limit " + d.String())
		}
		return err
	})
}
