package guard

import (
	"context"
	"sync/atomic"

	"github.com/vnykmshr/roundflow/pkg/scheduling/scheduler"
)

// Once runs body on its first turn only and then removes its own task from
// the scheduler, whatever body returned.
func Once(body scheduler.Body) scheduler.Body {
	var done atomic.Bool

	return scheduler.BodyFunc(func(ctx context.Context) error {
		if !done.CompareAndSwap(false, true) {
			return nil
		}
		if t, ok := scheduler.TaskFromContext(ctx); ok {
			defer t.Remove()
		}
		return body.Execute(ctx)
	})
}
