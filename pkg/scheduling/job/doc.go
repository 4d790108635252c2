/*
Package job provides the cooperative execution substrate used by the schedulers.

A Job is a goroutine bound to a cancellable context. Cancellation is
cooperative: the body observes it at its suspension points, typically Sleep
calls or any other select on ctx.Done().

	j := job.Spawn(ctx, func(ctx context.Context) {
		for {
			doWork()
			if err := job.Sleep(ctx, time.Second); err != nil {
				return
			}
		}
	})

	j.Cancel(errors.New("shutting down")) // request, do not wait
	_ = j.Join(context.Background())      // wait for the body to return

Cancel reasons are carried as the context cause, so a body can tell an
ordinary stop from a policy driven one with context.Cause(ctx).

A panic escaping the body is recovered and exposed through Err; the job is
then finished and IsActive reports false.
*/
package job
