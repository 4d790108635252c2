// Package scheduling provides cooperative task scheduling primitives.
//
//   - job: a goroutine bound to a cancellable context, with Cancel, Join and Sleep
//   - scheduler: a round robin registry that runs one task per tick
//   - guard: decorators that change when and how a task body runs
//
// Jobs:
//
//	j := job.Spawn(ctx, func(ctx context.Context) {
//		for job.Sleep(ctx, time.Second) == nil {
//			poll()
//		}
//	})
//	defer j.CancelAndJoin(context.Background())
//
// Round Robin Scheduler:
//
//	s := scheduler.New()
//	s.AddFunc("a", a)
//	s.AddFunc("b", b)
//	_ = s.Start() // runs a, b, a, b, ... one per tick
//
// Guards:
//
//	body, err := guard.CronGated("0 */5 * * * *", guard.Retry(sync, guard.RetryPolicy{MaxRetries: 2}))
//	if err != nil {
//		return err
//	}
//	s.Add("sync", body)
package scheduling
