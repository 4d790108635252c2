/*
Package scheduler provides a cooperative round robin task scheduler.

A RoundRobin holds an ordered list of tasks and runs at most one of them per
tick, in insertion order, pausing Delay after each tick. One slow or failing
task never prevents the others from getting their turn, and no two task
bodies ever run at the same time.

# Basic Usage

	s := scheduler.NewWithConfig(scheduler.Config{
		Name:  "pollers",
		Delay: 100 * time.Millisecond,
	})

	s.AddFunc("inbox", pollInbox)
	s.AddFunc("feeds", pollFeeds)

	if err := s.Start(); err != nil {
		return err
	}
	defer s.CancelAndJoin(context.Background())

# Registry Changes

Tasks can be added or removed at any time, including from inside a running
body. Removing a task that sits before the cursor keeps the rotation on the
task that was due next. Insertion never moves the cursor, so a task inserted
before it first runs on the next lap.

Every mutation has an Unsafe twin that skips locking. Use those only while
nothing else can touch the registry, such as during setup before Start.

# Failures

Errors and panics from a body are handed to the configured ErrorSink and
the loop continues with the next task. Errors caused by the scheduler's own
cancellation are dropped.

# Stopping

Cancel requests a stop and returns immediately; CancelAndJoin also waits for
the loop to return. With StopWhenNoTask set, removing the last task cancels
the loop with ErrNoTasksLeft.
*/
package scheduler
