// Package distributed provides a Redis backed fixed window rate limiter.
//
// Several processes, each running its own scheduler, can share one budget for
// a task body by pointing their limiters at the same Key. The limiter
// satisfies guard.Allower:
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//
//	limiter, err := distributed.NewFixedWindow(distributed.Config{
//		Redis:           rdb,
//		Key:             "roundflow:sync",
//		Rate:            10,
//		Window:          time.Minute,
//		FallbackToLocal: true,
//		LocalLimiter:    rate.NewLimiter(rate.Every(6*time.Second), 1),
//	})
//	if err != nil {
//		return err
//	}
//	defer limiter.Close()
//
//	s.Add("sync", guard.RateLimited(syncBody, limiter))
//
// # Windows
//
// Windows are aligned to the Unix epoch, so all processes agree on where a
// window starts regardless of when they were started. The check and the
// increment run as one Lua script.
//
// # Fallback Strategy
//
// When Redis is unreachable and FallbackToLocal is set, the local
// golang.org/x/time/rate limiter decides instead. Without fallback the
// limiter fails closed and denies the request.
package distributed
