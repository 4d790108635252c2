/*
Package ratelimit groups the rate limiters task bodies can be gated on.

  - distributed: Redis fixed window counter shared by several processes

Process-local limits use golang.org/x/time/rate directly through
guard.Local; distributed limiters plug into the same guard.RateLimited
decorator:

	s.Add("sync", guard.RateLimited(body, limiter))
*/
package ratelimit
