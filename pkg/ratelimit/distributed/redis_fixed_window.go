package distributed

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindow is a fixed window counter shared through Redis. Every process
// using the same Key draws from one budget of Rate events per Window.
type FixedWindow struct {
	config Config
	keys   keys
	now    func() time.Time

	// Lua script for atomic fixed window operations
	checkAndIncrementScript *redis.Script
}

// NewFixedWindow creates a Redis-based fixed window rate limiter. It does not
// contact Redis until the first call.
func NewFixedWindow(config Config) (*FixedWindow, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	config = applyConfigDefaults(config)

	return &FixedWindow{
		config:                  config,
		keys:                    redisKeys(config.Key),
		now:                     time.Now,
		checkAndIncrementScript: redis.NewScript(luaFixedWindowCheckAndIncrement),
	}, nil
}

// InstanceID returns the identifier this limiter registers under.
func (fw *FixedWindow) InstanceID() string {
	return fw.config.InstanceID
}

// Allow reports whether an event may happen now.
func (fw *FixedWindow) Allow(ctx context.Context) bool {
	return fw.AllowN(ctx, 1)
}

// AllowN reports whether n events may happen now. If Redis fails and fallback
// is enabled the local limiter decides; otherwise the events are denied.
func (fw *FixedWindow) AllowN(ctx context.Context, n int) bool {
	if n <= 0 {
		return true
	}

	allowed, err := fw.check(ctx, n)
	if err != nil {
		if fw.config.FallbackToLocal && fw.config.LocalLimiter != nil {
			return fw.config.LocalLimiter.AllowN(fw.now(), n)
		}
		return false
	}
	return allowed
}

func (fw *FixedWindow) check(ctx context.Context, n int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, fw.config.RedisTimeout)
	defer cancel()

	start := windowStart(fw.now(), fw.config.Window)

	result, err := fw.checkAndIncrementScript.Run(ctx, fw.config.Redis,
		[]string{
			fw.keys.windowKey(start),
			fw.keys.stats,
			fw.keys.instances,
		},
		n,
		fw.config.Rate,
		fw.config.Window.Milliseconds()+1000,
		fw.config.KeyTTL.Milliseconds(),
		fw.config.InstanceID,
	).Int64()
	if err != nil {
		return false, &RedisError{"allow", err}
	}
	return result == 1, nil
}

// Stats returns current limiter statistics.
func (fw *FixedWindow) Stats(ctx context.Context) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, fw.config.RedisTimeout)
	defer cancel()

	start := windowStart(fw.now(), fw.config.Window)

	pipe := fw.config.Redis.Pipeline()
	statsCmd := pipe.HGetAll(ctx, fw.keys.stats)
	instancesCmd := pipe.SMembers(ctx, fw.keys.instances)
	currentCmd := pipe.Get(ctx, fw.keys.windowKey(start))

	_, err := pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, &RedisError{"stats", err}
	}

	statsMap := statsCmd.Val()
	total, _ := strconv.ParseInt(statsMap["total_requests"], 10, 64)
	allowed, _ := strconv.ParseInt(statsMap["allowed_requests"], 10, 64)
	denied, _ := strconv.ParseInt(statsMap["denied_requests"], 10, 64)
	current, _ := strconv.ParseInt(currentCmd.Val(), 10, 64)

	return &Stats{
		Rate:            fw.config.Rate,
		Window:          fw.config.Window,
		Remaining:       max(0, fw.config.Rate-current),
		WindowStart:     start,
		TotalRequests:   total,
		AllowedRequests: allowed,
		DeniedRequests:  denied,
		ActiveInstances: instancesCmd.Val(),
	}, nil
}

// Reset clears the current window and the stats.
func (fw *FixedWindow) Reset(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, fw.config.RedisTimeout)
	defer cancel()

	start := windowStart(fw.now(), fw.config.Window)
	err := fw.config.Redis.Del(ctx, fw.keys.windowKey(start), fw.keys.stats).Err()
	if err != nil {
		return &RedisError{"reset", err}
	}
	return nil
}

// Close removes this instance from the shared instance set. The Redis client
// is owned by the caller and stays open.
func (fw *FixedWindow) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), fw.config.RedisTimeout)
	defer cancel()

	if err := fw.config.Redis.SRem(ctx, fw.keys.instances, fw.config.InstanceID).Err(); err != nil {
		return &RedisError{"close", err}
	}
	return nil
}

// Lua script for fixed window operations
const luaFixedWindowCheckAndIncrement = `
-- KEYS[1]: current window key
-- KEYS[2]: stats key
-- KEYS[3]: instances key
-- ARGV[1]: requests count
-- ARGV[2]: rate limit (max requests per window)
-- ARGV[3]: window TTL (milliseconds)
-- ARGV[4]: stats/instances TTL (milliseconds)
-- ARGV[5]: instance id

local window_key = KEYS[1]
local stats_key = KEYS[2]
local instances_key = KEYS[3]

local requests = tonumber(ARGV[1])
local max_requests = tonumber(ARGV[2])
local window_ttl = tonumber(ARGV[3])
local key_ttl = tonumber(ARGV[4])

redis.call('SADD', instances_key, ARGV[5])
redis.call('PEXPIRE', instances_key, key_ttl)

local current_count = tonumber(redis.call('GET', window_key) or "0")

redis.call('HINCRBY', stats_key, 'total_requests', requests)
redis.call('PEXPIRE', stats_key, key_ttl)

if current_count + requests <= max_requests then
    local new_count = redis.call('INCRBY', window_key, requests)
    if new_count == requests then
        redis.call('PEXPIRE', window_key, window_ttl)
    end
    redis.call('HINCRBY', stats_key, 'allowed_requests', requests)
    return 1
end

redis.call('HINCRBY', stats_key, 'denied_requests', requests)
return 0
`
