package distributed

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/vnykmshr/roundflow/internal/testutil"
	rferrors "github.com/vnykmshr/roundflow/pkg/common/errors"
)

// unreachable returns a client that fails fast on every command.
func unreachable(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

// redisClient connects to ROUNDFLOW_REDIS_ADDR or skips the test.
func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("ROUNDFLOW_REDIS_ADDR")
	if addr == "" {
		t.Skip("ROUNDFLOW_REDIS_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 1})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	return rdb
}

func TestNewFixedWindow_Validation(t *testing.T) {
	rdb := unreachable(t)
	local := rate.NewLimiter(1, 1)

	tests := []struct {
		name   string
		config Config
	}{
		{"missing redis", Config{Key: "k", Rate: 1}},
		{"missing key", Config{Redis: rdb, Rate: 1}},
		{"zero rate", Config{Redis: rdb, Key: "k"}},
		{"negative window", Config{Redis: rdb, Key: "k", Rate: 1, Window: -time.Second}},
		{"fallback without limiter", Config{Redis: rdb, Key: "k", Rate: 1, FallbackToLocal: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFixedWindow(tt.config)
			if !rferrors.IsValidationError(err) {
				t.Errorf("NewFixedWindow() = %v, want validation error", err)
			}
		})
	}

	fw, err := NewFixedWindow(Config{Redis: rdb, Key: "k", Rate: 1, FallbackToLocal: true, LocalLimiter: local})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, fw.config.Window, time.Second)
	testutil.AssertEqual(t, fw.config.RedisTimeout, 500*time.Millisecond)
	testutil.AssertEqual(t, fw.config.KeyTTL, time.Hour)
	testutil.AssertEqual(t, len(fw.InstanceID()), 36)
}

func TestWindowStart(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name   string
		t      time.Time
		window time.Duration
		want   time.Time
	}{
		{"aligned", base, time.Second, base},
		{"mid second", base.Add(400 * time.Millisecond), time.Second, base},
		{"minute window", base.Add(59 * time.Second), time.Minute, time.Unix(1_700_000_020, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := windowStart(tt.t, tt.window); !got.Equal(tt.want) {
				t.Errorf("windowStart() = %v, want %v", got, tt.want)
			}
		})
	}

	k := redisKeys("p")
	testutil.AssertEqual(t, k.windowKey(base), "p:window:1700000000000000000")
}

func TestFixedWindow_FallbackToLocal(t *testing.T) {
	fw, err := NewFixedWindow(Config{
		Redis:           unreachable(t),
		Key:             "fallback",
		Rate:            100,
		RedisTimeout:    100 * time.Millisecond,
		FallbackToLocal: true,
		LocalLimiter:    rate.NewLimiter(rate.Every(time.Hour), 2),
	})
	testutil.AssertNoError(t, err)

	ctx := context.Background()
	testutil.AssertEqual(t, fw.Allow(ctx), true)
	testutil.AssertEqual(t, fw.Allow(ctx), true)
	testutil.AssertEqual(t, fw.Allow(ctx), false)
}

func TestFixedWindow_FailsClosedWithoutFallback(t *testing.T) {
	fw, err := NewFixedWindow(Config{
		Redis:        unreachable(t),
		Key:          "closed",
		Rate:         100,
		RedisTimeout: 100 * time.Millisecond,
	})
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, fw.Allow(context.Background()), false)
	testutil.AssertEqual(t, fw.AllowN(context.Background(), 0), true)

	var rerr *RedisError
	_, err = fw.Stats(context.Background())
	if !errors.As(err, &rerr) {
		t.Errorf("Stats() = %v, want *RedisError", err)
	}
}

func TestFixedWindow_Redis(t *testing.T) {
	rdb := redisClient(t)
	ctx := context.Background()

	fw, err := NewFixedWindow(Config{
		Redis:  rdb,
		Key:    "roundflow:test:" + t.Name(),
		Rate:   3,
		Window: time.Hour,
	})
	testutil.AssertNoError(t, err)
	defer fw.Close()
	testutil.AssertNoError(t, fw.Reset(ctx))

	for i := 0; i < 3; i++ {
		if !fw.Allow(ctx) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if fw.Allow(ctx) {
		t.Error("fourth request should be denied")
	}
	if fw.AllowN(ctx, 2) {
		t.Error("batch over budget should be denied")
	}

	stats, err := fw.Stats(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stats.Remaining, int64(0))
	testutil.AssertEqual(t, stats.TotalRequests, int64(6))
	testutil.AssertEqual(t, stats.AllowedRequests, int64(3))
	testutil.AssertEqual(t, stats.DeniedRequests, int64(3))
	if len(stats.ActiveInstances) != 1 || stats.ActiveInstances[0] != fw.InstanceID() {
		t.Errorf("ActiveInstances = %v", stats.ActiveInstances)
	}

	testutil.AssertNoError(t, fw.Reset(ctx))
	testutil.AssertEqual(t, fw.Allow(ctx), true)
}

func TestFixedWindow_SharedAcrossInstances(t *testing.T) {
	rdb := redisClient(t)
	ctx := context.Background()
	cfg := Config{Redis: rdb, Key: "roundflow:test:" + t.Name(), Rate: 4, Window: time.Hour}

	a, err := NewFixedWindow(cfg)
	testutil.AssertNoError(t, err)
	defer a.Close()
	b, err := NewFixedWindow(cfg)
	testutil.AssertNoError(t, err)
	defer b.Close()
	testutil.AssertNoError(t, a.Reset(ctx))

	allowed := 0
	for i := 0; i < 4; i++ {
		if a.Allow(ctx) {
			allowed++
		}
		if b.Allow(ctx) {
			allowed++
		}
	}
	testutil.AssertEqual(t, allowed, 4)
}

