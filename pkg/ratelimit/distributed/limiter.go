package distributed

import (
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	rferrors "github.com/vnykmshr/roundflow/pkg/common/errors"
	"github.com/vnykmshr/roundflow/pkg/common/validation"
)

const module = "distributed"

// Config holds configuration for the Redis fixed window limiter.
type Config struct {
	// Redis client for coordination
	Redis redis.UniversalClient

	// Key is the Redis key prefix for this limiter
	Key string

	// Rate is the number of events allowed per window
	Rate int64

	// Window is the length of one counting window (default: 1s)
	Window time.Duration

	// InstanceID identifies this process in the shared instance set
	// (default: random UUID)
	InstanceID string

	// FallbackToLocal enables local rate limiting if Redis is unavailable
	FallbackToLocal bool

	// LocalLimiter is used when Redis is unavailable (if FallbackToLocal is true)
	LocalLimiter *rate.Limiter

	// RedisTimeout is the timeout for Redis operations (default: 500ms)
	RedisTimeout time.Duration

	// KeyTTL is how long the stats and instance keys live (default: 1h)
	KeyTTL time.Duration
}

// DefaultConfig returns a default distributed rate limiter configuration.
func DefaultConfig() Config {
	return Config{
		Window:          time.Second,
		FallbackToLocal: true,
		RedisTimeout:    500 * time.Millisecond,
		KeyTTL:          time.Hour,
	}
}

// Stats holds distributed rate limiter statistics.
type Stats struct {
	Rate            int64
	Window          time.Duration
	Remaining       int64
	WindowStart     time.Time
	TotalRequests   int64
	AllowedRequests int64
	DeniedRequests  int64
	ActiveInstances []string
}

func validateConfig(config Config) error {
	if config.Redis == nil {
		return rferrors.NewValidationError(module, "redis", nil, "client is required")
	}
	if err := validation.ValidateNotEmpty(module, "key", config.Key); err != nil {
		return err
	}
	if config.Rate <= 0 {
		return rferrors.NewValidationError(module, "rate", config.Rate, "must be positive")
	}
	if config.Window < 0 {
		return rferrors.NewValidationError(module, "window", config.Window, "cannot be negative")
	}
	if config.FallbackToLocal && config.LocalLimiter == nil {
		return rferrors.NewValidationError(module, "local_limiter", nil, "required when fallback is enabled").
			WithHint("set LocalLimiter or disable FallbackToLocal")
	}
	return nil
}

func applyConfigDefaults(config Config) Config {
	if config.Window == 0 {
		config.Window = time.Second
	}
	if config.InstanceID == "" {
		config.InstanceID = uuid.NewString()
	}
	if config.RedisTimeout == 0 {
		config.RedisTimeout = 500 * time.Millisecond
	}
	if config.KeyTTL == 0 {
		config.KeyTTL = time.Hour
	}
	return config
}

// RedisError represents a Redis operation error.
type RedisError struct {
	Operation string
	Err       error
}

func (e *RedisError) Error() string {
	return "redis error in " + e.Operation + ": " + e.Err.Error()
}

func (e *RedisError) Unwrap() error {
	return e.Err
}
