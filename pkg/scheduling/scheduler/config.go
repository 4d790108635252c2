package scheduler

import (
	"context"
	"time"

	"github.com/vnykmshr/roundflow/pkg/logx"
	"github.com/vnykmshr/roundflow/pkg/metrics"
)

// DefaultDelay is the tick delay used when Config.Delay is not positive.
const DefaultDelay = 50 * time.Millisecond

// Config holds round robin scheduler configuration.
type Config struct {
	// Name labels log lines and metrics (default: "roundrobin").
	Name string

	// Delay is the pause after every tick (default: 50ms).
	Delay time.Duration

	// DelayBefore makes the loop wait Delay once before the first tick.
	DelayBefore bool

	// StopWhenNoTask cancels the scheduler when removal empties the registry.
	StopWhenNoTask bool

	// Context is the parent of every loop job (default: context.Background()).
	Context context.Context

	// ErrorSink receives task body failures. Defaults to Logger when it is
	// set, otherwise to an info level console logger.
	ErrorSink ErrorSink

	// Logger receives lifecycle events at debug/info level (default: no-op).
	Logger logx.Logger

	// Metrics enables Prometheus instrumentation.
	Metrics metrics.Config
}

// Settings are the knobs that can change while the scheduler runs.
type Settings struct {
	Delay          time.Duration
	DelayBefore    bool
	StopWhenNoTask bool
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "roundrobin"
	}
	if c.Delay <= 0 {
		c.Delay = DefaultDelay
	}
	if c.Context == nil {
		c.Context = context.Background()
	}
	if c.Logger.IsZero() {
		c.Logger = logx.Nop()
		if c.ErrorSink == nil {
			c.ErrorSink = logx.NewConsole("info")
		}
	}
	if c.ErrorSink == nil {
		c.ErrorSink = c.Logger
	}
	return c
}
