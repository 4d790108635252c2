package distributed

import (
	"strconv"
	"time"
)

type keys struct {
	stats     string
	instances string
	window    string
}

func redisKeys(prefix string) keys {
	return keys{
		stats:     prefix + ":stats",
		instances: prefix + ":instances",
		window:    prefix + ":window",
	}
}

// windowStart truncates t to the start of its window. Windows are aligned to
// the Unix epoch so every process agrees on the boundaries.
func windowStart(t time.Time, window time.Duration) time.Time {
	n := t.UnixNano()
	return time.Unix(0, n-n%int64(window))
}

func (k keys) windowKey(start time.Time) string {
	return k.window + ":" + strconv.FormatInt(start.UnixNano(), 10)
}
