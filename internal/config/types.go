package config

import (
	rferrors "github.com/vnykmshr/roundflow/pkg/common/errors"
	"github.com/vnykmshr/roundflow/pkg/logx"
	"github.com/vnykmshr/roundflow/pkg/scheduling/scheduler"
)

const module = "config"

// Config is the on-disk configuration of a roundflow process.
type Config struct {
	Scheduler SchedulerConfig `json:"scheduler"`
	Log       LogConfig       `json:"log"`
	Metrics   MetricsConfig   `json:"metrics"`
}

// SchedulerConfig controls the round robin loop.
//
// Delay is a Go duration string (e.g. "50ms", "1s"). Omitted or "0s" means
// the scheduler default.
type SchedulerConfig struct {
	Name           string `json:"name,omitempty"`
	Delay          string `json:"delay,omitempty"`
	DelayBefore    bool   `json:"delay_before,omitempty"`
	StopWhenNoTask bool   `json:"stop_when_no_task,omitempty"`
}

type LogConfig struct {
	Level   string        `json:"level,omitempty"`
	Console bool          `json:"console,omitempty"`
	JSON    bool          `json:"json,omitempty"`
	File    LogFileConfig `json:"file,omitempty"`
}

type LogFileConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	Path    string `json:"path,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty"`
	Addr      string `json:"addr,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

// Validate checks the fields that have no usable fallback.
func (c *Config) Validate() error {
	if _, err := ParseDurationField("scheduler.delay", c.Scheduler.Delay); err != nil {
		return rferrors.NewValidationError(module, "scheduler.delay", c.Scheduler.Delay, err.Error())
	}
	if c.Log.File.Enabled && c.Log.File.Path == "" {
		return rferrors.NewValidationError(module, "log.file.path", "", "required when file logging is enabled")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return rferrors.NewValidationError(module, "metrics.addr", "", "required when metrics are enabled").
			WithHint(`e.g. ":9090"`)
	}
	return nil
}

// SchedulerSettings returns the runtime knobs of the scheduler section.
func (c *Config) SchedulerSettings() (scheduler.Settings, error) {
	d, err := ParseDurationOrDefault("scheduler.delay", c.Scheduler.Delay, scheduler.DefaultDelay)
	if err != nil {
		return scheduler.Settings{}, err
	}
	return scheduler.Settings{
		Delay:          d,
		DelayBefore:    c.Scheduler.DelayBefore,
		StopWhenNoTask: c.Scheduler.StopWhenNoTask,
	}, nil
}

// SchedulerConfig builds a scheduler configuration from the file. Fields the
// file cannot express (context, sinks, registries) are left for the caller.
func (c *Config) SchedulerConfig() (scheduler.Config, error) {
	s, err := c.SchedulerSettings()
	if err != nil {
		return scheduler.Config{}, err
	}
	return scheduler.Config{
		Name:           c.Scheduler.Name,
		Delay:          s.Delay,
		DelayBefore:    s.DelayBefore,
		StopWhenNoTask: s.StopWhenNoTask,
	}, nil
}

// LogxConfig converts the log section.
func (c *Config) LogxConfig() logx.Config {
	return logx.Config{
		Level:   c.Log.Level,
		Console: c.Log.Console,
		JSON:    c.Log.JSON,
		File: logx.FileConfig{
			Enabled: c.Log.File.Enabled,
			Path:    c.Log.File.Path,
		},
	}
}

