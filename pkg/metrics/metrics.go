// Package metrics provides Prometheus instrumentation for roundflow components.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric name unless Config.Namespace overrides it.
const DefaultNamespace = "roundflow"

// Registry holds all metric instances for roundflow components.
type Registry struct {
	// Scheduler Metrics
	SchedulerTicks        *prometheus.CounterVec
	SchedulerIdleTicks    *prometheus.CounterVec
	SchedulerRunning      *prometheus.GaugeVec
	RegisteredTasks       *prometheus.GaugeVec
	TasksDispatched       *prometheus.CounterVec
	TasksFailed           *prometheus.CounterVec
	TaskPanics            *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec

	// Guard Metrics
	GuardDecisions *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by roundflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return newRegistry(reg, DefaultNamespace)
}

var (
	registriesMu sync.Mutex
	registries   = map[registryKey]*Registry{}
)

type registryKey struct {
	reg       prometheus.Registerer
	namespace string
}

// New builds a registry from cfg. Calls with the same registerer and
// namespace share one Registry, so collectors are never registered twice.
func New(cfg Config) *Registry {
	ns := cfg.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if reg == prometheus.DefaultRegisterer && ns == DefaultNamespace {
		return DefaultRegistry
	}

	registriesMu.Lock()
	defer registriesMu.Unlock()

	key := registryKey{reg: reg, namespace: ns}
	if r, ok := registries[key]; ok {
		return r
	}
	r := newRegistry(reg, ns)
	registries[key] = r
	return r
}

func newRegistry(reg prometheus.Registerer, namespace string) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		SchedulerTicks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "ticks_total",
				Help:      "Total number of dispatch loop iterations",
			},
			[]string{"scheduler_name"},
		),

		SchedulerIdleTicks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "idle_ticks_total",
				Help:      "Total number of ticks that found no task to run",
			},
			[]string{"scheduler_name"},
		),

		SchedulerRunning: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "running",
				Help:      "Whether the scheduler loop is running (1) or idle (0)",
			},
			[]string{"scheduler_name"},
		),

		RegisteredTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "tasks",
				Help:      "Number of tasks currently registered",
			},
			[]string{"scheduler_name"},
		),

		TasksDispatched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "dispatched_total",
				Help:      "Total number of task bodies invoked",
			},
			[]string{"scheduler_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "failed_total",
				Help:      "Total number of task bodies that returned an error or panicked",
			},
			[]string{"scheduler_name"},
		),

		TaskPanics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "panics_total",
				Help:      "Total number of task bodies that panicked",
			},
			[]string{"scheduler_name"},
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing task bodies",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"scheduler_name"},
		),

		GuardDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "guard",
				Name:      "decisions_total",
				Help:      "Task body guard decisions by outcome",
			},
			[]string{"guard", "name", "outcome"},
		),
	}
}
