// Package metrics provides Prometheus instrumentation for roundflow components.
//
// Components accept a metrics.Config and only record when it is enabled:
//
//	rr := scheduler.NewWithConfig(scheduler.Config{
//		Name:    "frames",
//		Metrics: metrics.Config{Enabled: true},
//	})
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation, e.g. in tests:
//
//	reg := prometheus.NewRegistry()
//	rr := scheduler.NewWithConfig(scheduler.Config{
//		Metrics: metrics.Config{Enabled: true, Registry: reg},
//	})
//
// New returns one shared *Registry per registerer and namespace, so several
// components can be configured with the same metrics.Config.
//
// # Available Metrics
//
// Scheduler metrics, labelled by scheduler_name:
//
//   - roundflow_scheduler_ticks_total
//   - roundflow_scheduler_idle_ticks_total
//   - roundflow_scheduler_running
//   - roundflow_scheduler_tasks
//   - roundflow_scheduler_dispatched_total
//   - roundflow_scheduler_failed_total
//   - roundflow_scheduler_panics_total
//   - roundflow_scheduler_task_duration_seconds
//
// Guard metrics, labelled by guard, name and outcome (allowed, skipped,
// retried, exhausted, expired):
//
//   - roundflow_guard_decisions_total
package metrics
