package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Example_customRegistry demonstrates using a custom Prometheus registry.
func Example_customRegistry() {
	customRegistry := prometheus.NewRegistry()
	registry := NewRegistry(customRegistry)

	registry.SchedulerTicks.WithLabelValues("frames").Add(3)
	registry.TasksDispatched.WithLabelValues("frames").Add(2)
	registry.SchedulerIdleTicks.WithLabelValues("frames").Inc()

	fmt.Println(testutil.ToFloat64(registry.SchedulerTicks.WithLabelValues("frames")))
	fmt.Println(testutil.ToFloat64(registry.TasksDispatched.WithLabelValues("frames")))

	// Output:
	// 3
	// 2
}

// Example_configuration demonstrates different metrics configurations.
func Example_configuration() {
	defaultConfig := DefaultConfig()
	fmt.Printf("Default enabled: %v\n", defaultConfig.Enabled)
	fmt.Printf("Default namespace: %s\n", defaultConfig.Namespace)

	customConfig := Config{
		Enabled:   false,
		Namespace: "myapp",
	}
	fmt.Printf("Custom enabled: %v\n", customConfig.Enabled)
	fmt.Printf("Custom namespace: %s\n", customConfig.Namespace)

	// Output:
	// Default enabled: true
	// Default namespace: roundflow
	// Custom enabled: false
	// Custom namespace: myapp
}
