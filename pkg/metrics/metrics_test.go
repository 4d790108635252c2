package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_DefaultRegistryReused(t *testing.T) {
	if New(Config{Enabled: true}) != DefaultRegistry {
		t.Error("nil registerer should reuse DefaultRegistry")
	}
	if New(DefaultConfig()) != DefaultRegistry {
		t.Error("default config should reuse DefaultRegistry")
	}
}

func TestNew_CustomNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(Config{Enabled: true, Registry: reg, Namespace: "myapp"})

	r.SchedulerTicks.WithLabelValues("s").Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "myapp_scheduler_ticks_total" {
			found = true
		}
		if !strings.HasPrefix(f.GetName(), "myapp_") {
			t.Errorf("metric %q does not use custom namespace", f.GetName())
		}
	}
	if !found {
		t.Error("myapp_scheduler_ticks_total not gathered")
	}
}

func TestRegistry_GuardDecisions(t *testing.T) {
	r := NewRegistry(prometheus.NewRegistry())

	r.GuardDecisions.WithLabelValues("rate", "poll", "allowed").Add(2)
	r.GuardDecisions.WithLabelValues("rate", "poll", "skipped").Inc()

	if got := testutil.ToFloat64(r.GuardDecisions.WithLabelValues("rate", "poll", "skipped")); got != 1 {
		t.Errorf("skipped = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(r.GuardDecisions); got != 2 {
		t.Errorf("series = %d, want 2", got)
	}
}

func TestNew_SharedPerRegistererAndNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := Config{Enabled: true, Registry: reg, Namespace: "shared"}

	a := New(cfg)
	b := New(cfg)
	if a != b {
		t.Error("same registerer and namespace should share a Registry")
	}

	other := New(Config{Enabled: true, Registry: reg, Namespace: "other"})
	if other == a {
		t.Error("different namespace should get its own Registry")
	}
}
