package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/lenoxlabs/lenox/internal/metrics"
)

func TestMetrics_RecordDispatch(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.RecordDispatch("search", 20*time.Millisecond)
	m.RecordDispatch("search", 30*time.Millisecond)
	m.RecordDispatch("general", 5*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(families) == 0 {
		t.Fatal("Gather() returned no metric families")
	}

	got := testutil.ToFloat64(m.RecordedDispatches("search"))
	if got != 2 {
		t.Errorf("dispatches_total{intent=search} = %v, want 2", got)
	}
}

func TestMetrics_RecordFailure(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.RecordFailure("oracle")
	m.RecordFailure("oracle")
	m.RecordFailure("search")

	if got := testutil.ToFloat64(m.RecordedFailures("oracle")); got != 2 {
		t.Errorf("collaborator_failures_total{collaborator=oracle} = %v, want 2", got)
	}
}

// A nil Metrics must be a safe no-op so instrumentation stays optional.
func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics
	m.RecordDispatch("general", time.Millisecond)
	m.RecordFailure("oracle")
}
