package metrics_test

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/client_golang/prometheus"

	"chassign/pkg/metrics"
)

func TestRecordRunUpdatesCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRegistry(reg)

	r.RecordRun(metrics.RunSummary{Assigned: 10, Failed: 2, Excluded: 3, Duration: 250 * time.Millisecond})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("unexpected error gathering metrics: %v", err)
	}

	found := make(map[string]*dto.MetricFamily)
	for _, f := range families {
		found[f.GetName()] = f
	}

	if _, ok := found["chassign_points_processed_total"]; !ok {
		t.Error("expected chassign_points_processed_total to be registered")
	}
	if _, ok := found["chassign_run_duration_seconds"]; !ok {
		t.Error("expected chassign_run_duration_seconds to be registered")
	}
	if _, ok := found["chassign_runs_total"]; !ok {
		t.Error("expected chassign_runs_total to be registered")
	}
}

func TestRecordRunMarksShortfallWhenPointsFail(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRegistry(reg)
	r.RecordRun(metrics.RunSummary{Assigned: 5, Failed: 1})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("unexpected error gathering metrics: %v", err)
	}

	for _, f := range families {
		if f.GetName() != "chassign_runs_total" {
			continue
		}
		for _, m := range f.Metric {
			for _, l := range m.Label {
				if l.GetName() == "shortfall" && l.GetValue() == "true" && m.GetCounter().GetValue() == 1 {
					return
				}
			}
		}
	}
	t.Error("expected one run_total{shortfall=true} sample")
}
