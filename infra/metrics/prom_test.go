package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/Matze99/solar-sim/core/metrics"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatal(err)
	}
	err = sink.RecordSolve(coremetrics.SolveEvent{
		RunID:      "run-1",
		PVCapacity: 5,
		Duration:   120 * time.Millisecond,
		Objective:  42,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := sink.RecordSolve(coremetrics.SolveEvent{Failed: true, Diagnostic: "infeasible"}); err != nil {
		t.Fatal(err)
	}
	if err := sink.RecordSweep(coremetrics.SweepEvent{Points: 10, Failures: 1}); err != nil {
		t.Fatal(err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := map[string]bool{}
	for _, f := range families {
		found[f.GetName()] = true
	}
	for _, name := range []string{"sizing_solves_total", "sizing_solve_duration_seconds", "sizing_sweeps_total", "sizing_sweep_points"} {
		if !found[name] {
			t.Errorf("metric %s not registered", name)
		}
	}
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatal(err)
	}
	// Registering on the same registry reuses the existing collectors.
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}

func TestPromSinkNilRegistererDefaults(t *testing.T) {
	if _, err := NewPromSinkWithRegistry(nil); err != nil {
		t.Fatal(err)
	}
}
