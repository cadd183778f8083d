// Package metrics defines the sink interface through which solve and sweep
// events reach the configured observability backends.
package metrics

import "time"

// SolveEvent describes one LP solve, successful or not.
type SolveEvent struct {
	RunID      string
	PVCapacity float64
	Duration   time.Duration
	Objective  float64
	Failed     bool
	Diagnostic string
}

// SweepEvent summarizes a finished capacity sweep.
type SweepEvent struct {
	SweepID  string
	Points   int
	Failures int
	Duration time.Duration
}

// Sink receives solver telemetry. Implementations must be safe for
// concurrent use; sweep workers record from multiple goroutines.
type Sink interface {
	RecordSolve(SolveEvent) error
	RecordSweep(SweepEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordSolve(SolveEvent) error { return nil }
func (NopSink) RecordSweep(SweepEvent) error { return nil }

// MultiSink fans events out to several sinks, returning the first error.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink combines the given sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordSolve(ev SolveEvent) error {
	for _, s := range m.sinks {
		if err := s.RecordSolve(ev); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSink) RecordSweep(ev SweepEvent) error {
	for _, s := range m.sinks {
		if err := s.RecordSweep(ev); err != nil {
			return err
		}
	}
	return nil
}
