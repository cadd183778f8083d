// Package metrics provides the Prometheus and InfluxDB implementations of
// the core metrics sink.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/Matze99/solar-sim/core/metrics"
)

// PromSink records solver events in Prometheus metrics.
type PromSink struct {
	solves   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	sweeps   prometheus.Counter
	points   prometheus.Gauge
}

// NewPromSink registers solver metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sizing_solves_total",
		Help: "Total number of LP sizing solves",
	}, []string{"failed"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sizing_solve_duration_seconds",
		Help:    "Wall-clock time of one LP sizing solve",
		Buckets: prometheus.DefBuckets,
	}, []string{"failed"})
	sweeps := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sizing_sweeps_total",
		Help: "Total number of finished capacity sweeps",
	})
	points := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sizing_sweep_points",
		Help: "Number of points in the last capacity sweep",
	})

	if err := reg.Register(solves); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			solves = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(sweeps); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			sweeps = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(points); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			points = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{solves: solves, duration: duration, sweeps: sweeps, points: points}, nil
}

// RecordSolve counts the solve and observes its duration.
func (s *PromSink) RecordSolve(ev coremetrics.SolveEvent) error {
	failed := strconv.FormatBool(ev.Failed)
	s.solves.WithLabelValues(failed).Inc()
	s.duration.WithLabelValues(failed).Observe(ev.Duration.Seconds())
	return nil
}

// RecordSweep counts the sweep and exposes its size.
func (s *PromSink) RecordSweep(ev coremetrics.SweepEvent) error {
	s.sweeps.Inc()
	s.points.Set(float64(ev.Points))
	return nil
}
