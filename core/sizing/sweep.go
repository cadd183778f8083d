package sizing

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Matze99/solar-sim/core/metrics"
	"github.com/Matze99/solar-sim/core/model"
	"github.com/Matze99/solar-sim/infra/logger"
)

// SweepPoint is the outcome of one sweep iteration. Failed points keep a
// zero-valued curve entry instead of aborting the batch.
type SweepPoint struct {
	PVCapacity float64
	Result     *model.SizingResult
	Err        error
}

// Curve is the per-capacity aggregate view of a sweep, index-aligned with
// the capacity grid. Failed points are zeros.
type Curve struct {
	PVCapacity     []float64
	PVUsed         []float64
	GridEnergy     []float64
	Overproduction []float64
	Objective      []float64
}

// Sweeper runs independent sizing solves over a grid of fixed PV
// capacities. Iterations share only the read-only input series, so they run
// concurrently on a bounded worker pool.
type Sweeper struct {
	Spec    Spec
	Inputs  Inputs
	Workers int
	Log     logger.Logger
	Sink    metrics.Sink
}

// CapacityGrid expands [min, max] with the given step into the sweep grid,
// endpoints inclusive.
func CapacityGrid(min, max, step float64) []float64 {
	if step <= 0 || max < min {
		return nil
	}
	var grid []float64
	for v := min; v <= max+step/2; v += step {
		grid = append(grid, v)
	}
	return grid
}

// Run solves one model per capacity point. A SolverError fails only its own
// point; any other error (bad configuration) aborts the sweep, since every
// remaining point would fail identically.
func (s *Sweeper) Run(capacities []float64) ([]SweepPoint, error) {
	log := s.Log
	if log == nil {
		log = logger.NopLogger{}
	}
	sink := s.Sink
	if sink == nil {
		sink = metrics.NopSink{}
	}
	workers := s.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(capacities) {
		workers = len(capacities)
	}

	sweepID := uuid.NewString()
	start := time.Now()
	points := make([]SweepPoint, len(capacities))

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				points[i] = s.solvePoint(capacities[i], log, sink)
			}
		}()
	}
	for i := range capacities {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	failures := 0
	for _, pt := range points {
		if pt.Err != nil {
			var solverErr *SolverError
			if !errors.As(pt.Err, &solverErr) {
				return nil, pt.Err
			}
			failures++
		}
	}
	if err := sink.RecordSweep(metrics.SweepEvent{
		SweepID:  sweepID,
		Points:   len(points),
		Failures: failures,
		Duration: time.Since(start),
	}); err != nil {
		log.Warnf("record sweep: %v", err)
	}
	log.Infof("sweep %s: %d points, %d failures in %s", sweepID, len(points), failures, time.Since(start))
	return points, nil
}

func (s *Sweeper) solvePoint(capacity float64, log logger.Logger, sink metrics.Sink) SweepPoint {
	spec := s.Spec
	spec.PVCapacity = model.FixedCapacity(capacity)

	start := time.Now()
	pt := SweepPoint{PVCapacity: capacity}
	m, err := BuildModel(spec, s.Inputs)
	if err != nil {
		pt.Err = err
		return pt
	}
	res, err := m.Solve()
	ev := metrics.SolveEvent{PVCapacity: capacity, Duration: time.Since(start)}
	if err != nil {
		pt.Err = err
		ev.Failed = true
		ev.Diagnostic = err.Error()
		log.Warnf("sweep point pv=%g failed: %v", capacity, err)
	} else {
		pt.Result = res
		ev.RunID = res.RunID
		ev.Objective = res.Objective
	}
	if serr := sink.RecordSolve(ev); serr != nil {
		log.Warnf("record solve: %v", serr)
	}
	return pt
}

// CurveOf flattens sweep points into plottable per-capacity series, zeros
// standing in for failed points.
func CurveOf(points []SweepPoint) Curve {
	c := Curve{
		PVCapacity:     make([]float64, len(points)),
		PVUsed:         make([]float64, len(points)),
		GridEnergy:     make([]float64, len(points)),
		Overproduction: make([]float64, len(points)),
		Objective:      make([]float64, len(points)),
	}
	for i, pt := range points {
		c.PVCapacity[i] = pt.PVCapacity
		if pt.Result == nil {
			continue
		}
		c.PVUsed[i] = pt.Result.PVProduction - pt.Result.Overproduction
		c.GridEnergy[i] = pt.Result.GridEnergy
		c.Overproduction[i] = pt.Result.Overproduction
		c.Objective[i] = pt.Result.Objective
	}
	return c
}
