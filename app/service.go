// Package app wires the configuration, input provider and metrics sinks
// into the high-level operations the CLI exposes.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Matze99/solar-sim/config"
	"github.com/Matze99/solar-sim/core/finance"
	coremetrics "github.com/Matze99/solar-sim/core/metrics"
	"github.com/Matze99/solar-sim/core/model"
	"github.com/Matze99/solar-sim/core/simulation"
	"github.com/Matze99/solar-sim/core/sizing"
	"github.com/Matze99/solar-sim/core/timeseries"
	"github.com/Matze99/solar-sim/infra/logger"
	"github.com/Matze99/solar-sim/infra/metrics"
)

// Service orchestrates the sizing, sweep, simulation and ROI operations.
type Service struct {
	cfg      *config.Config
	provider *timeseries.Provider
	sink     coremetrics.Sink
	log      logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	sink, err := metrics.NewSink(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	return &Service{
		cfg:      cfg,
		provider: timeseries.NewProvider(),
		sink:     sink,
		log:      logger.New("service"),
	}, nil
}

// StartProm serves the Prometheus endpoint when enabled, blocking until ctx
// is cancelled. A disabled endpoint returns immediately.
func (s *Service) StartProm(ctx context.Context) error {
	if !s.cfg.Metrics.PrometheusEnabled {
		return nil
	}
	return metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort)
}

// Size resolves the configuration and solves the sizing model once.
func (s *Service) Size() (*model.SizingResult, error) {
	spec, in, err := s.cfg.ResolveSpec(s.provider)
	if err != nil {
		return nil, err
	}
	m, err := sizing.BuildModel(spec, in)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := m.Solve()
	ev := coremetrics.SolveEvent{Duration: time.Since(start)}
	if spec.PVCapacity.Fixed {
		ev.PVCapacity = spec.PVCapacity.Value
	}
	if err != nil {
		ev.Failed = true
		ev.Diagnostic = err.Error()
	} else {
		ev.RunID = res.RunID
		ev.Objective = res.Objective
		ev.PVCapacity = res.Capacities.PV
	}
	if serr := s.sink.RecordSolve(ev); serr != nil {
		s.log.Warnf("record solve: %v", serr)
	}
	if err != nil {
		return nil, err
	}
	s.log.Infof("sizing run %s: pv=%.2f grid=%.2f objective=%.2f",
		res.RunID, res.Capacities.PV, res.Capacities.Grid, res.Objective)
	return res, nil
}

// Sweep solves the model over the configured PV capacity grid.
func (s *Service) Sweep() ([]sizing.SweepPoint, error) {
	spec, in, err := s.cfg.ResolveSpec(s.provider)
	if err != nil {
		return nil, err
	}
	sweeper := sizing.Sweeper{
		Spec:    spec,
		Inputs:  in,
		Workers: s.cfg.Sweep.Workers,
		Log:     s.log,
		Sink:    s.sink,
	}
	grid := sizing.CapacityGrid(s.cfg.Sweep.Min, s.cfg.Sweep.Max, s.cfg.Sweep.Step)
	if len(grid) == 0 {
		return nil, fmt.Errorf("sweep: empty capacity grid for [%g, %g] step %g",
			s.cfg.Sweep.Min, s.cfg.Sweep.Max, s.cfg.Sweep.Step)
	}
	return sweeper.Run(grid)
}

// Simulate solves the sizing model and replays the solved capacities over
// the configured multi-year horizon with degradation.
func (s *Service) Simulate() (*model.SizingResult, *model.SimulationResult, error) {
	res, err := s.Size()
	if err != nil {
		return nil, nil, err
	}
	solar, err := s.provider.Solar(s.cfg.Data.SolarPath)
	if err != nil {
		return nil, nil, err
	}
	sim := simulation.Simulator{Log: s.log}
	out, err := sim.Simulate(res.Capacities.PV, res.Capacities.Battery,
		solar, res.Hourly.TotalDemand, s.cfg.SimulationParams())
	if err != nil {
		return nil, nil, err
	}
	return res, out, nil
}

// ROI solves the sizing model and assesses the investment against doing
// nothing.
func (s *Service) ROI() (*model.SizingResult, finance.Assessment, model.ROIResult, error) {
	res, err := s.Size()
	if err != nil {
		return nil, finance.Assessment{}, model.ROIResult{}, err
	}
	assessment := s.cfg.Assessment(res.Demand)
	return res, assessment, assessment.Evaluate(res), nil
}
