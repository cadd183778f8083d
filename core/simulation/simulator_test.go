package simulation

import (
	"errors"
	"math"
	"testing"

	"github.com/Matze99/solar-sim/core/model"
)

func series(values map[int]float64) []float64 {
	s := make([]float64, model.Hours)
	for i, v := range values {
		s[i] = v
	}
	return s
}

func baseParams() Params {
	return Params{
		Years:            1,
		MaxChargeRate:    100,
		MaxDischargeRate: 100,
	}
}

func TestSimulateValidation(t *testing.T) {
	sim := Simulator{}
	solar := series(nil)
	demand := series(nil)

	cases := []struct {
		name string
		run  func() error
	}{
		{"zero years", func() error {
			p := baseParams()
			p.Years = 0
			_, err := sim.Simulate(1, 1, solar, demand, p)
			return err
		}},
		{"degradation above one", func() error {
			p := baseParams()
			p.PVAnnualDegradation = 1.5
			_, err := sim.Simulate(1, 1, solar, demand, p)
			return err
		}},
		{"negative capacity", func() error {
			_, err := sim.Simulate(-1, 1, solar, demand, baseParams())
			return err
		}},
		{"short series", func() error {
			_, err := sim.Simulate(1, 1, solar[:5], demand, baseParams())
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			var cfgErr *model.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
		})
	}
}

func TestSimulateGreedyPolicy(t *testing.T) {
	// Hour 0: 10 produced against 4 demanded; the surplus of 6 charges the
	// 5-unit battery to full. Hour 1: no sun, 3 demanded, served from the
	// battery.
	solar := series(map[int]float64{0: 1})
	demand := series(map[int]float64{0: 4, 1: 3})
	sim := Simulator{}

	res, err := sim.Simulate(10, 5, solar, demand, baseParams())
	if err != nil {
		t.Fatal(err)
	}
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"production", res.Production, 10},
		{"direct consumption", res.DirectConsumption, 4},
		{"battery in", res.BatteryIn, 5},
		{"battery out", res.BatteryOut, 3},
		{"raw overproduction", res.OverproductionNoBattery, 6},
		{"overproduction", res.Overproduction, 1},
		{"demand", res.Demand, 7},
		{"autarky", res.Autarky, 1},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %g, want %g", c.name, c.got, c.want)
		}
	}
}

func TestSimulateChargeRateLimit(t *testing.T) {
	solar := series(map[int]float64{0: 1})
	demand := series(nil)
	p := baseParams()
	p.MaxChargeRate = 2

	sim := Simulator{}
	res, err := sim.Simulate(10, 50, solar, demand, p)
	if err != nil {
		t.Fatal(err)
	}
	if res.BatteryIn != 2 {
		t.Errorf("battery in = %g, want charge rate cap 2", res.BatteryIn)
	}
}

func TestSimulateDegradationCompounds(t *testing.T) {
	solar := series(map[int]float64{12: 1})
	demand := series(nil)
	p := baseParams()
	p.Years = 2
	p.PVAnnualDegradation = 0.1
	p.BatteryAnnualDegradation = 0.1

	sim := Simulator{}
	res, err := sim.Simulate(10, 5, solar, demand, p)
	if err != nil {
		t.Fatal(err)
	}
	// Year one produces 10, year two 9; degradation also applies after the
	// final year.
	if math.Abs(res.Production-19) > 1e-9 {
		t.Errorf("production = %g, want 19", res.Production)
	}
	if math.Abs(res.FinalPVOutputScale-0.81) > 1e-9 {
		t.Errorf("final pv scale = %g, want 0.81", res.FinalPVOutputScale)
	}
	if math.Abs(res.FinalBatteryCapacity-5*0.81) > 1e-9 {
		t.Errorf("final battery capacity = %g, want %g", res.FinalBatteryCapacity, 5*0.81)
	}
}

func TestSimulateYearsAreIndependentWithoutDegradation(t *testing.T) {
	solar := series(map[int]float64{0: 1, 5: 0.5})
	demand := series(map[int]float64{0: 2, 6: 1})
	sim := Simulator{}

	one, err := sim.Simulate(8, 4, solar, demand, baseParams())
	if err != nil {
		t.Fatal(err)
	}
	p := baseParams()
	p.Years = 3
	three, err := sim.Simulate(8, 4, solar, demand, p)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(three.Production-3*one.Production) > 1e-9 {
		t.Errorf("production = %g, want %g", three.Production, 3*one.Production)
	}
	if math.Abs(three.BatteryOut-3*one.BatteryOut) > 1e-9 {
		t.Errorf("battery out = %g, want %g", three.BatteryOut, 3*one.BatteryOut)
	}
	if math.Abs(three.Overproduction-3*one.Overproduction) > 1e-9 {
		t.Errorf("overproduction = %g, want %g", three.Overproduction, 3*one.Overproduction)
	}
}
