// Package simulation evaluates how an already-sized PV/battery system
// behaves as it ages. Unlike the sizing LP it does not optimize anything:
// a greedy hourly policy charges the battery from surplus and discharges it
// into deficit, year after year, while PV output and battery capacity decay
// by their annual degradation rates.
package simulation

import (
	"github.com/Matze99/solar-sim/core/model"
	"github.com/Matze99/solar-sim/infra/logger"
)

// Params controls a multi-year run.
type Params struct {
	Years int

	BatteryHourlyLoss        float64 // self-discharge per hour, 0..1
	BatteryAnnualDegradation float64 // capacity loss per year, 0..1
	PVAnnualDegradation      float64 // output loss per year, 0..1

	MaxChargeRate    float64 // energy per hour
	MaxDischargeRate float64 // energy per hour
}

func (p Params) validate() error {
	if p.Years <= 0 {
		return model.ConfigErrorf("simulation.years", "must be positive, got %d", p.Years)
	}
	for name, v := range map[string]float64{
		"simulation.battery_hourly_loss":        p.BatteryHourlyLoss,
		"simulation.battery_annual_degradation": p.BatteryAnnualDegradation,
		"simulation.pv_annual_degradation":      p.PVAnnualDegradation,
	} {
		if v < 0 || v > 1 {
			return model.ConfigErrorf(name, "must be in [0,1], got %g", v)
		}
	}
	if p.MaxChargeRate < 0 || p.MaxDischargeRate < 0 {
		return model.ConfigErrorf("simulation", "charge/discharge rates must be non-negative")
	}
	return nil
}

// Simulator runs the greedy dispatch heuristic.
type Simulator struct {
	Log logger.Logger
}

// yearTotals accumulates aggregates of a single simulated year.
type yearTotals struct {
	production        float64
	directConsumption float64
	batteryIn         float64
	batteryOut        float64
	rawOverproduction float64
}

// Simulate runs the policy over the requested number of years for a fixed
// capacity pair. The solar and demand series describe year one; PV output
// is re-derived each year from the compounding degradation factor while
// demand stays constant.
func (s *Simulator) Simulate(pvCapacity, batteryCapacity float64, solar, demand []float64, p Params) (*model.SimulationResult, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := model.CheckSeriesLength("solar", solar); err != nil {
		return nil, err
	}
	if err := model.CheckSeriesLength("demand", demand); err != nil {
		return nil, err
	}
	if pvCapacity < 0 || batteryCapacity < 0 {
		return nil, model.ConfigErrorf("simulation", "capacities must be non-negative")
	}

	log := s.Log
	if log == nil {
		log = logger.NopLogger{}
	}

	production := make([]float64, len(solar))
	for t, irr := range solar {
		production[t] = pvCapacity * irr
	}
	annualDemand := 0.0
	for _, d := range demand {
		annualDemand += d
	}

	res := &model.SimulationResult{Years: p.Years}
	capacity := batteryCapacity
	pvScale := 1.0

	for year := 0; year < p.Years; year++ {
		totals := s.runYear(production, demand, capacity, p)
		res.Production += totals.production
		res.DirectConsumption += totals.directConsumption
		res.BatteryIn += totals.batteryIn
		res.BatteryOut += totals.batteryOut
		res.OverproductionNoBattery += totals.rawOverproduction

		log.Debugf("year %d: production=%.1f direct=%.1f battery_out=%.1f",
			year, totals.production, totals.directConsumption, totals.batteryOut)

		// End-of-year degradation compounds into the next year.
		capacity *= 1 - p.BatteryAnnualDegradation
		pvScale *= 1 - p.PVAnnualDegradation
		for t := range production {
			production[t] *= 1 - p.PVAnnualDegradation
		}
	}

	res.Demand = annualDemand * float64(p.Years)
	res.Overproduction = res.OverproductionNoBattery - res.BatteryIn
	if res.Demand > 0 {
		res.Autarky = (res.DirectConsumption + res.BatteryOut) / res.Demand
	}
	res.FinalBatteryCapacity = capacity
	res.FinalPVOutputScale = pvScale
	return res, nil
}

// runYear applies the greedy hourly policy for one year, starting from an
// empty battery.
func (s *Simulator) runYear(production, demand []float64, capacity float64, p Params) yearTotals {
	var totals yearTotals
	level := 0.0

	for t := range production {
		over := production[t] - demand[t]

		totals.production += production[t]
		if production[t] < demand[t] {
			totals.directConsumption += production[t]
		} else {
			totals.directConsumption += demand[t]
			totals.rawOverproduction += over
		}

		level *= 1 - p.BatteryHourlyLoss

		switch {
		case over > 0:
			charge := min3(over, capacity-level, p.MaxChargeRate)
			if charge > 0 {
				level += charge
				totals.batteryIn += charge
			}
		case over < 0 && level > 0:
			discharge := min3(level, -over, p.MaxDischargeRate)
			if discharge > 0 {
				level -= discharge
				totals.batteryOut += discharge
			}
		}
	}
	return totals
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
