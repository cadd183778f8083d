package config

import (
	"fmt"

	"github.com/Matze99/solar-sim/core/finance"
	"github.com/Matze99/solar-sim/core/heating"
	"github.com/Matze99/solar-sim/core/model"
	"github.com/Matze99/solar-sim/core/simulation"
	"github.com/Matze99/solar-sim/core/sizing"
	"github.com/Matze99/solar-sim/core/timeseries"
)

// ResolveSpec loads the input series through the provider and turns the
// configuration into the sizing spec and inputs. Optional sections become
// present subsystems; absent sections stay nil.
func (c *Config) ResolveSpec(p *timeseries.Provider) (sizing.Spec, sizing.Inputs, error) {
	var spec sizing.Spec
	var in sizing.Inputs

	solar, err := p.Solar(c.Data.SolarPath)
	if err != nil {
		return spec, in, err
	}
	hotWaterDemand, electricity, err := p.Demand(c.Data.DemandPath)
	if err != nil {
		return spec, in, err
	}
	demand, err := c.scaleDemand(electricity)
	if err != nil {
		return spec, in, err
	}
	if c.HotWater != nil {
		// The tank trades against the electric balance, so its demand
		// joins the load the balance must cover.
		combined := make([]float64, len(demand))
		for i := range combined {
			combined[i] = demand[i] + hotWaterDemand[i]
		}
		demand = combined
	}

	spec = sizing.Spec{
		PVUnitCost:          c.System.PVUnitCost,
		GridUnitCost:        c.System.GridUnitCost,
		Annuity:             c.System.Annuity,
		FeedInTariff:        c.System.FeedInTariff,
		OptimizeForAutonomy: c.System.OptimizeForAutonomy,
		PVCapacity:          capacityBound(c.System.PVFixedCapacity, c.System.PVMaxCapacity),
	}

	if b := c.Battery; b != nil {
		spec.Subsystems.Battery = b.storageSpec()
	}
	if hw := c.HotWater; hw != nil {
		spec.Subsystems.HotWater = hw.storageSpec()
	}
	if ev := c.EV; ev != nil {
		window := model.ChargeDay
		if ev.ChargeAtNight {
			window = model.ChargeNight
		}
		spec.Subsystems.EV = &model.EVSpec{Window: window, DailyEnergy: ev.DailyEnergy()}
	}
	if hp := c.HeatPump; hp != nil {
		hpSpec, err := c.resolveHeatPump(p)
		if err != nil {
			return spec, in, err
		}
		spec.Subsystems.HeatPump = hpSpec
	}

	in = sizing.Inputs{
		Solar:  solar,
		Demand: demand,
		Rate:   c.Tariff.Schedule().YearlyRates(),
	}
	return spec, in, nil
}

func (c *Config) scaleDemand(base []float64) ([]float64, error) {
	if len(c.Data.MonthlyDemandKWh) == 12 {
		var targets timeseries.MonthlyDemand
		copy(targets[:], c.Data.MonthlyDemandKWh)
		return timeseries.ScaleToMonthlyTargets(base, targets)
	}
	if c.Data.AnnualDemandKWh > 0 {
		return timeseries.ScaleToAnnualTotal(base, c.Data.AnnualDemandKWh)
	}
	return base, nil
}

func (c *storageConfig) storageSpec() *model.StorageSpec {
	return &model.StorageSpec{
		Params: model.StorageParams{
			ChargeEfficiency:    c.ChargeEfficiency,
			DischargeEfficiency: c.DischargeEfficiency,
			HourlyLoss:          c.HourlyLoss,
			CRate:               c.CRate,
		},
		Capacity: capacityBound(c.FixedCapacity, c.MaxCapacity),
		UnitCost: c.UnitCost,
	}
}

func capacityBound(fixed *float64, max float64) model.CapacityBound {
	if fixed != nil {
		return model.FixedCapacity(*fixed)
	}
	return model.BoundedCapacity(max)
}

// resolveHeatPump derives the hourly thermal demand from the when2heat
// profile and the insulation table, then fixes the pump's electricity draw
// through the COP series.
func (c *Config) resolveHeatPump(p *timeseries.Provider) (*model.HeatPumpSpec, error) {
	hp := c.HeatPump
	if c.Data.When2HeatPath == "" {
		return nil, fmt.Errorf("heat_pump: data.when2heat_path is required")
	}

	medium := timeseries.MediumRadiator
	if hp.Medium == "floor" {
		medium = timeseries.MediumFloor
	}
	cop, err := p.COP(c.Data.When2HeatPath, medium)
	if err != nil {
		return nil, err
	}

	bt, period, std, err := hp.building()
	if err != nil {
		return nil, err
	}
	profile, err := p.HeatProfile(c.Data.When2HeatPath, timeseries.BuildingClass(heating.ProfileClass(bt)))
	if err != nil {
		return nil, err
	}

	annual := hp.AnnualHeatDemandKWh
	if annual == 0 {
		perM2, err := heating.AnnualDemandPerM2(bt, period, std)
		if err != nil {
			return nil, err
		}
		annual = perM2 * hp.AreaM2
	}

	heatDemand, err := heating.ScaleProfile(profile, annual)
	if err != nil {
		return nil, err
	}
	consumption, err := heating.PumpElectricity(heatDemand, cop)
	if err != nil {
		return nil, err
	}
	return &model.HeatPumpSpec{
		Consumption: consumption,
		HeatDemand:  heatDemand,
		UnitCost:    hp.UnitCost,
	}, nil
}

// building parses the section's enum strings.
func (c HeatPumpConfig) building() (heating.BuildingType, heating.ConstructionPeriod, heating.InsulationStandard, error) {
	var bt heating.BuildingType
	switch c.BuildingType {
	case "single_family":
		bt = heating.SingleFamily
	case "terraced":
		bt = heating.Terraced
	case "multi_family":
		bt = heating.MultiFamily
	case "apartment":
		bt = heating.Apartment
	default:
		return 0, 0, 0, fmt.Errorf("heat_pump: unknown building_type %q", c.BuildingType)
	}

	var period heating.ConstructionPeriod
	switch c.ConstructionPeriod {
	case "before_1900":
		period = heating.Before1900
	case "1901_1936":
		period = heating.Between1901And1936
	case "1937_1959":
		period = heating.Between1937And1959
	case "1960_1979":
		period = heating.Between1960And1979
	case "1980_2006":
		period = heating.Between1980And2006
	case "after_2007":
		period = heating.After2007
	default:
		return 0, 0, 0, fmt.Errorf("heat_pump: unknown construction_period %q", c.ConstructionPeriod)
	}

	var std heating.InsulationStandard
	switch c.InsulationStandard {
	case "poor":
		std = heating.InsulationPoor
	case "moderate":
		std = heating.InsulationModerate
	case "good":
		std = heating.InsulationGood
	default:
		return 0, 0, 0, fmt.Errorf("heat_pump: unknown insulation_standard %q", c.InsulationStandard)
	}
	return bt, period, std, nil
}

// SimulationParams maps the simulation section onto the simulator's
// parameter struct.
func (c *Config) SimulationParams() simulation.Params {
	return simulation.Params{
		Years:                    c.Simulation.Years,
		BatteryHourlyLoss:        c.Simulation.BatteryHourlyLoss,
		BatteryAnnualDegradation: c.Simulation.BatteryAnnualDegradation,
		PVAnnualDegradation:      c.Simulation.PVAnnualDegradation,
		MaxChargeRate:            c.Simulation.MaxChargeRate,
		MaxDischargeRate:         c.Simulation.MaxDischargeRate,
	}
}

// Assessment builds the financial assessment from the finance, tariff and
// cost sections. The baseline rate is the demand-weighted tariff average
// for tiered schedules; annualDemand is the scaled yearly electricity total.
func (c *Config) Assessment(annualDemand float64) finance.Assessment {
	a := finance.Assessment{
		PVUnitCost:      c.System.PVUnitCost,
		GridUnitCost:    c.System.GridUnitCost,
		AnnualDemandKWh: annualDemand,
		PriceIncrease:   c.Finance.PriceIncrease,
		OtherYearlyCost: c.Finance.OtherYearlyCost,
		Years:           c.Finance.Years,
	}
	if a.Years == 0 {
		a.Years = c.Simulation.Years
	}
	if c.Battery != nil {
		a.BatteryUnitCost = c.Battery.UnitCost
	}
	if c.Tariff.FlatRate != nil {
		a.GridRate = *c.Tariff.FlatRate
	} else {
		rates := c.Tariff.Schedule().YearlyRates()
		sum := 0.0
		for _, r := range rates {
			sum += r
		}
		a.GridRate = sum / float64(len(rates))
	}
	return a
}
