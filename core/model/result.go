package model

// HourlySeries collects the solved per-hour values of a sizing run. Slices
// for absent subsystems are all-zero but always length Hours so downstream
// reporting can index them uniformly.
type HourlySeries struct {
	PVUsed          []float64 `json:"pv_used"`
	Overproduction  []float64 `json:"overproduction"`
	Grid            []float64 `json:"grid"`
	BatteryLevel    []float64 `json:"battery_level"`
	BatteryIn       []float64 `json:"battery_in"`
	BatteryOut      []float64 `json:"battery_out"`
	HotWaterLevel   []float64 `json:"hot_water_level"`
	HotWaterIn      []float64 `json:"hot_water_in"`
	HotWaterOut     []float64 `json:"hot_water_out"`
	EVCharge        []float64 `json:"ev_charge"`
	HeatPump        []float64 `json:"heat_pump"`
	TotalPV         []float64 `json:"total_pv"`          // PVUsed + Overproduction
	TotalDemand     []float64 `json:"total_demand"`      // base + EV charge
	BaseDemand      []float64 `json:"base_demand"`       // scaled input demand
	HeatDemand      []float64 `json:"heat_demand"`       // thermal, zero without heat pump
	ElectricityRate []float64 `json:"electricity_rate"`  // price vector used
}

// Capacities holds the solved (or fixed) scalar capacity decisions.
type Capacities struct {
	PV       float64 `json:"pv"`
	Grid     float64 `json:"grid"`
	Battery  float64 `json:"battery"`
	HotWater float64 `json:"hot_water"`
	HeatPump float64 `json:"heat_pump"`
}

// SizingResult is the outcome of one LP solve: capacities, annual
// aggregates, derived coverage metrics and the full hourly series.
type SizingResult struct {
	RunID string `json:"run_id"`

	Capacities Capacities `json:"capacities"`

	// Annual aggregates in the input energy unit.
	PVProduction   float64 `json:"pv_production"` // used + overproduction
	GridEnergy     float64 `json:"grid_energy"`
	BatteryIn      float64 `json:"battery_in"`
	BatteryOut     float64 `json:"battery_out"`
	EVCharging     float64 `json:"ev_charging"`
	HeatPumpEnergy float64 `json:"heat_pump_energy"`
	HeatDemand     float64 `json:"heat_demand"`
	Overproduction float64 `json:"overproduction"`
	Demand         float64 `json:"demand"`
	Objective      float64 `json:"objective"`

	// Coverage metrics, percent.
	PVCoverage            float64 `json:"pv_coverage"`
	Autarky               float64 `json:"autarky"`
	AutarkyWithoutBattery float64 `json:"autarky_without_battery"`

	Hourly HourlySeries `json:"hourly"`
}

// SimulationResult aggregates a multi-year degradation run. All sums span
// every simulated year.
type SimulationResult struct {
	Years int `json:"years"`

	Production               float64 `json:"production"`
	DirectConsumption        float64 `json:"direct_consumption"`
	BatteryIn                float64 `json:"battery_in"`
	BatteryOut               float64 `json:"battery_out"`
	Demand                   float64 `json:"demand"`
	Overproduction           float64 `json:"overproduction"`             // spill the battery could not absorb
	OverproductionNoBattery  float64 `json:"overproduction_no_battery"`  // raw spill ignoring the battery
	Autarky                  float64 `json:"autarky"`                    // fraction 0..1
	FinalBatteryCapacity     float64 `json:"final_battery_capacity"`
	FinalPVOutputScale       float64 `json:"final_pv_output_scale"` // compounded PV degradation factor
}

// ROIResult is the root-finder outcome. Converged distinguishes a solved
// rate from a best-effort estimate; non-convergence is by contract not an
// error. PaybackYears is nil when cumulative savings never reach the
// investment inside the horizon.
type ROIResult struct {
	ROI             float64  `json:"roi"`
	NetPresentValue float64  `json:"net_present_value"`
	PaybackYears    *float64 `json:"payback_years,omitempty"`
	Converged       bool     `json:"converged"`
}
