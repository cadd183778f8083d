package config

import (
	"fmt"

	"github.com/Matze99/solar-sim/core/tariff"
)

// DataConfig names the input files and the demand scaling targets.
type DataConfig struct {
	// SolarPath is the CSV of normalized hourly irradiance.
	SolarPath string `json:"solar_path"`
	// DemandPath is the CSV carrying hot-water and electricity demand columns.
	DemandPath string `json:"demand_path"`
	// When2HeatPath is the when2heat CSV with COP and heat-profile columns.
	// Required only when a heat pump is configured.
	When2HeatPath string `json:"when2heat_path"`

	// AnnualDemandKWh rescales the electricity demand to this yearly total.
	// Zero keeps the raw curve.
	AnnualDemandKWh float64 `json:"annual_demand_kwh"`
	// MonthlyDemandKWh rescales month by month instead; takes precedence
	// over AnnualDemandKWh when set. Must have 12 entries.
	MonthlyDemandKWh []float64 `json:"monthly_demand_kwh"`
}

func (c DataConfig) Validate() error {
	if c.SolarPath == "" {
		return fmt.Errorf("data: solar_path is required")
	}
	if c.DemandPath == "" {
		return fmt.Errorf("data: demand_path is required")
	}
	if n := len(c.MonthlyDemandKWh); n != 0 && n != 12 {
		return fmt.Errorf("data: monthly_demand_kwh needs 12 entries, got %d", n)
	}
	if c.AnnualDemandKWh < 0 {
		return fmt.Errorf("data: annual_demand_kwh must not be negative")
	}
	return nil
}

// SystemConfig holds the economic parameters and the PV capacity decision.
type SystemConfig struct {
	PVUnitCost   float64 `json:"pv_unit_cost"`
	GridUnitCost float64 `json:"grid_unit_cost"`
	// Annuity converts an investment into its yearly cost share.
	Annuity      float64 `json:"annuity"`
	FeedInTariff float64 `json:"feed_in_tariff"`

	OptimizeForAutonomy bool `json:"optimize_for_autonomy"`

	// PVMaxCapacity bounds the free PV decision. Ignored when
	// PVFixedCapacity is set.
	PVMaxCapacity   float64  `json:"pv_max_capacity"`
	PVFixedCapacity *float64 `json:"pv_fixed_capacity"`
}

func (c *SystemConfig) SetDefaults() {
	if c.Annuity == 0 {
		c.Annuity = 0.05
	}
}

func (c SystemConfig) Validate() error {
	if c.PVUnitCost < 0 || c.GridUnitCost < 0 {
		return fmt.Errorf("system: unit costs must not be negative")
	}
	if c.Annuity <= 0 || c.Annuity > 1 {
		return fmt.Errorf("system: annuity must be in (0, 1], got %g", c.Annuity)
	}
	if c.PVFixedCapacity == nil && c.PVMaxCapacity <= 0 {
		return fmt.Errorf("system: pv_max_capacity must be positive when pv capacity is free")
	}
	return nil
}

// storageConfig is the shared shape of the battery and hot-water sections.
type storageConfig struct {
	UnitCost            float64  `json:"unit_cost"`
	MaxCapacity         float64  `json:"max_capacity"`
	FixedCapacity       *float64 `json:"fixed_capacity"`
	ChargeEfficiency    float64  `json:"charge_efficiency"`
	DischargeEfficiency float64  `json:"discharge_efficiency"`
	HourlyLoss          float64  `json:"hourly_loss"`
	CRate               float64  `json:"c_rate"`
}

func (c *storageConfig) SetDefaults() {
	if c.ChargeEfficiency == 0 {
		c.ChargeEfficiency = 1
	}
	if c.DischargeEfficiency == 0 {
		c.DischargeEfficiency = 1
	}
	if c.CRate == 0 {
		c.CRate = 1
	}
}

func (c storageConfig) validate(section string) error {
	if c.UnitCost < 0 {
		return fmt.Errorf("%s: unit_cost must not be negative", section)
	}
	if c.FixedCapacity == nil && c.MaxCapacity <= 0 {
		return fmt.Errorf("%s: max_capacity must be positive when capacity is free", section)
	}
	if c.ChargeEfficiency <= 0 || c.ChargeEfficiency > 1 {
		return fmt.Errorf("%s: charge_efficiency must be in (0, 1], got %g", section, c.ChargeEfficiency)
	}
	if c.DischargeEfficiency <= 0 || c.DischargeEfficiency > 1 {
		return fmt.Errorf("%s: discharge_efficiency must be in (0, 1], got %g", section, c.DischargeEfficiency)
	}
	if c.HourlyLoss < 0 || c.HourlyLoss >= 1 {
		return fmt.Errorf("%s: hourly_loss must be in [0, 1), got %g", section, c.HourlyLoss)
	}
	if c.CRate <= 0 {
		return fmt.Errorf("%s: c_rate must be positive, got %g", section, c.CRate)
	}
	return nil
}

type BatteryConfig struct {
	storageConfig `json:",squash"`
}

func (c BatteryConfig) Validate() error { return c.validate("battery") }

type HotWaterConfig struct {
	storageConfig `json:",squash"`
}

func (c HotWaterConfig) Validate() error { return c.validate("hot_water") }

// EVConfig describes the electric vehicle's daily energy need and when it
// may charge.
type EVConfig struct {
	DailyKm       float64 `json:"daily_km"`
	KWhPerKm      float64 `json:"kwh_per_km"`
	BatteryKWh    float64 `json:"battery_kwh"`
	ChargeAtNight bool    `json:"charge_at_night"`
}

func (c EVConfig) Validate() error {
	if c.DailyKm < 0 || c.KWhPerKm < 0 {
		return fmt.Errorf("ev: daily_km and kwh_per_km must not be negative")
	}
	if c.BatteryKWh <= 0 {
		return fmt.Errorf("ev: battery_kwh must be positive, got %g", c.BatteryKWh)
	}
	return nil
}

// DailyEnergy is the charge the vehicle needs per day, clamped to its
// battery size.
func (c EVConfig) DailyEnergy() float64 {
	need := c.DailyKm * c.KWhPerKm
	if need > c.BatteryKWh {
		return c.BatteryKWh
	}
	return need
}

// HeatPumpConfig describes the building whose heat demand the pump covers.
// AnnualHeatDemandKWh overrides the insulation-table estimate when set.
type HeatPumpConfig struct {
	UnitCost float64 `json:"unit_cost"`

	// Medium is "floor" or "radiator" and selects the COP series.
	Medium string `json:"medium"`

	AreaM2 float64 `json:"area_m2"`
	// BuildingType is one of "single_family", "terraced", "multi_family",
	// "apartment".
	BuildingType string `json:"building_type"`
	// ConstructionPeriod is one of "before_1900", "1901_1936", "1937_1959",
	// "1960_1979", "1980_2006", "after_2007".
	ConstructionPeriod string `json:"construction_period"`
	// InsulationStandard is "poor", "moderate" or "good".
	InsulationStandard string `json:"insulation_standard"`

	AnnualHeatDemandKWh float64 `json:"annual_heat_demand_kwh"`
}

func (c HeatPumpConfig) Validate() error {
	if c.Medium != "floor" && c.Medium != "radiator" {
		return fmt.Errorf("heat_pump: medium must be floor or radiator, got %q", c.Medium)
	}
	if c.AnnualHeatDemandKWh == 0 {
		if c.AreaM2 <= 0 {
			return fmt.Errorf("heat_pump: area_m2 must be positive, got %g", c.AreaM2)
		}
		if _, _, _, err := c.building(); err != nil {
			return err
		}
	}
	return nil
}

// TariffConfig is either a flat rate or a tier table; exactly one must be
// set.
type TariffConfig struct {
	FlatRate *float64      `json:"flat_rate"`
	Tiers    []tariff.Tier `json:"tiers"`
}

func (c TariffConfig) Validate() error {
	if c.FlatRate != nil && len(c.Tiers) > 0 {
		return fmt.Errorf("tariff: flat_rate and tiers are mutually exclusive")
	}
	if c.FlatRate == nil && len(c.Tiers) == 0 {
		return fmt.Errorf("tariff: either flat_rate or tiers is required")
	}
	return c.Schedule().Validate()
}

// Schedule builds the tariff schedule the sizing model prices grid energy
// with.
func (c TariffConfig) Schedule() tariff.Schedule {
	if c.FlatRate != nil {
		return tariff.Flat(*c.FlatRate)
	}
	return tariff.Tiered(c.Tiers)
}

// SimulationConfig parametrizes the multi-year degradation run.
type SimulationConfig struct {
	Years                    int     `json:"years"`
	BatteryHourlyLoss        float64 `json:"battery_hourly_loss"`
	BatteryAnnualDegradation float64 `json:"battery_annual_degradation"`
	PVAnnualDegradation      float64 `json:"pv_annual_degradation"`
	MaxChargeRate            float64 `json:"max_charge_rate"`
	MaxDischargeRate         float64 `json:"max_discharge_rate"`
}

func (c *SimulationConfig) SetDefaults() {
	if c.Years == 0 {
		c.Years = 25
	}
}

func (c SimulationConfig) Validate() error {
	if c.Years <= 0 {
		return fmt.Errorf("simulation: years must be positive, got %d", c.Years)
	}
	return nil
}

// FinanceConfig holds the price assumptions of the ROI assessment. The
// baseline grid rate comes from the tariff section; unit costs come from the
// system and battery sections.
type FinanceConfig struct {
	PriceIncrease   float64 `json:"price_increase"`
	OtherYearlyCost float64 `json:"other_yearly_cost"`
	Years           int     `json:"years"`
}

// SweepConfig spans the PV capacity grid of a sweep run.
type SweepConfig struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Workers int     `json:"workers"`
}

func (c *SweepConfig) SetDefaults() {
	if c.Step == 0 {
		c.Step = 1
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
}

func (c SweepConfig) Validate() error {
	if c.Step <= 0 {
		return fmt.Errorf("sweep: step must be positive, got %g", c.Step)
	}
	if c.Max < c.Min {
		return fmt.Errorf("sweep: max must not be below min")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("sweep: workers must be positive, got %d", c.Workers)
	}
	return nil
}

// MetricsConfig enables the observability sinks.
type MetricsConfig struct {
	PrometheusEnabled bool `json:"prometheus_enabled"`
	PrometheusPort    int  `json:"prometheus_port"`

	InfluxEnabled bool   `json:"influx_enabled"`
	InfluxURL     string `json:"influx_url"`
	InfluxToken   string `json:"influx_token"`
	InfluxOrg     string `json:"influx_org"`
	InfluxBucket  string `json:"influx_bucket"`
}
