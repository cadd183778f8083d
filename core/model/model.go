// Package model holds the shared domain types of the sizing, simulation and
// finance cores: hourly series, optional-subsystem specifications and the
// result objects handed to reporting.
package model

// Hours is the number of hourly steps in one modeled year (non-leap).
const Hours = 8760

// HoursPerMonth holds the hour count of each calendar month for a non-leap
// year. Monthly demand scaling and the heating model both index into it.
var HoursPerMonth = [12]int{744, 672, 744, 720, 744, 720, 744, 744, 720, 744, 720, 744}

// CapacityBound describes how a capacity decision behaves in the sizing
// model: either pinned to a fixed value or free within [0, Max].
type CapacityBound struct {
	Fixed bool
	Value float64 // used when Fixed
	Max   float64 // upper bound when not Fixed
}

// FixedCapacity pins a capacity to v.
func FixedCapacity(v float64) CapacityBound {
	return CapacityBound{Fixed: true, Value: v}
}

// BoundedCapacity lets the optimizer choose a capacity in [0, max].
func BoundedCapacity(max float64) CapacityBound {
	return CapacityBound{Max: max}
}

// StorageParams holds the physical constants of a storage subsystem.
type StorageParams struct {
	ChargeEfficiency    float64 // fraction of charged energy retained
	DischargeEfficiency float64 // fraction of stored energy delivered
	HourlyLoss          float64 // self-discharge per hour, 0..1
	CRate               float64 // max (dis)charge per hour as fraction of capacity
}

// Retention is the fraction of the storage level surviving one hour.
func (p StorageParams) Retention() float64 { return 1 - p.HourlyLoss }

// StorageSpec is a present storage subsystem (battery or hot-water tank).
type StorageSpec struct {
	Params   StorageParams
	Capacity CapacityBound
	UnitCost float64 // investment per unit capacity
}

// ChargeWindow restricts EV charging to day or night hours.
type ChargeWindow int

const (
	// ChargeDay allows charging between 06:00 and 18:00.
	ChargeDay ChargeWindow = iota
	// ChargeNight allows charging between 18:00 and 06:00.
	ChargeNight
)

// dayStart and dayEnd delimit the daytime half of the fixed charging split.
const (
	dayStart = 6
	dayEnd   = 18
)

// Allows reports whether hour t (0-based index into the year) falls inside
// the charging window.
func (w ChargeWindow) Allows(t int) bool {
	h := t % 24
	day := h >= dayStart && h < dayEnd
	if w == ChargeDay {
		return day
	}
	return !day
}

// EVSpec is a present electric-vehicle charging subsystem. DailyEnergy is
// already clamped to the vehicle battery size.
type EVSpec struct {
	Window      ChargeWindow
	DailyEnergy float64 // kWh that must be charged every day
}

// AnnualEnergy is the yearly charging requirement enforced by the model.
func (s EVSpec) AnnualEnergy() float64 { return s.DailyEnergy * 365 }

// HeatPumpSpec is a present heat-pump subsystem. Consumption holds the
// precomputed hourly electricity draw (heat demand divided by COP).
type HeatPumpSpec struct {
	Consumption []float64 // length Hours
	HeatDemand  []float64 // length Hours, thermal
	UnitCost    float64   // investment per unit capacity
}

// Subsystems enumerates which optional decision-variable families exist.
// A nil field means the subsystem is absent and its variables are omitted
// from the model entirely, not merely bounded at zero.
type Subsystems struct {
	Battery  *StorageSpec
	HotWater *StorageSpec
	EV       *EVSpec
	HeatPump *HeatPumpSpec
}
