// Package heating derives the hourly space-heat demand of a building and
// the electricity a heat pump draws to serve it. Annual demand comes from a
// per-m2 lookup over building type, construction period and insulation
// standard; the hourly shape comes from the when2heat profiles served by the
// timeseries provider.
package heating

import "github.com/Matze99/solar-sim/core/model"

// BuildingType categorizes the dwelling for the heating-need lookup.
type BuildingType int

const (
	SingleFamily BuildingType = iota
	Terraced
	MultiFamily
	Apartment
)

// ConstructionPeriod buckets the building's construction year.
type ConstructionPeriod int

const (
	Before1900 ConstructionPeriod = iota
	Between1901And1936
	Between1937And1959
	Between1960And1979
	Between1980And2006
	After2007
)

// InsulationStandard grades the envelope quality.
type InsulationStandard int

const (
	InsulationPoor InsulationStandard = iota
	InsulationModerate
	InsulationGood
)

// heatingNeed holds annual space-heat demand in kWh per m2 per year for the
// three insulation standards, worst first.
type heatingNeed struct {
	minimum   float64
	improved  float64
	ambitious float64
}

func (n heatingNeed) forStandard(std InsulationStandard) float64 {
	switch std {
	case InsulationPoor:
		return n.minimum
	case InsulationGood:
		return n.ambitious
	default:
		return n.improved
	}
}

// heatingNeeds maps construction period and building type to annual demand
// figures (Spanish building stock).
var heatingNeeds = map[ConstructionPeriod]map[BuildingType]heatingNeed{
	Before1900: {
		SingleFamily: {10.6, 10.7, 11.0},
		Terraced:     {7.1, 4.0, 3.4},
		MultiFamily:  {11.8, 6.1, 6.1},
		Apartment:    {7.8, 5.9, 5.6},
	},
	Between1901And1936: {
		SingleFamily: {14.8, 8.0, 7.1},
		Terraced:     {17.9, 11.7, 11.5},
		MultiFamily:  {7.7, 4.9, 5.6},
		Apartment:    {8.5, 4.5, 6.1},
	},
	Between1937And1959: {
		SingleFamily: {8.1, 4.1, 3.4},
		Terraced:     {20.7, 15.2, 15.2},
		MultiFamily:  {11.3, 5.5, 5.1},
		Apartment:    {7.4, 3.6, 3.1},
	},
	Between1960And1979: {
		SingleFamily: {12.4, 10.2, 9.1},
		Terraced:     {7.6, 5.0, 6.6},
		MultiFamily:  {9.8, 6.3, 6.0},
		Apartment:    {4.3, 2.3, 2.3},
	},
	Between1980And2006: {
		SingleFamily: {5.8, 4.7, 5.7},
		Terraced:     {5.8, 5.4, 6.7},
		MultiFamily:  {3.9, 3.3, 2.8},
		Apartment:    {2.3, 1.9, 3.5},
	},
	After2007: {
		SingleFamily: {6.4, 2.9, 2.4},
		Terraced:     {2.5, 2.2, 1.9},
		MultiFamily:  {3.5, 1.9, 1.5},
		Apartment:    {2.4, 1.5, 1.2},
	},
}

// AnnualDemandPerM2 looks up the annual space-heat demand in kWh/m2/year.
func AnnualDemandPerM2(bt BuildingType, period ConstructionPeriod, std InsulationStandard) (float64, error) {
	byType, ok := heatingNeeds[period]
	if !ok {
		return 0, model.ConfigErrorf("heating", "unknown construction period %d", period)
	}
	need, ok := byType[bt]
	if !ok {
		return 0, model.ConfigErrorf("heating", "unknown building type %d", bt)
	}
	return need.forStandard(std), nil
}

// ProfileClass maps a building type onto the when2heat profile family:
// single-family shapes for detached and terraced houses, multi-family shapes
// for everything else.
func ProfileClass(bt BuildingType) string {
	switch bt {
	case SingleFamily, Terraced:
		return "SFH"
	default:
		return "MFH"
	}
}
