package finance

import "github.com/Matze99/solar-sim/core/model"

// Assessment couples a sizing result with the price assumptions needed to
// turn it into a savings stream. The baseline scenario buys the full annual
// demand from the grid; the solar scenario buys only the residual grid
// energy and pays OtherYearlyCost for upkeep. Both sides compound the grid
// price with PriceIncrease per year.
type Assessment struct {
	PVUnitCost      float64 `json:"pv_unit_cost"`
	GridUnitCost    float64 `json:"grid_unit_cost"`
	BatteryUnitCost float64 `json:"battery_unit_cost"`

	GridRate        float64 `json:"grid_rate"`
	AnnualDemandKWh float64 `json:"annual_demand_kwh"`
	PriceIncrease   float64 `json:"price_increase"`
	OtherYearlyCost float64 `json:"other_yearly_cost"`
	Years           int     `json:"years"`
}

// Investment prices the installed capacities of a sizing result.
func (a Assessment) Investment(res *model.SizingResult) float64 {
	return res.Capacities.PV*a.PVUnitCost +
		res.Capacities.Grid*a.GridUnitCost +
		res.Capacities.Battery*a.BatteryUnitCost
}

// Savings builds the yearly savings stream for a sizing result. Year i
// saves the difference between the no-solar grid bill and the with-solar
// grid bill, each at the compounded price for that year.
func (a Assessment) Savings(res *model.SizingResult) []float64 {
	savings := make([]float64, a.Years)
	growth := 1.0
	for i := range savings {
		noSolar := a.GridRate * a.AnnualDemandKWh * growth
		withSolar := a.GridRate*res.GridEnergy*growth + a.OtherYearlyCost
		savings[i] = noSolar - withSolar
		growth *= 1 + a.PriceIncrease
	}
	return savings
}

// Evaluate runs the full pipeline: investment, savings stream, ROI solve.
func (a Assessment) Evaluate(res *model.SizingResult) model.ROIResult {
	return SolveROI(a.Investment(res), a.Savings(res))
}
