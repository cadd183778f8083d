package finance

import (
	"math"
	"testing"

	"github.com/Matze99/solar-sim/core/model"
)

func almostEqual(t *testing.T, got, want, tol float64, what string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %v, want %v (tol %v)", what, got, want, tol)
	}
}

func TestSolveROIResidentialPV(t *testing.T) {
	assessment := Assessment{
		PVUnitCost:      900,
		GridRate:        0.16,
		AnnualDemandKWh: 9000,
		PriceIncrease:   0.01,
		Years:           25,
	}
	res := &model.SizingResult{
		Capacities: model.Capacities{PV: 2.45},
		GridEnergy: 9000 * 0.57,
	}

	out := assessment.Evaluate(res)
	if !out.Converged {
		t.Fatal("expected root-finder to converge")
	}
	almostEqual(t, out.ROI, 0.346, 1e-3, "roi")
	almostEqual(t, out.NetPresentValue, 271.0, 0.5, "npv")
	if out.PaybackYears == nil {
		t.Fatal("expected a payback period")
	}
	almostEqual(t, *out.PaybackYears, 3.5, 0.02, "payback")
}

func TestSolveROIWithUpkeepCost(t *testing.T) {
	assessment := Assessment{
		PVUnitCost:      900,
		GridRate:        0.16,
		AnnualDemandKWh: 9000,
		OtherYearlyCost: 120,
		Years:           25,
	}
	res := &model.SizingResult{
		Capacities: model.Capacities{PV: 2.45},
		GridEnergy: 9000 * 0.57,
	}

	out := assessment.Evaluate(res)
	almostEqual(t, out.ROI, 0.224, 1e-3, "roi")
	almostEqual(t, out.NetPresentValue, 496.03, 0.5, "npv")
	if out.PaybackYears == nil {
		t.Fatal("expected a payback period")
	}
	almostEqual(t, *out.PaybackYears, 4.417, 0.02, "payback")
}

func TestSolveROISmallSystem(t *testing.T) {
	assessment := Assessment{
		PVUnitCost:      991.7355371900827,
		GridRate:        0.15,
		AnnualDemandKWh: 9000,
		Years:           25,
	}
	res := &model.SizingResult{
		Capacities: model.Capacities{PV: 0.9},
		GridEnergy: 9000 * (1 - 0.157),
	}

	out := assessment.Evaluate(res)
	almostEqual(t, out.ROI, 0.236, 1e-3, "roi")
	almostEqual(t, out.NetPresentValue, 210.89, 0.5, "npv")
	if out.PaybackYears == nil {
		t.Fatal("expected a payback period")
	}
	almostEqual(t, *out.PaybackYears, 4.2, 0.02, "payback")
}

func TestSolveROIZeroInvestment(t *testing.T) {
	out := SolveROI(0, []float64{100, 100, 100})
	if out.ROI != 0 || out.NetPresentValue != 0 {
		t.Fatalf("zero investment should short-circuit, got %+v", out)
	}
	if out.PaybackYears != nil {
		t.Fatalf("zero investment should have no payback, got %v", *out.PaybackYears)
	}
}

func TestPaybackNeverReached(t *testing.T) {
	out := SolveROI(1e6, []float64{1, 1, 1})
	if out.PaybackYears != nil {
		t.Fatalf("savings never cover the investment, got payback %v", *out.PaybackYears)
	}
}

func TestPaybackInterpolation(t *testing.T) {
	// 100 + 100 covers 150 halfway through year 1.
	out := SolveROI(150, []float64{100, 100, 100, 100, 100})
	if out.PaybackYears == nil {
		t.Fatal("expected a payback period")
	}
	almostEqual(t, *out.PaybackYears, 1.5, 1e-9, "payback")
}

func TestSavingsStreamCompoundsPrice(t *testing.T) {
	assessment := Assessment{
		GridRate:        0.2,
		AnnualDemandKWh: 1000,
		PriceIncrease:   0.1,
		OtherYearlyCost: 10,
		Years:           3,
	}
	res := &model.SizingResult{GridEnergy: 400}

	savings := assessment.Savings(res)
	if len(savings) != 3 {
		t.Fatalf("len(savings) = %d, want 3", len(savings))
	}
	// Year 0: 0.2*1000 - (0.2*400 + 10) = 110.
	almostEqual(t, savings[0], 110, 1e-9, "savings[0]")
	// Year 1: price grows 10%, upkeep does not.
	almostEqual(t, savings[1], 0.2*1000*1.1-(0.2*400*1.1+10), 1e-9, "savings[1]")
	almostEqual(t, savings[2], 0.2*1000*1.21-(0.2*400*1.21+10), 1e-9, "savings[2]")
}
