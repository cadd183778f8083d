package sizing

import (
	"errors"
	"testing"

	"github.com/Matze99/solar-sim/core/model"
)

func constantSeries(v float64) []float64 {
	s := make([]float64, model.Hours)
	for i := range s {
		s[i] = v
	}
	return s
}

func testInputs() Inputs {
	return Inputs{
		Solar:  constantSeries(0.2),
		Demand: constantSeries(1),
		Rate:   constantSeries(0.25),
	}
}

func minimalSpec() Spec {
	return Spec{
		PVUnitCost:   800,
		GridUnitCost: 100,
		Annuity:      0.05,
		FeedInTariff: 0.08,
		PVCapacity:   model.BoundedCapacity(20),
	}
}

func TestBuildModelRejectsShortSeries(t *testing.T) {
	in := testInputs()
	in.Solar = in.Solar[:100]
	_, err := BuildModel(minimalSpec(), in)
	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestBuildModelRequiresPVBound(t *testing.T) {
	spec := minimalSpec()
	spec.PVCapacity = model.BoundedCapacity(0)
	if _, err := BuildModel(spec, testInputs()); err == nil {
		t.Fatal("expected error for free PV capacity without an upper bound")
	}
}

func TestBuildModelRejectsShortHeatPumpSeries(t *testing.T) {
	spec := minimalSpec()
	spec.Subsystems.HeatPump = &model.HeatPumpSpec{
		Consumption: make([]float64, 10),
		HeatDemand:  make([]float64, 10),
	}
	if _, err := BuildModel(spec, testInputs()); err == nil {
		t.Fatal("expected error for short heat pump consumption")
	}
}

func TestMinimalModelShape(t *testing.T) {
	m, err := BuildModel(minimalSpec(), testInputs())
	if err != nil {
		t.Fatal(err)
	}
	h := model.Hours
	// Columns: 2 capacities, 3 per hour, the PV bound slack and one grid
	// slack per hour. Rows: PV bound, balance, overproduction closure and
	// grid cap per hour.
	wantVars := 2 + 3*h + 1 + h
	wantRows := 1 + 3*h
	if got := m.NumVariables(); got != wantVars {
		t.Errorf("NumVariables = %d, want %d", got, wantVars)
	}
	if got := m.NumConstraints(); got != wantRows {
		t.Errorf("NumConstraints = %d, want %d", got, wantRows)
	}
}

func TestFixedPVDropsBoundSlack(t *testing.T) {
	free, err := BuildModel(minimalSpec(), testInputs())
	if err != nil {
		t.Fatal(err)
	}
	spec := minimalSpec()
	spec.PVCapacity = model.FixedCapacity(5)
	fixed, err := BuildModel(spec, testInputs())
	if err != nil {
		t.Fatal(err)
	}
	if got, want := fixed.NumVariables(), free.NumVariables()-1; got != want {
		t.Errorf("fixed NumVariables = %d, want %d", got, want)
	}
	if got, want := fixed.NumConstraints(), free.NumConstraints(); got != want {
		t.Errorf("fixed NumConstraints = %d, want %d", got, want)
	}
}

func TestBatteryAddsStorageRows(t *testing.T) {
	base, err := BuildModel(minimalSpec(), testInputs())
	if err != nil {
		t.Fatal(err)
	}
	spec := minimalSpec()
	spec.Subsystems.Battery = &model.StorageSpec{
		Params:   model.StorageParams{ChargeEfficiency: 0.95, DischargeEfficiency: 0.95, HourlyLoss: 0.001, CRate: 0.5},
		Capacity: model.BoundedCapacity(30),
		UnitCost: 400,
	}
	m, err := BuildModel(spec, testInputs())
	if err != nil {
		t.Fatal(err)
	}
	h := model.Hours
	// One capacity column and its bound slack, three hour columns and the
	// three C-rate/level slacks.
	if got, want := m.NumVariables(), base.NumVariables()+2+6*h; got != want {
		t.Errorf("NumVariables = %d, want %d", got, want)
	}
	// Bound row, three inequality rows per hour, and a level-balance row
	// per hour (the first pinned to zero).
	if got, want := m.NumConstraints(), base.NumConstraints()+1+4*h; got != want {
		t.Errorf("NumConstraints = %d, want %d", got, want)
	}
	for t0 := 0; t0 < h; t0++ {
		if m.vars.battLevel[t0] < 0 || m.vars.battIn[t0] < 0 || m.vars.battOut[t0] < 0 {
			t.Fatalf("missing battery column at hour %d", t0)
		}
	}
}

func TestEVVariablesFollowChargeWindow(t *testing.T) {
	spec := minimalSpec()
	spec.Subsystems.EV = &model.EVSpec{Window: model.ChargeDay, DailyEnergy: 8}
	m, err := BuildModel(spec, testInputs())
	if err != nil {
		t.Fatal(err)
	}
	for hour := 0; hour < model.Hours; hour++ {
		has := m.vars.evCharge[hour] >= 0
		if want := spec.Subsystems.EV.Window.Allows(hour); has != want {
			t.Fatalf("hour %d: ev variable present=%v, window allows=%v", hour, has, want)
		}
	}

	base, err := BuildModel(minimalSpec(), testInputs())
	if err != nil {
		t.Fatal(err)
	}
	// Twelve daytime hours per day plus the annual energy equality.
	if got, want := m.NumVariables(), base.NumVariables()+12*365; got != want {
		t.Errorf("NumVariables = %d, want %d", got, want)
	}
	if got, want := m.NumConstraints(), base.NumConstraints()+1; got != want {
		t.Errorf("NumConstraints = %d, want %d", got, want)
	}
}

func TestAutonomyRaisesGridCost(t *testing.T) {
	plain, err := BuildModel(minimalSpec(), testInputs())
	if err != nil {
		t.Fatal(err)
	}
	spec := minimalSpec()
	spec.OptimizeForAutonomy = true
	autonomous, err := BuildModel(spec, testInputs())
	if err != nil {
		t.Fatal(err)
	}
	for hour := 0; hour < model.Hours; hour++ {
		col := plain.vars.grid[hour]
		got := autonomous.problem.c[col] - plain.problem.c[col]
		if got != 1 {
			t.Fatalf("hour %d: autonomy grid cost delta = %g, want 1", hour, got)
		}
	}
}

func TestObjectiveCoefficients(t *testing.T) {
	spec := minimalSpec()
	m, err := BuildModel(spec, testInputs())
	if err != nil {
		t.Fatal(err)
	}
	c := m.problem.c
	if got, want := c[m.vars.capPV], spec.PVUnitCost*spec.Annuity; got != want {
		t.Errorf("pv capacity cost = %g, want %g", got, want)
	}
	if got, want := c[m.vars.capGrid], spec.GridUnitCost*spec.Annuity; got != want {
		t.Errorf("grid capacity cost = %g, want %g", got, want)
	}
	if got, want := c[m.vars.grid[0]], 0.25; got != want {
		t.Errorf("grid energy cost = %g, want %g", got, want)
	}
	if got, want := c[m.vars.over[0]], -spec.FeedInTariff; got != want {
		t.Errorf("overproduction cost = %g, want %g", got, want)
	}
}
