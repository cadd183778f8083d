// Package sizing builds and solves the hourly dispatch/sizing linear
// program: one year of energy-balance physics at hourly resolution plus the
// scalar capacity decisions for PV, grid connection, battery, hot-water
// storage and heat pump. The objective minimizes annuitized investment plus
// grid cost net of feed-in revenue; autonomy mode additionally penalizes
// every unit drawn from the grid.
package sizing

import (
	"github.com/Matze99/solar-sim/core/model"
)

// Spec carries everything the builder needs besides the time series: unit
// investment costs, economic parameters, capacity bounds and the resolved
// optional subsystems.
type Spec struct {
	PVUnitCost   float64
	GridUnitCost float64
	Annuity      float64
	FeedInTariff float64

	// OptimizeForAutonomy adds a unit penalty per grid unit so the solver
	// prefers self-sufficiency over pure cost.
	OptimizeForAutonomy bool

	PVCapacity model.CapacityBound

	Subsystems model.Subsystems
}

// Inputs are the index-aligned hourly vectors of one year.
type Inputs struct {
	Solar  []float64 // normalized 0..1 fraction of PV capacity
	Demand []float64 // baseline electricity demand
	Rate   []float64 // grid price per unit energy
}

// variables records the column index of every decision variable. A -1 entry
// means the variable does not exist for that hour (absent subsystem, or EV
// hour outside the charging window).
type variables struct {
	capPV, capGrid                     int
	capBattery, capHotWater, capHeatPump int

	pvUsed, grid, over []int

	battIn, battOut, battLevel []int
	hwIn, hwOut, hwLevel       []int

	evCharge []int
	heatPump []int
}

func newHourVars() []int {
	v := make([]int, model.Hours)
	for i := range v {
		v[i] = -1
	}
	return v
}

// Model is a fully assembled sizing LP ready for Solve.
type Model struct {
	spec    Spec
	inputs  Inputs
	problem problem
	vars    variables
}

// BuildModel validates the inputs and assembles the LP. All series must
// span exactly one year; a free PV capacity needs a positive upper bound.
func BuildModel(spec Spec, in Inputs) (*Model, error) {
	for name, series := range map[string][]float64{
		"solar": in.Solar, "demand": in.Demand, "rate": in.Rate,
	} {
		if err := model.CheckSeriesLength(name, series); err != nil {
			return nil, err
		}
	}
	if !spec.PVCapacity.Fixed && spec.PVCapacity.Max <= 0 {
		return nil, model.ConfigErrorf("pv_capacity", "upper bound must be positive, got %g", spec.PVCapacity.Max)
	}
	if hp := spec.Subsystems.HeatPump; hp != nil {
		if err := model.CheckSeriesLength("heat pump consumption", hp.Consumption); err != nil {
			return nil, err
		}
	}

	m := &Model{spec: spec, inputs: in}
	m.addCapacityVars()
	m.addHourVars()
	m.addCapacityBounds()
	m.addHourConstraints()
	m.addEVEnergyConstraint()
	return m, nil
}

func (m *Model) addCapacityVars() {
	p := &m.problem
	s := m.spec
	m.vars.capPV = p.newVar(s.PVUnitCost * s.Annuity)
	m.vars.capGrid = p.newVar(s.GridUnitCost * s.Annuity)
	m.vars.capBattery = -1
	m.vars.capHotWater = -1
	m.vars.capHeatPump = -1
	if b := s.Subsystems.Battery; b != nil {
		m.vars.capBattery = p.newVar(b.UnitCost * s.Annuity)
	}
	if hw := s.Subsystems.HotWater; hw != nil {
		m.vars.capHotWater = p.newVar(hw.UnitCost * s.Annuity)
	}
	if hp := s.Subsystems.HeatPump; hp != nil {
		m.vars.capHeatPump = p.newVar(hp.UnitCost * s.Annuity)
	}
}

func (m *Model) addHourVars() {
	p := &m.problem
	s := m.spec
	v := &m.vars

	v.pvUsed = newHourVars()
	v.grid = newHourVars()
	v.over = newHourVars()
	v.battIn, v.battOut, v.battLevel = newHourVars(), newHourVars(), newHourVars()
	v.hwIn, v.hwOut, v.hwLevel = newHourVars(), newHourVars(), newHourVars()
	v.evCharge = newHourVars()
	v.heatPump = newHourVars()

	gridCost := func(t int) float64 {
		c := m.inputs.Rate[t]
		if s.OptimizeForAutonomy {
			c++
		}
		return c
	}

	for t := 0; t < model.Hours; t++ {
		v.pvUsed[t] = p.newVar(0)
		v.grid[t] = p.newVar(gridCost(t))
		v.over[t] = p.newVar(-s.FeedInTariff)
		if s.Subsystems.Battery != nil {
			v.battIn[t] = p.newVar(0)
			v.battOut[t] = p.newVar(0)
			v.battLevel[t] = p.newVar(0)
		}
		if s.Subsystems.HotWater != nil {
			v.hwIn[t] = p.newVar(0)
			v.hwOut[t] = p.newVar(0)
			v.hwLevel[t] = p.newVar(0)
		}
		if ev := s.Subsystems.EV; ev != nil && ev.Window.Allows(t) {
			v.evCharge[t] = p.newVar(0)
		}
		if s.Subsystems.HeatPump != nil {
			v.heatPump[t] = p.newVar(0)
		}
	}
}

func (m *Model) addCapacityBounds() {
	p := &m.problem
	s := m.spec
	bound := func(col int, b model.CapacityBound) {
		if b.Fixed {
			p.fix(col, b.Value)
			return
		}
		p.addLE(map[int]float64{col: 1}, b.Max)
	}
	bound(m.vars.capPV, s.PVCapacity)
	if b := s.Subsystems.Battery; b != nil {
		bound(m.vars.capBattery, b.Capacity)
	}
	if hw := s.Subsystems.HotWater; hw != nil {
		bound(m.vars.capHotWater, hw.Capacity)
	}
}

func (m *Model) addHourConstraints() {
	p := &m.problem
	s := m.spec
	v := &m.vars

	for t := 0; t < model.Hours; t++ {
		// Energy balance: supply minus consumption is the base demand.
		balance := map[int]float64{v.pvUsed[t]: 1, v.grid[t]: 1}
		if s.Subsystems.Battery != nil {
			balance[v.battIn[t]] = -1
			balance[v.battOut[t]] = 1
		}
		if s.Subsystems.HotWater != nil {
			balance[v.hwIn[t]] = -1
			balance[v.hwOut[t]] = 1
		}
		if v.evCharge[t] >= 0 {
			balance[v.evCharge[t]] = -1
		}
		if s.Subsystems.HeatPump != nil {
			balance[v.heatPump[t]] = -1
		}
		p.addEq(balance, m.inputs.Demand[t])

		// Overproduction closes the PV potential: over + used = cap·solar.
		// The same row caps hourly PV use at the available irradiance.
		p.addEq(map[int]float64{
			v.over[t]:   1,
			v.pvUsed[t]: 1,
			v.capPV:     -m.inputs.Solar[t],
		}, 0)

		// Grid draw never exceeds the connection capacity.
		p.addLE(map[int]float64{v.grid[t]: 1, v.capGrid: -1}, 0)

		if b := s.Subsystems.Battery; b != nil {
			m.addStorageConstraints(t, b, v.battIn, v.battOut, v.battLevel, v.capBattery)
		}
		if hw := s.Subsystems.HotWater; hw != nil {
			m.addStorageConstraints(t, hw, v.hwIn, v.hwOut, v.hwLevel, v.capHotWater)
		}
		if hp := s.Subsystems.HeatPump; hp != nil {
			p.fix(v.heatPump[t], hp.Consumption[t])
			p.addLE(map[int]float64{v.heatPump[t]: 1, v.capHeatPump: -1}, 0)
		}
	}
}

// addStorageConstraints emits the level bound, C-rate limits and the
// hour-to-hour level balance for one storage subsystem.
func (m *Model) addStorageConstraints(t int, s *model.StorageSpec, in, out, level []int, capCol int) {
	p := &m.problem

	p.addLE(map[int]float64{level[t]: 1, capCol: -1}, 0)
	p.addLE(map[int]float64{in[t]: 1, capCol: -s.Params.CRate}, 0)
	p.addLE(map[int]float64{out[t]: 1, capCol: -s.Params.CRate}, 0)

	if t == 0 {
		p.fix(level[0], 0)
		return
	}
	// level[t] = retention·level[t-1] + ηin·in[t] − out[t]/ηout
	p.addEq(map[int]float64{
		level[t]:     1,
		level[t-1]:   -s.Params.Retention(),
		in[t]:        -s.Params.ChargeEfficiency,
		out[t]:       1 / s.Params.DischargeEfficiency,
	}, 0)
}

// addEVEnergyConstraint requires the yearly charge sum to match the
// vehicle's annual energy need.
func (m *Model) addEVEnergyConstraint() {
	ev := m.spec.Subsystems.EV
	if ev == nil {
		return
	}
	coef := make(map[int]float64)
	for t := 0; t < model.Hours; t++ {
		if col := m.vars.evCharge[t]; col >= 0 {
			coef[col] = 1
		}
	}
	m.problem.addEq(coef, ev.AnnualEnergy())
}

// NumVariables reports the LP column count including slacks.
func (m *Model) NumVariables() int { return len(m.problem.c) }

// NumConstraints reports the LP row count.
func (m *Model) NumConstraints() int { return len(m.problem.rows) }
