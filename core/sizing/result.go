package sizing

import (
	"github.com/google/uuid"

	"github.com/Matze99/solar-sim/core/model"
)

// hourValues maps a variable family back into a dense hourly series,
// filling zero where the variable does not exist.
func hourValues(x []float64, cols []int) []float64 {
	out := make([]float64, model.Hours)
	for t, col := range cols {
		if col >= 0 {
			out[t] = x[col]
		}
	}
	return out
}

func sum(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}

// extract converts the raw solution vector into a SizingResult.
func (m *Model) extract(objective float64, x []float64) *model.SizingResult {
	v := &m.vars

	at := func(col int) float64 {
		if col < 0 {
			return 0
		}
		return x[col]
	}

	hourly := model.HourlySeries{
		PVUsed:         hourValues(x, v.pvUsed),
		Overproduction: hourValues(x, v.over),
		Grid:           hourValues(x, v.grid),
		BatteryLevel:   hourValues(x, v.battLevel),
		BatteryIn:      hourValues(x, v.battIn),
		BatteryOut:     hourValues(x, v.battOut),
		HotWaterLevel:  hourValues(x, v.hwLevel),
		HotWaterIn:     hourValues(x, v.hwIn),
		HotWaterOut:    hourValues(x, v.hwOut),
		EVCharge:       hourValues(x, v.evCharge),
		HeatPump:       hourValues(x, v.heatPump),
	}

	hourly.BaseDemand = append([]float64(nil), m.inputs.Demand...)
	hourly.ElectricityRate = append([]float64(nil), m.inputs.Rate...)
	hourly.TotalPV = make([]float64, model.Hours)
	hourly.TotalDemand = make([]float64, model.Hours)
	hourly.HeatDemand = make([]float64, model.Hours)
	if hp := m.spec.Subsystems.HeatPump; hp != nil {
		copy(hourly.HeatDemand, hp.HeatDemand)
	}
	for t := 0; t < model.Hours; t++ {
		hourly.TotalPV[t] = hourly.PVUsed[t] + hourly.Overproduction[t]
		hourly.TotalDemand[t] = hourly.BaseDemand[t] + hourly.EVCharge[t]
	}

	res := &model.SizingResult{
		RunID: uuid.NewString(),
		Capacities: model.Capacities{
			PV:       at(v.capPV),
			Grid:     at(v.capGrid),
			Battery:  at(v.capBattery),
			HotWater: at(v.capHotWater),
			HeatPump: at(v.capHeatPump),
		},
		GridEnergy:     sum(hourly.Grid),
		BatteryIn:      sum(hourly.BatteryIn),
		BatteryOut:     sum(hourly.BatteryOut),
		EVCharging:     sum(hourly.EVCharge),
		HeatPumpEnergy: sum(hourly.HeatPump),
		HeatDemand:     sum(hourly.HeatDemand),
		Overproduction: sum(hourly.Overproduction),
		Demand:         sum(hourly.TotalDemand),
		Objective:      objective,
		Hourly:         hourly,
	}
	res.PVProduction = sum(hourly.PVUsed) + res.Overproduction

	// Coverage and autarky relate to the household's own consumption, so
	// they are normalized by the base demand without vehicle charging.
	baseDemand := sum(hourly.BaseDemand)
	if baseDemand > 0 {
		res.PVCoverage = sum(hourly.PVUsed) / baseDemand * 100
		res.Autarky = (1 - res.GridEnergy/baseDemand) * 100
	}
	res.AutarkyWithoutBattery = autarkyWithoutBattery(hourly.TotalPV, hourly.TotalDemand)

	return res
}

// autarkyWithoutBattery recomputes coverage assuming no temporal shifting at
// all: only PV produced in the same hour as the demand counts. This is a
// different quantity than the grid-based autarky and is derived from the
// hourly series on purpose.
func autarkyWithoutBattery(totalPV, totalDemand []float64) float64 {
	var direct, demand float64
	for t := range totalPV {
		if totalPV[t] < totalDemand[t] {
			direct += totalPV[t]
		} else {
			direct += totalDemand[t]
		}
		demand += totalDemand[t]
	}
	if demand <= 0 {
		return 0
	}
	return direct / demand * 100
}
