package heating

import "github.com/Matze99/solar-sim/core/model"

// ScaleProfile distributes an annual heat demand total over the hourly
// profile shape. The profile is normalized to sum to one before scaling, so
// any when2heat export can be passed directly.
func ScaleProfile(profile []float64, annualTotal float64) ([]float64, error) {
	if err := model.CheckSeriesLength("heat profile", profile); err != nil {
		return nil, err
	}
	var sum float64
	for _, v := range profile {
		sum += v
	}
	if sum <= 0 {
		return nil, model.ConfigErrorf("heating", "heat profile sums to %g, cannot normalize", sum)
	}
	scaled := make([]float64, len(profile))
	for i, v := range profile {
		scaled[i] = v / sum * annualTotal
	}
	return scaled, nil
}

// PumpElectricity converts hourly heat demand into heat-pump electricity
// consumption using the hourly COP series. Hours with a non-positive COP
// draw nothing.
func PumpElectricity(heatDemand, cop []float64) ([]float64, error) {
	if err := model.CheckSeriesLength("heat demand", heatDemand); err != nil {
		return nil, err
	}
	if err := model.CheckSeriesLength("cop", cop); err != nil {
		return nil, err
	}
	elec := make([]float64, len(heatDemand))
	for i, heat := range heatDemand {
		if cop[i] > 0 {
			elec[i] = heat / cop[i]
		}
	}
	return elec, nil
}

// outdoorTemps holds simplified monthly average outdoor temperatures for
// Spain, January first.
var outdoorTemps = [12]float64{8, 9, 12, 14, 18, 22, 25, 25, 22, 17, 12, 9}

// lossCoefficient returns the whole-building heat loss coefficient in
// W/m2K for the insulation standard.
func lossCoefficient(std InsulationStandard) float64 {
	switch std {
	case InsulationPoor:
		return 2.5
	case InsulationGood:
		return 1.2
	default:
		return 1.8
	}
}

// TemperatureModelDemand is the fallback heat-demand model used when no
// when2heat profile is available: a constant per-month demand from the
// temperature difference between the monthly set point and the outdoor
// average. Hours in months warmer than the set point need no heating.
func TemperatureModelDemand(areaM2 float64, std InsulationStandard, setPoints [12]float64) []float64 {
	coeff := lossCoefficient(std)
	demand := make([]float64, 0, model.Hours)
	for month, hours := range model.HoursPerMonth {
		diff := setPoints[month] - outdoorTemps[month]
		hourly := 0.0
		if diff > 0 {
			hourly = coeff * areaM2 * diff / 1000.0 // W -> kWh per hour
		}
		for i := 0; i < hours; i++ {
			demand = append(demand, hourly)
		}
	}
	return demand
}
