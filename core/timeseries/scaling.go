package timeseries

import "github.com/Matze99/solar-sim/core/model"

// MonthlyDemand holds twelve monthly energy targets, January first.
type MonthlyDemand [12]float64

// Total is the annual sum of the monthly targets.
func (m MonthlyDemand) Total() float64 {
	var sum float64
	for _, v := range m {
		sum += v
	}
	return sum
}

// ScaleToMonthlyTargets rescales each calendar month of base so that the
// month's energy equals the corresponding target. Months whose base energy
// is zero stay zero. The base curve must span exactly one year.
func ScaleToMonthlyTargets(base []float64, targets MonthlyDemand) ([]float64, error) {
	if err := model.CheckSeriesLength("base demand curve", base); err != nil {
		return nil, err
	}
	scaled := make([]float64, 0, model.Hours)
	start := 0
	for month, hours := range model.HoursPerMonth {
		end := start + hours
		var monthEnergy float64
		for _, v := range base[start:end] {
			monthEnergy += v
		}
		factor := 0.0
		if monthEnergy > 0 {
			factor = targets[month] / monthEnergy
		}
		for _, v := range base[start:end] {
			scaled = append(scaled, v*factor)
		}
		start = end
	}
	return scaled, nil
}

// ScaleToAnnualTotal rescales the whole curve so its sum equals total. A
// zero-energy base curve is returned unchanged.
func ScaleToAnnualTotal(base []float64, total float64) ([]float64, error) {
	if err := model.CheckSeriesLength("base demand curve", base); err != nil {
		return nil, err
	}
	var sum float64
	for _, v := range base {
		sum += v
	}
	scaled := make([]float64, len(base))
	if sum == 0 {
		copy(scaled, base)
		return scaled, nil
	}
	factor := total / sum
	for i, v := range base {
		scaled[i] = v * factor
	}
	return scaled, nil
}
