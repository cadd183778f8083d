// Package export serializes sizing, sweep, simulation and ROI results to
// CSV and JSON for downstream analysis.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Matze99/solar-sim/core/model"
	"github.com/Matze99/solar-sim/core/sizing"
)

// WriteJSON writes any result object to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteSummaryJSON writes the sizing result without its hourly series,
// which dominates the payload size.
func WriteSummaryJSON(w io.Writer, res *model.SizingResult) error {
	summary := *res
	summary.Hourly = model.HourlySeries{}
	return WriteJSON(w, &summary)
}

// WriteHourlyCSV writes the solved hourly series, one row per hour with a
// calendar label for the day.
func WriteHourlyCSV(w io.Writer, res *model.SizingResult) error {
	cw := csv.NewWriter(w)
	header := []string{
		"hour", "date", "pv_used", "overproduction", "grid",
		"battery_level", "battery_in", "battery_out",
		"hot_water_level", "ev_charge", "heat_pump",
		"total_demand", "electricity_rate",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	h := res.Hourly
	for t := 0; t < len(h.PVUsed); t++ {
		rec := []string{
			strconv.Itoa(t),
			DayLabel(t / 24),
			f(h.PVUsed[t]),
			f(h.Overproduction[t]),
			f(h.Grid[t]),
			f(h.BatteryLevel[t]),
			f(h.BatteryIn[t]),
			f(h.BatteryOut[t]),
			f(h.HotWaterLevel[t]),
			f(h.EVCharge[t]),
			f(h.HeatPump[t]),
			f(h.TotalDemand[t]),
			f(h.ElectricityRate[t]),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSweepCSV writes the capacity sweep curve, one row per solved point.
func WriteSweepCSV(w io.Writer, curve sizing.Curve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"pv_capacity", "pv_used", "grid_energy", "overproduction", "objective"}); err != nil {
		return err
	}
	for i := range curve.PVCapacity {
		rec := []string{
			f(curve.PVCapacity[i]),
			f(curve.PVUsed[i]),
			f(curve.GridEnergy[i]),
			f(curve.Overproduction[i]),
			f(curve.Objective[i]),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var (
	monthNames  = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
)

// DayLabel formats a zero-based day of the (non-leap) year as "Jan 5".
func DayLabel(day int) string {
	remaining := day
	month := 0
	for i, days := range daysInMonth {
		if remaining < days {
			month = i
			break
		}
		remaining -= days
	}
	return fmt.Sprintf("%s %d", monthNames[month], remaining+1)
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
