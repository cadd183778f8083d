// Package tariff converts an electricity rate structure, either a flat rate
// or a set of named time-of-use tiers, into the hourly price vector consumed
// by the sizing model. A tier table is usable only when its weekday and
// weekend hours are each covered exactly once; Validate rejects anything
// else.
package tariff

import (
	"github.com/Matze99/solar-sim/core/model"
)

// DayKind distinguishes the two coverage domains of a tier table.
type DayKind int

const (
	Weekday DayKind = iota
	Weekend
)

// HourRange is a half-open hour interval [From, Till) on the given day kind.
// From > Till denotes a range wrapping past midnight, e.g. 22 -> 6.
type HourRange struct {
	From int     `json:"from"`
	Till int     `json:"till"`
	Days DayKind `json:"days"`
}

// Contains reports whether the range covers the given hour of day on the
// given day kind.
func (r HourRange) Contains(hour int, days DayKind) bool {
	if r.Days != days {
		return false
	}
	if r.From > r.Till {
		return hour >= r.From || hour < r.Till
	}
	return hour >= r.From && hour < r.Till
}

// Tier is a named price active over a set of hour ranges.
type Tier struct {
	Name   string      `json:"name"`
	Rate   float64     `json:"rate"`
	Ranges []HourRange `json:"ranges"`
}

func (t Tier) matches(hour int, days DayKind) bool {
	for _, r := range t.Ranges {
		if r.Contains(hour, days) {
			return true
		}
	}
	return false
}

// Schedule is either a flat rate for all hours or a tiered time-of-use
// table. Construct with Flat or Tiered.
type Schedule struct {
	flat  *float64
	tiers []Tier
}

// Flat returns a schedule charging the same rate every hour.
func Flat(rate float64) Schedule {
	return Schedule{flat: &rate}
}

// Tiered returns a time-of-use schedule. Call Validate before use.
func Tiered(tiers []Tier) Schedule {
	return Schedule{tiers: tiers}
}

// Validate checks that weekday hours 0-23 and weekend hours 0-23 are each
// covered exactly once. Flat schedules are always valid.
func (s Schedule) Validate() error {
	if s.flat != nil {
		return nil
	}
	for _, days := range []DayKind{Weekday, Weekend} {
		var covered [24]bool
		for _, tier := range s.tiers {
			for _, r := range tier.Ranges {
				if r.Days != days {
					continue
				}
				for _, h := range r.hoursCovered() {
					if covered[h] {
						return model.ConfigErrorf("tariff", "tier %q covers hour %d twice", tier.Name, h)
					}
					covered[h] = true
				}
			}
		}
		for h, ok := range covered {
			if !ok {
				return model.ConfigErrorf("tariff", "%s hour %d not covered by any tier", dayKindName(days), h)
			}
		}
	}
	return nil
}

func dayKindName(d DayKind) string {
	if d == Weekend {
		return "weekend"
	}
	return "weekday"
}

func (r HourRange) hoursCovered() []int {
	var hours []int
	if r.From > r.Till {
		for h := r.From; h < 24; h++ {
			hours = append(hours, h)
		}
		for h := 0; h < r.Till; h++ {
			hours = append(hours, h)
		}
		return hours
	}
	for h := r.From; h < r.Till; h++ {
		hours = append(hours, h)
	}
	return hours
}

// rate returns the price for the given hour of day; tiers are searched in
// order, first match wins. Validated schedules have exactly one match.
func (s Schedule) rate(hour int, days DayKind) float64 {
	if s.flat != nil {
		return *s.flat
	}
	for _, t := range s.tiers {
		if t.matches(hour, days) {
			return t.Rate
		}
	}
	return 0
}

// YearlyRates expands the schedule into one price per hour of the year.
// January 1st is taken to be a Monday.
func (s Schedule) YearlyRates() []float64 {
	rates := make([]float64, 0, model.Hours)
	for day := 0; day < 365; day++ {
		days := Weekday
		if day%7 >= 5 {
			days = Weekend
		}
		for hour := 0; hour < 24; hour++ {
			rates = append(rates, s.rate(hour, days))
		}
	}
	return rates
}

// WeeklyRates expands the schedule into a 168-hour week, Monday first.
func (s Schedule) WeeklyRates() []float64 {
	rates := make([]float64, 0, 168)
	for day := 0; day < 7; day++ {
		days := Weekday
		if day >= 5 {
			days = Weekend
		}
		for hour := 0; hour < 24; hour++ {
			rates = append(rates, s.rate(hour, days))
		}
	}
	return rates
}
