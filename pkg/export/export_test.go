package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Matze99/solar-sim/core/model"
	"github.com/Matze99/solar-sim/core/sizing"
)

func TestDayLabel(t *testing.T) {
	cases := []struct {
		day  int
		want string
	}{
		{0, "Jan 1"},
		{30, "Jan 31"},
		{31, "Feb 1"},
		{58, "Feb 28"},
		{59, "Mar 1"},
		{364, "Dec 31"},
	}
	for _, c := range cases {
		if got := DayLabel(c.day); got != c.want {
			t.Errorf("DayLabel(%d) = %q, want %q", c.day, got, c.want)
		}
	}
}

func tinyResult() *model.SizingResult {
	n := model.Hours
	zeros := func() []float64 { return make([]float64, n) }
	res := &model.SizingResult{
		RunID:      "run-1",
		Capacities: model.Capacities{PV: 3},
		Hourly: model.HourlySeries{
			PVUsed:          zeros(),
			Overproduction:  zeros(),
			Grid:            zeros(),
			BatteryLevel:    zeros(),
			BatteryIn:       zeros(),
			BatteryOut:      zeros(),
			HotWaterLevel:   zeros(),
			HotWaterIn:      zeros(),
			HotWaterOut:     zeros(),
			EVCharge:        zeros(),
			HeatPump:        zeros(),
			TotalPV:         zeros(),
			TotalDemand:     zeros(),
			BaseDemand:      zeros(),
			HeatDemand:      zeros(),
			ElectricityRate: zeros(),
		},
	}
	res.Hourly.Grid[0] = 1.25
	return res
}

func TestWriteHourlyCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHourlyCSV(&buf, tinyResult()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != model.Hours+1 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "hour,date,pv_used") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,Jan 1,0,0,1.25") {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestWriteSweepCSV(t *testing.T) {
	curve := sizing.Curve{
		PVCapacity:     []float64{1, 2},
		PVUsed:         []float64{10, 20},
		GridEnergy:     []float64{5, 4},
		Overproduction: []float64{0, 1},
		Objective:      []float64{100, 90},
	}
	var buf bytes.Buffer
	if err := WriteSweepCSV(&buf, curve); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[2] != "2,20,4,1,90" {
		t.Errorf("second row = %q", lines[2])
	}
}

func TestWriteSummaryJSONDropsHourly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummaryJSON(&buf, tinyResult()); err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["run_id"] != "run-1" {
		t.Errorf("run_id = %v", decoded["run_id"])
	}
	hourly, ok := decoded["hourly"].(map[string]any)
	if !ok {
		t.Fatalf("hourly = %T", decoded["hourly"])
	}
	if hourly["grid"] != nil {
		t.Error("summary must not carry the hourly series")
	}
}
