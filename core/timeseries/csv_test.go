package timeseries

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Matze99/solar-sim/core/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func solarCSV(t *testing.T, rows int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("time,solar\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%d,0.5\n", i)
	}
	return writeFile(t, "solar.csv", b.String())
}

func TestSolarLoadsColumn(t *testing.T) {
	p := NewProvider()
	values, err := p.Solar(solarCSV(t, model.Hours))
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != model.Hours {
		t.Fatalf("got %d values", len(values))
	}
	if values[0] != 0.5 || values[model.Hours-1] != 0.5 {
		t.Errorf("unexpected values %g, %g", values[0], values[model.Hours-1])
	}
}

func TestSolarIgnoresExtraRows(t *testing.T) {
	p := NewProvider()
	values, err := p.Solar(solarCSV(t, model.Hours+48))
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != model.Hours {
		t.Fatalf("got %d values", len(values))
	}
}

func TestSolarRejectsTruncatedFile(t *testing.T) {
	p := NewProvider()
	_, err := p.Solar(solarCSV(t, 100))
	var loadErr *DataLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected DataLoadError, got %v", err)
	}
}

func TestSolarCachesByPath(t *testing.T) {
	p := NewProvider()
	path := solarCSV(t, model.Hours)
	if _, err := p.Solar(path); err != nil {
		t.Fatal(err)
	}
	// A second read must come from the cache, not the now-broken file.
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	values, err := p.Solar(path)
	if err != nil {
		t.Fatalf("cache miss: %v", err)
	}
	if values[17] != 0.5 {
		t.Errorf("cached value = %g", values[17])
	}

	p.Invalidate()
	if _, err := p.Solar(path); err == nil {
		t.Fatal("expected load failure after invalidation")
	}
}

func TestCOPFindsNamedColumn(t *testing.T) {
	var b strings.Builder
	b.WriteString("utc_timestamp,ES_COP_ASHP_floor,ES_COP_ASHP_radiator\n")
	for i := 0; i < model.Hours; i++ {
		fmt.Fprintf(&b, "%d,4.2,3.1\n", i)
	}
	path := writeFile(t, "when2heat.csv", b.String())

	p := NewProvider()
	floor, err := p.COP(path, MediumFloor)
	if err != nil {
		t.Fatal(err)
	}
	radiator, err := p.COP(path, MediumRadiator)
	if err != nil {
		t.Fatal(err)
	}
	if floor[0] != 4.2 || radiator[0] != 3.1 {
		t.Errorf("cop values = %g, %g", floor[0], radiator[0])
	}
}

func TestCOPMissingColumn(t *testing.T) {
	path := writeFile(t, "bad.csv", "a,b\n1,2\n")
	p := NewProvider()
	if _, err := p.COP(path, MediumFloor); err == nil {
		t.Fatal("expected error for missing column")
	}
}

func TestParseDecimalVariants(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{`"2.25"`, 2.25},
		{" 3.5 ", 3.5},
		{`"4"`, 4},
		{"2,5", 2.5},
	}
	for _, c := range cases {
		got, err := parseDecimal(c.in)
		if err != nil {
			t.Errorf("parseDecimal(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseDecimal(%q) = %g, want %g", c.in, got, c.want)
		}
	}
	if _, err := parseDecimal("abc"); err == nil {
		t.Error("expected error for non-numeric field")
	}
}

func TestDemandLoadsBothColumns(t *testing.T) {
	var b strings.Builder
	b.WriteString("time,hot_water,heat,electricity\n")
	for i := 0; i < model.Hours; i++ {
		fmt.Fprintf(&b, "%d,0.2,0.0,1.3\n", i)
	}
	path := writeFile(t, "demand.csv", b.String())

	p := NewProvider()
	hotWater, electricity, err := p.Demand(path)
	if err != nil {
		t.Fatal(err)
	}
	if hotWater[0] != 0.2 || electricity[0] != 1.3 {
		t.Errorf("demand values = %g, %g", hotWater[0], electricity[0])
	}
}
