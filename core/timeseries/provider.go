// Package timeseries loads and caches the hourly input vectors of the
// sizing model: solar irradiance, demand curves and when2heat COP / heat
// profiles. A Provider is constructed once and shared by reference across
// sweep iterations; its cache is keyed by file path so repeated solves never
// re-read or re-parse an input file.
package timeseries

import (
	"sync"

	"github.com/Matze99/solar-sim/core/model"
	"github.com/Matze99/solar-sim/infra/logger"
)

// Provider reads hourly input data from CSV files. The zero value is not
// usable; construct with NewProvider.
type Provider struct {
	mu    sync.Mutex
	cache map[string][]float64
	log   logger.Logger
}

// NewProvider returns an empty provider.
func NewProvider() *Provider {
	return &Provider{cache: make(map[string][]float64), log: logger.New("timeseries")}
}

// cached returns the vector stored under key, loading it with fn on a miss.
func (p *Provider) cached(key string, fn func() ([]float64, error)) ([]float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.cache[key]; ok {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		return nil, err
	}
	p.cache[key] = v
	p.log.Debugf("cached %s (%d values)", key, len(v))
	return v, nil
}

// Invalidate drops every cached series. Intended for tests and long-lived
// sessions whose input files changed on disk.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string][]float64)
}

// Solar returns the first 8760 normalized irradiance values (column Solar)
// of the given CSV file.
func (p *Provider) Solar(path string) ([]float64, error) {
	return p.cached("solar:"+path, func() ([]float64, error) {
		return loadColumnCSV(path, 1, model.Hours)
	})
}

// Demand returns the hot-water and electricity demand columns of the given
// demand CSV, truncated to one year each.
func (p *Provider) Demand(path string) (hotWater, electricity []float64, err error) {
	hotWater, err = p.cached("demand-hotwater:"+path, func() ([]float64, error) {
		return loadColumnCSV(path, 1, model.Hours)
	})
	if err != nil {
		return nil, nil, err
	}
	electricity, err = p.cached("demand-electricity:"+path, func() ([]float64, error) {
		return loadColumnCSV(path, 3, model.Hours)
	})
	if err != nil {
		return nil, nil, err
	}
	return hotWater, electricity, nil
}

// COP returns the coefficient-of-performance series for the given heating
// medium from a when2heat CSV.
func (p *Provider) COP(path string, medium HeatingMedium) ([]float64, error) {
	return p.cached("cop:"+string(medium)+":"+path, func() ([]float64, error) {
		return loadNamedColumnCSV(path, medium.COPColumn(), model.Hours)
	})
}

// HeatProfile returns the space-heat demand profile for the given building
// class from a when2heat CSV. The profile is unnormalized; callers scale it
// to an annual total.
func (p *Provider) HeatProfile(path string, class BuildingClass) ([]float64, error) {
	return p.cached("heat-profile:"+string(class)+":"+path, func() ([]float64, error) {
		return loadNamedColumnCSV(path, class.ProfileColumn(), model.Hours)
	})
}

// HeatingMedium selects the heat distribution system, which determines the
// COP column of the when2heat data.
type HeatingMedium string

const (
	MediumFloor    HeatingMedium = "floor"
	MediumRadiator HeatingMedium = "radiator"
)

// COPColumn is the when2heat column carrying this medium's COP series.
func (m HeatingMedium) COPColumn() string {
	if m == MediumFloor {
		return "ES_COP_ASHP_floor"
	}
	return "ES_COP_ASHP_radiator"
}

// BuildingClass selects the space-heat profile column of the when2heat data.
type BuildingClass string

const (
	ClassSingleFamily BuildingClass = "SFH"
	ClassMultiFamily  BuildingClass = "MFH"
)

// ProfileColumn is the when2heat column carrying this class's heat profile.
func (c BuildingClass) ProfileColumn() string {
	if c == ClassMultiFamily {
		return "ES_heat_demand_space_MFH"
	}
	return "ES_heat_demand_space_SFH"
}
