// Package config loads the application configuration from a YAML or JSON
// file with optional environment overrides, validates it, and resolves it
// into the domain structures the cores consume.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Data       DataConfig        `json:"data"`
	System     SystemConfig      `json:"system"`
	Battery    *BatteryConfig    `json:"battery"`
	HotWater   *HotWaterConfig   `json:"hot_water"`
	EV         *EVConfig         `json:"ev"`
	HeatPump   *HeatPumpConfig   `json:"heat_pump"`
	Tariff     TariffConfig      `json:"tariff"`
	Simulation SimulationConfig  `json:"simulation"`
	Finance    FinanceConfig     `json:"finance"`
	Sweep      SweepConfig       `json:"sweep"`
	Metrics    MetricsConfig     `json:"metrics"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("SOLAR_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "solar_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.System.SetDefaults()
	cfg.Simulation.SetDefaults()
	cfg.Sweep.SetDefaults()
	if cfg.Battery != nil {
		cfg.Battery.SetDefaults()
	}
	if cfg.HotWater != nil {
		cfg.HotWater.SetDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate runs the section validators. Absent optional sections are valid.
func (c *Config) Validate() error {
	if err := c.Data.Validate(); err != nil {
		return err
	}
	if err := c.System.Validate(); err != nil {
		return err
	}
	if c.Battery != nil {
		if err := c.Battery.Validate(); err != nil {
			return err
		}
	}
	if c.HotWater != nil {
		if err := c.HotWater.Validate(); err != nil {
			return err
		}
	}
	if c.EV != nil {
		if err := c.EV.Validate(); err != nil {
			return err
		}
	}
	if c.HeatPump != nil {
		if err := c.HeatPump.Validate(); err != nil {
			return err
		}
	}
	if err := c.Tariff.Validate(); err != nil {
		return err
	}
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	return c.Sweep.Validate()
}
