// Package config loads and validates the application configuration from a
// YAML or JSON file, with optional environment variable overrides.
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

	"github.com/gridsteel/steelflex/core/metrics"
	"github.com/gridsteel/steelflex/core/plant"
	"github.com/gridsteel/steelflex/core/schedule"
)

type Config struct {
	Plant     plant.Config   `json:"plant"`
	Series    SeriesConfig   `json:"series"`
	Objective string         `json:"objective"`
	Solver    SolverConfig   `json:"solver"`
	Results   ResultsConfig  `json:"results"`
	Metrics   metrics.Config `json:"metrics"`
}

// SeriesConfig describes where the generation and price time series come from.
type SeriesConfig struct {
	// GenerationFile holds either renewable power in MW or raw wind speed in
	// m/s; the latter is converted when Wind is set.
	GenerationFile   string `json:"generation_file"`
	GenerationColumn string `json:"generation_column"`

	PriceFile   string `json:"price_file"`
	PriceColumn string `json:"price_column"`

	// Wind enables conversion of the generation column from wind speed to
	// farm power output.
	Wind *WindConfig `json:"wind"`
}

// WindConfig sizes the wind farm whose output is derived from speed data.
type WindConfig struct {
	InstalledMW float64 `json:"installed_mw"`
}

// SolverConfig controls the solve run.
type SolverConfig struct {
	TimeLimitSeconds int     `json:"time_limit_seconds"`
	Gap              float64 `json:"gap"`
	Verbose          bool    `json:"verbose"`
}

// ResultsConfig defines where solved runs are persisted.
type ResultsConfig struct {
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *ResultsConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "runs.jsonl"
	}
}

func (c SeriesConfig) Validate() error {
	if c.GenerationFile == "" {
		return fmt.Errorf("series: generation_file is required")
	}
	if c.GenerationColumn == "" {
		return fmt.Errorf("series: generation_column is required")
	}
	if c.PriceFile == "" {
		return fmt.Errorf("series: price_file is required")
	}
	if c.PriceColumn == "" {
		return fmt.Errorf("series: price_column is required")
	}
	if c.Wind != nil && c.Wind.InstalledMW <= 0 {
		return fmt.Errorf("series: wind installed_mw must be positive")
	}
	return nil
}

func (c SolverConfig) Validate() error {
	if c.TimeLimitSeconds < 0 {
		return fmt.Errorf("solver: time_limit_seconds must not be negative")
	}
	if c.Gap < 0 {
		return fmt.Errorf("solver: gap must not be negative")
	}
	return nil
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
	if err := k.Load(env.Provider("SF_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "sf_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Results.SetDefaults()
	if err := cfg.Plant.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Series.Validate(); err != nil {
		return nil, err
	}
	if !schedule.Objective(cfg.Objective).Valid() {
		return nil, fmt.Errorf("%w: %q", schedule.ErrUnknownObjective, cfg.Objective)
	}
	if err := cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
