package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `plant:
  minutes_per_step: 15
  steel_demand_tons: 100
  electrolyser:
    max_capacity_mw: 20
    min_consumption_mw: 2
    efficiency: 0.7
  hydrogen_tank:
    capacity_mwh: 40
    initial_fill: 0.5
  fuel_cell:
    capacity_mw: 5
    efficiency: 0.6
  dri:
    initial_content_tons: 30
    h2_mwh_per_ton: 2.5
  equipment:
    - id: EAF
      pause_steps: 1
      rolling:
        duration_steps: 2
        capacity_mw: 6
        mass_efficiency: 0.95
      modes:
        - id: fast
          load_profile_mw: [30, 25]
          dri_demand_tons: 20
          output_tons: 18
series:
  generation_file: gen.csv
  generation_column: wind_speed
  price_file: price.csv
  price_column: price
  wind:
    installed_mw: 60
objective: max_profit
solver:
  time_limit_seconds: 60
  gap: 0.01
  verbose: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "max_profit", cfg.Objective)
	assert.Equal(t, 15.0, cfg.Plant.MinutesPerStep)
	assert.Equal(t, "EAF", cfg.Plant.Equipment[0].ID)
	assert.Equal(t, []float64{30, 25}, cfg.Plant.Equipment[0].Modes[0].LoadProfileMW)
	require.NotNil(t, cfg.Series.Wind)
	assert.Equal(t, 60.0, cfg.Series.Wind.InstalledMW)
	assert.Equal(t, 60, cfg.Solver.TimeLimitSeconds)
	assert.True(t, cfg.Solver.Verbose)
	// defaulted
	assert.Equal(t, "runs.jsonl", cfg.Results.Path)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SF_OBJECTIVE", "stability")
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, "stability", cfg.Objective)
}

func TestLoadRejects(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := strings.Replace(validYAML, "objective: max_profit", "objective: Max_Profit", 1)
	_, err = Load(writeConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown objective")

	bad = strings.Replace(validYAML, "minutes_per_step: 15", "minutes_per_step: 0", 1)
	_, err = Load(writeConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minutes_per_step")

	bad = strings.Replace(validYAML, "generation_file: gen.csv", "generation_file: \"\"", 1)
	_, err = Load(writeConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation_file")
}
