package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsteel/steelflex/config"
	"github.com/gridsteel/steelflex/core/plant"
	"github.com/gridsteel/steelflex/core/results"
)

func writeCSV(t *testing.T, dir, name, column string, vals []float64) string {
	t.Helper()
	content := "time," + column + "\n"
	for i, v := range vals {
		content += fmt.Sprintf("%d,%v\n", i, v)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	const n = 8
	gen := make([]float64, n)
	price := make([]float64, n)
	for i := range gen {
		gen[i] = 10
		price[i] = 50
	}
	return &config.Config{
		Plant: plant.Config{
			MinutesPerStep: 60,
			Electrolyser:   plant.Electrolyser{MaxCapacityMW: 20, MinConsumptionMW: 1, Efficiency: 1},
			HydrogenTank:   plant.HydrogenTank{CapacityMWh: 100, InitialFill: 0.5},
			FuelCell:       plant.FuelCell{CapacityMW: 5, Efficiency: 1},
			DRI:            plant.DRI{InitialContentTons: 10, H2MWhPerTon: 1},
			Equipment: []plant.Equipment{{
				ID:         "EAF",
				PauseSteps: 1,
				Rolling:    plant.Rolling{DurationSteps: 1, CapacityMW: 6, MassEfficiency: 0.9},
				Modes: []plant.Mode{
					{ID: "std", LoadProfileMW: []float64{4, 3}, DRIDemandTons: 2, OutputTons: 10},
				},
			}},
		},
		Series: config.SeriesConfig{
			GenerationFile:   writeCSV(t, dir, "gen.csv", "generation_mw", gen),
			GenerationColumn: "generation_mw",
			PriceFile:        writeCSV(t, dir, "price.csv", "price", price),
			PriceColumn:      "price",
		},
		Objective: "min_load_jumps",
		Solver:    config.SolverConfig{TimeLimitSeconds: 30},
		Results:   config.ResultsConfig{Path: filepath.Join(dir, "runs.jsonl")},
	}
}

func TestServiceRun(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	require.NoError(t, err)

	runID, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	store, err := results.NewStore(cfg.Results.Path)
	require.NoError(t, err)

	recs, err := store.Query(runID, "")
	require.NoError(t, err)
	assert.NotEmpty(t, recs)

	params, err := store.Query(runID, "horizon")
	require.NoError(t, err)
	require.Len(t, params, 1)

	status, err := store.Query(runID, "status")
	require.NoError(t, err)
	require.Len(t, status, 1)
	assert.Equal(t, "optimal", status[0].Value)

	exch := results.SeriesByPrefix(recs, "power_exchange")
	assert.Len(t, exch, 8)
}

func TestServiceRunRejectsBadSeries(t *testing.T) {
	cfg := testConfig(t)
	cfg.Series.GenerationColumn = "missing"
	svc, err := New(cfg)
	require.NoError(t, err)

	_, err = svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation series")
}
