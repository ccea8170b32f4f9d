package schedule

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsteel/steelflex/core/plant"
	"github.com/gridsteel/steelflex/core/series"
)

// testPlant is a single-equipment plant with one mode: a two-step batch
// followed by one rolling step, producing 10 tons of slabs per batch.
func testPlant() plant.Config {
	return plant.Config{
		MinutesPerStep:  60,
		SteelDemandTons: 9,
		Electrolyser:    plant.Electrolyser{MaxCapacityMW: 20, MinConsumptionMW: 1, Efficiency: 1},
		HydrogenTank:    plant.HydrogenTank{CapacityMWh: 100, InitialFill: 0.5},
		FuelCell:        plant.FuelCell{CapacityMW: 5, Efficiency: 1},
		DRI:             plant.DRI{InitialContentTons: 10, H2MWhPerTon: 1},
		Equipment: []plant.Equipment{{
			ID:         "EAF",
			PauseSteps: 1,
			Rolling:    plant.Rolling{DurationSteps: 1, CapacityMW: 6, MassEfficiency: 0.9},
			Modes: []plant.Mode{
				{ID: "std", LoadProfileMW: []float64{4, 3}, DRIDemandTons: 2, OutputTons: 10},
			},
		}},
	}
}

func flatSeries(n int, v float64) series.Series {
	s := make(series.Series, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func buildTest(t *testing.T, cfg plant.Config, n int, obj Objective) *Model {
	t.Helper()
	m, err := Build(cfg, flatSeries(n, 10), flatSeries(n, 50), obj)
	require.NoError(t, err)
	return m
}

// TestBatchLifecycleFeasible walks one batch through the full model: start at
// step 0, occupy the equipment for two steps, roll in step 3 and export the
// remaining renewable power. The hand-built assignment must satisfy every
// constraint.
func TestBatchLifecycleFeasible(t *testing.T) {
	const n = 6
	m := buildTest(t, testPlant(), n, ObjectiveMaxProfit)

	x := make([]float64, m.MILP.NumVars())
	set := func(name string, val float64) {
		v, ok := m.MILP.VarByName(name)
		require.True(t, ok, "variable %s not declared", name)
		x[v] = val
	}
	setSeries := func(format string, vals [n]float64) {
		for t2, val := range vals {
			set(fmt.Sprintf(format, t2), val)
		}
	}

	exchange := [n]float64{6, 7, 10, 4, 10, 10}
	mean := (6.0 + 7 + 10 + 4 + 10 + 10) / n

	setSeries("equipment_decision_turnon[EAF,std,%d]", [n]float64{1, 0, 0, 0, 0, 0})
	setSeries("virtual_eq_running[EAF,std,%d]", [n]float64{1, 1, 0, 0, 0, 0})
	setSeries("equipment_running[EAF,%d]", [n]float64{1, 1, 0, 0, 0, 0})
	setSeries("equipment_load_profile[EAF,%d]", [n]float64{4, 3, 0, 0, 0, 0})
	setSeries("slabs_and_billets_storage[EAF,std,%d]", [n]float64{0, 0, 10, 0, 0, 0})
	setSeries("rolling_running[EAF,%d]", [n]float64{0, 0, 0, 1, 0, 0})
	setSeries("rolling_load[EAF,%d]", [n]float64{0, 0, 0, 6, 0, 0})
	setSeries("steel_produced_in_eq[EAF,%d]", [n]float64{0, 0, 9, 9, 9, 9})

	// hydrogen side stays idle, storages hold their initial content
	setSeries("h2_storage_content[%d]", [n]float64{50, 50, 50, 50, 50, 50})
	setSeries("dri_storage_content[%d]", [n]float64{8, 8, 8, 8, 8, 8})

	setSeries("power_to_grid[%d]", exchange)
	setSeries("power_exchange[%d]", exchange)
	set("mean_power_exchange", mean)
	for t2, e := range exchange {
		dev := e - mean
		if dev > 0 {
			set(fmt.Sprintf("dist_power_exchange_above_mean[%d]", t2), dev)
		} else {
			set(fmt.Sprintf("dist_power_exchange_below_mean[%d]", t2), -dev)
		}
		if t2 > 0 {
			jump := exchange[t2-1] - e
			set(fmt.Sprintf("load_jump[%d]", t2), jump)
			if jump > 0 {
				set(fmt.Sprintf("load_jump_up[%d]", t2), jump)
			} else {
				set(fmt.Sprintf("load_jump_down[%d]", t2), -jump)
			}
		}
		set(fmt.Sprintf("electricity_market_profit[%d]", t2), e*50)
	}

	require.NoError(t, m.MILP.CheckFeasible(x, 1e-6))

	// Starting a second batch right after the first, with occupancy and DRI
	// consumption booked consistently, still breaks the downtime constraint.
	set("equipment_decision_turnon[EAF,std,2]", 1)
	set("virtual_eq_running[EAF,std,2]", 1)
	set("virtual_eq_running[EAF,std,3]", 1)
	set("equipment_running[EAF,2]", 1)
	set("equipment_running[EAF,3]", 1)
	setSeries("dri_storage_content[%d]", [n]float64{8, 8, 6, 6, 6, 6})
	err := m.MILP.CheckFeasible(x, 1e-6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wait")
}

// TestBatchStartWindowRejectsLateTurnOn starts a batch one step past the
// latest point at which it could still finish rolling within the horizon:
// with a two-step batch and one rolling step over six steps the last valid
// turn-on is step 3.
func TestBatchStartWindowRejectsLateTurnOn(t *testing.T) {
	const n = 6
	m := buildTest(t, testPlant(), n, ObjectiveMaxProfit)

	x := make([]float64, m.MILP.NumVars())
	set := func(name string, val float64) {
		v, ok := m.MILP.VarByName(name)
		require.True(t, ok, "variable %s not declared", name)
		x[v] = val
	}
	setSeries := func(format string, vals [n]float64) {
		for t2, val := range vals {
			set(fmt.Sprintf(format, t2), val)
		}
	}

	setSeries("equipment_decision_turnon[EAF,std,%d]", [n]float64{0, 0, 0, 0, 1, 0})
	setSeries("virtual_eq_running[EAF,std,%d]", [n]float64{0, 0, 0, 0, 1, 1})
	setSeries("equipment_running[EAF,%d]", [n]float64{0, 0, 0, 0, 1, 1})
	setSeries("h2_storage_content[%d]", [n]float64{50, 50, 50, 50, 50, 50})
	setSeries("dri_storage_content[%d]", [n]float64{10, 10, 10, 10, 8, 8})

	err := m.MILP.CheckFeasible(x, 1e-6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting_time")
}

// TestModesMutuallyExclusive gives the equipment a second mode and lets the
// two batches overlap in step 1. The running indicator is a single binary per
// equipment, so overlapping modes cannot satisfy its defining equality.
func TestModesMutuallyExclusive(t *testing.T) {
	const n = 6
	cfg := testPlant()
	cfg.Equipment[0].Modes = append(cfg.Equipment[0].Modes,
		plant.Mode{ID: "slow", LoadProfileMW: []float64{2, 2}, DRIDemandTons: 2, OutputTons: 10})
	m := buildTest(t, cfg, n, ObjectiveMaxProfit)

	x := make([]float64, m.MILP.NumVars())
	set := func(name string, val float64) {
		v, ok := m.MILP.VarByName(name)
		require.True(t, ok, "variable %s not declared", name)
		x[v] = val
	}
	setSeries := func(format string, vals [n]float64) {
		for t2, val := range vals {
			set(fmt.Sprintf(format, t2), val)
		}
	}

	setSeries("equipment_decision_turnon[EAF,std,%d]", [n]float64{1, 0, 0, 0, 0, 0})
	setSeries("equipment_decision_turnon[EAF,slow,%d]", [n]float64{0, 1, 0, 0, 0, 0})
	setSeries("virtual_eq_running[EAF,std,%d]", [n]float64{1, 1, 0, 0, 0, 0})
	setSeries("virtual_eq_running[EAF,slow,%d]", [n]float64{0, 1, 1, 0, 0, 0})
	setSeries("equipment_running[EAF,%d]", [n]float64{1, 1, 1, 0, 0, 0})
	setSeries("h2_storage_content[%d]", [n]float64{50, 50, 50, 50, 50, 50})
	setSeries("dri_storage_content[%d]", [n]float64{8, 6, 6, 6, 6, 6})

	err := m.MILP.CheckFeasible(x, 1e-6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "equipment_running")
}

func TestBuildDeterministic(t *testing.T) {
	a := buildTest(t, testPlant(), 6, ObjectiveStability)
	b := buildTest(t, testPlant(), 6, ObjectiveStability)

	assert.Equal(t, a.MILP.VarNames(), b.MILP.VarNames())
	require.Equal(t, a.MILP.NumConstraints(), b.MILP.NumConstraints())
	for i, ca := range a.MILP.Constraints() {
		assert.Equal(t, ca.Name, b.MILP.Constraints()[i].Name)
	}
}

func TestBuildGatedVariables(t *testing.T) {
	m := buildTest(t, testPlant(), 6, ObjectiveMaxProfit)
	names := strings.Join(m.MILP.VarNames(), "\n")
	assert.NotContains(t, names, "power_from_grid")
	assert.NotContains(t, names, "electricity_market_cost")
	assert.Contains(t, names, "mean_power_exchange")

	cfg := testPlant()
	cfg.DrawPowerFromGrid = true
	cfg.Grid = &plant.GridAccess{EnergyChargeEUR: 1, PowerChargeEURPerMW: 10}
	m = buildTest(t, cfg, 6, ObjectiveMaxProfit)
	names = strings.Join(m.MILP.VarNames(), "\n")
	assert.Contains(t, names, "power_from_grid[0]")
	assert.Contains(t, names, "electricity_market_cost[0]")
	assert.Contains(t, names, "grid_charges_power")

	goal := 5.0
	cfg = testPlant()
	cfg.GivenGoalLoad = true
	cfg.GoalLoadMW = &goal
	m = buildTest(t, cfg, 6, ObjectiveStability)
	_, ok := m.MILP.VarByName("mean_power_exchange")
	assert.False(t, ok)
	assert.False(t, m.Vars.HasMean)
}

func TestBuildStorageGoals(t *testing.T) {
	cfg := testPlant()
	cfg.UseStorageGoals = true
	cfg.StorageGoals = &plant.StorageGoals{H2ContentMWh: 10, DRIContentTons: 5}
	m := buildTest(t, cfg, 6, ObjectiveMaxProfit)

	var found int
	for _, c := range m.MILP.Constraints() {
		if c.Name == "goal_hydrogen_content" || c.Name == "goal_dri_content" {
			found++
		}
	}
	assert.Equal(t, 2, found)
}

func TestBuildRejectsUnknownObjective(t *testing.T) {
	_, err := Build(testPlant(), flatSeries(6, 10), flatSeries(6, 50), "Max_Profit")
	require.ErrorIs(t, err, ErrUnknownObjective)

	_, err = Build(testPlant(), flatSeries(6, 10), flatSeries(6, 50), "")
	require.ErrorIs(t, err, ErrUnknownObjective)
}

func TestBuildRejectsBadInput(t *testing.T) {
	_, err := Build(testPlant(), flatSeries(6, 10), flatSeries(5, 50), ObjectiveMaxProfit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price series")

	_, err = Build(testPlant(), nil, nil, ObjectiveMaxProfit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "horizon")

	cfg := testPlant()
	cfg.Equipment[0].Modes[0].LoadProfileMW = nil
	_, err = Build(cfg, flatSeries(6, 10), flatSeries(6, 50), ObjectiveMaxProfit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load profile is missing")

	cfg = testPlant()
	cfg.Equipment[0].Modes[0].DurationSteps = 5
	_, err = Build(cfg, flatSeries(6, 10), flatSeries(6, 50), ObjectiveMaxProfit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match profile length")
}

func TestBuildObjectiveSense(t *testing.T) {
	m := buildTest(t, testPlant(), 6, ObjectiveMaxProfit)
	obj, ok := m.MILP.Objective()
	require.True(t, ok)
	assert.Equal(t, "max_profit", string(m.Objective))
	assert.NotNil(t, obj.Expr)

	m = buildTest(t, testPlant(), 6, ObjectiveMinLoadJumps)
	obj, ok = m.MILP.Objective()
	require.True(t, ok)
	assert.NotNil(t, obj.Expr)
}
