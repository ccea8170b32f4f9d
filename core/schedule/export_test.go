package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsteel/steelflex/core/solve"
)

func TestExportParameters(t *testing.T) {
	m := buildTest(t, testPlant(), 6, ObjectiveMaxProfit)
	recs := m.ExportParameters()

	byKey := make(map[string]any, len(recs))
	for _, r := range recs {
		byKey[r.Key] = r.Value
	}

	assert.Equal(t, 6, byKey["horizon"])
	assert.Equal(t, 60.0, byKey["minutes_per_step"])
	assert.Equal(t, "max_profit", byKey["objective"])
	assert.Equal(t, 2.0, byKey["dri_demand[EAF,std]"])
	assert.Equal(t, 4.0, byKey["batch_load_profile[EAF,std,0]"])
	assert.Equal(t, 10.0, byKey["renewable_generation[0]"])
	assert.Equal(t, 50.0, byKey["electricity_price[5]"])

	// gated parameter groups stay out when their switch is off
	_, ok := byKey["goal_h2_content"]
	assert.False(t, ok)
	_, ok = byKey["grid_charge_energy_price"]
	assert.False(t, ok)
}

func TestExportSolution(t *testing.T) {
	m := buildTest(t, testPlant(), 6, ObjectiveMaxProfit)

	values := make(map[string]float64)
	for i, name := range m.MILP.VarNames() {
		values[name] = float64(i)
	}
	res := solve.Result{Status: solve.StatusOptimal, Values: values}

	recs := m.ExportSolution(res)
	require.Len(t, recs, m.MILP.NumVars())
	// declaration order is preserved
	assert.Equal(t, m.MILP.VarNames()[0], recs[0].Key)
	assert.Equal(t, 0.0, recs[0].Value)
}
