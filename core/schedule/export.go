package schedule

import (
	"fmt"

	"github.com/gridsteel/steelflex/core/results"
	"github.com/gridsteel/steelflex/core/solve"
)

// ExportParameters returns every set and parameter of the model as flat
// key-value records, so a persisted run is self-describing.
func (m *Model) ExportParameters() []results.Record {
	cfg := m.Config
	recs := []results.Record{
		{Key: "horizon", Value: m.Sets.Horizon},
		{Key: "minutes_per_step", Value: cfg.MinutesPerStep},
		{Key: "steel_demand_tons", Value: cfg.SteelDemandTons},
		{Key: "max_capacity_electrolyser", Value: cfg.Electrolyser.MaxCapacityMW},
		{Key: "min_consumption_electrolyser", Value: cfg.Electrolyser.MinConsumptionMW},
		{Key: "electrolyser_efficiency", Value: cfg.Electrolyser.Efficiency},
		{Key: "nominal_cap_hydrogen_tank", Value: cfg.HydrogenTank.CapacityMWh},
		{Key: "initial_h2_tank_filling", Value: cfg.HydrogenTank.InitialFill},
		{Key: "initial_dri_content", Value: cfg.DRI.InitialContentTons},
		{Key: "h2_mwh_per_dri", Value: cfg.DRI.H2MWhPerTon},
		{Key: "fc_capacity", Value: cfg.FuelCell.CapacityMW},
		{Key: "fc_efficiency", Value: cfg.FuelCell.Efficiency},
		{Key: "use_storage_goals", Value: cfg.UseStorageGoals},
		{Key: "draw_power_from_grid", Value: cfg.DrawPowerFromGrid},
		{Key: "given_goal_load", Value: cfg.GivenGoalLoad},
		{Key: "objective", Value: string(m.Objective)},
	}
	for _, e := range m.Sets.Equipment {
		recs = append(recs, results.Record{Key: fmt.Sprintf("equipment[%s]", e), Value: e})
	}
	for _, key := range m.Sets.Virtual {
		recs = append(recs,
			results.Record{Key: fmt.Sprintf("virtual_equipment[%s]", key), Value: key.Mode},
			results.Record{Key: fmt.Sprintf("virtual_equipment_duration[%s]", key), Value: m.Sets.BatchSteps[key]},
		)
	}
	for _, e := range cfg.Equipment {
		recs = append(recs,
			results.Record{Key: fmt.Sprintf("t_pause[%s]", e.ID), Value: e.PauseSteps},
			results.Record{Key: fmt.Sprintf("rolling_duration[%s]", e.ID), Value: e.Rolling.DurationSteps},
			results.Record{Key: fmt.Sprintf("rolling_cap[%s]", e.ID), Value: e.Rolling.CapacityMW},
			results.Record{Key: fmt.Sprintf("rolling_mass_efficiency[%s]", e.ID), Value: e.Rolling.MassEfficiency},
		)
		for _, v := range e.Modes {
			key := VirtualKey{Equipment: e.ID, Mode: v.ID}
			recs = append(recs,
				results.Record{Key: fmt.Sprintf("dri_demand[%s]", key), Value: v.DRIDemandTons},
				results.Record{Key: fmt.Sprintf("output_steel_products[%s]", key), Value: v.OutputTons},
			)
			for z, load := range v.LoadProfileMW {
				recs = append(recs, results.Record{
					Key:   fmt.Sprintf("batch_load_profile[%s,%d]", key, z),
					Value: load,
				})
			}
		}
	}
	if cfg.UseStorageGoals {
		recs = append(recs,
			results.Record{Key: "goal_h2_content", Value: cfg.StorageGoals.H2ContentMWh},
			results.Record{Key: "goal_dri_content", Value: cfg.StorageGoals.DRIContentTons},
		)
	}
	if cfg.DrawPowerFromGrid {
		recs = append(recs,
			results.Record{Key: "grid_charge_energy_price", Value: cfg.Grid.EnergyChargeEUR},
			results.Record{Key: "grid_charge_power_price", Value: cfg.Grid.PowerChargeEURPerMW},
		)
	}
	if cfg.GivenGoalLoad {
		recs = append(recs, results.Record{Key: "goal_load", Value: *cfg.GoalLoadMW})
	}
	for t := 0; t < m.Sets.Horizon; t++ {
		recs = append(recs,
			results.Record{Key: fmt.Sprintf("renewable_generation[%d]", t), Value: m.Generation[t]},
			results.Record{Key: fmt.Sprintf("electricity_price[%d]", t), Value: m.Price[t]},
		)
	}
	return recs
}

// ExportSolution returns one record per declared variable with its solved
// value, in declaration order.
func (m *Model) ExportSolution(res solve.Result) []results.Record {
	names := m.MILP.VarNames()
	recs := make([]results.Record, 0, len(names))
	for _, name := range names {
		if val, ok := res.Values[name]; ok {
			recs = append(recs, results.Record{Key: name, Value: val})
		}
	}
	return recs
}
