package schedule

import (
	"fmt"

	"github.com/gridsteel/steelflex/core/milp"
	"github.com/gridsteel/steelflex/core/plant"
)

// Variables holds the handles of every decision and derived variable,
// addressed by the index domains of the model. Optional groups gated by
// configuration switches stay nil when their switch is off.
type Variables struct {
	// Decision variables.
	TurnOn           map[VirtualKey][]milp.Var // batch start per virtual equipment and step
	ElectrolyserOn   []milp.Var
	ElectrolyserLoad []milp.Var
	FuelCellGen      []milp.Var
	H2ForDRI         []milp.Var
	H2StorageFlow    []milp.Var // signed, negative draws from storage
	PowerFromGrid    []milp.Var // only with grid import enabled

	// Storage contents.
	H2Content  []milp.Var
	DRIContent []milp.Var

	// Steelmaking.
	EquipmentLoad    map[string][]milp.Var
	VirtualRunning   map[VirtualKey][]milp.Var
	EquipmentRunning map[string][]milp.Var
	SlabStorage      map[VirtualKey][]milp.Var

	// Rolling.
	RollingRunning map[string][]milp.Var
	RollingLoad    map[string][]milp.Var
	SteelProduced  map[string][]milp.Var

	// Power exchange.
	PowerExchange     []milp.Var // signed, positive exports
	PowerToGrid       []milp.Var
	MeanPowerExchange milp.Var // only without a given goal load
	HasMean           bool
	DistAboveMean     []milp.Var
	DistBelowMean     []milp.Var
	LoadJump          []milp.Var // signed
	LoadJumpUp        []milp.Var
	LoadJumpDown      []milp.Var

	// Economics.
	MarketProfit     []milp.Var
	MarketCost       []milp.Var // only with grid import enabled
	MaxPowerFromGrid milp.Var   // only with grid import enabled
	GridChargePower  milp.Var   // only with grid import enabled
}

// allocate declares every variable over its index domain, in a fixed order so
// construction is deterministic.
func allocate(m *milp.Model, cfg plant.Config, sets Sets) *Variables {
	n := sets.Horizon
	v := &Variables{
		TurnOn:           make(map[VirtualKey][]milp.Var, len(sets.Virtual)),
		EquipmentLoad:    make(map[string][]milp.Var, len(sets.Equipment)),
		VirtualRunning:   make(map[VirtualKey][]milp.Var, len(sets.Virtual)),
		EquipmentRunning: make(map[string][]milp.Var, len(sets.Equipment)),
		SlabStorage:      make(map[VirtualKey][]milp.Var, len(sets.Virtual)),
		RollingRunning:   make(map[string][]milp.Var, len(sets.Equipment)),
		RollingLoad:      make(map[string][]milp.Var, len(sets.Equipment)),
		SteelProduced:    make(map[string][]milp.Var, len(sets.Equipment)),
	}

	for _, key := range sets.Virtual {
		v.TurnOn[key] = binaryPerStep(m, "equipment_decision_turnon", key, n)
	}
	v.ElectrolyserOn = make([]milp.Var, n)
	v.ElectrolyserLoad = make([]milp.Var, n)
	v.FuelCellGen = make([]milp.Var, n)
	v.H2ForDRI = make([]milp.Var, n)
	v.H2StorageFlow = make([]milp.Var, n)
	for t := 0; t < n; t++ {
		v.ElectrolyserOn[t] = m.NewBinary(indexed("electrolysers_decision_turnon", t))
		v.ElectrolyserLoad[t] = m.NewNonNegative(indexed("electricity_consumption_electrolysers", t))
		v.FuelCellGen[t] = m.NewNonNegative(indexed("fc_generation", t))
		v.H2ForDRI[t] = m.NewNonNegative(indexed("h2_mwh_for_dri", t))
		v.H2StorageFlow[t] = m.NewFree(indexed("h2_mwh_storage_flow", t))
	}
	if cfg.DrawPowerFromGrid {
		v.PowerFromGrid = make([]milp.Var, n)
		for t := 0; t < n; t++ {
			v.PowerFromGrid[t] = m.NewNonNegative(indexed("power_from_grid", t))
		}
	}

	v.H2Content = make([]milp.Var, n)
	v.DRIContent = make([]milp.Var, n)
	for t := 0; t < n; t++ {
		v.H2Content[t] = m.NewNonNegative(indexed("h2_storage_content", t))
		v.DRIContent[t] = m.NewNonNegative(indexed("dri_storage_content", t))
	}

	for _, e := range sets.Equipment {
		v.EquipmentLoad[e] = nonNegativePerStep(m, "equipment_load_profile", e, n)
		v.EquipmentRunning[e] = make([]milp.Var, n)
		for t := 0; t < n; t++ {
			v.EquipmentRunning[e][t] = m.NewBinary(fmt.Sprintf("equipment_running[%s,%d]", e, t))
		}
	}
	for _, key := range sets.Virtual {
		v.VirtualRunning[key] = binaryPerStep(m, "virtual_eq_running", key, n)
		v.SlabStorage[key] = make([]milp.Var, n)
		for t := 0; t < n; t++ {
			v.SlabStorage[key][t] = m.NewNonNegative(fmt.Sprintf("slabs_and_billets_storage[%s,%d]", key, t))
		}
	}
	for _, e := range sets.Equipment {
		v.RollingRunning[e] = make([]milp.Var, n)
		v.RollingLoad[e] = nonNegativePerStep(m, "rolling_load", e, n)
		v.SteelProduced[e] = nonNegativePerStep(m, "steel_produced_in_eq", e, n)
		for t := 0; t < n; t++ {
			v.RollingRunning[e][t] = m.NewBinary(fmt.Sprintf("rolling_running[%s,%d]", e, t))
		}
	}

	v.PowerExchange = make([]milp.Var, n)
	v.PowerToGrid = make([]milp.Var, n)
	v.DistAboveMean = make([]milp.Var, n)
	v.DistBelowMean = make([]milp.Var, n)
	v.LoadJump = make([]milp.Var, n)
	v.LoadJumpUp = make([]milp.Var, n)
	v.LoadJumpDown = make([]milp.Var, n)
	for t := 0; t < n; t++ {
		v.PowerExchange[t] = m.NewFree(indexed("power_exchange", t))
		v.PowerToGrid[t] = m.NewNonNegative(indexed("power_to_grid", t))
	}
	if !cfg.GivenGoalLoad {
		v.MeanPowerExchange = m.NewFree("mean_power_exchange")
		v.HasMean = true
	}
	for t := 0; t < n; t++ {
		v.DistAboveMean[t] = m.NewNonNegative(indexed("dist_power_exchange_above_mean", t))
		v.DistBelowMean[t] = m.NewNonNegative(indexed("dist_power_exchange_below_mean", t))
		v.LoadJump[t] = m.NewFree(indexed("load_jump", t))
		v.LoadJumpUp[t] = m.NewNonNegative(indexed("load_jump_up", t))
		v.LoadJumpDown[t] = m.NewNonNegative(indexed("load_jump_down", t))
	}

	v.MarketProfit = make([]milp.Var, n)
	for t := 0; t < n; t++ {
		v.MarketProfit[t] = m.NewFree(indexed("electricity_market_profit", t))
	}
	if cfg.DrawPowerFromGrid {
		v.MarketCost = make([]milp.Var, n)
		for t := 0; t < n; t++ {
			v.MarketCost[t] = m.NewFree(indexed("electricity_market_cost", t))
		}
		v.MaxPowerFromGrid = m.NewNonNegative("max_power_from_grid")
		v.GridChargePower = m.NewNonNegative("grid_charges_power")
	}
	return v
}

func indexed(name string, t int) string { return fmt.Sprintf("%s[%d]", name, t) }

func binaryPerStep(m *milp.Model, name string, key VirtualKey, n int) []milp.Var {
	vars := make([]milp.Var, n)
	for t := 0; t < n; t++ {
		vars[t] = m.NewBinary(fmt.Sprintf("%s[%s,%d]", name, key, t))
	}
	return vars
}

func nonNegativePerStep(m *milp.Model, name, equipment string, n int) []milp.Var {
	vars := make([]milp.Var, n)
	for t := 0; t < n; t++ {
		vars[t] = m.NewNonNegative(fmt.Sprintf("%s[%s,%d]", name, equipment, t))
	}
	return vars
}
