package schedule

import (
	"fmt"

	"github.com/gridsteel/steelflex/core/milp"
)

// builder assembles the constraint families of the model. Each method covers
// one plant section and mirrors the order in which the sections feed each
// other: reduction unit, fuel cell, steelmaking, rolling, energy management,
// load jumps and economics.
type builder struct {
	m    *milp.Model
	p    parameters
	sets Sets
	v    *Variables
}

func conName(name string, idx ...any) string {
	s := name + "["
	for i, ix := range idx {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprint(ix)
	}
	return s + "]"
}

// reductionUnit covers the electrolysers, the hydrogen flows and both
// storage recurrences.
func (b *builder) reductionUnit() {
	el := b.p.cfg.Electrolyser
	tank := b.p.cfg.HydrogenTank
	fc := b.p.cfg.FuelCell
	dri := b.p.cfg.DRI

	for t := 0; t < b.sets.Horizon; t++ {
		// The electrolyser load is semi-continuous: zero or within
		// [min, max]. Solvers see only linear constructs, so the domain is
		// encoded with the per-step turn-on binary.
		b.m.AddLe(conName("electrolyser_max_consumption", t),
			milp.VarExpr(b.v.ElectrolyserLoad[t]).AddTerm(b.v.ElectrolyserOn[t], -el.MaxCapacityMW), 0)
		b.m.AddGe(conName("electrolyser_min_consumption", t),
			milp.VarExpr(b.v.ElectrolyserLoad[t]).AddTerm(b.v.ElectrolyserOn[t], -el.MinConsumptionMW), 0)

		// Produced hydrogen splits into direct reduction and storage flow;
		// the flow is negative when hydrogen is drawn from the tank.
		b.m.AddEq(conName("h2_flow", t),
			milp.NewExpr().
				AddTerm(b.v.ElectrolyserLoad[t], el.Efficiency*b.p.deltaT).
				Sub(b.v.H2ForDRI[t]).
				Sub(b.v.H2StorageFlow[t]),
			0)

		// The shaft furnace processes at most the hydrogen the electrolysers
		// can deliver at full utilisation.
		b.m.AddLe(conName("reduction_unit_max_h2_consumption", t),
			milp.VarExpr(b.v.H2ForDRI[t]),
			el.MaxCapacityMW*b.p.deltaT*el.Efficiency)

		// DRI stock recurrence: production from hydrogen minus the demand of
		// every batch starting at t.
		driExpr := milp.VarExpr(b.v.DRIContent[t]).
			AddTerm(b.v.H2ForDRI[t], -1/dri.H2MWhPerTon)
		for _, key := range b.sets.Virtual {
			driExpr.AddTerm(b.v.TurnOn[key][t], b.p.mode[key].DRIDemandTons)
		}
		rhs := 0.0
		if t == 0 {
			rhs = dri.InitialContentTons
		} else {
			driExpr.Sub(b.v.DRIContent[t-1])
		}
		b.m.AddEq(conName("dri_storage_content", t), driExpr, rhs)

		// Hydrogen tank recurrence, including the fuel-cell drawdown.
		h2Expr := milp.VarExpr(b.v.H2Content[t]).
			Sub(b.v.H2StorageFlow[t]).
			AddTerm(b.v.FuelCellGen[t], b.p.deltaT/fc.Efficiency)
		h2RHS := 0.0
		if t == 0 {
			h2RHS = b.p.initialH2MWh()
		} else {
			h2Expr.Sub(b.v.H2Content[t-1])
		}
		b.m.AddEq(conName("hydrogen_storage_content", t), h2Expr, h2RHS)

		// The lower bound is the variable domain; the tank capacity caps it.
		b.m.AddLe(conName("max_hydrogen_storage_content", t),
			milp.VarExpr(b.v.H2Content[t]), tank.CapacityMWh)
	}

	if b.p.cfg.UseStorageGoals {
		last := b.sets.Horizon - 1
		goals := b.p.cfg.StorageGoals
		b.m.AddGe("goal_hydrogen_content",
			milp.VarExpr(b.v.H2Content[last]), goals.H2ContentMWh)
		b.m.AddGe("goal_dri_content",
			milp.VarExpr(b.v.DRIContent[last]), goals.DRIContentTons)
	}
}

func (b *builder) fuelCell() {
	for t := 0; t < b.sets.Horizon; t++ {
		b.m.AddLe(conName("max_fc_generation", t),
			milp.VarExpr(b.v.FuelCellGen[t]), b.p.cfg.FuelCell.CapacityMW)
	}
}

// steelmaking covers batch occupancy, mutual exclusion, the valid start
// window, minimum downtime, load superposition and the intermediate-product
// storage per virtual equipment.
func (b *builder) steelmaking() {
	n := b.sets.Horizon

	for _, key := range b.sets.Virtual {
		dur := b.sets.BatchSteps[key]
		for t := 0; t < n; t++ {
			// A batch occupies its virtual equipment for dur steps after the
			// turn-on: running is a sliding-window sum over the lookback.
			running := milp.VarExpr(b.v.VirtualRunning[key][t])
			for z := 0; z < dur && z <= t; z++ {
				running.AddTerm(b.v.TurnOn[key][t-z], -1)
			}
			b.m.AddEq(conName("virtual_eq_running", key, t), running, 0)
		}
	}

	for _, e := range b.sets.Equipment {
		for t := 0; t < n; t++ {
			eq := milp.VarExpr(b.v.EquipmentRunning[e][t])
			for _, key := range b.sets.VirtualOf(e) {
				eq.Sub(b.v.VirtualRunning[key][t])
			}
			b.m.AddEq(conName("equipment_running", e, t), eq, 0)

			// At most one virtual equipment of e runs at a time.
			b.m.AddLe(conName("one_veq_running", e, t),
				milp.VarExpr(b.v.EquipmentRunning[e][t]), 1)
		}
	}

	for _, key := range b.sets.Virtual {
		dur := b.sets.BatchSteps[key]
		equip := b.p.equipment[key.Equipment]
		rollDur := equip.Rolling.DurationSteps
		pause := equip.PauseSteps
		for t := 0; t < n; t++ {
			// The last batch must finish, rolling included, within the horizon.
			b.m.AddLe(conName("starting_time", key, t),
				milp.NewExpr().AddTerm(b.v.TurnOn[key][t], float64(t)),
				float64(n-dur-rollDur))

			// A new batch may start only if the equipment was idle during the
			// whole preceding pause window.
			wait := milp.NewExpr().AddTerm(b.v.TurnOn[key][t], float64(pause))
			for k := 0; k < pause && t > k; k++ {
				wait.Add(b.v.EquipmentRunning[key.Equipment][t-k-1])
			}
			b.m.AddLe(conName("wait", key, t), wait, float64(pause))
		}
	}

	for _, e := range b.sets.Equipment {
		for t := 0; t < n; t++ {
			// Equipment load is the superposition of the profiles of every
			// batch overlapping step t.
			load := milp.VarExpr(b.v.EquipmentLoad[e][t])
			for _, key := range b.sets.VirtualOf(e) {
				profile := b.p.mode[key].LoadProfileMW
				for z := 0; z < len(profile) && z <= t; z++ {
					load.AddTerm(b.v.TurnOn[key][t-z], -profile[z])
				}
			}
			b.m.AddEq(conName("equipment_load", e, t), load, 0)
		}
	}

	// Intermediate products enter storage when a batch finishes and leave it
	// when the rolling started by that batch finishes. This ties rolling
	// output to the virtual equipment that fed it instead of a shared
	// rolling-capacity pool, which keeps the rolling stage linear.
	for _, key := range b.sets.Virtual {
		dur := b.sets.BatchSteps[key]
		mode := b.p.mode[key]
		rollDur := b.p.equipment[key.Equipment].Rolling.DurationSteps
		for t := 0; t < n; t++ {
			switch {
			case t < dur:
				b.m.AddEq(conName("slabs_and_billets_storage", key, t),
					milp.VarExpr(b.v.SlabStorage[key][t]), 0)
			case t < dur+rollDur:
				b.m.AddEq(conName("slabs_and_billets_storage", key, t),
					milp.VarExpr(b.v.SlabStorage[key][t]).
						Sub(b.v.SlabStorage[key][t-1]).
						AddTerm(b.v.TurnOn[key][t-dur], -mode.OutputTons),
					0)
			default:
				b.m.AddEq(conName("slabs_and_billets_storage", key, t),
					milp.VarExpr(b.v.SlabStorage[key][t]).
						Sub(b.v.SlabStorage[key][t-1]).
						AddTerm(b.v.TurnOn[key][t-dur], -mode.OutputTons).
						AddTerm(b.v.TurnOn[key][t-dur-rollDur], mode.OutputTons),
					0)
			}
		}
	}
}

// rolling covers the rolling units and cumulative steel production.
func (b *builder) rolling() {
	n := b.sets.Horizon
	for _, e := range b.sets.Equipment {
		equip := b.p.equipment[e]
		rollDur := equip.Rolling.DurationSteps
		for t := 0; t < n; t++ {
			// Rolling runs for rollDur steps immediately after each batch.
			running := milp.VarExpr(b.v.RollingRunning[e][t])
			for _, key := range b.sets.VirtualOf(e) {
				dur := b.sets.BatchSteps[key]
				for off := dur; off < dur+rollDur && t > off; off++ {
					running.AddTerm(b.v.TurnOn[key][t-off-1], -1)
				}
			}
			b.m.AddEq(conName("rolling_running", e, t), running, 0)

			b.m.AddEq(conName("rolling_load", e, t),
				milp.VarExpr(b.v.RollingLoad[e][t]).
					AddTerm(b.v.RollingRunning[e][t], -equip.Rolling.CapacityMW),
				0)

			// Cumulative rolled steel, with the rolling mass loss applied.
			if t == 0 {
				b.m.AddEq(conName("steel_produced_in_eq", e, t),
					milp.VarExpr(b.v.SteelProduced[e][t]), 0)
				continue
			}
			steel := milp.VarExpr(b.v.SteelProduced[e][t]).Sub(b.v.SteelProduced[e][t-1])
			for _, key := range b.sets.VirtualOf(e) {
				steel.AddTerm(b.v.SlabStorage[key][t], -equip.Rolling.MassEfficiency/float64(rollDur))
			}
			b.m.AddEq(conName("steel_produced_in_eq", e, t), steel, 0)
		}
	}

	demand := milp.NewExpr()
	for _, e := range b.sets.Equipment {
		demand.Add(b.v.SteelProduced[e][n-1])
	}
	b.m.AddGe("meet_steel_demand", demand, b.p.cfg.SteelDemandTons)
}

// energy covers the per-step balance, the power exchange with the grid and
// the mean-deviation split.
func (b *builder) energy() {
	n := b.sets.Horizon
	for t := 0; t < n; t++ {
		balance := milp.Constant(b.p.gen[t]).
			Add(b.v.FuelCellGen[t]).
			Sub(b.v.ElectrolyserLoad[t]).
			Sub(b.v.PowerToGrid[t])
		if b.p.cfg.DrawPowerFromGrid {
			balance.Add(b.v.PowerFromGrid[t])
		}
		for _, e := range b.sets.Equipment {
			balance.Sub(b.v.EquipmentLoad[e][t]).Sub(b.v.RollingLoad[e][t])
		}
		b.m.AddEq(conName("energy_balance", t), balance, 0)

		exchange := milp.VarExpr(b.v.PowerExchange[t]).Sub(b.v.PowerToGrid[t])
		if b.p.cfg.DrawPowerFromGrid {
			exchange.Add(b.v.PowerFromGrid[t])
		}
		b.m.AddEq(conName("power_exchange", t), exchange, 0)
	}

	if !b.p.cfg.GivenGoalLoad {
		mean := milp.VarExpr(b.v.MeanPowerExchange)
		for t := 0; t < n; t++ {
			mean.AddTerm(b.v.PowerExchange[t], -1/float64(n))
		}
		b.m.AddEq("mean_power_exchange", mean, 0)
	}

	if b.p.cfg.DrawPowerFromGrid {
		for t := 0; t < n; t++ {
			b.m.AddGe(conName("max_power_from_grid", t),
				milp.VarExpr(b.v.MaxPowerFromGrid).Sub(b.v.PowerFromGrid[t]), 0)
		}
	}

	// Linear programs cannot take absolute values, so the deviation of the
	// exchange from its target is split into the distances above and below.
	for t := 0; t < n; t++ {
		dev := milp.VarExpr(b.v.PowerExchange[t])
		if b.p.cfg.GivenGoalLoad {
			dev.AddConstant(-*b.p.cfg.GoalLoadMW)
		} else {
			dev.Sub(b.v.MeanPowerExchange)
		}
		b.m.AddSignedSplit(conName("power_exchange_split", t),
			b.v.DistAboveMean[t], b.v.DistBelowMean[t], dev)
	}
}

// loadJumps covers the change of the power exchange between consecutive
// steps and its up/down split.
func (b *builder) loadJumps() {
	for t := 0; t < b.sets.Horizon; t++ {
		if t == 0 {
			b.m.AddEq(conName("load_jump", t), milp.VarExpr(b.v.LoadJump[t]), 0)
		} else {
			b.m.AddEq(conName("load_jump", t),
				milp.VarExpr(b.v.LoadJump[t]).
					Sub(b.v.PowerExchange[t-1]).
					Add(b.v.PowerExchange[t]),
				0)
		}
		b.m.AddSignedSplit(conName("load_jump_split", t),
			b.v.LoadJumpUp[t], b.v.LoadJumpDown[t], milp.VarExpr(b.v.LoadJump[t]))
	}
}

// economics covers market profit, market cost and the grid charges.
func (b *builder) economics() {
	for t := 0; t < b.sets.Horizon; t++ {
		b.m.AddEq(conName("electricity_market_profit", t),
			milp.VarExpr(b.v.MarketProfit[t]).
				AddTerm(b.v.PowerToGrid[t], -b.p.deltaT*b.p.price[t]),
			0)
	}
	if !b.p.cfg.DrawPowerFromGrid {
		return
	}
	grid := b.p.cfg.Grid
	for t := 0; t < b.sets.Horizon; t++ {
		// The energy grid charge is a flat amount per buying step.
		b.m.AddEq(conName("electricity_market_cost", t),
			milp.VarExpr(b.v.MarketCost[t]).
				AddTerm(b.v.PowerFromGrid[t], -b.p.deltaT*b.p.price[t]),
			grid.EnergyChargeEUR)
	}
	// The demand rate is charged once on the peak imported power.
	b.m.AddEq("grid_charges_power",
		milp.VarExpr(b.v.GridChargePower).
			AddTerm(b.v.MaxPowerFromGrid, -grid.PowerChargeEURPerMW),
		0)
}
