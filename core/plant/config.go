// Package plant describes the technical and economic configuration of a
// green-steel facility: the reduction unit with its electrolysers and
// hydrogen storage, the fuel cell, the steelmaking equipment with their
// operating modes, the rolling units and the grid connection.
package plant

import "fmt"

// Electrolyser holds the water-electrolysis parameters of the reduction unit.
type Electrolyser struct {
	// MaxCapacityMW is the installed power capacity [MW].
	MaxCapacityMW float64 `json:"max_capacity_mw"`
	// MinConsumptionMW is the minimum load when the unit is on [MW].
	MinConsumptionMW float64 `json:"min_consumption_mw"`
	// Efficiency is the electricity-to-hydrogen conversion efficiency [0..1].
	Efficiency float64 `json:"efficiency"`
}

// HydrogenTank holds the hydrogen storage parameters.
type HydrogenTank struct {
	// CapacityMWh is the nominal storage capacity [MWh].
	CapacityMWh float64 `json:"capacity_mwh"`
	// InitialFill is the share of capacity filled at the first step [0..1].
	InitialFill float64 `json:"initial_fill"`
}

// FuelCell reverts stored hydrogen back to electricity.
type FuelCell struct {
	CapacityMW float64 `json:"capacity_mw"`
	Efficiency float64 `json:"efficiency"`
}

// DRI holds the direct-reduced-iron parameters of the reduction unit.
type DRI struct {
	// InitialContentTons is the DRI stock at the first step [tons].
	InitialContentTons float64 `json:"initial_content_tons"`
	// H2MWhPerTon is the hydrogen needed to reduce one ton of iron ore [MWh].
	H2MWhPerTon float64 `json:"h2_mwh_per_ton"`
}

// Mode is one operating mode of an equipment, with its own batch duration,
// load profile and output.
type Mode struct {
	ID string `json:"id"`
	// LoadProfileMW is the electricity load per batch step [MW]. Its length
	// is the batch duration.
	LoadProfileMW []float64 `json:"load_profile_mw"`
	// DurationSteps optionally declares the batch duration; it must match the
	// profile length and defaults to it when zero.
	DurationSteps int `json:"duration_steps"`
	// DRIDemandTons is the DRI consumed when a batch starts [tons].
	DRIDemandTons float64 `json:"dri_demand_tons"`
	// OutputTons is the mass of slabs and billets one batch produces [tons].
	OutputTons float64 `json:"output_tons"`
}

// Rolling is the rolling unit attached to an equipment.
type Rolling struct {
	DurationSteps  int     `json:"duration_steps"`
	CapacityMW     float64 `json:"capacity_mw"`
	MassEfficiency float64 `json:"mass_efficiency"`
}

// Equipment is one steelmaking unit (electric arc furnace, ladle oven and
// caster aggregated), with its operating modes and its rolling unit.
type Equipment struct {
	ID string `json:"id"`
	// PauseSteps is the minimum downtime after a batch [steps].
	PauseSteps int     `json:"pause_steps"`
	Rolling    Rolling `json:"rolling"`
	Modes      []Mode  `json:"modes"`
}

// StorageGoals are minimum storage contents to reach at the end of the
// horizon. Required when UseStorageGoals is set.
type StorageGoals struct {
	H2ContentMWh   float64 `json:"h2_content_mwh"`
	DRIContentTons float64 `json:"dri_content_tons"`
}

// GridAccess enables drawing power from the grid and carries the grid-charge
// tariff components. Required when DrawPowerFromGrid is set.
type GridAccess struct {
	// EnergyChargeEUR is the grid charge added per step of bought energy [EUR].
	EnergyChargeEUR float64 `json:"energy_charge_eur"`
	// PowerChargeEURPerMW is the demand rate on the peak imported power [EUR/MW].
	PowerChargeEURPerMW float64 `json:"power_charge_eur_per_mw"`
}

// Boundary is a load-jump penalty band. Boundaries are carried through the
// configuration but no active constraint references them.
type Boundary struct {
	ID         string  `json:"id"`
	LimitMW    float64 `json:"limit_mw"`
	PenaltyEUR float64 `json:"penalty_eur"`
}

// Config is the full plant configuration record.
type Config struct {
	// MinutesPerStep is the duration of one time step [minutes].
	MinutesPerStep float64 `json:"minutes_per_step"`
	// SteelDemandTons is the total steel mass to produce over the horizon [tons].
	SteelDemandTons float64 `json:"steel_demand_tons"`

	Electrolyser Electrolyser `json:"electrolyser"`
	HydrogenTank HydrogenTank `json:"hydrogen_tank"`
	FuelCell     FuelCell     `json:"fuel_cell"`
	DRI          DRI          `json:"dri"`
	Equipment    []Equipment  `json:"equipment"`

	// UseStorageGoals enables end-of-horizon storage targets.
	UseStorageGoals bool          `json:"use_storage_goals"`
	StorageGoals    *StorageGoals `json:"storage_goals"`

	// DrawPowerFromGrid enables grid import and its charges.
	DrawPowerFromGrid bool        `json:"draw_power_from_grid"`
	Grid              *GridAccess `json:"grid"`

	// GivenGoalLoad fixes the power-exchange target instead of computing the
	// horizon mean inside the model.
	GivenGoalLoad bool     `json:"given_goal_load"`
	GoalLoadMW    *float64 `json:"goal_load_mw"`

	Boundaries []Boundary `json:"boundaries"`
}

// Validate checks scalar parameters and that every option group gated by a
// boolean switch is present when its switch is set. It does not inspect batch
// profiles; those are checked when the index domains are derived.
func (c Config) Validate() error {
	if c.MinutesPerStep <= 0 {
		return fmt.Errorf("minutes_per_step must be positive, got %v", c.MinutesPerStep)
	}
	if c.SteelDemandTons < 0 {
		return fmt.Errorf("steel_demand_tons must not be negative, got %v", c.SteelDemandTons)
	}
	if c.Electrolyser.MaxCapacityMW <= 0 {
		return fmt.Errorf("electrolyser max_capacity_mw must be positive, got %v", c.Electrolyser.MaxCapacityMW)
	}
	if c.Electrolyser.MinConsumptionMW < 0 || c.Electrolyser.MinConsumptionMW > c.Electrolyser.MaxCapacityMW {
		return fmt.Errorf("electrolyser min_consumption_mw must be within [0, max_capacity_mw]")
	}
	if c.Electrolyser.Efficiency <= 0 || c.Electrolyser.Efficiency > 1 {
		return fmt.Errorf("electrolyser efficiency must be within (0, 1], got %v", c.Electrolyser.Efficiency)
	}
	if c.HydrogenTank.CapacityMWh < 0 {
		return fmt.Errorf("hydrogen tank capacity_mwh must not be negative")
	}
	if c.HydrogenTank.InitialFill < 0 || c.HydrogenTank.InitialFill > 1 {
		return fmt.Errorf("hydrogen tank initial_fill must be within [0, 1], got %v", c.HydrogenTank.InitialFill)
	}
	if c.FuelCell.Efficiency <= 0 || c.FuelCell.Efficiency > 1 {
		return fmt.Errorf("fuel cell efficiency must be within (0, 1], got %v", c.FuelCell.Efficiency)
	}
	if c.DRI.H2MWhPerTon <= 0 {
		return fmt.Errorf("dri h2_mwh_per_ton must be positive, got %v", c.DRI.H2MWhPerTon)
	}
	if len(c.Equipment) == 0 {
		return fmt.Errorf("at least one equipment is required")
	}
	for _, e := range c.Equipment {
		if e.ID == "" {
			return fmt.Errorf("equipment id is required")
		}
		if e.PauseSteps < 0 {
			return fmt.Errorf("equipment %s: pause_steps must not be negative", e.ID)
		}
		if e.Rolling.DurationSteps <= 0 {
			return fmt.Errorf("equipment %s: rolling duration_steps must be positive", e.ID)
		}
		if e.Rolling.MassEfficiency <= 0 || e.Rolling.MassEfficiency > 1 {
			return fmt.Errorf("equipment %s: rolling mass_efficiency must be within (0, 1]", e.ID)
		}
		if len(e.Modes) == 0 {
			return fmt.Errorf("equipment %s: at least one mode is required", e.ID)
		}
		for _, v := range e.Modes {
			if v.ID == "" {
				return fmt.Errorf("equipment %s: mode id is required", e.ID)
			}
		}
	}
	if c.UseStorageGoals && c.StorageGoals == nil {
		return fmt.Errorf("use_storage_goals is set but storage_goals is missing")
	}
	if c.DrawPowerFromGrid && c.Grid == nil {
		return fmt.Errorf("draw_power_from_grid is set but grid is missing")
	}
	if c.GivenGoalLoad && c.GoalLoadMW == nil {
		return fmt.Errorf("given_goal_load is set but goal_load_mw is missing")
	}
	return nil
}
