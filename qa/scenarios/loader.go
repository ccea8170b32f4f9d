// Package scenarios runs YAML-defined construction scenarios against the
// model builder: each scenario toggles plant options and states which
// variable families the resulting model must or must not contain.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridsteel/steelflex/core/plant"
)

type Switches struct {
	UseStorageGoals   bool `yaml:"use_storage_goals"`
	DrawPowerFromGrid bool `yaml:"draw_power_from_grid"`
	GivenGoalLoad     bool `yaml:"given_goal_load"`

	// DropGatedGroups removes the option groups belonging to enabled
	// switches, to provoke configuration errors.
	DropGatedGroups bool `yaml:"drop_gated_groups"`
}

type Expected struct {
	// BuildError is a substring the construction error must contain. Empty
	// means construction must succeed.
	BuildError string `yaml:"build_error,omitempty"`
	// Present and Absent list variable-family prefixes checked against the
	// constructed model.
	Present []string `yaml:"present,omitempty"`
	Absent  []string `yaml:"absent,omitempty"`
}

type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Horizon     int      `yaml:"horizon"`
	Objective   string   `yaml:"objective"`
	Switches    Switches `yaml:"switches"`
	Expected    Expected `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// basePlant is the reference plant every scenario starts from: one equipment
// with a fast and a slow mode, a small tank and fuel cell.
func basePlant() plant.Config {
	goal := 5.0
	return plant.Config{
		MinutesPerStep:  15,
		SteelDemandTons: 50,
		Electrolyser: plant.Electrolyser{
			MaxCapacityMW:    20,
			MinConsumptionMW: 2,
			Efficiency:       0.7,
		},
		HydrogenTank: plant.HydrogenTank{CapacityMWh: 40, InitialFill: 0.5},
		FuelCell:     plant.FuelCell{CapacityMW: 5, Efficiency: 0.6},
		DRI:          plant.DRI{InitialContentTons: 30, H2MWhPerTon: 2.5},
		Equipment: []plant.Equipment{{
			ID:         "EAF",
			PauseSteps: 1,
			Rolling:    plant.Rolling{DurationSteps: 2, CapacityMW: 6, MassEfficiency: 0.95},
			Modes: []plant.Mode{
				{ID: "fast", LoadProfileMW: []float64{30, 25}, DRIDemandTons: 20, OutputTons: 18},
				{ID: "slow", LoadProfileMW: []float64{18, 16, 14}, DRIDemandTons: 20, OutputTons: 18},
			},
		}},
		StorageGoals: &plant.StorageGoals{H2ContentMWh: 10, DRIContentTons: 20},
		Grid:         &plant.GridAccess{EnergyChargeEUR: 1.2, PowerChargeEURPerMW: 80},
		GoalLoadMW:   &goal,
	}
}

// Apply produces the plant configuration of the scenario.
func (s Switches) Apply(cfg plant.Config) plant.Config {
	cfg.UseStorageGoals = s.UseStorageGoals
	cfg.DrawPowerFromGrid = s.DrawPowerFromGrid
	cfg.GivenGoalLoad = s.GivenGoalLoad
	if s.DropGatedGroups {
		cfg.StorageGoals = nil
		cfg.Grid = nil
		cfg.GoalLoadMW = nil
	}
	return cfg
}
