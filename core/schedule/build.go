package schedule

import (
	"fmt"

	"github.com/gridsteel/steelflex/core/milp"
	"github.com/gridsteel/steelflex/core/plant"
	"github.com/gridsteel/steelflex/core/series"
)

// Model is one constructed optimization problem together with the domains,
// parameters and variable handles it was built from. It is immutable after
// Build returns.
type Model struct {
	MILP      *milp.Model
	Sets      Sets
	Vars      *Variables
	Objective Objective

	Config     plant.Config
	Generation series.Series
	Price      series.Series
}

// Build constructs the full model for the given plant, input series and
// objective. Construction is deterministic: equal inputs produce identical
// variable and constraint sets. Any validation failure aborts with an error
// before a partial model can escape.
func Build(cfg plant.Config, gen, price series.Series, objective Objective) (*Model, error) {
	if !objective.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownObjective, objective)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("plant configuration: %w", err)
	}
	p, err := newParameters(cfg, gen, price)
	if err != nil {
		return nil, err
	}
	sets, err := newSets(cfg, len(gen))
	if err != nil {
		return nil, err
	}

	m := milp.NewModel()
	vars := allocate(m, cfg, sets)

	b := &builder{m: m, p: p, sets: sets, v: vars}
	b.reductionUnit()
	b.fuelCell()
	b.steelmaking()
	b.rolling()
	b.energy()
	b.loadJumps()
	b.economics()
	if err := b.attachObjective(objective); err != nil {
		return nil, err
	}

	return &Model{
		MILP:       m,
		Sets:       sets,
		Vars:       vars,
		Objective:  objective,
		Config:     cfg,
		Generation: gen,
		Price:      price,
	}, nil
}
