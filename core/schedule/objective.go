package schedule

import (
	"errors"
	"fmt"

	"github.com/gridsteel/steelflex/core/milp"
)

// Objective selects the optimization target of the model.
type Objective string

const (
	// ObjectiveMaxProfit maximizes market profit minus market cost and grid
	// charges.
	ObjectiveMaxProfit Objective = "max_profit"
	// ObjectiveStability minimizes the mean deviation of the power exchange
	// from its target.
	ObjectiveStability Objective = "stability"
	// ObjectiveMinLoadJumps minimizes the summed changes of the power
	// exchange between consecutive steps.
	ObjectiveMinLoadJumps Objective = "min_load_jumps"
)

// ErrUnknownObjective is returned when the objective token matches none of
// the defined objectives. There is no default objective.
var ErrUnknownObjective = errors.New("unknown objective")

// Valid reports whether the token names a defined objective.
func (o Objective) Valid() bool {
	switch o {
	case ObjectiveMaxProfit, ObjectiveStability, ObjectiveMinLoadJumps:
		return true
	}
	return false
}

func (b *builder) attachObjective(obj Objective) error {
	n := b.sets.Horizon
	switch obj {
	case ObjectiveMaxProfit:
		expr := milp.NewExpr()
		for t := 0; t < n; t++ {
			expr.Add(b.v.MarketProfit[t])
		}
		if b.p.cfg.DrawPowerFromGrid {
			for t := 0; t < n; t++ {
				expr.Sub(b.v.MarketCost[t])
			}
			expr.Sub(b.v.GridChargePower)
		}
		b.m.SetMaximize(expr)
	case ObjectiveStability:
		expr := milp.NewExpr()
		for t := 0; t < n; t++ {
			expr.AddTerm(b.v.DistAboveMean[t], 1/float64(n))
			expr.AddTerm(b.v.DistBelowMean[t], 1/float64(n))
		}
		b.m.SetMinimize(expr)
	case ObjectiveMinLoadJumps:
		expr := milp.NewExpr()
		for t := 0; t < n; t++ {
			expr.AddSum(b.v.LoadJumpUp[t], b.v.LoadJumpDown[t])
		}
		b.m.SetMinimize(expr)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownObjective, obj)
	}
	return nil
}
