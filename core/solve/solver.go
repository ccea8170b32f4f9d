// Package solve defines the boundary to MILP solvers. The model construction
// core hands a finished milp.Model to a Solver and receives a terminal status
// with variable values; how the solver reaches that status is not part of
// this package.
package solve

import (
	"context"
	"time"

	"github.com/gridsteel/steelflex/core/milp"
)

// Status is the terminal outcome of a solve.
type Status int

const (
	// StatusUnknown means the solver did not reach a conclusion.
	StatusUnknown Status = iota
	// StatusOptimal means an optimal solution was found (within the gap, if one was set).
	StatusOptimal
	// StatusInfeasible means no assignment satisfies all constraints.
	StatusInfeasible
	// StatusUnbounded means the objective can be improved without limit.
	StatusUnbounded
	// StatusTimeLimit means the time limit elapsed before a conclusion.
	StatusTimeLimit
	// StatusError means the solver failed for another reason.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusTimeLimit:
		return "time_limit"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Options are hints passed to the solver. Zero values mean "no limit".
type Options struct {
	// TimeLimit bounds the wall-clock time of the solve.
	TimeLimit time.Duration
	// Gap is the relative optimality gap at which the solver may stop early.
	Gap float64
	// Verbose enables solver trace output.
	Verbose bool
}

// Result carries the outcome of a solve. Values maps every variable name of
// the model to its solved value when Status is StatusOptimal.
type Result struct {
	Status    Status
	Objective float64
	Values    map[string]float64
	Runtime   time.Duration
}

// Solver turns a constructed model into a Result. Implementations block until
// a terminal status is reached or ctx is cancelled.
type Solver interface {
	Solve(ctx context.Context, m *milp.Model, opts Options) (Result, error)
}
