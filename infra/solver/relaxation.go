// Package solver provides the built-in reference implementation of the
// solve.Solver interface: a simplex solve of the LP relaxation of the model,
// with binary variables relaxed to [0, 1]. The relaxation yields a valid
// bound on the MILP optimum; exact MILP engines plug in behind the same
// interface.
package solver

import (
	"context"
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/gridsteel/steelflex/core/logger"
	"github.com/gridsteel/steelflex/core/milp"
	"github.com/gridsteel/steelflex/core/solve"
	infralog "github.com/gridsteel/steelflex/infra/logger"
)

// ErrNoObjective indicates the model has no attached objective.
var ErrNoObjective = errors.New("model has no objective")

// Relaxation solves the LP relaxation of a model with the simplex method.
type Relaxation struct {
	// Tol is the pivot tolerance handed to the simplex routine.
	Tol float64
	log logger.Logger
}

// NewRelaxation returns a relaxation solver with the default tolerance.
func NewRelaxation() *Relaxation {
	return &Relaxation{Tol: 1e-7, log: infralog.New("solver")}
}

// standardForm is the model flattened into the arrays the simplex routine
// consumes: minimize c*x subject to g*x <= h.
type standardForm struct {
	c    []float64
	g    *mat.Dense
	h    []float64
	sign float64 // -1 when the model maximizes
}

func flatten(m *milp.Model) (standardForm, error) {
	obj, ok := m.Objective()
	if !ok {
		return standardForm{}, ErrNoObjective
	}
	n := m.NumVars()

	sf := standardForm{c: make([]float64, n), sign: 1}
	if obj.Sense == milp.Maximize {
		sf.sign = -1
	}
	for v, coeff := range obj.Expr.Coefficients() {
		sf.c[int(v)] += sf.sign * coeff
	}

	var gRows [][]float64
	var h []float64

	addG := func(row []float64, rhs float64) {
		gRows = append(gRows, row)
		h = append(h, rhs)
	}
	unit := func(i int, coeff float64) []float64 {
		row := make([]float64, n)
		row[i] = coeff
		return row
	}
	negated := func(row []float64) []float64 {
		out := make([]float64, n)
		for i, c := range row {
			out[i] = -c
		}
		return out
	}

	// Bounds become inequality rows; binaries are relaxed to [0, 1], which
	// their declared bounds already state.
	for i := 0; i < n; i++ {
		lower, upper := m.Bounds(milp.Var(i))
		if !math.IsInf(upper, 1) {
			addG(unit(i, 1), upper)
		}
		if !math.IsInf(lower, -1) {
			addG(unit(i, -1), -lower)
		}
	}

	// Every constraint goes through the inequality system. Equalities are fed
	// as <=/>= pairs rather than as equality rows: the conversion to standard
	// form gives each inequality its own slack column, so the simplex matrix
	// keeps full row rank even when definitional equality chains are linearly
	// dependent on each other or on the bound rows.
	for _, con := range m.Constraints() {
		row := make([]float64, n)
		for v, coeff := range con.Expr.Coefficients() {
			row[int(v)] = coeff
		}
		rhs := con.RHS - con.Expr.Offset()
		switch con.Sense {
		case milp.LessOrEqual:
			addG(row, rhs)
		case milp.GreaterOrEqual:
			addG(negated(row), -rhs)
		case milp.Equal:
			addG(row, rhs)
			addG(negated(row), -rhs)
		}
	}

	// A model with only free variables and no constraints has no rows at
	// all; 0 <= 0 keeps the conversion well-formed (the slack column makes
	// the row nonzero).
	if len(gRows) == 0 {
		addG(make([]float64, n), 0)
	}

	sf.g = denseFromRows(gRows, n)
	sf.h = h
	return sf, nil
}

func denseFromRows(rows [][]float64, n int) *mat.Dense {
	d := mat.NewDense(len(rows), n, nil)
	for i, row := range rows {
		d.SetRow(i, row)
	}
	return d
}

// Solve implements solve.Solver. The optimality gap option does not apply to
// a pure LP solve and is ignored.
func (s *Relaxation) Solve(ctx context.Context, m *milp.Model, opts solve.Options) (solve.Result, error) {
	start := time.Now()
	sf, err := flatten(m)
	if err != nil {
		return solve.Result{Status: solve.StatusError}, err
	}
	if opts.Verbose {
		s.log.Infof("relaxation: %d variables, %d constraints", m.NumVars(), m.NumConstraints())
	}

	if opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.TimeLimit)
		defer cancel()
	}

	type outcome struct {
		x   []float64
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		cStd, aStd, bStd := lp.Convert(sf.c, sf.g, sf.h, nil, nil)
		_, xStd, err := lp.Simplex(cStd, aStd, bStd, s.Tol, nil)
		if err != nil {
			ch <- outcome{err: err}
			return
		}
		// Convert splits every variable into positive and negative parts;
		// the original value is their difference.
		n := m.NumVars()
		x := make([]float64, n)
		for i := 0; i < n; i++ {
			x[i] = xStd[i]
			if n+i < len(xStd) {
				x[i] -= xStd[n+i]
			}
		}
		ch <- outcome{x: x}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return solve.Result{Status: solve.StatusTimeLimit, Runtime: time.Since(start)}, nil
		}
		return solve.Result{Status: solve.StatusUnknown, Runtime: time.Since(start)}, ctx.Err()
	case out := <-ch:
		runtime := time.Since(start)
		if out.err != nil {
			switch {
			case errors.Is(out.err, lp.ErrInfeasible):
				return solve.Result{Status: solve.StatusInfeasible, Runtime: runtime}, nil
			case errors.Is(out.err, lp.ErrUnbounded):
				return solve.Result{Status: solve.StatusUnbounded, Runtime: runtime}, nil
			default:
				return solve.Result{Status: solve.StatusError, Runtime: runtime}, out.err
			}
		}
		obj, _ := m.Objective()
		values := make(map[string]float64, m.NumVars())
		for i, v := range out.x {
			values[m.Name(milp.Var(i))] = v
		}
		res := solve.Result{
			Status:    solve.StatusOptimal,
			Objective: obj.Expr.Eval(out.x),
			Values:    values,
			Runtime:   runtime,
		}
		if opts.Verbose {
			s.log.Infof("relaxation solved: objective %v in %v", res.Objective, runtime)
		}
		return res, nil
	}
}
