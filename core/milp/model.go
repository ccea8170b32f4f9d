// Package milp provides the primitives to assemble a mixed-integer linear
// program in memory: variables with bounds, linear expressions, constraints
// and a single linear objective. A Model is built once, is never mutated by a
// solver, and can evaluate candidate assignments against its own constraints.
package milp

import (
	"fmt"
	"math"
)

// Var is the index of a variable in its Model.
type Var int32

// VarKind distinguishes continuous from binary variables.
type VarKind uint8

const (
	// Continuous variables take any value within their bounds.
	Continuous VarKind = iota
	// Binary variables take the value 0 or 1.
	Binary
)

// Sense is the comparison direction of a constraint.
type Sense uint8

const (
	// Equal constrains the expression to equal the right-hand side.
	Equal Sense = iota
	// LessOrEqual constrains the expression to be at most the right-hand side.
	LessOrEqual
	// GreaterOrEqual constrains the expression to be at least the right-hand side.
	GreaterOrEqual
)

func (s Sense) String() string {
	switch s {
	case Equal:
		return "=="
	case LessOrEqual:
		return "<="
	case GreaterOrEqual:
		return ">="
	}
	return "?"
}

// Constraint relates a linear expression to a constant right-hand side.
type Constraint struct {
	Name  string
	Expr  *Expr
	Sense Sense
	RHS   float64
}

// ObjectiveSense selects minimization or maximization.
type ObjectiveSense uint8

const (
	// Minimize the objective expression.
	Minimize ObjectiveSense = iota
	// Maximize the objective expression.
	Maximize
)

// Objective is the linear objective of a model.
type Objective struct {
	Sense ObjectiveSense
	Expr  *Expr
}

// Model holds all variables, constraints and the objective of one linear
// optimization problem. Variables are addressed by the Var handles returned
// at declaration time.
type Model struct {
	names  []string
	kinds  []VarKind
	lower  []float64
	upper  []float64
	byName map[string]Var

	cons []Constraint
	obj  *Objective
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{byName: make(map[string]Var)}
}

// NewVar declares a continuous variable with the given bounds.
func (m *Model) NewVar(name string, lower, upper float64) Var {
	return m.newVar(name, Continuous, lower, upper)
}

// NewNonNegative declares a continuous variable bounded below by zero.
func (m *Model) NewNonNegative(name string) Var {
	return m.newVar(name, Continuous, 0, math.Inf(1))
}

// NewFree declares an unbounded continuous variable.
func (m *Model) NewFree(name string) Var {
	return m.newVar(name, Continuous, math.Inf(-1), math.Inf(1))
}

// NewBinary declares a binary variable.
func (m *Model) NewBinary(name string) Var {
	return m.newVar(name, Binary, 0, 1)
}

func (m *Model) newVar(name string, kind VarKind, lower, upper float64) Var {
	v := Var(len(m.names))
	m.names = append(m.names, name)
	m.kinds = append(m.kinds, kind)
	m.lower = append(m.lower, lower)
	m.upper = append(m.upper, upper)
	m.byName[name] = v
	return v
}

// NumVars returns the number of declared variables.
func (m *Model) NumVars() int { return len(m.names) }

// NumConstraints returns the number of added constraints.
func (m *Model) NumConstraints() int { return len(m.cons) }

// Name returns the name a variable was declared with.
func (m *Model) Name(v Var) string { return m.names[v] }

// Kind returns the declared kind of a variable.
func (m *Model) Kind(v Var) VarKind { return m.kinds[v] }

// Bounds returns the lower and upper bound of a variable.
func (m *Model) Bounds(v Var) (lower, upper float64) { return m.lower[v], m.upper[v] }

// VarByName resolves a variable handle from its declared name.
func (m *Model) VarByName(name string) (Var, bool) {
	v, ok := m.byName[name]
	return v, ok
}

// VarNames returns the names of all variables in declaration order.
func (m *Model) VarNames() []string {
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

// AddEq adds the constraint e == rhs.
func (m *Model) AddEq(name string, e *Expr, rhs float64) {
	m.cons = append(m.cons, Constraint{Name: name, Expr: e, Sense: Equal, RHS: rhs})
}

// AddLe adds the constraint e <= rhs.
func (m *Model) AddLe(name string, e *Expr, rhs float64) {
	m.cons = append(m.cons, Constraint{Name: name, Expr: e, Sense: LessOrEqual, RHS: rhs})
}

// AddGe adds the constraint e >= rhs.
func (m *Model) AddGe(name string, e *Expr, rhs float64) {
	m.cons = append(m.cons, Constraint{Name: name, Expr: e, Sense: GreaterOrEqual, RHS: rhs})
}

// AddSignedSplit constrains pos - neg to equal the signed expression e. With
// pos and neg non-negative and the objective or surrounding constraints
// pressing both down, at most one of the pair is nonzero and pos+neg equals
// the absolute value of e. This is the linearization used for mean-deviation
// distances and load-jump up/down splits.
func (m *Model) AddSignedSplit(name string, pos, neg Var, e *Expr) {
	split := VarExpr(pos).Sub(neg)
	coeffs := e.Coefficients()
	for _, t := range e.terms {
		// consume each variable once with its merged coefficient
		if c, ok := coeffs[t.v]; ok {
			split.AddTerm(t.v, -c)
			delete(coeffs, t.v)
		}
	}
	m.AddEq(name, split, e.offset)
}

// Constraints returns all constraints in insertion order.
func (m *Model) Constraints() []Constraint { return m.cons }

// SetMinimize attaches a minimization objective.
func (m *Model) SetMinimize(e *Expr) { m.obj = &Objective{Sense: Minimize, Expr: e} }

// SetMaximize attaches a maximization objective.
func (m *Model) SetMaximize(e *Expr) { m.obj = &Objective{Sense: Maximize, Expr: e} }

// Objective returns the attached objective, if any.
func (m *Model) Objective() (Objective, bool) {
	if m.obj == nil {
		return Objective{}, false
	}
	return *m.obj, true
}

// CheckFeasible verifies that x satisfies every variable bound, binary
// integrality requirement and constraint of the model within tol. The first
// violation is returned as an error naming the offending variable or
// constraint; nil means x is feasible.
func (m *Model) CheckFeasible(x []float64, tol float64) error {
	if len(x) != len(m.names) {
		return fmt.Errorf("assignment has %d values, model has %d variables", len(x), len(m.names))
	}
	for i, val := range x {
		if val < m.lower[i]-tol || val > m.upper[i]+tol {
			return fmt.Errorf("variable %s: value %v outside bounds [%v, %v]",
				m.names[i], val, m.lower[i], m.upper[i])
		}
		if m.kinds[i] == Binary && math.Abs(val-math.Round(val)) > tol {
			return fmt.Errorf("variable %s: value %v is not integral", m.names[i], val)
		}
	}
	for _, c := range m.cons {
		lhs := c.Expr.Eval(x)
		switch c.Sense {
		case Equal:
			if math.Abs(lhs-c.RHS) > tol {
				return fmt.Errorf("constraint %s: %v %s %v violated", c.Name, lhs, c.Sense, c.RHS)
			}
		case LessOrEqual:
			if lhs > c.RHS+tol {
				return fmt.Errorf("constraint %s: %v %s %v violated", c.Name, lhs, c.Sense, c.RHS)
			}
		case GreaterOrEqual:
			if lhs < c.RHS-tol {
				return fmt.Errorf("constraint %s: %v %s %v violated", c.Name, lhs, c.Sense, c.RHS)
			}
		}
	}
	return nil
}
