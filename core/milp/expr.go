package milp

// term is a single variable with its coefficient.
type term struct {
	v     Var
	coeff float64
}

// Expr is a linear expression: a weighted sum of variables plus a constant
// offset. The zero value is an empty expression. All mutating methods return
// the receiver so calls can be chained.
type Expr struct {
	terms  []term
	offset float64
}

// NewExpr returns an empty linear expression.
func NewExpr() *Expr { return &Expr{} }

// Constant returns an expression holding only the constant c.
func Constant(c float64) *Expr { return &Expr{offset: c} }

// VarExpr returns an expression holding the single variable v.
func VarExpr(v Var) *Expr { return NewExpr().Add(v) }

// Add appends v with coefficient 1.
func (e *Expr) Add(v Var) *Expr { return e.AddTerm(v, 1) }

// Sub appends v with coefficient -1.
func (e *Expr) Sub(v Var) *Expr { return e.AddTerm(v, -1) }

// AddTerm appends v with the given coefficient.
func (e *Expr) AddTerm(v Var, coeff float64) *Expr {
	e.terms = append(e.terms, term{v: v, coeff: coeff})
	return e
}

// AddSum appends every variable with coefficient 1.
func (e *Expr) AddSum(vs ...Var) *Expr {
	for _, v := range vs {
		e.Add(v)
	}
	return e
}

// AddConstant adds c to the constant offset.
func (e *Expr) AddConstant(c float64) *Expr {
	e.offset += c
	return e
}

// AddExpr appends all terms and the offset of o.
func (e *Expr) AddExpr(o *Expr) *Expr {
	e.terms = append(e.terms, o.terms...)
	e.offset += o.offset
	return e
}

// Offset returns the constant part of the expression.
func (e *Expr) Offset() float64 { return e.offset }

// Coefficients returns the merged coefficient per variable. Variables whose
// terms cancel out exactly still appear with a zero entry.
func (e *Expr) Coefficients() map[Var]float64 {
	coeffs := make(map[Var]float64, len(e.terms))
	for _, t := range e.terms {
		coeffs[t.v] += t.coeff
	}
	return coeffs
}

// Eval computes the value of the expression for the assignment x, indexed by
// variable.
func (e *Expr) Eval(x []float64) float64 {
	val := e.offset
	for _, t := range e.terms {
		val += t.coeff * x[t.v]
	}
	return val
}

// Clone returns a deep copy of the expression.
func (e *Expr) Clone() *Expr {
	cp := &Expr{terms: make([]term, len(e.terms)), offset: e.offset}
	copy(cp.terms, e.terms)
	return cp
}
