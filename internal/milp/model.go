// Package milp provides a small modeling layer for mixed-integer linear
// programs with binary decision variables, and an exact branch-and-bound
// solver behind a swappable Solver interface. Model construction is kept
// separate from solving so the underlying solver can be replaced without
// touching any model-building code.
package milp

// Sense is the direction of optimization.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

// Relation is the comparison operator of a linear constraint.
type Relation int

const (
	LessOrEqual Relation = iota
	GreaterOrEqual
	Equal
)

// Var is a handle to a decision variable within its Model. Handles must not
// be shared or reused across models.
type Var struct {
	index int
}

// Index returns the variable's position within its model.
func (v Var) Index() int {
	return v.index
}

type term struct {
	coef float64
	v    Var
}

// Constraint accumulates the linear terms of one constraint row.
type Constraint struct {
	rel   Relation
	rhs   float64
	terms []term
}

// NewTerm appends coef * v to the constraint's left-hand side.
func (c *Constraint) NewTerm(coef float64, v Var) {
	c.terms = append(c.terms, term{coef: coef, v: v})
}

// Objective accumulates the linear objective and its optimization sense.
type Objective struct {
	sense Sense
	terms []term
}

// NewTerm appends coef * v to the objective.
func (o *Objective) NewTerm(coef float64, v Var) {
	o.terms = append(o.terms, term{coef: coef, v: v})
}

// SetMaximize makes the objective a maximization.
func (o *Objective) SetMaximize() {
	o.sense = Maximize
}

// SetMinimize makes the objective a minimization.
func (o *Objective) SetMinimize() {
	o.sense = Minimize
}

// Sense returns the current optimization sense.
func (o *Objective) Sense() Sense {
	return o.sense
}

// Model is a mixed-integer linear program under construction. The zero-ish
// model from NewModel minimizes an empty objective over no variables.
type Model struct {
	varNames    []string
	constraints []*Constraint
	objective   Objective
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewBinary adds a binary (0/1) decision variable and returns its handle.
func (m *Model) NewBinary(name string) Var {
	v := Var{index: len(m.varNames)}
	m.varNames = append(m.varNames, name)
	return v
}

// NewConstraint adds an empty linear constraint (lhs rel rhs) to the model.
// Terms are added to the returned constraint.
func (m *Model) NewConstraint(rel Relation, rhs float64) *Constraint {
	c := &Constraint{rel: rel, rhs: rhs}
	m.constraints = append(m.constraints, c)
	return c
}

// Objective returns the model's objective for term accumulation.
func (m *Model) Objective() *Objective {
	return &m.objective
}

// NumVars returns the number of decision variables.
func (m *Model) NumVars() int {
	return len(m.varNames)
}

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int {
	return len(m.constraints)
}

// VarName returns the name given to v at creation.
func (m *Model) VarName(v Var) string {
	return m.varNames[v.index]
}

// objectiveCoefficients flattens the objective into a dense coefficient
// vector indexed by variable.
func (m *Model) objectiveCoefficients() []float64 {
	c := make([]float64, len(m.varNames))
	for _, t := range m.objective.terms {
		c[t.v.index] += t.coef
	}
	return c
}
