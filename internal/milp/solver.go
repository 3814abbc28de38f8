package milp

import (
	"context"
	"errors"
	"time"
)

// ErrTimeLimit is returned when the solve was cut off before any feasible
// integer solution was found. Infeasibility is never inferred from a time
// limit; it must be proven by the search.
var ErrTimeLimit = errors.New("milp: stopped before a feasible solution was found")

// Status describes how a solve concluded.
type Status int

const (
	// StatusOptimal means the reported solution is provably optimal.
	StatusOptimal Status = iota
	// StatusSuboptimal means the time limit was hit and the reported
	// solution is the best incumbent, not a proven optimum.
	StatusSuboptimal
	// StatusInfeasible means no assignment satisfies all constraints.
	StatusInfeasible
)

// Solution holds the outcome of a solve. A solution without values
// (HasValues() == false) means the model was proven infeasible.
type Solution struct {
	status    Status
	values    []float64
	objective float64
}

// HasValues reports whether the solution carries variable values.
func (s *Solution) HasValues() bool {
	return s.status != StatusInfeasible
}

// IsOptimal reports whether the solution is provably optimal.
func (s *Solution) IsOptimal() bool {
	return s.status == StatusOptimal
}

// Value returns the solved value of v. Only meaningful when HasValues().
func (s *Solution) Value(v Var) float64 {
	if s.values == nil {
		return 0
	}
	return s.values[v.Index()]
}

// ObjectiveValue returns the objective at the reported solution, in the
// model's own sense. Only meaningful when HasValues().
func (s *Solution) ObjectiveValue() float64 {
	return s.objective
}

// SolveOptions configures a single solve invocation.
type SolveOptions struct {
	maxDuration time.Duration
}

// NewSolveOptions returns options with no time limit.
func NewSolveOptions() *SolveOptions {
	return &SolveOptions{}
}

// SetMaximumDuration limits the wall-clock time of the solve. When the limit
// is hit the solver returns the best incumbent flagged as suboptimal, or
// ErrTimeLimit if no incumbent exists yet. A zero duration means no limit.
func (o *SolveOptions) SetMaximumDuration(d time.Duration) {
	o.maxDuration = d
}

// Solver solves a Model. Implementations must be safe for concurrent use as
// long as each call receives its own independently constructed model.
type Solver interface {
	Solve(ctx context.Context, m *Model, opts *SolveOptions) (*Solution, error)
}
