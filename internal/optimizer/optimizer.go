// Package optimizer selects the subset of a restaurant's menu items that
// maximizes total selling price subject to a spending cap on raw prices and
// a minimum selected-item count per menu category.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/menuopt/menu-optimizer/internal/milp"
	"github.com/menuopt/menu-optimizer/internal/models"
)

var (
	ErrInvalidBudget         = errors.New("max budget must be a finite, non-negative number")
	ErrInvalidMinPerCategory = errors.New("minimum items per category must be positive")
)

// selectionThreshold decides when a solved binary value counts as selected.
// Solver output is not compared for exact equality with 1; anything at or
// above 0.5 is treated as a selected item.
const selectionThreshold = 0.5

// Optimizer builds and solves one selection model per call. It is stateless
// between calls and safe for concurrent use: every call constructs its own
// model and decision variables.
type Optimizer struct {
	solver    milp.Solver
	timeLimit time.Duration
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithSolver replaces the default exact branch-and-bound solver.
func WithSolver(s milp.Solver) Option {
	return func(o *Optimizer) {
		o.solver = s
	}
}

// WithTimeLimit caps the wall-clock time of each solve. When the limit is
// hit the result carries the best feasible selection found so far, flagged
// suboptimal. Zero means no limit.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Optimizer) {
		o.timeLimit = d
	}
}

// New creates an Optimizer backed by the exact branch-and-bound solver
// unless overridden with WithSolver.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{solver: milp.NewBranchBound()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize solves one menu selection run. Items need not be pre-filtered:
// only those matching req.RestaurantID take part in the model. An empty
// filtered set and a proven infeasible model both yield a non-error result
// with Feasible set to false; a solver breakdown is returned as an error so
// callers can tell "no valid menu" apart from "the solver broke".
func (o *Optimizer) Optimize(ctx context.Context, items []models.MenuItem, req models.OptimizationRequest) (*models.SelectionResult, error) {
	if math.IsNaN(req.MaxBudget) || math.IsInf(req.MaxBudget, 0) || req.MaxBudget < 0 {
		return nil, ErrInvalidBudget
	}
	if req.MinItemsPerCategory <= 0 {
		return nil, ErrInvalidMinPerCategory
	}

	filtered := make([]models.MenuItem, 0, len(items))
	for _, it := range items {
		if it.RestaurantID == req.RestaurantID {
			filtered = append(filtered, it)
		}
	}
	if len(filtered) == 0 {
		return &models.SelectionResult{SelectedItems: []string{}}, nil
	}

	// Build: one binary variable per item, selling prices in the objective,
	// raw prices in the budget row, one minimum-count row per category.
	m := milp.NewModel()
	m.Objective().SetMaximize()

	vars := make([]milp.Var, len(filtered))
	budget := m.NewConstraint(milp.LessOrEqual, req.MaxBudget)
	categoryVars := make(map[string][]milp.Var)
	var categories []string

	for i, it := range filtered {
		v := m.NewBinary(it.ID)
		vars[i] = v
		m.Objective().NewTerm(it.SellingPrice, v)
		budget.NewTerm(it.Price, v)
		// A blank category label is a category of its own; it is never
		// skipped.
		if _, seen := categoryVars[it.Category]; !seen {
			categories = append(categories, it.Category)
		}
		categoryVars[it.Category] = append(categoryVars[it.Category], v)
	}

	for _, cat := range categories {
		c := m.NewConstraint(milp.GreaterOrEqual, float64(req.MinItemsPerCategory))
		for _, v := range categoryVars[cat] {
			c.NewTerm(1, v)
		}
	}

	// Solve.
	solveOpts := milp.NewSolveOptions()
	if o.timeLimit > 0 {
		solveOpts.SetMaximumDuration(o.timeLimit)
	}
	sol, err := o.solver.Solve(ctx, m, solveOpts)
	if err != nil {
		return nil, fmt.Errorf("solve failed: %w", err)
	}

	if !sol.HasValues() {
		return &models.SelectionResult{SelectedItems: []string{}}, nil
	}

	// Extract.
	result := &models.SelectionResult{
		SelectedItems:  make([]string, 0, len(filtered)),
		ObjectiveValue: sol.ObjectiveValue(),
		Feasible:       true,
		Suboptimal:     !sol.IsOptimal(),
	}
	for i, it := range filtered {
		if sol.Value(vars[i]) >= selectionThreshold {
			result.SelectedItems = append(result.SelectedItems, it.ID)
		}
	}
	return result, nil
}
