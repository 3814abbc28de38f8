package milp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	// integralityTol is the distance from an integer below which a solved
	// variable value counts as integral.
	integralityTol = 1e-6
	// pruneTol guards incumbent pruning against floating-point noise.
	pruneTol = 1e-9
	// feasTol is the tolerance used when checking constraints directly.
	feasTol = 1e-6
	// simplexTol is the pivot tolerance handed to lp.Simplex. The node
	// LPs are degenerate (each binary variable carries an equality
	// upper-bound row), and gonum's default tolerance makes Bland's rule
	// abort on them with an ill-conditioned-basis error.
	simplexTol = 1e-9
)

// BranchBound is an exact solver for models with binary decision variables.
// It runs a depth-first branch-and-bound search, bounding each node with the
// LP relaxation solved by gonum's simplex method, and branching on the most
// fractional variable. It holds no state between calls.
type BranchBound struct{}

// NewBranchBound creates the default exact solver.
func NewBranchBound() *BranchBound {
	return &BranchBound{}
}

// row is a constraint flattened to dense coefficients by variable index.
type row struct {
	rel   Relation
	rhs   float64
	coefs []float64
}

func flatten(m *Model) []row {
	n := m.NumVars()
	rows := make([]row, 0, len(m.constraints))
	for _, c := range m.constraints {
		r := row{rel: c.rel, rhs: c.rhs, coefs: make([]float64, n)}
		for _, t := range c.terms {
			r.coefs[t.v.index] += t.coef
		}
		rows = append(rows, r)
	}
	return rows
}

func relHolds(lhs float64, rel Relation, rhs float64) bool {
	switch rel {
	case LessOrEqual:
		return lhs <= rhs+feasTol
	case GreaterOrEqual:
		return lhs >= rhs-feasTol
	default:
		return math.Abs(lhs-rhs) <= feasTol
	}
}

// relaxResult is the outcome of one node's LP relaxation. obj and x are in
// the internal maximization sense and include fixed-variable contributions.
type relaxResult struct {
	obj      float64
	x        []float64
	feasible bool
}

// Solve runs the branch-and-bound search. A proven infeasible model yields a
// solution without values and a nil error. Abnormal simplex termination is
// returned as an error. When the time limit or context cuts the search
// short, the best incumbent is returned flagged suboptimal, or ErrTimeLimit
// if there is none yet.
func (b *BranchBound) Solve(ctx context.Context, m *Model, opts *SolveOptions) (*Solution, error) {
	if opts != nil && opts.maxDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.maxDuration)
		defer cancel()
	}

	n := m.NumVars()
	rows := flatten(m)
	sense := m.objective.sense

	// Internally the search always maximizes.
	cMax := m.objectiveCoefficients()
	if sense == Minimize {
		for j := range cMax {
			cMax[j] = -cMax[j]
		}
	}

	if n == 0 {
		for _, r := range rows {
			if !relHolds(0, r.rel, r.rhs) {
				return &Solution{status: StatusInfeasible}, nil
			}
		}
		return &Solution{status: StatusOptimal, values: []float64{}}, nil
	}

	root := make([]int8, n)
	for j := range root {
		root[j] = -1 // free
	}
	stack := [][]int8{root}

	var (
		bestX         []float64
		bestObj       = math.Inf(-1)
		haveIncumbent bool
	)

	finish := func(status Status) *Solution {
		obj := bestObj
		if sense == Minimize {
			obj = -obj
		}
		return &Solution{status: status, values: bestX, objective: obj}
	}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			if haveIncumbent {
				return finish(StatusSuboptimal), nil
			}
			return nil, fmt.Errorf("%w: %v", ErrTimeLimit, err)
		}

		fixed := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		res, err := solveRelaxation(rows, cMax, fixed)
		if err != nil {
			return nil, err
		}
		if !res.feasible {
			continue
		}
		if haveIncumbent && res.obj <= bestObj+pruneTol {
			continue
		}

		// Branch on the free variable farthest from integrality.
		branch := -1
		frac := integralityTol
		for j, s := range fixed {
			if s != -1 {
				continue
			}
			if f := math.Min(res.x[j], 1-res.x[j]); f > frac {
				frac = f
				branch = j
			}
		}

		if branch == -1 {
			// Integral relaxation: new incumbent candidate.
			xr := make([]float64, n)
			obj := 0.0
			for j := range xr {
				xr[j] = math.Round(res.x[j])
				obj += cMax[j] * xr[j]
			}
			if !haveIncumbent || obj > bestObj {
				bestObj = obj
				bestX = xr
				haveIncumbent = true
			}
			continue
		}

		down := append([]int8(nil), fixed...)
		down[branch] = 0
		up := append([]int8(nil), fixed...)
		up[branch] = 1
		// The x=1 child is explored first; it tends to produce an
		// incumbent early in maximization problems.
		stack = append(stack, down, up)
	}

	if !haveIncumbent {
		return &Solution{status: StatusInfeasible}, nil
	}
	return finish(StatusOptimal), nil
}

// solveRelaxation solves the LP relaxation of one search node: every fixed
// variable is substituted out, every free variable relaxed to [0, 1]. The LP
// is built in standard form (Ax = b, x >= 0) with explicit upper-bound and
// slack/surplus columns for gonum's simplex.
func solveRelaxation(rows []row, cMax []float64, fixed []int8) (relaxResult, error) {
	n := len(fixed)

	var free []int
	fixedContrib := 0.0
	for j, s := range fixed {
		switch s {
		case -1:
			free = append(free, j)
		case 1:
			fixedContrib += cMax[j]
		}
	}

	// Substitute fixed variables into each row; rows left without free
	// terms are resolved immediately.
	type lpRow struct {
		rel   Relation
		rhs   float64
		coefs []float64
	}
	lpRows := make([]lpRow, 0, len(rows))
	for _, r := range rows {
		rhs := r.rhs
		for j, s := range fixed {
			if s == 1 {
				rhs -= r.coefs[j]
			}
		}
		coefs := make([]float64, len(free))
		nonzero := false
		for k, j := range free {
			coefs[k] = r.coefs[j]
			if coefs[k] != 0 {
				nonzero = true
			}
		}
		if !nonzero {
			if !relHolds(0, r.rel, rhs) {
				return relaxResult{}, nil
			}
			continue
		}
		lpRows = append(lpRows, lpRow{rel: r.rel, rhs: rhs, coefs: coefs})
	}

	nf := len(free)
	if nf == 0 {
		x := make([]float64, n)
		for j, s := range fixed {
			if s == 1 {
				x[j] = 1
			}
		}
		return relaxResult{obj: fixedContrib, x: x, feasible: true}, nil
	}

	nIneq := 0
	for _, r := range lpRows {
		if r.rel != Equal {
			nIneq++
		}
	}

	// Columns: free variables, their upper-bound slacks, then one
	// slack/surplus column per inequality row.
	cols := 2*nf + nIneq
	nRows := nf + len(lpRows)
	data := make([]float64, nRows*cols)
	bvec := make([]float64, nRows)

	// x_k + u_k = 1 keeps each free variable within [0, 1].
	for k := 0; k < nf; k++ {
		data[k*cols+k] = 1
		data[k*cols+nf+k] = 1
		bvec[k] = 1
	}

	slackCol := 2 * nf
	for i, r := range lpRows {
		ri := nf + i
		copy(data[ri*cols:ri*cols+nf], r.coefs)
		switch r.rel {
		case LessOrEqual:
			data[ri*cols+slackCol] = 1
			slackCol++
		case GreaterOrEqual:
			data[ri*cols+slackCol] = -1
			slackCol++
		}
		bvec[ri] = r.rhs
		if bvec[ri] < 0 {
			for c := 0; c < cols; c++ {
				data[ri*cols+c] = -data[ri*cols+c]
			}
			bvec[ri] = -bvec[ri]
		}
	}

	// Simplex minimizes, the search maximizes.
	cvec := make([]float64, cols)
	for k, j := range free {
		cvec[k] = -cMax[j]
	}

	a := mat.NewDense(nRows, cols, data)
	opt, xvec, err := lp.Simplex(cvec, a, bvec, simplexTol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return relaxResult{}, nil
		}
		return relaxResult{}, fmt.Errorf("milp: simplex: %w", err)
	}

	x := make([]float64, n)
	for j, s := range fixed {
		if s == 1 {
			x[j] = 1
		}
	}
	for k, j := range free {
		x[j] = math.Min(1, math.Max(0, xvec[k]))
	}
	return relaxResult{obj: -opt + fixedContrib, x: x, feasible: true}, nil
}
