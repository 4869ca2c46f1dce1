package simplex

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/milp/tableau"
)

// DualSimplex pivots tableaus with the dual-then-primal rules described in
// the package documentation. It holds no per-solve state and may be shared.
type DualSimplex struct {
	opts Options
}

// New returns a DualSimplex configured by opts, or ErrOptionViolation.
func New(opts ...Option) (*DualSimplex, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &DualSimplex{opts: o}, nil
}

// Options returns the effective configuration.
func (s *DualSimplex) Options() Options { return s.opts }

// Solve pivots the last tableau of seq until it is optimal. Each pivot
// appends a new state to seq; a tableau that is already optimal leaves
// seq untouched.
//
// Errors:
//   - tableau.ErrEmptySnapshots when seq holds nothing.
//   - ErrInfeasible, ErrUnbounded, ErrIterationLimit.
//   - ctx.Err() when the context is done between pivots.
func (s *DualSimplex) Solve(ctx context.Context, seq *tableau.Snapshots) error {
	last := seq.Last()
	if last == nil {
		return tableau.ErrEmptySnapshots
	}
	cur := last.Clone()
	eps := s.opts.Epsilon

	var (
		it   int
		r, c int
		done bool
		err  error
	)
	for it = 0; ; it++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r, c, done, err = nextPivot(cur, eps)
		if err != nil || done {
			return err
		}
		if s.opts.MaxIterations > 0 && it >= s.opts.MaxIterations {
			return fmt.Errorf("after %d pivots: %w", it, ErrIterationLimit)
		}
		if err = cur.Pivot(r, c, eps); err != nil {
			return err
		}
		seq.Append(cur.Clone())
	}
}

// Optimal reports whether t satisfies both optimality conditions.
func Optimal(t *tableau.Tableau, eps float64) bool {
	_, _, done, err := nextPivot(t, eps)

	return done && err == nil
}

// nextPivot selects the next pivot element, or reports done at optimality.
func nextPivot(t *tableau.Tableau, eps float64) (r, c int, done bool, err error) {
	rows, cols := t.Shape()
	rhs := cols - 1

	// Dual step: most negative RHS among constraint rows.
	r = -1
	worst := -eps
	var i, j int
	var v float64
	for i = 1; i < rows; i++ {
		if v = t.RHS(i); v < worst {
			worst, r = v, i
		}
	}
	if r > 0 {
		c = -1
		best := math.Inf(1)
		var a, z, ratio float64
		for j = 0; j < rhs; j++ {
			a, _ = t.At(r, j)
			if a >= -eps {
				continue
			}
			z, _ = t.At(0, j)
			ratio = math.Abs(z / a)
			if ratio < best-eps {
				best, c = ratio, j
			}
		}
		if c < 0 {
			return 0, 0, false, fmt.Errorf("row %d: %w", r, ErrInfeasible)
		}

		return r, c, false, nil
	}

	// Primal step: most negative reduced cost in the objective row.
	c = -1
	minZ := -eps
	for j = 0; j < rhs; j++ {
		if v, _ = t.At(0, j); v < minZ {
			minZ, c = v, j
		}
	}
	if c < 0 {
		return 0, 0, true, nil
	}
	r = -1
	best := math.Inf(1)
	var a, ratio float64
	for i = 1; i < rows; i++ {
		a, _ = t.At(i, c)
		if a <= eps {
			continue
		}
		ratio = math.Max(t.RHS(i), 0) / a
		if ratio < best-eps {
			best, r = ratio, i
		}
	}
	if r < 0 {
		return 0, 0, false, fmt.Errorf("column %d: %w", c, ErrUnbounded)
	}

	return r, c, false, nil
}
