// Package simplex is the relaxation solver of the branch-and-bound search:
// it pivots a tableau to optimality, recording every pivot in the node's
// snapshot sequence, or reports that the relaxation is infeasible.
//
// Convention: row 0 stores z − cᵀx = 0 for a maximize objective and the
// last column is the RHS. A tableau is optimal when every row-0 coefficient
// is ≥ −eps and every constraint RHS is ≥ −eps.
//
// Pivot rules:
//   - Dual pivot while some RHS < −eps: leaving row = most negative RHS;
//     entering column = argmin |z_j / a_rj| over a_rj < −eps. No such
//     column proves the row infeasible (ErrInfeasible).
//   - Primal pivot otherwise, while some z_j < −eps: entering column = most
//     negative z_j; leaving row = min-ratio test over a_ij > eps. No such
//     row means the relaxation is unbounded (ErrUnbounded).
//
// Ties always go to the lowest index, so runs are deterministic.
package simplex

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/milp/tableau"
)

// Sentinel errors reported by the solver.
var (
	// ErrInfeasible signals that the relaxation has no feasible point.
	// The branch-and-bound driver treats it as a prune.
	ErrInfeasible = errors.New("simplex: relaxation is infeasible")

	// ErrUnbounded signals that the objective can grow without limit.
	ErrUnbounded = errors.New("simplex: relaxation is unbounded")

	// ErrIterationLimit is returned when MaxIterations pivots did not reach optimality.
	ErrIterationLimit = errors.New("simplex: iteration limit reached")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("simplex: invalid option supplied")
)

// Defaults.
const (
	// DefaultMaxIterations bounds the pivots of a single Solve call.
	DefaultMaxIterations = 10000
)

// Option configures the solver via functional arguments.
type Option func(*Options)

// Options holds solver parameters.
type Options struct {
	// Epsilon is the tolerance for sign tests and pivot magnitudes.
	Epsilon float64

	// MaxIterations bounds pivots per Solve. 0 disables the limit.
	MaxIterations int

	err error
}

// DefaultOptions returns Epsilon = tableau.DefaultEpsilon and
// MaxIterations = DefaultMaxIterations.
func DefaultOptions() Options {
	return Options{
		Epsilon:       tableau.DefaultEpsilon,
		MaxIterations: DefaultMaxIterations,
	}
}

// WithEpsilon sets the numeric tolerance. Negative or non-finite values are rejected.
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
			o.err = fmt.Errorf("%w: Epsilon must be finite and non-negative (%v)", ErrOptionViolation, eps)
			return
		}
		o.Epsilon = eps
	}
}

// WithMaxIterations bounds pivots per Solve call.
//
//	n > 0: limit to n pivots
//	n == 0: no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxIterations cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}
