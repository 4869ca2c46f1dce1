package bnb

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/milp/tableau"
	"github.com/katalvlaran/milp/tree"
)

// Sentinel errors for the driver.
var (
	// ErrNilRoot is returned when Solve receives no root tableau.
	ErrNilRoot = errors.New("bnb: root tableau is nil")

	// ErrSignMismatch is returned when there are more sign restrictions
	// than variable columns in the root tableau.
	ErrSignMismatch = errors.New("bnb: sign restrictions exceed tableau columns")

	// ErrNodeLimit is returned when MaxNodes subproblems were solved before
	// the tree stopped growing.
	ErrNodeLimit = errors.New("bnb: node limit reached")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bnb: invalid option supplied")
)

// Solver is the relaxation solver consumed by the driver. Solve pivots the
// last tableau of seq to optimality, appending each new state to seq.
// An infeasible relaxation must be reported with an error that matches
// simplex.ErrInfeasible under errors.Is; any other error aborts the search.
type Solver interface {
	Solve(ctx context.Context, seq *tableau.Snapshots) error
}

// Option configures the driver via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by Solve.
type Option func(*Options)

// Options holds driver parameters and callbacks.
type Options struct {
	// Solver solves each relaxation. nil selects simplex.DualSimplex
	// configured with Epsilon.
	Solver Solver

	// Epsilon is the tolerance for basic-column and integrality tests.
	Epsilon float64

	// MaxNodes, if > 0, bounds the number of relaxations solved.
	MaxNodes int

	// OnSolve runs after a relaxation solved successfully.
	// Returning an error aborts the search.
	OnSolve func(n *tree.Node) error

	// OnBranch runs before the two children of n are generated for variable b.
	// Returning an error aborts the search.
	OnBranch func(n *tree.Node, b int) error

	// OnPrune runs when the relaxation of n is infeasible; cause is the
	// solver's error.
	OnPrune func(n *tree.Node, cause error)

	// OnCandidate runs when n is recorded as a candidate solution.
	// Returning an error aborts the search.
	OnCandidate func(n *tree.Node) error

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - the default dual simplex solver
//   - Epsilon = tableau.DefaultEpsilon
//   - no node limit
//   - no-op hooks.
func DefaultOptions() Options {
	return Options{
		Epsilon:     tableau.DefaultEpsilon,
		OnSolve:     func(*tree.Node) error { return nil },
		OnBranch:    func(*tree.Node, int) error { return nil },
		OnPrune:     func(*tree.Node, error) {},
		OnCandidate: func(*tree.Node) error { return nil },
	}
}

// WithSolver replaces the relaxation solver. nil keeps the default.
func WithSolver(s Solver) Option {
	return func(o *Options) {
		if s != nil {
			o.Solver = s
		}
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

// WithMaxNodes bounds the number of relaxations solved.
//
//	n > 0: limit to n relaxations
//	n == 0: no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxNodes cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxNodes = n
	}
}

// WithOnSolve registers a callback run after every successful relaxation.
func WithOnSolve(fn func(n *tree.Node) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSolve = fn
		}
	}
}

// WithOnBranch registers a callback run when a node is branched on variable b.
func WithOnBranch(fn func(n *tree.Node, b int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnBranch = fn
		}
	}
}

// WithOnPrune registers a callback run for every infeasible relaxation.
func WithOnPrune(fn func(n *tree.Node, cause error)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPrune = fn
		}
	}
}

// WithOnCandidate registers a callback run for every candidate solution.
func WithOnCandidate(fn func(n *tree.Node) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnCandidate = fn
		}
	}
}

// Stats counts the work done by one search.
type Stats struct {
	// Levels is the number of tree levels resolved.
	Levels int
	// Solved is the number of relaxations handed to the solver.
	Solved int
	// Pivots is the number of tableau states added by the solver.
	Pivots int
	// Branched is the number of nodes that received two children.
	Branched int
	// Pruned is the number of infeasible relaxations.
	Pruned int
	// Candidates is the number of integer-feasible leaves.
	Candidates int
}

// Result is the outcome of a search.
//   - Candidates: final tableaus of integer-feasible leaves, in discovery order.
//   - CandidateNodes: the tree nodes holding them, index-aligned with Candidates.
//   - Tree: the whole search tree, pruned leaves included.
type Result struct {
	Candidates     []*tableau.Tableau
	CandidateNodes []*tree.Node
	Tree           *tree.Tree
	Stats          Stats

	eps float64
}

// Infeasible reports whether the search produced no candidate. For a
// completed search this means the integer program has no feasible point.
func (r *Result) Infeasible() bool { return len(r.Candidates) == 0 }

// Best returns the candidate with the largest objective (row-0 RHS).
// Ties within the search tolerance go to the earliest candidate.
func (r *Result) Best() (*tableau.Tableau, bool) {
	i, ok := Best(r.Candidates, r.eps)
	if !ok {
		return nil, false
	}

	return r.Candidates[i], true
}

// BestNode returns the tree node of Best.
func (r *Result) BestNode() (*tree.Node, bool) {
	i, ok := Best(r.Candidates, r.eps)
	if !ok {
		return nil, false
	}

	return r.CandidateNodes[i], true
}
