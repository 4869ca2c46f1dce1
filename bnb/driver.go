package bnb

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/milp/branch"
	"github.com/katalvlaran/milp/model"
	"github.com/katalvlaran/milp/simplex"
	"github.com/katalvlaran/milp/tableau"
	"github.com/katalvlaran/milp/tree"
)

// engine holds the mutable state of one search.
type engine struct {
	opts   Options
	solver Solver
	cands  []int // Integer/Binary column indices, in variable order
	res    *Result

	// frontier holds the fresh leaves of the level being resolved;
	// next collects the children they produce.
	frontier []*tree.Node
	next     []*tree.Node
}

// Solve runs branch-and-bound from root, the initial tableau of the
// relaxation. signs holds one restriction per decision variable; variable i
// is column i of root.
//
// The returned Result is never nil once the arguments are valid: when the
// search stops early (node limit, context, solver or hook error) it holds
// everything found so far, alongside the error.
//
// Errors:
//   - ErrNilRoot, ErrSignMismatch, ErrOptionViolation for invalid arguments.
//   - ErrNodeLimit when MaxNodes relaxations did not finish the search.
//   - ctx.Err() on cancellation, checked before each relaxation.
//   - Solver errors other than infeasibility (simplex.ErrUnbounded,
//     simplex.ErrIterationLimit), wrapped with the failing node's depth.
//   - Hook errors, wrapped.
func Solve(ctx context.Context, root *tableau.Tableau, signs []model.SignRestriction, opts ...Option) (*Result, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if len(signs) > root.Cols()-1 {
		return nil, fmt.Errorf("%w: %d signs, %d columns", ErrSignMismatch, len(signs), root.Cols()-1)
	}

	solver := o.Solver
	if solver == nil {
		ds, err := simplex.New(simplex.WithEpsilon(o.Epsilon))
		if err != nil {
			return nil, err
		}
		solver = ds
	}

	e := &engine{
		opts:   o,
		solver: solver,
		cands:  branch.Candidates(signs),
		res:    &Result{Tree: tree.New(), eps: o.Epsilon},
	}
	n, err := e.res.Tree.AddRoot(tableau.NewSnapshots(root.Clone()))
	if err != nil {
		return nil, err
	}
	e.frontier = []*tree.Node{n}

	return e.res, e.run(ctx)
}

// SolveProblem converts p to its canonical tableau and runs Solve with p's
// sign restrictions. Use p.Values and p.ObjectiveValue to read candidates.
func SolveProblem(ctx context.Context, p *model.Problem, opts ...Option) (*Result, error) {
	root, err := p.Canonical()
	if err != nil {
		return nil, err
	}

	return Solve(ctx, root, p.SignRestrictions, opts...)
}

// run resolves the tree level by level until a level produces no children.
func (e *engine) run(ctx context.Context) error {
	for len(e.frontier) > 0 {
		e.res.Stats.Levels++
		e.next = make([]*tree.Node, 0, 2*len(e.frontier))
		for _, n := range e.frontier {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := e.solveAndBranch(ctx, n); err != nil {
				return err
			}
		}
		e.frontier = e.next
	}

	return nil
}

// solveAndBranch resolves one fresh leaf: solve, then prune, record or split.
func (e *engine) solveAndBranch(ctx context.Context, n *tree.Node) error {
	st := &e.res.Stats
	if e.opts.MaxNodes > 0 && st.Solved >= e.opts.MaxNodes {
		return fmt.Errorf("%w: %d relaxations solved", ErrNodeLimit, st.Solved)
	}

	before := n.Data.Len()
	err := e.solver.Solve(ctx, n.Data)
	st.Solved++
	st.Pivots += n.Data.Len() - before
	if errors.Is(err, simplex.ErrInfeasible) {
		st.Pruned++
		e.opts.OnPrune(n, err)

		return nil
	}
	if err != nil {
		return fmt.Errorf("bnb: relaxation at depth %d: %w", n.Depth, err)
	}
	if err = e.opts.OnSolve(n); err != nil {
		return fmt.Errorf("bnb: OnSolve error at depth %d: %w", n.Depth, err)
	}

	t := n.Tableau()
	b, ok := branch.Choose(t, e.cands, e.opts.Epsilon)
	if !ok {
		st.Candidates++
		e.res.Candidates = append(e.res.Candidates, t)
		e.res.CandidateNodes = append(e.res.CandidateNodes, n)
		if err = e.opts.OnCandidate(n); err != nil {
			return fmt.Errorf("bnb: OnCandidate error at depth %d: %w", n.Depth, err)
		}

		return nil
	}

	if err = e.opts.OnBranch(n, b); err != nil {
		return fmt.Errorf("bnb: OnBranch error at depth %d: %w", n.Depth, err)
	}
	down, up, err := branch.Split(t, b, e.opts.Epsilon)
	if err != nil {
		return fmt.Errorf("bnb: depth %d: %w", n.Depth, err)
	}
	var child *tree.Node
	for _, ct := range []*tableau.Tableau{down, up} {
		if child, err = e.res.Tree.AddChild(n, tableau.NewSnapshots(ct)); err != nil {
			return fmt.Errorf("bnb: depth %d: %w", n.Depth, err)
		}
		e.next = append(e.next, child)
	}
	st.Branched++

	return nil
}
