package bnb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/milp/bnb"
	"github.com/katalvlaran/milp/model"
	"github.com/katalvlaran/milp/simplex"
	"github.com/katalvlaran/milp/tableau"
	"github.com/katalvlaran/milp/tree"
)

const eps = tableau.DefaultEpsilon

func mustRows(t *testing.T, rows [][]float64) *tableau.Tableau {
	t.Helper()
	tb, err := tableau.FromRows(rows)
	require.NoError(t, err)

	return tb
}

// halfBinary is max x s.t. 2x ≤ 1, x binary.
func halfBinary() *model.Problem {
	return &model.Problem{
		Sense:            model.Maximize,
		Objective:        []float64{1},
		Constraints:      []model.Constraint{{Coefficients: []float64{2}, Relation: model.LessEq, RHS: 1}},
		SignRestrictions: []model.SignRestriction{model.Binary},
	}
}

// classic is max 5x1 + 8x2 s.t. x1 + x2 ≤ 6, 5x1 + 9x2 ≤ 45, x integer.
// The relaxation peaks at (2.25, 3.75) with 41.25; the integer optimum is (0, 5) with 40.
func classic() *model.Problem {
	return &model.Problem{
		Sense:     model.Maximize,
		Objective: []float64{5, 8},
		Constraints: []model.Constraint{
			{Coefficients: []float64{1, 1}, Relation: model.LessEq, RHS: 6},
			{Coefficients: []float64{5, 9}, Relation: model.LessEq, RHS: 45},
		},
		SignRestrictions: []model.SignRestriction{model.Integer, model.Integer},
	}
}

// countingSolver delegates to the dual simplex and counts calls.
type countingSolver struct {
	inner *simplex.DualSimplex
	calls int
}

func (c *countingSolver) Solve(ctx context.Context, seq *tableau.Snapshots) error {
	c.calls++

	return c.inner.Solve(ctx, seq)
}

// DriverSuite exercises the branch-and-bound driver end to end.
type DriverSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *DriverSuite) SetupTest() { s.ctx = context.Background() }

// TestHalfBinary: the root gives x = 0.5; x ≤ 0 yields the only candidate
// and x ≥ 1 is pruned.
func (s *DriverSuite) TestHalfBinary() {
	var pruned []*tree.Node
	var branchedOn []int
	res, err := bnb.SolveProblem(s.ctx, halfBinary(),
		bnb.WithOnPrune(func(n *tree.Node, cause error) {
			require.ErrorIs(s.T(), cause, simplex.ErrInfeasible)
			pruned = append(pruned, n)
		}),
		bnb.WithOnBranch(func(_ *tree.Node, b int) error {
			branchedOn = append(branchedOn, b)
			return nil
		}),
	)
	require.NoError(s.T(), err)

	require.Equal(s.T(), []int{0}, branchedOn)
	require.Equal(s.T(), 3, res.Tree.Len())
	require.Equal(s.T(), 2, res.Tree.Height())
	require.Len(s.T(), res.Candidates, 1)
	require.Len(s.T(), pruned, 1)
	require.Same(s.T(), res.Tree.Root.Right, pruned[0], "x ≥ 1 is the right child")
	require.Same(s.T(), res.Tree.Root.Left, res.CandidateNodes[0])
	require.True(s.T(), res.Tree.Root.Right.IsLeaf())

	require.Equal(s.T(), bnb.Stats{Levels: 2, Solved: 3, Pivots: 2, Branched: 1, Pruned: 1, Candidates: 1}, res.Stats)

	best, ok := res.Best()
	require.True(s.T(), ok)
	x, err := halfBinary().Values(best, eps)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 0.0, x[0], eps)
	require.InDelta(s.T(), 0.0, best.Objective(), eps)

	// The root keeps its full pivot history.
	require.Equal(s.T(), 2, res.Tree.Root.Data.Len())
}

// TestAllNonBasicRootIsSoleCandidate: nothing to branch on at the root.
func (s *DriverSuite) TestAllNonBasicRootIsSoleCandidate() {
	root := mustRows(s.T(), [][]float64{
		{2, 3, 0, 0, 0},
		{1, 1, 1, 0, 4.5},
		{2, 0.5, 0, 1, 3.5},
	})
	res, err := bnb.Solve(s.ctx, root, []model.SignRestriction{model.Integer, model.Integer})
	require.NoError(s.T(), err)
	require.Len(s.T(), res.Candidates, 1)
	require.Same(s.T(), res.Tree.Root, res.CandidateNodes[0])
	require.True(s.T(), res.Candidates[0].Equal(root, 0))
	require.Equal(s.T(), 1, res.Tree.Len())
	require.Equal(s.T(), 1, res.Stats.Levels)
	require.Equal(s.T(), 0, res.Stats.Pivots)
}

// TestClassicOptimum checks the integer optimum and the integrality and
// accounting of the whole tree.
func (s *DriverSuite) TestClassicOptimum() {
	p := classic()
	res, err := bnb.SolveProblem(s.ctx, p)
	require.NoError(s.T(), err)
	require.False(s.T(), res.Infeasible())

	best, ok := res.Best()
	require.True(s.T(), ok)
	require.InDelta(s.T(), 40.0, p.ObjectiveValue(best), 1e-6)
	x, err := p.Values(best, eps)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 0.0, x[0], 1e-6)
	require.InDelta(s.T(), 5.0, x[1], 1e-6)

	for _, c := range res.Candidates {
		vals, err := p.Values(c, eps)
		require.NoError(s.T(), err)
		for _, i := range p.IntegralIndices() {
			require.True(s.T(), tableau.IsIntegral(vals[i], 1e-6), "x%d = %v", i, vals[i])
		}
		require.LessOrEqual(s.T(), c.Objective(), 40.0+1e-6)
	}

	st := res.Stats
	require.Equal(s.T(), res.Tree.Height(), st.Levels)
	require.Equal(s.T(), res.Tree.Len(), st.Solved)
	require.Equal(s.T(), st.Solved, st.Branched+st.Pruned+st.Candidates)
	require.Equal(s.T(), 1+2*st.Branched, res.Tree.Len())
	require.Len(s.T(), res.Tree.Leaves(), st.Pruned+st.Candidates)
}

// TestBreadthFirstOrder: nodes are resolved level by level, left to right.
func (s *DriverSuite) TestBreadthFirstOrder() {
	var order []*tree.Node
	res, err := bnb.SolveProblem(s.ctx, classic(),
		bnb.WithOnSolve(func(n *tree.Node) error {
			order = append(order, n)
			return nil
		}),
		bnb.WithOnPrune(func(n *tree.Node, _ error) { order = append(order, n) }),
	)
	require.NoError(s.T(), err)

	var want []*tree.Node
	res.Tree.Walk(func(n *tree.Node) bool {
		want = append(want, n)
		return true
	})
	require.Equal(s.T(), want, order)

	for k := 1; k <= res.Tree.Height(); k++ {
		for _, n := range res.Tree.Level(k) {
			require.Equal(s.T(), k, n.Depth)
		}
	}
}

// TestMinimize: min 3x s.t. 2x ≥ 3, x integer has its optimum at x = 2.
func (s *DriverSuite) TestMinimize() {
	p := &model.Problem{
		Sense:            model.Minimize,
		Objective:        []float64{3},
		Constraints:      []model.Constraint{{Coefficients: []float64{2}, Relation: model.GreaterEq, RHS: 3}},
		SignRestrictions: []model.SignRestriction{model.Integer},
	}
	res, err := bnb.SolveProblem(s.ctx, p)
	require.NoError(s.T(), err)
	best, ok := res.Best()
	require.True(s.T(), ok)
	require.InDelta(s.T(), 6.0, p.ObjectiveValue(best), eps)
	require.Equal(s.T(), 1, res.Stats.Pruned)
	require.Equal(s.T(), 2, res.Stats.Levels)
}

// TestRootInfeasible: an infeasible relaxation yields no candidates and no error.
func (s *DriverSuite) TestRootInfeasible() {
	// x + s = −1 with x, s ≥ 0
	root := mustRows(s.T(), [][]float64{
		{0, 0, 0},
		{1, 1, -1},
	})
	res, err := bnb.Solve(s.ctx, root, []model.SignRestriction{model.Integer})
	require.NoError(s.T(), err)
	require.True(s.T(), res.Infeasible())
	require.Equal(s.T(), 1, res.Stats.Pruned)
	_, ok := res.Best()
	require.False(s.T(), ok)
	_, ok = res.BestNode()
	require.False(s.T(), ok)
}

// TestUnboundedAborts: unboundedness is not a prune.
func (s *DriverSuite) TestUnboundedAborts() {
	root := mustRows(s.T(), [][]float64{
		{-1, 0, 0},
		{-1, 1, 1},
	})
	res, err := bnb.Solve(s.ctx, root, []model.SignRestriction{model.Integer})
	require.ErrorIs(s.T(), err, simplex.ErrUnbounded)
	require.NotNil(s.T(), res)
	require.Equal(s.T(), 0, res.Stats.Pruned)
}

// TestNodeLimit keeps the partial result.
func (s *DriverSuite) TestNodeLimit() {
	res, err := bnb.SolveProblem(s.ctx, classic(), bnb.WithMaxNodes(1))
	require.ErrorIs(s.T(), err, bnb.ErrNodeLimit)
	require.NotNil(s.T(), res)
	require.Equal(s.T(), 1, res.Stats.Solved)
	require.Equal(s.T(), 1, res.Stats.Branched)
	require.Equal(s.T(), 3, res.Tree.Len())
	require.Empty(s.T(), res.Candidates)
}

// TestHookErrorAborts stops the search at the first branch.
func (s *DriverSuite) TestHookErrorAborts() {
	stop := errors.New("stop")
	res, err := bnb.SolveProblem(s.ctx, classic(),
		bnb.WithOnBranch(func(*tree.Node, int) error { return stop }))
	require.ErrorIs(s.T(), err, stop)
	require.Equal(s.T(), 0, res.Stats.Branched)
	require.Equal(s.T(), 1, res.Tree.Len())

	res, err = bnb.SolveProblem(s.ctx, halfBinary(),
		bnb.WithOnCandidate(func(*tree.Node) error { return stop }))
	require.ErrorIs(s.T(), err, stop)
	require.Len(s.T(), res.Candidates, 1)
}

// TestContextCanceled stops before the first relaxation.
func (s *DriverSuite) TestContextCanceled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	res, err := bnb.SolveProblem(ctx, classic())
	require.ErrorIs(s.T(), err, context.Canceled)
	require.Equal(s.T(), 0, res.Stats.Solved)
}

// TestCustomSolver is called once per node.
func (s *DriverSuite) TestCustomSolver() {
	ds, err := simplex.New()
	require.NoError(s.T(), err)
	cs := &countingSolver{inner: ds}
	res, err := bnb.SolveProblem(s.ctx, halfBinary(), bnb.WithSolver(cs))
	require.NoError(s.T(), err)
	require.Equal(s.T(), res.Tree.Len(), cs.calls)
}

// TestInvalidArguments covers argument and option validation.
func (s *DriverSuite) TestInvalidArguments() {
	_, err := bnb.Solve(s.ctx, nil, nil)
	require.ErrorIs(s.T(), err, bnb.ErrNilRoot)

	root := mustRows(s.T(), [][]float64{{-1, 0, 0}, {2, 1, 1}})
	_, err = bnb.Solve(s.ctx, root, []model.SignRestriction{model.Integer, model.Integer, model.Integer})
	require.ErrorIs(s.T(), err, bnb.ErrSignMismatch)

	_, err = bnb.Solve(s.ctx, root, nil, bnb.WithEpsilon(-1))
	require.ErrorIs(s.T(), err, bnb.ErrOptionViolation)
	_, err = bnb.Solve(s.ctx, root, nil, bnb.WithMaxNodes(-1))
	require.ErrorIs(s.T(), err, bnb.ErrOptionViolation)

	_, err = bnb.SolveProblem(s.ctx, &model.Problem{})
	require.ErrorIs(s.T(), err, model.ErrEmptyProblem)

	// The caller's root is never modified.
	before := root.Clone()
	_, err = bnb.Solve(s.ctx, root, []model.SignRestriction{model.Integer})
	require.NoError(s.T(), err)
	require.True(s.T(), root.Equal(before, 0))
}

// Entry point for running the suite.
func TestDriverSuite(t *testing.T) {
	suite.Run(t, new(DriverSuite))
}
