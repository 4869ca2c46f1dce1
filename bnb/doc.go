// Package bnb is the branch-and-bound driver for mixed-integer linear
// programs held as simplex tableaus.
//
// The search grows a binary tree of subproblems one level at a time:
//
//  1. Each fresh leaf at level k is handed to the relaxation solver.
//  2. An infeasible relaxation prunes the leaf: no children, no candidate.
//  3. A relaxation whose Integer/Binary variables are all integral (or
//     non-basic) is recorded as a candidate solution.
//  4. Otherwise the most fractional variable x_b = v is chosen and the leaf
//     gets two children carrying the cuts x_b ≤ ⌊v⌋ and x_b ≥ ⌊v⌋+1.
//
// The children of level k form level k+1, so subproblems are solved in
// breadth-first, left-to-right order. The search ends when a level adds
// no children. No incumbent bound is used: every integer-feasible leaf is
// reported, and Result.Best picks the largest objective among them.
//
// Observability is provided by hooks (WithOnSolve, WithOnBranch,
// WithOnPrune, WithOnCandidate) and by Result.Stats. Limits are
// WithMaxNodes and the caller's context. Both stop the search with an
// error and still return the partial Result.
//
// Example:
//
//	p := &model.Problem{...}
//	res, err := bnb.SolveProblem(ctx, p)
//	if err != nil { ... }
//	if best, ok := res.Best(); ok {
//		x, _ := p.Values(best, tableau.DefaultEpsilon)
//		fmt.Println(p.ObjectiveValue(best), x)
//	}
package bnb
