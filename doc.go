// Package milp solves mixed-integer linear programs by branch-and-bound
// over simplex tableaus, keeping every pivot of every subproblem so the
// whole search can be inspected afterwards.
//
// 🚀 What is inside?
//
//	A small, pure-Go stack built on gonum:
//		• tableau/  owned tableau storage, pivots, basic-variable queries, snapshot sequences
//		• model/    problem definition (sense, constraints, sign restrictions) and canonical form
//		• simplex/  dual-then-primal tableau simplex used as the relaxation solver
//		• branch/   most-fractional variable selection and disjunctive cuts
//		• tree/     the binary search tree of subproblems
//		• bnb/      the level-by-level branch-and-bound driver and candidate ranking
//
// ✨ Highlights
//
//   - Deterministic: ties in every rule go to the lowest index.
//   - Epsilon-tolerant: one tolerance governs 0/1, sign and integrality tests.
//   - Observable: hooks (OnSolve, OnBranch, OnPrune, OnCandidate) and Stats.
//   - Pure Go: no cgo, no native solver required.
//
// Quick start:
//
//	p := &model.Problem{
//		Sense:     model.Maximize,
//		Objective: []float64{5, 8},
//		Constraints: []model.Constraint{
//			{Coefficients: []float64{1, 1}, Relation: model.LessEq, RHS: 6},
//			{Coefficients: []float64{5, 9}, Relation: model.LessEq, RHS: 45},
//		},
//		SignRestrictions: []model.SignRestriction{model.Integer, model.Integer},
//	}
//	res, err := bnb.SolveProblem(context.Background(), p)
//	if err != nil { ... }
//	best, _ := res.Best()
//	x, _ := p.Values(best, tableau.DefaultEpsilon) // [0 5], objective 40
//
// Every candidate is an optimal, integer-feasible tableau of its branch;
// Result.Best ranks them by objective.
package milp
