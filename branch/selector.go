// Package branch chooses the variable to branch on and derives the two
// child subproblems of a fractional relaxation.
//
// Selection follows the most-fractional rule: among integer/binary
// variables that are basic with a fractional value, pick the one whose
// fractional part is closest to 0.5. Distances equal within eps tie, and
// the earlier candidate wins.
//
// Splitting appends the disjunction x_b ≤ ⌊v⌋ / x_b ≥ ⌊v⌋+1 as a new row
// with its own slack column, then eliminates x_b from that row using the
// row in which x_b is basic. The children are primal infeasible but dual
// feasible, ready for a dual simplex pass.
package branch

import (
	"math"

	"github.com/katalvlaran/milp/model"
	"github.com/katalvlaran/milp/tableau"
)

// Candidates returns the indices of Integer and Binary variables, in order.
func Candidates(signs []model.SignRestriction) []int {
	out := make([]int, 0, len(signs))
	for i, s := range signs {
		if s.Integral() {
			out = append(out, i)
		}
	}

	return out
}

// Branchable filters candidates down to variables that still need a branch:
// non-basic variables (value 0) and basic variables with an integral RHS
// are dropped. Order is preserved.
func Branchable(t *tableau.Tableau, candidates []int, eps float64) []int {
	out := make([]int, 0, len(candidates))
	for _, idx := range candidates {
		if !t.IsBasic(idx, eps) {
			continue
		}
		if tableau.IsIntegral(t.Value(idx, eps), eps) {
			continue
		}
		out = append(out, idx)
	}

	return out
}

// Select picks the branch variable among branchable indices.
//   - none:  (-1, false), the leaf is integer feasible.
//   - one:   that index.
//   - many:  smallest |0.5 − frac(v)|. A later index replaces the running
//     best only when it is closer by more than eps.
func Select(t *tableau.Tableau, branchable []int, eps float64) (int, bool) {
	switch len(branchable) {
	case 0:
		return -1, false
	case 1:
		return branchable[0], true
	}
	var (
		best = -1
		dmin = math.Inf(1)
		d    float64
	)
	for _, idx := range branchable {
		d = math.Abs(0.5 - tableau.Frac(t.Value(idx, eps)))
		if d < dmin-eps {
			dmin = d
			best = idx
		}
	}

	return best, true
}

// Choose runs Branchable then Select.
func Choose(t *tableau.Tableau, candidates []int, eps float64) (int, bool) {
	return Select(t, Branchable(t, candidates, eps), eps)
}
