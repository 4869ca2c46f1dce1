package branch

import (
	"fmt"
	"math"

	"github.com/katalvlaran/milp/tableau"
)

// Bounds returns the disjunction constants for a relaxed value v:
// down = trunc(v) and up = down + 1.
func Bounds(v float64) (down, up float64) {
	down = math.Trunc(v)

	return down, down + 1
}

// Split derives the two children of parent for branch variable b.
//
// Implementation:
//   - Stage 1: locate r, the row where b is basic, and v = RHS(r).
//   - Stage 2: clone parent twice; append a row with +1 (down) or −1 (up)
//     at column b and RHS c1 (down) or −c2 (up).
//   - Stage 3: insert a slack column before the RHS, 1 in the new row only.
//   - Stage 4: new row −= row r (down), new row += row r (up).
//
// The resulting rows read s − Σ a_rj·x_j = c1 − v and s + Σ a_rj·x_j = v − c2,
// both with a negative RHS whenever v is fractional.
//
// Errors:
//   - tableau.ErrNotBasic (wrapped) when b has no basic row in parent.
func Split(parent *tableau.Tableau, b int, eps float64) (down, up *tableau.Tableau, err error) {
	r, err := parent.BasicRow(b, eps)
	if err != nil {
		return nil, nil, fmt.Errorf("branch: split on %d: %w", b, err)
	}
	c1, c2 := Bounds(parent.RHS(r))

	down, err = cut(parent, b, r, 1, c1)
	if err != nil {
		return nil, nil, err
	}
	up, err = cut(parent, b, r, -1, -c2)
	if err != nil {
		return nil, nil, err
	}

	return down, up, nil
}

// cut builds one child: a deep copy of parent with the row sign·x_b + s = rhs
// appended and reduced against basic row r.
func cut(parent *tableau.Tableau, b, r int, sign, rhs float64) (*tableau.Tableau, error) {
	child := parent.Clone()

	row := make([]float64, child.Cols())
	row[b] = sign
	row[child.RHSColumn()] = rhs
	err := child.AppendRow(row)
	if err != nil {
		return nil, err
	}

	last := child.Rows() - 1
	slack := make([]float64, child.Rows())
	slack[last] = 1
	if err = child.InsertColumn(child.RHSColumn(), slack); err != nil {
		return nil, err
	}

	if sign > 0 {
		err = child.SubRow(last, r)
	} else {
		err = child.AddRow(last, r)
	}
	if err != nil {
		return nil, err
	}

	return child, nil
}
