package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/milp/tableau"
)

// substitution returns M (n×(n+u)) with x = M·y, where y ≥ 0 are the
// internal columns of the tableau:
//   - Positive, Integer, Binary: x_i = y_i
//   - Negative:                  x_i = −y_i
//   - Unrestricted (k-th):       x_i = y_i − y_{n+k}
func (p *Problem) substitution() *mat.Dense {
	n := p.NumVars()
	u := 0
	for _, s := range p.SignRestrictions {
		if s == Unrestricted {
			u++
		}
	}
	m := mat.NewDense(n, n+u, nil)
	k := 0
	for i, s := range p.SignRestrictions {
		switch s {
		case Negative:
			m.Set(i, i, -1)
		case Unrestricted:
			m.Set(i, i, 1)
			m.Set(i, n+k, -1)
			k++
		default:
			m.Set(i, i, 1)
		}
	}

	return m
}

// Canonical builds the initial tableau of the LP relaxation.
//
// Columns: decision variables in problem order (index i is variable i), one
// negative-part column per Unrestricted variable, one slack per generated
// row, and the RHS. Rows:
//
//	row 0   objective, stored as z − cᵀx = 0 in maximize form
//	        (a Minimize objective is negated first)
//	≤ row   a·y + s = b
//	≥ row   −a·y + s = −b
//	= row   both of the above
//	binary  y_i + s = 1
//
// Negative RHS values are left in place; the dual pivots of the relaxation
// solver resolve them.
func (p *Problem) Canonical() (*tableau.Tableau, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sub := p.substitution()
	_, ny := sub.Dims()

	// Objective and constraint coefficients over y.
	obj := mat.NewVecDense(ny, nil)
	obj.MulVec(sub.T(), mat.NewVecDense(p.NumVars(), p.Objective))
	var ay mat.Dense
	if a := p.A(); a != nil {
		ay.Mul(a, sub)
	}

	type genRow struct {
		coef []float64
		rhs  float64
	}
	var rows []genRow
	for i, c := range p.Constraints {
		coef := mat.Row(nil, i, &ay)
		if c.Relation == LessEq || c.Relation == Equal {
			rows = append(rows, genRow{coef: coef, rhs: c.RHS})
		}
		if c.Relation == GreaterEq || c.Relation == Equal {
			neg := make([]float64, ny)
			for j, v := range coef {
				neg[j] = -v
			}
			rows = append(rows, genRow{coef: neg, rhs: -c.RHS})
		}
	}
	for i, s := range p.SignRestrictions {
		if s == Binary {
			coef := make([]float64, ny)
			coef[i] = 1
			rows = append(rows, genRow{coef: coef, rhs: 1})
		}
	}

	cols := ny + len(rows) + 1
	t, err := tableau.New(len(rows)+1, cols)
	if err != nil {
		return nil, err
	}
	sign := -1.0
	if p.Sense == Minimize {
		sign = 1
	}
	for j := 0; j < ny; j++ {
		if err = t.Set(0, j, sign*obj.AtVec(j)); err != nil {
			return nil, err
		}
	}
	for i, r := range rows {
		for j, v := range r.coef {
			if err = t.Set(i+1, j, v); err != nil {
				return nil, err
			}
		}
		if err = t.Set(i+1, ny+i, 1); err != nil {
			return nil, err
		}
		if err = t.Set(i+1, cols-1, r.rhs); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Values maps a tableau produced from this problem (or any descendant of it
// that only appended rows and inserted columns before the RHS) back to the
// decision variables.
func (p *Problem) Values(t *tableau.Tableau, eps float64) ([]float64, error) {
	sub := p.substitution()
	_, ny := sub.Dims()
	if t == nil || t.Cols() < ny+1 {
		return nil, ErrShapeMismatch
	}
	y := mat.NewVecDense(ny, nil)
	for j := 0; j < ny; j++ {
		y.SetVec(j, t.Value(j, eps))
	}
	x := mat.NewVecDense(p.NumVars(), nil)
	x.MulVec(sub, y)

	return x.RawVector().Data, nil
}

// ObjectiveValue returns the objective of a final tableau in the problem's own sense.
func (p *Problem) ObjectiveValue(t *tableau.Tableau) float64 {
	if p.Sense == Minimize {
		return -t.Objective()
	}

	return t.Objective()
}
