// SPDX-License-Identifier: MIT

// Package tableau - basic-variable and RHS queries.
//
// A column is basic when the unit test holds over every row: each entry is
// 0 or 1 within eps, exactly one entry is 1, and that entry lies in a
// constraint row (row ≥ 1). A column with any other value, no 1, or more
// than one 1 is treated as non-basic rather than as an error.

package tableau

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultEpsilon is the tolerance used for 0/1 and integrality tests when
// the caller does not configure one.
const DefaultEpsilon = 1e-9

// unitRow returns the row holding the single 1 of column col, or -1 when the
// column fails the unit test.
func (t *Tableau) unitRow(col int, eps float64) int {
	if col < 0 || col >= t.c-1 {
		return -1
	}
	var (
		i   int
		v   float64
		one = -1
	)
	for i = 0; i < t.r; i++ {
		v = t.data[i*t.c+col]
		switch {
		case scalar.EqualWithinAbs(v, 0, eps):
			continue
		case scalar.EqualWithinAbs(v, 1, eps):
			if one >= 0 {
				return -1 // second unit entry
			}
			one = i
		default:
			return -1
		}
	}
	if one < 1 {
		return -1 // no unit entry, or it sits in the objective row
	}

	return one
}

// IsBasic reports whether column col is a basic variable of t.
// Out-of-range columns and the RHS column are never basic.
func (t *Tableau) IsBasic(col int, eps float64) bool { return t.unitRow(col, eps) >= 0 }

// BasicRow returns the constraint row in which col is basic.
// Errors:
//   - ErrNotBasic (wrapped with the column) when col fails the unit test.
func (t *Tableau) BasicRow(col int, eps float64) (int, error) {
	r := t.unitRow(col, eps)
	if r < 0 {
		return -1, fmt.Errorf("BasicRow(%d): %w", col, ErrNotBasic)
	}

	return r, nil
}

// Value returns the value implied by the tableau for variable col:
// the RHS of its basic row, or 0 when the variable is non-basic.
func (t *Tableau) Value(col int, eps float64) float64 {
	r := t.unitRow(col, eps)
	if r < 0 {
		return 0
	}

	return t.RHS(r)
}

// Objective returns the RHS of the objective row.
func (t *Tableau) Objective() float64 { return t.RHS(0) }

// Frac returns the fractional part v − trunc(v) (sign follows v).
func Frac(v float64) float64 { return v - math.Trunc(v) }

// IsIntegral reports whether v is an integer within eps. Values within eps
// below the next integer (e.g. 2.9999999999) count as integral too.
func IsIntegral(v, eps float64) bool {
	f := math.Abs(Frac(v))

	return f <= eps || 1-f <= eps
}
