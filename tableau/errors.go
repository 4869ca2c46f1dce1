// SPDX-License-Identifier: MIT
// Package tableau: sentinel error set.
// All exported functions return these sentinels (optionally wrapped with
// call-site context via %w); tests match them with errors.Is.

package tableau

import "errors"

var (
	// ErrInvalidDimensions indicates non-positive rows or columns on construction.
	ErrInvalidDimensions = errors.New("tableau: dimensions must be > 0")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("tableau: index out of range")

	// ErrDimensionMismatch indicates a row/column whose length does not match the tableau.
	ErrDimensionMismatch = errors.New("tableau: dimension mismatch")

	// ErrRagged indicates input rows of unequal length.
	ErrRagged = errors.New("tableau: ragged rows")

	// ErrNaNInf indicates a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("tableau: NaN or Inf encountered")

	// ErrZeroPivot indicates a pivot on an element that is zero within tolerance.
	ErrZeroPivot = errors.New("tableau: zero pivot element")

	// ErrNotBasic indicates a basic-row lookup for a variable that has none.
	// Reaching it from branching logic is an internal invariant failure.
	ErrNotBasic = errors.New("tableau: variable is not basic")

	// ErrEmptySnapshots indicates an operation on a snapshot sequence with no tableau.
	ErrEmptySnapshots = errors.New("tableau: empty snapshot sequence")
)
