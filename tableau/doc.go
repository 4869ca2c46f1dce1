// SPDX-License-Identifier: MIT

// Package tableau provides the simplex tableau used by every node of the
// branch-and-bound search, together with the snapshot sequence that records
// a node's pivoting history.
//
// Layout:
//
//	row 0        objective row (z − cᵀx = 0, maximize form)
//	rows 1..m    constraint rows
//	col cols-1   right-hand side (RHS) of each row
//
// A Tableau owns its storage. Clone, AppendRow and InsertColumn always
// allocate, so two tableaus derived from the same parent never alias.
//
// Numeric policy:
//   - Every "is this 0 / is this 1" decision goes through a single epsilon.
//     DefaultEpsilon (1e-9) is used by callers that do not configure one;
//     an epsilon of 0 restores exact comparisons.
//   - Row arithmetic is delegated to gonum/floats.
//
// Basic variables:
//
//	a column is basic when exactly one constraint row holds 1 and every
//	other row (objective included) holds 0. Its value is that row's RHS.
//	Columns failing the test are non-basic and valued 0.
package tableau
