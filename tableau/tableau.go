// SPDX-License-Identifier: MIT

// Package tableau - row-major storage, safe accessors and row kernels.
//
// Purpose:
//   - Keep a contiguous buffer with the explicit offset formula i*cols + j.
//   - Return sentinel errors at the public surface instead of panicking.
//   - Grow by whole rows or columns with a fresh allocation every time, so
//     sibling subproblems never share storage.
//
// Complexity quicksheet:
//   - New/FromRows: O(r*c); At/Set/RHS: O(1); Clone: O(r*c)
//   - AppendRow/InsertColumn: O(r*c) (reallocation)
//   - AddRow/SubRow: O(c); Pivot: O(r*c)

package tableau

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ---------- error context tags ----------

const (
	ctxAt        = "At"
	ctxSet       = "Set"
	ctxRow       = "Row"
	ctxAppendRow = "AppendRow"
	ctxInsertCol = "InsertColumn"
	ctxAddRow    = "AddRow"
	ctxSubRow    = "SubRow"
	ctxPivot     = "Pivot"
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
	_fmtRHSSep   = " | "
)

// tableauErrorf wraps a sentinel with the method tag and coordinates.
func tableauErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Tableau.%s(%d,%d): %w", method, row, col, err)
}

// Tableau is a dense row-major simplex tableau.
//   - r, c hold dimensions; the last column is the RHS.
//   - data is a flat buffer of length r*c (offset = i*c + j).
type Tableau struct {
	r, c int
	data []float64
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Tableau)(nil)

// New creates an r×c zero tableau.
// Returns ErrInvalidDimensions when rows or cols is not positive.
func New(rows, cols int) (*Tableau, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Tableau{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// FromRows builds a tableau from a slice of rows (deep copy).
// MAIN DESCRIPTION:
//   - Row 0 is the objective row; the last entry of every row is its RHS.
//
// Errors:
//   - ErrInvalidDimensions for an empty input or empty first row.
//   - ErrRagged when rows differ in length.
//   - ErrNaNInf when any entry is not finite.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func FromRows(rows [][]float64) (*Tableau, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	cols := len(rows[0])
	t, err := New(len(rows), cols)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < len(rows); i++ {
		if len(rows[i]) != cols {
			return nil, fmt.Errorf("FromRows: row %d has %d values, want %d: %w", i, len(rows[i]), cols, ErrRagged)
		}
		for j = 0; j < cols; j++ {
			if math.IsNaN(rows[i][j]) || math.IsInf(rows[i][j], 0) {
				return nil, tableauErrorf(ctxSet, i, j, ErrNaNInf)
			}
		}
		copy(t.data[i*cols:(i+1)*cols], rows[i])
	}

	return t, nil
}

// FromMatrix copies any gonum matrix into a new tableau.
// Errors:
//   - ErrInvalidDimensions for a zero-sized matrix, ErrNaNInf for non-finite entries.
func FromMatrix(m mat.Matrix) (*Tableau, error) {
	r, c := m.Dims()
	t, err := New(r, c)
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, tableauErrorf(ctxSet, i, j, ErrNaNInf)
			}
			t.data[i*c+j] = v
		}
	}

	return t, nil
}

// Rows returns the row count (objective row included).
func (t *Tableau) Rows() int { return t.r }

// Cols returns the column count (RHS included).
func (t *Tableau) Cols() int { return t.c }

// Shape returns Rows() and Cols() in one call.
func (t *Tableau) Shape() (rows, cols int) { return t.r, t.c }

// RHSColumn returns the index of the right-hand-side column.
func (t *Tableau) RHSColumn() int { return t.c - 1 }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (t *Tableau) indexOf(row, col int) (int, error) {
	if row < 0 || row >= t.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= t.c {
		return 0, ErrOutOfRange
	}

	return row*t.c + col, nil
}

// row returns the live slice of row i. Caller guarantees bounds.
func (t *Tableau) row(i int) []float64 { return t.data[i*t.c : (i+1)*t.c] }

// At returns the value at (row, col) or ErrOutOfRange.
func (t *Tableau) At(row, col int) (float64, error) {
	off, err := t.indexOf(row, col)
	if err != nil {
		return 0, tableauErrorf(ctxAt, row, col, err)
	}

	return t.data[off], nil
}

// Set stores a finite v at (row, col).
// Errors: ErrOutOfRange for bounds, ErrNaNInf for non-finite v.
func (t *Tableau) Set(row, col int, v float64) error {
	off, err := t.indexOf(row, col)
	if err != nil {
		return tableauErrorf(ctxSet, row, col, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return tableauErrorf(ctxSet, row, col, ErrNaNInf)
	}
	t.data[off] = v

	return nil
}

// Row returns a copy of row i.
func (t *Tableau) Row(i int) ([]float64, error) {
	if i < 0 || i >= t.r {
		return nil, tableauErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, t.c)
	copy(out, t.row(i))

	return out, nil
}

// RHS returns the right-hand side of row i. Out-of-range rows read as 0.
func (t *Tableau) RHS(i int) float64 {
	if i < 0 || i >= t.r {
		return 0
	}

	return t.data[i*t.c+t.c-1]
}

// Clone returns a deep copy with an independent buffer.
// Complexity: O(r*c).
func (t *Tableau) Clone() *Tableau {
	cp := make([]float64, len(t.data))
	copy(cp, t.data)

	return &Tableau{r: t.r, c: t.c, data: cp}
}

// AppendRow adds a new last row. len(values) must equal Cols().
// Implementation:
//   - Stage 1: validate length and finiteness.
//   - Stage 2: allocate (r+1)*c buffer, copy old rows, then the new one.
//
// Complexity: O(r*c).
func (t *Tableau) AppendRow(values []float64) error {
	if len(values) != t.c {
		return tableauErrorf(ctxAppendRow, t.r, len(values), ErrDimensionMismatch)
	}
	for j, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return tableauErrorf(ctxAppendRow, t.r, j, ErrNaNInf)
		}
	}
	buf := make([]float64, (t.r+1)*t.c)
	copy(buf, t.data)
	copy(buf[t.r*t.c:], values)
	t.data = buf
	t.r++

	return nil
}

// InsertColumn inserts a new column so that it ends up at index at, shifting
// columns at..c-1 one step right. len(values) must equal Rows().
// Inserting at RHSColumn() places the column just before the RHS.
// Implementation:
//   - Stage 1: validate 0 ≤ at ≤ c and len(values) == r.
//   - Stage 2: allocate r*(c+1) buffer; per row copy [0,at), values[i], [at,c).
//
// Complexity: O(r*c).
func (t *Tableau) InsertColumn(at int, values []float64) error {
	if at < 0 || at > t.c {
		return tableauErrorf(ctxInsertCol, 0, at, ErrOutOfRange)
	}
	if len(values) != t.r {
		return tableauErrorf(ctxInsertCol, len(values), at, ErrDimensionMismatch)
	}
	nc := t.c + 1
	buf := make([]float64, t.r*nc)
	var i int
	var src, dst []float64
	for i = 0; i < t.r; i++ {
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			return tableauErrorf(ctxInsertCol, i, at, ErrNaNInf)
		}
		src = t.row(i)
		dst = buf[i*nc : (i+1)*nc]
		copy(dst[:at], src[:at])
		dst[at] = values[i]
		copy(dst[at+1:], src[at:])
	}
	t.data = buf
	t.c = nc

	return nil
}

// AddRow performs row[dst] += row[src] element-wise.
func (t *Tableau) AddRow(dst, src int) error {
	if err := t.checkRows(ctxAddRow, dst, src); err != nil {
		return err
	}
	floats.Add(t.row(dst), t.row(src))

	return nil
}

// SubRow performs row[dst] -= row[src] element-wise.
func (t *Tableau) SubRow(dst, src int) error {
	if err := t.checkRows(ctxSubRow, dst, src); err != nil {
		return err
	}
	floats.Sub(t.row(dst), t.row(src))

	return nil
}

func (t *Tableau) checkRows(method string, dst, src int) error {
	if dst < 0 || dst >= t.r || src < 0 || src >= t.r {
		return tableauErrorf(method, dst, src, ErrOutOfRange)
	}

	return nil
}

// Pivot performs a Gauss-Jordan pivot on (r, c): row r is scaled so that
// (r, c) becomes 1, and c is eliminated from every other row.
// After the pivot the column is snapped to an exact unit vector so the
// basic-variable test is not disturbed by round-off.
//
// Errors:
//   - ErrOutOfRange for bad coordinates or a pivot in the RHS column.
//   - ErrZeroPivot when |t[r][c]| ≤ eps.
//
// Complexity: O(r*c).
func (t *Tableau) Pivot(r, c int, eps float64) error {
	if r < 0 || r >= t.r || c < 0 || c >= t.c-1 {
		return tableauErrorf(ctxPivot, r, c, ErrOutOfRange)
	}
	p := t.data[r*t.c+c]
	if math.Abs(p) <= eps || p == 0 {
		return tableauErrorf(ctxPivot, r, c, ErrZeroPivot)
	}
	pr := t.row(r)
	floats.Scale(1/p, pr)
	pr[c] = 1

	var i int
	var f float64
	for i = 0; i < t.r; i++ {
		if i == r {
			continue
		}
		f = t.data[i*t.c+c]
		if f == 0 {
			continue
		}
		floats.AddScaled(t.row(i), -f, pr)
		t.data[i*t.c+c] = 0
	}

	return nil
}

// Equal reports whether o has the same shape and every entry within eps.
func (t *Tableau) Equal(o *Tableau, eps float64) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || t.r != o.r || t.c != o.c {
		return false
	}

	return floats.EqualApprox(t.data, o.data, eps)
}

// Dense exports a *mat.Dense copy of the tableau.
func (t *Tableau) Dense() *mat.Dense {
	cp := make([]float64, len(t.data))
	copy(cp, t.data)

	return mat.NewDense(t.r, t.c, cp)
}

// StandardLP is a standard-form linear program:
//
//	minimize Cᵀx  s.t.  A x = B,  x ≥ 0
//
// Offset relates it to the tableau it came from: the tableau objective at
// optimality equals Offset − min Cᵀx.
type StandardLP struct {
	C      []float64
	A      *mat.Dense
	B      []float64
	Offset float64
}

// StandardForm exports the relaxation held by t for gonum's lp.Simplex.
// C is row 0 without its RHS. Row 0 reads −cᵀx + πA = πb, so on the
// feasible set Cᵀx = −cᵀx + RHS(0), and Offset = RHS(0). A and B are the
// constraint rows, negated where the RHS is negative so that B ≥ 0.
// Returns ErrInvalidDimensions when t has no constraint rows.
func (t *Tableau) StandardForm() (*StandardLP, error) {
	if t.r < 2 || t.c < 2 {
		return nil, ErrInvalidDimensions
	}
	n := t.c - 1
	lp := &StandardLP{
		C:      make([]float64, n),
		A:      mat.NewDense(t.r-1, n, nil),
		B:      make([]float64, t.r-1),
		Offset: t.RHS(0),
	}
	copy(lp.C, t.row(0)[:n])

	var i int
	var row []float64
	for i = 1; i < t.r; i++ {
		row = make([]float64, t.c)
		copy(row, t.row(i))
		if row[n] < 0 {
			floats.Scale(-1, row)
		}
		lp.A.SetRow(i-1, row[:n])
		lp.B[i-1] = row[n]
	}

	return lp, nil
}

// String renders rows with the RHS separated by a bar, for diagnostics.
func (t *Tableau) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < t.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * t.c
		for j = 0; j < t.c; j++ {
			b.WriteString(fmt.Sprintf("%g", t.data[base+j]))
			switch {
			case j+2 == t.c:
				b.WriteString(_fmtRHSSep)
			case j+1 < t.c:
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
