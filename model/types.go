// Package model defines a linear program with per-variable sign
// restrictions and converts it to the canonical simplex tableau consumed by
// the relaxation solver and the branch-and-bound driver.
package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for problem validation.
var (
	// ErrEmptyProblem is returned when the problem has no decision variables.
	ErrEmptyProblem = errors.New("model: problem has no variables")

	// ErrDimensionMismatch is returned when a constraint or the sign
	// restriction list does not have one entry per decision variable.
	ErrDimensionMismatch = errors.New("model: dimension mismatch")

	// ErrUnknownRelation is returned for a constraint relation outside LessEq/GreaterEq/Equal.
	ErrUnknownRelation = errors.New("model: unknown constraint relation")

	// ErrUnknownSign is returned for a sign restriction outside the defined set.
	ErrUnknownSign = errors.New("model: unknown sign restriction")

	// ErrShapeMismatch is returned when a tableau does not have the column
	// layout that Canonical produces for this problem.
	ErrShapeMismatch = errors.New("model: tableau shape does not match problem")
)

// SignRestriction constrains one decision variable.
type SignRestriction int

const (
	// Positive is x ≥ 0.
	Positive SignRestriction = iota
	// Negative is x ≤ 0.
	Negative
	// Unrestricted is a free variable.
	Unrestricted
	// Integer is x ≥ 0, integral.
	Integer
	// Binary is x ∈ {0, 1}.
	Binary
)

// String implements fmt.Stringer.
func (s SignRestriction) String() string {
	switch s {
	case Positive:
		return "+"
	case Negative:
		return "-"
	case Unrestricted:
		return "urs"
	case Integer:
		return "int"
	case Binary:
		return "bin"
	default:
		return fmt.Sprintf("SignRestriction(%d)", int(s))
	}
}

// Integral reports whether the restriction makes the variable a branching candidate.
func (s SignRestriction) Integral() bool { return s == Integer || s == Binary }

// Sense is the optimization direction.
type Sense int

const (
	Maximize Sense = iota
	Minimize
)

// Relation is the comparison of a constraint row.
type Relation int

const (
	LessEq Relation = iota
	GreaterEq
	Equal
)

// String implements fmt.Stringer.
func (r Relation) String() string {
	switch r {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "="
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// Constraint is Σ Coefficients[i]·x_i (Relation) RHS.
type Constraint struct {
	Coefficients []float64
	Relation     Relation
	RHS          float64
}

// Problem is a linear program over len(Objective) decision variables.
type Problem struct {
	Sense            Sense
	Objective        []float64
	Constraints      []Constraint
	SignRestrictions []SignRestriction
}

// NumVars returns the number of decision variables.
func (p *Problem) NumVars() int { return len(p.Objective) }

// Validate checks that every row and the sign list have one entry per variable.
func (p *Problem) Validate() error {
	n := p.NumVars()
	if n == 0 {
		return ErrEmptyProblem
	}
	if len(p.SignRestrictions) != n {
		return fmt.Errorf("sign restrictions: got %d, want %d: %w", len(p.SignRestrictions), n, ErrDimensionMismatch)
	}
	for i, s := range p.SignRestrictions {
		if s < Positive || s > Binary {
			return fmt.Errorf("variable %d: %w", i, ErrUnknownSign)
		}
	}
	for i, c := range p.Constraints {
		if len(c.Coefficients) != n {
			return fmt.Errorf("constraint %d: got %d coefficients, want %d: %w", i, len(c.Coefficients), n, ErrDimensionMismatch)
		}
		if c.Relation < LessEq || c.Relation > Equal {
			return fmt.Errorf("constraint %d: %w", i, ErrUnknownRelation)
		}
	}

	return nil
}

// IntegralIndices returns, in order, the indices of Integer and Binary variables.
func (p *Problem) IntegralIndices() []int {
	var out []int
	for i, s := range p.SignRestrictions {
		if s.Integral() {
			out = append(out, i)
		}
	}

	return out
}

// A returns the constraint coefficients as a len(Constraints)×NumVars matrix.
// Returns nil when there are no constraints.
func (p *Problem) A() *mat.Dense {
	if len(p.Constraints) == 0 || p.NumVars() == 0 {
		return nil
	}
	a := mat.NewDense(len(p.Constraints), p.NumVars(), nil)
	for i, c := range p.Constraints {
		a.SetRow(i, c.Coefficients)
	}

	return a
}
