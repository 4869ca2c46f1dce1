// SPDX-License-Identifier: MIT

package tableau

import "fmt"

// Snapshots is the ordered pivoting history of one subproblem.
// Only Last is meaningful to the search; earlier states are kept for
// inspection and teaching.
type Snapshots struct {
	items []*Tableau
}

// NewSnapshots returns a sequence holding ts in order. Nil entries are skipped.
func NewSnapshots(ts ...*Tableau) *Snapshots {
	s := &Snapshots{items: make([]*Tableau, 0, len(ts))}
	for _, t := range ts {
		s.Append(t)
	}

	return s
}

// Append adds t as the newest state. The sequence keeps the pointer; callers
// that keep mutating t should append a Clone.
func (s *Snapshots) Append(t *Tableau) {
	if t == nil {
		return
	}
	s.items = append(s.items, t)
}

// Len returns the number of recorded states.
func (s *Snapshots) Len() int {
	if s == nil {
		return 0
	}

	return len(s.items)
}

// Last returns the current (final) tableau, or nil for an empty sequence.
func (s *Snapshots) Last() *Tableau {
	if s.Len() == 0 {
		return nil
	}

	return s.items[len(s.items)-1]
}

// First returns the initial tableau, or nil for an empty sequence.
func (s *Snapshots) First() *Tableau {
	if s.Len() == 0 {
		return nil
	}

	return s.items[0]
}

// At returns state i (0 = initial).
func (s *Snapshots) At(i int) (*Tableau, error) {
	if i < 0 || i >= s.Len() {
		return nil, fmt.Errorf("Snapshots.At(%d): %w", i, ErrOutOfRange)
	}

	return s.items[i], nil
}

// Clone deep-copies every state.
func (s *Snapshots) Clone() *Snapshots {
	out := &Snapshots{items: make([]*Tableau, s.Len())}
	for i := 0; i < s.Len(); i++ {
		out.items[i] = s.items[i].Clone()
	}

	return out
}

// Equal compares two sequences state by state within eps.
func (s *Snapshots) Equal(o *Snapshots, eps float64) bool {
	if s == o {
		return true
	}
	if s.Len() != o.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if !s.items[i].Equal(o.items[i], eps) {
			return false
		}
	}

	return true
}
