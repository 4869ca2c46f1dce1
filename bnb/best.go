package bnb

import (
	"gopkg.in/dnaeon/go-priorityqueue.v1"

	"github.com/katalvlaran/milp/tableau"
)

// Best returns the index of the tableau with the largest objective value
// (row-0 RHS). Objectives within eps of the maximum tie, and the lowest
// index among them wins. ok is false for an empty or all-nil slice.
//
// Candidates are ranked through a min-heap keyed by the negated objective;
// the heap does not order equal keys, so ties are settled after popping.
func Best(cands []*tableau.Tableau, eps float64) (idx int, ok bool) {
	pq := priorityqueue.New[int, float64](priorityqueue.MinHeap)
	for i, t := range cands {
		if t == nil {
			continue
		}
		pq.Put(i, -t.Objective())
	}
	if pq.Len() == 0 {
		return -1, false
	}

	top := pq.Get()
	idx = top.Value
	for pq.Len() > 0 {
		item := pq.Get()
		if item.Priority > top.Priority+eps {
			break
		}
		if item.Value < idx {
			idx = item.Value
		}
	}

	return idx, true
}
