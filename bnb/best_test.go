package bnb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/milp/bnb"
	"github.com/katalvlaran/milp/tableau"
)

// withObjective returns a one-constraint tableau whose row-0 RHS is z.
func withObjective(t *testing.T, z float64) *tableau.Tableau {
	return mustRows(t, [][]float64{
		{0, 0, z},
		{1, 1, 1},
	})
}

func TestBest(t *testing.T) {
	_, ok := bnb.Best(nil, eps)
	require.False(t, ok)
	_, ok = bnb.Best([]*tableau.Tableau{nil, nil}, eps)
	require.False(t, ok)

	cands := []*tableau.Tableau{
		withObjective(t, 3),
		withObjective(t, -1),
		withObjective(t, 7),
		nil,
		withObjective(t, 5),
	}
	i, ok := bnb.Best(cands, eps)
	require.True(t, ok)
	require.Equal(t, 2, i)
}

func TestBest_TieGoesToEarliest(t *testing.T) {
	cands := []*tableau.Tableau{
		withObjective(t, 1),
		withObjective(t, 4+1e-12),
		withObjective(t, 2),
		withObjective(t, 4),
		withObjective(t, 4),
	}
	i, ok := bnb.Best(cands, eps)
	require.True(t, ok)
	require.Equal(t, 1, i)

	// Without tolerance the strictly larger one wins.
	cands[1] = withObjective(t, 4-1e-6)
	i, _ = bnb.Best(cands, 0)
	require.Equal(t, 3, i)
}
