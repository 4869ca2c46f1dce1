package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/milp/tableau"
	"github.com/katalvlaran/milp/tree"
)

// seq builds a one-state snapshot sequence holding a 1×2 tableau [v | 0].
func seq(t *testing.T, v float64) *tableau.Snapshots {
	t.Helper()
	tb, err := tableau.FromRows([][]float64{{v, 0}})
	require.NoError(t, err)

	return tableau.NewSnapshots(tb)
}

func TestHeight_EmptyAndSingle(t *testing.T) {
	require.Equal(t, 0, tree.Height(nil))

	tr := tree.New()
	require.Equal(t, 0, tr.Height())
	_, err := tr.AddRoot(seq(t, 1))
	require.NoError(t, err)
	require.Equal(t, 1, tr.Height())
	require.Equal(t, 1, tr.Len())
}

func TestAddRoot_Errors(t *testing.T) {
	tr := tree.New()
	_, err := tr.AddRoot(nil)
	require.ErrorIs(t, err, tree.ErrNilData)
	_, err = tr.AddRoot(seq(t, 1))
	require.NoError(t, err)
	_, err = tr.AddRoot(seq(t, 2))
	require.ErrorIs(t, err, tree.ErrRootExists)
}

func TestAddChild_LeftThenRightThenFull(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot(seq(t, 1))

	l, err := tr.AddChild(root, seq(t, 2))
	require.NoError(t, err)
	r, err := tr.AddChild(root, seq(t, 3))
	require.NoError(t, err)

	require.Same(t, l, root.Left)
	require.Same(t, r, root.Right)
	require.Same(t, root, l.Parent)
	require.Equal(t, 2, l.Depth)
	require.True(t, root.Full())
	require.True(t, l.IsLeaf())

	_, err = tr.AddChild(root, seq(t, 4))
	require.ErrorIs(t, err, tree.ErrNodeFull)
	require.Equal(t, 3, tr.Len())
	require.Equal(t, 2, tr.Height())

	_, err = tr.AddChild(nil, seq(t, 4))
	require.ErrorIs(t, err, tree.ErrNilParent)
	_, err = tr.AddChild(l, nil)
	require.ErrorIs(t, err, tree.ErrNilData)

	other := tree.New()
	foreign, _ := other.AddRoot(seq(t, 1))
	_, err = tr.AddChild(foreign, seq(t, 5))
	require.ErrorIs(t, err, tree.ErrForeignNode)
}

func TestAddChildOf_MatchesByValue(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot(seq(t, 1))
	l, _ := tr.AddChild(root, seq(t, 2))

	// A distinct but equal sequence resolves to l.
	c, err := tr.AddChildOf(seq(t, 2), seq(t, 7), tableau.DefaultEpsilon)
	require.NoError(t, err)
	require.Same(t, l, c.Parent)
	require.Equal(t, 3, tr.Height())

	_, err = tr.AddChildOf(seq(t, 99), seq(t, 8), tableau.DefaultEpsilon)
	require.ErrorIs(t, err, tree.ErrParentNotFound)
}

func TestFind_PrefersPointerIdentity(t *testing.T) {
	tr := tree.New()
	root, _ := tr.AddRoot(seq(t, 5))
	dup := seq(t, 5)
	child, _ := tr.AddChild(root, dup)

	require.Same(t, child, tr.Find(dup, 0))
	require.Same(t, root, tr.Find(seq(t, 5), 0), "value match takes the first pre-order node")
	require.Nil(t, tr.Find(nil, 0))
}

func TestLevelAndWalk(t *testing.T) {
	//        1
	//      /   \
	//     2     3
	//    / \   /
	//   4   5 6
	tr := tree.New()
	n1, _ := tr.AddRoot(seq(t, 1))
	n2, _ := tr.AddChild(n1, seq(t, 2))
	n3, _ := tr.AddChild(n1, seq(t, 3))
	n4, _ := tr.AddChild(n2, seq(t, 4))
	n5, _ := tr.AddChild(n2, seq(t, 5))
	n6, _ := tr.AddChild(n3, seq(t, 6))

	require.Equal(t, []*tree.Node{n1}, tr.Level(1))
	require.Equal(t, []*tree.Node{n2, n3}, tr.Level(2))
	require.Equal(t, []*tree.Node{n4, n5, n6}, tr.Level(3))
	require.Empty(t, tr.Level(4))
	require.Equal(t, 3, tr.Height())
	require.Equal(t, 2, tree.Height(n2))
	require.Equal(t, []*tree.Node{n4, n5, n6}, tr.Leaves())

	var order []float64
	tr.Walk(func(n *tree.Node) bool {
		order = append(order, mustAt(t, n))
		return len(order) < 4
	})
	require.Equal(t, []float64{1, 2, 3, 4}, order)
}

func mustAt(t *testing.T, n *tree.Node) float64 {
	t.Helper()
	v, err := n.Tableau().At(0, 0)
	require.NoError(t, err)

	return v
}
