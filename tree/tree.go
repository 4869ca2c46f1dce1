// Package tree implements the branch-and-bound search tree.
//
// Every node owns a tableau.Snapshots (the pivoting history of one
// subproblem) and at most two children. The root holds the LP relaxation;
// every other node holds its parent's final tableau plus one disjunctive
// row. Nodes are only ever added, never removed: a pruned subproblem is a
// leaf that never gains children.
//
// Children are attached through an explicit parent handle (AddChild). The
// value-matching form (AddChildOf) resolves the parent by comparing snapshot
// sequences and takes the first match in pre-order.
package tree

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/milp/tableau"
)

// Sentinel errors for tree construction.
var (
	// ErrRootExists is returned when AddRoot is called on a non-empty tree.
	ErrRootExists = errors.New("tree: root already set")

	// ErrNilData is returned when a node would hold no snapshot sequence.
	ErrNilData = errors.New("tree: nil snapshot sequence")

	// ErrNilParent is returned when AddChild receives a nil parent.
	ErrNilParent = errors.New("tree: nil parent node")

	// ErrForeignNode is returned when the parent does not belong to this tree.
	ErrForeignNode = errors.New("tree: parent belongs to another tree")

	// ErrNodeFull is returned when both child slots are already populated.
	ErrNodeFull = errors.New("tree: node already has two children")

	// ErrParentNotFound is returned when no node holds the given parent data.
	ErrParentNotFound = errors.New("tree: parent data not found")
)

// Node is one subproblem of the search.
type Node struct {
	Data   *tableau.Snapshots
	Left   *Node
	Right  *Node
	Parent *Node

	// Depth is the node's level: 1 for the root.
	Depth int

	tree *Tree
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// Full reports whether both child slots are populated.
func (n *Node) Full() bool { return n.Left != nil && n.Right != nil }

// Tableau returns the node's current (final) tableau.
func (n *Node) Tableau() *tableau.Tableau { return n.Data.Last() }

// Tree is a binary tree of subproblems. The zero value is an empty tree.
type Tree struct {
	Root *Node
	size int
}

// New returns an empty tree.
func New() *Tree { return &Tree{} }

// Len returns the number of nodes.
func (t *Tree) Len() int { return t.size }

// AddRoot installs data as the root.
func (t *Tree) AddRoot(data *tableau.Snapshots) (*Node, error) {
	if data == nil {
		return nil, ErrNilData
	}
	if t.Root != nil {
		return nil, ErrRootExists
	}
	t.Root = &Node{Data: data, Depth: 1, tree: t}
	t.size = 1

	return t.Root, nil
}

// AddChild attaches data under parent, filling the left slot first and the
// right slot second. A third child is a contract violation (ErrNodeFull).
func (t *Tree) AddChild(parent *Node, data *tableau.Snapshots) (*Node, error) {
	switch {
	case parent == nil:
		return nil, ErrNilParent
	case data == nil:
		return nil, ErrNilData
	case parent.tree != t:
		return nil, ErrForeignNode
	}
	child := &Node{Data: data, Parent: parent, Depth: parent.Depth + 1, tree: t}
	switch {
	case parent.Left == nil:
		parent.Left = child
	case parent.Right == nil:
		parent.Right = child
	default:
		return nil, fmt.Errorf("AddChild at depth %d: %w", parent.Depth, ErrNodeFull)
	}
	t.size++

	return child, nil
}

// AddChildOf attaches data under the first node (pre-order) whose snapshot
// sequence equals parentData within eps. Pointer identity always matches.
func (t *Tree) AddChildOf(parentData, data *tableau.Snapshots, eps float64) (*Node, error) {
	parent := t.Find(parentData, eps)
	if parent == nil {
		return nil, ErrParentNotFound
	}

	return t.AddChild(parent, data)
}

// Find returns the first node in pre-order holding data, or nil.
// Pointer-identical sequences are preferred over value matches.
func (t *Tree) Find(data *tableau.Snapshots, eps float64) *Node {
	if data == nil || t.Root == nil {
		return nil
	}
	var byValue *Node
	stack := []*Node{t.Root}
	var n *Node
	for len(stack) > 0 {
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Data == data {
			return n
		}
		if byValue == nil && n.Data.Equal(data, eps) {
			byValue = n
		}
		// Push right first so left is visited first.
		if n.Right != nil {
			stack = append(stack, n.Right)
		}
		if n.Left != nil {
			stack = append(stack, n.Left)
		}
	}

	return byValue
}

// Height returns the number of levels in the subtree rooted at n.
// A nil node has height 0; a solitary node has height 1.
func Height(n *Node) int {
	if n == nil {
		return 0
	}

	return 1 + max(Height(n.Left), Height(n.Right))
}

// Height returns the height of the whole tree.
func (t *Tree) Height() int { return Height(t.Root) }

// Level returns the nodes at depth k (root = 1) from left to right.
func (t *Tree) Level(k int) []*Node {
	var out []*Node
	t.Walk(func(n *Node) bool {
		if n.Depth > k {
			return false
		}
		if n.Depth == k {
			out = append(out, n)
		}

		return true
	})

	return out
}

// Walk visits nodes breadth-first, left to right. It stops when fn returns false.
func (t *Tree) Walk(fn func(n *Node) bool) {
	if t.Root == nil {
		return
	}
	queue := []*Node{t.Root}
	var n *Node
	for len(queue) > 0 {
		n = queue[0]
		queue = queue[1:]
		if !fn(n) {
			return
		}
		if n.Left != nil {
			queue = append(queue, n.Left)
		}
		if n.Right != nil {
			queue = append(queue, n.Right)
		}
	}
}

// Leaves returns every leaf, breadth-first.
func (t *Tree) Leaves() []*Node {
	var out []*Node
	t.Walk(func(n *Node) bool {
		if n.IsLeaf() {
			out = append(out, n)
		}

		return true
	})

	return out
}
