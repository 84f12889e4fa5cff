// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package ptrie

import (
	"cmp"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Edge pairs a symbol with the child node it leads to.
type Edge[K constraints.Ordered, V any] struct {
	Symbol K
	Node   *Node[K, V]
}

// Node is a single level of the trie. It owns an optional value and its
// children, which are kept sorted by symbol with no duplicates.
type Node[K constraints.Ordered, V any] struct {
	value    V
	hasValue bool
	children []Edge[K, V]
}

// compareEdge orders NaN before every other float so float symbols keep a
// total order.
func compareEdge[K constraints.Ordered, V any](e Edge[K, V], symbol K) int {
	return cmp.Compare(e.Symbol, symbol)
}

// search returns the position of symbol among the children and whether it
// is present. When absent the position is where it would be inserted.
func (n *Node[K, V]) search(symbol K) (int, bool) {
	if len(n.children) == 0 {
		return 0, false
	}
	return slices.BinarySearchFunc(n.children, symbol, compareEdge[K, V])
}

// findChild returns the child reached by symbol, or nil.
func (n *Node[K, V]) findChild(symbol K) *Node[K, V] {
	idx, found := n.search(symbol)
	if !found {
		return nil
	}
	return n.children[idx].Node
}

// insertOrCreateChild descends to the child for symbol, creating an empty
// one at its sorted position when missing.
func (n *Node[K, V]) insertOrCreateChild(symbol K) *Node[K, V] {
	idx, found := n.search(symbol)
	if found {
		return n.children[idx].Node
	}
	child := &Node[K, V]{}
	n.children = slices.Insert(n.children, idx, Edge[K, V]{Symbol: symbol, Node: child})
	return child
}

// removeChild detaches the child for symbol together with its subtree.
func (n *Node[K, V]) removeChild(symbol K) bool {
	idx, found := n.search(symbol)
	if !found {
		return false
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	return true
}

// removeChildChain walks key below n and detaches the node addressed by the
// last symbol, with everything beneath it. Ancestors left with neither a
// value nor children are pruned. It reports whether anything was removed and
// how many values went with it. An empty or unmatched key is a no-op.
func (n *Node[K, V]) removeChildChain(key []K) (bool, int) {
	if len(key) == 0 {
		return false, 0
	}
	path := make([]*Node[K, V], 0, len(key))
	cur := n
	for _, symbol := range key[:len(key)-1] {
		path = append(path, cur)
		cur = cur.findChild(symbol)
		if cur == nil {
			return false, 0
		}
	}
	last := key[len(key)-1]
	target := cur.findChild(last)
	if target == nil {
		return false, 0
	}
	removed := target.countValues()
	cur.removeChild(last)

	// prune dangling ancestors, never the node we started from
	for depth := len(path) - 1; depth >= 0; depth-- {
		if cur.hasValue || len(cur.children) > 0 {
			break
		}
		path[depth].removeChild(key[depth])
		cur = path[depth]
	}
	return true, removed
}

// countValues counts the values stored in the subtree rooted at n.
func (n *Node[K, V]) countValues() int {
	count := 0
	stack := []*Node[K, V]{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.hasValue {
			count++
		}
		for _, e := range cur.children {
			stack = append(stack, e.Node)
		}
	}
	return count
}

// Value returns the value held by the node, if any.
func (n *Node[K, V]) Value() (V, bool) {
	return n.value, n.hasValue
}

// SetValue stores v in the node, making it terminal.
func (n *Node[K, V]) SetValue(v V) {
	n.value = v
	n.hasValue = true
}

func (n *Node[K, V]) clearValue() (V, bool) {
	var zero V
	old, ok := n.value, n.hasValue
	n.value = zero
	n.hasValue = false
	return old, ok
}

// IsTerminal reports whether a key ends at this node.
func (n *Node[K, V]) IsTerminal() bool {
	return n.hasValue
}

// IsLeaf reports whether the node has no children.
func (n *Node[K, V]) IsLeaf() bool {
	return len(n.children) == 0
}

// Len returns the number of children.
func (n *Node[K, V]) Len() int {
	return len(n.children)
}

// Children returns the ordered edges below n. The slice must not be
// modified.
func (n *Node[K, V]) Children() []Edge[K, V] {
	return n.children
}

// Child returns the child reached by symbol.
func (n *Node[K, V]) Child(symbol K) (*Node[K, V], bool) {
	child := n.findChild(symbol)
	return child, child != nil
}
