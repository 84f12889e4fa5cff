// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package ptrie

import "golang.org/x/exp/constraints"

// Iterator walks a trie depth first and yields each stored key with its
// value. Keys are rebuilt from the edges walked, so the order is depth
// first but not lexicographic. An Iterator is single pass.
type Iterator[K constraints.Ordered, V any] struct {
	stack []iterEntry[K, V]
}

// iterEntry is a node waiting to be visited and the key that leads to it.
type iterEntry[K constraints.Ordered, V any] struct {
	node *Node[K, V]
	path []K
}

func newIterator[K constraints.Ordered, V any](root *Node[K, V]) *Iterator[K, V] {
	return &Iterator[K, V]{
		stack: []iterEntry[K, V]{{node: root}},
	}
}

// Next returns the next key and value. The returned key is owned by the
// caller. ok is false once the iterator is exhausted.
func (i *Iterator[K, V]) Next() (key []K, value V, ok bool) {
	for len(i.stack) > 0 {
		n := len(i.stack)
		last := i.stack[n-1]
		i.stack = i.stack[:n-1]

		// Push the edges onto the frontier.
		for _, e := range last.node.children {
			path := make([]K, len(last.path)+1)
			copy(path, last.path)
			path[len(last.path)] = e.Symbol
			i.stack = append(i.stack, iterEntry[K, V]{node: e.Node, path: path})
		}

		if last.node.hasValue {
			return last.path, last.node.value, true
		}
	}
	var zero V
	return nil, zero, false
}
