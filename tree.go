// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package ptrie implements an ordered prefix tree over arbitrary ordered
// symbols, with exact, prefix, longest prefix and subtree queries.
package ptrie

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"
)

// Trie is an ordered prefix tree mapping symbol sequences to values. Each
// symbol is its own level and siblings are kept sorted, so prefix relations
// are found by walking the structure.
//
// A Trie is not safe for concurrent use. Mutating it while an Iterator is
// live is not allowed.
type Trie[K constraints.Ordered, V any] struct {
	root *Node[K, V]
	size int
	log  zerolog.Logger
}

// VisitFn is called with the number of symbols consumed so far and the node
// reached at that depth.
type VisitFn[K constraints.Ordered, V any] func(depth int, n *Node[K, V])

// PrefixMatch is a stored prefix of a query together with its length in
// symbols.
type PrefixMatch[V any] struct {
	Len   int
	Value V
}

// New returns an empty Trie.
func New[K constraints.Ordered, V any](opts ...Option) *Trie[K, V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Trie[K, V]{
		root: &Node[K, V]{},
		log:  o.logger,
	}
}

// Len returns the number of stored values.
func (t *Trie[K, V]) Len() int {
	return t.size
}

// IsEmpty reports whether the root has no children. A trie holding
// structure but no values is not empty.
func (t *Trie[K, V]) IsEmpty() bool {
	return len(t.root.children) == 0
}

// Root returns the root node for structural inspection.
func (t *Trie[K, V]) Root() *Node[K, V] {
	return t.root
}

// Clear drops every node. Pointers obtained from GetPtr become detached.
func (t *Trie[K, V]) Clear() {
	t.log.Debug().Int("values", t.size).Msg("clearing trie")
	t.root = &Node[K, V]{}
	t.size = 0
}

// Insert stores value under key, overwriting any previous value. An empty
// key stores nothing.
func (t *Trie[K, V]) Insert(key iter.Seq[K], value V) {
	t.InsertFunc(key, value, nil)
}

// InsertFunc is Insert with fn called on every node along the key,
// starting with the root at depth 0.
func (t *Trie[K, V]) InsertFunc(key iter.Seq[K], value V, fn VisitFn[K, V]) {
	n := t.root
	depth := 0
	if fn != nil {
		fn(depth, n)
	}
	for symbol := range key {
		n = n.insertOrCreateChild(symbol)
		depth++
		if fn != nil {
			fn(depth, n)
		}
	}
	if depth == 0 {
		return
	}
	if !n.hasValue {
		t.size++
	}
	n.SetValue(value)
}

func (t *Trie[K, V]) findNode(key iter.Seq[K]) *Node[K, V] {
	n := t.root
	for symbol := range key {
		if n = n.findChild(symbol); n == nil {
			return nil
		}
	}
	return n
}

// Get returns the value stored under key.
func (t *Trie[K, V]) Get(key iter.Seq[K]) (V, bool) {
	var zero V
	n := t.findNode(key)
	if n == nil {
		return zero, false
	}
	return n.Value()
}

// GetPtr returns a pointer to the value stored under key, or nil. The
// pointer is valid until the key is removed or the trie cleared.
func (t *Trie[K, V]) GetPtr(key iter.Seq[K]) *V {
	n := t.findNode(key)
	if n == nil || !n.hasValue {
		return nil
	}
	return &n.value
}

// ContainsKey reports whether a value is stored under key.
func (t *Trie[K, V]) ContainsKey(key iter.Seq[K]) bool {
	if t.IsEmpty() {
		return false
	}
	n := t.findNode(key)
	return n != nil && n.IsTerminal()
}

// SetValue replaces the value of an already stored key. It never creates
// structure and fails with a *KeyNotFoundError when key is not stored.
func (t *Trie[K, V]) SetValue(key iter.Seq[K], value V) error {
	var seen []K
	n := t.root
	for symbol := range key {
		seen = append(seen, symbol)
		if n = n.findChild(symbol); n == nil {
			break
		}
	}
	if n == nil || !n.hasValue {
		err := &KeyNotFoundError{Key: formatKey(seen)}
		t.log.Debug().Str("key", err.Key).Msg("set value on missing key")
		return err
	}
	n.SetValue(value)
	return nil
}

// Delete removes the value stored under key and prunes nodes left without
// a value or children. It returns the removed value.
func (t *Trie[K, V]) Delete(key iter.Seq[K]) (V, bool) {
	var zero V
	var symbols []K
	path := []*Node[K, V]{t.root}
	n := t.root
	for symbol := range key {
		if n = n.findChild(symbol); n == nil {
			return zero, false
		}
		symbols = append(symbols, symbol)
		path = append(path, n)
	}
	if len(symbols) == 0 {
		return zero, false
	}
	old, ok := n.clearValue()
	if !ok {
		return zero, false
	}
	t.size--
	for depth := len(symbols) - 1; depth >= 0; depth-- {
		child := path[depth+1]
		if child.hasValue || len(child.children) > 0 {
			break
		}
		path[depth].removeChild(symbols[depth])
	}
	if e := t.log.Debug(); e.Enabled() {
		e.Str("key", formatKey(symbols)).Msg("deleted key")
	}
	return old, true
}

// RemoveSubtree drops the node addressed by key and everything beneath it.
// A missing or empty key is a no-op.
func (t *Trie[K, V]) RemoveSubtree(key iter.Seq[K]) {
	var symbols []K
	for symbol := range key {
		symbols = append(symbols, symbol)
	}
	ok, removed := t.root.removeChildChain(symbols)
	if !ok {
		return
	}
	t.size -= removed
	if e := t.log.Debug(); e.Enabled() {
		e.Str("key", formatKey(symbols)).Int("values", removed).Msg("removed subtree")
	}
}

// WalkPrefixes calls fn for every stored prefix of key, shortest first. If
// a symbol has no matching child, fn is called once more with the deepest
// matched node before the walk stops.
func (t *Trie[K, V]) WalkPrefixes(key iter.Seq[K], fn VisitFn[K, V]) {
	n := t.root
	depth := 0
	for symbol := range key {
		next := n.findChild(symbol)
		if next == nil {
			fn(depth, n)
			return
		}
		n = next
		depth++
		if n.hasValue {
			fn(depth, n)
		}
	}
}

// FindPrefixMatches returns every stored prefix of key, shortest first,
// with its length. The root never matches.
func (t *Trie[K, V]) FindPrefixMatches(key iter.Seq[K]) []PrefixMatch[V] {
	var matches []PrefixMatch[V]
	n := t.root
	depth := 0
	for symbol := range key {
		if n = n.findChild(symbol); n == nil {
			break
		}
		depth++
		if n.hasValue {
			matches = append(matches, PrefixMatch[V]{Len: depth, Value: n.value})
		}
	}
	return matches
}

// FindPrefixes returns the values of every stored prefix of key, shortest
// first. Prefixes matched before a mismatch are still returned.
func (t *Trie[K, V]) FindPrefixes(key iter.Seq[K]) []V {
	var values []V
	n := t.root
	for symbol := range key {
		if n = n.findChild(symbol); n == nil {
			break
		}
		if n.hasValue {
			values = append(values, n.value)
		}
	}
	return values
}

// FindLongestPrefix returns the value of the longest stored prefix of key.
func (t *Trie[K, V]) FindLongestPrefix(key iter.Seq[K]) (V, bool) {
	var last V
	found := false
	n := t.root
	for symbol := range key {
		if n = n.findChild(symbol); n == nil {
			break
		}
		if n.hasValue {
			last, found = n.value, true
		}
	}
	return last, found
}

// FindPostfixes returns every value stored at or below the node addressed
// by prefix, in pre-order over sorted children. A prefix that addresses no
// node yields nothing.
func (t *Trie[K, V]) FindPostfixes(prefix iter.Seq[K]) []V {
	n := t.findNode(prefix)
	if n == nil {
		return nil
	}
	var values []V
	stack := []*Node[K, V]{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.hasValue {
			values = append(values, cur.value)
		}
		// push in reverse so the smallest symbol is visited first
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i].Node)
		}
	}
	return values
}

// Iterator returns a single-pass iterator over every stored key and value.
func (t *Trie[K, V]) Iterator() *Iterator[K, V] {
	return newIterator(t.root)
}

// All yields every stored key and value in the Iterator's order.
func (t *Trie[K, V]) All() iter.Seq2[[]K, V] {
	return func(yield func([]K, V) bool) {
		it := t.Iterator()
		for {
			k, v, ok := it.Next()
			if !ok || !yield(k, v) {
				return
			}
		}
	}
}

// Dump writes an indented view of the structure to w.
func (t *Trie[K, V]) Dump(w io.Writer) {
	fmt.Fprintln(w, "ROOT")
	type entry struct {
		depth int
		edge  Edge[K, V]
	}
	var stack []entry
	for i := len(t.root.children) - 1; i >= 0; i-- {
		stack = append(stack, entry{1, t.root.children[i]})
	}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		pad := strings.Repeat("  ", e.depth)
		if v, ok := e.edge.Node.Value(); ok {
			fmt.Fprintf(w, "%s%v => %+v\n", pad, symbolString(e.edge.Symbol), v)
		} else {
			fmt.Fprintf(w, "%s%v\n", pad, symbolString(e.edge.Symbol))
		}
		children := e.edge.Node.children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, entry{e.depth + 1, children[i]})
		}
	}
}

func symbolString[K any](s K) string {
	switch v := any(s).(type) {
	case byte:
		return fmt.Sprintf("%q", rune(v))
	case rune:
		return fmt.Sprintf("%q", v)
	}
	return fmt.Sprint(s)
}
