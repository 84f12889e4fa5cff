// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package prefixmap maps string prefixes, such as IRI namespaces, to values
// and resolves the longest registered prefix of a string.
package prefixmap

import (
	"strings"

	ptrie "github.com/absolutelightning/go-ordered-trie"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 1024

// Match is the result of resolving a string against the map.
type Match[V any] struct {
	Prefix string
	Value  V
}

// Map holds string prefixes in a byte trie. Resolutions are cached until
// the next mutation.
type Map[V any] struct {
	trie  *ptrie.Trie[byte, V]
	cache *lru.Cache[string, resolution[V]]
}

type resolution[V any] struct {
	match Match[V]
	ok    bool
}

// New returns an empty Map caching up to cacheSize resolutions. A
// non-positive size selects the default.
func New[V any](cacheSize int, opts ...ptrie.Option) (*Map[V], error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, resolution[V]](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Map[V]{
		trie:  ptrie.New[byte, V](opts...),
		cache: cache,
	}, nil
}

// Len returns the number of registered prefixes.
func (m *Map[V]) Len() int {
	return m.trie.Len()
}

// Set registers prefix with v, replacing any earlier value.
func (m *Map[V]) Set(prefix string, v V) {
	m.trie.Insert(ptrie.Bytes(prefix), v)
	m.cache.Purge()
}

// Get returns the value registered for exactly prefix.
func (m *Map[V]) Get(prefix string) (V, bool) {
	return m.trie.Get(ptrie.Bytes(prefix))
}

// Delete unregisters prefix. Longer prefixes are kept.
func (m *Map[V]) Delete(prefix string) bool {
	_, ok := m.trie.Delete(ptrie.Bytes(prefix))
	if ok {
		m.cache.Purge()
	}
	return ok
}

// DeleteTree unregisters prefix and every longer prefix starting with it.
func (m *Map[V]) DeleteTree(prefix string) {
	m.trie.RemoveSubtree(ptrie.Bytes(prefix))
	m.cache.Purge()
}

// Resolve finds the longest registered prefix of s.
func (m *Map[V]) Resolve(s string) (Match[V], bool) {
	if r, ok := m.cache.Get(s); ok {
		return r.match, r.ok
	}
	var r resolution[V]
	m.trie.WalkPrefixes(ptrie.Bytes(s), func(depth int, n *ptrie.Node[byte, V]) {
		if v, ok := n.Value(); ok {
			r.match = Match[V]{Prefix: s[:depth], Value: v}
			r.ok = true
		}
	})
	m.cache.Add(s, r)
	return r.match, r.ok
}

// Split resolves s and returns its value together with the remainder after
// the matched prefix.
func (m *Map[V]) Split(s string) (V, string, bool) {
	match, ok := m.Resolve(s)
	if !ok {
		var zero V
		return zero, s, false
	}
	return match.Value, strings.TrimPrefix(s, match.Prefix), true
}

// Matches returns every registered prefix of s, shortest first.
func (m *Map[V]) Matches(s string) []Match[V] {
	found := m.trie.FindPrefixMatches(ptrie.Bytes(s))
	out := make([]Match[V], len(found))
	for i, f := range found {
		out[i] = Match[V]{Prefix: s[:f.Len], Value: f.Value}
	}
	return out
}

// Under returns the values of every registered prefix starting with s.
func (m *Map[V]) Under(s string) []V {
	return m.trie.FindPostfixes(ptrie.Bytes(s))
}
