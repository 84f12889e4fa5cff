// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package ptrie

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/exp/constraints"
)

// ErrUnsortedSnapshot is returned when restoring a snapshot whose children
// are not strictly ascending by symbol.
var ErrUnsortedSnapshot = errors.New("snapshot children not strictly ascending")

// ErrInvalidSnapshot is returned when restoring a snapshot that holds a value
// at the root or a node with neither a value nor children below the root.
var ErrInvalidSnapshot = errors.New("invalid trie snapshot")

// NodeData is the plain data layout of a node, suitable for any encoder.
type NodeData[K constraints.Ordered, V any] struct {
	HasValue bool             `cbor:"1,keyasint" json:"has_value"`
	Value    V                `cbor:"2,keyasint,omitempty" json:"value,omitempty"`
	Children []EdgeData[K, V] `cbor:"3,keyasint,omitempty" json:"children,omitempty"`
}

// EdgeData is the plain data layout of an edge.
type EdgeData[K constraints.Ordered, V any] struct {
	Symbol K              `cbor:"1,keyasint" json:"symbol"`
	Node   NodeData[K, V] `cbor:"2,keyasint" json:"node"`
}

// Snapshot copies the structure of the trie into plain data.
func (t *Trie[K, V]) Snapshot() NodeData[K, V] {
	type frame struct {
		src *Node[K, V]
		dst *NodeData[K, V]
	}
	var out NodeData[K, V]
	stack := []frame{{t.root, &out}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f.dst.Value, f.dst.HasValue = f.src.Value()
		if len(f.src.children) == 0 {
			continue
		}
		f.dst.Children = make([]EdgeData[K, V], len(f.src.children))
		for i, e := range f.src.children {
			f.dst.Children[i].Symbol = e.Symbol
			stack = append(stack, frame{e.Node, &f.dst.Children[i].Node})
		}
	}
	return out
}

// Restore replaces the contents of the trie with data. The trie is left
// unchanged when data breaks the sort order of any children list, stores a
// value at the root, or carries a dangling node that no stored key leads to.
func (t *Trie[K, V]) Restore(data NodeData[K, V]) error {
	if data.HasValue {
		return fmt.Errorf("restore: root holds a value: %w", ErrInvalidSnapshot)
	}
	type frame struct {
		src *NodeData[K, V]
		dst *Node[K, V]
	}
	root := &Node[K, V]{}
	size := 0
	stack := []frame{{&data, root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.src.HasValue {
			f.dst.SetValue(f.src.Value)
			size++
		}
		if len(f.src.Children) == 0 {
			if f.dst != root && !f.src.HasValue {
				return fmt.Errorf("restore: dangling node: %w", ErrInvalidSnapshot)
			}
			continue
		}
		f.dst.children = make([]Edge[K, V], len(f.src.Children))
		for i := range f.src.Children {
			e := &f.src.Children[i]
			if i > 0 && cmp.Compare(f.src.Children[i-1].Symbol, e.Symbol) >= 0 {
				return fmt.Errorf("restore: %w", ErrUnsortedSnapshot)
			}
			child := &Node[K, V]{}
			f.dst.children[i] = Edge[K, V]{Symbol: e.Symbol, Node: child}
			stack = append(stack, frame{&e.Node, child})
		}
	}
	t.root = root
	t.size = size
	return nil
}

var cborEncMode, _ = cbor.CoreDetEncOptions().EncMode()

// MarshalCBOR encodes the snapshot of the trie with deterministic CBOR.
func (t *Trie[K, V]) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(t.Snapshot())
}

// UnmarshalCBOR replaces the trie with a decoded snapshot.
func (t *Trie[K, V]) UnmarshalCBOR(b []byte) error {
	var data NodeData[K, V]
	if err := cbor.Unmarshal(b, &data); err != nil {
		return fmt.Errorf("decode trie snapshot: %w", err)
	}
	if t.root == nil {
		t.log = defaultOptions().logger
	}
	return t.Restore(data)
}
