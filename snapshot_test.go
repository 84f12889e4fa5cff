// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package ptrie

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_Layout(t *testing.T) {
	t.Parallel()

	r := New[byte, int]()
	r.Insert(Bytes("ab"), 1)
	r.Insert(Bytes("a"), 2)
	r.Insert(Bytes("b"), 3)

	require.Equal(t, NodeData[byte, int]{
		Children: []EdgeData[byte, int]{
			{Symbol: 'a', Node: NodeData[byte, int]{
				HasValue: true,
				Value:    2,
				Children: []EdgeData[byte, int]{
					{Symbol: 'b', Node: NodeData[byte, int]{HasValue: true, Value: 1}},
				},
			}},
			{Symbol: 'b', Node: NodeData[byte, int]{HasValue: true, Value: 3}},
		},
	}, r.Snapshot())
}

func TestSnapshot_Restore(t *testing.T) {
	t.Parallel()

	src := New[string, string]()
	src.Insert(Segments("/a/b", "/"), "ab")
	src.Insert(Segments("/a", "/"), "a")
	src.Insert(Segments("/c", "/"), "c")

	dst := New[string, string]()
	dst.Insert(Segments("/old", "/"), "old")
	require.NoError(t, dst.Restore(src.Snapshot()))

	require.Equal(t, 3, dst.Len())
	require.False(t, dst.ContainsKey(Segments("/old", "/")))
	require.Equal(t, []string{"a", "ab", "c"}, dst.FindPostfixes(Segments("", "/")))
}

func TestSnapshot_RestoreRejectsUnsorted(t *testing.T) {
	t.Parallel()

	r := New[byte, int]()
	r.Insert(Bytes("x"), 9)

	bad := NodeData[byte, int]{
		Children: []EdgeData[byte, int]{
			{Symbol: 'b', Node: NodeData[byte, int]{HasValue: true, Value: 1}},
			{Symbol: 'a', Node: NodeData[byte, int]{HasValue: true, Value: 2}},
		},
	}
	err := r.Restore(bad)
	require.ErrorIs(t, err, ErrUnsortedSnapshot)

	// left untouched
	v, ok := r.Get(Bytes("x"))
	require.True(t, ok)
	require.Equal(t, 9, v)
	require.Equal(t, 1, r.Len())
}

func TestSnapshot_RestoreRejectsDanglingNode(t *testing.T) {
	t.Parallel()

	r := New[byte, int]()
	r.Insert(Bytes("x"), 9)

	bad := NodeData[byte, int]{
		Children: []EdgeData[byte, int]{
			{Symbol: 'a', Node: NodeData[byte, int]{HasValue: true, Value: 1}},
			{Symbol: 'b', Node: NodeData[byte, int]{
				Children: []EdgeData[byte, int]{{Symbol: 'c'}},
			}},
		},
	}
	err := r.Restore(bad)
	require.ErrorIs(t, err, ErrInvalidSnapshot)

	// left untouched
	v, ok := r.Get(Bytes("x"))
	require.True(t, ok)
	require.Equal(t, 9, v)
	require.Equal(t, 1, r.Len())
	require.False(t, r.ContainsKey(Bytes("a")))
}

func TestSnapshot_RestoreRejectsRootValue(t *testing.T) {
	t.Parallel()

	r := New[byte, int]()
	r.Insert(Bytes("x"), 9)

	bad := NodeData[byte, int]{
		HasValue: true,
		Value:    7,
		Children: []EdgeData[byte, int]{
			{Symbol: 'a', Node: NodeData[byte, int]{HasValue: true, Value: 1}},
		},
	}
	err := r.Restore(bad)
	require.ErrorIs(t, err, ErrInvalidSnapshot)
	require.Equal(t, 1, r.Len())
	require.True(t, r.ContainsKey(Bytes("x")))
}

func TestSnapshot_RestoreEmpty(t *testing.T) {
	t.Parallel()

	r := New[byte, int]()
	r.Insert(Bytes("x"), 9)
	require.NoError(t, r.Restore(NodeData[byte, int]{}))
	require.Zero(t, r.Len())
	require.True(t, r.IsEmpty())
}

func TestSnapshot_CBORRoundTrip(t *testing.T) {
	t.Parallel()

	src := New[byte, string]()
	for _, w := range []string{"app", "apple", "applet", "apricot"} {
		src.Insert(Bytes(w), w)
	}
	b, err := cbor.Marshal(src)
	require.NoError(t, err)

	again, err := src.MarshalCBOR()
	require.NoError(t, err)
	require.Equal(t, b, again)

	dst := New[byte, string]()
	require.NoError(t, cbor.Unmarshal(b, dst))
	require.Equal(t, src.Snapshot(), dst.Snapshot())
	require.Equal(t, 4, dst.Len())
	require.Equal(t, []string{"app", "apple", "applet"}, dst.FindPostfixes(Bytes("app")))
}

func TestSnapshot_CBORDecodeError(t *testing.T) {
	t.Parallel()

	r := New[byte, int]()
	err := r.UnmarshalCBOR([]byte{0xff})
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode trie snapshot")
}
