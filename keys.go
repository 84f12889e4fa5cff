package ptrie

import (
	"iter"
	"strings"
)

// Bytes yields the bytes of s.
func Bytes(s string) iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for i := 0; i < len(s); i++ {
			if !yield(s[i]) {
				return
			}
		}
	}
}

// Runes yields the runes of s.
func Runes(s string) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range s {
			if !yield(r) {
				return
			}
		}
	}
}

// Symbols yields the elements of syms in order.
func Symbols[K any](syms []K) iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, s := range syms {
			if !yield(s) {
				return
			}
		}
	}
}

// Segments splits a hierarchical path such as "/usr/local/bin" on sep and
// yields the non-empty segments. Leading, trailing and repeated separators
// are ignored, so "/usr/local" and "usr/local" are the same key. An empty
// sep yields the whole path as a single segment.
func Segments(path, sep string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if sep == "" {
			if path != "" {
				yield(path)
			}
			return
		}
		for path != "" {
			seg, rest, found := strings.Cut(path, sep)
			if seg != "" && !yield(seg) {
				return
			}
			if !found {
				return
			}
			path = rest
		}
	}
}
