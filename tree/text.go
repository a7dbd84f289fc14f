// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tree

import "github.com/creachadair/ontree"

// Text is a byte string owned by a Tree. Its storage is followed by a NUL
// byte that is not counted in its length. The contents may include NUL bytes.
type Text struct{ b []byte }

// Len reports the length of t in bytes.
func (t Text) Len() int { return len(t.b) }

// Bytes returns the contents of t. The caller must not modify the result
// once t has been attached to a node.
func (t Text) Bytes() []byte { return t.b }

// String returns a copy of the contents of t.
func (t Text) String() string { return string(t.b) }

// Equal reports whether t has exactly the contents of s.
func (t Text) Equal(s string) bool { return string(t.b) == s }

// Range returns a read-only view of t.
func (t Text) Range() ontree.Range { return ontree.MakeRange(t.b) }

// Terminated returns the contents of t followed by its NUL terminator.
func (t Text) Terminated() []byte {
	if cap(t.b) == 0 {
		return []byte{0}
	}
	return t.b[:len(t.b)+1]
}

// Truncate returns a prefix of t of length n, with the terminator moved to
// follow it. It panics if n > t.Len().
func (t Text) Truncate(n int) Text {
	if n > len(t.b) {
		panic("tree: truncate beyond text length")
	}
	if cap(t.b) != 0 {
		t.b[:n+1][n] = 0
	}
	return Text{b: t.b[:n]}
}
