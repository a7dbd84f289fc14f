// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ontree

import "go4.org/mem"

// A Range is a read-only view of a run of bytes. Consuming bytes from a
// Range returns a new Range with the head advanced; the underlying bytes are
// never copied.
type Range struct{ m mem.RO }

// MakeRange returns a Range viewing the contents of b.
func MakeRange(b []byte) Range { return Range{m: mem.B(b)} }

// RangeOf returns a Range viewing the contents of s.
func RangeOf(s string) Range { return Range{m: mem.S(s)} }

// Len reports the number of bytes in r.
func (r Range) Len() int { return r.m.Len() }

// Empty reports whether r has no bytes.
func (r Range) Empty() bool { return r.m.Len() == 0 }

// At returns the byte at offset i of r. It panics if i is out of range.
func (r Range) At(i int) byte { return r.m.At(i) }

// Consumed returns a Range with the first n bytes of r removed.
func (r Range) Consumed(n int) Range { return Range{m: r.m.SliceFrom(n)} }

// Prefix returns a Range containing the first n bytes of r.
func (r Range) Prefix(n int) Range { return Range{m: r.m.SliceTo(n)} }

// Mem returns a read-only view of r.
func (r Range) Mem() mem.RO { return r.m }

// Equal reports whether r contains exactly the bytes of s.
func (r Range) Equal(s string) bool { return r.m.EqualString(s) }

// Append appends the contents of r to dst and returns the result.
func (r Range) Append(dst []byte) []byte { return mem.Append(dst, r.m) }

// String returns a copy of the contents of r as a string.
func (r Range) String() string { return r.m.StringCopy() }

// A MutRange is a writable window onto a byte buffer. Writing to a MutRange
// returns a new MutRange with the head advanced past the bytes written.
type MutRange struct{ buf []byte }

// MakeMutRange returns a MutRange writing into b.
func MakeMutRange(b []byte) MutRange { return MutRange{buf: b} }

// Len reports the number of bytes remaining in m.
func (m MutRange) Len() int { return len(m.buf) }

// Empty reports whether m has no space remaining.
func (m MutRange) Empty() bool { return len(m.buf) == 0 }

// Bytes returns the remaining window of m.
func (m MutRange) Bytes() []byte { return m.buf }

// Consumed returns a MutRange with the first n bytes of m skipped.
func (m MutRange) Consumed(n int) MutRange { return MutRange{buf: m.buf[n:]} }

// Write copies b to the head of m and returns the remaining window.
// It panics if m is too short to hold b.
func (m MutRange) Write(b []byte) MutRange {
	if len(b) > len(m.buf) {
		panic("ontree: write exceeds buffer")
	}
	n := copy(m.buf, b)
	return MutRange{buf: m.buf[n:]}
}

// WriteString copies s to the head of m and returns the remaining window.
// It panics if m is too short to hold s.
func (m MutRange) WriteString(s string) MutRange {
	if len(s) > len(m.buf) {
		panic("ontree: write exceeds buffer")
	}
	n := copy(m.buf, s)
	return MutRange{buf: m.buf[n:]}
}

// PutByte writes c to the head of m and returns the remaining window.
// It panics if m is empty.
func (m MutRange) PutByte(c byte) MutRange {
	m.buf[0] = c
	return MutRange{buf: m.buf[1:]}
}
