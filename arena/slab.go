// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package arena

// DefaultSlabLen is the page length used by a Slab constructed with a page
// length of zero.
const DefaultSlabLen = 64

// A Slab is a paged allocator for values of type T. Values are handed out
// from a page of pageLen elements; a full page is retired and a fresh one is
// started. Retired pages stay alive as long as any value in them is
// reachable.
//
// The zero value is ready for use with DefaultSlabLen.
// A Slab is not safe for concurrent use.
type Slab[T any] struct {
	pageLen int
	cur     []T
	pages   int
	n       int
}

// NewSlab constructs an empty Slab with the given page length. If
// pageLen <= 0, DefaultSlabLen is used.
func NewSlab[T any](pageLen int) *Slab[T] {
	if pageLen <= 0 {
		pageLen = DefaultSlabLen
	}
	return &Slab[T]{pageLen: pageLen}
}

// New returns a pointer to a new zero-valued T.
func (s *Slab[T]) New() *T {
	if len(s.cur) == cap(s.cur) {
		s.cur = make([]T, 0, s.PageLen())
		s.pages++
	}
	s.cur = s.cur[:len(s.cur)+1]
	s.n++
	return &s.cur[len(s.cur)-1]
}

// Swap exchanges the contents of s and t.
func (s *Slab[T]) Swap(t *Slab[T]) { *s, *t = *t, *s }

// PageLen reports the number of elements per page.
func (s *Slab[T]) PageLen() int {
	if s.pageLen <= 0 {
		return DefaultSlabLen
	}
	return s.pageLen
}

// Len reports the number of values allocated from s.
func (s *Slab[T]) Len() int { return s.n }

// Pages reports the number of pages allocated by s.
func (s *Slab[T]) Pages() int { return s.pages }
