// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package arena implements paged bump allocators. Memory obtained from an
// arena is never freed individually; it is released all at once when the
// arena is no longer reachable.
package arena

import "unsafe"

// DefaultPageSize is the page size used by an Arena constructed with a page
// size of zero.
const DefaultPageSize = 1024

const wordSize = int(unsafe.Sizeof(uintptr(0)))

func align(n int) int { return (n + wordSize - 1) &^ (wordSize - 1) }

type page struct {
	next *page // the previously-allocated page
	buf  []byte
	used int
}

// An Arena is a paged bump allocator for byte buffers. Each allocation is
// carved from the newest page at a word-aligned offset; when it does not
// fit, a new page of at least the requested size is added at the head of
// the page list.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	pageSize int
	head     *page
	pages    int
	alloc    int
}

// New constructs an empty Arena with the given page size. If pageSize <= 0,
// DefaultPageSize is used. No pages are allocated until first use.
func New(pageSize int) *Arena {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Arena{pageSize: pageSize}
}

// Allocate returns a zeroed buffer of length n. The capacity of the result
// is exactly n, so appending to it cannot overwrite a neighbouring
// allocation. Allocate(0) returns nil.
func (a *Arena) Allocate(n int) []byte {
	if n < 0 {
		panic("arena: negative allocation size")
	} else if n == 0 {
		return nil
	}
	size := align(n)
	if a.head == nil || len(a.head.buf)-a.head.used < size {
		a.head = &page{next: a.head, buf: make([]byte, max(a.PageSize(), size))}
		a.pages++
	}
	p := a.head
	out := p.buf[p.used : p.used+n : p.used+n]
	p.used += size
	a.alloc += n
	return out
}

// Copy allocates a buffer holding a copy of b.
func (a *Arena) Copy(b []byte) []byte {
	out := a.Allocate(len(b))
	copy(out, b)
	return out
}

// Swap exchanges the contents of a and b.
func (a *Arena) Swap(b *Arena) { *a, *b = *b, *a }

// PageSize reports the minimum size of pages allocated by a.
func (a *Arena) PageSize() int {
	if a.pageSize <= 0 {
		return DefaultPageSize
	}
	return a.pageSize
}

// Pages reports the number of pages currently held by a.
func (a *Arena) Pages() int { return a.pages }

// Allocated reports the total number of bytes requested from a.
func (a *Arena) Allocated() int { return a.alloc }
