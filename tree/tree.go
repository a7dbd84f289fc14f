// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package tree implements an append-only JSON document tree whose nodes and
// text are allocated from arenas owned by the tree.
//
// A Tree always has an Object root. Values are added with the Insert methods
// (for object parents) and the Append methods (for array parents); nothing
// is ever removed. Calling an Insert method with an array parent, or an
// Append method with an object parent, panics.
//
// Use BuildTree to populate a tree from JSON input, and GenerateString or
// AppendTo to encode it.
package tree

import "github.com/creachadair/ontree/arena"

// Options are settings for a Tree. A nil *Options provides defaults.
type Options struct {
	// The minimum size in bytes of text arena pages.
	// If zero, arena.DefaultPageSize is used.
	PageSize int

	// The number of nodes per node slab page.
	// If zero, arena.DefaultSlabLen is used.
	SlabLen int
}

func (o *Options) pageSize() int {
	if o == nil {
		return 0
	}
	return o.PageSize
}

func (o *Options) slabLen() int {
	if o == nil {
		return 0
	}
	return o.SlabLen
}

// A Tree is a JSON document. The zero value is not ready for use; construct
// a Tree with New.
//
// A Tree is not safe for concurrent mutation. Concurrent readers are safe
// provided nothing modifies the tree.
type Tree struct {
	text  *arena.Arena
	nodes *arena.Slab[Node]
	root  *Node
}

// New constructs an empty Tree.
func New(opts *Options) *Tree {
	t := &Tree{
		text:  arena.New(opts.pageSize()),
		nodes: arena.NewSlab[Node](opts.slabLen()),
	}
	t.root = t.newNode(Object)
	return t
}

// NewFrom constructs a new Tree whose root holds copies of the members of
// obj. It panics if obj is not an Object.
func NewFrom(obj *Node, opts *Options) *Tree {
	t := New(opts)
	t.InsertChildren(t.root, obj)
	return t
}

// Root returns the root object of t.
func (t *Tree) Root() *Node { return t.root }

// Size reports the number of nodes in t, including the root.
func (t *Tree) Size() int { return t.nodes.Len() }

// Clone returns a deep copy of t with the same allocation settings.
func (t *Tree) Clone() *Tree {
	return NewFrom(t.root, &Options{
		PageSize: t.text.PageSize(),
		SlabLen:  t.nodes.PageLen(),
	})
}

// Assign replaces the contents of t with a deep copy of src.
func (t *Tree) Assign(src *Tree) {
	c := src.Clone()
	t.Swap(c)
}

// Swap exchanges the contents of t and u.
func (t *Tree) Swap(u *Tree) { *t, *u = *u, *t }

// Stats records allocation statistics for a Tree.
type Stats struct {
	Nodes     int // number of nodes, including the root
	NodePages int // slab pages allocated for nodes
	TextBytes int // bytes of text, including terminators
	TextPages int // arena pages allocated for text
}

// Stats reports allocation statistics for t.
func (t *Tree) Stats() Stats {
	return Stats{
		Nodes:     t.nodes.Len(),
		NodePages: t.nodes.Pages(),
		TextBytes: t.text.Allocated(),
		TextPages: t.text.Pages(),
	}
}

// NewText allocates a zeroed text of length n. Its contents may be written
// via Bytes until it is attached to a node.
func (t *Tree) NewText(n int) Text {
	return Text{b: t.text.Allocate(n + 1)[:n]}
}

// Text returns a copy of s allocated in t.
func (t *Tree) Text(s string) Text {
	txt := t.NewText(len(s))
	copy(txt.b, s)
	return txt
}

func (t *Tree) copyText(src Text) Text {
	txt := t.NewText(src.Len())
	copy(txt.b, src.b)
	return txt
}

func (t *Tree) newNode(k Kind) *Node {
	n := t.nodes.New()
	n.kind = k
	return n
}

// attach adds n as the last child of parent.
func attach(parent, n *Node) {
	n.parent = parent
	if parent.last == nil {
		parent.first = n
	} else {
		parent.last.next = n
	}
	parent.last = n
	parent.size++
}

func (t *Tree) member(parent *Node, name Text, k Kind) *Node {
	parent.mustBe(Object)
	n := t.newNode(k)
	n.name = name
	attach(parent, n)
	return n
}

func (t *Tree) element(parent *Node, k Kind) *Node {
	parent.mustBe(Array)
	n := t.newNode(k)
	attach(parent, n)
	return n
}

// InsertObject adds an empty object member to parent and returns it.
func (t *Tree) InsertObject(parent *Node, name string) *Node {
	return t.member(parent, t.Text(name), Object)
}

// InsertArray adds an empty array member to parent and returns it.
func (t *Tree) InsertArray(parent *Node, name string) *Node {
	return t.member(parent, t.Text(name), Array)
}

// InsertNumber adds a number member to parent and returns it.
func (t *Tree) InsertNumber(parent *Node, name string, v float64) *Node {
	n := t.member(parent, t.Text(name), Number)
	n.num = v
	return n
}

// InsertString adds a string member to parent and returns it.
func (t *Tree) InsertString(parent *Node, name, v string) *Node {
	n := t.member(parent, t.Text(name), String)
	n.text = t.Text(v)
	return n
}

// InsertBool adds a Boolean member to parent and returns it.
func (t *Tree) InsertBool(parent *Node, name string, v bool) *Node {
	n := t.member(parent, t.Text(name), Bool)
	n.pred = v
	return n
}

// InsertNull adds a null member to parent and returns it.
func (t *Tree) InsertNull(parent *Node, name string) *Node {
	return t.member(parent, t.Text(name), Null)
}

// InsertSubtree adds a deep copy of src as a member of parent and returns
// the copy. The source may belong to any tree, including t.
func (t *Tree) InsertSubtree(parent *Node, name string, src *Node) *Node {
	parent.mustBe(Object)
	n := t.clone(src)
	n.name = t.Text(name)
	attach(parent, n)
	return n
}

// InsertChildren adds deep copies of the children of src to dst, which must
// be of the same kind. The source may belong to any tree, including t.
func (t *Tree) InsertChildren(dst, src *Node) {
	dst.mustContain()
	src.mustBe(dst.kind)

	// Copy everything before attaching, so that src may be an ancestor of dst.
	kids := make([]*Node, 0, src.size)
	for c := src.first; c != nil; c = c.next {
		k := t.clone(c)
		if src.kind == Object {
			k.name = t.copyText(c.name)
		}
		kids = append(kids, k)
	}
	for _, k := range kids {
		attach(dst, k)
	}
}

// AppendObject adds an empty object element to parent and returns it.
func (t *Tree) AppendObject(parent *Node) *Node { return t.element(parent, Object) }

// AppendArray adds an empty array element to parent and returns it.
func (t *Tree) AppendArray(parent *Node) *Node { return t.element(parent, Array) }

// AppendNumber adds a number element to parent and returns it.
func (t *Tree) AppendNumber(parent *Node, v float64) *Node {
	n := t.element(parent, Number)
	n.num = v
	return n
}

// AppendString adds a string element to parent and returns it.
func (t *Tree) AppendString(parent *Node, v string) *Node {
	n := t.element(parent, String)
	n.text = t.Text(v)
	return n
}

// AppendBool adds a Boolean element to parent and returns it.
func (t *Tree) AppendBool(parent *Node, v bool) *Node {
	n := t.element(parent, Bool)
	n.pred = v
	return n
}

// AppendNull adds a null element to parent and returns it.
func (t *Tree) AppendNull(parent *Node) *Node { return t.element(parent, Null) }

// AppendSubtree adds a deep copy of src as an element of parent and returns
// the copy. The source may belong to any tree, including t.
func (t *Tree) AppendSubtree(parent, src *Node) *Node {
	parent.mustBe(Array)
	n := t.clone(src)
	attach(parent, n)
	return n
}

// clone returns a detached deep copy of src and its descendants, without
// its member name.
func (t *Tree) clone(src *Node) *Node {
	n := t.newNode(src.kind)
	switch src.kind {
	case Number:
		n.num = src.num
	case Bool:
		n.pred = src.pred
	case String:
		n.text = t.copyText(src.text)
	case Object, Array:
		for c := src.first; c != nil; c = c.next {
			k := t.clone(c)
			if src.kind == Object {
				k.name = t.copyText(c.name)
			}
			attach(n, k)
		}
	}
	return n
}
