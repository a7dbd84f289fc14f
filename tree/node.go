// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tree

import "fmt"

// Kind is the type of the value held by a Node.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // not a value
	Object              // collection of named members
	Array               // sequence of elements
	Number              // numeric value
	String              // string value
	Bool                // true or false
	Null                // null
)

var kindStr = [...]string{
	Invalid: "invalid",
	Object:  "object",
	Array:   "array",
	Number:  "number",
	String:  "string",
	Bool:    "bool",
	Null:    "null",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

// A Node is a single value in a Tree.
//
// Every node other than the root is a child of exactly one Object or Array,
// and carries a link to the next child of the same parent. The children of a
// member are kept in insertion order. Nodes are never removed or reordered
// once they have been added.
type Node struct {
	// Child header. The name is empty for array elements and the root.
	name Text
	next *Node

	parent *Node
	kind   Kind

	num  float64 // Number
	pred bool    // Bool
	text Text    // String

	// Object, Array
	first, last *Node
	size        int
}

func (n *Node) mustBe(k Kind) {
	if n.kind != k {
		panic(fmt.Sprintf("tree: node is %v, not %v", n.kind, k))
	}
}

func (n *Node) mustContain() {
	if n.kind != Object && n.kind != Array {
		panic(fmt.Sprintf("tree: node is %v, not a container", n.kind))
	}
}

// Kind reports the kind of value n holds.
func (n *Node) Kind() Kind { return n.kind }

// Parent returns the container holding n, or nil if n is a root.
func (n *Node) Parent() *Node { return n.parent }

// Name returns the member name of n. It is empty if n is not an object
// member.
func (n *Node) Name() Text { return n.name }

// Next returns the next child of the parent of n, or nil.
func (n *Node) Next() *Node { return n.next }

// First returns the first child of n, or nil if n has no children.
// It panics if n is not an Object or Array.
func (n *Node) First() *Node { n.mustContain(); return n.first }

// Len reports the number of children of n.
// It panics if n is not an Object or Array.
func (n *Node) Len() int { n.mustContain(); return n.size }

// Member returns the first member of n with the given name, or nil.
// It panics if n is not an Object.
func (n *Node) Member(name string) *Node {
	n.mustBe(Object)
	for c := n.first; c != nil; c = c.next {
		if c.name.Equal(name) {
			return c
		}
	}
	return nil
}

// Element returns the element of n at offset i, or nil if i is out of range.
// It panics if n is not an Array.
func (n *Node) Element(i int) *Node {
	n.mustBe(Array)
	if i < 0 || i >= n.size {
		return nil
	}
	c := n.first
	for ; i > 0; i-- {
		c = c.next
	}
	return c
}

// Number returns the value of a Number node. It panics for other kinds.
func (n *Node) Number() float64 { n.mustBe(Number); return n.num }

// Bool returns the value of a Bool node. It panics for other kinds.
func (n *Node) Bool() bool { n.mustBe(Bool); return n.pred }

// Text returns the unescaped contents of a String node. It panics for other
// kinds.
func (n *Node) Text() Text { n.mustBe(String); return n.text }
