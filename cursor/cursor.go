// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements read-only navigation over the nodes of a tree.
//
// A Var refers to a node, or is undefined. Navigating from an undefined Var,
// or to a value that does not exist, yields an undefined Var rather than an
// error, so lookups may be chained:
//
//	v := cursor.Root(t).Key("items").Index(0).Key("name")
//	if v.Defined() {
//	   fmt.Println(v.Text())
//	}
package cursor

import (
	"fmt"
	"iter"

	"github.com/creachadair/ontree/find"
	"github.com/creachadair/ontree/tree"
)

// A Var is a handle on a node of a tree. The zero Var is undefined.
type Var struct{ n *tree.Node }

// Of returns a Var referring to n. If n == nil, the result is undefined.
func Of(n *tree.Node) Var { return Var{n: n} }

// Root returns a Var referring to the root of t.
func Root(t *tree.Tree) Var { return Var{n: t.Root()} }

// Node returns the node v refers to, or nil if v is undefined.
func (v Var) Node() *tree.Node { return v.n }

// Defined reports whether v refers to a node.
func (v Var) Defined() bool { return v.n != nil }

// Kind reports the kind of v, or tree.Invalid if v is undefined.
func (v Var) Kind() tree.Kind {
	if v.n == nil {
		return tree.Invalid
	}
	return v.n.Kind()
}

// IsString reports whether v is a string.
func (v Var) IsString() bool { return v.Kind() == tree.String }

// IsNumber reports whether v is a number.
func (v Var) IsNumber() bool { return v.Kind() == tree.Number }

// IsNull reports whether v is null.
func (v Var) IsNull() bool { return v.Kind() == tree.Null }

// Key returns the member of v with the given name. The result is undefined
// if v is not an object or has no such member.
func (v Var) Key(name string) Var {
	if v.Kind() != tree.Object {
		return Var{}
	}
	return Var{n: v.n.Member(name)}
}

// Index returns the element of v at offset i. The result is undefined if v
// is not an array or i is out of range.
func (v Var) Index(i int) Var {
	if v.Kind() != tree.Array {
		return Var{}
	}
	return Var{n: v.n.Element(i)}
}

// Find returns the value at the given path relative to v, using the syntax
// of the find package. The result is undefined if the path does not resolve
// to a node, including when it is malformed.
func (v Var) Find(path string) Var {
	if v.n == nil {
		return Var{}
	}
	n, err := find.Find(v.n, path)
	if err != nil {
		return Var{}
	}
	return Var{n: n}
}

// Path traverses a sequence of steps starting from v, where each step is
// either a string (denoting an object member) or an int (denoting an array
// offset). Negative offsets count backward from the end of the array.
// The result is undefined if any step fails.
func (v Var) Path(path ...any) Var {
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			v = v.Key(t)
		case int:
			if t < 0 && v.Kind() == tree.Array {
				t += v.n.Len()
			}
			v = v.Index(t)
		default:
			panic(fmt.Sprintf("cursor: invalid path element %T", elt))
		}
	}
	return v
}

// First returns the first child of v. The result is undefined if v is not
// an object or array, or is empty.
func (v Var) First() Var {
	switch v.Kind() {
	case tree.Object, tree.Array:
		return Var{n: v.n.First()}
	}
	return Var{}
}

// Next returns the next sibling of v, or an undefined Var.
func (v Var) Next() Var {
	if v.n == nil {
		return Var{}
	}
	return Var{n: v.n.Next()}
}

// Children returns a sequence of the children of v, in order.
func (v Var) Children() iter.Seq[Var] {
	return func(yield func(Var) bool) {
		for c := v.First(); c.Defined(); c = c.Next() {
			if !yield(c) {
				return
			}
		}
	}
}

// Len reports the number of children of v, or 0 if v is not an object or
// array.
func (v Var) Len() int {
	switch v.Kind() {
	case tree.Object, tree.Array:
		return v.n.Len()
	}
	return 0
}

// Name returns the member name of v. It panics if v is not an object member.
func (v Var) Name() string {
	p := v.node().Parent()
	if p == nil || p.Kind() != tree.Object {
		panic("cursor: value is not an object member")
	}
	return v.n.Name().String()
}

func (v Var) node() *tree.Node {
	if v.n == nil {
		panic("cursor: undefined value")
	}
	return v.n
}

// Text returns the contents of a string. It panics if v is not a string.
func (v Var) Text() string { return v.node().Text().String() }

// Float returns the value of a number. It panics if v is not a number.
func (v Var) Float() float64 { return v.node().Number() }

// Int returns the value of a number truncated to an int. It panics if v is
// not a number.
func (v Var) Int() int { return int(v.node().Number()) }

// Bool returns the value of a Boolean. It panics if v is not a Boolean.
func (v Var) Bool() bool { return v.node().Bool() }
