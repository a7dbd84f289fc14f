// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"fmt"

	"github.com/creachadair/ontree"
	"github.com/tailscale/hujson"
)

// A Builder adds the values reported by a Reader to a Tree.
type Builder struct {
	t   *Tree
	top *Node // the innermost open container, or nil before the root
	key Text  // the name for the next member of top
}

// NewBuilder constructs a Builder that adds values to the root of t.
func NewBuilder(t *Tree) *Builder { return &Builder{t: t} }

// Build applies the most recent event read by r. It should be called once
// after each successful call to r.Read.
func (b *Builder) Build(r *ontree.Reader) error {
	switch ev := r.Last(); ev {
	case ontree.Begin, ontree.End:
		return nil
	case ontree.ObjectBegin:
		if b.top == nil {
			b.top = b.t.root
			return nil
		}
	}
	if b.top == nil {
		return ontree.Unexpected
	}

	switch r.Last() {
	case ontree.ObjectBegin:
		b.top = b.add(Object)
	case ontree.ArrayBegin:
		b.top = b.add(Array)
	case ontree.ObjectEnd, ontree.ArrayEnd:
		b.top = b.top.parent
	case ontree.ObjectKey:
		key, err := b.unescape(r.RawString())
		if err != nil {
			return err
		}
		b.key = key
	case ontree.String:
		txt, err := b.unescape(r.RawString())
		if err != nil {
			return err
		}
		b.add(String).text = txt
	case ontree.Number:
		b.add(Number).num = r.Number()
	case ontree.Boolean:
		b.add(Bool).pred = r.Predicate()
	case ontree.Null:
		b.add(Null)
	default:
		return ontree.Unexpected
	}
	return nil
}

func (b *Builder) add(k Kind) *Node {
	if b.top.kind == Object {
		return b.t.member(b.top, b.key, k)
	}
	return b.t.element(b.top, k)
}

func (b *Builder) unescape(raw ontree.Range) (Text, error) {
	txt := b.t.NewText(raw.Len())
	n, err := ontree.UnescapeTo(txt.b, raw)
	if err != nil {
		return Text{}, err
	}
	return txt.Truncate(n), nil
}

// BuildTree parses a complete document from input and adds its members to
// the root of t. In case of error, values parsed before the error remain in
// t, and the error has concrete type *ontree.SyntaxError.
func BuildTree(t *Tree, input []byte) error {
	r := ontree.NewReader(input)
	b := NewBuilder(t)
	for r.Last() != ontree.End {
		err := r.Read()
		if err == nil {
			err = b.Build(r)
		}
		if err != nil {
			return &ontree.SyntaxError{
				Kind:     errorKind(err),
				Offset:   r.Offset(),
				Location: ontree.Locate(input, r.Offset()),
			}
		}
	}
	return nil
}

// Parse parses a complete document from input into a new Tree.
func Parse(input []byte, opts *Options) (*Tree, error) {
	t := New(opts)
	if err := BuildTree(t, input); err != nil {
		return nil, err
	}
	return t, nil
}

// BuildStandard is as BuildTree, but accepts JWCC input, allowing comments
// and trailing commas, which are removed before parsing.
func BuildStandard(t *Tree, input []byte) error {
	v, err := hujson.Parse(input)
	if err != nil {
		return fmt.Errorf("standardize: %w", err)
	}
	v.Standardize()
	return BuildTree(t, v.Pack())
}

func errorKind(err error) ontree.ErrorKind {
	if k, ok := err.(ontree.ErrorKind); ok {
		return k
	}
	return ontree.Unexpected
}
