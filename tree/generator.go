// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tree

import "github.com/creachadair/ontree"

// A Generator traverses a Tree depth-first in child order, reporting the
// same sequence of events a Reader would report for its encoding.
type Generator struct {
	root *Node
	cur  *Node
	last ontree.Event
}

// NewGenerator constructs a Generator positioned before the root of t.
func NewGenerator(t *Tree) *Generator { return &Generator{root: t.root} }

// Last returns the current event.
func (g *Generator) Last() ontree.Event { return g.last }

// Done reports whether the traversal is complete.
func (g *Generator) Done() bool { return g.last == ontree.End }

// Node returns the node the current event refers to. For an end event this
// is the container being closed.
func (g *Generator) Node() *Node { return g.cur }

// Key returns the member name for an ObjectKey event.
func (g *Generator) Key() Text { return g.cur.name }

// Text returns the contents for a String event.
func (g *Generator) Text() Text { return g.cur.text }

// Number returns the value for a Number event.
func (g *Generator) Number() float64 { return g.cur.num }

// Predicate returns the value for a Boolean event.
func (g *Generator) Predicate() bool { return g.cur.pred }

// Next advances g to the next event. It reports ontree.Unexpected if the
// traversal is already complete.
func (g *Generator) Next() error {
	switch g.last {
	case ontree.Begin:
		g.cur, g.last = g.root, ontree.ObjectBegin
	case ontree.ObjectBegin, ontree.ArrayBegin:
		if c := g.cur.first; c != nil {
			g.enter(c)
		} else {
			g.last = endEvent(g.cur)
		}
	case ontree.ObjectKey:
		g.last = valueEvent(g.cur)
	case ontree.End:
		return ontree.Unexpected
	default:
		// A value or the end of a container.
		if g.cur == g.root {
			g.last = ontree.End
		} else if s := g.cur.next; s != nil {
			g.enter(s)
		} else {
			g.cur = g.cur.parent
			g.last = endEvent(g.cur)
		}
	}
	return nil
}

func (g *Generator) enter(n *Node) {
	g.cur = n
	if n.parent.kind == Object {
		g.last = ontree.ObjectKey
	} else {
		g.last = valueEvent(n)
	}
}

func valueEvent(n *Node) ontree.Event {
	switch n.kind {
	case Object:
		return ontree.ObjectBegin
	case Array:
		return ontree.ArrayBegin
	case Number:
		return ontree.Number
	case String:
		return ontree.String
	case Bool:
		return ontree.Boolean
	case Null:
		return ontree.Null
	}
	panic("tree: invalid node kind")
}

func endEvent(n *Node) ontree.Event {
	if n.kind == Array {
		return ontree.ArrayEnd
	}
	return ontree.ObjectEnd
}

// write issues the writer call for the current event of g.
func (g *Generator) write(w *ontree.Writer) error {
	switch g.last {
	case ontree.ObjectBegin:
		return w.WriteBegin(ontree.Object)
	case ontree.ArrayBegin:
		return w.WriteBegin(ontree.Array)
	case ontree.ObjectEnd, ontree.ArrayEnd:
		return w.WriteEnd()
	case ontree.ObjectKey:
		return w.WriteKeyBytes(g.cur.name.b)
	case ontree.String:
		return w.WriteStringBytes(g.cur.text.b)
	case ontree.Number:
		return w.WriteNumber(g.cur.num)
	case ontree.Boolean:
		return w.WriteBool(g.cur.pred)
	case ontree.Null:
		return w.WriteNull()
	}
	return nil
}

// GenerateString returns the encoding of t. The output buffer starts with
// the given capacity and is doubled whenever the writer runs out of space.
func GenerateString(t *Tree, initialCap int) (string, error) {
	out, err := AppendTo(make([]byte, 0, max(initialCap, 0)), t)
	return string(out), err
}

// AppendTo appends the encoding of t to dst, growing it as needed, and
// returns the extended slice. In case of error, the partial output is
// returned along with the error.
func AppendTo(dst []byte, t *Tree) ([]byte, error) {
	buf := dst[:cap(dst)]
	w := ontree.NewWriter(buf[len(dst):])
	used := func() int { return len(buf) - w.Buffer().Len() }

	g := NewGenerator(t)
	for {
		if err := g.Next(); err != nil {
			return buf[:used()], err
		} else if g.Done() {
			return buf[:used()], nil
		}

		// Retry the same event with a larger buffer until it fits.
		for {
			err := g.write(w)
			if err == nil {
				break
			} else if err != ontree.NeedBuffer {
				return buf[:used()], err
			}
			n := used()
			grown := make([]byte, max(2*len(buf), 1))
			copy(grown, buf[:n])
			buf = grown
			w.SetBuffer(ontree.MakeMutRange(buf[n:]))
		}
	}
}
