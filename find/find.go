// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package find implements a minimal path language for locating values in a
// tree.
//
// A path is a sequence of steps. Each step is either a member name, or an
// array offset in square brackets. Member names after the first step are
// preceded by a dot; a leading dot is optional:
//
//	foo.bar[2].baz
//	.items[0]
//
// Names are runs of ASCII letters, digits, and underscores. Offsets are
// non-negative decimal integers.
package find

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/creachadair/ontree"
	"github.com/creachadair/ontree/tree"
)

/*
Grammar:

  path = [step [steps]]
 steps = step [steps]
  step = ["."] WORD
  step = ["."] "[" INDEX "]"

  WORD = RE `\w+`
 INDEX = RE `\d+`
*/

// An Op is the type of a path step.
type Op byte

const (
	Member Op = iota + 1 // object member lookup
	Index                // array element lookup
)

func (o Op) String() string {
	switch o {
	case Member:
		return "member"
	case Index:
		return "index"
	}
	return "invalid"
}

// A Step is a single step of a path.
type Step struct {
	Op    Op
	Name  string // for Member
	Index int    // for Index
}

func (s Step) String() string {
	if s.Op == Index {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return "." + s.Name
}

// A Path is a parsed path expression.
type Path []Step

func (p Path) String() string {
	var buf strings.Builder
	for i, s := range p {
		if i == 0 && s.Op == Member {
			buf.WriteString(s.Name)
		} else {
			buf.WriteString(s.String())
		}
	}
	return buf.String()
}

var (
	wordRE  = regexp.MustCompile(`^\w+`)
	indexRE = regexp.MustCompile(`^\[(\d+)\]`)
)

// ReadStep reads a single step from the front of path, and returns the step
// along with the unread remainder of path. It reports ontree.IllFormed if
// path does not begin with a valid step.
func ReadStep(path string) (Step, string, error) {
	s := strings.TrimPrefix(path, ".")
	if m := wordRE.FindString(s); m != "" {
		return Step{Op: Member, Name: m}, s[len(m):], nil
	}
	if m := indexRE.FindStringSubmatch(s); m != nil {
		v, err := strconv.Atoi(m[1])
		if err != nil {
			v = int(^uint(0) >> 1) // out of range of any array
		}
		return Step{Op: Index, Index: v}, s[len(m[0]):], nil
	}
	return Step{}, path, ontree.IllFormed
}

// Parse parses a complete path.
func Parse(path string) (Path, error) {
	var out Path
	for path != "" {
		s, rest, err := ReadStep(path)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		path = rest
	}
	return out, nil
}

// apply applies s to n. It reports ontree.NotFound if s does not apply to the
// kind of n.
func (s Step) apply(n *tree.Node) (*tree.Node, error) {
	switch {
	case s.Op == Member && n.Kind() == tree.Object:
		return n.Member(s.Name), nil
	case s.Op == Index && n.Kind() == tree.Array:
		return n.Element(s.Index), nil
	}
	return nil, ontree.NotFound
}

// Find applies p to root and returns the resulting node. If the last step
// of p finds nothing, Find returns nil, nil. It reports ontree.NotFound if a
// step applies to a node of the wrong kind, or follows a step that found
// nothing.
func (p Path) Find(root *tree.Node) (*tree.Node, error) {
	here := root
	for _, s := range p {
		if here == nil {
			return nil, ontree.NotFound
		}
		var err error
		if here, err = s.apply(here); err != nil {
			return nil, err
		}
	}
	return here, nil
}

// Find evaluates path relative to root and returns the resulting node, as
// Path.Find. Steps are read as they are applied, so an error in the syntax
// of path is only reported if the search reaches it.
func Find(root *tree.Node, path string) (*tree.Node, error) {
	here := root
	for path != "" {
		if here == nil {
			return nil, ontree.NotFound
		}
		s, rest, err := ReadStep(path)
		if err != nil {
			return nil, err
		}
		if here, err = s.apply(here); err != nil {
			return nil, err
		}
		path = rest
	}
	return here, nil
}
