// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/c2h5oh/datasize"
	"github.com/creachadair/ontree/find"
	"github.com/creachadair/ontree/tree"
	"github.com/go-kit/log/level"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/errgroup"
)

type fmtCmd struct {
	Files []string `kong:"arg,optional,help='Input files (default stdin)'"`
}

func (c *fmtCmd) Run(g *Globals) error {
	files := c.Files
	if len(files) == 0 {
		files = []string{"-"}
	}
	buf := make([]byte, 0, int(g.InitialCapacity.Bytes()))
	for _, path := range files {
		t, err := g.load(path)
		if err != nil {
			return err
		}
		buf, err = tree.AppendTo(buf[:0], t)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		buf = append(buf, '\n')
		if _, err := g.out.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

type getCmd struct {
	Path string `kong:"arg,help='Path expression, e.g. .items[0].name'"`
	File string `kong:"arg,optional,default='-',help='Input file (default stdin)'"`
}

func (c *getCmd) Run(g *Globals) error {
	t, err := g.load(c.File)
	if err != nil {
		return err
	}
	n, err := find.Find(t.Root(), c.Path)
	if err != nil {
		return fmt.Errorf("find %q: %w", c.Path, err)
	} else if n == nil {
		return fmt.Errorf("find %q: no such value", c.Path)
	}
	s, err := g.format(n)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.out, s)
	return err
}

type checkCmd struct {
	Files []string `kong:"arg,help='Input files'"`
}

func (c *checkCmd) Run(g *Globals) error {
	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())

	var failed atomic.Int32
	for _, path := range c.Files {
		eg.Go(func() error {
			t, err := g.load(path)
			if err != nil {
				level.Error(g.logger).Log("msg", "invalid document", "file", path, "err", err)
				failed.Add(1)
				return nil
			}
			st := t.Stats()
			level.Info(g.logger).Log("msg", "valid document", "file", path,
				"nodes", st.Nodes, "node_pages", st.NodePages,
				"text", datasize.ByteSize(st.TextBytes).HumanReadable(), "text_pages", st.TextPages)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d files invalid", n, len(c.Files))
	}
	return nil
}

// load reads and parses the named input.
func (g *Globals) load(path string) (*tree.Tree, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	level.Debug(g.logger).Log("msg", "read input", "file", path, "size", datasize.ByteSize(len(data)).HumanReadable())

	t := tree.New(&tree.Options{PageSize: int(g.PageSize.Bytes())})
	if g.JWCC {
		err = tree.BuildStandard(t, data)
	} else {
		err = tree.BuildTree(t, data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// format renders n as text. Strings are printed without quotes.
func (g *Globals) format(n *tree.Node) (string, error) {
	switch n.Kind() {
	case tree.String:
		return n.Text().String(), nil
	case tree.Number:
		return strconv.FormatFloat(n.Number(), 'g', -1, 64), nil
	case tree.Bool:
		return strconv.FormatBool(n.Bool()), nil
	case tree.Null:
		return "null", nil
	}

	capacity := int(g.InitialCapacity.Bytes())
	if n.Kind() == tree.Object {
		return tree.GenerateString(tree.NewFrom(n, nil), capacity)
	}

	// A document root must be an object, so an array is rendered as the sole
	// member of a new root and the wrapper is trimmed. An array is never the
	// root of a parsed document, so the extra level stays within the limit.
	w := tree.New(nil)
	w.InsertSubtree(w.Root(), "", n)
	s, err := tree.GenerateString(w, capacity)
	if err != nil {
		return "", err
	}
	const prefix = `{"":`
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, "}") {
		return "", errors.New("unexpected generator output")
	}
	return s[len(prefix) : len(s)-1], nil
}

func readInput(path string) ([]byte, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	}
	return io.ReadAll(r)
}
