// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/klauspost/compress/zstd"
)

const testDoc = `{
  "name": "widget",
  "tags": ["a", "b\n"],
  "size": {"w": 2.5, "h": 10},
  "ok": true,
  "none": null
}`

func newTestGlobals(t *testing.T) (*Globals, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, logs bytes.Buffer
	return &Globals{
		LogLevel:        "info",
		PageSize:        64,
		InitialCapacity: 8,
		out:             &out,
		logger:          newLogger(&logs, "info"),
	}, &out, &logs
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("Write %q: %v", name, err)
	}
	return path
}

func writeZstd(t *testing.T, name, data string) string {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := enc.Write([]byte(data)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return writeFile(t, name, buf.String())
}

func TestFmt(t *testing.T) {
	const want = `{"name":"widget","tags":["a","b\n"],"size":{"w":2.5,"h":10},"ok":true,"none":null}` + "\n"

	t.Run("Plain", func(t *testing.T) {
		g, out, _ := newTestGlobals(t)
		cmd := &fmtCmd{Files: []string{writeFile(t, "doc.json", testDoc)}}
		if err := cmd.Run(g); err != nil {
			t.Fatalf("fmt failed: %v", err)
		}
		if got := out.String(); got != want {
			t.Errorf("Output:\n got %#q\nwant %#q", got, want)
		}
	})

	t.Run("Zstd", func(t *testing.T) {
		g, out, _ := newTestGlobals(t)
		cmd := &fmtCmd{Files: []string{writeZstd(t, "doc.json.zst", testDoc)}}
		if err := cmd.Run(g); err != nil {
			t.Fatalf("fmt failed: %v", err)
		}
		if got := out.String(); got != want {
			t.Errorf("Output:\n got %#q\nwant %#q", got, want)
		}
	})

	t.Run("JWCC", func(t *testing.T) {
		const input = `{
  // comment
  "a": [1, 2,],
}`
		path := writeFile(t, "doc.jwcc", input)

		g, _, _ := newTestGlobals(t)
		if err := (&fmtCmd{Files: []string{path}}).Run(g); err == nil {
			t.Error("fmt without --jwcc: got nil error, want failure")
		}

		g, out, _ := newTestGlobals(t)
		g.JWCC = true
		if err := (&fmtCmd{Files: []string{path}}).Run(g); err != nil {
			t.Fatalf("fmt --jwcc failed: %v", err)
		}
		if got, want := out.String(), `{"a":[1,2]}`+"\n"; got != want {
			t.Errorf("Output: got %#q, want %#q", got, want)
		}
	})
}

func TestGet(t *testing.T) {
	path := writeFile(t, "doc.json", testDoc)
	tests := []struct {
		path, want string
	}{
		{".name", "widget"},
		{"tags[1]", "b\n"},
		{".size.w", "2.5"},
		{".size", `{"w":2.5,"h":10}`},
		{".tags", `["a","b\n"]`},
		{".ok", "true"},
		{".none", "null"},
		{"", `{"name":"widget","tags":["a","b\n"],"size":{"w":2.5,"h":10},"ok":true,"none":null}`},
	}
	for _, tc := range tests {
		g, out, _ := newTestGlobals(t)
		if err := (&getCmd{Path: tc.path, File: path}).Run(g); err != nil {
			t.Errorf("get %q: unexpected error: %v", tc.path, err)
			continue
		}
		if got := strings.TrimSuffix(out.String(), "\n"); got != tc.want {
			t.Errorf("get %q: got %#q, want %#q", tc.path, got, tc.want)
		}
	}

	for _, bad := range []string{".nonesuch", ".tags[5]", ".name.x", "[0]", ".size!"} {
		g, _, _ := newTestGlobals(t)
		if err := (&getCmd{Path: bad, File: path}).Run(g); err == nil {
			t.Errorf("get %q: got nil error, want failure", bad)
		}
	}
}

func TestCheck(t *testing.T) {
	good := writeFile(t, "good.json", testDoc)
	packed := writeZstd(t, "packed.json.zst", testDoc)
	bad := writeFile(t, "bad.json", `{"a": [1, 2}`)

	g, _, logs := newTestGlobals(t)
	if err := (&checkCmd{Files: []string{good, packed}}).Run(g); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if n := strings.Count(logs.String(), "valid document"); n != 2 {
		t.Errorf("Got %d valid reports, want 2:\n%s", n, logs.String())
	}

	g, _, logs = newTestGlobals(t)
	err := (&checkCmd{Files: []string{good, bad, packed}}).Run(g)
	if err == nil || !strings.Contains(err.Error(), "1 of 3") {
		t.Errorf("check: got %v, want 1 of 3 invalid", err)
	}
	if !strings.Contains(logs.String(), "level=error") || !strings.Contains(logs.String(), "bad.json") {
		t.Errorf("Missing error log for bad input:\n%s", logs.String())
	}
}

func TestGetDeep(t *testing.T) {
	// Thirty-one objects and an array: as deep as a document may be.
	doc := strings.Repeat(`{"a":`, 31) + "[]" + strings.Repeat("}", 31)
	path := writeFile(t, "deep.json", doc)

	tests := []struct {
		path, want string
	}{
		{"", doc},
		{".a", doc[len(`{"a":`) : len(doc)-1]},
		{strings.Repeat(".a", 31), "[]"},
	}
	for _, tc := range tests {
		g, out, _ := newTestGlobals(t)
		if err := (&getCmd{Path: tc.path, File: path}).Run(g); err != nil {
			t.Errorf("get %q: unexpected error: %v", tc.path, err)
			continue
		}
		if got := strings.TrimSuffix(out.String(), "\n"); got != tc.want {
			t.Errorf("get %q: got %#q, want %#q", tc.path, got, tc.want)
		}
	}
}

func TestRun(t *testing.T) {
	t.Setenv("ONTREE_LOG_LEVEL", "warn")
	path := writeFile(t, "doc.json", testDoc)

	var out, errs bytes.Buffer
	if err := run([]string{"get", ".size.h", path}, &out, &errs); err != nil {
		t.Fatalf("run get: unexpected error: %v", err)
	}
	if got := out.String(); got != "10\n" {
		t.Errorf("run get: got %q, want %q", got, "10\n")
	}

	// A failed command is returned to the caller and not logged as well.
	out.Reset()
	err := run([]string{"get", ".nonesuch", path}, &out, &errs)
	if err == nil || !strings.Contains(err.Error(), "no such value") {
		t.Errorf("run get .nonesuch: got %v, want no such value", err)
	}
	if errs.Len() != 0 {
		t.Errorf("Unexpected log output:\n%s", errs.String())
	}
}

func TestLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "silent")
	level.Error(logger).Log("msg", "hello")
	if buf.Len() != 0 {
		t.Errorf("Silent logger wrote %q", buf.String())
	}
}
