// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ontree implements an incremental JSON reader and writer over
// caller-owned buffers.
//
// # Reading
//
// The Reader type is a pull parser. Each call to Read consumes one event from
// the head of its buffer and returns nil, or reports an error:
//
//	r := ontree.NewReader(input)
//	for r.Last() != ontree.End {
//	   if err := r.Read(); err != nil {
//	      log.Fatalf("Read failed: %v", err)
//	   }
//	   log.Printf("Event: %v", r.Last())
//	}
//
// The root of a document must be an object. Keys and string values are
// reported in raw (escaped) form by RawString; use UnescapeTo or Unescape to
// decode them.
//
// A Read that fails leaves the reader unchanged. The error NeedBuffer means
// the input is valid so far but incomplete; the caller may add more input
// with Extend and call Read again:
//
//	if err := r.Read(); err == ontree.NeedBuffer {
//	   r.Extend(more)
//	}
//
// Any other error is final for the document.
//
// # Writing
//
// The Writer type serializes a document one step at a time into a
// caller-provided buffer, inserting separators as needed:
//
//	w := ontree.NewWriter(buf)
//	w.WriteBegin(ontree.Object)
//	w.WriteKey("name")
//	w.WriteString("value")
//	w.WriteEnd()
//
// Each Write method is atomic. If it reports NeedBuffer nothing was written,
// and the caller may provide a larger buffer with SetBuffer and repeat the
// same call.
//
// # Errors
//
// Errors from the Reader and the Writer are values of type ErrorKind. Callers
// that parse a complete document (see the tree package) receive a
// *SyntaxError that records where the failure occurred and unwraps to its
// ErrorKind.
package ontree
