// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ontree

import (
	"math"
	"strconv"

	"go4.org/mem"

	"github.com/creachadair/ontree/internal/escape"
)

// wroteValue is the writer state following a leaf value.
const wroteValue = End + 1

type countedScope struct {
	scope Scope
	count int // values written in this scope
}

// A Writer is an incremental serializer into a caller-owned buffer. Each
// Write method either emits one complete step of output, including any
// separator it requires, or reports an error and leaves the buffer and the
// writer state unchanged.
//
// If a Write method reports NeedBuffer, the caller may supply a larger window
// with SetBuffer and repeat the same call.
type Writer struct {
	buf    MutRange
	scopes [DepthLimit]countedScope
	depth  int
	last   Event
}

// NewWriter constructs a Writer that writes into buf.
func NewWriter(buf []byte) *Writer { return &Writer{buf: MakeMutRange(buf)} }

// SetBuffer replaces the output window of w with buf. The write state is not
// changed.
func (w *Writer) SetBuffer(buf MutRange) { w.buf = buf }

// Buffer returns the unwritten remainder of the output window. The number of
// bytes written into a window is its original length minus Buffer().Len().
func (w *Writer) Buffer() MutRange { return w.buf }

// Depth reports the number of currently open containers.
func (w *Writer) Depth() int { return w.depth }

// Done reports whether w has written a complete document.
func (w *Writer) Done() bool { return w.depth == 0 && w.last == ObjectEnd }

func (w *Writer) top() *countedScope { return &w.scopes[w.depth-1] }

// valueOK reports whether a value may be written in the current state.
func (w *Writer) valueOK() bool {
	if w.depth == 0 {
		return false
	} else if w.top().scope == Array {
		return true
	}
	return w.last == ObjectKey
}

// separate writes a comma to out if one is required before the next key
// (isKey) or value.
func (w *Writer) separate(out MutRange, isKey bool) (MutRange, error) {
	if w.depth == 0 || w.top().count == 0 {
		return out, nil
	} else if w.top().scope == Object && !isKey {
		return out, nil
	}
	return writeChar(out, ',')
}

// WriteBegin opens an object or array. The document root must be an object.
func (w *Writer) WriteBegin(s Scope) error {
	root := w.depth == 0 && w.last == Begin
	if root && s != Object {
		return IllFormed
	} else if !root && !w.valueOK() {
		return IllFormed
	} else if w.depth == DepthLimit {
		return TooDeep
	}
	out, err := w.separate(w.buf, false)
	if err != nil {
		return err
	}
	brace, ev := byte('{'), ObjectBegin
	if s == Array {
		brace, ev = '[', ArrayBegin
	}
	if out, err = writeChar(out, brace); err != nil {
		return err
	}
	w.buf = out
	if !root {
		w.top().count++
	}
	w.scopes[w.depth] = countedScope{scope: s}
	w.depth++
	w.last = ev
	return nil
}

// WriteEnd closes the innermost open container.
func (w *Writer) WriteEnd() error {
	if w.depth == 0 || w.last == ObjectKey {
		return IllFormed
	}
	brace, ev := byte('}'), ObjectEnd
	if w.top().scope == Array {
		brace, ev = ']', ArrayEnd
	}
	out, err := writeChar(w.buf, brace)
	if err != nil {
		return err
	}
	w.buf = out
	w.depth--
	w.last = ev
	return nil
}

// WriteKey writes a member name and the following colon. The name is
// escaped as needed.
func (w *Writer) WriteKey(name string) error { return w.writeKey(mem.S(name)) }

// WriteKeyBytes is as WriteKey, but takes the name as bytes.
func (w *Writer) WriteKeyBytes(name []byte) error { return w.writeKey(mem.B(name)) }

func (w *Writer) writeKey(name mem.RO) error {
	if w.depth == 0 || w.top().scope != Object || w.last == ObjectKey {
		return IllFormed
	}
	out, err := w.separate(w.buf, true)
	if err != nil {
		return err
	}
	if out, err = writeString(out, name); err != nil {
		return err
	}
	if out, err = writeChar(out, ':'); err != nil {
		return err
	}
	w.buf = out
	w.last = ObjectKey
	return nil
}

// WriteString writes a string value, escaping as needed.
func (w *Writer) WriteString(s string) error {
	return w.writeValue(func(out MutRange) (MutRange, error) { return writeString(out, mem.S(s)) })
}

// WriteStringBytes is as WriteString, but takes the contents as bytes.
func (w *Writer) WriteStringBytes(b []byte) error {
	return w.writeValue(func(out MutRange) (MutRange, error) { return writeString(out, mem.B(b)) })
}

// WriteNumber writes a numeric value in its shortest round-trip form.
// Infinities and NaN cannot be represented and report IllFormed.
func (w *Writer) WriteNumber(v float64) error {
	return w.writeValue(func(out MutRange) (MutRange, error) { return writeNumber(out, v) })
}

// WriteBool writes true or false.
func (w *Writer) WriteBool(v bool) error {
	word := "false"
	if v {
		word = "true"
	}
	return w.writeValue(func(out MutRange) (MutRange, error) { return writeWord(out, word) })
}

// WriteNull writes null.
func (w *Writer) WriteNull() error {
	return w.writeValue(func(out MutRange) (MutRange, error) { return writeWord(out, "null") })
}

func (w *Writer) writeValue(emit func(MutRange) (MutRange, error)) error {
	if !w.valueOK() {
		return IllFormed
	}
	out, err := w.separate(w.buf, false)
	if err != nil {
		return err
	}
	if out, err = emit(out); err != nil {
		return err
	}
	w.buf = out
	w.top().count++
	w.last = wroteValue
	return nil
}

func writeChar(out MutRange, c byte) (MutRange, error) {
	if out.Empty() {
		return out, NeedBuffer
	}
	return out.PutByte(c), nil
}

func writeWord(out MutRange, word string) (MutRange, error) {
	if out.Len() < len(word) {
		return out, NeedBuffer
	}
	return out.WriteString(word), nil
}

// writeString writes s with quotes, having first checked that the complete
// escaped form fits.
func writeString(out MutRange, s mem.RO) (MutRange, error) {
	need := s.Len() + escape.Overhead(s) + 2
	if out.Len() < need {
		return out, NeedBuffer
	}
	buf := out.Bytes()
	buf[0] = '"'
	n, err := escape.Escape(buf[1:need-1], s)
	if err != nil {
		return out, codecError(err)
	}
	buf[n+1] = '"'
	return out.Consumed(n + 2), nil
}

func writeNumber(out MutRange, v float64) (MutRange, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return out, IllFormed
	}
	var tmp [64]byte
	num := strconv.AppendFloat(tmp[:0], v, 'g', -1, 64)
	if out.Len() < len(num) {
		return out, NeedBuffer
	}
	return out.Write(num), nil
}
