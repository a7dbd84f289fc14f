// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ontree

import (
	"errors"
	"strconv"

	"go4.org/mem"

	"github.com/creachadair/ontree/internal/escape"
)

// A Reader is an incremental pull parser over a caller-owned buffer. Each
// call to Read consumes exactly one structural event from the head of the
// buffer, or reports an error and leaves the buffer and the reader state
// unchanged.
//
// If Read reports NeedBuffer, the input seen so far is valid but the buffer
// ended before the current production was complete. The caller may then
// supply a buffer containing the unconsumed bytes plus more input (see
// Extend) and call Read again.
//
// The zero value is ready for use once SetBuffer has been called.
type Reader struct {
	buf    Range
	scopes [DepthLimit]Scope
	depth  int
	last   Event
	pos    int // bytes consumed since the reader was created

	str  Range // raw (escaped) contents of the last key or string
	num  float64
	pred bool
}

// NewReader constructs a Reader positioned at the start of input.
func NewReader(input []byte) *Reader { return &Reader{buf: MakeRange(input)} }

// SetBuffer replaces the unconsumed input of r with buf. The parse state is
// not changed.
func (r *Reader) SetBuffer(buf Range) { r.buf = buf }

// Extend replaces the unconsumed input of r with the concatenation of the
// remaining bytes and more. This is the usual way to resume after Read
// reports NeedBuffer.
func (r *Reader) Extend(more []byte) {
	next := make([]byte, 0, r.buf.Len()+len(more))
	next = append(r.buf.Append(next), more...)
	r.buf = MakeRange(next)
}

// Buffer returns the unconsumed input of r.
func (r *Reader) Buffer() Range { return r.buf }

// Last returns the most recent event read, or Begin if none.
func (r *Reader) Last() Event { return r.last }

// Depth reports the number of currently open containers.
func (r *Reader) Depth() int { return r.depth }

// Offset reports the number of bytes consumed since r was created.
func (r *Reader) Offset() int { return r.pos }

// RawString returns the raw escaped contents of the most recent ObjectKey or
// String event, without the enclosing quotes. The result aliases the input
// buffer, and is only meaningful after one of those events.
func (r *Reader) RawString() Range { return r.str }

// Number returns the value of the most recent Number event.
func (r *Reader) Number() float64 { return r.num }

// Predicate returns the value of the most recent Boolean event.
func (r *Reader) Predicate() bool { return r.pred }

// Read consumes the next event from the buffer. On success it returns nil
// and Last reports the event. At the end of a document Last reports End.
func (r *Reader) Read() error {
	switch r.last {
	case Begin:
		return r.readBegin(r.buf, ObjectBegin)
	case ObjectBegin:
		return r.readFirstKeyOrEnd()
	case ObjectKey:
		return r.readValue(r.buf)
	case ArrayBegin:
		return r.readFirstValueOrEnd()
	case ObjectEnd, ArrayEnd, Number, String, Boolean, Null:
		if r.depth == 0 {
			r.last = End
			return nil
		}
		if r.scopes[r.depth-1] == Object {
			return r.readNextKeyOrEnd()
		}
		return r.readNextValueOrEnd()
	}
	return Unexpected
}

// commit makes rest the unconsumed input and records ev.
func (r *Reader) commit(rest Range, ev Event) {
	r.pos += r.buf.Len() - rest.Len()
	r.buf = rest
	r.last = ev
}

func (r *Reader) readBegin(from Range, ev Event) error {
	brace, scope := byte('{'), Object
	if ev == ArrayBegin {
		brace, scope = '[', Array
	}
	rest, err := readChar(skipSpace(from), brace)
	if err != nil {
		return err
	} else if r.depth == DepthLimit {
		return TooDeep
	}
	r.commit(skipSpace(rest), ev)
	r.scopes[r.depth] = scope
	r.depth++
	return nil
}

func (r *Reader) readEnd(from Range, ev Event) error {
	brace := byte('}')
	if ev == ArrayEnd {
		brace = ']'
	}
	rest, err := readChar(skipSpace(from), brace)
	if err != nil {
		return err
	} else if r.depth == 0 {
		return Unexpected
	}
	r.commit(skipSpace(rest), ev)
	r.depth--
	return nil
}

func (r *Reader) readKey(from Range) error {
	rest, key, err := readString(from)
	if err != nil {
		return err
	}
	rest, err = readChar(rest, ':')
	if err != nil {
		return err
	}
	r.str = key
	r.commit(skipSpace(rest), ObjectKey)
	return nil
}

func (r *Reader) readFirstKeyOrEnd() error {
	if err := r.readKey(r.buf); err != IllFormed {
		return err
	}
	return r.readEnd(r.buf, ObjectEnd)
}

func (r *Reader) readNextKeyOrEnd() error {
	if rest, err := readValueSeparator(r.buf); err == nil {
		return r.readKey(rest)
	}
	return r.readEnd(r.buf, ObjectEnd)
}

func (r *Reader) readFirstValueOrEnd() error {
	if err := r.readValue(r.buf); err != IllFormed {
		return err
	}
	return r.readEnd(r.buf, ArrayEnd)
}

func (r *Reader) readNextValueOrEnd() error {
	if rest, err := readValueSeparator(r.buf); err == nil {
		return r.readValue(rest)
	}
	return r.readEnd(r.buf, ArrayEnd)
}

// readValue tries each value production in turn. A production that fails
// with anything other than IllFormed ends the search, so that a truncated
// value reports NeedBuffer rather than falling through to the next form.
func (r *Reader) readValue(from Range) error {
	in := skipSpace(from)

	if rest, s, err := readString(in); err != IllFormed {
		if err == nil {
			r.str = s
			r.commit(rest, String)
		}
		return err
	}
	if rest, v, err := readNumber(in); err != IllFormed {
		if err == nil {
			r.num = v
			r.commit(skipSpace(rest), Number)
		}
		return err
	}
	if rest, v, err := readPredicate(in); err != IllFormed {
		if err == nil {
			r.pred = v
			r.commit(skipSpace(rest), Boolean)
		}
		return err
	}
	if rest, err := readWord(in, "null"); err != IllFormed {
		if err == nil {
			r.commit(skipSpace(rest), Null)
		}
		return err
	}
	if err := r.readBegin(in, ObjectBegin); err != IllFormed {
		return err
	}
	return r.readBegin(in, ArrayBegin)
}

// The scanners below are pure functions of their input. Each returns the
// input remaining after the production it recognizes.

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v'
}

func skipSpace(in Range) Range {
	i := 0
	for i < in.Len() && isSpace(in.At(i)) {
		i++
	}
	return in.Consumed(i)
}

func readChar(in Range, c byte) (Range, error) {
	if in.Empty() {
		return in, NeedBuffer
	} else if in.At(0) != c {
		return in, IllFormed
	}
	return in.Consumed(1), nil
}

// readWord matches the literal w at the head of in. A proper prefix of w
// that reaches the end of in reports NeedBuffer.
func readWord(in Range, w string) (Range, error) {
	for i := 0; i < len(w); i++ {
		if i == in.Len() {
			return in, NeedBuffer
		} else if in.At(i) != w[i] {
			return in, IllFormed
		}
	}
	return in.Consumed(len(w)), nil
}

func readValueSeparator(in Range) (Range, error) {
	rest, err := readChar(skipSpace(in), ',')
	if err != nil {
		return in, err
	}
	return skipSpace(rest), nil
}

func readHexDigits(in Range, n int) (Range, error) {
	for i := 0; i < n; i++ {
		if i == in.Len() {
			return in, NeedBuffer
		} else if !escape.IsHexDigit(in.At(i)) {
			return in, IllFormed
		}
	}
	return in.Consumed(n), nil
}

// readString matches a quoted string at the head of in, after optional
// whitespace. It returns the input following the closing quote and any
// trailing whitespace, and the raw contents between the quotes.
func readString(in Range) (rest, str Range, _ error) {
	in, err := readChar(skipSpace(in), '"')
	if err != nil {
		return in, str, err
	}
	for i := 0; i < in.Len(); {
		switch b := in.At(i); b {
		case '"':
			return skipSpace(in.Consumed(i + 1)), in.Prefix(i), nil
		case '\\':
			if i+1 == in.Len() {
				return in, str, NeedBuffer
			}
			switch in.At(i + 1) {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i += 2
			case 'u':
				if _, err := readHexDigits(in.Consumed(i+2), 4); err != nil {
					return in, str, err
				}
				i += 6
			default:
				return in, str, IllFormed
			}
		default:
			n := escape.CharSize(b)
			if n == 0 {
				return in, str, IllFormed
			} else if i+n > in.Len() {
				return in, str, NeedBuffer
			}
			i += n
		}
	}
	return in, str, NeedBuffer // unterminated
}

// maxNumberLen bounds the length of a numeric literal.
const maxNumberLen = 31

// readNumber matches a number at the head of in, after optional whitespace.
// At most maxNumberLen bytes are examined; the longest numeric prefix of
// those is parsed.
func readNumber(in Range) (Range, float64, error) {
	in = skipSpace(in)
	if in.Empty() {
		return in, 0, NeedBuffer
	} else if c := in.At(0); c != '-' && !isDigit(c) {
		return in, 0, IllFormed
	}
	var buf [maxNumberLen]byte
	k := in.Mem().SliceTo(min(in.Len(), maxNumberLen)).Copy(buf[:])
	n := scanNumber(buf[:k])
	if n == 0 {
		return in, 0, IllFormed
	}
	v, err := mem.ParseFloat(mem.B(buf[:n]), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return in, 0, IllFormed
	}
	return in.Consumed(n), v, nil
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func countDigits(b []byte) int {
	i := 0
	for i < len(b) && isDigit(b[i]) {
		i++
	}
	return i
}

// scanNumber reports the length of the longest prefix of b that is a decimal
// number with optional sign, fraction, and exponent, or 0 if there is none.
func scanNumber(b []byte) int {
	i := 0
	if i < len(b) && b[i] == '-' {
		i++
	}
	mant := countDigits(b[i:])
	i += mant
	if i < len(b) && b[i] == '.' {
		if f := countDigits(b[i+1:]); mant > 0 || f > 0 {
			i += 1 + f
			mant += f
		}
	}
	if mant == 0 {
		return 0
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		j := i + 1
		if j < len(b) && (b[j] == '+' || b[j] == '-') {
			j++
		}
		if e := countDigits(b[j:]); e > 0 {
			i = j + e
		}
	}
	return i
}

func readPredicate(in Range) (Range, bool, error) {
	if rest, err := readWord(in, "true"); err != IllFormed {
		return rest, err == nil, err
	}
	rest, err := readWord(in, "false")
	return rest, false, err
}
