// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles escaping and unescaping of JSON string contents.
//
// Both directions write into a caller-provided destination of fixed size and
// never allocate. Multi-byte UTF-8 sequences are passed through unchanged.
package escape

import (
	"errors"
	"unicode/utf8"

	"go4.org/mem"
)

var (
	// ErrNeedBuffer is reported when the destination is too small to hold
	// the complete result.
	ErrNeedBuffer = errors.New("destination buffer too small")

	// ErrIllFormed is reported for a malformed escape sequence or a broken
	// UTF-8 lead byte.
	ErrIllFormed = errors.New("ill-formed string")
)

// controlEsc maps control bytes to their short escape letter, or 0 if the
// byte must be written as \u00XX.
var controlEsc = [' ']byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

var hexDigit = []byte("0123456789abcdef")

// CharSize reports the length in bytes of the UTF-8 sequence introduced by
// the lead byte b, judged by its high bits alone. It returns 0 for a
// continuation byte, which cannot start a sequence.
func CharSize(b byte) int {
	switch {
	case b&0xf0 == 0xf0:
		return 4
	case b&0xe0 == 0xe0:
		return 3
	case b&0xc0 == 0xc0:
		return 2
	case b&0x80 == 0x80:
		return 0
	default:
		return 1
	}
}

// Overhead reports the number of bytes that escaping src adds beyond its
// own length. Escape(dst, src) succeeds iff len(dst) >= src.Len()+Overhead(src),
// provided src is well-formed.
func Overhead(src mem.RO) int {
	var n int
	for i := 0; i < src.Len(); {
		b := src.At(i)
		switch {
		case b == '"' || b == '\\' || b == '/':
			n++
		case b < ' ':
			if controlEsc[b] != 0 {
				n++
			} else {
				n += 5
			}
		}
		i += max(CharSize(b), 1)
	}
	return n
}

// Escape writes the escaped form of src into dst and reports the number of
// bytes written. It reports ErrNeedBuffer if dst is too small, or
// ErrIllFormed if src contains a broken or truncated UTF-8 sequence.
func Escape(dst []byte, src mem.RO) (int, error) {
	var p int
	put := func(bs ...byte) bool {
		if len(dst)-p < len(bs) {
			return false
		}
		p += copy(dst[p:], bs)
		return true
	}
	for i := 0; i < src.Len(); {
		b := src.At(i)
		var ok bool
		switch {
		case b == '"' || b == '\\' || b == '/':
			ok = put('\\', b)
		case b < ' ':
			if e := controlEsc[b]; e != 0 {
				ok = put('\\', e)
			} else {
				ok = put('\\', 'u', '0', '0', hexDigit[b>>4], hexDigit[b&15])
			}
		default:
			n := CharSize(b)
			if n == 0 || src.Len()-i < n {
				return p, ErrIllFormed
			} else if len(dst)-p < n {
				return p, ErrNeedBuffer
			}
			p += src.Slice(i, i+n).Copy(dst[p : p+n])
			i += n
			continue
		}
		if !ok {
			return p, ErrNeedBuffer
		}
		i++
	}
	return p, nil
}

// Unescape decodes the escaped JSON string contents in src (without the
// enclosing quotation marks) into dst, and reports the number of bytes
// written. The decoded form is never longer than src.
//
// A \uXXXX escape is encoded as UTF-8. A surrogate pair written as two
// consecutive escapes is joined; an unpaired surrogate decodes as the Unicode
// replacement rune.
func Unescape(dst []byte, src mem.RO) (int, error) {
	var p int
	for src.Len() != 0 {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			i = src.Len()
		}
		if len(dst)-p < i {
			return p, ErrNeedBuffer
		}
		p += src.SliceTo(i).Copy(dst[p:])
		src = src.SliceFrom(i)
		if src.Len() == 0 {
			break
		}

		// src begins with an escape.
		if src.Len() < 2 {
			return p, ErrIllFormed
		}
		if len(dst)-p < 1 {
			return p, ErrNeedBuffer
		}
		switch c := src.At(1); c {
		case '"', '\\', '/':
			dst[p] = c
		case 'b':
			dst[p] = '\b'
		case 'f':
			dst[p] = '\f'
		case 'n':
			dst[p] = '\n'
		case 'r':
			dst[p] = '\r'
		case 't':
			dst[p] = '\t'
		case 'u':
			r, n, err := decodeU(src)
			if err != nil {
				return p, err
			}
			if len(dst)-p < utf8.RuneLen(r) {
				return p, ErrNeedBuffer
			}
			p += utf8.EncodeRune(dst[p:], r)
			src = src.SliceFrom(n)
			continue
		default:
			return p, ErrIllFormed
		}
		p++
		src = src.SliceFrom(2)
	}
	return p, nil
}

// decodeU decodes the \uXXXX escape at the front of src, joining it with a
// following low surrogate escape if it is a high surrogate. It returns the
// decoded rune and the number of bytes of src consumed.
func decodeU(src mem.RO) (rune, int, error) {
	if src.Len() < 6 {
		return 0, 0, ErrIllFormed
	}
	v, ok := parseHex(src.Slice(2, 6))
	if !ok {
		return 0, 0, ErrIllFormed
	}
	r := rune(v)
	if !isHighSurrogate(r) {
		if isLowSurrogate(r) {
			return utf8.RuneError, 6, nil
		}
		return r, 6, nil
	}
	if src.Len() >= 12 && src.At(6) == '\\' && src.At(7) == 'u' {
		if w, ok := parseHex(src.Slice(8, 12)); ok && isLowSurrogate(rune(w)) {
			return 0x10000 + (r-0xd800)<<10 + (rune(w) - 0xdc00), 12, nil
		}
	}
	return utf8.RuneError, 6, nil
}

func isHighSurrogate(r rune) bool { return 0xd800 <= r && r < 0xdc00 }
func isLowSurrogate(r rune) bool  { return 0xdc00 <= r && r < 0xe000 }

// IsHexDigit reports whether b is an ASCII hexadecimal digit.
func IsHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

func parseHex(data mem.RO) (uint16, bool) {
	var v uint16
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += uint16(b - '0')
		case 'a' <= b && b <= 'f':
			v += uint16(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += uint16(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
