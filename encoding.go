// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ontree

import (
	"go4.org/mem"

	"github.com/creachadair/ontree/internal/escape"
)

// Escape returns the escaped form of s suitable for the contents of a JSON
// string, without enclosing quotes. It reports IllFormed if s contains a
// broken UTF-8 sequence.
func Escape(s string) (string, error) {
	src := mem.S(s)
	buf := make([]byte, src.Len()+escape.Overhead(src))
	n, err := escape.Escape(buf, src)
	if err != nil {
		return "", codecError(err)
	}
	return string(buf[:n]), nil
}

// Unescape decodes the escaped contents of a JSON string, without enclosing
// quotes. It reports IllFormed for a malformed escape sequence.
func Unescape(s string) (string, error) {
	buf := make([]byte, len(s))
	n, err := UnescapeTo(buf, RangeOf(s))
	if err != nil {
		return "", err
	}
	return string(buf[:n]), nil
}

// UnescapeTo decodes the escaped string contents src into dst and reports
// the number of bytes written. A dst at least as long as src is always
// sufficient; if dst is shorter and the result does not fit, UnescapeTo
// reports NeedBuffer.
func UnescapeTo(dst []byte, src Range) (int, error) {
	n, err := escape.Unescape(dst, src.Mem())
	return n, codecError(err)
}
