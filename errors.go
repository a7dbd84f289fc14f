// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ontree

import (
	"fmt"

	"github.com/creachadair/ontree/internal/escape"
)

// ErrorKind is the type of errors reported by the engine. The zero value is
// not a valid error; success is reported as a nil error.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	// NeedBuffer means the input is valid so far, but the buffer ended before
	// the current production was complete, or an output buffer is too small.
	// The caller may supply more space and retry the same call.
	NeedBuffer ErrorKind = iota + 1

	// IllFormed means the input violates the grammar, or a call sequence is
	// not legal for the current state. It is not recoverable.
	IllFormed

	// TooDeep means objects and arrays are nested beyond DepthLimit.
	TooDeep

	// NotFound means a path lookup could not be applied to a node.
	NotFound

	// Unexpected means an internal invariant was violated. It indicates a
	// defect rather than a problem with the input.
	Unexpected
)

var errorStr = [...]string{
	0:          "ok",
	NeedBuffer: "need more buffer",
	IllFormed:  "ill-formed input",
	TooDeep:    "nesting too deep",
	NotFound:   "not found",
	Unexpected: "unexpected state",
}

// Error satisfies the error interface.
func (e ErrorKind) Error() string {
	if int(e) >= len(errorStr) {
		return errorStr[Unexpected]
	}
	return errorStr[e]
}

// DepthLimit is the maximum nesting depth of objects and arrays supported by
// the Reader and the Writer.
const DepthLimit = 32

// SyntaxError is the concrete type of errors reported when parsing a complete
// document fails. It unwraps to its ErrorKind, so errors.Is may be used to
// test for a specific kind.
type SyntaxError struct {
	Kind     ErrorKind
	Offset   int     // byte offset where the failed production began
	Location LineCol // line and column of Offset
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s (offset %d): %v", s.Location, s.Offset, s.Kind)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.Kind }

// codecError maps an error from the escape codec to an ErrorKind.
func codecError(err error) error {
	switch err {
	case nil:
		return nil
	case escape.ErrNeedBuffer:
		return NeedBuffer
	case escape.ErrIllFormed:
		return IllFormed
	default:
		return Unexpected
	}
}
