package ontree

import (
	"bytes"
	"fmt"
)

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// Locate reports the line and column of the given byte offset in input.
// Offsets outside input are clamped to its bounds.
func Locate(input []byte, offset int) LineCol {
	offset = min(max(offset, 0), len(input))
	pre := input[:offset]
	line := bytes.Count(pre, []byte{'\n'})
	col := offset - (bytes.LastIndexByte(pre, '\n') + 1)
	return LineCol{Line: line + 1, Column: col}
}
