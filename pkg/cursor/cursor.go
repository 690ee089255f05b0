// Package cursor implements the source cursor: the lowest layer of the
// parser, wrapping the input text and tracking offset/line/column with
// O(1) checkpoint and restore for bounded backtracking. It never mutates
// the input buffer and never looks at what the characters mean — that is
// the lexer's job.
package cursor

import "unicode/utf8"

// Checkpoint is an opaque, by-value snapshot of cursor state. Restoring
// a Checkpoint is a no-op if nothing has advanced since it was taken.
type Checkpoint struct {
	offset int
	line   int
	column int
}

// NewCheckpoint builds a Checkpoint directly from its coordinates. This
// is used to reconstruct a position partway through a multi-character
// token (splitting a leading '<' or '>' off a longer operator run) when
// the caller already knows the byte offset, line, and column of the
// split point without re-walking the input.
func NewCheckpoint(offset, line, column int) Checkpoint {
	return Checkpoint{offset: offset, line: line, column: column}
}

// Offset returns the 0-based byte offset a checkpoint refers to.
func (cp Checkpoint) Offset() int { return cp.offset }

// Line returns the 1-based line number a checkpoint refers to.
func (cp Checkpoint) Line() int { return cp.line }

// Column returns the 1-based column a checkpoint refers to.
func (cp Checkpoint) Column() int { return cp.column }

// Cursor walks a UTF-8 string one rune at a time.
type Cursor struct {
	input  string
	offset int // byte offset of the next unread rune
	line   int // 1-based
	column int // 1-based, rune index within the current line
}

// New creates a Cursor positioned at the start of input.
func New(input string) *Cursor {
	return &Cursor{input: input, line: 1, column: 1}
}

// Peek returns the rune at the current offset without consuming it, and
// false if the cursor is at end of input.
func (c *Cursor) Peek() (rune, bool) {
	if c.offset >= len(c.input) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.input[c.offset:])
	return r, true
}

// PeekAt returns the rune n runes ahead of the current offset (PeekAt(0)
// is equivalent to Peek), without consuming anything.
func (c *Cursor) PeekAt(n int) (rune, bool) {
	off := c.offset
	var r rune
	for i := 0; i <= n; i++ {
		if off >= len(c.input) {
			return 0, false
		}
		var size int
		r, size = utf8.DecodeRuneInString(c.input[off:])
		off += size
	}
	return r, true
}

// Advance consumes and returns the rune at the current offset.
func (c *Cursor) Advance() (rune, bool) {
	if c.offset >= len(c.input) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(c.input[c.offset:])
	c.offset += size
	if r == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	return r, true
}

// AtEnd reports whether the cursor has consumed the whole input.
func (c *Cursor) AtEnd() bool {
	return c.offset >= len(c.input)
}

// Save returns an opaque checkpoint of the current position. Save is
// O(1) and does not allocate on the heap in the common case.
func (c *Cursor) Save() Checkpoint {
	return Checkpoint{offset: c.offset, line: c.line, column: c.column}
}

// Restore rewinds the cursor to a previously saved checkpoint. It is a
// no-op if the checkpoint equals the current position.
func (c *Cursor) Restore(cp Checkpoint) {
	c.offset = cp.offset
	c.line = cp.line
	c.column = cp.column
}

// Offset returns the current 0-based byte offset.
func (c *Cursor) Offset() int { return c.offset }

// Line returns the current 1-based line number.
func (c *Cursor) Line() int { return c.line }

// Column returns the current 1-based column (rune index within the line).
func (c *Cursor) Column() int { return c.column }

// Input returns the full input string the cursor walks.
func (c *Cursor) Input() string { return c.input }
