package parser

import "unicode/utf8"

import (
	"swiftparse/pkg/cursor"
	"swiftparse/pkg/errors"
)

// utf8DecodeFirst decodes the first rune of s and its byte size.
func utf8DecodeFirst(s string) (rune, int) {
	r, size := utf8.DecodeRuneInString(s)
	return r, size
}

// cursorNewCheckpointAfter builds the checkpoint immediately following
// the first size bytes of the token starting at pos. Every caller of
// this helper splits off a single ASCII operator character ('<', '>',
// '?' or '!'), which is never a newline, so advancing the column by one and
// leaving the line unchanged is always correct.
func cursorNewCheckpointAfter(pos errors.Position, size int) cursor.Checkpoint {
	return cursor.NewCheckpoint(pos.StartPos+size, pos.Line, pos.Column+1)
}
