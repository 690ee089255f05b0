package errors

import "swiftparse/pkg/source"

// Position represents a specific location in the source code. Line and
// Column are 1-based (Column is a rune index within the line); StartPos
// and EndPos are 0-based byte offsets of the span's start and exclusive
// end.
type Position struct {
	Line     int
	Column   int
	StartPos int
	EndPos   int
	Source   *source.File
}
