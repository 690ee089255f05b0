package ast

import "swiftparse/pkg/errors"

// Literal is one of the four literal kinds named in the data model.
type Literal interface {
	Node
	literalNode()
}

func (*NumericLiteral) literalNode() {}
func (*BooleanLiteral) literalNode() {}
func (*NilLiteral) literalNode()     {}
func (*StringLiteral) literalNode()  {}

// NumericLiteral preserves the exact recognized text, radix and digit
// separators included, per the invariant that the stored form matches
// the literal's source text exactly.
type NumericLiteral struct {
	Text     string
	Position errors.Position
}

func (l *NumericLiteral) Pos() errors.Position { return l.Position }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Value    bool
	Position errors.Position
}

func (l *BooleanLiteral) Pos() errors.Position { return l.Position }

// NilLiteral is `nil`.
type NilLiteral struct {
	Position errors.Position
}

func (l *NilLiteral) Pos() errors.Position { return l.Position }

// StringChunk is one element of a StringLiteral's segment list: either
// a literal text run, or an embedded expression parsed from a `\(...)`
// interpolation span.
type StringChunk struct {
	Text      string
	IsExpr    bool
	ExprValue Expression
}

// StringLiteral is static when it has no interpolation, otherwise
// interpolated. Chunks preserve source order of text runs and embedded
// expressions.
type StringLiteral struct {
	Chunks   []StringChunk
	Position errors.Position
}

func (l *StringLiteral) Pos() errors.Position           { return l.Position }
func (l *StringLiteral) IsInterpolated() bool {
	for _, c := range l.Chunks {
		if c.IsExpr {
			return true
		}
	}
	return false
}
