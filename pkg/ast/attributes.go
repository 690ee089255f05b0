package ast

import "swiftparse/pkg/errors"

// Throwing resolves Open Question 4: rather than carrying the throws/
// rethrows marker as a free string, function types, function
// declarations, and initializers carry one of these three states.
type Throwing int

const (
	ThrowsNone Throwing = iota
	ThrowsKind
	RethrowsKind
)

// Attribute is `@name` with an optional parenthesized argument string
// whose exact surface text (including internal whitespace) is preserved
// verbatim, since bracket-balance is the only thing the grammar layer
// validates about an attribute's arguments.
type Attribute struct {
	Name      string
	Arguments string // raw balanced-token text, empty if no parenthesized argument list
	HasArgs   bool
	Position  errors.Position
}

func (a *Attribute) Pos() errors.Position { return a.Position }

// Modifier is a declaration modifier keyword (mutating, static, final,
// and the rest of the contextual-keyword family used in that role).
type Modifier struct {
	Name     string
	Position errors.Position
}

func (m *Modifier) Pos() errors.Position { return m.Position }
