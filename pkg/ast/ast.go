// Package ast defines the closed family of tagged variants the grammar
// layer builds: one Go type per production named in the data model, pure
// data with no behavior beyond reporting its own source position. Trees
// are acyclic and every node is owned exclusively by its parent; nothing
// here mutates after construction.
package ast

import "swiftparse/pkg/errors"

// Node is the root interface every AST value implements.
type Node interface {
	Pos() errors.Position
}

// Statement is one top-level-or-nested statement production.
type Statement interface {
	Node
	statementNode()
}

// Declaration is one declaration production.
type Declaration interface {
	Node
	declarationNode()
}

// Expression is one expression production.
type Expression interface {
	Node
	expressionNode()
}

// Pattern is one pattern production.
type Pattern interface {
	Node
	patternNode()
}

// Type is one type production.
type Type interface {
	Node
	typeNode()
}

// Module is the root of a parsed file: an ordered sequence of top-level
// statements (Swift has no separate top-level declaration list — a
// DeclarationStatement wraps a Declaration wherever one appears at
// module scope, matching the reference grammar's top-level-code rule).
type Module struct {
	Statements []Statement
	Position   errors.Position
}

func (m *Module) Pos() errors.Position { return m.Position }
