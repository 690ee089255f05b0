package ast

import "swiftparse/pkg/errors"

// CaptureSpecifier is the optional storage qualifier on a closure
// capture-list entry.
type CaptureSpecifier int

const (
	CaptureNone CaptureSpecifier = iota
	CaptureWeak
	CaptureUnowned
	CaptureUnownedSafe
	CaptureUnownedUnsafe
)

// Capture is one entry of a closure's capture list.
type Capture struct {
	Specifier CaptureSpecifier
	Value     Expression
	Position  errors.Position
}

// ClosureParameter is one parameter of a closure's explicit parameter
// clause, reusing the function-parameter shape (name plus optional type
// annotation; closures never carry argument labels or defaults).
type ClosureParameter struct {
	Name           string
	TypeAnnotation Type // nil when the parameter list is untyped
	Position       errors.Position
}

// ClosureSignature is the optional `[captures] params -> Result in`
// prelude. Exactly one of Parameters or IdentifierList is meaningful
// when HasParameterClause/HasIdentifierList is set; a signature may also
// consist of a capture list alone.
type ClosureSignature struct {
	Captures            []Capture
	HasParameterClause  bool
	Parameters          []ClosureParameter
	HasIdentifierList   bool
	IdentifierList      []string
	ResultType          Type // nil if no result type was written
	Position            errors.Position
}

// ClosureExpression is `{ [signature in] statements }`.
type ClosureExpression struct {
	Signature  *ClosureSignature // nil if the closure has no signature at all
	Statements []Statement
	Position   errors.Position
}

func (e *ClosureExpression) Pos() errors.Position { return e.Position }
