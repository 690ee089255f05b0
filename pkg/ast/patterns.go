package ast

import "swiftparse/pkg/errors"

func (*WildcardPattern) patternNode()     {}
func (*IdentifierPattern) patternNode()   {}
func (*OptionalPattern) patternNode()     {}
func (*TuplePattern) patternNode()        {}
func (*ValueBindingPattern) patternNode() {}
func (*IsPattern) patternNode()           {}
func (*AsPattern) patternNode()           {}
func (*ExpressionPattern) patternNode()   {}
func (*EnumCasePattern) patternNode()     {}

// WildcardPattern is `_`, with an optional type annotation.
type WildcardPattern struct {
	TypeAnnotation Type
	Position       errors.Position
}

func (p *WildcardPattern) Pos() errors.Position { return p.Position }

// IdentifierPattern binds a name, with an optional type annotation.
type IdentifierPattern struct {
	Name           string
	TypeAnnotation Type
	Position       errors.Position
}

func (p *IdentifierPattern) Pos() errors.Position { return p.Position }

// OptionalPattern is `pattern?`.
type OptionalPattern struct {
	Wrapped  Pattern
	Position errors.Position
}

func (p *OptionalPattern) Pos() errors.Position { return p.Position }

// TuplePattern is `(p, p, ...)`, with an optional type annotation.
type TuplePattern struct {
	Elements       []Pattern
	TypeAnnotation Type
	Position       errors.Position
}

func (p *TuplePattern) Pos() errors.Position { return p.Position }

// ValueBindingPattern is `var pattern` or `let pattern`.
type ValueBindingPattern struct {
	IsVar    bool // false means `let`
	Wrapped  Pattern
	Position errors.Position
}

func (p *ValueBindingPattern) Pos() errors.Position { return p.Position }

// IsPattern is `is T` — matches any value of dynamic type T.
type IsPattern struct {
	CheckedType Type
	Position    errors.Position
}

func (p *IsPattern) Pos() errors.Position { return p.Position }

// AsPattern is `pattern as T`.
type AsPattern struct {
	Wrapped  Pattern
	AsType   Type
	Position errors.Position
}

func (p *AsPattern) Pos() errors.Position { return p.Position }

// ExpressionPattern wraps an arbitrary expression used as a pattern
// (matched by `~=`-style value equality at a later stage; this layer
// only records surface syntax).
type ExpressionPattern struct {
	Value    Expression
	Position errors.Position
}

func (p *ExpressionPattern) Pos() errors.Position { return p.Position }

// EnumCasePattern is `.caseName` or `.caseName(pattern, ...)`, the
// missing production named in Open Question 1: it matches a specific
// enum case, optionally destructuring its payload tuple.
type EnumCasePattern struct {
	EnumTypeName string // empty when the case is referenced bare, e.g. `.some(x)`
	CaseName     string
	Payload      []Pattern // nil if the case has no associated payload pattern
	Position     errors.Position
}

func (p *EnumCasePattern) Pos() errors.Position { return p.Position }
