package ast

import "swiftparse/pkg/errors"

func (*TypeIdentifier) typeNode()         {}
func (*TupleType) typeNode()              {}
func (*ArrayType) typeNode()              {}
func (*DictionaryType) typeNode()         {}
func (*FunctionType) typeNode()           {}
func (*OptionalType) typeNode()           {}
func (*ImplicitlyUnwrappedType) typeNode() {}
func (*MetatypeType) typeNode()           {}
func (*ProtocolCompositionType) typeNode() {}

// TypeIdentifierComponent is one dotted segment of a TypeIdentifier,
// e.g. the "Array" in "Swift.Array<Int>".
type TypeIdentifierComponent struct {
	Name          string
	GenericArgs   []Type // nil if this component has no generic-argument clause
	Position      errors.Position
}

// TypeIdentifier is a dotted path of name+generic-args components, the
// "primary" production for named types.
type TypeIdentifier struct {
	Components []TypeIdentifierComponent
	Position   errors.Position
}

func (t *TypeIdentifier) Pos() errors.Position { return t.Position }

// TupleType is `(element, element, ...)`, optionally variadic.
type TupleType struct {
	Elements   []TupleTypeElement
	Variadic   bool
	Position   errors.Position
}

func (t *TupleType) Pos() errors.Position { return t.Position }

// TupleTypeElement is one element of a tuple type: either anonymous
// (attributes + optional inout + type) or named (optional inout +
// element name + type annotation).
type TupleTypeElement struct {
	Attributes []*Attribute
	IsInout    bool
	Name       string // empty for an anonymous element
	HasName    bool
	ElementType Type
	Position   errors.Position
}

// ArrayType is `[T]`.
type ArrayType struct {
	Element  Type
	Position errors.Position
}

func (t *ArrayType) Pos() errors.Position { return t.Position }

// DictionaryType is `[K:V]`.
type DictionaryType struct {
	Key      Type
	Value    Type
	Position errors.Position
}

func (t *DictionaryType) Pos() errors.Position { return t.Position }

// FunctionType is `Param (throws|rethrows)? -> Result`, parsed as a
// right-associative chain so that `A -> B -> C` is `A -> (B -> C)`.
type FunctionType struct {
	Parameter Type
	Throwing  Throwing
	Result    Type
	Position  errors.Position
}

func (t *FunctionType) Pos() errors.Position { return t.Position }

// OptionalType is `T?`.
type OptionalType struct {
	Wrapped  Type
	Position errors.Position
}

func (t *OptionalType) Pos() errors.Position { return t.Position }

// ImplicitlyUnwrappedType is `T!`.
type ImplicitlyUnwrappedType struct {
	Wrapped  Type
	Position errors.Position
}

func (t *ImplicitlyUnwrappedType) Pos() errors.Position { return t.Position }

// MetatypeKind distinguishes `.Type` from `.Protocol`.
type MetatypeKind int

const (
	MetatypeType_ MetatypeKind = iota
	MetatypeProtocol
)

// MetatypeType is `T.Type` or `T.Protocol`.
type MetatypeType struct {
	Base     Type
	Kind     MetatypeKind
	Position errors.Position
}

func (t *MetatypeType) Pos() errors.Position { return t.Position }

// ProtocolCompositionType is `protocol<T1, T2, ...>`.
type ProtocolCompositionType struct {
	Members  []Type
	Position errors.Position
}

func (t *ProtocolCompositionType) Pos() errors.Position { return t.Position }

// TypeInheritanceClause is the `: T1, T2, ...` list after a nominal type
// name, optionally prefixed by `class`.
type TypeInheritanceClause struct {
	RequiresClass bool
	Types         []*TypeIdentifier
	Position      errors.Position
}

// GenericParameter is one element of a generic-parameter clause: a name
// plus an optional type-inheritance-style constraint list.
type GenericParameter struct {
	Name        string
	Constraints []*TypeIdentifier
	Position    errors.Position
}

// GenericParameterClause is `<T, U: Constraint, ...>`.
type GenericParameterClause struct {
	Parameters []GenericParameter
	Position   errors.Position
}
