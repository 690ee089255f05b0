package ast

import "swiftparse/pkg/errors"

func (*ImportDeclaration) declarationNode()      {}
func (*ConstantDeclaration) declarationNode()    {}
func (*VariableDeclaration) declarationNode()    {}
func (*TypeAliasDeclaration) declarationNode()   {}
func (*FunctionDeclaration) declarationNode()    {}
func (*EnumDeclaration) declarationNode()        {}
func (*StructDeclaration) declarationNode()      {}
func (*ClassDeclaration) declarationNode()       {}
func (*ProtocolDeclaration) declarationNode()    {}
func (*InitializerDeclaration) declarationNode() {}
func (*DeinitializerDeclaration) declarationNode() {}
func (*ExtensionDeclaration) declarationNode()   {}
func (*SubscriptDeclaration) declarationNode()   {}
func (*OperatorDeclaration) declarationNode()    {}

// DeclarationHead carries the attributes and modifiers common to every
// declaration form.
type DeclarationHead struct {
	Attributes []*Attribute
	Modifiers  []*Modifier
}

// ImportDeclaration is `import Kind? Path.Components`.
type ImportDeclaration struct {
	DeclarationHead
	Kind       string // empty, or one of typealias/struct/class/enum/protocol/var/func
	Path       []string
	Position   errors.Position
}

func (d *ImportDeclaration) Pos() errors.Position { return d.Position }

// PatternInitializer is one `pattern = expr?` element of a `let`/`var`
// declaration's comma-separated list.
type PatternInitializer struct {
	Pattern     Pattern
	Initializer Expression // nil if omitted
	Position    errors.Position
}

// ConstantDeclaration is `let pattern-initializer-list`.
type ConstantDeclaration struct {
	DeclarationHead
	Initializers []PatternInitializer
	Position     errors.Position
}

func (d *ConstantDeclaration) Pos() errors.Position { return d.Position }

// VariableKind distinguishes the four `var` declaration shapes the
// design names.
type VariableKind int

const (
	VarPatternInitializerList VariableKind = iota
	VarStoredWithType
	VarComputed
	VarObserved
)

// GetterSetterBlock is the code-block form of a computed property's
// accessors: `{ get-body }` or `{ get-body set(name)? set-body }`.
type GetterSetterBlock struct {
	GetterBody     *Block
	HasSetter      bool
	SetterName     string
	HasSetterName  bool
	SetterBody     *Block
	Position       errors.Position
}

// GetterSetterKeywordBlock resolves Open Question 2: the protocol-style
// accessor requirement list `{ get }` / `{ get set }`, syntactically
// distinct from a GetterSetterBlock because it names no bodies at all.
type GetterSetterKeywordBlock struct {
	HasGetter bool
	HasSetter bool
	Position  errors.Position
}

// ObservedBlock is a stored property's `willSet`/`didSet` observer pair.
type ObservedBlock struct {
	HasWillSet    bool
	WillSetName   string
	HasWillSetName bool
	WillSetBody   *Block
	HasDidSet     bool
	DidSetName    string
	HasDidSetName bool
	DidSetBody    *Block
	Position      errors.Position
}

// VariableDeclaration is a `var` declaration in one of its four shapes.
// Kind selects which of the trailing fields is populated.
type VariableDeclaration struct {
	DeclarationHead
	Kind VariableKind

	// VarPatternInitializerList
	Initializers []PatternInitializer

	// VarStoredWithType / VarComputed / VarObserved share a single name
	// and type annotation.
	Name           string
	TypeAnnotation Type

	// VarComputed
	Getters *GetterSetterBlock
	KeywordGetters *GetterSetterKeywordBlock

	// VarObserved
	Initializer Expression // nil if omitted
	Observers   *ObservedBlock

	Position errors.Position
}

func (d *VariableDeclaration) Pos() errors.Position { return d.Position }

// TypeAliasDeclaration is `typealias Name = Type`.
type TypeAliasDeclaration struct {
	DeclarationHead
	Name     string
	Assigned Type
	Position errors.Position
}

func (d *TypeAliasDeclaration) Pos() errors.Position { return d.Position }

// ParameterModifier is the optional `inout`/`var`/`let` qualifier on a
// function parameter (inout is matched positionally, see the parser's
// expectIdentText).
type ParameterModifier int

const (
	ParamPlain ParameterModifier = iota
	ParamInout
	ParamVar
	ParamLet
)

// Parameter is one element of a function parameter clause: an optional
// external name, a local name, a type annotation, an optional default,
// and the in-out/var/let modifier.
type Parameter struct {
	ExternalName   string
	HasExternalName bool
	LocalName      string
	Modifier       ParameterModifier
	TypeAnnotation Type
	Default        Expression // nil if omitted
	Variadic       bool
	Position       errors.Position
}

// ParameterClause is one `(p, p, ...)` curried clause of a function.
type ParameterClause struct {
	Parameters []Parameter
	Position   errors.Position
}

// FunctionName is either a plain identifier or an operator name written
// in function-declaration position (`func +(lhs: T, rhs: T) -> T`).
type FunctionName struct {
	Name       string
	IsOperator bool
}

// FunctionDeclaration is `func name<generics>(clause)(clause)* throws? -> Result? { body }?`.
type FunctionDeclaration struct {
	DeclarationHead
	Name     FunctionName
	Generics *GenericParameterClause // nil if absent
	Clauses  []ParameterClause
	Throwing Throwing
	Result   Type // nil if omitted
	Body     *Block // nil for a protocol requirement
	Position errors.Position
}

func (d *FunctionDeclaration) Pos() errors.Position { return d.Position }

// EnumCase is one case of a union-style enum: a name plus an optional
// payload tuple type.
type EnumCase struct {
	Name     string
	Payload  *TupleType // nil if the case has no associated values
	Position errors.Position
}

// EnumCaseList is one `case a, b(T), c` clause (cases share the clause's
// leading `case` keyword).
type EnumCaseList struct {
	Cases    []EnumCase
	Position errors.Position
}

// RawValueCase is one case of a raw-value-style enum: a name plus an
// optional literal assignment.
type RawValueCase struct {
	Name       string
	RawValue   Literal // nil if omitted (auto-incremented at a later pass)
	HasRawValue bool
	Position   errors.Position
}

// RawValueCaseList is one `case a = 1, b = 2` clause of a raw-value enum.
type RawValueCaseList struct {
	Cases    []RawValueCase
	Position errors.Position
}

// EnumMember is either a case clause or any other declaration nested in
// an enum body (methods, nested types, and so on).
type EnumMember struct {
	CaseList    *EnumCaseList     // union-style
	RawCases    *RawValueCaseList // raw-value-style
	Declaration Declaration       // non-case member
}

// EnumDeclaration is `enum Name<generics>: Inheritance { members }`,
// either union-style (optionally `indirect`) or raw-value-style.
type EnumDeclaration struct {
	DeclarationHead
	Indirect     bool
	Name         string
	Generics     *GenericParameterClause
	Inheritance  *TypeInheritanceClause
	Members      []EnumMember
	Position     errors.Position
}

func (d *EnumDeclaration) Pos() errors.Position { return d.Position }

// StructDeclaration is `struct Name<generics>: Inheritance { members }`.
type StructDeclaration struct {
	DeclarationHead
	Name        string
	Generics    *GenericParameterClause
	Inheritance *TypeInheritanceClause
	Members     []Declaration
	Position    errors.Position
}

func (d *StructDeclaration) Pos() errors.Position { return d.Position }

// ClassDeclaration is `class Name<generics>: Inheritance { members }`.
type ClassDeclaration struct {
	DeclarationHead
	Name        string
	Generics    *GenericParameterClause
	Inheritance *TypeInheritanceClause
	Members     []Declaration
	Position    errors.Position
}

func (d *ClassDeclaration) Pos() errors.Position { return d.Position }

// AssociatedTypeDeclaration is a protocol's `typealias Name: Constraint?`
// associated-type requirement.
type AssociatedTypeDeclaration struct {
	Name       string
	Constraint *TypeIdentifier
	Position   errors.Position
}

// ProtocolMember is one member of a protocol body: a property, method,
// initializer, subscript, or associated-type requirement.
type ProtocolMember struct {
	Property      *VariableDeclaration
	Method        *FunctionDeclaration
	Initializer   *InitializerDeclaration
	Subscript     *SubscriptDeclaration
	AssociatedType *AssociatedTypeDeclaration
}

// ProtocolDeclaration is `protocol Name: Inheritance { members }`.
type ProtocolDeclaration struct {
	DeclarationHead
	Name        string
	Inheritance *TypeInheritanceClause
	Members     []ProtocolMember
	Position    errors.Position
}

func (d *ProtocolDeclaration) Pos() errors.Position { return d.Position }

// InitializerKind distinguishes the three spellings of `init`.
type InitializerKind int

const (
	InitPlain InitializerKind = iota
	InitOptional
	InitForced
)

// InitializerDeclaration is `init?/!?<generics>(clause) throws? { body }?`.
type InitializerDeclaration struct {
	DeclarationHead
	Kind     InitializerKind
	Generics *GenericParameterClause
	Clause   ParameterClause
	Throwing Throwing
	Body     *Block // nil for a protocol requirement
	Position errors.Position
}

func (d *InitializerDeclaration) Pos() errors.Position { return d.Position }

// DeinitializerDeclaration is `deinit { body }`.
type DeinitializerDeclaration struct {
	DeclarationHead
	Body     *Block
	Position errors.Position
}

func (d *DeinitializerDeclaration) Pos() errors.Position { return d.Position }

// ExtensionDeclaration is `extension TypeIdentifier: Inheritance { members }`.
type ExtensionDeclaration struct {
	DeclarationHead
	ExtendedType *TypeIdentifier
	Inheritance  *TypeInheritanceClause
	Members      []Declaration
	Position     errors.Position
}

func (d *ExtensionDeclaration) Pos() errors.Position { return d.Position }

// SubscriptDeclaration is `subscript(clause) -> Result { accessors }`.
type SubscriptDeclaration struct {
	DeclarationHead
	Clause         ParameterClause
	Result         Type
	Getters        *GetterSetterBlock
	KeywordGetters *GetterSetterKeywordBlock
	Position       errors.Position
}

func (d *SubscriptDeclaration) Pos() errors.Position { return d.Position }

// OperatorKind distinguishes prefix/postfix/infix operator declarations.
type OperatorKind int

const (
	OperatorPrefix OperatorKind = iota
	OperatorPostfix
	OperatorInfix
)

// Associativity is the optional `associativity` clause of an infix
// operator declaration.
type Associativity int

const (
	AssociativityNone Associativity = iota
	AssociativityLeft
	AssociativityRight
)

// OperatorDeclaration is `prefix|postfix|infix operator op { ... }`.
// Precedence and Associativity are only meaningful for OperatorInfix;
// Precedence must be 0..255, enforced as a lexical error at parse time
// per the invariant.
type OperatorDeclaration struct {
	Kind              OperatorKind
	Name              string
	HasPrecedence     bool
	Precedence        int
	HasAssociativity  bool
	Associativity     Associativity
	Position          errors.Position
}

func (d *OperatorDeclaration) Pos() errors.Position { return d.Position }
