package parser

import (
	"strconv"

	"swiftparse/pkg/ast"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/token"
)

// ParseDeclaration dispatches to one of the fourteen declaration forms
// by its leading keyword, after consuming any attributes and modifiers
// common to all of them.
func (p *Parser) ParseDeclaration() (ast.Declaration, *errors.ParseError) {
	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}
	mods := p.parseModifiers()
	head := ast.DeclarationHead{Attributes: attrs, Modifiers: mods}

	switch {
	case p.atKeyword("import"):
		return p.parseImportDeclaration(head)
	case p.atKeyword("let"):
		return p.parseConstantDeclaration(head)
	case p.atKeyword("var"):
		return p.parseVariableDeclaration(head)
	case p.atKeyword("typealias"):
		return p.parseTypeAliasDeclaration(head)
	case p.atKeyword("func"):
		return p.parseFunctionDeclaration(head)
	case p.atKeyword("enum") || p.atIndirectEnum():
		return p.parseEnumDeclaration(head)
	case p.atKeyword("struct"):
		return p.parseStructDeclaration(head)
	case p.atKeyword("class"):
		return p.parseClassDeclaration(head)
	case p.atKeyword("protocol"):
		return p.parseProtocolDeclaration(head)
	case p.atKeyword("init"):
		return p.parseInitializerDeclaration(head)
	case p.atKeyword("deinit"):
		return p.parseDeinitializerDeclaration(head)
	case p.atKeyword("extension"):
		return p.parseExtensionDeclaration(head)
	case p.atKeyword("subscript"):
		return p.parseSubscriptDeclaration(head)
	case p.atKeyword("operator"):
		return p.parseOperatorDeclaration(mods)
	}
	tok, _ := p.peek()
	return nil, errors.New(errors.Syntax, tok.Pos, "expected a declaration")
}

func (p *Parser) atIndirectEnum() bool {
	if !p.atKeyword("indirect") {
		return false
	}
	mark := p.mark()
	p.next()
	isEnum := p.atKeyword("enum")
	p.reset(mark)
	return isEnum
}

func (p *Parser) parseImportDeclaration(head ast.DeclarationHead) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	p.next() // import
	kind, _ := p.tryImportKind()
	var path []string
	for {
		tok, err := p.expectKind(token.Ident, "import path component")
		if err != nil {
			return nil, err
		}
		path = append(path, tok.Literal)
		if !p.eatKind(token.Dot) {
			break
		}
	}
	return &ast.ImportDeclaration{DeclarationHead: head, Kind: kind, Path: path, Position: start}, nil
}

func (p *Parser) tryImportKind() (string, bool) {
	for _, kw := range [...]string{"typealias", "struct", "class", "enum", "protocol", "var", "func"} {
		if p.atKeyword(kw) {
			p.next()
			return kw, true
		}
	}
	return "", false
}

func (p *Parser) parseConstantDeclaration(head ast.DeclarationHead) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	p.next() // let
	inits, err := p.parsePatternInitializerList()
	if err != nil {
		return nil, err
	}
	return &ast.ConstantDeclaration{DeclarationHead: head, Initializers: inits, Position: start}, nil
}

func (p *Parser) parsePatternInitializerList() ([]ast.PatternInitializer, *errors.ParseError) {
	var list []ast.PatternInitializer
	for {
		start := p.pos()
		pat, err := p.ParsePattern()
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if p.eatOperator("=") {
			init, err = p.ParseExpression()
			if err != nil {
				return nil, err
			}
		}
		list = append(list, ast.PatternInitializer{Pattern: pat, Initializer: init, Position: start})
		if !p.eatKind(token.Comma) {
			break
		}
	}
	return list, nil
}

// parseVariableDeclaration resolves the `var` declaration's four
// shapes: it first attempts a single `name: Type` head (the shape
// every form but the plain pattern-initializer-list shares), then
// looks at what follows to settle on stored/computed/observed.
func (p *Parser) parseVariableDeclaration(head ast.DeclarationHead) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	p.next() // var

	if name, typ, ok := p.tryParseTypedVariableHead(); ok {
		decl := &ast.VariableDeclaration{DeclarationHead: head, Name: name, TypeAnnotation: typ, Position: start}
		if p.atKind(token.LBrace) {
			return p.finishAccessorVariable(decl)
		}
		if p.eatOperator("=") {
			// A '{' after the initializer may open the observer block
			// rather than a trailing closure: if taking it as a closure
			// fails, reparse the initializer without trailing closures.
			mark := p.mark()
			init, err := p.ParseExpression()
			if err != nil {
				p.reset(mark)
				err = p.withoutTrailingClosures(func() *errors.ParseError {
					var e *errors.ParseError
					init, e = p.ParseExpression()
					return e
				})
			}
			if err != nil {
				return nil, err
			}
			decl.Initializer = init
		}
		if p.atKind(token.LBrace) {
			obs, ok, err := p.tryParseObservedBlock()
			if err != nil {
				return nil, err
			}
			if ok {
				decl.Kind = ast.VarObserved
				decl.Observers = obs
				return decl, nil
			}
		}
		decl.Kind = ast.VarStoredWithType
		return decl, nil
	}

	inits, err := p.parsePatternInitializerList()
	if err != nil {
		return nil, err
	}
	return &ast.VariableDeclaration{
		DeclarationHead: head, Kind: ast.VarPatternInitializerList,
		Initializers: inits, Position: start,
	}, nil
}

// tryParseTypedVariableHead attempts `name: Type` not immediately
// followed by ',' — the comma case belongs to the plain
// pattern-initializer-list shape instead.
func (p *Parser) tryParseTypedVariableHead() (string, ast.Type, bool) {
	mark := p.mark()
	tok, err := p.peek()
	if err != nil || tok.Kind != token.Ident {
		return "", nil, false
	}
	p.next()
	if !p.eatKind(token.Colon) {
		p.reset(mark)
		return "", nil, false
	}
	t, err := p.ParseType()
	if err != nil {
		p.reset(mark)
		return "", nil, false
	}
	if p.atKind(token.Comma) {
		p.reset(mark)
		return "", nil, false
	}
	return tok.Literal, t, true
}

func (p *Parser) finishAccessorVariable(decl *ast.VariableDeclaration) (ast.Declaration, *errors.ParseError) {
	if kw, ok := p.tryParseGetterSetterKeywordBlock(); ok {
		decl.Kind = ast.VarComputed
		decl.KeywordGetters = kw
		return decl, nil
	}
	if obs, ok, err := p.tryParseObservedBlock(); err != nil {
		return nil, err
	} else if ok {
		decl.Kind = ast.VarObserved
		decl.Observers = obs
		return decl, nil
	}
	gsb, err := p.parseGetterSetterBlock()
	if err != nil {
		return nil, err
	}
	decl.Kind = ast.VarComputed
	decl.Getters = gsb
	return decl, nil
}

// tryParseGetterSetterKeywordBlock attempts the protocol-style
// requirement form `{ get }` / `{ get set }` / `{ set get }`, with no
// bodies at all — resolving Open Question 2.
func (p *Parser) tryParseGetterSetterKeywordBlock() (*ast.GetterSetterKeywordBlock, bool) {
	mark := p.mark()
	start := p.pos()
	if !p.eatKind(token.LBrace) {
		return nil, false
	}
	var hasGetter, hasSetter bool
	switch {
	case p.eatKeyword("get"):
		hasGetter = true
		if p.eatKeyword("set") {
			hasSetter = true
		}
	case p.eatKeyword("set"):
		hasSetter = true
		if p.eatKeyword("get") {
			hasGetter = true
		}
	default:
		p.reset(mark)
		return nil, false
	}
	if !p.eatKind(token.RBrace) {
		p.reset(mark)
		return nil, false
	}
	return &ast.GetterSetterKeywordBlock{HasGetter: hasGetter, HasSetter: hasSetter, Position: start}, true
}

// tryParseObservedBlock attempts a `willSet`/`didSet` observer pair,
// each with its own code block body.
func (p *Parser) tryParseObservedBlock() (*ast.ObservedBlock, bool, *errors.ParseError) {
	mark := p.mark()
	start := p.pos()
	if !p.eatKind(token.LBrace) {
		return nil, false, nil
	}
	if !p.atKeyword("willSet") && !p.atKeyword("didSet") {
		p.reset(mark)
		return nil, false, nil
	}
	obs := &ast.ObservedBlock{Position: start}
	if p.eatKeyword("willSet") {
		obs.HasWillSet = true
		if name, ok := p.tryParseParenthesizedName(); ok {
			obs.WillSetName = name
			obs.HasWillSetName = true
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, false, err
		}
		obs.WillSetBody = body
	}
	if p.eatKeyword("didSet") {
		obs.HasDidSet = true
		if name, ok := p.tryParseParenthesizedName(); ok {
			obs.DidSetName = name
			obs.HasDidSetName = true
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, false, err
		}
		obs.DidSetBody = body
	}
	if err := p.expectKind0(token.RBrace); err != nil {
		return nil, false, err
	}
	return obs, true, nil
}

func (p *Parser) tryParseParenthesizedName() (string, bool) {
	if !p.atKind(token.LParen) {
		return "", false
	}
	mark := p.mark()
	p.next()
	nameTok, err := p.expectKind(token.Ident, "parameter name")
	if err != nil {
		p.reset(mark)
		return "", false
	}
	if !p.eatKind(token.RParen) {
		p.reset(mark)
		return "", false
	}
	return nameTok.Literal, true
}

// parseGetterSetterBlock parses the code-block accessor form: either
// `get` alone, `get set`, or `set get` (a setter must be paired with a
// getter somewhere in the block).
func (p *Parser) parseGetterSetterBlock() (*ast.GetterSetterBlock, *errors.ParseError) {
	start := p.pos()
	if err := p.expectKind0(token.LBrace); err != nil {
		return nil, err
	}
	gsb := &ast.GetterSetterBlock{Position: start}
	if p.atKeyword("set") {
		p.next()
		if err := p.parseSetterNameAndBody(gsb); err != nil {
			return nil, err
		}
		gsb.HasSetter = true
		if err := p.expectKeyword("get"); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		gsb.GetterBody = body
	} else {
		if err := p.expectKeyword("get"); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		gsb.GetterBody = body
		if p.eatKeyword("set") {
			if err := p.parseSetterNameAndBody(gsb); err != nil {
				return nil, err
			}
			gsb.HasSetter = true
		}
	}
	if err := p.expectKind0(token.RBrace); err != nil {
		return nil, err
	}
	return gsb, nil
}

func (p *Parser) parseSetterNameAndBody(gsb *ast.GetterSetterBlock) *errors.ParseError {
	if name, ok := p.tryParseParenthesizedName(); ok {
		gsb.SetterName = name
		gsb.HasSetterName = true
	}
	body, err := p.parseBlock()
	if err != nil {
		return err
	}
	gsb.SetterBody = body
	return nil
}

func (p *Parser) parseTypeAliasDeclaration(head ast.DeclarationHead) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	p.next() // typealias
	nameTok, err := p.expectKind(token.Ident, "type alias name")
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	t, err := p.ParseType()
	if err != nil {
		return nil, err
	}
	return &ast.TypeAliasDeclaration{DeclarationHead: head, Name: nameTok.Literal, Assigned: t, Position: start}, nil
}

func (p *Parser) parseFunctionDeclaration(head ast.DeclarationHead) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	p.next() // func
	name, err := p.parseFunctionName()
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericParameterClause()
	if err != nil {
		return nil, err
	}
	var clauses []ast.ParameterClause
	for p.atKind(token.LParen) {
		clause, err := p.parseParameterClause()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	if len(clauses) == 0 {
		tok, _ := p.peek()
		return nil, errors.New(errors.Syntax, tok.Pos, "expected a parameter clause").Expecting("'('")
	}
	throwing := p.parseThrowsClause()
	var result ast.Type
	if p.eatOperator("->") {
		result, err = p.ParseType()
		if err != nil {
			return nil, err
		}
	}
	var body *ast.Block
	if p.atKind(token.LBrace) {
		body, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.FunctionDeclaration{
		DeclarationHead: head, Name: name, Generics: generics, Clauses: clauses,
		Throwing: throwing, Result: result, Body: body, Position: start,
	}, nil
}

func (p *Parser) parseFunctionName() (ast.FunctionName, *errors.ParseError) {
	if p.atKind(token.Ident) {
		tok, _ := p.next()
		return ast.FunctionName{Name: tok.Literal}, nil
	}
	if p.atKind(token.Operator) {
		tok, _ := p.next()
		return ast.FunctionName{Name: tok.Literal, IsOperator: true}, nil
	}
	tok, _ := p.peek()
	return ast.FunctionName{}, errors.New(errors.Syntax, tok.Pos, "expected a function name")
}

func (p *Parser) parseThrowsClause() ast.Throwing {
	if p.eatKeyword("throws") {
		return ast.ThrowsKind
	}
	if p.eatKeyword("rethrows") {
		return ast.RethrowsKind
	}
	return ast.ThrowsNone
}

func (p *Parser) parseParameterClause() (ast.ParameterClause, *errors.ParseError) {
	start := p.pos()
	if err := p.expectKind0(token.LParen); err != nil {
		return ast.ParameterClause{}, err
	}
	var params []ast.Parameter
	if !p.atKind(token.RParen) {
		for {
			param, err := p.parseParameter()
			if err != nil {
				return ast.ParameterClause{}, err
			}
			params = append(params, param)
			if !p.eatKind(token.Comma) {
				break
			}
		}
	}
	if err := p.expectKind0(token.RParen); err != nil {
		return ast.ParameterClause{}, err
	}
	return ast.ParameterClause{Parameters: params, Position: start}, nil
}

func (p *Parser) parseParameter() (ast.Parameter, *errors.ParseError) {
	start := p.pos()
	modifier := ast.ParamPlain
	switch {
	case p.expectIdentText("inout"):
		modifier = ast.ParamInout
	case p.atKeyword("var"):
		p.next()
		modifier = ast.ParamVar
	case p.atKeyword("let"):
		p.next()
		modifier = ast.ParamLet
	}

	firstName, firstIsWildcard, err := p.parseParameterNameToken()
	if err != nil {
		return ast.Parameter{}, err
	}

	param := ast.Parameter{Modifier: modifier, Position: start}
	if secondName, ok := p.tryParseParameterLocalName(); ok {
		if !firstIsWildcard {
			param.ExternalName = firstName
			param.HasExternalName = true
		}
		param.LocalName = secondName
	} else {
		param.LocalName = firstName
	}

	if err := p.expectKind0(token.Colon); err != nil {
		return ast.Parameter{}, err
	}
	if param.Modifier == ast.ParamPlain && p.expectIdentText("inout") {
		param.Modifier = ast.ParamInout
	}
	t, err := p.ParseType()
	if err != nil {
		return ast.Parameter{}, err
	}
	param.TypeAnnotation = t
	if p.eatKind(token.Ellipsis) {
		param.Variadic = true
	}
	if p.eatOperator("=") {
		d, err := p.ParseExpression()
		if err != nil {
			return ast.Parameter{}, err
		}
		param.Default = d
	}
	return param, nil
}

func (p *Parser) parseParameterNameToken() (string, bool, *errors.ParseError) {
	tok, err := p.peek()
	if err != nil {
		return "", false, err
	}
	if tok.Kind == token.Ident {
		p.next()
		return tok.Literal, false, nil
	}
	if tok.Kind == token.Keyword && tok.Literal == "_" {
		p.next()
		return "_", true, nil
	}
	return "", false, errors.New(errors.Syntax, tok.Pos, "expected a parameter name")
}

func (p *Parser) tryParseParameterLocalName() (string, bool) {
	tok, err := p.peek()
	if err != nil {
		return "", false
	}
	if tok.Kind == token.Ident {
		p.next()
		return tok.Literal, true
	}
	if tok.Kind == token.Keyword && tok.Literal == "_" {
		p.next()
		return "_", true
	}
	return "", false
}

func (p *Parser) parseEnumDeclaration(head ast.DeclarationHead) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	indirect := p.eatKeyword("indirect")
	if err := p.expectKeyword("enum"); err != nil {
		return nil, err
	}
	nameTok, err := p.expectKind(token.Ident, "enum name")
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericParameterClause()
	if err != nil {
		return nil, err
	}
	inheritance, err := p.parseTypeInheritanceClause()
	if err != nil {
		return nil, err
	}
	if err := p.expectKind0(token.LBrace); err != nil {
		return nil, err
	}
	var members []ast.EnumMember
	for !p.atKind(token.RBrace) && !p.atEOF() {
		m, err := p.parseEnumMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := p.expectKind0(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.EnumDeclaration{
		DeclarationHead: head, Indirect: indirect, Name: nameTok.Literal,
		Generics: generics, Inheritance: inheritance, Members: members, Position: start,
	}, nil
}

func (p *Parser) parseEnumMember() (ast.EnumMember, *errors.ParseError) {
	if p.atKeyword("case") {
		return p.parseEnumCaseClause()
	}
	decl, err := p.ParseDeclaration()
	if err != nil {
		return ast.EnumMember{}, err
	}
	return ast.EnumMember{Declaration: decl}, nil
}

// parseEnumCaseClause parses one `case name, name(Payload), ...` or
// `case name = literal, ...` clause, classifying it as union-style or
// raw-value-style by what follows its first case name.
func (p *Parser) parseEnumCaseClause() (ast.EnumMember, *errors.ParseError) {
	start := p.pos()
	p.next() // case

	firstTok, err := p.expectKind(token.Ident, "enum case name")
	if err != nil {
		return ast.EnumMember{}, err
	}

	if p.eatOperator("=") {
		return p.parseRawValueCaseClause(start, firstTok.Literal)
	}

	var payload *ast.TupleType
	if p.atKind(token.LParen) {
		t, err := p.parseTupleType()
		if err != nil {
			return ast.EnumMember{}, err
		}
		payload = t.(*ast.TupleType)
	}
	cases := []ast.EnumCase{{Name: firstTok.Literal, Payload: payload, Position: start}}
	for p.eatKind(token.Comma) {
		nameTok, err := p.expectKind(token.Ident, "enum case name")
		if err != nil {
			return ast.EnumMember{}, err
		}
		var pl *ast.TupleType
		if p.atKind(token.LParen) {
			t, err := p.parseTupleType()
			if err != nil {
				return ast.EnumMember{}, err
			}
			pl = t.(*ast.TupleType)
		}
		cases = append(cases, ast.EnumCase{Name: nameTok.Literal, Payload: pl, Position: nameTok.Pos})
	}
	return ast.EnumMember{CaseList: &ast.EnumCaseList{Cases: cases, Position: start}}, nil
}

func (p *Parser) parseRawValueCaseClause(start errors.Position, firstName string) (ast.EnumMember, *errors.ParseError) {
	lit, err := p.parseRawValueLiteral()
	if err != nil {
		return ast.EnumMember{}, err
	}
	cases := []ast.RawValueCase{{Name: firstName, RawValue: lit, HasRawValue: true, Position: start}}
	for p.eatKind(token.Comma) {
		nameTok, err := p.expectKind(token.Ident, "enum case name")
		if err != nil {
			return ast.EnumMember{}, err
		}
		rc := ast.RawValueCase{Name: nameTok.Literal, Position: nameTok.Pos}
		if p.eatOperator("=") {
			lit, err := p.parseRawValueLiteral()
			if err != nil {
				return ast.EnumMember{}, err
			}
			rc.RawValue = lit
			rc.HasRawValue = true
		}
		cases = append(cases, rc)
	}
	return ast.EnumMember{RawCases: &ast.RawValueCaseList{Cases: cases, Position: start}}, nil
}

func (p *Parser) parseRawValueLiteral() (ast.Literal, *errors.ParseError) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	start := tok.Pos
	switch {
	case tok.IsOperator("-"):
		p.next()
		numTok, err := p.expectKind(token.Number, "raw value literal")
		if err != nil {
			return nil, err
		}
		return p.arena.NewNumeric(ast.NumericLiteral{Text: "-" + numTok.Literal, Position: start}), nil
	case tok.Kind == token.Number:
		p.next()
		return p.arena.NewNumeric(ast.NumericLiteral{Text: tok.Literal, Position: start}), nil
	case tok.Kind == token.String:
		expr, err := p.parseStringLiteralExpression(tok)
		if err != nil {
			return nil, err
		}
		return expr.(*ast.LiteralExpression).Value.(ast.Literal), nil
	case tok.IsKeyword("true"):
		p.next()
		return p.arena.NewBoolean(ast.BooleanLiteral{Value: true, Position: start}), nil
	case tok.IsKeyword("false"):
		p.next()
		return p.arena.NewBoolean(ast.BooleanLiteral{Value: false, Position: start}), nil
	}
	return nil, errors.New(errors.Syntax, tok.Pos, "expected a raw value literal")
}

func (p *Parser) parseStructDeclaration(head ast.DeclarationHead) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	p.next() // struct
	nameTok, err := p.expectKind(token.Ident, "struct name")
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericParameterClause()
	if err != nil {
		return nil, err
	}
	inheritance, err := p.parseTypeInheritanceClause()
	if err != nil {
		return nil, err
	}
	members, err := p.parseDeclarationBody()
	if err != nil {
		return nil, err
	}
	return &ast.StructDeclaration{
		DeclarationHead: head, Name: nameTok.Literal, Generics: generics,
		Inheritance: inheritance, Members: members, Position: start,
	}, nil
}

func (p *Parser) parseClassDeclaration(head ast.DeclarationHead) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	p.next() // class
	nameTok, err := p.expectKind(token.Ident, "class name")
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericParameterClause()
	if err != nil {
		return nil, err
	}
	inheritance, err := p.parseTypeInheritanceClause()
	if err != nil {
		return nil, err
	}
	members, err := p.parseDeclarationBody()
	if err != nil {
		return nil, err
	}
	return &ast.ClassDeclaration{
		DeclarationHead: head, Name: nameTok.Literal, Generics: generics,
		Inheritance: inheritance, Members: members, Position: start,
	}, nil
}

func (p *Parser) parseDeclarationBody() ([]ast.Declaration, *errors.ParseError) {
	if err := p.expectKind0(token.LBrace); err != nil {
		return nil, err
	}
	var members []ast.Declaration
	for !p.atKind(token.RBrace) && !p.atEOF() {
		m, err := p.ParseDeclaration()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := p.expectKind0(token.RBrace); err != nil {
		return nil, err
	}
	return members, nil
}

func (p *Parser) parseProtocolDeclaration(head ast.DeclarationHead) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	p.next() // protocol
	nameTok, err := p.expectKind(token.Ident, "protocol name")
	if err != nil {
		return nil, err
	}
	inheritance, err := p.parseTypeInheritanceClause()
	if err != nil {
		return nil, err
	}
	if err := p.expectKind0(token.LBrace); err != nil {
		return nil, err
	}
	var members []ast.ProtocolMember
	for !p.atKind(token.RBrace) && !p.atEOF() {
		m, err := p.parseProtocolMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := p.expectKind0(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.ProtocolDeclaration{
		DeclarationHead: head, Name: nameTok.Literal, Inheritance: inheritance,
		Members: members, Position: start,
	}, nil
}

func (p *Parser) parseProtocolMember() (ast.ProtocolMember, *errors.ParseError) {
	attrs, err := p.parseAttributes()
	if err != nil {
		return ast.ProtocolMember{}, err
	}
	mods := p.parseModifiers()
	head := ast.DeclarationHead{Attributes: attrs, Modifiers: mods}

	switch {
	case p.atKeyword("var"):
		decl, err := p.parseVariableDeclaration(head)
		if err != nil {
			return ast.ProtocolMember{}, err
		}
		return ast.ProtocolMember{Property: decl.(*ast.VariableDeclaration)}, nil
	case p.atKeyword("func"):
		decl, err := p.parseFunctionDeclaration(head)
		if err != nil {
			return ast.ProtocolMember{}, err
		}
		return ast.ProtocolMember{Method: decl.(*ast.FunctionDeclaration)}, nil
	case p.atKeyword("init"):
		decl, err := p.parseInitializerDeclaration(head)
		if err != nil {
			return ast.ProtocolMember{}, err
		}
		return ast.ProtocolMember{Initializer: decl.(*ast.InitializerDeclaration)}, nil
	case p.atKeyword("subscript"):
		decl, err := p.parseSubscriptDeclaration(head)
		if err != nil {
			return ast.ProtocolMember{}, err
		}
		return ast.ProtocolMember{Subscript: decl.(*ast.SubscriptDeclaration)}, nil
	case p.atKeyword("typealias"):
		at, err := p.parseAssociatedTypeDeclaration()
		if err != nil {
			return ast.ProtocolMember{}, err
		}
		return ast.ProtocolMember{AssociatedType: at}, nil
	}
	tok, _ := p.peek()
	return ast.ProtocolMember{}, errors.New(errors.Syntax, tok.Pos, "expected a protocol member")
}

func (p *Parser) parseAssociatedTypeDeclaration() (*ast.AssociatedTypeDeclaration, *errors.ParseError) {
	start := p.pos()
	p.next() // typealias
	nameTok, err := p.expectKind(token.Ident, "associated type name")
	if err != nil {
		return nil, err
	}
	var constraint *ast.TypeIdentifier
	if p.eatKind(token.Colon) {
		t, err := p.parseTypeIdentifier()
		if err != nil {
			return nil, err
		}
		constraint = t.(*ast.TypeIdentifier)
	}
	return &ast.AssociatedTypeDeclaration{Name: nameTok.Literal, Constraint: constraint, Position: start}, nil
}

func (p *Parser) parseInitializerDeclaration(head ast.DeclarationHead) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	p.next() // init
	kind := ast.InitPlain
	if p.eatOperator("?") {
		kind = ast.InitOptional
	} else if p.eatOperator("!") {
		kind = ast.InitForced
	}
	generics, err := p.parseGenericParameterClause()
	if err != nil {
		return nil, err
	}
	clause, err := p.parseParameterClause()
	if err != nil {
		return nil, err
	}
	throwing := p.parseThrowsClause()
	var body *ast.Block
	if p.atKind(token.LBrace) {
		body, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.InitializerDeclaration{
		DeclarationHead: head, Kind: kind, Generics: generics, Clause: clause,
		Throwing: throwing, Body: body, Position: start,
	}, nil
}

func (p *Parser) parseDeinitializerDeclaration(head ast.DeclarationHead) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	p.next() // deinit
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.DeinitializerDeclaration{DeclarationHead: head, Body: body, Position: start}, nil
}

func (p *Parser) parseExtensionDeclaration(head ast.DeclarationHead) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	p.next() // extension
	t, err := p.parseTypeIdentifier()
	if err != nil {
		return nil, err
	}
	inheritance, err := p.parseTypeInheritanceClause()
	if err != nil {
		return nil, err
	}
	members, err := p.parseDeclarationBody()
	if err != nil {
		return nil, err
	}
	return &ast.ExtensionDeclaration{
		DeclarationHead: head, ExtendedType: t.(*ast.TypeIdentifier),
		Inheritance: inheritance, Members: members, Position: start,
	}, nil
}

func (p *Parser) parseSubscriptDeclaration(head ast.DeclarationHead) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	p.next() // subscript
	clause, err := p.parseParameterClause()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("->"); err != nil {
		return nil, err
	}
	result, err := p.ParseType()
	if err != nil {
		return nil, err
	}
	decl := &ast.SubscriptDeclaration{DeclarationHead: head, Clause: clause, Result: result, Position: start}
	if kw, ok := p.tryParseGetterSetterKeywordBlock(); ok {
		decl.KeywordGetters = kw
		return decl, nil
	}
	gsb, err := p.parseGetterSetterBlock()
	if err != nil {
		return nil, err
	}
	decl.Getters = gsb
	return decl, nil
}

// parseOperatorDeclaration parses `prefix|postfix|infix operator op {...}`.
// The kind word precedes `operator`, so parseModifiers has already taken
// it as a modifier; the last such modifier gives the operator's kind.
func (p *Parser) parseOperatorDeclaration(mods []*ast.Modifier) (ast.Declaration, *errors.ParseError) {
	start := p.pos()
	p.next() // operator
	var kind ast.OperatorKind
	kindWord := ""
	for _, m := range mods {
		if m.Name == "prefix" || m.Name == "postfix" || m.Name == "infix" {
			kindWord = m.Name
		}
	}
	switch kindWord {
	case "prefix":
		kind = ast.OperatorPrefix
	case "postfix":
		kind = ast.OperatorPostfix
	case "infix":
		kind = ast.OperatorInfix
	default:
		return nil, errors.New(errors.Syntax, start, "expected 'prefix', 'postfix', or 'infix' before 'operator'").
			Expecting("'prefix'/'postfix'/'infix'")
	}
	nameTok, err := p.expectKind(token.Operator, "operator name")
	if err != nil {
		return nil, err
	}
	decl := &ast.OperatorDeclaration{Kind: kind, Name: nameTok.Literal, Position: start}
	if kind == ast.OperatorPostfix {
		p.declarePostfixOperator(nameTok.Literal)
	}
	if err := p.expectKind0(token.LBrace); err != nil {
		return nil, err
	}
	if kind == ast.OperatorInfix {
		if err := p.parseOperatorInfixBody(decl); err != nil {
			return nil, err
		}
	}
	if err := p.expectKind0(token.RBrace); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseOperatorInfixBody(decl *ast.OperatorDeclaration) *errors.ParseError {
	for !p.atKind(token.RBrace) && !p.atEOF() {
		switch {
		case p.eatKeyword("precedence"):
			num, err := p.expectKind(token.Number, "precedence value")
			if err != nil {
				return err
			}
			n, convErr := strconv.Atoi(num.Literal)
			if convErr != nil || n < 0 || n > 255 {
				return errors.New(errors.Lexical, num.Pos, "operator precedence must be 0..255")
			}
			decl.HasPrecedence = true
			decl.Precedence = n
		case p.eatKeyword("associativity"):
			switch {
			case p.eatKeyword("left"):
				decl.Associativity = ast.AssociativityLeft
			case p.eatKeyword("right"):
				decl.Associativity = ast.AssociativityRight
			case p.eatKeyword("none"):
				decl.Associativity = ast.AssociativityNone
			default:
				tok, _ := p.peek()
				return errors.New(errors.Syntax, tok.Pos, "expected 'left', 'right', or 'none'")
			}
			decl.HasAssociativity = true
		default:
			tok, _ := p.peek()
			return errors.New(errors.Syntax, tok.Pos, "expected 'precedence' or 'associativity'")
		}
	}
	return nil
}
