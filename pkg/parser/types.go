package parser

import (
	"strings"

	"swiftparse/pkg/ast"
	"swiftparse/pkg/combinator"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/token"
)

// ParseType parses a full type expression: a function-type chain over
// primary types decorated with suffixes, the right-associative
// production named in the grammar-layer design.
func (p *Parser) ParseType() (ast.Type, *errors.ParseError) {
	left, err := p.parseTypeWithSuffixes()
	if err != nil {
		return nil, err
	}
	return p.parseFunctionTypeTail(left)
}

// parseFunctionTypeTail implements `primType (('throws'|'rethrows')? '->' primType)*`
// as a right-associative chain by recursing after consuming one arrow.
func (p *Parser) parseFunctionTypeTail(left ast.Type) (ast.Type, *errors.ParseError) {
	mark := p.mark()
	throwing := ast.ThrowsNone
	if p.eatKeyword("throws") {
		throwing = ast.ThrowsKind
	} else if p.eatKeyword("rethrows") {
		throwing = ast.RethrowsKind
	}
	if !p.eatOperator("->") {
		p.reset(mark)
		return left, nil
	}
	resultPrimary, err := p.parseTypeWithSuffixes()
	if err != nil {
		return nil, err
	}
	result, err := p.parseFunctionTypeTail(resultPrimary)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionType{
		Parameter: left,
		Throwing:  throwing,
		Result:    result,
		Position:  left.Pos(),
	}, nil
}

// parseTypeWithSuffixes parses a primary type then zero or more of
// .Type / .Protocol / ? / !, each wrapping the accumulated type.
func (p *Parser) parseTypeWithSuffixes() (ast.Type, *errors.ParseError) {
	base, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}
	for {
		if tok, err := p.peek(); err == nil && tok.Kind == token.Operator && len(tok.Literal) > 1 &&
			strings.Trim(tok.Literal, "?!") == "" && tok.Pos.StartPos == p.state.CP.Offset() {
			// A suffix run written directly after the type, such as "??!",
			// lexes as one operator token: apply its first character and
			// let the next iteration re-lex the rest.
			p.splitLeading(tok)
			if tok.Literal[0] == '?' {
				base = &ast.OptionalType{Wrapped: base, Position: base.Pos()}
			} else {
				base = &ast.ImplicitlyUnwrappedType{Wrapped: base, Position: base.Pos()}
			}
			continue
		}
		if p.atOperator("?") {
			p.next()
			base = &ast.OptionalType{Wrapped: base, Position: base.Pos()}
			continue
		}
		if p.atOperator("!") {
			p.next()
			base = &ast.ImplicitlyUnwrappedType{Wrapped: base, Position: base.Pos()}
			continue
		}
		if p.atKind(token.Dot) {
			// The two metatype suffixes share a leading '.', so trying
			// one and falling back to the other is exactly combinator.Alt's
			// job: whichever alternative matches wins, and a miss on both
			// leaves p.state untouched.
			metaKind := combinator.Alt(
				dotThenKeyword("Protocol", ast.MetatypeProtocol),
				dotThenKeyword("Type", ast.MetatypeType_),
			)
			if kind, s1, err := metaKind(p.state); err == nil {
				p.state = s1
				base = &ast.MetatypeType{Base: base, Kind: kind, Position: base.Pos()}
				continue
			}
		}
		break
	}
	return base, nil
}

// dotThenKeyword matches a '.' followed by the contextual keyword word,
// yielding kind on success. Used to build the metatype-suffix
// alternatives combinator.Alt chooses between.
func dotThenKeyword(word string, kind ast.MetatypeKind) combinator.Parser[ast.MetatypeKind] {
	return func(s combinator.State) (ast.MetatypeKind, combinator.State, *errors.ParseError) {
		dotTok, s1, err := s.Advance()
		if err != nil || dotTok.Kind != token.Dot {
			return 0, s, errors.New(errors.Syntax, dotTok.Pos, "expected '.'")
		}
		tok, s2, err := s1.Advance()
		if err != nil || !tok.IsKeyword(word) {
			return 0, s, errors.New(errors.Syntax, tok.Pos, "expected '"+word+"'")
		}
		return kind, s2, nil
	}
}

// parsePrimaryType parses one of: array, dictionary, protocol
// composition, tuple, or dotted type-identifier.
func (p *Parser) parsePrimaryType() (ast.Type, *errors.ParseError) {
	start := p.pos()

	if p.atKind(token.LBracket) {
		return p.parseArrayOrDictionaryType()
	}
	if p.atKind(token.LParen) {
		return p.parseTupleType()
	}
	if p.atKeyword("protocol") {
		mark := p.mark()
		p.next()
		if p.atLeadingAngle() {
			return p.parseProtocolComposition(start)
		}
		p.reset(mark)
	}
	return p.parseTypeIdentifier()
}

func (p *Parser) atIdentText(word string) bool {
	tok, err := p.peek()
	return err == nil && tok.Kind == token.Ident && tok.Literal == word
}

func (p *Parser) parseArrayOrDictionaryType() (ast.Type, *errors.ParseError) {
	start := p.pos()
	if err := p.expectKind0(token.LBracket); err != nil {
		return nil, err
	}
	first, err := p.ParseType()
	if err != nil {
		return nil, err
	}
	if p.eatKind(token.Colon) {
		value, err := p.ParseType()
		if err != nil {
			return nil, err
		}
		if err := p.expectKind0(token.RBracket); err != nil {
			return nil, err
		}
		return &ast.DictionaryType{Key: first, Value: value, Position: start}, nil
	}
	if err := p.expectKind0(token.RBracket); err != nil {
		return nil, err
	}
	return &ast.ArrayType{Element: first, Position: start}, nil
}

func (p *Parser) expectKind0(k token.Kind) *errors.ParseError {
	_, err := p.expectKind(k, string(k))
	return err
}

func (p *Parser) parseProtocolComposition(start errors.Position) (ast.Type, *errors.ParseError) {
	if !p.eatLeadingAngle() {
		return nil, errors.New(errors.Syntax, p.pos(), "expected '<'").Expecting("'<'")
	}
	var members []ast.Type
	if !p.atCloseAngle() {
		for {
			m, err := p.ParseType()
			if err != nil {
				return nil, err
			}
			members = append(members, m)
			if !p.eatKind(token.Comma) {
				break
			}
		}
	}
	if err := p.expectCloseAngle(); err != nil {
		return nil, err
	}
	return &ast.ProtocolCompositionType{Members: members, Position: start}, nil
}

// atCloseAngle reports whether the next token's operator text begins
// with '>', without consuming it (it may be a longer run like '>>').
func (p *Parser) atCloseAngle() bool {
	tok, err := p.peek()
	return err == nil && tok.Kind == token.Operator && len(tok.Literal) > 0 && tok.Literal[0] == '>'
}

// expectCloseAngle consumes a single '>', splitting a longer operator
// run (">>" etc.) so any remainder is re-lexed as the next token.
func (p *Parser) expectCloseAngle() *errors.ParseError {
	tok, err := p.peek()
	if err != nil || tok.Kind != token.Operator || len(tok.Literal) == 0 || tok.Literal[0] != '>' {
		return errors.New(errors.Syntax, p.pos(), "expected '>'").Expecting("'>'")
	}
	p.splitLeading(tok)
	return nil
}

// splitLeading consumes the single leading character of an operator
// token already known to start with '<', '>', '?' or '!', repositioning the
// parser's state to just past that one character so a subsequent Scan
// re-lexes whatever remains (">>"  leaves ">", ">=" leaves "=", and a
// single-character token leaves nothing before EOF/the next token).
func (p *Parser) splitLeading(tok token.Token) {
	_, size := utf8DecodeFirst(tok.Literal)
	cp := cursorNewCheckpointAfter(tok.Pos, size)
	p.state = p.state.WithCheckpoint(cp)
}

func (p *Parser) parseTupleType() (ast.Type, *errors.ParseError) {
	start := p.pos()
	if err := p.expectKind0(token.LParen); err != nil {
		return nil, err
	}
	var elems []ast.TupleTypeElement
	if !p.atKind(token.RParen) {
		for {
			el, err := p.parseTupleTypeElement()
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
			if !p.eatKind(token.Comma) {
				break
			}
		}
	}
	variadic := p.eatKind(token.Ellipsis)
	if err := p.expectKind0(token.RParen); err != nil {
		return nil, err
	}
	return &ast.TupleType{Elements: elems, Variadic: variadic, Position: start}, nil
}

func (p *Parser) parseTupleTypeElement() (ast.TupleTypeElement, *errors.ParseError) {
	start := p.pos()
	attrs, err := p.parseAttributes()
	if err != nil {
		return ast.TupleTypeElement{}, err
	}
	isInout := p.expectIdentText("inout")

	mark := p.mark()
	if p.atKind(token.Ident) {
		nameTok, _ := p.next()
		if p.eatKind(token.Colon) {
			t, err := p.ParseType()
			if err != nil {
				return ast.TupleTypeElement{}, err
			}
			return ast.TupleTypeElement{
				Attributes: attrs, IsInout: isInout, Name: nameTok.Literal, HasName: true,
				ElementType: t, Position: start,
			}, nil
		}
		p.reset(mark)
	}

	t, err := p.ParseType()
	if err != nil {
		return ast.TupleTypeElement{}, err
	}
	return ast.TupleTypeElement{Attributes: attrs, IsInout: isInout, ElementType: t, Position: start}, nil
}

// parseTypeIdentifier parses a dotted path of name+generic-args
// components, with each generic-argument clause attempted only
// speculatively since `<` overlaps with the operator character class.
func (p *Parser) parseTypeIdentifier() (ast.Type, *errors.ParseError) {
	start := p.pos()
	var components []ast.TypeIdentifierComponent
	for {
		nameTok, err := p.expectKind(token.Ident, "type name")
		if err != nil {
			return nil, err
		}
		comp := ast.TypeIdentifierComponent{Name: nameTok.Literal, Position: nameTok.Pos}
		if args, ok := p.tryParseGenericArgumentClause(); ok {
			comp.GenericArgs = args
		}
		components = append(components, comp)
		if !p.atKind(token.Dot) {
			break
		}
		mark := p.mark()
		p.next()
		if !p.atKind(token.Ident) {
			p.reset(mark)
			break
		}
	}
	return &ast.TypeIdentifier{Components: components, Position: start}, nil
}

// tryParseGenericArgumentClause attempts `<T, U, ...>` speculatively,
// restoring position and reporting ok=false on any failure — the
// disciplined backtracking the design requires because `<` may also
// start an ordinary operator expression.
func (p *Parser) tryParseGenericArgumentClause() ([]ast.Type, bool) {
	if !p.atOperator("<") && !p.atLeadingAngle() {
		return nil, false
	}
	mark := p.mark()
	if !p.eatLeadingAngle() {
		return nil, false
	}
	var args []ast.Type
	if p.atCloseAngle() {
		p.reset(mark)
		return nil, false
	}
	for {
		t, err := p.ParseType()
		if err != nil {
			p.reset(mark)
			return nil, false
		}
		args = append(args, t)
		if !p.eatKind(token.Comma) {
			break
		}
	}
	if err := p.expectCloseAngle(); err != nil {
		p.reset(mark)
		return nil, false
	}
	return args, true
}

// atLeadingAngle reports whether the next operator token begins with
// '<' (it may be a longer run like "<<").
func (p *Parser) atLeadingAngle() bool {
	tok, err := p.peek()
	return err == nil && tok.Kind == token.Operator && len(tok.Literal) > 0 && tok.Literal[0] == '<'
}

// eatLeadingAngle consumes a single '<', repositioning past it so any
// remainder of a longer operator run (e.g. "<<") is re-lexed fresh.
func (p *Parser) eatLeadingAngle() bool {
	tok, err := p.peek()
	if err != nil || tok.Kind != token.Operator || len(tok.Literal) == 0 || tok.Literal[0] != '<' {
		return false
	}
	p.splitLeading(tok)
	return true
}

// parseTypeInheritanceClause parses `: class?, T1, T2, ...`.
func (p *Parser) parseTypeInheritanceClause() (*ast.TypeInheritanceClause, *errors.ParseError) {
	start := p.pos()
	if !p.eatKind(token.Colon) {
		return nil, nil
	}
	clause := &ast.TypeInheritanceClause{Position: start}
	if p.atKeyword("class") {
		p.next()
		clause.RequiresClass = true
		if !p.eatKind(token.Comma) {
			return clause, nil
		}
	}
	for {
		t, err := p.parseTypeIdentifier()
		if err != nil {
			return nil, err
		}
		clause.Types = append(clause.Types, t.(*ast.TypeIdentifier))
		if !p.eatKind(token.Comma) {
			break
		}
	}
	return clause, nil
}

// parseGenericParameterClause parses `<T, U: Constraint, ...>`.
func (p *Parser) parseGenericParameterClause() (*ast.GenericParameterClause, *errors.ParseError) {
	if !p.atLeadingAngle() {
		return nil, nil
	}
	start := p.pos()
	mark := p.mark()
	if !p.eatLeadingAngle() {
		return nil, nil
	}
	var params []ast.GenericParameter
	for {
		nameTok, err := p.expectKind(token.Ident, "generic parameter name")
		if err != nil {
			p.reset(mark)
			return nil, nil
		}
		gp := ast.GenericParameter{Name: nameTok.Literal, Position: nameTok.Pos}
		if p.eatKind(token.Colon) {
			for {
				t, err := p.parseTypeIdentifier()
				if err != nil {
					p.reset(mark)
					return nil, nil
				}
				gp.Constraints = append(gp.Constraints, t.(*ast.TypeIdentifier))
				if !p.eatKind(token.Comma) {
					break
				}
			}
		}
		params = append(params, gp)
		if !p.eatKind(token.Comma) {
			break
		}
	}
	if err := p.expectCloseAngle(); err != nil {
		p.reset(mark)
		return nil, nil
	}
	return &ast.GenericParameterClause{Parameters: params, Position: start}, nil
}
