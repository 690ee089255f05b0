package parser

import (
	"swiftparse/pkg/ast"
	"swiftparse/pkg/combinator"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/token"
)

// ParsePattern parses a full pattern: a primary pattern, optionally
// narrowed by `as Type`, optionally wrapped by one or more trailing `?`.
func (p *Parser) ParsePattern() (ast.Pattern, *errors.ParseError) {
	pat, err := p.parsePrimaryPattern()
	if err != nil {
		return nil, err
	}
	for p.atOperator("?") {
		p.next()
		pat = &ast.OptionalPattern{Wrapped: pat, Position: pat.Pos()}
	}
	if p.atKeyword("as") {
		p.next()
		asType, err := p.ParseType()
		if err != nil {
			return nil, err
		}
		pat = &ast.AsPattern{Wrapped: pat, AsType: asType, Position: pat.Pos()}
	}
	return pat, nil
}

// parsePrimaryPattern tries, in order: value-binding (var/let), wildcard,
// enum-case, tuple, is-pattern, identifier-with-optional-annotation, and
// finally falls back to an arbitrary expression used as a pattern.
func (p *Parser) parsePrimaryPattern() (ast.Pattern, *errors.ParseError) {
	start := p.pos()

	if p.atKeyword("var") || p.atKeyword("let") {
		isVar := p.atKeyword("var")
		p.next()
		wrapped, err := p.parsePrimaryPattern()
		if err != nil {
			return nil, err
		}
		return &ast.ValueBindingPattern{IsVar: isVar, Wrapped: wrapped, Position: start}, nil
	}

	if p.atKeyword("_") {
		p.next()
		ta, err := p.parseOptionalTypeAnnotation()
		if err != nil {
			return nil, err
		}
		return &ast.WildcardPattern{TypeAnnotation: ta, Position: start}, nil
	}

	if p.atKeyword("is") {
		p.next()
		t, err := p.ParseType()
		if err != nil {
			return nil, err
		}
		return &ast.IsPattern{CheckedType: t, Position: start}, nil
	}

	if p.atKind(token.Dot) {
		if pat, ok, err := p.tryParseEnumCasePattern(""); ok || err != nil {
			return pat, err
		}
	}

	if p.atKind(token.Ident) {
		if pat, ok, err := p.tryParseQualifiedEnumCasePattern(); ok || err != nil {
			return pat, err
		}
	}

	if p.atKind(token.LParen) {
		return p.parseTuplePattern()
	}

	if p.atKind(token.Ident) {
		nameTok, _ := p.next()
		ta, err := p.parseOptionalTypeAnnotation()
		if err != nil {
			return nil, err
		}
		return &ast.IdentifierPattern{Name: nameTok.Literal, TypeAnnotation: ta, Position: start}, nil
	}

	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionPattern{Value: expr, Position: start}, nil
}

func (p *Parser) parseOptionalTypeAnnotation() (ast.Type, *errors.ParseError) {
	if !p.eatKind(token.Colon) {
		return nil, nil
	}
	return p.ParseType()
}

// tryParseEnumCasePattern attempts `.caseName` or `.caseName(pat, ...)`
// starting at a leading '.', the bare form used when the enum type is
// inferred from context (e.g. inside a switch over a known enum).
func (p *Parser) tryParseEnumCasePattern(enumTypeName string) (ast.Pattern, bool, *errors.ParseError) {
	start := p.pos()
	mark := p.mark()
	if !p.eatKind(token.Dot) {
		return nil, false, nil
	}
	caseTok, err := p.expectKind(token.Ident, "enum case name")
	if err != nil {
		p.reset(mark)
		return nil, false, nil
	}
	payload, ok := p.tryParseEnumCasePayload()
	if !ok {
		payload = nil
	}
	return &ast.EnumCasePattern{
		EnumTypeName: enumTypeName,
		CaseName:     caseTok.Literal,
		Payload:      payload,
		Position:     start,
	}, true, nil
}

// tryParseQualifiedEnumCasePattern attempts `EnumType.caseName(...)`, the
// fully-qualified form, backtracking cleanly if the identifier turns out
// to be an ordinary value-binding name instead.
func (p *Parser) tryParseQualifiedEnumCasePattern() (ast.Pattern, bool, *errors.ParseError) {
	mark := p.mark()
	nameTok, err := p.peek()
	if err != nil || nameTok.Kind != token.Ident {
		return nil, false, nil
	}
	// A bare identifier is only a qualified enum-case pattern if it is
	// immediately followed by '.', distinguishing it from a plain
	// identifier pattern or a typed binding like `x: Int`. Checked with
	// combinator.LookAhead since the probe must not consume on a miss.
	followedByDot := combinator.LookAhead(func(s combinator.State) (struct{}, combinator.State, *errors.ParseError) {
		_, s1, err := s.Advance()
		if err != nil {
			return struct{}{}, s, err
		}
		next, err := s1.Peek()
		if err != nil {
			return struct{}{}, s, err
		}
		if next.Kind != token.Dot {
			return struct{}{}, s, errors.New(errors.Syntax, next.Pos, "expected '.'")
		}
		return struct{}{}, s1, nil
	})
	if _, _, err := followedByDot(p.state); err != nil {
		return nil, false, nil
	}
	p.next() // identifier
	pat, ok, perr := p.tryParseEnumCasePattern(nameTok.Literal)
	if !ok || perr != nil {
		p.reset(mark)
		return nil, false, perr
	}
	return pat, true, nil
}

// tryParseEnumCasePayload attempts a parenthesized destructuring payload
// immediately following a case name, e.g. `.some(let x)`.
func (p *Parser) tryParseEnumCasePayload() ([]ast.Pattern, bool) {
	if !p.atKind(token.LParen) {
		return nil, false
	}
	mark := p.mark()
	p.next()
	var elems []ast.Pattern
	if !p.atKind(token.RParen) {
		for {
			el, err := p.ParsePattern()
			if err != nil {
				p.reset(mark)
				return nil, false
			}
			elems = append(elems, el)
			if !p.eatKind(token.Comma) {
				break
			}
		}
	}
	if !p.eatKind(token.RParen) {
		p.reset(mark)
		return nil, false
	}
	return elems, true
}

func (p *Parser) parseTuplePattern() (ast.Pattern, *errors.ParseError) {
	start := p.pos()
	if err := p.expectKind0(token.LParen); err != nil {
		return nil, err
	}
	var elems []ast.Pattern
	if !p.atKind(token.RParen) {
		for {
			el, err := p.ParsePattern()
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
			if !p.eatKind(token.Comma) {
				break
			}
		}
	}
	if err := p.expectKind0(token.RParen); err != nil {
		return nil, err
	}
	ta, err := p.parseOptionalTypeAnnotation()
	if err != nil {
		return nil, err
	}
	return &ast.TuplePattern{Elements: elems, TypeAnnotation: ta, Position: start}, nil
}
