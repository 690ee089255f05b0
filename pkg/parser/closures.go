package parser

import (
	"swiftparse/pkg/ast"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/token"
)

// parseClosureExpression parses `{ [signature in] statements }`. The
// signature is attempted speculatively: the closure body is an ordinary
// statement list, and the only thing that distinguishes a signature
// prelude from the first statement is the trailing `in` keyword, so a
// failed signature attempt backtracks cleanly to "no signature".
func (p *Parser) parseClosureExpression() (*ast.ClosureExpression, *errors.ParseError) {
	start := p.pos()
	if err := p.expectKind0(token.LBrace); err != nil {
		return nil, err
	}
	sig := p.tryParseClosureSignature()
	var stmts []ast.Statement
	for !p.atKind(token.RBrace) && !p.atEOF() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if err := p.expectKind0(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.ClosureExpression{Signature: sig, Statements: stmts, Position: start}, nil
}

// tryParseClosureSignature speculatively parses a capture list and/or
// parameter clause followed by `in`, returning nil if no such prelude
// is present (or if it fails to resolve to a trailing `in`).
func (p *Parser) tryParseClosureSignature() *ast.ClosureSignature {
	mark := p.mark()
	start := p.pos()

	var captures []ast.Capture
	if p.atKind(token.LBracket) {
		caps, ok := p.tryParseCaptureList()
		if !ok {
			p.reset(mark)
			return nil
		}
		captures = caps
	}

	sig := &ast.ClosureSignature{Captures: captures, Position: start}

	if p.atKind(token.LParen) {
		params, ok := p.tryParseClosureParameterClause()
		if !ok {
			p.reset(mark)
			return nil
		}
		sig.HasParameterClause = true
		sig.Parameters = params
	} else if p.atKind(token.Ident) {
		idents, ok := p.tryParseClosureIdentifierList()
		if !ok {
			p.reset(mark)
			return nil
		}
		sig.HasIdentifierList = true
		sig.IdentifierList = idents
	}

	if p.eatOperator("->") {
		result, err := p.ParseType()
		if err != nil {
			p.reset(mark)
			return nil
		}
		sig.ResultType = result
	}

	if !p.eatKeyword("in") {
		p.reset(mark)
		return nil
	}
	return sig
}

func (p *Parser) tryParseCaptureList() ([]ast.Capture, bool) {
	mark := p.mark()
	p.next() // '['
	var caps []ast.Capture
	if !p.atKind(token.RBracket) {
		for {
			c, ok := p.tryParseCapture()
			if !ok {
				p.reset(mark)
				return nil, false
			}
			caps = append(caps, c)
			if !p.eatKind(token.Comma) {
				break
			}
		}
	}
	if !p.eatKind(token.RBracket) {
		p.reset(mark)
		return nil, false
	}
	return caps, true
}

func (p *Parser) tryParseCapture() (ast.Capture, bool) {
	start := p.pos()
	spec := ast.CaptureNone
	if p.atKeyword("weak") {
		p.next()
		spec = ast.CaptureWeak
	} else if p.atKeyword("unowned") {
		p.next()
		spec = ast.CaptureUnowned
		if p.atKind(token.LParen) {
			mark := p.mark()
			p.next()
			switch {
			case p.atKeyword("safe") || p.atIdentText("safe"):
				p.next()
				spec = ast.CaptureUnownedSafe
			case p.atIdentText("unsafe"):
				p.next()
				spec = ast.CaptureUnownedUnsafe
			default:
				p.reset(mark)
			}
			if spec != ast.CaptureUnowned {
				if !p.eatKind(token.RParen) {
					p.reset(mark)
					spec = ast.CaptureUnowned
				}
			}
		}
	}
	value, err := p.ParseExpression()
	if err != nil {
		return ast.Capture{}, false
	}
	return ast.Capture{Specifier: spec, Value: value, Position: start}, true
}

func (p *Parser) tryParseClosureParameterClause() ([]ast.ClosureParameter, bool) {
	mark := p.mark()
	p.next() // '('
	var params []ast.ClosureParameter
	if !p.atKind(token.RParen) {
		for {
			start := p.pos()
			nameTok, err := p.expectKind(token.Ident, "closure parameter name")
			if err != nil {
				p.reset(mark)
				return nil, false
			}
			cp := ast.ClosureParameter{Name: nameTok.Literal, Position: start}
			if p.eatKind(token.Colon) {
				t, err := p.ParseType()
				if err != nil {
					p.reset(mark)
					return nil, false
				}
				cp.TypeAnnotation = t
			}
			params = append(params, cp)
			if !p.eatKind(token.Comma) {
				break
			}
		}
	}
	if !p.eatKind(token.RParen) {
		p.reset(mark)
		return nil, false
	}
	return params, true
}

func (p *Parser) tryParseClosureIdentifierList() ([]string, bool) {
	mark := p.mark()
	var idents []string
	for {
		tok, err := p.peek()
		if err != nil || tok.Kind != token.Ident {
			p.reset(mark)
			return nil, false
		}
		p.next()
		idents = append(idents, tok.Literal)
		if !p.eatKind(token.Comma) {
			break
		}
	}
	return idents, true
}
