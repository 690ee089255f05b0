package parser

import (
	"strconv"
	"strings"

	"swiftparse/pkg/ast"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/token"
)

// parseConditionClause parses the comma-separated condition list shared
// by if/while/guard, with trailing-closure parsing suppressed for the
// whole clause so a following '{' always belongs to the statement's
// body rather than a parenthesis-free call.
func (p *Parser) parseConditionClause() ([]ast.Condition, *errors.ParseError) {
	var conds []ast.Condition
	err := p.withoutTrailingClosures(func() *errors.ParseError {
		for {
			c, err := p.parseCondition()
			if err != nil {
				return err
			}
			conds = append(conds, c)
			if !p.eatKind(token.Comma) {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conds, nil
}

func (p *Parser) parseCondition() (ast.Condition, *errors.ParseError) {
	start := p.pos()
	switch {
	case p.atKeyword("case"):
		return p.parseCaseCondition(start)
	case p.atKeyword("let") || p.atKeyword("var"):
		return p.parseOptionalBindingCondition(start)
	case p.atDirective("available"):
		return p.parseAvailabilityCondition(start)
	}
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionCondition{Value: value, Position: start}, nil
}

func (p *Parser) parseCaseCondition(start errors.Position) (ast.Condition, *errors.ParseError) {
	p.next() // 'case'
	pat, err := p.ParsePattern()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	init, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	var where ast.Expression
	if p.eatKeyword("where") {
		w, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		where = w
	}
	return &ast.CaseCondition{Pattern: pat, Initializer: init, Where: where, Position: start}, nil
}

// parseOptionalBindingCondition parses a `let`/`var` binding head
// followed by zero or more comma-separated continuation bindings that
// drop the repeated keyword — the chained-binding sugar this grammar
// carries forward from the source language's early optional-binding
// syntax. A continuation is attempted speculatively per comma: the
// first item that doesn't parse as `pattern = expr` ends the chain
// without consuming its leading comma, leaving it for the enclosing
// condition-clause loop.
func (p *Parser) parseOptionalBindingCondition(start errors.Position) (ast.Condition, *errors.ParseError) {
	head, err := p.parseOptionalBindingHead()
	if err != nil {
		return nil, err
	}
	cond := &ast.OptionalBindingCondition{Head: head, Position: start}
	for {
		mark := p.mark()
		if !p.eatKind(token.Comma) {
			break
		}
		cont, ok := p.tryParseOptionalBindingContinuation()
		if !ok {
			p.reset(mark)
			break
		}
		cond.Continuations = append(cond.Continuations, cont)
	}
	if p.eatKeyword("where") {
		w, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		cond.Where = w
	}
	return cond, nil
}

func (p *Parser) parseOptionalBindingHead() (ast.OptionalBindingHead, *errors.ParseError) {
	start := p.pos()
	isVar := p.atKeyword("var")
	p.next() // 'let' or 'var'
	pat, err := p.ParsePattern()
	if err != nil {
		return ast.OptionalBindingHead{}, err
	}
	if err := p.expectOperator("="); err != nil {
		return ast.OptionalBindingHead{}, err
	}
	init, err := p.ParseExpression()
	if err != nil {
		return ast.OptionalBindingHead{}, err
	}
	return ast.OptionalBindingHead{IsVar: isVar, Pattern: pat, Initializer: init, Position: start}, nil
}

func (p *Parser) tryParseOptionalBindingContinuation() (ast.OptionalBindingHead, bool) {
	mark := p.mark()
	start := p.pos()
	pat, err := p.ParsePattern()
	if err != nil {
		p.reset(mark)
		return ast.OptionalBindingHead{}, false
	}
	if !p.eatOperator("=") {
		p.reset(mark)
		return ast.OptionalBindingHead{}, false
	}
	init, err := p.ParseExpression()
	if err != nil {
		p.reset(mark)
		return ast.OptionalBindingHead{}, false
	}
	return ast.OptionalBindingHead{Pattern: pat, Initializer: init, Position: start}, true
}

// parseAvailabilityCondition parses `#available(platform version, ..., *)`.
// The leading '#available' has already been matched positionally by
// the caller's atDirective lookahead; it still needs to be consumed here.
func (p *Parser) parseAvailabilityCondition(start errors.Position) (ast.Condition, *errors.ParseError) {
	p.next() // '#'
	p.next() // 'available'
	if err := p.expectKind0(token.LParen); err != nil {
		return nil, err
	}
	var args []ast.AvailabilityArgument
	for {
		arg, err := p.parseAvailabilityArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.eatKind(token.Comma) {
			break
		}
	}
	if err := p.expectKind0(token.RParen); err != nil {
		return nil, err
	}
	return &ast.AvailabilityCondition{Arguments: args, Position: start}, nil
}

func (p *Parser) parseAvailabilityArgument() (ast.AvailabilityArgument, *errors.ParseError) {
	if p.atOperator("*") {
		p.next()
		return ast.AvailabilityArgument{Wildcard: true}, nil
	}
	platformTok, err := p.expectKind(token.Ident, "platform name")
	if err != nil {
		return ast.AvailabilityArgument{}, err
	}
	numTok, err := p.expectKind(token.Number, "version number")
	if err != nil {
		return ast.AvailabilityArgument{}, err
	}
	version, convErr := parseVersionComponents(numTok.Literal)
	if convErr != nil {
		return ast.AvailabilityArgument{}, errors.New(errors.Lexical, numTok.Pos, "invalid version number")
	}
	if len(version) < 3 && p.atKind(token.Dot) {
		mark := p.mark()
		p.next()
		extra, err := p.expectKind(token.Number, "version component")
		if err != nil {
			p.reset(mark)
		} else if n, convErr := strconv.Atoi(extra.Literal); convErr == nil {
			version = append(version, n)
		} else {
			p.reset(mark)
		}
	}
	return ast.AvailabilityArgument{Platform: platformTok.Literal, Version: version}, nil
}

func parseVersionComponents(literal string) ([]int, error) {
	parts := strings.Split(literal, ".")
	version := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		version = append(version, n)
	}
	return version, nil
}
