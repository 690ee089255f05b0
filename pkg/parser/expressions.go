package parser

import (
	"strconv"

	"swiftparse/pkg/ast"
	"swiftparse/pkg/combinator"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/source"
	"swiftparse/pkg/token"
)

// ParseExpression parses the top-level expression production: an
// optional try marker, a prefix expression, and a flat list of
// binary-expression tails. Precedence and associativity are left to a
// later stage; this layer records surface order only.
func (p *Parser) ParseExpression() (*ast.Expr, *errors.ParseError) {
	start := p.pos()
	tryKind := p.parseTryMarker()
	prefix, err := p.parsePrefixExpression()
	if err != nil {
		return nil, err
	}
	var tails []ast.BinaryTail
	for {
		tail, ok, err := p.tryParseBinaryTail()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		tails = append(tails, tail)
	}
	return p.arena.NewExpr(ast.Expr{TryKind: tryKind, Prefix: prefix, Tails: tails, Position: start}), nil
}

func (p *Parser) parseTryMarker() ast.TryMarker {
	if !p.eatKeyword("try") {
		return ast.TryNone
	}
	if p.eatOperator("?") {
		return ast.TryOptional
	}
	if p.eatOperator("!") {
		return ast.TryForced
	}
	return ast.Try
}

// tryParseBinaryTail attempts one of the four tail shapes, in the order
// the grammar resolves their shared leading tokens: a conditional's `?`
// is checked before postfix optional-chaining has a chance to claim it
// (postfix claims `?` only when immediately followed by a member,
// subscript, or call, per parsePostfixExpression), then assignment,
// then type-casting, then falls back to an ordinary operator.
func (p *Parser) tryParseBinaryTail() (ast.BinaryTail, bool, *errors.ParseError) {
	if p.atOperator("?") {
		cond, err := p.parseConditionalTail()
		if err != nil {
			return ast.BinaryTail{}, false, err
		}
		return ast.BinaryTail{Conditional: cond}, true, nil
	}
	if p.atOperator("=") {
		asgn, err := p.parseAssignmentTail()
		if err != nil {
			return ast.BinaryTail{}, false, err
		}
		return ast.BinaryTail{Assignment: asgn}, true, nil
	}
	if p.atKeyword("is") || p.atKeyword("as") {
		cast, err := p.parseTypeCastTail()
		if err != nil {
			return ast.BinaryTail{}, false, err
		}
		return ast.BinaryTail{TypeCast: cast}, true, nil
	}
	if p.atKind(token.Operator) {
		op, err := p.parseBinaryOpTail()
		if err != nil {
			return ast.BinaryTail{}, false, err
		}
		return ast.BinaryTail{BinaryOp: op}, true, nil
	}
	return ast.BinaryTail{}, false, nil
}

func (p *Parser) parseConditionalTail() (*ast.ConditionalExpression, *errors.ParseError) {
	start := p.pos()
	p.next() // '?'
	trueBranch, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectKind0(token.Colon); err != nil {
		return nil, err
	}
	falseBranch, err := p.parsePrefixExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpression{TrueBranch: trueBranch, FalseBranch: falseBranch, Position: start}, nil
}

func (p *Parser) parseAssignmentTail() (*ast.AssignmentExpression, *errors.ParseError) {
	start := p.pos()
	p.next() // '='
	tryKind := p.parseTryMarker()
	value, err := p.parsePrefixExpression()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpression{TryKind: tryKind, Value: value, Position: start}, nil
}

func (p *Parser) parseTypeCastTail() (*ast.TypeCastExpression, *errors.ParseError) {
	start := p.pos()
	if p.eatKeyword("is") {
		t, err := p.ParseType()
		if err != nil {
			return nil, err
		}
		return &ast.TypeCastExpression{Op: ast.CastIs, TargetType: t, Position: start}, nil
	}
	p.next() // 'as'
	op := ast.CastAs
	if p.eatOperator("?") {
		op = ast.CastAsOptional
	} else if p.eatOperator("!") {
		op = ast.CastAsForced
	}
	t, err := p.ParseType()
	if err != nil {
		return nil, err
	}
	return &ast.TypeCastExpression{Op: op, TargetType: t, Position: start}, nil
}

func (p *Parser) parseBinaryOpTail() (*ast.BinaryOpExpression, *errors.ParseError) {
	start := p.pos()
	opTok, _ := p.next()
	right, err := p.parsePrefixExpression()
	if err != nil {
		return nil, err
	}
	return p.arena.NewBinaryOp(ast.BinaryOpExpression{Operator: opTok.Literal, Right: right, Position: start}), nil
}

// parsePrefixExpression handles `&name` (in-out), an ordinary prefix
// operator applied to a postfix chain, or falls through to the postfix
// chain directly.
func (p *Parser) parsePrefixExpression() (ast.Expression, *errors.ParseError) {
	start := p.pos()
	if p.atOperator("&") {
		mark := p.mark()
		p.next()
		if p.atKind(token.Ident) {
			nameTok, _ := p.next()
			return &ast.InOutExpression{Name: nameTok.Literal, Position: start}, nil
		}
		p.reset(mark)
	}
	if p.atKind(token.Operator) {
		opTok, _ := p.next()
		operand, err := p.parsePostfixExpression()
		if err != nil {
			return nil, err
		}
		return &ast.PrefixOpExpression{Operator: opTok.Literal, Operand: operand, Position: start}, nil
	}
	return p.parsePostfixExpression()
}

// parsePostfixExpression parses a primary expression followed by any
// number of postfix suffixes: forced-value `!`, optional-chaining `?`
// (only when directly followed by a member/subscript/call), dot-member
// access (including `.self`, `.dynamicType`, `.init`, and tuple-index
// access), function calls with an optional trailing closure, and
// subscripts.
func (p *Parser) parsePostfixExpression() (ast.Expression, *errors.ParseError) {
	base, err := p.parsePrimaryExpression()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.atOperator("!") && p.forcedValueFollows():
			p.next()
			base = &ast.ForcedValueExpression{Operand: base, Position: base.Pos()}
			continue
		case p.atOperator("?") && p.optionalChainFollows():
			p.next()
			base = &ast.OptionalChainExpression{Operand: base, Position: base.Pos()}
			continue
		case p.atKind(token.Dot):
			base, err = p.parseMemberSuffix(base)
			if err != nil {
				return nil, err
			}
			continue
		case p.atKind(token.LParen):
			base, err = p.parseCallSuffix(base)
			if err != nil {
				return nil, err
			}
			continue
		case p.atKind(token.LBracket):
			base, err = p.parseSubscriptSuffix(base)
			if err != nil {
				return nil, err
			}
			continue
		case p.atKind(token.LBrace) && !p.noTrailingClosure:
			cl, ok, err := p.tryParseTrailingClosure()
			if err != nil {
				return nil, err
			}
			if !ok {
				return base, nil
			}
			base = p.arena.NewCall(ast.CallExpression{Callee: base, TrailingClosure: cl, Position: base.Pos()})
			continue
		case p.atPostfixOperator() && p.postfixOperatorFollows():
			opTok, _ := p.next()
			base = &ast.PostfixOpExpression{Operand: base, Operator: opTok.Literal, Position: base.Pos()}
			continue
		}
		return base, nil
	}
}

// optionalChainFollows looks past a leading '?' to decide whether it
// opens optional chaining (immediately followed by '.', '[', or '(')
// rather than the ternary conditional's '?'. Built on combinator.LookAhead
// since the probe must never consume input regardless of its answer.
func (p *Parser) optionalChainFollows() bool {
	probe := combinator.LookAhead(func(s combinator.State) (bool, combinator.State, *errors.ParseError) {
		_, s1, err := s.Advance()
		if err != nil {
			return false, s, err
		}
		next, err := s1.Peek()
		if err != nil {
			return false, s, err
		}
		if next.Kind != token.Dot && next.Kind != token.LBracket && next.Kind != token.LParen {
			return false, s, errors.New(errors.Syntax, next.Pos, "not an optional-chaining suffix")
		}
		return true, s1, nil
	})
	follows, _, err := probe(p.state)
	return err == nil && follows
}

// forcedValueFollows reports whether a leading '!' closes a postfix chain
// (forced-value unwrap) rather than opening the start of a new primary
// expression that happens to begin with an operator token reused as a
// later binary operator once this '!' is consumed elsewhere. Mirrors
// optionalChainFollows: built on combinator.LookAhead so a miss leaves
// p.state untouched.
func (p *Parser) forcedValueFollows() bool {
	return p.noPrimaryAfterNextToken()
}

// postfixOperatorFollows applies the same "not immediately followed by a
// primary" guard to a declared postfix operator.
func (p *Parser) postfixOperatorFollows() bool {
	return p.noPrimaryAfterNextToken()
}

// noPrimaryAfterNextToken looks past the next token (the '!' or postfix
// operator under consideration) and reports whether what follows it could
// not start a new primary expression. If it could, the caller must not
// commit the next token as a postfix suffix — e.g. `a !b` is the prefix
// operator '!' applied to `b`, not `a` force-unwrapped followed by a
// dangling `b`.
func (p *Parser) noPrimaryAfterNextToken() bool {
	probe := combinator.LookAhead(func(s combinator.State) (bool, combinator.State, *errors.ParseError) {
		_, s1, err := s.Advance()
		if err != nil {
			return false, s, err
		}
		next, err := s1.Peek()
		if err != nil {
			// EOF right after the operator: nothing follows, so nothing
			// that could be a primary follows either.
			return true, s1, nil
		}
		if startsPrimary(next) {
			return false, s, errors.New(errors.Syntax, next.Pos, "operator immediately followed by a primary expression")
		}
		return true, s1, nil
	})
	noPrimary, _, err := probe(p.state)
	return err == nil && noPrimary
}

// startsPrimary reports whether tok could begin a primary expression, per
// the token kinds and keywords parsePrimaryExpression itself handles.
func startsPrimary(tok token.Token) bool {
	switch tok.Kind {
	case token.Number, token.String, token.Ident, token.LParen, token.LBrace, token.Dot:
		return true
	}
	switch {
	case tok.IsKeyword("self"), tok.IsKeyword("super"), tok.IsKeyword("true"),
		tok.IsKeyword("false"), tok.IsKeyword("nil"), tok.IsKeyword("_"):
		return true
	}
	return false
}

func (p *Parser) parseMemberSuffix(base ast.Expression) (ast.Expression, *errors.ParseError) {
	p.next() // '.'
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Kind == token.Keyword && tok.Literal == "self":
		p.next()
		return &ast.SelfExpression{Base: base, Position: base.Pos()}, nil
	case tok.Kind == token.Keyword && tok.Literal == "dynamicType":
		p.next()
		return &ast.DynamicTypeExpression{Base: base, Position: base.Pos()}, nil
	case tok.Kind == token.Keyword && tok.Literal == "init":
		p.next()
		return &ast.InitExpression{Base: base, Position: base.Pos()}, nil
	case tok.Kind == token.Number:
		p.next()
		idx, convErr := strconv.Atoi(tok.Literal)
		if convErr != nil {
			return nil, errors.New(errors.Syntax, tok.Pos, "invalid tuple member index "+tok.Literal)
		}
		return &ast.TupleMemberExpression{Base: base, Index: idx, Position: base.Pos()}, nil
	case tok.Kind == token.Ident:
		p.next()
		member := p.arena.NewMember(ast.MemberExpression{Base: base, Member: tok.Literal, Position: base.Pos()})
		if args, ok := p.tryParseGenericArgumentClause(); ok {
			member.GenericArgs = args
		}
		return member, nil
	}
	return nil, errors.New(errors.Syntax, tok.Pos, "expected member name after '.'")
}

func (p *Parser) parseCallSuffix(callee ast.Expression) (ast.Expression, *errors.ParseError) {
	args, err := p.parseArgumentList(token.LParen, token.RParen)
	if err != nil {
		return nil, err
	}
	call := p.arena.NewCall(ast.CallExpression{Callee: callee, Arguments: args, Position: callee.Pos()})
	if cl, ok, err := p.tryParseTrailingClosure(); err != nil {
		return nil, err
	} else if ok {
		call.TrailingClosure = cl
	}
	return call, nil
}

func (p *Parser) parseSubscriptSuffix(base ast.Expression) (ast.Expression, *errors.ParseError) {
	args, err := p.parseArgumentList(token.LBracket, token.RBracket)
	if err != nil {
		return nil, err
	}
	return &ast.SubscriptExpression{Base: base, Arguments: args, Position: base.Pos()}, nil
}

func (p *Parser) parseArgumentList(open, close token.Kind) ([]ast.Argument, *errors.ParseError) {
	if err := p.expectKind0(open); err != nil {
		return nil, err
	}
	var args []ast.Argument
	if !p.atKind(close) {
		for {
			arg, err := p.parseArgument()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.eatKind(token.Comma) {
				break
			}
		}
	}
	if err := p.expectKind0(close); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseArgument() (ast.Argument, *errors.ParseError) {
	start := p.pos()
	if label, ok := p.tryParseArgumentLabel(); ok {
		value, err := p.ParseExpression()
		if err != nil {
			return ast.Argument{}, err
		}
		return ast.Argument{Label: label, HasLabel: true, Value: value, Position: start}, nil
	}
	value, err := p.ParseExpression()
	if err != nil {
		return ast.Argument{}, err
	}
	return ast.Argument{Value: value, Position: start}, nil
}

// tryParseArgumentLabel speculatively consumes a `name:` or `_:` label
// ahead of an argument value, backtracking to the original position on
// any mismatch. Built on combinator.Try, the kernel's core backtracking
// primitive: label and colon either both commit or neither does.
func (p *Parser) tryParseArgumentLabel() (string, bool) {
	parseLabel := combinator.Try(func(s combinator.State) (string, combinator.State, *errors.ParseError) {
		tok, s1, err := s.Advance()
		if err != nil {
			return "", s, err
		}
		var label string
		switch {
		case tok.Kind == token.Ident:
			label = tok.Literal
		case tok.Kind == token.Keyword && tok.Literal == "_":
			label = "_"
		default:
			return "", s, errors.New(errors.Syntax, tok.Pos, "expected an argument label")
		}
		colonTok, s2, err := s1.Advance()
		if err != nil || colonTok.Kind != token.Colon {
			return "", s, errors.New(errors.Syntax, tok.Pos, "expected ':' after argument label")
		}
		return label, s2, nil
	})
	label, s1, err := parseLabel(p.state)
	if err != nil {
		return "", false
	}
	p.state = s1
	return label, true
}

// tryParseTrailingClosure attempts a closure literal directly following
// a call, e.g. `f(a) { ... }` or the parenthesis-free `f { ... }`.
func (p *Parser) tryParseTrailingClosure() (*ast.ClosureExpression, bool, *errors.ParseError) {
	if p.noTrailingClosure || !p.atKind(token.LBrace) {
		return nil, false, nil
	}
	cl, err := p.parseClosureExpression()
	if err != nil {
		return nil, false, err
	}
	return cl, true, nil
}

// parsePrimaryExpression parses one atomic expression: a literal, an
// identifier (with optional generic arguments), self/super, a
// parenthesized or tuple expression, an implicit member, a closure
// literal, or the wildcard `_`.
func (p *Parser) parsePrimaryExpression() (ast.Expression, *errors.ParseError) {
	start := p.pos()
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case token.Number:
		p.next()
		num := p.arena.NewNumeric(ast.NumericLiteral{Text: tok.Literal, Position: start})
		return &ast.LiteralExpression{Value: num, Position: start}, nil
	case token.String:
		return p.parseStringLiteralExpression(tok)
	case token.Ident:
		p.next()
		ident := p.arena.NewIdentifier(ast.IdentifierExpression{Name: tok.Literal, Position: start})
		if args, ok := p.tryParseGenericArgumentClause(); ok {
			ident.GenericArgs = args
		}
		return ident, nil
	case token.LParen:
		return p.parseParenthesizedExpression()
	case token.LBrace:
		return p.parseClosureExpression()
	case token.Dot:
		p.next()
		memberTok, err := p.expectKind(token.Ident, "member name")
		if err != nil {
			return nil, err
		}
		return &ast.ImplicitMemberExpression{Member: memberTok.Literal, Position: start}, nil
	}

	switch {
	case tok.IsKeyword("self"):
		p.next()
		return &ast.SelfLiteralExpression{Position: start}, nil
	case tok.IsKeyword("super"):
		p.next()
		return &ast.SuperLiteralExpression{Position: start}, nil
	case tok.IsKeyword("true"):
		p.next()
		b := p.arena.NewBoolean(ast.BooleanLiteral{Value: true, Position: start})
		return &ast.LiteralExpression{Value: b, Position: start}, nil
	case tok.IsKeyword("false"):
		p.next()
		b := p.arena.NewBoolean(ast.BooleanLiteral{Value: false, Position: start})
		return &ast.LiteralExpression{Value: b, Position: start}, nil
	case tok.IsKeyword("nil"):
		p.next()
		return &ast.LiteralExpression{Value: &ast.NilLiteral{Position: start}, Position: start}, nil
	case tok.IsKeyword("_"):
		p.next()
		return &ast.WildcardExpression{Position: start}, nil
	}

	return nil, errors.New(errors.Syntax, tok.Pos, "expected an expression")
}

func (p *Parser) parseParenthesizedExpression() (ast.Expression, *errors.ParseError) {
	start := p.pos()
	if err := p.expectKind0(token.LParen); err != nil {
		return nil, err
	}
	var elems []ast.Argument
	if !p.atKind(token.RParen) {
		for {
			arg, err := p.parseArgument()
			if err != nil {
				return nil, err
			}
			elems = append(elems, arg)
			if !p.eatKind(token.Comma) {
				break
			}
		}
	}
	if err := p.expectKind0(token.RParen); err != nil {
		return nil, err
	}
	return &ast.ParenthesizedExpression{Elements: elems, Position: start}, nil
}

// parseStringLiteralExpression builds a StringLiteral, sub-parsing each
// interpolation span's raw source text as an independent expression.
func (p *Parser) parseStringLiteralExpression(tok token.Token) (ast.Expression, *errors.ParseError) {
	start := tok.Pos
	p.next()
	if len(tok.Segments) == 0 {
		str := p.arena.NewString(ast.StringLiteral{Chunks: []ast.StringChunk{{Text: tok.Literal}}, Position: start})
		return &ast.LiteralExpression{Value: str, Position: start}, nil
	}
	var chunks []ast.StringChunk
	for _, seg := range tok.Segments {
		if !seg.IsExpr {
			chunks = append(chunks, ast.StringChunk{Text: seg.Text})
			continue
		}
		expr, err := p.parseInterpolatedSegment(seg)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, ast.StringChunk{IsExpr: true, ExprValue: expr})
	}
	str := p.arena.NewString(ast.StringLiteral{Chunks: chunks, Position: start})
	return &ast.LiteralExpression{Value: str, Position: start}, nil
}

// parseInterpolatedSegment sub-parses one `\(...)` span's raw source
// text as a standalone expression, using a fresh lexer/parser pair over
// just that span — the embedded expression's own position is reported
// relative to the span rather than the whole file.
func (p *Parser) parseInterpolatedSegment(seg token.StringSegment) (ast.Expression, *errors.ParseError) {
	outer := p.lex.Source()
	sub := source.New(outer.Name, outer.Path, seg.ExprSource)
	subParser := New(sub)
	expr, err := subParser.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := subParser.finish(); err != nil {
		return nil, err
	}
	return expr, nil
}
