package parser

import (
	"strconv"

	"swiftparse/pkg/ast"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/token"
)

// ParseStatement parses one statement: an optional label, then one of
// the directive/control-flow/declaration/expression forms.
func (p *Parser) ParseStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	if label, ok := p.tryParseStatementLabel(); ok {
		inner, err := p.parseUnlabeledStatement()
		if err != nil {
			return nil, err
		}
		return &ast.LabeledStatement{Label: label, Statement: inner, Position: start}, nil
	}
	return p.parseUnlabeledStatement()
}

func (p *Parser) tryParseStatementLabel() (string, bool) {
	mark := p.mark()
	tok, err := p.peek()
	if err != nil || tok.Kind != token.Ident {
		return "", false
	}
	p.next()
	if !p.eatKind(token.Colon) {
		p.reset(mark)
		return "", false
	}
	return tok.Literal, true
}

func (p *Parser) parseUnlabeledStatement() (ast.Statement, *errors.ParseError) {
	switch {
	case p.atKind(token.Hash):
		return p.parseDirectiveStatement()
	case p.atKeyword("for"):
		return p.parseForOrForIn()
	case p.atKeyword("while"):
		return p.parseWhileStatement()
	case p.atKeyword("repeat"):
		return p.parseRepeatWhileStatement()
	case p.atKeyword("if"):
		return p.parseIfStatement()
	case p.atKeyword("guard"):
		return p.parseGuardStatement()
	case p.atKeyword("switch"):
		return p.parseSwitchStatement()
	case p.atKeyword("break"):
		return p.parseBreakStatement()
	case p.atKeyword("continue"):
		return p.parseContinueStatement()
	case p.atKeyword("fallthrough"):
		start := p.pos()
		p.next()
		return &ast.FallthroughStatement{Position: start}, nil
	case p.atKeyword("return"):
		return p.parseReturnStatement()
	case p.atKeyword("throw"):
		return p.parseThrowStatement()
	case p.atKeyword("defer"):
		return p.parseDeferStatement()
	case p.atKeyword("do"):
		return p.parseDoStatement()
	case p.atDeclarationStart():
		start := p.pos()
		decl, err := p.ParseDeclaration()
		if err != nil {
			return nil, err
		}
		return &ast.DeclarationStatement{Value: decl, Position: start}, nil
	}
	start := p.pos()
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return p.arena.NewExpressionStatement(ast.ExpressionStatement{Value: expr, Position: start}), nil
}

// atDeclarationStart reports whether the next token begins one of the
// declaration forms, so a statement list can route to ParseDeclaration
// instead of misreading a declaration's leading keyword as an
// expression.
func (p *Parser) atDeclarationStart() bool {
	if p.atKind(token.At) {
		return true
	}
	for _, kw := range [...]string{
		"import", "let", "var", "typealias", "func", "enum", "struct", "class",
		"protocol", "init", "deinit", "extension", "subscript", "operator",
		"indirect", "mutating", "nonmutating", "override", "required", "final",
		"dynamic", "convenience", "optional", "lazy", "weak", "unowned",
		"prefix", "postfix", "infix",
	} {
		if p.atKeyword(kw) {
			return true
		}
	}
	return false
}

// parseBlock parses a brace-delimited statement list, the body shared
// by every control-flow and declaration form that has one.
func (p *Parser) parseBlock() (*ast.Block, *errors.ParseError) {
	start := p.pos()
	if err := p.expectKind0(token.LBrace); err != nil {
		return nil, err
	}
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
	return p.arena.NewBlock(ast.Block{Statements: stmts, Position: start}), nil
}

// parseForOrForIn resolves the `for` keyword's two unrelated
// productions: it speculatively tries the for-in pattern (after an
// optional `case`), falling back to the C-style three-clause form when
// no pattern is found or no `in` follows.
func (p *Parser) parseForOrForIn() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	mark := p.mark()
	p.next() // 'for'
	hasCase := p.eatKeyword("case")
	pat, perr := p.ParsePattern()
	if perr == nil && p.atKeyword("in") {
		p.next()
		// The '{' after the sequence (or where-clause) is the loop body,
		// never a trailing closure.
		var seq *ast.Expr
		var where ast.Expression
		err := p.withoutTrailingClosures(func() *errors.ParseError {
			var e *errors.ParseError
			if seq, e = p.ParseExpression(); e != nil {
				return e
			}
			if p.eatKeyword("where") {
				where, e = p.ParseExpression()
			}
			return e
		})
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.ForInStatement{HasCase: hasCase, Pattern: pat, Sequence: seq, Where: where, Body: body, Position: start}, nil
	}
	if hasCase {
		if perr != nil {
			return nil, perr
		}
		tok, _ := p.peek()
		return nil, errors.New(errors.Syntax, tok.Pos, "expected 'in'").Expecting("'in'")
	}
	p.reset(mark)
	return p.parseCStyleForStatement()
}

func (p *Parser) parseCStyleForStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	p.next() // 'for'
	var init ast.Statement
	if !p.atKind(token.Semi) {
		var err *errors.ParseError
		init, err = p.parseUnlabeledStatement()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectKind0(token.Semi); err != nil {
		return nil, err
	}
	var cond ast.Expression
	if !p.atKind(token.Semi) {
		var err *errors.ParseError
		cond, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectKind0(token.Semi); err != nil {
		return nil, err
	}
	var step ast.Statement
	if !p.atKind(token.LBrace) {
		// The '{' after the step is the loop body, never a trailing closure.
		err := p.withoutTrailingClosures(func() *errors.ParseError {
			var e *errors.ParseError
			step, e = p.parseUnlabeledStatement()
			return e
		})
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Init: init, Cond: cond, Step: step, Body: body, Position: start}, nil
}

func (p *Parser) parseWhileStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	p.next() // 'while'
	conds, err := p.parseConditionClause()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Conditions: conds, Body: body, Position: start}, nil
}

func (p *Parser) parseRepeatWhileStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	p.next() // 'repeat'
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("while"); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.RepeatWhileStatement{Body: body, Condition: cond, Position: start}, nil
}

func (p *Parser) parseIfStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	p.next() // 'if'
	conds, err := p.parseConditionClause()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Conditions: conds, Body: body, Position: start}
	if p.eatKeyword("else") {
		if p.atKeyword("if") {
			elseIf, err := p.parseIfStatement()
			if err != nil {
				return nil, err
			}
			stmt.ElseIf = elseIf.(*ast.IfStatement)
		} else {
			elseBody, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			stmt.ElseBody = elseBody
		}
	}
	return stmt, nil
}

func (p *Parser) parseGuardStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	p.next() // 'guard'
	conds, err := p.parseConditionClause()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("else"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.GuardStatement{Conditions: conds, ElseBody: body, Position: start}, nil
}

// parseSwitchStatement suppresses trailing-closure parsing while
// reading the scrutinee, so `switch x {` can never misread `x { ... }`
// as a parenthesis-free call.
func (p *Parser) parseSwitchStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	p.next() // 'switch'
	var scrutinee ast.Expression
	err := p.withoutTrailingClosures(func() *errors.ParseError {
		var e *errors.ParseError
		scrutinee, e = p.ParseExpression()
		return e
	})
	if err != nil {
		return nil, err
	}
	if err := p.expectKind0(token.LBrace); err != nil {
		return nil, err
	}
	var cases []ast.SwitchCase
	for !p.atKind(token.RBrace) && !p.atEOF() {
		c, err := p.parseSwitchCase()
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	if err := p.expectKind0(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.SwitchStatement{Scrutinee: scrutinee, Cases: cases, Position: start}, nil
}

func (p *Parser) parseSwitchCase() (ast.SwitchCase, *errors.ParseError) {
	start := p.pos()
	label, err := p.parseSwitchCaseLabel()
	if err != nil {
		return ast.SwitchCase{}, err
	}
	var stmts []ast.Statement
	for !p.atKeyword("case") && !p.atKeyword("default") && !p.atKind(token.RBrace) && !p.atEOF() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return ast.SwitchCase{}, err
		}
		stmts = append(stmts, stmt)
	}
	return ast.SwitchCase{Label: label, Statements: stmts, Position: start}, nil
}

func (p *Parser) parseSwitchCaseLabel() (ast.SwitchCaseLabel, *errors.ParseError) {
	start := p.pos()
	if p.eatKeyword("default") {
		if err := p.expectKind0(token.Colon); err != nil {
			return ast.SwitchCaseLabel{}, err
		}
		return ast.SwitchCaseLabel{IsDefault: true, Position: start}, nil
	}
	if err := p.expectKeyword("case"); err != nil {
		return ast.SwitchCaseLabel{}, err
	}
	var patterns []ast.Pattern
	for {
		pat, err := p.ParsePattern()
		if err != nil {
			return ast.SwitchCaseLabel{}, err
		}
		patterns = append(patterns, pat)
		if !p.eatKind(token.Comma) {
			break
		}
	}
	var where ast.Expression
	if p.eatKeyword("where") {
		w, err := p.ParseExpression()
		if err != nil {
			return ast.SwitchCaseLabel{}, err
		}
		where = w
	}
	if err := p.expectKind0(token.Colon); err != nil {
		return ast.SwitchCaseLabel{}, err
	}
	return ast.SwitchCaseLabel{Patterns: patterns, Where: where, Position: start}, nil
}

func (p *Parser) parseBreakStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	p.next() // 'break'
	if tok, err := p.peek(); err == nil && tok.Kind == token.Ident {
		p.next()
		return &ast.BreakStatement{Label: tok.Literal, HasLabel: true, Position: start}, nil
	}
	return &ast.BreakStatement{Position: start}, nil
}

func (p *Parser) parseContinueStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	p.next() // 'continue'
	if tok, err := p.peek(); err == nil && tok.Kind == token.Ident {
		p.next()
		return &ast.ContinueStatement{Label: tok.Literal, HasLabel: true, Position: start}, nil
	}
	return &ast.ContinueStatement{Position: start}, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	p.next() // 'return'
	if p.atKind(token.RBrace) || p.atEOF() || p.atKeyword("case") || p.atKeyword("default") {
		return &ast.ReturnStatement{Position: start}, nil
	}
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Value: value, Position: start}, nil
}

func (p *Parser) parseThrowStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	p.next() // 'throw'
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ThrowStatement{Value: value, Position: start}, nil
}

func (p *Parser) parseDeferStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	p.next() // 'defer'
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.DeferStatement{Body: body, Position: start}, nil
}

func (p *Parser) parseDoStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	p.next() // 'do'
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var catches []ast.CatchClause
	for p.atKeyword("catch") {
		c, err := p.parseCatchClause()
		if err != nil {
			return nil, err
		}
		catches = append(catches, c)
	}
	return &ast.DoStatement{Body: body, Catches: catches, Position: start}, nil
}

func (p *Parser) parseCatchClause() (ast.CatchClause, *errors.ParseError) {
	start := p.pos()
	p.next() // 'catch'
	var pat ast.Pattern
	if !p.atKind(token.LBrace) {
		var err *errors.ParseError
		pat, err = p.ParsePattern()
		if err != nil {
			return ast.CatchClause{}, err
		}
	}
	var where ast.Expression
	if p.eatKeyword("where") {
		w, err := p.ParseExpression()
		if err != nil {
			return ast.CatchClause{}, err
		}
		where = w
	}
	body, err := p.parseBlock()
	if err != nil {
		return ast.CatchClause{}, err
	}
	return ast.CatchClause{Pattern: pat, Where: where, Body: body, Position: start}, nil
}

// parseDirectiveStatement dispatches on the directive name following a
// leading '#': build-configuration blocks and line-control statements
// are the only two statement-position directives.
func (p *Parser) parseDirectiveStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	mark := p.mark()
	p.next() // '#'
	if p.atKeyword("if") {
		p.reset(mark)
		return p.parseBuildConfigStatement()
	}
	if p.expectIdentText("line") {
		return p.parseLineControlStatement(start)
	}
	tok, _ := p.peek()
	return nil, errors.New(errors.Syntax, tok.Pos, "expected '#if' or '#line'")
}

func (p *Parser) parseLineControlStatement(start errors.Position) (ast.Statement, *errors.ParseError) {
	if !p.atKind(token.Number) {
		return &ast.LineControlStatement{Bare: true, Position: start}, nil
	}
	numTok, _ := p.next()
	n, convErr := strconv.Atoi(numTok.Literal)
	if convErr != nil {
		return nil, errors.New(errors.Lexical, numTok.Pos, "invalid line number")
	}
	if n <= 0 {
		return nil, errors.New(errors.Lexical, numTok.Pos, "line number must be greater than zero")
	}
	fileTok, err := p.expectKind(token.String, "file name string")
	if err != nil {
		return nil, err
	}
	return &ast.LineControlStatement{Line: n, File: fileTok.Literal, Position: start}, nil
}

func (p *Parser) parseBuildConfigStatement() (ast.Statement, *errors.ParseError) {
	start := p.pos()
	firstBranch, err := p.parseBuildConfigBranch()
	if err != nil {
		return nil, err
	}
	stmt := &ast.BuildConfigStatement{Branches: []ast.BuildConfigBranch{firstBranch}, Position: start}
	for p.atDirective("elseif") {
		b, err := p.parseBuildConfigBranch()
		if err != nil {
			return nil, err
		}
		stmt.Branches = append(stmt.Branches, b)
	}
	if p.atDirective("else") {
		p.next() // '#'
		p.next() // 'else'
		stmts, err := p.parseStatementsUntilDirective()
		if err != nil {
			return nil, err
		}
		stmt.Else = stmts
	}
	if !p.atDirective("endif") {
		tok, _ := p.peek()
		return nil, errors.New(errors.Syntax, tok.Pos, "expected '#endif'").Expecting("'#endif'")
	}
	p.next() // '#'
	p.next() // 'endif'
	return stmt, nil
}

// atDirective reports whether the next two tokens are '#' followed by
// word, without consuming either.
func (p *Parser) atDirective(word string) bool {
	if !p.atKind(token.Hash) {
		return false
	}
	mark := p.mark()
	p.next()
	ok := p.atKeyword(word) || p.atIdentText(word)
	p.reset(mark)
	return ok
}

func (p *Parser) parseBuildConfigBranch() (ast.BuildConfigBranch, *errors.ParseError) {
	start := p.pos()
	p.next() // '#'
	p.next() // 'if' or 'elseif'
	cond, err := p.parseBuildConfigOr()
	if err != nil {
		return ast.BuildConfigBranch{}, err
	}
	stmts, err := p.parseStatementsUntilDirective()
	if err != nil {
		return ast.BuildConfigBranch{}, err
	}
	return ast.BuildConfigBranch{Condition: cond, Statements: stmts, Position: start}, nil
}

func (p *Parser) parseStatementsUntilDirective() ([]ast.Statement, *errors.ParseError) {
	var stmts []ast.Statement
	for !p.atKind(token.Hash) && !p.atEOF() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) parseBuildConfigOr() (ast.BuildConfigExpr, *errors.ParseError) {
	left, err := p.parseBuildConfigAnd()
	if err != nil {
		return nil, err
	}
	for p.atOperator("||") {
		p.next()
		right, err := p.parseBuildConfigAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BuildConfigOr{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseBuildConfigAnd() (ast.BuildConfigExpr, *errors.ParseError) {
	left, err := p.parseBuildConfigUnary()
	if err != nil {
		return nil, err
	}
	for p.atOperator("&&") {
		p.next()
		right, err := p.parseBuildConfigUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BuildConfigAnd{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseBuildConfigUnary() (ast.BuildConfigExpr, *errors.ParseError) {
	if p.atOperator("!") {
		p.next()
		operand, err := p.parseBuildConfigUnary()
		if err != nil {
			return nil, err
		}
		return &ast.BuildConfigNot{Operand: operand}, nil
	}
	return p.parseBuildConfigPrimary()
}

func (p *Parser) parseBuildConfigPrimary() (ast.BuildConfigExpr, *errors.ParseError) {
	if p.atKind(token.LParen) {
		p.next()
		inner, err := p.parseBuildConfigOr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKind0(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	if p.atKeyword("true") {
		p.next()
		return &ast.BuildConfigBool{Value: true}, nil
	}
	if p.atKeyword("false") {
		p.next()
		return &ast.BuildConfigBool{Value: false}, nil
	}
	if p.expectIdentText("os") {
		return p.parsePlatformCondition(false)
	}
	if p.expectIdentText("arch") {
		return p.parsePlatformCondition(true)
	}
	tok, err := p.expectKind(token.Ident, "build configuration identifier")
	if err != nil {
		return nil, err
	}
	return &ast.BuildConfigIdent{Name: tok.Literal}, nil
}

func (p *Parser) parsePlatformCondition(isArch bool) (ast.BuildConfigExpr, *errors.ParseError) {
	if err := p.expectKind0(token.LParen); err != nil {
		return nil, err
	}
	nameTok, err := p.expectKind(token.Ident, "platform name")
	if err != nil {
		return nil, err
	}
	if err := p.expectKind0(token.RParen); err != nil {
		return nil, err
	}
	return &ast.BuildConfigPlatform{IsArch: isArch, Name: nameTok.Literal}, nil
}
