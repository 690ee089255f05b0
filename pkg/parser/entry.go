package parser

import (
	"swiftparse/pkg/ast"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/source"
)

// ParseModule parses src as a whole file: a sequence of top-level
// statements (Swift has no separate top-level declaration grammar —
// declarations appear wrapped in a DeclarationStatement wherever they
// occur), requiring the entire input to be consumed.
func ParseModule(src *source.File) (*ast.Module, *errors.ParseError) {
	p := New(src)
	start := p.pos()
	var stmts []ast.Statement
	for !p.atEOF() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return &ast.Module{Statements: stmts, Position: start}, nil
}

// ParseStandaloneExpression parses src as a single expression fragment,
// requiring the entire input to be consumed — the entry point used for
// tools that evaluate or display one expression at a time rather than
// a whole file.
func ParseStandaloneExpression(src *source.File) (*ast.Expr, *errors.ParseError) {
	p := New(src)
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseStandaloneDeclaration parses src as a single declaration
// fragment, requiring the entire input to be consumed.
func ParseStandaloneDeclaration(src *source.File) (ast.Declaration, *errors.ParseError) {
	p := New(src)
	decl, err := p.ParseDeclaration()
	if err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return decl, nil
}

// ParseFunctionCall parses src as a single call-expression fragment —
// a name or member-access chain applied to an argument list. The result
// must be a postfix chain culminating in a call: no trailing binary,
// assignment, or cast tail, and the chain's outermost node must be a
// *ast.CallExpression.
func ParseFunctionCall(src *source.File) (*ast.Expr, *errors.ParseError) {
	p := New(src)
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	if len(expr.Tails) > 0 {
		return nil, errors.New(errors.Syntax, expr.Position, "expected a call expression, got a binary expression")
	}
	if _, ok := expr.Prefix.(*ast.CallExpression); !ok {
		return nil, errors.New(errors.Syntax, expr.Position, "expected a postfix chain culminating in a call")
	}
	return expr, nil
}

// ParseInitializerExpression parses src as a single initializer-call
// fragment, e.g. `TypeName(label: value)` or bare `TypeName.init`. Swift
// gives initializer invocation no syntax of its own — it is an ordinary
// postfix chain ending in `.init`, optionally then called — so this
// shares ParseFunctionCall's production but additionally requires the
// chain to end in an *ast.InitExpression, directly or as a call's callee.
func ParseInitializerExpression(src *source.File) (*ast.Expr, *errors.ParseError) {
	p := New(src)
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	if len(expr.Tails) > 0 {
		return nil, errors.New(errors.Syntax, expr.Position, "expected an initializer expression, got a binary expression")
	}
	if !endsInInit(expr.Prefix) {
		return nil, errors.New(errors.Syntax, expr.Position, "expected a postfix chain followed by '.init'")
	}
	return expr, nil
}

// endsInInit reports whether expr is a postfix chain whose last member
// access was `.init`, either bare or immediately called.
func endsInInit(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.InitExpression:
		return true
	case *ast.CallExpression:
		_, ok := e.Callee.(*ast.InitExpression)
		return ok
	default:
		return false
	}
}
