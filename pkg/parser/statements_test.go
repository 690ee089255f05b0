package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparse/pkg/ast"
)

func parseStmt(t *testing.T, input string) ast.Statement {
	t.Helper()
	p := New(src(input))
	stmt, err := p.ParseStatement()
	require.Nil(t, err, "unexpected parse error: %v", err)
	require.Nil(t, p.finish(), "unexpected trailing input")
	return stmt
}

func TestParseExpressionStatement(t *testing.T) {
	stmt := parseStmt(t, "x + 1")
	_, ok := stmt.(*ast.ExpressionStatement)
	assert.True(t, ok)
}

func TestParseDeclarationStatement(t *testing.T) {
	stmt := parseStmt(t, "let x = 1")
	_, ok := stmt.(*ast.DeclarationStatement)
	assert.True(t, ok)
}

func TestParseLabeledStatement(t *testing.T) {
	stmt := parseStmt(t, "outer: while true { break outer }")
	labeled, ok := stmt.(*ast.LabeledStatement)
	require.True(t, ok)
	assert.Equal(t, "outer", labeled.Label)
	while, ok := labeled.Statement.(*ast.WhileStatement)
	require.True(t, ok)
	body := while.Body.Statements
	require.Len(t, body, 1)
	brk, ok := body[0].(*ast.BreakStatement)
	require.True(t, ok)
	assert.True(t, brk.HasLabel)
	assert.Equal(t, "outer", brk.Label)
}

func TestParseCStyleForStatement(t *testing.T) {
	stmt := parseStmt(t, "for var i = 0; i < 10; i = i + 1 { print(i) }")
	forStmt, ok := stmt.(*ast.ForStatement)
	require.True(t, ok)
	assert.NotNil(t, forStmt.Init)
	assert.NotNil(t, forStmt.Cond)
	assert.NotNil(t, forStmt.Step)
}

func TestParseForInStatement(t *testing.T) {
	stmt := parseStmt(t, "for x in items { print(x) }")
	forIn, ok := stmt.(*ast.ForInStatement)
	require.True(t, ok)
	assert.False(t, forIn.HasCase)
	assert.NotNil(t, forIn.Sequence)
}

func TestParseForInWithCaseAndWhere(t *testing.T) {
	stmt := parseStmt(t, "for case .some(x) in items where x > 0 { print(x) }")
	forIn, ok := stmt.(*ast.ForInStatement)
	require.True(t, ok)
	assert.True(t, forIn.HasCase)
	assert.NotNil(t, forIn.Where)
}

func TestParseIfElseIfElse(t *testing.T) {
	stmt := parseStmt(t, "if x == 1 { foo() } else if x == 2 { bar() } else { baz() }")
	ifStmt, ok := stmt.(*ast.IfStatement)
	require.True(t, ok)
	require.NotNil(t, ifStmt.ElseIf)
	assert.NotNil(t, ifStmt.ElseIf.ElseBody)
}

func TestParseGuardStatement(t *testing.T) {
	stmt := parseStmt(t, "guard let x = maybe else { return }")
	guard, ok := stmt.(*ast.GuardStatement)
	require.True(t, ok)
	require.Len(t, guard.Conditions, 1)
}

func TestParseSwitchStatement(t *testing.T) {
	stmt := parseStmt(t, `switch x {
case 1, 2:
    foo()
case let y where y > 0:
    bar()
default:
    baz()
}`)
	sw, ok := stmt.(*ast.SwitchStatement)
	require.True(t, ok)
	require.Len(t, sw.Cases, 3)
	assert.Len(t, sw.Cases[0].Label.Patterns, 2)
	assert.True(t, sw.Cases[2].Label.IsDefault)
}

func TestParseSwitchDoesNotSwallowBodyAsTrailingClosure(t *testing.T) {
	// Without trailing-closure suppression around the scrutinee, `x {
	// default: foo() }` would be misread as a call `x { ... }` and the
	// body's `default` keyword would fail to parse as an expression.
	stmt := parseStmt(t, "switch x { default: foo() }")
	sw, ok := stmt.(*ast.SwitchStatement)
	require.True(t, ok)
	require.Len(t, sw.Cases, 1)
	assert.True(t, sw.Cases[0].Label.IsDefault)
}

func TestParseDoCatchStatement(t *testing.T) {
	stmt := parseStmt(t, "do { try risky() } catch MyError.bad { recover() } catch { fallback() }")
	do, ok := stmt.(*ast.DoStatement)
	require.True(t, ok)
	require.Len(t, do.Catches, 2)
	assert.NotNil(t, do.Catches[0].Pattern)
	assert.Nil(t, do.Catches[1].Pattern)
}

func TestParseReturnWithAndWithoutValue(t *testing.T) {
	withValue := parseStmt(t, "return 1")
	ret, ok := withValue.(*ast.ReturnStatement)
	require.True(t, ok)
	assert.NotNil(t, ret.Value)

	p := New(src("return }"))
	stmt, err := p.ParseStatement()
	require.Nil(t, err)
	bare, ok := stmt.(*ast.ReturnStatement)
	require.True(t, ok)
	assert.Nil(t, bare.Value)
}

func TestParseDeferAndThrow(t *testing.T) {
	deferStmt := parseStmt(t, "defer { cleanup() }")
	_, ok := deferStmt.(*ast.DeferStatement)
	assert.True(t, ok)

	throwStmt := parseStmt(t, "throw MyError.bad")
	_, ok = throwStmt.(*ast.ThrowStatement)
	assert.True(t, ok)
}

func TestParseBuildConfigStatement(t *testing.T) {
	stmt := parseStmt(t, `#if os(iOS) && !DEBUG
foo()
#elseif arch(arm64)
bar()
#else
baz()
#endif`)
	bc, ok := stmt.(*ast.BuildConfigStatement)
	require.True(t, ok)
	require.Len(t, bc.Branches, 2)
	require.NotNil(t, bc.Else)
	_, isAnd := bc.Branches[0].Condition.(*ast.BuildConfigAnd)
	assert.True(t, isAnd)
}

func TestParseBuildConfigStatementAndBindsTighterThanOr(t *testing.T) {
	stmt := parseStmt(t, `#if a || b && c
foo()
#endif`)
	bc, ok := stmt.(*ast.BuildConfigStatement)
	require.True(t, ok)
	require.Len(t, bc.Branches, 1)
	or, ok := bc.Branches[0].Condition.(*ast.BuildConfigOr)
	require.True(t, ok, "expected 'a || b && c' to parse as an Or at the top, got %T", bc.Branches[0].Condition)
	_, isLeftAnd := or.Left.(*ast.BuildConfigAnd)
	assert.False(t, isLeftAnd, "left operand of '||' must be plain 'a', not an And")
	_, isRightAnd := or.Right.(*ast.BuildConfigAnd)
	assert.True(t, isRightAnd, "right operand of '||' must be 'b && c' binding as an And")
}

func TestParseLineControlStatement(t *testing.T) {
	stmt := parseStmt(t, `#line 42 "main.swift"`)
	lc, ok := stmt.(*ast.LineControlStatement)
	require.True(t, ok)
	assert.False(t, lc.Bare)
	assert.Equal(t, 42, lc.Line)
	assert.Equal(t, "main.swift", lc.File)
}

func TestParseBareLineControlStatement(t *testing.T) {
	stmt := parseStmt(t, "#line")
	lc, ok := stmt.(*ast.LineControlStatement)
	require.True(t, ok)
	assert.True(t, lc.Bare)
}
