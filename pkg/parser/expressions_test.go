package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparse/pkg/ast"
)

func parseExpr(t *testing.T, input string) *ast.Expr {
	t.Helper()
	p := New(src(input))
	expr, err := p.ParseExpression()
	require.Nil(t, err, "unexpected parse error: %v", err)
	require.Nil(t, p.finish(), "unexpected trailing input")
	return expr
}

func TestParseNumericLiteralExpression(t *testing.T) {
	expr := parseExpr(t, "42")
	lit, ok := expr.Prefix.(*ast.LiteralExpression)
	require.True(t, ok)
	num, ok := lit.Value.(*ast.NumericLiteral)
	require.True(t, ok)
	assert.Equal(t, "42", num.Text)
}

func TestParseStringLiteralExpressionNoInterpolation(t *testing.T) {
	expr := parseExpr(t, `"hello"`)
	lit, ok := expr.Prefix.(*ast.LiteralExpression)
	require.True(t, ok)
	str, ok := lit.Value.(*ast.StringLiteral)
	require.True(t, ok)
	require.Len(t, str.Chunks, 1)
	assert.False(t, str.Chunks[0].IsExpr)
}

func TestParseKeywordLiterals(t *testing.T) {
	cases := map[string]func(ast.Expression) bool{
		"self":  func(e ast.Expression) bool { _, ok := e.(*ast.SelfLiteralExpression); return ok },
		"super": func(e ast.Expression) bool { _, ok := e.(*ast.SuperLiteralExpression); return ok },
		"_":     func(e ast.Expression) bool { _, ok := e.(*ast.WildcardExpression); return ok },
	}
	for input, matches := range cases {
		expr := parseExpr(t, input)
		assert.True(t, matches(expr.Prefix), "input %q", input)
	}
}

func TestParsePostfixOperatorApplication(t *testing.T) {
	p := New(src("postfix operator !! { }\nx!!"))
	_, err := p.ParseDeclaration()
	require.Nil(t, err, "unexpected parse error: %v", err)
	expr, err := p.ParseExpression()
	require.Nil(t, err, "unexpected parse error: %v", err)
	require.Nil(t, p.finish(), "unexpected trailing input")
	post, ok := expr.Prefix.(*ast.PostfixOpExpression)
	require.True(t, ok)
	assert.Equal(t, "!!", post.Operator)
	ident, ok := post.Operand.(*ast.IdentifierExpression)
	require.True(t, ok)
	assert.Equal(t, "x", ident.Name)
}

func TestParsePostfixOperatorNotAppliedBeforePrimary(t *testing.T) {
	p := New(src("postfix operator !! { }\na !! b"))
	_, err := p.ParseDeclaration()
	require.Nil(t, err, "unexpected parse error: %v", err)
	expr, err := p.ParseExpression()
	require.Nil(t, err, "unexpected parse error: %v", err)
	require.Nil(t, p.finish(), "unexpected trailing input")
	_, ok := expr.Prefix.(*ast.PostfixOpExpression)
	assert.False(t, ok, "'!!' immediately followed by a primary must not bind as a postfix suffix")
	require.Len(t, expr.Tails, 1)
	require.NotNil(t, expr.Tails[0].BinaryOp)
	assert.Equal(t, "!!", expr.Tails[0].BinaryOp.Operator)
}

func TestParseBooleanAndNilLiterals(t *testing.T) {
	trueExpr := parseExpr(t, "true")
	lit, ok := trueExpr.Prefix.(*ast.LiteralExpression)
	require.True(t, ok)
	b, ok := lit.Value.(*ast.BooleanLiteral)
	require.True(t, ok)
	assert.True(t, b.Value)

	nilExpr := parseExpr(t, "nil")
	lit, ok = nilExpr.Prefix.(*ast.LiteralExpression)
	require.True(t, ok)
	_, ok = lit.Value.(*ast.NilLiteral)
	assert.True(t, ok)
}

func TestParseParenthesizedAndTupleExpression(t *testing.T) {
	single := parseExpr(t, "(1)")
	paren, ok := single.Prefix.(*ast.ParenthesizedExpression)
	require.True(t, ok)
	require.Len(t, paren.Elements, 1)

	tuple := parseExpr(t, "(x: 1, y: 2)")
	paren, ok = tuple.Prefix.(*ast.ParenthesizedExpression)
	require.True(t, ok)
	require.Len(t, paren.Elements, 2)
	assert.True(t, paren.Elements[0].HasLabel)
	assert.Equal(t, "x", paren.Elements[0].Label)
}

func TestParseImplicitMemberExpression(t *testing.T) {
	expr := parseExpr(t, ".red")
	im, ok := expr.Prefix.(*ast.ImplicitMemberExpression)
	require.True(t, ok)
	assert.Equal(t, "red", im.Member)
}

func TestParseMemberAccessChain(t *testing.T) {
	expr := parseExpr(t, "a.b.c")
	outer, ok := expr.Prefix.(*ast.MemberExpression)
	require.True(t, ok)
	assert.Equal(t, "c", outer.Member)
	inner, ok := outer.Base.(*ast.MemberExpression)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Member)
}

func TestParseSpecialMemberSuffixes(t *testing.T) {
	selfExpr := parseExpr(t, "a.self")
	_, ok := selfExpr.Prefix.(*ast.SelfExpression)
	assert.True(t, ok)

	dynType := parseExpr(t, "a.dynamicType")
	_, ok = dynType.Prefix.(*ast.DynamicTypeExpression)
	assert.True(t, ok)

	initExpr := parseExpr(t, "Foo.init")
	_, ok = initExpr.Prefix.(*ast.InitExpression)
	assert.True(t, ok)

	tupleMember := parseExpr(t, "t.0")
	tm, ok := tupleMember.Prefix.(*ast.TupleMemberExpression)
	require.True(t, ok)
	assert.Equal(t, 0, tm.Index)
}

func TestParseForcedValueAndOptionalChaining(t *testing.T) {
	forced := parseExpr(t, "a!")
	_, ok := forced.Prefix.(*ast.ForcedValueExpression)
	assert.True(t, ok)

	chained := parseExpr(t, "a?.b")
	member, ok := chained.Prefix.(*ast.MemberExpression)
	require.True(t, ok)
	_, ok = member.Base.(*ast.OptionalChainExpression)
	assert.True(t, ok)
}

func TestParseCallExpressionWithLabeledArgument(t *testing.T) {
	expr := parseExpr(t, "foo(1, label: 2)")
	call, ok := expr.Prefix.(*ast.CallExpression)
	require.True(t, ok)
	require.Len(t, call.Arguments, 2)
	assert.False(t, call.Arguments[0].HasLabel)
	assert.True(t, call.Arguments[1].HasLabel)
	assert.Equal(t, "label", call.Arguments[1].Label)
}

func TestParseCallExpressionWithTrailingClosure(t *testing.T) {
	expr := parseExpr(t, "items.map { x in x + 1 }")
	call, ok := expr.Prefix.(*ast.CallExpression)
	require.True(t, ok)
	require.NotNil(t, call.TrailingClosure)
	require.NotNil(t, call.TrailingClosure.Signature)
	assert.True(t, call.TrailingClosure.Signature.HasIdentifierList)
}

func TestParseParenFreeTrailingClosureCall(t *testing.T) {
	expr := parseExpr(t, "group { foo() }")
	call, ok := expr.Prefix.(*ast.CallExpression)
	require.True(t, ok)
	assert.Nil(t, call.Arguments)
	require.NotNil(t, call.TrailingClosure)
}

func TestParseSubscriptExpression(t *testing.T) {
	expr := parseExpr(t, "arr[0]")
	sub, ok := expr.Prefix.(*ast.SubscriptExpression)
	require.True(t, ok)
	require.Len(t, sub.Arguments, 1)
}

func TestParseInOutExpression(t *testing.T) {
	expr := parseExpr(t, "&x")
	io, ok := expr.Prefix.(*ast.InOutExpression)
	require.True(t, ok)
	assert.Equal(t, "x", io.Name)
}

func TestParsePrefixOperatorExpression(t *testing.T) {
	expr := parseExpr(t, "-x")
	pre, ok := expr.Prefix.(*ast.PrefixOpExpression)
	require.True(t, ok)
	assert.Equal(t, "-", pre.Operator)
}

func TestParseBinaryOperatorTail(t *testing.T) {
	expr := parseExpr(t, "a + b")
	require.Len(t, expr.Tails, 1)
	require.NotNil(t, expr.Tails[0].BinaryOp)
	assert.Equal(t, "+", expr.Tails[0].BinaryOp.Operator)
}

func TestParseConditionalTail(t *testing.T) {
	expr := parseExpr(t, "a ? b : c")
	require.Len(t, expr.Tails, 1)
	require.NotNil(t, expr.Tails[0].Conditional)
	assert.NotNil(t, expr.Tails[0].Conditional.TrueBranch)
	assert.NotNil(t, expr.Tails[0].Conditional.FalseBranch)
}

func TestParseAssignmentTail(t *testing.T) {
	expr := parseExpr(t, "a = b")
	require.Len(t, expr.Tails, 1)
	require.NotNil(t, expr.Tails[0].Assignment)
}

func TestParseTypeCastTails(t *testing.T) {
	isExpr := parseExpr(t, "a is Int")
	require.Len(t, isExpr.Tails, 1)
	require.NotNil(t, isExpr.Tails[0].TypeCast)
	assert.Equal(t, ast.CastIs, isExpr.Tails[0].TypeCast.Op)

	asOptional := parseExpr(t, "a as? Int")
	require.Len(t, asOptional.Tails, 1)
	require.NotNil(t, asOptional.Tails[0].TypeCast)
	assert.Equal(t, ast.CastAsOptional, asOptional.Tails[0].TypeCast.Op)
}

func TestParseTryMarkers(t *testing.T) {
	plain := parseExpr(t, "try foo()")
	assert.Equal(t, ast.Try, plain.TryKind)

	optional := parseExpr(t, "try? foo()")
	assert.Equal(t, ast.TryOptional, optional.TryKind)

	forced := parseExpr(t, "try! foo()")
	assert.Equal(t, ast.TryForced, forced.TryKind)
}
