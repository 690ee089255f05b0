package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparse/pkg/ast"
)

func parsePattern(t *testing.T, input string) ast.Pattern {
	t.Helper()
	p := New(src(input))
	pat, err := p.ParsePattern()
	require.Nil(t, err, "unexpected parse error: %v", err)
	require.Nil(t, p.finish(), "unexpected trailing input")
	return pat
}

func TestParseIdentifierPattern(t *testing.T) {
	pat := parsePattern(t, "x")
	id, ok := pat.(*ast.IdentifierPattern)
	require.True(t, ok)
	assert.Equal(t, "x", id.Name)
	assert.Nil(t, id.TypeAnnotation)
}

func TestParseIdentifierPatternWithTypeAnnotation(t *testing.T) {
	pat := parsePattern(t, "x: Int")
	id, ok := pat.(*ast.IdentifierPattern)
	require.True(t, ok)
	assert.Equal(t, "x", id.Name)
	assert.NotNil(t, id.TypeAnnotation)
}

func TestParseValueBindingPattern(t *testing.T) {
	pat := parsePattern(t, "let x")
	vb, ok := pat.(*ast.ValueBindingPattern)
	require.True(t, ok)
	assert.False(t, vb.IsVar)
	inner, ok := vb.Wrapped.(*ast.IdentifierPattern)
	require.True(t, ok)
	assert.Equal(t, "x", inner.Name)
}

func TestParseVarValueBindingPattern(t *testing.T) {
	pat := parsePattern(t, "var y")
	vb, ok := pat.(*ast.ValueBindingPattern)
	require.True(t, ok)
	assert.True(t, vb.IsVar)
}

func TestParseWildcardPattern(t *testing.T) {
	pat := parsePattern(t, "_: Int")
	wc, ok := pat.(*ast.WildcardPattern)
	require.True(t, ok)
	assert.NotNil(t, wc.TypeAnnotation)
}

func TestParseIsPattern(t *testing.T) {
	pat := parsePattern(t, "is Animal")
	isPat, ok := pat.(*ast.IsPattern)
	require.True(t, ok)
	assert.NotNil(t, isPat.CheckedType)
}

func TestParseBareEnumCasePattern(t *testing.T) {
	pat := parsePattern(t, ".None")
	ec, ok := pat.(*ast.EnumCasePattern)
	require.True(t, ok)
	assert.Equal(t, "", ec.EnumTypeName)
	assert.Equal(t, "None", ec.CaseName)
	assert.Nil(t, ec.Payload)
}

func TestParseBareEnumCasePatternWithPayload(t *testing.T) {
	pat := parsePattern(t, ".some(let x)")
	ec, ok := pat.(*ast.EnumCasePattern)
	require.True(t, ok)
	assert.Equal(t, "some", ec.CaseName)
	require.Len(t, ec.Payload, 1)
	vb, ok := ec.Payload[0].(*ast.ValueBindingPattern)
	require.True(t, ok)
	assert.False(t, vb.IsVar)
}

func TestParseQualifiedEnumCasePattern(t *testing.T) {
	pat := parsePattern(t, "Optional.some(x)")
	ec, ok := pat.(*ast.EnumCasePattern)
	require.True(t, ok)
	assert.Equal(t, "Optional", ec.EnumTypeName)
	assert.Equal(t, "some", ec.CaseName)
	require.Len(t, ec.Payload, 1)
}

func TestParseQualifiedLookalikeFallsBackToIdentifier(t *testing.T) {
	// "count: Int" has no '.' after the identifier, so the qualified
	// enum-case-pattern attempt must back off cleanly and leave this as
	// an ordinary annotated identifier pattern.
	pat := parsePattern(t, "count: Int")
	id, ok := pat.(*ast.IdentifierPattern)
	require.True(t, ok)
	assert.Equal(t, "count", id.Name)
}

func TestParseTuplePattern(t *testing.T) {
	pat := parsePattern(t, "(x, let y, _)")
	tup, ok := pat.(*ast.TuplePattern)
	require.True(t, ok)
	require.Len(t, tup.Elements, 3)
	_, ok = tup.Elements[0].(*ast.IdentifierPattern)
	assert.True(t, ok)
	_, ok = tup.Elements[1].(*ast.ValueBindingPattern)
	assert.True(t, ok)
	_, ok = tup.Elements[2].(*ast.WildcardPattern)
	assert.True(t, ok)
}

func TestParseOptionalPattern(t *testing.T) {
	pat := parsePattern(t, "x?")
	opt, ok := pat.(*ast.OptionalPattern)
	require.True(t, ok)
	_, ok = opt.Wrapped.(*ast.IdentifierPattern)
	assert.True(t, ok)
}

func TestParseAsPattern(t *testing.T) {
	pat := parsePattern(t, "x as Int")
	asPat, ok := pat.(*ast.AsPattern)
	require.True(t, ok)
	assert.NotNil(t, asPat.AsType)
	_, ok = asPat.Wrapped.(*ast.IdentifierPattern)
	assert.True(t, ok)
}

func TestParseExpressionPatternFallback(t *testing.T) {
	pat := parsePattern(t, "1 + 2")
	_, ok := pat.(*ast.ExpressionPattern)
	assert.True(t, ok)
}
