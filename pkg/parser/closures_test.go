package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparse/pkg/ast"
)

func parseClosure(t *testing.T, input string) *ast.ClosureExpression {
	t.Helper()
	p := New(src(input))
	cl, err := p.parseClosureExpression()
	require.Nil(t, err, "unexpected parse error: %v", err)
	require.Nil(t, p.finish(), "unexpected trailing input")
	return cl
}

func TestParseClosureWithNoSignature(t *testing.T) {
	cl := parseClosure(t, "{ foo() }")
	assert.Nil(t, cl.Signature)
	require.Len(t, cl.Statements, 1)
}

func TestParseClosureWithIdentifierListSignature(t *testing.T) {
	cl := parseClosure(t, "{ x, y in x + y }")
	require.NotNil(t, cl.Signature)
	assert.True(t, cl.Signature.HasIdentifierList)
	assert.Equal(t, []string{"x", "y"}, cl.Signature.IdentifierList)
	assert.False(t, cl.Signature.HasParameterClause)
}

func TestParseClosureWithTypedParameterClauseAndResult(t *testing.T) {
	cl := parseClosure(t, "{ (a: Int, b: Int) -> Int in a + b }")
	require.NotNil(t, cl.Signature)
	require.True(t, cl.Signature.HasParameterClause)
	require.Len(t, cl.Signature.Parameters, 2)
	assert.Equal(t, "a", cl.Signature.Parameters[0].Name)
	assert.NotNil(t, cl.Signature.Parameters[0].TypeAnnotation)
	assert.NotNil(t, cl.Signature.ResultType)
}

func TestParseClosureDoesNotMistakeBodyForSignature(t *testing.T) {
	// "x" alone (no trailing "in") is a valid expression statement, not a
	// signature — the speculative attempt must back off and leave the
	// whole input as the closure's body.
	cl := parseClosure(t, "{ x }")
	assert.Nil(t, cl.Signature)
	require.Len(t, cl.Statements, 1)
}

func TestParseClosureWithCaptureList(t *testing.T) {
	cl := parseClosure(t, "{ [weak self] in self?.update() }")
	require.NotNil(t, cl.Signature)
	require.Len(t, cl.Signature.Captures, 1)
	assert.Equal(t, ast.CaptureWeak, cl.Signature.Captures[0].Specifier)
	assert.False(t, cl.Signature.HasIdentifierList)
	assert.False(t, cl.Signature.HasParameterClause)
}

func TestParseClosureWithUnownedSafeCapture(t *testing.T) {
	cl := parseClosure(t, "{ [unowned(safe) self] in self.update() }")
	require.NotNil(t, cl.Signature)
	require.Len(t, cl.Signature.Captures, 1)
	assert.Equal(t, ast.CaptureUnownedSafe, cl.Signature.Captures[0].Specifier)
}

func TestParseClosureWithMultipleCapturesAndParameters(t *testing.T) {
	cl := parseClosure(t, "{ [weak self, x] (y: Int) in self?.apply(y) }")
	require.NotNil(t, cl.Signature)
	require.Len(t, cl.Signature.Captures, 2)
	assert.Equal(t, ast.CaptureWeak, cl.Signature.Captures[0].Specifier)
	assert.Equal(t, ast.CaptureNone, cl.Signature.Captures[1].Specifier)
	require.True(t, cl.Signature.HasParameterClause)
	require.Len(t, cl.Signature.Parameters, 1)
}
