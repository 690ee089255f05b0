package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparse/pkg/source"
)

func src(content string) *source.File {
	return source.New("<test>", "", content)
}

func TestParseModuleTopLevelStatements(t *testing.T) {
	mod, err := ParseModule(src("let x = 1\nvar y = 2\nx + y\n"))
	require.Nil(t, err)
	require.Len(t, mod.Statements, 3)
}

func TestParseModuleRejectsTrailingGarbage(t *testing.T) {
	_, err := ParseModule(src("let x = 1\n}"))
	require.NotNil(t, err)
}

func TestParseStandaloneExpression(t *testing.T) {
	expr, err := ParseStandaloneExpression(src("1 + 2 * 3"))
	require.Nil(t, err)
	assert.NotNil(t, expr)
}

func TestParseStandaloneExpressionRejectsTrailingInput(t *testing.T) {
	_, err := ParseStandaloneExpression(src("1 + 2 let x = 1"))
	require.NotNil(t, err)
}

func TestParseStandaloneDeclaration(t *testing.T) {
	decl, err := ParseStandaloneDeclaration(src("func add(a: Int, b: Int) -> Int { return a + b }"))
	require.Nil(t, err)
	assert.NotNil(t, decl)
}

func TestParseFunctionCall(t *testing.T) {
	expr, err := ParseFunctionCall(src("foo.bar(1, label: 2)"))
	require.Nil(t, err)
	assert.NotNil(t, expr)
}

func TestParseFunctionCallRejectsNonCallExpressions(t *testing.T) {
	_, err := ParseFunctionCall(src("1 + 2"))
	require.NotNil(t, err)

	_, err = ParseFunctionCall(src("a ? b : c"))
	require.NotNil(t, err)

	_, err = ParseFunctionCall(src("foo.bar"))
	require.NotNil(t, err)
}

func TestParseInitializerExpression(t *testing.T) {
	expr, err := ParseInitializerExpression(src("Point.init(x: 1, y: 2)"))
	require.Nil(t, err)
	assert.NotNil(t, expr)

	bare, err := ParseInitializerExpression(src("Point.init"))
	require.Nil(t, err)
	assert.NotNil(t, bare)
}

func TestParseInitializerExpressionRejectsCallWithoutInit(t *testing.T) {
	_, err := ParseInitializerExpression(src("Point(x: 1, y: 2)"))
	require.NotNil(t, err)
}

func TestParseExpressionRejectsKeywordAsIdentifier(t *testing.T) {
	_, err := ParseStandaloneExpression(src("let"))
	require.NotNil(t, err)
}
