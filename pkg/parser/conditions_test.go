package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparse/pkg/ast"
)

func parseConditions(t *testing.T, input string) []ast.Condition {
	t.Helper()
	p := New(src(input))
	conds, err := p.parseConditionClause()
	require.Nil(t, err, "unexpected parse error: %v", err)
	require.Nil(t, p.finish(), "unexpected trailing input")
	return conds
}

func TestParseBareExpressionCondition(t *testing.T) {
	conds := parseConditions(t, "x > 0")
	require.Len(t, conds, 1)
	_, ok := conds[0].(*ast.ExpressionCondition)
	assert.True(t, ok)
}

func TestParseOptionalBindingConditionChained(t *testing.T) {
	conds := parseConditions(t, "let a = x, b = y, c = z where a > b")
	require.Len(t, conds, 1)
	binding, ok := conds[0].(*ast.OptionalBindingCondition)
	require.True(t, ok)
	require.Len(t, binding.Continuations, 2)
	assert.NotNil(t, binding.Where)
}

func TestParseOptionalBindingChainEndsAtFreshCondition(t *testing.T) {
	conds := parseConditions(t, "let a = x, y > 0")
	require.Len(t, conds, 2)
	_, ok := conds[0].(*ast.OptionalBindingCondition)
	require.True(t, ok)
	_, ok = conds[1].(*ast.ExpressionCondition)
	assert.True(t, ok)
}

func TestParseCaseCondition(t *testing.T) {
	conds := parseConditions(t, "case .some(x) = maybe where x > 0")
	require.Len(t, conds, 1)
	c, ok := conds[0].(*ast.CaseCondition)
	require.True(t, ok)
	assert.NotNil(t, c.Where)
}

func TestParseAvailabilityCondition(t *testing.T) {
	conds := parseConditions(t, "#available(iOS 8.0, *)")
	require.Len(t, conds, 1)
	avail, ok := conds[0].(*ast.AvailabilityCondition)
	require.True(t, ok)
	require.Len(t, avail.Arguments, 2)
	assert.Equal(t, "iOS", avail.Arguments[0].Platform)
	assert.Equal(t, []int{8, 0}, avail.Arguments[0].Version)
	assert.True(t, avail.Arguments[1].Wildcard)
}

func TestParseMultipleConditionsCommaSeparated(t *testing.T) {
	conds := parseConditions(t, "x > 0, let y = x")
	require.Len(t, conds, 2)
	_, ok := conds[0].(*ast.ExpressionCondition)
	require.True(t, ok)
	_, ok = conds[1].(*ast.OptionalBindingCondition)
	assert.True(t, ok)
}
