package combinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparse/pkg/lexer"
	"swiftparse/pkg/source"
	"swiftparse/pkg/token"
)

func newState(t *testing.T, input string) State {
	t.Helper()
	l := lexer.New(source.New("<test>", "", input))
	return State{Lex: l, CP: l.Start()}
}

func TestSatisfyConsumesMatchingToken(t *testing.T) {
	s := newState(t, "let")
	p := Keyword("let")
	tok, s1, err := p(s)
	require.Nil(t, err)
	assert.Equal(t, "let", tok.Literal)
	assert.NotEqual(t, s.CP, s1.CP)
}

func TestSatisfyFailsLeavesStateUntouched(t *testing.T) {
	s := newState(t, "var")
	p := Keyword("let")
	_, s1, err := p(s)
	require.NotNil(t, err)
	assert.Equal(t, s.CP, s1.CP)
}

func TestAltTriesAlternativesInOrder(t *testing.T) {
	s := newState(t, "var")
	p := Alt(Keyword("let"), Keyword("var"), Keyword("func"))
	tok, _, err := p(s)
	require.Nil(t, err)
	assert.Equal(t, "var", tok.Literal)
}

func TestAltReturnsFurthestFailure(t *testing.T) {
	s := newState(t, "class")
	p := Alt(Keyword("let"), Keyword("var"))
	_, _, err := p(s)
	require.NotNil(t, err)
}

func TestManyZeroMatches(t *testing.T) {
	s := newState(t, "x")
	p := Many(Keyword("let"))
	items, s1, err := p(s)
	require.Nil(t, err)
	assert.Empty(t, items)
	assert.Equal(t, s.CP, s1.CP)
}

func TestManyCollectsRun(t *testing.T) {
	s := newState(t, ". . . x")
	p := Many(Punct(token.Dot))
	items, _, err := p(s)
	require.Nil(t, err)
	assert.Len(t, items, 3)
}

func TestSomeRequiresAtLeastOne(t *testing.T) {
	s := newState(t, "x")
	_, _, err := Some(Punct(token.Dot))(s)
	require.NotNil(t, err)
}

func TestSepByCommaSeparatedIdents(t *testing.T) {
	s := newState(t, "a, b, c")
	items, _, err := SepBy(AnyIdent(), Punct(token.Comma))(s)
	require.Nil(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Literal)
	assert.Equal(t, "c", items[2].Literal)
}

func TestSepByEmptyList(t *testing.T) {
	s := newState(t, ")")
	items, s1, err := SepBy(AnyIdent(), Punct(token.Comma))(s)
	require.Nil(t, err)
	assert.Empty(t, items)
	assert.Equal(t, s.CP, s1.CP)
}

func TestChainl1LeftAssociative(t *testing.T) {
	s := newState(t, "a + b + c")
	term := AnyIdent()
	plus := Map(Operator("+"), func(token.Token) func(token.Token, token.Token) token.Token {
		return func(l, r token.Token) token.Token {
			return token.Token{Kind: token.Ident, Literal: "(" + l.Literal + "+" + r.Literal + ")"}
		}
	})
	result, _, err := Chainl1(term, plus)(s)
	require.Nil(t, err)
	assert.Equal(t, "((a+b)+c)", result.Literal)
}

func TestNotFollowedBySucceedsWhenAbsent(t *testing.T) {
	s := newState(t, "x")
	_, _, err := NotFollowedBy(Punct(token.Colon))(s)
	require.Nil(t, err)
}

func TestNotFollowedByFailsWhenPresent(t *testing.T) {
	s := newState(t, ": Int")
	_, _, err := NotFollowedBy(Punct(token.Colon))(s)
	require.NotNil(t, err)
}

func TestLookAheadDoesNotConsume(t *testing.T) {
	s := newState(t, "let")
	_, s1, err := LookAhead(Keyword("let"))(s)
	require.Nil(t, err)
	assert.Equal(t, s.CP, s1.CP)
}

func TestTryRestoresOnFailureMidSequence(t *testing.T) {
	s := newState(t, "let x")
	seq := Seq2(Keyword("let"), Keyword("var"), func(a, b token.Token) token.Token { return b })
	_, s1, err := Try(seq)(s)
	require.NotNil(t, err)
	assert.Equal(t, s.CP, s1.CP)
}
