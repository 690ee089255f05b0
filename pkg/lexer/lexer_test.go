package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparse/pkg/source"
	"swiftparse/pkg/token"
)

func scanAll(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(source.New("<test>", "", input))
	cp := l.Start()
	var toks []token.Token
	for {
		tok, next, err := l.Scan(cp)
		require.Nil(t, err, "unexpected lexical error: %v", err)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
		cp = next
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanDelimitersAndPunctuation(t *testing.T) {
	toks := scanAll(t, "( ) { } [ ] , : ; . ... @ #")
	assert.Equal(t, []token.Kind{
		token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket, token.Comma, token.Colon,
		token.Semi, token.Dot, token.Ellipsis, token.At, token.Hash, token.EOF,
	}, kinds(toks))
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	toks := scanAll(t, "let x = foo")
	require.Len(t, toks, 5)
	assert.True(t, toks[0].IsKeyword("let"))
	assert.Equal(t, token.Ident, toks[1].Kind)
	assert.Equal(t, "x", toks[1].Literal)
	assert.Equal(t, token.Operator, toks[2].Kind)
	assert.Equal(t, "=", toks[2].Literal)
	assert.Equal(t, token.Ident, toks[3].Kind)
	assert.Equal(t, "foo", toks[3].Literal)
}

func TestScanUnderscoreIsDeclarationKeyword(t *testing.T) {
	toks := scanAll(t, "_")
	require.Len(t, toks, 2)
	assert.True(t, toks[0].IsKeyword("_"))
}

func TestScanBacktickEscapedIdentifier(t *testing.T) {
	toks := scanAll(t, "`class`")
	require.Len(t, toks, 2)
	assert.Equal(t, token.Ident, toks[0].Kind)
	assert.Equal(t, "class", toks[0].Literal)
}

func TestScanBacktickEscapedOperator(t *testing.T) {
	toks := scanAll(t, "`+-`")
	require.Len(t, toks, 2)
	assert.Equal(t, token.Operator, toks[0].Kind)
	assert.Equal(t, "+-", toks[0].Literal)
}

func TestScanOperatorRuns(t *testing.T) {
	toks := scanAll(t, "a <<< b >>= c")
	require.Len(t, toks, 6)
	assert.Equal(t, "<<<", toks[1].Literal)
	assert.Equal(t, ">>=", toks[3].Literal)
}

func TestSplitLeadingAngle(t *testing.T) {
	tok := token.Token{Kind: token.Operator, Literal: ">>="}
	head, rest, hasRest := SplitLeadingAngle(tok)
	assert.Equal(t, ">", head.Literal)
	require.True(t, hasRest)
	assert.Equal(t, ">=", rest.Literal)

	tok2 := token.Token{Kind: token.Operator, Literal: ">"}
	_, _, hasRest2 := SplitLeadingAngle(tok2)
	assert.False(t, hasRest2)
}

func TestSkipLineComment(t *testing.T) {
	toks := scanAll(t, "let x // trailing comment\nlet y")
	kindsOut := kinds(toks)
	assert.Equal(t, []token.Kind{
		token.Keyword, token.Ident, token.Keyword, token.Ident, token.EOF,
	}, kindsOut)
}

func TestSkipNestedBlockComment(t *testing.T) {
	toks := scanAll(t, "let /* outer /* inner */ still-outer */ x")
	require.Len(t, toks, 3)
	assert.True(t, toks[0].IsKeyword("let"))
	assert.Equal(t, "x", toks[1].Literal)
}

func TestUnterminatedBlockCommentFails(t *testing.T) {
	l := New(source.New("<test>", "", "let /* never closed"))
	cp := l.Start()
	_, _, err := l.Scan(cp)
	require.Nil(t, err)
	cp2 := l.Start()
	_, cp3, _ := l.Scan(cp2)
	_, _, err2 := l.Scan(cp3)
	require.NotNil(t, err2)
}

func TestScanIntegerLiterals(t *testing.T) {
	cases := []string{"0", "42", "1_000_000", "0b1010", "0o17", "0x1F", "0xFF_FF"}
	for _, c := range cases {
		toks := scanAll(t, c)
		require.Len(t, toks, 2, c)
		assert.Equal(t, token.Number, toks[0].Kind, c)
		assert.Equal(t, c, toks[0].Literal, c)
	}
}

func TestScanFloatLiterals(t *testing.T) {
	cases := []string{"3.14", "1.0e10", "1e-5", "0x1p10", "0x1.8p-1"}
	for _, c := range cases {
		toks := scanAll(t, c)
		require.Len(t, toks, 2, c)
		assert.Equal(t, token.Number, toks[0].Kind, c)
		assert.Equal(t, c, toks[0].Literal, c)
	}
}

func TestScanSimpleStringLiteral(t *testing.T) {
	toks := scanAll(t, `"hello world"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.String, toks[0].Kind)
	assert.Equal(t, "hello world", toks[0].Literal)
	assert.False(t, toks[0].Interpolated())
}

func TestScanStringEscapes(t *testing.T) {
	toks := scanAll(t, `"a\tb\nc\\d\"e"`)
	require.Len(t, toks, 2)
	assert.Equal(t, "a\tb\nc\\d\"e", toks[0].Literal)
}

func TestScanStringUnicodeEscape(t *testing.T) {
	toks := scanAll(t, `"\u{48}\u{65}\u{79}"`)
	require.Len(t, toks, 2)
	assert.Equal(t, "Hey", toks[0].Literal)
}

func TestScanInterpolatedString(t *testing.T) {
	toks := scanAll(t, `"a \(x) b"`)
	require.Len(t, toks, 2)
	tok := toks[0]
	assert.True(t, tok.Interpolated())
	require.Len(t, tok.Segments, 3)
	assert.Equal(t, "a ", tok.Segments[0].Text)
	assert.True(t, tok.Segments[1].IsExpr)
	assert.Equal(t, "x", tok.Segments[1].ExprSource)
	assert.Equal(t, " b", tok.Segments[2].Text)
}

func TestScanNestedInterpolation(t *testing.T) {
	toks := scanAll(t, `"total: \(f(a, b))"`)
	require.Len(t, toks, 2)
	tok := toks[0]
	require.Len(t, tok.Segments, 2)
	assert.True(t, tok.Segments[1].IsExpr)
	assert.Equal(t, "f(a, b)", tok.Segments[1].ExprSource)
}

func TestUnterminatedStringFails(t *testing.T) {
	l := New(source.New("<test>", "", `"no closing quote`))
	_, _, err := l.Scan(l.Start())
	require.NotNil(t, err)
}

func TestDotVsEllipsis(t *testing.T) {
	toks := scanAll(t, "a.b...c")
	kindsOut := kinds(toks)
	assert.Equal(t, []token.Kind{
		token.Ident, token.Dot, token.Ident, token.Ellipsis, token.Ident, token.EOF,
	}, kindsOut)
}
