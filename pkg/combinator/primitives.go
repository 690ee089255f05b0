package combinator

import (
	"swiftparse/pkg/errors"
	"swiftparse/pkg/token"
)

// Satisfy consumes the next token if pred accepts it.
func Satisfy(desc string, pred func(token.Token) bool) Parser[token.Token] {
	return func(s State) (token.Token, State, *errors.ParseError) {
		tok, s1, err := s.Advance()
		if err != nil {
			return token.Token{}, s, err
		}
		if !pred(tok) {
			return token.Token{}, s, errors.New(errors.Syntax, tok.Pos, "unexpected token").Expecting(desc)
		}
		return tok, s1, nil
	}
}

// Kind consumes the next token if it has the given Kind.
func Kind(k token.Kind) Parser[token.Token] {
	return Satisfy(string(k), func(t token.Token) bool { return t.Kind == k })
}

// Keyword consumes the next token iff it is the reserved word word.
// Reserved words never match as plain identifiers.
func Keyword(word string) Parser[token.Token] {
	return Satisfy("'"+word+"'", func(t token.Token) bool { return t.IsKeyword(word) })
}

// Operator consumes the next token iff it is the operator literal lit.
func Operator(lit string) Parser[token.Token] {
	return Satisfy("'"+lit+"'", func(t token.Token) bool { return t.IsOperator(lit) })
}

// Punct consumes the next token iff it has the given punctuation Kind
// (parens, braces, comma, colon, and so on).
func Punct(k token.Kind) Parser[token.Token] {
	return Kind(k)
}

// IdentLiteral consumes the next token iff it is an ordinary identifier
// whose text is exactly word. This matches the handful of words that are
// reserved only in specific grammar positions (inout, the '#'-directive
// names, the build-configuration identifiers os/arch) without reserving
// them globally: the grammar asks for them by literal text exactly where
// it needs them, and they remain valid identifiers everywhere else.
func IdentLiteral(word string) Parser[token.Token] {
	return Satisfy("'"+word+"'", func(t token.Token) bool { return t.Kind == token.Ident && t.Literal == word })
}

// AnyIdent consumes the next token iff it is an identifier (of any
// text), the plain-name production used pervasively in the grammar.
func AnyIdent() Parser[token.Token] {
	return Kind(token.Ident)
}
