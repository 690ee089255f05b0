package lexer

import (
	"strings"
	"unicode"

	"swiftparse/pkg/cursor"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/token"
)

// scanNumber consumes an integer or floating-point literal in any of the
// four supported radices: look at the first two characters to pick a
// radix, then greedily consume digits and (for decimal and hex) an
// optional fractional part and exponent, allowing '_' digit separators
// throughout. The raw text that was consumed is handed to
// ValidateNumericLiteral as an independent check that the separator
// placement rule was not violated.
func (l *Lexer) scanNumber(pos errors.Position) (token.Token, cursor.Checkpoint, *errors.ParseError) {
	var b strings.Builder

	if r, _ := l.cur.Peek(); r == '0' {
		switch l.peekAt(1) {
		case 'b':
			return l.scanRadixInt(pos, &b, isBinDigit)
		case 'o':
			return l.scanRadixInt(pos, &b, isOctDigit)
		case 'x':
			return l.scanHex(pos, &b)
		}
	}

	l.consumeDigitRun(&b, isDecDigit)

	if r, _ := l.cur.Peek(); r == '.' {
		if next, ok := l.cur.PeekAt(1); ok && isDecDigit(next) {
			b.WriteRune('.')
			l.cur.Advance()
			l.consumeDigitRun(&b, isDecDigit)
		}
	}

	if r, _ := l.cur.Peek(); r == 'e' || r == 'E' {
		l.consumeExponent(&b, isDecDigit)
	}

	raw := b.String()
	if !ValidateNumericLiteral(raw) {
		return token.Token{}, l.cur.Save(), errors.New(errors.Lexical, pos, "malformed numeric literal "+raw)
	}
	return token.Token{Kind: token.Number, Literal: raw, Pos: pos}, l.cur.Save(), nil
}

func (l *Lexer) scanRadixInt(pos errors.Position, b *strings.Builder, isDigit func(rune) bool) (token.Token, cursor.Checkpoint, *errors.ParseError) {
	b.WriteRune('0')
	l.cur.Advance()
	r, _ := l.cur.Peek()
	b.WriteRune(r)
	l.cur.Advance()
	l.consumeDigitRun(b, isDigit)
	raw := b.String()
	if !ValidateNumericLiteral(raw) {
		return token.Token{}, l.cur.Save(), errors.New(errors.Lexical, pos, "malformed numeric literal "+raw)
	}
	return token.Token{Kind: token.Number, Literal: raw, Pos: pos}, l.cur.Save(), nil
}

func (l *Lexer) scanHex(pos errors.Position, b *strings.Builder) (token.Token, cursor.Checkpoint, *errors.ParseError) {
	b.WriteRune('0')
	l.cur.Advance()
	r, _ := l.cur.Peek()
	b.WriteRune(r)
	l.cur.Advance()
	l.consumeDigitRun(b, isHexDigit)

	if r, _ := l.cur.Peek(); r == '.' {
		if next, ok := l.cur.PeekAt(1); ok && isHexDigit(next) {
			b.WriteRune('.')
			l.cur.Advance()
			l.consumeDigitRun(b, isHexDigit)
		}
	}

	if r, _ := l.cur.Peek(); r == 'p' || r == 'P' {
		l.consumeExponent(b, isDecDigit)
	}

	raw := b.String()
	if !ValidateNumericLiteral(raw) {
		return token.Token{}, l.cur.Save(), errors.New(errors.Lexical, pos, "malformed numeric literal "+raw)
	}
	return token.Token{Kind: token.Number, Literal: raw, Pos: pos}, l.cur.Save(), nil
}

func (l *Lexer) consumeExponent(b *strings.Builder, isDigit func(rune) bool) {
	r, _ := l.cur.Peek()
	b.WriteRune(r)
	l.cur.Advance()
	if r, _ := l.cur.Peek(); r == '+' || r == '-' {
		b.WriteRune(r)
		l.cur.Advance()
	}
	l.consumeDigitRun(b, isDigit)
}

func (l *Lexer) consumeDigitRun(b *strings.Builder, isDigit func(rune) bool) {
	for {
		r, ok := l.cur.Peek()
		if !ok {
			return
		}
		if r == '_' {
			b.WriteRune('_')
			l.cur.Advance()
			continue
		}
		if !isDigit(r) {
			return
		}
		b.WriteRune(r)
		l.cur.Advance()
	}
}

func isDecDigit(r rune) bool { return unicode.IsDigit(r) }
func isBinDigit(r rune) bool { return r == '0' || r == '1' }
func isOctDigit(r rune) bool { return r >= '0' && r <= '7' }
func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
