package lexer

import (
	"strings"
	"unicode/utf8"

	"swiftparse/pkg/cursor"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/token"
)

// scanString consumes a "-delimited string literal, splitting it into
// StringSegment runs: plain text segments and, for each `\(...)`
// interpolation, a segment carrying the raw unparsed source of the
// embedded expression plus its position in the file. The lexer's job
// stops at finding the balanced span; turning that span into an
// expression AST node is the parser's job, done by sub-parsing
// Segments[i].ExprSource with its own Lexer/parser pair;
// Segments[i].ExprPos records where that span starts in the file.
func (l *Lexer) scanString(pos errors.Position) (token.Token, cursor.Checkpoint, *errors.ParseError) {
	l.cur.Advance() // opening quote

	var segments []token.StringSegment
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			segments = append(segments, token.StringSegment{Text: text.String()})
			text.Reset()
		}
	}

	for {
		r, ok := l.cur.Peek()
		if !ok {
			return token.Token{}, l.cur.Save(), errors.New(errors.Lexical, pos, "unterminated string literal")
		}

		if r == '"' {
			l.cur.Advance()
			break
		}
		if r == '\n' {
			return token.Token{}, l.cur.Save(), errors.New(errors.Lexical, pos, "unterminated string literal")
		}

		if r == '\\' {
			next := l.peekAt(1)
			if next == '(' {
				flush()
				seg, err := l.scanInterpolation()
				if err != nil {
					return token.Token{}, l.cur.Save(), err
				}
				segments = append(segments, seg)
				continue
			}
			esc, err := l.scanEscape(pos)
			if err != nil {
				return token.Token{}, l.cur.Save(), err
			}
			text.WriteRune(esc)
			continue
		}

		text.WriteRune(r)
		l.cur.Advance()
	}

	flush()

	lit := joinSegments(segments)
	tok := token.Token{Kind: token.String, Literal: lit, Pos: pos, Segments: segments}
	return tok, l.cur.Save(), nil
}

func joinSegments(segs []token.StringSegment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.IsExpr {
			b.WriteString("\\(")
			b.WriteString(s.ExprSource)
			b.WriteString(")")
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// scanInterpolation consumes `\(` up through its matching `)`, tracking
// bracket depth and nested string literals so that an interpolated
// expression may itself contain parentheses or quoted strings without
// ending the span early.
func (l *Lexer) scanInterpolation() (token.StringSegment, *errors.ParseError) {
	l.cur.Advance() // '\\'
	l.cur.Advance() // '('
	exprStart := l.cur.Save()
	exprPos := l.Pos(exprStart)

	depth := 1
	var b strings.Builder
	for {
		r, ok := l.cur.Peek()
		if !ok {
			return token.StringSegment{}, errors.New(errors.Lexical, exprPos, "unterminated string interpolation")
		}
		switch {
		case r == '(':
			depth++
			b.WriteRune(r)
			l.cur.Advance()
		case r == ')':
			depth--
			l.cur.Advance()
			if depth == 0 {
				return token.StringSegment{IsExpr: true, ExprSource: b.String(), ExprPos: exprPos}, nil
			}
			b.WriteRune(r)
		case r == '"':
			if err := l.consumeNestedStringInto(&b, r); err != nil {
				return token.StringSegment{}, err
			}
		default:
			b.WriteRune(r)
			l.cur.Advance()
		}
	}
}

// consumeNestedStringInto copies a complete nested string literal
// (including its quotes) verbatim into b, without interpreting its
// escapes, so the interpolation span's own balanced-bracket tracking
// cannot be confused by brackets that occur inside it.
func (l *Lexer) consumeNestedStringInto(b *strings.Builder, quote rune) *errors.ParseError {
	start := l.cur.Save()
	pos := l.Pos(start)
	b.WriteRune(quote)
	l.cur.Advance()
	for {
		r, ok := l.cur.Peek()
		if !ok {
			return errors.New(errors.Lexical, pos, "unterminated string literal")
		}
		b.WriteRune(r)
		l.cur.Advance()
		if r == '\\' {
			if r2, ok2 := l.cur.Peek(); ok2 {
				b.WriteRune(r2)
				l.cur.Advance()
			}
			continue
		}
		if r == quote {
			return nil
		}
	}
}

// scanEscape consumes and decodes a backslash escape other than `\(`:
// \0 \\ \t \n \r \" \' and \u{1-8 hex digits}.
func (l *Lexer) scanEscape(pos errors.Position) (rune, *errors.ParseError) {
	l.cur.Advance() // '\\'
	r, ok := l.cur.Peek()
	if !ok {
		return 0, errors.New(errors.Lexical, pos, "unterminated escape sequence")
	}
	switch r {
	case '0':
		l.cur.Advance()
		return 0, nil
	case '\\':
		l.cur.Advance()
		return '\\', nil
	case 't':
		l.cur.Advance()
		return '\t', nil
	case 'n':
		l.cur.Advance()
		return '\n', nil
	case 'r':
		l.cur.Advance()
		return '\r', nil
	case '"':
		l.cur.Advance()
		return '"', nil
	case '\'':
		l.cur.Advance()
		return '\'', nil
	case 'u':
		l.cur.Advance()
		return l.scanUnicodeEscape(pos)
	default:
		return 0, errors.New(errors.Lexical, pos, "invalid escape sequence")
	}
}

func (l *Lexer) scanUnicodeEscape(pos errors.Position) (rune, *errors.ParseError) {
	if r, ok := l.cur.Peek(); !ok || r != '{' {
		return 0, errors.New(errors.Lexical, pos, "expected '{' in unicode escape")
	}
	l.cur.Advance()

	var hex strings.Builder
	for {
		r, ok := l.cur.Peek()
		if !ok {
			return 0, errors.New(errors.Lexical, pos, "unterminated unicode escape")
		}
		if r == '}' {
			l.cur.Advance()
			break
		}
		if !isHexDigit(r) {
			return 0, errors.New(errors.Lexical, pos, "invalid digit in unicode escape")
		}
		hex.WriteRune(r)
		l.cur.Advance()
	}

	digits := hex.String()
	if digits == "" || len(digits) > 8 {
		return 0, errors.New(errors.Lexical, pos, "unicode escape must have 1-8 hex digits")
	}

	var v int64
	for _, c := range digits {
		v *= 16
		switch {
		case c >= '0' && c <= '9':
			v += int64(c - '0')
		case c >= 'a' && c <= 'f':
			v += int64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v += int64(c-'A') + 10
		}
	}
	if v > utf8.MaxRune {
		return 0, errors.New(errors.Lexical, pos, "unicode escape out of range")
	}
	return rune(v), nil
}
