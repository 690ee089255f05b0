// Package combinator generalizes the speculative-lookahead technique the
// grammar layer needs over and over — try an alternative, and if it fails
// partway through, restore the input and try the next one — into a small
// set of reusable generic combinators. State is a token-stream checkpoint
// plus the lexer that produced it; a Parser[T] is a function from one
// State to either a T and the State just past it, or a failure that
// leaves the original State untouched.
package combinator

import (
	"swiftparse/pkg/cursor"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/lexer"
	"swiftparse/pkg/token"
)

// State is an immutable position in the token stream: a lexer checkpoint
// plus the lexer that can turn it into the next token. Passing State by
// value and never mutating the underlying Lexer outside of Scan is what
// makes backtracking free — an abandoned State is simply discarded.
type State struct {
	Lex *lexer.Lexer
	CP  cursor.Checkpoint
}

// Peek scans the token at s without consuming it.
func (s State) Peek() (token.Token, *errors.ParseError) {
	tok, _, err := s.Lex.Scan(s.CP)
	return tok, err
}

// Advance scans the token at s and returns it together with the State
// immediately after it.
func (s State) Advance() (token.Token, State, *errors.ParseError) {
	tok, next, err := s.Lex.Scan(s.CP)
	if err != nil {
		return token.Token{}, s, err
	}
	return tok, State{Lex: s.Lex, CP: next}, nil
}

// WithCheckpoint returns a State over the same lexer repositioned to cp,
// the primitive the grammar layer uses to split a multi-character
// operator token (a generic clause's closing '>>' or '>=') into a
// single '<'/'>' plus whatever remains: Scan is a pure function of its
// checkpoint, so repositioning mid-token and scanning again yields
// exactly the remainder as a fresh token.
func (s State) WithCheckpoint(cp cursor.Checkpoint) State {
	return State{Lex: s.Lex, CP: cp}
}

// Parser is a function from a State to a parsed value and the State
// just past it, or a failure. A failing Parser must not be assumed to
// have left any trace in State — callers that need to try something
// else simply reuse the State they passed in.
type Parser[T any] func(State) (T, State, *errors.ParseError)

// Seq2 runs two parsers in sequence and combines their results with f.
func Seq2[A, B, R any](pa Parser[A], pb Parser[B], f func(A, B) R) Parser[R] {
	return func(s State) (R, State, *errors.ParseError) {
		var zero R
		a, s1, err := pa(s)
		if err != nil {
			return zero, s, err
		}
		b, s2, err := pb(s1)
		if err != nil {
			return zero, s, err
		}
		return f(a, b), s2, nil
	}
}

// Seq3 is Seq2 for three parsers.
func Seq3[A, B, C, R any](pa Parser[A], pb Parser[B], pc Parser[C], f func(A, B, C) R) Parser[R] {
	return func(s State) (R, State, *errors.ParseError) {
		var zero R
		a, s1, err := pa(s)
		if err != nil {
			return zero, s, err
		}
		b, s2, err := pb(s1)
		if err != nil {
			return zero, s, err
		}
		c, s3, err := pc(s2)
		if err != nil {
			return zero, s, err
		}
		return f(a, b, c), s3, nil
	}
}

// Map transforms a successful parse result.
func Map[A, B any](pa Parser[A], f func(A) B) Parser[B] {
	return func(s State) (B, State, *errors.ParseError) {
		var zero B
		a, s1, err := pa(s)
		if err != nil {
			return zero, s, err
		}
		return f(a), s1, nil
	}
}

// Try runs p, but on failure returns the original State untouched
// instead of whatever partial State p's failure carried.
func Try[T any](p Parser[T]) Parser[T] {
	return func(s State) (T, State, *errors.ParseError) {
		v, s1, err := p(s)
		if err != nil {
			var zero T
			return zero, s, err
		}
		return v, s1, nil
	}
}

// Alt tries each alternative in order at the same starting State,
// returning the first success. If all fail, it reports the failure that
// reached furthest into the input — the same heuristic the error model
// uses for reporting the most plausible cause of a syntax error.
func Alt[T any](alts ...Parser[T]) Parser[T] {
	return func(s State) (T, State, *errors.ParseError) {
		var zero T
		var furthest *errors.ParseError
		for _, alt := range alts {
			v, s1, err := alt(s)
			if err == nil {
				return v, s1, nil
			}
			furthest = errors.Furthest(furthest, err)
		}
		return zero, s, furthest
	}
}

// Opt makes p optional: if p fails, Opt succeeds with zero and ok=false,
// leaving the State exactly where it started.
func Opt[T any](p Parser[T]) Parser[struct {
	Value T
	Ok    bool
}] {
	type result = struct {
		Value T
		Ok    bool
	}
	return func(s State) (result, State, *errors.ParseError) {
		v, s1, err := p(s)
		if err != nil {
			return result{}, s, nil
		}
		return result{Value: v, Ok: true}, s1, nil
	}
}

// Many applies p zero or more times, stopping at (and not consuming) the
// first failure.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(s State) ([]T, State, *errors.ParseError) {
		var out []T
		cur := s
		for {
			v, next, err := p(cur)
			if err != nil {
				return out, cur, nil
			}
			out = append(out, v)
			cur = next
		}
	}
}

// Some applies p one or more times, failing if the first application
// fails.
func Some[T any](p Parser[T]) Parser[[]T] {
	return func(s State) ([]T, State, *errors.ParseError) {
		first, s1, err := p(s)
		if err != nil {
			return nil, s, err
		}
		rest, s2, _ := Many(p)(s1)
		return append([]T{first}, rest...), s2, nil
	}
}

// SepBy applies p zero or more times, separated by sep, with no
// trailing separator required.
func SepBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return func(s State) ([]T, State, *errors.ParseError) {
		first, s1, err := p(s)
		if err != nil {
			return nil, s, nil
		}
		items := []T{first}
		cur := s1
		for {
			_, afterSep, err := sep(cur)
			if err != nil {
				return items, cur, nil
			}
			v, afterItem, err := p(afterSep)
			if err != nil {
				return items, cur, nil
			}
			items = append(items, v)
			cur = afterItem
		}
	}
}

// SepBy1 is SepBy but requires at least one item.
func SepBy1[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return func(s State) ([]T, State, *errors.ParseError) {
		items, s1, err := SepBy(p, sep)(s)
		if err != nil {
			return nil, s, err
		}
		if len(items) == 0 {
			tok, _ := s.Peek()
			return nil, s, errors.New(errors.Syntax, tok.Pos, "expected at least one item")
		}
		return items, s1, nil
	}
}

// Chainl1 parses a left-associative chain: p (op p)*, folding with the
// function each op application returns.
func Chainl1[T any](p Parser[T], op Parser[func(T, T) T]) Parser[T] {
	return func(s State) (T, State, *errors.ParseError) {
		left, s1, err := p(s)
		if err != nil {
			var zero T
			return zero, s, err
		}
		cur := s1
		for {
			f, afterOp, err := op(cur)
			if err != nil {
				return left, cur, nil
			}
			right, afterRight, err := p(afterOp)
			if err != nil {
				return left, cur, nil
			}
			left = f(left, right)
			cur = afterRight
		}
	}
}

// Chainr1 parses a right-associative chain: p (op p)*, folding from the
// right.
func Chainr1[T any](p Parser[T], op Parser[func(T, T) T]) Parser[T] {
	return func(s State) (T, State, *errors.ParseError) {
		left, s1, err := p(s)
		if err != nil {
			var zero T
			return zero, s, err
		}
		f, afterOp, err := op(s1)
		if err != nil {
			return left, s1, nil
		}
		right, afterRight, err := Chainr1(p, op)(afterOp)
		if err != nil {
			var zero T
			return zero, s, err
		}
		return f(left, right), afterRight, nil
	}
}

// NotFollowedBy succeeds with no input consumed iff p fails at s: a
// negative lookahead, e.g. confirming an identifier is not immediately
// followed by ':'.
func NotFollowedBy[T any](p Parser[T]) Parser[struct{}] {
	return func(s State) (struct{}, State, *errors.ParseError) {
		_, _, err := p(s)
		if err == nil {
			tok, _ := s.Peek()
			return struct{}{}, s, errors.New(errors.Syntax, tok.Pos, "unexpected input")
		}
		return struct{}{}, s, nil
	}
}

// LookAhead runs p but never consumes input, regardless of success.
func LookAhead[T any](p Parser[T]) Parser[T] {
	return func(s State) (T, State, *errors.ParseError) {
		v, _, err := p(s)
		if err != nil {
			var zero T
			return zero, s, err
		}
		return v, s, nil
	}
}
