// Package parser implements the grammar layer: the productions named in
// the data model, built on top of the combinator kernel and the token
// stream. Most of Swift's grammar is written here as ordinary
// hand-written Go methods — a direct, sequential expression of each
// production — because Go's generics make threading large ad hoc tuples
// through combinator.Seq awkward past two or three parts. Repetition,
// separated lists and operator chains are hand-written loops as well;
// a few speculative probes (combinator.LookAhead, Try and Alt) go through
// pkg/combinator, and this package is the ergonomic, mutable-feeling
// facade wrapped around its State.
package parser

import (
	"swiftparse/pkg/ast"
	"swiftparse/pkg/combinator"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/lexer"
	"swiftparse/pkg/source"
	"swiftparse/pkg/token"
)

// Parser walks one source file's token stream. It holds the current
// combinator.State as an ordinary mutable field — callers that need to
// backtrack save a copy of that State (Go structs are copied by value)
// and restore it on failure, the same speculative-lookahead technique
// the combinator kernel's Try/Alt implement internally.
type Parser struct {
	lex   *lexer.Lexer
	state combinator.State
	arena *ast.Arena

	// noTrailingClosure suppresses the `f { ... }` / `f() { ... }`
	// trailing-closure suffix while parsing a condition clause, where a
	// following '{' always belongs to the enclosing statement's body.
	noTrailingClosure bool

	// postfixOperators holds the operator symbols declared `postfix
	// operator ... { }` earlier in this same parse. A symbol must be
	// declared before use, so only the grammar layer (which sees
	// declarations and expressions in one file-wide Parser) can resolve
	// this ambiguity — the lexer alone can't tell a postfix operator
	// from the start of a binary one.
	postfixOperators map[string]bool
}

// New creates a Parser over src, positioned at the start of input.
func New(src *source.File) *Parser {
	lex := lexer.New(src)
	return &Parser{
		lex:              lex,
		state:            combinator.State{Lex: lex, CP: lex.Start()},
		arena:            ast.NewArena(),
		postfixOperators: make(map[string]bool),
	}
}

// declarePostfixOperator registers lit as a usable postfix operator for
// the remainder of this parse.
func (p *Parser) declarePostfixOperator(lit string) {
	p.postfixOperators[lit] = true
}

// atPostfixOperator reports whether the next token is an operator
// previously declared postfix.
func (p *Parser) atPostfixOperator() bool {
	tok, err := p.peek()
	return err == nil && tok.Kind == token.Operator && p.postfixOperators[tok.Literal]
}

// withoutTrailingClosures runs fn with trailing-closure parsing
// suppressed, restoring the previous setting afterward.
func (p *Parser) withoutTrailingClosures(fn func() *errors.ParseError) *errors.ParseError {
	prev := p.noTrailingClosure
	p.noTrailingClosure = true
	defer func() { p.noTrailingClosure = prev }()
	return fn()
}

// mark saves the current position for a speculative attempt.
func (p *Parser) mark() combinator.State { return p.state }

// reset restores a previously marked position, discarding anything
// consumed since.
func (p *Parser) reset(s combinator.State) { p.state = s }

// peek returns the next token without consuming it.
func (p *Parser) peek() (token.Token, *errors.ParseError) {
	return p.state.Peek()
}

// next consumes and returns the next token.
func (p *Parser) next() (token.Token, *errors.ParseError) {
	tok, s1, err := p.state.Advance()
	if err != nil {
		return token.Token{}, err
	}
	p.state = s1
	return tok, nil
}

// pos is the position of the next unconsumed token, used for error
// reporting and for nodes that start at the current position.
func (p *Parser) pos() errors.Position {
	tok, err := p.peek()
	if err != nil {
		return p.lex.Pos(p.state.CP)
	}
	return tok.Pos
}

// atKeyword reports whether the next token is the reserved word word,
// without consuming it.
func (p *Parser) atKeyword(word string) bool {
	tok, err := p.peek()
	return err == nil && tok.IsKeyword(word)
}

// atOperator reports whether the next token is the operator literal lit.
func (p *Parser) atOperator(lit string) bool {
	tok, err := p.peek()
	return err == nil && tok.IsOperator(lit)
}

// atKind reports whether the next token has the given Kind.
func (p *Parser) atKind(k token.Kind) bool {
	tok, err := p.peek()
	return err == nil && tok.Kind == k
}

// eatKeyword consumes word if present and reports whether it did.
func (p *Parser) eatKeyword(word string) bool {
	if !p.atKeyword(word) {
		return false
	}
	p.next()
	return true
}

// eatOperator consumes the operator literal lit if present.
func (p *Parser) eatOperator(lit string) bool {
	if !p.atOperator(lit) {
		return false
	}
	p.next()
	return true
}

// eatKind consumes a token of Kind k if present.
func (p *Parser) eatKind(k token.Kind) bool {
	if !p.atKind(k) {
		return false
	}
	p.next()
	return true
}

// expectKeyword consumes word or fails with a syntax error.
func (p *Parser) expectKeyword(word string) *errors.ParseError {
	if p.eatKeyword(word) {
		return nil
	}
	return errors.New(errors.Syntax, p.pos(), "expected keyword").Expecting("'" + word + "'")
}

// expectOperator consumes the operator literal lit or fails.
func (p *Parser) expectOperator(lit string) *errors.ParseError {
	if p.eatOperator(lit) {
		return nil
	}
	return errors.New(errors.Syntax, p.pos(), "expected operator").Expecting("'" + lit + "'")
}

// expectKind consumes a token of Kind k or fails.
func (p *Parser) expectKind(k token.Kind, desc string) (token.Token, *errors.ParseError) {
	tok, err := p.peek()
	if err != nil {
		return token.Token{}, err
	}
	if tok.Kind != k {
		return token.Token{}, errors.New(errors.Syntax, tok.Pos, "unexpected token").Expecting(desc)
	}
	p.next()
	return tok, nil
}

// expectIdentText consumes a plain identifier whose text equals word,
// used for the grammar's positional reserved words (inout, os, arch,
// the #-directive names) that are never lexically reserved.
func (p *Parser) expectIdentText(word string) bool {
	tok, err := p.peek()
	if err != nil || tok.Kind != token.Ident || tok.Literal != word {
		return false
	}
	p.next()
	return true
}

// atEOF reports whether the token stream is exhausted.
func (p *Parser) atEOF() bool {
	tok, err := p.peek()
	return err == nil && tok.Kind == token.EOF
}

// finish requires the whole input to have been consumed, the
// trailing-input check every external entry point performs.
func (p *Parser) finish() *errors.ParseError {
	if !p.atEOF() {
		tok, _ := p.peek()
		return errors.New(errors.TrailingInput, tok.Pos, "unexpected trailing input after a complete parse")
	}
	return nil
}
