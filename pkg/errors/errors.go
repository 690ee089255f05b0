package errors

import (
	"fmt"
	"os"
	"strings"
)

// Kind distinguishes the four error categories of the error-handling
// design: a malformed literal is Lexical, a grammar mismatch is Syntax,
// running out of input mid-production is EndOfInput, and leftover input
// after a successful top-level parse is TrailingInput.
type Kind string

const (
	Lexical       Kind = "Lexical"
	Syntax        Kind = "Syntax"
	EndOfInput    Kind = "EndOfInput"
	TrailingInput Kind = "TrailingInput"
)

// ParseError is the single error type returned by every parser entry
// point. It is always a leaf value: no partial AST accompanies it, and
// failure inside a speculative alternative never escapes as one of
// these unless every alternative in the enclosing Alt has been
// exhausted.
type ParseError struct {
	Position
	ErrKind  Kind
	Msg      string
	Expected string // short expectation phrase; may be empty
	Cause    error
}

func (e *ParseError) Error() string {
	name := "<stdin>"
	if e.Source != nil {
		name = e.Source.DisplayPath()
	}
	if e.Expected != "" {
		return fmt.Sprintf("%s:%d:%d: %s error: %s (expected %s)", name, e.Line, e.Column, e.ErrKind, e.Msg, e.Expected)
	}
	return fmt.Sprintf("%s:%d:%d: %s error: %s", name, e.Line, e.Column, e.ErrKind, e.Msg)
}

func (e *ParseError) Pos() Position   { return e.Position }
func (e *ParseError) Kind() Kind      { return e.ErrKind }
func (e *ParseError) Message() string { return e.Msg }
func (e *ParseError) Unwrap() error   { return e.Cause }

// New builds a ParseError of the given kind at pos.
func New(kind Kind, pos Position, msg string) *ParseError {
	return &ParseError{Position: pos, ErrKind: kind, Msg: msg}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, pos Position, format string, args ...interface{}) *ParseError {
	return New(kind, pos, fmt.Sprintf(format, args...))
}

// Expecting returns a copy of e carrying a short expectation phrase.
func (e *ParseError) Expecting(expected string) *ParseError {
	clone := *e
	clone.Expected = expected
	return &clone
}

// CausedBy returns a copy of e wrapping an underlying cause.
func (e *ParseError) CausedBy(cause error) *ParseError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// Furthest returns whichever of a, b reached further into the input,
// used when an Alt must report the most relevant failure rather than
// just the last-tried one.
func Furthest(a, b *ParseError) *ParseError {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if b.StartPos > a.StartPos {
		return b
	}
	return a
}

// DisplayErrors prints a list of parse errors to stderr, each followed
// by its source line and a caret under the reported column.
func DisplayErrors(content string, errs []*ParseError) {
	if len(errs) == 0 {
		return
	}
	lines := strings.Split(content, "\n")
	for _, err := range errs {
		lineIdx := err.Line - 1
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		if lineIdx < 0 || lineIdx >= len(lines) {
			fmt.Fprintln(os.Stderr)
			continue
		}
		sourceLine := strings.TrimRight(lines[lineIdx], "\r\n\t ")
		col := err.Column - 1
		if col < 0 {
			col = 0
		}
		fmt.Fprintf(os.Stderr, "  %s\n", sourceLine)
		fmt.Fprintf(os.Stderr, "  %s^\n\n", strings.Repeat(" ", col))
	}
}
