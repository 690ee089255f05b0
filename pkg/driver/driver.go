// Package driver wraps the parser entry points in a small session API,
// the seam a CLI or batch tool drives instead of importing pkg/parser
// directly: source loading, diagnostic logging, and multi-file error
// aggregation all live here.
package driver

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"swiftparse/pkg/ast"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/parser"
	"swiftparse/pkg/source"
)

// Mode selects which of the five parser entry points a Session call
// drives.
type Mode string

const (
	ModeModule      Mode = "module"
	ModeExpression  Mode = "expression"
	ModeDeclaration Mode = "declaration"
	ModeCall        Mode = "call"
	ModeInitializer Mode = "initializer"
)

// Session holds the state shared across a batch of parses: a logger and
// the options that govern how failures are reported. Unlike the parser
// package itself, a Session carries no parse state of its own — each
// call builds a fresh *parser.Parser — so one Session is safe to reuse,
// and safe to share across the goroutines ParseFiles spawns.
type Session struct {
	Log *logrus.Logger

	// MaxConcurrency caps how many files ParseFiles parses at once.
	// Zero means unbounded.
	MaxConcurrency int
}

// NewSession builds a Session with a logrus logger configured the way
// the rest of this module expects: text output to stderr, level driven
// by the SWIFTPARSE_LOG_LEVEL environment variable, InfoLevel if unset
// or unparseable.
func NewSession() *Session {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level := logrus.InfoLevel
	if raw := os.Getenv("SWIFTPARSE_LOG_LEVEL"); raw != "" {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	log.SetLevel(level)
	return &Session{Log: log}
}

// Result is the outcome of parsing one source: exactly one of Value or
// Err is set. Value's dynamic type depends on Mode: *ast.Module for
// ModeModule, ast.Declaration for ModeDeclaration, *ast.Expr otherwise.
type Result struct {
	Source *source.File
	Mode   Mode
	Value  ast.Node
	Err    *errors.ParseError
}

// ParseString parses content under the given display name according to
// mode, logging the outcome at debug level.
func (s *Session) ParseString(mode Mode, name, content string) Result {
	return s.parse(mode, source.New(name, "", content))
}

// ParseFile reads path from disk and parses its content according to
// mode.
func (s *Session) ParseFile(mode Mode, path string) Result {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{
			Source: source.New(path, path, ""),
			Mode:   mode,
			Err:    errors.New(errors.Syntax, errors.Position{}, fmt.Sprintf("failed to read %q: %s", path, err)),
		}
	}
	return s.parse(mode, source.FromFile(path, string(content)))
}

func (s *Session) parse(mode Mode, src *source.File) Result {
	s.logger().Debugf("parsing %s as %s", src.DisplayPath(), mode)
	var value ast.Node
	var perr *errors.ParseError
	switch mode {
	case ModeModule:
		value, perr = parser.ParseModule(src)
	case ModeExpression:
		value, perr = parser.ParseStandaloneExpression(src)
	case ModeDeclaration:
		value, perr = parser.ParseStandaloneDeclaration(src)
	case ModeCall:
		value, perr = parser.ParseFunctionCall(src)
	case ModeInitializer:
		value, perr = parser.ParseInitializerExpression(src)
	default:
		perr = errors.New(errors.Syntax, errors.Position{}, fmt.Sprintf("unknown parse mode %q", mode))
	}
	if perr != nil {
		s.logger().WithError(perr).Warnf("parse failed: %s", src.DisplayPath())
		return Result{Source: src, Mode: mode, Err: perr}
	}
	s.logger().Debugf("parsed %s cleanly", src.DisplayPath())
	return Result{Source: src, Mode: mode, Value: value}
}

// ParseFiles parses every path concurrently (bounded by
// MaxConcurrency), returning one Result per path in input order plus an
// aggregated error built with go-multierror if any file failed. The
// aggregate is nil when every file parsed cleanly.
func (s *Session) ParseFiles(mode Mode, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))
	g := new(errgroup.Group)
	if s.MaxConcurrency > 0 {
		g.SetLimit(s.MaxConcurrency)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = s.ParseFile(mode, path)
			return nil
		})
	}
	_ = g.Wait() // ParseFile never returns a Go error, only a Result.Err

	var agg *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			agg = multierror.Append(agg, r.Err)
		}
	}
	if agg == nil {
		return results, nil
	}
	return results, agg.ErrorOrNil()
}

// DisplayResult prints r's error (if any) to stderr with source context,
// reporting whether the parse succeeded.
func (s *Session) DisplayResult(r Result) bool {
	if r.Err == nil {
		return true
	}
	content := ""
	if r.Source != nil {
		content = r.Source.Content
	}
	errors.DisplayErrors(content, []*errors.ParseError{r.Err})
	return false
}

// DisplayResults prints every failing result in results and reports
// whether all of them succeeded.
func (s *Session) DisplayResults(results []Result) bool {
	ok := true
	for _, r := range results {
		if !s.DisplayResult(r) {
			ok = false
		}
	}
	return ok
}

func (s *Session) logger() *logrus.Logger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}
