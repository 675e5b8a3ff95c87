// Package parser builds an AST from a token slice.
//
// Every production takes the index of its first token and returns its node
// together with the index just past the tokens it consumed. Nothing else
// moves a cursor, so a failed alternative is abandoned by ignoring its index.
// Alternatives are tried with attempt, which also undoes typedef names
// recorded by the failed branch.
package parser

import (
	"fmt"

	"modernc.org/mathutil"

	"github.com/tinyrange/cfront/internal/ast"
	"github.com/tinyrange/cfront/internal/diag"
	"github.com/tinyrange/cfront/internal/lexer"
	"github.com/tinyrange/cfront/internal/metrics"
)

type Parser struct {
	tokens []lexer.Token
	scopes scopes
	issues *diag.Collector

	// best is the furthest-reaching error seen in a failed attempt.
	best *Error
}

func New(tokens []lexer.Token, issues *diag.Collector) *Parser {
	if issues == nil {
		issues = &diag.Collector{}
	}
	return &Parser{tokens: tokens, scopes: newScopes(), issues: issues}
}

// Parse parses a translation unit. If the tokens do not form one, the
// furthest-reaching error is collected and Parse returns nil.
func Parse(tokens []lexer.Token, issues *diag.Collector) *ast.TranslationUnit {
	return New(tokens, issues).ParseUnit()
}

func (p *Parser) ParseUnit() *ast.TranslationUnit {
	p.best = nil
	tu, _, ok := attempt(p, 0, p.parseRoot)
	if !ok {
		p.issues.Add(p.best)
		return nil
	}
	return tu
}

type form int

const (
	formAt form = iota
	formGot
	formAfter
)

// Error is a syntax error. Parsed is the index of the token the error was
// raised at, which ranks competing errors: the one that got further wins.
type Error struct {
	*diag.Issue
	Parsed int
}

func (e *Error) Unwrap() error { return e.Issue }

// errorf builds an error for "msg" at token i. Past the end of the tokens
// the error always points after the last one; at the very start it never
// does.
func (p *Parser) errorf(msg string, i int, f form) *Error {
	toks := p.tokens
	if len(toks) == 0 {
		return &Error{Issue: diag.Errorf(nil, "%s at beginning of source", msg), Parsed: i}
	}
	switch {
	case i >= len(toks):
		i, f = len(toks), formAfter
	case i <= 0:
		i = 0
		if f == formAfter {
			f = formGot
		}
	}

	var (
		r   diag.Range
		txt string
	)
	switch f {
	case formAt:
		r, txt = toks[i].Range, fmt.Sprintf("%s at '%s'", msg, toks[i])
	case formGot:
		r, txt = toks[i].Range, fmt.Sprintf("%s, got '%s'", msg, toks[i])
	default:
		r, txt = diag.Span(toks[i-1].Range.End.Next()), fmt.Sprintf("%s after '%s'", msg, toks[i-1])
	}
	return &Error{Issue: diag.Errorf(&r, "%s", txt), Parsed: i}
}

func asError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Issue: diag.Errorf(nil, "%v", err)}
}

// attempt runs parse at i. On failure it restores the typedef scopes to
// what they were before, records the error as a candidate and returns false
// with i unchanged.
func attempt[T any](p *Parser, i int, parse func(int) (T, int, error)) (T, int, bool) {
	saved := p.scopes.snapshot()
	n, j, err := parse(i)
	if err == nil {
		return n, j, true
	}
	if e := asError(err); p.best == nil || e.Parsed >= p.best.Parsed {
		p.best = e
	}
	p.scopes = saved
	metrics.Rollbacks.Inc()
	var zero T
	return zero, i, false
}

// span is the range from token start through token end-1, clamped to the
// tokens that exist.
func (p *Parser) span(start, end int) diag.Range {
	last := len(p.tokens) - 1
	if last < 0 {
		return diag.Range{}
	}
	s := mathutil.Max(mathutil.MinVal(start, last, end-1), 0)
	e := mathutil.Max(mathutil.Min(end-1, last), 0)
	return p.tokens[s].Range.To(p.tokens[e].Range)
}

// ranged stamps n with the range of tokens [start, end) and returns it in
// the shape productions return.
func ranged[T ast.Node](p *Parser, n T, start, end int) (T, int, error) {
	n.SetRange(p.span(start, end))
	return n, end, nil
}

func (p *Parser) is(i int, kind lexer.TokenType) bool {
	return i < len(p.tokens) && p.tokens[i].Is(kind)
}

func (p *Parser) isAny(i int, kinds ...lexer.TokenType) bool {
	for _, k := range kinds {
		if p.is(i, k) {
			return true
		}
	}
	return false
}

// match requires token i to be kind and returns the index after it.
func (p *Parser) match(i int, kind lexer.TokenType, f form) (int, error) {
	if p.is(i, kind) {
		return i + 1, nil
	}
	return i, p.errorf(fmt.Sprintf("expected '%s'", kind), i, f)
}

func (p *Parser) parseRoot(i int) (*ast.TranslationUnit, int, error) {
	start := i
	tu := &ast.TranslationUnit{}
	for i < len(p.tokens) {
		item, j, ok := attempt(p, i, p.parseItem)
		if !ok {
			return nil, i, p.errorf("unexpected token", i, formAt)
		}
		tu.Items = append(tu.Items, item)
		i = j
	}
	return ranged(p, tu, start, i)
}

// parseItem parses a declaration or, failing that, an expression statement.
func (p *Parser) parseItem(i int) (ast.Item, int, error) {
	if d, j, ok := attempt(p, i, p.parseDeclaration); ok {
		return d, j, nil
	}
	x, j, err := p.parseExpression(i)
	if err != nil {
		return nil, j, err
	}
	if j, err = p.match(j, lexer.SEMI, formAfter); err != nil {
		return nil, j, err
	}
	return ranged[ast.Item](p, &ast.ExprStmt{X: x}, i, j)
}
