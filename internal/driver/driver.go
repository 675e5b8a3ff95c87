// Package driver runs the front end over one source file: tokenize, parse,
// then check and lower every item into an instruction listing.
package driver

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tinyrange/cfront/internal/ast"
	"github.com/tinyrange/cfront/internal/diag"
	"github.com/tinyrange/cfront/internal/ir"
	"github.com/tinyrange/cfront/internal/lexer"
	"github.com/tinyrange/cfront/internal/metrics"
	"github.com/tinyrange/cfront/internal/parser"
)

type Options struct {
	Parse bool // Stop after tokenizing when false.

	Tokens bool // Print the token stream.
	AST    bool // Print the syntax tree.
	IL     bool // Print the instruction listing.

	Color            bool
	WarningsAsErrors bool
}

// Result is everything one compilation produced. Unit and Code are nil when
// the stage that builds them did not run or failed.
type Result struct {
	File   string
	Tokens []lexer.Token
	Unit   *ast.TranslationUnit
	Code   *ir.Code
	Issues *diag.Collector

	opts Options
}

func Compile(file, src string, opts Options) *Result {
	issues := &diag.Collector{Color: opts.Color}
	r := &Result{File: file, Issues: issues, opts: opts}

	r.Tokens = lexer.Tokenize(src, file, issues)
	if opts.Parse {
		r.Unit = parser.Parse(r.Tokens, issues)
	}
	if r.Unit != nil {
		r.Code = &ir.Code{}
		r.Unit.Gen(ast.NewContext(r.Code, ir.NewSymbols(), issues))
	}

	metrics.Compilations.WithLabelValues(strconv.FormatBool(r.OK())).Inc()
	return r
}

func CompileFile(path string, opts Options) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(path, string(src), opts), nil
}

// OK reports whether the compilation succeeded. Warnings only count against
// it with WarningsAsErrors.
func (r *Result) OK() bool {
	if r.opts.WarningsAsErrors && r.Issues.Warnings() > 0 {
		return false
	}
	return r.Issues.OK()
}

// Print writes the requested listings to out and the diagnostics to errw.
func (r *Result) Print(out, errw io.Writer) error {
	if r.opts.Tokens {
		for _, tok := range r.Tokens {
			if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", tok.Range.Start, tok.Type, tok); err != nil {
				return err
			}
		}
	}
	if r.opts.AST && r.Unit != nil {
		if err := ast.Dump(out, r.Unit); err != nil {
			return err
		}
	}
	if r.opts.IL && r.Code != nil {
		if err := r.Code.Dump(out); err != nil {
			return err
		}
	}
	return r.Issues.Show(errw)
}
