package ast

import (
	"sync/atomic"

	"github.com/tinyrange/cfront/internal/diag"
	"github.com/tinyrange/cfront/internal/ir"
	"github.com/tinyrange/cfront/internal/lexer"
	"github.com/tinyrange/cfront/internal/types"
)

// Node is anything the parser builds. Every node carries the range of the
// tokens it was parsed from.
type Node interface {
	Range() diag.Range
	SetRange(diag.Range)
}

type node struct{ r diag.Range }

func (n *node) Range() diag.Range    { return n.r }
func (n *node) SetRange(r diag.Range) { n.r = r }

// Emitter receives the values and instructions produced while checking
// expressions. *ir.Code implements it.
type Emitter interface {
	NewValue(t types.CType) *ir.Value
	RegisterLiteral(v *ir.Value, n int64)
	RegisterString(v *ir.Value, chars []int)
	Add(ins ir.Instr)
}

// Scope resolves identifiers to storage and typedef names to types.
// *ir.Symbols implements it.
type Scope interface {
	LookupVariable(tok lexer.Token) (*ir.Value, error)
	LookupTypedef(tok lexer.Token) (types.CType, bool)
	DeclareVariable(tok lexer.Token, t types.CType) (*ir.Value, error)
	DeclareTypedef(tok lexer.Token, t types.CType) error
}

// Context is one code generation pass over a tree. Expression nodes cache
// their results per pass, so a node evaluated twice in the same pass emits
// its instructions once.
type Context struct {
	IL      Emitter
	Symbols Scope
	Issues  *diag.Collector

	pass int64
}

var passes int64

func NewContext(il Emitter, syms Scope, issues *diag.Collector) *Context {
	if issues == nil {
		issues = &diag.Collector{}
	}
	return &Context{IL: il, Symbols: syms, Issues: issues, pass: atomic.AddInt64(&passes, 1)}
}

// scratch is a pass whose instructions are thrown away. It is used where
// only the type or constant value of an expression matters.
func (c *Context) scratch() *Context {
	return NewContext(&ir.Code{}, c.Symbols, c.Issues)
}

// Item is a top-level construct of a translation unit.
type Item interface {
	Node
	Gen(c *Context) error
}

type TranslationUnit struct {
	node
	Items []Item
}

// Gen checks every item in order. An item that fails is reported and the
// remaining items are still checked.
func (tu *TranslationUnit) Gen(c *Context) {
	for _, it := range tu.Items {
		c.Issues.Add(it.Gen(c))
	}
}

// Declaration declares every declarator of Root.
type Declaration struct {
	node
	Root *Root
}

// Gen declares each declarator in turn. A declarator that fails is reported
// and the rest are still declared, so later uses of them resolve.
func (d *Declaration) Gen(c *Context) error {
	if len(d.Root.Decls) == 0 {
		return nil
	}
	base, err := specType(c, d.Root.Specs)
	if err != nil {
		return err
	}
	typedef := d.Root.IsTypedef()
	for i, decl := range d.Root.Decls {
		c.Issues.Add(declare(c, base, typedef, decl, d.Root.Inits[i]))
	}
	return nil
}

func declare(c *Context, base types.CType, typedef bool, decl Declarator, init Expr) error {
	t, name, err := TypeOf(c, base, decl)
	if err != nil {
		return err
	}
	if name == nil {
		r := decl.Range()
		return diag.Errorf(&r, "missing identifier name in declaration")
	}
	if typedef {
		if init != nil {
			r := init.Range()
			return diag.Errorf(&r, "typedef cannot have an initializer")
		}
		return c.Symbols.DeclareTypedef(*name, t)
	}
	if t.IsVoid() {
		return diag.Errorf(&name.Range, "variable of void type declared")
	}
	v, err := c.Symbols.DeclareVariable(*name, t)
	if err != nil || init == nil {
		return err
	}
	if !t.IsScalar() {
		r := init.Range()
		return diag.Errorf(&r, "declared variable is not of assignable type")
	}
	val, err := init.Value(c)
	if err != nil {
		return err
	}
	_, err = (DirectLValue{V: v}).SetTo(c, val, init.Range())
	return err
}

// ExprStmt is an expression evaluated for its effects.
type ExprStmt struct {
	node
	X Expr
}

func (s *ExprStmt) Gen(c *Context) error {
	_, err := s.X.Value(c)
	return err
}
