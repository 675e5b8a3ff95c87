package ast

import (
	"math"
	"sort"
	"strings"

	"modernc.org/mathutil"

	"github.com/tinyrange/cfront/internal/diag"
	"github.com/tinyrange/cfront/internal/lexer"
	"github.com/tinyrange/cfront/internal/types"
)

// Declarator is one layer of a declarator. The outermost layer applies to
// the declaration specifiers first; Name is always the innermost.
type Declarator interface {
	Node
	isDeclarator()
}

// Name ends a declarator. Tok is nil in abstract declarators.
type Name struct {
	node
	Tok *lexer.Token
}

type PointerDecl struct {
	node
	Const bool
	Child Declarator
}

// ArrayDecl has a nil Size when the length is not given.
type ArrayDecl struct {
	node
	Size  Expr
	Child Declarator
}

// FuncDecl has no Params for "()", which declares a function without a
// prototype. "(void)" is a single unnamed void parameter.
type FuncDecl struct {
	node
	Params []*Root
	Child  Declarator
}

func (*Name) isDeclarator()        {}
func (*PointerDecl) isDeclarator() {}
func (*ArrayDecl) isDeclarator()   {}
func (*FuncDecl) isDeclarator()    {}

// Root is a set of declaration specifiers with the declarators sharing them.
// Inits is index-aligned with Decls; a nil entry has no initializer.
type Root struct {
	node
	Specs []lexer.Token
	Decls []Declarator
	Inits []Expr
}

func (r *Root) IsTypedef() bool {
	for _, s := range r.Specs {
		if s.Is(lexer.KW_TYPEDEF) {
			return true
		}
	}
	return false
}

// DeclaredName returns the identifier a declarator declares, if any.
func DeclaredName(d Declarator) *lexer.Token {
	for {
		switch n := d.(type) {
		case *Name:
			return n.Tok
		case *PointerDecl:
			d = n.Child
		case *ArrayDecl:
			d = n.Child
		case *FuncDecl:
			d = n.Child
		default:
			return nil
		}
	}
}

// builtins maps the sorted words of a type specifier list to its type.
var builtins = map[string]types.CType{}

func init() {
	for spelling, t := range map[string]types.CType{
		"void":               types.VoidT,
		"_Bool":              types.Bool,
		"char":               types.Char,
		"signed char":        types.Char,
		"unsigned char":      types.UChar,
		"short":              types.Short,
		"short int":          types.Short,
		"signed short":       types.Short,
		"signed short int":   types.Short,
		"unsigned short":     types.UShort,
		"unsigned short int": types.UShort,
		"int":                types.Int,
		"signed":             types.Int,
		"signed int":         types.Int,
		"unsigned":           types.UInt,
		"unsigned int":       types.UInt,
		"long":               types.Long,
		"long int":           types.Long,
		"signed long":        types.Long,
		"signed long int":    types.Long,
		"unsigned long":      types.ULong,
		"unsigned long int":  types.ULong,
		"long long":          types.Long,
		"long long int":      types.Long,
		"unsigned long long": types.ULong,
	} {
		builtins[specKey(strings.Fields(spelling))] = t
	}
}

func specKey(words []string) string {
	words = append([]string(nil), words...)
	sort.Strings(words)
	return strings.Join(words, " ")
}

func specsRange(specs []lexer.Token) *diag.Range {
	r := specs[0].Range.To(specs[len(specs)-1].Range)
	return &r
}

// specType is the type named by a list of declaration specifiers.
func specType(c *Context, specs []lexer.Token) (types.CType, error) {
	if len(specs) == 0 {
		return types.CType{}, diag.Errorf(nil, "expected declaration specifier")
	}
	var (
		words   []string
		typedef *lexer.Token
		konst   bool
		storage int
	)
	for i, s := range specs {
		switch s.Type {
		case lexer.IDENT:
			typedef = &specs[i]
		case lexer.KW_CONST:
			konst = true
		case lexer.KW_TYPEDEF, lexer.KW_EXTERN, lexer.KW_STATIC, lexer.KW_AUTO, lexer.KW_REGISTER:
			storage++
		default:
			words = append(words, s.Lex)
		}
	}
	if storage > 1 {
		return types.CType{}, diag.Errorf(specsRange(specs), "too many storage classes in declaration specifiers")
	}

	var t types.CType
	switch {
	case typedef != nil && len(words) > 0:
		return types.CType{}, diag.Errorf(specsRange(specs), "unrecognized set of type specifiers")
	case typedef != nil:
		var ok bool
		if t, ok = c.Symbols.LookupTypedef(*typedef); !ok {
			return types.CType{}, diag.Errorf(&typedef.Range, "unknown type name '%s'", typedef.Lex)
		}
	case len(words) == 0:
		return types.CType{}, diag.Errorf(specsRange(specs), "missing type specifier")
	default:
		var ok bool
		if t, ok = builtins[specKey(words)]; !ok {
			return types.CType{}, diag.Errorf(specsRange(specs), "unrecognized set of type specifiers")
		}
	}
	if konst {
		t = t.WithConst()
	}
	return t, nil
}

// TypeOf applies declarator d to base. It returns the declared type and the
// declared identifier, which is nil for abstract declarators.
func TypeOf(c *Context, base types.CType, d Declarator) (types.CType, *lexer.Token, error) {
	for {
		switch n := d.(type) {
		case *Name:
			return base, n.Tok, nil

		case *PointerDecl:
			base = types.PointerTo(base)
			if n.Const {
				base = base.WithConst()
			}
			d = n.Child

		case *ArrayDecl:
			r := n.Range()
			if base.IsFunction() {
				return base, nil, diag.Errorf(&r, "array elements must not be functions")
			}
			if !base.IsComplete() {
				return base, nil, diag.Errorf(&r, "array elements must have complete type")
			}
			if n.Size == nil {
				base = types.IncompleteArrayOf(base)
			} else {
				size, err := arraySize(c, n.Size, base)
				if err != nil {
					return base, nil, err
				}
				base = types.ArrayOf(base, size)
			}
			d = n.Child

		case *FuncDecl:
			r := n.Range()
			if base.IsArray() {
				return base, nil, diag.Errorf(&r, "function cannot return array")
			}
			if base.IsFunction() {
				return base, nil, diag.Errorf(&r, "function cannot return function")
			}
			if len(n.Params) == 0 {
				base = types.FuncOf(base, nil, true)
			} else {
				params, err := paramTypes(c, n.Params)
				if err != nil {
					return base, nil, err
				}
				base = types.FuncOf(base, params, false)
			}
			d = n.Child

		default:
			return base, nil, diag.Errorf(nil, "unknown declarator")
		}
	}
}

// arraySize evaluates the length of an array of elem. The array's size in
// bytes must fit in a long.
func arraySize(c *Context, e Expr, elem types.CType) (int, error) {
	r := e.Range()
	v, err := e.Value(c.scratch())
	if err != nil {
		return 0, err
	}
	n, ok := v.Literal()
	if !ok || !v.Type.IsIntegral() {
		return 0, diag.Errorf(&r, "array size must be compile-time constant")
	}
	if n <= 0 {
		return 0, diag.Errorf(&r, "array size must be positive")
	}
	if n > math.MaxInt64/int64(mathutil.Max(elem.Size(), 1)) {
		return 0, diag.Errorf(&r, "array is too large")
	}
	return int(n), nil
}

// paramTypes adjusts parameter declarations: arrays and functions become
// pointers, and a lone unnamed void parameter means there are none.
func paramTypes(c *Context, params []*Root) ([]types.CType, error) {
	var out []types.CType
	for _, p := range params {
		base, err := specType(c, p.Specs)
		if err != nil {
			return nil, err
		}
		t, name, err := TypeOf(c, base, p.Decls[0])
		if err != nil {
			return nil, err
		}
		switch {
		case t.IsVoid():
			if len(params) != 1 || name != nil || t.IsConst() {
				r := p.Range()
				return nil, diag.Errorf(&r, "'void' must be the only parameter")
			}
			return nil, nil
		case t.IsArray():
			t = types.PointerTo(t.Elem())
		case t.IsFunction():
			t = types.PointerTo(t)
		}
		out = append(out, t)
	}
	return out, nil
}

// TypeName is the type written in a cast or sizeof.
func TypeName(c *Context, r *Root) (types.CType, error) {
	base, err := specType(c, r.Specs)
	if err != nil {
		return base, err
	}
	t, _, err := TypeOf(c, base, r.Decls[0])
	return t, err
}
