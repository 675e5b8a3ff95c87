package ast

import (
	"fmt"
	"io"
	"strings"

	"modernc.org/strutil"

	"github.com/tinyrange/cfront/internal/lexer"
)

// Dump writes n and its children as an indented outline, one node per line.
func Dump(w io.Writer, n Node) error {
	d := &dumper{f: strutil.IndentFormatter(w, "\t")}
	d.node(n)
	return d.err
}

type dumper struct {
	f   strutil.Formatter
	err error
}

func (d *dumper) printf(format string, args ...interface{}) {
	if d.err == nil {
		_, d.err = d.f.Format(format, args...)
	}
}

// open prints a line and indents whatever follows until close.
func (d *dumper) open(format string, args ...interface{}) {
	d.printf(format+"%i\n", args...)
}

func (d *dumper) close() { d.printf("%u") }

func specWords(specs []lexer.Token) string {
	var words []string
	for _, s := range specs {
		words = append(words, s.Lex)
	}
	return strings.Join(words, " ")
}

func (d *dumper) node(n Node) {
	switch n := n.(type) {
	case *TranslationUnit:
		d.open("TranslationUnit")
		for _, it := range n.Items {
			d.node(it)
		}
		d.close()
	case *Declaration:
		d.open("Declaration")
		d.node(n.Root)
		d.close()
	case *ExprStmt:
		d.open("ExprStmt")
		d.node(n.X)
		d.close()
	case *Root:
		d.open("Root %s", specWords(n.Specs))
		for i, decl := range n.Decls {
			d.node(decl)
			if i < len(n.Inits) && n.Inits[i] != nil {
				d.open("Init")
				d.node(n.Inits[i])
				d.close()
			}
		}
		d.close()

	case *Name:
		if n.Tok == nil {
			d.printf("Name <abstract>\n")
			return
		}
		d.printf("Name %s\n", n.Tok.Lex)
	case *PointerDecl:
		if n.Const {
			d.open("Pointer const")
		} else {
			d.open("Pointer")
		}
		d.node(n.Child)
		d.close()
	case *ArrayDecl:
		d.open("Array")
		if n.Size != nil {
			d.node(n.Size)
		}
		d.node(n.Child)
		d.close()
	case *FuncDecl:
		d.open("Function")
		for _, p := range n.Params {
			d.node(p)
		}
		d.node(n.Child)
		d.close()

	case *Number:
		d.printf("Number %s\n", n.Tok.Lex)
	case *Char:
		d.printf("Char %s\n", n.Tok)
	case *String:
		d.printf("String %s\n", n.Tok)
	case *Identifier:
		d.printf("Identifier %s\n", n.Tok.Lex)
	case *Paren:
		d.open("Paren")
		d.node(n.X)
		d.close()
	case *Binary:
		d.open("Binary %s", n.Op.Lex)
		d.node(n.Left)
		d.node(n.Right)
		d.close()
	case *Assign:
		d.open("Assign %s", n.Op.Lex)
		d.node(n.Left)
		d.node(n.Right)
		d.close()
	case *Unary:
		d.open("Unary %s", n.Op.Lex)
		d.node(n.X)
		d.close()
	case *AddrOf:
		d.open("AddrOf")
		d.node(n.X)
		d.close()
	case *Deref:
		d.open("Deref")
		d.node(n.X)
		d.close()
	case *ArraySubsc:
		d.open("ArraySubsc")
		d.node(n.Head)
		d.node(n.Arg)
		d.close()
	case *FuncCall:
		d.open("FuncCall")
		d.node(n.Func)
		for _, a := range n.Args {
			d.node(a)
		}
		d.close()
	case *Cast:
		d.open("Cast")
		d.node(n.Type)
		d.node(n.X)
		d.close()
	case *SizeofExpr:
		d.open("Sizeof")
		d.node(n.X)
		d.close()
	case *SizeofType:
		d.open("Sizeof")
		d.node(n.Type)
		d.close()
	case *Comma:
		d.open("Comma")
		d.node(n.Left)
		d.node(n.Right)
		d.close()
	default:
		d.printf("%s\n", fmt.Sprintf("%T", n))
	}
}
