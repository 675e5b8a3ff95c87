package ast_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tinyrange/cfront/internal/ast"
	"github.com/tinyrange/cfront/internal/diag"
	"github.com/tinyrange/cfront/internal/ir"
	"github.com/tinyrange/cfront/internal/lexer"
	"github.com/tinyrange/cfront/internal/parser"
)

type result struct {
	code   *ir.Code
	syms   *ir.Symbols
	issues *diag.Collector
	unit   *ast.TranslationUnit
}

func compile(t *testing.T, src string) *result {
	t.Helper()
	issues := &diag.Collector{}
	unit := parser.Parse(lexer.Tokenize(src, "test.c", issues), issues)
	if unit == nil {
		t.Fatalf("parse %q: %v", src, issues.Issues())
	}
	r := &result{code: &ir.Code{}, syms: ir.NewSymbols(), issues: issues, unit: unit}
	unit.Gen(ast.NewContext(r.code, r.syms, issues))
	return r
}

func (r *result) messages() []string {
	var out []string
	for _, is := range r.issues.Issues() {
		out = append(out, is.Msg)
	}
	return out
}

func (r *result) last(t *testing.T) ir.Instr {
	t.Helper()
	if len(r.code.Instrs) == 0 {
		t.Fatal("no instructions emitted")
	}
	return r.code.Instrs[len(r.code.Instrs)-1]
}

func (r *result) lookup(t *testing.T, name string) *ir.Value {
	t.Helper()
	v, err := r.syms.LookupVariable(lexer.Token{Type: lexer.IDENT, Lex: name})
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func literalOf(t *testing.T, v *ir.Value) int64 {
	t.Helper()
	n, ok := v.Literal()
	if !ok {
		t.Fatalf("%s is not a literal", v)
	}
	return n
}

func TestFoldWraps(t *testing.T) {
	r := compile(t, "int x = 2147483647 + 1;")
	if !r.issues.OK() {
		t.Fatal(r.messages())
	}
	if len(r.code.Instrs) != 1 {
		t.Fatalf("got %d instructions, want only the store", len(r.code.Instrs))
	}
	ins := r.code.Instrs[0]
	if ins.Op != ir.OpSet || ins.Out.Name != "x" {
		t.Fatalf("got %s", ins)
	}
	if got := literalOf(t, ins.Args[0]); got != -2147483648 {
		t.Errorf("folded to %d", got)
	}
}

func TestFoldUnary(t *testing.T) {
	for src, want := range map[string]int64{
		"int x = ~0;":             -1,
		"int x = -5 + 2;":         -3,
		"int x = 'A';":            65,
		"int x = 7 / 2;":          3,
		"int x = 7 % 4;":          3,
		"int x = 3 < 4;":          1,
		"int x = 1 == 2;":         0,
		"unsigned x = 0 - 1;":     4294967295,
		"long x = 4294967296;":    4294967296,
		"int x = (char)300;":      44,
		"int x = sizeof(long);":   8,
		"int x = sizeof(int *);":  8,
		"int x = sizeof(short);":  2,
		"int x = sizeof(_Bool);":  1,
		"int x = +(1, 2);":        2,
		"int x = 10 - 20 / 4 * 2": 0,
	} {
		if !strings.HasSuffix(src, ";") {
			src += ";"
		}
		r := compile(t, src)
		if !r.issues.OK() {
			t.Errorf("%s: %v", src, r.messages())
			continue
		}
		if got := literalOf(t, r.last(t).Args[0]); got != want {
			t.Errorf("%s: got %d, want %d", src, got, want)
		}
	}
}

func TestPointerArithmetic(t *testing.T) {
	r := compile(t, "int *p; p + 1;")
	ins := r.last(t)
	if ins.Op != ir.OpAdd || literalOf(t, ins.Args[1]) != 4 {
		t.Errorf("int pointer: got %s", ins)
	}

	r = compile(t, "long *q; 2 + q;")
	ins = r.last(t)
	if ins.Op != ir.OpAdd || ins.Args[0].Name != "q" || literalOf(t, ins.Args[1]) != 16 {
		t.Errorf("long pointer: got %s", ins)
	}

	r = compile(t, "int *p; int n; p - n;")
	if ins := r.code.Instrs[len(r.code.Instrs)-1]; ins.Op != ir.OpSub {
		t.Errorf("pointer minus integer: got %s", ins)
	}
}

func TestPointerDifference(t *testing.T) {
	r := compile(t, "int *p; int *q; p - q;")
	if !r.issues.OK() {
		t.Fatal(r.messages())
	}
	ins := r.last(t)
	if ins.Op != ir.OpDiv || literalOf(t, ins.Args[1]) != 4 {
		t.Errorf("got %s, want division by the element size", ins)
	}
	if ins.Out.Type.String() != "long" {
		t.Errorf("difference has type %s", ins.Out.Type)
	}
}

func TestDiagnostics(t *testing.T) {
	for _, tt := range []struct {
		src  string
		want []string
	}{
		{"void *v; v + 1;", []string{"invalid arithmetic on pointer to incomplete type"}},
		{"void *v; void *w; v - w;", []string{"invalid arithmetic on pointers to incomplete types"}},
		{"int *p; int *q; p + q;", []string{"invalid operand types for addition"}},
		{"int *p; long *q; p - q;", []string{"invalid operand types for subtraction"}},
		{"int *p; p * 2;", []string{"invalid operand types for multiplication"}},
		{"int *p; p / 2;", []string{"invalid operand types for division"}},
		{"int *p; p % 2;", []string{"invalid operand types for modulus"}},
		{"int *p; int x; p == x;", []string{"comparison between incomparable types"}},
		{"int *p; p < 1;", []string{"comparison between incomparable types"}},

		{"const int c = 1; c = 2;", []string{"expression on left of '=' is not assignable"}},
		{"int a[3]; a = 0;", []string{"expression on left of '=' is not assignable"}},
		{"3 = 4;", []string{"expression on left of '=' is not assignable"}},
		{"int *p; p *= 2;", []string{"invalid types for '*=' operator"}},
		{"int *p; int x; x = p;", []string{"invalid conversion between types"}},
		{"int *p; long *q; p = q;", []string{"conversion from incompatible pointer type"}},
		{"const int *c; int *p; p = c;", []string{"conversion discards const qualifier"}},

		{"int *p; -p;", []string{"unary minus requires arithmetic type operand"}},
		{"int *p; +p;", []string{"unary plus requires arithmetic type operand"}},
		{"int *p; ~p;", []string{"bit-complement requires integral type operand"}},
		{"&3;", []string{"operand of unary '&' must be lvalue"}},
		{"int x; *x;", []string{"operand of unary '*' must have pointer type"}},

		{"int x; x[1];", []string{"invalid operand types for array subscripting"}},
		{"int a[2]; int *p; a[p];", []string{"invalid operand types for array subscripting"}},
		{"void *v; v[1];", []string{"cannot subscript pointer to incomplete type"}},

		{"int f(int, int); f(1);", []string{"incorrect number of arguments for function call (expected 2, have 1)"}},
		{"int f(void); f(1);", []string{"incorrect number of arguments for function call (expected 0, have 1)"}},
		{"int x; x(1);", []string{"called object is not a function pointer"}},
		{"int f(int *); f(1);", []string{"invalid conversion between types"}},

		{"void f(void); sizeof f;", []string{"sizeof argument cannot have function type"}},
		{"sizeof(void);", []string{"sizeof argument cannot have incomplete type"}},
		{"int a[]; sizeof a;", []string{"sizeof argument cannot have incomplete type"}},

		{"typedef int T = 3;", []string{"typedef cannot have an initializer"}},
		{"void v;", []string{"variable of void type declared"}},
		{"int f()[3];", []string{"function cannot return array"}},
		{"int f()();", []string{"function cannot return function"}},
		{"int a[3]();", []string{"array elements must not be functions"}},
		{"int a[0];", []string{"array size must be positive"}},
		{"int n; int a[n];", []string{"array size must be compile-time constant"}},
		{"int x[4611686018427387904];", []string{"array is too large"}},
		{"long a[1152921504606846976][8];", []string{"array is too large"}},
		{"int a[2] = 1;", []string{"declared variable is not of assignable type"}},
		{"int x; long x;", []string{"redeclared 'x' with incompatible type"}},
		{"int = 3;", []string{"missing identifier name in declaration"}},
		{"static extern int x;", []string{"too many storage classes in declaration specifiers"}},
		{"unsigned void x;", []string{"unrecognized set of type specifiers"}},
		{"const x;", []string{"missing type specifier"}},
		{"int f(void, int);", []string{"'void' must be the only parameter"}},
		{"y;", []string{"use of undeclared identifier 'y'"}},
		{"int x = 99999999999999999999;", []string{"integer literal too large to be represented by any integer type"}},
		{"int *p; (int[3])p;", []string{"can only cast to scalar or void type"}},
	} {
		r := compile(t, tt.src)
		if diff := cmp.Diff(tt.want, r.messages()); diff != "" {
			t.Errorf("%s: issues mismatch (-want +got):\n%s", tt.src, diff)
		}
	}
}

func TestItemsContinueAfterError(t *testing.T) {
	r := compile(t, "y; int x; x = 1; z;")
	want := []string{"use of undeclared identifier 'y'", "use of undeclared identifier 'z'"}
	if diff := cmp.Diff(want, r.messages()); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestDeclaratorErrorsDoNotCascade(t *testing.T) {
	r := compile(t, "int a = y, b; b = 1; typedef int T[0], U; U u;")
	want := []string{"use of undeclared identifier 'y'", "array size must be positive"}
	if diff := cmp.Diff(want, r.messages()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if ins := r.last(t); ins.Op != ir.OpSet || ins.Out.Name != "b" {
		t.Errorf("got %s", ins)
	}
	r.lookup(t, "a")
	r.lookup(t, "u")
}

func TestLargestArray(t *testing.T) {
	r := compile(t, "char big[4611686018427387904]; long n = sizeof big;")
	if !r.issues.OK() {
		t.Fatal(r.messages())
	}
	if ins := r.last(t); literalOf(t, ins.Args[0]) != 1<<62 {
		t.Errorf("got %s", ins)
	}
}

func TestPointerComparison(t *testing.T) {
	r := compile(t, "int *p; long *q; p == q;")
	if diff := cmp.Diff([]string{"comparison between distinct pointer types"}, r.messages()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if !r.issues.OK() || r.issues.Warnings() != 1 {
		t.Error("a distinct pointer comparison should only warn")
	}
	if ins := r.last(t); ins.Op != ir.OpEq || ins.Out.Type.String() != "int" {
		t.Errorf("comparison still evaluates, got %s", ins)
	}

	for _, src := range []string{
		"int *p; p == 0;",
		"int *p; 0 != p;",
		"int *p; void *v; p == v;",
		"int *p; int *q; p < q;",
		"int *const p; int *q; p == q;",
	} {
		if r := compile(t, src); len(r.issues.Issues()) != 0 {
			t.Errorf("%s: %v", src, r.messages())
		}
	}
}

func TestAssignment(t *testing.T) {
	r := compile(t, "char c; c = 300;")
	ins := r.last(t)
	if ins.Op != ir.OpSet || ins.Out.Name != "c" || literalOf(t, ins.Args[0]) != 44 {
		t.Errorf("got %s", ins)
	}

	r = compile(t, "int *p; p += 2;")
	if !r.issues.OK() {
		t.Fatal(r.messages())
	}
	ins = r.last(t)
	if ins.Op != ir.OpSet || ins.Out.Name != "p" {
		t.Errorf("got %s", ins)
	}
	add := r.code.Instrs[len(r.code.Instrs)-2]
	if add.Op != ir.OpAdd || literalOf(t, add.Args[1]) != 8 {
		t.Errorf("got %s", add)
	}

	r = compile(t, "int x; long y; x += y;")
	if !r.issues.OK() {
		t.Fatal(r.messages())
	}
	if ins := r.last(t); ins.Op != ir.OpSet || ins.Out.Type.String() != "int" {
		t.Errorf("compound result not converted back: %s", ins)
	}

	r = compile(t, "int *p; *p = 1;")
	if ins := r.last(t); ins.Op != ir.OpStore || ins.Args[0].Name != "p" {
		t.Errorf("got %s", ins)
	}
}

func TestSubscript(t *testing.T) {
	r := compile(t, "int a[4]; a[2] = 5;")
	ins := r.last(t)
	if ins.Op != ir.OpStoreRel || ins.Chunk != 4 || literalOf(t, ins.Args[1]) != 2 {
		t.Errorf("got %s", ins)
	}

	r = compile(t, "long a[4]; 3[a];")
	ins = r.last(t)
	if ins.Op != ir.OpLoadRel || ins.Chunk != 8 || ins.Args[0].Name != "a" {
		t.Errorf("reversed operands: got %s", ins)
	}

	r = compile(t, "int *p; p[1];")
	ins = r.last(t)
	if ins.Op != ir.OpLoad {
		t.Errorf("pointer subscript: got %s", ins)
	}
	if add := r.code.Instrs[len(r.code.Instrs)-2]; add.Op != ir.OpAdd || literalOf(t, add.Args[1]) != 4 {
		t.Errorf("pointer subscript offset: got %s", add)
	}

	r = compile(t, "int a[2][3]; a[1][2] = 0;")
	if !r.issues.OK() {
		t.Fatal(r.messages())
	}
	if ins := r.last(t); ins.Op != ir.OpStore {
		t.Errorf("nested subscript: got %s", ins)
	}
}

func TestCalls(t *testing.T) {
	r := compile(t, "int f(long); f(1);")
	if !r.issues.OK() {
		t.Fatal(r.messages())
	}
	ins := r.last(t)
	if ins.Op != ir.OpCall || len(ins.Args) != 2 {
		t.Fatalf("got %s", ins)
	}
	if got := ins.Args[1].Type.String(); got != "long" {
		t.Errorf("argument converted to %s", got)
	}
	if ins.Out.Type.String() != "int" {
		t.Errorf("call has type %s", ins.Out.Type)
	}

	r = compile(t, "int g(); char c; g(c, 1);")
	if !r.issues.OK() {
		t.Fatal(r.messages())
	}
	ins = r.last(t)
	if got := ins.Args[1].Type.String(); got != "int" {
		t.Errorf("unprototyped argument promoted to %s", got)
	}

	r = compile(t, "int (*fp)(int); fp(2);")
	if !r.issues.OK() {
		t.Fatal(r.messages())
	}
	if ins := r.last(t); ins.Op != ir.OpCall || ins.Args[0].Name != "fp" {
		t.Errorf("call through pointer: got %s", ins)
	}
}

func TestSizeof(t *testing.T) {
	r := compile(t, "int a[10]; char b[sizeof a]; char c[sizeof(a[0])];")
	if !r.issues.OK() {
		t.Fatal(r.messages())
	}
	if got := r.lookup(t, "b").Type.Size(); got != 40 {
		t.Errorf("sizeof array: %d", got)
	}
	if got := r.lookup(t, "c").Type.Size(); got != 4 {
		t.Errorf("sizeof element: %d", got)
	}
	if len(r.code.Instrs) != 0 {
		t.Errorf("sizeof operands emitted %d instructions", len(r.code.Instrs))
	}
}

func TestTypedefDeclarations(t *testing.T) {
	r := compile(t, "typedef int *IP; IP p; int *q; q = p; typedef IP A[3]; A arr;")
	if !r.issues.OK() {
		t.Fatal(r.messages())
	}
	if got := r.lookup(t, "arr").Type.String(); got != "int *[3]" {
		t.Errorf("arr has type %s", got)
	}
}

func TestStringLiteral(t *testing.T) {
	r := compile(t, `char *s = "hi";`)
	if !r.issues.OK() {
		t.Fatal(r.messages())
	}
	if len(r.code.Strings) != 1 {
		t.Fatalf("got %d strings", len(r.code.Strings))
	}
	if diff := cmp.Diff([]int{'h', 'i', 0}, r.code.Strings[0].Str()); diff != "" {
		t.Errorf("string mismatch (-want +got):\n%s", diff)
	}
}

func TestValueIsCachedPerPass(t *testing.T) {
	issues := &diag.Collector{}
	unit := parser.Parse(lexer.Tokenize("int x; x + 1;", "test.c", issues), issues)
	if unit == nil {
		t.Fatal(issues.Issues())
	}
	code, syms := &ir.Code{}, ir.NewSymbols()
	c := ast.NewContext(code, syms, issues)
	if err := unit.Items[0].Gen(c); err != nil {
		t.Fatal(err)
	}
	x := unit.Items[1].(*ast.ExprStmt).X
	v1, err := x.Value(c)
	if err != nil {
		t.Fatal(err)
	}
	v2, _ := x.Value(c)
	if v1 != v2 || len(code.Instrs) != 1 {
		t.Errorf("second evaluation in a pass emitted again: %d instructions", len(code.Instrs))
	}

	v3, _ := x.Value(ast.NewContext(code, syms, issues))
	if v3 == v1 || len(code.Instrs) != 2 {
		t.Error("a new pass should evaluate again")
	}
}

func TestDump(t *testing.T) {
	issues := &diag.Collector{}
	unit := parser.Parse(lexer.Tokenize("int *x[3] = 0; x[1] + 2;", "test.c", issues), issues)
	var b strings.Builder
	if err := ast.Dump(&b, unit); err != nil {
		t.Fatal(err)
	}
	want := `TranslationUnit
	Declaration
		Root int
			Pointer
				Array
					Number 3
					Name x
			Init
				Number 0
	ExprStmt
		Binary +
			ArraySubsc
				Identifier x
				Number 1
			Number 2
`
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("dump mismatch (-want +got):\n%s", diff)
	}
}
