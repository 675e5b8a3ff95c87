package ast

import (
	"strconv"

	"modernc.org/mathutil"

	"github.com/tinyrange/cfront/internal/diag"
	"github.com/tinyrange/cfront/internal/ir"
	"github.com/tinyrange/cfront/internal/lexer"
	"github.com/tinyrange/cfront/internal/metrics"
	"github.com/tinyrange/cfront/internal/types"
)

// Expr is an expression node. Value is the node's value with arrays and
// functions decayed to pointers; RawValue skips the decay. LValue returns nil
// for nodes that do not designate an object.
type Expr interface {
	Node
	Value(c *Context) (*ir.Value, error)
	RawValue(c *Context) (*ir.Value, error)
	LValue(c *Context) (LValue, error)
}

// rvalue is embedded by nodes that compute a value.
type rvalue struct {
	node
	pass int64
	v    *ir.Value
	err  error
}

func (e *rvalue) cached(c *Context, gen func(*Context) (*ir.Value, error)) (*ir.Value, error) {
	if c.pass != 0 && e.pass == c.pass {
		return e.v, e.err
	}
	e.v, e.err = gen(c)
	e.pass = c.pass
	return e.v, e.err
}

func (*rvalue) LValue(*Context) (LValue, error) { return nil, nil }

// lvalue is embedded by nodes that designate an object.
type lvalue struct {
	node
	pass int64
	lv   LValue
	err  error
}

func (e *lvalue) located(c *Context, locate func(*Context) (LValue, error)) (LValue, error) {
	if c.pass != 0 && e.pass == c.pass {
		return e.lv, e.err
	}
	e.lv, e.err = locate(c)
	e.pass = c.pass
	return e.lv, e.err
}

func valueOf(c *Context, e Expr) (*ir.Value, error) {
	lv, err := e.LValue(c)
	if err != nil {
		return nil, err
	}
	t := lv.Type()
	switch {
	case t.IsArray():
		return setType(c, lv.Addr(c), types.PointerTo(t.Elem())), nil
	case t.IsFunction():
		return lv.Addr(c), nil
	}
	return lv.Val(c), nil
}

func rawValueOf(c *Context, e Expr) (*ir.Value, error) {
	lv, err := e.LValue(c)
	if err != nil {
		return nil, err
	}
	return lv.Val(c), nil
}

// Number is a decimal integer literal. It is an int if it fits, else a long.
type Number struct {
	rvalue
	Tok lexer.Token
}

func (e *Number) Value(c *Context) (*ir.Value, error)    { return e.cached(c, e.gen) }
func (e *Number) RawValue(c *Context) (*ir.Value, error) { return e.Value(c) }

func (e *Number) gen(c *Context) (*ir.Value, error) {
	n, err := strconv.ParseUint(e.Tok.Lex, 10, 64)
	bits := mathutil.BitLenUint64(n)
	switch {
	case err != nil || bits > 63:
		return nil, diag.Errorf(&e.Tok.Range, "integer literal too large to be represented by any integer type")
	case bits > 31:
		return literal(c, int64(n), types.Long), nil
	}
	return literal(c, int64(n), types.Int), nil
}

// Char is a character constant. Its type is int.
type Char struct {
	rvalue
	Tok lexer.Token
}

func (e *Char) Value(c *Context) (*ir.Value, error)    { return e.cached(c, e.gen) }
func (e *Char) RawValue(c *Context) (*ir.Value, error) { return e.Value(c) }

func (e *Char) gen(c *Context) (*ir.Value, error) {
	return literal(c, types.Wrap(int64(e.Tok.Chars[0]), types.Char), types.Int), nil
}

// String is a string literal, an array of char.
type String struct {
	lvalue
	Tok lexer.Token
}

func (e *String) LValue(c *Context) (LValue, error)      { return e.located(c, e.locate) }
func (e *String) Value(c *Context) (*ir.Value, error)    { return valueOf(c, e) }
func (e *String) RawValue(c *Context) (*ir.Value, error) { return rawValueOf(c, e) }

func (e *String) locate(c *Context) (LValue, error) {
	v := c.IL.NewValue(types.ArrayOf(types.Char, len(e.Tok.Chars)))
	c.IL.RegisterString(v, e.Tok.Chars)
	return DirectLValue{V: v}, nil
}

type Identifier struct {
	lvalue
	Tok lexer.Token
}

func (e *Identifier) LValue(c *Context) (LValue, error)      { return e.located(c, e.locate) }
func (e *Identifier) Value(c *Context) (*ir.Value, error)    { return valueOf(c, e) }
func (e *Identifier) RawValue(c *Context) (*ir.Value, error) { return rawValueOf(c, e) }

func (e *Identifier) locate(c *Context) (LValue, error) {
	v, err := c.Symbols.LookupVariable(e.Tok)
	if err != nil {
		return nil, err
	}
	return DirectLValue{V: v}, nil
}

// Paren is a parenthesized expression. It behaves exactly like X.
type Paren struct {
	node
	X Expr
}

func (e *Paren) Value(c *Context) (*ir.Value, error)    { return e.X.Value(c) }
func (e *Paren) RawValue(c *Context) (*ir.Value, error) { return e.X.RawValue(c) }
func (e *Paren) LValue(c *Context) (LValue, error)      { return e.X.LValue(c) }

var binOps = map[lexer.TokenType]ir.Op{
	lexer.PLUS:    ir.OpAdd,
	lexer.MINUS:   ir.OpSub,
	lexer.STAR:    ir.OpMul,
	lexer.SLASH:   ir.OpDiv,
	lexer.PERCENT: ir.OpMod,
	lexer.EQEQ:    ir.OpEq,
	lexer.NEQ:     ir.OpNe,
	lexer.LT:      ir.OpLt,
	lexer.GT:      ir.OpGt,
	lexer.LE:      ir.OpLe,
	lexer.GE:      ir.OpGe,

	lexer.ADD_ASSIGN: ir.OpAdd,
	lexer.SUB_ASSIGN: ir.OpSub,
	lexer.MUL_ASSIGN: ir.OpMul,
	lexer.DIV_ASSIGN: ir.OpDiv,
	lexer.MOD_ASSIGN: ir.OpMod,
}

var opNames = map[lexer.TokenType]string{
	lexer.PLUS:    "addition",
	lexer.MINUS:   "subtraction",
	lexer.STAR:    "multiplication",
	lexer.SLASH:   "division",
	lexer.PERCENT: "modulus",
}

func isComparison(op ir.Op) bool { return op >= ir.OpEq && op <= ir.OpGe }

// Binary is an arithmetic, equality or relational operation.
type Binary struct {
	rvalue
	Op          lexer.Token
	Left, Right Expr
}

func (e *Binary) Value(c *Context) (*ir.Value, error)    { return e.cached(c, e.gen) }
func (e *Binary) RawValue(c *Context) (*ir.Value, error) { return e.Value(c) }

func (e *Binary) gen(c *Context) (*ir.Value, error) {
	l, err := e.Left.Value(c)
	if err != nil {
		return nil, err
	}
	r, err := e.Right.Value(c)
	if err != nil {
		return nil, err
	}
	op := binOps[e.Op.Type]
	if l.Type.IsArith() && r.Type.IsArith() {
		l, r = arithConvert(c, l, r)
		return arith(c, op, l, r), nil
	}
	switch e.Op.Type {
	case lexer.PLUS:
		return e.pointerAdd(c, l, r)
	case lexer.MINUS:
		return e.pointerSub(c, l, r)
	case lexer.EQEQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LE, lexer.GE:
		return e.pointerCompare(c, op, l, r)
	}
	return nil, diag.Errorf(&e.Op.Range, "invalid operand types for %s", opNames[e.Op.Type])
}

// arith emits op on two operands of the same arithmetic type, folding it when
// both are literals.
func arith(c *Context, op ir.Op, l, r *ir.Value) *ir.Value {
	t := l.Type.Unqualified()
	if isComparison(op) {
		t = types.Int
	}
	a, aok := l.Literal()
	b, bok := r.Literal()
	if aok && bok {
		if n, ok := fold(op, types.Wrap(a, l.Type), types.Wrap(b, l.Type), l.Type); ok {
			metrics.Folds.Inc()
			return literal(c, n, t)
		}
	}
	out := c.IL.NewValue(t)
	c.IL.Add(ir.Instr{Op: op, Out: out, Args: []*ir.Value{l, r}})
	return out
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// fold evaluates op on literals of type t. It declines division by zero,
// which is left for run time.
func fold(op ir.Op, a, b int64, t types.CType) (int64, bool) {
	ua, ub := uint64(a), uint64(b)
	unsigned := !t.IsSigned()
	switch op {
	case ir.OpAdd:
		return a + b, true
	case ir.OpSub:
		return a - b, true
	case ir.OpMul:
		return a * b, true
	case ir.OpDiv, ir.OpMod:
		if b == 0 {
			return 0, false
		}
		switch {
		case unsigned && op == ir.OpDiv:
			return int64(ua / ub), true
		case unsigned:
			return int64(ua % ub), true
		case op == ir.OpDiv:
			return a / b, true
		}
		return a % b, true
	case ir.OpEq:
		return b2i(a == b), true
	case ir.OpNe:
		return b2i(a != b), true
	}
	if unsigned {
		switch op {
		case ir.OpLt:
			return b2i(ua < ub), true
		case ir.OpGt:
			return b2i(ua > ub), true
		case ir.OpLe:
			return b2i(ua <= ub), true
		case ir.OpGe:
			return b2i(ua >= ub), true
		}
		return 0, false
	}
	switch op {
	case ir.OpLt:
		return b2i(a < b), true
	case ir.OpGt:
		return b2i(a > b), true
	case ir.OpLe:
		return b2i(a <= b), true
	case ir.OpGe:
		return b2i(a >= b), true
	}
	return 0, false
}

// offset emits ptr op n, with n scaled by the pointee size.
func offset(c *Context, op ir.Op, ptr, n *ir.Value) *ir.Value {
	shift := scaledSize(c, ptr.Type.Elem(), n)
	out := c.IL.NewValue(ptr.Type.Unqualified())
	c.IL.Add(ir.Instr{Op: op, Out: out, Args: []*ir.Value{ptr, shift}})
	return out
}

func (e *Binary) pointerAdd(c *Context, l, r *ir.Value) (*ir.Value, error) {
	var ptr, n *ir.Value
	switch {
	case l.Type.IsPointer() && r.Type.IsIntegral():
		ptr, n = l, r
	case r.Type.IsPointer() && l.Type.IsIntegral():
		ptr, n = r, l
	default:
		return nil, diag.Errorf(&e.Op.Range, "invalid operand types for addition")
	}
	if !ptr.Type.Elem().IsComplete() {
		return nil, diag.Errorf(&e.Op.Range, "invalid arithmetic on pointer to incomplete type")
	}
	return offset(c, ir.OpAdd, ptr, n), nil
}

func (e *Binary) pointerSub(c *Context, l, r *ir.Value) (*ir.Value, error) {
	switch {
	case l.Type.IsPointer() && r.Type.IsPointer() && l.Type.WeakCompatible(r.Type):
		elem := l.Type.Elem()
		if !elem.IsComplete() || !r.Type.Elem().IsComplete() {
			return nil, diag.Errorf(&e.Op.Range, "invalid arithmetic on pointers to incomplete types")
		}
		diff := c.IL.NewValue(types.Long)
		c.IL.Add(ir.Instr{Op: ir.OpSub, Out: diff, Args: []*ir.Value{l, r}})
		out := c.IL.NewValue(types.Long)
		c.IL.Add(ir.Instr{Op: ir.OpDiv, Out: out, Args: []*ir.Value{diff, literal(c, int64(elem.Size()), types.Long)}})
		return out, nil
	case l.Type.IsPointer() && r.Type.IsIntegral():
		if !l.Type.Elem().IsComplete() {
			return nil, diag.Errorf(&e.Op.Range, "invalid arithmetic on pointer to incomplete type")
		}
		return offset(c, ir.OpSub, l, r), nil
	}
	return nil, diag.Errorf(&e.Op.Range, "invalid operand types for subtraction")
}

// pointerCompare compares operands that are not both arithmetic. Comparing
// distinct pointer types only warns.
func (e *Binary) pointerCompare(c *Context, op ir.Op, l, r *ir.Value) (*ir.Value, error) {
	equality := op == ir.OpEq || op == ir.OpNe
	switch {
	case equality && l.Type.IsPointer() && isNullConst(r):
		r = setType(c, r, l.Type)
	case equality && r.Type.IsPointer() && isNullConst(l):
		l = setType(c, l, r.Type)
	}

	switch {
	case !l.Type.IsPointer() || !r.Type.IsPointer():
		return nil, diag.Errorf(&e.Op.Range, "comparison between incomparable types")
	case equality && l.Type.Elem().IsVoid():
		r = setType(c, r, l.Type)
	case equality && r.Type.Elem().IsVoid():
		l = setType(c, l, r.Type)
	case !l.Type.WeakCompatible(r.Type):
		c.Issues.Add(diag.Warnf(&e.Op.Range, "comparison between distinct pointer types"))
	}
	out := c.IL.NewValue(types.Int)
	c.IL.Add(ir.Instr{Op: op, Out: out, Args: []*ir.Value{l, r}})
	return out, nil
}

// Assign is simple or compound assignment.
type Assign struct {
	rvalue
	Op          lexer.Token
	Left, Right Expr
}

func (e *Assign) Value(c *Context) (*ir.Value, error)    { return e.cached(c, e.gen) }
func (e *Assign) RawValue(c *Context) (*ir.Value, error) { return e.Value(c) }

func (e *Assign) gen(c *Context) (*ir.Value, error) {
	right, err := e.Right.Value(c)
	if err != nil {
		return nil, err
	}
	lv, err := e.Left.LValue(c)
	if err != nil {
		return nil, err
	}
	if lv == nil || !Modifiable(lv) {
		r := e.Left.Range()
		return nil, diag.Errorf(&r, "expression on left of '%s' is not assignable", e.Op.Lex)
	}
	if e.Op.Is(lexer.ASSIGN) {
		return lv.SetTo(c, right, e.Op.Range)
	}

	op := binOps[e.Op.Type]
	lt := lv.Type()
	switch {
	case (op == ir.OpAdd || op == ir.OpSub) && lt.IsPointer() && right.Type.IsIntegral():
		if !lt.Elem().IsComplete() {
			return nil, diag.Errorf(&e.Op.Range, "invalid arithmetic on pointer to incomplete type")
		}
		left, err := e.Left.Value(c)
		if err != nil {
			return nil, err
		}
		return lv.SetTo(c, offset(c, op, left, right), e.Op.Range)
	case lt.IsArith() && right.Type.IsArith():
		left, err := e.Left.Value(c)
		if err != nil {
			return nil, err
		}
		l, r := arithConvert(c, left, right)
		return lv.SetTo(c, arith(c, op, l, r), e.Op.Range)
	}
	return nil, diag.Errorf(&e.Op.Range, "invalid types for '%s' operator", e.Op.Lex)
}

// Unary is unary plus, unary minus or bitwise complement.
type Unary struct {
	rvalue
	Op lexer.Token
	X  Expr
}

func (e *Unary) Value(c *Context) (*ir.Value, error)    { return e.cached(c, e.gen) }
func (e *Unary) RawValue(c *Context) (*ir.Value, error) { return e.Value(c) }

func (e *Unary) gen(c *Context) (*ir.Value, error) {
	v, err := e.X.Value(c)
	if err != nil {
		return nil, err
	}
	descr, operand, ok := "unary plus", "arithmetic", v.Type.IsArith()
	switch e.Op.Type {
	case lexer.MINUS:
		descr = "unary minus"
	case lexer.TILDE:
		descr, operand, ok = "bit-complement", "integral", v.Type.IsIntegral()
	}
	if !ok {
		r := e.X.Range()
		return nil, diag.Errorf(&r, "%s requires %s type operand", descr, operand)
	}
	v = promote(c, v)
	if e.Op.Is(lexer.PLUS) {
		return v, nil
	}

	op := ir.OpNeg
	if e.Op.Is(lexer.TILDE) {
		op = ir.OpNot
	}
	t := v.Type.Unqualified()
	if n, ok := v.Literal(); ok {
		metrics.Folds.Inc()
		n = types.Wrap(n, t)
		if op == ir.OpNeg {
			return literal(c, -n, t), nil
		}
		return literal(c, ^n, t), nil
	}
	out := c.IL.NewValue(t)
	c.IL.Add(ir.Instr{Op: op, Out: out, Args: []*ir.Value{v}})
	return out, nil
}

// AddrOf is the unary & operator.
type AddrOf struct {
	rvalue
	X Expr
}

func (e *AddrOf) Value(c *Context) (*ir.Value, error)    { return e.cached(c, e.gen) }
func (e *AddrOf) RawValue(c *Context) (*ir.Value, error) { return e.Value(c) }

func (e *AddrOf) gen(c *Context) (*ir.Value, error) {
	lv, err := e.X.LValue(c)
	if err != nil {
		return nil, err
	}
	if lv == nil {
		r := e.X.Range()
		return nil, diag.Errorf(&r, "operand of unary '&' must be lvalue")
	}
	return lv.Addr(c), nil
}

// Deref is the unary * operator.
type Deref struct {
	lvalue
	X Expr
}

func (e *Deref) LValue(c *Context) (LValue, error)      { return e.located(c, e.locate) }
func (e *Deref) Value(c *Context) (*ir.Value, error)    { return valueOf(c, e) }
func (e *Deref) RawValue(c *Context) (*ir.Value, error) { return rawValueOf(c, e) }

func (e *Deref) locate(c *Context) (LValue, error) {
	addr, err := e.X.Value(c)
	if err != nil {
		return nil, err
	}
	if !addr.Type.IsPointer() {
		r := e.X.Range()
		return nil, diag.Errorf(&r, "operand of unary '*' must have pointer type")
	}
	return IndirectLValue{Ptr: addr}, nil
}

// ArraySubsc is Head[Arg]. Either operand may be the array or pointer.
type ArraySubsc struct {
	lvalue
	Head, Arg Expr
}

func (e *ArraySubsc) LValue(c *Context) (LValue, error)      { return e.located(c, e.locate) }
func (e *ArraySubsc) Value(c *Context) (*ir.Value, error)    { return valueOf(c, e) }
func (e *ArraySubsc) RawValue(c *Context) (*ir.Value, error) { return rawValueOf(c, e) }

func isDirectArray(lv LValue) bool {
	d, ok := lv.(DirectLValue)
	return ok && d.Type().IsArray()
}

func (e *ArraySubsc) invalid() error {
	r := e.Range()
	return diag.Errorf(&r, "invalid operand types for array subscripting")
}

func (e *ArraySubsc) locate(c *Context) (LValue, error) {
	head, err := e.Head.LValue(c)
	if err != nil {
		return nil, err
	}
	arg, err := e.Arg.LValue(c)
	if err != nil {
		return nil, err
	}

	var array, index Expr
	switch {
	case isDirectArray(head):
		array, index = e.Head, e.Arg
	case isDirectArray(arg):
		array, index = e.Arg, e.Head
	}
	if array != nil {
		base, err := array.RawValue(c)
		if err != nil {
			return nil, err
		}
		n, err := index.Value(c)
		if err != nil {
			return nil, err
		}
		if !n.Type.IsIntegral() {
			return nil, e.invalid()
		}
		elem := base.Type.Elem()
		return RelativeLValue{Base: base, Elem: elem, Chunk: elem.Size(), Index: setType(c, n, types.Long)}, nil
	}

	h, err := e.Head.Value(c)
	if err != nil {
		return nil, err
	}
	a, err := e.Arg.Value(c)
	if err != nil {
		return nil, err
	}
	switch {
	case h.Type.IsPointer() && a.Type.IsIntegral():
		return e.pointerSubsc(c, h, a)
	case a.Type.IsPointer() && h.Type.IsIntegral():
		return e.pointerSubsc(c, a, h)
	}
	return nil, e.invalid()
}

func (e *ArraySubsc) pointerSubsc(c *Context, ptr, n *ir.Value) (LValue, error) {
	if !ptr.Type.Elem().IsComplete() {
		r := e.Range()
		return nil, diag.Errorf(&r, "cannot subscript pointer to incomplete type")
	}
	return IndirectLValue{Ptr: offset(c, ir.OpAdd, ptr, n)}, nil
}

// FuncCall calls a function or function pointer.
type FuncCall struct {
	rvalue
	Func Expr
	Args []Expr
}

func (e *FuncCall) Value(c *Context) (*ir.Value, error)    { return e.cached(c, e.gen) }
func (e *FuncCall) RawValue(c *Context) (*ir.Value, error) { return e.Value(c) }

func (e *FuncCall) gen(c *Context) (*ir.Value, error) {
	f, err := e.Func.Value(c)
	if err != nil {
		return nil, err
	}
	if !f.Type.IsPointer() || !f.Type.Elem().IsFunction() {
		r := e.Func.Range()
		return nil, diag.Errorf(&r, "called object is not a function pointer")
	}
	fn := f.Type.Elem()
	if ret := fn.Ret(); ret.IsIncomplete() && !ret.IsVoid() {
		r := e.Func.Range()
		return nil, diag.Errorf(&r, "function returns non-void incomplete type")
	}

	var args []*ir.Value
	if fn.NoInfo() {
		args, err = e.argsWithoutPrototype(c)
	} else {
		args, err = e.argsWithPrototype(c, fn)
	}
	if err != nil {
		return nil, err
	}
	ret := c.IL.NewValue(fn.Ret())
	c.IL.Add(ir.Instr{Op: ir.OpCall, Out: ret, Args: append([]*ir.Value{f}, args...)})
	return ret, nil
}

func (e *FuncCall) argsWithoutPrototype(c *Context) ([]*ir.Value, error) {
	var out []*ir.Value
	for _, a := range e.Args {
		v, err := a.Value(c)
		if err != nil {
			return nil, err
		}
		out = append(out, promote(c, v))
	}
	return out, nil
}

func (e *FuncCall) argsWithPrototype(c *Context, fn types.CType) ([]*ir.Value, error) {
	params := fn.Params()
	if len(params) != len(e.Args) {
		r := e.Range()
		if len(e.Args) > 0 {
			r = e.Args[len(e.Args)-1].Range()
		}
		return nil, diag.Errorf(&r, "incorrect number of arguments for function call (expected %d, have %d)", len(params), len(e.Args))
	}
	var out []*ir.Value
	for i, a := range e.Args {
		v, err := a.Value(c)
		if err != nil {
			return nil, err
		}
		if err := checkCast(v, params[i], a.Range()); err != nil {
			return nil, err
		}
		out = append(out, setType(c, v, params[i].Unqualified()))
	}
	return out, nil
}

// Cast is an explicit conversion, (Type) X.
type Cast struct {
	rvalue
	Type *Root
	X    Expr
}

func (e *Cast) Value(c *Context) (*ir.Value, error)    { return e.cached(c, e.gen) }
func (e *Cast) RawValue(c *Context) (*ir.Value, error) { return e.Value(c) }

func (e *Cast) gen(c *Context) (*ir.Value, error) {
	t, err := TypeName(c, e.Type)
	if err != nil {
		return nil, err
	}
	v, err := e.X.Value(c)
	if err != nil {
		return nil, err
	}
	if err := checkExplicitCast(v, t, e.Range()); err != nil {
		return nil, err
	}
	if t.IsVoid() {
		return c.IL.NewValue(types.VoidT), nil
	}
	return setType(c, v, t.Unqualified()), nil
}

func sizeOf(c *Context, t types.CType, r diag.Range) (*ir.Value, error) {
	switch {
	case t.IsFunction():
		return nil, diag.Errorf(&r, "sizeof argument cannot have function type")
	case t.IsIncomplete():
		return nil, diag.Errorf(&r, "sizeof argument cannot have incomplete type")
	}
	return literal(c, int64(t.Size()), types.ULong), nil
}

// SizeofExpr is sizeof applied to an expression. The operand is checked but
// its instructions are discarded.
type SizeofExpr struct {
	rvalue
	X Expr
}

func (e *SizeofExpr) Value(c *Context) (*ir.Value, error)    { return e.cached(c, e.gen) }
func (e *SizeofExpr) RawValue(c *Context) (*ir.Value, error) { return e.Value(c) }

func (e *SizeofExpr) gen(c *Context) (*ir.Value, error) {
	v, err := e.X.RawValue(c.scratch())
	if err != nil {
		return nil, err
	}
	return sizeOf(c, v.Type, e.X.Range())
}

// SizeofType is sizeof applied to a type name.
type SizeofType struct {
	rvalue
	Type *Root
}

func (e *SizeofType) Value(c *Context) (*ir.Value, error)    { return e.cached(c, e.gen) }
func (e *SizeofType) RawValue(c *Context) (*ir.Value, error) { return e.Value(c) }

func (e *SizeofType) gen(c *Context) (*ir.Value, error) {
	t, err := TypeName(c, e.Type)
	if err != nil {
		return nil, err
	}
	return sizeOf(c, t, e.Type.Range())
}

// Comma evaluates Left for its effects and yields Right.
type Comma struct {
	rvalue
	Left, Right Expr
}

func (e *Comma) Value(c *Context) (*ir.Value, error)    { return e.cached(c, e.gen) }
func (e *Comma) RawValue(c *Context) (*ir.Value, error) { return e.Value(c) }

func (e *Comma) gen(c *Context) (*ir.Value, error) {
	if _, err := e.Left.Value(c); err != nil {
		return nil, err
	}
	return e.Right.Value(c)
}
