package ast

import (
	"github.com/tinyrange/cfront/internal/diag"
	"github.com/tinyrange/cfront/internal/ir"
	"github.com/tinyrange/cfront/internal/metrics"
	"github.com/tinyrange/cfront/internal/types"
)

// literal registers n, wrapped into t, as a new value.
func literal(c *Context, n int64, t types.CType) *ir.Value {
	out := c.IL.NewValue(t)
	c.IL.RegisterLiteral(out, types.Wrap(n, t))
	return out
}

// setType converts v to t. Literals convert at compile time.
func setType(c *Context, v *ir.Value, t types.CType) *ir.Value {
	if v.Type.Compatible(t) {
		return v
	}
	if n, ok := v.Literal(); ok && t.IsScalar() {
		return literal(c, n, t)
	}
	out := c.IL.NewValue(t)
	c.IL.Add(ir.Instr{Op: ir.OpSet, Out: out, Args: []*ir.Value{v}})
	return out
}

// promote applies the integer promotions.
func promote(c *Context, v *ir.Value) *ir.Value {
	if v.Type.IsArith() && (v.Type.Size() < types.Int.Size() || v.Type.IsBool()) {
		return setType(c, v, types.Int)
	}
	return v
}

// arithConvert applies the usual arithmetic conversions to a pair of
// arithmetic operands.
func arithConvert(c *Context, l, r *ir.Value) (*ir.Value, *ir.Value) {
	l, r = promote(c, l), promote(c, r)
	lt, rt := l.Type.Unqualified(), r.Type.Unqualified()
	var t types.CType
	switch {
	case lt.Size() > rt.Size():
		t = lt
	case rt.Size() > lt.Size():
		t = rt
	case !lt.IsSigned():
		t = lt
	default:
		t = rt
	}
	return setType(c, l, t), setType(c, r, t)
}

func isNullConst(v *ir.Value) bool {
	n, ok := v.Literal()
	return ok && n == 0 && v.Type.IsIntegral()
}

// checkCast reports whether v may be implicitly converted to t, as in
// assignment or argument passing.
func checkCast(v *ir.Value, t types.CType, r diag.Range) error {
	from := v.Type
	switch {
	case t.IsArith() && from.IsArith():
		return nil
	case t.IsBool() && from.IsPointer():
		return nil
	case t.IsPointer() && isNullConst(v):
		return nil
	case t.IsPointer() && from.IsPointer():
		te, fe := t.Elem(), from.Elem()
		if fe.IsConst() && !te.IsConst() {
			return diag.Errorf(&r, "conversion discards const qualifier")
		}
		if te.IsVoid() || fe.IsVoid() {
			return nil
		}
		if te.Unqualified().Compatible(fe.Unqualified()) {
			return nil
		}
		return diag.Errorf(&r, "conversion from incompatible pointer type")
	}
	return diag.Errorf(&r, "invalid conversion between types")
}

// checkExplicitCast validates a cast expression.
func checkExplicitCast(v *ir.Value, t types.CType, r diag.Range) error {
	switch {
	case t.IsVoid():
		return nil
	case !t.IsScalar():
		return diag.Errorf(&r, "can only cast to scalar or void type")
	case !v.Type.IsScalar():
		return diag.Errorf(&r, "can only cast from scalar type")
	}
	return nil
}

// scaledSize converts the integer n to long and multiplies it by the size of
// elem, for pointer arithmetic.
func scaledSize(c *Context, elem types.CType, n *ir.Value) *ir.Value {
	n = setType(c, n, types.Long)
	size := int64(elem.Size())
	if k, ok := n.Literal(); ok {
		metrics.Folds.Inc()
		return literal(c, k*size, types.Long)
	}
	if size == 1 {
		return n
	}
	out := c.IL.NewValue(types.Long)
	c.IL.Add(ir.Instr{Op: ir.OpMul, Out: out, Args: []*ir.Value{n, literal(c, size, types.Long)}})
	return out
}
