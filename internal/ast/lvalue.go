package ast

import (
	"github.com/tinyrange/cfront/internal/diag"
	"github.com/tinyrange/cfront/internal/ir"
	"github.com/tinyrange/cfront/internal/types"
)

// LValue describes where a value lives.
type LValue interface {
	Type() types.CType
	// Addr emits the computation of the location's address.
	Addr(c *Context) *ir.Value
	// Val emits a read of the location.
	Val(c *Context) *ir.Value
	// SetTo converts rhs to the location's type and stores it, returning
	// the stored value.
	SetTo(c *Context, rhs *ir.Value, r diag.Range) (*ir.Value, error)
}

// Modifiable reports whether lv may appear on the left of an assignment.
func Modifiable(lv LValue) bool {
	t := lv.Type()
	return t.IsComplete() && !t.IsConst() && !t.IsArray() && !t.IsFunction()
}

// DirectLValue is named storage.
type DirectLValue struct {
	V *ir.Value
}

func (lv DirectLValue) Type() types.CType { return lv.V.Type }

func (lv DirectLValue) Addr(c *Context) *ir.Value {
	out := c.IL.NewValue(types.PointerTo(lv.V.Type))
	c.IL.Add(ir.Instr{Op: ir.OpAddrOf, Out: out, Args: []*ir.Value{lv.V}})
	return out
}

func (lv DirectLValue) Val(c *Context) *ir.Value { return lv.V }

func (lv DirectLValue) SetTo(c *Context, rhs *ir.Value, r diag.Range) (*ir.Value, error) {
	if err := checkCast(rhs, lv.V.Type, r); err != nil {
		return nil, err
	}
	v := setType(c, rhs, lv.V.Type.Unqualified())
	c.IL.Add(ir.Instr{Op: ir.OpSet, Out: lv.V, Args: []*ir.Value{v}})
	return lv.V, nil
}

// IndirectLValue is the object an address points at.
type IndirectLValue struct {
	Ptr *ir.Value
}

func (lv IndirectLValue) Type() types.CType { return lv.Ptr.Type.Elem() }

func (lv IndirectLValue) Addr(c *Context) *ir.Value { return lv.Ptr }

func (lv IndirectLValue) Val(c *Context) *ir.Value {
	out := c.IL.NewValue(lv.Type())
	c.IL.Add(ir.Instr{Op: ir.OpLoad, Out: out, Args: []*ir.Value{lv.Ptr}})
	return out
}

func (lv IndirectLValue) SetTo(c *Context, rhs *ir.Value, r diag.Range) (*ir.Value, error) {
	if err := checkCast(rhs, lv.Type(), r); err != nil {
		return nil, err
	}
	v := setType(c, rhs, lv.Type().Unqualified())
	c.IL.Add(ir.Instr{Op: ir.OpStore, Args: []*ir.Value{lv.Ptr, v}})
	return v, nil
}

// RelativeLValue is element Index of the array Base, Chunk bytes apart.
// It lets array indexing skip materializing the element address.
type RelativeLValue struct {
	Base  *ir.Value
	Elem  types.CType
	Chunk int
	Index *ir.Value
}

func (lv RelativeLValue) Type() types.CType { return lv.Elem }

func (lv RelativeLValue) Addr(c *Context) *ir.Value {
	out := c.IL.NewValue(types.PointerTo(lv.Elem))
	c.IL.Add(ir.Instr{Op: ir.OpAddrRel, Out: out, Args: []*ir.Value{lv.Base, lv.Index}, Chunk: lv.Chunk})
	return out
}

func (lv RelativeLValue) Val(c *Context) *ir.Value {
	out := c.IL.NewValue(lv.Elem)
	c.IL.Add(ir.Instr{Op: ir.OpLoadRel, Out: out, Args: []*ir.Value{lv.Base, lv.Index}, Chunk: lv.Chunk})
	return out
}

func (lv RelativeLValue) SetTo(c *Context, rhs *ir.Value, r diag.Range) (*ir.Value, error) {
	if err := checkCast(rhs, lv.Elem, r); err != nil {
		return nil, err
	}
	v := setType(c, rhs, lv.Elem.Unqualified())
	c.IL.Add(ir.Instr{Op: ir.OpStoreRel, Args: []*ir.Value{lv.Base, lv.Index, v}, Chunk: lv.Chunk})
	return v, nil
}
