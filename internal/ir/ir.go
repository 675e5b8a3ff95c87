// Package ir is the instruction sink the type checker emits into. It records
// typed values, literals and instructions in order; nothing downstream reads
// it yet besides the listing printed by the driver.
package ir

import (
	"fmt"
	"io"
	"strings"

	"modernc.org/strutil"

	"github.com/tinyrange/cfront/internal/metrics"
	"github.com/tinyrange/cfront/internal/types"
)

// Value is a typed operand. A value is a named variable, a literal, a string
// literal, or a temporary produced by an instruction.
type Value struct {
	ID   int
	Type types.CType
	Name string

	lit   int64
	isLit bool
	str   []int
}

// NewVariable is the storage for a declared object or function.
func NewVariable(name string, t types.CType) *Value {
	return &Value{ID: -1, Type: t, Name: name}
}

// Literal returns the compile-time value of v, if it has one.
func (v *Value) Literal() (int64, bool) { return v.lit, v.isLit }

// Str returns the bytes of a string literal value.
func (v *Value) Str() []int { return v.str }

func (v *Value) String() string {
	switch {
	case v.Name != "":
		return v.Name
	case v.isLit:
		if !v.Type.IsSigned() && v.lit < 0 {
			return fmt.Sprint(uint64(v.lit))
		}
		return fmt.Sprint(v.lit)
	case v.str != nil:
		return fmt.Sprintf("str%d", v.ID)
	}
	return fmt.Sprintf("%%%d", v.ID)
}

type Op int

const (
	OpSet Op = iota // Out = Args[0] converted to Out's type
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNeg
	OpNot
	// comparisons produce 0/1
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAddrOf  // Out = &Args[0]
	OpLoad    // Out = *Args[0]
	OpStore   // *Args[0] = Args[1]
	OpLoadRel // Out = *(Args[0] + Chunk*Args[1])
	OpStoreRel
	OpAddrRel
	OpCall // Out = Args[0](Args[1:]...)
)

var opNames = [...]string{
	OpSet:      "set",
	OpAdd:      "add",
	OpSub:      "sub",
	OpMul:      "mul",
	OpDiv:      "div",
	OpMod:      "mod",
	OpNeg:      "neg",
	OpNot:      "not",
	OpEq:       "eq",
	OpNe:       "ne",
	OpLt:       "lt",
	OpLe:       "le",
	OpGt:       "gt",
	OpGe:       "ge",
	OpAddrOf:   "addr",
	OpLoad:     "load",
	OpStore:    "store",
	OpLoadRel:  "loadrel",
	OpStoreRel: "storerel",
	OpAddrRel:  "addrrel",
	OpCall:     "call",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return fmt.Sprintf("op(%d)", int(op))
	}
	return opNames[op]
}

type Instr struct {
	Op   Op
	Out  *Value // nil for stores
	Args []*Value
	// Chunk is the scale applied to the index of the *Rel operations.
	Chunk int
}

func (ins Instr) String() string {
	var args []string
	for _, a := range ins.Args {
		args = append(args, a.String())
	}
	s := ins.Op.String()
	if ins.Chunk != 0 {
		s += fmt.Sprintf("[%d]", ins.Chunk)
	}
	if len(args) > 0 {
		s += " " + strings.Join(args, ", ")
	}
	if ins.Out != nil {
		return fmt.Sprintf("%s %s = %s", ins.Out.Type, ins.Out, s)
	}
	return s
}

// Code is the instruction stream of one compilation.
type Code struct {
	Instrs  []Instr
	Strings []*Value

	next int
}

func (c *Code) NewValue(t types.CType) *Value {
	c.next++
	return &Value{ID: c.next, Type: t}
}

// RegisterLiteral makes v the compile-time constant n.
func (c *Code) RegisterLiteral(v *Value, n int64) {
	v.lit, v.isLit = n, true
}

// RegisterString makes v a string literal holding chars.
func (c *Code) RegisterString(v *Value, chars []int) {
	v.str = append([]int{}, chars...)
	c.Strings = append(c.Strings, v)
}

func (c *Code) Add(ins Instr) {
	c.Instrs = append(c.Instrs, ins)
	metrics.Instructions.Inc()
}

// Dump writes a listing of the string table and the instructions.
func (c *Code) Dump(w io.Writer) error {
	f := strutil.IndentFormatter(w, "\t")
	if len(c.Strings) > 0 {
		if _, err := f.Format("strings {%i\n"); err != nil {
			return err
		}
		for _, s := range c.Strings {
			if _, err := f.Format("%s = %v\n", s, s.str); err != nil {
				return err
			}
		}
		if _, err := f.Format("%u}\n"); err != nil {
			return err
		}
	}
	if _, err := f.Format("code {%i\n"); err != nil {
		return err
	}
	for _, ins := range c.Instrs {
		if _, err := f.Format("%s\n", ins); err != nil {
			return err
		}
	}
	_, err := f.Format("%u}\n")
	return err
}
