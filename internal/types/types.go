package types

import (
	"strconv"
	"strings"
)

// Kind is the variant of a CType.
type Kind int

const (
	Integer Kind = iota
	Pointer
	Void
	Array
	Function
)

// rank tells built-in integer types apart. Types of the same rank differ
// only in signedness.
type rank int

const (
	rankNone rank = iota
	rankBool
	rankChar
	rankShort
	rankInt
	rankLong
)

// CType is an immutable description of a C type. Derived types (const,
// unqualified, unsigned) are copies, so holding a CType never observes
// another holder's changes.
type CType struct {
	kind   Kind
	size   int
	konst  bool
	signed bool
	rank   rank

	// elem is the pointee, the array element or the function result.
	elem *CType
	n    int
	hasN bool

	params []CType
	noInfo bool
}

var (
	Bool   = CType{kind: Integer, size: 1, rank: rankBool}
	Char   = CType{kind: Integer, size: 1, signed: true, rank: rankChar}
	UChar  = Char.Unsigned()
	Short  = CType{kind: Integer, size: 2, signed: true, rank: rankShort}
	UShort = Short.Unsigned()
	Int    = CType{kind: Integer, size: 4, signed: true, rank: rankInt}
	UInt   = Int.Unsigned()
	Long   = CType{kind: Integer, size: 8, signed: true, rank: rankLong}
	ULong  = Long.Unsigned()
	VoidT  = CType{kind: Void, size: 1}
)

// PointerSize is the width of every pointer on the target.
const PointerSize = 8

func PointerTo(elem CType) CType {
	return CType{kind: Pointer, size: PointerSize, elem: &elem}
}

// ArrayOf is an array of n elements. n times the element size must not
// overflow an int.
func ArrayOf(elem CType, n int) CType {
	return CType{kind: Array, size: n * elem.size, elem: &elem, n: n, hasN: true}
}

// IncompleteArrayOf is an array whose length is unknown.
func IncompleteArrayOf(elem CType) CType {
	return CType{kind: Array, size: elem.size, elem: &elem}
}

// FuncOf is a function type. noInfo marks a declaration without a
// prototype, in which case params is ignored.
func FuncOf(ret CType, params []CType, noInfo bool) CType {
	if noInfo {
		params = nil
	}
	return CType{kind: Function, size: 1, elem: &ret, params: append([]CType(nil), params...), noInfo: noInfo}
}

func (t CType) Kind() Kind { return t.kind }
func (t CType) Size() int  { return t.size }

func (t CType) IsConst() bool    { return t.konst }
func (t CType) IsSigned() bool   { return t.kind == Integer && t.signed }
func (t CType) IsBool() bool     { return t.kind == Integer && t.rank == rankBool }
func (t CType) IsPointer() bool  { return t.kind == Pointer }
func (t CType) IsVoid() bool     { return t.kind == Void }
func (t CType) IsArray() bool    { return t.kind == Array }
func (t CType) IsFunction() bool { return t.kind == Function }
func (t CType) IsArith() bool    { return t.kind == Integer }
func (t CType) IsIntegral() bool { return t.kind == Integer }
func (t CType) IsScalar() bool   { return t.IsArith() || t.IsPointer() }
func (t CType) IsObject() bool   { return t.kind != Function }

// IsComplete reports whether the size of an object of type t is known.
func (t CType) IsComplete() bool {
	switch t.kind {
	case Integer, Pointer:
		return true
	case Array:
		return t.hasN
	}
	return false
}

func (t CType) IsIncomplete() bool {
	switch t.kind {
	case Void:
		return true
	case Array:
		return !t.hasN
	}
	return false
}

// Elem is the pointee of a pointer, the element of an array, or the result
// of a function.
func (t CType) Elem() CType {
	if t.elem == nil {
		return CType{}
	}
	return *t.elem
}

// Len is the length of an array type, if known.
func (t CType) Len() (int, bool) { return t.n, t.hasN }

func (t CType) Params() []CType { return t.params }
func (t CType) Ret() CType      { return t.Elem() }
func (t CType) NoInfo() bool    { return t.noInfo }

func (t CType) WithConst() CType {
	t.konst = true
	return t
}

func (t CType) Unqualified() CType {
	t.konst = false
	return t
}

func (t CType) Unsigned() CType {
	if t.kind == Integer {
		t.signed = false
	}
	return t
}

// Compatible reports whether t and o are the same type, top-level const
// included.
func (t CType) Compatible(o CType) bool {
	return t.WeakCompatible(o) && t.konst == o.konst
}

// WeakCompatible is Compatible ignoring the top-level const qualifier.
func (t CType) WeakCompatible(o CType) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case Integer:
		return t.rank == o.rank && t.signed == o.signed
	case Pointer:
		return t.elem.Compatible(*o.elem)
	case Void:
		return true
	case Array:
		if !t.elem.Compatible(*o.elem) {
			return false
		}
		return !t.hasN || !o.hasN || t.n == o.n
	case Function:
		if !t.elem.Compatible(*o.elem) {
			return false
		}
		if t.noInfo || o.noInfo {
			return true
		}
		if len(t.params) != len(o.params) {
			return false
		}
		for i := range t.params {
			if !t.params[i].Compatible(o.params[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Wrap reduces v into the range of integer type t with two's complement
// wraparound. Pointers wrap as 64-bit unsigned values; the result keeps
// the bit pattern in an int64.
func Wrap(v int64, t CType) int64 {
	if t.IsBool() {
		if v != 0 {
			return 1
		}
		return 0
	}
	bits := uint(t.size * 8)
	if bits >= 64 || bits == 0 {
		return v
	}
	mask := int64(1)<<bits - 1
	v &= mask
	if t.IsSigned() && v&(int64(1)<<(bits-1)) != 0 {
		v -= int64(1) << bits
	}
	return v
}

func (t CType) String() string { return t.decl("") }

func (t CType) base() string {
	switch t.kind {
	case Void:
		return "void"
	case Integer:
		var name string
		switch t.rank {
		case rankBool:
			return "_Bool"
		case rankChar:
			name = "char"
		case rankShort:
			name = "short"
		case rankLong:
			name = "long"
		default:
			name = "int"
		}
		if !t.signed {
			name = "unsigned " + name
		}
		return name
	}
	return "?"
}

// decl renders t around the declarator text inner, the way C spells it.
func (t CType) decl(inner string) string {
	switch t.kind {
	case Pointer:
		s := "*"
		if t.konst {
			s += "const"
			if inner != "" {
				s += " "
			}
		}
		s += inner
		if e := t.Elem(); e.IsArray() || e.IsFunction() {
			s = "(" + s + ")"
		}
		return t.Elem().decl(s)
	case Array:
		if t.hasN {
			return t.Elem().decl(inner + "[" + strconv.Itoa(t.n) + "]")
		}
		return t.Elem().decl(inner + "[]")
	case Function:
		var ps []string
		for _, p := range t.params {
			ps = append(ps, p.String())
		}
		args := strings.Join(ps, ", ")
		if !t.noInfo && len(ps) == 0 {
			args = "void"
		}
		return t.Elem().decl(inner + "(" + args + ")")
	}
	s := t.base()
	if t.konst {
		s = "const " + s
	}
	if inner != "" {
		s += " " + inner
	}
	return s
}
