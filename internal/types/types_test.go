package types

import (
	"math"
	"testing"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		name string
		a, b CType
		want bool
	}{
		{"int int", Int, Int, true},
		{"int const int", Int, Int.WithConst(), false},
		{"int unsigned", Int, UInt, false},
		{"bool uchar", Bool, UChar, false},
		{"char uchar", Char, UChar, false},
		{"int long", Int, Long, false},
		{"int* int*", PointerTo(Int), PointerTo(Int), true},
		{"int* const-int*", PointerTo(Int), PointerTo(Int.WithConst()), false},
		{"int*const int*", PointerTo(Int).WithConst(), PointerTo(Int), false},
		{"int[5] int[]", ArrayOf(Int, 5), IncompleteArrayOf(Int), true},
		{"int[5] int[5]", ArrayOf(Int, 5), ArrayOf(Int, 5), true},
		{"int[5] int[6]", ArrayOf(Int, 5), ArrayOf(Int, 6), false},
		{"void void", VoidT, VoidT, true},
		{"void int", VoidT, Int, false},
		{"f(int) f(int)", FuncOf(Int, []CType{Int}, false), FuncOf(Int, []CType{Int}, false), true},
		{"f(int) f(long)", FuncOf(Int, []CType{Int}, false), FuncOf(Int, []CType{Long}, false), false},
		{"f(int) f()", FuncOf(Int, []CType{Int}, false), FuncOf(Int, nil, true), true},
		{"f(int) f(int,int)", FuncOf(Int, []CType{Int}, false), FuncOf(Int, []CType{Int, Int}, false), false},
		{"int f() void f()", FuncOf(Int, nil, true), FuncOf(VoidT, nil, true), false},
	}
	for _, tt := range tests {
		if got := tt.a.Compatible(tt.b); got != tt.want {
			t.Errorf("%s: Compatible = %v, want %v", tt.name, got, tt.want)
		}
		if got := tt.b.Compatible(tt.a); got != tt.want {
			t.Errorf("%s: Compatible is not symmetric", tt.name)
		}
	}
}

func TestWeakCompatibleIgnoresTopConst(t *testing.T) {
	if !Int.WeakCompatible(Int.WithConst()) {
		t.Error("int vs const int")
	}
	if PointerTo(Int).WeakCompatible(PointerTo(Int.WithConst())) {
		t.Error("const below the top level must still matter")
	}
}

func TestDerivedTypesAreCopies(t *testing.T) {
	c := Int.WithConst()
	if Int.IsConst() || !c.IsConst() {
		t.Fatal("WithConst mutated the original")
	}
	if c.Unqualified().IsConst() || !c.IsConst() {
		t.Fatal("Unqualified mutated the original")
	}
	if !Int.IsSigned() || Int.Unsigned().IsSigned() {
		t.Fatal("Unsigned mutated the original")
	}
	if !UInt.Compatible(Int.Unsigned()) {
		t.Error("unsigned int identity differs from derived unsigned int")
	}
}

func TestCompleteness(t *testing.T) {
	if !Int.IsComplete() || !PointerTo(VoidT).IsComplete() || !ArrayOf(Int, 2).IsComplete() {
		t.Error("complete types reported incomplete")
	}
	if VoidT.IsComplete() || !VoidT.IsIncomplete() {
		t.Error("void is incomplete")
	}
	if a := IncompleteArrayOf(Int); a.IsComplete() || !a.IsIncomplete() {
		t.Error("int[] is incomplete")
	}
	if FuncOf(Int, nil, true).IsObject() {
		t.Error("functions are not object types")
	}
}

func TestSizes(t *testing.T) {
	for _, tt := range []struct {
		t    CType
		size int
	}{
		{Bool, 1}, {Char, 1}, {Short, 2}, {Int, 4}, {Long, 8}, {ULong, 8},
		{PointerTo(Char), 8}, {ArrayOf(Int, 10), 40}, {ArrayOf(PointerTo(Int), 3), 24},
	} {
		if got := tt.t.Size(); got != tt.size {
			t.Errorf("sizeof(%s) = %d, want %d", tt.t, got, tt.size)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v    int64
		t    CType
		want int64
	}{
		{math.MaxInt32 + 1, Int, math.MinInt32},
		{-1, UInt, math.MaxUint32},
		{256, UChar, 0},
		{255, Char, -1},
		{5, Bool, 1},
		{0, Bool, 0},
		{math.MaxInt64, Long, math.MaxInt64},
		{70000, Short, 4464},
	}
	for _, tt := range tests {
		if got := Wrap(tt.v, tt.t); got != tt.want {
			t.Errorf("Wrap(%d, %s) = %d, want %d", tt.v, tt.t, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		t    CType
		want string
	}{
		{Int, "int"},
		{ULong, "unsigned long"},
		{Char.WithConst(), "const char"},
		{PointerTo(Int), "int *"},
		{PointerTo(Int).WithConst(), "int *const"},
		{ArrayOf(PointerTo(Int), 3), "int *[3]"},
		{PointerTo(FuncOf(Int, []CType{Int}, false)), "int (*)(int)"},
		{FuncOf(VoidT, nil, false), "void (void)"},
		{FuncOf(VoidT, nil, true), "void ()"},
		{PointerTo(ArrayOf(Char, 4)), "char (*)[4]"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}
