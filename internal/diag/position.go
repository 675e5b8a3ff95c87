package diag

import "fmt"

// Position locates a single character of the original source. Line and Col
// are 1-based and always refer to the physical line the character came
// from, even after line splicing. Text is that physical line, kept for
// printing diagnostics.
type Position struct {
	File string
	Line int
	Col  int
	Text string
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Next is the position one column to the right on the same line.
func (p Position) Next() Position {
	p.Col++
	return p
}

// Range is an inclusive pair of positions.
type Range struct {
	Start Position
	End   Position
}

// Span is the range covering the single position p.
func Span(p Position) Range { return Range{Start: p, End: p} }

// To widens r so it ends where o ends.
func (r Range) To(o Range) Range { return Range{Start: r.Start, End: o.End} }

func (r Range) String() string { return r.Start.String() }
