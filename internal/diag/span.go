// Package diag provides spans, diagnostics and the stable error-code
// taxonomy shared by every compiler pass.
package diag

import "fmt"

// Pos is a single point in a source file: a byte offset plus the
// 1-based line/column it corresponds to.
type Pos struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open byte range [Start,End) with its endpoints resolved
// to line/column. Every AST node and every diagnostic carries one.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string {
	return fmt.Sprintf("[%d..%d)", s.Start.Offset, s.End.Offset)
}

// Join returns the smallest span covering both a and b.
func Join(a, b Span) Span {
	start, end := a, b
	if b.Start.Offset < a.Start.Offset {
		start = b
	}
	if a.End.Offset > b.End.Offset {
		end = a
	}
	return Span{Start: start.Start, End: end.End}
}
