package diagtest

import (
	"testing"

	"github.com/emplang/empc/internal/diag"
)

func sampleDiags() *diag.List {
	l := &diag.List{}
	l.Add(diag.Diagnostic{
		Phase:   diag.PhaseType,
		Code:    diag.TYP001,
		Span:    diag.Span{Start: diag.Pos{File: "test.em", Offset: 10, Line: 2, Column: 3}, End: diag.Pos{File: "test.em", Offset: 13, Line: 2, Column: 6}},
		Message: "type mismatch: expected i32, got string",
	})
	return l
}

func TestCompareMatchesGolden(t *testing.T) {
	Compare(t, "sample", sampleDiags())
}
