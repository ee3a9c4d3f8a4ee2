package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAppendOrderPreserved(t *testing.T) {
	var l List
	l.Addf(PhaseType, TYP001, Span{}, "first")
	l.Addf(PhaseOwn, OWN001, Span{}, "second")
	l.Addf(PhaseBorrow, BOR001, Span{}, "third")

	require.Equal(t, 3, l.Len())
	items := l.Items()
	assert.Equal(t, "first", items[0].Message)
	assert.Equal(t, "second", items[1].Message)
	assert.Equal(t, "third", items[2].Message)
	assert.True(t, l.HasErrors())
}

func TestEmptyListHasNoErrors(t *testing.T) {
	var l List
	assert.False(t, l.HasErrors())
	assert.Equal(t, 0, l.Len())
}

func TestSIDDeterministic(t *testing.T) {
	a := NewSID("mod/a", 0, 10, "FuncDecl", []int{0, 1})
	b := NewSID("mod/a", 0, 10, "FuncDecl", []int{0, 1})
	c := NewSID("mod/a", 0, 10, "FuncDecl", []int{0, 2})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestAddComputesSIDWhenUnset(t *testing.T) {
	var l List
	l.Addf(PhaseType, TYP001, Span{Start: Pos{File: "a.em", Offset: 1}, End: Pos{File: "a.em", Offset: 4}}, "mismatch")

	got := l.Items()[0].SID
	assert.NotEmpty(t, got)
	want := NewSID("a.em", 1, 4, "type/TYP001", nil)
	assert.Equal(t, string(want), got)
}

func TestAddKeepsExplicitSID(t *testing.T) {
	var l List
	l.Add(Diagnostic{Phase: PhaseType, Code: TYP001, SID: "precomputed"})
	assert.Equal(t, "precomputed", l.Items()[0].SID)
}

func TestEncodeRoundTripsCoreFields(t *testing.T) {
	d := Diagnostic{
		Phase:   PhaseBorrow,
		Code:    BOR001,
		Span:    Span{Start: Pos{File: "f.em", Line: 1, Column: 5, Offset: 4}, End: Pos{File: "f.em", Line: 1, Column: 9, Offset: 8}},
		Message: "cannot take mutable borrow of 'x' while shared borrows are active",
	}
	e := Encode(d)
	assert.Equal(t, SchemaV1, e.Schema)
	assert.Equal(t, string(PhaseBorrow), e.Phase)
	assert.Equal(t, BOR001, e.Code)
	assert.Equal(t, "f.em", e.Span.File)
	assert.Equal(t, 1, e.Span.StartLine)
	assert.Equal(t, 5, e.Span.StartCol)
}
