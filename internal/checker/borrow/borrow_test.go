package borrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
	"github.com/emplang/empc/internal/lexer"
	"github.com/emplang/empc/internal/parser"
)

func parseProg(t *testing.T, src string) *ast.Program {
	t.Helper()
	lx := lexer.New("test.em", []byte(src))
	p := parser.New("test.em", lx)
	prog := p.ParseProgram()
	require.Empty(t, lx.Errors)
	require.Empty(t, p.Errors)
	return prog
}

func findCode(diags *diag.List, code string) *diag.Diagnostic {
	for _, d := range diags.Items() {
		d := d
		if d.Code == code {
			return &d
		}
	}
	return nil
}

func TestConflictingBorrowRejected(t *testing.T) {
	src := `
fn main() { let x = 0; let r = &x; let m = &mut x; }
`
	prog := parseProg(t, src)
	diags := Check(prog)
	d := findCode(diags, "BOR001")
	require.NotNil(t, d, "expected BOR001")
	assert.Equal(t, "cannot take mutable borrow of 'x' while shared borrows are active", d.Message)
	assert.Contains(t, d.String(), "borrow: cannot take mutable borrow of 'x' while shared borrows are active")
}

func TestSharedWhileMutableRejected(t *testing.T) {
	src := `
fn main() { let x = 0; let m = &mut x; let r = &x; }
`
	prog := parseProg(t, src)
	diags := Check(prog)
	assert.NotNil(t, findCode(diags, "BOR002"))
}

func TestEscapeFromUnsafeDetected(t *testing.T) {
	src := `
fn f() { let r: *u8; @emp off { r = &some; } }
`
	prog := parseProg(t, src)
	diags := Check(prog)
	d := findCode(diags, "BOR004")
	require.NotNil(t, d, "expected BOR004")
	assert.Equal(t, "borrowed reference escapes unsafe boundary via 'r'", d.Message)
	assert.Equal(t, diag.PhaseEmpOff, d.Phase)
	assert.Contains(t, d.String(), "emp off: borrowed reference escapes unsafe boundary via 'r'")
}

func TestMoveWhileBorrowedRejected(t *testing.T) {
	src := `
fn take(x: i32) {}
fn main() { let x = 0; let r = &x; take(x); }
`
	prog := parseProg(t, src)
	diags := Check(prog)
	assert.NotNil(t, findCode(diags, "BOR003"))
}

func TestCallSiteMutableBorrowsOfDistinctBindingsValid(t *testing.T) {
	src := `
fn f(a: *i32, b: *i32) {}
fn main() { let x = 0; let y = 0; f(&mut x, &mut y); }
`
	prog := parseProg(t, src)
	diags := Check(prog)
	assert.Zero(t, diags.Len())
}

func TestSequentialCallsWithMutableBorrowValid(t *testing.T) {
	src := `
fn f(a: *i32) {}
fn main() { let x = 0; f(&mut x); f(&mut x); }
`
	prog := parseProg(t, src)
	diags := Check(prog)
	assert.Zero(t, diags.Len())
}

func TestSequentialSharedBorrowsValid(t *testing.T) {
	src := `
fn main() { let x = 0; let r = &x; let s = &x; }
`
	prog := parseProg(t, src)
	diags := Check(prog)
	assert.Zero(t, diags.Len())
}

func TestMMOffDisablesWholeModule(t *testing.T) {
	src := `
@emp mm off;
fn main() { let x = 0; let r = &x; let m = &mut x; }
`
	prog := parseProg(t, src)
	diags := Check(prog)
	assert.Zero(t, diags.Len())
}
