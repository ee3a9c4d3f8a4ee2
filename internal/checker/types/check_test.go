package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/lexer"
	"github.com/emplang/empc/internal/parser"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	lx := lexer.New("test.em", []byte(src))
	p := parser.New("test.em", lx)
	prog := p.ParseProgram()
	require.Empty(t, lx.Errors)
	require.Empty(t, p.Errors)
	return prog
}

func findCall(t *testing.T, prog *ast.Program, fnName string) *ast.Call {
	t.Helper()
	for _, it := range prog.Items {
		fd, ok := it.(*ast.FuncDecl)
		if !ok || fd.Name != fnName || fd.Body == nil {
			continue
		}
		for _, s := range fd.Body.Stmts {
			if vd, ok := s.(*ast.VarDecl); ok {
				if call, ok := vd.Init.(*ast.Call); ok {
					return call
				}
			}
			if ret, ok := s.(*ast.Return); ok {
				if call, ok := ret.Value.(*ast.Call); ok {
					return call
				}
			}
		}
	}
	t.Fatalf("no call found in %s", fnName)
	return nil
}

// TestOverloadSelectionPicksIntegerCandidate implements spec.md §8
// Scenario C.
func TestOverloadSelectionPicksIntegerCandidate(t *testing.T) {
	src := `
fn add(a: i32, b: i32) -> i32 { return a+b; }
fn add(a: f64, b: f64) -> f64 { return a+b; }
fn main() -> i32 { let r = add(1, 2); return r; }
`
	prog := parseProgram(t, src)
	diags := Check(prog)
	assert.Zero(t, diags.Len())

	call := findCall(t, prog, "main")
	assert.Equal(t, "add__Ni32_Ni32", call.ResolvedSymbol)
}

// TestMatchNonExhaustiveEnum implements spec.md §8 Scenario D.
func TestMatchNonExhaustiveEnum(t *testing.T) {
	src := `
enum Op { Add, Sub }
fn f(o: Op) -> i32 {
  match o {
    Op::Add => { return 1; }
  }
}
`
	prog := parseProgram(t, src)
	diags := Check(prog)
	require.NotZero(t, diags.Len())
	found := false
	for _, d := range diags.Items() {
		if d.Code == "TYP009" {
			found = true
		}
	}
	assert.True(t, found, "expected a non-exhaustive match diagnostic")
}

func TestMatchExhaustiveWithDefaultArm(t *testing.T) {
	src := `
enum Op { Add, Sub }
fn f(o: Op) -> i32 {
  match o {
    Op::Add => { return 1; }
    _ => { return 0; }
  }
}
`
	prog := parseProgram(t, src)
	diags := Check(prog)
	for _, d := range diags.Items() {
		assert.NotEqual(t, "TYP009", d.Code)
	}
}

func TestNoMatchingOverloadIsReported(t *testing.T) {
	src := `
fn add(a: i32, b: i32) -> i32 { return a+b; }
fn main() { let r = add(true, false); }
`
	prog := parseProgram(t, src)
	diags := Check(prog)
	require.NotZero(t, diags.Len())
	assert.Equal(t, "TYP003", diags.Items()[0].Code)
}

func TestManualMMOnlyRejectedOutsideMMOff(t *testing.T) {
	src := `
@mm fn raw_alloc(n: i32) -> *u8 { return null; }
fn main() { let p = raw_alloc(8); }
`
	prog := parseProgram(t, src)
	diags := Check(prog)
	require.NotZero(t, diags.Len())
	assert.Equal(t, "TYP005", diags.Items()[0].Code)
}

func TestManualMMOnlyAllowedInsideMMOff(t *testing.T) {
	src := `
@mm fn raw_alloc(n: i32) -> *u8 { return null; }
fn main() {
  @emp mm off {
    let p = raw_alloc(8);
  }
}
`
	prog := parseProgram(t, src)
	diags := Check(prog)
	assert.Zero(t, diags.Len())
}

func TestAutoReturnInferredFromReturnExpr(t *testing.T) {
	src := `
fn double(x: i32) -> auto { return x * 2; }
`
	prog := parseProgram(t, src)
	Check(prog)
	for _, it := range prog.Items {
		if fd, ok := it.(*ast.FuncDecl); ok && fd.Name == "double" {
			assert.Equal(t, "i32", ast.TypeString(fd.ReturnType))
		}
	}
}
