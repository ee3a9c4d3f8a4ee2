package drop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emplang/empc/internal/ast"
	checktypes "github.com/emplang/empc/internal/checker/types"
	"github.com/emplang/empc/internal/lexer"
	"github.com/emplang/empc/internal/parser"
)

func parseAndType(t *testing.T, src string) *ast.Program {
	t.Helper()
	lx := lexer.New("test.em", []byte(src))
	p := parser.New("test.em", lx)
	prog := p.ParseProgram()
	require.Empty(t, lx.Errors)
	require.Empty(t, p.Errors)
	checktypes.Check(prog)
	return prog
}

func findFunc(prog *ast.Program, name string) *ast.FuncDecl {
	for _, it := range prog.Items {
		if fd, ok := it.(*ast.FuncDecl); ok && fd.Name == name {
			return fd
		}
	}
	return nil
}

// dropNames collects every *ast.Drop name reachable from stmts, walking
// into synthesized blocks and control-flow bodies.
func dropNames(stmts []ast.Stmt) []string {
	var out []string
	for _, s := range stmts {
		switch v := s.(type) {
		case *ast.Drop:
			out = append(out, v.Name)
		case *ast.Block:
			out = append(out, dropNames(v.Stmts)...)
		case *ast.If:
			out = append(out, dropNames(v.Then.Stmts)...)
			if v.Else != nil {
				out = append(out, dropNames([]ast.Stmt{v.Else})...)
			}
		case *ast.While:
			out = append(out, dropNames(v.Body.Stmts)...)
		case *ast.For:
			out = append(out, dropNames(v.Body.Stmts)...)
		}
	}
	return out
}

func TestScopeExitDropsInReverseOrder(t *testing.T) {
	src := `
class Box { v: i32; }
fn f() {
  let a = new Box(1);
  let b = new Box(2);
}
`
	prog := parseAndType(t, src)
	diags := Insert(prog)
	assert.Zero(t, diags.Len())

	fn := findFunc(prog, "f")
	require.NotNil(t, fn)
	require.Len(t, fn.Body.Stmts, 4)
	d1, ok := fn.Body.Stmts[2].(*ast.Drop)
	require.True(t, ok)
	d2, ok := fn.Body.Stmts[3].(*ast.Drop)
	require.True(t, ok)
	assert.Equal(t, "b", d1.Name)
	assert.Equal(t, "a", d2.Name)
}

func TestCopyLikeBindingNeverDropped(t *testing.T) {
	src := `
fn f() {
  let n = 1;
}
`
	prog := parseAndType(t, src)
	diags := Insert(prog)
	assert.Zero(t, diags.Len())

	fn := findFunc(prog, "f")
	require.NotNil(t, fn)
	assert.Empty(t, dropNames(fn.Body.Stmts))
}

func TestReturnWrapsLiveOwnedDrops(t *testing.T) {
	src := `
class Box { v: i32; }
fn f() -> i32 {
  let b = new Box(1);
  return 1;
}
`
	prog := parseAndType(t, src)
	diags := Insert(prog)
	assert.Zero(t, diags.Len())

	fn := findFunc(prog, "f")
	require.NotNil(t, fn)
	require.Len(t, fn.Body.Stmts, 2)
	wrapped, ok := fn.Body.Stmts[1].(*ast.Block)
	require.True(t, ok, "return should be wrapped in a block")
	require.Len(t, wrapped.Stmts, 2)
	d, ok := wrapped.Stmts[0].(*ast.Drop)
	require.True(t, ok)
	assert.Equal(t, "b", d.Name)
	_, ok = wrapped.Stmts[1].(*ast.Return)
	assert.True(t, ok)
}

func TestBreakOutsideLoopDiagnosed(t *testing.T) {
	src := `
fn f() {
  break;
}
`
	prog := parseAndType(t, src)
	diags := Insert(prog)
	var found bool
	for _, d := range diags.Items() {
		if d.Code == "DRP001" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBreakInsideLoopDropsLoopLocalBinding(t *testing.T) {
	src := `
class Box { v: i32; }
fn f() {
  while true {
    let b = new Box(1);
    break;
  }
}
`
	prog := parseAndType(t, src)
	diags := Insert(prog)
	assert.Zero(t, diags.Len())

	fn := findFunc(prog, "f")
	require.NotNil(t, fn)
	w, ok := fn.Body.Stmts[0].(*ast.While)
	require.True(t, ok)
	wrapped, ok := w.Body.Stmts[1].(*ast.Block)
	require.True(t, ok, "break should be wrapped in a block carrying drops")
	d, ok := wrapped.Stmts[0].(*ast.Drop)
	require.True(t, ok)
	assert.Equal(t, "b", d.Name)
	_, ok = wrapped.Stmts[1].(*ast.Break)
	assert.True(t, ok)
}

func TestAssignToLiveOwnedRewritesToDropThenAssign(t *testing.T) {
	src := `
class Box { v: i32; }
fn f() {
  let b = new Box(1);
  b = new Box(2);
}
`
	prog := parseAndType(t, src)
	diags := Insert(prog)
	assert.Zero(t, diags.Len())

	fn := findFunc(prog, "f")
	require.NotNil(t, fn)
	require.Len(t, fn.Body.Stmts, 3)

	wrapped, ok := fn.Body.Stmts[1].(*ast.Block)
	require.True(t, ok, "owned assignment should be rewritten into a block")
	require.Len(t, wrapped.Stmts, 3)

	tmp, ok := wrapped.Stmts[0].(*ast.VarDecl)
	require.True(t, ok)

	dropOld, ok := wrapped.Stmts[1].(*ast.Drop)
	require.True(t, ok)
	assert.Equal(t, "b", dropOld.Name)

	assign, ok := wrapped.Stmts[2].(*ast.ExprStmt)
	require.True(t, ok)
	bin, ok := assign.Value.(*ast.Binary)
	require.True(t, ok)
	lhs, ok := bin.Left.(*ast.Ident)
	require.True(t, ok)
	assert.Equal(t, "b", lhs.Name)
	rhs, ok := bin.Right.(*ast.Ident)
	require.True(t, ok)
	assert.Equal(t, tmp.Name, rhs.Name)

	finalDrop, ok := fn.Body.Stmts[2].(*ast.Drop)
	require.True(t, ok)
	assert.Equal(t, "b", finalDrop.Name)
}

func TestMaybeMovedAtScopeExitDiagnosedNotDropped(t *testing.T) {
	src := `
class Box { v: i32; }
fn take(b: *Box) {}
fn f() {
  let b = new Box(1);
  if true {
    take(b);
  }
}
`
	prog := parseAndType(t, src)
	diags := Insert(prog)
	var found bool
	for _, d := range diags.Items() {
		if d.Code == "DRP002" {
			found = true
		}
	}
	assert.True(t, found)
	fn := findFunc(prog, "f")
	require.NotNil(t, fn)
	assert.Empty(t, dropNames(fn.Body.Stmts))
}

func TestMMOffSkipsWholeModule(t *testing.T) {
	src := `
@emp mm off;
class Box { v: i32; }
fn f() {
  let b = new Box(1);
}
`
	prog := parseAndType(t, src)
	diags := Insert(prog)
	assert.Zero(t, diags.Len())

	fn := findFunc(prog, "f")
	require.NotNil(t, fn)
	require.Len(t, fn.Body.Stmts, 1)
	assert.Empty(t, dropNames(fn.Body.Stmts))
}
