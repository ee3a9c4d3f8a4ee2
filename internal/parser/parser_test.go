package parser

import (
	"testing"

	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New("t.em", []byte(src))
	p := New("t.em", l)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors, "unexpected parse errors: %v", p.Errors)
	return prog
}

func TestParseFuncDecl(t *testing.T) {
	prog := parseProgram(t, `fn add(a: i32, b: i32) -> i32 { return a + b; }`)
	require.Len(t, prog.Items, 1)
	fn, ok := prog.Items[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Len(t, fn.Params, 2)
	assert.IsType(t, &ast.NameType{}, fn.ReturnType)
}

func TestParseVarDeclAndDrop(t *testing.T) {
	prog := parseProgram(t, `fn f() { let x: i32 = 1; drop x; }`)
	fn := prog.Items[0].(*ast.FuncDecl)
	require.Len(t, fn.Body.Stmts, 2)
	assert.IsType(t, &ast.VarDecl{}, fn.Body.Stmts[0])
	assert.IsType(t, &ast.Drop{}, fn.Body.Stmts[1])
}

func TestParseClassWithVirtualMethod(t *testing.T) {
	prog := parseProgram(t, `
class Shape {
	area: f64;
	virtual fn describe() -> i32 { return 0; }
}`)
	c := prog.Items[0].(*ast.ClassDecl)
	assert.Equal(t, "Shape", c.Name)
	require.Len(t, c.Fields, 1)
	require.Len(t, c.Methods, 1)
	assert.True(t, c.Methods[0].IsVirtual)
	assert.True(t, c.Methods[0].HasSelf)
}

func TestParseEnumAndMatch(t *testing.T) {
	prog := parseProgram(t, `
enum Op { Add, Sub }
fn f(o: Op) -> i32 {
	match o {
		Op::Add => { return 1; }
		Op::Sub => { return 2; }
	}
}`)
	require.Len(t, prog.Items, 2)
	e := prog.Items[0].(*ast.EnumDecl)
	assert.Len(t, e.Variants, 2)
	fn := prog.Items[1].(*ast.FuncDecl)
	m := fn.Body.Stmts[0].(*ast.Match)
	require.Len(t, m.Arms, 2)
	assert.Equal(t, "Op", m.Arms[0].EnumName)
	assert.Equal(t, "Add", m.Arms[0].Variant)
}

func TestParseUseWildcardAndList(t *testing.T) {
	prog := parseProgram(t, `
use * from a.b;
use foo, bar as baz from a.c;
`)
	require.Len(t, prog.Items, 2)
	u1 := prog.Items[0].(*ast.UseItem)
	assert.True(t, u1.Wildcard)
	assert.Equal(t, "a.b", u1.ModulePath)
	u2 := prog.Items[1].(*ast.UseItem)
	require.Len(t, u2.Names, 2)
	assert.Equal(t, "baz", u2.Names[1].Alias)
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parseProgram(t, `fn f() -> i32 { return 1 + 2 * 3; }`)
	fn := prog.Items[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.Return)
	bin := ret.Value.(*ast.Binary)
	assert.Equal(t, ast.BinAdd, bin.Op)
	rhs := bin.Right.(*ast.Binary)
	assert.Equal(t, ast.BinMul, rhs.Op)
}

func TestParseBorrowAndDeref(t *testing.T) {
	prog := parseProgram(t, `fn f() { let r = &mut x; let d = *r; }`)
	fn := prog.Items[0].(*ast.FuncDecl)
	v1 := fn.Body.Stmts[0].(*ast.VarDecl)
	u := v1.Init.(*ast.Unary)
	assert.Equal(t, ast.UnaryRefMut, u.Op)
}

func TestParseEmpOffBlock(t *testing.T) {
	prog := parseProgram(t, `fn f() { @emp off { let r: *u8; } }`)
	fn := prog.Items[0].(*ast.FuncDecl)
	off := fn.Body.Stmts[0].(*ast.EmpOff)
	assert.Len(t, off.Body.Stmts, 1)
}

func TestParseFileLevelMMOff(t *testing.T) {
	prog := parseProgram(t, `@emp mm off;
fn f() {}`)
	require.Len(t, prog.Items, 2)
	assert.IsType(t, &ast.FileMMOff{}, prog.Items[0])
	assert.True(t, ast.FileHasMMOff(prog))
}

func TestParseImplForTrait(t *testing.T) {
	prog := parseProgram(t, `
trait Greet { fn hello() -> i32; }
impl Greet for Widget {
	fn hello() -> i32 { return 1; }
}`)
	impl := prog.Items[1].(*ast.ImplDecl)
	assert.Equal(t, "Greet", impl.TraitName)
	assert.Equal(t, "Widget", impl.TypeName)
}

func TestParseFStringInterpolation(t *testing.T) {
	prog := parseProgram(t, `fn f() { let s = f"hi {name}!"; }`)
	fn := prog.Items[0].(*ast.FuncDecl)
	v := fn.Body.Stmts[0].(*ast.VarDecl)
	fs := v.Init.(*ast.FString)
	require.Len(t, fs.Parts, 3)
	assert.IsType(t, &ast.Ident{}, fs.Parts[1])
}
