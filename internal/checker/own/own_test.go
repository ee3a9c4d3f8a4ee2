package own

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/lexer"
	"github.com/emplang/empc/internal/parser"
	checktypes "github.com/emplang/empc/internal/checker/types"
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

func hasCode(t *testing.T, prog *ast.Program, code string) bool {
	t.Helper()
	diags := Check(prog)
	for _, d := range diags.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestUseAfterMoveDetected(t *testing.T) {
	src := `
class Box { v: i32; }
fn take(b: *Box) {}
fn main() {
  let b = new Box(1);
  take(b);
  take(b);
}
`
	prog := parseAndType(t, src)
	assert.True(t, hasCode(t, prog, "OWN001") || hasCode(t, prog, "OWN002"),
		"expected a use-after-move or double-move diagnostic")
}

func TestDoubleDropDetected(t *testing.T) {
	src := `
class Box { v: i32; }
fn main() {
  let b = new Box(1);
  drop b;
  drop b;
}
`
	prog := parseAndType(t, src)
	assert.True(t, hasCode(t, prog, "OWN003"))
}

func TestDropOfPossiblyMovedAfterIfMerge(t *testing.T) {
	src := `
class Box { v: i32; }
fn take(b: *Box) {}
fn main() {
  let b = new Box(1);
  if true {
    take(b);
  }
  drop b;
}
`
	prog := parseAndType(t, src)
	assert.True(t, hasCode(t, prog, "OWN004"))
}

func TestNoFalsePositiveOnDisjointBindings(t *testing.T) {
	src := `
class Box { v: i32; }
fn main() {
  let a = new Box(1);
  let b = new Box(2);
  drop a;
  drop b;
}
`
	prog := parseAndType(t, src)
	diags := Check(prog)
	assert.Zero(t, diags.Len())
}

func TestCopyLikeBindingNeverMoves(t *testing.T) {
	src := `
fn take(n: i32) {}
fn main() {
  let n = 1;
  take(n);
  take(n);
}
`
	prog := parseAndType(t, src)
	diags := Check(prog)
	assert.Zero(t, diags.Len())
}

func TestMoveMergedLiveOnBothIfBranches(t *testing.T) {
	src := `
class Box { v: i32; }
fn take(b: *Box) {}
fn main() {
  let b = new Box(1);
  if true {
    take(b);
  } else {
    take(b);
  }
}
`
	prog := parseAndType(t, src)
	diags := Check(prog)
	assert.Zero(t, diags.Len())
}
