package view

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/module"
)

func TestRunChecksInsertsDropForOwnedBinding(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.em"), `
class Box { v: i32; }
fn main() {
  let b = new Box(1);
}
`)

	l := &module.Loader{EntryDir: filepath.Join(root, "src"), ProjectRoot: root}
	set, err := l.Load(filepath.Join(root, "src", "main.em"))
	require.NoError(t, err)

	entry, ok := set.Get(filepath.Join(root, "src", "main.em"))
	require.True(t, ok)

	v := Build(set, entry)
	require.Zero(t, v.Diags.Len())

	diags := v.RunChecks()
	assert.Zero(t, diags.Len())

	for _, it := range v.Program.Items {
		if fd, ok := it.(*ast.FuncDecl); ok && fd.Name == "main" {
			require.NotEmpty(t, fd.Body.Stmts)
			last := fd.Body.Stmts[len(fd.Body.Stmts)-1]
			d, ok := last.(*ast.Drop)
			require.True(t, ok, "expected a synthesized drop for 'b'")
			assert.Equal(t, "b", d.Name)
		}
	}
}

func TestRunChecksStopsAfterTypeErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.em"), `
fn main() {
  let x: i32 = "not an int";
}
`)

	l := &module.Loader{EntryDir: filepath.Join(root, "src"), ProjectRoot: root}
	set, err := l.Load(filepath.Join(root, "src", "main.em"))
	require.NoError(t, err)

	entry, _ := set.Get(filepath.Join(root, "src", "main.em"))
	v := Build(set, entry)
	diags := v.RunChecks()
	require.NotZero(t, diags.Len())
	for _, d := range diags.Items() {
		assert.Equal(t, "type", string(d.Phase))
	}
}
