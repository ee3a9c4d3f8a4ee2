package view

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/module"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func itemNames(items []ast.Item) []string {
	var names []string
	for _, it := range items {
		if n := itemName(it); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func TestBuildPullsNamedImportStub(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "shapes.em"), "export fn area() -> f64 { return 1.0; }")
	writeFile(t, filepath.Join(root, "src", "main.em"), "use area from shapes;\nfn main() {}")

	l := &module.Loader{EntryDir: filepath.Join(root, "src"), ProjectRoot: root}
	set, err := l.Load(filepath.Join(root, "src", "main.em"))
	require.NoError(t, err)

	entry, ok := set.Get(filepath.Join(root, "src", "main.em"))
	require.True(t, ok)

	v := Build(set, entry)
	assert.Zero(t, v.Diags.Len())
	names := itemNames(v.Program.Items)
	assert.Contains(t, names, "main")
	assert.Contains(t, names, "area")

	for _, it := range v.Program.Items {
		if fd, ok := it.(*ast.FuncDecl); ok && fd.Name == "area" {
			assert.Nil(t, fd.Body, "imported stub must not carry a body")
		}
	}
}

func TestBuildWildcardSkipsNonExported(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "util", "a.em"), "export fn pub_fn() {}\nfn _priv_fn() {}")
	writeFile(t, filepath.Join(root, "src", "main.em"), "use * from util;\nfn main() {}")

	l := &module.Loader{EntryDir: filepath.Join(root, "src"), ProjectRoot: root}
	set, err := l.Load(filepath.Join(root, "src", "main.em"))
	require.NoError(t, err)

	entry, _ := set.Get(filepath.Join(root, "src", "main.em"))
	v := Build(set, entry)
	names := itemNames(v.Program.Items)
	assert.Contains(t, names, "pub_fn")
	assert.NotContains(t, names, "_priv_fn")
}

func TestBuildNameCollisionRecordsDiagnostic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "shapes.em"), "export fn area() {}")
	writeFile(t, filepath.Join(root, "src", "main.em"), "use area from shapes;\nfn area() {}")

	l := &module.Loader{EntryDir: filepath.Join(root, "src"), ProjectRoot: root}
	set, err := l.Load(filepath.Join(root, "src", "main.em"))
	require.NoError(t, err)

	entry, _ := set.Get(filepath.Join(root, "src", "main.em"))
	v := Build(set, entry)
	require.Equal(t, 1, v.Diags.Len())
	assert.Equal(t, "IMP003", v.Diags.Items()[0].Code)
}

func TestBuildAliasRenamesImportedStub(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "shapes.em"), "export fn area() {}")
	writeFile(t, filepath.Join(root, "src", "main.em"), "use area as shape_area from shapes;\nfn main() {}")

	l := &module.Loader{EntryDir: filepath.Join(root, "src"), ProjectRoot: root}
	set, err := l.Load(filepath.Join(root, "src", "main.em"))
	require.NoError(t, err)

	entry, _ := set.Get(filepath.Join(root, "src", "main.em"))
	v := Build(set, entry)
	assert.Zero(t, v.Diags.Len())
	names := itemNames(v.Program.Items)
	assert.Contains(t, names, "shape_area")
	assert.NotContains(t, names, "area")
}
