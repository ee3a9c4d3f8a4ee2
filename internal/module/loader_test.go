package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestResolutionPrecedence implements spec.md §8 Scenario F: entry dir
// beats emp_mods beats bundled.
func TestResolutionPrecedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "emp_mods", "x.em"), "// emp_mods copy")
	writeFile(t, filepath.Join(root, "src", "x.em"), "// entry dir copy")
	writeFile(t, filepath.Join(root, "stdlib", "emp_mods", "x.em"), "// bundled copy")
	writeFile(t, filepath.Join(root, "src", "main.em"), `use foo from x;`)

	l := &Loader{
		EntryDir:       filepath.Join(root, "src"),
		ProjectRoot:    root,
		ProjectEmpMods: filepath.Join(root, "emp_mods"),
		BundledEmpMods: filepath.Join(root, "stdlib", "emp_mods"),
	}
	set, err := l.Load(filepath.Join(root, "src", "main.em"))
	require.NoError(t, err)

	entry, ok := set.Get(filepath.Join(root, "src", "main.em"))
	require.True(t, ok)
	require.Zero(t, entry.Diags.Len())

	_, loadedEntryX := set.Get(filepath.Join(root, "src", "x.em"))
	assert.True(t, loadedEntryX)
	_, loadedEmpModsX := set.Get(filepath.Join(root, "emp_mods", "x.em"))
	assert.False(t, loadedEmpModsX)
}

func TestBundledModuleIsVendored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "stdlib", "emp_mods", "io.em"), "fn read() {}")
	writeFile(t, filepath.Join(root, "src", "main.em"), `use read from io;`)

	l := &Loader{
		EntryDir:       filepath.Join(root, "src"),
		ProjectRoot:    root,
		ProjectEmpMods: filepath.Join(root, "emp_mods"),
		BundledEmpMods: filepath.Join(root, "stdlib", "emp_mods"),
	}
	_, err := l.Load(filepath.Join(root, "src", "main.em"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "emp_mods", "io.em"))
	require.NoError(t, err)
	assert.Equal(t, "fn read() {}", string(data))
}

func TestUnresolvedModuleRecordsDiagnostic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.em"), `use foo from nonexistent;`)

	l := &Loader{EntryDir: filepath.Join(root, "src"), ProjectRoot: root}
	set, err := l.Load(filepath.Join(root, "src", "main.em"))
	require.NoError(t, err)

	entry, _ := set.Get(filepath.Join(root, "src", "main.em"))
	require.Equal(t, 1, entry.Diags.Len())
	assert.Equal(t, "MOD001", entry.Diags.Items()[0].Code)
}

// TestFailedImportReportsAtImportingSite covers spec.md §4.1 Failure
// semantics: a use target that resolved but came back Failed must be
// visible as a diagnostic on its importer, not silently swallowed.
func TestFailedImportReportsAtImportingSite(t *testing.T) {
	importer := &Module{PathAbs: "/a/main.em", Diags: &diag.List{}}
	target := &Module{PathAbs: "/a/broken.em", Diags: &diag.List{}, Failed: true}
	set := &Set{byPath: map[string]*Module{
		importer.PathAbs: importer,
		target.PathAbs:   target,
	}}

	use := &ast.UseItem{ModulePath: "broken"}
	use.Sp = diag.Span{Start: diag.Pos{File: importer.PathAbs}}

	recordFailedImports(set, []pendingUse{{mod: importer, use: use, paths: []string{target.PathAbs}}})

	require.Equal(t, 1, importer.Diags.Len())
	got := importer.Diags.Items()[0]
	assert.Equal(t, "MOD003", got.Code)
	assert.Equal(t, "module: imported module failed to load", got.Message)
	assert.Zero(t, target.Diags.Len())
}

func TestWildcardImportPullsAllPackageFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "collections", "list.em"), "fn make_list() {}")
	writeFile(t, filepath.Join(root, "src", "collections", "map.em"), "fn make_map() {}")
	writeFile(t, filepath.Join(root, "src", "main.em"), `use * from collections;`)

	l := &Loader{EntryDir: filepath.Join(root, "src"), ProjectRoot: root}
	set, err := l.Load(filepath.Join(root, "src", "main.em"))
	require.NoError(t, err)

	_, hasList := set.Get(filepath.Join(root, "src", "collections", "list.em"))
	_, hasMap := set.Get(filepath.Join(root, "src", "collections", "map.em"))
	assert.True(t, hasList)
	assert.True(t, hasMap)
}
