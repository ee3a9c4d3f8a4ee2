package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaffoldCreatesProjectLayout(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	code := scaffold("myproj")
	require.Equal(t, exitOK, code)

	for _, p := range []string{
		filepath.Join("myproj", "emp.toml"),
		filepath.Join("myproj", "src", "main.em"),
		filepath.Join("myproj", ".gitignore"),
		filepath.Join("myproj", "README.md"),
	} {
		_, err := os.Stat(p)
		assert.NoError(t, err, "expected %s to exist", p)
	}
	info, err := os.Stat(filepath.Join("myproj", "emp_mods"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestScaffoldRefusesExistingDir(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	require.NoError(t, os.Mkdir("taken", 0o755))
	code := scaffold("taken")
	assert.Equal(t, exitUsage, code)
}
