package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emp.toml")
	m := DefaultManifest("demo")
	require.NoError(t, Write(path, m))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Name)
	assert.Equal(t, filepath.Join("src", "main.em"), got.Entry)
	assert.Equal(t, "emp_mods", got.Vendor.Dir)
}

func TestFindRootWalksUp(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(filepath.Join(dir, "emp.toml"), DefaultManifest("demo")))
	nested := filepath.Join(dir, "src", "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, dir, FindRoot(nested))
}

func TestFindRootMissing(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", FindRoot(dir))
}

func TestVendorDirDefaultsWhenUnset(t *testing.T) {
	assert.Equal(t, filepath.Join("/proj", "emp_mods"), VendorDir("/proj", &Manifest{}))
}
