// Package diagtest provides a golden-file comparator for whole-pipeline
// diagnostic runs, so a checker or driver test can assert the exact set
// of diagnostics a program produces without hand-writing the expected
// JSON inline.
package diagtest

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/emplang/empc/internal/diag"
)

// update controls whether Compare writes golden files instead of
// checking against them. Usage: go test -update ./internal/...
var update = flag.Bool("update", false, "update golden files")

// Compare encodes diags to its JSON wire shape and compares it against
// testdata/diagtest/<name>.golden, failing the test on any difference.
// With -update it (re)writes the golden file instead.
func Compare(t *testing.T, name string, diags *diag.List) {
	t.Helper()

	got, err := json.MarshalIndent(diag.EncodeAll(diags), "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal diagnostics: %v", err)
	}

	path := filepath.Join("testdata", "diagtest", name+".golden")

	if *update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("failed to write golden file %s: %v", path, err)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nrun with -update to create it", path, err)
	}

	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("golden mismatch for %s (-want +got):\n%s", name, diff)
	}
}
