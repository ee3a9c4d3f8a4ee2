package module

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Base is one module-resolution search root, highest precedence first
// within the caller-supplied slice (spec.md §4.1).
type Base struct {
	Label string
	Dir   string
}

// ResolveFile resolves a dotted module path (`use ... from a.b.c;`) to an
// absolute source file, honoring the precedence and bundled-stdlib
// fallback rule of spec.md §4.1: bases are tried in precedence order and
// the first base producing a match wins outright (this is what makes
// Scenario F's "entry dir beats emp_mods beats bundled" hold even when a
// same-named module exists at multiple precedence tiers). A base is
// ambiguous only when it is internally ambiguous — both `<rel>.em` and
// `<rel>/mod.em` resolve inside the same base directory.
func ResolveFile(bases []Base, modulePath, bundledEmpMods string) (resolved string, candidates []string, ambiguous bool) {
	rel := filepath.Join(strings.Split(modulePath, ".")...)

	for _, b := range bases {
		if b.Dir == "" {
			continue
		}
		var local []string
		cand1 := filepath.Join(b.Dir, rel+".em")
		if fileExists(cand1) {
			local = append(local, absOrSelf(cand1))
			candidates = append(candidates, b.Label+":"+rel+".em")
		}
		cand2 := filepath.Join(b.Dir, rel, "mod.em")
		if fileExists(cand2) {
			local = append(local, absOrSelf(cand2))
			candidates = append(candidates, b.Label+":"+rel+string(filepath.Separator)+"mod.em")
		}
		switch len(local) {
		case 0:
			continue
		case 1:
			return local[0], candidates, false
		default:
			return "", candidates, true
		}
	}
	return "", candidates, false
}

// ResolveWildcardDir resolves `use * from a.b;` to a package directory
// under the first matching base, applying the same precedence
// short-circuit as ResolveFile.
func ResolveWildcardDir(bases []Base, modulePath, bundledEmpMods string) (dir string, ambiguous bool) {
	rel := filepath.Join(strings.Split(modulePath, ".")...)

	for _, b := range bases {
		if b.Dir == "" {
			continue
		}
		cand := filepath.Join(b.Dir, rel)
		if dirExists(cand) {
			return absOrSelf(cand), false
		}
	}
	return "", false
}

// ListEmFiles returns the .em files directly in dir, sorted
// case-insensitive lexicographically (spec.md §4.1 wildcard ordering).
func ListEmFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".em") {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool { return strings.ToLower(names[i]) < strings.ToLower(names[j]) })
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = filepath.Join(dir, n)
	}
	return out
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func absOrSelf(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

func pathUnder(p, base string) bool {
	rel, err := filepath.Rel(base, p)
	return err == nil && !strings.HasPrefix(rel, "..")
}
