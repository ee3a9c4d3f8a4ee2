// Package module implements EMP's multi-module loader: deterministic
// `use` resolution across module/entry/project/bundled-stdlib search
// bases (spec.md §4.1), including wildcard package imports, bundled-
// stdlib vendoring, and conflict/failure diagnostics.
package module

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/emplang/empc/internal/arena"
	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
	"github.com/emplang/empc/internal/lexer"
	"github.com/emplang/empc/internal/parser"
	"github.com/emplang/empc/internal/vendor"
)

// Module is one loaded `.em` file: its own program, diagnostics, and
// identity. Modules are indexed by absolute canonical path so repeated
// `use` targets are never parsed twice (spec.md §3 Invariants).
type Module struct {
	PathAbs string
	DirAbs  string
	Src     []byte
	Program *ast.Program
	Diags   *diag.List

	// Arena backs this module's own long-lived string copies (PathAbs,
	// DirAbs): a region the whole module's data is released with at
	// once, rather than each string managed independently.
	Arena *arena.Arena

	// Failed is set when the file could not be read or parsed at all;
	// the module still occupies a slot with an empty program (spec.md
	// §4.1 Failure semantics).
	Failed bool
}

// Set is every module reachable (transitively) from an entry file.
type Set struct {
	EntryPath string
	byPath    map[string]*Module
	order     []string
}

// Modules returns every loaded module, in the order first added
// (entry first, then each newly discovered dependency).
func (s *Set) Modules() []*Module {
	out := make([]*Module, 0, len(s.order))
	for _, p := range s.order {
		out = append(out, s.byPath[p])
	}
	return out
}

// Get looks up a loaded module by absolute path.
func (s *Set) Get(pathAbs string) (*Module, bool) {
	m, ok := s.byPath[pathAbs]
	return m, ok
}

// Loader drives module discovery from one entry file.
type Loader struct {
	EntryDir       string
	ProjectRoot    string
	ProjectEmpMods string
	BundledEmpMods string
}

// Load parses entryPath and transitively resolves every `use` item
// reachable from it, vendoring bundled-stdlib modules into the project
// tree on first use.
func (l *Loader) Load(entryPath string) (*Set, error) {
	entryAbs, err := filepath.Abs(entryPath)
	if err != nil {
		return nil, err
	}
	set := &Set{EntryPath: entryAbs, byPath: map[string]*Module{}}

	var uses []pendingUse

	queue := []string{entryAbs}
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		if _, ok := set.byPath[path]; ok {
			continue
		}
		mod := l.loadOne(path)
		set.byPath[path] = mod
		set.order = append(set.order, path)

		if mod.Program == nil {
			continue
		}
		for _, it := range mod.Program.Items {
			use, ok := it.(*ast.UseItem)
			if !ok {
				continue
			}
			targets := l.resolveUse(mod, use)
			uses = append(uses, pendingUse{mod: mod, use: use, paths: targets})
			for _, t := range targets {
				if _, ok := set.byPath[t]; !ok {
					queue = append(queue, t)
				}
			}
		}
	}

	// Every use target is loaded by now; a target that failed to read or
	// parse reports the failure at its importing site too.
	recordFailedImports(set, uses)
	return set, nil
}

// pendingUse is one `use` item resolved during Load's discovery walk,
// kept around so failure diagnostics can be attached once every target
// it names has actually been loaded.
type pendingUse struct {
	mod   *Module
	use   *ast.UseItem
	paths []string
}

// recordFailedImports appends MOD003 to an importing module's Diags for
// every use whose resolved target ended up Failed (spec.md §4.1 Failure
// semantics): a module that resolves but can't be read or parsed must
// still be visible as a failure at its importer, not just silently
// empty.
func recordFailedImports(set *Set, uses []pendingUse) {
	for _, u := range uses {
		for _, t := range u.paths {
			target, ok := set.byPath[t]
			if ok && target.Failed {
				u.mod.Diags.Addf(diag.PhaseModule, "MOD003", u.use.Span(), "module: imported module failed to load")
			}
		}
	}
}

func (l *Loader) loadOne(pathAbs string) *Module {
	a := arena.New()
	mod := &Module{
		PathAbs: a.String(pathAbs),
		DirAbs:  a.String(filepath.Dir(pathAbs)),
		Diags:   &diag.List{},
		Arena:   a,
	}
	data, err := os.ReadFile(pathAbs)
	if err != nil {
		mod.Failed = true
		mod.Program = &ast.Program{}
		return mod
	}
	src := lexer.Normalize(lexer.StripMarkdownFence(data))
	mod.Src = src

	lx := lexer.New(pathAbs, src)
	p := parser.New(pathAbs, lx)
	mod.Program = p.ParseProgram()
	for _, d := range lx.Errors {
		mod.Diags.Add(d)
	}
	for _, d := range p.Errors {
		mod.Diags.Add(d)
	}
	return mod
}

// bases returns the five resolution bases in precedence order for a use
// statement found inside a module whose directory is moduleDir.
func (l *Loader) bases(moduleDir string) []Base {
	return []Base{
		{Label: "module_dir", Dir: moduleDir},
		{Label: "entry_dir", Dir: l.EntryDir},
		{Label: "emp_mods", Dir: l.ProjectEmpMods},
		{Label: "project_root", Dir: l.ProjectRoot},
		{Label: "bundled", Dir: l.BundledEmpMods},
	}
}

// resolveUse resolves one `use` item against mod's module directory,
// appends diagnostics to mod on failure/ambiguity, vendors a bundled hit
// into the project tree, and returns the absolute paths newly reachable
// through it.
func (l *Loader) resolveUse(mod *Module, use *ast.UseItem) []string {
	bases := l.bases(mod.DirAbs)

	if use.Wildcard {
		dir, ambiguous := ResolveWildcardDir(bases, use.ModulePath, l.BundledEmpMods)
		if ambiguous {
			mod.Diags.Addf(diag.PhaseModule, "MOD002", use.Span(), "module: ambiguous module '%s'", use.ModulePath)
			return nil
		}
		if dir == "" {
			mod.Diags.Addf(diag.PhaseModule, "MOD001", use.Span(),
				"module: failed to resolve module '%s' (searched: module_dir, entry_dir, emp_mods, entry_root, bundled)", use.ModulePath)
			return nil
		}
		if l.BundledEmpMods != "" && pathUnder(dir, l.BundledEmpMods) && l.ProjectEmpMods != "" {
			if vendored, err := vendor.PackageDir(dir, l.BundledEmpMods, l.ProjectEmpMods); err == nil {
				dir = vendored
			}
		}
		return ListEmFiles(dir)
	}

	resolved, candidates, ambiguous := ResolveFile(bases, use.ModulePath, l.BundledEmpMods)
	if ambiguous {
		mod.Diags.Addf(diag.PhaseModule, "MOD002", use.Span(),
			"module: ambiguous module '%s' (candidates: %v)", use.ModulePath, candidates)
		return nil
	}
	if resolved == "" {
		mod.Diags.Addf(diag.PhaseModule, "MOD001", use.Span(),
			"module: failed to resolve module '%s' (searched: module_dir, entry_dir, emp_mods, entry_root, bundled)", use.ModulePath)
		return nil
	}
	if l.BundledEmpMods != "" && pathUnder(resolved, l.BundledEmpMods) && l.ProjectEmpMods != "" {
		if vendored, err := vendor.File(resolved, l.BundledEmpMods, l.ProjectEmpMods); err == nil {
			resolved = vendored
		}
	}
	return []string{resolved}
}

// SortedPaths returns every module path in the set, sorted
// lexicographically, for deterministic cross-module diagnostic
// serialization (spec.md §5 Ordering guarantees).
func (s *Set) SortedPaths() []string {
	paths := make([]string, 0, len(s.byPath))
	for p := range s.byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
