package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
	"github.com/emplang/empc/internal/lexer"
	"github.com/emplang/empc/internal/module"
	"github.com/emplang/empc/internal/project"
	"github.com/emplang/empc/internal/view"
)

type buildOpts struct {
	ast   bool
	json  bool
	lex   bool
	ll    bool
	nobin bool
	out   string
}

func build(file string, opts buildOpts) int {
	if file == "" {
		fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
		fmt.Fprintln(os.Stderr, "Usage: emp <file.em> [flags]")
		return exitUsage
	}

	if opts.lex {
		return runLex(file)
	}

	fileAbs, err := filepath.Abs(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return exitUsage
	}

	root := project.FindRoot(filepath.Dir(fileAbs))
	var manifest *project.Manifest
	if root != "" {
		if m, err := project.Load(filepath.Join(root, "emp.toml")); err == nil {
			manifest = &m
		}
	} else {
		root = filepath.Dir(fileAbs)
	}

	loader := &module.Loader{
		EntryDir:       filepath.Dir(fileAbs),
		ProjectRoot:    root,
		ProjectEmpMods: project.VendorDir(root, manifest),
		BundledEmpMods: bundledEmpMods(),
	}
	set, err := loader.Load(fileAbs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return exitDiags
	}

	entry, ok := set.Get(fileAbs)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: '%s' did not load\n", red("Error"), file)
		return exitDiags
	}

	byPath := map[string][]diag.Diagnostic{}
	for _, m := range set.Modules() {
		if m.Diags.Len() > 0 {
			byPath[m.PathAbs] = append(byPath[m.PathAbs], m.Diags.Items()...)
		}
	}

	v := view.Build(set, entry)
	checked := v.RunChecks()
	if checked.Len() > 0 {
		byPath[entry.PathAbs] = append(byPath[entry.PathAbs], checked.Items()...)
	}

	total := 0
	for _, ds := range byPath {
		total += len(ds)
	}

	if opts.ast {
		if total > 0 {
			printDiagnostics(byPath, opts.json)
			return exitDiags
		}
		fmt.Println(ast.Print(v.Program))
		return exitOK
	}

	if opts.json {
		printDiagnostics(byPath, true)
		if total > 0 {
			return exitDiags
		}
		return exitOK
	}

	if total > 0 {
		printDiagnostics(byPath, false)
		return exitDiags
	}

	return buildNative(v, opts)
}

// runLex re-scans file's normalized source and prints its raw token
// stream, independent of module resolution (spec.md §6.1 "--lex").
func runLex(file string) int {
	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file '%s': %v\n", red("Error"), file, err)
		return exitUsage
	}
	src := lexer.Normalize(lexer.StripMarkdownFence(data))
	lx := lexer.New(file, src)
	for {
		tok := lx.Next()
		fmt.Println(tok.String())
		if tok.Type == lexer.EOF {
			break
		}
	}
	if len(lx.Errors) > 0 {
		for _, d := range lx.Errors {
			fmt.Fprintln(os.Stderr, d.String())
		}
		return exitDiags
	}
	return exitOK
}

// buildNative is the native-executable build path: LLVM IR emission and
// invoking llc/lld are mechanical glue outside this repo's scope.
func buildNative(v *view.View, opts buildOpts) int {
	if opts.ll {
		fmt.Fprintf(os.Stderr, "%s: LLVM IR emission is not yet implemented\n", yellow("Warning"))
		return exitDiags
	}
	fmt.Fprintf(os.Stderr, "%s: native build (llc/lld driving) is not yet implemented; try --ll\n", yellow("Warning"))
	return exitDiags
}

func printDiagnostics(byPath map[string][]diag.Diagnostic, asJSON bool) {
	paths := diag.SortStableByPath(byPath)
	if asJSON {
		var all []diag.Encoded
		for _, p := range paths {
			for _, d := range byPath[p] {
				all = append(all, diag.Encode(d))
			}
		}
		enc, _ := json.MarshalIndent(all, "", "  ")
		fmt.Println(string(enc))
		return
	}
	for _, p := range paths {
		for _, d := range byPath[p] {
			fmt.Printf("%s %s\n", red(p), d.String())
		}
	}
}

// bundledEmpMods locates the stdlib modules shipped alongside the emp
// binary, mirroring the teacher's pattern of resolving auxiliary data
// relative to os.Executable rather than the working directory.
func bundledEmpMods() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), "stdlib", "emp_mods")
}
