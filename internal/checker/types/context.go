// Package types implements the type checker and overload resolver
// (spec.md §4.2): scoped inference, literal coercions, free/method/
// trait/virtual overload resolution, built-in container method sugar,
// dyn casts, trait-impl validation, and match exhaustiveness.
package types

import (
	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
)

// Context carries whole-program declaration tables and pass state. It is
// threaded explicitly through the walk as an argument rather than kept
// in a package global — the reference implementation uses a process-
// global `g_tc_program`/`g_tc_mm_depth` pair, which this Go port folds
// into an explicit parameter (see DESIGN.md, Open Questions).
type Context struct {
	Program *ast.Program
	Diags   *diag.List

	Funcs   map[string][]*ast.FuncDecl
	Classes map[string]*ast.ClassDecl
	Structs map[string]*ast.StructDecl
	Enums   map[string]*ast.EnumDecl
	Traits  map[string]*ast.TraitDecl
	Impls   []*ast.ImplDecl
	Consts  map[string]*ast.ConstDecl

	mmDepth int
	strict  bool
}

// NewContext indexes prog's top-level items for repeated lookup during
// the walk.
func NewContext(prog *ast.Program, diags *diag.List) *Context {
	c := &Context{
		Program: prog,
		Diags:   diags,
		Funcs:   map[string][]*ast.FuncDecl{},
		Classes: map[string]*ast.ClassDecl{},
		Structs: map[string]*ast.StructDecl{},
		Enums:   map[string]*ast.EnumDecl{},
		Traits:  map[string]*ast.TraitDecl{},
		Consts:  map[string]*ast.ConstDecl{},
	}
	for _, it := range prog.Items {
		switch v := it.(type) {
		case *ast.FuncDecl:
			c.Funcs[v.Name] = append(c.Funcs[v.Name], v)
		case *ast.ClassDecl:
			c.Classes[v.Name] = v
		case *ast.StructDecl:
			c.Structs[v.Name] = v
		case *ast.EnumDecl:
			c.Enums[v.Name] = v
		case *ast.TraitDecl:
			c.Traits[v.Name] = v
		case *ast.ImplDecl:
			c.Impls = append(c.Impls, v)
		case *ast.ConstDecl:
			c.Consts[v.Name] = v
		}
	}
	return c
}

// InMM reports whether the walk is currently inside an `@emp mm off`
// region, where manual-MM-only functions and raw pointer arithmetic are
// permitted.
func (c *Context) InMM() bool { return c.mmDepth > 0 }

func (c *Context) enterMM()  { c.mmDepth++ }
func (c *Context) exitMM()   { c.mmDepth-- }

// errorf records a strict-pass diagnostic. It is a no-op during the
// lenient pass, which by design never emits diagnostics (spec.md §4.2).
func (c *Context) errorf(code string, sp diag.Span, format string, args ...interface{}) {
	if !c.strict {
		return
	}
	c.Diags.Addf(diag.PhaseType, code, sp, format, args...)
}

// implsForType returns every ImplDecl whose TypeName is typeName.
func (c *Context) implsForType(typeName string) []*ast.ImplDecl {
	var out []*ast.ImplDecl
	for _, impl := range c.Impls {
		if impl.TypeName == typeName {
			out = append(out, impl)
		}
	}
	return out
}

// classMethods returns cls's own declared methods named name,
// walking the Base chain, excluding any overridden by an inherent impl
// on a more derived class already visited (spec.md §4.2 "except those
// overridden by an inherent impl").
func (c *Context) classMethods(cls *ast.ClassDecl, name string) []*ast.FuncDecl {
	var out []*ast.FuncDecl
	seen := map[string]bool{}
	for cur := cls; cur != nil; {
		for _, impl := range c.implsForType(cur.Name) {
			if impl.TraitName != "" {
				continue
			}
			for _, m := range impl.Methods {
				if m.Name == name {
					seen[mangleParams(m.Params)] = true
				}
			}
		}
		for _, m := range cur.Methods {
			if m.Name != name {
				continue
			}
			if seen[mangleParams(m.Params)] {
				continue
			}
			out = append(out, m)
		}
		if cur.Base == "" {
			break
		}
		cur = c.Classes[cur.Base]
	}
	return out
}

// inherentImplMethods returns all inherent-impl methods named name
// for typeName.
func (c *Context) inherentImplMethods(typeName, name string) []*ast.FuncDecl {
	var out []*ast.FuncDecl
	for _, impl := range c.implsForType(typeName) {
		if impl.TraitName != "" {
			continue
		}
		for _, m := range impl.Methods {
			if m.Name == name {
				out = append(out, m)
			}
		}
	}
	return out
}

// virtualMethodsInOrder returns base's own virtual, non-init methods in
// declaration order, for vtable slot assignment (spec.md §4.2).
func virtualMethodsInOrder(base *ast.ClassDecl) []*ast.FuncDecl {
	var out []*ast.FuncDecl
	for _, m := range base.Methods {
		if m.IsVirtual && !m.IsInit {
			out = append(out, m)
		}
	}
	return out
}
