package view

import "github.com/emplang/empc/internal/ast"

// stubItem returns it with bodies/initializers dropped, preserving type
// signatures, per spec.md §4.1 "Declaration stubs". Non-Item-producing
// kinds (tags, directives) are passed through unchanged since they carry
// no importable symbol.
func stubItem(it ast.Item) ast.Item {
	switch v := it.(type) {
	case *ast.FuncDecl:
		cp := *v
		cp.Body = nil
		return &cp
	case *ast.ClassDecl:
		cp := *v
		methods := make([]*ast.FuncDecl, len(v.Methods))
		for i, m := range v.Methods {
			mcp := *m
			mcp.Body = nil
			methods[i] = &mcp
		}
		cp.Methods = methods
		return &cp
	case *ast.ConstDecl:
		cp := *v
		cp.Init = nil
		return &cp
	case *ast.TraitDecl, *ast.StructDecl, *ast.EnumDecl:
		// No bodies/initializers to strip: trait signatures, struct
		// fields, and enum variants are already pure declarations.
		return it
	case *ast.ImplDecl:
		cp := *v
		methods := make([]*ast.FuncDecl, len(v.Methods))
		for i, m := range v.Methods {
			mcp := *m
			mcp.Body = nil
			methods[i] = &mcp
		}
		cp.Methods = methods
		return &cp
	default:
		return it
	}
}

// itemName returns the declared name of it, or "" if it has none (tags,
// use items, file directives — these are never import targets).
func itemName(it ast.Item) string {
	switch v := it.(type) {
	case *ast.FuncDecl:
		return v.Name
	case *ast.ClassDecl:
		return v.Name
	case *ast.TraitDecl:
		return v.Name
	case *ast.StructDecl:
		return v.Name
	case *ast.EnumDecl:
		return v.Name
	case *ast.ConstDecl:
		return v.Name
	}
	return ""
}

// renameItem returns a copy of it with its declared name changed to
// alias, for `use name as alias from p;`.
func renameItem(it ast.Item, alias string) ast.Item {
	switch v := it.(type) {
	case *ast.FuncDecl:
		cp := *v
		cp.Name = alias
		return &cp
	case *ast.ClassDecl:
		cp := *v
		cp.Name = alias
		return &cp
	case *ast.TraitDecl:
		cp := *v
		cp.Name = alias
		return &cp
	case *ast.StructDecl:
		cp := *v
		cp.Name = alias
		return &cp
	case *ast.EnumDecl:
		cp := *v
		cp.Name = alias
		return &cp
	case *ast.ConstDecl:
		cp := *v
		cp.Name = alias
		return &cp
	}
	return it
}
