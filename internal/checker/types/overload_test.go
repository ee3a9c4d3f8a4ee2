package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emplang/empc/internal/ast"
)

func i32Param(name string) ast.Param {
	return ast.Param{Name: name, Type: &ast.NameType{Name: "i32"}}
}

// TestResolveOverloadTiePrefersImpl implements spec.md §4.2 Method
// resolution: a cost tie between an inherent impl method and a class
// method of identical signature resolves to the impl method rather than
// being reported ambiguous.
func TestResolveOverloadTiePrefersImpl(t *testing.T) {
	implMethod := &ast.FuncDecl{Name: "area", Params: []ast.Param{i32Param("scale")}, ReturnType: typeI32}
	classMethod := &ast.FuncDecl{Name: "area", Params: []ast.Param{i32Param("scale")}, ReturnType: typeI32}
	candidates := []*ast.FuncDecl{implMethod, classMethod}
	args := []argInfo{{Type: typeI32}}

	winner, rejectedMM, ambiguous := resolveOverload(candidates, args, true, 1)
	require.False(t, ambiguous)
	require.False(t, rejectedMM)
	assert.Same(t, implMethod, winner)
}

// TestResolveOverloadTieWithoutImplIsAmbiguous keeps the existing
// free-function/class-only behavior: a tie with no impl candidate (or
// more than one) is still reported ambiguous.
func TestResolveOverloadTieWithoutImplIsAmbiguous(t *testing.T) {
	a := &ast.FuncDecl{Name: "area", Params: []ast.Param{i32Param("scale")}, ReturnType: typeI32}
	b := &ast.FuncDecl{Name: "area", Params: []ast.Param{i32Param("scale")}, ReturnType: typeI32}
	candidates := []*ast.FuncDecl{a, b}
	args := []argInfo{{Type: typeI32}}

	winner, _, ambiguous := resolveOverload(candidates, args, true, 0)
	assert.True(t, ambiguous)
	assert.Nil(t, winner)
}
