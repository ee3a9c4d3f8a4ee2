package types

import "github.com/emplang/empc/internal/ast"

// dynCastOK implements spec.md §4.2 "dyn casts": `*Concrete as dyn Base`
// is valid iff Concrete == Base or Concrete's declared base is Base, and
// Concrete overrides every virtual method of Base with an exact
// signature (Auto in trait/base position standing for Self).
func (c *Context) dynCastOK(concreteName, baseName string) bool {
	if concreteName == baseName {
		return true
	}
	base, ok := c.Classes[baseName]
	if !ok {
		return false
	}
	concrete, ok := c.Classes[concreteName]
	if !ok || concrete.Base != baseName {
		return false
	}
	for _, vm := range virtualMethodsInOrder(base) {
		if !c.classOverridesExactly(concrete, vm) {
			return false
		}
	}
	return true
}

// classOverridesExactly reports whether concrete declares a method
// matching vm's name, parameter types and return type, substituting Auto
// in the base signature for concrete's own name (Self).
func (c *Context) classOverridesExactly(concrete *ast.ClassDecl, vm *ast.FuncDecl) bool {
	for _, m := range concrete.Methods {
		if m.Name != vm.Name || len(m.Params) != len(vm.Params) {
			continue
		}
		ok := true
		for i := range m.Params {
			if !typesEqualWithSelf(m.Params[i].Type, vm.Params[i].Type, concrete.Name) {
				ok = false
				break
			}
		}
		if ok && typesEqualWithSelf(m.ReturnType, vm.ReturnType, concrete.Name) {
			return true
		}
	}
	return false
}

// typesEqualWithSelf compares a (concrete) against b (the base
// signature), treating any Auto/TraitSelf in b as selfName.
func typesEqualWithSelf(a, b ast.Type, selfName string) bool {
	if _, isAutoOrSelf := b.(*ast.Auto); isAutoOrSelf {
		return isNamed(a, selfName)
	}
	if _, isSelf := b.(*ast.TraitSelf); isSelf {
		return isNamed(a, selfName)
	}
	return ast.TypesEqual(a, b)
}

// dynSlot returns the vtable slot of name on base's virtual method list
// (spec.md §4.2 "counting only virtual, non-init methods in declaration
// order").
func dynSlot(base *ast.ClassDecl, name string) (slot int, ok bool) {
	for i, m := range virtualMethodsInOrder(base) {
		if m.Name == name {
			return i, true
		}
	}
	return 0, false
}
