package types

import "github.com/emplang/empc/internal/ast"

// checkTraitImpls validates every trait impl block against its trait's
// declared method signatures (spec.md §4.2 "Trait impls validation"):
// every trait method must be implemented with matching parameter and
// return types (Auto in trait position means Self), and default trait
// method bodies are rejected (the parser never produces one; see
// ast.TraitMethod.Default).
func (c *Context) checkTraitImpls() {
	for _, impl := range c.Impls {
		if impl.TraitName == "" {
			continue
		}
		trait, ok := c.Traits[impl.TraitName]
		if !ok {
			c.errorf("TYP008", impl.Span(), "unknown trait '%s'", impl.TraitName)
			continue
		}
		implByName := map[string]*ast.FuncDecl{}
		for _, m := range impl.Methods {
			implByName[m.Name] = m
		}
		for _, tm := range trait.Methods {
			if tm.Default != nil {
				c.errorf("TYP008", tm.Sp, "trait '%s' method '%s' has a default body, which is not supported", impl.TraitName, tm.Name)
				continue
			}
			im, ok := implByName[tm.Name]
			if !ok {
				c.errorf("TYP008", impl.Span(), "impl of trait '%s' for '%s' is missing method '%s'", impl.TraitName, impl.TypeName, tm.Name)
				continue
			}
			if !traitMethodMatches(tm, im, impl.TypeName) {
				c.errorf("TYP008", im.Span(), "method '%s' does not match trait '%s' signature", tm.Name, impl.TraitName)
			}
		}
	}
}

func traitMethodMatches(tm ast.TraitMethod, im *ast.FuncDecl, selfName string) bool {
	implParams := im.Params
	if im.HasSelf {
		implParams = implParams[1:]
	}
	if len(implParams) != len(tm.Params) {
		return false
	}
	for i := range tm.Params {
		if !typesEqualWithSelf(implParams[i].Type, tm.Params[i].Type, selfName) {
			return false
		}
	}
	return typesEqualWithSelf(im.ReturnType, tm.ReturnType, selfName)
}
