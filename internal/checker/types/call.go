package types

import "github.com/emplang/empc/internal/ast"

// inferCall implements spec.md §4.2's free-function and method
// overload resolution, built-in container sugar rewriting, dyn virtual
// dispatch, and the auto-specializing wrapper-call rule.
func (c *Context) inferCall(env *Env, call *ast.Call) ast.Type {
	if member, ok := call.Callee.(*ast.Member); ok {
		return c.inferMethodCall(env, call, member)
	}
	ident, ok := call.Callee.(*ast.Ident)
	if !ok {
		c.inferExpr(env, call.Callee)
		for _, a := range call.Args {
			c.inferExpr(env, a)
		}
		return nil
	}

	args := c.inferArgs(env, call.Args)
	candidates := c.Funcs[ident.Name]
	if len(candidates) == 0 {
		if c.strict {
			c.errorf("TYP002", call.Span(), "unknown function '%s'", ident.Name)
		}
		return nil
	}

	if !c.strict {
		c.specializeWrapperCall(candidates, call, args, env)
	}

	winner, rejectedMM, ambiguous := resolveOverload(candidates, args, c.InMM(), 0)
	if ambiguous {
		if c.strict {
			c.errorf("TYP004", call.Span(), "ambiguous call to '%s'", ident.Name)
		}
		return nil
	}
	if winner == nil {
		if c.strict {
			if rejectedMM {
				c.errorf("TYP005", call.Span(), "'%s' is manual-MM-only; call it inside '@emp mm off'", ident.Name)
			} else {
				c.errorf("TYP003", call.Span(), "no matching overload for '%s'", ident.Name)
			}
		}
		return nil
	}
	if len(candidates) > 1 {
		call.ResolvedSymbol = mangledSymbol(ident.Name, winner)
	}
	return winner.ReturnType
}

func (c *Context) inferArgs(env *Env, exprs []ast.Expr) []argInfo {
	out := make([]argInfo, len(exprs))
	for i, e := range exprs {
		t := c.inferExpr(env, e)
		isLit, kind := isLiteralExpr(e)
		out[i] = argInfo{Type: t, IsLit: isLit, LitKind: kind}
	}
	return out
}

// inferMethodCall resolves `recv.m(args)`, applying built-in sugar
// rewriting first, then dyn virtual dispatch or inherent/class method
// resolution (spec.md §4.2 "Method resolution").
func (c *Context) inferMethodCall(env *Env, call *ast.Call, member *ast.Member) ast.Type {
	baseType := c.inferExpr(env, member.Base)
	if baseType == nil {
		for _, a := range call.Args {
			c.inferExpr(env, a)
		}
		return nil
	}

	if rewriteBuiltinSugar(call, baseType) {
		// call.Callee is now an Ident naming the intrinsic. The
		// intrinsic's own signature is fixed, not user-declared, so the
		// rewritten args are only inferred and its result type is
		// returned directly, without overload resolution.
		for _, a := range call.Args {
			c.inferExpr(env, a)
		}
		return intrinsicResultType(call.Callee.(*ast.Ident).Name, baseType)
	}

	named := unwrapPointer(baseType)
	args := c.inferArgs(env, call.Args)

	if dyn, ok := named.(*ast.DynType); ok {
		base, ok := c.Classes[dyn.Base]
		if !ok {
			if c.strict {
				c.errorf("TYP002", call.Span(), "unknown base class '%s'", dyn.Base)
			}
			return nil
		}
		var candidates []*ast.FuncDecl
		for _, m := range virtualMethodsInOrder(base) {
			if m.Name == member.Name {
				candidates = append(candidates, m)
			}
		}
		winner, _, ambiguous := resolveOverload(candidates, args, c.InMM(), 0)
		if ambiguous || winner == nil {
			if c.strict {
				c.errorf("TYP003", call.Span(), "no matching virtual method '%s' on dyn %s", member.Name, dyn.Base)
			}
			return nil
		}
		slot, _ := dynSlot(base, member.Name)
		call.DynMethod = member.Name
		call.DynSlot = slot
		call.HasDynSlot = true
		return winner.ReturnType
	}

	n, ok := named.(*ast.NameType)
	if !ok {
		if c.strict {
			c.errorf("TYP002", call.Span(), "cannot call method '%s' on %s", member.Name, ast.TypeString(baseType))
		}
		return nil
	}

	implMethods := c.inherentImplMethods(n.Name, member.Name)
	var classMethods []*ast.FuncDecl
	if cls, ok := c.Classes[n.Name]; ok {
		classMethods = c.classMethods(cls, member.Name)
	}
	candidates := append(append([]*ast.FuncDecl{}, implMethods...), classMethods...)
	if len(candidates) == 0 {
		if c.strict {
			c.errorf("TYP002", call.Span(), "'%s' has no method '%s'", n.Name, member.Name)
		}
		return nil
	}
	winner, rejectedMM, ambiguous := resolveOverload(candidates, args, c.InMM(), len(implMethods))
	if ambiguous {
		if c.strict {
			c.errorf("TYP004", call.Span(), "ambiguous call to method '%s' on '%s'", member.Name, n.Name)
		}
		return nil
	}
	if winner == nil {
		if c.strict {
			if rejectedMM {
				c.errorf("TYP005", call.Span(), "'%s' is manual-MM-only; call it inside '@emp mm off'", member.Name)
			} else {
				c.errorf("TYP003", call.Span(), "no matching overload for method '%s' on '%s'", member.Name, n.Name)
			}
		}
		return nil
	}
	if len(implMethods)+len(classMethods) > 1 {
		call.ResolvedSymbol = mangledSymbol(n.Name+"_"+member.Name, winner)
	}
	return winner.ReturnType
}

// specializeWrapperCall implements spec.md §4.2's "(*auto[], auto)"
// wrapper rule: the element type of the second argument specializes
// both the callee's parameter types and, when the first argument is a
// borrow of a list-typed binding still carrying an auto element, that
// binding's element type too (achieved by mutating the shared
// *ast.ListType the env entry and the declaration both point to).
func (c *Context) specializeWrapperCall(candidates []*ast.FuncDecl, call *ast.Call, args []argInfo, env *Env) {
	if len(call.Args) != 2 {
		return
	}
	for _, fn := range candidates {
		params := fn.Params
		if fn.HasSelf {
			if len(params) == 0 {
				continue
			}
			params = params[1:]
		}
		if len(params) != 2 {
			continue
		}
		ptr, ok := params[0].Type.(*ast.PtrType)
		if !ok {
			continue
		}
		lt, ok := ptr.Elem.(*ast.ListType)
		if !ok || !ast.IsAuto(lt.Elem) || !ast.IsAuto(params[1].Type) {
			continue
		}
		if len(args) != 2 || args[1].Type == nil || ast.IsAuto(args[1].Type) {
			continue
		}
		concrete := args[1].Type
		lt.Elem = concrete
		params[1].Type = concrete

		if u, ok := call.Args[0].(*ast.Unary); ok && (u.Op == ast.UnaryRef || u.Op == ast.UnaryRefMut) {
			if id, ok := u.Operand.(*ast.Ident); ok {
				if callerT, ok := env.Lookup(id.Name); ok {
					if callerList, ok := callerT.(*ast.ListType); ok && ast.IsAuto(callerList.Elem) {
						callerList.Elem = concrete
					}
				}
			}
		}
	}
}

// intrinsicResultType returns the fixed return type of a built-in
// container intrinsic after sugar rewriting (spec.md §4.2's listed
// List/string builtins); these are compiler intrinsics, not
// user-overloadable declarations.
func intrinsicResultType(name string, baseType ast.Type) ast.Type {
	switch name {
	case "list_push", "list_reserve", "list_insert":
		return nil
	case "list_pop", "list_remove":
		if lt, ok := baseType.(*ast.ListType); ok {
			return lt.Elem
		}
		return nil
	case "list_len", "list_cap", "string_len":
		return typeI32
	case "string_cstr":
		return &ast.PtrType{Elem: &ast.NameType{Name: "u8"}}
	case "string_clone", "string_replace":
		return typeString
	case "string_parse_i32":
		return typeI32
	case "string_parse_bool", "string_starts_with", "string_ends_with", "string_contains":
		return typeBool
	}
	return nil
}
