package types

import (
	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
)

const maxLenientIterations = 8

// Check runs the type checker and overload resolver over prog
// (spec.md §4.2): a lenient fixed-point pass that specializes `auto`
// from call sites, followed by one strict pass that emits diagnostics.
// prog is mutated in place (resolved types, call annotations).
func Check(prog *ast.Program) *diag.List {
	diags := &diag.List{}
	ctx := NewContext(prog, diags)

	ctx.strict = false
	for i := 0; i < maxLenientIterations; i++ {
		before := autoFingerprint(prog)
		ctx.walkProgram(prog)
		if autoFingerprint(prog) == before {
			break
		}
	}

	ctx.strict = true
	ctx.checkTraitImpls()
	ctx.walkProgram(prog)
	return diags
}

// autoFingerprint is a cheap convergence signal for the lenient fixed
// point: the count of remaining unresolved `auto` parameter/return
// slots across every function. It only needs to detect "no more
// progress", not uniquely identify state.
func autoFingerprint(prog *ast.Program) int {
	n := 0
	var count func(t ast.Type)
	count = func(t ast.Type) {
		switch v := t.(type) {
		case *ast.Auto:
			n++
		case *ast.PtrType:
			count(v.Elem)
		case *ast.ListType:
			count(v.Elem)
		case *ast.ArrayType:
			count(v.Elem)
		case *ast.TupleType:
			for _, f := range v.Fields {
				count(f.Type)
			}
		}
	}
	for _, it := range prog.Items {
		switch v := it.(type) {
		case *ast.FuncDecl:
			for _, p := range v.Params {
				count(p.Type)
			}
			count(v.ReturnType)
		case *ast.ClassDecl:
			for _, m := range v.Methods {
				for _, p := range m.Params {
					count(p.Type)
				}
				count(m.ReturnType)
			}
		case *ast.ImplDecl:
			for _, m := range v.Methods {
				for _, p := range m.Params {
					count(p.Type)
				}
				count(m.ReturnType)
			}
		}
	}
	return n
}

func (c *Context) walkProgram(prog *ast.Program) {
	for _, it := range prog.Items {
		switch v := it.(type) {
		case *ast.FuncDecl:
			c.walkFunc(v)
		case *ast.ClassDecl:
			for _, m := range v.Methods {
				c.walkMethod(m, v.Name)
			}
		case *ast.ImplDecl:
			for _, m := range v.Methods {
				c.walkMethod(m, v.TypeName)
			}
		}
	}
}

func (c *Context) walkFunc(fn *ast.FuncDecl) {
	if fn.Body == nil {
		return
	}
	env := NewEnv()
	for _, p := range fn.Params {
		env.Bind(p.Name, p.Type)
	}
	c.walkBlockReturning(env, fn.Body, fn)
}

func (c *Context) walkMethod(fn *ast.FuncDecl, selfTypeName string) {
	if fn.Body == nil {
		return
	}
	env := NewEnv()
	if fn.HasSelf {
		env.Bind("self", &ast.PtrType{Elem: &ast.NameType{Name: selfTypeName}})
	}
	params := fn.Params
	if fn.HasSelf && len(params) > 0 {
		params = params[1:]
	}
	for _, p := range params {
		env.Bind(p.Name, p.Type)
	}
	c.walkBlockReturning(env, fn.Body, fn)
}

// walkBlockReturning walks fn's body, specializing fn.ReturnType from
// `return` expressions when it is still Auto.
func (c *Context) walkBlockReturning(env *Env, body *ast.Block, fn *ast.FuncDecl) {
	c.walkBlock(env, body, fn)
}

func (c *Context) walkBlock(env *Env, b *ast.Block, fn *ast.FuncDecl) {
	mark := env.Snapshot()
	defer env.Restore(mark)
	for _, s := range b.Stmts {
		c.walkStmt(env, s, fn)
	}
}

func (c *Context) walkStmt(env *Env, s ast.Stmt, fn *ast.FuncDecl) {
	switch v := s.(type) {
	case *ast.VarDecl:
		c.walkVarDecl(env, v)
	case *ast.Drop:
		// Ownership concerns belong to internal/checker/own; the type
		// checker only needs the binding to exist.
	case *ast.Defer:
		c.inferExpr(env, v.Call)
	case *ast.Return:
		if v.Value != nil {
			t := c.inferExpr(env, v.Value)
			if ast.IsAuto(fn.ReturnType) && t != nil && !ast.IsAuto(t) {
				fn.ReturnType = t
			} else if c.strict && !ast.IsAuto(fn.ReturnType) && t != nil {
				isLit, kind := isLiteralExpr(v.Value)
				if _, ok := coerceCost(t, fn.ReturnType, isLit, kind); !ok {
					c.errorf("TYP001", v.Span(), "return type mismatch: expected %s, got %s", ast.TypeString(fn.ReturnType), ast.TypeString(t))
				}
			}
		}
	case *ast.ExprStmt:
		c.inferExpr(env, v.Value)
	case *ast.Block:
		c.walkBlock(env, v, fn)
	case *ast.If:
		c.inferExpr(env, v.Cond)
		c.walkBlock(env, v.Then, fn)
		if v.Else != nil {
			c.walkStmt(env, v.Else, fn)
		}
	case *ast.While:
		c.inferExpr(env, v.Cond)
		c.walkBlock(env, v.Body, fn)
	case *ast.For:
		mark := env.Snapshot()
		defer env.Restore(mark)
		if v.Init != nil {
			c.walkStmt(env, v.Init, fn)
		}
		if v.Cond != nil {
			c.inferExpr(env, v.Cond)
		}
		c.walkBlock(env, v.Body, fn)
		if v.Post != nil {
			c.walkStmt(env, v.Post, fn)
		}
	case *ast.Match:
		scrut := c.inferExpr(env, v.Scrutinee)
		c.checkMatchExhaustive(v, scrut, env, func(e *Env, b *ast.Block) { c.walkBlock(e, b, fn) })
	case *ast.EmpOff:
		c.walkBlock(env, v.Body, fn)
	case *ast.MMOff:
		c.enterMM()
		c.walkBlock(env, v.Body, fn)
		c.exitMM()
	case *ast.Break, *ast.Continue, *ast.Tag:
		// no type information to compute
	}
}

func (c *Context) walkVarDecl(env *Env, v *ast.VarDecl) {
	var initType ast.Type
	if v.Init != nil {
		initType = c.inferExpr(env, v.Init)
	}
	if len(v.Destructure) > 0 {
		tup, isTuple := initType.(*ast.TupleType)
		for i, d := range v.Destructure {
			t := d.Type
			if t == nil || ast.IsAuto(t) {
				if isTuple && i < len(tup.Fields) {
					t = tup.Fields[i].Type
				} else {
					t = &ast.Auto{}
				}
			}
			env.Bind(d.Name, t)
		}
		return
	}

	declared := v.Declared
	if declared == nil || ast.IsAuto(declared) {
		if initType != nil && !ast.IsAuto(initType) {
			v.ResolvedType = initType
			env.Bind(v.Name, initType)
			return
		}
		if c.strict {
			c.errorf("TYP006", v.Span(), "cannot infer type of '%s'", v.Name)
		}
		env.Bind(v.Name, &ast.Auto{})
		return
	}
	v.ResolvedType = declared
	env.Bind(v.Name, declared)
	if c.strict && initType != nil && !ast.IsAuto(initType) {
		isLit, kind := isLiteralExpr(v.Init)
		if _, ok := coerceCost(initType, declared, isLit, kind); !ok {
			c.errorf("TYP001", v.Span(), "cannot initialize '%s' of type %s with %s", v.Name, ast.TypeString(declared), ast.TypeString(initType))
		}
	}
}

func isLiteralExpr(e ast.Expr) (bool, ast.LiteralKind) {
	if lit, ok := e.(*ast.Literal); ok {
		return true, lit.Kind
	}
	return false, 0
}
