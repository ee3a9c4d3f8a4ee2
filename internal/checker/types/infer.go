package types

import "github.com/emplang/empc/internal/ast"

var typeString = &ast.NameType{Name: "string"}
var typeChar = &ast.NameType{Name: "char"}

// inferExpr infers expr's type, annotating expr.SetResolvedType and
// recording strict-pass diagnostics. It returns nil only when no type
// could be determined at all (an already-diagnosed error or, during the
// lenient pass, a still-unresolved auto).
func (c *Context) inferExpr(env *Env, expr ast.Expr) ast.Type {
	if expr == nil {
		return nil
	}
	t := c.inferExprInner(env, expr)
	if t != nil {
		expr.SetResolvedType(t)
	}
	return t
}

func (c *Context) inferExprInner(env *Env, expr ast.Expr) ast.Type {
	switch v := expr.(type) {
	case *ast.Literal:
		switch v.Kind {
		case ast.IntLit:
			return typeI32
		case ast.FloatLit:
			return typeF64
		case ast.CharLit:
			return typeChar
		case ast.StringLit:
			return typeString
		}
		return nil

	case *ast.FString:
		for _, p := range v.Parts {
			c.inferExpr(env, p)
		}
		return typeString

	case *ast.Ident:
		if t, ok := env.Lookup(v.Name); ok {
			return t
		}
		if cd, ok := c.Consts[v.Name]; ok {
			return cd.Type
		}
		c.errorf("TYP002", v.Span(), "unknown identifier '%s'", v.Name)
		return nil

	case *ast.Unary:
		return c.inferUnary(env, v)

	case *ast.Binary:
		return c.inferBinary(env, v)

	case *ast.Call:
		return c.inferCall(env, v)

	case *ast.Group:
		return c.inferExpr(env, v.Inner)

	case *ast.Cast:
		return c.inferCast(env, v)

	case *ast.TupleExpr:
		fields := make([]ast.TupleField, len(v.Elems))
		for i, e := range v.Elems {
			fields[i] = ast.TupleField{Type: c.inferExpr(env, e)}
		}
		return &ast.TupleType{Fields: fields, Sp: v.Span()}

	case *ast.ListExpr:
		var elem ast.Type = &ast.Auto{Sp: v.Span()}
		for i, e := range v.Elems {
			t := c.inferExpr(env, e)
			if i == 0 && t != nil {
				elem = t
			} else if c.strict && t != nil && !ast.TypesEqual(t, elem) {
				isLit, kind := isLiteralExpr(e)
				if _, ok := coerceCost(t, elem, isLit, kind); !ok {
					c.errorf("TYP001", e.Span(), "list element type %s does not match earlier element type %s", ast.TypeString(t), ast.TypeString(elem))
				}
			}
		}
		return &ast.ListType{Elem: elem, Sp: v.Span()}

	case *ast.Index:
		return c.inferIndex(env, v)

	case *ast.Member:
		return c.inferMember(env, v)

	case *ast.New:
		return c.inferNew(env, v)

	case *ast.Ternary:
		c.inferExpr(env, v.Cond)
		thenT := c.inferExpr(env, v.Then)
		elseT := c.inferExpr(env, v.Else)
		if c.strict && thenT != nil && elseT != nil && !ast.TypesEqual(thenT, elseT) {
			isLit, kind := isLiteralExpr(v.Else)
			if _, ok := coerceCost(elseT, thenT, isLit, kind); !ok {
				c.errorf("TYP001", v.Span(), "ternary branches have mismatched types %s and %s", ast.TypeString(thenT), ast.TypeString(elseT))
			}
		}
		if thenT != nil {
			return thenT
		}
		return elseT

	case *ast.Range:
		c.inferExpr(env, v.Lo)
		c.inferExpr(env, v.Hi)
		return typeI32
	}
	return nil
}

func (c *Context) inferUnary(env *Env, u *ast.Unary) ast.Type {
	t := c.inferExpr(env, u.Operand)
	if t == nil {
		return nil
	}
	switch u.Op {
	case ast.UnaryNeg:
		if c.strict && !isNumeric(t) {
			c.errorf("TYP001", u.Span(), "unary '-' requires a numeric operand, got %s", ast.TypeString(t))
		}
		return t
	case ast.UnaryNot:
		if c.strict && !isBoolT(t) {
			c.errorf("TYP001", u.Span(), "unary '!' requires a bool operand, got %s", ast.TypeString(t))
		}
		return typeBool
	case ast.UnaryRef, ast.UnaryRefMut:
		return &ast.PtrType{Elem: t, Sp: u.Span()}
	case ast.UnaryDeref:
		if p, ok := t.(*ast.PtrType); ok {
			return p.Elem
		}
		if c.strict {
			c.errorf("TYP001", u.Span(), "cannot dereference non-pointer type %s", ast.TypeString(t))
		}
		return nil
	}
	return nil
}

func (c *Context) inferBinary(env *Env, b *ast.Binary) ast.Type {
	lt := c.inferExpr(env, b.Left)
	rt := c.inferExpr(env, b.Right)

	if b.Op.IsAssign() {
		if c.strict && !assignLHSOK(b.Left) {
			c.errorf("TYP001", b.Span(), "invalid assignment target")
		}
		if lt == nil {
			return rt
		}
		if b.Op.IsCompoundAssign() {
			if c.strict && !compoundAssignOK(b.Op, lt, c.InMM()) {
				c.errorf("TYP001", b.Span(), "operator not valid for assignment target of type %s", ast.TypeString(lt))
			}
		} else if c.strict && rt != nil {
			isLit, kind := isLiteralExpr(b.Right)
			if _, ok := coerceCost(rt, lt, isLit, kind); !ok {
				c.errorf("TYP001", b.Span(), "cannot assign %s to %s", ast.TypeString(rt), ast.TypeString(lt))
			}
		}
		return lt
	}

	if lt == nil || rt == nil {
		return nil
	}
	result, ok := binaryResultType(b.Op, lt, rt, c.InMM())
	if !ok {
		if c.strict {
			c.errorf("TYP001", b.Span(), "operator not defined for %s and %s", ast.TypeString(lt), ast.TypeString(rt))
		}
		return nil
	}
	return result
}

func (c *Context) inferCast(env *Env, cst *ast.Cast) ast.Type {
	vt := c.inferExpr(env, cst.Value)
	if dyn, ok := cst.To.(*ast.DynType); ok {
		ptr, isPtr := vt.(*ast.PtrType)
		concreteName := ""
		if isPtr {
			if n, ok := ptr.Elem.(*ast.NameType); ok {
				concreteName = n.Name
			}
		}
		if concreteName == "" || !c.dynCastOK(concreteName, dyn.Base) {
			if c.strict {
				c.errorf("TYP007", cst.Span(), "invalid dyn cast to 'dyn %s'", dyn.Base)
			}
		} else {
			cst.DynConcreteName = concreteName
		}
		return dyn
	}
	return cst.To
}

func (c *Context) inferIndex(env *Env, ix *ast.Index) ast.Type {
	bt := c.inferExpr(env, ix.Base)
	c.inferExpr(env, ix.Index)
	switch v := bt.(type) {
	case *ast.ListType:
		return v.Elem
	case *ast.ArrayType:
		return v.Elem
	case *ast.TupleType:
		if lit, ok := ix.Index.(*ast.Literal); ok && lit.Kind == ast.IntLit {
			if i, ok := parseSmallInt(lit.Value); ok && i >= 0 && i < len(v.Fields) {
				return v.Fields[i].Type
			}
		}
		if c.strict {
			c.errorf("TYP001", ix.Span(), "tuple index must be a constant in range")
		}
		return nil
	}
	if c.strict && bt != nil {
		c.errorf("TYP001", ix.Span(), "cannot index into type %s", ast.TypeString(bt))
	}
	return nil
}

func (c *Context) inferMember(env *Env, m *ast.Member) ast.Type {
	bt := c.inferExpr(env, m.Base)
	named := unwrapPointer(bt)
	n, ok := named.(*ast.NameType)
	if !ok {
		if c.strict && bt != nil {
			c.errorf("TYP001", m.Span(), "cannot access field '%s' on non-aggregate type %s", m.Name, ast.TypeString(bt))
		}
		return nil
	}
	if cls, ok := c.Classes[n.Name]; ok {
		for cur := cls; cur != nil; {
			for _, f := range cur.Fields {
				if f.Name == m.Name {
					return f.Type
				}
			}
			if cur.Base == "" {
				break
			}
			cur = c.Classes[cur.Base]
		}
	}
	if st, ok := c.Structs[n.Name]; ok {
		for _, f := range st.Fields {
			if f.Name == m.Name {
				return f.Type
			}
		}
	}
	if c.strict {
		c.errorf("TYP002", m.Span(), "'%s' has no field '%s'", n.Name, m.Name)
	}
	return nil
}

func (c *Context) inferNew(env *Env, n *ast.New) ast.Type {
	for _, a := range n.Args {
		c.inferExpr(env, a)
	}
	if _, ok := c.Classes[n.ClassName]; !ok && c.strict {
		c.errorf("TYP002", n.Span(), "unknown class '%s'", n.ClassName)
	}
	return &ast.PtrType{Elem: &ast.NameType{Name: n.ClassName}, Sp: n.Span()}
}

func unwrapPointer(t ast.Type) ast.Type {
	if p, ok := t.(*ast.PtrType); ok {
		return p.Elem
	}
	return t
}

func parseSmallInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	neg := false
	i := 0
	if s[0] == '-' {
		neg = true
		i = 1
	}
	n := 0
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}
