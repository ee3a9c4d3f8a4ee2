package drop

import "github.com/emplang/empc/internal/ast"

// visitRead evaluates expr as ordinary expression evaluation: identifiers
// are read, not consumed; call arguments, tuple/list elements, and `new`
// arguments sit in move position (spec.md §4.3, shared with
// internal/checker/own/moves.go's touchRead). Member/index expressions
// decompose into a read of their base.
func (c *ctx) visitRead(expr ast.Expr) {
	switch v := expr.(type) {
	case nil:
		return
	case *ast.Ident:
		// reads don't affect state
		_ = c.lookup(v.Name)
	case *ast.Literal:
	case *ast.FString:
		for _, p := range v.Parts {
			c.visitRead(p)
		}
	case *ast.Unary:
		c.visitRead(v.Operand)
	case *ast.Binary:
		if v.Op.IsAssign() {
			c.visitAssign(v)
			return
		}
		c.visitRead(v.Left)
		c.visitRead(v.Right)
	case *ast.Call:
		c.visitRead(v.Callee)
		for _, a := range v.Args {
			c.visitMove(a)
		}
	case *ast.Group:
		c.visitRead(v.Inner)
	case *ast.Cast:
		c.visitRead(v.Value)
	case *ast.TupleExpr:
		for _, e := range v.Elems {
			c.visitMove(e)
		}
	case *ast.ListExpr:
		for _, e := range v.Elems {
			c.visitMove(e)
		}
	case *ast.Index:
		c.visitRead(v.Base)
		c.visitRead(v.Index)
	case *ast.Member:
		c.visitRead(v.Base)
	case *ast.New:
		for _, a := range v.Args {
			c.visitMove(a)
		}
	case *ast.Ternary:
		c.visitRead(v.Cond)
		c.visitRead(v.Then)
		c.visitRead(v.Else)
	case *ast.Range:
		c.visitRead(v.Lo)
		c.visitRead(v.Hi)
	}
}

// visitMove evaluates expr in a move position: a bare identifier is
// consumed; any other expression shape falls back to visitRead (its own
// sub-positions are still moves through that recursion).
func (c *ctx) visitMove(expr ast.Expr) {
	id, ok := expr.(*ast.Ident)
	if !ok {
		c.visitRead(expr)
		return
	}
	b := c.lookup(id.Name)
	if b == nil || !b.owned {
		return
	}
	switch b.state {
	case live:
		b.state = moved
	case uninit:
		b.state = moved
	case moved:
		// already moved; the ownership checker (internal/checker/own)
		// diagnoses this — this pass only needs to track state so it
		// doesn't synthesize a drop for an already-consumed binding.
	case maybeMoved:
		// stays maybeMoved
	}
}

// visitAssign handles a plain or compound `lhs = rhs` reached through
// visitRead's normal recursion — i.e. every case rewriteExprStmt didn't
// already special-case as an owned-live-LHS rewrite (compound assigns,
// non-identifier LHS, or a LHS that isn't currently Live). The rhs sits
// in move position for a plain `=`; the lhs, when a tracked identifier,
// becomes Live again once the new value lands.
func (c *ctx) visitAssign(b *ast.Binary) {
	if b.Op.IsCompoundAssign() {
		c.visitRead(b.Left)
		c.visitRead(b.Right)
		return
	}
	c.visitMove(b.Right)
	switch lhs := b.Left.(type) {
	case *ast.Ident:
		if bind := c.lookup(lhs.Name); bind != nil {
			bind.state = live
		}
	default:
		c.visitRead(b.Left)
	}
}
