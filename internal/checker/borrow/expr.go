package borrow

import (
	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
)

// rootBinding computes the root identifier of an lvalue chain: member
// and index expressions, and dereferences, reduce to their identifier
// root (spec.md §4.4 "compute the root binding of the lvalue").
func rootBinding(e ast.Expr) (string, bool) {
	for {
		switch v := e.(type) {
		case *ast.Ident:
			return v.Name, true
		case *ast.Member:
			e = v.Base
		case *ast.Index:
			e = v.Base
		case *ast.Group:
			e = v.Inner
		case *ast.Unary:
			if v.Op == ast.UnaryDeref {
				e = v.Operand
				continue
			}
			return "", false
		default:
			return "", false
		}
	}
}

// exprUnsafeOrigin reports whether evaluating expr right now yields a
// reference tainted with an unsafe origin: either a fresh `&`/`&mut`
// taken while inside an unsafe scope, or an identifier whose current
// value already carries that taint.
func (t *tracker) exprUnsafeOrigin(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.Unary:
		if v.Op == ast.UnaryRef || v.Op == ast.UnaryRefMut {
			return t.unsafeDepth > 0
		}
		return false
	case *ast.Ident:
		return t.origin[v.Name]
	case *ast.Group:
		return t.exprUnsafeOrigin(v.Inner)
	case *ast.Cast:
		return t.exprUnsafeOrigin(v.Value)
	}
	return false
}

// walkExpr visits every sub-expression, taking borrows at `&`/`&mut`
// sites, opening a pseudo-scope around each call's arguments (spec.md
// §4.4: "call-site borrows are scoped to the call"), and flagging a
// move/assignment of a still-borrowed binding (BOR003).
func (t *tracker) walkExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case nil, *ast.Literal:
		return
	case *ast.Ident:
		t.checkMoveWhileBorrowed(v)
	case *ast.FString:
		for _, p := range v.Parts {
			t.walkExpr(p)
		}
	case *ast.Unary:
		if v.Op == ast.UnaryRef || v.Op == ast.UnaryRefMut {
			t.handleBorrow(v)
			return
		}
		t.walkExpr(v.Operand)
	case *ast.Binary:
		if v.Op.IsAssign() {
			t.handleAssign(v)
			return
		}
		t.walkExpr(v.Left)
		t.walkExpr(v.Right)
	case *ast.Call:
		t.walkExpr(v.Callee)
		t.pushScope()
		for _, a := range v.Args {
			t.walkExpr(a)
		}
		t.popScope()
	case *ast.Group:
		t.walkExpr(v.Inner)
	case *ast.Cast:
		t.walkExpr(v.Value)
	case *ast.TupleExpr:
		for _, e := range v.Elems {
			t.walkExpr(e)
		}
	case *ast.ListExpr:
		for _, e := range v.Elems {
			t.walkExpr(e)
		}
	case *ast.Index:
		t.walkExpr(v.Base)
		t.walkExpr(v.Index)
	case *ast.Member:
		t.walkExpr(v.Base)
	case *ast.New:
		for _, a := range v.Args {
			t.walkExpr(a)
		}
	case *ast.Ternary:
		t.walkExpr(v.Cond)
		t.walkExpr(v.Then)
		t.walkExpr(v.Else)
	case *ast.Range:
		t.walkExpr(v.Lo)
		t.walkExpr(v.Hi)
	}
}

// handleBorrow implements spec.md §4.4 "Operations": in safe code,
// bump the root binding's counter or diagnose a conflict; in unsafe
// code the check is skipped and no counter changes, since
// ref_origin_unsafe_depth (tracked separately, see walkVarDecl /
// handleAssign) is what matters there.
func (t *tracker) handleBorrow(u *ast.Unary) {
	name, ok := rootBinding(u.Operand)
	if !ok {
		t.walkExpr(u.Operand)
		return
	}
	if t.unsafeDepth > 0 {
		return
	}
	if u.Op == ast.UnaryRefMut {
		if t.shared[name] > 0 {
			t.diags.Addf(diag.PhaseBorrow, "BOR001", u.Span(), "cannot take mutable borrow of '%s' while shared borrows are active", name)
			return
		}
		if t.mut[name] > 0 {
			t.diags.Addf(diag.PhaseBorrow, "BOR001", u.Span(), "cannot take mutable borrow of '%s' while a mutable borrow is active", name)
			return
		}
		t.recordDelta(name, 0, 1)
		return
	}
	if t.mut[name] > 0 {
		t.diags.Addf(diag.PhaseBorrow, "BOR002", u.Span(), "cannot take shared borrow of '%s' while a mutable borrow is active", name)
		return
	}
	t.recordDelta(name, 1, 0)
}

// checkMoveWhileBorrowed flags BOR003 when id names a binding with an
// outstanding borrow; the violating use is left unconsumed (no counter
// update), per spec.md §4.4 "emit a diagnostic and skip the state
// update".
func (t *tracker) checkMoveWhileBorrowed(id *ast.Ident) {
	if t.shared[id.Name] > 0 || t.mut[id.Name] > 0 {
		t.diags.Addf(diag.PhaseBorrow, "BOR003", id.Span(), "cannot move or assign '%s' while it is borrowed", id.Name)
	}
}

func (t *tracker) handleAssign(b *ast.Binary) {
	t.walkExpr(b.Right)
	if id, ok := b.Left.(*ast.Ident); ok {
		t.checkMoveWhileBorrowed(id)
		t.origin[id.Name] = t.exprUnsafeOrigin(b.Right)
		return
	}
	t.walkExpr(b.Left)
}
