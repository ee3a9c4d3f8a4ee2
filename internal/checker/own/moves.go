package own

import (
	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
)

// touchRead evaluates expr as it is actually used during normal
// expression evaluation: identifiers are read (checked against their
// current state but not consumed), while call arguments, tuple/list
// element constructions, and `new` arguments sit in move position
// (spec.md §4.3: "argument positions, RHS of =, and return values are
// moves for owned types"). Member/index expressions decompose into a
// read of their base.
func (t *tracker) touchRead(expr ast.Expr) {
	switch v := expr.(type) {
	case nil:
		return
	case *ast.Ident:
		t.readIdent(v)
	case *ast.Literal:
		// no bindings involved
	case *ast.FString:
		for _, p := range v.Parts {
			t.touchRead(p)
		}
	case *ast.Unary:
		t.touchRead(v.Operand)
	case *ast.Binary:
		if v.Op.IsAssign() {
			t.handleAssign(v)
			return
		}
		t.touchRead(v.Left)
		t.touchRead(v.Right)
	case *ast.Call:
		t.touchRead(v.Callee)
		for _, a := range v.Args {
			t.touchMove(a)
		}
	case *ast.Group:
		t.touchRead(v.Inner)
	case *ast.Cast:
		t.touchRead(v.Value)
	case *ast.TupleExpr:
		for _, e := range v.Elems {
			t.touchMove(e)
		}
	case *ast.ListExpr:
		for _, e := range v.Elems {
			t.touchMove(e)
		}
	case *ast.Index:
		t.touchRead(v.Base)
		t.touchRead(v.Index)
	case *ast.Member:
		t.touchRead(v.Base)
	case *ast.New:
		for _, a := range v.Args {
			t.touchMove(a)
		}
	case *ast.Ternary:
		t.touchRead(v.Cond)
		t.touchRead(v.Then)
		t.touchRead(v.Else)
	case *ast.Range:
		t.touchRead(v.Lo)
		t.touchRead(v.Hi)
	}
}

// touchMove evaluates expr in a move position: a bare identifier names
// the binding being moved; any other expression shape is evaluated via
// touchRead (its own sub-positions, e.g. call arguments, are still
// moves by that recursion).
func (t *tracker) touchMove(expr ast.Expr) {
	if id, ok := expr.(*ast.Ident); ok {
		t.moveIdent(id)
		return
	}
	t.touchRead(expr)
}

func (t *tracker) readIdent(id *ast.Ident) {
	s, ok := t.states[id.Name]
	if !ok {
		return
	}
	switch s {
	case moved:
		t.diags.Addf(diag.PhaseOwn, "OWN001", id.Span(), "use of '%s' after it was moved", id.Name)
	case maybeMoved:
		t.diags.Addf(diag.PhaseOwn, "OWN001", id.Span(), "'%s' may have been moved on some paths", id.Name)
	case uninit:
		t.diags.Addf(diag.PhaseOwn, "OWN001", id.Span(), "use of uninitialized binding '%s'", id.Name)
	}
}

func (t *tracker) moveIdent(id *ast.Ident) {
	s, ok := t.states[id.Name]
	if !ok {
		return
	}
	switch s {
	case moved, maybeMoved:
		t.diags.Addf(diag.PhaseOwn, "OWN002", id.Span(), "'%s' is moved more than once", id.Name)
	case uninit:
		t.diags.Addf(diag.PhaseOwn, "OWN001", id.Span(), "use of uninitialized binding '%s'", id.Name)
	}
	if t.owned[id.Name] {
		t.states[id.Name] = moved
	}
}

// handleAssign processes `lhs = rhs` / compound assignment. rhs sits in
// move position (for plain `=`); a compound assign only applies to
// copy-like operands (spec.md §4.2 binop rules) so its rhs is a read.
// The lhs, when a bare identifier, is overwritten rather than read —
// any now-live owned value it previously held is the drop inserter's
// concern (spec.md §4.5), not this pass's.
func (t *tracker) handleAssign(b *ast.Binary) {
	if b.Op.IsCompoundAssign() {
		t.touchRead(b.Left)
		t.touchRead(b.Right)
		return
	}
	t.touchMove(b.Right)
	switch lhs := b.Left.(type) {
	case *ast.Ident:
		if _, ok := t.states[lhs.Name]; ok {
			t.states[lhs.Name] = live
		}
	default:
		t.touchRead(b.Left)
	}
}
