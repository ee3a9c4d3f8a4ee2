// Package borrow implements the lexical borrow checker (spec.md §4.4):
// per-binding shared/exclusive borrow counts, a delta-log scope model,
// and unsafe-boundary escape detection for `@emp off` / `@emp mm off`.
package borrow

import (
	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
)

// delta is one scope-log entry: the counters to undo for name on scope
// exit (spec.md §4.4 "Scope model").
type delta struct {
	name        string
	sharedDelta int
	mutDelta    int
}

type tracker struct {
	diags *diag.List

	shared map[string]int  // outstanding shared borrows per binding
	mut    map[string]int  // outstanding mutable borrows per binding (>0 == mut_active)
	origin map[string]bool // true if the binding's current value is a reference created inside an unsafe scope

	scopes      [][]delta
	unsafeDepth int
}

// Check walks every function and method body in prog, diagnosing borrow
// violations and unsafe-boundary escapes. A file-level `@emp mm off`
// directive disables borrow checking for the entire module (spec.md
// §4.4: "enters mm-off depth 1 for all function bodies", which never
// exits, so no violation or escape can ever be observed).
func Check(prog *ast.Program) *diag.List {
	diags := &diag.List{}
	if ast.FileHasMMOff(prog) {
		return diags
	}
	for _, it := range prog.Items {
		switch v := it.(type) {
		case *ast.FuncDecl:
			checkFunc(diags, v)
		case *ast.ClassDecl:
			for _, m := range v.Methods {
				checkFunc(diags, m)
			}
		case *ast.ImplDecl:
			for _, m := range v.Methods {
				checkFunc(diags, m)
			}
		}
	}
	return diags
}

func checkFunc(diags *diag.List, fn *ast.FuncDecl) {
	if fn.Body == nil {
		return
	}
	t := &tracker{
		diags:  diags,
		shared: map[string]int{},
		mut:    map[string]int{},
		origin: map[string]bool{},
	}
	t.pushScope()
	t.walkBlockBody(fn.Body)
	t.popScope()
}

func (t *tracker) pushScope() {
	t.scopes = append(t.scopes, nil)
}

// popScope unwinds the top scope's delta log in reverse, restoring
// counters to their pre-scope values.
func (t *tracker) popScope() {
	n := len(t.scopes)
	frame := t.scopes[n-1]
	t.scopes = t.scopes[:n-1]
	for i := len(frame) - 1; i >= 0; i-- {
		d := frame[i]
		t.shared[d.name] -= d.sharedDelta
		t.mut[d.name] -= d.mutDelta
	}
}

func (t *tracker) recordDelta(name string, sharedDelta, mutDelta int) {
	t.shared[name] += sharedDelta
	t.mut[name] += mutDelta
	n := len(t.scopes)
	t.scopes[n-1] = append(t.scopes[n-1], delta{name: name, sharedDelta: sharedDelta, mutDelta: mutDelta})
}

// walkBlockBody walks a block's statements without pushing its own
// scope (the caller already owns the enclosing scope); used for
// function bodies and call-site pseudo-scopes where the caller controls
// push/pop explicitly.
func (t *tracker) walkBlockBody(b *ast.Block) {
	for _, s := range b.Stmts {
		t.walkStmt(s)
	}
}

// walkBlock pushes a fresh scope around b, so any borrows taken inside
// it are released on exit (spec.md §4.4 scope model).
func (t *tracker) walkBlock(b *ast.Block) {
	t.pushScope()
	t.walkBlockBody(b)
	t.popScope()
}

func (t *tracker) walkStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.VarDecl:
		t.walkVarDecl(v)
	case *ast.Drop:
		// dropping releases ownership, not a borrow; nothing to check here.
	case *ast.Defer:
		t.walkExpr(v.Call)
	case *ast.Return:
		if v.Value != nil {
			t.walkExpr(v.Value)
			if t.exprUnsafeOrigin(v.Value) {
				t.diags.Addf(diag.PhaseBorrow, "BOR004", v.Span(), "borrowed reference escapes unsafe boundary via '%s'", escapeName(v.Value))
			}
		}
	case *ast.ExprStmt:
		t.walkExpr(v.Value)
	case *ast.Block:
		t.walkBlock(v)
	case *ast.If:
		t.walkExpr(v.Cond)
		t.walkBlock(v.Then)
		if v.Else != nil {
			t.walkStmt(v.Else)
		}
	case *ast.While:
		t.walkExpr(v.Cond)
		t.walkBlock(v.Body)
	case *ast.For:
		t.pushScope()
		if v.Init != nil {
			t.walkStmt(v.Init)
		}
		if v.Cond != nil {
			t.walkExpr(v.Cond)
		}
		t.walkBlock(v.Body)
		if v.Post != nil {
			t.walkStmt(v.Post)
		}
		t.popScope()
	case *ast.Match:
		t.walkExpr(v.Scrutinee)
		for _, arm := range v.Arms {
			t.walkBlock(arm.Body)
		}
	case *ast.EmpOff:
		t.walkUnsafe(v.Body, diag.PhaseEmpOff)
	case *ast.MMOff:
		t.walkUnsafe(v.Body, diag.PhaseMMOff)
	case *ast.Break, *ast.Continue, *ast.Tag:
		// no borrow effect
	}
}

// walkUnsafe walks body with borrow checks suppressed (spec.md §4.4
// "Unsafe boundaries"), then reports any outer binding still holding a
// reference tainted with this scope's origin. The diagnostic's phase
// matches the unsafe construct that was escaped (spec.md §8 Scenario E:
// `@emp off` escapes print under the `emp off:` prefix, not `borrow:`).
func (t *tracker) walkUnsafe(body *ast.Block, phase diag.Phase) {
	t.unsafeDepth++
	t.pushScope()
	t.walkBlockBody(body)
	t.popScope()
	t.unsafeDepth--

	for name, tainted := range t.origin {
		if tainted {
			t.diags.Addf(phase, "BOR004", body.Span(), "borrowed reference escapes unsafe boundary via '%s'", name)
			t.origin[name] = false
		}
	}
}

func (t *tracker) walkVarDecl(v *ast.VarDecl) {
	if v.Init != nil {
		t.walkExpr(v.Init)
	}
	if len(v.Destructure) > 0 {
		for _, d := range v.Destructure {
			t.origin[d.Name] = false
		}
		return
	}
	if v.Init != nil {
		t.origin[v.Name] = t.exprUnsafeOrigin(v.Init)
	} else {
		t.origin[v.Name] = false
	}
}

func escapeName(e ast.Expr) string {
	if name, ok := rootBinding(e); ok {
		return name
	}
	return "<expr>"
}
