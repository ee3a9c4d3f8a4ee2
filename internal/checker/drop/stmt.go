package drop

import (
	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
)

// rewriteBlockBody rewrites b's statements in place, using the caller's
// already-pushed scope; on a non-terminating path it appends scope-exit
// drops (spec.md §4.5 "Scope exit") before returning.
func (c *ctx) rewriteBlockBody(b *ast.Block) bool {
	var out []ast.Stmt
	terminated := false
	for _, s := range b.Stmts {
		ns, term := c.rewriteStmt(s)
		out = append(out, ns)
		if term {
			terminated = true
			break
		}
	}
	if !terminated {
		out = append(out, c.scopeEndDrops(c.scopeMark(), b.Span())...)
	}
	b.Stmts = out
	return terminated
}

// rewriteBlock pushes a fresh scope around b (for a nested `{ }` that
// isn't a function body, which already owns its own scope).
func (c *ctx) rewriteBlock(b *ast.Block) bool {
	c.pushScope()
	term := c.rewriteBlockBody(b)
	c.popScope()
	return term
}

func (c *ctx) rewriteStmt(s ast.Stmt) (ast.Stmt, bool) {
	switch v := s.(type) {
	case *ast.VarDecl:
		c.rewriteVarDecl(v)
		return v, false
	case *ast.Drop:
		c.rewriteDrop(v)
		return v, false
	case *ast.Defer:
		c.visitRead(v.Call)
		return v, false
	case *ast.Return:
		return c.rewriteReturn(v), true
	case *ast.ExprStmt:
		return c.rewriteExprStmt(v), false
	case *ast.Block:
		term := c.rewriteBlock(v)
		return v, term
	case *ast.If:
		return c.rewriteIf(v)
	case *ast.While:
		return c.rewriteWhile(v), false
	case *ast.For:
		return c.rewriteFor(v), false
	case *ast.Match:
		return c.rewriteMatch(v)
	case *ast.Break:
		return c.rewriteJump(v)
	case *ast.Continue:
		return c.rewriteJump(v)
	case *ast.EmpOff, *ast.MMOff, *ast.Tag:
		// spec.md §4.5: bodies of @emp off / @emp mm off are skipped.
		return s, false
	}
	return s, false
}

func (c *ctx) rewriteVarDecl(v *ast.VarDecl) {
	if v.Init != nil {
		c.visitMove(v.Init)
	}
	if len(v.Destructure) > 0 {
		for _, d := range v.Destructure {
			typ := d.Type
			if typ == nil {
				typ = &ast.Auto{Sp: v.Span()}
			}
			c.push(d.Name, isOwned(typ, c.classNames), live)
		}
		return
	}
	typ := v.ResolvedType
	if typ == nil {
		typ = v.Declared
	}
	st := uninit
	if v.Init != nil {
		st = live
	}
	c.push(v.Name, isOwned(typ, c.classNames), st)
}

// rewriteDrop updates tracked state for an explicit `drop name;` already
// present in source. Double-drop / drop-of-moved misuse is diagnosed by
// internal/checker/own (OWN003/OWN004); this pass only needs to keep its
// own bookkeeping consistent so it doesn't synthesize a second drop.
func (c *ctx) rewriteDrop(d *ast.Drop) {
	b := c.lookup(d.Name)
	if b == nil || !b.owned {
		return
	}
	if b.state == live {
		b.state = uninit
	}
}

// rewriteReturn implements spec.md §4.5 "Return": wrap the return with a
// block that first drops every currently-live owned binding (not just
// the current scope), then performs the original return. The return
// value's own move happens first, so a returned binding isn't dropped
// out from under itself.
func (c *ctx) rewriteReturn(v *ast.Return) ast.Stmt {
	if v.Value != nil {
		c.visitMove(v.Value)
	}
	drops := c.returnDrops(v.Span())
	if len(drops) == 0 {
		return v
	}
	return ast.NewBlock(v.Span(), append(drops, v))
}

// rewriteExprStmt detects an assignment to a live owned binding and
// applies spec.md §4.5's rewrite; anything else is visited as a normal
// expression statement (visitRead dispatches assignment sub-expressions
// to visitAssign internally).
func (c *ctx) rewriteExprStmt(v *ast.ExprStmt) ast.Stmt {
	if b, ok := v.Value.(*ast.Binary); ok && b.Op == ast.BinAssign {
		if lhs, ok := b.Left.(*ast.Ident); ok {
			if bind := c.lookup(lhs.Name); bind != nil && bind.owned && bind.state == live {
				return c.rewriteOwnedAssign(v, b, lhs, bind)
			}
		}
	}
	c.visitRead(v.Value)
	return v
}

// rewriteOwnedAssign rewrites `lhs = rhs;` into
// `{ let tmp = rhs; drop lhs; lhs = tmp; }` so the old value is destroyed
// before the new one is installed, while still evaluating rhs first
// (spec.md §4.5 "preserving RHS-before-LHS evaluation order").
func (c *ctx) rewriteOwnedAssign(orig *ast.ExprStmt, b *ast.Binary, lhs *ast.Ident, bind *bindEntry) ast.Stmt {
	sp := orig.Span()
	rhs := b.Right
	c.visitMove(rhs)

	tmpName := c.tmpName()
	tmpDecl := ast.NewAutoVarDecl(sp, tmpName, rhs)
	dropOld := ast.NewDrop(sp, lhs.Name)
	b.Right = ast.NewIdent(sp, tmpName)
	bind.state = live

	return ast.NewBlock(sp, []ast.Stmt{tmpDecl, dropOld, ast.NewExprStmt(sp, b)})
}

func (c *ctx) rewriteIf(v *ast.If) (ast.Stmt, bool) {
	c.visitRead(v.Cond)
	prefix := len(c.stack)
	entry := c.snapshotStates(prefix)

	thenTerm := c.rewriteBlock(v.Then)
	thenStates := c.snapshotStates(prefix)
	c.restoreStates(entry)

	elseStates := entry
	elseTerm := false
	if v.Else != nil {
		var ns ast.Stmt
		ns, elseTerm = c.rewriteStmt(v.Else)
		v.Else = ns
		elseStates = c.snapshotStates(prefix)
	}

	c.mergeStates(prefix, thenStates, elseStates)
	terminated := thenTerm && v.Else != nil && elseTerm
	return v, terminated
}

func (c *ctx) rewriteWhile(v *ast.While) ast.Stmt {
	c.visitRead(v.Cond)
	prefix := len(c.stack)
	entry := c.snapshotStates(prefix)

	c.pushLoop()
	c.rewriteBlock(v.Body)
	c.popLoop()

	body := c.snapshotStates(prefix)
	c.mergeStates(prefix, entry, body)
	return v
}

func (c *ctx) rewriteFor(v *ast.For) ast.Stmt {
	c.pushScope()
	if v.Init != nil {
		ns, _ := c.rewriteStmt(v.Init)
		v.Init = ns
	}
	if v.Cond != nil {
		c.visitRead(v.Cond)
	}
	prefix := len(c.stack)
	entry := c.snapshotStates(prefix)

	c.pushLoop()
	c.rewriteBlock(v.Body)
	if v.Post != nil {
		ns, _ := c.rewriteStmt(v.Post)
		v.Post = ns
	}
	c.popLoop()

	body := c.snapshotStates(prefix)
	c.mergeStates(prefix, entry, body)
	c.popScope()
	return v
}

func (c *ctx) rewriteMatch(v *ast.Match) (ast.Stmt, bool) {
	c.visitRead(v.Scrutinee)
	prefix := len(c.stack)
	entry := c.snapshotStates(prefix)

	allTerm := len(v.Arms) > 0
	var merged []state
	for i := range v.Arms {
		arm := &v.Arms[i]
		c.restoreStates(entry)
		term := c.rewriteBlock(arm.Body)
		if !term {
			allTerm = false
		}
		armStates := c.snapshotStates(prefix)
		if merged == nil {
			merged = armStates
		} else {
			merged = mergeStateSlices(merged, armStates)
		}
	}
	if merged == nil {
		merged = entry
	}
	c.restoreStates(merged)
	return v, allTerm
}

// rewriteJump handles break/continue: emit drops for every owned binding
// introduced since the enclosing loop's entry, then the jump itself
// (spec.md §4.5 "Break/continue"). Outside a loop this is DRP001.
func (c *ctx) rewriteJump(s ast.Stmt) (ast.Stmt, bool) {
	at := s.Span()
	if !c.inLoop() {
		c.diags.Addf(diag.PhaseDrop, "DRP001", at, "break/continue used outside of a loop")
		return s, true
	}
	drops := c.jumpDrops(at)
	if len(drops) == 0 {
		return s, true
	}
	return ast.NewBlock(at, append(drops, s)), true
}

// snapshotStates captures the current state of c.stack[:n] — used around
// branching control flow, whose nested blocks always return the stack to
// the length it had on entry (their own bindings are scope-local).
func (c *ctx) snapshotStates(n int) []state {
	out := make([]state, n)
	for i := 0; i < n; i++ {
		out[i] = c.stack[i].state
	}
	return out
}

func (c *ctx) restoreStates(snap []state) {
	for i, s := range snap {
		c.stack[i].state = s
	}
}

func mergeState(a, b state) state {
	if a == b {
		return a
	}
	return maybeMoved
}

func mergeStateSlices(a, b []state) []state {
	out := make([]state, len(a))
	for i := range a {
		out[i] = mergeState(a[i], b[i])
	}
	return out
}

func (c *ctx) mergeStates(n int, a, b []state) {
	c.restoreStates(mergeStateSlices(a, b))
}
