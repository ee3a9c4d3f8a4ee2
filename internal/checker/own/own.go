// Package own implements the ownership checker (spec.md §4.3): a
// per-binding Uninit/Live/Moved/MaybeMoved state machine that tracks
// moves, double moves, double drops, and possibly-moved drops across
// straight-line code and if/while/for/match control flow.
package own

import (
	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
)

type state int

const (
	uninit state = iota
	live
	moved
	maybeMoved
)

// Check walks every function and method body in prog, diagnosing
// ownership violations. prog is assumed to already carry resolved types
// from the type checker (internal/checker/types).
func Check(prog *ast.Program) *diag.List {
	diags := &diag.List{}
	classNames := ClassNames(prog)
	for _, it := range prog.Items {
		switch v := it.(type) {
		case *ast.FuncDecl:
			checkFunc(diags, v, classNames)
		case *ast.ClassDecl:
			for _, m := range v.Methods {
				checkFunc(diags, m, classNames)
			}
		case *ast.ImplDecl:
			for _, m := range v.Methods {
				checkFunc(diags, m, classNames)
			}
		}
	}
	return diags
}

type tracker struct {
	diags      *diag.List
	states     map[string]state
	owned      map[string]bool
	classNames map[string]bool
	loopDepth  int
}

func checkFunc(diags *diag.List, fn *ast.FuncDecl, classNames map[string]bool) {
	if fn.Body == nil {
		return
	}
	t := &tracker{diags: diags, states: map[string]state{}, owned: map[string]bool{}, classNames: classNames}
	params := fn.Params
	if fn.HasSelf && len(params) > 0 {
		// self is always a borrow of the caller's own binding, never an
		// owning handle the method is responsible for dropping.
		t.states["self"] = live
		t.owned["self"] = false
		params = params[1:]
	}
	for _, p := range params {
		t.bind(p.Name, p.Type, true)
	}
	t.walkBlock(fn.Body)
}

// bind introduces name as Live (params and always-initialized bindings
// arrive already initialized). isOwnedType distinguishes a `*ClassName`
// owning handle (as returned by `new`) from an ordinary raw pointer,
// which ast.IsCopyLike alone cannot do (see its doc comment).
func (t *tracker) bind(name string, typ ast.Type, initialized bool) {
	t.owned[name] = IsOwnedType(typ, t.classNames)
	if initialized {
		t.states[name] = live
	} else {
		t.states[name] = uninit
	}
}

// ClassNames scans prog for class declarations, returning the set of
// names that can appear as the Elem of an owning `*ClassName` handle.
// Shared with internal/checker/drop so both passes agree on which
// pointers are owning.
func ClassNames(prog *ast.Program) map[string]bool {
	names := map[string]bool{}
	for _, it := range prog.Items {
		if cd, ok := it.(*ast.ClassDecl); ok {
			names[cd.Name] = true
		}
	}
	return names
}

// IsOwnedType distinguishes a `*ClassName` owning handle (as returned by
// `new`) from an ordinary raw pointer, which ast.IsCopyLike alone cannot
// do (see its doc comment).
func IsOwnedType(typ ast.Type, classNames map[string]bool) bool {
	if p, ok := typ.(*ast.PtrType); ok {
		if n, ok := p.Elem.(*ast.NameType); ok && classNames[n.Name] {
			return true
		}
		return false
	}
	return !ast.IsCopyLike(typ)
}

func (t *tracker) clone() map[string]state {
	c := make(map[string]state, len(t.states))
	for k, v := range t.states {
		c[k] = v
	}
	return c
}

func (t *tracker) restore(snap map[string]state) {
	t.states = snap
}

// merge implements spec.md §3's path-merge rule:
// (Live,Live)->Live, (X,X)->X, otherwise MaybeMoved.
func merge(branches []map[string]state) map[string]state {
	keys := map[string]bool{}
	for _, b := range branches {
		for k := range b {
			keys[k] = true
		}
	}
	out := map[string]state{}
	for k := range keys {
		first := true
		var acc state
		for _, b := range branches {
			s, ok := b[k]
			if !ok {
				continue
			}
			if first {
				acc = s
				first = false
			} else if acc != s {
				acc = maybeMoved
			}
		}
		out[k] = acc
	}
	return out
}

func (t *tracker) walkBlock(b *ast.Block) {
	introduced := map[string]bool{}
	for _, s := range b.Stmts {
		t.walkStmt(s, introduced)
	}
	for name := range introduced {
		delete(t.states, name)
		delete(t.owned, name)
	}
}

func (t *tracker) walkStmt(s ast.Stmt, introduced map[string]bool) {
	switch v := s.(type) {
	case *ast.VarDecl:
		t.walkVarDecl(v, introduced)
	case *ast.Drop:
		t.walkDrop(v)
	case *ast.Defer:
		t.touchRead(v.Call)
	case *ast.Return:
		if v.Value != nil {
			t.touchMove(v.Value)
		}
	case *ast.ExprStmt:
		t.touchRead(v.Value)
	case *ast.Block:
		t.walkBlock(v)
	case *ast.If:
		t.touchRead(v.Cond)
		snap := t.clone()
		t.walkBlock(v.Then)
		thenOut := t.states
		t.restore(snap)
		elseOut := t.clone()
		if v.Else != nil {
			t.walkStmt(v.Else, map[string]bool{})
			elseOut = t.states
		}
		t.states = merge([]map[string]state{thenOut, elseOut})
	case *ast.While:
		t.touchRead(v.Cond)
		entry := t.clone()
		t.loopDepth++
		t.walkBlock(v.Body)
		t.loopDepth--
		t.states = merge([]map[string]state{t.states, entry})
	case *ast.For:
		// Init's binding is scoped to the loop, not the enclosing block,
		// so it's tracked in its own introduced set and deleted on exit.
		forIntroduced := map[string]bool{}
		if v.Init != nil {
			t.walkStmt(v.Init, forIntroduced)
		}
		if v.Cond != nil {
			t.touchRead(v.Cond)
		}
		entry := t.clone()
		t.loopDepth++
		t.walkBlock(v.Body)
		if v.Post != nil {
			t.walkStmt(v.Post, map[string]bool{})
		}
		t.loopDepth--
		t.states = merge([]map[string]state{t.states, entry})
		for name := range forIntroduced {
			delete(t.states, name)
			delete(t.owned, name)
		}
	case *ast.Match:
		t.touchRead(v.Scrutinee)
		var arms []map[string]state
		for _, arm := range v.Arms {
			snap := t.clone()
			t.walkBlock(arm.Body)
			arms = append(arms, t.states)
			t.restore(snap)
		}
		if len(arms) > 0 {
			t.states = merge(arms)
		}
	case *ast.EmpOff:
		t.walkBlock(v.Body)
	case *ast.MMOff:
		t.walkBlock(v.Body)
	case *ast.Break, *ast.Continue, *ast.Tag:
		// no ownership effect
	}
}

func (t *tracker) walkVarDecl(v *ast.VarDecl, introduced map[string]bool) {
	if v.Init != nil {
		t.touchMove(v.Init)
	}
	if len(v.Destructure) > 0 {
		for _, d := range v.Destructure {
			typ := d.Type
			if typ == nil {
				typ = &ast.Auto{}
			}
			t.bind(d.Name, typ, true)
			introduced[d.Name] = true
		}
		return
	}
	typ := v.ResolvedType
	if typ == nil {
		typ = v.Declared
	}
	t.bind(v.Name, typ, v.Init != nil)
	introduced[v.Name] = true
}

func (t *tracker) walkDrop(d *ast.Drop) {
	s, ok := t.states[d.Name]
	if !ok {
		return
	}
	switch s {
	case uninit, moved:
		t.diags.Addf(diag.PhaseOwn, "OWN003", d.Span(), "double drop of '%s'", d.Name)
	case maybeMoved:
		t.diags.Addf(diag.PhaseOwn, "OWN004", d.Span(), "'%s' may already be moved at this drop", d.Name)
	case live:
		t.states[d.Name] = uninit
	}
}
