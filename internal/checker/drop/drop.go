// Package drop implements the drop-insertion pass (spec.md §4.5): it
// rewrites function and method bodies in place, synthesizing `drop name`
// statements so every owned binding is destroyed exactly once on every
// path that leaves it `Live`, and flags paths where that can't be done
// safely (a `MaybeMoved` binding at a drop site).
package drop

import (
	"fmt"

	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/checker/own"
	"github.com/emplang/empc/internal/diag"
)

type state int

const (
	uninit state = iota
	live
	moved
	maybeMoved
)

// bindEntry is one live stack slot. Unlike the ownership checker's
// flat map, the drop pass needs declaration order (drops run in
// reverse introduction order) and scope/loop marks, so bindings live
// on an ordered stack mirroring original_source/emp_drop.c's EmpDropStack.
type bindEntry struct {
	name  string
	owned bool
	state state
}

type ctx struct {
	diags      *diag.List
	classNames map[string]bool

	stack      []*bindEntry
	scopeMarks []int
	loopMarks  []int

	tmpCounter int
}

// Insert rewrites every function and method body in prog. A file-level
// `@emp mm off;` directive skips the whole module (spec.md §4.5).
func Insert(prog *ast.Program) *diag.List {
	diags := &diag.List{}
	if ast.FileHasMMOff(prog) {
		return diags
	}
	classNames := own.ClassNames(prog)
	for _, it := range prog.Items {
		switch v := it.(type) {
		case *ast.FuncDecl:
			insertFunc(diags, v, classNames)
		case *ast.ClassDecl:
			for _, m := range v.Methods {
				insertFunc(diags, m, classNames)
			}
		case *ast.ImplDecl:
			for _, m := range v.Methods {
				insertFunc(diags, m, classNames)
			}
		}
	}
	return diags
}

func insertFunc(diags *diag.List, fn *ast.FuncDecl, classNames map[string]bool) {
	if fn.Body == nil {
		return
	}
	c := &ctx{diags: diags, classNames: classNames}
	c.pushScope()

	params := fn.Params
	if fn.HasSelf && len(params) > 0 {
		c.push("self", false, live)
		params = params[1:]
	}
	for _, p := range params {
		c.push(p.Name, own.IsOwnedType(p.Type, classNames), live)
	}

	c.rewriteBlockBody(fn.Body)
	c.popScope()
}

// isOwned reports whether typ needs a destructor call, per the same
// class-pointer classification the ownership checker uses.
func isOwned(typ ast.Type, classNames map[string]bool) bool {
	return own.IsOwnedType(typ, classNames)
}

func (c *ctx) push(name string, owned bool, st state) *bindEntry {
	b := &bindEntry{name: name, owned: owned, state: st}
	c.stack = append(c.stack, b)
	return b
}

func (c *ctx) lookup(name string) *bindEntry {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if c.stack[i].name == name {
			return c.stack[i]
		}
	}
	return nil
}

func (c *ctx) pushScope() { c.scopeMarks = append(c.scopeMarks, len(c.stack)) }

func (c *ctx) scopeMark() int { return c.scopeMarks[len(c.scopeMarks)-1] }

func (c *ctx) popScope() {
	n := len(c.scopeMarks)
	mark := c.scopeMarks[n-1]
	c.scopeMarks = c.scopeMarks[:n-1]
	c.stack = c.stack[:mark]
}

func (c *ctx) pushLoop() { c.loopMarks = append(c.loopMarks, len(c.stack)) }

func (c *ctx) popLoop() { c.loopMarks = c.loopMarks[:len(c.loopMarks)-1] }

func (c *ctx) inLoop() bool { return len(c.loopMarks) > 0 }

func (c *ctx) loopMark() int { return c.loopMarks[len(c.loopMarks)-1] }

func (c *ctx) tmpName() string {
	c.tmpCounter++
	return fmt.Sprintf("__emp_tmp%d", c.tmpCounter-1)
}

// dropsFrom synthesizes `drop name` statements for every owned, Live
// binding in c.stack[mark:], walked in reverse declaration order,
// diagnosing code against MaybeMoved bindings instead of dropping them.
func (c *ctx) dropsFrom(mark int, at diag.Span, code string, msg string) []ast.Stmt {
	var out []ast.Stmt
	for i := len(c.stack) - 1; i >= mark; i-- {
		b := c.stack[i]
		if !b.owned {
			continue
		}
		switch b.state {
		case live:
			out = append(out, ast.NewDrop(at, b.name))
		case maybeMoved:
			c.diags.Addf(diag.PhaseDrop, code, at, msg, b.name)
		}
	}
	return out
}

func (c *ctx) scopeEndDrops(mark int, at diag.Span) []ast.Stmt {
	return c.dropsFrom(mark, at, "DRP002", "'%s' may be moved on some path; cannot insert its scope-exit drop")
}

func (c *ctx) returnDrops(at diag.Span) []ast.Stmt {
	return c.dropsFrom(0, at, "DRP002", "'%s' may be moved on some path; cannot insert its return drop")
}

func (c *ctx) jumpDrops(at diag.Span) []ast.Stmt {
	return c.dropsFrom(c.loopMark(), at, "DRP002", "'%s' may be moved on some path; cannot insert its loop-exit drop")
}
