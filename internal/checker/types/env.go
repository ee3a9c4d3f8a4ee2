package types

import "github.com/emplang/empc/internal/ast"

// Env is the scoped identifier-to-type environment (spec.md §4.2
// "Environment"): a stack-like map where scope entry snapshots the
// stack length and scope exit truncates back to it.
type Env struct {
	names []string
	types []ast.Type
}

// NewEnv returns an empty environment.
func NewEnv() *Env { return &Env{} }

// Snapshot marks the current stack depth for a later Restore.
func (e *Env) Snapshot() int { return len(e.names) }

// Restore truncates the environment back to a mark from Snapshot,
// discarding every binding introduced since.
func (e *Env) Restore(mark int) {
	e.names = e.names[:mark]
	e.types = e.types[:mark]
}

// Bind introduces name at the current scope depth, shadowing any
// earlier binding of the same name.
func (e *Env) Bind(name string, t ast.Type) {
	e.names = append(e.names, name)
	e.types = append(e.types, t)
}

// Lookup finds the innermost binding of name.
func (e *Env) Lookup(name string) (ast.Type, bool) {
	for i := len(e.names) - 1; i >= 0; i-- {
		if e.names[i] == name {
			return e.types[i], true
		}
	}
	return nil, false
}

// Rebind updates the type of the innermost binding of name in place
// (used when lenient-pass inference narrows a previously-auto binding).
func (e *Env) Rebind(name string, t ast.Type) bool {
	for i := len(e.names) - 1; i >= 0; i-- {
		if e.names[i] == name {
			e.types[i] = t
			return true
		}
	}
	return false
}
