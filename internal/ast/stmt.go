package ast

import "github.com/emplang/empc/internal/diag"

// Stmt is the sum of statement forms (spec.md §3 Statements).
type Stmt interface {
	Node
	stmtNode()
}

type stmtBase struct{ Sp diag.Span }

func (s *stmtBase) Span() diag.Span { return s.Sp }
func (*stmtBase) stmtNode()         {}

// DestructureName is one binding introduced by a tuple-destructuring let.
type DestructureName struct {
	Name string
	Type Type // optional explicit annotation; nil means infer
}

// VarDecl is `let name[: Type] = init;` or a destructuring let.
type VarDecl struct {
	stmtBase
	Name         string          // empty when Destructure is set
	Destructure  []DestructureName
	Declared     Type // explicit annotation, or *Auto if omitted
	Init         Expr
	ResolvedType Type // filled in by the type checker
}

// NewAutoVarDecl constructs a synthesized `let name = init;` with an
// inferred (*Auto) declared type — used for the drop inserter's
// assignment-to-live-owned temp binding.
func NewAutoVarDecl(sp diag.Span, name string, init Expr) *VarDecl {
	return &VarDecl{stmtBase: stmtBase{Sp: sp}, Name: name, Declared: &Auto{Sp: sp}, Init: init, ResolvedType: init.ResolvedType()}
}

// Drop is an explicit `drop name;` statement — present in source for
// manual-MM code, and synthesized by the drop inserter everywhere else.
type Drop struct {
	stmtBase
	Name string
}

// NewDrop constructs a synthesized `drop name;` with the given span.
func NewDrop(sp diag.Span, name string) *Drop {
	return &Drop{stmtBase: stmtBase{Sp: sp}, Name: name}
}

// Defer is `defer expr;`.
type Defer struct {
	stmtBase
	Call Expr
}

// Return is `return [expr];`.
type Return struct {
	stmtBase
	Value Expr // nil for bare `return;`
}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	stmtBase
	Value Expr
}

// NewExprStmt wraps value as a statement with the given span.
func NewExprStmt(sp diag.Span, value Expr) *ExprStmt {
	return &ExprStmt{stmtBase: stmtBase{Sp: sp}, Value: value}
}

// Block is `{ stmts }`.
type Block struct {
	stmtBase
	Stmts []Stmt
}

// NewBlock constructs a block with the given span and statements.
func NewBlock(sp diag.Span, stmts []Stmt) *Block {
	return &Block{stmtBase: stmtBase{Sp: sp}, Stmts: stmts}
}

// If is `if cond { then } else { else }` (Else nil when absent; it
// may itself be another *If for an `else if` chain, or a *Block).
type If struct {
	stmtBase
	Cond Expr
	Then *Block
	Else Stmt
}

// While is `while cond { body }`.
type While struct {
	stmtBase
	Cond Expr
	Body *Block
}

// For is `for init; cond; post { body }`.
type For struct {
	stmtBase
	Init Stmt // may be nil
	Cond Expr // may be nil
	Post Stmt // may be nil
	Body *Block
}

// Break is `break;`.
type Break struct{ stmtBase }

// NewBreak constructs a Break with the given span.
func NewBreak(sp diag.Span) *Break { return &Break{stmtBase{Sp: sp}} }

// Continue is `continue;`.
type Continue struct{ stmtBase }

// NewContinue constructs a Continue with the given span.
func NewContinue(sp diag.Span) *Continue { return &Continue{stmtBase{Sp: sp}} }

// MatchArm is one `Pattern => body` arm of a match.
type MatchArm struct {
	// For enum patterns: EnumName/Variant are set and Bindings holds the
	// payload binding names ("_" for discard). IsDefault is set for `_`.
	EnumName  string
	Variant   string
	Bindings  []string
	IsDefault bool
	Body      *Block
	Sp        diag.Span
}

// Match is `match scrutinee { arms }`.
type Match struct {
	stmtBase
	Scrutinee Expr
	Arms      []MatchArm
}

// Tag is a free-standing `@tag(...)` marker statement, carried through
// for tooling but otherwise semantically inert.
type Tag struct {
	stmtBase
	Name string
	Args []Expr
}

// EmpOff is `@emp off { body }` — disables borrow checking in body.
type EmpOff struct {
	stmtBase
	Body *Block
}

// MMOff is `@emp mm off { body }` — disables drop insertion in body.
type MMOff struct {
	stmtBase
	Body *Block
}
