package ast

import "github.com/emplang/empc/internal/diag"

// Expr is the sum of expression forms (spec.md §3 Expressions). Every
// expression carries a span and, where the type checker has run, a
// resolved Type annotation.
type Expr interface {
	Node
	exprNode()
	ResolvedType() Type
	SetResolvedType(Type)
}

type exprBase struct {
	Sp   diag.Span
	Type Type
}

func (e *exprBase) Span() diag.Span          { return e.Sp }
func (e *exprBase) ResolvedType() Type       { return e.Type }
func (e *exprBase) SetResolvedType(t Type)   { e.Type = t }
func (*exprBase) exprNode()                  {}

// LiteralKind distinguishes literal expression forms.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	CharLit
	StringLit
)

// Literal is an Int/Float/Char/String literal.
type Literal struct {
	exprBase
	Kind  LiteralKind
	Value string // source text; the checker interprets it per Kind
}

// FString is an interpolated string literal; Parts alternates raw text
// segments (as *Literal of kind StringLit) and embedded expressions.
type FString struct {
	exprBase
	Parts []Expr
}

// Ident is an identifier reference.
type Ident struct {
	exprBase
	Name string
}

// NewIdent constructs an Ident with the given span — used by the drop
// inserter to synthesize temp-variable references.
func NewIdent(sp diag.Span, name string) *Ident {
	return &Ident{exprBase: exprBase{Sp: sp}, Name: name}
}

// UnaryOp is one of the unary operator kinds.
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryRef     // &x
	UnaryRefMut  // &mut x
	UnaryDeref   // *x
)

// Unary is a prefix unary expression.
type Unary struct {
	exprBase
	Op      UnaryOp
	Operand Expr
}

// BinaryOp enumerates binary and assignment operator kinds.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinEq
	BinNeq
	BinLt
	BinLe
	BinGt
	BinGe
	BinAnd
	BinOr
	BinAssign
	BinAddAssign
	BinSubAssign
	BinMulAssign
	BinDivAssign
	BinModAssign
	BinBitAndAssign
	BinBitOrAssign
	BinBitXorAssign
	BinShlAssign
	BinShrAssign
)

// IsCompoundAssign reports whether op is a compound (op=) assignment.
func (op BinaryOp) IsCompoundAssign() bool {
	return op >= BinAddAssign && op <= BinShrAssign
}

// IsAssign reports whether op is any assignment variant.
func (op BinaryOp) IsAssign() bool {
	return op == BinAssign || op.IsCompoundAssign()
}

// Binary is a binary or assignment expression.
type Binary struct {
	exprBase
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Call is a function/method call. The three post-resolution fields are
// populated by the type checker (spec.md §3 Expressions, §4.2).
type Call struct {
	exprBase
	Callee Expr
	Args   []Expr

	ResolvedSymbol string // mangled name when >1 overload exists for Callee's name
	DynMethod      string // selected virtual method name for dyn receivers
	DynSlot        int    // vtable slot for dyn receivers
	HasDynSlot     bool
}

// Group is a parenthesized expression, kept distinct so printers can
// round-trip source parens.
type Group struct {
	exprBase
	Inner Expr
}

// Cast is `expr as Type`.
type Cast struct {
	exprBase
	Value Expr
	To    Type

	DynConcreteName string // set for `*Concrete as dyn Base` casts
}

// TupleExpr is a tuple literal.
type TupleExpr struct {
	exprBase
	Elems []Expr
}

// ListExpr is a list literal.
type ListExpr struct {
	exprBase
	Elems []Expr
}

// Index is `base[index]`.
type Index struct {
	exprBase
	Base  Expr
	Index Expr
}

// Member is `base.name`.
type Member struct {
	exprBase
	Base Expr
	Name string
}

// New is `new ClassName(args)`.
type New struct {
	exprBase
	ClassName string
	Args      []Expr
}

// Ternary is `cond ? then : else`.
type Ternary struct {
	exprBase
	Cond Expr
	Then Expr
	Else Expr
}

// Range is `lo..hi` (used in for-loops).
type Range struct {
	exprBase
	Lo Expr
	Hi Expr
}
