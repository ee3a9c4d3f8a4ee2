// Package ast defines the EMP abstract syntax tree: the typed node model
// described in spec.md §3. Every node carries a Span. Nodes are ordinary
// Go heap values; they are not allocated from the module's arena.Arena
// (see internal/arena).
package ast

import "github.com/emplang/empc/internal/diag"

// Node is the common interface implemented by every AST node.
type Node interface {
	Span() diag.Span
}

// Type is the sum of EMP type forms (spec.md §3 Types).
type Type interface {
	Node
	typeNode()
}

// Auto is the inference placeholder. It is distinct from TraitSelf
// (below): a trait method signature's "auto" means "the implementing
// type", while an ordinary auto means "infer me". Conflating the two (as
// the reference implementation does) is flagged in spec.md's Design
// Notes as a design smell; this AST keeps them as separate sentinels.
type Auto struct{ Sp diag.Span }

func (a *Auto) Span() diag.Span { return a.Sp }
func (*Auto) typeNode()         {}

// TraitSelf stands for "the concrete receiver type" inside a trait
// method signature.
type TraitSelf struct{ Sp diag.Span }

func (t *TraitSelf) Span() diag.Span { return t.Sp }
func (*TraitSelf) typeNode()         {}

// NameType is a built-in scalar or a user-declared name.
type NameType struct {
	Name string
	Sp   diag.Span
}

func (n *NameType) Span() diag.Span { return n.Sp }
func (*NameType) typeNode()         {}

// PtrType is a raw pointer.
type PtrType struct {
	Elem Type
	Sp   diag.Span
}

func (p *PtrType) Span() diag.Span { return p.Sp }
func (*PtrType) typeNode()         {}

// ArrayType is a fixed-length array; Size is kept as source text since
// its value may itself be a const expression resolved later.
type ArrayType struct {
	Elem Type
	Size string
	Sp   diag.Span
}

func (a *ArrayType) Span() diag.Span { return a.Sp }
func (*ArrayType) typeNode()         {}

// ListType is a dynamic sequence with {ptr,len,cap} layout.
type ListType struct {
	Elem Type
	Sp   diag.Span
}

func (l *ListType) Span() diag.Span { return l.Sp }
func (*ListType) typeNode()         {}

// TupleField is one element of a TupleType; Name is optional.
type TupleField struct {
	Name string
	Type Type
}

// TupleType is a fixed-arity product type.
type TupleType struct {
	Fields []TupleField
	Sp     diag.Span
}

func (t *TupleType) Span() diag.Span { return t.Sp }
func (*TupleType) typeNode()         {}

// DynType is a fat pointer {data,vtbl} through a base class.
type DynType struct {
	Base string
	Sp   diag.Span
}

func (d *DynType) Span() diag.Span { return d.Sp }
func (*DynType) typeNode()         {}

// TypesEqual implements the shallow structural equality rule of
// spec.md §4.2: Name by name, List/Array by element (and size text for
// Array), Tuple elementwise, Dyn by base name, pointers nominal and
// shallow (pointee type is not enforced — an intentional, documented
// looseness; see DESIGN.md Open Questions).
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch at := a.(type) {
	case *Auto:
		_, ok := b.(*Auto)
		return ok
	case *TraitSelf:
		_, ok := b.(*TraitSelf)
		return ok
	case *NameType:
		bt, ok := b.(*NameType)
		return ok && at.Name == bt.Name
	case *PtrType:
		_, ok := b.(*PtrType)
		return ok
	case *ArrayType:
		bt, ok := b.(*ArrayType)
		return ok && TypesEqual(at.Elem, bt.Elem) && at.Size == bt.Size
	case *ListType:
		bt, ok := b.(*ListType)
		return ok && TypesEqual(at.Elem, bt.Elem)
	case *TupleType:
		bt, ok := b.(*TupleType)
		if !ok || len(at.Fields) != len(bt.Fields) {
			return false
		}
		for i := range at.Fields {
			if !TypesEqual(at.Fields[i].Type, bt.Fields[i].Type) {
				return false
			}
		}
		return true
	case *DynType:
		bt, ok := b.(*DynType)
		return ok && at.Base == bt.Base
	}
	return false
}

// IsAuto reports whether t is the inference placeholder anywhere in its
// top-level shape (used by the lenient/strict two-pass walk).
func IsAuto(t Type) bool {
	_, ok := t.(*Auto)
	return ok
}

// TypeString renders a type the way diagnostics quote it.
func TypeString(t Type) string {
	switch v := t.(type) {
	case nil:
		return "<nil>"
	case *Auto:
		return "auto"
	case *TraitSelf:
		return "Self"
	case *NameType:
		return v.Name
	case *PtrType:
		return "*" + TypeString(v.Elem)
	case *ArrayType:
		return "[" + v.Size + "]" + TypeString(v.Elem)
	case *ListType:
		return "List<" + TypeString(v.Elem) + ">"
	case *TupleType:
		s := "("
		for i, f := range v.Fields {
			if i > 0 {
				s += ", "
			}
			if f.Name != "" {
				s += f.Name + ": "
			}
			s += TypeString(f.Type)
		}
		return s + ")"
	case *DynType:
		return "dyn " + v.Base
	}
	return "?"
}

// IsCopyLike reports whether values of type t are copy-like (scalars,
// pointers) rather than owning (spec.md §3 Ownership semantics). Only
// NameType can name an aggregate (class/struct) or scalar; callers that
// need to know whether a *named* aggregate is owning must consult the
// program's declarations (see internal/checker/own).
func IsCopyLike(t Type) bool {
	switch v := t.(type) {
	case *PtrType:
		return true
	case *NameType:
		return scalarNames[v.Name]
	case *Auto, *TraitSelf:
		return true
	}
	return false
}

var scalarNames = map[string]bool{
	"bool": true, "char": true,
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"isize": true, "usize": true,
	"f32": true, "f64": true,
}

// IsIntegerName reports whether name is one of the built-in integer scalar names.
func IsIntegerName(name string) bool {
	switch name {
	case "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "isize", "usize":
		return true
	}
	return false
}

// IsFloatName reports whether name is one of the built-in float scalar names.
func IsFloatName(name string) bool {
	return name == "f32" || name == "f64"
}
