package ast

import "github.com/emplang/empc/internal/diag"

// Item is the sum of top-level declaration forms (spec.md §3 Items).
type Item interface {
	Node
	itemNode()
	IsExported() bool
}

type itemBase struct {
	Sp       diag.Span
	Exported bool
}

func (i *itemBase) Span() diag.Span  { return i.Sp }
func (*itemBase) itemNode()          {}
func (i *itemBase) IsExported() bool { return i.Exported }

// Param is one function/method parameter.
type Param struct {
	Name string
	Type Type // *Auto if the parameter has no declared type
}

// FuncDecl is a free function or (inside a ClassDecl) a method.
type FuncDecl struct {
	itemBase
	Name       string
	Params     []Param
	ReturnType Type // *Auto if omitted
	Body       *Block
	IsMMOnly   bool // manual-MM-only function (spec.md §4.2 overload rule 4)
	HasSelf    bool // true for methods; Params[0] is implicitly `self: *Class`
	IsInit     bool // class `init` method
	IsVirtual  bool // class `virtual` method
}

// UseItem is one `use ...;` declaration.
type UseItem struct {
	itemBase
	// Wildcard is true for `use * from pkg.path;`.
	Wildcard bool
	// Names lists (name, alias) pairs for list-form imports; Alias is ""
	// when no `as` clause was given.
	Names []UseName
	// AllowPrivate is true for `use @...` — importing non-exported
	// symbols is permitted.
	AllowPrivate bool
	ModulePath   string // dotted path, e.g. "a.b.c"
}

// UseName is one imported symbol with its optional alias.
type UseName struct {
	Name  string
	Alias string
}

// Field is one class/struct field.
type Field struct {
	Name string
	Type Type
}

// ClassDecl declares a class: optional base, fields, methods.
type ClassDecl struct {
	itemBase
	Name    string
	Base    string // declared base class name, "" if none
	Fields  []Field
	Methods []*FuncDecl
}

// TraitMethod is a trait method signature (no body unless Default is set;
// default method bodies are rejected per spec.md §4.2).
type TraitMethod struct {
	Name       string
	Params     []Param
	ReturnType Type
	Default    *Block // always nil in this implementation; see spec.md §4.2
	Sp         diag.Span
}

// TraitDecl declares a trait: a set of method signatures.
type TraitDecl struct {
	itemBase
	Name    string
	Methods []TraitMethod
}

// ConstDecl is `const NAME: Type = init;`.
type ConstDecl struct {
	itemBase
	Name string
	Type Type
	Init Expr
}

// StructDecl declares a plain aggregate (no methods, no base, no vtable).
type StructDecl struct {
	itemBase
	Name   string
	Fields []Field
}

// EnumVariant is one variant of an EnumDecl, with an optional payload
// type list (empty slice: unit variant).
type EnumVariant struct {
	Name    string
	Payload []Type
}

// EnumDecl declares a sum type.
type EnumDecl struct {
	itemBase
	Name     string
	Variants []EnumVariant
}

// ImplDecl is `impl [Trait for] Type { methods }`. TraitName is "" for an
// inherent impl.
type ImplDecl struct {
	itemBase
	TraitName string
	TypeName  string
	Methods   []*FuncDecl
}

// TagItem is a top-level `@tag(...)` declaration.
type TagItem struct {
	itemBase
	Name string
	Args []Expr
}

// FileMMOff is the file-level `@emp mm off;` directive: disables the
// drop-insertion pass for the entire module (spec.md §4.5).
type FileMMOff struct{ itemBase }

// Program is one module's own parsed items (the flattened View
// combining this with imported stubs lives in internal/view).
type Program struct {
	Items []Item
	Sp    diag.Span
}

func (p *Program) Span() diag.Span { return p.Sp }

// FileHasMMOff reports whether prog carries a file-level @emp mm off directive.
func FileHasMMOff(prog *Program) bool {
	for _, it := range prog.Items {
		if _, ok := it.(*FileMMOff); ok {
			return true
		}
	}
	return false
}
