package types

import (
	"strings"

	"github.com/emplang/empc/internal/ast"
)

// argInfo is one call argument's resolved type plus whether it is a bare
// literal (coercion rules special-case literals over identifiers of the
// same type).
type argInfo struct {
	Type    ast.Type
	IsLit   bool
	LitKind ast.LiteralKind
}

const autoParamPenalty = 10

// candidateCost scores fn against args, returning ok=false if arity
// mismatches or any argument has no accepted coercion.
func candidateCost(fn *ast.FuncDecl, args []argInfo) (cost int, ok bool) {
	params := fn.Params
	if fn.HasSelf {
		params = params[1:]
	}
	if len(params) != len(args) {
		return 0, false
	}
	for i, p := range params {
		if ast.IsAuto(p.Type) {
			cost += autoParamPenalty
			continue
		}
		c, accepted := coerceCost(args[i].Type, p.Type, args[i].IsLit, args[i].LitKind)
		if !accepted {
			return 0, false
		}
		cost += c
	}
	return cost, true
}

// resolveOverload implements spec.md §4.2 "Overload resolution (free
// functions)" steps 2-5: auto penalty, coercion cost, strictly-lowest-
// cost wins, ties are ambiguous. mmOK reports whether manual-MM-only
// candidates may be considered at this call site. implCount is the
// number of leading entries in candidates that are inherent impl
// methods rather than class methods (0 when the caller draws from a
// single uniform source); a cost tie that includes exactly one impl
// candidate resolves to it instead of being reported ambiguous
// (spec.md §4.2 Method resolution: "ties prefer impl over class
// method").
func resolveOverload(candidates []*ast.FuncDecl, args []argInfo, mmOK bool, implCount int) (winner *ast.FuncDecl, rejectedAllMM bool, ambiguous bool) {
	type scored struct {
		fn       *ast.FuncDecl
		cost     int
		fromImpl bool
	}
	var viable []scored
	sawMMOnly := false
	for i, fn := range candidates {
		if fn.IsMMOnly && !mmOK {
			sawMMOnly = true
			continue
		}
		cost, ok := candidateCost(fn, args)
		if !ok {
			continue
		}
		viable = append(viable, scored{fn, cost, i < implCount})
	}
	if len(viable) == 0 {
		return nil, sawMMOnly && len(candidates) > 0, false
	}

	bestCost := viable[0].cost
	for _, s := range viable[1:] {
		if s.cost < bestCost {
			bestCost = s.cost
		}
	}
	var tied []scored
	for _, s := range viable {
		if s.cost == bestCost {
			tied = append(tied, s)
		}
	}
	if len(tied) == 1 {
		return tied[0].fn, false, false
	}

	var implTied []scored
	for _, s := range tied {
		if s.fromImpl {
			implTied = append(implTied, s)
		}
	}
	if len(implTied) == 1 {
		return implTied[0].fn, false, false
	}
	return nil, false, true
}

// mangleParams renders a mangled parameter-type suffix, e.g. "Ni32_Ni32",
// used both for override-detection keys and resolved_symbol mangling.
func mangleParams(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = mangleType(p.Type)
	}
	return strings.Join(parts, "_")
}

func mangleType(t ast.Type) string {
	switch v := t.(type) {
	case *ast.NameType:
		return "N" + v.Name
	case *ast.PtrType:
		return "P" + mangleType(v.Elem)
	case *ast.ListType:
		return "L" + mangleType(v.Elem)
	case *ast.ArrayType:
		return "A" + v.Size + mangleType(v.Elem)
	case *ast.DynType:
		return "Dyn" + v.Base
	case *ast.TupleType:
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = mangleType(f.Type)
		}
		return "T" + strings.Join(parts, "_")
	case *ast.Auto:
		return "auto"
	case *ast.TraitSelf:
		return "Self"
	}
	return "?"
}

// mangledSymbol is the resolved_symbol recorded on a Call node when more
// than one overload of name exists globally (spec.md §4.2 rule 6),
// e.g. "add__Ni32_Ni32" for `add(a: i32, b: i32)`.
func mangledSymbol(name string, fn *ast.FuncDecl) string {
	params := fn.Params
	if fn.HasSelf {
		params = params[1:]
	}
	return name + "__" + mangleParams(params)
}
