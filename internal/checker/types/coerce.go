package types

import "github.com/emplang/empc/internal/ast"

// coerceCost returns the cost of coercing a value of type src (possibly
// a literal of kind litKind, isLit true) to dst, and whether it is
// allowed at all (spec.md §4.2 "Coercion rules"). Cost 0 is an exact
// match, cost 1 is an accepted coercion.
func coerceCost(src, dst ast.Type, isLit bool, litKind ast.LiteralKind) (cost int, ok bool) {
	if ast.TypesEqual(src, dst) {
		return 0, true
	}

	// Any integer literal -> any pointer. `null` is parsed as the integer
	// literal "null", so it takes this path too. The literal's value is
	// not inspected: a nonzero integer literal is accepted as well.
	if isLit && litKind == ast.IntLit {
		if _, isPtr := dst.(*ast.PtrType); isPtr {
			return 1, true
		}
	}

	// String literal -> *u8 or string.
	if isLit && litKind == ast.StringLit {
		if isPtrToU8(dst) || isNamed(dst, "string") {
			return 1, true
		}
	}

	// Integer literal -> any integer or float type; float literal -> any float type.
	if isLit && litKind == ast.IntLit {
		if n, ok := dst.(*ast.NameType); ok && (ast.IsIntegerName(n.Name) || ast.IsFloatName(n.Name)) {
			return 1, true
		}
	}
	if isLit && litKind == ast.FloatLit {
		if n, ok := dst.(*ast.NameType); ok && ast.IsFloatName(n.Name) {
			return 1, true
		}
	}

	srcN, srcIsName := src.(*ast.NameType)
	dstN, dstIsName := dst.(*ast.NameType)
	if srcIsName && dstIsName {
		// integer<->integer, integer->float, float<->float
		if (ast.IsIntegerName(srcN.Name) && ast.IsIntegerName(dstN.Name)) ||
			(ast.IsIntegerName(srcN.Name) && ast.IsFloatName(dstN.Name)) ||
			(ast.IsFloatName(srcN.Name) && ast.IsFloatName(dstN.Name)) {
			return 1, true
		}
	}

	// pointer<->pointer
	_, srcIsPtr := src.(*ast.PtrType)
	_, dstIsPtr := dst.(*ast.PtrType)
	if srcIsPtr && dstIsPtr {
		return 1, true
	}

	return 0, false
}

func isPtrToU8(t ast.Type) bool {
	p, ok := t.(*ast.PtrType)
	if !ok {
		return false
	}
	return isNamed(p.Elem, "u8")
}

func isNamed(t ast.Type, name string) bool {
	n, ok := t.(*ast.NameType)
	return ok && n.Name == name
}
