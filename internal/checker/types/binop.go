package types

import "github.com/emplang/empc/internal/ast"

var (
	typeI32  = &ast.NameType{Name: "i32"}
	typeF64  = &ast.NameType{Name: "f64"}
	typeBool = &ast.NameType{Name: "bool"}
)

func isNumeric(t ast.Type) bool {
	n, ok := t.(*ast.NameType)
	return ok && (ast.IsIntegerName(n.Name) || ast.IsFloatName(n.Name))
}

func isFloaty(t ast.Type) bool {
	n, ok := t.(*ast.NameType)
	return ok && ast.IsFloatName(n.Name)
}

func isIntegerT(t ast.Type) bool {
	n, ok := t.(*ast.NameType)
	return ok && ast.IsIntegerName(n.Name)
}

func isBoolT(t ast.Type) bool  { return isNamed(t, "bool") }
func isCharT(t ast.Type) bool  { return isNamed(t, "char") }
func isPointer(t ast.Type) bool {
	_, ok := t.(*ast.PtrType)
	return ok
}

// binaryResultType implements spec.md §4.2 "Binary operators". ok is
// false when the operand types are not accepted for op; inMM gates the
// `*u8 +/- int` pointer-arithmetic allowance.
func binaryResultType(op ast.BinaryOp, lt, rt ast.Type, inMM bool) (result ast.Type, ok bool) {
	switch {
	case op == ast.BinAdd || op == ast.BinSub || op == ast.BinMul || op == ast.BinDiv:
		if inMM && isPtrToU8(lt) && isIntegerT(rt) && (op == ast.BinAdd || op == ast.BinSub) {
			return lt, true
		}
		if inMM && isPtrToU8(rt) && isIntegerT(lt) && op == ast.BinAdd {
			return rt, true
		}
		if !isNumeric(lt) || !isNumeric(rt) {
			return nil, false
		}
		if isFloaty(lt) || isFloaty(rt) {
			return typeF64, true
		}
		return typeI32, true

	case op == ast.BinMod || op == ast.BinBitAnd || op == ast.BinBitOr || op == ast.BinBitXor || op == ast.BinShl || op == ast.BinShr:
		if !isIntegerT(lt) || !isIntegerT(rt) {
			return nil, false
		}
		return typeI32, true

	case op == ast.BinEq || op == ast.BinNeq:
		if isNumeric(lt) && isNumeric(rt) {
			return typeBool, true
		}
		if isBoolT(lt) && isBoolT(rt) {
			return typeBool, true
		}
		if isCharT(lt) && isCharT(rt) {
			return typeBool, true
		}
		if (isPointer(lt) || isNullLiteralType(lt)) && (isPointer(rt) || isNullLiteralType(rt)) {
			return typeBool, true
		}
		return nil, false

	case op == ast.BinLt || op == ast.BinLe || op == ast.BinGt || op == ast.BinGe:
		if isNumeric(lt) && isNumeric(rt) {
			return typeBool, true
		}
		if isCharT(lt) && isCharT(rt) {
			return typeBool, true
		}
		return nil, false

	case op == ast.BinAnd || op == ast.BinOr:
		if isBoolT(lt) && isBoolT(rt) {
			return typeBool, true
		}
		return nil, false
	}
	return nil, false
}

// isNullLiteralType reports whether t is i32 — the type this checker
// assigns the `null`/literal-zero token before it coerces to a pointer,
// so pointer-vs-null comparisons are accepted by binaryResultType too.
func isNullLiteralType(t ast.Type) bool { return isNamed(t, "i32") }

// assignLHSOK reports whether expr is a valid assignment target (spec.md
// §4.2 "Assignment variants").
func assignLHSOK(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.Ident, *ast.Member, *ast.Index:
		return true
	}
	return false
}

// compoundAssignOK reports whether op's compound form accepts lhsType,
// per spec.md's "bitwise/shift/remainder compound assigns require
// integer LHS" rule; arithmetic compound assigns accept any numeric
// (or, in mm-off, pointer) LHS.
func compoundAssignOK(op ast.BinaryOp, lhsType ast.Type, inMM bool) bool {
	switch op {
	case ast.BinBitAndAssign, ast.BinBitOrAssign, ast.BinBitXorAssign, ast.BinShlAssign, ast.BinShrAssign, ast.BinModAssign:
		return isIntegerT(lhsType)
	default:
		return isNumeric(lhsType) || (inMM && isPtrToU8(lhsType))
	}
}
