package types

import (
	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
)

// listMethodRewrite maps a List method-call name to the compiler
// intrinsic it lowers to (spec.md §4.2 "Built-in method sugar").
var listMethodRewrite = map[string]string{
	"append": "list_push", "push": "list_push", "enqueue": "list_push",
	"reserve": "list_reserve", "pop": "list_pop", "insert": "list_insert",
	"remove": "list_remove", "len": "list_len", "cap": "list_cap",
}

// stringMethodRewrite maps a string method-call name to its intrinsic.
var stringMethodRewrite = map[string]string{
	"len": "string_len", "cstr": "string_cstr", "clone": "string_clone",
	"parse_i32": "string_parse_i32", "parse_bool": "string_parse_bool",
	"starts_with": "string_starts_with", "ends_with": "string_ends_with",
	"contains": "string_contains", "replace": "string_replace",
}

// rewriteBuiltinSugar rewrites method-call sugar on the List and string
// builtins into their intrinsic call form, mutating call in place.
// Callers skip ordinary method resolution for calls it rewrites.
func rewriteBuiltinSugar(call *ast.Call, baseType ast.Type) bool {
	member, ok := call.Callee.(*ast.Member)
	if !ok {
		return false
	}

	if _, isList := baseType.(*ast.ListType); isList {
		if member.Name == "dequeue" {
			call.Callee = identAt("list_remove", member.Span())
			call.Args = []ast.Expr{mutRefOf(member.Base), zeroLiteral(member.Span())}
			return true
		}
		if target, known := listMethodRewrite[member.Name]; known {
			call.Callee = identAt(target, member.Span())
			call.Args = append([]ast.Expr{mutRefOf(member.Base)}, call.Args...)
			return true
		}
		return false
	}

	if isNamed(baseType, "string") {
		if target, known := stringMethodRewrite[member.Name]; known {
			call.Callee = identAt(target, member.Span())
			call.Args = append([]ast.Expr{sharedRefOf(member.Base)}, call.Args...)
			return true
		}
	}
	return false
}

func identAt(name string, sp diag.Span) ast.Expr {
	id := &ast.Ident{Name: name}
	id.Sp = sp
	return id
}

func zeroLiteral(sp diag.Span) ast.Expr {
	lit := &ast.Literal{Kind: ast.IntLit, Value: "0"}
	lit.Sp = sp
	return lit
}

func mutRefOf(e ast.Expr) ast.Expr {
	u := &ast.Unary{Op: ast.UnaryRefMut, Operand: e}
	u.Sp = e.Span()
	return u
}

func sharedRefOf(e ast.Expr) ast.Expr {
	u := &ast.Unary{Op: ast.UnaryRef, Operand: e}
	u.Sp = e.Span()
	return u
}
