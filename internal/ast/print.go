package ast

import (
	"encoding/json"
	"fmt"
)

// Print produces a deterministic JSON representation of prog, for the
// driver's `--ast` dump mode. Spans are omitted: the dump describes tree
// shape, and byte offsets would only churn the output across runs where
// sources are logically identical but physically reformatted.
func Print(prog *Program) string {
	if prog == nil {
		return "null"
	}
	data, err := json.MarshalIndent(simplifyProgram(prog), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

func simplifyProgram(p *Program) interface{} {
	items := make([]interface{}, len(p.Items))
	for i, it := range p.Items {
		items[i] = simplifyItem(it)
	}
	return map[string]interface{}{"type": "Program", "items": items}
}

func simplifyItem(it Item) interface{} {
	switch v := it.(type) {
	case *FuncDecl:
		return simplifyFuncDecl(v)
	case *UseItem:
		names := make([]interface{}, len(v.Names))
		for i, n := range v.Names {
			names[i] = map[string]interface{}{"name": n.Name, "alias": n.Alias}
		}
		return map[string]interface{}{
			"type": "UseItem", "wildcard": v.Wildcard, "allowPrivate": v.AllowPrivate,
			"modulePath": v.ModulePath, "names": names,
		}
	case *ClassDecl:
		methods := make([]interface{}, len(v.Methods))
		for i, m := range v.Methods {
			methods[i] = simplifyFuncDecl(m)
		}
		return map[string]interface{}{
			"type": "ClassDecl", "name": v.Name, "base": v.Base,
			"fields": simplifyFields(v.Fields), "methods": methods, "exported": v.Exported,
		}
	case *TraitDecl:
		ms := make([]interface{}, len(v.Methods))
		for i, m := range v.Methods {
			ms[i] = map[string]interface{}{
				"name": m.Name, "params": simplifyParams(m.Params), "returnType": simplifyType(m.ReturnType),
			}
		}
		return map[string]interface{}{"type": "TraitDecl", "name": v.Name, "methods": ms, "exported": v.Exported}
	case *ConstDecl:
		return map[string]interface{}{
			"type": "ConstDecl", "name": v.Name, "declaredType": simplifyType(v.Type),
			"init": simplifyExpr(v.Init), "exported": v.Exported,
		}
	case *StructDecl:
		return map[string]interface{}{
			"type": "StructDecl", "name": v.Name, "fields": simplifyFields(v.Fields), "exported": v.Exported,
		}
	case *EnumDecl:
		variants := make([]interface{}, len(v.Variants))
		for i, ev := range v.Variants {
			payload := make([]interface{}, len(ev.Payload))
			for j, t := range ev.Payload {
				payload[j] = simplifyType(t)
			}
			variants[i] = map[string]interface{}{"name": ev.Name, "payload": payload}
		}
		return map[string]interface{}{"type": "EnumDecl", "name": v.Name, "variants": variants, "exported": v.Exported}
	case *ImplDecl:
		methods := make([]interface{}, len(v.Methods))
		for i, m := range v.Methods {
			methods[i] = simplifyFuncDecl(m)
		}
		return map[string]interface{}{
			"type": "ImplDecl", "trait": v.TraitName, "typeName": v.TypeName, "methods": methods,
		}
	case *TagItem:
		return map[string]interface{}{"type": "TagItem", "name": v.Name, "args": simplifyExprs(v.Args)}
	case *FileMMOff:
		return map[string]interface{}{"type": "FileMMOff"}
	default:
		return map[string]interface{}{"type": fmt.Sprintf("%T", it)}
	}
}

func simplifyFuncDecl(f *FuncDecl) interface{} {
	m := map[string]interface{}{
		"type": "FuncDecl", "name": f.Name, "params": simplifyParams(f.Params),
		"returnType": simplifyType(f.ReturnType), "isMMOnly": f.IsMMOnly,
		"hasSelf": f.HasSelf, "isInit": f.IsInit, "isVirtual": f.IsVirtual, "exported": f.Exported,
	}
	if f.Body != nil {
		m["body"] = simplifyStmt(f.Body)
	}
	return m
}

func simplifyFields(fields []Field) []interface{} {
	out := make([]interface{}, len(fields))
	for i, f := range fields {
		out[i] = map[string]interface{}{"name": f.Name, "fieldType": simplifyType(f.Type)}
	}
	return out
}

func simplifyParams(params []Param) []interface{} {
	out := make([]interface{}, len(params))
	for i, p := range params {
		out[i] = map[string]interface{}{"name": p.Name, "paramType": simplifyType(p.Type)}
	}
	return out
}

func simplifyType(t Type) interface{} {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *Auto:
		return map[string]interface{}{"type": "Auto"}
	case *TraitSelf:
		return map[string]interface{}{"type": "TraitSelf"}
	case *NameType:
		return map[string]interface{}{"type": "NameType", "name": v.Name}
	case *PtrType:
		return map[string]interface{}{"type": "PtrType", "elem": simplifyType(v.Elem)}
	case *ArrayType:
		return map[string]interface{}{"type": "ArrayType", "elem": simplifyType(v.Elem), "size": v.Size}
	case *ListType:
		return map[string]interface{}{"type": "ListType", "elem": simplifyType(v.Elem)}
	case *TupleType:
		fields := make([]interface{}, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = map[string]interface{}{"name": f.Name, "fieldType": simplifyType(f.Type)}
		}
		return map[string]interface{}{"type": "TupleType", "fields": fields}
	case *DynType:
		return map[string]interface{}{"type": "DynType", "base": v.Base}
	default:
		return map[string]interface{}{"type": fmt.Sprintf("%T", t)}
	}
}

func simplifyStmt(s Stmt) interface{} {
	if s == nil {
		return nil
	}
	switch v := s.(type) {
	case *VarDecl:
		m := map[string]interface{}{"type": "VarDecl", "name": v.Name, "declaredType": simplifyType(v.Declared)}
		if v.Init != nil {
			m["init"] = simplifyExpr(v.Init)
		}
		if len(v.Destructure) > 0 {
			names := make([]interface{}, len(v.Destructure))
			for i, d := range v.Destructure {
				names[i] = map[string]interface{}{"name": d.Name, "declaredType": simplifyType(d.Type)}
			}
			m["destructure"] = names
		}
		return m
	case *Drop:
		return map[string]interface{}{"type": "Drop", "name": v.Name}
	case *Defer:
		return map[string]interface{}{"type": "Defer", "call": simplifyExpr(v.Call)}
	case *Return:
		m := map[string]interface{}{"type": "Return"}
		if v.Value != nil {
			m["value"] = simplifyExpr(v.Value)
		}
		return m
	case *ExprStmt:
		return map[string]interface{}{"type": "ExprStmt", "value": simplifyExpr(v.Value)}
	case *Block:
		stmts := make([]interface{}, len(v.Stmts))
		for i, st := range v.Stmts {
			stmts[i] = simplifyStmt(st)
		}
		return map[string]interface{}{"type": "Block", "stmts": stmts}
	case *If:
		m := map[string]interface{}{"type": "If", "cond": simplifyExpr(v.Cond), "then": simplifyStmt(v.Then)}
		if v.Else != nil {
			m["else"] = simplifyStmt(v.Else)
		}
		return m
	case *While:
		return map[string]interface{}{"type": "While", "cond": simplifyExpr(v.Cond), "body": simplifyStmt(v.Body)}
	case *For:
		m := map[string]interface{}{"type": "For", "body": simplifyStmt(v.Body)}
		if v.Init != nil {
			m["init"] = simplifyStmt(v.Init)
		}
		if v.Cond != nil {
			m["cond"] = simplifyExpr(v.Cond)
		}
		if v.Post != nil {
			m["post"] = simplifyStmt(v.Post)
		}
		return m
	case *Break:
		return map[string]interface{}{"type": "Break"}
	case *Continue:
		return map[string]interface{}{"type": "Continue"}
	case *Match:
		arms := make([]interface{}, len(v.Arms))
		for i, a := range v.Arms {
			arms[i] = map[string]interface{}{
				"enumName": a.EnumName, "variant": a.Variant, "bindings": a.Bindings,
				"isDefault": a.IsDefault, "body": simplifyStmt(a.Body),
			}
		}
		return map[string]interface{}{"type": "Match", "scrutinee": simplifyExpr(v.Scrutinee), "arms": arms}
	case *Tag:
		return map[string]interface{}{"type": "Tag", "name": v.Name, "args": simplifyExprs(v.Args)}
	case *EmpOff:
		return map[string]interface{}{"type": "EmpOff", "body": simplifyStmt(v.Body)}
	case *MMOff:
		return map[string]interface{}{"type": "MMOff", "body": simplifyStmt(v.Body)}
	default:
		return map[string]interface{}{"type": fmt.Sprintf("%T", s)}
	}
}

func simplifyExprs(exprs []Expr) []interface{} {
	out := make([]interface{}, len(exprs))
	for i, e := range exprs {
		out[i] = simplifyExpr(e)
	}
	return out
}

func simplifyExpr(e Expr) interface{} {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case *Literal:
		return map[string]interface{}{"type": "Literal", "kind": literalKindString(v.Kind), "value": v.Value}
	case *FString:
		return map[string]interface{}{"type": "FString", "parts": simplifyExprs(v.Parts)}
	case *Ident:
		return map[string]interface{}{"type": "Ident", "name": v.Name}
	case *Unary:
		return map[string]interface{}{"type": "Unary", "op": unaryOpString(v.Op), "operand": simplifyExpr(v.Operand)}
	case *Binary:
		return map[string]interface{}{
			"type": "Binary", "op": binaryOpString(v.Op), "left": simplifyExpr(v.Left), "right": simplifyExpr(v.Right),
		}
	case *Call:
		m := map[string]interface{}{"type": "Call", "callee": simplifyExpr(v.Callee), "args": simplifyExprs(v.Args)}
		if v.ResolvedSymbol != "" {
			m["resolvedSymbol"] = v.ResolvedSymbol
		}
		if v.HasDynSlot {
			m["dynMethod"] = v.DynMethod
			m["dynSlot"] = v.DynSlot
		}
		return m
	case *Group:
		return map[string]interface{}{"type": "Group", "inner": simplifyExpr(v.Inner)}
	case *Cast:
		m := map[string]interface{}{"type": "Cast", "value": simplifyExpr(v.Value), "to": simplifyType(v.To)}
		if v.DynConcreteName != "" {
			m["dynConcreteName"] = v.DynConcreteName
		}
		return m
	case *TupleExpr:
		return map[string]interface{}{"type": "TupleExpr", "elems": simplifyExprs(v.Elems)}
	case *ListExpr:
		return map[string]interface{}{"type": "ListExpr", "elems": simplifyExprs(v.Elems)}
	case *Index:
		return map[string]interface{}{"type": "Index", "base": simplifyExpr(v.Base), "index": simplifyExpr(v.Index)}
	case *Member:
		return map[string]interface{}{"type": "Member", "base": simplifyExpr(v.Base), "name": v.Name}
	case *New:
		return map[string]interface{}{"type": "New", "className": v.ClassName, "args": simplifyExprs(v.Args)}
	case *Ternary:
		return map[string]interface{}{
			"type": "Ternary", "cond": simplifyExpr(v.Cond), "then": simplifyExpr(v.Then), "else": simplifyExpr(v.Else),
		}
	case *Range:
		return map[string]interface{}{"type": "Range", "lo": simplifyExpr(v.Lo), "hi": simplifyExpr(v.Hi)}
	default:
		return map[string]interface{}{"type": fmt.Sprintf("%T", e)}
	}
}

func literalKindString(k LiteralKind) string {
	switch k {
	case IntLit:
		return "Int"
	case FloatLit:
		return "Float"
	case CharLit:
		return "Char"
	case StringLit:
		return "String"
	default:
		return "Unknown"
	}
}

func unaryOpString(op UnaryOp) string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	case UnaryRef:
		return "&"
	case UnaryRefMut:
		return "&mut"
	case UnaryDeref:
		return "*"
	default:
		return "?"
	}
}

func binaryOpString(op BinaryOp) string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinMod:
		return "%"
	case BinBitAnd:
		return "&"
	case BinBitOr:
		return "|"
	case BinBitXor:
		return "^"
	case BinShl:
		return "<<"
	case BinShr:
		return ">>"
	case BinEq:
		return "=="
	case BinNeq:
		return "!="
	case BinLt:
		return "<"
	case BinLe:
		return "<="
	case BinGt:
		return ">"
	case BinGe:
		return ">="
	case BinAnd:
		return "&&"
	case BinOr:
		return "||"
	case BinAssign:
		return "="
	case BinAddAssign:
		return "+="
	case BinSubAssign:
		return "-="
	case BinMulAssign:
		return "*="
	case BinDivAssign:
		return "/="
	case BinModAssign:
		return "%="
	case BinBitAndAssign:
		return "&="
	case BinBitOrAssign:
		return "|="
	case BinBitXorAssign:
		return "^="
	case BinShlAssign:
		return "<<="
	case BinShrAssign:
		return ">>="
	default:
		return "?"
	}
}
