package parser

import (
	"strings"

	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
	"github.com/emplang/empc/internal/lexer"
)

// FStringSplitter splits an f-string literal's raw text into alternating
// raw-text and embedded-expression parts. Embedded expressions share the
// enclosing literal's span: f-strings are rare enough in diagnostics
// that pinpointing a sub-span inside the quoted text is not worth a
// second span-tracking lexer pass.
type FStringSplitter struct {
	Src  string
	File string
	Span diag.Span
}

// Split implements spec.md §3 FString{parts}: alternating *ast.Literal
// (StringLit) raw segments and embedded expressions parsed from `{...}`.
func (f *FStringSplitter) Split() []ast.Expr {
	var parts []ast.Expr
	var raw strings.Builder
	i := 0
	for i < len(f.Src) {
		c := f.Src[i]
		if c == '{' && i+1 < len(f.Src) && f.Src[i+1] == '{' {
			raw.WriteByte('{')
			i += 2
			continue
		}
		if c == '}' && i+1 < len(f.Src) && f.Src[i+1] == '}' {
			raw.WriteByte('}')
			i += 2
			continue
		}
		if c == '{' {
			if raw.Len() > 0 {
				parts = append(parts, f.literalPart(raw.String()))
				raw.Reset()
			}
			depth := 1
			j := i + 1
			for j < len(f.Src) && depth > 0 {
				switch f.Src[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth > 0 {
					j++
				}
			}
			exprSrc := f.Src[i+1 : j]
			parts = append(parts, f.parseSub(exprSrc))
			i = j + 1
			continue
		}
		raw.WriteByte(c)
		i++
	}
	if raw.Len() > 0 {
		parts = append(parts, f.literalPart(raw.String()))
	}
	return parts
}

func (f *FStringSplitter) literalPart(s string) ast.Expr {
	lit := &ast.Literal{Kind: ast.StringLit, Value: s}
	lit.Sp = f.Span
	return lit
}

func (f *FStringSplitter) parseSub(src string) ast.Expr {
	l := lexer.New(f.File, []byte(src))
	sub := New(f.File, l)
	e := sub.parseExpr(LOWEST)
	if e == nil {
		lit := &ast.Literal{Kind: ast.StringLit, Value: ""}
		lit.Sp = f.Span
		return lit
	}
	return e
}
