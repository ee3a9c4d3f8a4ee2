package parser

import (
	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/lexer"
)

// parseType parses one Type per spec.md §3 Types.
func (p *Parser) parseType() ast.Type {
	start := p.curSpan().Start

	switch p.cur.Type {
	case lexer.AUTO:
		p.next()
		return &ast.Auto{Sp: p.spanFrom(start)}
	case lexer.STAR:
		p.next()
		elem := p.parseType()
		return &ast.PtrType{Elem: elem, Sp: p.spanFrom(start)}
	case lexer.DYN:
		p.next()
		base := p.cur.Literal
		p.expect(lexer.IDENT)
		return &ast.DynType{Base: base, Sp: p.spanFrom(start)}
	case lexer.LBRACKET:
		p.next()
		// [N]T fixed array; []T is unsized sugar, treated as List(T)
		if p.curIs(lexer.INT) {
			size := p.cur.Literal
			p.next()
			p.expect(lexer.RBRACKET)
			elem := p.parseType()
			return &ast.ArrayType{Elem: elem, Size: size, Sp: p.spanFrom(start)}
		}
		p.expect(lexer.RBRACKET)
		elem := p.parseType()
		return &ast.ListType{Elem: elem, Sp: p.spanFrom(start)}
	case lexer.LPAREN:
		p.next()
		var fields []ast.TupleField
		for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
			name := ""
			if p.curIs(lexer.IDENT) && p.peekIs(lexer.COLON) {
				name = p.cur.Literal
				p.next()
				p.next()
			}
			t := p.parseType()
			fields = append(fields, ast.TupleField{Name: name, Type: t})
			if p.curIs(lexer.COMMA) {
				p.next()
			} else {
				break
			}
		}
		p.expect(lexer.RPAREN)
		return &ast.TupleType{Fields: fields, Sp: p.spanFrom(start)}
	case lexer.IDENT:
		// List<T> generic syntax sugar over the built-in list type.
		if p.cur.Literal == "List" && p.peekIs(lexer.LT) {
			p.next()
			p.next() // consume <
			elem := p.parseType()
			if p.curIs(lexer.GT) {
				p.next()
			} else if p.curIs(lexer.SHR) {
				// split '>>' into two '>' when closing a nested generic
				p.cur.Type = lexer.GT
			}
			return &ast.ListType{Elem: elem, Sp: p.spanFrom(start)}
		}
		name := p.cur.Literal
		p.next()
		return &ast.NameType{Name: name, Sp: p.spanFrom(start)}
	default:
		p.errorf("expected type, got %s %q", p.cur.Type, p.cur.Literal)
		t := &ast.NameType{Name: "<error>", Sp: p.spanFrom(start)}
		p.next()
		return t
	}
}
