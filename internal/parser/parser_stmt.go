package parser

import (
	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/lexer"
)

func (p *Parser) parseBlock() *ast.Block {
	start := p.curSpan().Start
	p.expect(lexer.LBRACE)
	var stmts []ast.Stmt
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		} else {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	b := &ast.Block{Stmts: stmts}
	b.Sp = p.spanFrom(start)
	return b
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Type {
	case lexer.LET:
		return p.parseVarDecl()
	case lexer.DROP:
		return p.parseDrop()
	case lexer.DEFER:
		return p.parseDefer()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.BREAK:
		start := p.curSpan().Start
		p.next()
		p.expect(lexer.SEMI)
		return ast.NewBreak(p.spanFrom(start))
	case lexer.CONTINUE:
		start := p.curSpan().Start
		p.next()
		p.expect(lexer.SEMI)
		return ast.NewContinue(p.spanFrom(start))
	case lexer.MATCH:
		return p.parseMatch()
	case lexer.AT:
		return p.parseAtStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseVarDecl() ast.Stmt {
	start := p.curSpan().Start
	p.next() // let
	if p.curIs(lexer.LPAREN) {
		p.next()
		var names []ast.DestructureName
		for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
			n := p.cur.Literal
			p.expect(lexer.IDENT)
			var typ ast.Type
			if p.curIs(lexer.COLON) {
				p.next()
				typ = p.parseType()
			}
			names = append(names, ast.DestructureName{Name: n, Type: typ})
			if p.curIs(lexer.COMMA) {
				p.next()
			} else {
				break
			}
		}
		p.expect(lexer.RPAREN)
		p.expect(lexer.ASSIGN)
		init := p.parseExpr(LOWEST)
		p.expect(lexer.SEMI)
		v := &ast.VarDecl{Destructure: names, Init: init}
		v.Sp = p.spanFrom(start)
		return v
	}

	name := p.cur.Literal
	p.expect(lexer.IDENT)
	var declared ast.Type = &ast.Auto{Sp: p.curSpan()}
	if p.curIs(lexer.COLON) {
		p.next()
		declared = p.parseType()
	}
	var init ast.Expr
	if p.curIs(lexer.ASSIGN) {
		p.next()
		init = p.parseExpr(LOWEST)
	}
	p.expect(lexer.SEMI)
	v := &ast.VarDecl{Name: name, Declared: declared, Init: init}
	v.Sp = p.spanFrom(start)
	return v
}

func (p *Parser) parseDrop() ast.Stmt {
	start := p.curSpan().Start
	p.next()
	name := p.cur.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.SEMI)
	d := &ast.Drop{Name: name}
	d.Sp = p.spanFrom(start)
	return d
}

func (p *Parser) parseDefer() ast.Stmt {
	start := p.curSpan().Start
	p.next()
	call := p.parseExpr(LOWEST)
	p.expect(lexer.SEMI)
	d := &ast.Defer{Call: call}
	d.Sp = p.spanFrom(start)
	return d
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.curSpan().Start
	p.next()
	var val ast.Expr
	if !p.curIs(lexer.SEMI) {
		val = p.parseExpr(LOWEST)
	}
	p.expect(lexer.SEMI)
	r := &ast.Return{Value: val}
	r.Sp = p.spanFrom(start)
	return r
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.curSpan().Start
	e := p.parseExpr(LOWEST)
	p.expect(lexer.SEMI)
	s := &ast.ExprStmt{Value: e}
	s.Sp = p.spanFrom(start)
	return s
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.curSpan().Start
	p.next()
	cond := p.parseExpr(LOWEST)
	then := p.parseBlock()
	var els ast.Stmt
	if p.curIs(lexer.ELSE) {
		p.next()
		if p.curIs(lexer.IF) {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
	}
	n := &ast.If{Cond: cond, Then: then, Else: els}
	n.Sp = p.spanFrom(start)
	return n
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.curSpan().Start
	p.next()
	cond := p.parseExpr(LOWEST)
	body := p.parseBlock()
	n := &ast.While{Cond: cond, Body: body}
	n.Sp = p.spanFrom(start)
	return n
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.curSpan().Start
	p.next()
	var init ast.Stmt
	if !p.curIs(lexer.SEMI) {
		init = p.parseStmt()
	} else {
		p.next()
	}
	var cond ast.Expr
	if !p.curIs(lexer.SEMI) {
		cond = p.parseExpr(LOWEST)
	}
	p.expect(lexer.SEMI)
	var post ast.Stmt
	if !p.curIs(lexer.LBRACE) {
		startPost := p.curSpan().Start
		e := p.parseExpr(LOWEST)
		es := &ast.ExprStmt{Value: e}
		es.Sp = p.spanFrom(startPost)
		post = es
	}
	body := p.parseBlock()
	n := &ast.For{Init: init, Cond: cond, Post: post, Body: body}
	n.Sp = p.spanFrom(start)
	return n
}

func (p *Parser) parseMatch() ast.Stmt {
	start := p.curSpan().Start
	p.next()
	scrutinee := p.parseExpr(LOWEST)
	p.expect(lexer.LBRACE)
	var arms []ast.MatchArm
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		arms = append(arms, p.parseMatchArm())
	}
	p.expect(lexer.RBRACE)
	m := &ast.Match{Scrutinee: scrutinee, Arms: arms}
	m.Sp = p.spanFrom(start)
	return m
}

func (p *Parser) parseMatchArm() ast.MatchArm {
	start := p.curSpan().Start
	if p.curIs(lexer.IDENT) && p.cur.Literal == "_" {
		p.next()
		p.expect(lexer.FATARROW)
		body := p.parseBlock()
		return ast.MatchArm{IsDefault: true, Body: body, Sp: p.spanFrom(start)}
	}
	enumName := p.cur.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.COLONCOLON)
	variant := p.cur.Literal
	p.expect(lexer.IDENT)
	var bindings []string
	if p.curIs(lexer.LPAREN) {
		p.next()
		for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
			bindings = append(bindings, p.cur.Literal)
			p.next()
			if p.curIs(lexer.COMMA) {
				p.next()
			} else {
				break
			}
		}
		p.expect(lexer.RPAREN)
	}
	p.expect(lexer.FATARROW)
	body := p.parseBlock()
	return ast.MatchArm{EnumName: enumName, Variant: variant, Bindings: bindings, Body: body, Sp: p.spanFrom(start)}
}

func (p *Parser) parseAtStmt() ast.Stmt {
	start := p.curSpan().Start
	p.next() // consume @
	if p.curIs(lexer.IDENT) && p.cur.Literal == "emp" {
		p.next()
		if p.curIs(lexer.IDENT) && p.cur.Literal == "mm" {
			p.next()
			p.next() // off
			body := p.parseBlock()
			n := &ast.MMOff{Body: body}
			n.Sp = p.spanFrom(start)
			return n
		}
		p.next() // off
		body := p.parseBlock()
		n := &ast.EmpOff{Body: body}
		n.Sp = p.spanFrom(start)
		return n
	}
	name := p.cur.Literal
	p.expect(lexer.IDENT)
	var args []ast.Expr
	if p.curIs(lexer.LPAREN) {
		args = p.parseArgList()
	}
	p.expect(lexer.SEMI)
	t := &ast.Tag{Name: name, Args: args}
	t.Sp = p.spanFrom(start)
	return t
}
