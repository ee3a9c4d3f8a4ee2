// Package parser implements a recursive-descent, Pratt-expression parser
// producing internal/ast trees from an internal/lexer token stream.
package parser

import (
	"fmt"

	"github.com/emplang/empc/internal/ast"
	"github.com/emplang/empc/internal/diag"
	"github.com/emplang/empc/internal/lexer"
)

// Precedence levels, lowest to highest.
const (
	LOWEST int = iota
	ASSIGNMENT
	TERNARY
	LOGICALOR
	LOGICALAND
	BITOR
	BITXOR
	BITAND
	EQUALS
	LESSGREATER
	SHIFT
	SUM
	PRODUCT
	CAST
	PREFIX
	CALLPREC
	INDEXPREC
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN: ASSIGNMENT, lexer.PLUSEQ: ASSIGNMENT, lexer.MINUSEQ: ASSIGNMENT,
	lexer.STAREQ: ASSIGNMENT, lexer.SLASHEQ: ASSIGNMENT, lexer.PERCENTEQ: ASSIGNMENT,
	lexer.AMPEQ: ASSIGNMENT, lexer.PIPEEQ: ASSIGNMENT, lexer.CARETEQ: ASSIGNMENT,
	lexer.SHLEQ: ASSIGNMENT, lexer.SHREQ: ASSIGNMENT,
	lexer.QUESTION:    TERNARY,
	lexer.OROR:        LOGICALOR,
	lexer.ANDAND:      LOGICALAND,
	lexer.PIPE:        BITOR,
	lexer.CARET:       BITXOR,
	lexer.AMP:         BITAND,
	lexer.EQ:          EQUALS,
	lexer.NEQ:         EQUALS,
	lexer.LT:          LESSGREATER,
	lexer.LE:          LESSGREATER,
	lexer.GT:          LESSGREATER,
	lexer.GE:          LESSGREATER,
	lexer.SHL:         SHIFT,
	lexer.SHR:         SHIFT,
	lexer.PLUS:        SUM,
	lexer.MINUS:       SUM,
	lexer.STAR:        PRODUCT,
	lexer.SLASH:       PRODUCT,
	lexer.PERCENT:     PRODUCT,
	lexer.AS:          CAST,
	lexer.LPAREN:      CALLPREC,
	lexer.DOT:         INDEXPREC,
	lexer.LBRACKET:    INDEXPREC,
	lexer.DOTDOT:      LESSGREATER,
}

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS: ast.BinAdd, lexer.MINUS: ast.BinSub, lexer.STAR: ast.BinMul,
	lexer.SLASH: ast.BinDiv, lexer.PERCENT: ast.BinMod,
	lexer.AMP: ast.BinBitAnd, lexer.PIPE: ast.BinBitOr, lexer.CARET: ast.BinBitXor,
	lexer.SHL: ast.BinShl, lexer.SHR: ast.BinShr,
	lexer.EQ: ast.BinEq, lexer.NEQ: ast.BinNeq,
	lexer.LT: ast.BinLt, lexer.LE: ast.BinLe, lexer.GT: ast.BinGt, lexer.GE: ast.BinGe,
	lexer.ANDAND: ast.BinAnd, lexer.OROR: ast.BinOr,
	lexer.ASSIGN: ast.BinAssign,
	lexer.PLUSEQ: ast.BinAddAssign, lexer.MINUSEQ: ast.BinSubAssign,
	lexer.STAREQ: ast.BinMulAssign, lexer.SLASHEQ: ast.BinDivAssign,
	lexer.PERCENTEQ: ast.BinModAssign,
	lexer.AMPEQ: ast.BinBitAndAssign, lexer.PIPEEQ: ast.BinBitOrAssign, lexer.CARETEQ: ast.BinBitXorAssign,
	lexer.SHLEQ: ast.BinShlAssign, lexer.SHREQ: ast.BinShrAssign,
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parser parses one module's token stream into an *ast.Program.
type Parser struct {
	l    *lexer.Lexer
	file string

	cur  lexer.Token
	peek lexer.Token

	Errors []diag.Diagnostic

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser reading tokens from l.
func New(file string, l *lexer.Lexer) *Parser {
	p := &Parser{l: l, file: file}
	p.prefixFns = map[lexer.TokenType]prefixParseFn{
		lexer.INT: p.parseLiteral(ast.IntLit), lexer.FLOAT: p.parseLiteral(ast.FloatLit),
		lexer.CHAR: p.parseLiteral(ast.CharLit), lexer.STRING: p.parseStringOrFString,
		lexer.TRUE: p.parseBoolLiteral, lexer.FALSE: p.parseBoolLiteral, lexer.NULL: p.parseNullLiteral,
		lexer.IDENT: p.parseIdent,
		lexer.MINUS: p.parseUnary(ast.UnaryNeg), lexer.BANG: p.parseUnary(ast.UnaryNot),
		lexer.STAR:  p.parseUnary(ast.UnaryDeref),
		lexer.AMP:   p.parseRef,
		lexer.LPAREN: p.parseGroupOrTuple,
		lexer.LBRACKET: p.parseListLiteral,
		lexer.NEW: p.parseNewExpr,
	}
	p.infixFns = map[lexer.TokenType]infixParseFn{
		lexer.LPAREN: p.parseCall, lexer.DOT: p.parseMember, lexer.LBRACKET: p.parseIndex,
		lexer.AS: p.parseCast, lexer.QUESTION: p.parseTernary, lexer.DOTDOT: p.parseRange,
	}
	for t := range binaryOps {
		p.infixFns[t] = p.parseBinary
	}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.Next()
}

func (p *Parser) curSpan() diag.Span {
	start := diag.Pos{File: p.file, Offset: p.cur.Offset, Line: p.cur.Line, Column: p.cur.Column}
	return diag.Span{Start: start, End: start}
}

func (p *Parser) spanFrom(start diag.Pos) diag.Span {
	end := diag.Pos{File: p.file, Offset: p.cur.Offset, Line: p.cur.Line, Column: p.cur.Column}
	return diag.Span{Start: start, End: end}
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.Errors = append(p.Errors, diag.Diagnostic{
		Phase:   diag.PhaseParse,
		Code:    "PAR001",
		Span:    p.curSpan(),
		Message: fmt.Sprintf(format, args...),
	})
}

// expect consumes cur if it matches tt, else records a diagnostic and
// leaves position unchanged so callers can attempt to resync.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.cur.Type == tt {
		p.next()
		return true
	}
	p.errorf("expected %s, got %s %q", tt, p.cur.Type, p.cur.Literal)
	return false
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.cur.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peek.Type == tt }

// ParseProgram parses the whole token stream into one module's items.
func (p *Parser) ParseProgram() *ast.Program {
	start := diag.Pos{File: p.file, Offset: 0, Line: 1, Column: 1}
	var items []ast.Item
	for !p.curIs(lexer.EOF) {
		it := p.parseItem()
		if it != nil {
			items = append(items, it)
			continue
		}
		// resync: skip to next item-starting keyword or EOF
		p.next()
	}
	return &ast.Program{Items: items, Sp: p.spanFrom(start)}
}

// ---- expression parsing (Pratt) ----

func (p *Parser) parseExpr(precedence int) ast.Expr {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.errorf("no prefix parse for %s %q", p.cur.Type, p.cur.Literal)
		p.next()
		return nil
	}
	left := prefix()

	for !p.curIs(lexer.SEMI) && precedence < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur.Type]
		if !ok || left == nil {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) parseLiteral(kind ast.LiteralKind) prefixParseFn {
	return func() ast.Expr {
		start := p.curSpan().Start
		lit := &ast.Literal{Kind: kind, Value: p.cur.Literal}
		lit.Sp = p.spanFrom(start)
		p.next()
		return lit
	}
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	start := p.curSpan().Start
	v := "false"
	if p.cur.Type == lexer.TRUE {
		v = "true"
	}
	lit := &ast.Literal{Kind: ast.IntLit, Value: v}
	lit.Sp = p.spanFrom(start)
	p.next()
	return lit
}

func (p *Parser) parseNullLiteral() ast.Expr {
	start := p.curSpan().Start
	lit := &ast.Literal{Kind: ast.IntLit, Value: "null"}
	lit.Sp = p.spanFrom(start)
	p.next()
	return lit
}

// parseStringOrFString handles plain string literals; f-strings are
// lexed with an "f" prefix folded into STRING by the lexer's
// lexIdentOrFStringPrefix, so here we just detect embedded `{expr}`
// interpolation markers in the literal text.
func (p *Parser) parseStringOrFString() ast.Expr {
	start := p.curSpan().Start
	raw := p.cur.Literal
	p.next()
	if !containsBrace(raw) {
		lit := &ast.Literal{Kind: ast.StringLit, Value: raw}
		lit.Sp = p.spanFrom(start)
		return lit
	}
	fs := &FStringSplitter{Src: raw, File: p.file, Span: p.spanFrom(start)}
	f := &ast.FString{Parts: fs.Split()}
	f.Sp = p.spanFrom(start)
	return f
}

func containsBrace(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '{' {
			return true
		}
	}
	return false
}

func (p *Parser) parseIdent() ast.Expr {
	start := p.curSpan().Start
	id := &ast.Ident{Name: p.cur.Literal}
	id.Sp = p.spanFrom(start)
	p.next()
	return id
}

func (p *Parser) parseUnary(op ast.UnaryOp) prefixParseFn {
	return func() ast.Expr {
		start := p.curSpan().Start
		p.next()
		operand := p.parseExpr(PREFIX)
		u := &ast.Unary{Op: op, Operand: operand}
		u.Sp = p.spanFrom(start)
		return u
	}
}

func (p *Parser) parseRef() ast.Expr {
	start := p.curSpan().Start
	p.next() // consume &
	op := ast.UnaryRef
	if p.curIs(lexer.MUT) {
		op = ast.UnaryRefMut
		p.next()
	}
	operand := p.parseExpr(PREFIX)
	u := &ast.Unary{Op: op, Operand: operand}
	u.Sp = p.spanFrom(start)
	return u
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	start := left.Span().Start
	op := binaryOps[p.cur.Type]
	precedence := p.curPrecedence()
	p.next()
	rightPrec := precedence
	if !op.IsAssign() {
		rightPrec = precedence + 1
	}
	right := p.parseExpr(rightPrec)
	b := &ast.Binary{Op: op, Left: left, Right: right}
	b.Sp = p.spanFrom(start)
	return b
}

func (p *Parser) parseGroupOrTuple() ast.Expr {
	start := p.curSpan().Start
	p.next() // consume (
	if p.curIs(lexer.RPAREN) {
		p.next()
		t := &ast.TupleExpr{}
		t.Sp = p.spanFrom(start)
		return t
	}
	first := p.parseExpr(LOWEST)
	if p.curIs(lexer.COMMA) {
		elems := []ast.Expr{first}
		for p.curIs(lexer.COMMA) {
			p.next()
			if p.curIs(lexer.RPAREN) {
				break
			}
			elems = append(elems, p.parseExpr(LOWEST))
		}
		p.expect(lexer.RPAREN)
		t := &ast.TupleExpr{Elems: elems}
		t.Sp = p.spanFrom(start)
		return t
	}
	p.expect(lexer.RPAREN)
	g := &ast.Group{Inner: first}
	g.Sp = p.spanFrom(start)
	return g
}

func (p *Parser) parseListLiteral() ast.Expr {
	start := p.curSpan().Start
	p.next() // consume [
	var elems []ast.Expr
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		elems = append(elems, p.parseExpr(LOWEST))
		if p.curIs(lexer.COMMA) {
			p.next()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	l := &ast.ListExpr{Elems: elems}
	l.Sp = p.spanFrom(start)
	return l
}

func (p *Parser) parseNewExpr() ast.Expr {
	start := p.curSpan().Start
	p.next() // consume new
	name := p.cur.Literal
	p.expect(lexer.IDENT)
	args := p.parseArgList()
	n := &ast.New{ClassName: name, Args: args}
	n.Sp = p.spanFrom(start)
	return n
}

func (p *Parser) parseArgList() []ast.Expr {
	p.expect(lexer.LPAREN)
	var args []ast.Expr
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		args = append(args, p.parseExpr(LOWEST))
		if p.curIs(lexer.COMMA) {
			p.next()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	start := callee.Span().Start
	args := p.parseArgList()
	c := &ast.Call{Callee: callee, Args: args}
	c.Sp = p.spanFrom(start)
	return c
}

func (p *Parser) parseMember(base ast.Expr) ast.Expr {
	start := base.Span().Start
	p.next() // consume .
	name := p.cur.Literal
	p.expect(lexer.IDENT)
	m := &ast.Member{Base: base, Name: name}
	m.Sp = p.spanFrom(start)
	return m
}

func (p *Parser) parseIndex(base ast.Expr) ast.Expr {
	start := base.Span().Start
	p.next() // consume [
	idx := p.parseExpr(LOWEST)
	p.expect(lexer.RBRACKET)
	ix := &ast.Index{Base: base, Index: idx}
	ix.Sp = p.spanFrom(start)
	return ix
}

func (p *Parser) parseCast(value ast.Expr) ast.Expr {
	start := value.Span().Start
	p.next() // consume as
	dynConcrete := ""
	var target ast.Type
	if p.curIs(lexer.DYN) {
		p.next()
		target = &ast.DynType{Base: p.cur.Literal, Sp: p.curSpan()}
		if u, ok := value.(*ast.Unary); ok && u.Op == ast.UnaryRef {
			if id, ok := u.Operand.(*ast.Ident); ok {
				dynConcrete = id.Name
			}
		}
		p.expect(lexer.IDENT)
	} else {
		target = p.parseType()
	}
	c := &ast.Cast{Value: value, To: target, DynConcreteName: dynConcrete}
	c.Sp = p.spanFrom(start)
	return c
}

func (p *Parser) parseTernary(cond ast.Expr) ast.Expr {
	start := cond.Span().Start
	p.next() // consume ?
	then := p.parseExpr(LOWEST)
	p.expect(lexer.COLON)
	els := p.parseExpr(TERNARY)
	t := &ast.Ternary{Cond: cond, Then: then, Else: els}
	t.Sp = p.spanFrom(start)
	return t
}

func (p *Parser) parseRange(lo ast.Expr) ast.Expr {
	start := lo.Span().Start
	p.next() // consume ..
	hi := p.parseExpr(LESSGREATER)
	r := &ast.Range{Lo: lo, Hi: hi}
	r.Sp = p.spanFrom(start)
	return r
}
