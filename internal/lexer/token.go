package lexer

import "fmt"

// TokenType enumerates the lexical token kinds of EMP source.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	IDENT
	INT
	FLOAT
	CHAR
	STRING
	FSTRING_START // f" ... opening of an f-string; parser reassembles parts

	// Keywords
	FN
	LET
	IF
	ELSE
	WHILE
	FOR
	BREAK
	CONTINUE
	RETURN
	MATCH
	DROP
	DEFER
	NEW
	CLASS
	TRAIT
	STRUCT
	ENUM
	IMPL
	USE
	FROM
	AS
	CONST
	TRUE
	FALSE
	NULL
	MUT
	DYN
	VIRTUAL
	INIT
	EXPORT
	AUTO
	AT // @ (tags, @emp)

	// Operators / punctuation
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	AMP
	PIPE
	CARET
	SHL
	SHR
	BANG
	ANDAND
	OROR
	EQ
	NEQ
	LT
	LE
	GT
	GE
	ASSIGN
	PLUSEQ
	MINUSEQ
	STAREQ
	SLASHEQ
	PERCENTEQ
	AMPEQ
	PIPEEQ
	CARETEQ
	SHLEQ
	SHREQ
	ARROW  // ->
	FATARROW
	DOTDOT // ..
	QUESTION
	COLON
	COLONCOLON
	SEMI
	COMMA
	DOT
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
)

var names = map[TokenType]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF",
	IDENT: "IDENT", INT: "INT", FLOAT: "FLOAT", CHAR: "CHAR", STRING: "STRING", FSTRING_START: "FSTRING",
	FN: "fn", LET: "let", IF: "if", ELSE: "else", WHILE: "while", FOR: "for",
	BREAK: "break", CONTINUE: "continue", RETURN: "return", MATCH: "match",
	DROP: "drop", DEFER: "defer", NEW: "new", CLASS: "class", TRAIT: "trait",
	STRUCT: "struct", ENUM: "enum", IMPL: "impl", USE: "use", FROM: "from",
	AS: "as", CONST: "const", TRUE: "true", FALSE: "false", NULL: "null",
	MUT: "mut", DYN: "dyn", VIRTUAL: "virtual", INIT: "init", EXPORT: "export",
	AUTO: "auto", AT: "@",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	AMP: "&", PIPE: "|", CARET: "^", SHL: "<<", SHR: ">>", BANG: "!",
	ANDAND: "&&", OROR: "||", EQ: "==", NEQ: "!=", LT: "<", LE: "<=", GT: ">", GE: ">=",
	ASSIGN: "=", PLUSEQ: "+=", MINUSEQ: "-=", STAREQ: "*=", SLASHEQ: "/=",
	PERCENTEQ: "%=", AMPEQ: "&=", PIPEEQ: "|=", CARETEQ: "^=", SHLEQ: "<<=", SHREQ: ">>=",
	ARROW: "->", FATARROW: "=>", DOTDOT: "..", QUESTION: "?", COLON: ":", COLONCOLON: "::",
	SEMI: ";", COMMA: ",", DOT: ".",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]",
}

func (t TokenType) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// keywords is the static lookup table mapping identifier bytes to a
// keyword token kind (spec.md Design Notes §9: "a static perfect-hash or
// sorted lookup table"). A Go map over interned keyword strings gives
// O(1) average lookup without hand-rolling a perfect hash, which is the
// idiomatic equivalent in a GC'd host language.
var keywords = map[string]TokenType{
	"fn": FN, "let": LET, "if": IF, "else": ELSE, "while": WHILE, "for": FOR,
	"break": BREAK, "continue": CONTINUE, "return": RETURN, "match": MATCH,
	"drop": DROP, "defer": DEFER, "new": NEW, "class": CLASS, "trait": TRAIT,
	"struct": STRUCT, "enum": ENUM, "impl": IMPL, "use": USE, "from": FROM,
	"as": AS, "const": CONST, "true": TRUE, "false": FALSE, "null": NULL,
	"mut": MUT, "dyn": DYN, "virtual": VIRTUAL, "init": INIT, "export": EXPORT,
	"auto": AUTO,
}

// LookupIdent returns the keyword token for ident, or IDENT if it is not
// a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Token is one lexical token.
type Token struct {
	Type    TokenType
	Literal string
	File    string
	Offset  int
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s:%d:%d", t.Type, t.Literal, t.File, t.Line, t.Column)
}
