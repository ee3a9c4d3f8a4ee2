package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(src string) []Token {
	l := New("t.emp", []byte(src))
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	toks := collect("fn let myVar")
	assert.Equal(t, FN, toks[0].Type)
	assert.Equal(t, LET, toks[1].Type)
	assert.Equal(t, IDENT, toks[2].Type)
	assert.Equal(t, "myVar", toks[2].Literal)
}

func TestNumbers(t *testing.T) {
	toks := collect("42 3.14")
	assert.Equal(t, INT, toks[0].Type)
	assert.Equal(t, "42", toks[0].Literal)
	assert.Equal(t, FLOAT, toks[1].Type)
	assert.Equal(t, "3.14", toks[1].Literal)
}

func TestStringAndChar(t *testing.T) {
	toks := collect(`"hi" 'a'`)
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, "hi", toks[0].Literal)
	assert.Equal(t, CHAR, toks[1].Type)
	assert.Equal(t, "a", toks[1].Literal)
}

func TestOperatorsAndCompoundAssign(t *testing.T) {
	toks := collect("+= -> => == <= >>=")
	want := []TokenType{PLUSEQ, ARROW, FATARROW, EQ, LE, SHREQ}
	for i, w := range want {
		assert.Equal(t, w, toks[i].Type, "token %d", i)
	}
}

func TestCommentsSkipped(t *testing.T) {
	toks := collect("// a line\nlet /* block */ x")
	assert.Equal(t, LET, toks[0].Type)
	assert.Equal(t, IDENT, toks[1].Type)
	assert.Equal(t, "x", toks[1].Literal)
}

func TestIllegalByteRecordsDiagnostic(t *testing.T) {
	l := New("t.emp", []byte("`"))
	tok := l.Next()
	assert.Equal(t, ILLEGAL, tok.Type)
	assert.Len(t, l.Errors, 1)
	assert.Equal(t, "LEX001", l.Errors[0].Code)
}

func TestUnterminatedString(t *testing.T) {
	l := New("t.emp", []byte(`"abc`))
	tok := l.Next()
	assert.Equal(t, ILLEGAL, tok.Type)
	assert.Len(t, l.Errors, 1)
}

func TestLineColumnTracking(t *testing.T) {
	toks := collect("a\nb")
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 1, toks[1].Column)
}
