package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintProgramIsValidJSON(t *testing.T) {
	prog := &Program{
		Items: []Item{
			&FuncDecl{
				Name:       "main",
				ReturnType: &Auto{},
				Body: &Block{Stmts: []Stmt{
					&VarDecl{Name: "x", Declared: &NameType{Name: "i32"}, Init: &Literal{Kind: IntLit, Value: "1"}},
					&Return{},
				}},
			},
		},
	}

	out := Print(prog)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Program", decoded["type"])

	items, ok := decoded["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	fn := items[0].(map[string]interface{})
	assert.Equal(t, "FuncDecl", fn["type"])
	assert.Equal(t, "main", fn["name"])
}

func TestPrintNilProgram(t *testing.T) {
	assert.Equal(t, "null", Print(nil))
}
