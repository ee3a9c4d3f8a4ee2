package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypesEqualShallowPointer(t *testing.T) {
	p1 := &PtrType{Elem: &NameType{Name: "u8"}}
	p2 := &PtrType{Elem: &NameType{Name: "i32"}}
	assert.True(t, TypesEqual(p1, p2), "pointer equality is deliberately shallow: pointee type is not enforced")
}

func TestTypesEqualNameByName(t *testing.T) {
	assert.True(t, TypesEqual(&NameType{Name: "i32"}, &NameType{Name: "i32"}))
	assert.False(t, TypesEqual(&NameType{Name: "i32"}, &NameType{Name: "i64"}))
}

func TestTypesEqualListByElement(t *testing.T) {
	a := &ListType{Elem: &NameType{Name: "i32"}}
	b := &ListType{Elem: &NameType{Name: "i32"}}
	c := &ListType{Elem: &NameType{Name: "f64"}}
	assert.True(t, TypesEqual(a, b))
	assert.False(t, TypesEqual(a, c))
}

func TestTypesEqualArrayBySizeText(t *testing.T) {
	a := &ArrayType{Elem: &NameType{Name: "i32"}, Size: "4"}
	b := &ArrayType{Elem: &NameType{Name: "i32"}, Size: "4"}
	c := &ArrayType{Elem: &NameType{Name: "i32"}, Size: "8"}
	assert.True(t, TypesEqual(a, b))
	assert.False(t, TypesEqual(a, c))
}

func TestIsCopyLike(t *testing.T) {
	assert.True(t, IsCopyLike(&NameType{Name: "i32"}))
	assert.True(t, IsCopyLike(&PtrType{Elem: &NameType{Name: "u8"}}))
	assert.False(t, IsCopyLike(&NameType{Name: "MyClass"}))
}

func TestIsAuto(t *testing.T) {
	assert.True(t, IsAuto(&Auto{}))
	assert.False(t, IsAuto(&NameType{Name: "i32"}))
}
