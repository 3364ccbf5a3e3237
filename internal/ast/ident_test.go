package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentReferenceVsValue(t *testing.T) {
	ref := Ident("@Pet")
	val := Ident("pet")

	assert.True(t, ref.IsReference())
	assert.False(t, ref.IsValue())
	assert.False(t, val.IsReference())
	assert.True(t, val.IsValue())
}

func TestIdentBareStripsSigilOnlyWhenPresent(t *testing.T) {
	assert.Equal(t, "Pet", Ident("@Pet").Bare())
	assert.Equal(t, "pet", Ident("pet").Bare())
}

func TestSpanStringNilSafe(t *testing.T) {
	var s *Span
	assert.Equal(t, "<unknown>", s.String())

	s = &Span{File: "a.oal", Start: 1, End: 4}
	assert.Equal(t, "a.oal:1-4", s.String())
}

func TestMethodsNamesInDeclaredOrder(t *testing.T) {
	m := Post | Get | Delete
	assert.Equal(t, []string{"get", "post", "delete"}, m.Names())
}
