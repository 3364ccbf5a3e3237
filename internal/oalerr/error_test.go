package oalerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oal-lang/oal/internal/ast"
)

func TestNewAssignsIDAndKind(t *testing.T) {
	err := New(InvalidTypes, "bad shape: %s", "Object")
	assert.Equal(t, InvalidTypes, err.Kind)
	assert.Equal(t, "bad shape: Object", err.Message)
	assert.NotEmpty(t, err.ID)
	assert.Nil(t, err.Span)
}

func TestAtAttachesSpanOnce(t *testing.T) {
	err := New(CycleDetected, "cycle")
	first := &ast.Span{File: "a.oal", Start: 1, End: 2}
	second := &ast.Span{File: "b.oal", Start: 5, End: 6}

	err.At(first)
	err.At(second)

	assert.Same(t, first, err.Span, "a located error keeps its first span")
}

func TestAtOnNilErrorIsNoop(t *testing.T) {
	var err *Error
	assert.Nil(t, err.At(&ast.Span{}))
}

func TestErrorStringIncludesSpanWhenPresent(t *testing.T) {
	err := New(InvalidSyntax, "oops").At(&ast.Span{File: "a.oal", Start: 1, End: 2})
	assert.Contains(t, err.Error(), "InvalidSyntax")
	assert.Contains(t, err.Error(), "a.oal:1-2")
}

func TestErrorStringWithoutSpan(t *testing.T) {
	err := New(Unknown, "mystery")
	assert.Equal(t, "Unknown: mystery", err.Error())
}

func TestAtErrPassesThroughNonOalError(t *testing.T) {
	plain := errors.New("boom")
	got := AtErr(plain, &ast.Span{File: "a.oal"})
	assert.Same(t, plain, got)
}

func TestAtErrAttachesSpanToOalError(t *testing.T) {
	err := New(Conflict, "dup")
	span := &ast.Span{File: "a.oal", Start: 1, End: 2}
	got := AtErr(err, span)

	oe, ok := got.(*Error)
	require.True(t, ok)
	assert.Same(t, span, oe.Span)
}
