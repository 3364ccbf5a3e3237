package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnotationTypedGetters(t *testing.T) {
	ann := Annotation{
		"description": "a pet",
		"required":     "true",
		"minimum":      "1.5",
		"multipleOf":   "2",
		"enum":         "a,b,c",
	}

	s, ok := ann.GetString("description")
	assert.True(t, ok)
	assert.Equal(t, "a pet", s)

	b, ok := ann.GetBool("required")
	assert.True(t, ok)
	assert.True(t, b)

	f, ok := ann.GetNum("minimum")
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	n, ok := ann.GetInt("multipleOf")
	assert.True(t, ok)
	assert.Equal(t, int64(2), n)

	enum, ok := ann.GetEnum("enum")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, enum)
}

func TestAnnotationGettersMissingKey(t *testing.T) {
	ann := Annotation{}
	_, ok := ann.GetString("missing")
	assert.False(t, ok)
	_, ok = ann.GetBool("missing")
	assert.False(t, ok)
	_, ok = ann.GetEnum("missing")
	assert.False(t, ok)
}

func TestAnnotationGetBoolRejectsUnparseableValue(t *testing.T) {
	ann := Annotation{"required": "yesish"}
	_, ok := ann.GetBool("required")
	assert.False(t, ok)
}

func TestAnnotationMergeOverridesWithOther(t *testing.T) {
	a := Annotation{"description": "old", "title": "kept"}
	other := Annotation{"description": "new"}

	merged := a.Merge(other)
	assert.Equal(t, "new", merged["description"])
	assert.Equal(t, "kept", merged["title"])
}

func TestIsWellKnownAnnotationKey(t *testing.T) {
	assert.True(t, IsWellKnownAnnotationKey("description"))
	assert.False(t, IsWellKnownAnnotationKey("bogus"))
}
