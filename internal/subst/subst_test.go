package subst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/constraint"
	"github.com/oal-lang/oal/internal/unify"
)

func TestApplyRewritesResolvedVariables(t *testing.T) {
	n := ast.NewNode(&ast.Variable{Name: "x"})
	n.Tag = ast.TVar{N: 0}

	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Resource{Expr: n},
	}}

	s, err := unify.Unify([]constraint.Constraint{{Left: ast.TVar{N: 0}, Right: ast.TagPrimitive}})
	require.NoError(t, err)

	require.NoError(t, Apply(prog, s))
	assert.True(t, ast.TagsEqual(n.Tag, ast.TagPrimitive))
}

func TestApplyLeavesUnboundVariablesAsVar(t *testing.T) {
	n := ast.NewNode(&ast.Variable{Name: "x"})
	n.Tag = ast.TVar{N: 7}

	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Resource{Expr: n},
	}}

	s, err := unify.Unify(nil)
	require.NoError(t, err)

	require.NoError(t, Apply(prog, s))
	assert.Equal(t, ast.TVar{N: 7}, n.Tag)
}

func TestApplySkipsNodesWithNoTag(t *testing.T) {
	n := ast.NewNode(&ast.Primitive{Kind: ast.PrimString})
	// Deliberately untagged, as if subst ran before the tagger.
	n.Tag = nil

	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Resource{Expr: n},
	}}

	s, err := unify.Unify(nil)
	require.NoError(t, err)

	require.NoError(t, Apply(prog, s))
	assert.Nil(t, n.Tag)
}
