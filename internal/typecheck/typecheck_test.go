package typecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/oalerr"
)

func kindOf(t *testing.T, err error) oalerr.Kind {
	t.Helper()
	oe, ok := err.(*oalerr.Error)
	require.True(t, ok, "expected *oalerr.Error, got %T", err)
	return oe.Kind
}

func TestCheckReferenceDeclarationMustBeSchema(t *testing.T) {
	binding := ast.NewNode(&ast.Binding{Name: "x"})
	body := ast.NewNode(&ast.Variable{Name: "x"})
	lambda := ast.NewNode(&ast.Lambda{Bindings: []*ast.Node{binding}, Body: body})
	lambda.Tag = ast.TFunc{Bindings: []ast.Tag{ast.TagPrimitive}, Range: ast.TagPrimitive}

	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Declaration{Name: "@Bad", Expr: lambda},
	}}

	err := Check(prog)
	require.Error(t, err)
	assert.Equal(t, oalerr.InvalidTypes, kindOf(t, err))
}

func TestCheckReferenceDeclarationAcceptsSchema(t *testing.T) {
	schema := ast.NewNode(&ast.Primitive{Kind: ast.PrimString})
	schema.Tag = ast.TagPrimitive

	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Declaration{Name: "@Good", Expr: schema},
	}}

	assert.NoError(t, Check(prog))
}

func TestCheckValueDeclarationEscapesCheck(t *testing.T) {
	// A value-level name may be function-producing; no schema constraint
	// applies even though its tag is a TFunc.
	body := ast.NewNode(&ast.Primitive{Kind: ast.PrimString})
	body.Tag = ast.TagPrimitive
	lambda := ast.NewNode(&ast.Lambda{Body: body})
	lambda.Tag = ast.TFunc{Range: ast.TagPrimitive}

	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Declaration{Name: "f", Expr: lambda},
	}}

	assert.NoError(t, Check(prog))
}

func TestCheckArrayItemMustBeSchema(t *testing.T) {
	notASchema := ast.NewNode(&ast.Content{})
	notASchema.Tag = ast.TagContent
	arr := ast.NewNode(&ast.Array{Item: notASchema})
	arr.Tag = ast.TagArray

	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Resource{Expr: arr},
	}}

	err := Check(prog)
	require.Error(t, err)
	assert.Equal(t, oalerr.InvalidTypes, kindOf(t, err))
}

func TestCheckObjectChildMustBeProperty(t *testing.T) {
	notAProperty := ast.NewNode(&ast.Primitive{Kind: ast.PrimString})
	notAProperty.Tag = ast.TagPrimitive
	obj := ast.NewNode(&ast.Object{Properties: []*ast.Node{notAProperty}})
	obj.Tag = ast.TagObject

	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Resource{Expr: obj},
	}}

	err := Check(prog)
	require.Error(t, err)
	assert.Equal(t, oalerr.UnexpectedExpression, kindOf(t, err))
}

func TestCheckContentStatusMustBeStatusLike(t *testing.T) {
	badStatus := ast.NewNode(&ast.Primitive{Kind: ast.PrimString})
	badStatus.Tag = ast.TagPrimitive
	content := ast.NewNode(&ast.Content{Status: badStatus})
	content.Tag = ast.TagContent

	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Resource{Expr: content},
	}}

	err := Check(prog)
	require.Error(t, err)
	assert.Equal(t, oalerr.InvalidTypes, kindOf(t, err))
}

func TestCheckUriVariableSegmentMustBePrimitive(t *testing.T) {
	badValue := ast.NewNode(&ast.Object{})
	badValue.Tag = ast.TagObject
	prop := ast.NewNode(&ast.Property{Name: "id", Value: badValue})
	prop.Tag = ast.TagProperty

	uri := ast.NewNode(&ast.Uri{Segments: []ast.UriSegment{{Variable: prop}}})
	uri.Tag = ast.TagUri

	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Resource{Expr: uri},
	}}

	err := Check(prog)
	require.Error(t, err)
	assert.Equal(t, oalerr.InvalidTypes, kindOf(t, err))
}

func TestCheckRelationRequiresUriAndTransferTags(t *testing.T) {
	wrongTag := ast.NewNode(&ast.Primitive{Kind: ast.PrimString})
	wrongTag.Tag = ast.TagPrimitive

	rel := ast.NewNode(&ast.Relation{Uri: wrongTag})
	rel.Tag = ast.TagRelation

	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Resource{Expr: rel},
	}}

	err := Check(prog)
	require.Error(t, err)
	assert.Equal(t, oalerr.InvalidTypes, kindOf(t, err))
}

func TestCheckAcceptsWellFormedRelation(t *testing.T) {
	status := ast.NewNode(&ast.Literal{Kind: ast.LitStatus, Status: 200})
	status.Tag = ast.TagStatus
	schema := ast.NewNode(&ast.Primitive{Kind: ast.PrimString})
	schema.Tag = ast.TagPrimitive
	content := ast.NewNode(&ast.Content{Status: status, Schema: schema})
	content.Tag = ast.TagContent

	transfer := ast.NewNode(&ast.Transfer{Methods: ast.Get, Ranges: []*ast.Node{content}})
	transfer.Tag = ast.TagTransfer

	uri := ast.NewNode(&ast.Uri{Segments: []ast.UriSegment{{IsLiteral: true, Literal: "pets"}}})
	uri.Tag = ast.TagUri

	rel := ast.NewNode(&ast.Relation{Uri: uri, Transfers: []*ast.Node{transfer}})
	rel.Tag = ast.TagRelation

	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Resource{Expr: rel},
	}}

	assert.NoError(t, Check(prog))
}
