package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/oalerr"
)

func declare(name ast.Ident, expr *ast.Node) *ast.Declaration {
	return &ast.Declaration{Name: name, Expr: expr}
}

func kindOf(t *testing.T, err error) oalerr.Kind {
	t.Helper()
	oe, ok := err.(*oalerr.Error)
	require.True(t, ok, "expected *oalerr.Error, got %T", err)
	return oe.Kind
}

func TestReduceInlinesValueVariable(t *testing.T) {
	a := ast.NewNode(&ast.Primitive{Kind: ast.PrimNumber})
	b := ast.NewNode(&ast.Variable{Name: "a"})

	prog := &ast.Program{Statements: []ast.Statement{
		declare("a", a),
		declare("b", b),
	}}

	require.NoError(t, Reduce(prog, nil))

	prim, ok := b.Expr.(*ast.Primitive)
	require.True(t, ok, "b should have been inlined to a Primitive, got %T", b.Expr)
	assert.Equal(t, ast.PrimNumber, prim.Kind)
}

// TestReduceInliningCarriesAnnotationForward is spec.md §8 scenario 3: a
// value-level declaration's annotation must survive onto every site that
// inlines it, not just its tag and shape.
func TestReduceInliningCarriesAnnotationForward(t *testing.T) {
	r := ast.NewNode(&ast.Object{})
	r.Ann = ast.Annotation{"description": "r"}

	domainUse := ast.NewNode(&ast.Variable{Name: "r"})
	rangeUse := ast.NewNode(&ast.Variable{Name: "r"})

	prog := &ast.Program{Statements: []ast.Statement{
		declare("r", r),
		&ast.Resource{Expr: domainUse},
		&ast.Resource{Expr: rangeUse},
	}}

	require.NoError(t, Reduce(prog, nil))

	for _, use := range []*ast.Node{domainUse, rangeUse} {
		desc, ok := use.Ann.GetString("description")
		require.True(t, ok, "inlined node must carry the declaration's annotation")
		assert.Equal(t, "r", desc)
	}
}

func TestReduceLeavesReferenceVariableUntouched(t *testing.T) {
	ref := ast.NewNode(&ast.Variable{Name: "@Pet"})
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Resource{Expr: ref},
	}}

	require.NoError(t, Reduce(prog, nil))

	v, ok := ref.Expr.(*ast.Variable)
	require.True(t, ok)
	assert.Equal(t, ast.Ident("@Pet"), v.Name)
}

// TestReduceLambdaClosesOverDeclarationTimeEnv is the scenario-1 case: a
// lambda's free variable must resolve to what was visible when the lambda
// was declared, not to a later redeclaration of the same name.
func TestReduceLambdaClosesOverDeclarationTimeEnv(t *testing.T) {
	bFirst := ast.NewNode(&ast.Primitive{Kind: ast.PrimBoolean})
	bSecond := ast.NewNode(&ast.Primitive{Kind: ast.PrimString})

	lambdaBody := ast.NewNode(&ast.Variable{Name: "b"})
	lambda := ast.NewNode(&ast.Lambda{Body: lambdaBody})

	app := ast.NewNode(&ast.Application{Name: "g"})

	prog := &ast.Program{Statements: []ast.Statement{
		declare("b", bFirst),
		declare("g", lambda),
		declare("b", bSecond),
		declare("result", app),
	}}

	require.NoError(t, Reduce(prog, nil))

	prim, ok := app.Expr.(*ast.Primitive)
	require.True(t, ok, "result should have reduced to a Primitive, got %T", app.Expr)
	assert.Equal(t, ast.PrimBoolean, prim.Kind, "g must close over the b visible at its own declaration")
}

func TestReduceApplicationSubstitutesArgument(t *testing.T) {
	binding := ast.NewNode(&ast.Binding{Name: "x"})
	body := ast.NewNode(&ast.Variable{Name: "x"})
	lambda := ast.NewNode(&ast.Lambda{Bindings: []*ast.Node{binding}, Body: body})

	arg := ast.NewNode(&ast.Primitive{Kind: ast.PrimInteger})
	app := ast.NewNode(&ast.Application{Name: "f", Args: []*ast.Node{arg}})

	prog := &ast.Program{Statements: []ast.Statement{
		declare("f", lambda),
		declare("result", app),
	}}

	require.NoError(t, Reduce(prog, nil))

	prim, ok := app.Expr.(*ast.Primitive)
	require.True(t, ok, "result should have reduced to a Primitive, got %T", app.Expr)
	assert.Equal(t, ast.PrimInteger, prim.Kind)
}

func TestReduceApplicationArityMismatch(t *testing.T) {
	binding := ast.NewNode(&ast.Binding{Name: "x"})
	body := ast.NewNode(&ast.Variable{Name: "x"})
	lambda := ast.NewNode(&ast.Lambda{Bindings: []*ast.Node{binding}, Body: body})

	app := ast.NewNode(&ast.Application{Name: "f"}) // no args, lambda wants one

	prog := &ast.Program{Statements: []ast.Statement{
		declare("f", lambda),
		declare("result", app),
	}}

	err := Reduce(prog, nil)
	require.Error(t, err)
	assert.Equal(t, oalerr.InvalidSyntax, kindOf(t, err))
}

func TestReduceApplicationOfNonFunction(t *testing.T) {
	notAFunction := ast.NewNode(&ast.Primitive{Kind: ast.PrimString})
	app := ast.NewNode(&ast.Application{Name: "f"})

	prog := &ast.Program{Statements: []ast.Statement{
		declare("f", notAFunction),
		declare("result", app),
	}}

	err := Reduce(prog, nil)
	require.Error(t, err)
	assert.Equal(t, oalerr.InvalidSyntax, kindOf(t, err))
}

func TestReduceSelfCycleDetected(t *testing.T) {
	self := ast.NewNode(&ast.Variable{Name: "a"})
	prog := &ast.Program{Statements: []ast.Statement{
		declare("a", self),
	}}

	err := Reduce(prog, nil)
	require.Error(t, err)
	assert.Equal(t, oalerr.CycleDetected, kindOf(t, err))
}

func TestReduceMutualCycleDetected(t *testing.T) {
	aExpr := ast.NewNode(&ast.Variable{Name: "b"})
	bExpr := ast.NewNode(&ast.Variable{Name: "a"})

	prog := &ast.Program{Statements: []ast.Statement{
		declare("a", aExpr),
		declare("b", bExpr),
	}}

	err := Reduce(prog, nil)
	require.Error(t, err)
	assert.Equal(t, oalerr.CycleDetected, kindOf(t, err))
}

func TestReduceUndeclaredIdentifier(t *testing.T) {
	v := ast.NewNode(&ast.Variable{Name: "missing"})
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.Resource{Expr: v},
	}}

	err := Reduce(prog, nil)
	require.Error(t, err)
	assert.Equal(t, oalerr.IdentifierNotInScope, kindOf(t, err))
}
