package main

import (
	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/pkg/module"
)

// demoSet is a thin, in-memory module.Set standing in for the external
// parser and module loader (out of scope per SPEC_FULL.md §1/§6). It hands
// Compile a fixed two-declaration program — a reusable `Pet` reference
// schema and a `/pets` resource returning it — so this entry point has
// something real to run end to end without a grammar.
type demoSet struct {
	main *ast.Program
}

func newDemoSet() *demoSet {
	return &demoSet{main: demoProgram()}
}

func (d *demoSet) Main() (*ast.Program, error)        { return d.main, nil }
func (d *demoSet) Lookup(string) (*ast.Program, bool) { return nil, false }
func (d *demoSet) Resolve(ast.Ident) (*ast.Node, bool) { return nil, false }

var _ module.Set = (*demoSet)(nil)

// demoProgram builds, by hand, the AST an external parser would produce for:
//
//	let @Pet = {name str};
//	res /pets (get -> <200, @Pet>);
func demoProgram() *ast.Program {
	petSchema := ast.NewNode(&ast.Object{
		Properties: []*ast.Node{
			ast.NewNode(&ast.Property{
				Name:  "name",
				Value: ast.NewNode(&ast.Primitive{Kind: ast.PrimString}),
			}),
		},
	})

	petDecl := &ast.Declaration{Name: "@Pet", Expr: petSchema}

	uri := ast.NewNode(&ast.Uri{
		Segments: []ast.UriSegment{{IsLiteral: true, Literal: "pets"}},
	})

	content := ast.NewNode(&ast.Content{
		Status: ast.NewNode(&ast.Literal{Kind: ast.LitStatus, Status: 200}),
		Schema: ast.NewNode(&ast.Variable{Name: "@Pet"}),
	})

	transfer := ast.NewNode(&ast.Transfer{
		Methods: ast.Get,
		Ranges:  []*ast.Node{content},
	})

	relation := ast.NewNode(&ast.Relation{
		Uri:       uri,
		Transfers: []*ast.Node{transfer},
	})

	resource := &ast.Resource{Expr: relation}

	return &ast.Program{Statements: []ast.Statement{petDecl, resource}}
}
