// Package typecheck implements stage I: structural validation of the
// reduced tree against the tag each node carries (spec.md §4.I). It runs
// after reduction so that shapes only β-reduction materializes are also
// checked (spec.md §9, "reduction vs typing ordering").
package typecheck

import (
	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/oalerr"
	"github.com/oal-lang/oal/internal/scope"
	"github.com/oal-lang/oal/internal/traverse"
)

// Check walks prog and reports the first structural violation found.
func Check(prog *ast.Program) error {
	env := scope.New(nil)
	var unused struct{}
	return traverse.Scan(prog, env, &unused, func(_ *struct{}, _ *scope.Env, ref traverse.Ref) error {
		switch ref.Kind {
		case traverse.RefDecl:
			return checkDeclaration(ref.Decl)
		case traverse.RefExpr:
			return checkExpr(ref.Node)
		default:
			return nil
		}
	})
}

// checkDeclaration implements §4.I's Declaration rule: a value-level name
// always escapes the check (it may be function-producing); a reference-
// level name must be a schema, since it is exported as a reusable schema.
func checkDeclaration(d *ast.Declaration) error {
	if d.Name.IsValue() {
		return nil
	}
	if !ast.IsSchema(d.Expr.Tag) {
		return oalerr.New(oalerr.InvalidTypes,
			"%s: reference declaration must be schema-tagged, got %s", d.Name, d.Expr.Tag).At(d.Span)
	}
	return nil
}

func checkExpr(n *ast.Node) error {
	switch e := n.Expr.(type) {
	case *ast.VariadicOp:
		return checkVariadicOp(n, e)
	case *ast.Content:
		return checkContent(n, e)
	case *ast.Transfer:
		return checkTransfer(n, e)
	case *ast.Relation:
		return checkRelation(n, e)
	case *ast.Uri:
		return checkUri(n, e)
	case *ast.Array:
		if !ast.IsSchema(e.Item.Tag) {
			return invalidTypes(n, "array item must be a schema, got %s", e.Item.Tag)
		}
	case *ast.Property:
		if !ast.IsSchema(e.Value.Tag) {
			return invalidTypes(n, "property value must be a schema, got %s", e.Value.Tag)
		}
	case *ast.Object:
		for _, p := range e.Properties {
			if _, ok := p.Expr.(*ast.Property); !ok {
				return oalerr.New(oalerr.UnexpectedExpression, "object child must be a property").At(p.Span)
			}
		}
	}
	return nil
}

func checkVariadicOp(n *ast.Node, e *ast.VariadicOp) error {
	switch e.Op {
	case ast.OpJoin:
		for _, o := range e.Operands {
			if !ast.TagsEqual(o.Tag, ast.TagObject) {
				return invalidTypes(n, "join operand must be Object, got %s", o.Tag)
			}
		}
	case ast.OpAny, ast.OpSum:
		for _, o := range e.Operands {
			if !ast.IsSchema(o.Tag) {
				return invalidTypes(n, "operand must be a schema, got %s", o.Tag)
			}
		}
	case ast.OpRange:
		for _, o := range e.Operands {
			if !ast.IsSchemaLike(o.Tag) {
				return invalidTypes(n, "range operand must be schema-like, got %s", o.Tag)
			}
		}
	}
	return nil
}

func checkContent(n *ast.Node, e *ast.Content) error {
	if e.Status != nil && !ast.IsStatusLike(e.Status.Tag) {
		return invalidTypes(n, "content status must be status-like, got %s", e.Status.Tag)
	}
	if e.Media != nil && !ast.TagsEqual(e.Media.Tag, ast.TagText) {
		return invalidTypes(n, "content media must be Text, got %s", e.Media.Tag)
	}
	if e.Headers != nil && !ast.TagsEqual(e.Headers.Tag, ast.TagObject) {
		return invalidTypes(n, "content headers must be Object, got %s", e.Headers.Tag)
	}
	if e.Schema != nil && !ast.IsSchema(e.Schema.Tag) {
		return invalidTypes(n, "content schema must be a schema, got %s", e.Schema.Tag)
	}
	return nil
}

func checkTransfer(n *ast.Node, e *ast.Transfer) error {
	if e.Domain != nil && !ast.IsSchemaLike(e.Domain.Tag) {
		return invalidTypes(n, "transfer domain must be schema-like, got %s", e.Domain.Tag)
	}
	for _, rg := range e.Ranges {
		if !ast.IsSchemaLike(rg.Tag) {
			return invalidTypes(n, "transfer range must be schema-like, got %s", rg.Tag)
		}
	}
	if e.Params != nil && !ast.TagsEqual(e.Params.Tag, ast.TagObject) {
		return invalidTypes(n, "transfer params must be Object, got %s", e.Params.Tag)
	}
	return nil
}

func checkRelation(n *ast.Node, e *ast.Relation) error {
	if !ast.TagsEqual(e.Uri.Tag, ast.TagUri) {
		return invalidTypes(n, "relation uri must be Uri, got %s", e.Uri.Tag)
	}
	for _, t := range e.Transfers {
		if !ast.TagsEqual(t.Tag, ast.TagTransfer) {
			return invalidTypes(n, "relation transfer must be Transfer, got %s", t.Tag)
		}
	}
	return nil
}

func checkUri(n *ast.Node, e *ast.Uri) error {
	for _, seg := range e.Segments {
		if seg.IsLiteral {
			continue
		}
		prop, ok := seg.Variable.Expr.(*ast.Property)
		if !ok {
			return oalerr.New(oalerr.UnexpectedExpression, "uri variable segment must be a property").At(seg.Variable.Span)
		}
		if !ast.TagsEqual(prop.Value.Tag, ast.TagPrimitive) {
			return invalidTypes(n, "uri variable segment %s must be Primitive, got %s", prop.Name, prop.Value.Tag)
		}
	}
	if e.Params != nil && !ast.TagsEqual(e.Params.Tag, ast.TagObject) {
		return invalidTypes(n, "uri params must be Object, got %s", e.Params.Tag)
	}
	return nil
}

func invalidTypes(n *ast.Node, format string, args ...any) error {
	return oalerr.New(oalerr.InvalidTypes, format, args...).At(n.Span)
}
