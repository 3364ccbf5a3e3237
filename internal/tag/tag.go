// Package tag implements stage D of the pipeline: assigning every
// expression a fresh type variable or a concrete tag (spec.md §4.D).
package tag

import (
	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/scope"
	"github.com/oal-lang/oal/internal/traverse"
)

// Tag walks prog post-order, assigning n.Tag to every expression node. The
// counter backing fresh variables is reset per call, so re-tagging a fresh
// copy of the same tree twice yields identical tags (spec.md §8
// "Tagging is idempotent given a fresh counter").
func Tag(prog *ast.Program) error {
	var counter int
	env := scope.New(nil)
	return traverse.Transform(prog, env, &counter, visit)
}

func visit(counter *int, _ *scope.Env, ref traverse.Ref) error {
	if ref.Kind != traverse.RefExpr {
		return nil
	}
	n := ref.Node
	switch e := n.Expr.(type) {
	case *ast.Literal:
		switch e.Kind {
		case ast.LitText:
			n.Tag = ast.TagText
		case ast.LitNumber:
			n.Tag = fresh(counter)
		case ast.LitStatus:
			n.Tag = ast.TagStatus
		}
	case *ast.Primitive:
		// number|string|boolean|integer are all untyped at this level;
		// the type-checker and spec exporter specialize by PrimitiveKind.
		n.Tag = ast.TagPrimitive
	case *ast.Uri:
		n.Tag = ast.TagUri
	case *ast.Relation:
		n.Tag = ast.TagRelation
	case *ast.Object:
		n.Tag = ast.TagObject
	case *ast.Array:
		n.Tag = ast.TagArray
	case *ast.Property:
		n.Tag = ast.TagProperty
	case *ast.Content:
		n.Tag = ast.TagContent
	case *ast.Transfer:
		n.Tag = ast.TagTransfer
	case *ast.VariadicOp:
		n.Tag = fresh(counter)
	case *ast.Variable, *ast.Binding, *ast.Application, *ast.Lambda:
		n.Tag = fresh(counter)
	}
	return nil
}

func fresh(counter *int) ast.Tag {
	*counter++
	return ast.TVar{N: *counter}
}
