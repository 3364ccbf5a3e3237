// Package subst implements stage G: rewriting every node's tag through the
// substitution stage F produced (spec.md §4.G).
package subst

import (
	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/scope"
	"github.com/oal-lang/oal/internal/traverse"
	"github.com/oal-lang/oal/internal/unify"
)

// Apply walks prog and replaces every node's tag with its image under s.
// Variables the substitution leaves unbound are kept as Var; downstream
// passes treat those as Any-equivalent (spec.md §4.G).
func Apply(prog *ast.Program, s *unify.Substitution) error {
	env := scope.New(nil)
	var unused struct{}
	return traverse.Transform(prog, env, &unused, func(_ *struct{}, _ *scope.Env, ref traverse.Ref) error {
		if ref.Kind != traverse.RefExpr {
			return nil
		}
		if ref.Node.Tag != nil {
			ref.Node.Tag = s.Apply(ref.Node.Tag)
		}
		return nil
	})
}
