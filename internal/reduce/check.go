package reduce

import (
	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/oalerr"
	"github.com/oal-lang/oal/internal/scope"
	"github.com/oal-lang/oal/internal/traverse"
)

// CheckClosed is the auxiliary scan spec.md §4.H's post-condition names: no
// value-level Variable survives reduction unless its referent is a Binding
// inside a lambda that itself was never applied (residual, but well-formed
// — see §4.H's post-condition and §8's "for-all invariants").
func CheckClosed(prog *ast.Program) error {
	env := scope.New(nil)
	var unused struct{}
	return traverse.Scan(prog, env, &unused, func(_ *struct{}, env *scope.Env, ref traverse.Ref) error {
		if ref.Kind != traverse.RefExpr {
			return nil
		}
		v, ok := ref.Node.Expr.(*ast.Variable)
		if !ok || v.Name.IsReference() {
			return nil
		}
		referent, ok := env.Lookup(v.Name)
		if !ok {
			return oalerr.New(oalerr.IdentifierNotInScope, "identifier not in scope: %s", v.Name).At(ref.Node.Span)
		}
		if _, ok := referent.Expr.(*ast.Binding); !ok {
			return oalerr.New(oalerr.Unknown, "remaining free variable: %s", v.Name).At(ref.Node.Span)
		}
		return nil
	})
}
