// Package reduce implements stage H: β-reduction of applications and
// inlining of value-level references, down to a closed, reference-resolved
// tree (spec.md §4.H).
package reduce

import (
	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/oalerr"
	"github.com/oal-lang/oal/internal/scope"
	"github.com/oal-lang/oal/pkg/module"
)

// reducer carries the state threaded through one Reduce call.
type reducer struct {
	// closures captures, for a Declaration node whose expression is a
	// Lambda, the Env as it stood at that declaration (see reduceStmt).
	// A later re-declaration of a name the lambda's body is free in must
	// not change what that lambda resolves it to (spec.md §8 scenario 1):
	// capturing the frame chain by value, rather than resolving the
	// lambda's free variables against whatever the live env holds at
	// application time, is what gives that closure semantics.
	closures map[*ast.Node]*scope.Env

	// topLevel is every top-level declaration's (possibly still
	// unreduced) node, keyed by name, last declaration wins. It backs a
	// fallback lookup used only when the live, sequentially-built env
	// hasn't reached a name yet — i.e. a forward reference — so that two
	// top-level declarations referencing each other resolve far enough to
	// let the visited-set below report CycleDetected, rather than this
	// stage failing the reference outright with IdentifierNotInScope
	// (spec.md §8's boundary case and end-to-end scenario 6).
	topLevel map[ast.Ident]*ast.Node
}

// Reduce evaluates prog's purely-functional fragment in place.
func Reduce(prog *ast.Program, modules module.Set) error {
	r := &reducer{
		closures: map[*ast.Node]*scope.Env{},
		topLevel: map[ast.Ident]*ast.Node{},
	}
	for _, stmt := range prog.Statements {
		if d, ok := stmt.(*ast.Declaration); ok {
			r.topLevel[d.Name] = d.Expr
		}
	}

	env := scope.New(modules)
	return env.Within(func(env *scope.Env) error {
		for _, stmt := range prog.Statements {
			if err := r.reduceStmt(stmt, env); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *reducer) reduceStmt(stmt ast.Statement, env *scope.Env) error {
	switch s := stmt.(type) {
	case *ast.Declaration:
		if _, ok := s.Expr.Expr.(*ast.Lambda); ok {
			r.closures[s.Expr] = env.Snapshot()
		} else if err := r.reduceExpr(s.Expr, env, map[ast.Ident]bool{}); err != nil {
			return err
		}
		env.Declare(s.Name, s.Expr)
		return nil
	case *ast.Resource:
		return r.reduceExpr(s.Expr, env, map[ast.Ident]bool{})
	default:
		return nil
	}
}

func (r *reducer) reduceExpr(n *ast.Node, env *scope.Env, visiting map[ast.Ident]bool) error {
	if n == nil {
		return nil
	}
	switch e := n.Expr.(type) {
	case *ast.Variable:
		return r.reduceVariable(n, e, env, visiting)
	case *ast.Application:
		return r.reduceApplication(n, e, env, visiting)
	case *ast.Lambda, *ast.Binding:
		// Functions are values: their bodies reduce only when applied.
		return nil
	default:
		for _, c := range n.Expr.Children() {
			if err := r.reduceExpr(c, env, visiting); err != nil {
				return err
			}
		}
		return nil
	}
}

func (r *reducer) lookup(name ast.Ident, env *scope.Env) (*ast.Node, bool) {
	if n, ok := env.Lookup(name); ok {
		return n, true
	}
	n, ok := r.topLevel[name]
	return n, ok
}

func (r *reducer) reduceVariable(n *ast.Node, v *ast.Variable, env *scope.Env, visiting map[ast.Ident]bool) error {
	if v.Name.IsReference() {
		return nil
	}
	if visiting[v.Name] {
		return oalerr.New(oalerr.CycleDetected, "cycle detected resolving %s", v.Name).At(n.Span)
	}
	referent, ok := r.lookup(v.Name, env)
	if !ok {
		return oalerr.New(oalerr.IdentifierNotInScope, "identifier not in scope: %s", v.Name).At(n.Span)
	}

	clone := referent.Clone()
	n.Expr = clone.Expr
	n.Tag = clone.Tag
	n.Ann = clone.Ann
	if closed, ok := r.closures[referent]; ok {
		r.closures[n] = closed
	}

	next := make(map[ast.Ident]bool, len(visiting)+1)
	for k := range visiting {
		next[k] = true
	}
	next[v.Name] = true
	return r.reduceExpr(n, env, next)
}

func (r *reducer) reduceApplication(n *ast.Node, a *ast.Application, env *scope.Env, visiting map[ast.Ident]bool) error {
	for _, arg := range a.Args {
		if err := r.reduceExpr(arg, env, visiting); err != nil {
			return err
		}
	}

	referent, ok := r.lookup(a.Name, env)
	if !ok {
		return oalerr.New(oalerr.IdentifierNotInScope, "identifier not in scope: %s", a.Name).At(n.Span)
	}
	lambda, ok := referent.Expr.(*ast.Lambda)
	if !ok {
		return oalerr.New(oalerr.InvalidSyntax, "%s is not a function", a.Name).At(n.Span)
	}
	if len(lambda.Bindings) != len(a.Args) {
		return oalerr.New(oalerr.InvalidSyntax,
			"%s expects %d argument(s), got %d", a.Name, len(lambda.Bindings), len(a.Args)).At(n.Span)
	}

	callEnv := r.closures[referent]
	if callEnv == nil {
		callEnv = env
	}
	body := lambda.Body.Clone()
	return callEnv.Within(func(callEnv *scope.Env) error {
		for i, b := range lambda.Bindings {
			binding := b.Expr.(*ast.Binding)
			callEnv.Declare(binding.Name, a.Args[i])
		}
		if err := r.reduceExpr(body, callEnv, map[ast.Ident]bool{}); err != nil {
			return err
		}
		n.Expr = body.Expr
		n.Tag = body.Tag
		n.Ann = body.Ann
		return nil
	})
}
