// Package constraint implements stage E of the pipeline: walking the tagged
// tree and emitting the tag-equality obligations stage F will solve
// (spec.md §4.E).
package constraint

import (
	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/scope"
	"github.com/oal-lang/oal/internal/traverse"
	"github.com/oal-lang/oal/pkg/module"
)

// Constraint is one tag-equality obligation collected while walking the
// tree.
type Constraint struct {
	Left, Right ast.Tag
	Span        *ast.Span
}

// Generate walks prog and returns the constraints implied by §4.E.
//
// Top-level declaration names are pre-declared into the program's frame
// before any node is visited, ahead of the usual declare-after-children
// order Scan/Transform use elsewhere. This is a deliberate deviation from
// the letter of §4.C for the Program frame only: §8's boundary case `let a
// = b; let b = a;` must surface as CycleDetected from the reducer (§4.H),
// not as IdentifierNotInScope from this stage, which requires both names to
// already be visible to each other here. Lambda frames are unaffected and
// keep the strictly sequential policy §4.C describes; later top-level
// redeclarations of the same name still win, matching the state reduction
// ultimately observes (see DESIGN.md, "forward references").
func Generate(prog *ast.Program, modules module.Set) ([]Constraint, error) {
	env := scope.New(modules)
	var cs []Constraint
	err := env.Within(func(env *scope.Env) error {
		for _, stmt := range prog.Statements {
			if d, ok := stmt.(*ast.Declaration); ok {
				env.Declare(d.Name, d.Expr)
			}
		}
		for _, stmt := range prog.Statements {
			if err := traverse.WalkStmt(stmt, env, &cs, visit); err != nil {
				return err
			}
		}
		return nil
	})
	return cs, err
}

func visit(cs *[]Constraint, env *scope.Env, ref traverse.Ref) error {
	if ref.Kind != traverse.RefExpr {
		return nil
	}
	n := ref.Node
	switch e := n.Expr.(type) {
	case *ast.Variable:
		referent, err := env.MustLookup(e.Name, n.Span)
		if err != nil {
			return err
		}
		*cs = append(*cs, eq(n.Tag, referent.Tag, n.Span))

	case *ast.Application:
		referent, err := env.MustLookup(e.Name, n.Span)
		if err != nil {
			return err
		}
		bindings := make([]ast.Tag, len(e.Args))
		for i, a := range e.Args {
			bindings[i] = a.Tag
		}
		*cs = append(*cs, eq(referent.Tag, ast.TFunc{Bindings: bindings, Range: n.Tag}, n.Span))

	case *ast.Lambda:
		bindings := make([]ast.Tag, len(e.Bindings))
		for i, b := range e.Bindings {
			bindings[i] = b.Tag
		}
		*cs = append(*cs, eq(n.Tag, ast.TFunc{Bindings: bindings, Range: e.Body.Tag}, n.Span))

	case *ast.VariadicOp:
		switch e.Op {
		case ast.OpJoin:
			for _, o := range e.Operands {
				*cs = append(*cs, eq(o.Tag, ast.TagObject, n.Span))
			}
			*cs = append(*cs, eq(n.Tag, ast.TagObject, n.Span))
		case ast.OpAny, ast.OpSum:
			// n.Tag is already the fresh variable the tagger assigned; every
			// operand chains onto it rather than onto each other.
			for _, o := range e.Operands {
				*cs = append(*cs, eq(o.Tag, n.Tag, n.Span))
			}
		case ast.OpRange:
			for _, o := range e.Operands {
				*cs = append(*cs, eq(o.Tag, ast.TagContent, n.Span))
			}
			*cs = append(*cs, eq(n.Tag, ast.TagContent, n.Span))
		}
	}
	return nil
}

func eq(a, b ast.Tag, span *ast.Span) Constraint {
	return Constraint{Left: a, Right: b, Span: span}
}
