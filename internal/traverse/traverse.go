// Package traverse implements the two generic tree walks every later pass
// specializes against (spec.md §4.C): a read-only Scan and a mutating
// Transform. Because nodes in this implementation are already pointer-
// backed (spec.md §9's "single concrete Node" simplification), both walks
// share one traversal engine — a visitor that only reads fields gets Scan's
// contract for free, and one that assigns through *ast.Node pointers gets
// Transform's.
package traverse

import (
	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/scope"
)

// RefKind discriminates the payload carried by a Ref.
type RefKind int

const (
	RefDecl RefKind = iota
	RefResource
	RefAnnotation
	RefImport
	RefExpr
)

// Ref is the node reference passed to a visitor: exactly one of its
// statement fields is set, or Node is set (for RefExpr).
type Ref struct {
	Kind    RefKind
	Decl    *ast.Declaration
	Res     *ast.Resource
	AnnStmt *ast.AnnotationStmt
	Imp     *ast.Import
	Node    *ast.Node
}

// Visitor is invoked once per node, in the order defined by §4.C.
type Visitor[A any] func(acc *A, env *scope.Env, ref Ref) error

// Scan performs the read-only walk: pre-order for declarations/resources,
// post-order for expressions.
func Scan[A any](prog *ast.Program, env *scope.Env, acc *A, visit Visitor[A]) error {
	return walkProgram(prog, env, acc, visit)
}

// Transform performs the mutating walk. It shares Scan's traversal order;
// visitors that mutate through the *ast.Node pointers they receive get
// in-place rewriting for free.
func Transform[A any](prog *ast.Program, env *scope.Env, acc *A, visit Visitor[A]) error {
	return walkProgram(prog, env, acc, visit)
}

func walkProgram[A any](prog *ast.Program, env *scope.Env, acc *A, visit Visitor[A]) error {
	return env.Within(func(env *scope.Env) error {
		for _, stmt := range prog.Statements {
			if err := WalkStmt(stmt, env, acc, visit); err != nil {
				return err
			}
		}
		return nil
	})
}

// WalkStmt drives one top-level statement. It is exported so that a pass
// needing mutual forward visibility between top-level declarations
// (constraint generation; see its package doc comment) can open its own
// Program-level frame, pre-declare every name, and then drive statements
// through this same per-statement policy instead of Scan/Transform's
// program wrapper.
func WalkStmt[A any](stmt ast.Statement, env *scope.Env, acc *A, visit Visitor[A]) error {
	switch s := stmt.(type) {
	case *ast.Declaration:
		if err := visit(acc, env, Ref{Kind: RefDecl, Decl: s}); err != nil {
			return err
		}
		if err := walkExpr(s.Expr, env, acc, visit); err != nil {
			return err
		}
		env.Declare(s.Name, s.Expr)
		return nil
	case *ast.Resource:
		if err := visit(acc, env, Ref{Kind: RefResource, Res: s}); err != nil {
			return err
		}
		return walkExpr(s.Expr, env, acc, visit)
	case *ast.AnnotationStmt:
		return visit(acc, env, Ref{Kind: RefAnnotation, AnnStmt: s})
	case *ast.Import:
		return visit(acc, env, Ref{Kind: RefImport, Imp: s})
	default:
		return nil
	}
}

func walkExpr[A any](n *ast.Node, env *scope.Env, acc *A, visit Visitor[A]) error {
	if n == nil {
		return nil
	}
	if lambda, ok := n.Expr.(*ast.Lambda); ok {
		if err := env.Within(func(env *scope.Env) error {
			for _, b := range lambda.Bindings {
				if err := walkExpr(b, env, acc, visit); err != nil {
					return err
				}
				binding := b.Expr.(*ast.Binding)
				env.Declare(binding.Name, b)
			}
			return walkExpr(lambda.Body, env, acc, visit)
		}); err != nil {
			return err
		}
		// The lambda node itself is visited once its frame has closed,
		// matching the teacher pipeline's generic wrapper which visits a
		// compound node only after its per-variant children walk returns.
		return visit(acc, env, Ref{Kind: RefExpr, Node: n})
	}

	for _, c := range n.Expr.Children() {
		if err := walkExpr(c, env, acc, visit); err != nil {
			return err
		}
	}
	return visit(acc, env, Ref{Kind: RefExpr, Node: n})
}
