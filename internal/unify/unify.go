// Package unify implements stage F: Robinson unification with an occurs
// check over the tags produced by stage D and constrained by stage E
// (spec.md §4.F).
package unify

import (
	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/constraint"
	"github.com/oal-lang/oal/internal/oalerr"
)

// Substitution is an idempotent mapping from tag variables to tags.
type Substitution struct {
	bindings map[int]ast.Tag
}

func newSubstitution() *Substitution {
	return &Substitution{bindings: map[int]ast.Tag{}}
}

// Apply resolves t fully: every Var it contains, recursively, is replaced by
// its bound tag, or left as Var if unbound.
func (s *Substitution) Apply(t ast.Tag) ast.Tag {
	switch tt := t.(type) {
	case ast.TVar:
		if bound, ok := s.bindings[tt.N]; ok {
			return s.Apply(bound)
		}
		return tt
	case ast.TFunc:
		bindings := make([]ast.Tag, len(tt.Bindings))
		for i, b := range tt.Bindings {
			bindings[i] = s.Apply(b)
		}
		return ast.TFunc{Bindings: bindings, Range: s.Apply(tt.Range)}
	default:
		return t
	}
}

func (s *Substitution) bind(n int, t ast.Tag) error {
	resolved := s.Apply(t)
	if occursIn(n, resolved) {
		return oalerr.New(oalerr.InvalidTypes, "occurs check failed: Var(%d) occurs in %s", n, resolved)
	}
	s.bindings[n] = resolved
	return nil
}

func occursIn(n int, t ast.Tag) bool {
	switch tt := t.(type) {
	case ast.TVar:
		return tt.N == n
	case ast.TFunc:
		for _, b := range tt.Bindings {
			if occursIn(n, b) {
				return true
			}
		}
		return occursIn(n, tt.Range)
	default:
		return false
	}
}

// Unify solves cs into a Substitution, applying clauses in the order
// spec.md §4.F fixes: reflexive var, var-binds-anything with occurs check,
// Func by pointwise arity match, identical concrete tags, Any unifies with
// anything, else InvalidTypes.
func Unify(cs []constraint.Constraint) (*Substitution, error) {
	s := newSubstitution()
	for _, c := range cs {
		if err := s.unify(c.Left, c.Right, c.Span); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Substitution) unify(a, b ast.Tag, span *ast.Span) error {
	a = s.Apply(a)
	b = s.Apply(b)

	if va, ok := a.(ast.TVar); ok {
		if vb, ok := b.(ast.TVar); ok && va.N == vb.N {
			return nil
		}
		return s.bind(va.N, b)
	}
	if vb, ok := b.(ast.TVar); ok {
		return s.bind(vb.N, a)
	}

	fa, aIsFunc := a.(ast.TFunc)
	fb, bIsFunc := b.(ast.TFunc)
	if aIsFunc && bIsFunc {
		if len(fa.Bindings) != len(fb.Bindings) {
			return oalerr.New(oalerr.InvalidTypes,
				"function arity mismatch: %d vs %d", len(fa.Bindings), len(fb.Bindings)).At(span)
		}
		for i := range fa.Bindings {
			if err := s.unify(fa.Bindings[i], fb.Bindings[i], span); err != nil {
				return err
			}
		}
		return s.unify(fa.Range, fb.Range, span)
	}

	if a == ast.TagAny || b == ast.TagAny {
		return nil
	}
	if ast.TagsEqual(a, b) {
		return nil
	}
	return oalerr.New(oalerr.InvalidTypes, "cannot unify %s with %s", a, b).At(span)
}
