// Package compiler wires stages D through J into the single entry point
// spec.md §2 describes: parse → A → D → E → F → G → H → I → J → Spec.
// Parsing (stage producing the initial *ast.Program) is an external
// collaborator; Compile takes it as given.
package compiler

import (
	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/constraint"
	"github.com/oal-lang/oal/internal/reduce"
	"github.com/oal-lang/oal/internal/spec"
	"github.com/oal-lang/oal/internal/subst"
	"github.com/oal-lang/oal/internal/tag"
	"github.com/oal-lang/oal/internal/typecheck"
	"github.com/oal-lang/oal/internal/unify"
	"github.com/oal-lang/oal/pkg/module"
)

// Compile runs prog through the full pipeline and returns the compiled
// Spec, or the first located error any stage produces. Each stage consumes
// the whole tree before the next begins; there is no partial recovery
// (spec.md §7).
func Compile(prog *ast.Program, modules module.Set) (*spec.Spec, error) {
	if err := tag.Tag(prog); err != nil {
		return nil, err
	}

	constraints, err := constraint.Generate(prog, modules)
	if err != nil {
		return nil, err
	}

	substitution, err := unify.Unify(constraints)
	if err != nil {
		return nil, err
	}

	if err := subst.Apply(prog, substitution); err != nil {
		return nil, err
	}

	if err := reduce.Reduce(prog, modules); err != nil {
		return nil, err
	}
	if err := reduce.CheckClosed(prog); err != nil {
		return nil, err
	}

	if err := typecheck.Check(prog); err != nil {
		return nil, err
	}

	return spec.Export(prog, modules)
}
