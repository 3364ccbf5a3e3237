// Package scope implements the lexically scoped symbol table shared by
// every pass of the pipeline (spec.md §4.B).
package scope

import (
	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/oalerr"
	"github.com/oal-lang/oal/pkg/module"
)

// frame is one lexical scope: a mapping from identifier to the node it was
// declared with.
type frame map[ast.Ident]*ast.Node

// Env is a stack of frames with optional fallback to a module set for
// reference-level identifiers that are not found locally (spec.md §4.B).
type Env struct {
	frames  []frame
	modules module.Set
}

// New creates an empty Env. modules may be nil when no cross-module
// resolution is needed (e.g. compiling a single self-contained program).
func New(modules module.Set) *Env {
	return &Env{modules: modules}
}

// Within acquires a new frame for the duration of action and guarantees its
// release on every exit path, success or failure (spec.md §4.B, §5).
func (e *Env) Within(action func(*Env) error) error {
	e.frames = append(e.frames, frame{})
	defer func() {
		e.frames = e.frames[:len(e.frames)-1]
	}()
	return action(e)
}

// Declare adds id to the current (innermost) frame, shadowing any outer
// binding of the same name.
func (e *Env) Declare(id ast.Ident, n *ast.Node) {
	if len(e.frames) == 0 {
		// Defensive: a top-level declare outside any Within call still
		// needs somewhere to live.
		e.frames = append(e.frames, frame{})
	}
	e.frames[len(e.frames)-1][id] = n
}

// Lookup scans frames innermost-out. For reference-level identifiers
// unresolved locally, it falls back to the module set if one was supplied.
func (e *Env) Lookup(id ast.Ident) (*ast.Node, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if n, ok := e.frames[i][id]; ok {
			return n, true
		}
	}
	if id.IsReference() && e.modules != nil {
		return e.modules.Resolve(id)
	}
	return nil, false
}

// MustLookup is Lookup plus the boundary error spec.md §6/§7 names for an
// unresolved identifier.
func (e *Env) MustLookup(id ast.Ident, span *ast.Span) (*ast.Node, error) {
	n, ok := e.Lookup(id)
	if !ok {
		return nil, oalerr.New(oalerr.IdentifierNotInScope, "identifier not in scope: %s", id).At(span)
	}
	return n, nil
}

// Depth reports the number of currently open frames, mostly useful for
// tests asserting Within's push/pop discipline.
func (e *Env) Depth() int {
	return len(e.frames)
}

// Snapshot copies the current frame chain into an independent Env: later
// Declare calls against e (or against the live env e was copied from) do
// not alter what Snapshot returns. The reducer uses this to give a lambda a
// closure over the bindings visible at its own declaration, rather than
// whatever the enclosing frame holds by the time the lambda is applied.
func (e *Env) Snapshot() *Env {
	frames := make([]frame, len(e.frames))
	for i, f := range e.frames {
		nf := make(frame, len(f))
		for k, v := range f {
			nf[k] = v
		}
		frames[i] = nf
	}
	return &Env{frames: frames, modules: e.modules}
}
