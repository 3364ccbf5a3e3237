// Package module declares the boundary the compiler consumes from module
// loading (spec.md §6). Module loading itself — resolving a locator string
// to a file, caching, cycle detection across files — is an external
// collaborator; only the interface is modeled here.
package module

import "github.com/oal-lang/oal/internal/ast"

// Set is a loaded collection of programs: the main program plus whatever
// else `import` statements pulled in.
type Set interface {
	// Main returns the entry-point program.
	Main() (*ast.Program, error)

	// Lookup resolves an opaque, loader-defined locator to a parsed
	// program. Programs returned here are not pre-compiled: running them
	// through the pipeline (tag → ... → reduce) is the caller's job, same
	// as for Main.
	Lookup(locator string) (*ast.Program, bool)

	// Resolve looks up a reference-level identifier that a value-level
	// Env.lookup failed to find locally, returning the already-reduced
	// node it refers to in another module. A loader that does not support
	// cross-module schema sharing can return (nil, false) unconditionally.
	Resolve(id ast.Ident) (*ast.Node, bool)
}
