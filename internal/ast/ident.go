package ast

import "strings"

// ReferenceSigil marks a reference-level identifier, e.g. "@pet". Reference
// identifiers survive reduction and become reusable schemas in the exported
// Spec; value identifiers must be fully reduced away (spec.md §3, §4.H).
const ReferenceSigil = "@"

// Ident is an interned-by-value name, distinguishing value-level identifiers
// (foo) from reference-level ones (@foo).
type Ident string

// IsReference reports whether id carries the reference sigil.
func (id Ident) IsReference() bool {
	return strings.HasPrefix(string(id), ReferenceSigil)
}

// IsValue is the complement of IsReference.
func (id Ident) IsValue() bool {
	return !id.IsReference()
}

// Bare strips the reference sigil, if present, for keying exported References.
func (id Ident) Bare() string {
	return strings.TrimPrefix(string(id), ReferenceSigil)
}
