// Package oalerr defines the compiler's error taxonomy (spec.md §6, §7).
// Every pass fails fast with one located error; no pass attempts partial
// recovery.
package oalerr

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/oal-lang/oal/internal/ast"
)

// Kind enumerates the error categories at the compiler boundary.
type Kind string

const (
	InvalidSyntax        Kind = "InvalidSyntax"
	NotInScope            Kind = "NotInScope"
	IdentifierNotInScope  Kind = "IdentifierNotInScope"
	UnexpectedExpression  Kind = "UnexpectedExpression"
	InvalidTypes          Kind = "InvalidTypes"
	Conflict              Kind = "Conflict"
	CycleDetected         Kind = "CycleDetected"
	Unknown               Kind = "Unknown"
)

// Error is the single error type returned across every pipeline stage.
// Spans are attached once at the lowest observing layer and preserved
// unchanged through re-raises (spec.md §7). ID is a correlation identifier a
// host (CLI, LSP) can log alongside the diagnostic without the core
// depending on a logging framework itself.
type Error struct {
	ID      string
	Kind    Kind
	Message string
	Span    *ast.Span
}

func (e *Error) Error() string {
	if e.Span != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Span.String())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New creates an error of the given kind, unlocated. Use At to attach a
// span the first time one becomes available.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// At attaches a span if the error does not already carry one, matching the
// "attached once at the lowest observing layer" rule in spec.md §7. It
// returns e for chaining and is a no-op on a nil error or an already-located
// one.
func (e *Error) At(span *ast.Span) *Error {
	if e == nil || e.Span != nil {
		return e
	}
	e.Span = span
	return e
}

// AtErr is a convenience for wrapping a generic error path where the
// argument might not be an *Error (defensive; every internal path is
// expected to already construct one via New).
func AtErr(err error, span *ast.Span) error {
	if oe, ok := err.(*Error); ok {
		return oe.At(span)
	}
	return err
}
