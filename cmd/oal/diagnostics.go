package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/oal-lang/oal/internal/oalerr"
)

// useColor decides whether stderr diagnostics get ANSI color, the same call
// the teacher's terminal builtins make before deciding to colorize
// (internal/evaluator/builtins_term.go).
func useColor() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// printDiagnostic writes one structured key=value line per the teacher's
// stderr diagnostic convention (pkg/cli/entry.go writes via
// fmt.Fprintf(os.Stderr, ...)). Kind/id/span are split into their own
// key=value fields so a host scraping stderr doesn't have to parse
// oalerr.Error's free-form message.
func printDiagnostic(err error) {
	color := useColor()
	oe, ok := err.(*oalerr.Error)
	if !ok {
		fmt.Fprintf(os.Stderr, "error=%q\n", err.Error())
		return
	}
	kind := string(oe.Kind)
	if color {
		kind = "\x1b[31m" + kind + "\x1b[0m"
	}
	fmt.Fprintf(os.Stderr, "kind=%s id=%s span=%s message=%q\n", kind, oe.ID, oe.Span.String(), oe.Message)
}
