package ast

import "fmt"

// Span locates a node in its originating source file. The parser (an
// external collaborator, see spec.md §6) attaches spans; every later stage
// preserves them unchanged, per the error-handling design in spec.md §7.
type Span struct {
	File  string
	Start int
	End   int
}

func (s *Span) String() string {
	if s == nil {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d-%d", s.File, s.Start, s.End)
}
