// Package ast provides the source-location primitives shared by every
// later compiler phase. The surface syntax tree itself belongs to the
// parser/resolver, an external collaborator this repository does not
// implement; only the position and span types live here, carried into
// internal/air's nodes verbatim.
package ast

import "fmt"

// Pos represents a position in the source code.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int // Byte offset for SID calculation
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span represents a range in source code.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.Line, s.End.Column)
}
