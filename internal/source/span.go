package source

import (
	"cmp"
	"fmt"
)

// Position is a point in a source file. Offset is authoritative for ordering;
// Line and Col are derived from it when the position is built.
type Position struct {
	Offset uint32 `json:"offset" msgpack:"o"`
	Line   uint32 `json:"line" msgpack:"l"` // 1-based
	Col    uint32 `json:"col" msgpack:"c"`  // 1-based
}

// Compare orders positions by byte offset.
func (p Position) Compare(other Position) int {
	return cmp.Compare(p.Offset, other.Offset)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span is the half-open source range [Start, End).
// Invariant: Start.Offset <= End.Offset.
type Span struct {
	File  FileID   `json:"file" msgpack:"f"`
	Start Position `json:"start" msgpack:"s"`
	End   Position `json:"end" msgpack:"e"`
}

func (s Span) Empty() bool {
	return s.Start.Offset == s.End.Offset
}

func (s Span) Len() uint32 {
	return s.End.Offset - s.Start.Offset
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%s-%s", s.File, s.Start, s.End)
}

// Merge returns the smallest span covering both s and other.
// Spans from different files are not merged: s is returned unchanged.
func (s Span) Merge(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start.Offset < s.Start.Offset {
		s.Start = other.Start
	}
	if other.End.Offset > s.End.Offset {
		s.End = other.End
	}
	return s
}

// Compare orders spans by file, then start offset, then end offset.
func (s Span) Compare(other Span) int {
	if c := cmp.Compare(s.File, other.File); c != 0 {
		return c
	}
	if c := s.Start.Compare(other.Start); c != 0 {
		return c
	}
	return s.End.Compare(other.End)
}

// Less reports whether s sorts before other.
func (s Span) Less(other Span) bool {
	return s.Compare(other) < 0
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File &&
		s.Start.Offset <= other.Start.Offset &&
		other.End.Offset <= s.End.Offset
}

// ZeroideToStart collapses the span to its start position.
func (s Span) ZeroideToStart() Span {
	s.End = s.Start
	return s
}

// ZeroideToEnd collapses the span to its end position.
func (s Span) ZeroideToEnd() Span {
	s.Start = s.End
	return s
}
