package diag

import (
	"tokstream/internal/source"
	"tokstream/internal/stream"
)

// Locate returns the primary span for a failure at the stream position:
// the next token when there is one, otherwise the zero-width span where the
// input ended. A stream that never held tokens yields the zero span.
func Locate(s stream.SpanReporting) source.Span {
	if sp, ok := s.CurrentSpan(); ok {
		return sp
	}
	sp, _ := s.Here()
	return sp
}

// LocateN returns the span covering the next n tokens, falling back to Locate
// when nothing can be covered.
func LocateN(s stream.SpanReporting, n int) source.Span {
	if sp, ok := s.SpanOf(n); ok {
		return sp
	}
	return Locate(s)
}
