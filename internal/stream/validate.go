package stream

import (
	"fmt"

	"tokstream/internal/source"
	"tokstream/internal/token"
)

// OrderError describes the first token whose span breaks lexer ordering.
type OrderError struct {
	Index int
	Prev  source.Span
	Span  source.Span
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("token %d span %s starts before previous span %s ends", e.Index, e.Span, e.Prev)
}

// Validate checks that every span is well formed and that spans within one
// file do not go backwards. Streams never call it; lexers and tests may.
func Validate[K any](tokens []token.Token[K]) error {
	for i, tok := range tokens {
		if tok.Span.Start.Offset > tok.Span.End.Offset {
			return &OrderError{Index: i, Prev: tok.Span, Span: tok.Span}
		}
		if i == 0 {
			continue
		}
		prev := tokens[i-1].Span
		if prev.File == tok.Span.File && tok.Span.Start.Offset < prev.End.Offset {
			return &OrderError{Index: i, Prev: prev, Span: tok.Span}
		}
	}
	return nil
}
