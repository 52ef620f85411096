// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"tokstream/internal/source"
	"tokstream/internal/stream"
	"tokstream/internal/token"
)

// CheckTokenInvariants verifies what every lexer feeding a stream promises:
//  1. each token points at sf and lies within its content
//  2. Text is exactly the source bytes under the span
//  3. line/col agree with the file's line index
//  4. spans never go backwards (stream.Validate)
func CheckTokenInvariants[K any](toks []token.Token[K], sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	size := sf.Len()
	for i, tok := range toks {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End.Offset > size {
			return fmt.Errorf("token %d: span %v beyond content (%d bytes)", i, sp, size)
		}
		if sp.Start.Offset > sp.End.Offset {
			return fmt.Errorf("token %d: inverted span %v", i, sp)
		}
		if got := string(sf.Content[sp.Start.Offset:sp.End.Offset]); got != tok.Text {
			return fmt.Errorf("token %d: text %q does not match source %q", i, tok.Text, got)
		}
		if want := sf.Position(sp.Start.Offset); want != sp.Start {
			return fmt.Errorf("token %d: start %v, file index says %v", i, sp.Start, want)
		}
		if want := sf.Position(sp.End.Offset); want != sp.End {
			return fmt.Errorf("token %d: end %v, file index says %v", i, sp.End, want)
		}
	}
	return stream.Validate(toks)
}

// CheckSplit verifies that splitting s at n partitions it: both halves share
// the backing, their lengths add up, and the covering spans merge back into
// the span of s.
func CheckSplit[K any](s stream.Stream[K], n int) error {
	consumed, rest := s.SplitAt(n)
	if !consumed.SameSource(s) || !rest.SameSource(s) {
		return fmt.Errorf("split at %d: halves do not share the backing sequence", n)
	}
	if consumed.Len()+rest.Len() != s.Len() {
		return fmt.Errorf("split at %d: %d + %d != %d", n, consumed.Len(), rest.Len(), s.Len())
	}
	if !rest.Equal(s.Advance(n)) {
		return fmt.Errorf("split at %d: rest %v differs from Advance %v", n, rest, s.Advance(n))
	}
	whole, ok := s.Span()
	if !ok {
		return nil
	}
	left, lok := consumed.Span()
	right, rok := rest.Span()
	var merged source.Span
	switch {
	case lok && rok:
		merged = left.Merge(right)
	case lok:
		merged = left
	default:
		merged = right
	}
	if merged != whole {
		return fmt.Errorf("split at %d: halves cover %v, whole covers %v", n, merged, whole)
	}
	return nil
}
