package stream

import (
	"cmp"
	"fmt"
	"iter"

	"tokstream/internal/source"
	"tokstream/internal/token"
)

type backing[K any] struct {
	tokens []token.Token[K]
}

// Stream is a read-only window over a shared token sequence.
// The zero value is an empty stream with no backing tokens.
type Stream[K any] struct {
	b   *backing[K]
	off int
	end int
}

// New builds a stream over tokens. The stream takes ownership of the slice:
// callers must not modify it afterwards.
func New[K any](tokens []token.Token[K]) Stream[K] {
	return Stream[K]{
		b:   &backing[K]{tokens: tokens},
		off: 0,
		end: len(tokens),
	}
}

func (s Stream[K]) tokens() []token.Token[K] {
	if s.b == nil {
		return nil
	}
	return s.b.tokens
}

// Len returns the number of tokens remaining in the view.
func (s Stream[K]) Len() int {
	return s.end - s.off
}

// IsEmpty reports whether the view has no tokens left.
func (s Stream[K]) IsEmpty() bool {
	return s.off == s.end
}

// Offset returns the absolute index of the next token in the backing sequence.
func (s Stream[K]) Offset() int {
	return s.off
}

// Backing returns the length of the shared backing sequence.
func (s Stream[K]) Backing() int {
	return len(s.tokens())
}

// Peek returns the token i positions ahead without consuming it.
func (s Stream[K]) Peek(i int) (token.Token[K], bool) {
	if i < 0 || i >= s.Len() {
		var zero token.Token[K]
		return zero, false
	}
	return s.b.tokens[s.off+i], true
}

// Advance returns the view after n tokens. It saturates at the end of the view.
func (s Stream[K]) Advance(n int) Stream[K] {
	s.off = s.clamp(n)
	return s
}

// SplitAt returns the first n tokens and the rest as two views.
// n is clamped to [0, Len()].
func (s Stream[K]) SplitAt(n int) (consumed, rest Stream[K]) {
	mid := s.clamp(n)
	consumed, rest = s, s
	consumed.end = mid
	rest.off = mid
	return consumed, rest
}

func (s Stream[K]) clamp(n int) int {
	if n <= 0 {
		return s.off
	}
	if n >= s.Len() {
		return s.end
	}
	return s.off + n
}

// CurrentSpan returns the span of the next token, if any.
func (s Stream[K]) CurrentSpan() (source.Span, bool) {
	if s.IsEmpty() {
		return source.Span{}, false
	}
	return s.b.tokens[s.off].Span, true
}

// SpanOf returns the merged span of the next n tokens (clamped).
// It reports false when n <= 0 or the view is empty.
func (s Stream[K]) SpanOf(n int) (source.Span, bool) {
	if n <= 0 || s.IsEmpty() {
		return source.Span{}, false
	}
	last := s.clamp(n) - 1
	first := s.b.tokens[s.off].Span
	// spans are monotonic, so first and last bound everything in between
	return first.Merge(s.b.tokens[last].Span), true
}

// Span returns the merged span of every token in the view.
func (s Stream[K]) Span() (source.Span, bool) {
	return s.SpanOf(s.Len())
}

// Here returns a zero-width span at the current position: the start of the
// next token, or the end of the previous one once the view is exhausted.
// It reports false only when the backing sequence holds no tokens at all.
func (s Stream[K]) Here() (source.Span, bool) {
	toks := s.tokens()
	switch {
	case s.off < len(toks):
		return toks[s.off].Span.ZeroideToStart(), true
	case s.off > 0:
		return toks[s.off-1].Span.ZeroideToEnd(), true
	default:
		return source.Span{}, false
	}
}

// CompareFirst reports whether the next token exists and satisfies pred.
// Only the token at the current offset is tested; it does not scan forward.
// Use FindFirst to search the rest of the view.
func (s Stream[K]) CompareFirst(pred func(token.Token[K]) bool) bool {
	tok, ok := s.Peek(0)
	return ok && pred(tok)
}

// FindFirst returns the index, relative to the view, of the first token
// satisfying pred.
func (s Stream[K]) FindFirst(pred func(token.Token[K]) bool) (int, bool) {
	for i, tok := range s.b.window(s.off, s.end) {
		if pred(tok) {
			return i, true
		}
	}
	return -1, false
}

func (b *backing[K]) window(off, end int) []token.Token[K] {
	if b == nil {
		return nil
	}
	return b.tokens[off:end:end]
}

// All iterates over the view, yielding indexes relative to the view.
func (s Stream[K]) All() iter.Seq2[int, token.Token[K]] {
	return func(yield func(int, token.Token[K]) bool) {
		for i, tok := range s.b.window(s.off, s.end) {
			if !yield(i, tok) {
				return
			}
		}
	}
}

// AppendTokens appends the tokens of the view to dst and returns the result.
func (s Stream[K]) AppendTokens(dst []token.Token[K]) []token.Token[K] {
	return append(dst, s.b.window(s.off, s.end)...)
}

// Equal reports whether both views share a backing sequence and offset.
func (s Stream[K]) Equal(other Stream[K]) bool {
	return s.b == other.b && s.off == other.off
}

// SameSource reports whether both views share a backing sequence.
func (s Stream[K]) SameSource(other Stream[K]) bool {
	return s.b == other.b
}

// Compare orders views by absolute offset. It is only meaningful for views
// of the same backing sequence.
func (s Stream[K]) Compare(other Stream[K]) int {
	return cmp.Compare(s.off, other.off)
}

func (s Stream[K]) String() string {
	return fmt.Sprintf("stream[%d:%d/%d]", s.off, s.end, s.Backing())
}
