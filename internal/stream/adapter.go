package stream

import (
	"tokstream/internal/source"
	"tokstream/internal/token"
)

// Capabilities a combinator engine may require of its input. Engines should
// depend on these rather than on Stream so the input type stays swappable.

// Length reports how much input is left.
type Length interface {
	Len() int
	IsEmpty() bool
}

// Splittable derives narrower views of type S.
type Splittable[S any] interface {
	SplitAt(n int) (consumed, rest S)
	Advance(n int) S
}

// Peekable gives random read access ahead of the current position.
type Peekable[K any] interface {
	Peek(i int) (token.Token[K], bool)
}

// SpanReporting supplies the positional data error values are built from.
type SpanReporting interface {
	CurrentSpan() (source.Span, bool)
	SpanOf(n int) (source.Span, bool)
	Here() (source.Span, bool)
}

// Input is the full capability set of a token stream.
type Input[K any, S any] interface {
	Length
	Splittable[S]
	Peekable[K]
	SpanReporting
	Equal(other S) bool
}

var _ Input[int, Stream[int]] = Stream[int]{}

// Cursor exposes a Stream under the operation names used by nom-style and
// cursor-style combinator engines. Every method delegates to Stream as is.
type Cursor[K any] struct {
	s Stream[K]
}

// Wrap returns a cursor over s.
func Wrap[K any](s Stream[K]) Cursor[K] {
	return Cursor[K]{s: s}
}

// Stream returns the wrapped view.
func (c Cursor[K]) Stream() Stream[K] { return c.s }

func (c Cursor[K]) InputLen() int { return c.s.Len() }

// Take returns the first n tokens.
func (c Cursor[K]) Take(n int) Cursor[K] {
	consumed, _ := c.s.SplitAt(n)
	return Cursor[K]{s: consumed}
}

// TakeSplit returns the remainder first and the consumed prefix second.
func (c Cursor[K]) TakeSplit(n int) (rest, consumed Cursor[K]) {
	head, tail := c.s.SplitAt(n)
	return Cursor[K]{s: tail}, Cursor[K]{s: head}
}

// SliceIndex reports whether count tokens are available.
func (c Cursor[K]) SliceIndex(count int) (int, bool) {
	if count < 0 || count > c.s.Len() {
		return 0, false
	}
	return count, true
}

// Position returns the index of the first token matching pred.
func (c Cursor[K]) Position(pred func(token.Token[K]) bool) (int, bool) {
	return c.s.FindFirst(pred)
}

// Token returns the current token.
func (c Cursor[K]) Token() (token.Token[K], bool) { return c.s.Peek(0) }

// Next returns the cursor after the current token.
func (c Cursor[K]) Next() Cursor[K] { return Cursor[K]{s: c.s.Advance(1)} }

// Good reports whether a token is available.
func (c Cursor[K]) Good() bool { return !c.s.IsEmpty() }

// Location returns the span of the current token.
func (c Cursor[K]) Location() (source.Span, bool) { return c.s.CurrentSpan() }

// Equal reports whether both cursors sit on the same view position.
func (c Cursor[K]) Equal(other Cursor[K]) bool { return c.s.Equal(other.s) }
