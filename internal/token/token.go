package token

import (
	"fmt"

	"tokstream/internal/source"
)

// Token represents a single source token with its kind and location.
type Token[K any] struct {
	Kind K           `json:"kind" msgpack:"k"`
	Span source.Span `json:"span" msgpack:"s"`
	Text string      `json:"text,omitempty" msgpack:"t,omitempty"`
}

// New creates a token of the given kind covering span.
func New[K any](kind K, span source.Span, text string) Token[K] {
	return Token[K]{Kind: kind, Span: span, Text: text}
}

// Loc returns the start position of the token.
func (t Token[K]) Loc() source.Position {
	return t.Span.Start
}

// String renders the token kind.
func (t Token[K]) String() string {
	return fmt.Sprint(t.Kind)
}

// IsKeyword reports whether the token kind is a keyword.
func (t Token[K]) IsKeyword() bool {
	c, ok := classify(t.Kind)
	return ok && c.IsKeyword()
}

// IsReserved reports whether the token kind is a reserved word.
func (t Token[K]) IsReserved() bool {
	c, ok := classify(t.Kind)
	return ok && c.IsReserved()
}

// IsComment reports whether the token kind is a comment.
func (t Token[K]) IsComment() bool {
	c, ok := classify(t.Kind)
	return ok && c.IsComment()
}

// IsLiteral reports whether the token kind is a literal.
func (t Token[K]) IsLiteral() bool {
	c, ok := classify(t.Kind)
	return ok && c.IsLiteral()
}

// IsIdent reports whether the token kind is an identifier.
func (t Token[K]) IsIdent() bool {
	c, ok := classify(t.Kind)
	return ok && c.IsIdentifier()
}

// Keep reports whether the token survives Filter. Unclassified kinds are kept.
func (t Token[K]) Keep() bool {
	c, ok := classify(t.Kind)
	return !ok || c.Keep()
}
