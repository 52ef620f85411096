package token

// Classifier is implemented by token kinds that can describe themselves.
type Classifier interface {
	IsKeyword() bool
	IsReserved() bool
	IsComment() bool
	IsLiteral() bool
	IsIdentifier() bool
	// Keep reports whether the token should stay in the stream after filtering.
	Keep() bool
}

func classify[K any](kind K) (Classifier, bool) {
	c, ok := any(kind).(Classifier)
	return c, ok
}

// Filter returns the tokens whose Keep reports true, preserving order.
// The input slice is not modified.
func Filter[K any](tokens []Token[K]) []Token[K] {
	out := make([]Token[K], 0, len(tokens))
	for _, tok := range tokens {
		if tok.Keep() {
			out = append(out, tok)
		}
	}
	return out
}
