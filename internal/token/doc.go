// Package token defines the lexer-produced unit carried by token streams.
// Invariants:
//   - Token.Kind is opaque to the stream; grammars choose the type.
//   - Token.Span is the exact source range the lexer consumed for the token.
//   - Tokens are immutable once handed to a stream.
//   - Kinds may implement Classifier to expose keyword/comment/... predicates;
//     kinds that do not are treated as plain, kept tokens.
package token
