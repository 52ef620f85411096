// Package stream provides Stream, an immutable view over a lexed token
// sequence for parser combinators.
//
// A Stream is a small value: a pointer to the shared backing sequence plus a
// [off, end) window. Every operation that "consumes" tokens returns a new
// view; nothing is copied and nothing is mutated, so views may be kept for
// backtracking and read from several goroutines at once.
//
// Invariants:
//   - 0 <= off <= end <= len(backing).
//   - Views derived from one stream share its backing pointer.
//   - Out-of-range reads return (zero, false); no operation panics on bounds.
//   - Equal compares backing identity and offset, which is what repetition
//     combinators use to detect a parser that made no progress.
//
// The stream assumes the lexer produced monotonically non-decreasing spans.
// That precondition is not checked on construction; call Validate to check it.
package stream
