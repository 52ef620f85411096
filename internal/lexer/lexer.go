package lexer

import (
	"fmt"

	"tokstream/internal/diag"
	"tokstream/internal/source"
	"tokstream/internal/token"
)

// Token is the token type this lexer produces.
type Token = token.Token[Kind]

type Lexer struct {
	file     *source.File
	cursor   Cursor
	opts     Options
	keywords map[string]struct{}
}

func New(file *source.File, opts Options) *Lexer {
	kw := make(map[string]struct{}, len(opts.Keywords))
	for _, k := range opts.Keywords {
		kw[k] = struct{}{}
	}
	return &Lexer{
		file:     file,
		cursor:   NewCursor(file),
		opts:     opts,
		keywords: kw,
	}
}

// Next returns the next token. It reports false once the input is exhausted.
// Whitespace is skipped; comments are returned as Comment tokens.
func (lx *Lexer) Next() (Token, bool) {
	lx.skipSpace()
	if lx.cursor.EOF() {
		return Token{}, false
	}

	ch := lx.cursor.Peek()
	var tok Token

	switch {
	case ch == '#' || lx.atLineComment():
		tok = lx.scanComment()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanPunct()
	}

	if lx.opts.MaxTokenLen > 0 && tok.Span.Len() > lx.opts.MaxTokenLen {
		lx.report(diag.LexTokenTooLong, diag.SevError, tok.Span.Start.Offset, tok.Span.End.Offset,
			fmt.Sprintf("token is %d bytes long, limit is %d", tok.Span.Len(), lx.opts.MaxTokenLen))
	}
	return tok, true
}

// All lexes the remaining input. Spans of the result are monotonic.
func (lx *Lexer) All() []Token {
	out := make([]Token, 0, lx.file.Len()/4+1)
	for {
		tok, ok := lx.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

// Tokenize lexes the whole file.
func Tokenize(file *source.File, opts Options) []Token {
	return New(file, opts).All()
}

func (lx *Lexer) skipSpace() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) atLineComment() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '/' && b1 == '/'
}

func (lx *Lexer) emit(kind Kind, start Mark) Token {
	sp := lx.cursor.SpanFrom(start)
	return token.New(kind, sp, string(lx.file.Content[sp.Start.Offset:sp.End.Offset]))
}
