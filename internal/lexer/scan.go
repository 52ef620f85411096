package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"tokstream/internal/diag"
)

const utf8RuneSelf = utf8.RuneSelf

var twoByteOps = [...]string{"==", "!=", "<=", ">=", "->", "=>", "::", ":=", "&&", "||", ".."}

func (lx *Lexer) scanComment() Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.emit(Comment, start)
}

func (lx *Lexer) scanIdentOrKeyword() Token {
	start := lx.cursor.Mark()
	first := true
	for !lx.cursor.EOF() {
		r, size := lx.peekRune()
		ok := isIdentContinueRune(r)
		if first {
			ok = isIdentStartRune(r)
		}
		if !ok {
			break
		}
		lx.bump(size)
		first = false
	}
	if lx.cursor.Off == uint32(start) {
		// not a letter after all: a stray non-ASCII rune
		r, size := lx.peekRune()
		lx.bump(max(size, 1))
		lx.report(diag.LexUnknownChar, diag.SevError, uint32(start), lx.cursor.Off,
			fmt.Sprintf("unknown character %q", r))
		return lx.emit(Invalid, start)
	}

	tok := lx.emit(Ident, start)
	if _, ok := lx.keywords[tok.Text]; ok {
		tok.Kind = Keyword
	}
	return tok
}

func (lx *Lexer) scanNumber() Token {
	start := lx.cursor.Mark()
	lx.digits()
	kind := IntLit

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		lx.digits()
		kind = FloatLit
	}
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		exp := lx.cursor.Mark()
		lx.cursor.Bump()
		if !lx.cursor.Eat('+') {
			lx.cursor.Eat('-')
		}
		if !isDec(lx.cursor.Peek()) {
			lx.report(diag.LexBadNumber, diag.SevError, uint32(start), lx.cursor.Off, "exponent has no digits")
			lx.cursor.Reset(exp)
			return lx.emit(kind, start)
		}
		lx.digits()
		kind = FloatLit
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) digits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanString() Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			lx.report(diag.LexUnterminatedString, diag.SevError, uint32(start), lx.cursor.Off, "string is not terminated")
			return lx.emit(StringLit, start)
		}
		switch lx.cursor.Bump() {
		case '\\':
			if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case '"':
			return lx.emit(StringLit, start)
		}
	}
}

func (lx *Lexer) scanPunct() Token {
	start := lx.cursor.Mark()
	if b0, b1, ok := lx.cursor.Peek2(); ok {
		for _, op := range twoByteOps {
			if op[0] == b0 && op[1] == b1 {
				lx.cursor.Bump()
				lx.cursor.Bump()
				return lx.emit(Punct, start)
			}
		}
	}
	ch := lx.cursor.Bump()
	if !isPunctByte(ch) {
		lx.report(diag.LexUnknownChar, diag.SevError, uint32(start), lx.cursor.Off,
			fmt.Sprintf("unknown character %q", ch))
		return lx.emit(Invalid, start)
	}
	return lx.emit(Punct, start)
}

func (lx *Lexer) peekRune() (rune, int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
}

func (lx *Lexer) bump(size int) {
	n, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	lx.cursor.Off = min(lx.cursor.Off+n, lx.file.Len())
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isPunctByte(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '%', '=', '!', '<', '>', '&', '|', '^', '~', '?',
		':', ';', ',', '.', '(', ')', '{', '}', '[', ']', '@', '$':
		return true
	}
	return false
}
