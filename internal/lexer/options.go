package lexer

import "tokstream/internal/diag"

type Options struct {
	Reporter diag.Reporter // may be nil: errors are dropped, lexing continues
	Keywords []string      // identifiers lexed as Keyword
	// MaxTokenLen reports tokens longer than this many bytes; 0 disables the check.
	MaxTokenLen uint32
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, lo, hi uint32, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sev, lx.file.SpanOf(lo, hi), msg, nil)
	}
}
