package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"tokstream/internal/source"
	"tokstream/internal/token"
)

type TokenOutput struct {
	Index int         `json:"index"`
	Kind  string      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Span  source.Span `json:"span"`
}

// FormatTokensPretty writes one line per token: absolute index, kind, text
// and line/col range. base is the absolute index of tokens[0].
func FormatTokensPretty[K any](w io.Writer, tokens []token.Token[K], base int) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%4d: %-10s", base+i, tok.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			if _, err := fmt.Fprintf(w, " %q", tok.Text); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, " at %s-%s\n", tok.Span.Start, tok.Span.End); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes tokens as an indented JSON array.
func FormatTokensJSON[K any](w io.Writer, tokens []token.Token[K], base int) error {
	output := make([]TokenOutput, 0, len(tokens))
	for i, tok := range tokens {
		output = append(output, TokenOutput{
			Index: base + i,
			Kind:  tok.String(),
			Text:  tok.Text,
			Span:  tok.Span,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// FormatSpan renders a span with its file path, e.g. "a.tok:1:5-1:9".
func FormatSpan(sp source.Span, fs *source.FileSet, mode PathMode, base string) string {
	path := "<unknown>"
	if f := fs.Get(sp.File); f != nil {
		path = formatPath(f.Path, mode, base)
	}
	return fmt.Sprintf("%s:%s-%s", path, sp.Start, sp.End)
}
