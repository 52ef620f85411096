package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tokstream/internal/diag"
	"tokstream/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes diagnostics in a human-readable form:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	  <line> | <source line>
//	         | ^~~~
//
// followed by notes when opts.ShowNotes is set. Items are printed in bag
// order; call bag.Sort first for a stable listing.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for _, d := range items {
		header := fmt.Sprintf("%s: %s %s: %s",
			p.path.Sprint(location(d.Primary, fs, opts.PathMode, opts.BaseDir)),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		if err := writeSnippet(w, d.Primary, fs, p); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"),
				location(n.Span, fs, opts.PathMode, opts.BaseDir), n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func location(sp source.Span, fs *source.FileSet, mode PathMode, base string) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", formatPath(f.Path, mode, base), sp.Start.Line, sp.Start.Col)
}

func writeSnippet(w io.Writer, sp source.Span, fs *source.FileSet, p palette) error {
	f := fs.Get(sp.File)
	if f == nil || len(f.Content) == 0 || sp.Start.Line == 0 {
		return nil
	}
	line := f.GetLine(sp.Start.Line)
	num := strconv.FormatUint(uint64(sp.Start.Line), 10)
	pad := strings.Repeat(" ", len(num))

	pre, under := caretColumns(line, sp)
	_, err := fmt.Fprintf(w, "  %s %s %s\n  %s %s %s%s\n",
		p.gutter.Sprint(num), p.gutter.Sprint("|"), expandTabs(line),
		pad, p.gutter.Sprint("|"), strings.Repeat(" ", pre),
		p.caret.Sprint("^"+strings.Repeat("~", under-1)))
	return err
}

// caretColumns returns the display width before the span start and the
// width of the underline, which covers at least one column and stops at the
// end of the first line.
func caretColumns(line string, sp source.Span) (pre, under int) {
	start := clampCol(sp.Start.Col, len(line))
	end := len(line)
	if sp.End.Line == sp.Start.Line {
		end = clampCol(sp.End.Col, len(line))
	}
	pre = displayWidth(line[:start])
	under = max(displayWidth(line[start:max(start, end)]), 1)
	return pre, under
}

func clampCol(col uint32, n int) int {
	if col == 0 {
		return 0
	}
	return min(int(col)-1, n)
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
