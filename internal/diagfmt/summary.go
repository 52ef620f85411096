package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// FileStats is one row of the stats summary.
type FileStats struct {
	Path     string
	Tokens   int
	Errors   int
	Warnings int
	Cached   bool
}

// SummaryOpts configures Summary.
type SummaryOpts struct {
	Color    bool
	Width    int // total width of the path column; 0 picks 40
	PathMode PathMode
	BaseDir  string
}

// Summary renders a per-file table inside a rounded box, with a totals row.
func Summary(w io.Writer, stats []FileStats, opts SummaryOpts) error {
	nameWidth := opts.Width
	if nameWidth <= 0 {
		nameWidth = 40
	}

	r := lipgloss.NewRenderer(w)
	if opts.Color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	var b strings.Builder
	title := r.NewStyle().Bold(true)
	b.WriteString(title.Render(fmt.Sprintf("%-*s %8s %6s %6s", nameWidth, "file", "tokens", "errors", "warns")))
	b.WriteString("\n")

	var total FileStats
	for _, st := range stats {
		name := truncate(formatPath(st.Path, opts.PathMode, opts.BaseDir), nameWidth)
		if st.Cached {
			name = truncate(name+" (cached)", nameWidth)
		}
		name += strings.Repeat(" ", nameWidth-runewidth.StringWidth(name))
		row := fmt.Sprintf("%s %8d %6d %6d", name, st.Tokens, st.Errors, st.Warnings)
		b.WriteString(styleRow(r, st).Render(row))
		b.WriteString("\n")
		total.Tokens += st.Tokens
		total.Errors += st.Errors
		total.Warnings += st.Warnings
	}
	b.WriteString(title.Render(fmt.Sprintf("%-*s %8d %6d %6d", nameWidth,
		fmt.Sprintf("%d files", len(stats)), total.Tokens, total.Errors, total.Warnings)))

	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	_, err := fmt.Fprintln(w, box.Render(b.String()))
	return err
}

func styleRow(r *lipgloss.Renderer, st FileStats) lipgloss.Style {
	switch {
	case st.Errors > 0:
		return r.NewStyle().Foreground(lipgloss.Color("1"))
	case st.Warnings > 0:
		return r.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return r.NewStyle().Foreground(lipgloss.Color("2"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
