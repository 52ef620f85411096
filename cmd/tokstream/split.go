package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tokstream/internal/diagfmt"
	"tokstream/internal/lexer"
	"tokstream/internal/source"
	"tokstream/internal/stream"
)

var splitCmd = &cobra.Command{
	Use:   "split [flags] file",
	Short: "Split a token stream at a position and show both halves",
	Args:  cobra.ExactArgs(1),
	RunE:  runSplit,
}

func init() {
	splitCmd.Flags().Int("at", 0, "number of tokens in the consumed half (clamped)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	sess, cleanup, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	at, err := cmd.Flags().GetInt("at")
	if err != nil {
		return fmt.Errorf("failed to get at flag: %w", err)
	}
	res, err := sess.tokenize(cmd, args[0])
	if err != nil {
		return err
	}
	status := sess.reportDiagnostics(cmd.ErrOrStderr(), res)

	consumed, rest := res.Stream.SplitAt(at)
	out := cmd.OutOrStdout()
	if err := writeView(out, "consumed", consumed, res.FileSet); err != nil {
		return err
	}
	if err := writeView(out, "rest", rest, res.FileSet); err != nil {
		return err
	}
	return status
}

// writeView prints a header with the view bounds and its covering span,
// followed by the tokens in it.
func writeView(w io.Writer, label string, view stream.Stream[lexer.Kind], fs *source.FileSet) error {
	sp, ok := view.Span()
	where := "empty"
	if ok {
		where = diagfmt.FormatSpan(sp, fs, diagfmt.PathModeAuto, "")
	} else if here, ok := view.Here(); ok {
		where = "empty at " + diagfmt.FormatSpan(here, fs, diagfmt.PathModeAuto, "")
	}
	if _, err := fmt.Fprintf(w, "%s %s %s\n", label, view, where); err != nil {
		return err
	}
	for i, tok := range view.All() {
		if err := diagfmt.FormatTokensPretty(w, []lexer.Token{tok}, view.Offset()+i); err != nil {
			return err
		}
	}
	return nil
}
