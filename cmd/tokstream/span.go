package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokstream/internal/diag"
	"tokstream/internal/diagfmt"
)

var spanCmd = &cobra.Command{
	Use:   "span [flags] file",
	Short: "Print the source span covered by a run of tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpan,
}

func init() {
	spanCmd.Flags().Int("skip", 0, "tokens to advance past first")
	spanCmd.Flags().Int("count", 1, "tokens to cover")
}

func runSpan(cmd *cobra.Command, args []string) error {
	sess, cleanup, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	skip, err := cmd.Flags().GetInt("skip")
	if err != nil {
		return fmt.Errorf("failed to get skip flag: %w", err)
	}
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return fmt.Errorf("failed to get count flag: %w", err)
	}
	res, err := sess.tokenize(cmd, args[0])
	if err != nil {
		return err
	}
	status := sess.reportDiagnostics(cmd.ErrOrStderr(), res)

	view := res.Stream.Advance(skip)
	out := cmd.OutOrStdout()
	sp, ok := view.SpanOf(count)
	if !ok {
		// nothing to cover: point at where the input stops
		sp = diag.LocateN(view, count)
		_, err := fmt.Fprintf(out, "no tokens at %s (%s)\n", diagfmt.FormatSpan(sp, res.FileSet, diagfmt.PathModeAuto, ""), view)
		if err != nil {
			return err
		}
		return status
	}

	text := res.File.Content[sp.Start.Offset:sp.End.Offset]
	n := min(max(count, 0), view.Len())
	if _, err := fmt.Fprintf(out, "%s (%d tokens)\n%s\n",
		diagfmt.FormatSpan(sp, res.FileSet, diagfmt.PathModeAuto, ""), n, text); err != nil {
		return err
	}
	return status
}
