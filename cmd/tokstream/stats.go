package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tokstream/internal/diag"
	"tokstream/internal/diagfmt"
	"tokstream/internal/driver"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] dir",
	Short: "Lex every source file under a directory and summarize the streams",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("jobs", 0, "max parallel workers (0 = GOMAXPROCS)")
	statsCmd.Flags().Bool("diagnostics", false, "print diagnostics for every file")
}

func runStats(cmd *cobra.Command, args []string) error {
	sess, cleanup, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	showDiags, err := cmd.Flags().GetBool("diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get diagnostics flag: %w", err)
	}

	dir := args[0]
	_, results, err := driver.TokenizeDir(cmd.Context(), dir, sess.opts, jobs)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	var status error
	stats := make([]diagfmt.FileStats, 0, len(results))
	for _, res := range results {
		st := diagfmt.FileStats{Path: res.Path, Tokens: res.Stream.Len(), Cached: res.Cached}
		for _, d := range res.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				st.Errors++
			case diag.SevWarning:
				st.Warnings++
			}
		}
		stats = append(stats, st)
		if showDiags {
			if err := sess.reportDiagnostics(cmd.ErrOrStderr(), res); err != nil && status == nil {
				status = err
			}
		} else if res.Bag.HasErrors() {
			status = errHasErrors
		}
	}

	out := cmd.OutOrStdout()
	if len(stats) == 0 {
		_, err := fmt.Fprintf(out, "no files matching %v under %s\n", sess.cfg.Lexer.Extensions, dir)
		return err
	}
	err = diagfmt.Summary(out, stats, diagfmt.SummaryOpts{
		Color:    useColor(sess.cfg.Output.Color, os.Stdout),
		Width:    pathColumnWidth(),
		PathMode: diagfmt.PathModeAuto,
		BaseDir:  dir,
	})
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return status
}

// pathColumnWidth sizes the path column to the terminal, leaving room for the
// numeric columns and the box border.
func pathColumnWidth() int {
	const numeric = 8 + 6 + 6 + 3 + 4
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w-numeric < 20 {
		return 40
	}
	return min(w-numeric, 80)
}
