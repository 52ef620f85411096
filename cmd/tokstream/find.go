package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokstream/internal/diagfmt"
	"tokstream/internal/lexer"
	"tokstream/internal/stream"
)

var findCmd = &cobra.Command{
	Use:   "find [flags] file",
	Short: "List the tokens of a given kind",
	Args:  cobra.ExactArgs(1),
	RunE:  runFind,
}

func init() {
	findCmd.Flags().String("kind", "", "token kind to look for (Ident, Keyword, IntLit, FloatLit, StringLit, Comment, Punct, Invalid)")
	findCmd.Flags().String("text", "", "only match tokens with this exact text")
	findCmd.Flags().Int("limit", 0, "stop after this many matches (0 = all)")
}

func runFind(cmd *cobra.Command, args []string) error {
	sess, cleanup, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	kindName, err := cmd.Flags().GetString("kind")
	if err != nil {
		return fmt.Errorf("failed to get kind flag: %w", err)
	}
	text, err := cmd.Flags().GetString("text")
	if err != nil {
		return fmt.Errorf("failed to get text flag: %w", err)
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("failed to get limit flag: %w", err)
	}
	var pred func(lexer.Token) bool
	switch {
	case kindName != "":
		kind, ok := lexer.ParseKind(kindName)
		if !ok {
			return fmt.Errorf("unknown kind %q", kindName)
		}
		pred = func(tok lexer.Token) bool { return tok.Kind == kind && (text == "" || tok.Text == text) }
	case text != "":
		pred = func(tok lexer.Token) bool { return tok.Text == text }
	default:
		return fmt.Errorf("one of --kind or --text is required")
	}

	res, err := sess.tokenize(cmd, args[0])
	if err != nil {
		return err
	}
	status := sess.reportDiagnostics(cmd.ErrOrStderr(), res)

	matches := findAll(stream.Wrap(res.Stream), pred, limit)
	out := cmd.OutOrStdout()
	for _, m := range matches {
		tok, _ := m.Token()
		if err := diagfmt.FormatTokensPretty(out, []lexer.Token{tok}, m.Stream().Offset()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(out, "%d %s\n", len(matches), plural(len(matches), "match", "matches")); err != nil {
		return err
	}
	return status
}

// findAll returns a cursor positioned on each token matching pred.
func findAll(cur stream.Cursor[lexer.Kind], pred func(lexer.Token) bool, limit int) []stream.Cursor[lexer.Kind] {
	var out []stream.Cursor[lexer.Kind]
	for cur.Good() {
		i, ok := cur.Position(pred)
		if !ok {
			break
		}
		at, _ := cur.TakeSplit(i)
		out = append(out, at)
		if limit > 0 && len(out) == limit {
			break
		}
		next := at.Next()
		if next.Equal(cur) {
			break
		}
		cur = next
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
