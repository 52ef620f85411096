package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokstream/internal/diagfmt"
	"tokstream/internal/snapshot"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Lex a file and print its token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "", "output format (pretty|json|msgpack); defaults to [output].format")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	sess, cleanup, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = sess.cfg.Output.Format
	}

	res, err := sess.tokenize(cmd, args[0])
	if err != nil {
		return err
	}
	status := sess.reportDiagnostics(cmd.ErrOrStderr(), res)

	out := cmd.OutOrStdout()
	toks := res.Stream.AppendTokens(nil)
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, toks, res.Stream.Offset())
	case "json":
		err = diagfmt.FormatTokensJSON(out, toks, res.Stream.Offset())
	case "msgpack":
		err = snapshot.Encode(out, snapshot.New(res.Path, res.Key, toks))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to write tokens: %w", err)
	}
	return status
}
