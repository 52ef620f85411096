package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tokstream/internal/version"
)

// errHasErrors marks a run whose input produced error diagnostics. They are
// already printed, so main only sets the exit status.
var errHasErrors = errors.New("input has errors")

var rootCmd = &cobra.Command{
	Use:           "tokstream",
	Short:         "Inspect token streams",
	Long:          `tokstream lexes source files and slices the resulting token streams the way a parser combinator would`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(spanCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	addPersistentFlags(rootCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errHasErrors) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func addPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "path to tokstream.toml (default: nearest one above the working directory)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to collect per file")
	flags.StringSlice("keyword", nil, "identifier lexed as a keyword (repeatable)")
	flags.Bool("keep-comments", false, "keep comment tokens in the stream")
	flags.Bool("nfc", false, "normalize sources to Unicode NFC before lexing")
	flags.String("cache-dir", "", "token cache directory")
	flags.Bool("no-cache", false, "do not read or write the token cache")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
