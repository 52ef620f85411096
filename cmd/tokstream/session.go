package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tokstream/internal/config"
	"tokstream/internal/diagfmt"
	"tokstream/internal/driver"
	"tokstream/internal/lexer"
	"tokstream/internal/prof"
	"tokstream/internal/snapshot"
)

// session is the resolved configuration of one command run.
type session struct {
	cfg   config.Config
	opts  driver.Options
	color bool // colorize diagnostics on stderr
}

// openSession loads the config file, applies flag overrides, opens the token
// cache and installs the tracer on cmd's context. The returned cleanup flushes
// the tracer.
func openSession(cmd *cobra.Command) (*session, func(), error) {
	flags := cmd.Root().PersistentFlags()
	cfgPath, err := flags.GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Resolve(cfgPath, ".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid settings: %w", err)
	}

	opts := driver.OptionsFromConfig(cfg)
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if cfg.Cache.Dir != "" && !noCache {
		cache, err := snapshot.OpenDiskCache[lexer.Kind](cfg.Cache.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open token cache: %w", err)
		}
		opts.Cache = cache
	}

	profiles, err := startProfiles(cmd)
	if err != nil {
		return nil, nil, err
	}
	stopTracing, err := setupTracing(cmd, cfg.Trace)
	if err != nil {
		_ = profiles.Stop()
		return nil, nil, err
	}
	cleanup := func() {
		stopTracing()
		if err := profiles.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "prof: %v\n", err)
		}
	}
	return &session{
		cfg:   cfg,
		opts:  opts,
		color: useColor(cfg.Output.Color, os.Stderr),
	}, cleanup, nil
}

func startProfiles(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return prof.Start(opts)
}

// applyFlags copies explicitly set persistent flags over cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Root().PersistentFlags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Changed(name) {
			if applyErr := apply(); applyErr != nil {
				err = fmt.Errorf("failed to get %s flag: %w", name, applyErr)
			}
		}
	}
	set("color", func() (e error) { cfg.Output.Color, e = flags.GetString("color"); return })
	set("max-diagnostics", func() (e error) { cfg.Output.MaxDiagnostics, e = flags.GetInt("max-diagnostics"); return })
	set("keyword", func() (e error) { cfg.Lexer.Keywords, e = flags.GetStringSlice("keyword"); return })
	set("keep-comments", func() (e error) { cfg.Lexer.KeepComments, e = flags.GetBool("keep-comments"); return })
	set("nfc", func() (e error) { cfg.Lexer.NormalizeNFC, e = flags.GetBool("nfc"); return })
	set("cache-dir", func() (e error) { cfg.Cache.Dir, e = flags.GetString("cache-dir"); return })
	set("trace", func() (e error) { cfg.Trace.Output, e = flags.GetString("trace"); return })
	set("trace-level", func() (e error) { cfg.Trace.Level, e = flags.GetString("trace-level"); return })
	set("trace-format", func() (e error) { cfg.Trace.Format, e = flags.GetString("trace-format"); return })
	return err
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(f)
}

// reportDiagnostics prints bag to w and returns errHasErrors when it holds errors.
func (s *session) reportDiagnostics(w io.Writer, res *driver.Result) error {
	if res.Bag.Len() == 0 {
		return nil
	}
	res.Bag.Sort()
	err := diagfmt.Pretty(w, res.Bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     s.color,
		ShowNotes: true,
	})
	if err != nil {
		return fmt.Errorf("failed to print diagnostics: %w", err)
	}
	if res.Bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

// tokenize lexes path with the session options.
func (s *session) tokenize(cmd *cobra.Command, path string) (*driver.Result, error) {
	res, err := driver.Tokenize(cmd.Context(), path, s.opts)
	if err != nil {
		return nil, fmt.Errorf("tokenization failed: %w", err)
	}
	return res, nil
}
