package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokstream/internal/lexer"
	"tokstream/internal/snapshot"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the token cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached token snapshot",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the token cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, cleanup, err := openCache(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		if cache == nil {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cacheDisabled)
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
		return err
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheDirCmd)
}

const cacheDisabled = "token cache disabled (set [cache].dir or --cache-dir)"

// openCache opens the configured cache directory. It returns a nil cache when
// none is configured, matching the commands that lex files.
func openCache(cmd *cobra.Command) (*snapshot.DiskCache[lexer.Kind], func(), error) {
	sess, cleanup, err := openSession(cmd)
	if err != nil {
		return nil, nil, err
	}
	if sess.cfg.Cache.Dir == "" {
		return nil, cleanup, nil
	}
	cache, err := snapshot.OpenDiskCache[lexer.Kind](sess.cfg.Cache.Dir)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to open token cache: %w", err)
	}
	return cache, cleanup, nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cache, cleanup, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	if cache == nil {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), cacheDisabled)
		return err
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", cache.Dir(), err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Dir())
	return err
}
