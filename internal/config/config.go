// Package config loads tokstream.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = "tokstream.toml"

type Config struct {
	Lexer  LexerConfig  `toml:"lexer"`
	Output OutputConfig `toml:"output"`
	Trace  TraceConfig  `toml:"trace"`
	Cache  CacheConfig  `toml:"cache"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type LexerConfig struct {
	Keywords     []string `toml:"keywords"`
	KeepComments bool     `toml:"keep_comments"`
	NormalizeNFC bool     `toml:"normalize_nfc"`
	MaxTokenLen  uint32   `toml:"max_token_len"`
	Extensions   []string `toml:"extensions"`
}

type OutputConfig struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Format string `toml:"format"`
}

type CacheConfig struct {
	Dir string `toml:"dir"` // empty disables the token cache
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Lexer: LexerConfig{
			Extensions: []string{".tok"},
		},
		Output: OutputConfig{
			Format:         "pretty",
			Color:          "auto",
			MaxDiagnostics: 100,
		},
		Trace: TraceConfig{
			Level:  "off",
			Output: "-",
			Format: "auto",
		},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("lexer", "extensions") && len(cfg.Lexer.Extensions) == 0 {
		return Config{}, fmt.Errorf("%s: [lexer].extensions must not be empty", path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads the explicit path when given, else the nearest FileName
// above startDir, else Default.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks enumerated values and limits.
func (c Config) Validate() error {
	switch c.Output.Format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("[output].format: unknown format %q (expected pretty|json|msgpack)", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color: unknown mode %q (expected auto|on|off)", c.Output.Color)
	}
	if c.Output.MaxDiagnostics <= 0 {
		return fmt.Errorf("[output].max_diagnostics must be positive, got %d", c.Output.MaxDiagnostics)
	}
	for _, ext := range c.Lexer.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("[lexer].extensions: %q must start with '.'", ext)
		}
	}
	for _, kw := range c.Lexer.Keywords {
		if strings.TrimSpace(kw) == "" || strings.ContainsAny(kw, " \t\n") {
			return fmt.Errorf("[lexer].keywords: invalid keyword %q", kw)
		}
	}
	return nil
}
