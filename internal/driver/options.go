package driver

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"tokstream/internal/config"
	"tokstream/internal/lexer"
	"tokstream/internal/snapshot"
)

// Options controls how files are turned into token streams.
type Options struct {
	Keywords       []string
	KeepComments   bool
	NormalizeNFC   bool
	MaxTokenLen    uint32
	MaxDiagnostics int
	Extensions     []string // file suffixes picked up by TokenizeDir
	Cache          *snapshot.DiskCache[lexer.Kind]
}

// OptionsFromConfig maps the [lexer] and [output] sections onto Options.
// The cache is left for the caller to open.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Keywords:       cfg.Lexer.Keywords,
		KeepComments:   cfg.Lexer.KeepComments,
		NormalizeNFC:   cfg.Lexer.NormalizeNFC,
		MaxTokenLen:    cfg.Lexer.MaxTokenLen,
		MaxDiagnostics: cfg.Output.MaxDiagnostics,
		Extensions:     cfg.Lexer.Extensions,
	}
}

// cacheSettings lists everything besides file content that changes the tokens.
func (o Options) cacheSettings() []string {
	return []string{
		"keywords=" + strings.Join(o.Keywords, ","),
		"comments=" + strconv.FormatBool(o.KeepComments),
		"nfc=" + strconv.FormatBool(o.NormalizeNFC),
		"maxlen=" + strconv.FormatUint(uint64(o.MaxTokenLen), 10),
	}
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

func (o Options) matches(path string) bool {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = []string{".tok"}
	}
	return slices.Contains(exts, filepath.Ext(path))
}
