package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"tokstream/internal/diag"
	"tokstream/internal/lexer"
	"tokstream/internal/snapshot"
	"tokstream/internal/source"
	"tokstream/internal/stream"
	"tokstream/internal/token"
	"tokstream/internal/trace"
)

// Result is a lexed file and the stream built over its tokens.
type Result struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Tokens  []lexer.Token // backing sequence of Stream
	Stream  stream.Stream[lexer.Kind]
	Bag     *diag.Bag
	Key     snapshot.Key // content and settings hash used by the cache
	Cached  bool         // tokens came from the disk cache
}

// Tokenize loads path and builds its token stream.
func Tokenize(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	tr := trace.FromContext(ctx)
	load := trace.Begin(tr, trace.ScopePhase, "load", trace.ParentID(ctx))
	id, err := fs.Load(path, source.LoadOptions{NormalizeNFC: opts.NormalizeNFC})
	load.End("")
	if err != nil {
		trace.Error(tr, trace.ScopeFile, "load", err, trace.ParentID(ctx))
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return TokenizeFile(ctx, fs, fs.Get(id), opts), nil
}

// TokenizeSource lexes in-memory content registered under name.
func TokenizeSource(ctx context.Context, name string, content []byte, opts Options) *Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return TokenizeFile(ctx, fs, fs.Get(id), opts)
}

// TokenizeFile lexes a file already registered in fs.
func TokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *Result {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, "file:"+file.Path, trace.ParentID(ctx))
	defer span.End("")

	bag := diag.NewBag(opts.maxDiagnostics())
	reporter := diag.BagReporter{Bag: bag}
	res := &Result{Path: file.Path, FileSet: fs, File: file, Bag: bag}

	key := snapshot.KeyFor(file.Content, opts.cacheSettings()...)
	res.Key = key
	if toks, ok := cachedTokens(tr, span.ID(), opts.Cache, key, file.ID, reporter); ok {
		res.Tokens, res.Cached = toks, true
		res.Stream = stream.New(toks)
		span.WithExtra("cached", "true").WithExtra("tokens", strconv.Itoa(len(toks)))
		return res
	}

	lex := trace.Begin(tr, trace.ScopePhase, "lex", span.ID())
	toks := lexer.Tokenize(file, lexer.Options{
		Reporter:    reporter,
		Keywords:    opts.Keywords,
		MaxTokenLen: opts.MaxTokenLen,
	})
	lex.WithExtra("tokens", strconv.Itoa(len(toks))).End("")

	if !opts.KeepComments {
		toks = token.Filter(toks)
	}

	if err := stream.Validate(toks); err != nil {
		primary := source.Span{File: file.ID}
		var orderErr *stream.OrderError
		if errors.As(err, &orderErr) {
			primary = orderErr.Span
		}
		diag.ReportError(reporter, diag.LexSpanOrder, primary, err.Error()).Emit()
	}

	res.Tokens = toks
	res.Stream = stream.New(toks)
	span.WithExtra("tokens", strconv.Itoa(len(toks)))

	if opts.Cache != nil && !bag.HasErrors() {
		if err := opts.Cache.Put(snapshot.New(file.Path, key, toks)); err != nil {
			trace.Error(tr, trace.ScopePhase, "cache-put", err, span.ID())
			diag.ReportWarning(reporter, diag.IOCacheError, source.Span{File: file.ID},
				"failed to write token cache: "+err.Error()).Emit()
		}
	}
	return res
}

func cachedTokens(tr trace.Tracer, parent uint64, cache *snapshot.DiskCache[lexer.Kind], key snapshot.Key, id source.FileID, r diag.Reporter) ([]lexer.Token, bool) {
	if cache == nil {
		return nil, false
	}
	snap, ok, err := cache.Get(key)
	if err != nil {
		trace.Error(tr, trace.ScopePhase, "cache-get", err, parent)
		diag.ReportWarning(r, diag.IOCacheError, source.Span{File: id},
			"failed to read token cache: "+err.Error()).Emit()
		return nil, false
	}
	if !ok {
		return nil, false
	}
	trace.Point(tr, trace.ScopePhase, "cache-hit", key.String()[:12], parent)
	snapshot.Relabel(snap.Tokens, id)
	return snap.Tokens, true
}
