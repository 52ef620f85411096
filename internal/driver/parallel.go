package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"tokstream/internal/diag"
	"tokstream/internal/source"
	"tokstream/internal/trace"
)

// listFiles returns the sorted paths under dir accepted by opts.
func listFiles(dir string, opts Options) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && opts.matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// TokenizeDir lexes every matching file under dir on up to jobs goroutines.
// Results keep the sorted path order. A file that fails to load yields a
// result with an IO diagnostic and no tokens; the FileSet holds an empty
// placeholder for it.
func TokenizeDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []*Result, error) {
	files, err := listFiles(dir, opts)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "tokenize-dir", trace.ParentID(ctx))
	span.WithExtra("files", strconv.Itoa(len(files)))
	defer span.End("")

	// FileSet is not safe for concurrent Add, so everything is loaded up front.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		id, err := fileSet.Load(path, source.LoadOptions{NormalizeNFC: opts.NormalizeNFC})
		if err != nil {
			// an empty placeholder gives the IO diagnostic a file to point at
			loadErrors[path] = err
			id = fileSet.AddVirtual(path, nil)
		}
		fileIDs[path] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*Result, len(files))

	g, gctx := errgroup.WithContext(trace.WithParent(ctx, span.ID()))
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			file := fileSet.Get(fileIDs[path])
			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.maxDiagnostics())
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, source.Span{File: file.ID},
					"failed to load "+path+": "+loadErr.Error()).Emit()
				results[i] = &Result{Path: path, FileSet: fileSet, File: file, Bag: bag}
				return nil
			}
			results[i] = TokenizeFile(gctx, fileSet, file, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}
