package compiler

import (
	"context"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/shipyard"
)

// Writer writes generated files under a directory in parallel. A file whose
// bytes on disk already hash to the new content is left untouched.
type Writer struct {
	dir     string
	workers int
	logger  *slog.Logger

	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics counts the work done by a Writer.
type WriterMetrics struct {
	FilesWritten int
	FilesSkipped int
	TotalBytes   int64
}

// NewWriter returns a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{
		dir:     dir,
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// WithLogger sets the logger.
func (w *Writer) WithLogger(l *slog.Logger) *Writer {
	if l != nil {
		w.logger = l
	}
	return w
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Metrics returns a snapshot of the counters.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// WriteAll writes files in parallel. Go sources are run through goimports
// first. A path listed twice is written once; listing it with different
// contents is an error.
func (w *Writer) WriteAll(ctx context.Context, files []File) error {
	files, err := dedupe(files)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(f)
			}
		})
	}
	return eg.Wait()
}

func (w *Writer) writeFile(f File) error {
	fullPath := filepath.Join(w.dir, filepath.FromSlash(f.Path))
	content := f.Content
	if strings.HasSuffix(f.Path, ".go") {
		formatted, err := imports.Process(fullPath, content, nil)
		if err != nil {
			debugPath := fullPath + ".error"
			_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
			_ = os.WriteFile(debugPath, content, 0o644)
			return fmt.Errorf("format %s: %w (unformatted written to %s)", f.Path, err, debugPath)
		}
		content = formatted
	}

	sum := xxh3.Hash(content)
	if unchanged(fullPath, sum, len(content)) {
		w.mu.Lock()
		w.metrics.FilesSkipped++
		w.mu.Unlock()
		w.logger.Info("unchanged", "file", f.Path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Path, err)
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(content))
	w.mu.Unlock()
	w.logger.Info("wrote", "file", f.Path, "bytes", len(content))
	return nil
}

// dedupe checks that every path is local and drops repeated files.
func dedupe(files []File) ([]File, error) {
	seen := make(map[string][]byte, len(files))
	out := make([]File, 0, len(files))
	for _, f := range files {
		path := filepath.FromSlash(f.Path)
		if !filepath.IsLocal(path) {
			return nil, shipyard.NewArgumentError("path", fmt.Sprintf("%q is not a local path", f.Path))
		}
		path = filepath.Clean(path)
		if prev, ok := seen[path]; ok {
			if !bytes.Equal(prev, f.Content) {
				return nil, shipyard.NewArgumentError("path", fmt.Sprintf("%q is listed twice with different contents", f.Path))
			}
			continue
		}
		seen[path] = f.Content
		out = append(out, f)
	}
	return out, nil
}

// unchanged reports whether the file at path holds content with the given
// hash and size.
func unchanged(path string, sum uint64, size int) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() != int64(size) {
		return false
	}
	old, err := os.ReadFile(path)
	return err == nil && xxh3.Hash(old) == sum
}
