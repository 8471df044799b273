// Package book annotates every page of a rendered book directory.
package book

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ziadkadry99/ferrisdoc/internal/ferris"
	"github.com/ziadkadry99/ferrisdoc/internal/progress"
	"github.com/ziadkadry99/ferrisdoc/internal/walker"
)

// Options configures a Processor.
type Options struct {
	BookDir        string
	OutputDir      string // empty rewrites pages in place
	Include        []string
	Exclude        []string
	MaxConcurrency int
	SkipAnnotated  bool
	Reporter       progress.Reporter
}

// Result summarizes a run.
type Result struct {
	Pages     []PageResult
	Scanned   int
	Annotated int
	Skipped   int
	Icons     ferris.Stats
	Errors    []error
}

// Processor walks a book and annotates its pages concurrently.
type Processor struct {
	opts      Options
	annotator *ferris.Annotator
}

// NewProcessor creates a Processor. A concurrency below one is treated as one.
func NewProcessor(opts Options, annotator *ferris.Annotator) *Processor {
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.NopReporter{}
	}
	return &Processor{opts: opts, annotator: annotator}
}

// Run processes the book. Per-page failures are collected in Result.Errors
// and do not stop other pages; the returned error is reserved for failures
// that prevent the run from starting.
func (p *Processor) Run(ctx context.Context) (*Result, error) {
	files, err := p.collect()
	if err != nil {
		return nil, err
	}

	if p.opts.OutputDir != "" {
		if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
	}

	total := len(files)
	reporter := p.opts.Reporter
	reporter.Start(total)
	defer reporter.Finish()

	results := make([]PageResult, total)
	sem := make(chan struct{}, p.opts.MaxConcurrency)
	var processed int64
	var wg sync.WaitGroup

	for i, file := range files {
		select {
		case <-ctx.Done():
			results[i] = PageResult{RelPath: file.RelPath, Status: StatusFailed, Err: ctx.Err()}
			count := atomic.AddInt64(&processed, 1)
			reporter.Update(int(count), file.RelPath)
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, f walker.FileInfo) {
			defer wg.Done()
			defer func() { <-sem }()

			results[i] = p.processFile(f)
			count := atomic.AddInt64(&processed, 1)
			reporter.Update(int(count), f.RelPath)
		}(i, file)
	}
	wg.Wait()

	return summarize(results), nil
}

// collect lists the files to visit. In output mode every file is visited,
// whatever its size, so the book's assets are mirrored alongside the
// annotated pages. An output directory nested in the book is left out so
// reruns do not mirror earlier output into itself.
func (p *Processor) collect() ([]walker.FileInfo, error) {
	cfg := walker.WalkerConfig{RootDir: p.opts.BookDir}
	if p.opts.OutputDir == "" {
		cfg.Include = p.opts.Include
		cfg.Exclude = p.opts.Exclude
	} else {
		cfg.MaxFileSize = walker.NoSizeLimit
	}
	files, err := walker.Walk(cfg)
	if err != nil {
		return nil, fmt.Errorf("scanning book: %w", err)
	}

	nested, ok, err := p.nestedOutput()
	if err != nil {
		return nil, err
	}
	if !ok {
		return files, nil
	}
	kept := files[:0]
	for _, f := range files {
		if f.RelPath != nested && !strings.HasPrefix(f.RelPath, nested+"/") {
			kept = append(kept, f)
		}
	}
	return kept, nil
}

// nestedOutput returns the output directory relative to the book when it
// lies inside it.
func (p *Processor) nestedOutput() (string, bool, error) {
	if p.opts.OutputDir == "" {
		return "", false, nil
	}
	book, err := filepath.Abs(p.opts.BookDir)
	if err != nil {
		return "", false, fmt.Errorf("resolving book dir: %w", err)
	}
	out, err := filepath.Abs(p.opts.OutputDir)
	if err != nil {
		return "", false, fmt.Errorf("resolving output dir: %w", err)
	}
	rel, err := filepath.Rel(book, out)
	if err != nil || !filepath.IsLocal(rel) {
		return "", false, nil
	}
	return filepath.ToSlash(rel), true, nil
}

func (p *Processor) isPage(relPath string) bool {
	return walker.MatchesInclude(relPath, p.opts.Include) && !walker.MatchesExclude(relPath, p.opts.Exclude)
}

func (p *Processor) processFile(f walker.FileInfo) PageResult {
	res := PageResult{RelPath: f.RelPath, SourceHash: f.ContentHash}

	src, err := os.ReadFile(f.Path)
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("read %s: %w", f.RelPath, err)
		return res
	}

	if !p.isPage(f.RelPath) {
		res.Status = StatusCopied
		if err := p.write(f, src); err != nil {
			res.Status = StatusFailed
			res.Err = err
		}
		return res
	}

	out, status, stats, err := AnnotateHTML(p.annotator, src, p.opts.SkipAnnotated)
	res.Status = status
	res.Icons = stats
	if err != nil {
		res.Err = fmt.Errorf("annotate %s: %w", f.RelPath, err)
		if out == nil {
			res.Icons = nil
			return res
		}
	}

	// In place, untouched pages are left alone.
	if p.opts.OutputDir == "" && status != StatusAnnotated && status != StatusPartial {
		return res
	}
	if werr := p.write(f, out); werr != nil {
		res.Status = StatusFailed
		res.Icons = nil
		res.Err = werr
	}
	return res
}

func (p *Processor) write(f walker.FileInfo, data []byte) error {
	dest := f.Path
	if p.opts.OutputDir != "" {
		dest = filepath.Join(p.opts.OutputDir, filepath.FromSlash(f.RelPath))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("write %s: %w", f.RelPath, err)
		}
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.RelPath, err)
	}
	return nil
}

func summarize(pages []PageResult) *Result {
	res := &Result{Pages: pages, Icons: make(ferris.Stats)}
	for _, pg := range pages {
		if pg.Status != StatusCopied {
			res.Scanned++
		}
		switch pg.Status {
		case StatusAnnotated, StatusPartial:
			res.Annotated++
		case StatusSkipped:
			res.Skipped++
		}
		for marker, n := range pg.Icons {
			res.Icons[marker] += n
		}
		if pg.Err != nil {
			res.Errors = append(res.Errors, pg.Err)
		}
	}
	sort.Slice(res.Errors, func(i, j int) bool { return res.Errors[i].Error() < res.Errors[j].Error() })
	return res
}
