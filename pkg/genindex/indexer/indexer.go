package indexer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/jamesainslie/genindex/pkg/genindex/filter"
	"github.com/jamesainslie/genindex/pkg/genindex/logging"
	"github.com/jamesainslie/genindex/pkg/genindex/render"
	"github.com/jamesainslie/genindex/pkg/genindex/scanner"
	"github.com/jamesainslie/genindex/pkg/genindex/types"
)

var logger = logging.Get("indexer")

// Indexer generates index pages.
type Indexer struct {
	filter   *filter.Filter
	opts     Options
	scanner  *scanner.Scanner
	lister   Lister
	renderer *render.Renderer
}

// run holds the state of one Generate call.
type run struct {
	root    string
	visited map[string]bool
	result  *Result
}

// New creates an Indexer. A nil filter uses the defaults.
func New(f *filter.Filter, opts Options) *Indexer {
	if f == nil {
		f, _ = filter.New()
	}
	if opts.ReadmeName == "" {
		opts.ReadmeName = DefaultOptions().ReadmeName
	}

	sc := scanner.New(scanner.Options{DirSizes: opts.DirSizes})
	var lister Lister = sc
	if opts.Lister != nil {
		lister = opts.Lister
	}

	return &Indexer{
		filter:   f,
		opts:     opts,
		scanner:  sc,
		lister:   lister,
		renderer: render.MustNew(),
	}
}

// Generate writes an index page for root and, in recursive mode, for every
// directory reachable below it. Failures inside the tree are recorded in
// the result; only an inaccessible root is returned as an *IndexError.
func (ix *Indexer) Generate(ctx context.Context, root string) (*Result, error) {
	start := time.Now()

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &IndexError{Kind: PathNotFound, Path: root, Err: err}
	}
	if err := checkRoot(abs); err != nil {
		return nil, err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		resolved = abs
	}

	r := &run{
		root:    abs,
		visited: map[string]bool{resolved: true},
		result: &Result{
			Root:    abs,
			Written: []string{},
			DryRun:  ix.opts.DryRun,
		},
	}

	logger.Info("generation started", "root", abs, "recursive", ix.opts.Recursive, "dry_run", ix.opts.DryRun)

	if err := ix.visit(ctx, r, abs); err != nil {
		return nil, err
	}

	r.result.Elapsed = time.Since(start)
	logger.Info("generation finished",
		"dirs", r.result.DirsIndexed,
		"written", len(r.result.Written),
		"errors", len(r.result.Errors),
		"elapsed", r.result.Elapsed)

	return r.result, nil
}

// checkRoot verifies that root exists, is a directory, and is readable.
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return classifyAccess(root, err)
	}
	if !info.IsDir() {
		return &IndexError{Kind: PathNotFound, Path: root, Err: errNotDirectory}
	}
	if !scanner.Readable(root) {
		return &IndexError{Kind: PermissionDenied, Path: root}
	}
	return nil
}

// visit indexes one directory. Children are indexed first so that the
// modification times shown for them already include their own pages. It
// returns an error only when the root itself cannot be listed.
func (ix *Indexer) visit(ctx context.Context, r *run, dir string) error {
	if ctx.Err() != nil {
		if !r.result.Interrupted {
			logger.Warn("generation interrupted", "at", dir)
		}
		r.result.Interrupted = true
		return nil
	}

	logger.Debug("traversing", "dir", dir)

	listing, err := ix.lister.ReadDir(dir)
	if err != nil {
		if dir == r.root {
			return classifyAccess(dir, err)
		}
		logger.Warn("cannot list directory, skipping subtree", "dir", dir, "error", err)
		r.record(dir, "list", classifyAccess(dir, err))
		return nil
	}
	for _, se := range listing.Errors {
		logger.Warn("listing incomplete", "path", se.Path, "op", se.Op, "error", se.Error)
	}
	r.result.Errors = append(r.result.Errors, listing.Errors...)

	entries := ix.listable(r, listing.Entries)

	if ix.opts.Recursive {
		for _, e := range entries {
			if !e.IsDirLike() || !r.enter(e.Path) {
				continue
			}
			if err := ix.visit(ctx, r, e.Path); err != nil {
				return err
			}
			if r.result.Interrupted {
				return nil
			}
		}
		// Pages below changed directory times; links keep their own.
		for i, e := range entries {
			if e.IsDirLike() {
				entries[i] = ix.scanner.Refresh(e)
			}
		}
	}

	page := render.BuildPage(r.root, dir, entries)
	if ix.opts.Readme {
		page.Readme = ix.readme(listing.Entries)
	}

	var buf bytes.Buffer
	if err := ix.renderer.Render(&buf, page); err != nil {
		return fmt.Errorf("render %s: %w", dir, err)
	}

	r.result.DirsIndexed++
	r.result.EntriesListed += len(entries)

	ix.write(r, filepath.Join(dir, ix.filter.OutputFile), buf.Bytes(), len(entries))
	return nil
}

// write stores one page and records the outcome.
func (ix *Indexer) write(r *run, out string, data []byte, entries int) {
	if ix.opts.DryRun {
		logger.Info("would write page", "path", out, "entries", entries)
		r.result.Written = append(r.result.Written, out)
		return
	}

	changed, err := writePage(out, data)
	switch {
	case err != nil:
		logger.Warn("cannot write page", "path", out, "error", err)
		r.record(out, "write", &IndexError{Kind: WriteFailed, Path: out, Err: err})
	case !changed:
		logger.Debug("page up to date", "path", out)
		r.result.Unchanged = append(r.result.Unchanged, out)
	default:
		logger.Debug("page written", "path", out, "entries", entries)
		r.result.Written = append(r.result.Written, out)
	}
}

// listable filters and sorts the entries of one directory, dropping and
// recording entries the current user cannot read.
func (ix *Indexer) listable(r *run, all []types.DirectoryEntry) []types.DirectoryEntry {
	matched := make([]types.DirectoryEntry, 0, len(all))
	for _, e := range all {
		if !ix.filter.Match(e) {
			continue
		}
		if e.Kind != types.KindSymlink && !scanner.Readable(e.Path) {
			logger.Warn("entry not readable, skipping", "path", e.Path)
			r.record(e.Path, "access", &IndexError{Kind: PermissionDenied, Path: e.Path})
			continue
		}
		matched = append(matched, e)
	}

	sorted := ix.filter.Sort(matched)

	if ix.opts.Verbose && ix.opts.Reporter != nil {
		for _, e := range sorted {
			ix.opts.Reporter.Report(e.Path, e.Kind)
		}
	}

	return sorted
}

// readme renders the directory's README, or returns nothing when there
// is none or it cannot be read.
func (ix *Indexer) readme(all []types.DirectoryEntry) template.HTML {
	e, ok := render.FindReadme(all, ix.opts.ReadmeName)
	if !ok {
		return ""
	}
	if e.Size > render.MaxReadmeSize {
		logger.Debug("readme too large, skipping", "path", e.Path, "size", e.HumanSize())
		return ""
	}

	src, err := os.ReadFile(e.Path)
	if err != nil {
		logger.Warn("cannot read readme", "path", e.Path, "error", err)
		return ""
	}

	html, err := ix.renderer.Readme(src)
	if err != nil {
		logger.Warn("cannot render readme", "path", e.Path, "error", err)
		return ""
	}
	return html
}

// enter marks the real path of dir as visited. It returns false when the
// directory was seen before or cannot be resolved.
func (r *run) enter(dir string) bool {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		logger.Warn("cannot resolve directory, skipping", "dir", dir, "error", err)
		r.record(dir, "resolve", err)
		return false
	}
	if r.visited[resolved] {
		logger.Debug("already visited, skipping", "dir", dir, "real", resolved)
		r.result.Skipped = append(r.result.Skipped, dir)
		return false
	}
	r.visited[resolved] = true
	return true
}

func (r *run) record(path, op string, err error) {
	r.result.Errors = append(r.result.Errors, types.ScanError{
		Path:  path,
		Op:    op,
		Error: err.Error(),
	})
}
