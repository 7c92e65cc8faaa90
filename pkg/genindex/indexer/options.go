// Package indexer generates HTML index pages for a directory tree.
//
// Each visited directory is listed, filtered, sorted, rendered, and written
// to a single output file inside that directory. Traversal is sequential
// and depth-first; every directory is visited at most once, keyed by its
// resolved real path, so symbolic link loops terminate.
package indexer

import (
	"time"

	"github.com/jamesainslie/genindex/pkg/genindex/config"
	"github.com/jamesainslie/genindex/pkg/genindex/scanner"
	"github.com/jamesainslie/genindex/pkg/genindex/types"
)

// Options configures a generation run.
type Options struct {
	// Recursive descends into every listed directory.
	Recursive bool

	// Verbose reports every listed entry to the Reporter.
	Verbose bool

	// DryRun renders pages without writing them.
	DryRun bool

	// DirSizes shows aggregate sizes for subdirectories.
	DirSizes bool

	// Readme renders the directory's README above the listing.
	Readme bool

	// ReadmeName is the README file name, compared case-insensitively.
	ReadmeName string

	// Reporter receives listed entries when Verbose is set.
	Reporter Reporter

	// Lister reads directories. Nil uses a scanner.Scanner.
	Lister Lister
}

// DefaultOptions returns options for a single, non-recursive page.
func DefaultOptions() Options {
	return Options{
		ReadmeName: config.DefaultReadmeName,
	}
}

// Lister lists the immediate children of one directory.
type Lister interface {
	ReadDir(dir string) (*scanner.Listing, error)
}

// Reporter receives progress from a run.
type Reporter interface {
	Report(path string, kind types.EntryKind)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(path string, kind types.EntryKind)

// Report calls f(path, kind).
func (f ReporterFunc) Report(path string, kind types.EntryKind) {
	f(path, kind)
}

// Result summarizes a run.
type Result struct {
	// Root is the absolute path generation started from.
	Root string `json:"root"`

	// DirsIndexed counts directories whose page was rendered.
	DirsIndexed int `json:"dirs_indexed"`

	// EntriesListed counts rows across all pages.
	EntriesListed int `json:"entries_listed"`

	// Written lists output files. In a dry run it lists the files that
	// would have been written.
	Written []string `json:"written"`

	// Unchanged lists output files that already held the rendered page.
	Unchanged []string `json:"unchanged,omitempty"`

	// Skipped lists directories not descended into because their real
	// path was already visited.
	Skipped []string `json:"skipped,omitempty"`

	// Errors collects recovered per-directory and per-entry failures.
	Errors []types.ScanError `json:"errors,omitempty"`

	// DryRun is set when nothing was written.
	DryRun bool `json:"dry_run"`

	// Elapsed is the wall time of the run.
	Elapsed time.Duration `json:"elapsed"`

	// Interrupted is set when the context was cancelled mid-run.
	Interrupted bool `json:"interrupted"`
}
