package filter

import (
	"cmp"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/jamesainslie/genindex/pkg/genindex/config"
	"github.com/jamesainslie/genindex/pkg/genindex/types"
)

// Filter holds the immutable filtering and ordering configuration for a run.
// Build it with New; it is safe to share once constructed.
type Filter struct {
	// Glob is an optional pattern matched against file names. When set,
	// only matching files are listed. Directories are exempt.
	Glob string

	// ExcludeRegex is an optional regular expression. Entries whose name
	// matches anywhere are dropped, directories included.
	ExcludeRegex string

	// IncludeHidden keeps dot-files in the listing.
	IncludeHidden bool

	// OutputFile is the generated index name; it never lists itself.
	OutputFile string

	// SortBy specifies the field used within the directory and file groups.
	SortBy SortField

	// SortDescending reverses the SortBy comparison. Name remains the
	// ascending tie-break.
	SortDescending bool

	glob    glob.Glob
	exclude *regexp.Regexp
}

// Option is a functional option for configuring a Filter.
type Option func(*Filter)

// New creates a Filter with the given options and compiles its patterns.
// Default values:
//   - OutputFile: config.DefaultOutputFile
//   - SortBy: SortName
//   - SortDescending: false
//
// A malformed glob or regular expression returns an error wrapping
// ErrInvalidPattern.
func New(opts ...Option) (*Filter, error) {
	f := &Filter{
		OutputFile: config.DefaultOutputFile,
		SortBy:     SortName,
	}

	for _, opt := range opts {
		opt(f)
	}
	if f.OutputFile == "" {
		f.OutputFile = config.DefaultOutputFile
	}
	if !isBaseName(f.OutputFile) {
		return nil, fmt.Errorf("%w: output file %q must be a plain file name", ErrInvalidPattern, f.OutputFile)
	}

	if f.Glob != "" {
		g, err := glob.Compile(f.Glob)
		if err != nil {
			return nil, fmt.Errorf("%w: glob %q: %v", ErrInvalidPattern, f.Glob, err)
		}
		f.glob = g
	}

	if f.ExcludeRegex != "" {
		re, err := regexp.Compile(f.ExcludeRegex)
		if err != nil {
			return nil, fmt.Errorf("%w: regex %q: %v", ErrInvalidPattern, f.ExcludeRegex, err)
		}
		f.exclude = re
	}

	return f, nil
}

// WithGlob sets the file name inclusion pattern.
func WithGlob(pattern string) Option {
	return func(f *Filter) {
		f.Glob = strings.TrimSpace(pattern)
	}
}

// WithExcludeRegex sets the name exclusion expression.
func WithExcludeRegex(expr string) Option {
	return func(f *Filter) {
		f.ExcludeRegex = expr
	}
}

// isBaseName reports whether name names a file directly inside a directory.
func isBaseName(name string) bool {
	return name != "." && name != ".." && filepath.Base(name) == name
}

// WithIncludeHidden sets whether dot-files are listed.
func WithIncludeHidden(include bool) Option {
	return func(f *Filter) {
		f.IncludeHidden = include
	}
}

// WithOutputFile sets the generated file name so it is left out of listings.
func WithOutputFile(name string) Option {
	return func(f *Filter) {
		f.OutputFile = name
	}
}

// WithSortBy sets the field to sort entries by.
func WithSortBy(field SortField) Option {
	return func(f *Filter) {
		f.SortBy = field
	}
}

// WithSortDescending sets whether to sort in descending order.
func WithSortDescending(desc bool) Option {
	return func(f *Filter) {
		f.SortDescending = desc
	}
}

// Match returns true if the entry should be listed. Checks run in order:
// the output file itself, hidden files, the glob (files only), then the
// exclusion regex, which wins over everything else.
func (f *Filter) Match(e types.DirectoryEntry) bool {
	if f.isOutputFile(e.Name) {
		return false
	}
	if !f.matchHidden(e) {
		return false
	}
	if !f.matchGlob(e) {
		return false
	}
	if f.Excluded(e.Name) {
		return false
	}
	return true
}

// Excluded reports whether the name matches the exclusion expression.
func (f *Filter) Excluded(name string) bool {
	return f.exclude != nil && f.exclude.MatchString(name)
}

// isOutputFile checks for the generated index, ignoring case.
func (f *Filter) isOutputFile(name string) bool {
	return f.OutputFile != "" && strings.EqualFold(name, f.OutputFile)
}

// matchHidden checks the dot-file rule.
func (f *Filter) matchHidden(e types.DirectoryEntry) bool {
	return f.IncludeHidden || !e.IsHidden
}

// matchGlob checks the inclusion pattern. Navigable entries always pass.
func (f *Filter) matchGlob(e types.DirectoryEntry) bool {
	if f.glob == nil || e.IsDirLike() {
		return true
	}
	return f.glob.Match(e.Name)
}

// Sort returns a sorted copy of the entries. Directory-like entries come
// first; within each group entries are ordered by SortBy, then by
// case-insensitive name, then by raw name, which makes the order total.
// The original slice is not modified.
func (f *Filter) Sort(entries []types.DirectoryEntry) []types.DirectoryEntry {
	if len(entries) == 0 {
		return []types.DirectoryEntry{}
	}

	sorted := make([]types.DirectoryEntry, len(entries))
	copy(sorted, entries)

	slices.SortStableFunc(sorted, func(a, b types.DirectoryEntry) int {
		// Directories first, regardless of direction.
		if ad, bd := a.IsDirLike(), b.IsDirLike(); ad != bd {
			if ad {
				return -1
			}
			return 1
		}

		var result int
		switch f.SortBy {
		case SortSize:
			result = cmp.Compare(a.Size, b.Size)
		case SortModified:
			result = a.ModTime.Compare(b.ModTime)
		default:
			result = compareNames(a.Name, b.Name)
		}
		if f.SortDescending {
			result = -result
		}
		if result != 0 {
			return result
		}
		return compareNames(a.Name, b.Name)
	})

	return sorted
}

// compareNames orders case-insensitively, falling back to byte order so
// that "a" and "A" still have a fixed relative position.
func compareNames(a, b string) int {
	if c := cmp.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

// Apply runs the complete pipeline: Match then Sort.
func (f *Filter) Apply(entries []types.DirectoryEntry) []types.DirectoryEntry {
	var matched []types.DirectoryEntry
	for _, e := range entries {
		if f.Match(e) {
			matched = append(matched, e)
		}
	}
	return f.Sort(matched)
}
