package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/jamesainslie/genindex/pkg/genindex/types"
)

// Scanner reads directories into entry snapshots.
type Scanner struct {
	opts Options
}

// Listing is the result of reading one directory.
type Listing struct {
	// Dir is the absolute path that was read.
	Dir string

	// Entries holds one snapshot per child, in directory order.
	Entries []types.DirectoryEntry

	// Errors collects per-entry failures. The failing entries are left out.
	Errors []types.ScanError
}

// New creates a new Scanner with the given options.
func New(opts Options) *Scanner {
	return &Scanner{opts: opts}
}

// ReadDir lists the immediate children of dir. An error is returned only
// when the directory itself cannot be opened or read; failures on single
// entries, and a read that stopped part way, are recorded in
// Listing.Errors.
func (s *Scanner) ReadDir(dir string) (*Listing, error) {
	des, err := readDirEntries(dir)
	if err != nil && len(des) == 0 {
		return nil, err
	}
	return s.listing(dir, des, err), nil
}

// listing snapshots des. readErr is a failure that cut the read short.
func (s *Scanner) listing(dir string, des []fs.DirEntry, readErr error) *Listing {
	l := &Listing{
		Dir:     dir,
		Entries: make([]types.DirectoryEntry, 0, len(des)),
	}

	if readErr != nil {
		l.Errors = append(l.Errors, types.ScanError{
			Path:  dir,
			Op:    "list",
			Error: readErr.Error(),
		})
	}

	for _, de := range des {
		entry, err := s.snapshot(dir, de)
		if err != nil {
			l.Errors = append(l.Errors, types.ScanError{
				Path:  filepath.Join(dir, de.Name()),
				Op:    "stat",
				Error: err.Error(),
			})
			continue
		}
		l.Entries = append(l.Entries, entry)
	}

	return l
}

// readDirEntries opens, reads and closes dir. Entries read before a
// failure are returned together with the error.
func readDirEntries(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.ReadDir(-1)
}

// snapshot builds the entry for one child. Links are classified as links
// and carry their own modification time; size and target kind come from
// the target.
func (s *Scanner) snapshot(dir string, de fs.DirEntry) (types.DirectoryEntry, error) {
	name := de.Name()
	path := filepath.Join(dir, name)

	entry := types.DirectoryEntry{
		Name:     name,
		Path:     path,
		Size:     -1,
		IsHidden: types.IsHiddenName(name),
	}

	mode := de.Type()
	switch {
	case mode&fs.ModeSymlink != 0:
		entry.Kind = types.KindSymlink
		info, err := de.Info()
		if err != nil {
			return types.DirectoryEntry{}, err
		}
		entry.ModTime = info.ModTime()

		target, err := os.Stat(path)
		if err != nil {
			// Broken link: still listed, without a target.
			entry.TargetKind = types.KindOther
			return entry, nil
		}
		entry.TargetKind = kindOf(target.Mode())
		if target.Mode().IsRegular() {
			entry.Size = target.Size()
		}
		return entry, nil

	case mode.IsDir():
		entry.Kind = types.KindDirectory
	case mode.IsRegular():
		entry.Kind = types.KindFile
	default:
		entry.Kind = types.KindOther
	}
	entry.TargetKind = entry.Kind

	info, err := de.Info()
	if err != nil {
		return types.DirectoryEntry{}, err
	}
	entry.ModTime = info.ModTime()

	switch entry.Kind {
	case types.KindFile:
		entry.Size = info.Size()
	case types.KindDirectory:
		if s.opts.DirSizes {
			size, err := DirSize(path)
			if err == nil {
				entry.Size = size
			}
		}
	}

	return entry, nil
}

// Refresh re-reads the time and aggregate size of an entry. Links are
// re-read without following them. Entries that can no longer be read are
// returned unchanged.
func (s *Scanner) Refresh(e types.DirectoryEntry) types.DirectoryEntry {
	stat := os.Stat
	if e.Kind == types.KindSymlink {
		stat = os.Lstat
	}
	info, err := stat(e.Path)
	if err != nil {
		return e
	}
	e.ModTime = info.ModTime()

	if e.Kind == types.KindDirectory && s.opts.DirSizes {
		if size, err := DirSize(e.Path); err == nil {
			e.Size = size
		}
	}
	return e
}

// kindOf maps a resolved file mode to an entry kind.
func kindOf(mode fs.FileMode) types.EntryKind {
	switch {
	case mode.IsDir():
		return types.KindDirectory
	case mode.IsRegular():
		return types.KindFile
	default:
		return types.KindOther
	}
}

// DirSize returns the total size of the regular files below root. Symbolic
// links are not followed and unreadable subdirectories are skipped. The walk
// uses a single worker so that no traversal runs in parallel.
func DirSize(root string) (int64, error) {
	conf := fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	var total atomic.Int64
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory or entry: count what we can.
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total.Add(info.Size())
		return nil
	})
	if err != nil && !errors.Is(err, fastwalk.ErrSkipFiles) {
		return 0, err
	}

	return total.Load(), nil
}
