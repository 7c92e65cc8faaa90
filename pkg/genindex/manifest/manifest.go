package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jamesainslie/genindex/pkg/genindex/indexer"
)

// idPrefix starts every entry ID.
const idPrefix = "run-"

// ErrNotFound is returned by Get for an unknown ID.
var ErrNotFound = errors.New("entry not found")

// Manifest stores run entries in a directory, one JSON file per run.
type Manifest struct {
	dir string
	mu  sync.Mutex
}

// New creates a new Manifest with the given directory.
// The directory is not created until EnsureDir is called.
func New(dir string) (*Manifest, error) {
	if dir == "" {
		return nil, errors.New("manifest directory cannot be empty")
	}
	return &Manifest{dir: dir}, nil
}

// Dir returns the directory entries are stored in.
func (m *Manifest) Dir() string {
	return m.dir
}

// EnsureDir creates the manifest directory if it does not exist.
func (m *Manifest) EnsureDir() error {
	return os.MkdirAll(m.dir, 0o755)
}

// LogRun records the result of a generation run and returns the entry.
func (m *Manifest) LogRun(res *indexer.Result, settings Settings) (*Entry, error) {
	if res == nil {
		return nil, errors.New("run result cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	settings.DryRun = res.DryRun
	entry := &Entry{
		ID:        generateID(),
		Timestamp: time.Now().UTC(),
		Root:      res.Root,
		Settings:  settings,
		Written:   nonNil(res.Written),
		Unchanged: res.Unchanged,
		Skipped:   res.Skipped,
		Errors:    res.Errors,
		Summary: Summary{
			DirsIndexed:   res.DirsIndexed,
			EntriesListed: res.EntriesListed,
			PagesWritten:  len(res.Written),
			Errors:        len(res.Errors),
			Elapsed:       res.Elapsed,
			Interrupted:   res.Interrupted,
		},
	}

	if err := m.writeEntry(entry); err != nil {
		return nil, fmt.Errorf("failed to write manifest entry: %w", err)
	}

	return entry, nil
}

// writeEntry writes an entry to <id>.json through a temp file and rename.
func (m *Manifest) writeEntry(entry *Entry) error {
	path := filepath.Join(m.dir, entry.ID+".json")

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// List returns entries newest first. A limit of 0 or less returns all.
func (m *Manifest) List(limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names, err := m.entryFiles()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entry, err := m.readEntryFile(name)
		if err != nil {
			// Unparseable files are not part of the history.
			continue
		}
		entries = append(entries, *entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// Get retrieves a specific entry by ID. A unique ID prefix is accepted.
func (m *Manifest) Get(id string) (*Entry, error) {
	if id == "" {
		return nil, errors.New("entry ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	names, err := m.entryFiles()
	if err != nil {
		return nil, err
	}

	var match string
	for _, name := range names {
		base := strings.TrimSuffix(name, ".json")
		if base == id {
			match = name
			break
		}
		if strings.HasPrefix(base, id) {
			if match != "" {
				return nil, fmt.Errorf("ambiguous entry ID %q", id)
			}
			match = name
		}
	}
	if match == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return m.readEntryFile(match)
}

// Cleanup removes entries older than retentionDays and returns how many
// were removed.
func (m *Manifest) Cleanup(retentionDays int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	files, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read manifest directory: %w", err)
	}

	removed := 0
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}

		info, err := f.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(m.dir, f.Name())); err != nil {
				continue
			}
			removed++
		}
	}

	return removed, nil
}

// entryFiles lists the JSON file names in the manifest directory.
func (m *Manifest) entryFiles() ([]string, error) {
	files, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read manifest directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		names = append(names, f.Name())
	}
	return names, nil
}

// readEntryFile reads and parses a manifest entry from a JSON file.
func (m *Manifest) readEntryFile(filename string) (*Entry, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}

	return &entry, nil
}

// generateID creates an ID like "run-2024-06-15T10-30-00-1b4e28ba".
func generateID() string {
	ts := time.Now().UTC().Format("2006-01-02T15-04-05")
	return idPrefix + ts + "-" + uuid.NewString()[:8]
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
