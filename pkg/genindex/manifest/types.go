// Package manifest keeps a history of generation runs as JSON records.
package manifest

import (
	"time"

	"github.com/jamesainslie/genindex/pkg/genindex/types"
)

// Settings records the options a run was started with.
type Settings struct {
	Filter        string `json:"filter,omitempty"`
	ExcludeRegex  string `json:"exclude_regex,omitempty"`
	OutputFile    string `json:"output_file"`
	IncludeHidden bool   `json:"include_hidden"`
	Recursive     bool   `json:"recursive"`
	Sort          string `json:"sort,omitempty"`
	Reverse       bool   `json:"reverse,omitempty"`
	DryRun        bool   `json:"dry_run,omitempty"`
}

// Entry is one recorded run.
type Entry struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Root      string            `json:"root"`
	Settings  Settings          `json:"settings"`
	Written   []string          `json:"written"`
	Unchanged []string          `json:"unchanged,omitempty"`
	Skipped   []string          `json:"skipped,omitempty"`
	Errors    []types.ScanError `json:"errors,omitempty"`
	Summary   Summary           `json:"summary"`
}

// Summary contains run totals.
type Summary struct {
	DirsIndexed   int           `json:"dirs_indexed"`
	EntriesListed int           `json:"entries_listed"`
	PagesWritten  int           `json:"pages_written"`
	Errors        int           `json:"errors"`
	Elapsed       time.Duration `json:"elapsed"`
	Interrupted   bool          `json:"interrupted,omitempty"`
}
