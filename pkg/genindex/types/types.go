// Package types provides core data types for the genindex directory indexer.
// It includes the directory entry snapshot taken at scan time, the entry
// classification, per-directory error records, and size formatting helpers.
package types

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Size constants for binary (IEC) units.
const (
	KiB int64 = 1024
	MiB int64 = 1024 * KiB
	GiB int64 = 1024 * MiB
	TiB int64 = 1024 * GiB
)

// EntryKind classifies a directory child.
type EntryKind int

const (
	// KindFile is a regular file.
	KindFile EntryKind = iota
	// KindDirectory is a directory.
	KindDirectory
	// KindSymlink is a symbolic link. See DirectoryEntry.TargetKind for what it resolves to.
	KindSymlink
	// KindOther covers devices, sockets, named pipes and broken link targets.
	KindOther
)

// String returns the string representation of the kind.
func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "dir"
	case KindSymlink:
		return "symlink"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// DirectoryEntry is an immutable snapshot of one child of a visited directory.
type DirectoryEntry struct {
	// Name is the entry's base name.
	Name string `json:"name"`

	// Path is the absolute path of the entry.
	Path string `json:"path"`

	// Kind is the classification of the entry itself (links are not followed).
	Kind EntryKind `json:"kind"`

	// TargetKind is what a symlink resolves to. It equals Kind for non-links
	// and is KindOther for broken links.
	TargetKind EntryKind `json:"target_kind"`

	// Size is the size in bytes. Directories report -1 unless aggregate
	// sizing was requested.
	Size int64 `json:"size"`

	// ModTime is the last modification time (zero for broken links).
	ModTime time.Time `json:"mod_time"`

	// IsHidden is true when the name starts with a dot.
	IsHidden bool `json:"is_hidden"`
}

// IsDirLike reports whether the entry can be navigated into: a directory
// or a symlink that resolves to one.
func (e DirectoryEntry) IsDirLike() bool {
	return e.Kind == KindDirectory || (e.Kind == KindSymlink && e.TargetKind == KindDirectory)
}

// HasSize reports whether Size carries a byte count.
func (e DirectoryEntry) HasSize() bool {
	return e.Size >= 0
}

// HumanSize returns the entry size formatted as a human-readable string.
func (e DirectoryEntry) HumanSize() string {
	return FormatSize(e.Size)
}

// IsHiddenName reports whether a base name follows the dot-file convention.
// The "." and ".." pseudo entries are not considered hidden.
func IsHiddenName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// ScanError represents an error encountered while indexing one directory.
// It pairs a path with the error message for reporting.
type ScanError struct {
	// Path is the file or directory path where the error occurred.
	Path string `json:"path"`

	// Op names the step that failed ("list", "stat", "write", ...).
	Op string `json:"op"`

	// Error is the error message describing what went wrong.
	Error string `json:"error"`
}

// FormatSize converts a size in bytes to a human-readable string.
// It uses binary (IEC) units (KiB, MiB, GiB, TiB).
//
// Examples:
//   - FormatSize(0) returns "0 B"
//   - FormatSize(1024) returns "1.0 KiB"
//   - FormatSize(1536*1024) returns "1.5 MiB"
//
// Negative sizes (directories without an aggregate) return an empty string.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return ""
	}
	return humanize.IBytes(uint64(bytes))
}
