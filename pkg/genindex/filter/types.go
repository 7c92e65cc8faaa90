// Package filter decides which directory entries appear in a generated
// index and in what order. It supports hidden-file exclusion, a glob
// inclusion pattern, an exclusion regular expression, and a deterministic
// directories-first sort.
package filter

import (
	"errors"
	"fmt"
	"strings"
)

// SortField specifies the field to sort entries by within each group.
type SortField int

const (
	// SortName sorts entries by case-insensitive name.
	SortName SortField = iota
	// SortSize sorts entries by size in bytes.
	SortSize
	// SortModified sorts entries by modification time.
	SortModified
)

// Sort field string constants.
const (
	sortFieldName     = "name"
	sortFieldSize     = "size"
	sortFieldModified = "modified"
)

// String returns the string representation of the sort field.
func (s SortField) String() string {
	switch s {
	case SortName:
		return sortFieldName
	case SortSize:
		return sortFieldSize
	case SortModified:
		return sortFieldModified
	default:
		return sortFieldName
	}
}

// ErrInvalidSortField indicates that the sort field string could not be parsed.
var ErrInvalidSortField = errors.New("invalid sort field")

// ErrInvalidPattern indicates a malformed glob or regular expression.
var ErrInvalidPattern = errors.New("invalid filter pattern")

// ParseSortField parses a string into a SortField.
// Valid values are "name", "size" and "modified" (case-insensitive);
// "mtime" and "time" are accepted as aliases for "modified".
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case sortFieldName, "":
		return SortName, nil
	case sortFieldSize:
		return SortSize, nil
	case sortFieldModified, "mtime", "time":
		return SortModified, nil
	default:
		return SortName, fmt.Errorf("%w: %q", ErrInvalidSortField, s)
	}
}
