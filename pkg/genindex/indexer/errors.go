package indexer

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorKind classifies indexing failures.
type ErrorKind int

// Error kinds.
const (
	PathNotFound ErrorKind = iota + 1
	PermissionDenied
	WriteFailed
	InvalidFilterPattern
)

// Sentinel errors matching each kind with errors.Is.
var (
	ErrPathNotFound         = errors.New("path not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrWriteFailed          = errors.New("write failed")
	ErrInvalidFilterPattern = errors.New("invalid filter pattern")
)

var errNotDirectory = errors.New("not a directory")

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case PathNotFound:
		return "path not found"
	case PermissionDenied:
		return "permission denied"
	case WriteFailed:
		return "write failed"
	case InvalidFilterPattern:
		return "invalid filter pattern"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case PathNotFound:
		return ErrPathNotFound
	case PermissionDenied:
		return ErrPermissionDenied
	case WriteFailed:
		return ErrWriteFailed
	case InvalidFilterPattern:
		return ErrInvalidFilterPattern
	default:
		return nil
	}
}

// IndexError describes a failure tied to a path.
type IndexError struct {
	Kind ErrorKind
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes both the kind's sentinel and the underlying cause.
func (e *IndexError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewInvalidPattern wraps a filter construction error.
func NewInvalidPattern(err error) *IndexError {
	return &IndexError{Kind: InvalidFilterPattern, Err: err}
}

// classifyAccess maps a stat or open error on path to a kind.
func classifyAccess(path string, err error) *IndexError {
	kind := PathNotFound
	if errors.Is(err, fs.ErrPermission) {
		kind = PermissionDenied
	}
	return &IndexError{Kind: kind, Path: path, Err: err}
}
