package indexer

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jamesainslie/genindex/pkg/genindex/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexError_Is(t *testing.T) {
	cause := fs.ErrPermission
	err := error(&IndexError{Kind: PermissionDenied, Path: "/srv/x", Err: cause})

	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.True(t, errors.Is(err, fs.ErrPermission), "the cause stays reachable")
	assert.False(t, errors.Is(err, ErrWriteFailed))
	assert.Equal(t, "permission denied: /srv/x: permission denied", err.Error())
}

func TestIndexError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *IndexError
		want string
	}{
		{"path only", &IndexError{Kind: PermissionDenied, Path: "/a"}, "permission denied: /a"},
		{"cause only", &IndexError{Kind: InvalidFilterPattern, Err: errors.New("bad glob")}, "invalid filter pattern: bad glob"},
		{"path and cause", &IndexError{Kind: WriteFailed, Path: "/a/index.html", Err: errors.New("disk full")}, "write failed: /a/index.html: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestNewInvalidPattern(t *testing.T) {
	_, ferr := filter.New(filter.WithGlob("[abc"))
	require.Error(t, ferr)

	err := error(NewInvalidPattern(ferr))
	assert.True(t, errors.Is(err, ErrInvalidFilterPattern))
	assert.True(t, errors.Is(err, filter.ErrInvalidPattern))

	var ie *IndexError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, InvalidFilterPattern, ie.Kind)
}

func TestClassifyAccess(t *testing.T) {
	assert.Equal(t, PermissionDenied, classifyAccess("/x", fs.ErrPermission).Kind)
	assert.Equal(t, PathNotFound, classifyAccess("/x", fs.ErrNotExist).Kind)
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "path not found", PathNotFound.String())
	assert.Equal(t, "write failed", WriteFailed.String())
	assert.Equal(t, "unknown", ErrorKind(0).String())
}
