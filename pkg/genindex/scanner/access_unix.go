//go:build unix

package scanner

import (
	"golang.org/x/sys/unix"
)

// Readable reports whether the current user may read path.
func Readable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}
