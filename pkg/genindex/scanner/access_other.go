//go:build !unix

package scanner

import (
	"os"
)

// Readable reports whether the current user may read path.
// On platforms without access(2) it falls back to opening the path.
func Readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
