// Package scanner lists the immediate children of a directory and turns
// them into types.DirectoryEntry snapshots. Listing is sequential and every
// directory handle is closed before the call returns, including on error
// paths, so deep recursive runs do not accumulate descriptors.
package scanner

// Options configures the scanner behavior.
type Options struct {
	// DirSizes computes the aggregate size of each subdirectory.
	// Symbolic links are not followed while summing.
	DirSizes bool
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		DirSizes: false,
	}
}
