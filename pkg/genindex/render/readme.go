package render

import (
	"strings"

	"github.com/jamesainslie/genindex/pkg/genindex/types"
)

// MaxReadmeSize is the largest README that is rendered into a page.
const MaxReadmeSize = 1 * types.MiB

// FindReadme returns the entry whose name matches name, ignoring case.
// Only regular files and links to regular files qualify.
func FindReadme(entries []types.DirectoryEntry, name string) (types.DirectoryEntry, bool) {
	for _, e := range entries {
		if !strings.EqualFold(e.Name, name) {
			continue
		}
		if e.Kind == types.KindFile || (e.Kind == types.KindSymlink && e.TargetKind == types.KindFile) {
			return e, true
		}
	}
	return types.DirectoryEntry{}, false
}
