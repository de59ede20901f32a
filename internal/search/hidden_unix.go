//go:build !windows

package search

import (
	"path/filepath"
	"strings"
)

// isHiddenDir reports whether the directory is hidden. On Unix that is a
// dot-prefixed base name.
func isHiddenDir(dir string) bool {
	return strings.HasPrefix(filepath.Base(dir), ".")
}
