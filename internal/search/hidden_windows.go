//go:build windows

package search

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"
)

// isHiddenDir reports whether the directory carries the hidden or system
// attribute. Dot-prefixed names count too, for parity with Unix-style trees
// on Windows disks.
func isHiddenDir(dir string) bool {
	if strings.HasPrefix(filepath.Base(dir), ".") {
		return true
	}
	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&(windows.FILE_ATTRIBUTE_HIDDEN|windows.FILE_ATTRIBUTE_SYSTEM) != 0
}
