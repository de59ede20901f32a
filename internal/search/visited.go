package search

import (
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// VisitedPathSet records normalized directory paths already entered during a
// run. MarkVisited is an atomic insert-if-absent, so at most one worker ever
// processes a given directory, which also bounds work under symlink cycles.
// The set is scoped to one run and discarded with it.
type VisitedPathSet struct {
	paths sync.Map // normalized path -> struct{}
}

// NewVisitedPathSet creates an empty set.
func NewVisitedPathSet() *VisitedPathSet {
	return &VisitedPathSet{}
}

// MarkVisited records path and reports whether this call was the first to do
// so.
func (s *VisitedPathSet) MarkVisited(path string) bool {
	_, loaded := s.paths.LoadOrStore(path, struct{}{})
	return !loaded
}

// Contains reports whether path has been recorded.
func (s *VisitedPathSet) Contains(path string) bool {
	_, ok := s.paths.Load(path)
	return ok
}

// normalizePath canonicalizes a directory path for the visited set: absolute,
// symlinks resolved (so two link routes to one directory collide), and
// case-folded on Windows.
func normalizePath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	} else {
		path = filepath.Clean(path)
	}
	if runtime.GOOS == "windows" {
		path = strings.ToLower(path)
	}
	return path
}
