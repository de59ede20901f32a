package search

import (
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Mode selects the indexing policy for a run.
type Mode int

const (
	// ModeExhaustive indexes hidden directories and applies the artifact
	// skip set (build output, caches, VCS metadata) on top of the baseline
	// exclusions.
	ModeExhaustive Mode = iota
	// ModeMinimal skips directories carrying hidden/system attributes and
	// applies only the baseline exclusions.
	ModeMinimal
)

func (m Mode) String() string {
	if m == ModeMinimal {
		return "minimal"
	}
	return "exhaustive"
}

const (
	// DefaultMaxDepth bounds recursive descent from any root.
	DefaultMaxDepth = 30
	// DefaultSecondaryMaxDepth caps non-primary roots when a primary root
	// is configured.
	DefaultSecondaryMaxDepth = 12
	// DefaultMaxResults caps the result sequence returned by Search.
	DefaultMaxResults = 1000

	// progressStride controls how often a progress tick is emitted, in
	// processed directories.
	progressStride = 10
	// parallelThreshold is the sibling-directory count above which children
	// are walked on worker goroutines instead of the caller's.
	parallelThreshold = 4
)

// FileEntry is one discovered filesystem object. Entries are immutable after
// creation and discarded wholesale when the catalog is cleared.
type FileEntry struct {
	Path      string // absolute path, unique within a catalog generation
	Name      string // base name
	Extension string // lowercased, with leading dot; "" if none
	Dir       string // parent directory path
	Size      int64
	ModTime   time.Time
}

// newFileEntry builds an entry for a file at dir/name.
func newFileEntry(dir, name string, size int64, modTime time.Time) FileEntry {
	return FileEntry{
		Path:      filepath.Join(dir, name),
		Name:      name,
		Extension: strings.ToLower(filepath.Ext(name)),
		Dir:       dir,
		Size:      size,
		ModTime:   modTime,
	}
}

// Config controls one indexing run. The zero value is usable: all volumes,
// exhaustive mode, default depth and parallelism.
type Config struct {
	// Roots overrides volume discovery when non-empty.
	Roots []string
	// PriorityRoots are walked before the remaining roots.
	PriorityRoots []string
	// PrimaryRoot, when set, is walked first with unrestricted run depth
	// while every other root is capped at SecondaryMaxDepth.
	PrimaryRoot string
	// Mode selects the hidden/system and artifact-directory policy.
	Mode Mode
	// ExcludeGlobs are doublestar patterns matched against directory paths;
	// a match prunes the whole subtree.
	ExcludeGlobs []string
	// MaxDepth bounds descent; 0 means DefaultMaxDepth.
	MaxDepth int
	// SecondaryMaxDepth caps non-primary roots; 0 means
	// DefaultSecondaryMaxDepth. Only relevant when PrimaryRoot is set.
	SecondaryMaxDepth int
	// MaxWorkers bounds traversal parallelism; 0 means NumCPU.
	MaxWorkers int
	// MaxResults caps Search output; 0 means DefaultMaxResults.
	MaxResults int
	// FollowSymlinks enables descending into symlinked directories. The
	// visited set resolves real paths, so cycles terminate either way.
	FollowSymlinks bool
}

// withDefaults fills unset knobs.
func (c Config) withDefaults() Config {
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.SecondaryMaxDepth <= 0 {
		c.SecondaryMaxDepth = DefaultSecondaryMaxDepth
	}
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = runtime.NumCPU()
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	return c
}
