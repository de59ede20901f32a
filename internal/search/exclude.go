package search

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// baselineSkipDirs are never indexed, in any mode.
var baselineSkipDirs = map[string]bool{
	"$recycle.bin":              true,
	"system volume information": true,
	"recovery":                  true,
	"lost+found":                true,
	"proc": true,
	"sys":  true,
	"dev":  true,
}

// artifactSkipDirs are build output, caches, dependency and VCS metadata.
// Applied only in exhaustive mode; minimal mode already prunes most of them
// via the hidden check.
var artifactSkipDirs = map[string]bool{
	"tmp":          true,
	"temp":         true,
	"cache":        true,
	"node_modules": true,
	"__pycache__":  true,
	".git":         true,
	".svn":         true,
	".hg":          true,
	".idea":        true,
	".vscode":      true,
	"target":       true,
	"build":        true,
	"dist":         true,
	"vendor":       true,
}

// excluder decides which directories a run prunes.
type excluder struct {
	mode          Mode
	globs         []string
	skipArtifacts bool
}

func newExcluder(cfg Config) *excluder {
	return &excluder{
		mode:          cfg.Mode,
		globs:         cfg.ExcludeGlobs,
		skipArtifacts: cfg.Mode == ModeExhaustive,
	}
}

// shouldSkip reports whether the whole subtree rooted at dir is excluded.
// The decision uses the directory's base name, its hidden/system attributes
// in minimal mode, and any configured glob patterns.
func (e *excluder) shouldSkip(dir string) bool {
	base := strings.ToLower(filepath.Base(dir))

	if baselineSkipDirs[base] {
		return true
	}
	if e.skipArtifacts && artifactSkipDirs[base] {
		return true
	}
	if e.mode == ModeMinimal && isHiddenDir(dir) {
		return true
	}

	slashed := filepath.ToSlash(dir)
	for _, pattern := range e.globs {
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		} else if err != nil {
			log.Warn().Str("pattern", pattern).Err(err).Msg("bad exclude pattern")
		}
	}
	return false
}
