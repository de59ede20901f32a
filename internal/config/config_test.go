package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betterfinder/internal/search"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no stray config file is picked up.
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(prev) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "exhaustive", cfg.Mode)
	assert.Equal(t, search.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, search.DefaultSecondaryMaxDepth, cfg.SecondaryMaxDepth)
	assert.Equal(t, search.DefaultMaxResults, cfg.MaxResults)
	assert.True(t, cfg.FollowSymlinks)
	assert.Empty(t, cfg.Roots)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "betterfinder.yaml")
	content := []byte(`
mode: minimal
maxDepth: 5
primaryRoot: /home
excludeGlobs:
  - "**/scratch"
roots:
  - /srv
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "minimal", cfg.Mode)
	assert.Equal(t, 5, cfg.MaxDepth)
	assert.Equal(t, "/home", cfg.PrimaryRoot)
	assert.Equal(t, []string{"**/scratch"}, cfg.ExcludeGlobs)
	assert.Equal(t, []string{"/srv"}, cfg.Roots)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSearchConfigModeMapping(t *testing.T) {
	cfg := &Config{Mode: "minimal", MaxDepth: 7}
	sc, err := cfg.SearchConfig()
	require.NoError(t, err)
	assert.Equal(t, search.ModeMinimal, sc.Mode)
	assert.Equal(t, 7, sc.MaxDepth)

	cfg.Mode = "EXHAUSTIVE"
	sc, err = cfg.SearchConfig()
	require.NoError(t, err)
	assert.Equal(t, search.ModeExhaustive, sc.Mode)

	cfg.Mode = "turbo"
	_, err = cfg.SearchConfig()
	assert.Error(t, err)
}
