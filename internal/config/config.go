// Package config loads CLI configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"betterfinder/internal/search"
)

// Config mirrors the engine knobs in file/env-friendly form. The values are
// read by viper from betterfinder.yaml or BETTERFINDER_* variables.
type Config struct {
	Mode              string   `mapstructure:"mode"`
	Roots             []string `mapstructure:"roots"`
	PriorityRoots     []string `mapstructure:"priorityRoots"`
	PrimaryRoot       string   `mapstructure:"primaryRoot"`
	ExcludeGlobs      []string `mapstructure:"excludeGlobs"`
	MaxDepth          int      `mapstructure:"maxDepth"`
	SecondaryMaxDepth int      `mapstructure:"secondaryMaxDepth"`
	MaxWorkers        int      `mapstructure:"maxWorkers"`
	MaxResults        int      `mapstructure:"maxResults"`
	FollowSymlinks    bool     `mapstructure:"followSymlinks"`
}

// Load reads configuration from configPath, or from the default locations
// when configPath is empty. A missing config file is not an error; defaults
// and environment apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "betterfinder"))
		}
		v.SetConfigName("betterfinder")
		v.SetConfigType("yaml")
	}

	v.SetDefault("mode", "exhaustive")
	v.SetDefault("maxDepth", search.DefaultMaxDepth)
	v.SetDefault("secondaryMaxDepth", search.DefaultSecondaryMaxDepth)
	v.SetDefault("maxResults", search.DefaultMaxResults)
	v.SetDefault("followSymlinks", true)

	v.SetEnvPrefix("BETTERFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Running without a config file is fine; an explicit path or a
		// malformed file is not.
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// SearchConfig converts to the engine's configuration.
func (c *Config) SearchConfig() (search.Config, error) {
	var mode search.Mode
	switch strings.ToLower(strings.TrimSpace(c.Mode)) {
	case "", "exhaustive":
		mode = search.ModeExhaustive
	case "minimal":
		mode = search.ModeMinimal
	default:
		return search.Config{}, fmt.Errorf("unknown indexing mode %q", c.Mode)
	}

	return search.Config{
		Roots:             c.Roots,
		PriorityRoots:     c.PriorityRoots,
		PrimaryRoot:       c.PrimaryRoot,
		Mode:              mode,
		ExcludeGlobs:      c.ExcludeGlobs,
		MaxDepth:          c.MaxDepth,
		SecondaryMaxDepth: c.SecondaryMaxDepth,
		MaxWorkers:        c.MaxWorkers,
		MaxResults:        c.MaxResults,
		FollowSymlinks:    c.FollowSymlinks,
	}, nil
}
