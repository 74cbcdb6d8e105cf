package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/dailylog/internal/record"
)

// Environment variables that override the config file.
const (
	EnvRoot   = "DAILYLOG_ROOT"
	EnvRemote = "DAILYLOG_REMOTE"
)

// Config holds resolved dailylog settings.
type Config struct {
	// Root is the directory holding YYYY_MM_DD.md records.
	Root string `yaml:"root"`
	// Remote is the git remote to push to; empty uses the branch upstream.
	Remote string `yaml:"remote"`
	// Layout sets the section headings and detail label written into records.
	Layout record.Layout `yaml:"layout"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Root:   ".",
		Layout: record.DefaultLayout(),
	}
}

// Load reads the YAML config file at path over the defaults.
// A missing file, or an empty path, yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Layout = cfg.Layout.WithDefaults()
	if cfg.Root == "" {
		cfg.Root = "."
	}
	cfg.Root = expandHome(cfg.Root)
	return cfg, nil
}

// ApplyEnv overrides settings from DAILYLOG_* environment variables.
func (c *Config) ApplyEnv() {
	if root := os.Getenv(EnvRoot); root != "" {
		c.Root = expandHome(root)
	}
	if remote := os.Getenv(EnvRemote); remote != "" {
		c.Remote = remote
	}
}

// Save writes the config as YAML to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
