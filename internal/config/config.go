// Package config loads and validates the optional .vaultbridge.yaml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/deixis/vaultbridge/internal/normalize"
	"github.com/deixis/vaultbridge/internal/platform"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up from the working directory upward.
const FileName = ".vaultbridge.yaml"

// Version is the config file format this build understands. An unset
// version is treated as Version.
const Version = 1

// Default values.
const (
	DefaultBinary          = "filevault"
	DefaultHistoryCapacity = 20
)

// Config holds the parsed configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version       int               `yaml:"version"`        // file format; 0 or 1
	ResourceRoot  string            `yaml:"resource_root"`  // packaged resource directory
	Binary        string            `yaml:"binary"`         // executable base name, without suffix
	FallbackPaths []string          `yaml:"fallback_paths"` // replaces the platform's development fallbacks
	RawTimeout    string            `yaml:"timeout"`        // e.g. "5m"; empty waits indefinitely
	RawMaxOutput  int               `yaml:"max_output"`     // bytes per stream; 0 captures everything
	Markers       normalize.Markers `yaml:"markers"`
	History       HistoryConfig     `yaml:"history"`
	Log           LogConfig         `yaml:"log"`
}

// HistoryConfig controls the run history store.
type HistoryConfig struct {
	Capacity int    `yaml:"capacity"` // in-memory entries (default: 20)
	Dir      string `yaml:"dir"`      // JSON record directory; empty uses a temp dir
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: info)
	Format string `yaml:"format"` // text or json (default: text)
	Output string `yaml:"output"` // stdout, stderr or a file path (default: stderr)
}

// Timeout returns the configured timeout, or 0 for none.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return 0
}

// MaxOutputBytes returns the configured per-stream cap, or 0 for none.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return 0
}

// BinaryName returns the configured executable base name or the default.
func (c *Config) BinaryName() string {
	if c.Binary != "" {
		return c.Binary
	}
	return DefaultBinary
}

// HistoryCapacity returns the configured history size or the default.
func (c *Config) HistoryCapacity() int {
	if c.History.Capacity > 0 {
		return c.History.Capacity
	}
	return DefaultHistoryCapacity
}

// ErrorMarkers returns the configured markers, filling gaps from the defaults.
func (c *Config) ErrorMarkers() normalize.Markers {
	return c.Markers.Merge()
}

// Profile returns the platform profile with any configured fallbacks applied.
func (c *Config) Profile(base platform.Profile) platform.Profile {
	return base.WithFallbacks(c.FallbackPaths)
}

// Validate checks values that would otherwise be silently ignored.
func (c *Config) Validate() error {
	if c.Version != 0 && c.Version != Version {
		return fmt.Errorf("unsupported version %d (this build reads version %d)", c.Version, Version)
	}
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err != nil {
			return fmt.Errorf("timeout %q: %w", c.RawTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("timeout %q is negative", c.RawTimeout)
		}
	}
	if c.RawMaxOutput < 0 {
		return fmt.Errorf("max_output %d is negative", c.RawMaxOutput)
	}
	if c.History.Capacity < 0 {
		return fmt.Errorf("history.capacity %d is negative", c.History.Capacity)
	}
	return nil
}

// LoadResult holds the parsed config and where it came from.
type LoadResult struct {
	Config *Config
	Path   string // file that was read; empty when defaults are used
	Dir    string // directory relative paths in the config are anchored to
}

// Load looks for FileName in workspace and each parent directory. If no
// file exists, a default Config anchored at workspace is returned.
func Load(workspace string) (*LoadResult, error) {
	dir, err := filepath.Abs(workspace)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace: %w", err)
	}

	path, err := findConfig(dir)
	if err != nil {
		return &LoadResult{Config: &Config{}, Dir: dir}, nil
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from an explicit path.
func LoadFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	cfg.ResourceRoot = anchor(dir, cfg.ResourceRoot)
	cfg.History.Dir = anchor(dir, cfg.History.Dir)
	return &LoadResult{Config: cfg, Path: path, Dir: dir}, nil
}

// anchor resolves a relative path against the config file's directory.
func anchor(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// findConfig walks upward from dir looking for FileName.
func findConfig(dir string) (string, error) {
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found", FileName)
		}
		dir = parent
	}
}
