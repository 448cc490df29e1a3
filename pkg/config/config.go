package config

import (
	"github.com/arthur-debert/podkit/pkg/errors"
)

// Config is the fully resolved podkit configuration
type Config struct {
	Install Install `koanf:"install"`
	Cache   Cache   `koanf:"cache"`
	Sandbox Sandbox `koanf:"sandbox"`
	Docs    Docs    `koanf:"docs"`
}

// Install holds the per-pod install flags
type Install struct {
	Clean        bool `koanf:"clean"`
	GenerateDocs bool `koanf:"generate_docs"`
	InstallDocs  bool `koanf:"install_docs"`
}

// Cache configures the download cache
type Cache struct {
	Root       string `koanf:"root"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	Aggressive bool   `koanf:"aggressive"`
}

// Sandbox configures where pods are installed
type Sandbox struct {
	Root string `koanf:"root"`
}

// Docs configures documentation rendering
type Docs struct {
	Style      string `koanf:"style"`
	Width      int    `koanf:"width"`
	InstallDir string `koanf:"install_dir"`
}

// Validate checks the values a loaded configuration cannot work without
func (c *Config) Validate() error {
	if c.Cache.MaxSizeMB <= 0 {
		return errors.Newf(errors.ErrConfigValid, "cache.max_size_mb must be positive, got %d", c.Cache.MaxSizeMB).
			WithDetail("key", "cache.max_size_mb")
	}
	if c.Sandbox.Root == "" {
		return errors.New(errors.ErrConfigValid, "sandbox.root must not be empty").
			WithDetail("key", "sandbox.root")
	}
	if c.Docs.Width < 0 {
		return errors.Newf(errors.ErrConfigValid, "docs.width must not be negative, got %d", c.Docs.Width).
			WithDetail("key", "docs.width")
	}
	return nil
}
