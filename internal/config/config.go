// Package config loads application settings from an optional YAML file
// with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"go.yaml.in/yaml/v3"
)

// Config represents ~/.profilesync/config.yaml.
type Config struct {
	RemoteURL string `yaml:"remote_url" envconfig:"REMOTE_URL"`
	CacheDir  string `yaml:"cache_dir" envconfig:"CACHE_DIR"`
	Listen    string `yaml:"listen" envconfig:"LISTEN"`
	Debug     bool   `yaml:"debug" envconfig:"DEBUG"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		RemoteURL: "http://localhost:8484",
		CacheDir:  DefaultDir(),
		Listen:    ":8484",
	}
}

// DefaultDir returns ~/.profilesync, or a relative fallback when the
// home directory cannot be determined.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".profilesync"
	}
	return filepath.Join(home, ".profilesync")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Parse parses config YAML bytes over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Load reads the config file at path (missing file means defaults) and
// then applies PROFILESYNC_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults apply.
	case err != nil:
		return Config{}, err
	default:
		if cfg, err = Parse(data); err != nil {
			return Config{}, err
		}
	}
	if err := envconfig.Process("profilesync", &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
