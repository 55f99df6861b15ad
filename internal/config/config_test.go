package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gvpusca/profilesync/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := []byte(`remote_url: https://sync.example.com
cache_dir: /var/cache/profilesync
debug: true
`)
	cfg, err := config.Parse(input)
	require.NoError(t, err)
	assert.Equal(t, "https://sync.example.com", cfg.RemoteURL)
	assert.Equal(t, "/var/cache/profilesync", cfg.CacheDir)
	assert.True(t, cfg.Debug)
	// Unset keys keep their defaults.
	assert.Equal(t, ":8484", cfg.Listen)
}

func TestParse_Invalid(t *testing.T) {
	_, err := config.Parse([]byte("remote_url: [not, a, string"))
	assert.Error(t, err)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().RemoteURL, cfg.RemoteURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("remote_url: https://file.example.com\n"), 0644))
	t.Setenv("PROFILESYNC_REMOTE_URL", "https://env.example.com")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.RemoteURL)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.RemoteURL = "https://sync.example.com"

	data, err := config.Marshal(cfg)
	require.NoError(t, err)

	got, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
