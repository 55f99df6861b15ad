// Package cache provides the local key/blob store holding the device's
// active profile.
package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gvpusca/profilesync/internal/profile"
)

// ActiveProfileKey is the well-known key under which the active
// profile's serialized copy lives.
const ActiveProfileKey = "active-profile"

// Cache is the local key/blob contract. Read reports absence via the
// second return value; Remove is idempotent.
type Cache interface {
	Read(key string) ([]byte, bool, error)
	Write(key string, data []byte) error
	Remove(key string) error
}

// Dir is a Cache backed by one file per key inside a directory.
type Dir struct {
	root string
}

// NewDir creates the directory if needed and returns a Dir cache.
func NewDir(root string) (Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return Dir{}, fmt.Errorf("creating cache dir: %w", err)
	}
	return Dir{root: root}, nil
}

func (d Dir) path(key string) string {
	return filepath.Join(d.root, key)
}

func (d Dir) Read(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (d Dir) Write(key string, data []byte) error {
	return os.WriteFile(d.path(key), data, 0o644)
}

func (d Dir) Remove(key string) error {
	err := os.Remove(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Memory is an in-memory Cache for tests.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailWrite makes Write fail with the given error.
	FailWrite error
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Read(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	return data, ok, nil
}

func (m *Memory) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrite != nil {
		return m.FailWrite
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// ReadActiveProfile reads and decodes the cached active profile.
// A decode failure is returned as-is (wrapping profile.ErrDecode): a
// cached blob that no longer decodes means corrupted device state and
// callers treat it as fatal rather than falling back to onboarding.
func ReadActiveProfile(c Cache) (profile.Profile, bool, error) {
	data, found, err := c.Read(ActiveProfileKey)
	if err != nil || !found {
		return profile.Profile{}, false, err
	}
	p, err := profile.Decode(data)
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("cached profile: %w", err)
	}
	return p, true, nil
}

// WriteActiveProfile encodes and commits a profile as the active one.
func WriteActiveProfile(c Cache, p profile.Profile) error {
	data, err := profile.Encode(p)
	if err != nil {
		return err
	}
	return c.Write(ActiveProfileKey, data)
}

// ClearActiveProfile removes the active profile. Idempotent.
func ClearActiveProfile(c Cache) error {
	return c.Remove(ActiveProfileKey)
}
