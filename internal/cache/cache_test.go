package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gvpusca/profilesync/internal/cache"
	"github.com/gvpusca/profilesync/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_ReadWriteRemove(t *testing.T) {
	d, err := cache.NewDir(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	_, found, err := d.Read("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, d.Write("k", []byte("v")))
	data, found, err := d.Read("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), data)

	require.NoError(t, d.Remove("k"))
	_, found, err = d.Read("k")
	require.NoError(t, err)
	assert.False(t, found)

	// Removing again is not an error.
	require.NoError(t, d.Remove("k"))
}

func TestActiveProfile_RoundTrip(t *testing.T) {
	c := cache.NewMemory()

	_, found, err := cache.ReadActiveProfile(c)
	require.NoError(t, err)
	assert.False(t, found)

	p := profile.New("Alice")
	require.NoError(t, cache.WriteActiveProfile(c, p))

	got, found, err := cache.ReadActiveProfile(c)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, p.Equal(got))

	require.NoError(t, cache.ClearActiveProfile(c))
	_, found, err = cache.ReadActiveProfile(c)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReadActiveProfile_CorruptBlobIsError(t *testing.T) {
	c := cache.NewMemory()
	require.NoError(t, c.Write(cache.ActiveProfileKey, []byte("garbage")))

	_, _, err := cache.ReadActiveProfile(c)
	assert.ErrorIs(t, err, profile.ErrDecode)
}

func TestDir_SurvivesProcessRestart(t *testing.T) {
	root := filepath.Join(t.TempDir(), "cache")
	d, err := cache.NewDir(root)
	require.NoError(t, err)

	p := profile.New("Alice")
	require.NoError(t, cache.WriteActiveProfile(d, p))

	// A second Dir over the same root sees the committed copy.
	d2, err := cache.NewDir(root)
	require.NoError(t, err)
	got, found, err := cache.ReadActiveProfile(d2)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, p.Equal(got))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, cache.ActiveProfileKey, entries[0].Name())
}
