package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdalisten/lambdalisten/internal/cache"
)

func openTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "check.db")
	c, err := cache.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestLookupMissReturnsErrNotFound(t *testing.T) {
	c := openTestCache(t)
	_, err := c.Lookup(cache.Key("let x = 1", "v1"))
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestStoreThenLookupRoundTripsSuccess(t *testing.T) {
	c := openTestCache(t)
	key := cache.Key("let x = 1", "v1")

	require.NoError(t, c.Store(key, true, nil))

	entry, err := c.Lookup(key)
	require.NoError(t, err)
	assert.True(t, entry.OK)
	assert.Nil(t, entry.Report)
	assert.False(t, entry.CheckedAt.IsZero())
}

func TestStoreThenLookupRoundTripsFailure(t *testing.T) {
	c := openTestCache(t)
	key := cache.Key("let x = oops", "v1")
	report := []byte(`{"code":"MTC002"}`)

	require.NoError(t, c.Store(key, false, report))

	entry, err := c.Lookup(key)
	require.NoError(t, err)
	assert.False(t, entry.OK)
	assert.Equal(t, report, entry.Report)
}

func TestStoreOverwritesPreviousEntry(t *testing.T) {
	c := openTestCache(t)
	key := cache.Key("let x = 1", "v1")

	require.NoError(t, c.Store(key, false, []byte("bad")))
	require.NoError(t, c.Store(key, true, nil))

	entry, err := c.Lookup(key)
	require.NoError(t, err)
	assert.True(t, entry.OK)
	assert.Nil(t, entry.Report)
}

func TestKeyChangesWithSourceOrGlobalsVersion(t *testing.T) {
	base := cache.Key("let x = 1", "v1")
	assert.NotEqual(t, base, cache.Key("let x = 2", "v1"))
	assert.NotEqual(t, base, cache.Key("let x = 1", "v2"))
}
