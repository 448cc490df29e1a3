package downloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEntry(t *testing.T, c *Cache, url string, size int, age time.Duration) string {
	t.Helper()
	dir := c.Dir(url)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "objects"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "objects", "pack"), []byte(strings.Repeat("x", size)), 0644))
	when := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(dir, when, when))
	return dir
}

func TestCache_Dir(t *testing.T) {
	c := NewCache(Options{CacheRoot: "/cache"})
	assert.Equal(t, "/cache/git", c.Root())

	a := c.Dir("https://example.com/a.git")
	assert.Equal(t, a, c.Dir("https://example.com/a.git"))
	assert.NotEqual(t, a, c.Dir("https://example.com/b.git"))
	assert.Len(t, filepath.Base(a), 40)
}

func TestCache_PruneEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(Options{CacheRoot: t.TempDir(), MaxCacheSizeMB: 1})
	mb := 1024 * 1024

	oldest := writeEntry(t, c, "old", mb/2, 3*time.Hour)
	middle := writeEntry(t, c, "mid", mb/2, 2*time.Hour)
	newest := writeEntry(t, c, "new", mb/2, time.Hour)

	entries, err := c.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, oldest, entries[0].Path)
	assert.Equal(t, newest, entries[2].Path)

	removed, err := c.Prune()
	require.NoError(t, err)
	assert.Equal(t, []string{oldest}, removed)

	_, err = os.Stat(middle)
	assert.NoError(t, err)
	_, err = os.Stat(newest)
	assert.NoError(t, err)
}

func TestCache_PruneKeepsMostRecentEvenWhenOversized(t *testing.T) {
	c := NewCache(Options{CacheRoot: t.TempDir(), MaxCacheSizeMB: 1})
	only := writeEntry(t, c, "huge", 2*1024*1024, time.Minute)

	removed, err := c.Prune()
	require.NoError(t, err)
	assert.Empty(t, removed)
	_, err = os.Stat(only)
	assert.NoError(t, err)
}

func TestCache_PruneDisabledAndEmpty(t *testing.T) {
	disabled := NewCache(Options{CacheRoot: t.TempDir()})
	writeEntry(t, disabled, "a", 10, time.Hour)
	removed, err := disabled.Prune()
	require.NoError(t, err)
	assert.Empty(t, removed)

	empty := NewCache(Options{CacheRoot: filepath.Join(t.TempDir(), "missing"), MaxCacheSizeMB: 1})
	entries, err := empty.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
