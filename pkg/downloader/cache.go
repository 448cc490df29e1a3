package downloader

import (
	"crypto/sha1"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/filesystem"
	"github.com/arthur-debert/podkit/pkg/logging"
	"github.com/arthur-debert/podkit/pkg/paths"
	"github.com/arthur-debert/podkit/pkg/types"
)

// CacheEntry is one mirrored repository
type CacheEntry struct {
	Path     string
	Size     int64
	LastUsed time.Time
}

// Cache holds bare repository mirrors keyed by the sha1 of their URL
type Cache struct {
	root     string
	maxBytes int64
	fs       types.FS
	logger   zerolog.Logger
}

var entryLocks sync.Map

// NewCache creates the cache described by opts
func NewCache(opts Options) *Cache {
	return &Cache{
		root:     filepath.Join(opts.CacheRoot, paths.GitCacheDir),
		maxBytes: int64(opts.MaxCacheSizeMB) * 1024 * 1024,
		fs:       filesystem.NewOS(),
		logger:   logging.GetLogger("downloader.cache"),
	}
}

// Root returns the directory holding every mirror
func (c *Cache) Root() string { return c.root }

// Dir returns the mirror directory for url
func (c *Cache) Dir(url string) string {
	sum := sha1.Sum([]byte(url))
	return filepath.Join(c.root, hex.EncodeToString(sum[:]))
}

// lock serializes work on one mirror across downloaders
func (c *Cache) lock(dir string) func() {
	v, _ := entryLocks.LoadOrStore(dir, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Touch marks a mirror as used now
func (c *Cache) Touch(dir string) {
	now := time.Now()
	if err := os.Chtimes(dir, now, now); err != nil {
		c.logger.Debug().Err(err).Str("dir", dir).Msg("Failed to touch cache entry")
	}
}

// Entries lists the mirrors, least recently used first
func (c *Cache) Entries() ([]CacheEntry, error) {
	dirs, err := c.fs.ReadDir(c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrCacheFailed, "failed to read cache %s", c.root)
	}

	var entries []CacheEntry
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		info, err := d.Info()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrCacheFailed, "failed to stat cache entry %s", d.Name())
		}
		path := filepath.Join(c.root, d.Name())
		size, err := c.size(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, CacheEntry{Path: path, Size: size, LastUsed: info.ModTime()})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].LastUsed.Equal(entries[j].LastUsed) {
			return entries[i].LastUsed.Before(entries[j].LastUsed)
		}
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

func (c *Cache) size(dir string) (int64, error) {
	var total int64
	err := filesystem.Walk(c.fs, dir, func(path string, entry fs.DirEntry) error {
		if entry.IsDir() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrCacheFailed, "failed to size cache entry %s", dir)
	}
	return total, nil
}

// Prune removes least recently used mirrors until the cache fits the
// size limit. The most recently used mirror is never removed. A
// non-positive limit disables pruning.
func (c *Cache) Prune() ([]string, error) {
	if c.maxBytes <= 0 {
		return nil, nil
	}

	entries, err := c.Entries()
	if err != nil {
		return nil, err
	}

	var total int64
	for _, e := range entries {
		total += e.Size
	}

	var removed []string
	for i := 0; i < len(entries)-1 && total > c.maxBytes; i++ {
		e := entries[i]
		unlock := c.lock(e.Path)
		err := c.fs.RemoveAll(e.Path)
		unlock()
		if err != nil {
			return removed, errors.Wrapf(err, errors.ErrCacheFailed, "failed to prune %s", e.Path).
				WithDetail("path", e.Path)
		}
		total -= e.Size
		removed = append(removed, e.Path)
	}

	if len(removed) > 0 {
		c.logger.Info().
			Int("removed", len(removed)).
			Int64("sizeBytes", total).
			Int64("limitBytes", c.maxBytes).
			Msg("Pruned download cache")
	}
	return removed, nil
}
