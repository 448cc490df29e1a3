// Package pathlist lists the files of a pod root once and answers glob
// queries against that listing.
package pathlist

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/filesystem"
	"github.com/arthur-debert/podkit/pkg/logging"
	"github.com/arthur-debert/podkit/pkg/types"
)

// PathList is a cached recursive listing of a pod root. Paths are kept
// relative to the root and slash separated. Hidden entries are included.
type PathList struct {
	fs   types.FS
	root string

	mu     sync.Mutex
	loaded bool
	files  []string
	dirs   []string
}

// GlobOptions tunes a Glob query
type GlobOptions struct {
	// Excludes drop matches, and everything below a matched directory
	Excludes []string

	// ExpandDirs replaces a matched directory by the files below it
	ExpandDirs bool
}

// New creates a PathList for root. Nothing is read until first use.
func New(fsys types.FS, root string) *PathList {
	return &PathList{fs: fsys, root: root}
}

// Root returns the listed directory
func (l *PathList) Root() string { return l.root }

// Read (re)reads the listing from disk. A missing root lists as empty.
func (l *PathList) Read() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read()
}

func (l *PathList) read() error {
	logger := logging.GetLogger("pathlist")

	var files, dirs []string
	exists, err := filesystem.Exists(l.fs, l.root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", l.root).
			WithDetail("path", l.root)
	}
	if exists {
		err = filesystem.Walk(l.fs, l.root, func(p string, entry fs.DirEntry) error {
			rel, relErr := filepath.Rel(l.root, p)
			if relErr != nil {
				return relErr
			}
			rel = filepath.ToSlash(rel)
			if entry.IsDir() {
				dirs = append(dirs, rel)
			} else {
				files = append(files, rel)
			}
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", l.root).
				WithDetail("path", l.root)
		}
	}

	sort.Strings(files)
	sort.Strings(dirs)
	l.files, l.dirs, l.loaded = files, dirs, true

	logger.Debug().
		Str("root", l.root).
		Int("files", len(files)).
		Int("dirs", len(dirs)).
		Msg("Read path list")
	return nil
}

func (l *PathList) ensure() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return nil
	}
	return l.read()
}

// Files returns every file below the root, relative and sorted
func (l *PathList) Files() ([]string, error) {
	if err := l.ensure(); err != nil {
		return nil, err
	}
	return l.files, nil
}

// Dirs returns every directory below the root, relative and sorted
func (l *PathList) Dirs() ([]string, error) {
	if err := l.ensure(); err != nil {
		return nil, err
	}
	return l.dirs, nil
}

// Glob returns the absolute paths matching any of patterns. Matching is
// case-insensitive and supports ** and {a,b} alternation.
func (l *PathList) Glob(patterns []string, opts GlobOptions) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	if err := l.ensure(); err != nil {
		return nil, err
	}

	include, err := compile(patterns)
	if err != nil {
		return nil, err
	}
	exclude, err := compile(opts.Excludes)
	if err != nil {
		return nil, err
	}

	matched := make(map[string]struct{})
	for _, f := range l.files {
		if matchAny(include, f) {
			matched[f] = struct{}{}
		}
	}
	for _, d := range l.dirs {
		if !matchAny(include, d) {
			continue
		}
		if !opts.ExpandDirs {
			matched[d] = struct{}{}
			continue
		}
		prefix := d + "/"
		for _, f := range l.files {
			if strings.HasPrefix(f, prefix) {
				matched[f] = struct{}{}
			}
		}
	}

	result := make([]string, 0, len(matched))
	for rel := range matched {
		if excluded(exclude, rel) {
			continue
		}
		result = append(result, filepath.Join(l.root, filepath.FromSlash(rel)))
	}
	sort.Strings(result)
	return result, nil
}

// compile normalizes patterns for case-insensitive matching
func compile(patterns []string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimPrefix(filepath.ToSlash(p), "./"))
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid glob pattern %q", p).
				WithDetail("pattern", p)
		}
		out = append(out, p)
	}
	return out, nil
}

func matchAny(patterns []string, rel string) bool {
	lower := strings.ToLower(rel)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, lower); ok {
			return true
		}
	}
	return false
}

// excluded reports whether rel or one of its parent directories matches
func excluded(patterns []string, rel string) bool {
	if len(patterns) == 0 {
		return false
	}
	for p := rel; p != "." && p != "/" && p != ""; p = path.Dir(p) {
		if matchAny(patterns, p) {
			return true
		}
	}
	return false
}
