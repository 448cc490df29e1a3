package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/podkit/pkg/types"
)

// WalkFunc is called for every entry below the walked root.
// Returning fs.SkipDir from a directory entry skips its contents.
type WalkFunc func(path string, entry fs.DirEntry) error

// Walk visits every entry below root in lexical order, depth first.
// Hidden entries are included and root itself is not reported.
// Symlinked directories are reported but not descended into.
func Walk(fsys types.FS, root string, fn WalkFunc) error {
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if err := fn(path, entry); err != nil {
			if errors.Is(err, fs.SkipDir) && entry.IsDir() {
				continue
			}
			return err
		}
		if entry.IsDir() {
			if err := Walk(fsys, path, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

// Exists reports whether path exists, distinguishing a missing path
// from other stat failures.
func Exists(fsys types.FS, path string) (bool, error) {
	_, err := fsys.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
