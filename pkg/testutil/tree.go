package testutil

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkit/pkg/types"
)

// FileTree represents a directory structure for testing. Values are
// either file contents (string) or nested FileTrees.
type FileTree map[string]interface{}

// WriteTree creates tree under basePath
func WriteTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	require.NoError(t, fs.MkdirAll(basePath, 0755))
	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			require.NoError(t, fs.MkdirAll(filepath.Dir(fullPath), 0755))
			require.NoError(t, fs.WriteFile(fullPath, []byte(v), 0644), "write %s", fullPath)
		case FileTree:
			WriteTree(t, fs, fullPath, v)
		default:
			t.Fatalf("invalid file tree content type for %s: %T", name, content)
		}
	}
}

// WriteFiles creates empty files at the given paths relative to basePath
func WriteFiles(t *testing.T, fs types.FS, basePath string, files ...string) {
	t.Helper()

	tree := FileTree{}
	for _, f := range files {
		tree[f] = ""
	}
	WriteTree(t, fs, basePath, tree)
}

// Abs joins every relative path onto root and sorts the result
func Abs(root string, rel ...string) []string {
	out := make([]string, len(rel))
	for i, r := range rel {
		out[i] = filepath.Join(root, filepath.FromSlash(r))
	}
	sort.Strings(out)
	return out
}
