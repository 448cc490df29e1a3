package cleanup_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkit/pkg/cleanup"
	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/filesystem"
	"github.com/arthur-debert/podkit/pkg/testutil"
)

func TestExecutor_RemovesPlan(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteFiles(t, fsys, root, "keep.h", "Tests/a.m", "Tests/b.m", "notes.txt")

	plan, err := cleanup.PlanCleanup(fsys, root, usedSet(root+"/keep.h"))
	require.NoError(t, err)

	removed, err := cleanup.NewExecutor(fsys).Execute(plan)
	require.NoError(t, err)
	assert.Equal(t, plan, removed)

	exists, err := filesystem.Exists(fsys, root+"/keep.h")
	require.NoError(t, err)
	assert.True(t, exists)
	for _, p := range plan {
		exists, err := filesystem.Exists(fsys, p)
		require.NoError(t, err)
		assert.False(t, exists, p)
	}

	// A second run over the same plan is a no-op success
	removed, err = cleanup.NewExecutor(fsys).Execute(plan)
	require.NoError(t, err)
	assert.Len(t, removed, len(plan))

	replanned, err := cleanup.PlanCleanup(fsys, root, usedSet(root+"/keep.h"))
	require.NoError(t, err)
	assert.Empty(t, replanned)
}

func TestExecutor_DryRun(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteFiles(t, fsys, root, "junk.txt")

	exec := cleanup.NewExecutor(fsys)
	exec.DryRun = true
	removed, err := exec.Execute([]string{root + "/junk.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{root + "/junk.txt"}, removed)

	exists, err := filesystem.Exists(fsys, root+"/junk.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExecutor_StopsAtFirstFailure(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.MkdirAll(filepath.Join(locked, "inner"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "inner", "f"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "last"), nil, 0644))
	require.NoError(t, os.Chmod(locked, 0555))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	plan := []string{
		filepath.Join(dir, "first"),
		filepath.Join(locked, "inner"),
		filepath.Join(dir, "last"),
	}

	removed, err := cleanup.NewExecutor(filesystem.NewOS()).Execute(plan)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCleanupFailed))
	assert.Equal(t, filepath.Join(locked, "inner"), errors.GetErrorDetails(err)["path"])
	assert.Equal(t, plan[:1], removed)

	_, statErr := os.Stat(filepath.Join(dir, "last"))
	assert.NoError(t, statErr, "remaining paths are left untouched")
	assert.ErrorIs(t, err, fs.ErrPermission)
}
