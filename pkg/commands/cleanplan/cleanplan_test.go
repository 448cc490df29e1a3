package cleanplan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkit/pkg/commands"
	"github.com/arthur-debert/podkit/pkg/commands/cleanplan"
	"github.com/arthur-debert/podkit/pkg/filesystem"
	"github.com/arthur-debert/podkit/pkg/testutil"
)

const manifest = `
[[pod]]
name = "Foo"
version = "1.0.0"
source_files = ["Foo/*.{h,m}"]
source = { git = "https://example.com/Foo.git", tag = "1.0.0" }

[[pod]]
name = "Bar"
version = "1.0.0"
source_files = ["Bar/*.m"]
source = { git = "https://example.com/Bar.git", tag = "1.0.0" }
`

func TestPlanPods(t *testing.T) {
	dir := t.TempDir()
	fs := filesystem.NewOS()
	testutil.WriteFiles(t, fs, filepath.Join(dir, "Pods/Foo"), "Foo/Foo.h", "Foo/Foo.m", "unused.txt")
	testutil.WriteFiles(t, fs, filepath.Join(dir, "work/Bar"), "Bar/Bar.m", "notes.txt")

	plans, err := cleanplan.PlanPods(commands.SessionOptions{
		ManifestPath: testutil.WriteManifest(t, dir, manifest),
		Config:       testutil.Config(dir),
		LocalPaths:   map[string]string{"Bar": filepath.Join(dir, "work/Bar")},
	})
	require.NoError(t, err)

	require.Len(t, plans, 2)
	assert.Equal(t, "Foo", plans[0].Pod)
	assert.Equal(t, []string{filepath.Join(dir, "Pods/Foo/unused.txt")}, plans[0].Paths)
	assert.Equal(t, "Bar", plans[1].Pod)
	assert.Empty(t, plans[1].Paths, "local pods are never cleaned")

	_, err = os.Stat(filepath.Join(dir, "Pods/Foo/unused.txt"))
	assert.NoError(t, err, "planning removes nothing")
}
