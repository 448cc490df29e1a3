package headermap_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkit/pkg/commands"
	"github.com/arthur-debert/podkit/pkg/commands/headermap"
	"github.com/arthur-debert/podkit/pkg/filesystem"
	"github.com/arthur-debert/podkit/pkg/headers"
	"github.com/arthur-debert/podkit/pkg/testutil"
)

const manifest = `
[[pod]]
name = "Foo"
version = "1.0.0"
platforms = ["ios", "osx"]
source_files = ["Foo/**/*.{h,m}"]
public_header_files = ["Foo/include/**/*.h"]
header_mappings_dir = "Foo/include"
source = { git = "https://example.com/Foo.git", tag = "1.0.0" }
`

func TestMapPods(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "Pods/Foo")
	testutil.WriteFiles(t, filesystem.NewOS(), root, "Foo/Private.h", "Foo/Foo.m", "Foo/include/sub/Foo.h")

	reports, err := headermap.MapPods(commands.SessionOptions{
		ManifestPath: testutil.WriteManifest(t, dir, manifest),
		Config:       testutil.Config(dir),
	})
	require.NoError(t, err)

	require.Len(t, reports, 1)
	report := reports[0]
	assert.Equal(t, "Foo", report.Pod)
	assert.Equal(t, headers.Mapping{
		"Foo":     {filepath.Join(root, "Foo/Private.h")},
		"Foo/sub": {filepath.Join(root, "Foo/include/sub/Foo.h")},
	}, report.Build, "platforms are merged without duplicates")
	assert.Equal(t, headers.Mapping{
		"Foo/sub": {filepath.Join(root, "Foo/include/sub/Foo.h")},
	}, report.Public)
}
