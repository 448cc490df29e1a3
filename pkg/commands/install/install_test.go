package install_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkit/pkg/commands"
	"github.com/arthur-debert/podkit/pkg/commands/install"
	"github.com/arthur-debert/podkit/pkg/downloader"
	"github.com/arthur-debert/podkit/pkg/installer"
	"github.com/arthur-debert/podkit/pkg/spec"
	"github.com/arthur-debert/podkit/pkg/testutil"
)

const manifest = `
[[pod]]
name = "Foo"
version = "1.0.0"
platforms = ["ios"]
source_files = ["Foo/*.{h,m}"]
source = { git = "https://example.com/Foo.git", branch = "main" }
`

// fakeDownloader writes a fixed tree into the target directory
type fakeDownloader struct {
	target string
}

func (f *fakeDownloader) Download(ctx context.Context) error     { return f.write() }
func (f *fakeDownloader) DownloadHead(ctx context.Context) error { return f.write() }
func (f *fakeDownloader) OptionsSpecific() bool                  { return false }
func (f *fakeDownloader) CheckoutOptions() downloader.SpecificSource {
	return downloader.SpecificSource{"git": "https://example.com/Foo.git", "commit": "4d2b7c1"}
}

func (f *fakeDownloader) write() error {
	for _, name := range []string{"Foo/Foo.h", "Foo/Foo.m", "docs/guide.md", "README.md"} {
		path := filepath.Join(f.target, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(name), 0644); err != nil {
			return err
		}
	}
	return nil
}

func fakeFactory(target string, src spec.Source, opts downloader.Options) (downloader.Downloader, error) {
	return &fakeDownloader{target: target}, nil
}

func TestInstallPods(t *testing.T) {
	dir := t.TempDir()
	lockfile := filepath.Join(dir, "pods.lock")

	report, err := install.InstallPods(context.Background(), install.InstallPodsOptions{
		SessionOptions: commands.SessionOptions{
			ManifestPath: testutil.WriteManifest(t, dir, manifest),
			Config:       testutil.Config(dir),
			Downloader:   fakeFactory,
		},
		LockfilePath: lockfile,
	})
	require.NoError(t, err)

	require.Len(t, report.Pods, 1)
	result := report.Pods[0]
	assert.Equal(t, []installer.State{installer.Fetched, installer.Cleaned, installer.Linked}, result.Steps)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "Pods/Foo/docs"),
		filepath.Join(dir, "Pods/Foo/docs/guide.md"),
	}, result.Removed)

	_, err = os.Stat(filepath.Join(dir, "Pods/Foo/docs"))
	assert.True(t, os.IsNotExist(err))

	link := filepath.Join(dir, "Pods/Headers/Public/Foo/Foo.h")
	target, err := filepath.EvalSymlinks(link)
	require.NoError(t, err)
	expected, err := filepath.EvalSymlinks(filepath.Join(dir, "Pods/Foo/Foo/Foo.h"))
	require.NoError(t, err)
	assert.Equal(t, expected, target)

	lock, err := install.ReadLockfile(lockfile)
	require.NoError(t, err)
	assert.Equal(t, "4d2b7c1", lock.Pods["Foo"]["commit"])
}

func TestWriteLockfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pods.lock")
	sources := map[string]map[string]string{
		"Foo": {"git": "https://example.com/Foo.git", "commit": "4d2b7c1"},
		"Bar": {},
	}
	require.NoError(t, install.WriteLockfile(path, sources))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[pods.Foo]")

	lock, err := install.ReadLockfile(path)
	require.NoError(t, err)
	assert.Equal(t, sources["Foo"], lock.Pods["Foo"])
}
