package installer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkit/pkg/downloader"
	"github.com/arthur-debert/podkit/pkg/filesystem"
	"github.com/arthur-debert/podkit/pkg/installer"
	"github.com/arthur-debert/podkit/pkg/paths"
	"github.com/arthur-debert/podkit/pkg/sandbox"
	"github.com/arthur-debert/podkit/pkg/spec"
	"github.com/arthur-debert/podkit/pkg/testutil"
)

// newDiskInstaller installs a predownloaded Foo into a real sandbox under a
// temporary directory
func newDiskInstaller(t *testing.T, b *testutil.SpecBuilder) (*installer.PodSourceInstaller, paths.Paths) {
	t.Helper()
	p, err := paths.New(filepath.Join(t.TempDir(), "Pods"))
	require.NoError(t, err)

	fs := filesystem.NewOS()
	testutil.WriteTree(t, fs, p.PodDir("Foo"), podTree)

	sb := sandbox.New(p)
	sb.StorePredownloaded("Foo")

	i, err := installer.New(sb, b.SpecMap(), installer.DefaultOptions(), installer.Collaborators{
		FS: fs,
		Downloader: func(target string, src spec.Source, opts downloader.Options) (downloader.Downloader, error) {
			t.Fatalf("predownloaded pods are never fetched")
			return nil, nil
		},
	})
	require.NoError(t, err)
	return i, p
}

func assertLinksTo(t *testing.T, link, target string) {
	t.Helper()
	got, err := os.Readlink(link)
	require.NoError(t, err, "missing link %s", link)
	assert.Equal(t, target, got)
}

func TestInstall_LinksHeadersOnDisk(t *testing.T) {
	i, p := newDiskInstaller(t, fooSpec())
	_, err := i.Install(context.Background())
	require.NoError(t, err)

	root := p.PodDir("Foo")
	build := p.HeadersBuildDir()
	assertLinksTo(t, filepath.Join(build, "Foo", "Foo.h"), filepath.Join(root, "Foo", "Foo.h"))
	assertLinksTo(t, filepath.Join(build, "Foo", "Bar.h"), filepath.Join(root, "Foo", "include", "sub", "Bar.h"))
	assertLinksTo(t, filepath.Join(p.HeadersPublicDir(), "Foo", "Foo.h"), filepath.Join(root, "Foo", "Foo.h"))

	_, err = os.Lstat(filepath.Join(build, "Foo", "Vendor.h"))
	assert.True(t, os.IsNotExist(err), "framework headers are not linked")
	_, err = os.Stat(filepath.Join(root, "unused.txt"))
	assert.True(t, os.IsNotExist(err), "unused files are cleaned")
	assert.Equal(t, installer.Linked, i.State())
}

func TestInstall_LinksMappedHeadersOnDisk(t *testing.T) {
	b := fooSpec().HeaderMappingsDir("Foo/include").PublicHeaders("Foo/include/**/*.h")
	i, p := newDiskInstaller(t, b)
	_, err := i.Install(context.Background())
	require.NoError(t, err)

	root := p.PodDir("Foo")
	bar := filepath.Join(root, "Foo", "include", "sub", "Bar.h")
	assertLinksTo(t, filepath.Join(p.HeadersBuildDir(), "Foo", "sub", "Bar.h"), bar)
	assertLinksTo(t, filepath.Join(p.HeadersBuildDir(), "Foo", "Foo.h"), filepath.Join(root, "Foo", "Foo.h"))
	assertLinksTo(t, filepath.Join(p.HeadersPublicDir(), "Foo", "sub", "Bar.h"), bar)

	_, err = os.Lstat(filepath.Join(p.HeadersPublicDir(), "Foo", "Foo.h"))
	assert.True(t, os.IsNotExist(err), "private headers stay out of the public store")
}

func TestLinkHeaders_LogsSkippedFrameworkHeaders(t *testing.T) {
	var buf bytes.Buffer
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	e := newEnv(t)
	i := e.installer(t, testutil.NewSpec("Foo", "1.0.0").SourceFiles("Foo/**/*.h"), installer.DefaultOptions())
	require.NoError(t, i.LinkHeaders())

	assert.Contains(t, buf.String(), "Skipping framework header")
	assert.Contains(t, buf.String(), "/Pods/Foo/Foo/Vendor.framework/Headers/Vendor.h")
}
